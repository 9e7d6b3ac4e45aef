package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/reserva-salas/internal/agenda"
	"github.com/example/reserva-salas/internal/application"
)

type agendaService interface {
	AgendaForDate(ctx context.Context, date string) (application.Agenda, error)
}

type AgendaHandler struct {
	service   agendaService
	responder responder
	logger    *slog.Logger
}

func NewAgendaHandler(service agendaService, logger *slog.Logger) *AgendaHandler {
	base := defaultLogger(logger)
	return &AgendaHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AgendaHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AgendaHandler", operation, attrs...)
}

// Get renders one day of the hourly grid for every room.
func (h *AgendaHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		h.log(r.Context(), "Get", "error_kind", "bad_request").ErrorContext(r.Context(), "missing agenda date")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingDate)
		return
	}

	logger := h.log(r.Context(), "Get", "date", date)

	result, err := h.service.AgendaForDate(r.Context(), date)
	if err != nil {
		logger.ErrorContext(r.Context(), "agenda build failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("room_count", len(result.Rooms), "reservation_count", len(result.Reservations)).InfoContext(r.Context(), "agenda built")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAgendaDTO(result))
}

type agendaResponse struct {
	Date         string           `json:"date"`
	Slots        []string         `json:"slots"`
	Rooms        []roomDTO        `json:"rooms"`
	Columns      []columnDTO      `json:"columns"`
	Reservations []reservationDTO `json:"reservations"`
}

type columnDTO struct {
	RoomID string    `json:"room_id"`
	Cells  []cellDTO `json:"cells"`
}

type cellDTO struct {
	Kind          string `json:"kind"`
	ReservationID string `json:"reservation_id,omitempty"`
	Span          int    `json:"span,omitempty"`
}

func toAgendaDTO(result application.Agenda) agendaResponse {
	columns := make([]columnDTO, 0, len(result.Grid.Columns))
	for _, column := range result.Grid.Columns {
		cells := make([]cellDTO, 0, len(column.Cells))
		for _, cell := range column.Cells {
			cells = append(cells, cellDTO{
				Kind:          string(cell.Kind),
				ReservationID: cell.BookingID,
				Span:          cell.Span,
			})
		}
		columns = append(columns, columnDTO{RoomID: column.RoomID, Cells: cells})
	}

	slots := result.Grid.Slots
	if len(slots) == 0 {
		slots = agenda.Slots()
	}

	return agendaResponse{
		Date:         result.Date,
		Slots:        slots,
		Rooms:        toRoomDTOs(result.Rooms),
		Columns:      columns,
		Reservations: toReservationDTOs(result.Reservations),
	}
}
