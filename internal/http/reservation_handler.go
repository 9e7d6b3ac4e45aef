package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/reserva-salas/internal/application"
)

var errInvalidReservationID = errors.New("Identificador de reserva inválido.")

type reservationService interface {
	CreateReservation(ctx context.Context, actor application.Actor, input application.ReservationInput) (application.Reservation, error)
	DeleteReservation(ctx context.Context, actor application.Actor, id string) error
	CheckConflict(ctx context.Context, roomID, date, start, end, excludeID string) (bool, error)
	ListByDate(ctx context.Context, date string) ([]application.Reservation, error)
	ListByRoom(ctx context.Context, roomID string) ([]application.Reservation, error)
}

type ReservationHandler struct {
	service   reservationService
	responder responder
	logger    *slog.Logger
}

func NewReservationHandler(service reservationService, logger *slog.Logger) *ReservationHandler {
	base := defaultLogger(logger)
	return &ReservationHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ReservationHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ReservationHandler", operation, attrs...)
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	actor, _ := ActorFromContext(r.Context())

	var req reservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "actor_id", actor.ID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode reservation request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "actor_id", actor.ID, "room_id", req.RoomID, "date", req.Date)

	reservation, err := h.service.CreateReservation(r.Context(), actor, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "reservation creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("reservation_id", reservation.ID).InfoContext(r.Context(), "reservation created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, reservationResponse{Reservation: toReservationDTO(reservation)})
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := chi.URLParam(r, "reservationID")
	if strings.TrimSpace(id) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing reservation id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidReservationID)
		return
	}

	actor, _ := ActorFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "actor_id", actor.ID, "reservation_id", id)

	if err := h.service.DeleteReservation(r.Context(), actor, id); err != nil {
		logger.ErrorContext(r.Context(), "reservation delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "reservation deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// List serves the day view (?date=) and the per-room history (?room_id=).
// Exactly one filter must be provided.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	roomID := strings.TrimSpace(r.URL.Query().Get("room_id"))

	if (date == "") == (roomID == "") {
		h.log(r.Context(), "List", "error_kind", "bad_request").ErrorContext(r.Context(), "list requires exactly one of date or room_id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingListFilter)
		return
	}

	var (
		reservations []application.Reservation
		err          error
	)
	if date != "" {
		reservations, err = h.service.ListByDate(r.Context(), date)
	} else {
		reservations, err = h.service.ListByRoom(r.Context(), roomID)
	}

	logger := h.log(r.Context(), "List", "date", date, "room_id", roomID)
	if err != nil {
		logger.ErrorContext(r.Context(), "reservation list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(reservations)).InfoContext(r.Context(), "reservations listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listReservationsResponse{Reservations: toReservationDTOs(reservations)})
}

// CheckConflict is the pre-flight counterpart of the creation gate.
func (h *ReservationHandler) CheckConflict(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	roomID := strings.TrimSpace(query.Get("room_id"))
	date := strings.TrimSpace(query.Get("date"))
	start := strings.TrimSpace(query.Get("start_time"))
	end := strings.TrimSpace(query.Get("end_time"))
	excludeID := strings.TrimSpace(query.Get("exclude_id"))

	if roomID == "" || date == "" || start == "" || end == "" {
		h.log(r.Context(), "CheckConflict", "error_kind", "bad_request").ErrorContext(r.Context(), "missing conflict query parameters")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingConflictArgs)
		return
	}

	logger := h.log(r.Context(), "CheckConflict", "room_id", roomID, "date", date)

	conflict, err := h.service.CheckConflict(r.Context(), roomID, date, start, end, excludeID)
	if err != nil {
		logger.ErrorContext(r.Context(), "conflict check failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, conflictResponse{Conflict: conflict})
}

type reservationRequest struct {
	RoomID      string `json:"room_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Observation string `json:"observation"`
}

func (r reservationRequest) toInput() application.ReservationInput {
	return application.ReservationInput{
		RoomID:      strings.TrimSpace(r.RoomID),
		Date:        strings.TrimSpace(r.Date),
		StartTime:   strings.TrimSpace(r.StartTime),
		EndTime:     strings.TrimSpace(r.EndTime),
		Observation: r.Observation,
	}
}

type reservationResponse struct {
	Reservation reservationDTO `json:"reservation"`
}

type listReservationsResponse struct {
	Reservations []reservationDTO `json:"reservations"`
}

type conflictResponse struct {
	Conflict bool `json:"conflict"`
}

type reservationDTO struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	RoomName    string `json:"room_name"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Observation string `json:"observation,omitempty"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	CreatedAt   string `json:"created_at"`
}

func toReservationDTO(reservation application.Reservation) reservationDTO {
	return reservationDTO{
		ID:          reservation.ID,
		RoomID:      reservation.RoomID,
		RoomName:    reservation.RoomName,
		Date:        reservation.Date,
		StartTime:   reservation.StartTime,
		EndTime:     reservation.EndTime,
		Observation: reservation.Observation,
		UserID:      reservation.UserID,
		UserName:    reservation.UserName,
		CreatedAt:   reservation.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toReservationDTOs(reservations []application.Reservation) []reservationDTO {
	if len(reservations) == 0 {
		return nil
	}
	out := make([]reservationDTO, 0, len(reservations))
	for _, reservation := range reservations {
		out = append(out, toReservationDTO(reservation))
	}
	return out
}
