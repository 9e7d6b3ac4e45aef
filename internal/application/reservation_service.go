package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/reserva-salas/internal/agenda"
)

const dateLayout = "2006-01-02"

// ReservationRepository captures the persistence operations needed by the
// reservation service.
type ReservationRepository interface {
	CreateReservation(ctx context.Context, reservation Reservation) error
	ListReservationsByDate(ctx context.Context, date string) ([]Reservation, error)
	ListReservationsByRoom(ctx context.Context, roomID string) ([]Reservation, error)
	ListReservationsForSlot(ctx context.Context, roomID, date string) ([]Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
}

// RoomCatalog resolves rooms for reservation creation and agenda layout.
type RoomCatalog interface {
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
}

// ReservationService orchestrates validation, conflict gating, and
// persistence for reservations.
type ReservationService struct {
	reservations ReservationRepository
	rooms        RoomCatalog
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewReservationService constructs a reservation service with the provided
// dependencies.
func NewReservationService(reservations ReservationRepository, rooms RoomCatalog, idGenerator func() string, now func() time.Time) *ReservationService {
	return NewReservationServiceWithLogger(reservations, rooms, idGenerator, now, nil)
}

// NewReservationServiceWithLogger constructs a reservation service with a
// specified logger.
func NewReservationServiceWithLogger(reservations ReservationRepository, rooms RoomCatalog, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ReservationService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ReservationService{
		reservations: reservations,
		rooms:        rooms,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *ReservationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ReservationService", operation, attrs...)
}

// CreateReservation validates the input, runs the optimistic conflict
// pre-check, and persists the reservation. The store re-checks overlap
// inside the insert transaction, so a concurrent writer that slips past
// the pre-check still surfaces as ErrConflict with no mutation; both
// layers apply the identical interval rule.
func (s *ReservationService) CreateReservation(ctx context.Context, actor Actor, input ReservationInput) (reservation Reservation, err error) {
	if s == nil || s.reservations == nil || s.rooms == nil {
		err = fmt.Errorf("reservation service not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateReservation",
		"actor_id", actor.ID,
		"room_id", input.RoomID,
		"date", input.Date,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create reservation", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("reservation_id", reservation.ID).InfoContext(ctx, "reservation created")
	}()

	if actor.ID == "" {
		err = ErrUnauthorized
		return
	}

	vErr := s.validateReservationInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var room Room
	room, err = s.rooms.GetRoom(ctx, input.RoomID)
	if err != nil {
		if mapRepoError(err) == ErrNotFound {
			vErr := &ValidationError{}
			vErr.add("roomId", "room does not exist")
			err = vErr
			return
		}
		return
	}

	var existing []Reservation
	existing, err = s.reservations.ListReservationsForSlot(ctx, input.RoomID, input.Date)
	if err != nil {
		return
	}

	if agenda.HasConflict(toBookings(existing), input.RoomID, input.Date, input.StartTime, input.EndTime, "") {
		err = ErrConflict
		return
	}

	reservation = Reservation{
		ID:          s.idGenerator(),
		RoomID:      room.ID,
		RoomName:    room.Name,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Observation: strings.TrimSpace(input.Observation),
		UserID:      actor.ID,
		UserName:    actor.Name,
		CreatedAt:   s.now(),
	}

	if err = s.reservations.CreateReservation(ctx, reservation); err != nil {
		err = mapRepoError(err)
		reservation = Reservation{}
		return
	}
	return
}

// DeleteReservation removes a reservation by id. Deleting an absent id is
// a no-op, not an error.
func (s *ReservationService) DeleteReservation(ctx context.Context, actor Actor, id string) error {
	if s == nil || s.reservations == nil {
		return fmt.Errorf("reservation repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteReservation", "actor_id", actor.ID, "reservation_id", id)

	if actor.ID == "" {
		return ErrUnauthorized
	}

	if err := s.reservations.DeleteReservation(ctx, id); err != nil {
		logger.ErrorContext(ctx, "failed to delete reservation", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "reservation deleted")
	return nil
}

// CheckConflict is the pre-flight counterpart of the creation gate,
// exposed so the presentation layer can validate before submit. It uses
// the same rule as CreateReservation.
func (s *ReservationService) CheckConflict(ctx context.Context, roomID, date, start, end, excludeID string) (bool, error) {
	if s == nil || s.reservations == nil {
		return false, fmt.Errorf("reservation repository not configured")
	}

	if _, err := agenda.NewInterval(start, end); err != nil {
		vErr := &ValidationError{}
		vErr.add("startTime", "time is invalid")
		return false, vErr
	}

	existing, err := s.reservations.ListReservationsForSlot(ctx, roomID, date)
	if err != nil {
		return false, err
	}
	return agenda.HasConflict(toBookings(existing), roomID, date, start, end, excludeID), nil
}

// ListByDate returns the day's reservations ordered by ascending start
// time. Lexicographic order is chronological for zero-padded HH:MM.
func (s *ReservationService) ListByDate(ctx context.Context, date string) ([]Reservation, error) {
	if s == nil || s.reservations == nil {
		return nil, nil
	}

	reservations, err := s.reservations.ListReservationsByDate(ctx, date)
	if err != nil {
		s.loggerWith(ctx, "ListByDate", "date", date).ErrorContext(ctx, "failed to list reservations", "error", err)
		return nil, err
	}

	sort.SliceStable(reservations, func(i, j int) bool {
		return reservations[i].StartTime < reservations[j].StartTime
	})
	return reservations, nil
}

// ListByRoom returns the room's reservations ordered by ascending
// (date, start time).
func (s *ReservationService) ListByRoom(ctx context.Context, roomID string) ([]Reservation, error) {
	if s == nil || s.reservations == nil {
		return nil, nil
	}

	reservations, err := s.reservations.ListReservationsByRoom(ctx, roomID)
	if err != nil {
		s.loggerWith(ctx, "ListByRoom", "room_id", roomID).ErrorContext(ctx, "failed to list reservations", "error", err)
		return nil, err
	}

	sort.SliceStable(reservations, func(i, j int) bool {
		if reservations[i].Date != reservations[j].Date {
			return reservations[i].Date < reservations[j].Date
		}
		return reservations[i].StartTime < reservations[j].StartTime
	})
	return reservations, nil
}

// AgendaForDate projects the day's reservations for every room onto the
// hourly grid. Reservations the layout had to suppress (overlaps that
// bypassed the conflict gate) are logged as a data-integrity symptom, not
// silently normalized.
func (s *ReservationService) AgendaForDate(ctx context.Context, date string) (Agenda, error) {
	if s == nil || s.reservations == nil || s.rooms == nil {
		return Agenda{}, fmt.Errorf("reservation service not configured")
	}

	logger := s.loggerWith(ctx, "AgendaForDate", "date", date)

	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list rooms", "error", err)
		return Agenda{}, err
	}

	reservations, err := s.ListByDate(ctx, date)
	if err != nil {
		return Agenda{}, err
	}

	roomIDs := make([]string, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}

	grid := agenda.BuildGrid(roomIDs, toBookings(reservations))
	if len(grid.Anomalies) > 0 {
		logger.WarnContext(ctx, "overlapping reservations hidden in agenda grid",
			"date", date,
			"hidden_reservation_ids", grid.Anomalies,
		)
	}

	return Agenda{
		Date:         date,
		Rooms:        rooms,
		Reservations: reservations,
		Grid:         grid,
	}, nil
}

func (s *ReservationService) validateReservationInput(input ReservationInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.RoomID) == "" {
		vErr.add("roomId", "room is required")
	}

	if strings.TrimSpace(input.Date) == "" {
		vErr.add("date", "date is required")
	} else if parsed, err := time.Parse(dateLayout, input.Date); err != nil || parsed.Format(dateLayout) != input.Date {
		vErr.add("date", "date is invalid")
	} else if input.Date < s.now().Format(dateLayout) {
		vErr.add("date", "date must not be in the past")
	}

	startValid := false
	if strings.TrimSpace(input.StartTime) == "" {
		vErr.add("startTime", "start time is required")
	} else if _, err := agenda.ParseClock(input.StartTime); err != nil {
		vErr.add("startTime", "start time is invalid")
	} else {
		startValid = true
	}

	if strings.TrimSpace(input.EndTime) == "" {
		vErr.add("endTime", "end time is required")
	} else if _, err := agenda.ParseClock(input.EndTime); err != nil {
		vErr.add("endTime", "end time is invalid")
	} else if startValid {
		start, _ := agenda.ParseClock(input.StartTime)
		end, _ := agenda.ParseClock(input.EndTime)
		if end <= start {
			vErr.add("endTime", "end time must be after start time")
		}
	}

	return vErr
}

func toBookings(reservations []Reservation) []agenda.Booking {
	if len(reservations) == 0 {
		return nil
	}
	bookings := make([]agenda.Booking, 0, len(reservations))
	for _, reservation := range reservations {
		bookings = append(bookings, agenda.Booking{
			ID:        reservation.ID,
			RoomID:    reservation.RoomID,
			Date:      reservation.Date,
			StartTime: reservation.StartTime,
			EndTime:   reservation.EndTime,
		})
	}
	return bookings
}
