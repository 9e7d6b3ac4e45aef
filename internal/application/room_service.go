package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/reserva-salas/internal/persistence"
)

const (
	maxRoomNameLength = 100
	minRoomCapacity   = 1
	maxRoomCapacity   = 1000
)

// RoomRepository captures the persistence operations needed by the room
// service. UpdateRoom and DeleteRoom carry the denormalization contract:
// rename fan-out and reservation cascade happen atomically with the room
// statement.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	UpdateRoom(ctx context.Context, room Room) error
	DeleteRoom(ctx context.Context, id string) error
	ListRooms(ctx context.Context) ([]Room, error)
}

// RoomService orchestrates validation and persistence for rooms.
type RoomService struct {
	rooms       RoomRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewRoomService constructs a room service with the provided dependencies.
func NewRoomService(rooms RoomRepository, idGenerator func() string, now func() time.Time) *RoomService {
	return NewRoomServiceWithLogger(rooms, idGenerator, now, nil)
}

// NewRoomServiceWithLogger constructs a room service with a specified logger.
func NewRoomServiceWithLogger(rooms RoomRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *RoomService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &RoomService{rooms: rooms, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// CreateRoom validates input and persists a new room.
func (s *RoomService) CreateRoom(ctx context.Context, actor Actor, input RoomInput) (room Room, err error) {
	if s == nil || s.rooms == nil {
		err = fmt.Errorf("room repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateRoom", "actor_id", actor.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room created")
	}()

	if actor.ID == "" {
		err = ErrUnauthorized
		return
	}

	vErr := validateRoomInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	now := s.now()
	room = Room{
		ID:          s.idGenerator(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Capacity:    input.Capacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err = s.rooms.CreateRoom(ctx, room); err != nil {
		err = mapRepoError(err)
		room = Room{}
		return
	}
	return
}

// UpdateRoom merges the patch into the identified room. A name change
// reaches every reservation referencing the room through the repository's
// fan-out contract.
func (s *RoomService) UpdateRoom(ctx context.Context, actor Actor, roomID string, patch RoomPatch) (room Room, err error) {
	if s == nil || s.rooms == nil {
		err = fmt.Errorf("room repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateRoom", "actor_id", actor.ID, "room_id", roomID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "room updated")
	}()

	if actor.ID == "" {
		err = ErrUnauthorized
		return
	}

	var existing Room
	existing, err = s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	updated := existing
	if patch.Name != nil {
		updated.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		updated.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Capacity != nil {
		updated.Capacity = *patch.Capacity
	}

	vErr := validateRoomInput(RoomInput{
		Name:        updated.Name,
		Description: updated.Description,
		Capacity:    updated.Capacity,
	})
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated.UpdatedAt = s.now()
	if err = s.rooms.UpdateRoom(ctx, updated); err != nil {
		err = mapRepoError(err)
		return
	}

	room = updated
	return
}

// DeleteRoom removes the room and, through the repository's cascade
// contract, every reservation referencing it.
func (s *RoomService) DeleteRoom(ctx context.Context, actor Actor, roomID string) error {
	if s == nil || s.rooms == nil {
		return fmt.Errorf("room repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteRoom", "actor_id", actor.ID, "room_id", roomID)

	if actor.ID == "" {
		return ErrUnauthorized
	}

	if err := s.rooms.DeleteRoom(ctx, roomID); err != nil {
		err = mapRepoError(err)
		logger.ErrorContext(ctx, "failed to delete room", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "room deleted")
	return nil
}

// ListRooms returns the room catalog in insertion order.
func (s *RoomService) ListRooms(ctx context.Context) ([]Room, error) {
	if s == nil || s.rooms == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ListRooms")

	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list rooms", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}

	logger.With("result_count", len(rooms)).InfoContext(ctx, "rooms listed")
	return rooms, nil
}

func validateRoomInput(input RoomInput) *ValidationError {
	vErr := &ValidationError{}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		vErr.add("name", "name is required")
	} else if len([]rune(name)) > maxRoomNameLength {
		vErr.add("name", "name must be at most 100 characters")
	}

	if input.Capacity < minRoomCapacity || input.Capacity > maxRoomCapacity {
		vErr.add("capacity", "capacity must be between 1 and 1000")
	}

	return vErr
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, persistence.ErrNotFound), errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	case errors.Is(err, persistence.ErrConflict), errors.Is(err, ErrConflict):
		return ErrConflict
	}
	return err
}
