package persistence

import (
	"context"
	"time"
)

// UserRepository exposes CRUD operations for registered accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

// RoomRepository exposes CRUD operations for rooms.
//
// UpdateRoom must propagate a changed name into the denormalized RoomName
// column of every reservation referencing the room, and DeleteRoom must
// remove those reservations, both atomically with the room statement so no
// execution ordering leaves orphans or stale snapshots.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) error
	UpdateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// ReservationRepository stores reservations and the derived day/room
// queries.
type ReservationRepository interface {
	// CreateReservation persists the reservation, returning ErrConflict
	// when its interval overlaps an existing reservation for the same
	// room and date.
	CreateReservation(ctx context.Context, reservation Reservation) error
	GetReservation(ctx context.Context, id string) (Reservation, error)
	// ListReservationsByDate returns the day's reservations ordered by
	// ascending start time.
	ListReservationsByDate(ctx context.Context, date string) ([]Reservation, error)
	// ListReservationsByRoom returns the room's reservations ordered by
	// ascending (date, start time).
	ListReservationsByRoom(ctx context.Context, roomID string) ([]Reservation, error)
	// ListReservationsForSlot returns the reservations for one room and
	// date, the working set of the conflict detector.
	ListReservationsForSlot(ctx context.Context, roomID, date string) ([]Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) error
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
