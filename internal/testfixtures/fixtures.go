// Package testfixtures provides deterministic clocks, id generators, and
// storage-model builders shared by repository and service tests.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/reserva-salas/internal/persistence"
)

var (
	roomCounter        uint64
	reservationCounter uint64
	userCounter        uint64
	sessionCounter     uint64
)

var referenceTime = time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// RoomOption configures a generated room fixture.
type RoomOption func(*persistence.Room)

// NewRoom returns a deterministic room record with optional overrides.
func NewRoom(opts ...RoomOption) persistence.Room {
	idx := atomic.AddUint64(&roomCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	room := persistence.Room{
		ID:          fmt.Sprintf("room-%03d", idx),
		Name:        fmt.Sprintf("Sala %03d", idx),
		Description: "sala de reuniões",
		Capacity:    8,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for _, opt := range opts {
		opt(&room)
	}
	return room
}

// WithRoomID overrides the generated room id.
func WithRoomID(id string) RoomOption {
	return func(r *persistence.Room) { r.ID = id }
}

// WithRoomName overrides the generated room name.
func WithRoomName(name string) RoomOption {
	return func(r *persistence.Room) { r.Name = name }
}

// WithRoomCreatedAt pins both room timestamps to the given instant.
func WithRoomCreatedAt(t time.Time) RoomOption {
	return func(r *persistence.Room) {
		r.CreatedAt = t
		r.UpdatedAt = t
	}
}

// ReservationOption configures a generated reservation fixture.
type ReservationOption func(*persistence.Reservation)

// NewReservation returns a deterministic reservation record with optional
// overrides.
func NewReservation(opts ...ReservationOption) persistence.Reservation {
	idx := atomic.AddUint64(&reservationCounter, 1)
	reservation := persistence.Reservation{
		ID:        fmt.Sprintf("res-%03d", idx),
		RoomID:    "room-001",
		RoomName:  "Sala room-001",
		Date:      "2024-06-01",
		StartTime: "09:00",
		EndTime:   "10:00",
		UserID:    "user-001",
		UserName:  "Maria",
		CreatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&reservation)
	}
	return reservation
}

// WithReservationID overrides the generated reservation id.
func WithReservationID(id string) ReservationOption {
	return func(r *persistence.Reservation) { r.ID = id }
}

// WithReservationRoom points the reservation at the given room, refreshing
// the denormalized name snapshot the way the write path would.
func WithReservationRoom(roomID string) ReservationOption {
	return func(r *persistence.Reservation) {
		r.RoomID = roomID
		r.RoomName = "Sala " + roomID
	}
}

// WithReservationDate overrides the reservation day.
func WithReservationDate(date string) ReservationOption {
	return func(r *persistence.Reservation) { r.Date = date }
}

// WithReservationInterval overrides the start and end times.
func WithReservationInterval(start, end string) ReservationOption {
	return func(r *persistence.Reservation) {
		r.StartTime = start
		r.EndTime = end
	}
}

// UserOption configures a generated user fixture.
type UserOption func(*persistence.User)

// NewUser returns a deterministic user record with optional overrides.
func NewUser(opts ...UserOption) persistence.User {
	idx := atomic.AddUint64(&userCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	user := persistence.User{
		ID:           fmt.Sprintf("user-%03d", idx),
		Name:         "Maria",
		Email:        fmt.Sprintf("user-%03d@example.com", idx),
		PasswordHash: fmt.Sprintf("$argon2id$stub-%03d", idx),
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithUserID overrides the generated user id.
func WithUserID(id string) UserOption {
	return func(u *persistence.User) { u.ID = id }
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(u *persistence.User) { u.Email = email }
}

// SessionOption configures a generated session fixture.
type SessionOption func(*persistence.Session)

// NewSession returns a deterministic session record with optional overrides.
func NewSession(opts ...SessionOption) persistence.Session {
	idx := atomic.AddUint64(&sessionCounter, 1)
	session := persistence.Session{
		ID:        fmt.Sprintf("session-%03d", idx),
		UserID:    "user-001",
		Token:     fmt.Sprintf("token-%03d", idx),
		ExpiresAt: referenceTime.Add(24 * time.Hour),
		CreatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&session)
	}
	return session
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) SessionOption {
	return func(s *persistence.Session) { s.ID = id }
}

// WithSessionUser points the session at the given user id.
func WithSessionUser(userID string) SessionOption {
	return func(s *persistence.Session) { s.UserID = userID }
}

// WithSessionToken overrides the generated token.
func WithSessionToken(token string) SessionOption {
	return func(s *persistence.Session) { s.Token = token }
}

// WithSessionExpiry overrides the expiry instant.
func WithSessionExpiry(t time.Time) SessionOption {
	return func(s *persistence.Session) { s.ExpiresAt = t }
}

// WithSessionCreatedAt overrides the creation instant.
func WithSessionCreatedAt(t time.Time) SessionOption {
	return func(s *persistence.Session) { s.CreatedAt = t }
}
