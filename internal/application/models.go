package application

import (
	"time"

	"github.com/example/reserva-salas/internal/agenda"
)

// Actor is the authenticated user on whose behalf a service method runs.
// It is always passed explicitly as a parameter, never read from ambient
// state, so services stay testable without a session apparatus.
type Actor struct {
	ID    string
	Name  string
	Email string
}

// Room represents a bookable room.
type Room struct {
	ID          string
	Name        string
	Description string
	Capacity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	Name        string
	Description string
	Capacity    int
}

// RoomPatch captures a partial room update; nil fields keep their current
// value.
type RoomPatch struct {
	Name        *string
	Description *string
	Capacity    *int
}

// Reservation represents a time-bounded booking of a room. RoomName and
// UserName are denormalized display snapshots taken at write time.
type Reservation struct {
	ID          string
	RoomID      string
	RoomName    string
	Date        string
	StartTime   string
	EndTime     string
	Observation string
	UserID      string
	UserName    string
	CreatedAt   time.Time
}

// ReservationInput captures caller provided reservation fields. Date is an
// ISO "YYYY-MM-DD" day, times are zero-padded "HH:MM".
type ReservationInput struct {
	RoomID      string
	Date        string
	StartTime   string
	EndTime     string
	Observation string
}

// Agenda bundles everything the presentation layer needs to render one
// day: the grid layout plus the rooms and reservations it references.
type Agenda struct {
	Date         string
	Rooms        []Room
	Reservations []Reservation
	Grid         agenda.Grid
}

// User represents a registered account as exposed by the auth service.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// RegisterParams captures the data required to create an account.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// Session represents an authenticated session issued to a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// AuthenticateParams captures the data required to authenticate a user.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthenticateResult captures the outcome of a successful authentication.
type AuthenticateResult struct {
	User    User
	Session Session
}
