package persistence

import "time"

// User represents a registered account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Room represents a bookable room catalog entry.
type Room struct {
	ID          string
	Name        string
	Description string
	Capacity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Reservation represents a stored time-bounded booking of a room. RoomName
// and UserName are denormalized display snapshots: RoomName is refreshed on
// room rename and survives room deletion races, UserName is stamped at
// creation from the acting user.
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

// Session represents an authentication session persisted for a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}
