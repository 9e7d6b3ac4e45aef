package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/reserva-salas/internal/persistence"
)

const reservationColumns = `id, room_id, room_name, date, start_time, end_time, observation, user_id, user_name, created_at`

// CreateReservation persists the reservation. The overlap check and the
// insert run in one transaction, making this the authoritative gate for
// the no-overlap invariant: the application-level pre-check is only an
// optimistic fast path, and a concurrent writer that slipped past it is
// rejected here with persistence.ErrConflict.
//
// The interval predicate compares zero-padded HH:MM strings, for which
// lexicographic and chronological order coincide.
func (s *Storage) CreateReservation(ctx context.Context, reservation persistence.Reservation) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var overlapping int
		err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*)
			FROM reservations
			WHERE room_id = ? AND date = ? AND start_time < ? AND end_time > ?
		`,
			reservation.RoomID,
			reservation.Date,
			reservation.EndTime,
			reservation.StartTime,
		).Scan(&overlapping)
		if err != nil {
			return fmt.Errorf("sqlite: check reservation overlap: %w", err)
		}
		if overlapping > 0 {
			return persistence.ErrConflict
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO reservations (`+reservationColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			reservation.ID,
			reservation.RoomID,
			reservation.RoomName,
			reservation.Date,
			reservation.StartTime,
			reservation.EndTime,
			reservation.Observation,
			reservation.UserID,
			reservation.UserName,
			formatTime(reservation.CreatedAt),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return persistence.ErrDuplicate
			}
			return fmt.Errorf("sqlite: insert reservation: %w", err)
		}
		return nil
	})
}

// GetReservation retrieves a reservation by id.
func (s *Storage) GetReservation(ctx context.Context, id string) (persistence.Reservation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)

	reservation, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Reservation{}, persistence.ErrNotFound
		}
		return persistence.Reservation{}, err
	}
	return reservation, nil
}

// ListReservationsByDate returns the day's reservations ordered by
// ascending start time.
func (s *Storage) ListReservationsByDate(ctx context.Context, date string) ([]persistence.Reservation, error) {
	return s.queryReservations(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE date = ? ORDER BY start_time ASC, id ASC`,
		date)
}

// ListReservationsByRoom returns the room's reservations ordered by
// ascending (date, start time).
func (s *Storage) ListReservationsByRoom(ctx context.Context, roomID string) ([]persistence.Reservation, error) {
	return s.queryReservations(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE room_id = ? ORDER BY date ASC, start_time ASC, id ASC`,
		roomID)
}

// ListReservationsForSlot returns the reservations for one room and date.
func (s *Storage) ListReservationsForSlot(ctx context.Context, roomID, date string) ([]persistence.Reservation, error) {
	return s.queryReservations(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE room_id = ? AND date = ? ORDER BY start_time ASC, id ASC`,
		roomID, date)
}

// DeleteReservation removes a reservation by id. Deleting an absent id is
// not an error.
func (s *Storage) DeleteReservation(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: delete reservation: %w", err)
	}
	return nil
}

func (s *Storage) queryReservations(ctx context.Context, query string, args ...any) ([]persistence.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []persistence.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate reservations: %w", err)
	}
	return reservations, nil
}

func scanReservation(row rowScanner) (persistence.Reservation, error) {
	var reservation persistence.Reservation
	var createdAt string

	err := row.Scan(
		&reservation.ID,
		&reservation.RoomID,
		&reservation.RoomName,
		&reservation.Date,
		&reservation.StartTime,
		&reservation.EndTime,
		&reservation.Observation,
		&reservation.UserID,
		&reservation.UserName,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Reservation{}, err
		}
		return persistence.Reservation{}, fmt.Errorf("sqlite: scan reservation: %w", err)
	}

	if reservation.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Reservation{}, err
	}
	return reservation, nil
}
