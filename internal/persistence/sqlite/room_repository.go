package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/reserva-salas/internal/persistence"
)

// CreateRoom inserts a new room.
func (s *Storage) CreateRoom(ctx context.Context, room persistence.Room) error {
	const query = `
		INSERT INTO rooms (id, name, description, capacity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		room.ID,
		room.Name,
		room.Description,
		room.Capacity,
		formatTime(room.CreatedAt),
		formatTime(room.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return persistence.ErrDuplicate
		}
		return fmt.Errorf("sqlite: insert room: %w", err)
	}
	return nil
}

// UpdateRoom updates an existing room and, in the same transaction,
// refreshes the denormalized room_name snapshot on every reservation
// referencing it.
func (s *Storage) UpdateRoom(ctx context.Context, room persistence.Room) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE rooms
			SET name = ?, description = ?, capacity = ?, updated_at = ?
			WHERE id = ?
		`,
			room.Name,
			room.Description,
			room.Capacity,
			formatTime(room.UpdatedAt),
			room.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: update room: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("sqlite: rows affected: %w", err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE reservations SET room_name = ? WHERE room_id = ?`,
			room.Name, room.ID,
		); err != nil {
			return fmt.Errorf("sqlite: propagate room name: %w", err)
		}
		return nil
	})
}

// GetRoom retrieves a room by id.
func (s *Storage) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	const query = `
		SELECT id, name, description, capacity, created_at, updated_at
		FROM rooms
		WHERE id = ?
	`

	row := s.db.QueryRowContext(ctx, query, id)
	room, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Room{}, persistence.ErrNotFound
		}
		return persistence.Room{}, err
	}
	return room, nil
}

// ListRooms returns all rooms in insertion order.
func (s *Storage) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	const query = `
		SELECT id, name, description, capacity, created_at, updated_at
		FROM rooms
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []persistence.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate rooms: %w", err)
	}
	return rooms, nil
}

// DeleteRoom removes the room and every reservation referencing it in one
// transaction; no execution ordering can leave orphaned reservations.
func (s *Storage) DeleteRoom(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM reservations WHERE room_id = ?`, id,
		); err != nil {
			return fmt.Errorf("sqlite: cascade reservations: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("sqlite: delete room: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("sqlite: rows affected: %w", err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (persistence.Room, error) {
	var room persistence.Room
	var createdAt, updatedAt string

	if err := row.Scan(&room.ID, &room.Name, &room.Description, &room.Capacity, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Room{}, err
		}
		return persistence.Room{}, fmt.Errorf("sqlite: scan room: %w", err)
	}

	var err error
	if room.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Room{}, err
	}
	if room.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Room{}, err
	}
	return room, nil
}
