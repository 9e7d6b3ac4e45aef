package agenda

import "testing"

func cellAt(t *testing.T, grid Grid, roomID, slot string) Cell {
	t.Helper()
	slotIdx := -1
	for idx, label := range grid.Slots {
		if label == slot {
			slotIdx = idx
			break
		}
	}
	if slotIdx < 0 {
		t.Fatalf("slot %q not present in grid", slot)
	}
	for _, column := range grid.Columns {
		if column.RoomID == roomID {
			return column.Cells[slotIdx]
		}
	}
	t.Fatalf("room %q not present in grid", roomID)
	return Cell{}
}

func TestSlots(t *testing.T) {
	slots := Slots()
	if len(slots) != 17 {
		t.Fatalf("expected 17 hourly slots, got %d", len(slots))
	}
	if slots[0] != "06:00" || slots[len(slots)-1] != "22:00" {
		t.Fatalf("expected slots 06:00 through 22:00, got %s..%s", slots[0], slots[len(slots)-1])
	}
}

func TestBuildGrid(t *testing.T) {
	t.Run("multi hour reservation spans rows", func(t *testing.T) {
		grid := BuildGrid([]string{"alpha"}, []Booking{
			{ID: "r1", RoomID: "alpha", Date: "2024-06-01", StartTime: "09:00", EndTime: "11:15"},
		})

		start := cellAt(t, grid, "alpha", "09:00")
		if start.Kind != CellStart || start.BookingID != "r1" {
			t.Fatalf("expected start cell for r1 at 09:00, got %+v", start)
		}
		if start.Span != 3 {
			t.Fatalf("expected span 3, got %d", start.Span)
		}
		for _, slot := range []string{"10:00", "11:00"} {
			if cell := cellAt(t, grid, "alpha", slot); cell.Kind != CellContinuation {
				t.Fatalf("expected continuation at %s, got %+v", slot, cell)
			}
		}
		if cell := cellAt(t, grid, "alpha", "12:00"); cell.Kind != CellEmpty {
			t.Fatalf("expected 12:00 to be empty, got %+v", cell)
		}
	})

	t.Run("exact hour end frees the next slot", func(t *testing.T) {
		grid := BuildGrid([]string{"alpha"}, []Booking{
			{ID: "r1", RoomID: "alpha", Date: "2024-06-01", StartTime: "09:00", EndTime: "10:00"},
		})
		if cell := cellAt(t, grid, "alpha", "09:00"); cell.Kind != CellStart {
			t.Fatalf("expected start at 09:00, got %+v", cell)
		}
		if cell := cellAt(t, grid, "alpha", "10:00"); cell.Kind != CellEmpty {
			t.Fatalf("expected 10:00 to be empty, got %+v", cell)
		}
	})

	t.Run("rooms without bookings yield empty columns", func(t *testing.T) {
		grid := BuildGrid([]string{"alpha", "beta"}, nil)
		if len(grid.Columns) != 2 {
			t.Fatalf("expected two columns, got %d", len(grid.Columns))
		}
		for _, column := range grid.Columns {
			for idx, cell := range column.Cells {
				if cell.Kind != CellEmpty {
					t.Fatalf("expected empty cell in room %s slot %d, got %+v", column.RoomID, idx, cell)
				}
			}
		}
		if len(grid.Anomalies) != 0 {
			t.Fatalf("expected no anomalies, got %v", grid.Anomalies)
		}
	})

	t.Run("bookings stay in their room column", func(t *testing.T) {
		grid := BuildGrid([]string{"alpha", "beta"}, []Booking{
			{ID: "r1", RoomID: "beta", Date: "2024-06-01", StartTime: "07:00", EndTime: "08:00"},
		})
		if cell := cellAt(t, grid, "alpha", "07:00"); cell.Kind != CellEmpty {
			t.Fatalf("expected alpha 07:00 empty, got %+v", cell)
		}
		if cell := cellAt(t, grid, "beta", "07:00"); cell.Kind != CellStart || cell.BookingID != "r1" {
			t.Fatalf("expected beta 07:00 start for r1, got %+v", cell)
		}
	})

	t.Run("duplicate starters render first and flag the rest", func(t *testing.T) {
		grid := BuildGrid([]string{"alpha"}, []Booking{
			{ID: "r1", RoomID: "alpha", Date: "2024-06-01", StartTime: "09:00", EndTime: "10:00"},
			{ID: "r2", RoomID: "alpha", Date: "2024-06-01", StartTime: "09:30", EndTime: "10:30"},
		})

		start := cellAt(t, grid, "alpha", "09:00")
		if start.Kind != CellStart || start.BookingID != "r1" {
			t.Fatalf("expected first booking in store order to win, got %+v", start)
		}
		if len(grid.Anomalies) != 1 || grid.Anomalies[0] != "r2" {
			t.Fatalf("expected r2 flagged as anomaly, got %v", grid.Anomalies)
		}
		// The loser still holds its continuation slot.
		if cell := cellAt(t, grid, "alpha", "10:00"); cell.Kind != CellContinuation {
			t.Fatalf("expected continuation at 10:00, got %+v", cell)
		}
	})

	t.Run("start wins over continuation in the same slot", func(t *testing.T) {
		// Overlap this deep means the conflict gate was bypassed; the grid
		// must still render without crashing.
		grid := BuildGrid([]string{"alpha"}, []Booking{
			{ID: "r1", RoomID: "alpha", Date: "2024-06-01", StartTime: "09:00", EndTime: "10:30"},
			{ID: "r2", RoomID: "alpha", Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00"},
		})
		start := cellAt(t, grid, "alpha", "10:00")
		if start.Kind != CellStart || start.BookingID != "r2" {
			t.Fatalf("expected r2 to start at 10:00 despite r1 running through it, got %+v", start)
		}
	})
}
