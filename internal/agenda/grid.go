package agenda

import "fmt"

const (
	firstSlotHour = 6
	lastSlotHour  = 22
)

// Slots returns the fixed ordered hourly slot labels of the agenda,
// "06:00" through "22:00".
func Slots() []string {
	labels := make([]string, 0, lastSlotHour-firstSlotHour+1)
	for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
		labels = append(labels, fmt.Sprintf("%02d:00", hour))
	}
	return labels
}

// CellKind classifies one slot-by-room cell of the agenda grid.
type CellKind string

const (
	// CellEmpty marks a slot no reservation touches.
	CellEmpty CellKind = "empty"
	// CellStart marks the slot a reservation's card is rendered in.
	CellStart CellKind = "start"
	// CellContinuation marks a slot covered by a reservation that began
	// in an earlier slot; it is a placeholder, never rendered twice.
	CellContinuation CellKind = "continuation"
)

// Cell is one entry of the agenda grid. BookingID and Span are set only
// for CellStart cells.
type Cell struct {
	Kind      CellKind
	BookingID string
	Span      int
}

// Column holds the cells of one room, indexed in Slots() order.
type Column struct {
	RoomID string
	Cells  []Cell
}

// Grid is the render-ready projection of one day's reservations onto the
// hourly slots. Anomalies lists reservation ids suppressed because another
// reservation already claimed their starting cell; overlap this deep means
// the conflict gate was bypassed, so callers should flag it rather than
// treat it as normal output.
type Grid struct {
	Slots     []string
	Columns   []Column
	Anomalies []string
}

// BuildGrid lays out the given bookings for the listed rooms. Columns keep
// the supplied room order; bookings for unknown rooms are ignored. Rooms
// without bookings produce all-empty columns, which is a valid state.
func BuildGrid(roomIDs []string, bookings []Booking) Grid {
	grid := Grid{
		Slots:   Slots(),
		Columns: make([]Column, 0, len(roomIDs)),
	}

	for _, roomID := range roomIDs {
		column := Column{
			RoomID: roomID,
			Cells:  make([]Cell, len(grid.Slots)),
		}
		for idx := range column.Cells {
			slotHour := firstSlotHour + idx
			cell := Cell{Kind: CellEmpty}

			for _, booking := range bookings {
				if booking.RoomID != roomID {
					continue
				}
				interval, err := NewInterval(booking.StartTime, booking.EndTime)
				if err != nil || !interval.Occupies(slotHour) {
					continue
				}
				if !interval.StartsIn(slotHour) {
					if cell.Kind == CellEmpty {
						cell = Cell{Kind: CellContinuation}
					}
					continue
				}
				if cell.Kind == CellStart {
					// First booking in store order wins the cell; the
					// rest are hidden and reported as an integrity
					// symptom.
					grid.Anomalies = append(grid.Anomalies, booking.ID)
					continue
				}
				cell = Cell{
					Kind:      CellStart,
					BookingID: booking.ID,
					Span:      interval.Span(),
				}
			}
			column.Cells[idx] = cell
		}
		grid.Columns = append(grid.Columns, column)
	}

	return grid
}
