package agenda

// Booking is the minimal projection of a reservation the scheduling core
// operates on. Times are zero-padded "HH:MM" strings and the date is an
// ISO "YYYY-MM-DD" calendar day.
type Booking struct {
	ID        string
	RoomID    string
	Date      string
	StartTime string
	EndTime   string
}

// HasConflict reports whether the candidate interval overlaps any existing
// reservation for the same room and date. excludeID, when non-empty, names
// one reservation to ignore so a record never conflicts with itself.
//
// The function has no side effects and is used both as the optimistic
// pre-flight check and inside the creation gate, so both call sites apply
// the identical rule.
func HasConflict(existing []Booking, roomID, date, start, end, excludeID string) bool {
	candidate, err := NewInterval(start, end)
	if err != nil {
		return false
	}

	for _, booking := range existing {
		if booking.RoomID != roomID || booking.Date != date {
			continue
		}
		if excludeID != "" && booking.ID == excludeID {
			continue
		}
		interval, err := NewInterval(booking.StartTime, booking.EndTime)
		if err != nil {
			continue
		}
		if candidate.Overlaps(interval) {
			return true
		}
	}
	return false
}
