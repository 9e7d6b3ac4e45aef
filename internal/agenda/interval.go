// Package agenda implements the scheduling core: the half-open time
// interval model, reservation conflict detection, and the hour-by-room
// agenda grid layout.
package agenda

import "fmt"

// minutesPerSlot is the grid resolution. The agenda renders whole hours
// even though reservations may start or end on half hours.
const minutesPerSlot = 60

// ParseClock converts a zero-padded 24-hour "HH:MM" string into minutes
// since midnight.
func ParseClock(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, fmt.Errorf("agenda: invalid clock value %q", value)
	}
	for _, idx := range [...]int{0, 1, 3, 4} {
		if value[idx] < '0' || value[idx] > '9' {
			return 0, fmt.Errorf("agenda: invalid clock value %q", value)
		}
	}
	hour := int(value[0]-'0')*10 + int(value[1]-'0')
	minute := int(value[3]-'0')*10 + int(value[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("agenda: clock value %q out of range", value)
	}
	return hour*60 + minute, nil
}

// Interval is a half-open [Start, End) time range within a single day,
// expressed in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// NewInterval parses the start and end clock values into an Interval.
// The caller is responsible for ensuring End > Start; this constructor
// only rejects malformed clock strings.
func NewInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps reports whether two half-open intervals share at least one
// instant. Touching endpoints do not overlap: a reservation ending at
// 10:00 leaves the 10:00 start free.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Span returns the number of hourly grid rows the interval covers,
// rounding a trailing partial hour up.
func (i Interval) Span() int {
	duration := i.End - i.Start
	if duration <= 0 {
		return 0
	}
	return (duration + minutesPerSlot - 1) / minutesPerSlot
}

// Occupies reports whether the interval touches the hourly slot that
// starts at slotHour. The final partial hour counts (09:00-10:30 still
// occupies the 10:00 slot) while an exact-hour end does not (09:00-10:00
// leaves the 10:00 slot free).
func (i Interval) Occupies(slotHour int) bool {
	startHour := i.Start / 60
	endHour := i.End / 60
	endMinute := i.End % 60
	return slotHour >= startHour && (slotHour < endHour || (slotHour == endHour && endMinute > 0))
}

// StartsIn reports whether the interval begins within the hourly slot
// starting at slotHour. Minute offsets inside the hour are not separately
// represented; a 09:15 start belongs to the 09:00 slot.
func (i Interval) StartsIn(slotHour int) bool {
	return i.Start/60 == slotHour
}
