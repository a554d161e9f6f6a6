package domain

import "github.com/pawcare/PC-BookingWizard/pkg/types"

// Slot represents one discrete bookable time unit for a given date.
// Unavailable slots are kept in the list: the presentation layer disables
// them but still displays them so the user understands the schedule shape.
type Slot struct {
	Time      types.TimeString
	Available bool
}

// DaySlots is the ordered availability picture for one query key
type DaySlots struct {
	ClinicID        int64
	Date            string // YYYY-MM-DD
	DurationMinutes int
	Slots           []Slot
}

// AvailableCount returns the number of bookable slots
func (d *DaySlots) AvailableCount() int {
	count := 0
	for _, s := range d.Slots {
		if s.Available {
			count++
		}
	}
	return count
}

// IsEmpty returns true if no slots were returned at all.
// An empty list is a valid, non-error result (fully booked day).
func (d *DaySlots) IsEmpty() bool {
	return len(d.Slots) == 0
}
