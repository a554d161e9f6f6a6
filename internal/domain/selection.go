package domain

import (
	"time"
	"unicode/utf8"

	"github.com/pawcare/PC-BookingWizard/pkg/types"
)

// PreferredTimeOfDay is the coarse time-of-day preference used when exact
// scheduling is deferred to clinic staff.
type PreferredTimeOfDay string

const (
	TimeOfDayMorning   PreferredTimeOfDay = "morning"
	TimeOfDayAfternoon PreferredTimeOfDay = "afternoon"
	TimeOfDayAny       PreferredTimeOfDay = "any"
)

// IsValid returns true if the value belongs to the closed set
func (t PreferredTimeOfDay) IsValid() bool {
	switch t {
	case TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayAny:
		return true
	}
	return false
}

// Selection is the mutable aggregate of one booking attempt.
// All mutations are total: invalid input is ignored or clamped, never
// rejected with an error. Exact-slot fields (Date, TimeSlot) and
// preference fields are independently optional — the two scheduling
// modes coexist on one aggregate.
type Selection struct {
	ServiceIDs []int64
	PetID      *int64

	Date     *time.Time
	TimeSlot types.TimeString

	PreferredDateStart *time.Time
	PreferredDateEnd   *time.Time
	PreferredTimeOfDay PreferredTimeOfDay

	Notes string
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{
		ServiceIDs:         make([]int64, 0, MaxServicesPerBooking),
		PreferredTimeOfDay: TimeOfDayAny,
	}
}

// HasService returns true if the service is currently selected
func (s *Selection) HasService(serviceID int64) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// ToggleService adds the service if it is not selected and the cap allows,
// removes it if it is selected. Adding beyond MaxServicesPerBooking is a
// no-op. Returns true if the selection changed.
func (s *Selection) ToggleService(serviceID int64) bool {
	for i, id := range s.ServiceIDs {
		if id == serviceID {
			s.ServiceIDs = append(s.ServiceIDs[:i], s.ServiceIDs[i+1:]...)
			return true
		}
	}

	if len(s.ServiceIDs) >= MaxServicesPerBooking {
		return false
	}

	s.ServiceIDs = append(s.ServiceIDs, serviceID)
	return true
}

// ClearServices removes all selected services. Returns true if any were selected.
func (s *Selection) ClearServices() bool {
	if len(s.ServiceIDs) == 0 {
		return false
	}
	s.ServiceIDs = s.ServiceIDs[:0]
	return true
}

// SetPet selects the pet the appointment is for
func (s *Selection) SetPet(petID int64) {
	s.PetID = &petID
}

// SetDate sets the exact-slot date. Changing the date invalidates the
// previously chosen time slot. Returns true if the date changed.
func (s *Selection) SetDate(date time.Time) bool {
	day := truncateToDay(date)
	if s.Date != nil && s.Date.Equal(day) {
		return false
	}
	s.Date = &day
	s.TimeSlot = ""
	return true
}

// SetTimeSlot sets the exact start time within the selected date.
// Ignored if the value does not parse as HH:MM.
func (s *Selection) SetTimeSlot(slot types.TimeString) {
	if slot.Validate() != nil {
		return
	}
	s.TimeSlot = slot
}

// SetPreference sets the preference window and time of day.
// The window start is clamped to tomorrow (no same-day preference
// booking); an end before the start is clamped to the start; an
// unknown time of day falls back to "any".
func (s *Selection) SetPreference(start, end time.Time, timeOfDay PreferredTimeOfDay, now time.Time) {
	tomorrow := truncateToDay(now).AddDate(0, 0, 1)

	startDay := truncateToDay(start)
	if startDay.Before(tomorrow) {
		startDay = tomorrow
	}

	endDay := truncateToDay(end)
	if endDay.Before(startDay) {
		endDay = startDay
	}

	if !timeOfDay.IsValid() {
		timeOfDay = TimeOfDayAny
	}

	s.PreferredDateStart = &startDay
	s.PreferredDateEnd = &endDay
	s.PreferredTimeOfDay = timeOfDay
}

// SetNotes sets free-form notes, truncated at MaxNotesLength bytes.
// The cut never splits a multibyte rune: the result stays valid UTF-8.
func (s *Selection) SetNotes(notes string) {
	if len(notes) > MaxNotesLength {
		cut := MaxNotesLength
		for cut > 0 && !utf8.RuneStart(notes[cut]) {
			cut--
		}
		notes = notes[:cut]
	}
	s.Notes = notes
}

// HasExactSlot returns true if both date and time slot are chosen
func (s *Selection) HasExactSlot() bool {
	return s.Date != nil && !s.TimeSlot.IsZero()
}

// HasPreference returns true if a preference window is set
func (s *Selection) HasPreference() bool {
	return s.PreferredDateStart != nil && s.PreferredDateEnd != nil
}

// HasSchedule returns true if the selection carries either an exact slot
// or a preference window
func (s *Selection) HasSchedule() bool {
	return s.HasExactSlot() || s.HasPreference()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
