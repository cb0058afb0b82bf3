package store

import "fmt"

// BuildGrid populates s with one Timeslot per (day, period) cell, in the
// same SlotID/Cell convention internal/solver's tests use: "<day>_<index>".
// It adds timeslots only; room and faculty availability comes from their
// own Availability maps (see FullAvailability).
func BuildGrid(s *Store, days []string, slotsPerDay, dayStartMin, slotLengthMin int) {
	for _, d := range days {
		for i := 0; i < slotsPerDay; i++ {
			start := dayStartMin + i*slotLengthMin
			s.AddTimeslot(Timeslot{
				SlotID:   fmt.Sprintf("%s_%d", d, i),
				Day:      d,
				Index:    i,
				StartMin: start,
				EndMin:   start + slotLengthMin,
			})
		}
	}
}

// FullAvailability returns an availability map covering every cell BuildGrid
// would produce for the given grid shape, the default a faculty member or
// room starts with before any leave/outage what-if narrows it.
func FullAvailability(days []string, slotsPerDay int) map[Cell]bool {
	avail := make(map[Cell]bool, len(days)*slotsPerDay)
	for _, d := range days {
		for i := 0; i < slotsPerDay; i++ {
			avail[Cell{Day: d, Index: i}] = true
		}
	}
	return avail
}
