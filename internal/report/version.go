package report

import (
	"github.com/campusgraph/timetable/internal/ids"
	"github.com/campusgraph/timetable/internal/solver"
	"github.com/campusgraph/timetable/internal/store"
)

// NewVersion packages a finished solve into the TimetableVersion the
// Lifecycle (spec.md §3) retains as "current": its id is minted fresh via
// internal/ids, its assignments are the solver's output, and its
// ScoreBreakdown carries the KPIs computed for that assignment so a later
// caller can compare versions without recomputing them. pinned names the
// subset of session keys SPEC_FULL.md §4.F's "carry a chosen subset
// forward" lifecycle step should re-pin on the next build; callers that
// want nothing re-pinned should pass nil.
func NewVersion(assignment solver.Assignment, pinned map[string]bool, kpis KPIs) *store.TimetableVersion {
	assignments := make(map[string]store.SessionPlacement, len(assignment))
	for k, v := range assignment {
		assignments[k] = v
	}

	pins := make(map[string]bool, len(pinned))
	for k, v := range pinned {
		if v {
			pins[k] = true
		}
	}

	return &store.TimetableVersion{
		ID:          ids.NewVersionID(),
		Assignments: assignments,
		Pins:        pins,
		ScoreBreakdown: map[string]float64{
			"room_slot_clashes":   float64(kpis.RoomSlotClashes),
			"utilization_ratio":   kpis.UtilizationRatio,
			"assigned_sessions":   float64(kpis.AssignedSessions),
			"faculty_load_stddev": kpis.FacultyLoadStdDev,
		},
	}
}
