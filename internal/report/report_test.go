package report_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campusgraph/timetable/internal/report"
	"github.com/campusgraph/timetable/internal/solver"
	"github.com/campusgraph/timetable/internal/store"
)

func TestComputeNoClashesForDisjointAssignment(t *testing.T) {
	s := store.New()
	s.AddRoom(store.Room{ID: "R1"})
	s.AddRoom(store.Room{ID: "R2"})
	s.AddTimeslot(store.Timeslot{SlotID: "T1"})
	s.AddTimeslot(store.Timeslot{SlotID: "T2"})
	s.AddFaculty(store.Faculty{ID: "F1", MaxPerWeek: 10})

	assignment := solver.Assignment{
		"S1": {RoomID: "R1", SlotID: "T1", FacultyID: "F1"},
		"S2": {RoomID: "R2", SlotID: "T2", FacultyID: "F1"},
	}
	kpis := report.Compute(s, assignment)
	require.Equal(t, 0, kpis.RoomSlotClashes)
	require.Equal(t, 2, kpis.AssignedSessions)
	require.Equal(t, 0.5, kpis.UtilizationRatio)
	require.InDelta(t, 0.8, kpis.FacultyLoadHeadroom["F1"], 1e-9)
}

func TestComputeDetectsClash(t *testing.T) {
	s := store.New()
	s.AddRoom(store.Room{ID: "R1"})
	s.AddTimeslot(store.Timeslot{SlotID: "T1"})

	assignment := solver.Assignment{
		"S1": {RoomID: "R1", SlotID: "T1"},
		"S2": {RoomID: "R1", SlotID: "T1"},
	}
	kpis := report.Compute(s, assignment)
	require.Equal(t, 1, kpis.RoomSlotClashes)
}
