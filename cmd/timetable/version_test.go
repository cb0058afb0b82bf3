package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusgraph/timetable/internal/report"
	"github.com/campusgraph/timetable/internal/store"
)

// TestSaveVersionThenCarriedPinsRoundTrips exercises the full Lifecycle
// path this command wires together: a solved assignment is packaged into a
// TimetableVersion and written to disk, then a later invocation loads that
// file back and derives a validated pin for the session named by
// --pin-session.
func TestSaveVersionThenCarriedPinsRoundTrips(t *testing.T) {
	s := referenceUniversity(t)
	status, assignment := solveNow(t, s, nil)
	require.Contains(t, []string{"OPTIMAL", "FEASIBLE"}, status.String())

	var someKey string
	for k := range assignment {
		someKey = k
		break
	}
	require.NotEmpty(t, someKey)

	path := filepath.Join(t.TempDir(), "version.json")
	pinSessionFlag = []string{someKey}
	defer func() { pinSessionFlag = nil }()

	kpis := report.Compute(s, assignment)
	require.NoError(t, saveVersion(assignment, kpis, path))

	pinsFromFlag = path
	defer func() { pinsFromFlag = "" }()

	pins, err := carriedPins(s, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, pins, 1)
	require.Equal(t, someKey, pins[0].SessionKey)
	require.Equal(t, assignment[someKey].RoomID, pins[0].RoomID)
	require.Equal(t, assignment[someKey].SlotID, pins[0].SlotID)
}

// TestCarriedPinsDropsInfeasiblePins confirms a pin that no longer resolves
// against the current store (here: its room went unavailable) is dropped
// rather than failing the load.
func TestCarriedPinsDropsInfeasiblePins(t *testing.T) {
	s := referenceUniversity(t)
	status, assignment := solveNow(t, s, nil)
	require.Contains(t, []string{"OPTIMAL", "FEASIBLE"}, status.String())

	var someKey string
	for k := range assignment {
		someKey = k
		break
	}

	path := filepath.Join(t.TempDir(), "version.json")
	pinSessionFlag = []string{someKey}
	defer func() { pinSessionFlag = nil }()

	kpis := report.Compute(s, assignment)
	require.NoError(t, saveVersion(assignment, kpis, path))

	placement := assignment[someKey]
	room, err := s.GetRoom(placement.RoomID)
	require.NoError(t, err)
	room.Availability = map[store.Cell]bool{}

	pinsFromFlag = path
	defer func() { pinsFromFlag = "" }()

	pins, err := carriedPins(s, zap.NewNop())
	require.NoError(t, err)
	require.Empty(t, pins)
}
