package exporter_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campusgraph/timetable/internal/exporter"
	"github.com/campusgraph/timetable/internal/solver"
	"github.com/campusgraph/timetable/internal/store"
)

func TestWriteProducesTheTwoKeyDocument(t *testing.T) {
	s := store.New()
	s.AddTimeslot(store.Timeslot{SlotID: "MON_0", Day: "MON", Index: 0, StartMin: 540, EndMin: 595})
	assignment := solver.Assignment{
		"S_C1_G1_0": {CourseID: "C1", RoomID: "R1", SlotID: "MON_0", FacultyID: "F1"},
	}

	var buf bytes.Buffer
	require.NoError(t, exporter.Write(&buf, s, assignment))

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Contains(t, doc, "assignments")
	require.Contains(t, doc, "timeslots")

	var assignments map[string][]string
	require.NoError(t, json.Unmarshal(doc["assignments"], &assignments))
	require.Equal(t, []string{"C1", "R1", "MON_0"}, assignments["S_C1_G1_0"])

	var timeslots map[string]struct {
		Day      string `json:"day"`
		Index    int    `json:"index"`
		StartMin int    `json:"start_min"`
		EndMin   int    `json:"end_min"`
	}
	require.NoError(t, json.Unmarshal(doc["timeslots"], &timeslots))
	require.Equal(t, 540, timeslots["MON_0"].StartMin)
}
