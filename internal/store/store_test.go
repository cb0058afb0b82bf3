package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campusgraph/timetable/internal/store"
)

func TestGetNodeUnknownIsIngestError(t *testing.T) {
	s := store.New()
	_, err := s.GetCourse("nope")
	require.Error(t, err)
	var ingestErr *store.IngestError
	require.ErrorAs(t, err, &ingestErr)
	require.Equal(t, "nope", ingestErr.ID)
}

func TestLinkRejectsUnknownEndpoints(t *testing.T) {
	s := store.New()
	s.AddFaculty(store.Faculty{ID: "F1"})
	err := s.FacultyCanTeach("F1", "MISSING-COURSE", 1, nil)
	require.Error(t, err)
}

func TestStableIterationOrder(t *testing.T) {
	s := store.New()
	s.AddCourse(store.Course{ID: "C2"})
	s.AddCourse(store.Course{ID: "C1"})
	s.AddCourse(store.Course{ID: "C3"})

	got := make([]string, 0, 3)
	for _, c := range s.Courses() {
		got = append(got, c.ID)
	}
	require.Equal(t, []string{"C2", "C1", "C3"}, got)
}

func TestRoomsSortedByID(t *testing.T) {
	s := store.New()
	s.AddRoom(store.Room{ID: "R2"})
	s.AddRoom(store.Room{ID: "R1"})

	got := make([]string, 0, 2)
	for _, r := range s.Rooms() {
		got = append(got, r.ID)
	}
	require.Equal(t, []string{"R1", "R2"}, got)
}

func TestNeighborsDirectional(t *testing.T) {
	s := store.New()
	s.AddFaculty(store.Faculty{ID: "F1"})
	s.AddCourse(store.Course{ID: "C1"})
	require.NoError(t, s.FacultyCanTeach("F1", "C1", 3, nil))

	out := s.Neighbors(store.LabelFaculty, "F1", store.RelCanTeach, store.Out)
	require.Len(t, out, 1)
	require.Equal(t, "C1", out[0].To.ID)

	in := s.Neighbors(store.LabelCourse, "C1", store.RelCanTeach, store.In)
	require.Len(t, in, 1)
	require.Equal(t, "F1", in[0].From.ID)
}
