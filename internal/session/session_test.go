package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campusgraph/timetable/internal/oracle"
	"github.com/campusgraph/timetable/internal/session"
	"github.com/campusgraph/timetable/internal/store"
)

func toyStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	s.AddCourse(store.Course{
		ID: "CORE-MATH-101", HoursTheory: 4, HoursLab: 0, DurationMin: 55,
		FacilityNeeds: map[string]bool{"smart_class": true},
	})
	s.AddRoom(store.Room{ID: "R101", RoomType: store.RoomSmart, Capacity: 80})
	s.AddRoom(store.Room{ID: "R204", RoomType: store.RoomSmart, Capacity: 120})
	s.AddRoom(store.Room{ID: "LAB1", RoomType: store.RoomLab, Capacity: 40})
	s.AddFaculty(store.Faculty{ID: "F-CS-1"})
	require.NoError(t, s.FacultyCanTeach("F-CS-1", "CORE-MATH-101", 3, nil))
	s.AddSection(store.Section{ID: "SEC-A", Capacity: 60})
	s.AddSection(store.Section{ID: "SEC-B", Capacity: 60})
	require.NoError(t, s.SectionTakesCourse("SEC-A", "CORE-MATH-101"))
	require.NoError(t, s.SectionTakesCourse("SEC-B", "CORE-MATH-101"))
	return s
}

func TestExpandEmitsOneFamilyPerGroup(t *testing.T) {
	s := toyStore(t)
	o := oracle.New(s)
	sessions, warnings := session.Expand(s, o)
	require.Empty(t, warnings)
	require.Len(t, sessions, 8) // 2 sections * 4 hours

	keys := map[string]bool{}
	for _, sess := range sessions {
		keys[sess.Key] = true
		require.Equal(t, 60, sess.Size)
		require.NotContains(t, roomIDs(sess.FeasibleRooms), "LAB1")
	}
	require.Len(t, keys, 8, "session keys must be unique")
}

func TestExpandDropsCourseWithNoFaculty(t *testing.T) {
	s := store.New()
	s.AddCourse(store.Course{ID: "ORPHAN", HoursTheory: 2})
	o := oracle.New(s)
	sessions, warnings := session.Expand(s, o)
	require.Empty(t, sessions)
	require.Len(t, warnings, 1)
	require.Equal(t, "ORPHAN", warnings[0].CourseID)
}

func TestExpandDropsGroupWithNoRoom(t *testing.T) {
	s := store.New()
	s.AddCourse(store.Course{ID: "C1", HoursTheory: 2, FacilityNeeds: map[string]bool{"lab": true}})
	s.AddFaculty(store.Faculty{ID: "F1"})
	require.NoError(t, s.FacultyCanTeach("F1", "C1", 1, nil))
	s.AddSection(store.Section{ID: "SEC-A", Capacity: 200})
	require.NoError(t, s.SectionTakesCourse("SEC-A", "C1"))
	s.AddRoom(store.Room{ID: "LAB1", RoomType: store.RoomLab, Capacity: 10})

	o := oracle.New(s)
	sessions, warnings := session.Expand(s, o)
	require.Empty(t, sessions)
	require.Len(t, warnings, 1)
	require.Equal(t, "SEC-A", warnings[0].GroupID)
}

func TestExpandIsDeterministic(t *testing.T) {
	s := toyStore(t)
	o := oracle.New(s)
	a, _ := session.Expand(s, o)
	b, _ := session.Expand(s, o)
	require.Equal(t, a, b)
}

func roomIDs(rooms []*store.Room) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.ID)
	}
	return out
}
