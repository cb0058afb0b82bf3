package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campusgraph/timetable/internal/model"
	"github.com/campusgraph/timetable/internal/store"
)

func toyStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	allDay := map[store.Cell]bool{}
	for _, d := range []string{"MON", "TUE", "WED", "THU", "FRI"} {
		for i := 0; i < 6; i++ {
			allDay[store.Cell{Day: d, Index: i}] = true
		}
	}
	s.AddTimeslot(store.Timeslot{SlotID: "MON_2", Day: "MON", Index: 2})
	s.AddTimeslot(store.Timeslot{SlotID: "MON_0", Day: "MON", Index: 0})

	s.AddCourse(store.Course{ID: "C1", HoursTheory: 1, FacilityNeeds: map[string]bool{"smart_class": true}})
	s.AddRoom(store.Room{ID: "R1", RoomType: store.RoomSmart, Capacity: 100, Availability: allDay})
	s.AddFaculty(store.Faculty{ID: "F1", Availability: allDay})
	require.NoError(t, s.FacultyCanTeach("F1", "C1", 1, nil))
	s.AddSection(store.Section{ID: "SEC-A", Capacity: 50})
	require.NoError(t, s.SectionTakesCourse("SEC-A", "C1"))
	return s
}

func TestBuildProducesModel(t *testing.T) {
	s := toyStore(t)
	m, warnings, err := model.Build(s, nil, model.DefaultBuildConfig())
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, m.Sessions, 1)
	require.Contains(t, m.SessionByKey, "S_C1_SEC-A_0")
}

func TestBuildRejectsPinToInfeasibleRoom(t *testing.T) {
	s := toyStore(t)
	pins := []model.Pin{{SessionKey: "S_C1_SEC-A_0", RoomID: "DOES-NOT-EXIST", SlotID: "MON_2"}}
	_, _, err := model.Build(s, pins, model.DefaultBuildConfig())
	require.Error(t, err)
	var pinErr *model.PinInfeasible
	require.ErrorAs(t, err, &pinErr)
}

func TestBuildRejectsPinWhenRoomUnavailableAtSlot(t *testing.T) {
	s := toyStore(t)
	room, err := s.GetRoom("R1")
	require.NoError(t, err)
	delete(room.Availability, store.Cell{Day: "MON", Index: 2})

	pins := []model.Pin{{SessionKey: "S_C1_SEC-A_0", RoomID: "R1", SlotID: "MON_2"}}
	_, _, err = model.Build(s, pins, model.DefaultBuildConfig())
	require.Error(t, err)
}

func TestObjectivePrefersCompactWindow(t *testing.T) {
	s := toyStore(t)
	m, _, err := model.Build(s, nil, model.DefaultBuildConfig())
	require.NoError(t, err)

	sess := m.SessionByKey["S_C1_SEC-A_0"]
	inWindow := m.SlotByID["MON_2"]
	outWindow := m.SlotByID["MON_0"]

	require.Greater(t, m.Score(sess, inWindow), m.Score(sess, outWindow))
}
