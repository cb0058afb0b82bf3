package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campusgraph/timetable/internal/store"
)

func TestBuildGridProducesOneSlotPerCell(t *testing.T) {
	s := store.New()
	store.BuildGrid(s, []string{"MON", "TUE"}, 3, 540, 55)

	slots := s.Timeslots()
	require.Len(t, slots, 6)

	first, err := s.GetTimeslot("MON_0")
	require.NoError(t, err)
	require.Equal(t, 540, first.StartMin)
	require.Equal(t, 595, first.EndMin)

	second, err := s.GetTimeslot("MON_1")
	require.NoError(t, err)
	require.Equal(t, 595, second.StartMin)
}

func TestFullAvailabilityCoversEveryCell(t *testing.T) {
	avail := store.FullAvailability([]string{"MON", "TUE"}, 3)
	require.Len(t, avail, 6)
	require.True(t, avail[store.Cell{Day: "TUE", Index: 2}])
}
