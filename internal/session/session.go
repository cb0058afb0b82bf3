// Package session expands each course's weekly teaching load into the
// concrete, interchangeable teaching instances the Model Builder assigns
// rooms and slots to. See SPEC_FULL.md §4.C.
package session

import (
	"fmt"

	"github.com/campusgraph/timetable/internal/oracle"
	"github.com/campusgraph/timetable/internal/store"
)

// Session is one weekly teaching instance of a course for a specific
// group (section or cohort). Sessions within the same (course, group)
// family are interchangeable -- the solver may place any of them in any
// of the family's legal slots.
type Session struct {
	Key              string
	CourseID         string
	GroupKind        oracle.GroupKind
	GroupID          string
	Size             int
	CandidateFaculty []*store.Faculty
	FeasibleRooms    []*store.Room
	DurationBlocks   int
	Index            int // k within the (course, group) family
}

// Expand walks every course in the store's stable iteration order and, for
// every (group, demand) pair with non-empty feasible rooms and candidate
// faculty, emits TotalHours sessions. Courses or groups with no feasible
// room or no candidate faculty are dropped and reported as warnings
// instead of failing the build (SPEC_FULL.md §7 UnschedulableWarning).
func Expand(s *store.Store, o *oracle.Oracle) ([]Session, []oracle.Warning) {
	var sessions []Session
	var warnings []oracle.Warning

	for _, c := range s.Courses() {
		total := c.TotalHours()
		if total <= 0 {
			continue
		}

		faculty := o.FacultyFor(c.ID)
		if len(faculty) == 0 {
			warnings = append(warnings, oracle.Warning{
				CourseID: c.ID,
				Reason:   "no faculty mapped via CAN_TEACH",
			})
			continue
		}

		blocks := durationBlocks(c.DurationMin)

		for _, g := range o.GroupsFor(c.ID) {
			rooms := o.RoomsFor(c, g.Demand)
			if len(rooms) == 0 {
				warnings = append(warnings, oracle.Warning{
					CourseID: c.ID,
					GroupID:  g.ID,
					Reason:   "no room with sufficient capacity/type",
				})
				continue
			}

			for k := 0; k < total; k++ {
				sessions = append(sessions, Session{
					Key:              fmt.Sprintf("S_%s_%s_%d", c.ID, g.ID, k),
					CourseID:         c.ID,
					GroupKind:        g.Kind,
					GroupID:          g.ID,
					Size:             g.Demand,
					CandidateFaculty: faculty,
					FeasibleRooms:    rooms,
					DurationBlocks:   blocks,
					Index:            k,
				})
			}
		}
	}

	return sessions, warnings
}

// durationBlocks computes ceil(duration_min / grid_step). The base grid
// step equals one session's nominal duration in every toy/reference
// configuration, so this is always 1 today; it is tracked on every
// Session so a future finer-grained grid can consume it without a schema
// change (SPEC_FULL.md §9 Open Question (b)).
func durationBlocks(durationMin int) int {
	const gridStep = 55 // minutes; matches the reference's 55-minute period
	if durationMin <= 0 {
		return 1
	}
	blocks := durationMin / gridStep
	if durationMin%gridStep != 0 {
		blocks++
	}
	if blocks < 1 {
		blocks = 1
	}
	return blocks
}
