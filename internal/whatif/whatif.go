// Package whatif implements the bounded entity-store mutations described
// in SPEC_FULL.md §4.F: faculty leave, room outage, and course/enrollment
// changes, plus the pin-validation dry run a caller must run before
// invoking a partial re-solve.
package whatif

import (
	"fmt"

	"github.com/campusgraph/timetable/internal/model"
	"github.com/campusgraph/timetable/internal/store"
)

// ApplyFacultyLeave removes every grid cell in [fromIdx, toIdx] on day from
// the faculty member's availability.
func ApplyFacultyLeave(s *store.Store, facultyID, day string, fromIdx, toIdx int) error {
	f, err := s.GetFaculty(facultyID)
	if err != nil {
		return err
	}
	for i := fromIdx; i <= toIdx; i++ {
		delete(f.Availability, store.Cell{Day: day, Index: i})
	}
	return nil
}

// ApplyRoomOutage removes every grid cell in [fromIdx, toIdx] on day from
// the room's availability.
func ApplyRoomOutage(s *store.Store, roomID, day string, fromIdx, toIdx int) error {
	r, err := s.GetRoom(roomID)
	if err != nil {
		return err
	}
	for i := fromIdx; i <= toIdx; i++ {
		delete(r.Availability, store.Cell{Day: day, Index: i})
	}
	return nil
}

// AddCourseOffering links dept -OFFERS-> course, the typed-constructor
// analogue of the reference's ad-hoc course-addition what-if.
func AddCourseOffering(s *store.Store, deptID, courseID string) error {
	return s.DeptOffersCourse(deptID, courseID)
}

// RemoveCourseOffering drops a cohort's ELECTS edge to a course, the
// narrowest reversible analogue of "course removal" against the graph's
// available edge-removal primitives.
func RemoveCourseOffering(s *store.Store, cohortID, courseID string) {
	s.RemoveCohortElectsCourse(cohortID, courseID)
}

// RelinkEnrollment moves a cohort's elective demand from one course to
// another: removes the old ELECTS edge and adds the new one.
func RelinkEnrollment(s *store.Store, cohortID, fromCourseID, toCourseID string) error {
	s.RemoveCohortElectsCourse(cohortID, fromCourseID)
	return s.CohortElectsCourse(cohortID, toCourseID)
}

// ValidatePins performs the dry-run pre-check SPEC_FULL.md §4.F/§7
// requires before a partial re-solve: every pin must still resolve to a
// feasible session, room, and slot in the (possibly just-mutated) store.
// It reports every PinInfeasible found rather than stopping at the first,
// since a caller typically wants to drop all broken pins in one pass.
func ValidatePins(s *store.Store, pins []model.Pin) []*model.PinInfeasible {
	if len(pins) == 0 {
		return nil
	}
	var bad []*model.PinInfeasible
	for _, p := range pins {
		single := []model.Pin{p}
		if _, _, err := model.Build(s, single, model.DefaultBuildConfig()); err != nil {
			var pinErr *model.PinInfeasible
			if asPinInfeasible(err, &pinErr) {
				bad = append(bad, pinErr)
			} else {
				bad = append(bad, &model.PinInfeasible{SessionKey: p.SessionKey, Reason: fmt.Sprintf("build error: %v", err)})
			}
		}
	}
	return bad
}

func asPinInfeasible(err error, target **model.PinInfeasible) bool {
	pe, ok := err.(*model.PinInfeasible)
	if !ok {
		return false
	}
	*target = pe
	return true
}

// DropInfeasible filters pins down to the ones ValidatePins did not flag,
// the "caller decides to drop the pin and retry" behavior SPEC_FULL.md §7
// describes.
func DropInfeasible(pins []model.Pin, bad []*model.PinInfeasible) []model.Pin {
	if len(bad) == 0 {
		return pins
	}
	badKeys := make(map[string]bool, len(bad))
	for _, b := range bad {
		badKeys[b.SessionKey] = true
	}
	out := make([]model.Pin, 0, len(pins))
	for _, p := range pins {
		if !badKeys[p.SessionKey] {
			out = append(out, p)
		}
	}
	return out
}

// PinsFromVersion derives the pin set a caller would normally carry into
// the next build from a prior TimetableVersion's retained assignments and
// pins set.
func PinsFromVersion(v *store.TimetableVersion) []model.Pin {
	pins := make([]model.Pin, 0, len(v.Pins))
	for key := range v.Pins {
		placement, ok := v.Assignments[key]
		if !ok {
			continue
		}
		pins = append(pins, model.Pin{
			SessionKey: key,
			RoomID:     placement.RoomID,
			SlotID:     placement.SlotID,
			FacultyID:  placement.FacultyID,
		})
	}
	return pins
}
