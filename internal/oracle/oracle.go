// Package oracle answers the feasibility questions the Model Builder needs
// by traversing the entity store: which rooms can host a course for a
// given demand, which faculty may teach a course, and which (cohort,
// course) or (section, course) pairs exist. See SPEC_FULL.md §4.B.
package oracle

import (
	"sort"

	"github.com/campusgraph/timetable/internal/store"
)

// Warning is a non-fatal UnschedulableWarning (SPEC_FULL.md §7): a
// course/group pair whose feasible-room or candidate-faculty set came up
// empty. The caller drops the affected sessions and continues.
type Warning struct {
	CourseID string
	GroupID  string
	Reason   string
}

// Oracle wraps a read-only view of a Store for feasibility queries.
type Oracle struct {
	s *store.Store
}

func New(s *store.Store) *Oracle { return &Oracle{s: s} }

// RoomsFor returns every room able to host course for the given demand
// size, sorted by id for determinism. A course requiring "lab" matches
// only room_type=lab; one requiring "smart_class" matches smart or lab.
func (o *Oracle) RoomsFor(course *store.Course, demand int) []*store.Room {
	needsLab := course.FacilityNeeds["lab"]
	needsSmart := course.FacilityNeeds["smart_class"]

	var out []*store.Room
	for _, r := range o.s.Rooms() { // already sorted by id
		if r.Capacity < demand {
			continue
		}
		if needsLab && r.RoomType != store.RoomLab {
			continue
		}
		if needsSmart && r.RoomType != store.RoomSmart && r.RoomType != store.RoomLab {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FacultyFor returns every faculty member who CAN_TEACH the course, sorted
// by id for determinism.
func (o *Oracle) FacultyFor(courseID string) []*store.Faculty {
	edges := o.s.Neighbors(store.LabelCourse, courseID, store.RelCanTeach, store.In)
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		if e.From.Label == store.LabelFaculty {
			ids = append(ids, e.From.ID)
		}
	}
	sort.Strings(ids)
	out := make([]*store.Faculty, 0, len(ids))
	for _, id := range ids {
		f, err := o.s.GetFaculty(id)
		if err == nil {
			out = append(out, f)
		}
	}
	return out
}

// Group is a tagged variant over a scheduling-unit: either a Section
// (CORE enrollment) or a Cohort (elective demand). Representing it as a
// total, unambiguous sum type resolves the §9 "Cohort vs. Section as
// group" redesign flag.
type Group struct {
	Kind     GroupKind
	ID       string
	Demand   int
}

type GroupKind string

const (
	GroupSection GroupKind = "Section"
	GroupCohort  GroupKind = "Cohort"
)

// GroupsFor returns every (section, capacity) pair that TAKES the course
// and every (cohort, size) pair that ELECTS it, sorted by group id.
func (o *Oracle) GroupsFor(courseID string) []Group {
	edges := o.s.Neighbors(store.LabelCourse, courseID, "", store.In)
	var groups []Group
	for _, e := range edges {
		switch {
		case e.From.Label == store.LabelSection && e.Rel == store.RelTakes:
			sec, err := o.s.GetSection(e.From.ID)
			if err != nil {
				continue
			}
			groups = append(groups, Group{Kind: GroupSection, ID: sec.ID, Demand: sec.Capacity})
		case e.From.Label == store.LabelCohort && e.Rel == store.RelElects:
			coh, err := o.s.GetCohort(e.From.ID)
			if err != nil {
				continue
			}
			groups = append(groups, Group{Kind: GroupCohort, ID: coh.ID, Demand: coh.Size})
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups
}
