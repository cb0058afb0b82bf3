package store

import "sort"

// Label identifies an entity kind, mirroring the (label, id) node keys of
// SPEC_FULL.md §4.A. Edges index into typed arenas by (Label, ID) pairs
// rather than carrying raw attribute bags.
type Label string

const (
	LabelDepartment   Label = "Department"
	LabelProgram      Label = "Program"
	LabelYear         Label = "Year"
	LabelSection      Label = "Section"
	LabelCourse       Label = "Course"
	LabelFaculty      Label = "Faculty"
	LabelRoom         Label = "Room"
	LabelCohort       Label = "Cohort"
	LabelTimeslot     Label = "Timeslot"
	LabelPolicy       Label = "Policy"
	LabelFacilityType Label = "FacilityType"
)

// Relation names, per SPEC_FULL.md §3 "Relations".
const (
	RelOffers    = "OFFERS"
	RelCanTeach  = "CAN_TEACH"
	RelTakes     = "TAKES"
	RelElects    = "ELECTS"
	RelRequires  = "REQUIRES"
	RelIsType    = "IS_TYPE"
)

// NodeRef addresses one node in the entity graph.
type NodeRef struct {
	Label Label
	ID    string
}

// Edge is one labeled, attributed relation between two nodes.
type Edge struct {
	From  NodeRef
	Rel   string
	To    NodeRef
	Attrs map[string]any
}

// Direction selects which side of an edge to traverse from.
type Direction int

const (
	Out Direction = iota
	In
)

// Store is the attributed directed multigraph described in SPEC_FULL.md
// §4.A: typed per-label arenas plus an adjacency index of edges over
// (label, id) pairs. It is built during ingest, treated as frozen for the
// duration of a solve, and mutated only through the What-If layer between
// solves.
type Store struct {
	departments map[string]*Department
	deptOrder   []string

	programs    map[string]*Program
	programOrder []string

	years      map[string]*YearTerm
	yearOrder  []string

	sections    map[string]*Section
	sectionOrder []string

	courses    map[string]*Course
	courseOrder []string

	faculty     map[string]*Faculty
	facultyOrder []string

	rooms     map[string]*Room
	roomOrder []string

	cohorts    map[string]*Cohort
	cohortOrder []string

	timeslots     map[string]*Timeslot
	timeslotOrder []string

	policies    map[string]*Policy
	policyOrder []string

	outAdj map[NodeRef][]Edge
	inAdj  map[NodeRef][]Edge
}

// New returns an empty store ready for ingestion.
func New() *Store {
	return &Store{
		departments: map[string]*Department{},
		programs:    map[string]*Program{},
		years:       map[string]*YearTerm{},
		sections:    map[string]*Section{},
		courses:     map[string]*Course{},
		faculty:     map[string]*Faculty{},
		rooms:       map[string]*Room{},
		cohorts:     map[string]*Cohort{},
		timeslots:   map[string]*Timeslot{},
		policies:    map[string]*Policy{},
		outAdj:      map[NodeRef][]Edge{},
		inAdj:       map[NodeRef][]Edge{},
	}
}

// --- typed constructors (ingestion API, SPEC_FULL.md §6) ---

func (s *Store) AddDepartment(d Department) {
	if _, ok := s.departments[d.ID]; !ok {
		s.deptOrder = append(s.deptOrder, d.ID)
	}
	cp := d
	s.departments[d.ID] = &cp
}

func (s *Store) GetDepartment(id string) (*Department, error) {
	d, ok := s.departments[id]
	if !ok {
		return nil, newIngestError("get_node", string(LabelDepartment), id)
	}
	return d, nil
}

func (s *Store) AddProgram(p Program) {
	if _, ok := s.programs[p.ID]; !ok {
		s.programOrder = append(s.programOrder, p.ID)
	}
	cp := p
	s.programs[p.ID] = &cp
}

func (s *Store) AddYear(y YearTerm) {
	if _, ok := s.years[y.ID]; !ok {
		s.yearOrder = append(s.yearOrder, y.ID)
	}
	cp := y
	s.years[y.ID] = &cp
}

func (s *Store) AddSection(sec Section) {
	if _, ok := s.sections[sec.ID]; !ok {
		s.sectionOrder = append(s.sectionOrder, sec.ID)
	}
	cp := sec
	s.sections[sec.ID] = &cp
}

func (s *Store) GetSection(id string) (*Section, error) {
	sec, ok := s.sections[id]
	if !ok {
		return nil, newIngestError("get_node", string(LabelSection), id)
	}
	return sec, nil
}

// Sections returns all sections in stable insertion order.
func (s *Store) Sections() []*Section {
	out := make([]*Section, 0, len(s.sectionOrder))
	for _, id := range s.sectionOrder {
		out = append(out, s.sections[id])
	}
	return out
}

func (s *Store) AddCourse(c Course) {
	if _, ok := s.courses[c.ID]; !ok {
		s.courseOrder = append(s.courseOrder, c.ID)
	}
	cp := c
	s.courses[c.ID] = &cp
}

func (s *Store) GetCourse(id string) (*Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, newIngestError("get_node", string(LabelCourse), id)
	}
	return c, nil
}

// Courses returns all courses in stable insertion order -- required so
// session keys are reproducible across builds (SPEC_FULL.md §4.A).
func (s *Store) Courses() []*Course {
	out := make([]*Course, 0, len(s.courseOrder))
	for _, id := range s.courseOrder {
		out = append(out, s.courses[id])
	}
	return out
}

func (s *Store) AddFaculty(f Faculty) {
	if f.Availability == nil {
		f.Availability = map[Cell]bool{}
	}
	if _, ok := s.faculty[f.ID]; !ok {
		s.facultyOrder = append(s.facultyOrder, f.ID)
	}
	cp := f
	s.faculty[f.ID] = &cp
}

func (s *Store) GetFaculty(id string) (*Faculty, error) {
	f, ok := s.faculty[id]
	if !ok {
		return nil, newIngestError("get_node", string(LabelFaculty), id)
	}
	return f, nil
}

func (s *Store) Faculty() []*Faculty {
	out := make([]*Faculty, 0, len(s.facultyOrder))
	for _, id := range s.facultyOrder {
		out = append(out, s.faculty[id])
	}
	return out
}

func (s *Store) AddRoom(r Room) {
	if r.Availability == nil {
		r.Availability = map[Cell]bool{}
	}
	if _, ok := s.rooms[r.ID]; !ok {
		s.roomOrder = append(s.roomOrder, r.ID)
	}
	cp := r
	s.rooms[r.ID] = &cp
}

func (s *Store) GetRoom(id string) (*Room, error) {
	r, ok := s.rooms[id]
	if !ok {
		return nil, newIngestError("get_node", string(LabelRoom), id)
	}
	return r, nil
}

// Rooms returns all rooms sorted by id, matching the Oracle's documented
// deterministic-by-id ordering requirement.
func (s *Store) Rooms() []*Room {
	ids := make([]string, 0, len(s.rooms))
	for id := range s.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*Room, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.rooms[id])
	}
	return out
}

func (s *Store) AddCohort(c Cohort) {
	if _, ok := s.cohorts[c.ID]; !ok {
		s.cohortOrder = append(s.cohortOrder, c.ID)
	}
	cp := c
	s.cohorts[c.ID] = &cp
}

func (s *Store) GetCohort(id string) (*Cohort, error) {
	c, ok := s.cohorts[id]
	if !ok {
		return nil, newIngestError("get_node", string(LabelCohort), id)
	}
	return c, nil
}

func (s *Store) RemoveCohort(id string) {
	if _, ok := s.cohorts[id]; !ok {
		return
	}
	delete(s.cohorts, id)
	s.cohortOrder = removeString(s.cohortOrder, id)
}

func (s *Store) AddTimeslot(t Timeslot) {
	if _, ok := s.timeslots[t.SlotID]; !ok {
		s.timeslotOrder = append(s.timeslotOrder, t.SlotID)
	}
	cp := t
	s.timeslots[t.SlotID] = &cp
}

func (s *Store) GetTimeslot(id string) (*Timeslot, error) {
	t, ok := s.timeslots[id]
	if !ok {
		return nil, newIngestError("get_node", string(LabelTimeslot), id)
	}
	return t, nil
}

// Timeslots returns all timeslots in stable insertion order.
func (s *Store) Timeslots() []*Timeslot {
	out := make([]*Timeslot, 0, len(s.timeslotOrder))
	for _, id := range s.timeslotOrder {
		out = append(out, s.timeslots[id])
	}
	return out
}

func (s *Store) AddPolicy(p Policy) {
	if _, ok := s.policies[p.ID]; !ok {
		s.policyOrder = append(s.policyOrder, p.ID)
	}
	cp := p
	s.policies[p.ID] = &cp
}

// --- edge (relation) helpers ---

func (s *Store) link(from NodeRef, rel string, to NodeRef, attrs map[string]any) {
	e := Edge{From: from, Rel: rel, To: to, Attrs: attrs}
	s.outAdj[from] = append(s.outAdj[from], e)
	s.inAdj[to] = append(s.inAdj[to], e)
}

// DeptOffersCourse links Department -OFFERS-> Course.
func (s *Store) DeptOffersCourse(deptID, courseID string) error {
	if _, err := s.GetDepartment(deptID); err != nil {
		return err
	}
	if _, err := s.GetCourse(courseID); err != nil {
		return err
	}
	s.link(NodeRef{LabelDepartment, deptID}, RelOffers, NodeRef{LabelCourse, courseID}, nil)
	return nil
}

// FacultyCanTeach links Faculty -CAN_TEACH-> Course with proficiency and
// an optional last-taught term marker.
func (s *Store) FacultyCanTeach(facultyID, courseID string, proficiency int, lastTaught *int) error {
	if _, err := s.GetFaculty(facultyID); err != nil {
		return err
	}
	if _, err := s.GetCourse(courseID); err != nil {
		return err
	}
	attrs := map[string]any{"proficiency": proficiency}
	if lastTaught != nil {
		attrs["last_taught"] = *lastTaught
	}
	s.link(NodeRef{LabelFaculty, facultyID}, RelCanTeach, NodeRef{LabelCourse, courseID}, attrs)
	return nil
}

// SectionTakesCourse links Section -TAKES-> Course.
func (s *Store) SectionTakesCourse(sectionID, courseID string) error {
	if _, err := s.GetSection(sectionID); err != nil {
		return err
	}
	if _, err := s.GetCourse(courseID); err != nil {
		return err
	}
	s.link(NodeRef{LabelSection, sectionID}, RelTakes, NodeRef{LabelCourse, courseID}, nil)
	return nil
}

// CohortElectsCourse links Cohort -ELECTS-> Course.
func (s *Store) CohortElectsCourse(cohortID, courseID string) error {
	if _, err := s.GetCohort(cohortID); err != nil {
		return err
	}
	if _, err := s.GetCourse(courseID); err != nil {
		return err
	}
	s.link(NodeRef{LabelCohort, cohortID}, RelElects, NodeRef{LabelCourse, courseID}, nil)
	return nil
}

// RemoveCohortElectsCourse drops a previously-added ELECTS edge, used by
// the What-If layer's course/enrollment relinking operations.
func (s *Store) RemoveCohortElectsCourse(cohortID, courseID string) {
	from := NodeRef{LabelCohort, cohortID}
	to := NodeRef{LabelCourse, courseID}
	s.outAdj[from] = filterEdges(s.outAdj[from], to, RelElects)
	s.inAdj[to] = filterEdges(s.inAdj[to], from, RelElects)
}

// CourseRequiresCourse links Course -REQUIRES-> Course (prerequisite).
func (s *Store) CourseRequiresCourse(courseID, prereqID string) error {
	if _, err := s.GetCourse(courseID); err != nil {
		return err
	}
	if _, err := s.GetCourse(prereqID); err != nil {
		return err
	}
	s.link(NodeRef{LabelCourse, courseID}, RelRequires, NodeRef{LabelCourse, prereqID}, nil)
	return nil
}

// RoomIsType links Room -IS_TYPE-> FacilityType.
func (s *Store) RoomIsType(roomID, facilityType string) error {
	if _, err := s.GetRoom(roomID); err != nil {
		return err
	}
	s.link(NodeRef{LabelRoom, roomID}, RelIsType, NodeRef{LabelFacilityType, facilityType}, nil)
	return nil
}

// Neighbors yields the (other, relation, attrs) triples reachable from
// (label, id) in the given direction, optionally filtered to one relation.
func (s *Store) Neighbors(label Label, id string, rel string, dir Direction) []Edge {
	n := NodeRef{Label: label, ID: id}
	var edges []Edge
	if dir == Out {
		edges = s.outAdj[n]
	} else {
		edges = s.inAdj[n]
	}
	if rel == "" {
		return edges
	}
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.Rel == rel {
			out = append(out, e)
		}
	}
	return out
}

func filterEdges(edges []Edge, other NodeRef, rel string) []Edge {
	out := edges[:0:0]
	for _, e := range edges {
		if e.Rel == rel && (e.To == other || e.From == other) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func removeString(ss []string, target string) []string {
	out := ss[:0:0]
	for _, s := range ss {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}
