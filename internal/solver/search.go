package solver

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/campusgraph/timetable/internal/model"
	"github.com/campusgraph/timetable/internal/session"
	"github.com/campusgraph/timetable/internal/store"
)

// impossible is the badness contribution of one hard-constraint violation,
// grounded on the teacher's own Impossible sentinel in score.go.
const impossible = 1_000_000

// candidate is one legal (room, slot, faculty) placement for a session:
// room available at slot, and at least one candidate faculty available at
// slot (faculty is fixed to one specific id here, the explicit z[s,f]
// selection per SPEC_FULL.md §4.D).
type candidate struct {
	Room    *store.Room
	Slot    *store.Timeslot
	Faculty *store.Faculty
}

// domainOf enumerates every legal placement for a session, sorted for
// deterministic iteration: by room id, then slot id, then faculty id.
func domainOf(sess *session.Session, slots []*store.Timeslot) []candidate {
	var out []candidate
	for _, room := range sess.FeasibleRooms {
		for _, slot := range slots {
			cell := slot.Cell()
			if !room.IsAvailable(cell) {
				continue
			}
			for _, fac := range sess.CandidateFaculty {
				if fac.IsAvailable(cell) {
					out = append(out, candidate{Room: room, Slot: slot, Faculty: fac})
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Room.ID != out[j].Room.ID {
			return out[i].Room.ID < out[j].Room.ID
		}
		if out[i].Slot.SlotID != out[j].Slot.SlotID {
			return out[i].Slot.SlotID < out[j].Slot.SlotID
		}
		return out[i].Faculty.ID < out[j].Faculty.ID
	})
	return out
}

type cellKey struct {
	resource string
	day      string
	index    int
}

// placement is the search state's current choice for one session.
type placement struct {
	Room    *store.Room
	Slot    *store.Timeslot
	Faculty *store.Faculty
}

// state is one candidate solution under construction, grounded on the
// teacher's SearchState: incremental badness bookkeeping so a single move
// can be scored without re-scanning the whole schedule.
type state struct {
	m       *model.Model
	domains map[string][]candidate

	placed map[string]placement
	pinned map[string]bool

	// roomSlot/facultySlot/groupSlot hold every session key currently
	// occupying a cell, not just the last one placed there -- a cell can
	// transiently hold 3+ occupants during local search, and badness must
	// track the true excess (occupants-1) regardless of unplace order.
	roomSlot    map[cellKey]map[string]bool // resource=room id -> occupant session keys
	facultySlot map[cellKey]map[string]bool
	groupSlot   map[cellKey]map[string]bool

	conflicts int
	objective float64
}

func newState(m *model.Model, domains map[string][]candidate) *state {
	return &state{
		m:           m,
		domains:     domains,
		placed:      map[string]placement{},
		pinned:      map[string]bool{},
		roomSlot:    map[cellKey]map[string]bool{},
		facultySlot: map[cellKey]map[string]bool{},
		groupSlot:   map[cellKey]map[string]bool{},
	}
}

func cloneOccupants(src map[cellKey]map[string]bool) map[cellKey]map[string]bool {
	cp := make(map[cellKey]map[string]bool, len(src))
	for k, occupants := range src {
		set := make(map[string]bool, len(occupants))
		for sessKey := range occupants {
			set[sessKey] = true
		}
		cp[k] = set
	}
	return cp
}

func (st *state) clone() *state {
	cp := newState(st.m, st.domains)
	for k, v := range st.placed {
		cp.placed[k] = v
	}
	for k := range st.pinned {
		cp.pinned[k] = true
	}
	cp.roomSlot = cloneOccupants(st.roomSlot)
	cp.facultySlot = cloneOccupants(st.facultySlot)
	cp.groupSlot = cloneOccupants(st.groupSlot)
	cp.conflicts = st.conflicts
	cp.objective = st.objective
	return cp
}

func (st *state) badness() float64 {
	return float64(st.conflicts)*impossible - st.objective
}

// place assigns sess to c, updating exclusion bookkeeping and badness.
// unplace must be called first if sess already has a placement.
func (st *state) place(sess *session.Session, c candidate) {
	cell := c.Slot.Cell()
	rk := cellKey{"room:" + c.Room.ID, cell.Day, cell.Index}
	fk := cellKey{"fac:" + c.Faculty.ID, cell.Day, cell.Index}
	gk := cellKey{fmt.Sprintf("grp:%s:%s", sess.GroupKind, sess.GroupID), cell.Day, cell.Index}

	if len(st.roomSlot[rk]) > 0 {
		st.conflicts++
	}
	if len(st.facultySlot[fk]) > 0 {
		st.conflicts++
	}
	if len(st.groupSlot[gk]) > 0 {
		st.conflicts++
	}

	occupy(st.roomSlot, rk, sess.Key)
	occupy(st.facultySlot, fk, sess.Key)
	occupy(st.groupSlot, gk, sess.Key)
	st.placed[sess.Key] = placement{Room: c.Room, Slot: c.Slot, Faculty: c.Faculty}
	st.objective += st.m.Score(sess, c.Slot)
}

// occupy adds sessKey to the occupant set for k, creating the set if this
// is the cell's first occupant.
func occupy(occupants map[cellKey]map[string]bool, k cellKey, sessKey string) {
	set := occupants[k]
	if set == nil {
		set = map[string]bool{}
		occupants[k] = set
	}
	set[sessKey] = true
}

// vacate removes sessKey from the occupant set for k. It reports whether a
// conflict was resolved by the removal: true iff at least one other
// occupant remains in that cell after sessKey leaves, since badness counts
// a cell's excess occupancy (occupants-1), not a single "owner".
func vacate(occupants map[cellKey]map[string]bool, k cellKey, sessKey string) (resolvedConflict bool) {
	set, ok := occupants[k]
	if !ok {
		return false
	}
	resolvedConflict = len(set) >= 2
	delete(set, sessKey)
	if len(set) == 0 {
		delete(occupants, k)
	}
	return resolvedConflict
}

func (st *state) unplace(sess *session.Session) {
	p, ok := st.placed[sess.Key]
	if !ok {
		return
	}
	cell := p.Slot.Cell()
	rk := cellKey{"room:" + p.Room.ID, cell.Day, cell.Index}
	fk := cellKey{"fac:" + p.Faculty.ID, cell.Day, cell.Index}
	gk := cellKey{fmt.Sprintf("grp:%s:%s", sess.GroupKind, sess.GroupID), cell.Day, cell.Index}

	if vacate(st.roomSlot, rk, sess.Key) {
		st.conflicts--
	}
	if vacate(st.facultySlot, fk, sess.Key) {
		st.conflicts--
	}
	if vacate(st.groupSlot, gk, sess.Key) {
		st.conflicts--
	}

	st.objective -= st.m.Score(sess, p.Slot)
	delete(st.placed, sess.Key)
}

// bestCandidate returns the domain entry minimizing resulting badness
// (conflicts first, then objective, as badness combines both), breaking
// ties by deterministic domain order. It
// evaluates by temporarily placing each candidate and rolling back.
func (st *state) bestCandidate(sess *session.Session, r *rand.Rand) (candidate, bool) {
	domain := st.domains[sess.Key]
	if len(domain) == 0 {
		return candidate{}, false
	}

	// Sample a bounded window of the domain for large problems so a single
	// reassignment stays cheap; small toy problems see the whole domain.
	const sampleCap = 64
	idxs := make([]int, len(domain))
	for i := range idxs {
		idxs[i] = i
	}
	if len(idxs) > sampleCap {
		r.Shuffle(len(idxs), func(i, j int) { idxs[i], idxs[j] = idxs[j], idxs[i] })
		idxs = idxs[:sampleCap]
		sort.Ints(idxs)
	}

	bestIdx := -1
	var bestBadness float64
	for _, i := range idxs {
		c := domain[i]
		st.place(sess, c)
		b := st.badness()
		st.unplace(sess)
		if bestIdx == -1 || b < bestBadness {
			bestBadness = b
			bestIdx = i
		}
	}
	return domain[bestIdx], true
}
