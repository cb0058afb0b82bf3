// Package solver is the Solver Driver (SPEC_FULL.md §4.E): it searches a
// built model for an assignment respecting every hard constraint while
// maximizing the objective, within a time budget and worker count, and
// reports one of the four CP-style statuses.
package solver

import (
	"context"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/campusgraph/timetable/internal/model"
	"github.com/campusgraph/timetable/internal/store"
)

// stepsPerSecond translates a wall-clock time budget into a fixed step
// count so that identical (model, options) reproduce a bit-identical
// assignment regardless of host speed -- real wall-clock polling would
// make the "same seed and budget -> same result" guarantee in
// SPEC_FULL.md §5/§8 depend on scheduling jitter. ctx cancellation is
// still honored for early exit; it is the only source of non-determinism.
const stepsPerSecond = 4000

// Solve runs the search described in SPEC_FULL.md §4.E/§9 over m and
// returns the chosen status and, for OPTIMAL/FEASIBLE, the assignment.
func Solve(ctx context.Context, m *model.Model, opts Options, logger *zap.Logger) (Status, Assignment, error) {
	opts = opts.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	domains := make(map[string][]candidate, len(m.Sessions))
	for i := range m.Sessions {
		sess := &m.Sessions[i]
		domains[sess.Key] = domainOf(sess, m.Timeslots)
		if pin, ok := m.Pins[sess.Key]; ok {
			domains[sess.Key] = restrictToPin(domains[sess.Key], pin)
		}
		if len(domains[sess.Key]) == 0 {
			logger.Warn("session has no legal placement", zap.String("session", sess.Key))
			return Infeasible, nil, nil
		}
	}

	sessionOrder := make([]string, 0, len(m.Sessions))
	for _, s := range m.Sessions {
		sessionOrder = append(sessionOrder, s.Key)
	}
	sort.Strings(sessionOrder)

	steps := int(opts.MaxTime.Seconds() * stepsPerSecond)
	if steps < 200 {
		steps = 200
	}

	type result struct {
		st        *state
		converged bool
	}
	results := make([]result, opts.Workers)

	done := make(chan struct{}, opts.Workers)
	for w := 0; w < opts.Workers; w++ {
		w := w
		go func() {
			defer func() { done <- struct{}{} }()
			seed := opts.Seed + int64(w)*1_000_003
			st, converged := runWorker(ctx, m, domains, sessionOrder, seed, steps)
			results[w] = result{st: st, converged: converged}
		}()
	}
	for w := 0; w < opts.Workers; w++ {
		<-done
	}

	bestIdx := -1
	for i, r := range results {
		if r.st == nil {
			continue
		}
		if bestIdx == -1 || better(r.st, results[bestIdx].st) {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return Unknown, nil, nil
	}
	best := results[bestIdx]

	if best.st.conflicts > 0 {
		select {
		case <-ctx.Done():
			logger.Info("solve cancelled before a feasible solution was found")
		default:
			logger.Info("solve exhausted its step budget without eliminating conflicts",
				zap.Int("conflicts", best.st.conflicts))
		}
		return Unknown, nil, nil
	}

	assignment := make(Assignment, len(m.Sessions))
	for key, p := range best.st.placed {
		sess := m.SessionByKey[key]
		assignment[key] = store.SessionPlacement{
			CourseID:  sess.CourseID,
			RoomID:    p.Room.ID,
			SlotID:    p.Slot.SlotID,
			FacultyID: p.Faculty.ID,
		}
	}

	status := Feasible
	if best.converged {
		status = Optimal
	}
	return status, assignment, nil
}

// better reports whether a is a strictly better final state than b:
// fewer conflicts first, then higher objective.
func better(a, b *state) bool {
	if a.conflicts != b.conflicts {
		return a.conflicts < b.conflicts
	}
	return a.objective > b.objective
}

func restrictToPin(domain []candidate, pin model.Pin) []candidate {
	var out []candidate
	for _, c := range domain {
		if c.Room.ID != pin.RoomID || c.Slot.SlotID != pin.SlotID {
			continue
		}
		if pin.FacultyID != "" && c.Faculty.ID != pin.FacultyID {
			continue
		}
		out = append(out, c)
	}
	if len(out) > 1 {
		out = out[:1] // a pin fixes exactly one placement; keep the first deterministically
	}
	return out
}

// runWorker performs one independent randomized local search, starting
// from a deterministic greedy assignment and improving it for up to steps
// iterations (or until ctx is cancelled). converged reports whether the
// search reached a local optimum (more than 4*len(movable) consecutive
// steps with no improving move) before the step budget ran out.
func runWorker(ctx context.Context, m *model.Model, domains map[string][]candidate, order []string, seed int64, steps int) (*state, bool) {
	r := rand.New(rand.NewSource(seed))
	st := newState(m, domains)

	var movable []string
	for _, key := range order {
		sess := m.SessionByKey[key]
		if _, ok := m.Pins[key]; ok {
			c := domains[key][0] // restrictToPin already narrowed this to one entry
			st.place(sess, c)
			st.pinned[key] = true
			continue
		}
		movable = append(movable, key)
	}

	// deterministic greedy initial placement for every movable session
	for _, key := range movable {
		sess := m.SessionByKey[key]
		c, ok := st.bestCandidate(sess, r)
		if !ok {
			continue
		}
		st.place(sess, c)
	}

	if len(movable) == 0 {
		return st, true
	}

	best := st.clone()
	sinceImprovement := 0
	converged := false

	for step := 0; step < steps; step++ {
		if step%256 == 0 {
			select {
			case <-ctx.Done():
				return best, false
			default:
			}
		}

		key := movable[r.Intn(len(movable))]
		sess := m.SessionByKey[key]

		before := st.badness()
		st.unplace(sess)
		// domains were verified non-empty for every session before the
		// search began, so bestCandidate always finds something here.
		c, _ := st.bestCandidate(sess, r)
		st.place(sess, c)

		if st.badness() < before {
			sinceImprovement = 0
		} else {
			sinceImprovement++
		}

		if better(st, best) {
			best = st.clone()
		}

		if sinceImprovement > len(movable)*4 {
			converged = true
			break
		}
	}

	return best, converged
}
