// Package model turns a session set into the decision model the Solver
// Driver searches over: coverage/exclusion domains, availability masks,
// resolved pins, and an extensible weighted objective. See SPEC_FULL.md
// §4.D.
//
// The reference CP-SAT formulation materializes one boolean variable per
// (session, room, slot) triple. No CP/SAT/ILP library exists anywhere in
// this module's dependency corpus (see SPEC_FULL.md "DOMAIN STACK"), so
// rather than hand-roll a matrix of boolean variables this package
// captures the same information -- each session's feasible (room, slot)
// domain, the room/group/faculty exclusion sets, and the objective -- as
// plain Go values that internal/solver's local search consumes directly.
package model

import (
	"fmt"
	"sort"

	"github.com/campusgraph/timetable/internal/oracle"
	"github.com/campusgraph/timetable/internal/session"
	"github.com/campusgraph/timetable/internal/store"
)

// Pin fixes one session to a specific (room, slot), and optionally a
// specific faculty member, before the search begins (SPEC_FULL.md §4.D
// constraint 8). Resolved by tuple at build time, not by variable name
// string (§9 "Pin carry-over mechanism" redesign flag).
type Pin struct {
	SessionKey string
	RoomID     string
	SlotID     string
	FacultyID  string // optional; "" means any candidate faculty may cover it
}

// ObjectiveTerm is one weighted component of the objective. Additional
// terms (load-balance deviation, preferred-window bonus, gap penalty) can
// be appended here without touching the constraint/search code (§9
// "Objective extensibility").
type ObjectiveTerm struct {
	Name   string
	Weight float64
	Score  func(sess *session.Session, slot *store.Timeslot) float64
}

// Model is the built decision model for one solve.
type Model struct {
	Sessions     []session.Session
	SessionByKey map[string]*session.Session
	Timeslots    []*store.Timeslot
	SlotByID     map[string]*store.Timeslot
	Pins         map[string]Pin
	Objective    []ObjectiveTerm
}

// Score returns the weighted objective value of placing sess at slot.
func (m *Model) Score(sess *session.Session, slot *store.Timeslot) float64 {
	var total float64
	for _, term := range m.Objective {
		total += term.Weight * term.Score(sess, slot)
	}
	return total
}

// PinInfeasible signals a carried-over pin that cannot hold against the
// freshly computed feasibility of a new build (room/faculty unavailable,
// the group-course edge removed, ...). Fatal for the build, per
// SPEC_FULL.md §7.
type PinInfeasible struct {
	SessionKey string
	Reason     string
}

func (e *PinInfeasible) Error() string {
	return fmt.Sprintf("model: pin infeasible for %s: %s", e.SessionKey, e.Reason)
}

// BuildConfig parameterizes the objective and is normally sourced from
// pkg/config.
type BuildConfig struct {
	// CompactWindow lists the grid indices the objective prefers sessions
	// land in (default {2,3,4} per SPEC_FULL.md §4.D).
	CompactWindow []int
}

func DefaultBuildConfig() BuildConfig {
	return BuildConfig{CompactWindow: []int{2, 3, 4}}
}

// Build expands sessions from store via oracle, resolves pins against
// fresh feasibility, and assembles the decision model plus any
// UnschedulableWarnings surfaced during expansion. It returns a
// *PinInfeasible error (fatal) if any pin cannot be honored.
func Build(s *store.Store, pins []Pin, cfg BuildConfig) (*Model, []oracle.Warning, error) {
	o := oracle.New(s)
	sessions, warnings := session.Expand(s, o)

	sessionByKey := make(map[string]*session.Session, len(sessions))
	for i := range sessions {
		sessionByKey[sessions[i].Key] = &sessions[i]
	}

	slots := s.Timeslots()
	slotByID := make(map[string]*store.Timeslot, len(slots))
	for _, t := range slots {
		slotByID[t.SlotID] = t
	}

	resolvedPins := make(map[string]Pin, len(pins))
	for _, p := range pins {
		sess, ok := sessionByKey[p.SessionKey]
		if !ok {
			return nil, warnings, &PinInfeasible{SessionKey: p.SessionKey, Reason: "session no longer exists (course/group dropped or edge removed)"}
		}
		slot, ok := slotByID[p.SlotID]
		if !ok {
			return nil, warnings, &PinInfeasible{SessionKey: p.SessionKey, Reason: "unknown slot " + p.SlotID}
		}
		room := findRoom(sess.FeasibleRooms, p.RoomID)
		if room == nil {
			return nil, warnings, &PinInfeasible{SessionKey: p.SessionKey, Reason: "room " + p.RoomID + " no longer feasible for this session"}
		}
		if room.Capacity < sess.Size {
			return nil, warnings, &PinInfeasible{SessionKey: p.SessionKey, Reason: "room capacity below session size"}
		}
		cell := slot.Cell()
		if !room.IsAvailable(cell) {
			return nil, warnings, &PinInfeasible{SessionKey: p.SessionKey, Reason: "room unavailable at pinned slot"}
		}
		if p.FacultyID != "" {
			fac := findFaculty(sess.CandidateFaculty, p.FacultyID)
			if fac == nil {
				return nil, warnings, &PinInfeasible{SessionKey: p.SessionKey, Reason: "faculty not a candidate for this session"}
			}
			if !fac.IsAvailable(cell) {
				return nil, warnings, &PinInfeasible{SessionKey: p.SessionKey, Reason: "faculty unavailable at pinned slot"}
			}
		} else if !anyFacultyAvailable(sess.CandidateFaculty, cell) {
			return nil, warnings, &PinInfeasible{SessionKey: p.SessionKey, Reason: "no candidate faculty available at pinned slot"}
		}
		resolvedPins[p.SessionKey] = p
	}

	m := &Model{
		Sessions:     sessions,
		SessionByKey: sessionByKey,
		Timeslots:    slots,
		SlotByID:     slotByID,
		Pins:         resolvedPins,
		Objective:    buildObjective(cfg),
	}
	return m, warnings, nil
}

func buildObjective(cfg BuildConfig) []ObjectiveTerm {
	window := map[int]bool{}
	for _, idx := range cfg.CompactWindow {
		window[idx] = true
	}
	return []ObjectiveTerm{
		{
			Name:   "compact_window",
			Weight: 1,
			Score: func(_ *session.Session, slot *store.Timeslot) float64 {
				if window[slot.Index] {
					return 1
				}
				return 0
			},
		},
	}
}

func findRoom(rooms []*store.Room, id string) *store.Room {
	for _, r := range rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func anyFacultyAvailable(faculty []*store.Faculty, cell store.Cell) bool {
	for _, f := range faculty {
		if f.IsAvailable(cell) {
			return true
		}
	}
	return false
}

func findFaculty(faculty []*store.Faculty, id string) *store.Faculty {
	for _, f := range faculty {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// SortedSessionKeys returns the model's session keys sorted, useful for
// deterministic diagnostics/tests.
func (m *Model) SortedSessionKeys() []string {
	keys := make([]string, 0, len(m.Sessions))
	for _, s := range m.Sessions {
		keys = append(keys, s.Key)
	}
	sort.Strings(keys)
	return keys
}
