package solver

import (
	"fmt"
	"time"

	"github.com/campusgraph/timetable/internal/store"
)

// Status mirrors the four CP statuses named in SPEC_FULL.md §4.E.
type Status int

const (
	// Unknown means the budget was exhausted without a feasible solution,
	// or the search was cancelled before one was found.
	Unknown Status = iota
	Optimal
	Feasible
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	case Infeasible:
		return "INFEASIBLE"
	default:
		return "UNKNOWN"
	}
}

// Assignment maps a session key to the (course, room, slot) triple plus
// the faculty the search selected for it.
type Assignment map[string]store.SessionPlacement

// Options configures one Solve call.
type Options struct {
	MaxTime time.Duration
	Workers int
	Seed    int64
}

func (o Options) withDefaults() Options {
	if o.MaxTime <= 0 {
		o.MaxTime = 10 * time.Second
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	return o
}

// InfeasibleError explains why the solver proved no assignment exists.
type InfeasibleError struct {
	SessionKey string
	Reason     string
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("solver: infeasible: session %s: %s", e.SessionKey, e.Reason)
}
