// Package report computes the clash-count, utilization, and fairness KPIs
// described in SPEC_FULL.md §4.G from a finished assignment.
package report

import (
	"math"
	"sort"

	"github.com/campusgraph/timetable/internal/solver"
	"github.com/campusgraph/timetable/internal/store"
)

// KPIs mirrors the reference's kpis() output, plus the supplemented
// per-faculty load headroom discussed in SPEC_FULL.md §4.G.
type KPIs struct {
	RoomSlotClashes   int
	UtilizationRatio  float64
	AssignedSessions  int
	FacultyLoadStdDev float64
	FacultyLoadHeadroom map[string]float64
}

// Compute derives KPIs from an assignment against the store it was solved
// over. RoomSlotClashes must be 0 for any assignment produced by a
// correct solver (SPEC_FULL.md §8 invariant 2).
func Compute(s *store.Store, assignment solver.Assignment) KPIs {
	type roomSlot struct {
		room string
		slot string
	}
	counts := map[roomSlot]int{}
	facultyLoad := map[string]int{}

	for _, p := range assignment {
		counts[roomSlot{p.RoomID, p.SlotID}]++
		if p.FacultyID != "" {
			facultyLoad[p.FacultyID]++
		}
	}

	clashes := 0
	for _, n := range counts {
		if n > 1 {
			clashes++
		}
	}

	rooms := len(s.Rooms())
	slots := len(s.Timeslots())
	utilization := 0.0
	if rooms > 0 && slots > 0 {
		utilization = float64(len(counts)) / float64(rooms*slots)
	}

	headroom := map[string]float64{}
	loads := make([]float64, 0, len(s.Faculty()))
	for _, f := range s.Faculty() {
		load := facultyLoad[f.ID]
		loads = append(loads, float64(load))
		if f.MaxPerWeek > 0 {
			h := 1 - float64(load)/float64(f.MaxPerWeek)
			if h < 0 {
				h = 0
			}
			headroom[f.ID] = h
		}
	}

	return KPIs{
		RoomSlotClashes:     clashes,
		UtilizationRatio:    round3(utilization),
		AssignedSessions:    len(assignment),
		FacultyLoadStdDev:   stdDev(loads),
		FacultyLoadHeadroom: headroom,
	}
}

func stdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sort.Float64s(xs) // deterministic summation order
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var variance float64
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(xs))
	return math.Sqrt(variance)
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
