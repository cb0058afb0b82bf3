// Command timetable is the thin external-collaborator facade over the
// scheduler library (SPEC_FULL.md §1): it loads configuration, builds a
// scenario, and drives the store -> oracle -> session -> model -> solver
// -> report/export pipeline the way the teacher's cli.go drives its own
// generate/score/report subcommands.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/campusgraph/timetable/internal/exporter"
	"github.com/campusgraph/timetable/internal/model"
	"github.com/campusgraph/timetable/internal/report"
	"github.com/campusgraph/timetable/internal/solver"
	"github.com/campusgraph/timetable/internal/store"
	"github.com/campusgraph/timetable/internal/whatif"
	"github.com/campusgraph/timetable/pkg/config"
	"github.com/campusgraph/timetable/pkg/logging"
)

var (
	maxTimeFlag     string
	workersFlag     int
	seedFlag        int64
	outFlag         string
	pinsFromFlag    string
	saveVersionFlag string
	pinSessionFlag  []string
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	root := &cobra.Command{
		Use:   "timetable",
		Short: "conflict-free university timetable scheduler",
		Long:  "Builds a session set from the entity store, solves it for a clash-free assignment, and reports or exports the result.",
	}

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve the bundled demo scenario and print the assignment and KPIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), cfg, logger)
		},
	}
	solveCmd.Flags().StringVar(&maxTimeFlag, "time", "", "override solver max search time (e.g. 5s)")
	solveCmd.Flags().IntVar(&workersFlag, "workers", 0, "override solver worker count")
	solveCmd.Flags().Int64Var(&seedFlag, "seed", 0, "override solver seed")
	solveCmd.Flags().StringVar(&outFlag, "out", "", "write the exported assignment JSON to this path instead of stdout")
	solveCmd.Flags().StringVar(&pinsFromFlag, "pins-from", "", "load a prior TimetableVersion and carry its pins into this build")
	solveCmd.Flags().StringVar(&saveVersionFlag, "save-version", "timetable_version.json", "path to retain this solve's TimetableVersion for a later --pins-from")
	solveCmd.Flags().StringSliceVar(&pinSessionFlag, "pin-session", nil, "session key to mark pinned in the retained version (repeatable)")
	root.AddCommand(solveCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		logger.Sugar().Fatalf("%v", err)
	}
}

func runSolve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	opts := solver.Options{
		MaxTime: cfg.Solver.MaxTime,
		Workers: cfg.Solver.Workers,
		Seed:    cfg.Solver.Seed,
	}
	if maxTimeFlag != "" {
		d, err := time.ParseDuration(maxTimeFlag)
		if err != nil {
			return fmt.Errorf("parse --time: %w", err)
		}
		opts.MaxTime = d
	}
	if workersFlag > 0 {
		opts.Workers = workersFlag
	}
	if seedFlag != 0 {
		opts.Seed = seedFlag
	}

	s := buildDemoUniversity()

	pins, err := carriedPins(s, logger)
	if err != nil {
		return err
	}

	buildCfg := model.BuildConfig{CompactWindow: cfg.Solver.CompactWindow}
	m, warnings, err := model.Build(s, pins, buildCfg)
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}
	for _, w := range warnings {
		logger.Warn("session dropped", zap.String("course_id", w.CourseID), zap.String("group_id", w.GroupID), zap.String("reason", w.Reason))
	}
	logger.Info("model built", zap.Int("sessions", len(m.Sessions)), zap.Int("timeslots", len(m.Timeslots)))

	status, assignment, err := solver.Solve(ctx, m, opts, logger)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	logger.Info("solve finished", zap.String("status", status.String()), zap.Int("assigned", len(assignment)))

	if status == solver.Infeasible || status == solver.Unknown {
		fmt.Fprintf(os.Stderr, "status: %s (no assignment produced)\n", status)
		return nil
	}

	kpis := report.Compute(s, assignment)
	fmt.Fprintf(os.Stderr, "status: %s, clashes: %d, utilization: %.3f, assigned: %d\n",
		status, kpis.RoomSlotClashes, kpis.UtilizationRatio, kpis.AssignedSessions)

	if saveVersionFlag != "" {
		if err := saveVersion(assignment, kpis, saveVersionFlag); err != nil {
			return err
		}
		logger.Info("retained timetable version", zap.String("path", saveVersionFlag))
	}

	out := os.Stdout
	if outFlag != "" {
		f, err := os.Create(outFlag)
		if err != nil {
			return fmt.Errorf("create %s: %w", outFlag, err)
		}
		defer f.Close()
		out = f
	}
	return exporter.Write(out, s, assignment)
}

// carriedPins implements the Lifecycle's "pins are carried forward by
// copying a chosen subset of the previous TimetableVersion's assignments
// into the next build" (SPEC_FULL.md §3/§4.F). It loads the retained
// version named by --pins-from, if any, derives pins from it, and drops
// whatever ValidatePins flags as no longer feasible against the current
// store rather than failing the whole build.
func carriedPins(s *store.Store, logger *zap.Logger) ([]model.Pin, error) {
	if pinsFromFlag == "" {
		return nil, nil
	}
	data, err := os.ReadFile(pinsFromFlag)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", pinsFromFlag, err)
	}
	var prev store.TimetableVersion
	if err := json.Unmarshal(data, &prev); err != nil {
		return nil, fmt.Errorf("parse %s: %w", pinsFromFlag, err)
	}

	pins := whatif.PinsFromVersion(&prev)
	if bad := whatif.ValidatePins(s, pins); len(bad) > 0 {
		for _, b := range bad {
			logger.Warn("dropping infeasible carried pin", zap.String("session", b.SessionKey), zap.String("reason", b.Reason))
		}
		pins = whatif.DropInfeasible(pins, bad)
	}
	return pins, nil
}

// saveVersion packages the just-finished solve into a TimetableVersion and
// writes it to path so a later invocation's --pins-from can carry the
// sessions named by --pin-session forward, per the Lifecycle's "current
// version retained for deriving pins on the next solve."
func saveVersion(assignment solver.Assignment, kpis report.KPIs, path string) error {
	pinned := make(map[string]bool, len(pinSessionFlag))
	for _, key := range pinSessionFlag {
		if _, ok := assignment[key]; ok {
			pinned[key] = true
		}
	}
	v := report.NewVersion(assignment, pinned, kpis)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal timetable version: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
