// Package config loads timetable configuration from the environment, the
// way the teacher's ambient stack does it: godotenv for a local .env file,
// viper for env-var binding and defaults.
package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the full set of knobs a run of the scheduler needs: the grid
// shape it builds timeslots against, the solver's search budget, and the
// logger's verbosity and encoding.
type Config struct {
	Env string

	Grid   GridConfig
	Solver SolverConfig
	Log    LogConfig
}

// GridConfig describes the weekly timetable grid: which days run, how many
// periods per day, and the wall-clock start/length of period 0.
type GridConfig struct {
	Days          []string
	SlotsPerDay   int
	DayStartMin   int
	SlotLengthMin int
}

// SolverConfig controls internal/solver.Options and the compact-window
// objective term.
type SolverConfig struct {
	MaxTime       time.Duration
	Workers       int
	Seed          int64
	CompactWindow []int
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Env: v.GetString("ENV"),
		Grid: GridConfig{
			Days:          splitAndTrim(v.GetString("GRID_DAYS")),
			SlotsPerDay:   v.GetInt("GRID_SLOTS_PER_DAY"),
			DayStartMin:   v.GetInt("GRID_DAY_START_MIN"),
			SlotLengthMin: v.GetInt("GRID_SLOT_LENGTH_MIN"),
		},
		Solver: SolverConfig{
			MaxTime:       parseDuration(v.GetString("SOLVER_MAX_TIME"), 10*time.Second),
			Workers:       v.GetInt("SOLVER_WORKERS"),
			Seed:          v.GetInt64("SOLVER_SEED"),
			CompactWindow: parseInts(v.GetString("SOLVER_COMPACT_WINDOW"), []int{2, 3, 4}),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("GRID_DAYS", "MON,TUE,WED,THU,FRI")
	v.SetDefault("GRID_SLOTS_PER_DAY", 8)
	v.SetDefault("GRID_DAY_START_MIN", 9*60)
	v.SetDefault("GRID_SLOT_LENGTH_MIN", 55)

	v.SetDefault("SOLVER_MAX_TIME", "10s")
	v.SetDefault("SOLVER_WORKERS", 4)
	v.SetDefault("SOLVER_SEED", 1)
	v.SetDefault("SOLVER_COMPACT_WINDOW", "2,3,4")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func parseInts(raw string, fallback []int) []int {
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return fallback
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
