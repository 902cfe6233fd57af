package store

import (
	"fmt"
	"strconv"

	"github.com/sadopc/routine/internal/routine"
)

// LoadConfig reads the single config row. An empty table is seeded with the
// default configuration; unreadable cells fall back to their defaults.
func (s *Store) LoadConfig() (routine.Config, error) {
	def := routine.DefaultConfig(s.now())
	rows, err := s.LoadTable(ConfigSchema)
	if err != nil {
		return routine.Config{}, fmt.Errorf("get config: %w", err)
	}
	if len(rows) == 0 {
		if err := s.SaveConfig(def); err != nil {
			return routine.Config{}, fmt.Errorf("seed config: %w", err)
		}
		return def, nil
	}
	return configFromRow(rows[0], def), nil
}

func configFromRow(r Row, def routine.Config) routine.Config {
	cfg := def
	if d, ok := ParseDate(r["start_date"]); ok {
		cfg.StartDate = d
	}
	if d, ok := ParseDate(r["target_exam"]); ok {
		cfg.TargetExam = d
	}
	cfg.AutoPhase = ParseBool(r["auto_phase"], def.AutoPhase)
	cfg.ManualPhase = min(max(ParseInt(r["manual_phase"], def.ManualPhase), 1), 4)
	return cfg
}

// SaveConfig rewrites the config table with a single row.
func (s *Store) SaveConfig(cfg routine.Config) error {
	row := Row{
		"start_date":   formatDate(cfg.StartDate),
		"auto_phase":   formatBool(cfg.AutoPhase),
		"manual_phase": strconv.Itoa(cfg.ManualPhase),
		"target_exam":  formatDate(cfg.TargetExam),
	}
	if err := s.SaveTable(ConfigSchema, []Row{row}); err != nil {
		return fmt.Errorf("set config: %w", err)
	}
	return nil
}
