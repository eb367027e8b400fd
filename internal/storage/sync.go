package storage

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/gymweek/internal/models"
)

// Dump is the TOML layout written by ExportTOML and read by ImportTOML.
type Dump struct {
	Plans    []models.Plan            `toml:"plan"`
	Sessions []models.FinishedSession `toml:"session"`
}

// ExportTOML writes every plan and finished session, with their children, to w.
func (s *Storage) ExportTOML(ctx context.Context, w io.Writer) error {
	var dump Dump

	plans, err := s.ListPlans(ctx)
	if err != nil {
		return err
	}
	for _, p := range plans {
		full, err := s.GetPlan(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("loading plan %s: %w", p.ID, err)
		}
		dump.Plans = append(dump.Plans, *full)
	}

	sessions, err := s.ListSessions(ctx, models.SessionFilter{Limit: math.MaxInt32})
	if err != nil {
		return err
	}
	for _, fs := range sessions {
		full, err := s.GetSession(ctx, fs.ID)
		if err != nil {
			return fmt.Errorf("loading session %s: %w", fs.ID, err)
		}
		dump.Sessions = append(dump.Sessions, *full)
	}

	if err := toml.NewEncoder(w).Encode(dump); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}
	return nil
}

// ImportTOML reads a dump produced by ExportTOML. Plans and sessions keep their
// ids; existing plans with the same id are replaced, sessions are upserted.
// Every plan is validated before anything is written.
func (s *Storage) ImportTOML(ctx context.Context, r io.Reader) (plans, sessions int, err error) {
	var dump Dump
	if _, err := toml.NewDecoder(r).Decode(&dump); err != nil {
		return 0, 0, fmt.Errorf("decoding TOML: %w", err)
	}

	for _, p := range dump.Plans {
		if p.ID == "" {
			return 0, 0, fmt.Errorf("plan %q has no id", p.Name)
		}
		if err := p.File().Validate(); err != nil {
			return 0, 0, fmt.Errorf("invalid plan %s: %w", p.ID, err)
		}
	}

	for _, p := range dump.Plans {
		if err := s.replacePlan(ctx, p); err != nil {
			return plans, sessions, err
		}
		plans++
	}

	for _, fs := range dump.Sessions {
		if err := s.SaveFinishedSession(ctx, fs); err != nil {
			return plans, sessions, err
		}
		sessions++
	}
	return plans, sessions, nil
}
