package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/misterclayt0n/gymweek/internal/config"
	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/misterclayt0n/gymweek/internal/schedule"
	"github.com/misterclayt0n/gymweek/internal/session"
	"github.com/misterclayt0n/gymweek/internal/state"
	"github.com/misterclayt0n/gymweek/internal/storage"
)

// app wires the stores every command works with. The database is only opened
// by commands that need it.
type app struct {
	cfg      *config.Config
	schedule *schedule.Store
	sessions *session.Store
	st       *storage.Storage
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("Failed to load config: %w", err)
	}

	blobs := state.NewStore(cfg.State.Dir)
	return &app{
		cfg:      cfg,
		schedule: schedule.NewStore(blobs, cfg.Schedule.Locale),
		sessions: session.NewStore(blobs, cfg.Session.Expiry.Duration),
	}, nil
}

func (a *app) storage() (*storage.Storage, error) {
	if a.st != nil {
		return a.st, nil
	}
	st, err := storage.NewStorage(a.cfg.DB.ConnectionString)
	if err != nil {
		return nil, err
	}
	a.st = st
	return st, nil
}

func (a *app) close() {
	if a.st != nil {
		a.st.Close()
	}
}

// activeSession loads the running session or fails with ErrNoActiveSession.
func (a *app) activeSession() (models.ActiveWorkoutSession, error) {
	s, ok := a.sessions.Load()
	if !ok {
		return s, session.ErrNoActiveSession
	}
	return s, nil
}

// exerciseAt resolves a 1-based exercise index to the exercise id.
func exerciseAt(s models.ActiveWorkoutSession, arg string) (string, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 {
		return "", fmt.Errorf("Invalid exercise index. Must be a positive integer")
	}
	if idx > len(s.Exercises) {
		return "", fmt.Errorf("Exercise index out of range")
	}
	return s.Exercises[idx-1].ID, nil
}

// setAt resolves a 1-based set index of an exercise to a 0-based one.
func setAt(s models.ActiveWorkoutSession, exerciseID, arg string) (int, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 {
		return 0, fmt.Errorf("Invalid set index. Must be a positive integer")
	}
	if idx > len(s.Exercises[s.Exercise(exerciseID)].Sets) {
		return 0, fmt.Errorf("Set index out of range")
	}
	return idx - 1, nil
}

// confirm asks a yes/no question, defaulting to no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
