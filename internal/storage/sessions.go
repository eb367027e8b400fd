package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/misterclayt0n/gymweek/internal/utils"
)

const defaultSessionLimit = 50

// ListSessions returns finished sessions, newest first, without their logs.
func (s *Storage) ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.FinishedSession, error) {
	var where []string
	var args []any

	if filter.PlanName != "" {
		where = append(where, "plan_name = ? COLLATE NOCASE")
		args = append(args, filter.PlanName)
	}
	if !filter.From.IsZero() {
		where = append(where, "start_time >= ?")
		args = append(args, filter.From.UTC().Format(time.RFC3339))
	}
	if !filter.To.IsZero() {
		where = append(where, "start_time <= ?")
		args = append(args, filter.To.UTC().Format(time.RFC3339))
	}

	query := `SELECT id, plan_name, workout_name, start_time, end_time, completed, notes FROM workout_sessions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY start_time DESC LIMIT ? OFFSET ?"

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultSessionLimit
	}
	args = append(args, limit, filter.Offset)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.FinishedSession
	for rows.Next() {
		fs, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *fs)
	}
	return sessions, rows.Err()
}

func scanSession(row scanner) (*models.FinishedSession, error) {
	var fs models.FinishedSession
	var startTime, endTime string
	var completed int
	if err := row.Scan(&fs.ID, &fs.PlanName, &fs.WorkoutName, &startTime, &endTime, &completed, &fs.Notes); err != nil {
		return nil, err
	}
	fs.StartTime, _ = time.Parse(time.RFC3339, startTime)
	fs.EndTime, _ = time.Parse(time.RFC3339, endTime)
	fs.Completed = completed != 0
	return &fs, nil
}

// GetSession returns a finished session with its logs ordered by exercise and set.
func (s *Storage) GetSession(ctx context.Context, id string) (*models.FinishedSession, error) {
	fs, err := scanSession(s.DB.QueryRowContext(ctx, `
        SELECT id, plan_name, workout_name, start_time, end_time, completed, notes
        FROM workout_sessions
        WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, session_id, exercise_name, set_number, reps, weight, created_at
        FROM exercise_logs
        WHERE session_id = ?
        ORDER BY exercise_name, set_number`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load logs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.ExerciseLog
		var createdAt string
		if err := rows.Scan(&l.ID, &l.SessionID, &l.ExerciseName, &l.SetNumber, &l.Reps, &l.Weight, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		fs.Logs = append(fs.Logs, l)
	}
	return fs, rows.Err()
}

// SessionStartTimes returns the start of every finished session.
func (s *Storage) SessionStartTimes(ctx context.Context) ([]time.Time, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT start_time FROM workout_sessions ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			continue
		}
		starts = append(starts, t)
	}
	return starts, rows.Err()
}

// DeleteSession removes a finished session and its logs.
func (s *Storage) DeleteSession(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM workout_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// UpdateSession edits the notes and/or completed flag of a finished session.
func (s *Storage) UpdateSession(ctx context.Context, id string, update models.SessionUpdate) error {
	var set []string
	var args []any
	if update.Notes != nil {
		set = append(set, "notes = ?")
		args = append(args, *update.Notes)
	}
	if update.Completed != nil {
		set = append(set, "completed = ?")
		args = append(args, utils.BoolToInt(*update.Completed))
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := s.DB.ExecContext(ctx,
		`UPDATE workout_sessions SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// UpdateLog corrects the weight and/or reps of one logged set.
func (s *Storage) UpdateLog(ctx context.Context, id string, update models.LogUpdate) error {
	var set []string
	var args []any
	if update.Weight != nil {
		if *update.Weight < 0 {
			return fmt.Errorf("weight cannot be negative")
		}
		set = append(set, "weight = ?")
		args = append(args, *update.Weight)
	}
	if update.Reps != nil {
		if *update.Reps <= 0 {
			return fmt.Errorf("reps must be positive")
		}
		set = append(set, "reps = ?")
		args = append(args, *update.Reps)
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, id)
	res, err := s.DB.ExecContext(ctx,
		`UPDATE exercise_logs SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update log: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLogNotFound
	}
	return nil
}

// DeleteLog removes one logged set from a finished session.
func (s *Storage) DeleteLog(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM exercise_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLogNotFound
	}
	return nil
}
