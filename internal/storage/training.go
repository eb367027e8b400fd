package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/misterclayt0n/gymweek/internal/session"
	"github.com/misterclayt0n/gymweek/internal/utils"
)

// FinishedFromActive turns an active session into its durable form. Every
// completed set with reps entered becomes one log; a missing weight is logged
// as 0 (bodyweight).
func FinishedFromActive(active models.ActiveWorkoutSession, end time.Time) models.FinishedSession {
	fs := models.FinishedSession{
		ID:          active.ID,
		PlanName:    active.PlanName,
		WorkoutName: active.Name,
		StartTime:   active.StartTime.UTC().Truncate(time.Second),
		EndTime:     end.UTC().Truncate(time.Second),
		Completed:   session.CalculateProgress(active) == 100,
	}

	for _, ex := range active.Exercises {
		for i, set := range ex.Sets {
			if !set.Completed || set.Reps == nil {
				continue
			}
			var weight float32
			if set.Weight != nil {
				weight = *set.Weight
			}
			fs.Logs = append(fs.Logs, models.ExerciseLog{
				ID:           uuid.New().String(),
				SessionID:    fs.ID,
				ExerciseName: ex.Name,
				SetNumber:    i + 1,
				Reps:         *set.Reps,
				Weight:       weight,
				CreatedAt:    fs.EndTime,
			})
		}
	}
	return fs
}

// SaveFinishedSession records a finished session and its logs in one transaction.
func (s *Storage) SaveFinishedSession(ctx context.Context, fs models.FinishedSession) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO workout_sessions
		(id, plan_name, workout_name, start_time, end_time, completed, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			plan_name = excluded.plan_name,
			workout_name = excluded.workout_name,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			completed = excluded.completed,
			notes = excluded.notes`,
		fs.ID,
		fs.PlanName,
		fs.WorkoutName,
		fs.StartTime.UTC().Format(time.RFC3339),
		fs.EndTime.UTC().Format(time.RFC3339),
		utils.BoolToInt(fs.Completed),
		fs.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	// Saving again replaces the logs rather than duplicating them.
	if _, err := tx.ExecContext(ctx, `DELETE FROM exercise_logs WHERE session_id = ?`, fs.ID); err != nil {
		return fmt.Errorf("failed to reset session logs: %w", err)
	}

	for _, l := range fs.Logs {
		id := l.ID
		if id == "" {
			id = uuid.New().String()
		}
		createdAt := l.CreatedAt
		if createdAt.IsZero() {
			createdAt = fs.EndTime
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO exercise_logs
            (id, session_id, exercise_name, set_number, reps, weight, created_at)
            VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id,
			fs.ID,
			l.ExerciseName,
			l.SetNumber,
			l.Reps,
			l.Weight,
			createdAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to save log: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
