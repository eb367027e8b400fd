package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/misterclayt0n/gymweek/internal/utils"
)

// PersonalRecords returns the heaviest set of every exercise, or of a single
// exercise when exerciseName is set. Ties go to more reps, then to the most
// recent session.
func (s *Storage) PersonalRecords(ctx context.Context, exerciseName string) ([]models.PersonalRecord, error) {
	query := `
        SELECT el.exercise_name, el.weight, el.reps, ws.start_time, el.session_id
        FROM exercise_logs el
        JOIN workout_sessions ws ON el.session_id = ws.id`
	var args []any
	if exerciseName != "" {
		query += ` WHERE el.exercise_name = ? COLLATE NOCASE`
		args = append(args, exerciseName)
	}
	query += ` ORDER BY el.exercise_name COLLATE NOCASE, el.weight DESC, el.reps DESC, ws.start_time DESC`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query personal records: %w", err)
	}
	defer rows.Close()

	var records []models.PersonalRecord
	for rows.Next() {
		var pr models.PersonalRecord
		var date string
		if err := rows.Scan(&pr.ExerciseName, &pr.MaxWeight, &pr.Reps, &date, &pr.SessionID); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		// Rows are sorted best first within each exercise.
		if n := len(records); n > 0 && strings.EqualFold(records[n-1].ExerciseName, pr.ExerciseName) {
			continue
		}
		pr.Date, _ = time.Parse(time.RFC3339, date)
		pr.Estimated1RM = utils.CalculateEpley1RM(pr.MaxWeight, pr.Reps)
		records = append(records, pr)
	}
	return records, rows.Err()
}

// ExerciseProgress returns every logged set of an exercise in chronological order.
func (s *Storage) ExerciseProgress(ctx context.Context, exerciseName string) ([]models.ProgressPoint, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT ws.start_time, el.weight, el.reps
        FROM exercise_logs el
        JOIN workout_sessions ws ON el.session_id = ws.id
        WHERE el.exercise_name = ? COLLATE NOCASE
        ORDER BY ws.start_time, el.set_number`, exerciseName)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	var points []models.ProgressPoint
	for rows.Next() {
		var p models.ProgressPoint
		var date string
		if err := rows.Scan(&date, &p.Weight, &p.Reps); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		p.Date, _ = time.Parse(time.RFC3339, date)
		p.Volume = p.Weight * float32(p.Reps)
		points = append(points, p)
	}
	return points, rows.Err()
}
