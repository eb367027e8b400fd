package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/gymweek/internal/models"
)

// CreatePlan stores a validated plan file with all its workouts and exercises.
func (s *Storage) CreatePlan(ctx context.Context, file models.PlanFile) (*models.Plan, error) {
	if err := file.Validate(); err != nil {
		return nil, err
	}

	plan := models.Plan{
		ID:            uuid.New().String(),
		Name:          file.Name,
		Description:   file.Description,
		DurationWeeks: file.DurationWeeks,
		Level:         file.Level,
		Goal:          file.Goal,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
	for _, wf := range file.Workouts {
		w := models.Workout{
			ID:          uuid.New().String(),
			PlanID:      plan.ID,
			DayNumber:   wf.DayNumber,
			Name:        wf.Name,
			Description: wf.Description,
		}
		for _, ef := range wf.Exercises {
			w.Exercises = append(w.Exercises, models.PlanExercise{
				ID:          uuid.New().String(),
				WorkoutID:   w.ID,
				Name:        ef.Name,
				Sets:        ef.Sets,
				Reps:        ef.Reps,
				RestSeconds: ef.RestSeconds,
				Notes:       ef.Notes,
				Order:       ef.Order,
			})
		}
		plan.Workouts = append(plan.Workouts, w)
	}

	if err := s.insertPlan(ctx, plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *Storage) insertPlan(ctx context.Context, plan models.Plan) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertPlanTx(ctx, tx, plan); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// replacePlan deletes any plan with the same id and inserts plan in one
// transaction, so a failed insert leaves the old plan in place.
func (s *Storage) replacePlan(ctx context.Context, plan models.Plan) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, plan.ID); err != nil {
		return fmt.Errorf("replacing plan %s: %w", plan.ID, err)
	}
	if err := insertPlanTx(ctx, tx, plan); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertPlanTx(ctx context.Context, tx *sql.Tx, plan models.Plan) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO plans (id, name, description, duration_weeks, level, goal, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		plan.ID,
		plan.Name,
		plan.Description,
		plan.DurationWeeks,
		plan.Level,
		plan.Goal,
		plan.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	for _, w := range plan.Workouts {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO workouts (id, plan_id, day_number, name, description)
             VALUES (?, ?, ?, ?, ?)`,
			w.ID, plan.ID, w.DayNumber, w.Name, w.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to create workout %q: %w", w.Name, err)
		}

		for _, ex := range w.Exercises {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO plan_exercises
                 (id, workout_id, name, sets, reps, rest_seconds, notes, order_index)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				ex.ID, w.ID, ex.Name, ex.Sets, ex.Reps, ex.RestSeconds, ex.Notes, ex.Order,
			)
			if err != nil {
				return fmt.Errorf("failed to create exercise %q: %w", ex.Name, err)
			}
		}
	}
	return nil
}

// ListPlans returns every plan, newest first, without workouts.
func (s *Storage) ListPlans(ctx context.Context) ([]models.Plan, error) {
	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, name, description, duration_weeks, level, goal, created_at
        FROM plans
        ORDER BY created_at DESC, name
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []models.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(row scanner) (*models.Plan, error) {
	var p models.Plan
	var createdAt string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.DurationWeeks, &p.Level, &p.Goal, &createdAt); err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &p, nil
}

// GetPlan loads a plan with its workouts ordered by day number and their
// exercises ordered by position. This is the template provider used when a
// session is started.
func (s *Storage) GetPlan(ctx context.Context, id string) (*models.Plan, error) {
	plan, err := scanPlan(s.DB.QueryRowContext(ctx, `
        SELECT id, name, description, duration_weeks, level, goal, created_at
        FROM plans WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `
        SELECT id FROM workouts
        WHERE plan_id = ?
        ORDER BY day_number, name`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load workouts: %w", err)
	}
	var workoutIDs []string
	for rows.Next() {
		var wid string
		if err := rows.Scan(&wid); err != nil {
			rows.Close()
			return nil, err
		}
		workoutIDs = append(workoutIDs, wid)
	}
	rows.Close()

	for _, wid := range workoutIDs {
		w, err := s.GetWorkout(ctx, wid)
		if err != nil {
			return nil, err
		}
		plan.Workouts = append(plan.Workouts, *w)
	}
	return plan, nil
}

// GetWorkout loads one workout template with its exercises.
func (s *Storage) GetWorkout(ctx context.Context, id string) (*models.Workout, error) {
	var w models.Workout
	err := s.DB.QueryRowContext(ctx, `
        SELECT id, plan_id, day_number, name, description
        FROM workouts WHERE id = ?`, id,
	).Scan(&w.ID, &w.PlanID, &w.DayNumber, &w.Name, &w.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `
        SELECT id, workout_id, name, sets, reps, rest_seconds, notes, order_index
        FROM plan_exercises
        WHERE workout_id = ?
        ORDER BY order_index`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ex models.PlanExercise
		if err := rows.Scan(&ex.ID, &ex.WorkoutID, &ex.Name, &ex.Sets, &ex.Reps, &ex.RestSeconds, &ex.Notes, &ex.Order); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		w.Exercises = append(w.Exercises, ex)
	}
	return &w, rows.Err()
}

// GetPlanName returns only the name of a plan.
func (s *Storage) GetPlanName(ctx context.Context, id string) (string, error) {
	var name string
	err := s.DB.QueryRowContext(ctx, `SELECT name FROM plans WHERE id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrPlanNotFound
	}
	return name, err
}

// DeletePlan removes a plan; its workouts and exercises go with it.
func (s *Storage) DeletePlan(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// UpdatePlan changes the metadata of a plan. The result is validated with the
// same rules as an imported plan file.
func (s *Storage) UpdatePlan(ctx context.Context, id string, update models.PlanUpdate) (*models.Plan, error) {
	current, err := scanPlan(s.DB.QueryRowContext(ctx, `
        SELECT id, name, description, duration_weeks, level, goal, created_at
        FROM plans WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	plan, err := update.Apply(*current)
	if err != nil {
		return nil, err
	}

	_, err = s.DB.ExecContext(ctx,
		`UPDATE plans SET name = ?, description = ?, duration_weeks = ?, level = ?, goal = ?
         WHERE id = ?`,
		plan.Name, plan.Description, plan.DurationWeeks, plan.Level, plan.Goal, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	return &plan, nil
}
