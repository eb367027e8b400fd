package models

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
)

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

const (
	GoalStrength     = "strength"
	GoalHypertrophy  = "hypertrophy"
	GoalEndurance    = "endurance"
	GoalPowerlifting = "powerlifting"
	GoalGeneral      = "general"
)

var (
	validLevels = map[string]bool{LevelBeginner: true, LevelIntermediate: true, LevelAdvanced: true}
	validGoals  = map[string]bool{
		GoalStrength: true, GoalHypertrophy: true, GoalEndurance: true,
		GoalPowerlifting: true, GoalGeneral: true,
	}
)

// Plan is a multi-week program template.
type Plan struct {
	ID            string    `json:"id" toml:"id"`
	Name          string    `json:"name" toml:"name"`
	Description   string    `json:"description" toml:"description"`
	DurationWeeks int       `json:"duration_weeks" toml:"duration_weeks"`
	Level         string    `json:"level" toml:"level"`
	Goal          string    `json:"goal" toml:"goal"`
	CreatedAt     time.Time `json:"created_at" toml:"created_at"`
	Workouts      []Workout `json:"workouts" toml:"workout"`
}

// Workout is a reusable, day-indexed list of exercises. It is not tied to a date.
type Workout struct {
	ID          string         `json:"id" toml:"id"`
	PlanID      string         `json:"plan_id" toml:"plan_id"`
	DayNumber   int            `json:"day_number" toml:"day_number"`
	Name        string         `json:"name" toml:"name"`
	Description string         `json:"description" toml:"description"`
	Exercises   []PlanExercise `json:"exercises" toml:"exercise"`
}

type PlanExercise struct {
	ID          string `json:"id" toml:"id"`
	WorkoutID   string `json:"workout_id" toml:"workout_id"`
	Name        string `json:"name" toml:"name"`
	Sets        int    `json:"sets" toml:"sets"`
	Reps        string `json:"reps" toml:"reps"` // Free text, "8-10" or "10".
	RestSeconds int    `json:"rest_seconds" toml:"rest_seconds"`
	Notes       string `json:"notes,omitempty" toml:"notes,omitempty"`
	Order       int    `json:"order" toml:"order"`
}

//
// For plan file parsing only
//

type PlanFile struct {
	Name          string        `json:"name" toml:"name" yaml:"name"`
	Description   string        `json:"description" toml:"description" yaml:"description"`
	DurationWeeks int           `json:"duration" toml:"duration" yaml:"duration"`
	Level         string        `json:"level" toml:"level" yaml:"level"`
	Goal          string        `json:"goal" toml:"goal" yaml:"goal"`
	Workouts      []WorkoutFile `json:"workouts" toml:"workout" yaml:"workouts"`
}

type WorkoutFile struct {
	DayNumber   int            `json:"dayNumber" toml:"day_number" yaml:"day_number"`
	Name        string         `json:"name" toml:"name" yaml:"name"`
	Description string         `json:"description" toml:"description" yaml:"description"`
	Exercises   []ExerciseFile `json:"exercises" toml:"exercise" yaml:"exercises"`
}

type ExerciseFile struct {
	Name        string `json:"name" toml:"name" yaml:"name"`
	Sets        int    `json:"sets" toml:"sets" yaml:"sets"`
	Reps        string `json:"reps" toml:"reps" yaml:"reps"`
	RestSeconds int    `json:"restSeconds" toml:"rest_seconds" yaml:"rest_seconds"`
	Notes       string `json:"notes" toml:"notes" yaml:"notes"`
	Order       int    `json:"order" toml:"order" yaml:"order"`
}

// Validate reports every problem in the plan file, not just the first one.
func (p PlanFile) Validate() error {
	err := validateMeta(p.Name, p.DurationWeeks, p.Level, p.Goal)
	if len(p.Workouts) == 0 {
		err = multierr.Append(err, fmt.Errorf("at least one workout is required"))
	}

	for i, w := range p.Workouts {
		prefix := fmt.Sprintf("workout %d", i+1)
		if w.Name == "" {
			err = multierr.Append(err, fmt.Errorf("%s: name is required", prefix))
		} else {
			prefix = fmt.Sprintf("workout %q", w.Name)
		}
		if w.DayNumber < 1 || w.DayNumber > 7 {
			err = multierr.Append(err, fmt.Errorf("%s: day number must be between 1 and 7, got %d", prefix, w.DayNumber))
		}
		if len(w.Exercises) == 0 {
			err = multierr.Append(err, fmt.Errorf("%s: at least one exercise is required", prefix))
		}
		for j, ex := range w.Exercises {
			exPrefix := fmt.Sprintf("%s exercise %d", prefix, j+1)
			if ex.Name == "" {
				err = multierr.Append(err, fmt.Errorf("%s: name is required", exPrefix))
			}
			if ex.Sets <= 0 {
				err = multierr.Append(err, fmt.Errorf("%s: sets must be positive", exPrefix))
			}
			if ex.Reps == "" {
				err = multierr.Append(err, fmt.Errorf("%s: reps is required", exPrefix))
			}
			if ex.RestSeconds < 0 {
				err = multierr.Append(err, fmt.Errorf("%s: rest seconds must be >= 0", exPrefix))
			}
			if ex.Order < 1 {
				err = multierr.Append(err, fmt.Errorf("%s: order must be >= 1", exPrefix))
			}
		}
	}

	return err
}

func validateMeta(name string, durationWeeks int, level, goal string) error {
	var err error
	if name == "" {
		err = multierr.Append(err, fmt.Errorf("plan name is required"))
	}
	if durationWeeks <= 0 {
		err = multierr.Append(err, fmt.Errorf("duration must be positive, got %d", durationWeeks))
	}
	if !validLevels[level] {
		err = multierr.Append(err, fmt.Errorf("level must be beginner, intermediate or advanced, got %q", level))
	}
	if !validGoals[goal] {
		err = multierr.Append(err, fmt.Errorf("invalid goal %q", goal))
	}
	return err
}

// File converts a stored plan back to its import shape, so that it can be
// checked with PlanFile.Validate.
func (p Plan) File() PlanFile {
	f := PlanFile{
		Name:          p.Name,
		Description:   p.Description,
		DurationWeeks: p.DurationWeeks,
		Level:         p.Level,
		Goal:          p.Goal,
	}
	for _, w := range p.Workouts {
		wf := WorkoutFile{DayNumber: w.DayNumber, Name: w.Name, Description: w.Description}
		for _, ex := range w.Exercises {
			wf.Exercises = append(wf.Exercises, ExerciseFile{
				Name:        ex.Name,
				Sets:        ex.Sets,
				Reps:        ex.Reps,
				RestSeconds: ex.RestSeconds,
				Notes:       ex.Notes,
				Order:       ex.Order,
			})
		}
		f.Workouts = append(f.Workouts, wf)
	}
	return f
}

// PlanUpdate changes plan metadata; nil fields are left alone.
type PlanUpdate struct {
	Name          *string
	Description   *string
	DurationWeeks *int
	Level         *string
	Goal          *string
}

// Apply returns p with the update merged in, or the validation errors of the result.
func (u PlanUpdate) Apply(p Plan) (Plan, error) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.DurationWeeks != nil {
		p.DurationWeeks = *u.DurationWeeks
	}
	if u.Level != nil {
		p.Level = *u.Level
	}
	if u.Goal != nil {
		p.Goal = *u.Goal
	}
	if err := validateMeta(p.Name, p.DurationWeeks, p.Level, p.Goal); err != nil {
		return p, err
	}
	return p, nil
}
