package models

import "time"

type WorkoutSet struct {
	Completed bool     `toml:"completed"`
	Weight    *float32 `toml:"weight,omitempty"` // kg
	Reps      *int     `toml:"reps,omitempty"`
}

type ExerciseInSession struct {
	ID          string       `toml:"id"`
	Name        string       `toml:"name"`
	TargetSets  int          `toml:"target_sets"`
	TargetReps  string       `toml:"target_reps"`
	RestSeconds int          `toml:"rest_seconds"`
	Sets        []WorkoutSet `toml:"set"`
	Expanded    bool         `toml:"expanded"`
}

// ActiveWorkoutSession is a detached copy of a workout template being performed right now.
type ActiveWorkoutSession struct {
	ID        string              `toml:"id"`
	Name      string              `toml:"name"`
	PlanName  string              `toml:"plan_name"`
	StartTime time.Time           `toml:"start_time"`
	Exercises []ExerciseInSession `toml:"exercise"`
}

// Exercise returns the index of the exercise with the given id, or -1.
func (s *ActiveWorkoutSession) Exercise(id string) int {
	for i := range s.Exercises {
		if s.Exercises[i].ID == id {
			return i
		}
	}
	return -1
}

// SetUpdate is a partial update to a WorkoutSet; nil fields are left alone.
type SetUpdate struct {
	Completed *bool
	Weight    *float32
	Reps      *int
}
