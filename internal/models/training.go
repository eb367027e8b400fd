package models

import "time"

// FinishedSession is the durable record of a session once it has been finished.
type FinishedSession struct {
	ID          string        `json:"id" toml:"id"`
	PlanName    string        `json:"plan_name" toml:"plan_name"`
	WorkoutName string        `json:"workout_name" toml:"workout_name"`
	StartTime   time.Time     `json:"start_time" toml:"start_time"`
	EndTime     time.Time     `json:"end_time" toml:"end_time"`
	Completed   bool          `json:"completed" toml:"completed"`
	Notes       string        `json:"notes" toml:"notes"`
	Logs        []ExerciseLog `json:"logs" toml:"log"`
}

type ExerciseLog struct {
	ID           string    `json:"id" toml:"id"`
	SessionID    string    `json:"session_id" toml:"session_id"`
	ExerciseName string    `json:"exercise_name" toml:"exercise_name"`
	SetNumber    int       `json:"set_number" toml:"set_number"`
	Reps         int       `json:"reps" toml:"reps"`
	Weight       float32   `json:"weight" toml:"weight"`
	CreatedAt    time.Time `json:"created_at" toml:"created_at"`
}

type PersonalRecord struct {
	ExerciseName string    `json:"exercise_name"`
	MaxWeight    float32   `json:"max_weight"`
	Reps         int       `json:"reps"`
	Date         time.Time `json:"date"`
	SessionID    string    `json:"session_id"`
	Estimated1RM float32   `json:"estimated_1rm"`
}

type ProgressPoint struct {
	Date   time.Time `json:"date"`
	Weight float32   `json:"weight"`
	Reps   int       `json:"reps"`
	Volume float32   `json:"volume"` // weight * reps
}

// SessionFilter narrows history queries. Zero values mean "no filter".
type SessionFilter struct {
	PlanName string
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

// SessionUpdate edits a finished session; nil fields are left alone.
type SessionUpdate struct {
	Notes     *string
	Completed *bool
}

// LogUpdate edits one logged set; nil fields are left alone.
type LogUpdate struct {
	Weight *float32
	Reps   *int
}
