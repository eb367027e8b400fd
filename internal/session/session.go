// Package session holds the single in-progress workout, persisted between
// invocations, and the pure functions that mutate and measure it.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/misterclayt0n/gymweek/internal/state"
	log "github.com/sirupsen/logrus"
)

const DefaultExpiry = 24 * time.Hour

var (
	ErrNoActiveSession = errors.New("no active session")
	ErrFinishDeclined  = errors.New("finish declined, session left in progress")
)

// Store is the repository of the active session. There is at most one: Start
// replaces whatever was there before.
type Store struct {
	blobs  *state.Store
	expiry time.Duration
	Now    func() time.Time
	NewID  func() string
}

func NewStore(blobs *state.Store, expiry time.Duration) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Store{
		blobs:  blobs,
		expiry: expiry,
		Now:    time.Now,
		NewID:  func() string { return uuid.New().String() },
	}
}

// Start materializes a new session from a workout template and persists it,
// overwriting any previous session. Each exercise gets one empty set per
// target set.
func (s *Store) Start(workout models.Workout, planName string) (models.ActiveWorkoutSession, error) {
	session := models.ActiveWorkoutSession{
		ID:        s.NewID(),
		Name:      workout.Name,
		PlanName:  planName,
		StartTime: s.Now().UTC(),
		Exercises: make([]models.ExerciseInSession, 0, len(workout.Exercises)),
	}

	for _, ex := range workout.Exercises {
		sets := make([]models.WorkoutSet, max(ex.Sets, 0))
		session.Exercises = append(session.Exercises, models.ExerciseInSession{
			ID:          ex.ID,
			Name:        ex.Name,
			TargetSets:  ex.Sets,
			TargetReps:  ex.Reps,
			RestSeconds: ex.RestSeconds,
			Sets:        sets,
		})
	}

	if err := s.Save(session); err != nil {
		return models.ActiveWorkoutSession{}, err
	}
	return session, nil
}

// Save persists the full session state.
func (s *Store) Save(session models.ActiveWorkoutSession) error {
	if err := s.blobs.Save(state.KeyActiveWorkout, session); err != nil {
		return fmt.Errorf("saving active session: %w", err)
	}
	return nil
}

// Load returns the persisted session. ok is false when there is none, when it
// cannot be decoded, or when it is older than the expiry window; an expired
// session is also cleared.
func (s *Store) Load() (session models.ActiveWorkoutSession, ok bool) {
	found, err := s.blobs.Load(state.KeyActiveWorkout, &session)
	if err != nil {
		log.Warnf("failed to load active session, ignoring it: %s", err)
		return models.ActiveWorkoutSession{}, false
	}
	if !found {
		return models.ActiveWorkoutSession{}, false
	}

	if s.Now().Sub(session.StartTime) > s.expiry {
		log.Debugf("session %s started at %s has expired", session.ID, session.StartTime)
		if err := s.Clear(); err != nil {
			log.Warnf("failed to clear expired session: %s", err)
		}
		return models.ActiveWorkoutSession{}, false
	}

	return session, true
}

// Active reports whether a resumable session exists.
func (s *Store) Active() bool {
	_, ok := s.Load()
	return ok
}

// Clear removes the persisted session.
func (s *Store) Clear() error {
	if err := s.blobs.Remove(state.KeyActiveWorkout); err != nil {
		return fmt.Errorf("clearing active session: %w", err)
	}
	return nil
}

// Finish ends the session. When some sets are still incomplete, confirm is
// asked first and a negative answer leaves the session untouched. record, if
// not nil, runs before the session is cleared; its failure keeps the session.
func (s *Store) Finish(session models.ActiveWorkoutSession, confirm func() bool, record func(models.ActiveWorkoutSession) error) error {
	if done, total := CompletedSets(session); done < total && (confirm == nil || !confirm()) {
		return ErrFinishDeclined
	}

	if record != nil {
		if err := record(session); err != nil {
			return err
		}
	}

	return s.Clear()
}

func clone(s models.ActiveWorkoutSession) models.ActiveWorkoutSession {
	out := s
	out.Exercises = make([]models.ExerciseInSession, len(s.Exercises))
	for i, ex := range s.Exercises {
		ex.Sets = append([]models.WorkoutSet(nil), ex.Sets...)
		for j := range ex.Sets {
			if w := ex.Sets[j].Weight; w != nil {
				v := *w
				ex.Sets[j].Weight = &v
			}
			if r := ex.Sets[j].Reps; r != nil {
				v := *r
				ex.Sets[j].Reps = &v
			}
		}
		out.Exercises[i] = ex
	}
	return out
}

// UpdateSet returns a copy of session with the given set's fields merged from
// update. Unknown exercises or set indexes return session unchanged.
func UpdateSet(session models.ActiveWorkoutSession, exerciseID string, setIndex int, update models.SetUpdate) models.ActiveWorkoutSession {
	exIdx := session.Exercise(exerciseID)
	if exIdx < 0 || setIndex < 0 || setIndex >= len(session.Exercises[exIdx].Sets) {
		return session
	}

	out := clone(session)
	set := &out.Exercises[exIdx].Sets[setIndex]
	if update.Completed != nil {
		set.Completed = *update.Completed
	}
	if update.Weight != nil {
		w := *update.Weight
		set.Weight = &w
	}
	if update.Reps != nil {
		r := *update.Reps
		set.Reps = &r
	}
	return out
}

// ToggleSetCompletion flips the completed flag of one set. Weight and reps are
// not required.
func ToggleSetCompletion(session models.ActiveWorkoutSession, exerciseID string, setIndex int) models.ActiveWorkoutSession {
	exIdx := session.Exercise(exerciseID)
	if exIdx < 0 || setIndex < 0 || setIndex >= len(session.Exercises[exIdx].Sets) {
		return session
	}

	completed := !session.Exercises[exIdx].Sets[setIndex].Completed
	return UpdateSet(session, exerciseID, setIndex, models.SetUpdate{Completed: &completed})
}

// ToggleExpanded flips the UI-only expanded flag of an exercise.
func ToggleExpanded(session models.ActiveWorkoutSession, exerciseID string) models.ActiveWorkoutSession {
	exIdx := session.Exercise(exerciseID)
	if exIdx < 0 {
		return session
	}
	out := clone(session)
	out.Exercises[exIdx].Expanded = !out.Exercises[exIdx].Expanded
	return out
}
