package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/misterclayt0n/gymweek/internal/state"
	"github.com/misterclayt0n/gymweek/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var started = time.Date(2026, time.January, 14, 18, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	st := NewStore(state.NewStore(dir), DefaultExpiry)
	st.Now = func() time.Time { return started }
	ids := 0
	st.NewID = func() string {
		ids++
		return fmt.Sprintf("session-%d", ids)
	}
	return st, dir
}

func pushDay() models.Workout {
	return models.Workout{
		ID:        "w1",
		DayNumber: 1,
		Name:      "Push",
		Exercises: []models.PlanExercise{
			{ID: "bench", Name: "Bench press", Sets: 4, Reps: "8-10", RestSeconds: 180, Order: 1},
			{ID: "dips", Name: "Dips", Sets: 3, Reps: "10-12", RestSeconds: 90, Order: 2},
		},
	}
}

func TestStore_StartBuildsEmptySets(t *testing.T) {
	st, _ := newTestStore(t)

	s, err := st.Start(pushDay(), "Upper/Lower")
	require.NoError(t, err)
	assert.Equal(t, "session-1", s.ID)
	assert.Equal(t, "Push", s.Name)
	assert.Equal(t, "Upper/Lower", s.PlanName)
	assert.Equal(t, started, s.StartTime)
	require.Len(t, s.Exercises, 2)

	bench := s.Exercises[0]
	assert.Equal(t, "bench", bench.ID)
	assert.Equal(t, 4, bench.TargetSets)
	assert.Equal(t, "8-10", bench.TargetReps)
	assert.Equal(t, 180, bench.RestSeconds)
	require.Len(t, bench.Sets, 4)
	for _, set := range bench.Sets {
		assert.False(t, set.Completed)
		assert.Nil(t, set.Weight)
		assert.Nil(t, set.Reps)
	}
	assert.Len(t, s.Exercises[1].Sets, 3)

	loaded, ok := st.Load()
	require.True(t, ok)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Len(t, loaded.Exercises[0].Sets, 4)
}

func TestStore_StartReplacesPreviousSession(t *testing.T) {
	st, _ := newTestStore(t)

	first, err := st.Start(pushDay(), "A")
	require.NoError(t, err)
	first = ToggleSetCompletion(first, "bench", 0)
	require.NoError(t, st.Save(first))

	second, err := st.Start(models.Workout{Name: "Pull", Exercises: []models.PlanExercise{
		{ID: "row", Name: "Row", Sets: 2, Reps: "8"},
	}}, "B")
	require.NoError(t, err)

	loaded, ok := st.Load()
	require.True(t, ok)
	assert.Equal(t, second.ID, loaded.ID)
	assert.NotEqual(t, first.ID, loaded.ID)
	assert.Equal(t, "Pull", loaded.Name)
	require.Len(t, loaded.Exercises, 1)
	assert.Equal(t, 0.0, CalculateProgress(loaded))
}

func TestStore_SaveLoadKeepsSetData(t *testing.T) {
	st, _ := newTestStore(t)
	s, err := st.Start(pushDay(), "A")
	require.NoError(t, err)

	s = UpdateSet(s, "bench", 2, models.SetUpdate{
		Completed: utils.Ptr(true),
		Weight:    utils.Ptr(float32(82.5)),
		Reps:      utils.Ptr(8),
	})
	require.NoError(t, st.Save(s))

	loaded, ok := st.Load()
	require.True(t, ok)
	set := loaded.Exercises[0].Sets[2]
	assert.True(t, set.Completed)
	require.NotNil(t, set.Weight)
	assert.Equal(t, float32(82.5), *set.Weight)
	require.NotNil(t, set.Reps)
	assert.Equal(t, 8, *set.Reps)
	assert.Nil(t, loaded.Exercises[0].Sets[1].Weight)
}

func TestStore_LoadExpired(t *testing.T) {
	st, dir := newTestStore(t)
	_, err := st.Start(pushDay(), "A")
	require.NoError(t, err)

	st.Now = func() time.Time { return started.Add(25 * time.Hour) }
	_, ok := st.Load()
	assert.False(t, ok)
	_, ok = st.Load()
	assert.False(t, ok)

	_, err = os.Stat(filepath.Join(dir, "active_workout.toml"))
	assert.True(t, os.IsNotExist(err), "expired session must be cleared")
}

func TestStore_LoadAtExpiryBoundary(t *testing.T) {
	st, _ := newTestStore(t)
	_, err := st.Start(pushDay(), "A")
	require.NoError(t, err)

	st.Now = func() time.Time { return started.Add(24 * time.Hour) }
	assert.True(t, st.Active())
}

func TestStore_LoadMissingOrCorrupt(t *testing.T) {
	st, dir := newTestStore(t)
	assert.False(t, st.Active())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "active_workout.toml"), []byte("id = = ="), 0644))
	_, ok := st.Load()
	assert.False(t, ok)
}

func TestStore_Clear(t *testing.T) {
	st, _ := newTestStore(t)
	_, err := st.Start(pushDay(), "A")
	require.NoError(t, err)

	require.NoError(t, st.Clear())
	assert.False(t, st.Active())
	require.NoError(t, st.Clear())
}

func TestStore_FinishIncompleteDeclined(t *testing.T) {
	st, _ := newTestStore(t)
	s, err := st.Start(pushDay(), "A")
	require.NoError(t, err)

	asked := false
	err = st.Finish(s, func() bool { asked = true; return false }, nil)
	assert.ErrorIs(t, err, ErrFinishDeclined)
	assert.True(t, asked)
	assert.True(t, st.Active())
}

func TestStore_FinishIncompleteConfirmed(t *testing.T) {
	st, _ := newTestStore(t)
	s, err := st.Start(pushDay(), "A")
	require.NoError(t, err)

	var recorded models.ActiveWorkoutSession
	err = st.Finish(s, func() bool { return true }, func(s models.ActiveWorkoutSession) error {
		recorded = s
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, s.ID, recorded.ID)
	assert.False(t, st.Active())
}

func TestStore_FinishCompleteSkipsConfirmation(t *testing.T) {
	st, _ := newTestStore(t)
	s, err := st.Start(models.Workout{Name: "Short", Exercises: []models.PlanExercise{
		{ID: "curl", Name: "Curl", Sets: 1, Reps: "12"},
	}}, "A")
	require.NoError(t, err)
	s = ToggleSetCompletion(s, "curl", 0)

	err = st.Finish(s, func() bool {
		t.Fatal("confirmation must not be asked")
		return false
	}, nil)
	require.NoError(t, err)
	assert.False(t, st.Active())
}

func TestStore_FinishRecordFailureKeepsSession(t *testing.T) {
	st, _ := newTestStore(t)
	s, err := st.Start(pushDay(), "A")
	require.NoError(t, err)

	boom := errors.New("db down")
	err = st.Finish(s, func() bool { return true }, func(models.ActiveWorkoutSession) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.True(t, st.Active())
}

func TestUpdateSet(t *testing.T) {
	st, _ := newTestStore(t)
	s, err := st.Start(pushDay(), "A")
	require.NoError(t, err)

	updated := UpdateSet(s, "dips", 1, models.SetUpdate{Weight: utils.Ptr(float32(10))})
	require.NotNil(t, updated.Exercises[1].Sets[1].Weight)
	assert.Equal(t, float32(10), *updated.Exercises[1].Sets[1].Weight)
	assert.Nil(t, updated.Exercises[1].Sets[1].Reps)
	assert.False(t, updated.Exercises[1].Sets[1].Completed)

	// The input is not modified.
	assert.Nil(t, s.Exercises[1].Sets[1].Weight)

	// Merge keeps earlier fields.
	updated = UpdateSet(updated, "dips", 1, models.SetUpdate{Reps: utils.Ptr(12)})
	assert.Equal(t, float32(10), *updated.Exercises[1].Sets[1].Weight)
	assert.Equal(t, 12, *updated.Exercises[1].Sets[1].Reps)
}

func TestUpdateSet_UnknownTargetsAreNoop(t *testing.T) {
	st, _ := newTestStore(t)
	s, err := st.Start(pushDay(), "A")
	require.NoError(t, err)

	done := models.SetUpdate{Completed: utils.Ptr(true)}
	assert.Equal(t, s, UpdateSet(s, "missing", 0, done))
	assert.Equal(t, s, UpdateSet(s, "bench", 4, done))
	assert.Equal(t, s, UpdateSet(s, "bench", -1, done))
	assert.Equal(t, s, ToggleSetCompletion(s, "missing", 0))
}

func TestUpdateSet_DoesNotAliasWeights(t *testing.T) {
	s := models.ActiveWorkoutSession{Exercises: []models.ExerciseInSession{
		{ID: "a", Sets: []models.WorkoutSet{{Weight: utils.Ptr(float32(50))}, {}}},
	}}

	out := UpdateSet(s, "a", 1, models.SetUpdate{Reps: utils.Ptr(5)})
	*out.Exercises[0].Sets[0].Weight = 60
	assert.Equal(t, float32(50), *s.Exercises[0].Sets[0].Weight)
}

func TestToggleSetCompletion(t *testing.T) {
	st, _ := newTestStore(t)
	s, err := st.Start(models.Workout{Name: "Legs", Exercises: []models.PlanExercise{
		{ID: "squat", Name: "Squat", Sets: 4, Reps: "5"},
	}}, "A")
	require.NoError(t, err)

	s = ToggleSetCompletion(s, "squat", 1)
	assert.Equal(t, 25.0, CalculateProgress(s))
	assert.False(t, IsExerciseCompleted(s.Exercises[0]))
	assert.True(t, s.Exercises[0].Sets[1].Completed)
	assert.Nil(t, s.Exercises[0].Sets[1].Weight, "completion does not require data")

	s = ToggleSetCompletion(s, "squat", 1)
	assert.False(t, s.Exercises[0].Sets[1].Completed)
	assert.Equal(t, 0.0, CalculateProgress(s))
}

func TestToggleExpanded(t *testing.T) {
	s := models.ActiveWorkoutSession{Exercises: []models.ExerciseInSession{{ID: "a"}}}
	out := ToggleExpanded(s, "a")
	assert.True(t, out.Exercises[0].Expanded)
	assert.False(t, s.Exercises[0].Expanded)
	assert.Equal(t, s, ToggleExpanded(s, "b"))
}

func TestStore_StartClampsNegativeSetCount(t *testing.T) {
	st, _ := newTestStore(t)
	w := models.Workout{Name: "Odd", Exercises: []models.PlanExercise{
		{ID: "a", Name: "A", Sets: -1, Reps: "5"},
		{ID: "b", Name: "B", Sets: 2, Reps: "5"},
	}}

	s, err := st.Start(w, "A")
	require.NoError(t, err)
	assert.Empty(t, s.Exercises[0].Sets)
	assert.Len(t, s.Exercises[1].Sets, 2)
}

func TestStore_FinishWithoutSetsSkipsConfirmation(t *testing.T) {
	st, _ := newTestStore(t)
	s, err := st.Start(models.Workout{Name: "Mobility", Exercises: []models.PlanExercise{
		{ID: "stretch", Name: "Stretch", Sets: 0},
	}}, "A")
	require.NoError(t, err)

	err = st.Finish(s, func() bool {
		t.Fatal("confirmation must not be asked")
		return false
	}, nil)
	require.NoError(t, err)
	assert.False(t, st.Active())
}
