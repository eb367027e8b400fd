package storage

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/misterclayt0n/gymweek/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	st, err := NewStorage("file:" + filepath.Join(t.TempDir(), "db", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func upperLower() models.PlanFile {
	return models.PlanFile{
		Name:          "Upper/Lower",
		Description:   "Four days a week",
		DurationWeeks: 8,
		Level:         models.LevelIntermediate,
		Goal:          models.GoalHypertrophy,
		Workouts: []models.WorkoutFile{
			{
				DayNumber: 4,
				Name:      "Lower",
				Exercises: []models.ExerciseFile{
					{Name: "Romanian deadlift", Sets: 3, Reps: "8-10", RestSeconds: 120, Order: 2},
					{Name: "Squat", Sets: 4, Reps: "5", RestSeconds: 180, Order: 1},
				},
			},
			{
				DayNumber: 1,
				Name:      "Upper",
				Exercises: []models.ExerciseFile{
					{Name: "Bench press", Sets: 4, Reps: "8-10", RestSeconds: 180, Order: 1},
				},
			},
		},
	}
}

func TestResolve(t *testing.T) {
	driver, dsn, err := resolve("libsql://gym.turso.io?authToken=x")
	require.NoError(t, err)
	assert.Equal(t, "libsql", driver)
	assert.Equal(t, "libsql://gym.turso.io?authToken=x", dsn)

	driver, dsn, err = resolve("file:" + filepath.Join(t.TempDir(), "a.db") + "?cache=shared")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", driver)
	assert.Contains(t, dsn, "a.db?_pragma=foreign_keys(1)")
	assert.NotContains(t, dsn, "cache=shared")

	_, _, err = resolve("")
	assert.Error(t, err)
}

func TestStorage_CreateAndGetPlan(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	created, err := st.CreatePlan(ctx, upperLower())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	plan, err := st.GetPlan(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Upper/Lower", plan.Name)
	assert.Equal(t, 8, plan.DurationWeeks)
	assert.Equal(t, models.GoalHypertrophy, plan.Goal)
	require.Len(t, plan.Workouts, 2)

	// Ordered by day number, exercises by position.
	assert.Equal(t, "Upper", plan.Workouts[0].Name)
	lower := plan.Workouts[1]
	assert.Equal(t, created.ID, lower.PlanID)
	require.Len(t, lower.Exercises, 2)
	assert.Equal(t, "Squat", lower.Exercises[0].Name)
	assert.Equal(t, "5", lower.Exercises[0].Reps)
	assert.Equal(t, 180, lower.Exercises[0].RestSeconds)
	assert.Equal(t, "Romanian deadlift", lower.Exercises[1].Name)

	name, err := st.GetPlanName(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Upper/Lower", name)

	exists, err := st.PlanExists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = st.WorkoutExists(ctx, lower.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStorage_CreatePlanRejectsInvalid(t *testing.T) {
	st := newTestStorage(t)
	file := upperLower()
	file.Level = "elite"

	_, err := st.CreatePlan(context.Background(), file)
	assert.Error(t, err)

	plans, err := st.ListPlans(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestStorage_NotFound(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	_, err := st.GetPlan(ctx, "nope")
	assert.ErrorIs(t, err, ErrPlanNotFound)
	_, err = st.GetWorkout(ctx, "nope")
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
	_, err = st.GetSession(ctx, "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = st.GetPlanName(ctx, "nope")
	assert.ErrorIs(t, err, ErrPlanNotFound)
	assert.ErrorIs(t, st.DeletePlan(ctx, "nope"), ErrPlanNotFound)
	assert.ErrorIs(t, st.DeleteSession(ctx, "nope"), ErrSessionNotFound)
}

func TestStorage_DeletePlanCascades(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	plan, err := st.CreatePlan(ctx, upperLower())
	require.NoError(t, err)
	workoutID := plan.Workouts[0].ID

	require.NoError(t, st.DeletePlan(ctx, plan.ID))

	_, err = st.GetWorkout(ctx, workoutID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	var count int
	require.NoError(t, st.DB.QueryRow(`SELECT COUNT(*) FROM plan_exercises`).Scan(&count))
	assert.Zero(t, count)
}

func finishedSession(id, exercise string, start time.Time, sets ...[2]float32) models.ActiveWorkoutSession {
	ex := models.ExerciseInSession{ID: "ex-" + id, Name: exercise, TargetSets: len(sets)}
	for _, s := range sets {
		ex.Sets = append(ex.Sets, models.WorkoutSet{
			Completed: true,
			Weight:    utils.Ptr(s[0]),
			Reps:      utils.Ptr(int(s[1])),
		})
	}
	return models.ActiveWorkoutSession{
		ID:        id,
		Name:      "Upper",
		PlanName:  "Upper/Lower",
		StartTime: start,
		Exercises: []models.ExerciseInSession{ex},
	}
}

func TestFinishedFromActive(t *testing.T) {
	start := time.Date(2026, 1, 14, 18, 0, 0, 0, time.UTC)
	active := models.ActiveWorkoutSession{
		ID:        "s1",
		Name:      "Upper",
		PlanName:  "Upper/Lower",
		StartTime: start,
		Exercises: []models.ExerciseInSession{
			{Name: "Bench press", Sets: []models.WorkoutSet{
				{Completed: true, Weight: utils.Ptr(float32(80)), Reps: utils.Ptr(8)},
				{Completed: false, Weight: utils.Ptr(float32(80)), Reps: utils.Ptr(8)},
				{Completed: true, Reps: utils.Ptr(12)},
				{Completed: true, Weight: utils.Ptr(float32(80))},
			}},
		},
	}

	fs := FinishedFromActive(active, start.Add(time.Hour))
	assert.Equal(t, "s1", fs.ID)
	assert.Equal(t, "Upper", fs.WorkoutName)
	assert.False(t, fs.Completed)
	require.Len(t, fs.Logs, 2)
	assert.Equal(t, 1, fs.Logs[0].SetNumber)
	assert.Equal(t, float32(80), fs.Logs[0].Weight)
	assert.Equal(t, 3, fs.Logs[1].SetNumber)
	assert.Equal(t, float32(0), fs.Logs[1].Weight)
	assert.Equal(t, 12, fs.Logs[1].Reps)
}

func TestStorage_SaveAndListSessions(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)
	day := time.Date(2026, 1, 12, 18, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		start := day.AddDate(0, 0, i*2)
		fs := FinishedFromActive(finishedSession(gofakeit.UUID(), "Bench press", start, [2]float32{80, 8}), start.Add(time.Hour))
		require.NoError(t, st.SaveFinishedSession(ctx, fs))
	}
	other := FinishedFromActive(finishedSession("other", "Squat", day, [2]float32{100, 5}), day.Add(time.Hour))
	other.PlanName = "5x5"
	require.NoError(t, st.SaveFinishedSession(ctx, other))

	all, err := st.ListSessions(ctx, models.SessionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.True(t, all[0].StartTime.After(all[3].StartTime) || all[0].StartTime.Equal(all[3].StartTime))
	assert.True(t, all[0].Completed)

	byPlan, err := st.ListSessions(ctx, models.SessionFilter{PlanName: "5X5"})
	require.NoError(t, err)
	require.Len(t, byPlan, 1)
	assert.Equal(t, "other", byPlan[0].ID)

	ranged, err := st.ListSessions(ctx, models.SessionFilter{From: day.AddDate(0, 0, 1), To: day.AddDate(0, 0, 3)})
	require.NoError(t, err)
	assert.Len(t, ranged, 1)

	paged, err := st.ListSessions(ctx, models.SessionFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, paged, 2)

	got, err := st.GetSession(ctx, "other")
	require.NoError(t, err)
	require.Len(t, got.Logs, 1)
	assert.Equal(t, "Squat", got.Logs[0].ExerciseName)
	assert.Equal(t, float32(100), got.Logs[0].Weight)

	starts, err := st.SessionStartTimes(ctx)
	require.NoError(t, err)
	assert.Len(t, starts, 4)
}

func TestStorage_SaveFinishedSessionTwiceReplacesLogs(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)
	start := time.Date(2026, 1, 12, 18, 0, 0, 0, time.UTC)

	fs := FinishedFromActive(finishedSession("s1", "Row", start, [2]float32{60, 10}, [2]float32{60, 9}), start.Add(time.Hour))
	require.NoError(t, st.SaveFinishedSession(ctx, fs))
	fs.Notes = "felt strong"
	require.NoError(t, st.SaveFinishedSession(ctx, fs))

	got, err := st.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "felt strong", got.Notes)
	assert.Len(t, got.Logs, 2)

	require.NoError(t, st.DeleteSession(ctx, "s1"))
	var count int
	require.NoError(t, st.DB.QueryRow(`SELECT COUNT(*) FROM exercise_logs`).Scan(&count))
	assert.Zero(t, count)
}

func TestStorage_PersonalRecordsAndProgress(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)
	day := time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC)

	sessions := []models.ActiveWorkoutSession{
		finishedSession("a", "Bench press", day, [2]float32{80, 8}, [2]float32{85, 5}),
		finishedSession("b", "Bench press", day.AddDate(0, 0, 7), [2]float32{85, 6}, [2]float32{70, 12}),
		finishedSession("c", "Squat", day.AddDate(0, 0, 2), [2]float32{120, 5}),
	}
	for _, s := range sessions {
		require.NoError(t, st.SaveFinishedSession(ctx, FinishedFromActive(s, s.StartTime.Add(time.Hour))))
	}

	records, err := st.PersonalRecords(ctx, "")
	require.NoError(t, err)
	require.Len(t, records, 2)

	bench := records[0]
	assert.Equal(t, "Bench press", bench.ExerciseName)
	assert.Equal(t, float32(85), bench.MaxWeight)
	assert.Equal(t, 6, bench.Reps, "ties on weight go to more reps")
	assert.Equal(t, "b", bench.SessionID)
	assert.InDelta(t, 85*(1+6.0/30), bench.Estimated1RM, 0.01)

	assert.Equal(t, "Squat", records[1].ExerciseName)

	only, err := st.PersonalRecords(ctx, "squat")
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, float32(120), only[0].MaxWeight)

	progress, err := st.ExerciseProgress(ctx, "bench press")
	require.NoError(t, err)
	require.Len(t, progress, 4)
	assert.Equal(t, float32(80*8), progress[0].Volume)
	assert.True(t, progress[3].Date.After(progress[0].Date))
}

func TestStorage_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestStorage(t)

	plan, err := src.CreatePlan(ctx, upperLower())
	require.NoError(t, err)

	start := time.Date(2026, 1, 12, 18, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		s := finishedSession(gofakeit.UUID(), gofakeit.RandomString([]string{"Bench press", "Squat", "Row"}), start.AddDate(0, 0, i),
			[2]float32{float32(gofakeit.Number(40, 140)), float32(gofakeit.Number(1, 12))})
		require.NoError(t, src.SaveFinishedSession(ctx, FinishedFromActive(s, s.StartTime.Add(time.Hour))))
	}

	var buf bytes.Buffer
	require.NoError(t, src.ExportTOML(ctx, &buf))

	dst := newTestStorage(t)
	plans, sessions, err := dst.ImportTOML(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, plans)
	assert.Equal(t, 3, sessions)

	got, err := dst.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	want, err := src.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Importing again replaces instead of duplicating.
	_, _, err = dst.ImportTOML(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	all, err := dst.ListSessions(ctx, models.SessionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func encodeDump(t *testing.T, dump Dump) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, toml.NewEncoder(&buf).Encode(dump))
	return bytes.NewReader(buf.Bytes())
}

func TestStorage_ImportRejectsInvalidPlan(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)
	start := time.Date(2026, 1, 12, 18, 0, 0, 0, time.UTC)

	bad := models.Plan{
		ID:            "p1",
		Name:          "Broken",
		DurationWeeks: 4,
		Level:         "elite",
		Goal:          models.GoalStrength,
		Workouts: []models.Workout{{
			ID:        "w1",
			PlanID:    "p1",
			DayNumber: 9,
			Name:      "Push",
			Exercises: []models.PlanExercise{{ID: "e1", WorkoutID: "w1", Name: "Bench", Sets: -1, Order: 0}},
		}},
	}
	session := FinishedFromActive(finishedSession("s1", "Row", start, [2]float32{60, 10}), start.Add(time.Hour))

	_, _, err := st.ImportTOML(ctx, encodeDump(t, Dump{Plans: []models.Plan{bad}, Sessions: []models.FinishedSession{session}}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sets must be positive")
	assert.Contains(t, err.Error(), "day number must be between 1 and 7")

	plans, err := st.ListPlans(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
	sessions, err := st.ListSessions(ctx, models.SessionFilter{})
	require.NoError(t, err)
	assert.Empty(t, sessions, "nothing is written when a plan is invalid")
}

func TestStorage_ImportFailureKeepsExistingPlan(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	created, err := st.CreatePlan(ctx, upperLower())
	require.NoError(t, err)
	before, err := st.GetPlan(ctx, created.ID)
	require.NoError(t, err)

	// Two workouts sharing an id pass validation but fail on insert.
	replacement := *before
	replacement.Name = "Replaced"
	replacement.Workouts = append([]models.Workout(nil), before.Workouts...)
	replacement.Workouts[1].ID = replacement.Workouts[0].ID

	_, _, err = st.ImportTOML(ctx, encodeDump(t, Dump{Plans: []models.Plan{replacement}}))
	require.Error(t, err)

	after, err := st.GetPlan(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStorage_UpdatePlan(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	created, err := st.CreatePlan(ctx, upperLower())
	require.NoError(t, err)

	updated, err := st.UpdatePlan(ctx, created.ID, models.PlanUpdate{
		Name:          utils.Ptr("Upper/Lower v2"),
		DurationWeeks: utils.Ptr(10),
		Level:         utils.Ptr(models.LevelAdvanced),
	})
	require.NoError(t, err)
	assert.Equal(t, "Upper/Lower v2", updated.Name)

	got, err := st.GetPlan(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Upper/Lower v2", got.Name)
	assert.Equal(t, 10, got.DurationWeeks)
	assert.Equal(t, models.LevelAdvanced, got.Level)
	assert.Equal(t, models.GoalHypertrophy, got.Goal)
	assert.Equal(t, "Four days a week", got.Description)
	assert.Len(t, got.Workouts, 2)

	_, err = st.UpdatePlan(ctx, created.ID, models.PlanUpdate{Goal: utils.Ptr("fun"), DurationWeeks: utils.Ptr(0)})
	require.Error(t, err)
	got, err = st.GetPlan(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GoalHypertrophy, got.Goal)
	assert.Equal(t, 10, got.DurationWeeks)

	_, err = st.UpdatePlan(ctx, "nope", models.PlanUpdate{Name: utils.Ptr("x")})
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestStorage_EditFinishedSession(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)
	start := time.Date(2026, 1, 12, 18, 0, 0, 0, time.UTC)

	fs := FinishedFromActive(finishedSession("s1", "Row", start, [2]float32{60, 10}, [2]float32{60, 9}), start.Add(time.Hour))
	require.NoError(t, st.SaveFinishedSession(ctx, fs))

	require.NoError(t, st.UpdateSession(ctx, "s1", models.SessionUpdate{
		Notes:     utils.Ptr("grip gave out"),
		Completed: utils.Ptr(false),
	}))
	got, err := st.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "grip gave out", got.Notes)
	assert.False(t, got.Completed)
	require.Len(t, got.Logs, 2)

	first, second := got.Logs[0], got.Logs[1]
	require.NoError(t, st.UpdateLog(ctx, first.ID, models.LogUpdate{Weight: utils.Ptr(float32(62.5))}))
	require.NoError(t, st.DeleteLog(ctx, second.ID))

	got, err = st.GetSession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Logs, 1)
	assert.Equal(t, float32(62.5), got.Logs[0].Weight)
	assert.Equal(t, first.Reps, got.Logs[0].Reps)

	assert.Error(t, st.UpdateLog(ctx, first.ID, models.LogUpdate{Reps: utils.Ptr(0)}))
	assert.ErrorIs(t, st.UpdateLog(ctx, "nope", models.LogUpdate{Reps: utils.Ptr(5)}), ErrLogNotFound)
	assert.ErrorIs(t, st.DeleteLog(ctx, second.ID), ErrLogNotFound)
	assert.ErrorIs(t, st.UpdateSession(ctx, "nope", models.SessionUpdate{Notes: utils.Ptr("x")}), ErrSessionNotFound)
	assert.NoError(t, st.UpdateSession(ctx, "nope", models.SessionUpdate{}))
}
