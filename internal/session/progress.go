package session

import "github.com/misterclayt0n/gymweek/internal/models"

// CompletedSets counts completed and total sets across every exercise.
func CompletedSets(session models.ActiveWorkoutSession) (done, total int) {
	for _, ex := range session.Exercises {
		total += len(ex.Sets)
		for _, set := range ex.Sets {
			if set.Completed {
				done++
			}
		}
	}
	return done, total
}

// CalculateProgress returns the share of completed sets as a percentage in
// [0, 100]. A session without sets is at 0.
func CalculateProgress(session models.ActiveWorkoutSession) float64 {
	done, total := CompletedSets(session)
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}

// IsExerciseCompleted is true when every set is completed, and vacuously true
// for an exercise without sets.
func IsExerciseCompleted(exercise models.ExerciseInSession) bool {
	for _, set := range exercise.Sets {
		if !set.Completed {
			return false
		}
	}
	return true
}
