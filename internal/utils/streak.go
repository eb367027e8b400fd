package utils

import (
	"fmt"
	"time"
)

// ComputeWeekStreak counts consecutive ISO weeks, ending with the week of now,
// that contain at least one of the given session start times.
func ComputeWeekStreak(starts []time.Time, now time.Time) int {
	weekSet := make(map[string]bool)
	for _, s := range starts {
		year, week := s.In(now.Location()).ISOWeek()
		weekSet[fmt.Sprintf("%d-%02d", year, week)] = true
	}

	streak := 0
	year, week := now.ISOWeek()
	for weekSet[fmt.Sprintf("%d-%02d", year, week)] {
		streak++
		now = now.AddDate(0, 0, -7)
		year, week = now.ISOWeek()
	}
	return streak
}
