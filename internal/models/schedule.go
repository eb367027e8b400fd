package models

// ScheduledDay is one day of a WeekSchedule. An empty WorkoutID is a rest day.
type ScheduledDay struct {
	Date         string `toml:"date"` // "2006-01-02"
	DayName      string `toml:"day_name"`
	DayShortName string `toml:"day_short_name"`
	WorkoutID    string `toml:"workout_id,omitempty"`
	IsToday      bool   `toml:"-"` // Recomputed on every read.
}

// WeekSchedule assigns workouts (or rest) to the seven days of one ISO week.
type WeekSchedule struct {
	WeekID string         `toml:"week_id"` // "2026-W02"
	PlanID string         `toml:"plan_id"`
	Days   []ScheduledDay `toml:"day"`
}

// Day returns a pointer to the entry for date, or nil.
func (w *WeekSchedule) Day(date string) *ScheduledDay {
	for i := range w.Days {
		if w.Days[i].Date == date {
			return &w.Days[i]
		}
	}
	return nil
}

// Today returns today's entry, or nil when the week is not the current one.
func (w *WeekSchedule) Today() *ScheduledDay {
	for i := range w.Days {
		if w.Days[i].IsToday {
			return &w.Days[i]
		}
	}
	return nil
}
