// Package schedule keeps track of which workout, if any, is planned for each
// day of each ISO week, and which plan a week follows.
package schedule

import (
	"fmt"
	"math"
	"time"

	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/misterclayt0n/gymweek/internal/state"
	"github.com/misterclayt0n/gymweek/internal/utils"
	log "github.com/sirupsen/logrus"
)

// DateLayout is the format of ScheduledDay.Date.
const DateLayout = "2006-01-02"

type weekFile struct {
	Weeks []models.WeekSchedule `toml:"week"`
}

// Store reads and writes week schedules. Weeks are keyed by ISO week id, so the
// same week is found regardless of the offset used to reach it.
type Store struct {
	blobs  *state.Store
	locale string
	Now    func() time.Time
}

func NewStore(blobs *state.Store, locale string) *Store {
	return &Store{blobs: blobs, locale: locale, Now: time.Now}
}

// WeekID returns the ISO-8601 week identifier of date, e.g. "2026-W03".
// The year is the ISO week-numbering year, which differs from the calendar
// year for a few days around new year.
func WeekID(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeekDays computes the Monday to Sunday span that is offset weeks away from
// the week containing now.
func WeekDays(now time.Time, offset int, locale string) []models.ScheduledDay {
	days, _ := weekDays(now, offset, locale)
	return days
}

func weekDays(now time.Time, offset int, locale string) ([]models.ScheduledDay, time.Time) {
	loc := now.Location()
	y, m, d := now.Date()
	ref := time.Date(y, m, d+7*offset, 0, 0, 0, 0, loc)

	// Weekday is Sunday based; shift so Monday is 0.
	back := (int(ref.Weekday()) + 6) % 7
	ry, rm, rd := ref.Date()
	monday := time.Date(ry, rm, rd-back, 0, 0, 0, 0, loc)

	today := now.Format(DateLayout)
	days := make([]models.ScheduledDay, 0, 7)
	for i := 0; i < 7; i++ {
		my, mm, md := monday.Date()
		date := time.Date(my, mm, md+i, 0, 0, 0, 0, loc)
		full, short := utils.DayName(locale, date.Weekday())
		iso := date.Format(DateLayout)
		days = append(days, models.ScheduledDay{
			Date:         iso,
			DayName:      full,
			DayShortName: short,
			IsToday:      iso == today,
		})
	}
	return days, monday
}

// ComputeWeekDays returns the seven days of the week offset weeks from the current one.
func (s *Store) ComputeWeekDays(offset int) []models.ScheduledDay {
	return WeekDays(s.Now(), offset, s.locale)
}

// WeekIDForOffset returns the ISO week id of the week offset weeks from the current one.
func (s *Store) WeekIDForOffset(offset int) string {
	_, monday := weekDays(s.Now(), offset, s.locale)
	return WeekID(monday)
}

// IsToday reports whether date ("2006-01-02") is today.
func (s *Store) IsToday(date string) bool {
	return date == s.Now().Format(DateLayout)
}

// FormatWeekRange renders the week as e.g. "12-18 Jan 2026", using the month
// and year of its Monday.
func (s *Store) FormatWeekRange(offset int) string {
	_, monday := weekDays(s.Now(), offset, s.locale)
	sunday := monday.AddDate(0, 0, 6)
	return fmt.Sprintf("%d-%d %s %d",
		monday.Day(), sunday.Day(), utils.MonthShort(s.locale, monday.Month()), monday.Year())
}

// OffsetOf returns how many weeks away from the current one the week holding
// date ("2006-01-02") is.
func (s *Store) OffsetOf(date string) (int, error) {
	now := s.Now()
	t, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}

	_, current := weekDays(now, 0, s.locale)
	_, target := weekDays(t, 0, s.locale)
	days := int(math.Round(target.Sub(current).Hours() / 24))
	return days / 7, nil
}

func (s *Store) loadAll() []models.WeekSchedule {
	var f weekFile
	if _, err := s.blobs.Load(state.KeyWeekSchedules, &f); err != nil {
		log.Warnf("failed to load week schedules, treating as empty: %s", err)
		return nil
	}
	return f.Weeks
}

func (s *Store) saveAll(weeks []models.WeekSchedule) error {
	if err := s.blobs.Save(state.KeyWeekSchedules, weekFile{Weeks: weeks}); err != nil {
		return fmt.Errorf("saving week schedules: %w", err)
	}
	return nil
}

func find(weeks []models.WeekSchedule, weekID string) int {
	for i := range weeks {
		if weeks[i].WeekID == weekID {
			return i
		}
	}
	return -1
}

// LoadWeekSchedule returns the schedule of the week offset weeks from now.
// Persisted workout ids are laid over freshly computed days, so IsToday is
// always current. An unknown week yields an empty schedule that is not
// persisted until it is saved.
func (s *Store) LoadWeekSchedule(offset int, defaultPlanID string) models.WeekSchedule {
	days, monday := weekDays(s.Now(), offset, s.locale)
	weekID := WeekID(monday)

	weeks := s.loadAll()
	idx := find(weeks, weekID)
	if idx < 0 {
		return models.WeekSchedule{WeekID: weekID, PlanID: defaultPlanID, Days: days}
	}

	saved := weeks[idx]
	for i := range days {
		if d := saved.Day(days[i].Date); d != nil {
			days[i].WorkoutID = d.WorkoutID
		}
	}
	return models.WeekSchedule{WeekID: weekID, PlanID: saved.PlanID, Days: days}
}

// SaveWeekSchedule inserts or replaces the week with the same id.
func (s *Store) SaveWeekSchedule(schedule models.WeekSchedule) error {
	weeks := s.loadAll()

	schedule.Days = append([]models.ScheduledDay(nil), schedule.Days...)
	if idx := find(weeks, schedule.WeekID); idx >= 0 {
		weeks[idx] = schedule
	} else {
		weeks = append(weeks, schedule)
	}
	return s.saveAll(weeks)
}

// SetScheduledWorkout assigns workoutID to date in a persisted week. An empty
// workoutID makes the day a rest day. Unknown weeks or days are ignored.
func (s *Store) SetScheduledWorkout(weekID, date, workoutID string) error {
	weeks := s.loadAll()
	idx := find(weeks, weekID)
	if idx < 0 {
		log.Debugf("week %s not found, nothing to schedule", weekID)
		return nil
	}

	day := weeks[idx].Day(date)
	if day == nil {
		log.Debugf("day %s not found in week %s, nothing to schedule", date, weekID)
		return nil
	}

	day.WorkoutID = workoutID
	return s.saveAll(weeks)
}

// ChangePlanForWeek switches the plan a persisted week follows. Unknown weeks are ignored.
func (s *Store) ChangePlanForWeek(weekID, planID string) error {
	weeks := s.loadAll()
	idx := find(weeks, weekID)
	if idx < 0 {
		return nil
	}

	weeks[idx].PlanID = planID
	return s.saveAll(weeks)
}

// TodayScheduledWorkout returns the workout scheduled for today, or "" on a rest day.
func (s *Store) TodayScheduledWorkout() string {
	week := s.LoadWeekSchedule(0, "")
	if today := week.Today(); today != nil {
		return today.WorkoutID
	}
	return ""
}
