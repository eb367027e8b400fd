package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/gymweek/internal/schedule"
	"github.com/spf13/cobra"
)

var (
	planOffset int
	fillWeek   bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule [date|today] [workout-id|day-number|rest]",
	Short: "Schedule a workout (or a rest day) on a date",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		st, err := a.storage()
		if err != nil {
			return err
		}

		date := args[0]
		if strings.EqualFold(date, "today") {
			date = a.schedule.Now().Format(schedule.DateLayout)
		}
		offset, err := a.schedule.OffsetOf(date)
		if err != nil {
			return err
		}

		week := a.schedule.LoadWeekSchedule(offset, a.cfg.Schedule.DefaultPlanID)
		workoutID, err := resolveWorkout(cmd, st, week, args[1])
		if err != nil {
			return err
		}

		// The week may only exist in memory so far.
		if err := a.schedule.SaveWeekSchedule(week); err != nil {
			return fmt.Errorf("Failed to save week: %w", err)
		}
		if err := a.schedule.SetScheduledWorkout(week.WeekID, date, workoutID); err != nil {
			return fmt.Errorf("Failed to schedule workout: %w", err)
		}

		if workoutID == "" {
			fmt.Printf("✅ %s is now a rest day\n", date)
		} else {
			fmt.Printf("✅ Scheduled '%s' on %s\n", workoutLabel(cmd, st, map[string]string{}, workoutID), date)
		}
		return nil
	},
}

var setPlanCmd = &cobra.Command{
	Use:   "set-plan [plan-id]",
	Short: "Choose the plan a week follows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		st, err := a.storage()
		if err != nil {
			return err
		}

		plan, err := st.GetPlan(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("Failed to load plan: %w", err)
		}

		week := a.schedule.LoadWeekSchedule(planOffset, a.cfg.Schedule.DefaultPlanID)
		if fillWeek {
			for i := range week.Days {
				week.Days[i].WorkoutID = ""
			}
			for _, w := range plan.Workouts {
				if w.DayNumber >= 1 && w.DayNumber <= len(week.Days) {
					week.Days[w.DayNumber-1].WorkoutID = w.ID
				}
			}
		}

		if err := a.schedule.SaveWeekSchedule(week); err != nil {
			return fmt.Errorf("Failed to save week: %w", err)
		}
		if err := a.schedule.ChangePlanForWeek(week.WeekID, plan.ID); err != nil {
			return fmt.Errorf("Failed to change plan: %w", err)
		}

		fmt.Printf("✅ Week %s now follows '%s'\n", week.WeekID, plan.Name)
		return nil
	},
}

// todayCmd shows what is planned for today.
var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the workout scheduled for today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		now := a.schedule.Now()
		green := color.New(color.FgGreen, color.Bold).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Printf("%s\n", green(now.Format("Monday, 02 Jan 2006")))

		workoutID := a.schedule.TodayScheduledWorkout()
		if workoutID == "" {
			fmt.Println("Rest day 💤")
			return nil
		}

		st, err := a.storage()
		if err != nil {
			return err
		}
		w, err := st.GetWorkout(cmd.Context(), workoutID)
		if err != nil {
			return fmt.Errorf("Failed to load workout %s: %w", workoutID, err)
		}

		fmt.Printf("%s %s\n", cyan("Workout:"), w.Name)
		if w.Description != "" {
			fmt.Printf("%s %s\n", cyan("Notes:"), w.Description)
		}
		for i, ex := range w.Exercises {
			rest := time.Duration(ex.RestSeconds) * time.Second
			fmt.Printf("  %d. %s %d × %s (rest %s)\n", i+1, ex.Name, ex.Sets, ex.Reps, rest)
		}
		if a.sessions.Active() {
			fmt.Println("\nA session is in progress, see 'gymweek show-session'.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(setPlanCmd)
	rootCmd.AddCommand(todayCmd)
	setPlanCmd.Flags().IntVarP(&planOffset, "offset", "o", 0, "Week offset from the current week")
	setPlanCmd.Flags().BoolVarP(&fillWeek, "fill", "f", false, "Also schedule each workout on its plan day number")
}
