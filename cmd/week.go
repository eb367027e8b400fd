package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/misterclayt0n/gymweek/internal/storage"
	"github.com/spf13/cobra"
)

// weekOffset selects the week relative to the current one (-1 = last week).
var weekOffset int

// weekCmd prints the seven days of a week with the workout planned for each.
// Today is highlighted and rest days are dimmed.
var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Display the workouts scheduled for a week",
	Args:  cobra.NoArgs,
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

		week := a.schedule.LoadWeekSchedule(weekOffset, a.cfg.Schedule.DefaultPlanID)

		cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		green := color.New(color.FgGreen, color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		fmt.Printf("%s  %s\n", cyanBold(a.schedule.FormatWeekRange(weekOffset)), faint(week.WeekID))
		fmt.Printf("%s %s\n\n", yellow("Plan:"), planLabel(cmd, st, week.PlanID))

		names := make(map[string]string)
		for _, day := range week.Days {
			label := fmt.Sprintf("%-4s %s", day.DayShortName, day.Date[8:])
			workout := faint("Rest")
			if day.WorkoutID != "" {
				workout = workoutLabel(cmd, st, names, day.WorkoutID)
			}

			if day.IsToday {
				fmt.Printf("▶ %s  %s\n", green(label), workout)
			} else {
				fmt.Printf("  %s  %s\n", label, workout)
			}
		}
		fmt.Println()

		return nil
	},
}

func planLabel(cmd *cobra.Command, st *storage.Storage, planID string) string {
	if planID == "" {
		return "none"
	}
	name, err := st.GetPlanName(cmd.Context(), planID)
	if err != nil {
		return planID + " (missing)"
	}
	return name
}

// workoutLabel resolves a workout id to its name, caching lookups in names.
func workoutLabel(cmd *cobra.Command, st *storage.Storage, names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	name := id + " (missing)"
	if w, err := st.GetWorkout(cmd.Context(), id); err == nil {
		name = w.Name
	}
	names[id] = name
	return name
}

// resolveWorkout turns a command line workout reference into a workout id.
// "rest" clears the day, a number 1-7 picks the workout for that day number in
// the plan of the week, anything else must be an existing workout id.
func resolveWorkout(cmd *cobra.Command, st *storage.Storage, week models.WeekSchedule, ref string) (string, error) {
	if strings.EqualFold(ref, "rest") {
		return "", nil
	}

	var day int
	if _, err := fmt.Sscanf(ref, "%d", &day); err == nil && len(ref) == 1 {
		if week.PlanID == "" {
			return "", fmt.Errorf("Week %s has no plan, use a workout id or run 'gymweek set-plan'", week.WeekID)
		}
		plan, err := st.GetPlan(cmd.Context(), week.PlanID)
		if err != nil {
			return "", fmt.Errorf("Failed to load plan: %w", err)
		}
		for _, w := range plan.Workouts {
			if w.DayNumber == day {
				return w.ID, nil
			}
		}
		return "", fmt.Errorf("Plan '%s' has no workout for day %d", plan.Name, day)
	}

	ok, err := st.WorkoutExists(cmd.Context(), ref)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("Workout %s not found", ref)
	}
	return ref, nil
}

func init() {
	rootCmd.AddCommand(weekCmd)
	weekCmd.Flags().IntVarP(&weekOffset, "offset", "o", 0, "Week offset from the current week (-1 = last week)")
}
