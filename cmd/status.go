package cmd

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/misterclayt0n/gymweek/internal/session"
	"github.com/misterclayt0n/gymweek/internal/utils"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show meta data: total weight lifted, session count, gym hours, week streak and this week's plan",
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

		sessions, err := st.ListSessions(cmd.Context(), models.SessionFilter{Limit: math.MaxInt32})
		if err != nil {
			return fmt.Errorf("Failed to retrieve sessions: %w", err)
		}

		var totalWeight float32
		var totalDuration time.Duration
		for _, s := range sessions {
			totalDuration += s.EndTime.Sub(s.StartTime)
			full, err := st.GetSession(cmd.Context(), s.ID)
			if err != nil {
				continue // skip sessions that fail to load
			}
			for _, l := range full.Logs {
				totalWeight += l.Weight * float32(l.Reps)
			}
		}

		starts, err := st.SessionStartTimes(cmd.Context())
		if err != nil {
			return fmt.Errorf("Failed to retrieve sessions: %w", err)
		}
		now := a.schedule.Now()
		weekStreak := utils.ComputeWeekStreak(starts, now)

		printBoxedHeader("STATUS")

		printMetric("Total weight lifted", fmt.Sprintf("%.1f kg", totalWeight))
		printMetric("Total sessions", len(sessions))
		printMetric("Total time at gym", totalDuration.Round(time.Minute))
		printMetric("Week streak", fmt.Sprintf("%d weeks", weekStreak))
		fmt.Println()

		week := a.schedule.LoadWeekSchedule(0, a.cfg.Schedule.DefaultPlanID)
		planned := 0
		for _, d := range week.Days {
			if d.WorkoutID != "" {
				planned++
			}
		}
		header := color.New(color.FgGreen, color.Bold).Sprintf("This week (%s):", a.schedule.FormatWeekRange(0))
		fmt.Println(header)
		printMetric("Plan", planLabel(cmd, st, week.PlanID))
		printMetric("Workouts planned", planned)
		if s, ok := a.sessions.Load(); ok {
			printMetric("Session in progress", fmt.Sprintf("%s (%.0f%%)", s.Name, session.CalculateProgress(s)))
		}
		fmt.Println()

		return nil
	},
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + centerText(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(label string, value interface{}) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
