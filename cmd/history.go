package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/spf13/cobra"
)

var (
	filterPlan  string
	filterDay   string
	filterLimit int
)

// historyCmd shows finished sessions grouped by plan and day.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display session history, optionally filtered by plan and/or day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := models.SessionFilter{PlanName: filterPlan, Limit: filterLimit}
		if filterDay != "" {
			day, err := parseDay(filterDay)
			if err != nil {
				return err
			}
			filter.From = day
			filter.To = day.AddDate(0, 0, 1).Add(-time.Second)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		st, err := a.storage()
		if err != nil {
			return err
		}

		sessions, err := st.ListSessions(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("Failed to retrieve sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		grouped := make(map[string]map[string][]models.FinishedSession)
		for _, s := range sessions {
			plan := s.PlanName
			if plan == "" {
				plan = "Unknown"
			}
			if _, ok := grouped[plan]; !ok {
				grouped[plan] = make(map[string][]models.FinishedSession)
			}
			day := s.StartTime.Local().Format("2006-01-02")
			grouped[plan][day] = append(grouped[plan][day], s)
		}

		green := color.New(color.FgGreen, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		var plans []string
		for p := range grouped {
			plans = append(plans, p)
		}
		sort.Strings(plans)
		for _, plan := range plans {
			fmt.Printf("%s %s\n", green("Plan:"), plan)
			var days []string
			for d := range grouped[plan] {
				days = append(days, d)
			}
			sort.Strings(days)
			for _, d := range days {
				fmt.Printf("  %s %s\n", yellow("Date:"), d)
				list := grouped[plan][d]
				sort.Slice(list, func(i, j int) bool {
					return list[i].StartTime.Before(list[j].StartTime)
				})
				for _, s := range list {
					status := "complete"
					if !s.Completed {
						status = "partial"
					}
					fmt.Printf("    %s | %s | Start: %s | Duration: %s | %s\n",
						s.ID,
						s.WorkoutName,
						s.StartTime.Local().Format("15:04"),
						s.EndTime.Sub(s.StartTime).Round(time.Second),
						status,
					)
				}
			}
			fmt.Println()
		}

		return nil
	},
}

// parseDay accepts 2006-01-02 or 02/01/06, in local time.
func parseDay(s string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		day, err = time.ParseInLocation("02/01/06", s, time.Local)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("Failed to parse day: %w", err)
	}
	return day, nil
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVarP(&filterPlan, "plan", "p", "", "Filter by plan name (case insensitive)")
	historyCmd.Flags().StringVarP(&filterDay, "day", "d", "", "Filter by day (e.g. 2026-02-07 or 07/02/26)")
	historyCmd.Flags().IntVarP(&filterLimit, "limit", "l", 0, "Maximum number of sessions (default 50)")
}
