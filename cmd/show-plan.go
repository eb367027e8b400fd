package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/gymweek/internal/utils"
	"github.com/spf13/cobra"
)

var showPlanDay int // Optional day number filter.

var showPlanCmd = &cobra.Command{
	Use:   "show-plan [plan-id]",
	Short: "Display a plan with its workouts (optionally filter by day number)",
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

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Printf("\n%s\n", green(strings.ToUpper(plan.Name)))
		if plan.Description != "" {
			fmt.Printf("%s: %s\n", cyan("Description"), plan.Description)
		}
		fmt.Printf("%s: %d weeks, %s, %s\n", cyan("Program"), plan.DurationWeeks, plan.Level, plan.Goal)
		fmt.Printf("%s: %s\n", cyan("Created At"), plan.CreatedAt.Local().Format(time.RFC1123))
		fmt.Println(strings.Repeat("=", 60))

		for _, w := range plan.Workouts {
			if showPlanDay != 0 && w.DayNumber != showPlanDay {
				continue
			}

			_, short := utils.DayName(a.cfg.Schedule.Locale, time.Weekday(w.DayNumber%7))
			fmt.Printf("\n%s %d (%s): %s\n", yellow("Day"), w.DayNumber, short, w.Name)
			fmt.Printf("%s: %s\n", yellow("ID"), w.ID)
			if w.Description != "" {
				fmt.Printf("%s: %s\n", yellow("Notes"), w.Description)
			}
			fmt.Println(strings.Repeat("-", 60))

			for i, ex := range w.Exercises {
				fmt.Printf("%d. %s\n", i+1, ex.Name)
				fmt.Printf("   %s: %d × %s, rest %ds\n", cyan("Target"), ex.Sets, ex.Reps, ex.RestSeconds)
				if ex.Notes != "" {
					fmt.Printf("   %s: %s\n", cyan("Notes"), ex.Notes)
				}
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showPlanCmd)
	showPlanCmd.Flags().IntVarP(&showPlanDay, "day", "d", 0, "Only show the workout for this day number (1 = Monday)")
}
