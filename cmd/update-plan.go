package cmd

import (
	"fmt"

	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/spf13/cobra"
)

var (
	updateName        string
	updateDescription string
	updateLevel       string
	updateGoal        string
	updateDuration    int
)

var updatePlanCmd = &cobra.Command{
	Use:   "update-plan [plan-id]",
	Short: "Change a plan's name, description, level, goal or duration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var update models.PlanUpdate
		flags := cmd.Flags()
		if flags.Changed("name") {
			update.Name = &updateName
		}
		if flags.Changed("description") {
			update.Description = &updateDescription
		}
		if flags.Changed("level") {
			update.Level = &updateLevel
		}
		if flags.Changed("goal") {
			update.Goal = &updateGoal
		}
		if flags.Changed("duration") {
			update.DurationWeeks = &updateDuration
		}
		if update == (models.PlanUpdate{}) {
			return fmt.Errorf("Nothing to update, pass at least one flag")
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

		plan, err := st.UpdatePlan(cmd.Context(), args[0], update)
		if err != nil {
			return fmt.Errorf("Failed to update plan: %w", err)
		}

		fmt.Printf("✅ Plan '%s' updated successfully\n", plan.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updatePlanCmd)
	updatePlanCmd.Flags().StringVar(&updateName, "name", "", "New plan name")
	updatePlanCmd.Flags().StringVar(&updateDescription, "description", "", "New description")
	updatePlanCmd.Flags().StringVar(&updateLevel, "level", "", "beginner, intermediate or advanced")
	updatePlanCmd.Flags().StringVar(&updateGoal, "goal", "", "strength, hypertrophy, endurance, powerlifting or general")
	updatePlanCmd.Flags().IntVar(&updateDuration, "duration", 0, "Duration in weeks")
}
