package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deletePlanCmd = &cobra.Command{
	Use:   "delete-plan [plan-id]",
	Short: "Delete a plan with all its workouts",
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

		name, err := st.GetPlanName(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("Failed to delete plan: %w", err)
		}
		if err := st.DeletePlan(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("Failed to delete plan: %w", err)
		}

		fmt.Printf("✅ Plan '%s' deleted successfully\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deletePlanCmd)
}
