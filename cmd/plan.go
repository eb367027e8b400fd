package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/gymweek/internal/utils"
	"github.com/spf13/cobra"
)

var importPlanCmd = &cobra.Command{
	Use:   "import-plan [file]",
	Short: "Import a workout plan from a TOML, JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := utils.ParsePlanFile(args[0])
		if err != nil {
			return fmt.Errorf("Failed to read plan: %w", err)
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

		plan, err := st.CreatePlan(cmd.Context(), *file)
		if err != nil {
			return fmt.Errorf("Failed to create plan: %w", err)
		}

		fmt.Printf("✅ Plan '%s' created successfully (%s)\n", plan.Name, plan.ID)
		return nil
	},
}

var listPlansCmd = &cobra.Command{
	Use:   "list-plans",
	Short: "List all plans",
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

		plans, err := st.ListPlans(cmd.Context())
		if err != nil {
			return err
		}
		if len(plans) == 0 {
			fmt.Println("No plans yet. Import one with 'gymweek import-plan'.")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()
		for _, p := range plans {
			marker := " "
			if p.ID == a.cfg.Schedule.DefaultPlanID {
				marker = "*"
			}
			fmt.Printf("%s %s - %s %s\n", marker, p.ID, p.Name,
				faint(fmt.Sprintf("(%d weeks, %s, %s)", p.DurationWeeks, p.Level, p.Goal)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importPlanCmd)
	rootCmd.AddCommand(listPlansCmd)
}
