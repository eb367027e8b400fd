package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var startWorkoutID string

var startSessionCmd = &cobra.Command{
	Use:   "start-session",
	Short: "Start a session from today's scheduled workout (or --workout)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		workoutID := startWorkoutID
		if workoutID == "" {
			workoutID = a.schedule.TodayScheduledWorkout()
		}
		if workoutID == "" {
			return fmt.Errorf("No workout scheduled for today. Use --workout or 'gymweek schedule today ...'")
		}

		st, err := a.storage()
		if err != nil {
			return err
		}

		workout, err := st.GetWorkout(cmd.Context(), workoutID)
		if err != nil {
			return fmt.Errorf("Failed to load workout: %w", err)
		}
		planName, err := st.GetPlanName(cmd.Context(), workout.PlanID)
		if err != nil {
			return fmt.Errorf("Failed to load plan: %w", err)
		}

		if previous, ok := a.sessions.Load(); ok {
			yellow := color.New(color.FgYellow).SprintFunc()
			fmt.Println(yellow(fmt.Sprintf("⚠ Replacing unfinished session '%s'", previous.Name)))
		}

		session, err := a.sessions.Start(*workout, planName)
		if err != nil {
			return fmt.Errorf("Failed to start session: %w", err)
		}

		fmt.Printf("✅ Started '%s' from %s (%d exercises)\n", session.Name, session.PlanName, len(session.Exercises))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startSessionCmd)
	startSessionCmd.Flags().StringVarP(&startWorkoutID, "workout", "w", "", "Workout id to start instead of today's")
}
