package cmd

import (
	"fmt"

	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/misterclayt0n/gymweek/internal/session"
	"github.com/spf13/cobra"
)

var (
	setWeight float32
	setReps   int
	setDone   bool
)

var logSetCmd = &cobra.Command{
	Use:   "log-set [exercise-index] [set-index]",
	Short: "Record weight and/or reps for a set in the current session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var update models.SetUpdate
		if cmd.Flags().Changed("weight") {
			if setWeight < 0 {
				return fmt.Errorf("Weight cannot be negative")
			}
			update.Weight = &setWeight
		}
		if cmd.Flags().Changed("reps") {
			if setReps < 0 {
				return fmt.Errorf("Reps cannot be negative")
			}
			update.Reps = &setReps
		}
		if cmd.Flags().Changed("done") {
			update.Completed = &setDone
		}
		if update.Weight == nil && update.Reps == nil && update.Completed == nil {
			return fmt.Errorf("Nothing to update, pass --weight, --reps or --done")
		}

		return editSession(args, func(s models.ActiveWorkoutSession, exerciseID string, setIndex int) models.ActiveWorkoutSession {
			return session.UpdateSet(s, exerciseID, setIndex, update)
		}, "✅ Set updated successfully")
	},
}

var toggleSetCmd = &cobra.Command{
	Use:   "toggle-set [exercise-index] [set-index]",
	Short: "Mark a set as done, or undone if it already was",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editSession(args, session.ToggleSetCompletion, "✅ Set toggled")
	},
}

var expandCmd = &cobra.Command{
	Use:   "expand [exercise-index]",
	Short: "Show or hide the set table of an exercise in show-session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		s, err := a.activeSession()
		if err != nil {
			return err
		}
		exerciseID, err := exerciseAt(s, args[0])
		if err != nil {
			return err
		}

		if err := a.sessions.Save(session.ToggleExpanded(s, exerciseID)); err != nil {
			return fmt.Errorf("Failed to save session: %w", err)
		}
		return nil
	},
}

// editSession loads the active session, applies edit to the set addressed by
// the 1-based [exercise-index] [set-index] args and saves the result.
func editSession(args []string, edit func(models.ActiveWorkoutSession, string, int) models.ActiveWorkoutSession, done string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	s, err := a.activeSession()
	if err != nil {
		return err
	}

	exerciseID, err := exerciseAt(s, args[0])
	if err != nil {
		return err
	}
	setIndex, err := setAt(s, exerciseID, args[1])
	if err != nil {
		return err
	}

	updated := edit(s, exerciseID, setIndex)
	if err := a.sessions.Save(updated); err != nil {
		return fmt.Errorf("Failed to save session: %w", err)
	}

	fmt.Println(done)
	ex := updated.Exercises[updated.Exercise(exerciseID)]
	if session.IsExerciseCompleted(ex) {
		fmt.Printf("💪 %s done\n", ex.Name)
	}
	return nil
}

func init() {
	logSetCmd.Flags().Float32VarP(&setWeight, "weight", "w", 0, "Weight used (kg)")
	logSetCmd.Flags().IntVarP(&setReps, "reps", "r", 0, "Reps performed")
	logSetCmd.Flags().BoolVarP(&setDone, "done", "d", false, "Mark the set as completed")

	rootCmd.AddCommand(logSetCmd)
	rootCmd.AddCommand(toggleSetCmd)
	rootCmd.AddCommand(expandCmd)
}
