package cmd

import (
	"fmt"

	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/spf13/cobra"
)

var (
	noteText      string
	noteCompleted bool
	logWeight     float32
	logReps       int
)

var setNoteCmd = &cobra.Command{
	Use:   "set-note [session-id]",
	Short: "Set the notes (and optionally the completed flag) of a finished session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var update models.SessionUpdate
		if cmd.Flags().Changed("note") {
			update.Notes = &noteText
		}
		if cmd.Flags().Changed("completed") {
			update.Completed = &noteCompleted
		}
		if update.Notes == nil && update.Completed == nil {
			return fmt.Errorf("Nothing to update, pass --note or --completed")
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

		if err := st.UpdateSession(cmd.Context(), args[0], update); err != nil {
			return fmt.Errorf("Failed to update session: %w", err)
		}

		fmt.Println("✅ Session updated successfully")
		return nil
	},
}

var editLogCmd = &cobra.Command{
	Use:   "edit-log [log-id]",
	Short: "Correct the weight and/or reps of a logged set (ids are shown by look-session)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var update models.LogUpdate
		if cmd.Flags().Changed("weight") {
			update.Weight = &logWeight
		}
		if cmd.Flags().Changed("reps") {
			update.Reps = &logReps
		}
		if update.Weight == nil && update.Reps == nil {
			return fmt.Errorf("Nothing to update, pass --weight or --reps")
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

		if err := st.UpdateLog(cmd.Context(), args[0], update); err != nil {
			return fmt.Errorf("Failed to update set: %w", err)
		}

		fmt.Println("✅ Set updated successfully")
		return nil
	},
}

var deleteLogCmd = &cobra.Command{
	Use:   "delete-log [log-id]",
	Short: "Delete a logged set from a finished session",
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

		if err := st.DeleteLog(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("Failed to delete set: %w", err)
		}

		fmt.Println("✅ Set deleted successfully")
		return nil
	},
}

func init() {
	setNoteCmd.Flags().StringVarP(&noteText, "note", "n", "", "Note text for the session")
	setNoteCmd.Flags().BoolVarP(&noteCompleted, "completed", "c", false, "Mark the session as completed (or --completed=false)")
	editLogCmd.Flags().Float32VarP(&logWeight, "weight", "w", 0, "Weight used (kg)")
	editLogCmd.Flags().IntVarP(&logReps, "reps", "r", 0, "Reps performed")

	rootCmd.AddCommand(setNoteCmd)
	rootCmd.AddCommand(editLogCmd)
	rootCmd.AddCommand(deleteLogCmd)
}
