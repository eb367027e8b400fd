package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/misterclayt0n/gymweek/internal/session"
	"github.com/misterclayt0n/gymweek/internal/storage"
	"github.com/spf13/cobra"
)

var (
	finishYes   bool
	finishNotes string
)

var finishSessionCmd = &cobra.Command{
	Use:   "finish-session",
	Short: "Finish the current session and save it to history",
	Args:  cobra.NoArgs,
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

		st, err := a.storage()
		if err != nil {
			return err
		}

		done, total := session.CompletedSets(s)
		ask := func() bool {
			if finishYes {
				return true
			}
			return confirm(os.Stdin, os.Stdout, fmt.Sprintf("Only %d of %d sets are done. Finish anyway?", done, total))
		}

		var finished models.FinishedSession
		record := func(s models.ActiveWorkoutSession) error {
			finished = storage.FinishedFromActive(s, a.schedule.Now())
			finished.Notes = finishNotes
			if err := st.SaveFinishedSession(cmd.Context(), finished); err != nil {
				return fmt.Errorf("Failed to save session: %w", err)
			}
			return nil
		}

		if err := a.sessions.Finish(s, ask, record); err != nil {
			if errors.Is(err, session.ErrFinishDeclined) {
				fmt.Println("Session left in progress")
				return nil
			}
			return err
		}

		fmt.Printf("✅ Session saved successfully (%d sets logged in %s)\n",
			len(finished.Logs), finished.EndTime.Sub(finished.StartTime).Round(time.Second))
		return nil
	},
}

var cancelSessionCmd = &cobra.Command{
	Use:   "cancel-session",
	Short: "Cancel the current training session without saving any data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if !a.sessions.Active() {
			return fmt.Errorf("No active session to cancel")
		}

		if err := a.sessions.Clear(); err != nil {
			return fmt.Errorf("Failed to cancel session: %w", err)
		}

		fmt.Println("✅ Session cancelled successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(finishSessionCmd)
	rootCmd.AddCommand(cancelSessionCmd)
	finishSessionCmd.Flags().BoolVarP(&finishYes, "yes", "y", false, "Finish without asking even if sets are incomplete")
	finishSessionCmd.Flags().StringVarP(&finishNotes, "notes", "n", "", "Notes to store with the session")
}
