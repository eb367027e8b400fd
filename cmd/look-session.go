package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var lookSessionCmd = &cobra.Command{
	Use:   "look-session [session-id]",
	Short: "Display detailed information for a finished session by its ID",
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

		session, err := st.GetSession(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("Failed to retrieve session: %w", err)
		}

		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		blue := color.New(color.FgBlue).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		fmt.Println(boldGreen("Training Session Details:"))
		fmt.Printf("  %s: %s\n", cyan("Session ID"), session.ID)
		fmt.Printf("  %s: %s / %s\n", cyan("Workout"), session.PlanName, session.WorkoutName)
		fmt.Printf("  %s: %s\n", blue("Start Time"), session.StartTime.Local().Format(time.RFC1123))
		fmt.Printf("  %s: %s\n", blue("End Time"), session.EndTime.Local().Format(time.RFC1123))
		fmt.Printf("  %s: %s\n", red("Duration"), session.EndTime.Sub(session.StartTime).Round(time.Second))
		if !session.Completed {
			fmt.Printf("  %s\n", magenta("Finished with incomplete sets"))
		}
		if session.Notes != "" {
			fmt.Printf("  %s: %s\n", magenta("Session Notes"), session.Notes)
		}
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println()

		if len(session.Logs) == 0 {
			fmt.Println(magenta("No sets logged in this session."))
			return nil
		}

		current := ""
		n := 0
		for _, l := range session.Logs {
			if l.ExerciseName != current {
				if current != "" {
					fmt.Println()
				}
				current = l.ExerciseName
				n++
				fmt.Printf("%s %d. %s\n", boldGreen("Exercise"), n, l.ExerciseName)
				fmt.Printf("      %-4s | %-12s | %-5s | %s\n", "Set", "Weight (kg)", "Reps", "Log ID")
				fmt.Println("      " + strings.Repeat("─", 66))
			}
			fmt.Printf("      %-4d | %-12.1f | %-5d | %s\n", l.SetNumber, l.Weight, l.Reps, faint(l.ID))
		}
		fmt.Println()

		return nil
	},
}

var deleteSessionCmd = &cobra.Command{
	Use:   "delete-session [session-id]",
	Short: "Delete a finished session from history",
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

		if err := st.DeleteSession(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("Failed to delete session: %w", err)
		}

		fmt.Println("✅ Session deleted successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookSessionCmd)
	rootCmd.AddCommand(deleteSessionCmd)
}
