package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/gymweek/internal/session"
	"github.com/spf13/cobra"
)

var restSeconds int

// restCmd counts down the rest period of an exercise in the terminal.
// Ctrl-C stops the countdown.
var restCmd = &cobra.Command{
	Use:   "rest [exercise-index]",
	Short: "Run the rest timer for an exercise of the current session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds := restSeconds
		name := "Rest"

		if len(args) == 1 {
			a, err := newApp()
			if err != nil {
				return err
			}
			s, err := a.activeSession()
			a.close()
			if err != nil {
				return err
			}
			exerciseID, err := exerciseAt(s, args[0])
			if err != nil {
				return err
			}
			ex := s.Exercises[s.Exercise(exerciseID)]
			name = ex.Name
			if !cmd.Flags().Changed("seconds") {
				seconds = ex.RestSeconds
			}
		}
		if seconds <= 0 {
			return fmt.Errorf("Nothing to count down, pass --seconds")
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		timer := session.NewRestTimer()
		defer timer.Stop()

		ticks := timer.Start(seconds)
		for {
			select {
			case remaining, ok := <-ticks:
				if !ok {
					fmt.Println()
					return nil
				}
				left := time.Duration(remaining) * time.Second
				fmt.Printf("\r⏱  %s %s ", cyan(name), fmtClock(left))
				if remaining == 0 {
					fmt.Print("\a✅ Go!")
				}
			case <-cmd.Context().Done():
				fmt.Println("\nRest timer stopped")
				return nil
			}
		}
	},
}

func fmtClock(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

func init() {
	rootCmd.AddCommand(restCmd)
	restCmd.Flags().IntVarP(&restSeconds, "seconds", "s", 0, "Rest length in seconds (defaults to the exercise's rest)")
}
