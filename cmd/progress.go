package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/misterclayt0n/gymweek/internal/utils"
	"github.com/spf13/cobra"
)

var progressLimit int

var progressCmd = &cobra.Command{
	Use:   "progress [exercise-name]",
	Short: "Display the logged sets of an exercise over time",
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

		points, err := st.ExerciseProgress(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("Failed to retrieve progress: %w", err)
		}

		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()

		fmt.Printf("%s %s:\n", boldGreen("History for"), args[0])
		if len(points) == 0 {
			fmt.Println(magenta("  No logged sets found."))
			return nil
		}
		if progressLimit > 0 && len(points) > progressLimit {
			points = points[len(points)-progressLimit:]
		}

		var best float32
		fmt.Printf("   %-10s | %-12s | %-5s | %-10s | %s\n", "Date", "Weight (kg)", "Reps", "Volume", "Est. 1RM")
		fmt.Println("   " + strings.Repeat("─", 58))
		for _, p := range points {
			oneRM := utils.CalculateEpley1RM(p.Weight, p.Reps)
			line := fmt.Sprintf("   %-10s | %-12.1f | %-5d | %-10.1f | %.1f",
				p.Date.Local().Format("2006-01-02"), p.Weight, p.Reps, p.Volume, oneRM)
			if oneRM > best {
				best = oneRM
				line += " " + boldCyan("↑")
			}
			fmt.Println(line)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.Flags().IntVarP(&progressLimit, "limit", "l", 0, "Only show the most recent N sets")
}
