package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/gymweek/internal/models"
	"github.com/misterclayt0n/gymweek/internal/session"
	"github.com/spf13/cobra"
)

var showAllExercises bool

var showSessionCmd = &cobra.Command{
	Use:   "show-session",
	Short: "Show current session status",
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

		duration := a.schedule.Now().Sub(s.StartTime).Round(time.Second)

		cyan := color.New(color.FgCyan).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		done, total := session.CompletedSets(s)
		fmt.Printf("%s\n", green(s.PlanName))
		fmt.Printf("\n%s %s\n", red("Session:"), s.Name)
		fmt.Printf("%s %s\n", red("Duration:"), duration)
		fmt.Printf("%s %s %d/%d sets\n\n", cyan("Progress:"), progressBar(session.CalculateProgress(s), 20), done, total)

		for i, ex := range s.Exercises {
			printSessionExercise(i+1, ex, showAllExercises || ex.Expanded)
		}

		return nil
	},
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	return fmt.Sprintf("[%s%s] %3.0f%%", strings.Repeat("█", filled), strings.Repeat("░", width-filled), percent)
}

func printSessionExercise(index int, ex models.ExerciseInSession, expanded bool) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	mark := "○"
	if session.IsExerciseCompleted(ex) {
		mark = green("✔")
	}
	fmt.Printf("%s %s %s %s\n", mark, cyan(fmt.Sprintf("%d. %s", index, ex.Name)),
		faint(fmt.Sprintf("%d × %s", ex.TargetSets, ex.TargetReps)),
		faint(fmt.Sprintf("rest %ds", ex.RestSeconds)))
	if !expanded {
		return
	}

	tableIndent := "   "
	setColWidth := 6
	weightColWidth := 12
	repsColWidth := 8
	doneColWidth := 6

	border := func(left, mid, right string) string {
		return tableIndent + left +
			strings.Repeat("─", setColWidth) + mid +
			strings.Repeat("─", weightColWidth) + mid +
			strings.Repeat("─", repsColWidth) + mid +
			strings.Repeat("─", doneColWidth) + right
	}

	fmt.Println(border("┌", "┬", "┐"))
	fmt.Printf(tableIndent+"│%-*s│%-*s│%-*s│%-*s│\n",
		setColWidth, "Set", weightColWidth, "Weight", repsColWidth, "Reps", doneColWidth, "Done")
	fmt.Println(border("├", "┼", "┤"))
	for i, set := range ex.Sets {
		weight, reps, done := "-", "-", ""
		if set.Weight != nil {
			weight = fmt.Sprintf("%.1fkg", *set.Weight)
		}
		if set.Reps != nil {
			reps = fmt.Sprintf("%d", *set.Reps)
		}
		if set.Completed {
			done = "✔"
		}
		fmt.Printf(tableIndent+"│%-*d│%-*s│%-*s│%-*s│\n",
			setColWidth, i+1, weightColWidth, weight, repsColWidth, reps, doneColWidth, done)
	}
	fmt.Println(border("└", "┴", "┘"))
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(showSessionCmd)
	showSessionCmd.Flags().BoolVarP(&showAllExercises, "all", "a", false, "Expand every exercise")
}
