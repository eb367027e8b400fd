package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var recordsExercise string

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Display personal records (heaviest set and estimated 1RM) per exercise",
	Args:  cobra.NoArgs,
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

		records, err := st.PersonalRecords(cmd.Context(), recordsExercise)
		if err != nil {
			return fmt.Errorf("Failed to retrieve records: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No records yet. Finish a session to set some!")
			return nil
		}

		printBoxedHeader("PERSONAL RECORDS")
		yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		fmt.Printf("  %-28s %-14s %-10s %s\n", "Exercise", "Best set", "Est. 1RM", "Date")
		fmt.Println("  " + strings.Repeat("─", 64))
		for _, r := range records {
			// Pad before colouring so escape codes do not break the alignment.
			fmt.Printf("  %s %-14s %-10s %s\n",
				yellowBold(fmt.Sprintf("%-28s", r.ExerciseName)),
				fmt.Sprintf("%.1fkg × %d", r.MaxWeight, r.Reps),
				fmt.Sprintf("%.1fkg", r.Estimated1RM),
				faint(r.Date.Local().Format("2006-01-02")),
			)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)
	recordsCmd.Flags().StringVarP(&recordsExercise, "exercise", "e", "", "Only show the record for this exercise")
}
