package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export all plans and session history to a TOML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile := "gymweek_dump.toml" // Default filename.
		if len(args) == 1 {
			outputFile = args[0]
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

		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("Failed to create %s: %w", outputFile, err)
		}
		if err := st.ExportTOML(cmd.Context(), f); err != nil {
			f.Close()
			return fmt.Errorf("Error exporting database: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Printf("✅ Database exported successfully to %s\n", outputFile)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [dump-file]",
	Short: "Load plans and session history from a TOML dump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("Failed to open dump: %w", err)
		}
		defer f.Close()

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		st, err := a.storage()
		if err != nil {
			return err
		}

		plans, sessions, err := st.ImportTOML(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("Failed to import dump: %w", err)
		}
		fmt.Printf("✅ Imported %d plans and %d sessions\n", plans, sessions)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
