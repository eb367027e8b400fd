package cmd

import (
	"fmt"

	"github.com/misterclayt0n/gymweek/internal/config"
	"github.com/spf13/cobra"
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config and create the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		created, err := config.WriteDefault(path)
		if err != nil {
			return fmt.Errorf("Failed to write config: %w", err)
		}
		if created {
			fmt.Printf("✅ Wrote default config to %s\n", path)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if _, err := a.storage(); err != nil {
			return fmt.Errorf("Failed to initialize database: %w", err)
		}
		fmt.Println("✅ Database initialized successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}
