package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/hivemind/internal/config"
	"github.com/example/hivemind/internal/db"
)

// InitCmd returns the init command.
func InitCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize hivemind config and database",
		Long: `Write .hivemind/config.json in the current directory and create the
database with the current schema.

Examples:
  hivemind init
  hivemind init --db /var/lib/hivemind/hivemind.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			if dbPath == "" {
				dbPath, err = config.DefaultDBPath()
				if err != nil {
					return err
				}
			}

			cfg := &config.Config{
				Version: "1.0",
				DBPath:  dbPath,
			}
			if err := config.SaveConfig(cwd, cfg); err != nil {
				return err
			}

			database, err := db.Open(dbPath)
			if err != nil {
				return err
			}
			defer database.Close()

			fmt.Printf("Initialized config in %s/.hivemind and database at %s\n", cwd, dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "database file path")

	return cmd
}
