package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/pguml/database"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check database connectivity",
	Long: `Check if the database is accessible and responsive.

Examples:
  pguml health                    # Check default database connection
  pguml health --timeout 10s      # Set custom timeout
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		cfg, err := resolveConfig(cmd, log)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()

		version, err := database.Ping(ctx, cfg.Connection)
		if err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}
		log.Successf("database %s is healthy (PostgreSQL %s)", cfg.Connection.Redacted(), version)
		return nil
	},
}

var healthTimeout time.Duration

func init() {
	healthCmd.Flags().DurationVarP(&healthTimeout, "timeout", "t", 5*time.Second, "Timeout for health check")
}
