// Command citext-smoketest checks citext support end to end against a live database: it creates a table with
// citext and citext[] columns, matches a row case-insensitively, and verifies both values decode unchanged.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/calebj/citext/engine"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	databaseURL string
	driver      string
	logLevel    string
	logger      string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "citext-smoketest",
		Short:         "Verify citext and citext[] round trips against a PostgreSQL database",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.databaseURL == "" {
				return fmt.Errorf("no database URL: set --database-url or DATABASE_URL")
			}
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	cmd.Flags().StringVar(&opts.driver, "driver", engine.DriverPgx, "driver: pgx, pgx/stdlib, or postgres")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "log level: trace, debug, info, warn, error, or none")
	cmd.Flags().StringVar(&opts.logger, "logger", "zerolog", "log backend: "+loggerNames())

	return cmd
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "citext-smoketest:", err)
		stop()
		os.Exit(1)
	}
}
