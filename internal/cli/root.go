// Package cli implements the flashdeckctl command line tool for operating
// on flashcard data without going through the HTTP API.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/flashdeck/flashdeck/internal/logging"
	"github.com/flashdeck/flashdeck/internal/store"
)

type rootOptions struct {
	databaseURL string
	logLevel    string
}

// NewRootCmd creates the flashdeckctl root command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "flashdeckctl",
		Short: "Manage flashcard sets and CSV imports",
		Long: `flashdeckctl operates directly on the flashcard store.

It can validate CSV files offline, run imports without the HTTP server,
and inspect the stored card sets.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			godotenv.Overload()
			logging.Setup(opts.logLevel, "text")
		},
	}

	root.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "",
		"PostgreSQL connection string (defaults to DATABASE_URL)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn",
		"log level: debug, info, warn, error")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newImportCmd(opts))
	root.AddCommand(newSetsCmd(opts))
	root.AddCommand(newVersionCmd())

	return root
}

// openStore connects to the database named by the flag or environment and
// returns the store plus a release function.
func (o *rootOptions) openStore(ctx context.Context) (*store.Postgres, func(), error) {
	url := o.databaseURL
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		url = os.Getenv("DB_URL")
	}
	if url == "" {
		return nil, nil, fmt.Errorf("no database configured; set --database-url or DATABASE_URL")
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	return store.NewPostgres(pool), pool.Close, nil
}
