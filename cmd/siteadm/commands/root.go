// Package commands implements siteadm, the operator CLI for migrations,
// admin bootstrap and XLSX exports.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/Spok95/geosites/internal/config"
	"github.com/Spok95/geosites/internal/infra/db"
	"github.com/Spok95/geosites/internal/infra/logger"
)

var (
	configPath string
	dbURL      string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "siteadm",
	Short:         "Operator tooling for the geosites backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/example.yaml", "Path to the YAML config")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Postgres DSN, overrides postgres.dsn")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")

	rootCmd.AddCommand(migrateCmd, createAdminCmd, exportCmd)
}

// dsn resolves the connection string from --db or the config file. The CLI
// never issues tokens, so a missing JWT secret is not an error here.
func dsn() (string, error) {
	if dbURL != "" {
		return dbURL, nil
	}
	cfg, err := config.Load(configPath)
	if err != nil && !errors.Is(err, config.ErrNoJWTSecret) {
		return "", fmt.Errorf("load config: %w", err)
	}
	if cfg.Postgres.DSN == "" {
		return "", errors.New("no database: pass --db or set postgres.dsn")
	}
	return cfg.Postgres.DSN, nil
}

func connect(ctx context.Context) (*pgxpool.Pool, error) {
	d, err := dsn()
	if err != nil {
		return nil, err
	}
	return db.Connect(ctx, d)
}

func cliLogger() *slog.Logger {
	if verbose {
		return logger.NewWithWriter(os.Stderr, "dev")
	}
	return logger.Discard()
}
