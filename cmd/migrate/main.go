package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookcatalog-migrate",
		Short:         "Manage the postgres schema of the book catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "optional config file")

	root.AddCommand(
		migrationCmd("up", "Apply all pending migrations", func(db *sql.DB, dir string, _ []string) error {
			return goose.Up(db, dir)
		}),
		migrationCmd("down", "Roll back the latest migration", func(db *sql.DB, dir string, _ []string) error {
			return goose.Down(db, dir)
		}),
		migrationCmd("status", "Print the state of every migration", func(db *sql.DB, dir string, _ []string) error {
			return goose.Status(db, dir)
		}),
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a new SQL migration file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				return goose.Create(nil, cfg.MigrationsDir, args[0], "sql")
			},
		},
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	config.LoadEnvFiles()
	return config.Load(configFile)
}

type migrationFunc func(db *sql.DB, dir string, args []string) error

func migrationCmd(use, short string, fn migrationFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogConfig)
			defer func() { _ = log.Sync() }()

			pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
			if err != nil {
				return fmt.Errorf("connect %s: %w", config.Redacted(cfg.PostgresDSN), err)
			}
			defer pool.Close()

			db := stdlib.OpenDBFromPool(pool)
			defer db.Close()

			if err := goose.SetDialect("postgres"); err != nil {
				return err
			}
			if err := fn(db, cfg.MigrationsDir, args); err != nil {
				log.Error("migration failed", zap.String("command", use), zap.Error(err))
				return err
			}
			log.Info("migration finished", zap.String("command", use), zap.String("dir", cfg.MigrationsDir))
			return nil
		},
	}
}
