package main

import (
	"context"
	"time"

	mongomigration "spacebook/internal/migrations/mongo"
	postgresmigration "spacebook/internal/migrations/postgres"
	"spacebook/pkg/config"

	"github.com/spf13/cobra"
)

func newMongoCmd(loadConfig func() *config.Config, timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "mongo",
		Short: "Create the Mongo collections, validators and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), *timeout)
			defer cancel()

			cfg := loadConfig()
			cfg.SetMongo()
			defer cfg.GracefulShutdown()

			return mongomigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log)
		},
	}
}

func newPostgresCmd(loadConfig func() *config.Config, timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "postgres",
		Short: "Create the reservations table and its indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), *timeout)
			defer cancel()

			cfg := loadConfig()
			cfg.SetPostgres()
			defer cfg.GracefulShutdown()

			return postgresmigration.RunMigration(ctx, cfg.Client.Postgres, cfg.Log)
		},
	}
}
