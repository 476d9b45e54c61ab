package main

import (
	"context"
	"fmt"
	"time"

	"spacebook/internal/catalog"
	catalogvalidator "spacebook/internal/catalog/validator"
	"spacebook/pkg/config"

	"github.com/spf13/cobra"
)

func newSeedCmd(loadConfig func() *config.Config, timeout *time.Duration) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the Mongo space catalog with the spaces in a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), *timeout)
			defer cancel()

			cfg := loadConfig()
			if file == "" {
				file = cfg.CatalogFile
			}

			spaces, err := catalog.LoadFile(file)
			if err != nil {
				return err
			}
			// Build a catalog first so a bad file never reaches the database.
			validated, err := catalog.New(spaces, catalogvalidator.NewSpaceValidator(cfg.Log))
			if err != nil {
				return err
			}

			cfg.SetMongo()
			defer cfg.GracefulShutdown()

			source := catalog.NewMongoSource(cfg.Client.Mongo, cfg.MongoDatabaseName, *timeout)
			if err := source.Replace(ctx, validated.ListSpaces()); err != nil {
				return fmt.Errorf("seed spaces: %w", err)
			}

			cfg.Log.Info("Space catalog seeded", "file", file, "spaces", len(spaces))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog YAML file (defaults to CATALOG_FILE)")

	return cmd
}
