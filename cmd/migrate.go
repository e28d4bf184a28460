package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
)

var errDatabaseNotConfigured = errors.New("database host is not configured")

// runMigrate applies pending migrations. NewDatabaseClient migrates on
// connect, so connecting is enough.
func runMigrate(c context.Context, cfg *config.Config) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main RunMigrate").
		Str(log.KeyMigrationPath, cfg.Database.MigrationPath).
		Logger()

	if cfg.Database.Host == "" {
		err := fmt.Errorf("failed migrating with error=%w", errDatabaseNotConfigured)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	pool := infra.NewDatabaseClient(logger.WithContext(c), cfg.Database)
	defer pool.Close()
	logger.Info().Msg("database is up to date")
	return nil
}
