package infra

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Alturino/storefront/internal/log"
)

// NewSqliteClient opens the local database backing durable client storage.
func NewSqliteClient(c context.Context, path string) (*gorm.DB, error) {
	lg := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main NewSqliteClient").
		Str(log.KeyProcess, "opening sqlite database").
		Str("path", path).
		Logger()

	lg.Info().Msg("opening sqlite database")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		err = fmt.Errorf("failed opening sqlite database with error=%w", err)
		lg.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	lg.Info().Msg("opened sqlite database")

	return db, nil
}
