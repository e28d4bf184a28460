package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/pkg/store"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
)

type Entry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string { return "client_storage" }

// SqliteStorage keeps every key in a single table of a local database file,
// so the cart survives process restarts.
type SqliteStorage struct {
	db *gorm.DB
}

func NewSqliteStorage(c context.Context, db *gorm.DB) (*SqliteStorage, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SqliteStorage NewSqliteStorage").
		Str(log.KeyProcess, "migrating client storage table").
		Logger()

	logger.Info().Msg("migrating client storage table")
	if err := db.WithContext(c).AutoMigrate(&Entry{}); err != nil {
		err = fmt.Errorf("failed migrating client storage table with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("migrated client storage table")

	return &SqliteStorage{db: db}, nil
}

func (s *SqliteStorage) Load(c context.Context, key string) ([]byte, error) {
	c, span := otel.Tracer.Start(c, "SqliteStorage Load")
	defer span.End()

	entry := Entry{}
	err := s.db.WithContext(c).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		err = fmt.Errorf("failed loading key=%s with error=%w", key, err)
		inErrors.HandleError(err, span)
		return nil, err
	}
	return entry.Value, nil
}

func (s *SqliteStorage) Save(c context.Context, key string, value []byte) error {
	c, span := otel.Tracer.Start(c, "SqliteStorage Save")
	defer span.End()

	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(c).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).
		Error
	if err != nil {
		err = fmt.Errorf("failed saving key=%s with error=%w", key, err)
		inErrors.HandleError(err, span)
		return err
	}
	return nil
}

func (s *SqliteStorage) Delete(c context.Context, key string) error {
	c, span := otel.Tracer.Start(c, "SqliteStorage Delete")
	defer span.End()

	if err := s.db.WithContext(c).Where("key = ?", key).Delete(&Entry{}).Error; err != nil {
		err = fmt.Errorf("failed deleting key=%s with error=%w", key, err)
		inErrors.HandleError(err, span)
		return err
	}
	return nil
}
