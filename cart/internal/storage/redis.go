package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/pkg/store"
	inErrors "github.com/Alturino/storefront/internal/errors"
)

const keyPrefix = "storefront:"

// RedisStorage shares the cart between storefront instances pointing at the
// same redis database. Keys never expire.
type RedisStorage struct {
	cache *redis.Client
}

func NewRedisStorage(cache *redis.Client) *RedisStorage {
	return &RedisStorage{cache: cache}
}

func (s *RedisStorage) Load(c context.Context, key string) ([]byte, error) {
	c, span := otel.Tracer.Start(c, "RedisStorage Load")
	defer span.End()

	value, err := s.cache.Get(c, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		err = fmt.Errorf("failed loading key=%s with error=%w", key, err)
		inErrors.HandleError(err, span)
		return nil, err
	}
	return value, nil
}

func (s *RedisStorage) Save(c context.Context, key string, value []byte) error {
	c, span := otel.Tracer.Start(c, "RedisStorage Save")
	defer span.End()

	if err := s.cache.Set(c, keyPrefix+key, value, 0).Err(); err != nil {
		err = fmt.Errorf("failed saving key=%s with error=%w", key, err)
		inErrors.HandleError(err, span)
		return err
	}
	return nil
}

func (s *RedisStorage) Delete(c context.Context, key string) error {
	c, span := otel.Tracer.Start(c, "RedisStorage Delete")
	defer span.End()

	if err := s.cache.Del(c, keyPrefix+key).Err(); err != nil {
		err = fmt.Errorf("failed deleting key=%s with error=%w", key, err)
		inErrors.HandleError(err, span)
		return err
	}
	return nil
}
