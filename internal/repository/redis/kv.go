package redis

import (
	"context"
	"errors"
	"fmt"

	"techtranslator/internal/repository"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ repository.KVStore = (*KVRepo)(nil)

// KVRepo implements repository.KVStore on plain Redis string keys.
// Keys are stored under prefix so several applications can share a database.
type KVRepo struct {
	client *goredis.Client
	prefix string
	logger *zap.Logger
}

// NewKVRepo creates a new Redis-backed key-value repository
func NewKVRepo(client *goredis.Client, prefix string, logger *zap.Logger) *KVRepo {
	return &KVRepo{
		client: client,
		prefix: prefix,
		logger: logger.Named("RedisKVRepo"),
	}
}

func (r *KVRepo) fullKey(key string) string {
	return r.prefix + key
}

// Get returns the value stored under key
func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.fullKey(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		r.logger.Error("Failed to get key from redis", zap.String("key", key), zap.Error(err))
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key without expiration
func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.fullKey(key), value, 0).Err(); err != nil {
		r.logger.Error("Failed to set key in redis", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes key
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.fullKey(key)).Err(); err != nil {
		r.logger.Error("Failed to delete key from redis", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
