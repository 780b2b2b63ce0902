package repository

import (
	"context"
)

// KVStore is a string key-value store used to persist serialized state.
// Get reports found=false for a missing key; that is not an error.
// Set fully overwrites the stored value.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
