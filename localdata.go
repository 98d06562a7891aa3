package grocer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// LocalData provides JSON access to a KeyValue backend
type LocalData interface {
	// Store saves value under key as JSON
	Store(ctx context.Context, key string, value interface{}) error

	// Load decodes the value stored under key into target.
	// It reports false, with a nil error, when the key is absent.
	Load(ctx context.Context, key string, target interface{}) (bool, error)

	// Remove deletes key
	Remove(ctx context.Context, key string) error
}

// StoreTyped is a generic helper for type-safe saving
func StoreTyped[T any](data LocalData, ctx context.Context, key string, value T) error {
	return data.Store(ctx, key, value)
}

// LoadTyped is a generic helper for type-safe loading, returning the zero value for absent keys
func LoadTyped[T any](data LocalData, ctx context.Context, key string) (T, bool, error) {
	var result T
	found, err := data.Load(ctx, key, &result)
	return result, found, err
}

// localData implements LocalData
type localData struct {
	kv     KeyValue
	logger zerolog.Logger
}

// NewLocalData creates a JSON accessor over kv that logs persistence errors to logger.
// Every Load reads kv, so writes made through other accessors on the same
// backend are always visible.
func NewLocalData(kv KeyValue, logger zerolog.Logger) LocalData {
	return &localData{
		kv:     kv,
		logger: logger,
	}
}

func (d *localData) Store(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		LogPersistenceError(d.logger, key, "marshal", err)
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	if err := d.kv.Set(ctx, key, data); err != nil {
		LogPersistenceError(d.logger, key, "set", err)
		return fmt.Errorf("failed to store key %s: %w", key, err)
	}

	return nil
}

func (d *localData) Load(ctx context.Context, key string, target interface{}) (bool, error) {
	data, err := d.kv.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		LogPersistenceError(d.logger, key, "get", err)
		return false, fmt.Errorf("failed to load key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		LogPersistenceError(d.logger, key, "unmarshal", err)
		return false, fmt.Errorf("failed to unmarshal value for key %s: %w", key, err)
	}

	return true, nil
}

func (d *localData) Remove(ctx context.Context, key string) error {
	if err := d.kv.Delete(ctx, key); err != nil && !errors.Is(err, ErrKeyNotFound) {
		LogPersistenceError(d.logger, key, "delete", err)
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}
