package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// Store is a flat string key-value store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)
}

// Lookup is Get with the not-found case folded into a boolean.
func Lookup(ctx context.Context, s Store, key string) (string, bool, error) {
	value, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
