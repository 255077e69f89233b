package kv

import (
	"context"
	"errors"
)

// Store is a durable string-keyed store. Writes overwrite whole values.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// ErrEmptyKey is returned by backends for blank keys.
var ErrEmptyKey = errors.New("kv: empty key")
