// Package storage is the persistence seam for the gateway's small amount of
// durable state (today: the admin session token). One narrow key-value
// interface, with a backend picked at startup from configuration.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has no value.
var ErrKeyNotFound = errors.New("storage: key not found")

// Store is a uniform get/set/remove of string values.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
