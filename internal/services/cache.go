package services

import (
	"context"
	"time"
)

// Cache defines the interface for caching operations.
type Cache interface {
	// Ping tests the cache connection
	Ping(ctx context.Context) error

	// Set stores a key-value pair with optional expiration
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Get retrieves a value by key; a missing key returns "" with no error
	Get(ctx context.Context, key string) (string, error)

	// Close closes the cache connection
	Close() error
}
