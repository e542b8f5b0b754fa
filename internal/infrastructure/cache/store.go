// Package cache provides the TTL key-value store used for ephemeral state:
// the token revocation bitmap, canonical session pointers, advisory sequence
// counters, rate-limit windows, and list-view version stamps.
package cache

import (
	"context"
	"time"
)

// Store is the cache capability handed to the auth guard, the sequence
// generator, and the notification rate limiter. The relational store owns
// durable entities; everything behind Store may vanish at any time.
type Store interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes a value with a TTL; zero TTL means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetBit and SetBit address single bits of a named bitmap atomically.
	// The revocation filter is built on these.
	GetBit(ctx context.Context, name string, offset uint32) (bool, error)
	SetBit(ctx context.Context, name string, offset uint32, value bool) error
}
