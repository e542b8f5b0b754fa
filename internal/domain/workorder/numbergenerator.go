package workorder

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// SequenceStore is the slice of the cache the generator needs.
type SequenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CountFunc reports how many rows already carry the given human id
// prefix. Used when the cache has no counter for the period.
type CountFunc func(ctx context.Context, prefix string) (int64, error)

// SequenceGenerator issues human readable ids of the form
// <prefix><3-digit sequence>, for example 20250601007. The counter is
// advisory only; the unique index on the id column is the arbiter, and
// callers retry on a duplicate insert.
type SequenceGenerator struct {
	store SequenceStore
}

func NewSequenceGenerator(store SequenceStore) *SequenceGenerator {
	return &SequenceGenerator{store: store}
}

// Next proposes the next id for the period identified by key and
// prefix. It prefers the cached counter and falls back to counting
// existing rows.
func (g *SequenceGenerator) Next(ctx context.Context, key, prefix string, count CountFunc) (string, int, error) {
	seq, err := g.nextSequence(ctx, key, prefix, count)
	if err != nil {
		return "", 0, err
	}
	return fmt.Sprintf("%s%03d", prefix, seq), seq, nil
}

func (g *SequenceGenerator) nextSequence(ctx context.Context, key, prefix string, count CountFunc) (int, error) {
	cached, ok, err := g.store.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence counter: %w", err)
	}
	if ok {
		last, convErr := strconv.Atoi(cached)
		if convErr == nil {
			return last + 1, nil
		}
		// corrupt counter, fall through to the count
	}

	n, err := count(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to count existing ids: %w", err)
	}
	return int(n) + 1, nil
}

// Commit records the issued sequence after the insert succeeded so the
// next caller skips the count.
func (g *SequenceGenerator) Commit(ctx context.Context, key string, seq int, ttl time.Duration) error {
	if err := g.store.Set(ctx, key, strconv.Itoa(seq), ttl); err != nil {
		return fmt.Errorf("failed to store sequence counter: %w", err)
	}
	return nil
}

// OrderPrefix returns the daily order id prefix for t.
func OrderPrefix(t time.Time) string {
	return t.Format("20060102")
}

// PatrolPrefix returns the monthly patrol id prefix for t.
func PatrolPrefix(t time.Time) string {
	return t.Format("200601")
}
