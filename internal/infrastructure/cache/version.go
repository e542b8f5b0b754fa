package cache

import (
	"context"
	"strconv"

	"assetdesk/internal/shared/constants"
)

// VersionStamper keeps a monotonically bumped stamp per list view so
// clients can detect stale cached pages without diffing rows.
type VersionStamper struct {
	store Store
}

func NewVersionStamper(store Store) *VersionStamper {
	return &VersionStamper{store: store}
}

// Bump advances the stamp. A lost read simply restarts the counter,
// which still invalidates cached views.
func (v *VersionStamper) Bump(ctx context.Context, entity string) error {
	key := constants.VersionKey(entity)
	current, ok, err := v.store.Get(ctx, key)
	if err != nil {
		return err
	}
	next := 1
	if ok {
		if n, convErr := strconv.Atoi(current); convErr == nil {
			next = n + 1
		}
	}
	return v.store.Set(ctx, key, strconv.Itoa(next), 0)
}

// Current returns the stamp, zero when none was ever written.
func (v *VersionStamper) Current(ctx context.Context, entity string) (int, error) {
	current, ok, err := v.store.Get(ctx, constants.VersionKey(entity))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n, convErr := strconv.Atoi(current)
	if convErr != nil {
		return 0, nil
	}
	return n, nil
}
