package auth

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"assetdesk/internal/infrastructure/cache"
	"assetdesk/internal/shared/constants"
)

const revocationBits = 1 << 20

var revocationSeeds = [...]uint32{3, 5, 7, 11, 13, 31, 67}

// RevocationFilter is a Bloom filter over a shared cache bitmap that
// records logged-out tokens until they expire on their own. Membership
// may report false positives but never false negatives, so a revoked
// token is always rejected.
type RevocationFilter struct {
	store cache.Store
}

func NewRevocationFilter(store cache.Store) *RevocationFilter {
	return &RevocationFilter{store: store}
}

// offsets hashes the hex MD5 digest of the token once per seed.
func offsets(token string) [len(revocationSeeds)]uint32 {
	sum := md5.Sum([]byte(token))
	digest := hex.EncodeToString(sum[:])

	var out [len(revocationSeeds)]uint32
	for i, seed := range revocationSeeds {
		var h uint32
		for j := 0; j < len(digest); j++ {
			h = h*seed + uint32(digest[j])
			h &= revocationBits - 1
		}
		out[i] = h
	}
	return out
}

// Insert marks the token as revoked.
func (f *RevocationFilter) Insert(ctx context.Context, token string) error {
	for _, off := range offsets(token) {
		if err := f.store.SetBit(ctx, constants.RevocationBitmapKey, off, true); err != nil {
			return fmt.Errorf("failed to set revocation bit: %w", err)
		}
	}
	return nil
}

// Contains reports whether the token may have been revoked.
func (f *RevocationFilter) Contains(ctx context.Context, token string) (bool, error) {
	for _, off := range offsets(token) {
		set, err := f.store.GetBit(ctx, constants.RevocationBitmapKey, off)
		if err != nil {
			return false, fmt.Errorf("failed to read revocation bit: %w", err)
		}
		if !set {
			return false, nil
		}
	}
	return true, nil
}
