package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/infrastructure/cache"
)

func TestRevocationFilter_NoFalseNegatives(t *testing.T) {
	filter := NewRevocationFilter(cache.NewMemoryStore())
	ctx := context.Background()

	tokens := make([]string, 200)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("revoked-token-%d", i)
		require.NoError(t, filter.Insert(ctx, tokens[i]))
	}

	for _, token := range tokens {
		found, err := filter.Contains(ctx, token)
		require.NoError(t, err)
		assert.True(t, found, "inserted token %q must always be reported revoked", token)
	}
}

func TestRevocationFilter_UnseenTokenMostlyAbsent(t *testing.T) {
	filter := NewRevocationFilter(cache.NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		require.NoError(t, filter.Insert(ctx, fmt.Sprintf("revoked-%d", i)))
	}

	falsePositives := 0
	const probes = 1000
	for i := 0; i < probes; i++ {
		found, err := filter.Contains(ctx, fmt.Sprintf("active-%d", i))
		require.NoError(t, err)
		if found {
			falsePositives++
		}
	}

	// With 500 entries in a 2^20-bit filter and 7 hashes, the false
	// positive rate is far below 1%. Allow generous slack.
	assert.Less(t, falsePositives, probes/20)
}

func TestRevocationFilter_EmptyFilterRejectsNothing(t *testing.T) {
	filter := NewRevocationFilter(cache.NewMemoryStore())
	ctx := context.Background()

	found, err := filter.Contains(ctx, "never-inserted")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRevocationFilter_OffsetsDeterministicAndBounded(t *testing.T) {
	a := offsets("some-token")
	b := offsets("some-token")
	assert.Equal(t, a, b)

	for _, off := range a {
		assert.Less(t, off, uint32(revocationBits))
	}
}
