package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is an in-process Store used by unit tests and single-node
// development runs. Expiry is checked lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	bitmaps map[string][]byte
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		bitmaps: make(map[string][]byte),
		now:     time.Now,
	}
}

// SetClock overrides the time source, letting tests step through TTL windows.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		delete(s.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = memoryEntry{value: value, expiresAt: expiresAt}
	return nil
}

func (s *MemoryStore) Del(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.entries, key)
		delete(s.bitmaps, key)
	}
	return nil
}

func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.Get(ctx, key)
	return ok, err
}

func (s *MemoryStore) GetBit(ctx context.Context, name string, offset uint32) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bm := s.bitmaps[name]
	byteIdx := int(offset / 8)
	if byteIdx >= len(bm) {
		return false, nil
	}
	mask := byte(1) << (7 - offset%8)
	return bm[byteIdx]&mask != 0, nil
}

func (s *MemoryStore) SetBit(ctx context.Context, name string, offset uint32, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bm := s.bitmaps[name]
	byteIdx := int(offset / 8)
	if byteIdx >= len(bm) {
		grown := make([]byte, byteIdx+1)
		copy(grown, bm)
		bm = grown
		s.bitmaps[name] = bm
	}
	mask := byte(1) << (7 - offset%8)
	if value {
		bm[byteIdx] |= mask
	} else {
		bm[byteIdx] &^= mask
	}
	return nil
}
