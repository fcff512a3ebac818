package ratelimit

import (
	"context"
	"sync"
	"time"
)

// CooldownStore remembers when a user last performed a rate-sensitive action.
type CooldownStore interface {
	// LastAt returns the recorded time, or ok=false when nothing is recorded.
	LastAt(ctx context.Context, userID int64) (at time.Time, ok bool, err error)
	// Mark records at for userID; the record may be dropped after ttl.
	Mark(ctx context.Context, userID int64, at time.Time, ttl time.Duration) error
}

// CooldownRemaining returns how long userID must still wait, zero when the
// action is allowed at now.
func CooldownRemaining(ctx context.Context, store CooldownStore, userID int64, window time.Duration, now time.Time) (time.Duration, error) {
	last, ok, err := store.LastAt(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	remaining := last.Add(window).Sub(now)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

type memoryEntry struct {
	at      time.Time
	expires time.Time
}

// MemoryCooldownStore is a single-instance CooldownStore.
type MemoryCooldownStore struct {
	mu      sync.Mutex
	entries map[int64]memoryEntry
	now     func() time.Time
}

func NewMemoryCooldownStore() *MemoryCooldownStore {
	return &MemoryCooldownStore{entries: make(map[int64]memoryEntry), now: time.Now}
}

func (s *MemoryCooldownStore) LastAt(_ context.Context, userID int64) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok {
		return time.Time{}, false, nil
	}
	if !e.expires.IsZero() && s.now().After(e.expires) {
		delete(s.entries, userID)
		return time.Time{}, false, nil
	}
	return e.at, true, nil
}

func (s *MemoryCooldownStore) Mark(_ context.Context, userID int64, at time.Time, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := memoryEntry{at: at}
	if ttl > 0 {
		e.expires = at.Add(ttl)
	}
	s.entries[userID] = e
	return nil
}

// Purge drops expired entries and returns how many were removed.
func (s *MemoryCooldownStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if !e.expires.IsZero() && now.After(e.expires) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
