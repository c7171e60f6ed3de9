package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Used for development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (Data, bool, error) {
	if id == "" {
		return Data{}, false, ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return Data{}, false, nil
	}
	now := s.now()
	if !now.Before(e.expiresAt) {
		delete(s.entries, id)
		return Data{}, false, nil
	}
	e.expiresAt = now.Add(s.ttl)
	s.entries[id] = e
	return e.data, true, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, data Data) error {
	if id == "" {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// Purge drops expired sessions and returns how many were removed.
func (s *MemoryStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns how many sessions are held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RunPurger calls Purge every interval until ctx is done. Without it, sessions
// whose clients never return stay in memory.
func (s *MemoryStore) RunPurger(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Purge(); removed > 0 {
				logger.Debug("Purged expired sessions",
					zap.Int("removed", removed),
					zap.Int("remaining", s.Len()))
			}
		}
	}
}
