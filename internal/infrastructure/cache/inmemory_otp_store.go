package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/retailops/backend/internal/domain/identity"
)

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// InMemoryOTPStore keeps one-time codes in a map. Suitable for
// single-instance deployments and tests. Codes are removed on the first
// verification attempt, matching the Redis store's semantics.
type InMemoryOTPStore struct {
	mu        sync.Mutex
	entries   map[string]otpEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryOTPStore creates the store and starts its cleanup loop
func NewInMemoryOTPStore() *InMemoryOTPStore {
	store := &InMemoryOTPStore{
		entries:  make(map[string]otpEntry),
		stopChan: make(chan struct{}),
	}
	store.wg.Add(1)
	go store.cleanupLoop()
	return store
}

func memOTPKey(email string, purpose identity.OTPPurpose) string {
	return fmt.Sprintf("%s:%s", purpose, email)
}

// Put stores a code for the email and purpose, replacing any previous one
func (s *InMemoryOTPStore) Put(_ context.Context, email string, purpose identity.OTPPurpose, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[memOTPKey(email, purpose)] = otpEntry{code: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Consume removes the stored code and reports whether it matched
func (s *InMemoryOTPStore) Consume(_ context.Context, email string, purpose identity.OTPPurpose, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memOTPKey(email, purpose)
	e, exists := s.entries[key]
	if !exists {
		return false, nil
	}
	delete(s.entries, key)
	if time.Now().After(e.expiresAt) {
		return false, nil
	}
	return e.code == code, nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryOTPStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryOTPStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryOTPStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

var _ identity.OTPStore = (*InMemoryOTPStore)(nil)
