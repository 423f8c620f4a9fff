package auth

import (
	"context"
	"sync"
	"time"

	"github.com/JHRsoftware/jp-stores-sub001/pkg/logger"
)

// AttemptStoreConfig tunes the login limiter.
type AttemptStoreConfig struct {
	// MaxFailures before the key locks. Default 5.
	MaxFailures int
	// Lockout is how long a locked key stays locked. Default 15 minutes.
	Lockout time.Duration
	// SweepInterval is how often stale entries are evicted. Default 1 minute.
	SweepInterval time.Duration
}

// DefaultAttemptStoreConfig returns the production limiter settings.
func DefaultAttemptStoreConfig() AttemptStoreConfig {
	return AttemptStoreConfig{
		MaxFailures:   5,
		Lockout:       15 * time.Minute,
		SweepInterval: time.Minute,
	}
}

type attemptState struct {
	failures    int
	lockedUntil time.Time
	lastFailure time.Time
}

// AttemptStore counts failed logins per client-IP+username key and locks a
// key after too many failures. State is process-local and lost on restart.
// A background sweep evicts stale entries so the map stays bounded; Start
// and Stop scope its lifetime explicitly.
type AttemptStore struct {
	cfg AttemptStoreConfig

	mu      sync.Mutex
	entries map[string]*attemptState

	stopCh chan struct{}
	doneCh chan struct{}

	// now is swappable for tests
	now func() time.Time
}

// NewAttemptStore creates the limiter.
func NewAttemptStore(cfg AttemptStoreConfig) *AttemptStore {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Lockout <= 0 {
		cfg.Lockout = 15 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	return &AttemptStore{
		cfg:     cfg,
		entries: make(map[string]*attemptState),
		now:     time.Now,
	}
}

// AttemptKey builds the limiter key for one client and account.
func AttemptKey(clientIP, username string) string {
	return clientIP + "|" + username
}

// Locked reports whether the key is currently locked out and for how much
// longer.
func (s *AttemptStore) Locked(key string) (bool, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.entries[key]
	if !ok {
		return false, 0
	}
	remaining := state.lockedUntil.Sub(s.now())
	if remaining <= 0 {
		return false, 0
	}
	return true, remaining
}

// Fail records one failed attempt. Reaching the failure limit locks the key
// for the configured lockout window.
func (s *AttemptStore) Fail(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.entries[key]
	if !ok {
		state = &attemptState{}
		s.entries[key] = state
	}

	now := s.now()
	state.failures++
	state.lastFailure = now
	if state.failures >= s.cfg.MaxFailures {
		state.lockedUntil = now.Add(s.cfg.Lockout)
	}
}

// Clear removes the key; called on successful login.
func (s *AttemptStore) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Start launches the eviction sweep.
func (s *AttemptStore) Start() {
	s.mu.Lock()
	if s.stopCh != nil {
		s.mu.Unlock()
		return
	}
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	go s.sweepLoop(stopCh, doneCh)
}

// Stop halts the eviction sweep and waits for it to exit.
func (s *AttemptStore) Stop() {
	s.mu.Lock()
	stopCh, doneCh := s.stopCh, s.doneCh
	s.stopCh, s.doneCh = nil, nil
	s.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-doneCh
}

// sweepLoop takes its channels as arguments so a concurrent Stop cannot
// swap them out from under the running loop.
func (s *AttemptStore) sweepLoop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			evicted := s.sweep()
			if evicted > 0 {
				logger.Debug(context.Background(), "login limiter sweep", "evicted", evicted)
			}
		}
	}
}

// sweep evicts entries whose lockout has passed and whose last failure is
// older than the lockout window. Returns the number evicted.
func (s *AttemptStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0
	for key, state := range s.entries {
		if now.Before(state.lockedUntil) {
			continue
		}
		if now.Sub(state.lastFailure) < s.cfg.Lockout {
			continue
		}
		delete(s.entries, key)
		evicted++
	}
	return evicted
}
