package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iwvelando/investment-form/internal/recalc"
)

// formSession serializes all events for one form, like a UI event loop.
type formSession struct {
	mu         sync.Mutex
	id         string
	form       *recalc.Session
	lastActive time.Time
}

type sessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*formSession
	idleTimeout time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

func newSessionStore(idleTimeout time.Duration, now func() time.Time, logger *zap.Logger) *sessionStore {
	if now == nil {
		now = time.Now
	}
	return &sessionStore{
		sessions:    make(map[string]*formSession),
		idleTimeout: idleTimeout,
		now:         now,
		logger:      logger,
	}
}

func (s *sessionStore) create(form *recalc.Session) *formSession {
	fs := &formSession{
		id:         uuid.New().String(),
		form:       form,
		lastActive: s.now(),
	}
	s.mu.Lock()
	s.sessions[fs.id] = fs
	s.mu.Unlock()
	return fs
}

// get returns a live session. Expired sessions are dropped on access.
func (s *sessionStore) get(id string) (*formSession, bool) {
	s.mu.RLock()
	fs, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	fs.mu.Lock()
	expired := s.expired(fs)
	fs.mu.Unlock()
	if expired {
		s.remove(id)
		return nil, false
	}
	return fs, true
}

func (s *sessionStore) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *sessionStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// touch must be called with fs.mu held.
func (s *sessionStore) touch(fs *formSession) {
	fs.lastActive = s.now()
}

// expired must be called with fs.mu held.
func (s *sessionStore) expired(fs *formSession) bool {
	return s.idleTimeout > 0 && s.now().Sub(fs.lastActive) > s.idleTimeout
}

// sweep removes idle sessions and returns how many were dropped.
func (s *sessionStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, fs := range s.sessions {
		if !fs.mu.TryLock() {
			continue // in use, so not idle
		}
		if s.expired(fs) {
			delete(s.sessions, id)
			removed++
		}
		fs.mu.Unlock()
	}
	if removed > 0 {
		s.logger.Info("expired idle form sessions",
			zap.String("op", "server.sweep"),
			zap.Int("removed", removed),
			zap.Int("remaining", len(s.sessions)),
		)
	}
	return removed
}

// minSweepInterval bounds how often the sweeper wakes up.
const minSweepInterval = time.Second

func sweepInterval(interval time.Duration) time.Duration {
	if interval < minSweepInterval {
		return minSweepInterval
	}
	return interval
}

func (s *sessionStore) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(sweepInterval(interval))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}
