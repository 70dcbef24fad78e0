package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/GRD-Daddi/league-page/internal/domain/canonical"
	"github.com/GRD-Daddi/league-page/internal/platform/id"
	"github.com/GRD-Daddi/league-page/internal/platform/logging"
)

// MemoryStore holds sessions in a mutex-guarded map. Expired entries are
// evicted lazily on read and by the background sweeper.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session

	maxAge time.Duration
	idGen  id.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewMemoryStore(logger *logging.Logger) *MemoryStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &MemoryStore{
		sessions: make(map[string]Session),
		maxAge:   MaxAge,
		idGen:    id.NewRandomGenerator(),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(userID string, tokens Tokens, managerInfo *canonical.LeagueUser) (Session, error) {
	sessionID, err := s.idGen.NewID()
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}

	now := s.now()
	if tokens.IssuedAt.IsZero() {
		tokens.IssuedAt = now
	}

	sess := Session{
		ID:          sessionID,
		UserID:      userID,
		Tokens:      tokens,
		ManagerInfo: managerInfo,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.maxAge),
	}

	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	return sess, nil
}

func (s *MemoryStore) Get(sessionID string) (Session, bool) {
	if sessionID == "" {
		return Session{}, false
	}

	now := s.now()
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if !sess.ExpiresAt.After(now) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return Session{}, false
	}

	return sess, true
}

// UpdateTokens replaces the session's token grant and slides the expiry
// window forward.
func (s *MemoryStore) UpdateTokens(sessionID string, tokens Tokens) (Session, bool) {
	now := s.now()
	if tokens.IssuedAt.IsZero() {
		tokens.IssuedAt = now
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || !sess.ExpiresAt.After(now) {
		delete(s.sessions, sessionID)
		return Session{}, false
	}

	sess.Tokens = tokens
	sess.ExpiresAt = now.Add(s.maxAge)
	s.sessions[sessionID] = sess

	return sess, true
}

func (s *MemoryStore) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return ok
}

// Sweep removes every expired session and reports how many were dropped.
func (s *MemoryStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for sessionID, sess := range s.sessions {
		if !sess.ExpiresAt.After(now) {
			delete(s.sessions, sessionID)
			removed++
		}
	}

	return removed
}

// Len reports the number of live entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartSweeper runs the periodic sweep until ctx is canceled.
func (s *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = SweepInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.Sweep(); removed > 0 {
					s.logger.Info("swept expired sessions", "removed", removed)
				}
			}
		}
	}()
}
