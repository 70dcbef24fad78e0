// Package session keeps authenticated user sessions in process memory.
// Sessions hold provider OAuth tokens and live for a sliding seven-day
// window.
package session

import (
	"time"

	"github.com/GRD-Daddi/league-page/internal/domain/canonical"
)

const (
	// MaxAge is the sliding session lifetime. Every write pushes the
	// expiry out by this much.
	MaxAge = 7 * 24 * time.Hour

	// SweepInterval is how often the background sweeper removes expired
	// sessions that were never read again.
	SweepInterval = time.Hour

	// nearExpiryWindow is how far ahead of token expiry a refresh is
	// triggered.
	nearExpiryWindow = 5 * time.Minute

	defaultTokenTTL = 3600
)

// Tokens is an OAuth grant plus the time it was issued.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	IssuedAt     time.Time
}

// Session is one authenticated user's state.
type Session struct {
	ID          string
	UserID      string
	Tokens      Tokens
	ManagerInfo *canonical.LeagueUser
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Store is the session backend. The in-memory implementation is the default;
// the interface keeps it swappable for a shared backend.
type Store interface {
	Create(userID string, tokens Tokens, managerInfo *canonical.LeagueUser) (Session, error)
	Get(id string) (Session, bool)
	UpdateTokens(id string, tokens Tokens) (Session, bool)
	Delete(id string) bool
	Sweep() int
}

// IsTokenNearExpiry reports whether the access token is within the refresh
// look-ahead window of its expiry. Unknown issue times count as expired.
func IsTokenNearExpiry(s Session, now time.Time) bool {
	if s.Tokens.AccessToken == "" {
		return true
	}

	expiresIn := s.Tokens.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultTokenTTL
	}
	expiry := s.Tokens.IssuedAt.Add(time.Duration(expiresIn) * time.Second)

	return !now.Before(expiry.Add(-nearExpiryWindow))
}
