package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/GRD-Daddi/league-page/external/yahoo"
	"github.com/GRD-Daddi/league-page/internal/domain/canonical"
	"github.com/GRD-Daddi/league-page/internal/platform/id"
	"github.com/GRD-Daddi/league-page/internal/platform/logging"
	"github.com/GRD-Daddi/league-page/internal/platform/resilience"
	"github.com/GRD-Daddi/league-page/internal/session"
)

// AuthService owns the OAuth login flow and the session token lifecycle.
// Refreshes for the same session collapse into a single upstream call, so
// concurrent requests racing a near-expired token cannot double-spend the
// refresh token.
type AuthService struct {
	yahoo    *yahoo.Client
	sessions session.Store
	leagueID string
	logger   *logging.Logger
	idGen    id.Generator
	flight   resilience.SingleFlight
	now      func() time.Time
}

func NewAuthService(yahooClient *yahoo.Client, sessions session.Store, leagueID string, logger *logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthService{
		yahoo:    yahooClient,
		sessions: sessions,
		leagueID: leagueID,
		logger:   logger,
		idGen:    id.NewRandomGenerator(),
		now:      time.Now,
	}
}

// BeginLogin mints an anti-forgery state value and the provider consent URL.
func (s *AuthService) BeginLogin() (state, authURL string, err error) {
	if !s.yahoo.Configured() {
		return "", "", fmt.Errorf("%w: provider credentials are not configured", ErrDependencyUnavailable)
	}

	state, err = s.idGen.NewID()
	if err != nil {
		return "", "", fmt.Errorf("generate state: %w", err)
	}

	return state, s.yahoo.AuthorizeURL(state), nil
}

// CompleteLogin exchanges the authorization code, identifies the user, and
// creates their session. Identity and league-member lookups are best effort:
// a failure there still yields a usable session.
func (s *AuthService) CompleteLogin(ctx context.Context, code string) (session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.CompleteLogin")
	defer span.End()

	tokens, err := s.yahoo.ExchangeCode(ctx, code)
	if err != nil {
		return session.Session{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	authed := s.yahoo.WithToken(tokens.AccessToken)

	userID, err := yahoo.FetchUserGUID(ctx, authed)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch user identity failed, continuing without guid", "error", err)
	}

	var managerInfo *canonical.LeagueUser
	if userID != "" && s.leagueID != "" {
		managerInfo = s.lookupManager(ctx, authed, userID)
	}

	sess, err := s.sessions.Create(userID, session.Tokens{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		IssuedAt:     s.now(),
	}, managerInfo)
	if err != nil {
		return session.Session{}, fmt.Errorf("create session: %w", err)
	}

	return sess, nil
}

// lookupManager matches the user's GUID against the league's members.
func (s *AuthService) lookupManager(ctx context.Context, authed *yahoo.AuthedClient, userID string) *canonical.LeagueUser {
	users, err := yahoo.FetchLeagueUsers(ctx, authed, s.leagueID)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch league members failed, continuing without manager info", "error", err)
		return nil
	}

	for i := range users {
		if users[i].UserID == userID {
			return &users[i]
		}
		if guid, _ := users[i].Metadata["yahoo_guid"].(string); guid == userID {
			return &users[i]
		}
	}

	return nil
}

// SessionFromID loads a live session.
func (s *AuthService) SessionFromID(sessionID string) (session.Session, bool) {
	return s.sessions.Get(sessionID)
}

// EnsureFreshTokens returns the session with a usable access token,
// refreshing it first when it is near expiry. A failed refresh deletes the
// session and reports ErrUnauthorized; the caller downgrades to anonymous.
func (s *AuthService) EnsureFreshTokens(ctx context.Context, sessionID string) (session.Session, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return session.Session{}, fmt.Errorf("%w: session=%s", ErrNotFound, sessionID)
	}

	if !session.IsTokenNearExpiry(sess, s.now()) {
		return sess, nil
	}

	out, err, _ := s.flight.Do("refresh:"+sessionID, func() (any, error) {
		return s.refreshSession(ctx, sessionID)
	})
	if err != nil {
		return session.Session{}, err
	}

	refreshed, ok := out.(session.Session)
	if !ok {
		return session.Session{}, fmt.Errorf("unexpected refresh result type %T", out)
	}

	return refreshed, nil
}

func (s *AuthService) refreshSession(ctx context.Context, sessionID string) (session.Session, error) {
	// Re-read inside the flight: a concurrent caller may have refreshed
	// while this one waited.
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return session.Session{}, fmt.Errorf("%w: session=%s", ErrNotFound, sessionID)
	}
	if !session.IsTokenNearExpiry(sess, s.now()) {
		return sess, nil
	}

	tokens, err := s.yahoo.RefreshToken(ctx, sess.Tokens.RefreshToken)
	if err != nil {
		s.sessions.Delete(sessionID)
		return session.Session{}, fmt.Errorf("%w: token refresh failed: %s", ErrUnauthorized, err)
	}

	updated, ok := s.sessions.UpdateTokens(sessionID, session.Tokens{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		IssuedAt:     s.now(),
	})
	if !ok {
		return session.Session{}, fmt.Errorf("%w: session=%s", ErrNotFound, sessionID)
	}

	return updated, nil
}

// Logout deletes the session.
func (s *AuthService) Logout(sessionID string) {
	if sessionID != "" {
		s.sessions.Delete(sessionID)
	}
}

// ClientFor mints the per-request provider client for a session.
func (s *AuthService) ClientFor(sess session.Session) *yahoo.AuthedClient {
	return s.yahoo.WithToken(sess.Tokens.AccessToken)
}
