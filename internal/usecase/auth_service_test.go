package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GRD-Daddi/league-page/external/yahoo"
	"github.com/GRD-Daddi/league-page/internal/platform/logging"
	"github.com/GRD-Daddi/league-page/internal/session"
)

func newAuthFixture(t *testing.T, handler http.HandlerFunc) (*AuthService, *session.MemoryStore) {
	t.Helper()

	cfg := yahoo.ClientConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://league.example.com/auth/callback",
		MaxAttempts:  1,
		Logger:       logging.NewNop(),
	}
	if handler != nil {
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		cfg.BaseURL = server.URL
		cfg.AuthBaseURL = server.URL
	}

	store := session.NewMemoryStore(logging.NewNop())
	return NewAuthService(yahoo.NewClient(cfg), store, "nfl.l.12345", logging.NewNop()), store
}

func TestBeginLogin(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)

	state, authURL, err := svc.BeginLogin()
	if err != nil {
		t.Fatalf("begin login: %v", err)
	}
	if state == "" {
		t.Fatalf("expected non-empty state")
	}
	if !strings.Contains(authURL, "state="+state) {
		t.Fatalf("expected auth url to carry the state, got %q", authURL)
	}
}

func TestBeginLogin_UnconfiguredProvider(t *testing.T) {
	store := session.NewMemoryStore(logging.NewNop())
	svc := NewAuthService(yahoo.NewClient(yahoo.ClientConfig{Logger: logging.NewNop()}), store, "nfl.l.12345", logging.NewNop())

	if _, _, err := svc.BeginLogin(); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
}

func TestCompleteLogin_CreatesSession(t *testing.T) {
	svc, store := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/get_token") {
			w.Write([]byte(`{"access_token":"access","refresh_token":"refresh","expires_in":3600}`))
			return
		}
		// Identity lookup is best effort.
		http.NotFound(w, r)
	})

	sess, err := svc.CompleteLogin(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("complete login: %v", err)
	}

	if sess.ID == "" {
		t.Fatalf("expected session id")
	}
	stored, ok := store.Get(sess.ID)
	if !ok {
		t.Fatalf("expected session persisted")
	}
	if stored.Tokens.AccessToken != "access" || stored.Tokens.RefreshToken != "refresh" {
		t.Fatalf("unexpected stored tokens %+v", stored.Tokens)
	}
}

func TestCompleteLogin_ExchangeFailure(t *testing.T) {
	svc, _ := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"INVALID_AUTHORIZATION_CODE"}`))
	})

	if _, err := svc.CompleteLogin(context.Background(), "bad-code"); err == nil {
		t.Fatalf("expected exchange failure")
	}
}

func TestEnsureFreshTokens_UnknownSession(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)

	if _, err := svc.EnsureFreshTokens(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEnsureFreshTokens_FreshTokenSkipsRefresh(t *testing.T) {
	var calls atomic.Int64
	svc, store := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"access_token":"fresh","refresh_token":"rotated","expires_in":3600}`))
	})

	sess, err := store.Create("user-guid", session.Tokens{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresIn:    3600,
		IssuedAt:     time.Now(),
	}, nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	got, err := svc.EnsureFreshTokens(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("ensure fresh tokens: %v", err)
	}
	if got.Tokens.AccessToken != "access" {
		t.Fatalf("expected original token kept, got %q", got.Tokens.AccessToken)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no upstream call for a fresh token, got %d", calls.Load())
	}
}

func TestEnsureFreshTokens_RefreshesNearExpiry(t *testing.T) {
	svc, store := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"fresh","refresh_token":"rotated","expires_in":3600}`))
	})

	sess, err := store.Create("user-guid", session.Tokens{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		ExpiresIn:    60,
		IssuedAt:     time.Now(),
	}, nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	got, err := svc.EnsureFreshTokens(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("ensure fresh tokens: %v", err)
	}
	if got.Tokens.AccessToken != "fresh" || got.Tokens.RefreshToken != "rotated" {
		t.Fatalf("unexpected refreshed tokens %+v", got.Tokens)
	}

	stored, ok := store.Get(sess.ID)
	if !ok || stored.Tokens.RefreshToken != "rotated" {
		t.Fatalf("expected rotated refresh token persisted, got %+v", stored.Tokens)
	}
}

func TestEnsureFreshTokens_ConcurrentRefreshCollapses(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	svc, store := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Write([]byte(`{"access_token":"fresh","refresh_token":"rotated","expires_in":3600}`))
	})

	sess, err := store.Create("user-guid", session.Tokens{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		ExpiresIn:    60,
		IssuedAt:     time.Now(),
	}, nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.EnsureFreshTokens(context.Background(), sess.ID)
			if err != nil {
				t.Errorf("ensure fresh tokens: %v", err)
				return
			}
			if got.Tokens.AccessToken != "fresh" {
				t.Errorf("unexpected token %q", got.Tokens.AccessToken)
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected concurrent refreshes to collapse into 1 upstream call, got %d", calls.Load())
	}
}

func TestEnsureFreshTokens_FailedRefreshDeletesSession(t *testing.T) {
	svc, store := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"INVALID_REFRESH_TOKEN"}`))
	})

	sess, err := store.Create("user-guid", session.Tokens{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		ExpiresIn:    60,
		IssuedAt:     time.Now(),
	}, nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	_, err = svc.EnsureFreshTokens(context.Background(), sess.ID)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, ok := store.Get(sess.ID); ok {
		t.Fatalf("expected session deleted after failed refresh")
	}
}

func TestLogout(t *testing.T) {
	svc, store := newAuthFixture(t, nil)

	sess, err := store.Create("user-guid", session.Tokens{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresIn:    3600,
		IssuedAt:     time.Now(),
	}, nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	svc.Logout(sess.ID)
	if _, ok := store.Get(sess.ID); ok {
		t.Fatalf("expected session removed")
	}

	// An empty id is a no-op.
	svc.Logout("")
}
