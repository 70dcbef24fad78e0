package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/GRD-Daddi/league-page/external/yahoo"
	"github.com/GRD-Daddi/league-page/internal/domain/canonical"
	"github.com/GRD-Daddi/league-page/internal/platform/logging"
	"github.com/GRD-Daddi/league-page/internal/session"
)

// storeMock lets session-store interactions be asserted without the real
// in-memory backend.
type storeMock struct {
	mock.Mock
}

func (m *storeMock) Create(userID string, tokens session.Tokens, managerInfo *canonical.LeagueUser) (session.Session, error) {
	args := m.Called(userID, tokens, managerInfo)
	return args.Get(0).(session.Session), args.Error(1)
}

func (m *storeMock) Get(id string) (session.Session, bool) {
	args := m.Called(id)
	return args.Get(0).(session.Session), args.Bool(1)
}

func (m *storeMock) UpdateTokens(id string, tokens session.Tokens) (session.Session, bool) {
	args := m.Called(id, tokens)
	return args.Get(0).(session.Session), args.Bool(1)
}

func (m *storeMock) Delete(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}

func (m *storeMock) Sweep() int {
	args := m.Called()
	return args.Int(0)
}

func newMockedAuthService(store session.Store) *AuthService {
	client := yahoo.NewClient(yahoo.ClientConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Logger:       logging.NewNop(),
	})
	return NewAuthService(client, store, "nfl.l.12345", logging.NewNop())
}

func TestLogout_DeletesThroughStore(t *testing.T) {
	t.Parallel()

	store := &storeMock{}
	store.On("Delete", "sess-1").Return(true).Once()

	newMockedAuthService(store).Logout("sess-1")

	store.AssertExpectations(t)
}

func TestLogout_SkipsEmptySessionID(t *testing.T) {
	t.Parallel()

	store := &storeMock{}

	newMockedAuthService(store).Logout("")

	store.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestSessionFromID_ReadsThroughStore(t *testing.T) {
	t.Parallel()

	want := session.Session{ID: "sess-1", UserID: "user-guid"}
	store := &storeMock{}
	store.On("Get", "sess-1").Return(want, true).Once()
	store.On("Get", "missing").Return(session.Session{}, false).Once()

	svc := newMockedAuthService(store)

	got, ok := svc.SessionFromID("sess-1")
	if !ok || got.ID != want.ID {
		t.Fatalf("unexpected session %+v ok=%v", got, ok)
	}
	if _, ok := svc.SessionFromID("missing"); ok {
		t.Fatalf("expected miss for unknown id")
	}
	store.AssertExpectations(t)
}

func TestEnsureFreshTokens_FreshSessionBypassesRefresh(t *testing.T) {
	t.Parallel()

	fresh := session.Session{
		ID: "sess-1",
		Tokens: session.Tokens{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresIn:    3600,
			IssuedAt:     time.Now(),
		},
	}
	store := &storeMock{}
	store.On("Get", "sess-1").Return(fresh, true).Once()

	got, err := newMockedAuthService(store).EnsureFreshTokens(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("ensure fresh tokens: %v", err)
	}
	if got.Tokens.AccessToken != "access" {
		t.Fatalf("unexpected token %q", got.Tokens.AccessToken)
	}
	store.AssertNotCalled(t, "UpdateTokens", mock.Anything, mock.Anything)
}

func TestEnsureFreshTokens_MissingSessionIsNotFound(t *testing.T) {
	t.Parallel()

	store := &storeMock{}
	store.On("Get", "missing").Return(session.Session{}, false).Once()

	_, err := newMockedAuthService(store).EnsureFreshTokens(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
