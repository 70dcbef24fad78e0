package session

import (
	"testing"
	"time"
)

func testTokens(issuedAt time.Time) Tokens {
	return Tokens{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresIn:    3600,
		IssuedAt:     issuedAt,
	}
}

func TestIsTokenNearExpiry_Boundary(t *testing.T) {
	issued := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	sess := Session{Tokens: testTokens(issued)}

	// Expiry is issued+3600s, the look-ahead window opens 5 minutes before.
	threshold := issued.Add(3600*time.Second - 5*time.Minute)

	if IsTokenNearExpiry(sess, threshold.Add(-time.Millisecond)) {
		t.Fatal("token should not be near expiry just before the window")
	}
	if !IsTokenNearExpiry(sess, threshold) {
		t.Fatal("token should be near expiry exactly at the window boundary")
	}
	if !IsTokenNearExpiry(sess, threshold.Add(time.Minute)) {
		t.Fatal("token should be near expiry inside the window")
	}
}

func TestIsTokenNearExpiry_Defaults(t *testing.T) {
	if !IsTokenNearExpiry(Session{}, time.Now()) {
		t.Fatal("session without tokens should read as expired")
	}

	issued := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	sess := Session{Tokens: Tokens{AccessToken: "access-1", IssuedAt: issued}}
	if IsTokenNearExpiry(sess, issued.Add(30*time.Minute)) {
		t.Fatal("missing expires_in should fall back to one hour")
	}
	if !IsTokenNearExpiry(sess, issued.Add(56*time.Minute)) {
		t.Fatal("fallback TTL should still honor the look-ahead window")
	}
}

func TestMemoryStore_SlidingWindowOnUpdate(t *testing.T) {
	store := NewMemoryStore(nil)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	created, err := store.Create("user-1", testTokens(now), nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if got := created.ExpiresAt; !got.Equal(now.Add(MaxAge)) {
		t.Fatalf("expected expiry %s, got %s", now.Add(MaxAge), got)
	}

	now = now.Add(3 * 24 * time.Hour)
	updated, ok := store.UpdateTokens(created.ID, testTokens(now))
	if !ok {
		t.Fatal("expected update to find the session")
	}
	if got := updated.ExpiresAt; !got.Equal(now.Add(MaxAge)) {
		t.Fatalf("expected slid expiry %s, got %s", now.Add(MaxAge), got)
	}
}

func TestMemoryStore_LazyEvictionOnGet(t *testing.T) {
	store := NewMemoryStore(nil)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	created, err := store.Create("user-1", testTokens(now), nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	now = now.Add(MaxAge + time.Second)
	if _, ok := store.Get(created.ID); ok {
		t.Fatal("expected expired session to be evicted on read")
	}
	if store.Len() != 0 {
		t.Fatalf("expected store to be empty after eviction, have %d", store.Len())
	}
}

func TestMemoryStore_SweepRemovesExpired(t *testing.T) {
	store := NewMemoryStore(nil)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if _, err := store.Create("user-1", testTokens(now), nil); err != nil {
		t.Fatalf("create session: %v", err)
	}

	now = now.Add(4 * 24 * time.Hour)
	fresh, err := store.Create("user-2", testTokens(now), nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	now = now.Add(MaxAge - time.Hour)
	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("expected sweep to remove 1 session, removed %d", removed)
	}
	if _, ok := store.Get(fresh.ID); !ok {
		t.Fatal("expected unexpired session to survive the sweep")
	}
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	store := NewMemoryStore(nil)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	created, err := store.Create("user-1", testTokens(now), nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if !store.Delete(created.ID) {
		t.Fatal("expected first delete to report the session existed")
	}
	if store.Delete(created.ID) {
		t.Fatal("expected second delete to report nothing removed")
	}
}
