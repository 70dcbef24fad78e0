package sleeper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GRD-Daddi/league-page/internal/platform/logging"
	"github.com/GRD-Daddi/league-page/internal/platform/resilience"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	return NewClient(ClientConfig{BaseURL: serverURL, Logger: logging.NewNop()})
}

func TestLeague_DecodesCanonicalRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/league/987654321" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"league_id": "987654321",
			"name": "Dynasty Degens",
			"status": "in_season",
			"season": "2026",
			"total_rosters": 12,
			"roster_positions": ["QB", "RB", "RB", "BN"],
			"scoring_settings": {"pass_td": 4, "rec": 0.5}
		}`))
	}))
	defer server.Close()

	league, err := newTestClient(t, server.URL).League(context.Background(), "987654321")
	if err != nil {
		t.Fatalf("fetch league: %v", err)
	}

	if league.Name != "Dynasty Degens" || league.TotalRosters != 12 {
		t.Fatalf("unexpected league %+v", league)
	}
	if league.ScoringSettings["rec"] != 0.5 {
		t.Fatalf("unexpected scoring settings %v", league.ScoringSettings)
	}
	if len(league.RosterPositions) != 4 {
		t.Fatalf("unexpected roster positions %v", league.RosterPositions)
	}
}

func TestMatchups_DecodesList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/league/987654321/matchups/3" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`[
			{"matchup_id": 1, "roster_id": 1, "points": 101.5, "starters": ["4034"]},
			{"matchup_id": 1, "roster_id": 2, "points": 88.25, "starters": ["6794"]}
		]`))
	}))
	defer server.Close()

	matchups, err := newTestClient(t, server.URL).Matchups(context.Background(), "987654321", 3)
	if err != nil {
		t.Fatalf("fetch matchups: %v", err)
	}

	if len(matchups) != 2 {
		t.Fatalf("expected 2 matchup sides, got %d", len(matchups))
	}
	if matchups[0].Points != 101.5 || matchups[1].RosterID != 2 {
		t.Fatalf("unexpected matchups %+v", matchups)
	}
}

func TestSportState_DecodesWeek(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/state/nfl" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"week": 5, "season": "2026", "season_type": "regular", "display_week": 5}`))
	}))
	defer server.Close()

	state, err := newTestClient(t, server.URL).SportState(context.Background())
	if err != nil {
		t.Fatalf("fetch state: %v", err)
	}
	if state.Week != 5 || state.Season != "2026" {
		t.Fatalf("unexpected state %+v", state)
	}
}

func TestFetch_ErrorBodyDecoded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).League(context.Background(), "missing")

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected status %d", httpErr.StatusCode)
	}
	body, ok := httpErr.Body.(map[string]any)
	if !ok || body["error"] != "not found" {
		t.Fatalf("expected decoded error body, got %v", httpErr.Body)
	}
}

func TestFetch_PlainTextErrorBodyKept(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).League(context.Background(), "1")

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.Body != "upstream exploded" {
		t.Fatalf("expected text error body, got %v", err)
	}
}

func TestFetch_CollapsesConcurrentIdenticalCalls(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Write([]byte(`{"week": 1, "season": "2026"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.SportState(context.Background()); err != nil {
				t.Errorf("sport state: %v", err)
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected identical concurrent calls to collapse into 1 request, got %d", calls.Load())
	}
}

func TestFetch_CircuitBreakerRejectsAfterFailures(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
		},
	})

	if _, err := client.League(context.Background(), "1"); err == nil {
		t.Fatalf("expected upstream failure")
	}
	_, err := client.SportState(context.Background())
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit rejection, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected breaker to shed the second call, got %d upstream requests", calls.Load())
	}
}
