package sleeper

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/GRD-Daddi/league-page/internal/domain/canonical"
	"github.com/GRD-Daddi/league-page/internal/platform/logging"
	"github.com/GRD-Daddi/league-page/internal/platform/resilience"
)

const defaultBaseURL = "https://api.sleeper.app/v1"

// HTTPError is a non-success upstream response with its decoded body.
type HTTPError struct {
	StatusCode int
	Body       any
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("sleeper upstream status=%d body=%v", e.StatusCode, e.Body)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads public Sleeper data. Records already match the canonical
// shapes, so calls decode straight into them.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) League(ctx context.Context, leagueID string) (canonical.League, error) {
	return doGet[canonical.League](ctx, c, "/league/"+url.PathEscape(leagueID))
}

func (c *Client) Rosters(ctx context.Context, leagueID string) ([]canonical.Roster, error) {
	return doGet[[]canonical.Roster](ctx, c, "/league/"+url.PathEscape(leagueID)+"/rosters")
}

func (c *Client) Users(ctx context.Context, leagueID string) ([]canonical.LeagueUser, error) {
	return doGet[[]canonical.LeagueUser](ctx, c, "/league/"+url.PathEscape(leagueID)+"/users")
}

func (c *Client) Matchups(ctx context.Context, leagueID string, week int) ([]canonical.Matchup, error) {
	return doGet[[]canonical.Matchup](ctx, c, "/league/"+url.PathEscape(leagueID)+"/matchups/"+strconv.Itoa(week))
}

func (c *Client) SportState(ctx context.Context) (canonical.SportState, error) {
	return doGet[canonical.SportState](ctx, c, "/state/nfl")
}

func (c *Client) Transactions(ctx context.Context, leagueID string, week int) ([]canonical.Transaction, error) {
	return doGet[[]canonical.Transaction](ctx, c, "/league/"+url.PathEscape(leagueID)+"/transactions/"+strconv.Itoa(week))
}

func (c *Client) DraftPicks(ctx context.Context, draftID string) ([]canonical.DraftPick, error) {
	return doGet[[]canonical.DraftPick](ctx, c, "/draft/"+url.PathEscape(draftID)+"/picks")
}

func (c *Client) Draft(ctx context.Context, draftID string) (canonical.Draft, error) {
	return doGet[canonical.Draft](ctx, c, "/draft/"+url.PathEscape(draftID))
}

func (c *Client) TradedPicks(ctx context.Context, leagueID string) ([]canonical.TradedPick, error) {
	return doGet[[]canonical.TradedPick](ctx, c, "/league/"+url.PathEscape(leagueID)+"/traded_picks")
}

func (c *Client) WinnersBracket(ctx context.Context, leagueID string) ([]canonical.BracketMatch, error) {
	return doGet[[]canonical.BracketMatch](ctx, c, "/league/"+url.PathEscape(leagueID)+"/winners_bracket")
}

func (c *Client) LosersBracket(ctx context.Context, leagueID string) ([]canonical.BracketMatch, error) {
	return doGet[[]canonical.BracketMatch](ctx, c, "/league/"+url.PathEscape(leagueID)+"/losers_bracket")
}

// AllPlayers returns the full NFL player catalog. The payload is several
// megabytes, so callers are expected to cache it.
func (c *Client) AllPlayers(ctx context.Context) (map[string]canonical.Player, error) {
	return doGet[map[string]canonical.Player](ctx, c, "/players/nfl")
}

func doGet[T any](ctx context.Context, c *Client, path string) (T, error) {
	var zero T

	raw, err := c.fetch(ctx, path)
	if err != nil {
		return zero, err
	}

	var decoded T
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return zero, fmt.Errorf("decode provider payload: %w", err)
	}

	return decoded, nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sleeper circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("fantasy provider is temporarily unavailable: %w", err)
		}
	}

	fullURL := c.baseURL + path

	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: decodeErrorBody(raw)}
	}

	return raw, nil
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

func decodeErrorBody(raw []byte) any {
	var decoded map[string]any
	if err := sonic.Unmarshal(raw, &decoded); err == nil {
		return decoded
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 240 {
		text = text[:240] + "..."
	}
	return text
}
