package yahoo

import (
	"bytes"
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/bytebufferpool"

	"github.com/GRD-Daddi/league-page/internal/platform/logging"
	"github.com/GRD-Daddi/league-page/internal/platform/resilience"
)

const (
	defaultBaseURL     = "https://fantasysports.yahooapis.com/fantasy/v2"
	defaultAuthBaseURL = "https://api.login.yahoo.com/oauth2"
	defaultMaxAttempts = 3
)

// errTransientAuth classifies Yahoo's transient credential-validation
// failures. Only this class is retried; every other error propagates
// unchanged.
var errTransientAuth = crerr.New("yahoo transient auth failure")

var transientAuthMarkers = []string{
	"token_expired",
	"oauth_problem",
	"please provide valid credentials",
}

var jsonToken = jsoniter.ConfigCompatibleWithStandardLibrary

// Tokens is a Yahoo OAuth token grant.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// HTTPError is a non-success upstream response with its decoded body.
type HTTPError struct {
	StatusCode int
	Body       any
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("yahoo upstream status=%d body=%v", e.StatusCode, e.Body)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	AuthBaseURL    string
	ClientID       string
	ClientSecret   string
	RedirectURI    string
	Timeout        time.Duration
	MaxAttempts    int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client holds the application credentials and shared transport state. User
// calls go through AuthedClient values minted per request with WithToken, so
// tokens never live on shared state.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	authBaseURL    string
	clientID       string
	clientSecret   string
	redirectURI    string
	maxAttempts    int
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
	authBaseURL := strings.TrimRight(strings.TrimSpace(cfg.AuthBaseURL), "/")
	if authBaseURL == "" {
		authBaseURL = defaultAuthBaseURL
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		authBaseURL:    authBaseURL,
		clientID:       strings.TrimSpace(cfg.ClientID),
		clientSecret:   strings.TrimSpace(cfg.ClientSecret),
		redirectURI:    strings.TrimSpace(cfg.RedirectURI),
		maxAttempts:    maxAttempts,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Configured reports whether application credentials are present.
func (c *Client) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// AuthorizeURL builds the Yahoo consent URL for the given anti-forgery state.
func (c *Client) AuthorizeURL(state string) string {
	values := url.Values{}
	values.Set("client_id", c.clientID)
	values.Set("redirect_uri", c.redirectURI)
	values.Set("response_type", "code")
	values.Set("state", state)
	return c.authBaseURL + "/request_auth?" + values.Encode()
}

// ExchangeCode trades an authorization code for a token grant.
func (c *Client) ExchangeCode(ctx context.Context, code string) (Tokens, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.redirectURI)
	return c.tokenRequest(ctx, form)
}

// RefreshToken trades a refresh token for a new grant.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (Tokens, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("redirect_uri", c.redirectURI)
	return c.tokenRequest(ctx, form)
}

func (c *Client) tokenRequest(ctx context.Context, form url.Values) (Tokens, error) {
	if !c.Configured() {
		return Tokens{}, fmt.Errorf("yahoo client credentials are not configured")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	appendField := func(key, value string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte('&')
		}
		_, _ = buf.WriteString(url.QueryEscape(key))
		_ = buf.WriteByte('=')
		_, _ = buf.WriteString(url.QueryEscape(value))
	}
	keys := make([]string, 0, len(form))
	for key := range form {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		for _, value := range form[key] {
			appendField(key, value)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authBaseURL+"/get_token", bytes.NewReader(buf.B))
	if err != nil {
		return Tokens{}, fmt.Errorf("build token request: %w", err)
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Tokens{}, fmt.Errorf("send token request: %s", c.sanitize(err.Error()))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Tokens{}, fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Tokens{}, &HTTPError{StatusCode: resp.StatusCode, Body: decodeErrorBody(raw)}
	}

	var tokens Tokens
	if err := jsonToken.Unmarshal(raw, &tokens); err != nil {
		return Tokens{}, fmt.Errorf("decode token response: %w", err)
	}
	if tokens.AccessToken == "" {
		return Tokens{}, fmt.Errorf("token response missing access token")
	}

	return tokens, nil
}

// WithToken returns a per-request view of the client bound to one user's
// access token.
func (c *Client) WithToken(accessToken string) *AuthedClient {
	return &AuthedClient{app: c, accessToken: accessToken}
}

// AuthedClient performs fantasy API calls on behalf of one user.
type AuthedClient struct {
	app         *Client
	accessToken string
}

func (a *AuthedClient) LeagueMeta(ctx context.Context, leagueKey string) (map[string]any, error) {
	return a.getJSON(ctx, "/league/"+url.PathEscape(leagueKey)+"/metadata")
}

func (a *AuthedClient) LeagueSettings(ctx context.Context, leagueKey string) (map[string]any, error) {
	return a.getJSON(ctx, "/league/"+url.PathEscape(leagueKey)+"/settings")
}

func (a *AuthedClient) LeagueStandings(ctx context.Context, leagueKey string) (map[string]any, error) {
	return a.getJSON(ctx, "/league/"+url.PathEscape(leagueKey)+"/standings")
}

func (a *AuthedClient) TeamRoster(ctx context.Context, teamKey string) (map[string]any, error) {
	return a.getJSON(ctx, "/team/"+url.PathEscape(teamKey)+"/roster/players")
}

func (a *AuthedClient) Scoreboard(ctx context.Context, leagueKey string, week int) (map[string]any, error) {
	return a.getJSON(ctx, fmt.Sprintf("/league/%s/scoreboard;week=%d", url.PathEscape(leagueKey), week))
}

func (a *AuthedClient) Transactions(ctx context.Context, leagueKey string) (map[string]any, error) {
	return a.getJSON(ctx, "/league/"+url.PathEscape(leagueKey)+"/transactions")
}

func (a *AuthedClient) DraftResults(ctx context.Context, leagueKey string) (map[string]any, error) {
	return a.getJSON(ctx, "/league/"+url.PathEscape(leagueKey)+"/draftresults")
}

func (a *AuthedClient) LeaguePlayers(ctx context.Context, leagueKey string) (map[string]any, error) {
	return a.getJSON(ctx, "/league/"+url.PathEscape(leagueKey)+"/players")
}

func (a *AuthedClient) PlayerMeta(ctx context.Context, playerKey string) (map[string]any, error) {
	return a.getJSON(ctx, "/player/"+url.PathEscape(playerKey)+"/metadata")
}

func (a *AuthedClient) PlayerStats(ctx context.Context, playerKey string, week int) (map[string]any, error) {
	path := "/player/" + url.PathEscape(playerKey) + "/stats"
	if week > 0 {
		path = fmt.Sprintf("%s;type=week;week=%d", path, week)
	}
	return a.getJSON(ctx, path)
}

// UserGames returns the logged-in user's games, which carry the user GUID.
func (a *AuthedClient) UserGames(ctx context.Context) (map[string]any, error) {
	return a.getJSON(ctx, "/users;use_login=1/games")
}

type fantasyEnvelope struct {
	FantasyContent map[string]any `json:"fantasy_content"`
}

func (a *AuthedClient) getJSON(ctx context.Context, path string) (map[string]any, error) {
	c := a.app
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "yahoo circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("fantasy provider is temporarily unavailable: %w", err)
		}
	}

	fullURL := c.baseURL + path + "?format=json"

	// Keyed by token and path so concurrent identical calls for the same
	// user collapse without ever sharing responses across users.
	key := a.accessToken + "|" + path
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL, a.accessToken)
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

	var envelope fantasyEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}
	if envelope.FantasyContent == nil {
		return nil, fmt.Errorf("provider payload missing fantasy content")
	}

	return envelope.FantasyContent, nil
}

// executeRequest performs the call, retrying only the transient-auth error
// class with linear backoff. Every other failure propagates unchanged on the
// first attempt.
func (c *Client) executeRequest(ctx context.Context, fullURL, accessToken string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("Accept", "application/json")

		raw, reqErr := c.readResponse(req, accessToken)
		if reqErr == nil {
			return raw, nil
		}
		if !stderrors.Is(reqErr, errTransientAuth) {
			return nil, reqErr
		}
		lastErr = reqErr

		if attempt == c.maxAttempts-1 {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "yahoo request failed", "url", redactURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func (c *Client) readResponse(req *http.Request, accessToken string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %s", sanitizeSensitiveText(err.Error(), accessToken))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	if isTransientAuthBody(raw) {
		return nil, fmt.Errorf("%w: status=%d body=%s", errTransientAuth, resp.StatusCode, abbreviateBody(raw))
	}
	return nil, &HTTPError{StatusCode: resp.StatusCode, Body: decodeErrorBody(raw)}
}

func (c *Client) sanitize(text string) string {
	return sanitizeSensitiveText(text, c.clientSecret)
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, errTransientAuth) {
		return true
	}
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

func isTransientAuthBody(body []byte) bool {
	text := strings.ToLower(string(body))
	for _, marker := range transientAuthMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

func decodeErrorBody(raw []byte) any {
	var decoded map[string]any
	if err := sonic.Unmarshal(raw, &decoded); err == nil {
		return decoded
	}
	return abbreviateBody(raw)
}

func sanitizeSensitiveText(value, secret string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if secret != "" {
		value = strings.ReplaceAll(value, secret, "REDACTED")
	}
	return value
}

func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	for _, param := range []string{"access_token", "token", "code"} {
		if query.Has(param) {
			query.Set(param, "REDACTED")
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
