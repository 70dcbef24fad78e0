package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/GRD-Daddi/league-page/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	PlatformSleeper = "sleeper"
	PlatformYahoo   = "yahoo"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	CORSAllowedOrigins []string
	SecureCookies      bool

	Platform string
	LeagueID string

	YahooClientID              string
	YahooClientSecret          string
	YahooRedirectURI           string
	YahooBaseURL               string
	YahooAuthBaseURL           string
	YahooTimeout               time.Duration
	YahooMaxAttempts           int
	YahooCircuitEnabled        bool
	YahooCircuitFailureCount   int
	YahooCircuitOpenTimeout    time.Duration
	YahooCircuitHalfOpenMaxReq int

	SleeperBaseURL               string
	SleeperTimeout               time.Duration
	SleeperCircuitEnabled        bool
	SleeperCircuitFailureCount   int
	SleeperCircuitOpenTimeout    time.Duration
	SleeperCircuitHalfOpenMaxReq int

	PlayerCacheTTL       time.Duration
	SessionSweepInterval time.Duration

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	platform, err := parsePlatform(getEnv("PLATFORM", PlatformSleeper))
	if err != nil {
		return Config{}, err
	}

	leagueID := strings.TrimSpace(getEnv("LEAGUE_ID", ""))
	if leagueID == "" {
		return Config{}, fmt.Errorf("LEAGUE_ID is required")
	}

	yahooClientID := strings.TrimSpace(getEnv("YAHOO_CLIENT_ID", ""))
	yahooClientSecret := strings.TrimSpace(getEnv("YAHOO_CLIENT_SECRET", ""))
	yahooRedirectURI := strings.TrimSpace(getEnv("YAHOO_REDIRECT_URI", ""))
	if platform == PlatformYahoo {
		if yahooClientID == "" || yahooClientSecret == "" {
			return Config{}, fmt.Errorf("YAHOO_CLIENT_ID and YAHOO_CLIENT_SECRET are required when PLATFORM=yahoo")
		}
		if yahooRedirectURI == "" {
			return Config{}, fmt.Errorf("YAHOO_REDIRECT_URI is required when PLATFORM=yahoo")
		}
	}

	yahooTimeout, err := time.ParseDuration(getEnv("YAHOO_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse YAHOO_TIMEOUT: %w", err)
	}
	if yahooTimeout <= 0 {
		return Config{}, fmt.Errorf("YAHOO_TIMEOUT must be > 0")
	}
	yahooMaxAttempts, err := getEnvAsInt("YAHOO_MAX_ATTEMPTS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse YAHOO_MAX_ATTEMPTS: %w", err)
	}
	if yahooMaxAttempts < 1 {
		return Config{}, fmt.Errorf("YAHOO_MAX_ATTEMPTS must be >= 1")
	}
	yahooCircuitEnabled, err := strconv.ParseBool(getEnv("YAHOO_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse YAHOO_CIRCUIT_ENABLED: %w", err)
	}
	yahooCircuitFailureCount, err := getEnvAsInt("YAHOO_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse YAHOO_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if yahooCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("YAHOO_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	yahooCircuitOpenTimeout, err := time.ParseDuration(getEnv("YAHOO_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse YAHOO_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if yahooCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("YAHOO_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	yahooCircuitHalfOpenMaxReq, err := getEnvAsInt("YAHOO_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse YAHOO_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if yahooCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("YAHOO_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	sleeperTimeout, err := time.ParseDuration(getEnv("SLEEPER_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_TIMEOUT: %w", err)
	}
	if sleeperTimeout <= 0 {
		return Config{}, fmt.Errorf("SLEEPER_TIMEOUT must be > 0")
	}
	sleeperCircuitEnabled, err := strconv.ParseBool(getEnv("SLEEPER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_ENABLED: %w", err)
	}
	sleeperCircuitFailureCount, err := getEnvAsInt("SLEEPER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if sleeperCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	sleeperCircuitOpenTimeout, err := time.ParseDuration(getEnv("SLEEPER_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if sleeperCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	sleeperCircuitHalfOpenMaxReq, err := getEnvAsInt("SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if sleeperCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	// The player catalog is large and changes slowly, so the default TTL
	// is generous.
	playerCacheTTL, err := time.ParseDuration(getEnv("PLAYER_CACHE_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PLAYER_CACHE_TTL: %w", err)
	}
	if playerCacheTTL <= 0 {
		return Config{}, fmt.Errorf("PLAYER_CACHE_TTL must be > 0")
	}

	sessionSweepInterval, err := time.ParseDuration(getEnv("SESSION_SWEEP_INTERVAL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SESSION_SWEEP_INTERVAL: %w", err)
	}
	if sessionSweepInterval <= 0 {
		return Config{}, fmt.Errorf("SESSION_SWEEP_INTERVAL must be > 0")
	}

	secureCookiesDefault := "false"
	if appEnv == EnvProd {
		secureCookiesDefault = "true"
	}
	secureCookies, err := strconv.ParseBool(getEnv("COOKIE_SECURE", secureCookiesDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse COOKIE_SECURE: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "league-page-api"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SecureCookies:      secureCookies,

		Platform: platform,
		LeagueID: leagueID,

		YahooClientID:              yahooClientID,
		YahooClientSecret:          yahooClientSecret,
		YahooRedirectURI:           yahooRedirectURI,
		YahooBaseURL:               strings.TrimSpace(getEnv("YAHOO_BASE_URL", "")),
		YahooAuthBaseURL:           strings.TrimSpace(getEnv("YAHOO_AUTH_BASE_URL", "")),
		YahooTimeout:               yahooTimeout,
		YahooMaxAttempts:           yahooMaxAttempts,
		YahooCircuitEnabled:        yahooCircuitEnabled,
		YahooCircuitFailureCount:   yahooCircuitFailureCount,
		YahooCircuitOpenTimeout:    yahooCircuitOpenTimeout,
		YahooCircuitHalfOpenMaxReq: yahooCircuitHalfOpenMaxReq,

		SleeperBaseURL:               strings.TrimSpace(getEnv("SLEEPER_BASE_URL", "")),
		SleeperTimeout:               sleeperTimeout,
		SleeperCircuitEnabled:        sleeperCircuitEnabled,
		SleeperCircuitFailureCount:   sleeperCircuitFailureCount,
		SleeperCircuitOpenTimeout:    sleeperCircuitOpenTimeout,
		SleeperCircuitHalfOpenMaxReq: sleeperCircuitHalfOpenMaxReq,

		PlayerCacheTTL:       playerCacheTTL,
		SessionSweepInterval: sessionSweepInterval,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parsePlatform(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case PlatformSleeper, PlatformYahoo:
		return value, nil
	default:
		return "", fmt.Errorf("invalid PLATFORM %q: valid values are %s, %s", v, PlatformSleeper, PlatformYahoo)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
