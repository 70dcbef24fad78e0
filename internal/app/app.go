package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GRD-Daddi/league-page/external/sleeper"
	"github.com/GRD-Daddi/league-page/external/yahoo"
	"github.com/GRD-Daddi/league-page/internal/config"
	"github.com/GRD-Daddi/league-page/internal/interfaces/httpapi"
	"github.com/GRD-Daddi/league-page/internal/platform/cache"
	"github.com/GRD-Daddi/league-page/internal/platform/logging"
	"github.com/GRD-Daddi/league-page/internal/platform/resilience"
	"github.com/GRD-Daddi/league-page/internal/session"
	"github.com/GRD-Daddi/league-page/internal/usecase"
)

// NewHTTPServer wires providers, session storage, and services into the API
// server. The session sweeper runs until ctx is cancelled.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger, httpLogger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if httpLogger == nil {
		httpLogger = slog.Default()
	}

	yahooClient := yahoo.NewClient(yahoo.ClientConfig{
		BaseURL:      cfg.YahooBaseURL,
		AuthBaseURL:  cfg.YahooAuthBaseURL,
		ClientID:     cfg.YahooClientID,
		ClientSecret: cfg.YahooClientSecret,
		RedirectURI:  cfg.YahooRedirectURI,
		Timeout:      cfg.YahooTimeout,
		MaxAttempts:  cfg.YahooMaxAttempts,
		Logger:       logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.YahooCircuitEnabled,
			FailureThreshold: cfg.YahooCircuitFailureCount,
			OpenTimeout:      cfg.YahooCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.YahooCircuitHalfOpenMaxReq,
		},
	})

	sleeperClient := sleeper.NewClient(sleeper.ClientConfig{
		BaseURL: cfg.SleeperBaseURL,
		Timeout: cfg.SleeperTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SleeperCircuitEnabled,
			FailureThreshold: cfg.SleeperCircuitFailureCount,
			OpenTimeout:      cfg.SleeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SleeperCircuitHalfOpenMaxReq,
		},
	})

	sessions := session.NewMemoryStore(logger)
	sessions.StartSweeper(ctx, cfg.SessionSweepInterval)

	catalog := cache.NewStore(cfg.PlayerCacheTTL)
	platformSvc := usecase.NewPlatformService(cfg.Platform, cfg.LeagueID, sleeperClient, catalog)
	authSvc := usecase.NewAuthService(yahooClient, sessions, cfg.LeagueID, logger)

	handler := httpapi.NewHandler(platformSvc, authSvc, httpLogger, cfg.SecureCookies)
	router := httpapi.NewRouter(handler, authSvc, httpLogger, cfg.CORSAllowedOrigins, cfg.SecureCookies)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
