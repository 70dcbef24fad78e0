package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	t.Setenv("LEAGUE_ID", "987654321")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_LeagueIDRequired(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LEAGUE_ID", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when LEAGUE_ID is missing")
	}
}

func TestLoad_PlatformValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LEAGUE_ID", "987654321")
	t.Setenv("PLATFORM", "espn")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported PLATFORM")
	}
}

func TestLoad_YahooRequiresCredentials(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LEAGUE_ID", "nfl.l.12345")
	t.Setenv("PLATFORM", PlatformYahoo)
	t.Setenv("YAHOO_CLIENT_ID", "")
	t.Setenv("YAHOO_CLIENT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PLATFORM=yahoo without credentials")
	}
}

func TestLoad_YahooConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LEAGUE_ID", "nfl.l.12345")
	t.Setenv("PLATFORM", PlatformYahoo)
	t.Setenv("YAHOO_CLIENT_ID", "client-id")
	t.Setenv("YAHOO_CLIENT_SECRET", "client-secret")
	t.Setenv("YAHOO_REDIRECT_URI", "https://league.example.com/auth/callback")
	t.Setenv("YAHOO_TIMEOUT", "5s")
	t.Setenv("YAHOO_MAX_ATTEMPTS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Platform != PlatformYahoo {
		t.Fatalf("unexpected Platform: %q", cfg.Platform)
	}
	if cfg.YahooTimeout != 5*time.Second {
		t.Fatalf("unexpected YahooTimeout: %s", cfg.YahooTimeout)
	}
	if cfg.YahooMaxAttempts != 2 {
		t.Fatalf("unexpected YahooMaxAttempts: %d", cfg.YahooMaxAttempts)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LEAGUE_ID", "987654321")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod secures cookies by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("LEAGUE_ID", "987654321")
		t.Setenv("COOKIE_SECURE", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SecureCookies {
			t.Fatalf("expected SecureCookies=true in prod by default")
		}
	})

	t.Run("dev defaults", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("LEAGUE_ID", "987654321")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SecureCookies {
			t.Fatalf("expected SecureCookies=false in dev by default")
		}
		if cfg.Platform != PlatformSleeper {
			t.Fatalf("expected sleeper as the default platform, got %q", cfg.Platform)
		}
		if cfg.PlayerCacheTTL != 24*time.Hour {
			t.Fatalf("unexpected PlayerCacheTTL: %s", cfg.PlayerCacheTTL)
		}
		if cfg.SessionSweepInterval != time.Hour {
			t.Fatalf("unexpected SessionSweepInterval: %s", cfg.SessionSweepInterval)
		}
	})
}
