package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/GRD-Daddi/league-page/external/sleeper"
	"github.com/GRD-Daddi/league-page/external/yahoo"
	"github.com/GRD-Daddi/league-page/internal/domain/canonical"
	"github.com/GRD-Daddi/league-page/internal/platform/cache"
)

const (
	PlatformSleeper = "sleeper"
	PlatformYahoo   = "yahoo"

	playerCatalogCacheKey = "players:nfl"
)

// PlatformService dispatches each league operation to the configured
// provider and guarantees the response is in canonical shape either way.
// Yahoo operations act on behalf of a user, so they take the request's
// authenticated client; Sleeper data is public.
type PlatformService struct {
	platform string
	leagueID string

	sleeper *sleeper.Client
	catalog *cache.Store
}

func NewPlatformService(platform, leagueID string, sleeperClient *sleeper.Client, catalog *cache.Store) *PlatformService {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform != PlatformYahoo {
		platform = PlatformSleeper
	}

	return &PlatformService{
		platform: platform,
		leagueID: strings.TrimSpace(leagueID),
		sleeper:  sleeperClient,
		catalog:  catalog,
	}
}

// Platform reports the active provider.
func (s *PlatformService) Platform() string {
	return s.platform
}

// IsYahoo reports whether user authentication is required for league data.
func (s *PlatformService) IsYahoo() bool {
	return s.platform == PlatformYahoo
}

func (s *PlatformService) LeagueData(ctx context.Context, authed *yahoo.AuthedClient) (canonical.League, error) {
	ctx, span := startUsecaseSpan(ctx, "PlatformService.LeagueData")
	defer span.End()

	if s.IsYahoo() {
		if authed == nil {
			return canonical.League{}, fmt.Errorf("%w: authentication required", ErrUnauthorized)
		}
		return yahoo.FetchLeague(ctx, authed, s.leagueID)
	}

	return s.sleeper.League(ctx, s.leagueID)
}

func (s *PlatformService) Rosters(ctx context.Context, authed *yahoo.AuthedClient) ([]canonical.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "PlatformService.Rosters")
	defer span.End()

	if s.IsYahoo() {
		if authed == nil {
			return nil, fmt.Errorf("%w: authentication required", ErrUnauthorized)
		}
		return yahoo.FetchRosters(ctx, authed, s.leagueID)
	}

	return s.sleeper.Rosters(ctx, s.leagueID)
}

func (s *PlatformService) Users(ctx context.Context, authed *yahoo.AuthedClient) ([]canonical.LeagueUser, error) {
	ctx, span := startUsecaseSpan(ctx, "PlatformService.Users")
	defer span.End()

	if s.IsYahoo() {
		if authed == nil {
			return nil, fmt.Errorf("%w: authentication required", ErrUnauthorized)
		}
		return yahoo.FetchLeagueUsers(ctx, authed, s.leagueID)
	}

	return s.sleeper.Users(ctx, s.leagueID)
}

func (s *PlatformService) MatchupsForWeek(ctx context.Context, authed *yahoo.AuthedClient, week int) ([]canonical.Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "PlatformService.MatchupsForWeek")
	defer span.End()

	if week < 1 {
		return nil, fmt.Errorf("%w: week must be at least 1", ErrInvalidInput)
	}

	if s.IsYahoo() {
		if authed == nil {
			return nil, fmt.Errorf("%w: authentication required", ErrUnauthorized)
		}
		return yahoo.FetchMatchups(ctx, authed, s.leagueID, week)
	}

	return s.sleeper.Matchups(ctx, s.leagueID, week)
}

// SportState never needs a user: Yahoo state is synthesized locally and
// Sleeper state is public.
func (s *PlatformService) SportState(ctx context.Context) (canonical.SportState, error) {
	if s.IsYahoo() {
		return yahoo.SportStateNow(), nil
	}

	return s.sleeper.SportState(ctx)
}

func (s *PlatformService) TransactionsForWeek(ctx context.Context, authed *yahoo.AuthedClient, week int) ([]canonical.Transaction, error) {
	ctx, span := startUsecaseSpan(ctx, "PlatformService.TransactionsForWeek")
	defer span.End()

	if week < 1 {
		return nil, fmt.Errorf("%w: week must be at least 1", ErrInvalidInput)
	}

	if s.IsYahoo() {
		if authed == nil {
			return nil, fmt.Errorf("%w: authentication required", ErrUnauthorized)
		}
		return yahoo.FetchTransactions(ctx, authed, s.leagueID, week)
	}

	return s.sleeper.Transactions(ctx, s.leagueID, week)
}

func (s *PlatformService) DraftPicks(ctx context.Context, authed *yahoo.AuthedClient) ([]canonical.DraftPick, error) {
	ctx, span := startUsecaseSpan(ctx, "PlatformService.DraftPicks")
	defer span.End()

	if s.IsYahoo() {
		if authed == nil {
			return nil, fmt.Errorf("%w: authentication required", ErrUnauthorized)
		}
		return yahoo.FetchDraftPicks(ctx, authed, s.leagueID)
	}

	draftID, err := s.sleeperDraftID(ctx)
	if err != nil {
		return nil, err
	}
	return s.sleeper.DraftPicks(ctx, draftID)
}

func (s *PlatformService) DraftData(ctx context.Context, authed *yahoo.AuthedClient) (canonical.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "PlatformService.DraftData")
	defer span.End()

	if s.IsYahoo() {
		if authed == nil {
			return canonical.Draft{}, fmt.Errorf("%w: authentication required", ErrUnauthorized)
		}
		return yahoo.FetchDraft(ctx, authed, s.leagueID)
	}

	draftID, err := s.sleeperDraftID(ctx)
	if err != nil {
		return canonical.Draft{}, err
	}
	return s.sleeper.Draft(ctx, draftID)
}

// TradedPicks is empty on Yahoo, which exposes no traded-pick endpoint.
func (s *PlatformService) TradedPicks(ctx context.Context, authed *yahoo.AuthedClient) ([]canonical.TradedPick, error) {
	if s.IsYahoo() {
		return []canonical.TradedPick{}, nil
	}

	return s.sleeper.TradedPicks(ctx, s.leagueID)
}

// WinnersBracket is empty on Yahoo, whose playoff structure has no bracket
// listing.
func (s *PlatformService) WinnersBracket(ctx context.Context, authed *yahoo.AuthedClient) ([]canonical.BracketMatch, error) {
	if s.IsYahoo() {
		return []canonical.BracketMatch{}, nil
	}

	return s.sleeper.WinnersBracket(ctx, s.leagueID)
}

func (s *PlatformService) LosersBracket(ctx context.Context, authed *yahoo.AuthedClient) ([]canonical.BracketMatch, error) {
	if s.IsYahoo() {
		return []canonical.BracketMatch{}, nil
	}

	return s.sleeper.LosersBracket(ctx, s.leagueID)
}

// AllPlayers serves the full player catalog. The Sleeper payload is large and
// changes slowly, so it is loaded through the shared cache; Yahoo has no bulk
// catalog and returns an empty map.
func (s *PlatformService) AllPlayers(ctx context.Context) (map[string]canonical.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlatformService.AllPlayers")
	defer span.End()

	if s.IsYahoo() {
		return map[string]canonical.Player{}, nil
	}

	loaded, err := s.catalog.GetOrLoad(ctx, playerCatalogCacheKey, func(ctx context.Context) (any, error) {
		return s.sleeper.AllPlayers(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("load player catalog: %w", err)
	}

	catalog, ok := loaded.(map[string]canonical.Player)
	if !ok {
		return nil, fmt.Errorf("unexpected player catalog type %T", loaded)
	}

	return catalog, nil
}

// PlayerStats is a Yahoo-only operation; Sleeper has no per-player stats
// endpoint in this API family, so the Sleeper branch returns an empty map.
func (s *PlatformService) PlayerStats(ctx context.Context, authed *yahoo.AuthedClient, playerKey string, week int) (canonical.PlayerStats, error) {
	playerKey = strings.TrimSpace(playerKey)
	if playerKey == "" {
		return nil, fmt.Errorf("%w: player key is required", ErrInvalidInput)
	}

	if s.IsYahoo() {
		if authed == nil {
			return nil, fmt.Errorf("%w: authentication required", ErrUnauthorized)
		}
		return yahoo.FetchPlayerStats(ctx, authed, playerKey, week)
	}

	return canonical.PlayerStats{}, nil
}

// sleeperDraftID resolves the league's draft id for draft-scoped calls.
func (s *PlatformService) sleeperDraftID(ctx context.Context) (string, error) {
	league, err := s.sleeper.League(ctx, s.leagueID)
	if err != nil {
		return "", fmt.Errorf("resolve draft id: %w", err)
	}
	if league.DraftID == nil || *league.DraftID == "" {
		return "", fmt.Errorf("%w: league has no draft", ErrNotFound)
	}

	return *league.DraftID, nil
}
