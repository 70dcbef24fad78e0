package yahoo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/GRD-Daddi/league-page/internal/domain/canonical"
)

const playerFetchWorkers = 8

// FetchPlayers normalizes player catalog records. With explicit keys each
// player's metadata is fetched through a bounded worker pool and failed
// lookups are skipped; without keys the league player listing is used.
func FetchPlayers(ctx context.Context, client *AuthedClient, leagueKey string, playerKeys []string) ([]canonical.Player, error) {
	if len(playerKeys) > 0 {
		return fetchPlayersByKey(ctx, client, playerKeys)
	}

	fc, err := client.LeaguePlayers(ctx, leagueKey)
	if err != nil {
		return nil, fmt.Errorf("fetch league players: %w", err)
	}

	league, ok := fieldMap(fc, "league")
	if !ok {
		return []canonical.Player{}, nil
	}

	players := []canonical.Player{}
	for _, player := range playerEntries(league) {
		players = append(players, playerFromYahoo(player))
	}

	return players, nil
}

func fetchPlayersByKey(ctx context.Context, client *AuthedClient, playerKeys []string) ([]canonical.Player, error) {
	workers, err := ants.NewPool(playerFetchWorkers)
	if err != nil {
		return nil, fmt.Errorf("create player fetch pool: %w", err)
	}
	defer workers.Release()

	results := make([]*canonical.Player, len(playerKeys))
	var wg sync.WaitGroup
	for index, key := range playerKeys {
		index, key := index, key
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			fc, err := client.PlayerMeta(ctx, key)
			if err != nil {
				client.app.logger.WarnContext(ctx, "fetch player failed, skipping",
					"player_key", key, "error", err)
				return
			}
			player, ok := fieldMap(fc, "player")
			if !ok {
				return
			}
			converted := playerFromYahoo(player)
			results[index] = &converted
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit player fetch: %w", err)
		}
	}
	wg.Wait()

	players := make([]canonical.Player, 0, len(playerKeys))
	for _, p := range results {
		if p != nil {
			players = append(players, *p)
		}
	}

	return players, nil
}

// FetchPlayerStats maps one player's stat line to canonical stat keys. An
// upstream failure degrades to an empty stat map.
func FetchPlayerStats(ctx context.Context, client *AuthedClient, playerKey string, week int) (canonical.PlayerStats, error) {
	fc, err := client.PlayerStats(ctx, playerKey, week)
	if err != nil {
		client.app.logger.WarnContext(ctx, "fetch player stats failed, returning empty stats",
			"player_key", playerKey, "error", err)
		return canonical.PlayerStats{}, nil
	}

	return playerStatsFromYahoo(fc), nil
}

func playerStatsFromYahoo(fc map[string]any) canonical.PlayerStats {
	out := canonical.PlayerStats{}

	player, ok := fieldMap(fc, "player")
	if !ok {
		return out
	}
	statsOwner, ok := fieldMap(player, "player_stats")
	if !ok {
		statsOwner = player
	}
	stats, ok := fieldMap(statsOwner, "stats")
	if !ok {
		return out
	}

	for _, item := range fieldList(stats, "stat") {
		stat, ok := probe(item)
		if !ok {
			continue
		}
		if inner, ok := fieldMap(stat, "stat"); ok {
			stat = inner
		}

		key, ok := playerStatByID[strField(stat, "stat_id")]
		if !ok {
			continue
		}
		value, ok := statValue(stat)
		if !ok {
			continue
		}
		out[key] = value
	}

	return out
}

func playerFromYahoo(player map[string]any) canonical.Player {
	name, _ := fieldMap(player, "name")
	firstName := strField(name, "first")
	lastName := strField(name, "last")
	fullName := strField(name, "full")
	if fullName == "" {
		fullName = strings.TrimSpace(firstName + " " + lastName)
	}

	position := strField(player, "display_position")
	if position == "" {
		position = strField(player, "primary_position")
	}
	if position == "" {
		position = "NA"
	}

	var team *string
	if v := strField(player, "editorial_team_abbr"); v != "" {
		team = &v
	}

	status := strField(player, "status")
	if status == "" {
		status = "Active"
	}

	injuryNote := strField(player, "injury_note")
	var injuryStatus, injuryNotes *string
	if injuryNote != "" {
		questionable := "Questionable"
		injuryStatus = &questionable
		injuryNotes = &injuryNote
	}

	var number *int
	if v := intField(player, "uniform_number"); v > 0 {
		number = &v
	}
	var height, weight, college *string
	if v := strField(player, "height"); v != "" {
		height = &v
	}
	if v := strField(player, "weight"); v != "" {
		weight = &v
	}
	if v := strField(player, "college"); v != "" {
		college = &v
	}
	var yearsExp *int
	if v := intField(player, "experience"); v > 0 {
		yearsExp = &v
	}

	searchRank := intField(player, "average_draft_position")
	if searchRank == 0 {
		searchRank = 9999
	}

	var yahooID *int
	if v := intField(player, "player_id"); v > 0 {
		yahooID = &v
	}

	var headshot any
	if h, ok := fieldMap(player, "headshot"); ok {
		if u := strField(h, "url"); u != "" {
			headshot = u
		}
	}
	if headshot == nil {
		if u := strField(player, "image_url"); u != "" {
			headshot = u
		}
	}
	var byeWeek any
	if b, ok := fieldMap(player, "bye_weeks"); ok {
		if w := intField(b, "week"); w > 0 {
			byeWeek = w
		}
	}
	var teamFullName any
	if v := strField(player, "editorial_team_full_name"); v != "" {
		teamFullName = v
	}
	positionType := strField(player, "position_type")
	if positionType == "" {
		positionType = "O"
	}

	return canonical.Player{
		PlayerID: playerID(player),

		FirstName: firstName,
		LastName:  lastName,
		FullName:  fullName,

		Position: position,
		Team:     team,

		Status:       status,
		InjuryStatus: injuryStatus,

		Number: number,

		Height: height,
		Weight: weight,

		College: college,

		YearsExp: yearsExp,

		FantasyPositions: []string{position},

		Metadata: map[string]any{
			"yahoo_player_key":         strField(player, "player_key"),
			"yahoo_player_id":          strField(player, "player_id"),
			"editorial_team_full_name": teamFullName,
			"headshot_url":             headshot,
			"bye_week":                 byeWeek,
			"is_undroppable":           boolField(player, "is_undroppable"),
			"position_type":            positionType,
		},

		Sport:  "nfl",
		Active: status != "NA",

		SearchRank: searchRank,

		EspnID:  yahooID,
		YahooID: yahooID,

		InjuryNotes: injuryNotes,
	}
}

func currentYear() int {
	return time.Now().Year()
}
