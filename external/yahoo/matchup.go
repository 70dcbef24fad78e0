package yahoo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/GRD-Daddi/league-page/internal/domain/canonical"
)

// FetchMatchups normalizes one week's scoreboard. Each head-to-head pairing
// becomes two records sharing a matchup id; teams whose roster id cannot be
// derived from the team key are skipped.
func FetchMatchups(ctx context.Context, client *AuthedClient, leagueKey string, week int) ([]canonical.Matchup, error) {
	fc, err := client.Scoreboard(ctx, leagueKey, week)
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard week=%d: %w", week, err)
	}

	return matchupsFromScoreboard(fc), nil
}

func matchupsFromScoreboard(fc map[string]any) []canonical.Matchup {
	out := []canonical.Matchup{}

	league, ok := fieldMap(fc, "league")
	if !ok {
		return out
	}
	scoreboard, ok := fieldMap(league, "scoreboard")
	if !ok {
		return out
	}

	matchupID := 1
	for _, item := range fieldList(scoreboard, "matchups") {
		wrapper, ok := asMap(item)
		if !ok {
			continue
		}
		value, found := wrapper["matchup"]
		if !found {
			value = wrapper
		}
		matchup, ok := probe(value)
		if !ok {
			continue
		}

		for _, teamItem := range fieldList(matchup, "teams") {
			teamWrapper, ok := asMap(teamItem)
			if !ok {
				continue
			}
			teamValue, found := teamWrapper["team"]
			if !found {
				teamValue = teamWrapper
			}
			team, ok := probe(teamValue)
			if !ok {
				continue
			}

			if side, ok := matchupSideFromTeam(team, matchupID); ok {
				out = append(out, side)
			}
		}

		matchupID++
	}

	return out
}

func matchupSideFromTeam(team map[string]any, matchupID int) (canonical.Matchup, bool) {
	rosterID, ok := teamIDFromKey(strField(team, "team_key"))
	if !ok {
		return canonical.Matchup{}, false
	}

	teamPoints, _ := fieldMap(team, "team_points")

	var players []map[string]any
	if roster, ok := fieldMap(team, "roster"); ok {
		players = playerEntries(roster)
	}

	playerIDs := make([]string, 0, len(players))
	starters := make([]string, 0, len(players))
	points := make(map[string]float64, len(players))
	playersPoints := make(map[string]canonical.PlayerPoints, len(players))

	for _, player := range players {
		id := playerID(player)
		if id == "" {
			continue
		}

		var pts, proj float64
		if pp, ok := fieldMap(player, "player_points"); ok {
			pts = floatField(pp, "total")
		}
		if pp, ok := fieldMap(player, "player_projected_points"); ok {
			proj = floatField(pp, "total")
		}

		playerIDs = append(playerIDs, id)
		points[id] = pts
		playersPoints[id] = canonical.PlayerPoints{Pts: pts, Proj: proj}
		if isStarter(player) {
			starters = append(starters, id)
		}
	}

	startersPoints := make([]float64, len(starters))
	for i, id := range starters {
		startersPoints[i] = points[id]
	}

	return canonical.Matchup{
		RosterID:  rosterID,
		MatchupID: matchupID,

		Points:        floatField(teamPoints, "total"),
		PlayersPoints: playersPoints,

		Starters:       starters,
		StartersPoints: startersPoints,
		Players:        playerIDs,

		CustomPoints: nil,
	}, true
}

// SportStateNow synthesizes the NFL calendar state. Yahoo has no state
// endpoint, so the week is approximated from the date.
func SportStateNow() canonical.SportState {
	return sportStateAt(time.Now())
}

func sportStateAt(now time.Time) canonical.SportState {
	year := now.Year()
	month := int(now.Month())

	season := year
	seasonType := "regular"
	week := 1

	switch {
	case month >= 9 || month <= 2:
		if month <= 2 {
			season = year - 1
		}
		switch month {
		case 9:
			week = 1
		case 10:
			week = 5
		case 11:
			week = 9
		case 12:
			week = 13
			if now.Day() > 20 {
				week = 17
			}
		case 1:
			seasonType = "post"
			week = 18
		case 2:
			seasonType = "post"
			week = 20
		}
	default:
		seasonType = "off"
		week = 0
	}

	seasonStr := strconv.Itoa(season)

	return canonical.SportState{
		Week:               week,
		SeasonType:         seasonType,
		Season:             seasonStr,
		LeagueSeason:       seasonStr,
		PreviousSeason:     strconv.Itoa(season - 1),
		Leg:                1,
		LeagueCreateSeason: seasonStr,
		DisplayWeek:        week,
	}
}
