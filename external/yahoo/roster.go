package yahoo

import (
	"context"
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/GRD-Daddi/league-page/internal/domain/canonical"
)

// FetchRosters loads every team in the league and fans out one roster call
// per team. A failed roster call degrades that team to an empty roster
// instead of failing the whole listing.
func FetchRosters(ctx context.Context, client *AuthedClient, leagueKey string) ([]canonical.Roster, error) {
	teams, err := fetchLeagueTeams(ctx, client, leagueKey)
	if err != nil {
		return nil, err
	}

	p := pool.NewWithResults[*canonical.Roster]().WithMaxGoroutines(8)
	for index, team := range teams {
		index, team := index, team
		p.Go(func() *canonical.Roster {
			rosterID := index + 1
			teamKey := strField(team, "team_key")
			if teamKey == "" {
				return nil
			}

			rosterFC, err := client.TeamRoster(ctx, teamKey)
			if err != nil {
				client.app.logger.WarnContext(ctx, "fetch team roster failed, returning empty roster",
					"team_key", teamKey, "error", err)
				rosterFC = nil
			}

			roster := rosterFromYahoo(team, rosterPlayers(rosterFC), rosterID)
			return &roster
		})
	}

	results := p.Wait()
	rosters := make([]canonical.Roster, 0, len(results))
	for _, r := range results {
		if r != nil {
			rosters = append(rosters, *r)
		}
	}
	// Pool results arrive in completion order; restore team order.
	sort.Slice(rosters, func(i, j int) bool { return rosters[i].RosterID < rosters[j].RosterID })

	return rosters, nil
}

// FetchLeagueUsers maps each team's first manager to a canonical league
// member.
func FetchLeagueUsers(ctx context.Context, client *AuthedClient, leagueKey string) ([]canonical.LeagueUser, error) {
	teams, err := fetchLeagueTeams(ctx, client, leagueKey)
	if err != nil {
		return nil, err
	}

	users := make([]canonical.LeagueUser, 0, len(teams))
	for index, team := range teams {
		users = append(users, leagueUserFromTeam(team, index+1))
	}

	return users, nil
}

func fetchLeagueTeams(ctx context.Context, client *AuthedClient, leagueKey string) ([]map[string]any, error) {
	fc, err := client.LeagueStandings(ctx, leagueKey)
	if err != nil {
		return nil, fmt.Errorf("fetch league teams: %w", err)
	}

	league, ok := fieldMap(fc, "league")
	if !ok {
		return nil, fmt.Errorf("league payload missing league object")
	}

	container := league
	if standings, ok := fieldMap(league, "standings"); ok {
		container = standings
	}

	teams := make([]map[string]any, 0, 16)
	for _, item := range fieldList(container, "teams") {
		wrapper, ok := asMap(item)
		if !ok {
			continue
		}
		team, ok := probe(wrapper["team"])
		if !ok {
			continue
		}
		teams = append(teams, team)
	}

	return teams, nil
}

func rosterFromYahoo(team map[string]any, players []map[string]any, rosterID int) canonical.Roster {
	standings, _ := fieldMap(team, "team_standings")
	if standings == nil {
		standings, _ = fieldMap(team, "standings")
	}
	outcome, _ := fieldMap(standings, "outcome_totals")

	manager := firstManager(team)

	ownerID := strField(manager, "guid")
	if ownerID == "" {
		ownerID = fmt.Sprintf("yahoo_%d", rosterID)
	}

	teamKey := strField(team, "team_key")
	var leagueID *string
	if id, ok := leagueIDFromKey(teamKey); ok {
		leagueID = &id
	}

	playerIDs := make([]string, 0, len(players))
	starters := make([]string, 0, len(players))
	for _, player := range players {
		id := playerID(player)
		if id == "" {
			continue
		}
		playerIDs = append(playerIDs, id)
		if isStarter(player) {
			starters = append(starters, id)
		}
	}

	wins := intField(outcome, "wins")
	losses := intField(outcome, "losses")
	ties := intField(outcome, "ties")
	record := fmt.Sprintf("%d-%d", wins, losses)
	if ties > 0 {
		record = fmt.Sprintf("%s-%d", record, ties)
	}

	var division *int
	if d := intField(team, "division_id"); d > 0 {
		division = &d
	}

	rank := intField(standings, "rank")
	if rank == 0 {
		rank = rosterID
	}
	var playoffSeed *int
	if seed := intField(standings, "playoff_seed"); seed > 0 {
		playoffSeed = &seed
	}
	var streak any
	if s, ok := fieldMap(standings, "streak"); ok {
		streak = s
	}

	return canonical.Roster{
		RosterID: rosterID,
		OwnerID:  ownerID,
		LeagueID: leagueID,

		Players:  playerIDs,
		Starters: starters,
		Reserve:  []string{},
		Taxi:     nil,

		Settings: canonical.RosterSettings{
			Wins:   wins,
			Losses: losses,
			Ties:   ties,

			Fpts:               floatField(standings, "points_for"),
			FptsAgainst:        floatField(standings, "points_against"),
			FptsDecimal:        floatField(standings, "points_for"),
			FptsAgainstDecimal: floatField(standings, "points_against"),

			WaiverPosition: intField(team, "waiver_priority"),
			TotalMoves:     intField(team, "number_of_moves"),

			Division: division,

			Record: record,
		},

		Metadata: map[string]any{
			"team_key":     teamKey,
			"team_name":    strField(team, "name"),
			"team_logo":    teamLogo(team),
			"streak":       streak,
			"rank":         rank,
			"playoff_seed": playoffSeed,
		},

		Keepers:  nil,
		CoOwners: nil,
	}
}

func leagueUserFromTeam(team map[string]any, fallbackID int) canonical.LeagueUser {
	manager := firstManager(team)

	userID := strField(manager, "guid")
	if userID == "" {
		userID = fmt.Sprintf("yahoo_%d", fallbackID)
	}
	name := strField(manager, "nickname")
	if name == "" {
		name = strField(team, "name")
	}
	if name == "" {
		name = fmt.Sprintf("Team %d", fallbackID)
	}

	var avatar *string
	if v := strField(manager, "image_url"); v != "" {
		avatar = &v
	}
	var email any
	if v := strField(manager, "email"); v != "" {
		email = v
	}

	isCommissioner := strField(manager, "is_commissioner") == "1"

	return canonical.LeagueUser{
		UserID:      userID,
		Username:    name,
		DisplayName: name,
		Avatar:      avatar,
		Metadata: map[string]any{
			"team_key":        strField(team, "team_key"),
			"team_name":       strField(team, "name"),
			"yahoo_guid":      strField(manager, "guid"),
			"is_commissioner": isCommissioner,
			"email":           email,
		},
		IsOwner: isCommissioner,
		IsBot:   false,
	}
}

// rosterPlayers extracts the normalized player maps from a team roster
// payload. A nil payload yields no players.
func rosterPlayers(fc map[string]any) []map[string]any {
	if fc == nil {
		return nil
	}
	team, ok := fieldMap(fc, "team")
	if !ok {
		return nil
	}
	roster, ok := fieldMap(team, "roster")
	if !ok {
		return nil
	}

	return playerEntries(roster)
}

// playerEntries unwraps a "players" collection into merged player maps.
func playerEntries(container map[string]any) []map[string]any {
	out := make([]map[string]any, 0, 16)
	for _, item := range fieldList(container, "players") {
		wrapper, ok := asMap(item)
		if !ok {
			continue
		}
		// Items are either {player: ...} wrappers or bare player objects.
		value, found := wrapper["player"]
		if !found {
			value = wrapper
		}
		player, ok := probe(value)
		if !ok {
			continue
		}
		out = append(out, player)
	}
	return out
}

func playerID(player map[string]any) string {
	if id := strField(player, "player_key"); id != "" {
		return id
	}
	return strField(player, "player_id")
}

// isStarter reports whether the player occupies a lineup slot other than the
// bench or injured reserve.
func isStarter(player map[string]any) bool {
	selected, ok := probe(player["selected_position"])
	if !ok {
		return false
	}
	position := strField(selected, "position")
	return position != "" && position != "BN" && position != "IR"
}

func firstManager(team map[string]any) map[string]any {
	for _, item := range fieldList(team, "managers") {
		wrapper, ok := asMap(item)
		if !ok {
			continue
		}
		value, found := wrapper["manager"]
		if !found {
			value = wrapper
		}
		if manager, ok := probe(value); ok {
			return manager
		}
	}
	return map[string]any{}
}

func teamLogo(team map[string]any) any {
	for _, item := range fieldList(team, "team_logos") {
		wrapper, ok := asMap(item)
		if !ok {
			continue
		}
		value, found := wrapper["team_logo"]
		if !found {
			value = wrapper
		}
		if logo, ok := probe(value); ok {
			if u := strField(logo, "url"); u != "" {
				return u
			}
		}
	}
	if u := strField(team, "team_logo"); u != "" {
		return u
	}
	return nil
}
