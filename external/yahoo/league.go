package yahoo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/GRD-Daddi/league-page/internal/domain/canonical"
)

// FetchLeague loads league metadata and settings in parallel and normalizes
// them into the canonical league record.
func FetchLeague(ctx context.Context, client *AuthedClient, leagueKey string) (canonical.League, error) {
	var metaFC, settingsFC map[string]any

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		fc, err := client.LeagueMeta(ctx, leagueKey)
		if err != nil {
			return fmt.Errorf("fetch league metadata: %w", err)
		}
		metaFC = fc
		return nil
	})
	p.Go(func(ctx context.Context) error {
		fc, err := client.LeagueSettings(ctx, leagueKey)
		if err != nil {
			return fmt.Errorf("fetch league settings: %w", err)
		}
		settingsFC = fc
		return nil
	})
	if err := p.Wait(); err != nil {
		return canonical.League{}, err
	}

	meta, _ := fieldMap(metaFC, "league")
	settingsOwner, _ := fieldMap(settingsFC, "league")
	settings, _ := fieldMap(settingsOwner, "settings")

	return leagueFromYahoo(meta, settings, leagueKey), nil
}

func leagueFromYahoo(meta, settings map[string]any, leagueKey string) canonical.League {
	if meta == nil {
		meta = map[string]any{}
	}
	if settings == nil {
		settings = map[string]any{}
	}

	season := strField(meta, "season")
	if season == "" {
		season = strconv.Itoa(time.Now().Year())
	}

	status, ok := leagueStatusByDraftStatus[strField(meta, "draft_status")]
	if !ok {
		status = "pre_draft"
	}

	numTeams := intField(meta, "num_teams")

	var waiverBidMin *int
	if strField(settings, "waiver_rule") == "faab" {
		waiverBidMin = intPtr(0)
	}

	maxTeams := intField(settings, "max_teams")
	if maxTeams == 0 {
		maxTeams = numTeams
	}
	scoringType := strField(settings, "scoring_type")
	if scoringType == "" {
		scoringType = "head_to_head"
	}
	leagueType := "custom"
	if boolField(settings, "is_pro_league") {
		leagueType = "pro"
	}

	var draftID *string
	if v := strField(meta, "draft_id"); v != "" {
		draftID = &v
	}
	var avatar *string
	if v := strField(meta, "logo_url"); v != "" {
		avatar = &v
	}

	return canonical.League{
		LeagueID:   leagueKey,
		Name:       strField(meta, "name"),
		Season:     season,
		SeasonType: "regular",
		Status:     status,
		Sport:      "nfl",

		Settings: canonical.LeagueSettings{
			NumTeams:         numTeams,
			PlayoffWeekStart: intOr(settings, "playoff_start_week", 15),
			PlayoffTeams:     intOr(settings, "num_playoff_teams", 6),

			Leg:         1,
			PickTrading: boolToInt(boolField(settings, "trade_draft_picks")),

			TradeDeadline:   intField(settings, "trade_end_date"),
			TradeReviewDays: intField(settings, "trade_review_days"),

			WaiverBidMin:    waiverBidMin,
			WaiverBudget:    intField(settings, "faab_balance"),
			WaiverClearDays: 1,
			WaiverDayOfWeek: 3,
			WaiverType:      waiverTypeByRule[strField(settings, "waiver_rule")],
		},

		ScoringSettings: scoringFromStatCategories(settings["stat_categories"]),
		RosterPositions: rosterPositionsFromSettings(settings["roster_positions"]),

		PreviousLeagueID: nil,
		TotalRosters:     numTeams,

		DraftID: draftID,
		Avatar:  avatar,

		Metadata: map[string]any{
			"yahoo_league_key": leagueKey,
			"yahoo_game_key":   strField(meta, "game_key"),
			"scoring_type":     scoringType,
			"max_teams":        maxTeams,
			"league_type":      leagueType,
		},
	}
}

// scoringFromStatCategories maps Yahoo's stat category modifiers to canonical
// scoring keys. Unknown stat ids and empty values are dropped.
func scoringFromStatCategories(raw any) map[string]float64 {
	out := map[string]float64{}
	container, ok := probe(raw)
	if !ok {
		return out
	}

	// stats is usually a list of {stat: {...}} wrappers, but it can also
	// arrive as {stat: [...]} with the list one level down.
	items := fieldList(container, "stats")
	if len(items) == 1 {
		if m, ok := asMap(items[0]); ok {
			if list := fieldList(m, "stat"); len(list) > 1 {
				items = list
			}
		}
	}

	for _, item := range items {
		stat, ok := probe(item)
		if !ok {
			continue
		}
		// Items sometimes arrive wrapped one level deeper.
		if inner, ok := fieldMap(stat, "stat"); ok {
			stat = inner
		}

		key, ok := scoringStatByID[strField(stat, "stat_id")]
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

// statValue reads a modifier value, treating absent and empty values as
// missing.
func statValue(stat map[string]any) (float64, bool) {
	raw, ok := stat["value"]
	if !ok {
		return 0, false
	}
	switch t := raw.(type) {
	case string:
		if t == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		if t == 0 {
			return 0, false
		}
		return t, true
	}
	return 0, false
}

// rosterPositionsFromSettings expands {position, count} entries into repeated
// canonical slot codes.
func rosterPositionsFromSettings(raw any) []string {
	out := []string{}

	// Either a bare list of {roster_position: {...}} wrappers or an object
	// holding that list under "roster_position".
	items := segmentList(raw)
	if m, ok := asMap(raw); ok {
		if list := fieldList(m, "roster_position"); list != nil {
			items = list
		}
	}

	for _, item := range items {
		var position string
		count := 1

		switch t := item.(type) {
		case string:
			position = t
		default:
			pos, ok := probe(item)
			if !ok {
				continue
			}
			if inner, ok := fieldMap(pos, "roster_position"); ok {
				pos = inner
			}
			position = strField(pos, "position")
			if c := intField(pos, "count"); c > 0 {
				count = c
			}
		}
		if position == "" {
			continue
		}

		slot, ok := rosterSlotByCode[position]
		if !ok {
			slot = position
		}
		for i := 0; i < count; i++ {
			out = append(out, slot)
		}
	}

	return out
}

func intOr(m map[string]any, key string, fallback int) int {
	if v := intField(m, key); v != 0 {
		return v
	}
	return fallback
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func intPtr(v int) *int {
	return &v
}
