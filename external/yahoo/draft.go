package yahoo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/GRD-Daddi/league-page/internal/domain/canonical"
)

// FetchDraftPicks normalizes completed draft selections.
func FetchDraftPicks(ctx context.Context, client *AuthedClient, leagueKey string) ([]canonical.DraftPick, error) {
	fc, err := client.DraftResults(ctx, leagueKey)
	if err != nil {
		return nil, fmt.Errorf("fetch draft results: %w", err)
	}

	return draftPicksFromYahoo(fc, leagueKey), nil
}

// FetchDraft builds the canonical draft descriptor from league metadata.
// Yahoo exposes no dedicated draft endpoint, so settings it does not publish
// keep conventional defaults.
func FetchDraft(ctx context.Context, client *AuthedClient, leagueKey string) (canonical.Draft, error) {
	metaFC, err := client.LeagueMeta(ctx, leagueKey)
	if err != nil {
		return canonical.Draft{}, fmt.Errorf("fetch league metadata: %w", err)
	}

	meta, _ := fieldMap(metaFC, "league")
	return draftFromYahoo(meta, leagueKey), nil
}

func draftFromYahoo(meta map[string]any, leagueKey string) canonical.Draft {
	if meta == nil {
		meta = map[string]any{}
	}

	status, ok := draftStatusByYahoo[strField(meta, "draft_status")]
	if !ok {
		status = "pre_draft"
	}

	season := strField(meta, "season")
	if season == "" {
		season = strconv.Itoa(currentYear())
	}

	draftID := strField(meta, "draft_id")
	if draftID == "" {
		draftID = leagueKey + "_draft"
	}

	var startTime *int64
	if t := int64(floatField(meta, "draft_time")); t > 0 {
		millis := t * 1000
		startTime = &millis
	}

	draftType := strField(meta, "draft_type")
	if draftType == "" {
		draftType = "live"
	}

	return canonical.Draft{
		DraftID:    draftID,
		Type:       "snake",
		Status:     status,
		Sport:      "nfl",
		Season:     season,
		SeasonType: "regular",

		Settings: canonical.DraftSettings{
			Rounds:    intOr(meta, "num_draft_rounds", 15),
			PickTimer: intOr(meta, "draft_pick_time", 90),

			Teams: intOr(meta, "num_teams", 10),

			CPUAutopick:           1,
			EnforcePositionLimits: 1,
		},

		StartTime: startTime,

		LeagueID: leagueKey,

		Metadata: map[string]any{
			"yahoo_league_key": leagueKey,
			"draft_type":       draftType,
			"is_editable":      boolToInt(strField(meta, "edit_key") != ""),
		},

		Creators:   nil,
		DraftOrder: nil,
	}
}

func draftPicksFromYahoo(fc map[string]any, leagueKey string) []canonical.DraftPick {
	out := []canonical.DraftPick{}

	league, ok := fieldMap(fc, "league")
	if !ok {
		return out
	}

	for _, item := range fieldList(league, "draft_results") {
		wrapper, ok := asMap(item)
		if !ok {
			continue
		}
		value, found := wrapper["draft_result"]
		if !found {
			value = wrapper
		}
		pick, ok := probe(value)
		if !ok {
			continue
		}

		out = append(out, draftPickFromYahoo(pick, leagueKey))
	}

	return out
}

func draftPickFromYahoo(pick map[string]any, leagueKey string) canonical.DraftPick {
	teamKey := strField(pick, "team_key")

	var pickedBy *string
	var rosterID, draftSlot *int
	if id, ok := teamIDFromKey(teamKey); ok {
		v := strconv.Itoa(id)
		pickedBy = &v
		rosterID = intPtr(id)
		draftSlot = intPtr(id)
	}

	var cost any
	if v := strField(pick, "cost"); v != "" {
		cost = v
	}
	isKeeper := strField(pick, "is_keeper") == "1"
	var isKeeperOut *bool
	if isKeeper {
		v := true
		isKeeperOut = &v
	}

	return canonical.DraftPick{
		PlayerID: playerID(pick),
		PickedBy: pickedBy,
		RosterID: rosterID,

		Round:     intField(pick, "round"),
		DraftSlot: draftSlot,
		PickNo:    intField(pick, "pick"),

		Metadata: map[string]any{
			"yahoo_player_key": strField(pick, "player_key"),
			"team_key":         teamKey,
			"cost":             cost,
			"is_keeper":        isKeeper,
		},

		IsKeeper: isKeeperOut,

		DraftID: leagueKey + "_draft",
	}
}
