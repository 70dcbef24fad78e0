package yahoo

import "sort"

// Curated crosswalks from Yahoo's numeric stat ids and roster codes to the
// canonical vocabulary. Unmapped entries are dropped on purpose: emitting a
// wrong key corrupts downstream scoring math, a missing one only loses a
// stat category.

var scoringStatByID = map[string]string{
	"5":  "pass_yd",
	"6":  "pass_td",
	"7":  "pass_int",
	"9":  "rush_yd",
	"10": "rush_td",
	"11": "rec",
	"12": "rec_yd",
	"13": "rec_td",
	"15": "st_td",
	"16": "st_ff",
	"18": "fum_lost",
	"19": "fg_made",
	"20": "fg_miss",
	"21": "xp_made",
	"22": "xp_miss",
	"32": "def_td",
	"45": "def_st_td",
	"57": "fum_rec_td",
	"58": "bonus_pass_yd_300",
	"59": "bonus_pass_yd_400",
	"60": "bonus_rush_yd_100",
	"61": "bonus_rush_yd_200",
	"62": "bonus_rec_yd_100",
	"63": "bonus_rec_yd_200",
}

// playerStatByID is the per-player stat variant. It shares most ids with the
// scoring table but maps the kicking ids to raw counting stats and adds
// attempt and target categories.
var playerStatByID = map[string]string{
	"4":  "pass_att",
	"5":  "pass_yd",
	"6":  "pass_td",
	"7":  "pass_int",
	"8":  "pass_2pt",
	"9":  "rush_yd",
	"10": "rush_td",
	"11": "rec",
	"12": "rec_yd",
	"13": "rec_td",
	"14": "rec_2pt",
	"15": "st_td",
	"16": "st_ff",
	"18": "fum_lost",
	"19": "fgm",
	"20": "fgm_yds",
	"21": "xpm",
	"30": "rush_att",
	"31": "rec_tgt",
}

var rosterSlotByCode = map[string]string{
	"QB":      "QB",
	"RB":      "RB",
	"WR":      "WR",
	"TE":      "TE",
	"W/R":     "FLEX",
	"W/R/T":   "FLEX",
	"Q/W/R/T": "SUPER_FLEX",
	"K":       "K",
	"DEF":     "DEF",
	"D":       "DEF",
	"BN":      "BN",
	"IR":      "IR",
}

var leagueStatusByDraftStatus = map[string]string{
	"predraft":   "pre_draft",
	"inprogress": "drafting",
	"postdraft":  "in_season",
	"complete":   "complete",
}

var draftStatusByYahoo = map[string]string{
	"predraft":   "pre_draft",
	"inprogress": "in_progress",
	"postdraft":  "complete",
	"complete":   "complete",
}

var waiverTypeByRule = map[string]int{
	"faab":      2,
	"continual": 0,
	"gametime":  1,
}

// KnownScoringStatIDs reports the Yahoo stat ids the scoring crosswalk
// covers.
func KnownScoringStatIDs() []string {
	return mapKeys(scoringStatByID)
}

// KnownPlayerStatIDs reports the Yahoo stat ids the player stat crosswalk
// covers.
func KnownPlayerStatIDs() []string {
	return mapKeys(playerStatByID)
}

// KnownRosterSlotCodes reports the Yahoo roster position codes the slot
// crosswalk covers.
func KnownRosterSlotCodes() []string {
	return mapKeys(rosterSlotByCode)
}

func mapKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for key := range m {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
