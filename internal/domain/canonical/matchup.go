package canonical

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Matchup is one team's side of a weekly head-to-head pairing. Both sides of
// a pairing share the same MatchupID.
type Matchup struct {
	RosterID  int `json:"roster_id"`
	MatchupID int `json:"matchup_id"`

	Points        float64                 `json:"points"`
	PlayersPoints map[string]PlayerPoints `json:"players_points"`

	Starters       []string  `json:"starters"`
	StartersPoints []float64 `json:"starters_points"`
	Players        []string  `json:"players"`

	CustomPoints *float64 `json:"custom_points"`
}

// PlayerPoints carries actual and projected points for one player in a
// matchup.
type PlayerPoints struct {
	Pts  float64 `json:"pts"`
	Proj float64 `json:"proj"`
}

// UnmarshalJSON also accepts the bare-number form some providers emit for
// per-player points.
func (p *PlayerPoints) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*p = PlayerPoints{}
		return nil
	}
	if trimmed[0] != '{' {
		pts, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			return err
		}
		*p = PlayerPoints{Pts: pts}
		return nil
	}

	type alias PlayerPoints
	var decoded alias
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return err
	}
	*p = PlayerPoints(decoded)
	return nil
}

// SportState is the current point in the sport calendar.
type SportState struct {
	Week               int    `json:"week"`
	SeasonType         string `json:"season_type"`
	Season             string `json:"season"`
	LeagueSeason       string `json:"league_season"`
	PreviousSeason     string `json:"previous_season"`
	Leg                int    `json:"leg"`
	LeagueCreateSeason string `json:"league_create_season"`
	DisplayWeek        int    `json:"display_week"`
}

// BracketMatch is one playoff bracket pairing. The from references are only
// present on later rounds, so they marshal away when nil.
type BracketMatch struct {
	Round   int            `json:"r"`
	Match   int            `json:"m"`
	Team1   *int           `json:"t1"`
	Team2   *int           `json:"t2"`
	Winner  *int           `json:"w"`
	Loser   *int           `json:"l"`
	T1From  map[string]int `json:"t1_from,omitempty"`
	T2From  map[string]int `json:"t2_from,omitempty"`
	Placing *int           `json:"p,omitempty"`
}
