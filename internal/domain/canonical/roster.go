package canonical

// Roster is a fantasy team's canonical roster record.
type Roster struct {
	RosterID int     `json:"roster_id"`
	OwnerID  string  `json:"owner_id"`
	LeagueID *string `json:"league_id"`

	Players  []string `json:"players"`
	Starters []string `json:"starters"`
	Reserve  []string `json:"reserve"`
	Taxi     []string `json:"taxi"`

	Settings RosterSettings `json:"settings"`
	Metadata map[string]any `json:"metadata"`

	Keepers  []string `json:"keepers"`
	CoOwners []string `json:"co_owners"`
}

type RosterSettings struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`

	Fpts               float64 `json:"fpts"`
	FptsAgainst        float64 `json:"fpts_against"`
	FptsDecimal        float64 `json:"fpts_decimal"`
	FptsAgainstDecimal float64 `json:"fpts_against_decimal"`

	Ppts        float64 `json:"ppts"`
	PptsDecimal float64 `json:"ppts_decimal"`

	WaiverPosition   int `json:"waiver_position"`
	WaiverBudgetUsed int `json:"waiver_budget_used"`
	TotalMoves       int `json:"total_moves"`

	Division *int `json:"division"`

	Record string `json:"record"`
}

// LeagueUser is the canonical member record for a league.
type LeagueUser struct {
	UserID      string         `json:"user_id"`
	Username    string         `json:"username"`
	DisplayName string         `json:"display_name"`
	Avatar      *string        `json:"avatar"`
	Metadata    map[string]any `json:"metadata"`
	IsOwner     bool           `json:"is_owner"`
	IsBot       bool           `json:"is_bot"`
}
