package canonical

// DraftPick is one selection in a completed draft.
type DraftPick struct {
	PlayerID string  `json:"player_id"`
	PickedBy *string `json:"picked_by"`
	RosterID *int    `json:"roster_id"`

	Round     int  `json:"round"`
	DraftSlot *int `json:"draft_slot"`
	PickNo    int  `json:"pick_no"`

	Metadata map[string]any `json:"metadata"`

	IsKeeper *bool `json:"is_keeper"`

	DraftID string `json:"draft_id"`
}

// Draft is the canonical draft descriptor for a league.
type Draft struct {
	DraftID    string `json:"draft_id"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	Sport      string `json:"sport"`
	Season     string `json:"season"`
	SeasonType string `json:"season_type"`

	Settings DraftSettings `json:"settings"`

	StartTime *int64 `json:"start_time"`

	LeagueID        string  `json:"league_id"`
	LastPicked      int64   `json:"last_picked"`
	LastMessageTime int64   `json:"last_message_time"`
	LastMessageID   *string `json:"last_message_id"`

	Metadata map[string]any `json:"metadata"`

	Creators   []string       `json:"creators"`
	DraftOrder map[string]int `json:"draft_order"`
}

type DraftSettings struct {
	SlotsWR   int `json:"slots_wr"`
	SlotsRB   int `json:"slots_rb"`
	SlotsQB   int `json:"slots_qb"`
	SlotsTE   int `json:"slots_te"`
	SlotsK    int `json:"slots_k"`
	SlotsDEF  int `json:"slots_def"`
	SlotsBN   int `json:"slots_bn"`
	SlotsFlex int `json:"slots_flex"`

	Rounds    int `json:"rounds"`
	PickTimer int `json:"pick_timer"`

	ReversalRound int `json:"reversal_round"`
	Teams         int `json:"teams"`
	AlphaSort     int `json:"alpha_sort"`

	CPUAutopick           int `json:"cpu_autopick"`
	EnforcePositionLimits int `json:"enforce_position_limits"`
}
