// Package canonical holds the wire records every provider is normalized
// into. Field names and null conventions follow the Sleeper API because
// downstream consumers read these bodies verbatim.
package canonical

// League is the canonical league record.
type League struct {
	LeagueID   string `json:"league_id"`
	Name       string `json:"name"`
	Season     string `json:"season"`
	SeasonType string `json:"season_type"`
	Status     string `json:"status"`
	Sport      string `json:"sport"`

	Settings        LeagueSettings     `json:"settings"`
	ScoringSettings map[string]float64 `json:"scoring_settings"`
	RosterPositions []string           `json:"roster_positions"`

	PreviousLeagueID *string `json:"previous_league_id"`
	TotalRosters     int     `json:"total_rosters"`

	Shard                 int     `json:"shard"`
	LastTransactionID     int     `json:"last_transaction_id"`
	LastAuthorID          int     `json:"last_author_id"`
	LastAuthorDisplayName string  `json:"last_author_display_name"`
	LastAuthorAvatar      *string `json:"last_author_avatar"`
	LastAuthorIsBot       bool    `json:"last_author_is_bot"`
	LastPinnedMessageID   int     `json:"last_pinned_message_id"`
	LastMessageTime       int64   `json:"last_message_time"`
	LastMessageTextMap    any     `json:"last_message_text_map"`
	LastMessageAttachment any     `json:"last_message_attachment"`
	LastReadID            *string `json:"last_read_id"`
	LastMessageID         *string `json:"last_message_id"`

	DraftID *string `json:"draft_id"`
	Avatar  *string `json:"avatar"`

	Metadata map[string]any `json:"metadata"`
}

// LeagueSettings mirrors Sleeper's flat settings object. Values Yahoo has no
// equivalent for stay at their zero defaults.
type LeagueSettings struct {
	NumTeams         int `json:"num_teams"`
	PlayoffWeekStart int `json:"playoff_week_start"`
	PlayoffTeams     int `json:"playoff_teams"`
	PlayoffRoundType int `json:"playoff_round_type"`
	PlayoffSeedType  int `json:"playoff_seed_type"`
	PlayoffType      int `json:"playoff_type"`

	DailyWaivers        int   `json:"daily_waivers"`
	DailyWaiversDays    int   `json:"daily_waivers_days"`
	DailyWaiversHour    int   `json:"daily_waivers_hour"`
	DailyWaiversLastRan int64 `json:"daily_waivers_last_ran"`

	Leg           int `json:"leg"`
	MaxKeepers    int `json:"max_keepers"`
	OffseasonAdds int `json:"offseason_adds"`
	PickTrading   int `json:"pick_trading"`

	ReserveAllowCov      int `json:"reserve_allow_cov"`
	ReserveAllowDnr      int `json:"reserve_allow_dnr"`
	ReserveAllowDoubtful int `json:"reserve_allow_doubtful"`
	ReserveAllowNa       int `json:"reserve_allow_na"`
	ReserveAllowOut      int `json:"reserve_allow_out"`
	ReserveAllowSus      int `json:"reserve_allow_sus"`
	ReserveSlots         int `json:"reserve_slots"`

	TaxiAllowVets int `json:"taxi_allow_vets"`
	TaxiDeadline  int `json:"taxi_deadline"`
	TaxiSlots     int `json:"taxi_slots"`
	TaxiYears     int `json:"taxi_years"`

	TradeDeadline   int `json:"trade_deadline"`
	TradeReviewDays int `json:"trade_review_days"`

	VetoAutoPoll    int `json:"veto_auto_poll"`
	VetoShowVotes   int `json:"veto_show_votes"`
	VetoVotesNeeded int `json:"veto_votes_needed"`

	WaiverBidMin    *int `json:"waiver_bid_min"`
	WaiverBudget    int  `json:"waiver_budget"`
	WaiverClearDays int  `json:"waiver_clear_days"`
	WaiverDayOfWeek int  `json:"waiver_day_of_week"`
	WaiverType      int  `json:"waiver_type"`
}
