package canonical

// Player is the canonical player catalog record. Most identity crosswalk
// fields have no source in Yahoo data and stay null.
type Player struct {
	PlayerID string `json:"player_id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`

	Position string  `json:"position"`
	Team     *string `json:"team"`

	Status       string  `json:"status"`
	InjuryStatus *string `json:"injury_status"`

	Number *int `json:"number"`

	Age    *int    `json:"age"`
	Height *string `json:"height"`
	Weight *string `json:"weight"`

	College *string `json:"college"`

	YearsExp *int `json:"years_exp"`

	FantasyPositions []string `json:"fantasy_positions"`

	Metadata map[string]any `json:"metadata"`

	Sport  string `json:"sport"`
	Active bool   `json:"active"`

	SearchRank         int     `json:"search_rank"`
	DepthChartOrder    *int    `json:"depth_chart_order"`
	DepthChartPosition *string `json:"depth_chart_position"`

	SwishID       *int    `json:"swish_id"`
	EspnID        *int    `json:"espn_id"`
	YahooID       *int    `json:"yahoo_id"`
	RotowireID    *int    `json:"rotowire_id"`
	StatsID       *int    `json:"stats_id"`
	SportradarID  *string `json:"sportradar_id"`
	FantasyDataID *int    `json:"fantasy_data_id"`
	RotoworldID   *int    `json:"rotoworld_id"`
	GsisID        *string `json:"gsis_id"`

	InjuryStartDate *string `json:"injury_start_date"`
	InjuryBodyPart  *string `json:"injury_body_part"`
	InjuryNotes     *string `json:"injury_notes"`

	BirthDate    *string `json:"birth_date"`
	BirthCity    *string `json:"birth_city"`
	BirthState   *string `json:"birth_state"`
	BirthCountry *string `json:"birth_country"`

	HighSchool *string `json:"high_school"`

	PandascoreEsportsID *int `json:"pandascore_esports_id"`
}

// PlayerStats maps canonical stat keys to values for one player.
type PlayerStats map[string]float64
