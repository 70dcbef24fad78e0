package canonical

// Transaction is a canonical roster move. Adds and drops map player id to the
// roster id gaining or losing the player.
type Transaction struct {
	TransactionID string `json:"transaction_id"`
	Type          string `json:"type"`
	Status        string `json:"status"`

	Adds  map[string]int `json:"adds"`
	Drops map[string]int `json:"drops"`

	DraftPicks   []TradedPick       `json:"draft_picks"`
	WaiverBudget []WaiverBudgetMove `json:"waiver_budget"`

	Settings TransactionSettings `json:"settings"`

	Creator      *string  `json:"creator"`
	ConsenterIDs []string `json:"consenter_ids"`

	Created       int64 `json:"created"`
	StatusUpdated int64 `json:"status_updated"`

	Metadata map[string]any `json:"metadata"`

	Leg       int   `json:"leg"`
	RosterIDs []int `json:"roster_ids"`
}

type TransactionSettings struct {
	WaiverBid int `json:"waiver_bid"`
	Seq       int `json:"seq"`
}

// WaiverBudgetMove transfers FAAB between two rosters inside a trade.
type WaiverBudgetMove struct {
	Sender   int `json:"sender"`
	Receiver int `json:"receiver"`
	Amount   int `json:"amount"`
}

// TradedPick is a future draft pick that changed hands.
type TradedPick struct {
	Season          string `json:"season"`
	Round           int    `json:"round"`
	RosterID        int    `json:"roster_id"`
	PreviousOwnerID int    `json:"previous_owner_id"`
	OwnerID         int    `json:"owner_id"`
}
