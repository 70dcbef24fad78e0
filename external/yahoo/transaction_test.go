package yahoo

import (
	"testing"
)

const tradeFixture = `{
	"transaction_key": "nfl.l.12345.tr.88",
	"type": "trade",
	"status": "successful",
	"timestamp": "1726000000",
	"trader_team_key": "nfl.l.12345.t.2",
	"tradee_team_key": "nfl.l.12345.t.5",
	"players": {
		"0": {"player": [[{"player_key": "nfl.p.100"}], {"transaction_data": [{"type": "trade", "source_type": "team", "source_team_key": "nfl.l.12345.t.2", "destination_type": "team", "destination_team_key": "nfl.l.12345.t.5"}]}]},
		"1": {"player": [[{"player_key": "nfl.p.200"}], {"transaction_data": [{"type": "trade", "source_type": "team", "source_team_key": "nfl.l.12345.t.5", "destination_type": "team", "destination_team_key": "nfl.l.12345.t.2"}]}]},
		"count": 2
	}
}`

func TestTransactionFromYahoo_Trade(t *testing.T) {
	trans := decodeObject(t, tradeFixture)

	tx := transactionFromYahoo(trans)

	if tx.Type != "trade" {
		t.Fatalf("expected trade type, got %q", tx.Type)
	}
	if tx.Status != "complete" {
		t.Fatalf("expected successful to map to complete, got %q", tx.Status)
	}
	if tx.TransactionID != "nfl.l.12345.tr.88" {
		t.Fatalf("unexpected transaction id %q", tx.TransactionID)
	}
	if tx.Created != 1726000000000 {
		t.Fatalf("expected second timestamp scaled to millis, got %d", tx.Created)
	}

	if got := tx.Adds["nfl.p.100"]; got != 5 {
		t.Fatalf("expected nfl.p.100 added to roster 5, got %d", got)
	}
	if got := tx.Drops["nfl.p.100"]; got != 2 {
		t.Fatalf("expected nfl.p.100 dropped from roster 2, got %d", got)
	}
	if got := tx.Adds["nfl.p.200"]; got != 2 {
		t.Fatalf("expected nfl.p.200 added to roster 2, got %d", got)
	}

	// Creator first, then the other parties in player order.
	if len(tx.ConsenterIDs) != 2 || tx.ConsenterIDs[0] != "2" || tx.ConsenterIDs[1] != "5" {
		t.Fatalf("unexpected consenter ids %v", tx.ConsenterIDs)
	}
	if tx.Creator == nil || *tx.Creator != "2" {
		t.Fatalf("unexpected creator %v", tx.Creator)
	}
	if len(tx.RosterIDs) != 2 {
		t.Fatalf("unexpected roster ids %v", tx.RosterIDs)
	}
}

func TestTransactionFromYahoo_TypePriority(t *testing.T) {
	cases := []struct {
		name      string
		yahooType string
		faabBid   string
		want      string
	}{
		{"add with faab is a waiver claim", "add", "12", "waiver"},
		{"zero faab is still a waiver claim", "add", "0", "waiver"},
		{"add without faab is a free agent move", "add", "", "free_agent"},
		{"add/drop with faab is a waiver claim", "add/drop", "3", "waiver"},
		{"drop is a free agent move", "drop", "", "free_agent"},
		{"trade wins over faab", "trade", "10", "trade"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trans := map[string]any{"type": tc.yahooType}
			if tc.faabBid != "" {
				trans["faab_bid"] = tc.faabBid
			}

			tx := transactionFromYahoo(trans)
			if tx.Type != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, tx.Type)
			}
		})
	}
}

func TestTransactionFromYahoo_Fallbacks(t *testing.T) {
	tx := transactionFromYahoo(map[string]any{"type": "add"})

	if tx.Status != "complete" {
		t.Fatalf("expected default status complete, got %q", tx.Status)
	}
	if tx.Created == 0 {
		t.Fatalf("expected synthesized timestamp")
	}
	if tx.TransactionID == "" {
		t.Fatalf("expected synthesized transaction id")
	}
	if tx.DraftPicks == nil || tx.WaiverBudget == nil {
		t.Fatalf("expected empty non-nil pick and budget slices")
	}
}

func TestTransactionsFromYahoo_WeekFilter(t *testing.T) {
	fc := decodeObject(t, `{
		"league": [
			{"league_key": "nfl.l.12345"},
			{"transactions": {
				"0": {"transaction": {"transaction_key": "t1", "type": "add", "week": "3"}},
				"1": {"transaction": {"transaction_key": "t2", "type": "add", "week": "4"}},
				"count": 2
			}}
		]
	}`)

	all := transactionsFromYahoo(fc, 0)
	if len(all) != 2 {
		t.Fatalf("expected week 0 to return everything, got %d", len(all))
	}

	week3 := transactionsFromYahoo(fc, 3)
	if len(week3) != 1 || week3[0].TransactionID != "t1" {
		t.Fatalf("unexpected week filter result %v", week3)
	}
}
