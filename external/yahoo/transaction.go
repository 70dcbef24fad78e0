package yahoo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/GRD-Daddi/league-page/internal/domain/canonical"
)

// FetchTransactions normalizes the league transaction log. Yahoo has no
// week-scoped endpoint, so the week filter is applied after the fetch; week 0
// returns everything.
func FetchTransactions(ctx context.Context, client *AuthedClient, leagueKey string, week int) ([]canonical.Transaction, error) {
	fc, err := client.Transactions(ctx, leagueKey)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	return transactionsFromYahoo(fc, week), nil
}

func transactionsFromYahoo(fc map[string]any, filterWeek int) []canonical.Transaction {
	out := []canonical.Transaction{}

	league, ok := fieldMap(fc, "league")
	if !ok {
		return out
	}

	for _, item := range fieldList(league, "transactions") {
		wrapper, ok := asMap(item)
		if !ok {
			continue
		}
		value, found := wrapper["transaction"]
		if !found {
			value = wrapper
		}
		trans, ok := probe(value)
		if !ok {
			continue
		}

		if filterWeek > 0 && intField(trans, "week") != filterWeek {
			continue
		}

		out = append(out, transactionFromYahoo(trans))
	}

	return out
}

func transactionFromYahoo(trans map[string]any) canonical.Transaction {
	yahooType := strField(trans, "type")

	status := strField(trans, "status")
	if status == "" {
		status = "complete"
	}
	if status == "successful" {
		status = "complete"
	}

	timestamp := int64(floatField(trans, "timestamp")) * 1000
	if timestamp == 0 {
		timestamp = time.Now().UnixMilli()
	}

	adds := map[string]int{}
	drops := map[string]int{}
	addOrder := []int{}
	dropOrder := []int{}

	for _, item := range fieldList(trans, "players") {
		wrapper, ok := asMap(item)
		if !ok {
			continue
		}
		value, found := wrapper["player"]
		if !found {
			value = wrapper
		}
		player, ok := probe(value)
		if !ok {
			continue
		}

		id := playerID(player)
		if id == "" {
			continue
		}
		data, ok := probe(player["transaction_data"])
		if !ok {
			continue
		}

		if strField(data, "destination_type") == "team" {
			if rosterID, ok := teamIDFromKey(strField(data, "destination_team_key")); ok {
				adds[id] = rosterID
				addOrder = append(addOrder, rosterID)
			}
		}
		if strField(data, "source_type") == "team" {
			if rosterID, ok := teamIDFromKey(strField(data, "source_team_key")); ok {
				drops[id] = rosterID
				dropOrder = append(dropOrder, rosterID)
			}
		}
	}

	faabBid := intField(trans, "faab_bid")

	sleeperType := "free_agent"
	switch yahooType {
	case "trade":
		sleeperType = "trade"
	case "add", "add/drop":
		// A $0 bid is still a waiver claim; only an absent bid means a
		// free-agent pickup.
		if strField(trans, "faab_bid") != "" {
			sleeperType = "waiver"
		}
	}

	var creator *string
	var creatorRosterID int
	if rosterID, ok := teamIDFromKey(strField(trans, "trader_team_key")); ok {
		creatorRosterID = rosterID
		v := strconv.Itoa(rosterID)
		creator = &v
	}

	consenterRosterIDs := []int{}
	if creatorRosterID > 0 {
		consenterRosterIDs = append(consenterRosterIDs, creatorRosterID)
	}
	if sleeperType == "trade" {
		for _, rosterID := range addOrder {
			consenterRosterIDs = appendUniqueInt(consenterRosterIDs, rosterID)
		}
		for _, rosterID := range dropOrder {
			consenterRosterIDs = appendUniqueInt(consenterRosterIDs, rosterID)
		}
	}
	consenterIDs := make([]string, len(consenterRosterIDs))
	for i, rosterID := range consenterRosterIDs {
		consenterIDs[i] = strconv.Itoa(rosterID)
	}

	rosterIDs := []int{}
	for _, rosterID := range addOrder {
		rosterIDs = appendUniqueInt(rosterIDs, rosterID)
	}
	for _, rosterID := range dropOrder {
		rosterIDs = appendUniqueInt(rosterIDs, rosterID)
	}

	transactionID := strField(trans, "transaction_key")
	if transactionID == "" {
		transactionID = strField(trans, "transaction_id")
	}
	if transactionID == "" {
		transactionID = fmt.Sprintf("yahoo_%d", timestamp)
	}

	var notes any
	if v := strField(trans, "note"); v != "" {
		notes = v
	}

	return canonical.Transaction{
		TransactionID: transactionID,
		Type:          sleeperType,
		Status:        status,

		Adds:  adds,
		Drops: drops,

		DraftPicks:   []canonical.TradedPick{},
		WaiverBudget: []canonical.WaiverBudgetMove{},

		Settings: canonical.TransactionSettings{
			WaiverBid: faabBid,
		},

		Creator:      creator,
		ConsenterIDs: consenterIDs,

		Created:       timestamp,
		StatusUpdated: timestamp,

		Metadata: map[string]any{
			"yahoo_transaction_key": strField(trans, "transaction_key"),
			"yahoo_type":            yahooType,
			"notes":                 notes,
			"timestamp":             strField(trans, "timestamp"),
		},

		Leg:       1,
		RosterIDs: rosterIDs,
	}
}

func appendUniqueInt(values []int, value int) []int {
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}
