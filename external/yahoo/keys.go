package yahoo

import (
	"regexp"
	"strconv"
	"strings"
)

var teamKeyRegex = regexp.MustCompile(`\.t\.(\d+)`)

// teamIDFromKey extracts the numeric team id from a Yahoo team key such as
// "nfl.l.12345.t.4". Keys without a team segment report absent; callers drop
// the owning record rather than invent an id.
func teamIDFromKey(key string) (int, bool) {
	match := teamKeyRegex.FindStringSubmatch(key)
	if match == nil {
		return 0, false
	}
	id, err := strconv.Atoi(match[1])
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// leagueIDFromKey extracts the league segment between ".l." and ".t." from a
// team key.
func leagueIDFromKey(key string) (string, bool) {
	_, rest, found := strings.Cut(key, ".l.")
	if !found {
		return "", false
	}
	leagueID, _, _ := strings.Cut(rest, ".t.")
	if leagueID == "" {
		return "", false
	}
	return leagueID, true
}
