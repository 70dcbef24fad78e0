package yahoo

import (
	"context"
	"fmt"
)

// FetchUserGUID returns the logged-in user's Yahoo GUID.
func FetchUserGUID(ctx context.Context, client *AuthedClient) (string, error) {
	fc, err := client.UserGames(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch user games: %w", err)
	}

	for _, item := range fieldList(fc, "users") {
		wrapper, ok := asMap(item)
		if !ok {
			continue
		}
		value, found := wrapper["user"]
		if !found {
			value = wrapper
		}
		user, ok := probe(value)
		if !ok {
			continue
		}
		if guid := strField(user, "guid"); guid != "" {
			return guid, nil
		}
	}

	return "", fmt.Errorf("user payload missing guid")
}
