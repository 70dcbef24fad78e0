package httpapi

import (
	"context"

	"github.com/GRD-Daddi/league-page/external/yahoo"
	"github.com/GRD-Daddi/league-page/internal/session"
)

type contextKey string

const (
	sessionContextKey      contextKey = "httpapi.session"
	authedClientContextKey contextKey = "httpapi.authedClient"
)

func withSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// sessionFromContext returns the session attached by SessionMiddleware,
// or nil for anonymous requests.
func sessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionContextKey).(*session.Session)
	return sess
}

func withAuthedClient(ctx context.Context, client *yahoo.AuthedClient) context.Context {
	return context.WithValue(ctx, authedClientContextKey, client)
}

func authedClientFromContext(ctx context.Context) *yahoo.AuthedClient {
	client, _ := ctx.Value(authedClientContextKey).(*yahoo.AuthedClient)
	return client
}
