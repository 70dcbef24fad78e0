package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/GRD-Daddi/league-page/internal/usecase"
)

func NewRouter(
	handler *Handler,
	authService *usecase.AuthService,
	logger *slog.Logger,
	corsAllowedOrigins []string,
	secureCookies bool,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerAuthRoutes(mux, handler)
	registerLeagueRoutes(mux, handler)

	chain := SessionMiddleware(authService, logger, secureCookies, recoverPanic(logger, mux))
	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, chain)))
}

func recoverPanic(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
