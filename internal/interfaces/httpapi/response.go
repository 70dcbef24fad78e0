package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/GRD-Daddi/league-page/external/sleeper"
	"github.com/GRD-Daddi/league-page/external/yahoo"
	"github.com/GRD-Daddi/league-page/internal/usecase"
)

type errorBody struct {
	Message string `json:"message"`
}

// writeJSON encodes payload straight onto the wire. Canonical records go
// out verbatim, without a response envelope.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(payload); err != nil {
		slog.ErrorContext(ctx, "httpapi: encode response", "error", err)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status, message := errorStatus(err)
	writeJSON(ctx, w, status, errorBody{Message: message})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, errorBody{Message: "internal server error"})
}

// errorStatus maps service errors onto HTTP statuses. Upstream platform
// failures surface as 502 so callers can tell them apart from our own 5xx.
func errorStatus(err error) (int, string) {
	var yahooErr *yahoo.HTTPError
	var sleeperErr *sleeper.HTTPError
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	case errors.As(err, &yahooErr), errors.As(err, &sleeperErr):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
