package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/GRD-Daddi/league-page/external/sleeper"
	"github.com/GRD-Daddi/league-page/external/yahoo"
	"github.com/GRD-Daddi/league-page/internal/usecase"
)

func TestWriteJSON_EncodesPayloadVerbatim(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(context.Background(), rec, http.StatusOK, map[string]string{"league_id": "987654321"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}

	var body map[string]string
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["league_id"] != "987654321" {
		t.Fatalf("expected payload without an envelope, got %q", rec.Body.String())
	}
}

func TestErrorStatus_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", fmt.Errorf("%w: week must be a number", usecase.ErrInvalidInput), http.StatusBadRequest},
		{"not found", fmt.Errorf("%w: league has no draft", usecase.ErrNotFound), http.StatusNotFound},
		{"unauthorized", fmt.Errorf("%w: authentication required", usecase.ErrUnauthorized), http.StatusUnauthorized},
		{"dependency unavailable", fmt.Errorf("%w: yahoo credentials missing", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable},
		{"yahoo upstream", fmt.Errorf("fetch league: %w", &yahoo.HTTPError{StatusCode: 500, Body: "boom"}), http.StatusBadGateway},
		{"sleeper upstream", fmt.Errorf("fetch rosters: %w", &sleeper.HTTPError{StatusCode: 404, Body: "missing"}), http.StatusBadGateway},
		{"unknown", fmt.Errorf("nil pointer somewhere"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := errorStatus(tc.err)
			if got != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, got)
			}
		})
	}
}

func TestErrorStatus_HidesInternalDetails(t *testing.T) {
	_, message := errorStatus(fmt.Errorf("dial tcp 10.0.0.5: connection refused"))
	if message != "internal server error" {
		t.Fatalf("expected generic message for internal errors, got %q", message)
	}
}
