package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/GRD-Daddi/league-page/internal/usecase"
)

type Handler struct {
	platformService *usecase.PlatformService
	authService     *usecase.AuthService
	logger          *slog.Logger
	validator       *validator.Validate
	secureCookies   bool
}

func NewHandler(
	platformService *usecase.PlatformService,
	authService *usecase.AuthService,
	logger *slog.Logger,
	secureCookies bool,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		platformService: platformService,
		authService:     authService,
		logger:          logger,
		validator:       validator.New(),
		secureCookies:   secureCookies,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type weekParam struct {
	Week int `validate:"min=1,max=25"`
}

// weekFromPath parses the {week} path segment. Week numbering starts at 1.
func (h *Handler) weekFromPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("week"))
	week, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: week must be a number", usecase.ErrInvalidInput)
	}
	if err := h.validator.Struct(weekParam{Week: week}); err != nil {
		return 0, fmt.Errorf("%w: week %d is out of range", usecase.ErrInvalidInput, week)
	}
	return week, nil
}
