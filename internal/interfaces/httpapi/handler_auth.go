package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/GRD-Daddi/league-page/internal/domain/canonical"
	"github.com/GRD-Daddi/league-page/internal/session"
	"github.com/GRD-Daddi/league-page/internal/usecase"
)

// Login starts the Yahoo OAuth flow. The anti-forgery state is pinned in
// a short-lived cookie and checked again on the callback.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	state, authURL, err := h.authService.BeginLogin()
	if err != nil {
		h.logger.ErrorContext(ctx, "begin login failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	session.SetStateCookie(w, state, h.secureCookies)
	http.Redirect(w, r, authURL, http.StatusFound)
}

func (h *Handler) AuthCallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AuthCallback")
	defer span.End()

	code := strings.TrimSpace(r.URL.Query().Get("code"))
	state := strings.TrimSpace(r.URL.Query().Get("state"))

	// State cookie is single use regardless of outcome.
	session.ClearStateCookie(w, h.secureCookies)

	if code == "" {
		writeError(ctx, w, fmt.Errorf("%w: authorization code not provided", usecase.ErrInvalidInput))
		return
	}

	stateCookie, err := r.Cookie(session.StateCookieName)
	if err != nil || state == "" || stateCookie.Value != state {
		writeError(ctx, w, fmt.Errorf("%w: oauth state mismatch", usecase.ErrInvalidInput))
		return
	}

	sess, err := h.authService.CompleteLogin(ctx, code)
	if err != nil {
		h.logger.ErrorContext(ctx, "complete login failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	session.SetSessionCookie(w, sess.ID, h.secureCookies)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.Logout")
	defer span.End()

	if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		h.authService.Logout(cookie.Value)
	}

	session.ClearSessionCookie(w, h.secureCookies)
	http.Redirect(w, r, "/", http.StatusFound)
}

type sessionInfoResponse struct {
	Authenticated bool                  `json:"authenticated"`
	UserID        string                `json:"userId,omitempty"`
	ManagerInfo   *canonical.LeagueUser `json:"managerInfo,omitempty"`
	CreatedAt     int64                 `json:"createdAt,omitempty"`
}

func (h *Handler) SessionInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SessionInfo")
	defer span.End()

	sess := sessionFromContext(ctx)
	if sess == nil {
		writeJSON(ctx, w, http.StatusUnauthorized, sessionInfoResponse{Authenticated: false})
		return
	}

	writeJSON(ctx, w, http.StatusOK, sessionInfoResponse{
		Authenticated: true,
		UserID:        sess.UserID,
		ManagerInfo:   sess.ManagerInfo,
		CreatedAt:     sess.CreatedAt.UnixMilli(),
	})
}
