package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/adudhe01/runroom/internal/auth"
	"github.com/adudhe01/runroom/internal/domain"
	"github.com/adudhe01/runroom/internal/logger"
	"github.com/adudhe01/runroom/internal/repository"
	"github.com/adudhe01/runroom/internal/strava"
)

// StravaHandler serves the OAuth handshake and the activity sync.
type StravaHandler struct {
	users       repository.User
	client      strava.Client
	sync        strava.SyncService
	tokens      *auth.TokenManager
	frontendURL string
}

func NewStravaHandler(users repository.User, client strava.Client, syncService strava.SyncService, tokens *auth.TokenManager, frontendURL string) *StravaHandler {
	return &StravaHandler{
		users:       users,
		client:      client,
		sync:        syncService,
		tokens:      tokens,
		frontendURL: frontendURL,
	}
}

// redirectWithStatus sends the browser back to the front end profile page
// with the handshake outcome in the query string.
func (h *StravaHandler) redirectWithStatus(w http.ResponseWriter, r *http.Request, status, reason string) {
	params := url.Values{}
	params.Set("strava", status)
	if reason != "" {
		params.Set("reason", reason)
	}
	http.Redirect(w, r, h.frontendURL+"/profile?"+params.Encode(), http.StatusFound)
}

// HandleConnect redirects the browser to the provider authorize URL. The
// state query value is the caller's session JWT, carried through the OAuth
// round trip so the callback can identify the user.
func (h *StravaHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	http.Redirect(w, r, h.client.AuthorizeURL(state), http.StatusFound)
}

// HandleCallback exchanges the authorization code, resolves the user from
// the state token, persists the credentials, and redirects to the front end.
func (h *StravaHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	query := r.URL.Query()

	code := query.Get("code")
	if code == "" {
		h.redirectWithStatus(w, r, "error", OAuthReasonMissingCode)
		return
	}

	pair, err := h.client.ExchangeCode(r.Context(), code)
	if err != nil {
		log.Error("Strava code exchange failed", "error", err)
		h.redirectWithStatus(w, r, "error", OAuthReasonFailed)
		return
	}

	state := query.Get("state")
	if state == "" {
		h.redirectWithStatus(w, r, "error", OAuthReasonMissingState)
		return
	}
	if decoded, err := url.QueryUnescape(state); err == nil {
		state = decoded
	}

	userID, err := h.tokens.Verify(state)
	if err != nil {
		log.Warn("Invalid state token on Strava callback", "error", err)
		h.redirectWithStatus(w, r, "error", OAuthReasonInvalidToken)
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		h.redirectWithStatus(w, r, "error", OAuthReasonMissingUser)
		return
	}

	user.StravaAccessToken = pair.AccessToken
	user.StravaRefreshToken = pair.RefreshToken
	expiresAt := pair.ExpiresAt
	user.StravaTokenExpiresAt = &expiresAt

	if err := h.users.Update(r.Context(), user); err != nil {
		log.Error("Failed to persist Strava credentials", "error", err)
		h.redirectWithStatus(w, r, "error", OAuthReasonFailed)
		return
	}

	log.Info("Strava connected", "user_id", user.ID)
	h.redirectWithStatus(w, r, "connected", "")
}

// HandleSync runs a full activity sync for the authenticated user.
func (h *StravaHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, ErrMsgMissingAuthToken)
		return
	}

	result, err := h.sync.Sync(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) ||
			errors.Is(err, domain.ErrStravaNotConnected) ||
			errors.Is(err, domain.ErrNoRefreshToken) {
			respondServiceError(w, err)
			return
		}
		logger.FromContext(r.Context()).Error("Strava sync failed", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgStravaSyncFailed)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
