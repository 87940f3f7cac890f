package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"financialamigo/src/clients/google"
	"financialamigo/src/schemas"

	"github.com/google/uuid"
)

const (
	oauthSessionName = "financialamigo_oauth"
	oauthStateKey    = "state"
)

// GoogleLogin stores a random state in the session cookie and redirects to the
// Google consent screen.
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Sessions.Get(r, oauthSessionName)
	state := uuid.NewString()
	session.Values[oauthStateKey] = state
	if err := session.Save(r, w); err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	http.Redirect(w, r, h.Controller.GoogleLoginURL(state), http.StatusFound)
}

// GoogleCallback accepts both the query (GET) and form_post (POST) response
// modes and always answers with a redirect to the frontend.
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	tokens, err := h.completeGoogleLogin(ctx, w, r)
	if err != nil {
		code := "auth_failed"
		if errors.Is(err, google.ErrClockSkew) {
			code = "clock_sync"
		}
		h.Logger.WithError(err).Warn("google login failed")
		http.Redirect(w, r, h.Config.Service.FrontendURL+"/login?error="+code, http.StatusFound)
		return
	}

	fragment := url.Values{}
	fragment.Set("access_token", tokens.AccessToken)
	fragment.Set("refresh_token", tokens.RefreshToken)
	fragment.Set("token_type", tokens.TokenType)
	http.Redirect(w, r, h.Config.Service.FrontendURL+"/auth/callback#"+fragment.Encode(), http.StatusFound)
}

func (h *Handler) completeGoogleLogin(ctx context.Context, w http.ResponseWriter, r *http.Request) (*schemas.TokenResponse, error) {
	if providerErr := r.FormValue("error"); providerErr != "" {
		return nil, errors.New("google returned " + providerErr)
	}

	session, err := h.Sessions.Get(r, oauthSessionName)
	if err != nil {
		return nil, err
	}
	expected, _ := session.Values[oauthStateKey].(string)
	delete(session.Values, oauthStateKey)
	if err := session.Save(r, w); err != nil {
		h.Logger.WithError(err).Warn("failed to clear oauth state")
	}
	if expected == "" || expected != r.FormValue("state") {
		return nil, errors.New("oauth state mismatch")
	}

	code := r.FormValue("code")
	if code == "" {
		return nil, errors.New("missing authorization code")
	}
	return h.Controller.GoogleCallback(ctx, code)
}

func (h *Handler) SyncGoogleUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	var req schemas.SyncGoogleUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	response, err := h.Controller.SyncGoogleUser(ctx, req.IDToken)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, response, http.StatusOK)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	var req schemas.RefreshTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	tokens, err := h.Controller.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	h.respond(w, r, tokens, http.StatusOK)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, schemas.NewUserResponse(currentUser(r)), http.StatusOK)
}
