package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mindhaven/mindhaven-api/internal/request"
	"github.com/mindhaven/mindhaven-api/internal/services/oidc"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	oidcProvider *oidc.Provider
	oauthClient  *oidc.Client
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(oidcProvider *oidc.Provider, oauthClient *oidc.Client) *AuthHandler {
	return &AuthHandler{
		oidcProvider: oidcProvider,
		oauthClient:  oauthClient,
	}
}

// OIDCLoginResponse is the login configuration plus a ready-to-use
// authorization URL carrying a fresh state value.
type OIDCLoginResponse struct {
	*oidc.LoginConfig
	State            string `json:"state"`
	AuthorizationURL string `json:"authorization_url"`
}

// GetOIDCLogin returns OIDC configuration for frontend
func (h *AuthHandler) GetOIDCLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	loginConfig, err := h.oidcProvider.GetLoginConfig(ctx)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Failed to get OIDC configuration", err.Error())
		return
	}

	state := uuid.NewString()
	respondJSON(w, http.StatusOK, OIDCLoginResponse{
		LoginConfig:      loginConfig,
		State:            state,
		AuthorizationURL: h.oauthClient.AuthCodeURL(state),
	})
}

// GetMe returns current user information
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
