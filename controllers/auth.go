package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go-storefront/middleware"
	"go-storefront/session"
	"go-storefront/utils"
)

var (
	// ErrInvalidCredentials is returned for any wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotReady means no admin password hash is configured
	ErrNotReady = errors.New("authentication not configured")
)

// AuthController handles the admin console login and logout
type AuthController struct {
	PasswordHash string
	Sessions     session.Store
	Logger       *utils.Logger
	Metrics      *middleware.Metrics
}

// NewAuthController creates a new AuthController
func NewAuthController(passwordHash string, sessions session.Store, logger *utils.Logger, metrics *middleware.Metrics) *AuthController {
	return &AuthController{
		PasswordHash: passwordHash,
		Sessions:     sessions,
		Logger:       logger.WithComponent("auth"),
		Metrics:      metrics,
	}
}

// Authenticate checks password against the configured hash and issues a token
func (ac *AuthController) Authenticate(ctx context.Context, password string) (string, error) {
	if ac.PasswordHash == "" {
		return "", ErrNotReady
	}
	if password == "" || !utils.CheckPassword(ac.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	return ac.Sessions.Create(ctx)
}

// Login exchanges the admin password for a session token
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	token, err := ac.Authenticate(r.Context(), creds.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		ac.Metrics.ObserveLogin("invalid")
		ac.Logger.LogSecurityEvent("login_failed", r.RemoteAddr, nil)
		utils.WriteError(w, http.StatusUnauthorized, "Invalid password")
		return
	case errors.Is(err, ErrNotReady):
		ac.Metrics.ObserveLogin("error")
		ac.Logger.Errorw("Login attempted without ADMIN_PASSWORD_HASH configured")
		utils.WriteError(w, http.StatusInternalServerError, "Authentication not configured")
		return
	case err != nil:
		ac.Metrics.ObserveLogin("error")
		ac.Logger.Errorw("Error creating session", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error creating session")
		return
	}

	ac.Metrics.ObserveLogin("success")
	ac.Logger.Infow("Console login", "ip", r.RemoteAddr)
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}

// Logout revokes the presented token. It succeeds whether or not the token
// was live.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if token := utils.BearerToken(r.Header.Get("Authorization")); token != "" {
		if err := ac.Sessions.Revoke(r.Context(), token); err != nil {
			ac.Logger.Warnw("Error revoking session", "error", err)
		}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
