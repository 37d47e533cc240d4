package auth

import (
	"log"
	"net/http"

	"mandalart/internal/config"
	"mandalart/internal/errors"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName is the bearer cookie holding the session id
	SessionCookieName = "session_id"
	stateCookieName   = "oauth_state"
)

// Handler handles HTTP requests for authentication
type Handler struct {
	service Service
}

// NewHandler creates a new auth handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Login starts the Google OAuth flow
func (h *Handler) Login(c *gin.Context) {
	origin := requestOrigin(c)

	authURL, state, err := h.service.AuthorizationURL(origin)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	// state cookie guards the callback against forged logins
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, state, int(stateTTL.Seconds()), "/", "", secureCookies(), true)

	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// Callback completes the OAuth flow and issues the session cookie
func (h *Handler) Callback(c *gin.Context) {
	code := c.Query("code")
	if c.Query("error") != "" || code == "" {
		h.redirectWithAuthError(c)
		return
	}

	state := c.Query("state")
	stateCookie, err := c.Cookie(stateCookieName)
	if err != nil || stateCookie != state || VerifyState(config.AppConfig.SessionSecret, state) != nil {
		log.Printf("oauth state mismatch for callback")
		h.redirectWithAuthError(c)
		return
	}

	// Drop the state cookie, it is single-use
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, "", -1, "/", "", secureCookies(), true)

	_, sessionID, err := h.service.ExchangeCodeForSession(c.Request.Context(), code, requestOrigin(c))
	if err != nil {
		log.Printf("oauth exchange failed: %v", err)
		h.redirectWithAuthError(c)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, sessionID, int(SessionTTL.Seconds()), "/", "", secureCookies(), true)

	c.Redirect(http.StatusTemporaryRedirect, config.AppConfig.FrontendAddress)
}

// Logout ends the current session; always succeeds
func (h *Handler) Logout(c *gin.Context) {
	sessionID, _ := c.Cookie(SessionCookieName)

	if err := h.service.EndSession(sessionID); err != nil {
		// The cookie is cleared regardless
		log.Printf("failed to delete session: %v", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secureCookies(), true)

	c.Status(http.StatusNoContent)
}

// Me returns the current user, or null when there is no valid session
func (h *Handler) Me(c *gin.Context) {
	sessionID, _ := c.Cookie(SessionCookieName)

	u, err := h.service.CurrentUser(sessionID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	if u == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u.ToSafeUser()})
}

func (h *Handler) redirectWithAuthError(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, config.AppConfig.FrontendAddress+"/?error=auth_failed")
}

// requestOrigin reconstructs the external origin of the request
func requestOrigin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func secureCookies() bool {
	return config.AppConfig.Environment == "production"
}
