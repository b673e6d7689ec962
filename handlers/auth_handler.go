package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"antrian-fm/models"
	"antrian-fm/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// adminSessionKey is where RequireAdmin stores the validated session on the
// request event.
const adminSessionKey = "adminSession"

type AuthHandler struct {
	app         *pocketbase.PocketBase
	authService *services.AuthService
}

func NewAuthHandler(app *pocketbase.PocketBase, authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		app:         app,
		authService: authService,
	}
}

// Login - Admin login endpoint
func (h *AuthHandler) Login(e *core.RequestEvent) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		return apis.NewBadRequestError("Username and password are required", nil)
	}

	session, token, err := h.authService.Login(e.Request.Context(), req.Username, req.Password)
	if err != nil {
		slog.Info("admin login rejected", "username", req.Username)
		return mapError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"token":   token,
		"session": session,
	})
}

// Logout - Revoke the current admin session
func (h *AuthHandler) Logout(e *core.RequestEvent) error {
	if err := h.authService.Logout(e.Request.Context(), bearerToken(e)); err != nil {
		return mapError(err)
	}
	return e.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me - Return the current admin session
func (h *AuthHandler) Me(e *core.RequestEvent) error {
	session, ok := e.Get(adminSessionKey).(models.AdminSession)
	if !ok {
		return apis.NewUnauthorizedError("Admin access required", nil)
	}
	return e.JSON(http.StatusOK, session)
}

// RequireAdmin validates the bearer token and live session before any
// privileged route runs.
func (h *AuthHandler) RequireAdmin(e *core.RequestEvent) error {
	token := bearerToken(e)
	if token == "" {
		return apis.NewUnauthorizedError("Admin access required", nil)
	}

	session, err := h.authService.Validate(e.Request.Context(), token)
	if err != nil {
		return mapError(err)
	}

	e.Set(adminSessionKey, session)
	return e.Next()
}

func bearerToken(e *core.RequestEvent) string {
	header := e.Request.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}
