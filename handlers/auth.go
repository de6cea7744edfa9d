package handlers

import (
	"net/http"

	"tournament/middleware"
	"tournament/service"
	"tournament/validation"

	"github.com/charmbracelet/log"
)

type AuthHandler struct {
	auth     *service.AuthService
	sessions *middleware.SessionManager
	logger   *log.Logger
}

func NewAuthHandler(auth *service.AuthService, sessions *middleware.SessionManager, logger *log.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		logger:   logger,
	}
}

type loginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

type meResponse struct {
	Username string `json:"username"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req validation.Login
	if !decodeJSON(w, r, &req) {
		return
	}

	admin, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	token, err := h.sessions.Issue(admin)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.sessions.SetCookie(w, token)
	respondJSON(w, http.StatusOK, loginResponse{Message: "Login successful", Username: admin.Username})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	respondJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin, err := h.auth.Me(r.Context(), middleware.SessionFromContext(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, meResponse{Username: admin.Username})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req validation.PasswordChange
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.auth.ChangePassword(r.Context(), session.AdminID, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "Password changed successfully"})
}
