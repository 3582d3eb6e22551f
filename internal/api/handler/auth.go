package handler

import (
	"encoding/json"
	"net/http"

	"github.com/libroquest/gamebook-server/internal/api/request"
	"github.com/libroquest/gamebook-server/internal/api/response"
	"github.com/libroquest/gamebook-server/internal/model"
	"github.com/libroquest/gamebook-server/internal/services/auth"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Document == "" {
		WriteError(w, NewInvalidRequestError("document is required"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	school, err := model.ParseSchool(req.School)
	if err != nil {
		WriteError(w, err)
		return
	}
	gender, err := model.ParseGender(req.Gender)
	if err != nil {
		WriteError(w, err)
		return
	}

	playerView, err := h.authService.Register(r.Context(), req.Document, req.Name, school, gender)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromView(playerView))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Document == "" {
		WriteError(w, NewInvalidRequestError("document is required"))
		return
	}

	token, playerView, err := h.authService.Login(r.Context(), req.Document)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponse{
		Token:  token,
		Player: response.PlayerFromView(playerView),
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req request.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Token == "" {
		WriteError(w, NewInvalidRequestError("token is required"))
		return
	}

	deleted, err := h.authService.Logout(r.Context(), req.Token)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LogoutResponse{
		OK:      true,
		Deleted: deleted,
	})
}
