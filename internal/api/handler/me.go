package handler

import (
	"encoding/json"
	"net/http"

	"github.com/libroquest/gamebook-server/internal/api/middleware"
	"github.com/libroquest/gamebook-server/internal/api/request"
	"github.com/libroquest/gamebook-server/internal/api/response"
	"github.com/libroquest/gamebook-server/internal/services/profile"
	"github.com/libroquest/gamebook-server/internal/services/progression"
	"github.com/libroquest/gamebook-server/internal/services/view"
)

// MeHandler handles endpoints scoped to the authenticated player
type MeHandler struct {
	assembler   *view.Assembler
	progression *progression.Service
	profile     *profile.Service
}

// NewMeHandler creates a new me handler
func NewMeHandler(assembler *view.Assembler, prog *progression.Service, prof *profile.Service) *MeHandler {
	return &MeHandler{
		assembler:   assembler,
		progression: prog,
		profile:     prof,
	}
}

// GetMe handles GET /api/v1/me
func (h *MeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	playerView, err := h.assembler.Assemble(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromView(playerView))
}

// CompleteLevel handles POST /api/v1/me/complete-level
func (h *MeHandler) CompleteLevel(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CompleteLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	playerView, err := h.progression.CompleteLevel(r.Context(), player.ID, req.CoinsEarned, req.TimeSpentSeconds)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromView(playerView))
}

// UpdateMe handles PUT /api/v1/me
func (h *MeHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.UpdateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	playerView, err := h.profile.Update(r.Context(), player.ID, profile.Patch{
		Name:   req.Name,
		School: req.School,
		Gender: req.Gender,
		Money:  req.Money,
		Level:  req.Level,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromView(playerView))
}
