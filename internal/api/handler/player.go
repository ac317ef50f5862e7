package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api/middleware"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api/request"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api/response"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/services/auth"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	authService *auth.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(authService *auth.Service) *PlayerHandler {
	return &PlayerHandler{
		authService: authService,
	}
}

// Register handles POST /api/v1/players/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}
	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}
	gender, err := parseGender(req.Gender)
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.authService.Register(r.Context(), req.Username, req.Password, req.DisplayName, gender)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/players/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// UpdateProfile handles PATCH /api/v1/players/me
func (h *PlayerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}
	gender, err := parseGender(req.Gender)
	if err != nil {
		WriteError(w, err)
		return
	}

	updated, err := h.authService.UpdateProfile(r.Context(), player.ID, req.DisplayName, gender)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(updated))
}

func parseGender(raw string) (model.Gender, error) {
	switch model.Gender(raw) {
	case "", model.GenderUnspecified:
		return model.GenderUnspecified, nil
	case model.GenderFemale:
		return model.GenderFemale, nil
	case model.GenderMale:
		return model.GenderMale, nil
	default:
		return "", NewInvalidRequestError("gender must be female, male, or unspecified")
	}
}
