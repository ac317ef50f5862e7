package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api/middleware"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api/request"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api/response"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/services/pairing"
)

// PairHandler handles partner-linking endpoints
type PairHandler struct {
	pairingService *pairing.Service
}

// NewPairHandler creates a new pair handler
func NewPairHandler(pairingService *pairing.Service) *PairHandler {
	return &PairHandler{
		pairingService: pairingService,
	}
}

// CreateCode handles POST /api/v1/pairs/code
func (h *PairHandler) CreateCode(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	code, err := h.pairingService.CreateCode(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PairCodeFromModel(code))
}

// Redeem handles POST /api/v1/pairs/redeem
func (h *PairHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.RedeemPairCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	code := model.PairCode(strings.ToUpper(strings.TrimSpace(req.Code)))
	if code == "" {
		WriteError(w, NewInvalidRequestError("code is required"))
		return
	}

	pair, err := h.pairingService.RedeemCode(r.Context(), player.ID, code)
	if err != nil {
		WriteError(w, err)
		return
	}
	partner, err := h.pairingService.GetPartner(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PairFromModel(pair, partner))
}

// GetMe handles GET /api/v1/pairs/me
func (h *PairHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	pair, err := h.pairingService.GetPairFor(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	partner, err := h.pairingService.GetPartner(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PairFromModel(pair, partner))
}

// Unpair handles DELETE /api/v1/pairs/me
func (h *PairHandler) Unpair(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.pairingService.Unpair(r.Context(), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
