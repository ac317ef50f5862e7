package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api/middleware"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api/request"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api/response"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/model"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/services/memories"
)

// MemoriesHandler handles shared note and special date endpoints
type MemoriesHandler struct {
	memoriesService *memories.Service
}

// NewMemoriesHandler creates a new memories handler
func NewMemoriesHandler(memoriesService *memories.Service) *MemoriesHandler {
	return &MemoriesHandler{
		memoriesService: memoriesService,
	}
}

// CreateNote handles POST /api/v1/memories/notes
func (h *MemoriesHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	note, err := h.memoriesService.CreateNote(r.Context(), player.ID, req.Title, req.Body)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.NoteFromModel(note))
}

// ListNotes handles GET /api/v1/memories/notes
func (h *MemoriesHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	notes, err := h.memoriesService.ListNotes(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NotesFromModel(notes))
}

// DeleteNote handles DELETE /api/v1/memories/notes/{note_id}
func (h *MemoriesHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	noteID := model.NoteID(mux.Vars(r)["note_id"])

	if err := h.memoriesService.DeleteNote(r.Context(), player.ID, noteID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// CreateDate handles POST /api/v1/memories/dates
func (h *MemoriesHandler) CreateDate(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateSpecialDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Date.IsZero() {
		WriteError(w, NewInvalidRequestError("date is required"))
		return
	}

	date, err := h.memoriesService.CreateSpecialDate(r.Context(), player.ID, req.Label, req.Date)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SpecialDateFromModel(date))
}

// ListDates handles GET /api/v1/memories/dates
func (h *MemoriesHandler) ListDates(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	dates, err := h.memoriesService.ListSpecialDates(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SpecialDatesFromModel(dates))
}

// DeleteDate handles DELETE /api/v1/memories/dates/{date_id}
func (h *MemoriesHandler) DeleteDate(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	dateID := model.SpecialDateID(mux.Vars(r)["date_id"])

	if err := h.memoriesService.DeleteSpecialDate(r.Context(), player.ID, dateID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
