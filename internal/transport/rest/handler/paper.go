package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"paperdeck/internal/model"
	"paperdeck/internal/service"
	"paperdeck/internal/transport/rest/middleware"
)

// PaperHandler handles paper endpoints
type PaperHandler struct {
	paperSvc *service.PaperService
}

// NewPaperHandler creates a new paper handler
func NewPaperHandler(paperSvc *service.PaperService) *PaperHandler {
	return &PaperHandler{paperSvc: paperSvc}
}

// CreatePaperRequest is the request body for creating or updating a paper
type CreatePaperRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Settings    model.PaperSettings `json:"settings"`
}

// Create handles POST /v1/papers
func (h *PaperHandler) Create(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	if authorID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreatePaperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	paper := &model.Paper{
		AuthorID:    authorID,
		Title:       req.Title,
		Description: req.Description,
		Settings:    req.Settings,
	}

	id, err := h.paperSvc.Create(r.Context(), paper)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"paperId": id})
}

// List handles GET /v1/papers
func (h *PaperHandler) List(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	if authorID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	papers, err := h.paperSvc.List(r.Context(), authorID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"papers": papers})
}

// Get handles GET /v1/papers/{paperId}
func (h *PaperHandler) Get(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	paperID := mux.Vars(r)["paperId"]

	paper, err := h.paperSvc.Get(r.Context(), authorID, paperID)
	if err != nil {
		writePaperError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, paper)
}

// Update handles PUT /v1/papers/{paperId}
func (h *PaperHandler) Update(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	paperID := mux.Vars(r)["paperId"]

	var req CreatePaperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	paper := &model.Paper{
		ID:          paperID,
		AuthorID:    authorID,
		Title:       req.Title,
		Description: req.Description,
		Settings:    req.Settings,
	}

	if err := h.paperSvc.Update(r.Context(), authorID, paper); err != nil {
		writePaperError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, paper)
}

// Delete handles DELETE /v1/papers/{paperId}
func (h *PaperHandler) Delete(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	paperID := mux.Vars(r)["paperId"]

	if err := h.paperSvc.Delete(r.Context(), authorID, paperID); err != nil {
		writePaperError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writePaperError maps service errors to HTTP statuses
func writePaperError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPaperNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotPaperOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrQuestionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
