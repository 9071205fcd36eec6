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

// QuestionHandler handles question endpoints
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// CreateQuestionRequest is the request body for creating or updating a question
type CreateQuestionRequest struct {
	Title     string             `json:"title"`
	Type      model.QuestionType `json:"type"`
	Options   []string           `json:"options"`
	Position  int                `json:"position"`
	Condition *model.Condition   `json:"condition"`
}

// List handles GET /v1/papers/{paperId}/questions
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	paperID := mux.Vars(r)["paperId"]

	questions, err := h.questionSvc.List(r.Context(), authorID, paperID)
	if err != nil {
		writePaperError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// Create handles POST /v1/papers/{paperId}/questions
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	paperID := mux.Vars(r)["paperId"]

	var req CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	question := &model.Question{
		PaperID:   paperID,
		Title:     req.Title,
		Type:      req.Type,
		Options:   req.Options,
		Position:  req.Position,
		Condition: req.Condition,
	}

	verdict, err := h.questionSvc.Create(r.Context(), authorID, question)
	if errors.Is(err, service.ErrConditionRejected) {
		writeJSON(w, http.StatusUnprocessableEntity, verdict)
		return
	}
	if err != nil {
		writePaperError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, question)
}

// Update handles PUT /v1/papers/{paperId}/questions/{questionId}
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	vars := mux.Vars(r)

	var req CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question := &model.Question{
		ID:        vars["questionId"],
		PaperID:   vars["paperId"],
		Title:     req.Title,
		Type:      req.Type,
		Options:   req.Options,
		Position:  req.Position,
		Condition: req.Condition,
	}

	verdict, err := h.questionSvc.Update(r.Context(), authorID, question)
	if errors.Is(err, service.ErrConditionRejected) {
		writeJSON(w, http.StatusUnprocessableEntity, verdict)
		return
	}
	if err != nil {
		writePaperError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// Delete handles DELETE /v1/papers/{paperId}/questions/{questionId}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	vars := mux.Vars(r)

	if err := h.questionSvc.Delete(r.Context(), authorID, vars["paperId"], vars["questionId"]); err != nil {
		writePaperError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
