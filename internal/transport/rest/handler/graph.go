package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"paperdeck/internal/model"
	"paperdeck/internal/service"
	"paperdeck/internal/transport/rest/middleware"
)

// GraphHandler exposes the dependency engine: condition validation,
// dependency queries and graph analytics.
type GraphHandler struct {
	conditionSvc *service.ConditionService
	questionSvc  *service.QuestionService
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(conditionSvc *service.ConditionService, questionSvc *service.QuestionService) *GraphHandler {
	return &GraphHandler{
		conditionSvc: conditionSvc,
		questionSvc:  questionSvc,
	}
}

// ConditionRequest carries a candidate condition tree
type ConditionRequest struct {
	Condition *model.Condition `json:"condition"`
}

// ValidateCondition handles POST /v1/papers/{paperId}/questions/{questionId}/condition/validate
// It is a dry run: the verdict is returned and nothing is persisted.
func (h *GraphHandler) ValidateCondition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req ConditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	verdict, err := h.conditionSvc.Validate(r.Context(), vars["paperId"], vars["questionId"], req.Condition)
	if err != nil {
		writePaperError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, verdict)
}

// SetCondition handles PUT /v1/papers/{paperId}/questions/{questionId}/condition
// The condition is persisted only when the verdict is valid; the verdict is
// returned either way.
func (h *GraphHandler) SetCondition(w http.ResponseWriter, r *http.Request) {
	authorID := middleware.GetAuthorID(r.Context())
	vars := mux.Vars(r)

	var req ConditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	verdict, err := h.questionSvc.SetCondition(r.Context(), authorID, vars["paperId"], vars["questionId"], req.Condition)
	if err != nil {
		writePaperError(w, err)
		return
	}

	if !verdict.IsValid {
		writeJSON(w, http.StatusUnprocessableEntity, verdict)
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}

// Dependencies handles GET /v1/papers/{paperId}/questions/{questionId}/dependencies
func (h *GraphHandler) Dependencies(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	info, err := h.conditionSvc.Dependencies(r.Context(), vars["paperId"], vars["questionId"])
	if err != nil {
		writePaperError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// Analytics handles GET /v1/papers/{paperId}/graph
func (h *GraphHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	paperID := mux.Vars(r)["paperId"]

	analytics, err := h.conditionSvc.Analytics(r.Context(), paperID)
	if err != nil {
		writePaperError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics)
}
