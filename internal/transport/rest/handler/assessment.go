package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"govmaturity/internal/engine"
	"govmaturity/internal/model"
	"govmaturity/internal/service"
	"govmaturity/internal/transport/rest/middleware"
)

// AssessmentHandler handles respondent-facing assessment endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// Start handles POST /v1/assessments
func (h *AssessmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuestionnaireID string `json:"questionnaireId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionnaireID == "" {
		writeError(w, http.StatusBadRequest, "questionnaireId is required")
		return
	}

	resp, err := h.assessmentSvc.Start(r.Context(), req.QuestionnaireID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// CurrentQuestion handles GET /v1/assessments/current/question
func (h *AssessmentHandler) CurrentQuestion(w http.ResponseWriter, r *http.Request) {
	assessmentID := middleware.GetAssessmentID(r.Context())

	question, err := h.assessmentSvc.CurrentQuestion(r.Context(), assessmentID)
	if err != nil {
		h.writeAssessmentError(w, err)
		return
	}
	if question == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// SubmitAnswer handles POST /v1/assessments/current/answers
func (h *AssessmentHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	assessmentID := middleware.GetAssessmentID(r.Context())

	var req struct {
		QuestionID string            `json:"questionId"`
		Value      model.AnswerValue `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.assessmentSvc.SubmitAnswer(r.Context(), assessmentID, req.QuestionID, req.Value); err != nil {
		h.writeAssessmentError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// Advance handles POST /v1/assessments/current/advance
func (h *AssessmentHandler) Advance(w http.ResponseWriter, r *http.Request) {
	assessmentID := middleware.GetAssessmentID(r.Context())

	question, report, err := h.assessmentSvc.Advance(r.Context(), assessmentID)
	if err != nil {
		h.writeAssessmentError(w, err)
		return
	}

	if report != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "completed",
			"report": report,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "in_progress",
		"question": question,
	})
}

// Retreat handles POST /v1/assessments/current/retreat
func (h *AssessmentHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	assessmentID := middleware.GetAssessmentID(r.Context())

	question, err := h.assessmentSvc.Retreat(r.Context(), assessmentID)
	if err != nil {
		h.writeAssessmentError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// writeAssessmentError maps the engine's error taxonomy onto HTTP statuses:
// validation errors carry their field/constraint detail, invariant violations
// are conflicts, a missing session is 404.
func (h *AssessmentHandler) writeAssessmentError(w http.ResponseWriter, err error) {
	if verr, ok := engine.AsValidationError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":      "validation failed",
			"validation": verr,
		})
		return
	}
	switch {
	case errors.Is(err, service.ErrAssessmentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrNotInProgress),
		errors.Is(err, engine.ErrAlreadyInProgress),
		errors.Is(err, engine.ErrUnknownQuestion):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
