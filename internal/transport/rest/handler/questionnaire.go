package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"govmaturity/internal/model"
	"govmaturity/internal/service"
)

// QuestionnaireHandler handles questionnaire configuration endpoints
type QuestionnaireHandler struct {
	configSvc *service.ConfigService
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(configSvc *service.ConfigService) *QuestionnaireHandler {
	return &QuestionnaireHandler{configSvc: configSvc}
}

// Create handles POST /v1/questionnaires
func (h *QuestionnaireHandler) Create(w http.ResponseWriter, r *http.Request) {
	var q model.Questionnaire
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.configSvc.CreateQuestionnaire(r.Context(), &q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"questionnaireId": id})
}

// Update handles PUT /v1/questionnaires/{questionnaireId}
func (h *QuestionnaireHandler) Update(w http.ResponseWriter, r *http.Request) {
	var q model.Questionnaire
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	q.ID = mux.Vars(r)["questionnaireId"]

	if err := h.configSvc.UpdateQuestionnaire(r.Context(), &q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// Get handles GET /v1/questionnaires/{questionnaireId}
func (h *QuestionnaireHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["questionnaireId"]

	q, err := h.configSvc.GetQuestionnaire(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if q == nil {
		writeError(w, http.StatusNotFound, "questionnaire not found")
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// List handles GET /v1/questionnaires
func (h *QuestionnaireHandler) List(w http.ResponseWriter, r *http.Request) {
	questionnaires, err := h.configSvc.ListQuestionnaires(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questionnaires": questionnaires})
}

// Delete handles DELETE /v1/questionnaires/{questionnaireId}
func (h *QuestionnaireHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["questionnaireId"]

	if err := h.configSvc.DeleteQuestionnaire(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
