package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"govmaturity/internal/model"
	"govmaturity/internal/service"
)

// RuleHandler handles rule configuration and diagnostics endpoints
type RuleHandler struct {
	configSvc     *service.ConfigService
	diagnosticSvc *service.DiagnosticService
}

// NewRuleHandler creates a new rule handler
func NewRuleHandler(configSvc *service.ConfigService, diagnosticSvc *service.DiagnosticService) *RuleHandler {
	return &RuleHandler{
		configSvc:     configSvc,
		diagnosticSvc: diagnosticSvc,
	}
}

// Create handles POST /v1/questionnaires/{questionnaireId}/rules
func (h *RuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rule model.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rule.QuestionnaireID = mux.Vars(r)["questionnaireId"]

	id, err := h.configSvc.CreateRule(r.Context(), &rule)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"ruleId": id})
}

// Update handles PUT /v1/questionnaires/{questionnaireId}/rules/{ruleId}
func (h *RuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var rule model.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	vars := mux.Vars(r)
	rule.ID = vars["ruleId"]
	rule.QuestionnaireID = vars["questionnaireId"]

	if err := h.configSvc.UpdateRule(r.Context(), &rule); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// List handles GET /v1/questionnaires/{questionnaireId}/rules
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	questionnaireID := mux.Vars(r)["questionnaireId"]

	rules, err := h.configSvc.ListRules(r.Context(), questionnaireID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"rules": rules})
}

// SetActive handles POST /v1/questionnaires/{questionnaireId}/rules/{ruleId}/active
func (h *RuleHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	ruleID := mux.Vars(r)["ruleId"]

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.configSvc.SetRuleActive(r.Context(), ruleID, req.Active); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}

// Delete handles DELETE /v1/questionnaires/{questionnaireId}/rules/{ruleId}
func (h *RuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ruleID := mux.Vars(r)["ruleId"]

	if err := h.configSvc.DeleteRule(r.Context(), ruleID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Import handles POST /v1/questionnaires/{questionnaireId}/rules/import
func (h *RuleHandler) Import(w http.ResponseWriter, r *http.Request) {
	questionnaireID := mux.Vars(r)["questionnaireId"]

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	imported, err := h.configSvc.ImportRules(r.Context(), questionnaireID, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": imported})
}

// Export handles GET /v1/questionnaires/{questionnaireId}/rules/export
func (h *RuleHandler) Export(w http.ResponseWriter, r *http.Request) {
	questionnaireID := mux.Vars(r)["questionnaireId"]

	data, err := h.configSvc.ExportRules(r.Context(), questionnaireID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Test handles POST /v1/questionnaires/{questionnaireId}/rules/test
func (h *RuleHandler) Test(w http.ResponseWriter, r *http.Request) {
	questionnaireID := mux.Vars(r)["questionnaireId"]

	var req struct {
		Answers model.AnswerMap `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.diagnosticSvc.TestRules(r.Context(), questionnaireID, req.Answers)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
