package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"govmaturity/internal/model"
	"govmaturity/internal/service"
)

// TemplateHandler handles recommendation template endpoints
type TemplateHandler struct {
	configSvc *service.ConfigService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(configSvc *service.ConfigService) *TemplateHandler {
	return &TemplateHandler{configSvc: configSvc}
}

// Create handles POST /v1/templates
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var tpl model.Template
	if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.configSvc.CreateTemplate(r.Context(), &tpl)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"templateId": id})
}

// Update handles PUT /v1/templates/{templateId}
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var tpl model.Template
	if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tpl.ID = mux.Vars(r)["templateId"]

	if err := h.configSvc.UpdateTemplate(r.Context(), &tpl); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, tpl)
}

// List handles GET /v1/templates
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.configSvc.ListTemplates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": templates})
}

// Delete handles DELETE /v1/templates/{templateId}
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["templateId"]

	if err := h.configSvc.DeleteTemplate(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
