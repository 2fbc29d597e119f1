package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"govmaturity/internal/service"
)

// ReportHandler handles report and audit endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Get handles GET /v1/reports/{assessmentId}
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	assessmentID := mux.Vars(r)["assessmentId"]

	report, err := h.reportSvc.GetReport(r.Context(), assessmentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// GetTrace handles GET /v1/reports/{assessmentId}/trace
func (h *ReportHandler) GetTrace(w http.ResponseWriter, r *http.Request) {
	assessmentID := mux.Vars(r)["assessmentId"]

	record, err := h.reportSvc.GetTrace(r.Context(), assessmentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "audit record not found")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// RuleStats handles GET /v1/questionnaires/{questionnaireId}/rules/stats
func (h *ReportHandler) RuleStats(w http.ResponseWriter, r *http.Request) {
	questionnaireID := mux.Vars(r)["questionnaireId"]

	stats, err := h.reportSvc.RuleStats(r.Context(), questionnaireID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": stats})
}
