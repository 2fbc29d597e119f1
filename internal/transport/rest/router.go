package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"govmaturity/internal/service"
	"govmaturity/internal/transport/rest/handler"
	"govmaturity/internal/transport/rest/middleware"
	"govmaturity/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	ConfigService     *service.ConfigService
	AssessmentService *service.AssessmentService
	DiagnosticService *service.DiagnosticService
	ReportService     *service.ReportService
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	questionnaireHandler := handler.NewQuestionnaireHandler(c.ConfigService)
	ruleHandler := handler.NewRuleHandler(c.ConfigService, c.DiagnosticService)
	templateHandler := handler.NewTemplateHandler(c.ConfigService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService)
	reportHandler := handler.NewReportHandler(c.ReportService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments", assessmentHandler.Start).Methods("POST", "OPTIONS")

	// WebSocket routes (admin token in query param)
	v1.HandleFunc("/ws/assessments/{assessmentId}", wsHandler.WatchWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/questionnaires", questionnaireHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires", questionnaireHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{questionnaireId}", questionnaireHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{questionnaireId}", questionnaireHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{questionnaireId}", questionnaireHandler.Delete).Methods("DELETE", "OPTIONS")

	adminRoutes.HandleFunc("/questionnaires/{questionnaireId}/rules", ruleHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{questionnaireId}/rules", ruleHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{questionnaireId}/rules/import", ruleHandler.Import).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{questionnaireId}/rules/export", ruleHandler.Export).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{questionnaireId}/rules/test", ruleHandler.Test).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{questionnaireId}/rules/stats", reportHandler.RuleStats).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{questionnaireId}/rules/{ruleId}", ruleHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{questionnaireId}/rules/{ruleId}", ruleHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{questionnaireId}/rules/{ruleId}/active", ruleHandler.SetActive).Methods("POST", "OPTIONS")

	adminRoutes.HandleFunc("/templates", templateHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/templates", templateHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/templates/{templateId}", templateHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/templates/{templateId}", templateHandler.Delete).Methods("DELETE", "OPTIONS")

	adminRoutes.HandleFunc("/reports/{assessmentId}", reportHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/reports/{assessmentId}/trace", reportHandler.GetTrace).Methods("GET", "OPTIONS")

	// Respondent routes (require respondent auth)
	respondentRoutes := v1.NewRoute().Subrouter()
	respondentRoutes.Use(authMW.RequireRespondent)

	respondentRoutes.HandleFunc("/assessments/current/question", assessmentHandler.CurrentQuestion).Methods("GET", "OPTIONS")
	respondentRoutes.HandleFunc("/assessments/current/answers", assessmentHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	respondentRoutes.HandleFunc("/assessments/current/advance", assessmentHandler.Advance).Methods("POST", "OPTIONS")
	respondentRoutes.HandleFunc("/assessments/current/retreat", assessmentHandler.Retreat).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
