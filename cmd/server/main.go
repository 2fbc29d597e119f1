package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"govmaturity/internal/cache"
	"govmaturity/internal/config"
	"govmaturity/internal/repository"
	"govmaturity/internal/service"
	"govmaturity/internal/transport/rest"
	"govmaturity/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	// Scoring policy (thresholds, baseline) from YAML, defaults when unset
	policy, err := config.LoadScoringPolicy(cfg.PolicyPath)
	if err != nil {
		log.Fatal("Failed to load scoring policy:", err)
	}
	log.Printf("Scoring policy: high>=%.0f medium>=%.0f baseline=%.0f",
		policy.HighThreshold, policy.MediumThreshold, policy.BaselineScore)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	questionnaireRepo := repository.NewQuestionnaireRepo(db)
	ruleRepo := repository.NewRuleRepo(db)
	templateRepo := repository.NewTemplateRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)
	reportRepo := repository.NewReportRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb)
	statsCache := cache.NewStatsCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService()
	configSvc, err := service.NewConfigService(questionnaireRepo, ruleRepo, templateRepo)
	if err != nil {
		log.Fatal("Failed to initialize config service:", err)
	}
	assessmentSvc := service.NewAssessmentService(
		questionnaireRepo, ruleRepo, templateRepo,
		assessmentRepo, reportRepo, auditRepo,
		sessionCache, statsCache,
		authSvc, policy,
	)
	diagnosticSvc := service.NewDiagnosticService(ruleRepo, templateRepo, policy)
	reportSvc := service.NewReportService(reportRepo, auditRepo, statsCache)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	assessmentSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		ConfigService:     configSvc,
		AssessmentService: assessmentSvc,
		DiagnosticService: diagnosticSvc,
		ReportService:     reportSvc,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/assessments")
		log.Println("  GET  /v1/assessments/current/question")
		log.Println("  POST /v1/assessments/current/answers")
		log.Println("  POST /v1/assessments/current/advance")
		log.Println("  POST /v1/assessments/current/retreat")
		log.Println("  POST/GET /v1/questionnaires")
		log.Println("  POST/GET /v1/questionnaires/{id}/rules")
		log.Println("  POST/GET /v1/templates")
		log.Println("  GET  /v1/reports/{assessmentId}")
		log.Println("  WS  /v1/ws/assessments/{assessmentId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
