package service

import (
	"context"

	"govmaturity/internal/cache"
	"govmaturity/internal/model"
	"govmaturity/internal/repository"
)

// ReportService exposes finished reports, their audit traces and rule-hit
// statistics to the admin surface
type ReportService struct {
	reportRepo repository.ReportRepo
	auditRepo  repository.AuditRepo
	statsCache cache.StatsCache
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepo, auditRepo repository.AuditRepo, statsCache cache.StatsCache) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		auditRepo:  auditRepo,
		statsCache: statsCache,
	}
}

// GetReport retrieves the report of a completed assessment
func (s *ReportService) GetReport(ctx context.Context, assessmentID string) (*model.Report, error) {
	return s.reportRepo.GetByAssessment(ctx, assessmentID)
}

// GetTrace retrieves the audit trace recorded when the report was composed
func (s *ReportService) GetTrace(ctx context.Context, assessmentID string) (*model.AuditRecord, error) {
	return s.auditRepo.GetByAssessment(ctx, assessmentID)
}

// RuleStats returns per-rule match counts for a questionnaire
func (s *ReportService) RuleStats(ctx context.Context, questionnaireID string) (map[string]int64, error) {
	return s.statsCache.GetRuleMatches(ctx, questionnaireID)
}
