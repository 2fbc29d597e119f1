package service

import (
	"context"
	"fmt"

	"govmaturity/internal/engine"
	"govmaturity/internal/model"
	"govmaturity/internal/repository"
)

// DiagnosticService runs the "test rules" dry run: evaluate an ad-hoc answer
// map against a questionnaire's live rule set and show every decision plus the
// report those answers would produce. Nothing is persisted.
type DiagnosticService struct {
	ruleRepo     repository.RuleRepo
	templateRepo repository.TemplateRepo
	policy       engine.ScoringPolicy
}

// NewDiagnosticService creates a new diagnostic service
func NewDiagnosticService(ruleRepo repository.RuleRepo, templateRepo repository.TemplateRepo, policy engine.ScoringPolicy) *DiagnosticService {
	return &DiagnosticService{
		ruleRepo:     ruleRepo,
		templateRepo: templateRepo,
		policy:       policy,
	}
}

// TestRules evaluates answers against a questionnaire's rules and composes
// the would-be report, returning the full decision trace for inspection.
func (s *DiagnosticService) TestRules(ctx context.Context, questionnaireID string, answers model.AnswerMap) (*model.RuleTestResult, error) {
	rules, err := s.ruleRepo.GetByQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rules: %w", err)
	}
	library, err := s.templateRepo.Library(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get templates: %w", err)
	}

	results := engine.EvaluateRules(answers, rules)
	report, composeTrace := engine.Compose(results, library, s.policy)

	return &model.RuleTestResult{
		Results: results,
		Trace:   append(engine.TraceResults(results), composeTrace...),
		Report:  report,
	}, nil
}
