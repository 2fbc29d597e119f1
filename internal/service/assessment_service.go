package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"govmaturity/internal/cache"
	"govmaturity/internal/engine"
	"govmaturity/internal/model"
	"govmaturity/internal/repository"
)

var ErrAssessmentNotFound = errors.New("assessment not found")

// AssessmentService drives assessment runs. It snapshots configuration into
// an engine session at start, shuttles the session through the cache between
// requests, and persists the outcome once the run completes. The engine holds
// the decision logic; this service owns the I/O around it.
type AssessmentService struct {
	questionnaireRepo repository.QuestionnaireRepo
	ruleRepo          repository.RuleRepo
	templateRepo      repository.TemplateRepo
	assessmentRepo    repository.AssessmentRepo
	reportRepo        repository.ReportRepo
	auditRepo         repository.AuditRepo
	sessionCache      cache.SessionCache
	statsCache        cache.StatsCache
	authSvc           *AuthService
	policy            engine.ScoringPolicy
	broadcaster       Broadcaster
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	questionnaireRepo repository.QuestionnaireRepo,
	ruleRepo repository.RuleRepo,
	templateRepo repository.TemplateRepo,
	assessmentRepo repository.AssessmentRepo,
	reportRepo repository.ReportRepo,
	auditRepo repository.AuditRepo,
	sessionCache cache.SessionCache,
	statsCache cache.StatsCache,
	authSvc *AuthService,
	policy engine.ScoringPolicy,
) *AssessmentService {
	return &AssessmentService{
		questionnaireRepo: questionnaireRepo,
		ruleRepo:          ruleRepo,
		templateRepo:      templateRepo,
		assessmentRepo:    assessmentRepo,
		reportRepo:        reportRepo,
		auditRepo:         auditRepo,
		sessionCache:      sessionCache,
		statsCache:        statsCache,
		authSvc:           authSvc,
		policy:            policy,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start snapshots the questionnaire, its rules and the template library into
// a fresh session and hands back a respondent token plus the first question.
func (s *AssessmentService) Start(ctx context.Context, questionnaireID string) (*model.StartAssessmentResponse, error) {
	questionnaire, err := s.questionnaireRepo.GetByID(ctx, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questionnaire: %w", err)
	}
	if questionnaire == nil {
		return nil, fmt.Errorf("questionnaire not found")
	}

	rules, err := s.ruleRepo.GetByQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rules: %w", err)
	}
	library, err := s.templateRepo.Library(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get templates: %w", err)
	}

	assessmentID := "a_" + uuid.New().String()[:8]
	respondentID := "r_" + uuid.New().String()[:8]

	session := engine.NewSession(assessmentID, questionnaire, rules, library, s.policy)
	if err := session.Start(); err != nil {
		return nil, err
	}

	token, err := s.authSvc.GenerateRespondentToken(assessmentID, respondentID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	assessment := &model.Assessment{
		ID:              assessmentID,
		QuestionnaireID: questionnaireID,
		RespondentID:    respondentID,
		Status:          model.AssessmentInProgress,
		Answers:         model.AnswerMap{},
		StartedAt:       time.Now(),
	}
	if err := s.assessmentRepo.Save(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to cache session: %w", err)
	}

	s.broadcastProgress(session)

	return &model.StartAssessmentResponse{
		AssessmentID:  assessmentID,
		Token:         token,
		FirstQuestion: session.CurrentQuestion(),
		TotalVisible:  len(session.Visible()),
	}, nil
}

// CurrentQuestion returns the question the run is positioned on, nil when the
// run is complete.
func (s *AssessmentService) CurrentQuestion(ctx context.Context, assessmentID string) (*model.Question, error) {
	session, err := s.loadSession(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	return session.CurrentQuestion(), nil
}

// SubmitAnswer validates and records one answer. Validation failures come
// back as *engine.ValidationError with the prior state untouched.
func (s *AssessmentService) SubmitAnswer(ctx context.Context, assessmentID, questionID string, value model.AnswerValue) error {
	session, err := s.loadSession(ctx, assessmentID)
	if err != nil {
		return err
	}
	if err := session.Answer(questionID, value); err != nil {
		return err
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		return fmt.Errorf("failed to cache session: %w", err)
	}
	s.broadcastProgress(session)
	return nil
}

// Advance moves to the next visible question. On completion the report is
// persisted along with its audit trace and the final report is returned;
// otherwise the next question is returned.
func (s *AssessmentService) Advance(ctx context.Context, assessmentID string) (*model.Question, *model.Report, error) {
	session, err := s.loadSession(ctx, assessmentID)
	if err != nil {
		return nil, nil, err
	}

	done, err := session.Advance()
	if err != nil {
		return nil, nil, err
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to cache session: %w", err)
	}

	if !done {
		s.broadcastProgress(session)
		return session.CurrentQuestion(), nil, nil
	}

	report, err := s.finalize(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	return nil, report, nil
}

// Retreat moves back to the previous visible question
func (s *AssessmentService) Retreat(ctx context.Context, assessmentID string) (*model.Question, error) {
	session, err := s.loadSession(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if err := session.Retreat(); err != nil {
		return nil, err
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to cache session: %w", err)
	}
	s.broadcastProgress(session)
	return session.CurrentQuestion(), nil
}

// finalize persists the completed run: assessment record, report, audit
// trace and rule-hit counters, then notifies watchers.
func (s *AssessmentService) finalize(ctx context.Context, session *engine.Session) (*model.Report, error) {
	report := session.Report
	now := time.Now()
	report.GeneratedAt = &now

	assessment := &model.Assessment{
		ID:              session.ID,
		QuestionnaireID: session.QuestionnaireID,
		Status:          model.AssessmentCompleted,
		Answers:         session.Answers,
		Report:          report,
		CompletedAt:     &now,
	}
	if existing, err := s.assessmentRepo.GetByID(ctx, session.ID); err == nil && existing != nil {
		assessment.RespondentID = existing.RespondentID
		assessment.StartedAt = existing.StartedAt
	}
	if err := s.assessmentRepo.Save(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}
	if err := s.reportRepo.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	if err := s.auditRepo.Append(ctx, &model.AuditRecord{
		AssessmentID: session.ID,
		Entries:      session.Trace,
	}); err != nil {
		return nil, fmt.Errorf("failed to save audit trace: %w", err)
	}

	for _, ruleID := range report.MatchedRuleIDs {
		// Counter updates are best effort; the report is already safe.
		_ = s.statsCache.IncrRuleMatch(ctx, session.QuestionnaireID, ruleID)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToWatchers(session.ID, "assessment_completed", report)
	}
	return report, nil
}

func (s *AssessmentService) loadSession(ctx context.Context, assessmentID string) (*engine.Session, error) {
	session, err := s.sessionCache.Get(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrAssessmentNotFound
	}
	return session, nil
}

func (s *AssessmentService) broadcastProgress(session *engine.Session) {
	if s.broadcaster == nil {
		return
	}
	answered, total := session.Progress()
	s.broadcaster.BroadcastToWatchers(session.ID, "progress_update", model.ProgressUpdate{
		AssessmentID: session.ID,
		Answered:     answered,
		TotalVisible: total,
		CurrentID:    session.Current,
		Completed:    session.State == engine.StateCompleted,
	})
}
