package engine

import "govmaturity/internal/model"

// State is the progression state of one assessment run
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// Session is the progression state machine for one assessment run. It holds a
// snapshot of the configuration (questions, rules, templates, policy) taken
// when the run started, so concurrent edits to shared configuration are never
// observed mid-run, plus the only mutable state of the engine: the answers and
// the current position. One Session per in-flight assessment; state-mutating
// calls must be serialized by the caller. The struct is JSON-serializable so
// it can round-trip through a cache between requests.
type Session struct {
	ID              string                    `json:"id"`
	QuestionnaireID string                    `json:"questionnaireId"`
	Questions       []model.Question          `json:"questions"`
	Rules           []model.Rule              `json:"rules"`
	Templates       map[string]model.Template `json:"templates"`
	Policy          ScoringPolicy             `json:"policy"`

	State   State           `json:"state"`
	Answers model.AnswerMap `json:"answers"`
	// Current anchors the position by question id. It always refers to a
	// currently visible question or is empty once the run completes.
	Current string             `json:"current,omitempty"`
	Report  *model.Report      `json:"report,omitempty"`
	Trace   []model.TraceEntry `json:"trace,omitempty"`
}

// NewSession builds a not-started session over a configuration snapshot.
func NewSession(id string, questionnaire *model.Questionnaire, rules []model.Rule, templates map[string]model.Template, policy ScoringPolicy) *Session {
	return &Session{
		ID:              id,
		QuestionnaireID: questionnaire.ID,
		Questions:       questionnaire.Questions,
		Rules:           rules,
		Templates:       templates,
		Policy:          policy,
		State:           StateNotStarted,
		Answers:         model.AnswerMap{},
	}
}

// Start moves NotStarted or Completed to InProgress, resetting answers and
// positioning on the first visible question. Restarting an in-progress run is
// an invariant violation.
func (s *Session) Start() error {
	if s.State == StateInProgress {
		return ErrAlreadyInProgress
	}
	s.Answers = model.AnswerMap{}
	s.Report = nil
	s.Trace = nil
	s.State = StateInProgress
	s.Current = ""
	if visible := s.Visible(); len(visible) > 0 {
		s.Current = visible[0].ID
	}
	return nil
}

// Answer validates the value against the question's constraints and records
// it. On a validation failure prior state is unchanged. Recording an answer
// can change which questions are visible, so visibility is recomputed on
// demand rather than cached.
func (s *Session) Answer(questionID string, value model.AnswerValue) error {
	if s.State != StateInProgress {
		return ErrNotInProgress
	}
	q := s.question(questionID)
	if q == nil {
		return ErrUnknownQuestion
	}
	if verr := ValidateAnswer(q, value); verr != nil {
		return verr
	}
	if value.IsEmpty() {
		// An empty write on an optional question clears the answer; the key
		// is removed so the question reads as unanswered, not empty.
		delete(s.Answers, questionID)
		return nil
	}
	s.Answers[questionID] = value
	return nil
}

// Advance moves to the next question in the recomputed visible sequence. A
// question hidden by an earlier answer is skipped transparently. When no
// visible question remains the run completes and the rule evaluation plus
// composition pipeline runs exactly once. Returns true once completed.
func (s *Session) Advance() (bool, error) {
	if s.State != StateInProgress {
		return s.State == StateCompleted, ErrNotInProgress
	}

	if current := s.CurrentQuestion(); current != nil && current.Required {
		if _, answered := s.Answers[current.ID]; !answered {
			return false, &ValidationError{
				Field:      current.ID,
				Constraint: "required",
				Message:    "answer the current question before advancing",
			}
		}
	}

	anchor := s.configuredIndex(s.Current)
	for i := anchor + 1; i < len(s.Questions); i++ {
		if IsVisible(&s.Questions[i], s.Answers) {
			s.Current = s.Questions[i].ID
			return false, nil
		}
	}

	s.complete()
	return true, nil
}

// Retreat moves to the previous visible question. At the first question it is
// a no-op.
func (s *Session) Retreat() error {
	if s.State != StateInProgress {
		return ErrNotInProgress
	}
	anchor := s.configuredIndex(s.Current)
	for i := anchor - 1; i >= 0; i-- {
		if IsVisible(&s.Questions[i], s.Answers) {
			s.Current = s.Questions[i].ID
			return nil
		}
	}
	return nil
}

// CurrentQuestion returns the question the position points at, skipping
// forward transparently if the anchored question has become hidden. Nil once
// the run completes or when nothing is visible.
func (s *Session) CurrentQuestion() *model.Question {
	if s.State != StateInProgress || s.Current == "" {
		return nil
	}
	anchor := s.configuredIndex(s.Current)
	if anchor < 0 {
		return nil
	}
	if IsVisible(&s.Questions[anchor], s.Answers) {
		q := s.Questions[anchor]
		return &q
	}
	for i := anchor + 1; i < len(s.Questions); i++ {
		if IsVisible(&s.Questions[i], s.Answers) {
			q := s.Questions[i]
			return &q
		}
	}
	return nil
}

// Visible returns the currently active question subsequence.
func (s *Session) Visible() []model.Question {
	return VisibleQuestions(s.Questions, s.Answers)
}

// Progress reports answered-vs-visible counts for progress displays.
func (s *Session) Progress() (answered, total int) {
	visible := s.Visible()
	for _, q := range visible {
		if _, ok := s.Answers[q.ID]; ok {
			answered++
		}
	}
	return answered, len(visible)
}

// complete runs the rule evaluation and composition pipeline once and stores
// the report and its audit trace on the session.
func (s *Session) complete() {
	s.State = StateCompleted
	s.Current = ""
	if s.Report != nil {
		return
	}
	results := EvaluateRules(s.Answers, s.Rules)
	report, composeTrace := Compose(results, s.Templates, s.Policy)
	report.AssessmentID = s.ID
	s.Report = report
	s.Trace = append(TraceResults(results), composeTrace...)
}

func (s *Session) question(id string) *model.Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// configuredIndex returns the position of a question id in the configured
// order, -1 when unknown or empty.
func (s *Session) configuredIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return i
		}
	}
	return -1
}
