package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govmaturity/internal/model"
)

func testQuestionnaire() *model.Questionnaire {
	return &model.Questionnaire{
		ID: "gov_maturity_v1",
		Questions: []model.Question{
			{
				ID: "q1", Type: model.QuestionTypeSingleSelect, Required: true,
				Options: []model.Option{{Value: "low"}, {Value: "moderate"}, {Value: "high"}},
			},
			{
				ID: "q2", Type: model.QuestionTypeSingleSelect, Required: true,
				Options: []model.Option{{Value: "none"}, {Value: "ad_hoc"}, {Value: "managed"}},
			},
			{
				ID: "q3", Type: model.QuestionTypeMultiSelect,
				Options: []model.Option{{Value: "gdpr"}, {Value: "hipaa"}, {Value: "soc2"}},
			},
			{
				ID: "q5", Type: model.QuestionTypeRating, Required: true, ScaleMin: 1, ScaleMax: 5,
				Visibility: leaf(model.OpEquals, "q2", "managed"),
			},
		},
	}
}

func testSession() *Session {
	rules := []model.Rule{
		{
			ID: "rule_sensitivity", Priority: 1, Active: true,
			Conditions: &model.ConditionNode{Operator: model.OpOr, Children: []*model.ConditionNode{
				leaf(model.OpEquals, "q1", "high"),
				leaf(model.OpContains, "q3", "hipaa"),
			}},
			Actions: []model.Action{{Type: model.ActionRecommend, TemplateID: "high_security_template", Weight: 3}},
		},
	}
	return NewSession("a_test", testQuestionnaire(), rules, testLibrary(), DefaultScoringPolicy())
}

func TestSession_Lifecycle(t *testing.T) {
	s := testSession()
	assert.Equal(t, StateNotStarted, s.State)

	// Mutations before Start are rejected.
	err := s.Answer("q1", model.SelectedValue("high"))
	assert.ErrorIs(t, err, ErrNotInProgress)
	_, err = s.Advance()
	assert.ErrorIs(t, err, ErrNotInProgress)
	assert.ErrorIs(t, s.Retreat(), ErrNotInProgress)

	require.NoError(t, s.Start())
	assert.Equal(t, StateInProgress, s.State)
	assert.Equal(t, "q1", s.Current)

	// Restarting an in-flight run is an invariant violation.
	assert.ErrorIs(t, s.Start(), ErrAlreadyInProgress)
}

func TestSession_AnswerValidation(t *testing.T) {
	s := testSession()
	require.NoError(t, s.Start())

	err := s.Answer("nope", model.SelectedValue("high"))
	assert.ErrorIs(t, err, ErrUnknownQuestion)

	err = s.Answer("q1", model.SelectedValue("extreme"))
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "q1", verr.Field)
	assert.Equal(t, "option", verr.Constraint)
	// Rejected write leaves prior state untouched.
	assert.Empty(t, s.Answers)

	require.NoError(t, s.Answer("q1", model.SelectedValue("high")))
	assert.Equal(t, "high", s.Answers["q1"].Selected)
}

func TestSession_ClearOptionalAnswer(t *testing.T) {
	s := testSession()
	require.NoError(t, s.Start())

	require.NoError(t, s.Answer("q3", model.MultiValue("gdpr")))
	_, ok := s.Answers["q3"]
	require.True(t, ok)

	require.NoError(t, s.Answer("q3", model.AnswerValue{}))
	_, ok = s.Answers["q3"]
	assert.False(t, ok, "clearing removes the key so the question reads unanswered")
}

func TestSession_RequiredBlocksAdvance(t *testing.T) {
	s := testSession()
	require.NoError(t, s.Start())

	done, err := s.Advance()
	assert.False(t, done)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "q1", verr.Field)
	assert.Equal(t, "required", verr.Constraint)
	assert.Equal(t, "q1", s.Current, "position unchanged on rejection")
}

func TestSession_FullRunWithHiddenQuestion(t *testing.T) {
	s := testSession()
	require.NoError(t, s.Start())

	require.NoError(t, s.Answer("q1", model.SelectedValue("high")))
	done, err := s.Advance()
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "q2", s.Current)

	// q2 != managed keeps q5 hidden, so q3 is the last visible question.
	require.NoError(t, s.Answer("q2", model.SelectedValue("ad_hoc")))
	done, err = s.Advance()
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "q3", s.Current)

	done, err = s.Advance()
	require.NoError(t, err)
	assert.True(t, done, "hidden q5 is skipped transparently and the run completes")

	assert.Equal(t, StateCompleted, s.State)
	assert.Empty(t, s.Current)
	require.NotNil(t, s.Report)
	assert.Equal(t, "a_test", s.Report.AssessmentID)
	assert.Equal(t, []string{"rule_sensitivity"}, s.Report.MatchedRuleIDs)
	assert.NotEmpty(t, s.Trace)
}

func TestSession_GateOpensMidRun(t *testing.T) {
	s := testSession()
	require.NoError(t, s.Start())

	require.NoError(t, s.Answer("q1", model.SelectedValue("low")))
	_, err := s.Advance()
	require.NoError(t, err)

	require.NoError(t, s.Answer("q2", model.SelectedValue("managed")))
	_, err = s.Advance()
	require.NoError(t, err)
	assert.Equal(t, "q3", s.Current)

	done, err := s.Advance()
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, "q5", s.Current, "q2=managed brings q5 into the flow")

	require.NoError(t, s.Answer("q5", model.RatingValue(4)))
	done, err = s.Advance()
	require.NoError(t, err)
	assert.True(t, done)
}

func TestSession_CurrentQuestionSkipsHiddenAnchor(t *testing.T) {
	s := testSession()
	require.NoError(t, s.Start())

	require.NoError(t, s.Answer("q1", model.SelectedValue("low")))
	_, err := s.Advance()
	require.NoError(t, err)
	require.NoError(t, s.Answer("q2", model.SelectedValue("managed")))
	_, err = s.Advance()
	require.NoError(t, err)
	_, err = s.Advance()
	require.NoError(t, err)
	require.Equal(t, "q5", s.Current)

	// Retreating and changing q2 hides the anchored q5. The position must
	// resolve to a visible question, never the hidden one.
	require.NoError(t, s.Retreat())
	require.NoError(t, s.Retreat())
	require.Equal(t, "q2", s.Current)
	require.NoError(t, s.Answer("q2", model.SelectedValue("none")))

	s.Current = "q5" // simulate a stale anchor
	q := s.CurrentQuestion()
	assert.Nil(t, q, "no visible question at or after the stale anchor")
}

func TestSession_RetreatAtFirstIsNoOp(t *testing.T) {
	s := testSession()
	require.NoError(t, s.Start())

	require.NoError(t, s.Retreat())
	assert.Equal(t, "q1", s.Current)

	require.NoError(t, s.Answer("q1", model.SelectedValue("low")))
	_, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, "q2", s.Current)

	require.NoError(t, s.Retreat())
	assert.Equal(t, "q1", s.Current)
}

func TestSession_PipelineRunsOnce(t *testing.T) {
	s := testSession()
	require.NoError(t, s.Start())
	require.NoError(t, s.Answer("q1", model.SelectedValue("high")))
	_, err := s.Advance()
	require.NoError(t, err)
	require.NoError(t, s.Answer("q2", model.SelectedValue("none")))
	_, err = s.Advance()
	require.NoError(t, err)
	done, err := s.Advance()
	require.NoError(t, err)
	require.True(t, done)

	report := s.Report
	done, err = s.Advance()
	assert.True(t, done)
	assert.ErrorIs(t, err, ErrNotInProgress)
	assert.Same(t, report, s.Report, "completion pipeline does not rerun")
}

func TestSession_RestartAfterCompletionResets(t *testing.T) {
	s := testSession()
	require.NoError(t, s.Start())
	require.NoError(t, s.Answer("q1", model.SelectedValue("high")))
	_, err := s.Advance()
	require.NoError(t, err)
	require.NoError(t, s.Answer("q2", model.SelectedValue("none")))
	_, err = s.Advance()
	require.NoError(t, err)
	_, err = s.Advance()
	require.NoError(t, err)
	require.Equal(t, StateCompleted, s.State)

	require.NoError(t, s.Start())
	assert.Equal(t, StateInProgress, s.State)
	assert.Empty(t, s.Answers)
	assert.Nil(t, s.Report)
	assert.Nil(t, s.Trace)
	assert.Equal(t, "q1", s.Current)
}

func TestSession_Progress(t *testing.T) {
	s := testSession()
	require.NoError(t, s.Start())

	answered, total := s.Progress()
	assert.Equal(t, 0, answered)
	assert.Equal(t, 3, total)

	require.NoError(t, s.Answer("q1", model.SelectedValue("low")))
	require.NoError(t, s.Answer("q2", model.SelectedValue("managed")))
	answered, total = s.Progress()
	assert.Equal(t, 2, answered)
	assert.Equal(t, 4, total, "opening the gate grows the visible total")
}

func TestSession_JSONRoundTrip(t *testing.T) {
	s := testSession()
	require.NoError(t, s.Start())
	require.NoError(t, s.Answer("q1", model.SelectedValue("high")))
	_, err := s.Advance()
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var restored Session
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, s.State, restored.State)
	assert.Equal(t, s.Current, restored.Current)
	assert.Equal(t, s.Answers, restored.Answers)

	// The restored session continues where it left off.
	require.NoError(t, restored.Answer("q2", model.SelectedValue("none")))
	_, err = restored.Advance()
	require.NoError(t, err)
	assert.Equal(t, "q3", restored.Current)
}
