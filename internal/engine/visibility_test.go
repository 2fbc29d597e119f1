package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"govmaturity/internal/model"
)

func gatedQuestions() []model.Question {
	return []model.Question{
		{ID: "q1", Type: model.QuestionTypeSingleSelect, Prompt: "sensitivity"},
		{ID: "q2", Type: model.QuestionTypeSingleSelect, Prompt: "governance"},
		{ID: "q3", Type: model.QuestionTypeMultiSelect, Prompt: "regimes"},
		{
			ID: "q5", Type: model.QuestionTypeRating, Prompt: "cataloging",
			Visibility: &model.ConditionNode{Operator: model.OpEquals, Field: "q2", Value: "managed"},
		},
	}
}

func TestVisibleQuestions_GateClosed(t *testing.T) {
	questions := gatedQuestions()

	visible := VisibleQuestions(questions, model.AnswerMap{})
	ids := questionIDs(visible)
	assert.Equal(t, []string{"q1", "q2", "q3"}, ids)
}

func TestVisibleQuestions_GateOpens(t *testing.T) {
	questions := gatedQuestions()
	answers := model.AnswerMap{"q2": model.SelectedValue("managed")}

	visible := VisibleQuestions(questions, answers)
	assert.Equal(t, []string{"q1", "q2", "q3", "q5"}, questionIDs(visible))

	// Changing the gating answer hides it again.
	answers["q2"] = model.SelectedValue("ad_hoc")
	visible = VisibleQuestions(questions, answers)
	assert.Equal(t, []string{"q1", "q2", "q3"}, questionIDs(visible))
}

func TestVisibleQuestions_PreservesConfiguredOrder(t *testing.T) {
	questions := []model.Question{
		{ID: "b", Visibility: &model.ConditionNode{Operator: model.OpIsNotEmpty, Field: "a"}},
		{ID: "a"},
		{ID: "c"},
	}
	answers := model.AnswerMap{"a": model.TextValue("answered")}

	visible := VisibleQuestions(questions, answers)
	assert.Equal(t, []string{"b", "a", "c"}, questionIDs(visible))
}

func TestIsVisible(t *testing.T) {
	q := model.Question{ID: "q5", Visibility: &model.ConditionNode{Operator: model.OpEquals, Field: "q2", Value: "managed"}}

	assert.False(t, IsVisible(&q, model.AnswerMap{}))
	assert.True(t, IsVisible(&q, model.AnswerMap{"q2": model.SelectedValue("managed")}))

	ungated := model.Question{ID: "q1"}
	assert.True(t, IsVisible(&ungated, model.AnswerMap{}))
}

func questionIDs(questions []model.Question) []string {
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}
