package engine

import "govmaturity/internal/model"

// VisibleQuestions returns the subsequence of questions currently active given
// the answer map. A question with no visibility tree is always visible.
// Output preserves the configured question order. Visibility is answer
// dependent and must be recomputed whenever an answer changes: later answers
// can retroactively hide or show other questions, so results are never cached
// across answer mutations.
func VisibleQuestions(questions []model.Question, answers model.AnswerMap) []model.Question {
	visible := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if q.Visibility == nil || EvalTree(answers, q.Visibility) {
			visible = append(visible, q)
		}
	}
	return visible
}

// IsVisible evaluates a single question's visibility against the answers.
func IsVisible(q *model.Question, answers model.AnswerMap) bool {
	return q.Visibility == nil || EvalTree(answers, q.Visibility)
}
