package engine

import (
	"fmt"
	"time"

	"govmaturity/internal/model"
)

const dateLayout = "2006-01-02"

// ValidateAnswer checks a value against the question's type-specific
// constraints. A nil return means the answer may be recorded.
func ValidateAnswer(q *model.Question, value model.AnswerValue) *ValidationError {
	if value.IsEmpty() {
		if q.Required {
			return &ValidationError{
				Field:      q.ID,
				Constraint: "required",
				Message:    "an answer is required for this question",
			}
		}
		return nil
	}

	switch q.Type {
	case model.QuestionTypeSingleSelect:
		if value.Selected == "" {
			return wrongKind(q, "a single option")
		}
		if !q.HasOption(value.Selected) {
			return &ValidationError{
				Field:      q.ID,
				Constraint: "option",
				Message:    fmt.Sprintf("%q is not a configured option", value.Selected),
			}
		}

	case model.QuestionTypeMultiSelect:
		if !value.IsList() {
			return wrongKind(q, "a set of options")
		}
		for _, selected := range value.SelectedOptions {
			if !q.HasOption(selected) {
				return &ValidationError{
					Field:      q.ID,
					Constraint: "option",
					Message:    fmt.Sprintf("%q is not a configured option", selected),
				}
			}
		}

	case model.QuestionTypeText:
		if value.Text == "" {
			return wrongKind(q, "text")
		}
		if q.MaxLength > 0 && len(value.Text) > q.MaxLength {
			return &ValidationError{
				Field:      q.ID,
				Constraint: "maxLength",
				Message:    fmt.Sprintf("answer exceeds %d characters", q.MaxLength),
			}
		}

	case model.QuestionTypeNumber:
		if value.Number == nil {
			return wrongKind(q, "a number")
		}
		n := *value.Number
		if q.MinValue != nil && n < *q.MinValue {
			return &ValidationError{
				Field:      q.ID,
				Constraint: "min",
				Message:    fmt.Sprintf("value must be at least %g", *q.MinValue),
			}
		}
		if q.MaxValue != nil && n > *q.MaxValue {
			return &ValidationError{
				Field:      q.ID,
				Constraint: "max",
				Message:    fmt.Sprintf("value must be at most %g", *q.MaxValue),
			}
		}

	case model.QuestionTypeDate:
		if value.Date == "" {
			return wrongKind(q, "a date")
		}
		if _, err := time.Parse(dateLayout, value.Date); err != nil {
			return &ValidationError{
				Field:      q.ID,
				Constraint: "date",
				Message:    "date must be formatted YYYY-MM-DD",
			}
		}

	case model.QuestionTypeRating:
		if value.Rating == nil {
			return wrongKind(q, "a rating")
		}
		r := *value.Rating
		if q.ScaleMax > q.ScaleMin && (r < q.ScaleMin || r > q.ScaleMax) {
			return &ValidationError{
				Field:      q.ID,
				Constraint: "scale",
				Message:    fmt.Sprintf("rating must be between %d and %d", q.ScaleMin, q.ScaleMax),
			}
		}
	}

	return nil
}

func wrongKind(q *model.Question, expected string) *ValidationError {
	return &ValidationError{
		Field:      q.ID,
		Constraint: "type",
		Message:    fmt.Sprintf("question of type %s expects %s", q.Type, expected),
	}
}
