package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govmaturity/internal/model"
)

func TestValidateAnswer_Required(t *testing.T) {
	required := model.Question{ID: "q1", Type: model.QuestionTypeText, Required: true}
	optional := model.Question{ID: "q2", Type: model.QuestionTypeText}

	verr := ValidateAnswer(&required, model.AnswerValue{})
	require.NotNil(t, verr)
	assert.Equal(t, "required", verr.Constraint)

	assert.Nil(t, ValidateAnswer(&optional, model.AnswerValue{}))
}

func TestValidateAnswer_SingleSelect(t *testing.T) {
	q := model.Question{
		ID: "q1", Type: model.QuestionTypeSingleSelect,
		Options: []model.Option{{Value: "low"}, {Value: "high"}},
	}

	assert.Nil(t, ValidateAnswer(&q, model.SelectedValue("low")))

	verr := ValidateAnswer(&q, model.SelectedValue("extreme"))
	require.NotNil(t, verr)
	assert.Equal(t, "option", verr.Constraint)

	verr = ValidateAnswer(&q, model.TextValue("low"))
	require.NotNil(t, verr)
	assert.Equal(t, "type", verr.Constraint)
}

func TestValidateAnswer_MultiSelect(t *testing.T) {
	q := model.Question{
		ID: "q3", Type: model.QuestionTypeMultiSelect,
		Options: []model.Option{{Value: "gdpr"}, {Value: "hipaa"}},
	}

	assert.Nil(t, ValidateAnswer(&q, model.MultiValue("gdpr", "hipaa")))

	verr := ValidateAnswer(&q, model.MultiValue("gdpr", "pci"))
	require.NotNil(t, verr)
	assert.Equal(t, "option", verr.Constraint)

	verr = ValidateAnswer(&q, model.SelectedValue("gdpr"))
	require.NotNil(t, verr)
	assert.Equal(t, "type", verr.Constraint)
}

func TestValidateAnswer_Text(t *testing.T) {
	q := model.Question{ID: "q4", Type: model.QuestionTypeText, MaxLength: 10}

	assert.Nil(t, ValidateAnswer(&q, model.TextValue("short")))

	verr := ValidateAnswer(&q, model.TextValue(strings.Repeat("x", 11)))
	require.NotNil(t, verr)
	assert.Equal(t, "maxLength", verr.Constraint)
}

func TestValidateAnswer_Number(t *testing.T) {
	min, max := 0.0, 100.0
	q := model.Question{ID: "qn", Type: model.QuestionTypeNumber, MinValue: &min, MaxValue: &max}

	assert.Nil(t, ValidateAnswer(&q, model.NumberValue(50)))
	assert.Nil(t, ValidateAnswer(&q, model.NumberValue(0)))
	assert.Nil(t, ValidateAnswer(&q, model.NumberValue(100)))

	verr := ValidateAnswer(&q, model.NumberValue(-1))
	require.NotNil(t, verr)
	assert.Equal(t, "min", verr.Constraint)

	verr = ValidateAnswer(&q, model.NumberValue(101))
	require.NotNil(t, verr)
	assert.Equal(t, "max", verr.Constraint)

	verr = ValidateAnswer(&q, model.TextValue("50"))
	require.NotNil(t, verr)
	assert.Equal(t, "type", verr.Constraint)
}

func TestValidateAnswer_Date(t *testing.T) {
	q := model.Question{ID: "qd", Type: model.QuestionTypeDate}

	assert.Nil(t, ValidateAnswer(&q, model.DateValue("2026-08-25")))

	for _, bad := range []string{"25/08/2026", "2026-13-01", "yesterday"} {
		verr := ValidateAnswer(&q, model.DateValue(bad))
		require.NotNil(t, verr, bad)
		assert.Equal(t, "date", verr.Constraint)
	}
}

func TestValidateAnswer_Rating(t *testing.T) {
	q := model.Question{ID: "q5", Type: model.QuestionTypeRating, ScaleMin: 1, ScaleMax: 5}

	assert.Nil(t, ValidateAnswer(&q, model.RatingValue(1)))
	assert.Nil(t, ValidateAnswer(&q, model.RatingValue(5)))

	for _, bad := range []int{0, 6} {
		verr := ValidateAnswer(&q, model.RatingValue(bad))
		require.NotNil(t, verr)
		assert.Equal(t, "scale", verr.Constraint)
	}
}
