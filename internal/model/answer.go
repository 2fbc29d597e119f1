package model

import "strconv"

// AnswerValue carries one recorded answer. Exactly one group of fields is set
// depending on the question type: Selected for single_select, SelectedOptions
// for multi_select, Text for text, Number for number, Date for date and Rating
// for rating. Pointer fields distinguish "answered with zero" from unset.
type AnswerValue struct {
	Text            string   `json:"text,omitempty" bson:"text,omitempty"`
	Selected        string   `json:"selected,omitempty" bson:"selected,omitempty"`
	SelectedOptions []string `json:"selectedOptions,omitempty" bson:"selectedOptions,omitempty"`
	Number          *float64 `json:"number,omitempty" bson:"number,omitempty"`
	Rating          *int     `json:"rating,omitempty" bson:"rating,omitempty"`
	Date            string   `json:"date,omitempty" bson:"date,omitempty"` // YYYY-MM-DD
}

// AnswerMap maps question id to its recorded answer. A key is present only for
// questions that have been answered; absence means "unanswered", which is
// distinct from an explicit empty value.
type AnswerMap map[string]AnswerValue

// IsEmpty reports whether the value carries no content at all.
func (v AnswerValue) IsEmpty() bool {
	return v.Text == "" && v.Selected == "" && len(v.SelectedOptions) == 0 &&
		v.Number == nil && v.Rating == nil && v.Date == ""
}

// IsList reports whether the value is a set of options.
func (v AnswerValue) IsList() bool {
	return v.SelectedOptions != nil
}

// List returns the option set for multi-select answers.
func (v AnswerValue) List() []string {
	return v.SelectedOptions
}

// ScalarString returns the value as a comparable string, if it has one.
func (v AnswerValue) ScalarString() (string, bool) {
	switch {
	case v.Selected != "":
		return v.Selected, true
	case v.Text != "":
		return v.Text, true
	case v.Date != "":
		return v.Date, true
	case v.Number != nil:
		return strconv.FormatFloat(*v.Number, 'f', -1, 64), true
	case v.Rating != nil:
		return strconv.Itoa(*v.Rating), true
	}
	return "", false
}

// AsNumber returns the value coerced to a number. Numeric text and selected
// option values coerce too; everything else fails.
func (v AnswerValue) AsNumber() (float64, bool) {
	switch {
	case v.Number != nil:
		return *v.Number, true
	case v.Rating != nil:
		return float64(*v.Rating), true
	case v.Selected != "":
		n, err := strconv.ParseFloat(v.Selected, 64)
		return n, err == nil
	case v.Text != "":
		n, err := strconv.ParseFloat(v.Text, 64)
		return n, err == nil
	}
	return 0, false
}

// NumberValue builds a number answer.
func NumberValue(n float64) AnswerValue {
	return AnswerValue{Number: &n}
}

// RatingValue builds a rating answer.
func RatingValue(r int) AnswerValue {
	return AnswerValue{Rating: &r}
}

// SelectedValue builds a single-select answer.
func SelectedValue(option string) AnswerValue {
	return AnswerValue{Selected: option}
}

// MultiValue builds a multi-select answer.
func MultiValue(options ...string) AnswerValue {
	return AnswerValue{SelectedOptions: options}
}

// TextValue builds a free-text answer.
func TextValue(text string) AnswerValue {
	return AnswerValue{Text: text}
}

// DateValue builds a date answer.
func DateValue(date string) AnswerValue {
	return AnswerValue{Date: date}
}
