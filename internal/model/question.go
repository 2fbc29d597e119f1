package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeSingleSelect QuestionType = "single_select" // One option
	QuestionTypeMultiSelect  QuestionType = "multi_select"  // Set of options
	QuestionTypeText         QuestionType = "text"          // Free text
	QuestionTypeNumber       QuestionType = "number"        // Numeric input
	QuestionTypeDate         QuestionType = "date"          // Calendar date (YYYY-MM-DD)
	QuestionTypeRating       QuestionType = "rating"        // Bounded scale
)

// Option is a selectable choice for single/multi select questions
type Option struct {
	Value string  `json:"value" bson:"value" validate:"required"`
	Label string  `json:"label" bson:"label"`
	Score float64 `json:"score,omitempty" bson:"score,omitempty"`
}

// Question is an immutable questionnaire entry. Defined by configuration,
// referenced (never mutated) by the decision engine during a run.
type Question struct {
	ID       string       `json:"id" bson:"id" validate:"required"`
	Type     QuestionType `json:"type" bson:"type" validate:"required,oneof=single_select multi_select text number date rating"`
	Prompt   string       `json:"prompt" bson:"prompt" validate:"required"`
	Required bool         `json:"required" bson:"required"`
	Weight   float64      `json:"weight" bson:"weight" validate:"gte=0"`
	Options  []Option     `json:"options,omitempty" bson:"options,omitempty"`
	// For rating type
	ScaleMin int `json:"scaleMin,omitempty" bson:"scaleMin,omitempty"`
	ScaleMax int `json:"scaleMax,omitempty" bson:"scaleMax,omitempty"`
	// For number type
	MinValue *float64 `json:"minValue,omitempty" bson:"minValue,omitempty"`
	MaxValue *float64 `json:"maxValue,omitempty" bson:"maxValue,omitempty"`
	// For text type
	MaxLength int `json:"maxLength,omitempty" bson:"maxLength,omitempty"`
	// Visibility gates whether the question is part of the active flow.
	// A nil tree means always visible.
	Visibility *ConditionNode `json:"visibility,omitempty" bson:"visibility,omitempty"`
}

// HasOption reports whether value is one of the question's configured options.
func (q *Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
