package model

import "time"

// Questionnaire is a persistent ordered question list created by an admin
type Questionnaire struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title" validate:"required"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Questions   []Question `json:"questions" bson:"questions" validate:"required,min=1,dive"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// AssessmentStatus tracks a run's lifecycle
type AssessmentStatus string

const (
	AssessmentInProgress AssessmentStatus = "in_progress"
	AssessmentCompleted  AssessmentStatus = "completed"
)

// Assessment is the persisted record of one run of a questionnaire
type Assessment struct {
	ID              string           `json:"id" bson:"_id,omitempty"`
	QuestionnaireID string           `json:"questionnaireId" bson:"questionnaireId"`
	RespondentID    string           `json:"respondentId" bson:"respondentId"`
	Status          AssessmentStatus `json:"status" bson:"status"`
	Answers         AnswerMap        `json:"answers" bson:"answers"`
	Report          *Report          `json:"report,omitempty" bson:"report,omitempty"`
	StartedAt       time.Time        `json:"startedAt" bson:"startedAt"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// StartAssessmentResponse is returned when a respondent starts a run
type StartAssessmentResponse struct {
	AssessmentID  string    `json:"assessmentId"`
	Token         string    `json:"token"`
	FirstQuestion *Question `json:"firstQuestion,omitempty"`
	TotalVisible  int       `json:"totalVisible"`
}

// ProgressUpdate is broadcast to watchers as a run moves along
type ProgressUpdate struct {
	AssessmentID string `json:"assessmentId"`
	Answered     int    `json:"answered"`
	TotalVisible int    `json:"totalVisible"`
	CurrentID    string `json:"currentId,omitempty"`
	Completed    bool   `json:"completed"`
}
