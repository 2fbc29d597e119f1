package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"govmaturity/internal/model"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "govmaturity"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	now := time.Now()

	questionnaire := model.Questionnaire{
		ID:          "gov_maturity_v1",
		Title:       "Data Governance Maturity Assessment",
		Description: "Baseline questionnaire for scoring organizational governance maturity.",
		Questions: []model.Question{
			{
				ID:       "q1",
				Type:     model.QuestionTypeSingleSelect,
				Prompt:   "How sensitive is the data your organization processes?",
				Required: true,
				Weight:   2,
				Options: []model.Option{
					{Value: "low", Label: "Public or low-sensitivity data"},
					{Value: "moderate", Label: "Internal business data"},
					{Value: "high", Label: "Regulated or personal data"},
				},
			},
			{
				ID:       "q2",
				Type:     model.QuestionTypeSingleSelect,
				Prompt:   "Which best describes your current governance program?",
				Required: true,
				Weight:   2,
				Options: []model.Option{
					{Value: "none", Label: "No formal program"},
					{Value: "ad_hoc", Label: "Ad hoc, per-team practices"},
					{Value: "managed", Label: "Managed program with defined owners"},
				},
			},
			{
				ID:       "q3",
				Type:     model.QuestionTypeMultiSelect,
				Prompt:   "Which compliance regimes apply to you?",
				Required: false,
				Weight:   1,
				Options: []model.Option{
					{Value: "gdpr", Label: "GDPR"},
					{Value: "hipaa", Label: "HIPAA"},
					{Value: "soc2", Label: "SOC 2"},
					{Value: "none", Label: "None of these"},
				},
			},
			{
				ID:        "q4",
				Type:      model.QuestionTypeText,
				Prompt:    "Briefly describe how access to sensitive data is requested and approved.",
				Required:  false,
				Weight:    1,
				MaxLength: 2000,
			},
			{
				ID:       "q5",
				Type:     model.QuestionTypeRating,
				Prompt:   "How mature is your data cataloging practice?",
				Required: true,
				Weight:   1,
				ScaleMin: 1,
				ScaleMax: 5,
				Visibility: &model.ConditionNode{
					Operator: model.OpEquals,
					Field:    "q2",
					Value:    "managed",
				},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	rules := []model.Rule{
		{
			ID:              "rule_high_sensitivity",
			QuestionnaireID: questionnaire.ID,
			Name:            "High sensitivity or HIPAA exposure",
			Priority:        1,
			Active:          true,
			Conditions: &model.ConditionNode{
				Operator: model.OpOr,
				Children: []*model.ConditionNode{
					{Operator: model.OpEquals, Field: "q1", Value: "high"},
					{Operator: model.OpContains, Field: "q3", Value: "hipaa"},
				},
			},
			Actions: []model.Action{
				{Type: model.ActionRecommend, TemplateID: "high_security_template", Weight: 3},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:              "rule_advanced_governance",
			QuestionnaireID: questionnaire.ID,
			Name:            "Managed governance program",
			Priority:        2,
			Active:          true,
			Conditions: &model.ConditionNode{
				Operator: model.OpEquals,
				Field:    "q2",
				Value:    "managed",
			},
			Actions: []model.Action{
				{Type: model.ActionRecommend, TemplateID: "governance_program_template", Weight: 2},
				{Type: model.ActionScore, Weight: 5},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	templates := []model.Template{
		{
			ID:              "high_security_template",
			Name:            "High Security Controls",
			GovernanceLevel: "high",
			ConfidenceScore: 85,
			Sections: map[string][]string{
				"access_control": {
					"Enforce least-privilege access with periodic reviews.",
					"Require MFA for all access to sensitive data stores.",
				},
				"compliance": {
					"Map data flows against applicable regulatory regimes.",
					"Run an annual third-party compliance audit.",
				},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:              "governance_program_template",
			Name:            "Governance Program Practices",
			GovernanceLevel: "medium",
			ConfidenceScore: 70,
			Sections: map[string][]string{
				"access_control": {
					"Document the access request and approval workflow.",
				},
				"stewardship": {
					"Assign data stewards per domain with published contacts.",
					"Track stewardship KPIs quarterly.",
				},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if _, err := db.Collection("questionnaires").InsertOne(ctx, questionnaire); err != nil {
		log.Fatalf("Failed to insert questionnaire: %v", err)
	}
	for _, rule := range rules {
		if _, err := db.Collection("rules").InsertOne(ctx, rule); err != nil {
			log.Fatalf("Failed to insert rule %s: %v", rule.ID, err)
		}
	}
	for _, tpl := range templates {
		if _, err := db.Collection("templates").InsertOne(ctx, tpl); err != nil {
			log.Fatalf("Failed to insert template %s: %v", tpl.ID, err)
		}
	}

	fmt.Printf("Seeded questionnaire '%s' with %d rules and %d templates\n",
		questionnaire.Title, len(rules), len(templates))
}
