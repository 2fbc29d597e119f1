package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"govmaturity/internal/model"
	"govmaturity/internal/repository"
)

// ruleImportSchema validates raw rule documents before they are decoded.
// Structural problems are rejected at import time so evaluation never has to;
// this is the one place malformed condition trees get turned away.
const ruleImportSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name", "actions"],
    "properties": {
      "id": {"type": "string"},
      "name": {"type": "string", "minLength": 1},
      "priority": {"type": "integer"},
      "active": {"type": "boolean"},
      "conditions": {"$ref": "#/definitions/conditionNode"},
      "actions": {
        "type": "array",
        "minItems": 1,
        "items": {
          "type": "object",
          "required": ["type"],
          "properties": {
            "type": {"enum": ["recommend", "score", "route"]},
            "templateId": {"type": "string"},
            "weight": {"type": "number"}
          }
        }
      }
    }
  },
  "definitions": {
    "conditionNode": {
      "type": "object",
      "required": ["operator"],
      "properties": {
        "operator": {"type": "string"},
        "field": {"type": "string"},
        "children": {
          "type": "array",
          "items": {"$ref": "#/definitions/conditionNode"}
        }
      }
    }
  }
}`

// ConfigService owns questionnaire, rule and template configuration. All
// writes are validated here, once, so the engine can trust what it reads.
type ConfigService struct {
	questionnaireRepo repository.QuestionnaireRepo
	ruleRepo          repository.RuleRepo
	templateRepo      repository.TemplateRepo
	validate          *validator.Validate
	importSchema      *gojsonschema.Schema
}

// NewConfigService creates a new configuration service
func NewConfigService(
	questionnaireRepo repository.QuestionnaireRepo,
	ruleRepo repository.RuleRepo,
	templateRepo repository.TemplateRepo,
) (*ConfigService, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(ruleImportSchema))
	if err != nil {
		return nil, fmt.Errorf("compile rule import schema: %w", err)
	}
	return &ConfigService{
		questionnaireRepo: questionnaireRepo,
		ruleRepo:          ruleRepo,
		templateRepo:      templateRepo,
		validate:          validator.New(),
		importSchema:      schema,
	}, nil
}

// CreateQuestionnaire validates and stores a questionnaire
func (s *ConfigService) CreateQuestionnaire(ctx context.Context, q *model.Questionnaire) (string, error) {
	if err := s.validateQuestionnaire(q); err != nil {
		return "", err
	}
	return s.questionnaireRepo.Create(ctx, q)
}

// UpdateQuestionnaire validates and replaces a questionnaire
func (s *ConfigService) UpdateQuestionnaire(ctx context.Context, q *model.Questionnaire) error {
	if err := s.validateQuestionnaire(q); err != nil {
		return err
	}
	return s.questionnaireRepo.Update(ctx, q)
}

// GetQuestionnaire fetches one questionnaire
func (s *ConfigService) GetQuestionnaire(ctx context.Context, id string) (*model.Questionnaire, error) {
	return s.questionnaireRepo.GetByID(ctx, id)
}

// ListQuestionnaires fetches all questionnaires
func (s *ConfigService) ListQuestionnaires(ctx context.Context) ([]*model.Questionnaire, error) {
	return s.questionnaireRepo.GetAll(ctx)
}

// DeleteQuestionnaire removes a questionnaire
func (s *ConfigService) DeleteQuestionnaire(ctx context.Context, id string) error {
	return s.questionnaireRepo.Delete(ctx, id)
}

func (s *ConfigService) validateQuestionnaire(q *model.Questionnaire) error {
	if err := s.validate.Struct(q); err != nil {
		return fmt.Errorf("invalid questionnaire: %w", err)
	}
	seen := make(map[string]bool, len(q.Questions))
	for i := range q.Questions {
		question := &q.Questions[i]
		if seen[question.ID] {
			return fmt.Errorf("duplicate question id %q", question.ID)
		}
		seen[question.ID] = true
		if err := question.Visibility.Validate(); err != nil {
			return fmt.Errorf("question %s visibility: %w", question.ID, err)
		}
	}
	return nil
}

// CreateRule validates and stores a rule
func (s *ConfigService) CreateRule(ctx context.Context, rule *model.Rule) (string, error) {
	if err := s.validateRule(rule); err != nil {
		return "", err
	}
	return s.ruleRepo.Create(ctx, rule)
}

// UpdateRule validates and replaces a rule
func (s *ConfigService) UpdateRule(ctx context.Context, rule *model.Rule) error {
	if err := s.validateRule(rule); err != nil {
		return err
	}
	return s.ruleRepo.Update(ctx, rule)
}

// ListRules fetches a questionnaire's rule set in configuration order
func (s *ConfigService) ListRules(ctx context.Context, questionnaireID string) ([]model.Rule, error) {
	return s.ruleRepo.GetByQuestionnaire(ctx, questionnaireID)
}

// SetRuleActive toggles a rule without touching its logic
func (s *ConfigService) SetRuleActive(ctx context.Context, id string, active bool) error {
	return s.ruleRepo.SetActive(ctx, id, active)
}

// DeleteRule removes a rule
func (s *ConfigService) DeleteRule(ctx context.Context, id string) error {
	return s.ruleRepo.Delete(ctx, id)
}

func (s *ConfigService) validateRule(rule *model.Rule) error {
	if err := s.validate.Struct(rule); err != nil {
		return fmt.Errorf("invalid rule: %w", err)
	}
	if err := rule.Conditions.Validate(); err != nil {
		return fmt.Errorf("rule %s conditions: %w", rule.Name, err)
	}
	for _, action := range rule.Actions {
		if action.Type == model.ActionRecommend && action.TemplateID == "" {
			return fmt.Errorf("rule %s: recommend action is missing a template id", rule.Name)
		}
	}
	return nil
}

// CreateTemplate validates and stores a template
func (s *ConfigService) CreateTemplate(ctx context.Context, tpl *model.Template) (string, error) {
	if err := s.validate.Struct(tpl); err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}
	return s.templateRepo.Create(ctx, tpl)
}

// UpdateTemplate validates and replaces a template
func (s *ConfigService) UpdateTemplate(ctx context.Context, tpl *model.Template) error {
	if err := s.validate.Struct(tpl); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}
	return s.templateRepo.Update(ctx, tpl)
}

// ListTemplates fetches all templates
func (s *ConfigService) ListTemplates(ctx context.Context) ([]model.Template, error) {
	return s.templateRepo.GetAll(ctx)
}

// DeleteTemplate removes a template
func (s *ConfigService) DeleteTemplate(ctx context.Context, id string) error {
	return s.templateRepo.Delete(ctx, id)
}

// ImportRules loads a raw JSON rule export into a questionnaire. The payload
// is checked against the import schema, then each rule gets the same
// structural validation as a rule created through the API. Existing rules
// with matching ids are replaced.
func (s *ConfigService) ImportRules(ctx context.Context, questionnaireID string, raw []byte) (int, error) {
	result, err := s.importSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return 0, fmt.Errorf("rule import: %w", err)
	}
	if !result.Valid() {
		return 0, fmt.Errorf("rule import: %s", result.Errors()[0].String())
	}

	var rules []model.Rule
	if err := json.Unmarshal(raw, &rules); err != nil {
		return 0, fmt.Errorf("rule import: %w", err)
	}

	imported := 0
	for i := range rules {
		rule := &rules[i]
		rule.QuestionnaireID = questionnaireID
		if err := s.validateRule(rule); err != nil {
			return imported, err
		}
		if rule.ID != "" {
			if existing, err := s.ruleRepo.GetByID(ctx, rule.ID); err != nil {
				return imported, err
			} else if existing != nil {
				if err := s.ruleRepo.Update(ctx, rule); err != nil {
					return imported, err
				}
				imported++
				continue
			}
		}
		if _, err := s.ruleRepo.Create(ctx, rule); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// ExportRules serializes a questionnaire's rule set. The output round-trips
// through ImportRules unchanged.
func (s *ConfigService) ExportRules(ctx context.Context, questionnaireID string) ([]byte, error) {
	rules, err := s.ruleRepo.GetByQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(rules, "", "  ")
}
