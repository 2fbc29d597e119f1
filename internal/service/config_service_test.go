package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govmaturity/internal/model"
)

// fakeRuleRepo is an in-memory RuleRepo that preserves insertion order for
// GetByQuestionnaire, like the Mongo implementation's createdAt sort.
type fakeRuleRepo struct {
	rules  []*model.Rule
	nextID int
}

func (f *fakeRuleRepo) Create(_ context.Context, rule *model.Rule) (string, error) {
	if rule.ID == "" {
		f.nextID++
		rule.ID = fmt.Sprintf("rule_%d", f.nextID)
	}
	stored := *rule
	f.rules = append(f.rules, &stored)
	return rule.ID, nil
}

func (f *fakeRuleRepo) GetByID(_ context.Context, id string) (*model.Rule, error) {
	for _, r := range f.rules {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRuleRepo) Update(_ context.Context, rule *model.Rule) error {
	for i, r := range f.rules {
		if r.ID == rule.ID {
			stored := *rule
			f.rules[i] = &stored
			return nil
		}
	}
	return fmt.Errorf("rule %s not found", rule.ID)
}

func (f *fakeRuleRepo) Delete(_ context.Context, id string) error {
	for i, r := range f.rules {
		if r.ID == id {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRuleRepo) GetByQuestionnaire(_ context.Context, questionnaireID string) ([]model.Rule, error) {
	out := []model.Rule{}
	for _, r := range f.rules {
		if r.QuestionnaireID == questionnaireID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRuleRepo) SetActive(_ context.Context, id string, active bool) error {
	for _, r := range f.rules {
		if r.ID == id {
			r.Active = active
			return nil
		}
	}
	return nil
}

type fakeQuestionnaireRepo struct{}

func (fakeQuestionnaireRepo) Create(_ context.Context, q *model.Questionnaire) (string, error) {
	return q.ID, nil
}
func (fakeQuestionnaireRepo) GetByID(context.Context, string) (*model.Questionnaire, error) {
	return nil, nil
}
func (fakeQuestionnaireRepo) Update(context.Context, *model.Questionnaire) error { return nil }
func (fakeQuestionnaireRepo) Delete(context.Context, string) error               { return nil }
func (fakeQuestionnaireRepo) GetAll(context.Context) ([]*model.Questionnaire, error) {
	return nil, nil
}

type fakeTemplateRepo struct{}

func (fakeTemplateRepo) Create(_ context.Context, tpl *model.Template) (string, error) {
	return tpl.ID, nil
}
func (fakeTemplateRepo) GetByID(context.Context, string) (*model.Template, error) { return nil, nil }
func (fakeTemplateRepo) Update(context.Context, *model.Template) error            { return nil }
func (fakeTemplateRepo) Delete(context.Context, string) error                     { return nil }
func (fakeTemplateRepo) GetAll(context.Context) ([]model.Template, error)         { return nil, nil }
func (fakeTemplateRepo) Library(context.Context) (map[string]model.Template, error) {
	return map[string]model.Template{}, nil
}

func newTestConfigService(t *testing.T) (*ConfigService, *fakeRuleRepo) {
	t.Helper()
	ruleRepo := &fakeRuleRepo{}
	svc, err := NewConfigService(fakeQuestionnaireRepo{}, ruleRepo, fakeTemplateRepo{})
	require.NoError(t, err)
	return svc, ruleRepo
}

func TestImportRules_CreatesAndCounts(t *testing.T) {
	svc, repo := newTestConfigService(t)
	ctx := context.Background()

	payload := `[
		{
			"name": "high sensitivity",
			"priority": 1,
			"active": true,
			"conditions": {"operator": "equals", "field": "q1", "value": "high"},
			"actions": [{"type": "recommend", "templateId": "high_security_template", "weight": 3}]
		},
		{
			"name": "score bump",
			"priority": 2,
			"active": true,
			"actions": [{"type": "score", "weight": 5}]
		}
	]`

	imported, err := svc.ImportRules(ctx, "gov_maturity_v1", []byte(payload))
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	rules, err := repo.GetByQuestionnaire(ctx, "gov_maturity_v1")
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "high sensitivity", rules[0].Name)
	assert.Equal(t, "gov_maturity_v1", rules[0].QuestionnaireID)
}

func TestImportRules_UpdatesExistingByID(t *testing.T) {
	svc, repo := newTestConfigService(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.Rule{
		ID: "rule_keep", QuestionnaireID: "gov_maturity_v1", Name: "original",
		Actions: []model.Action{{Type: model.ActionScore, Weight: 1}},
	})
	require.NoError(t, err)

	payload := `[
		{
			"id": "rule_keep",
			"name": "renamed",
			"priority": 9,
			"actions": [{"type": "score", "weight": 2}]
		}
	]`

	imported, err := svc.ImportRules(ctx, "gov_maturity_v1", []byte(payload))
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	rules, err := repo.GetByQuestionnaire(ctx, "gov_maturity_v1")
	require.NoError(t, err)
	require.Len(t, rules, 1, "matching id replaces, never duplicates")
	assert.Equal(t, "renamed", rules[0].Name)
	assert.Equal(t, 9, rules[0].Priority)
}

func TestImportRules_RejectsSchemaViolations(t *testing.T) {
	svc, repo := newTestConfigService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		payload string
	}{
		{"not an array", `{"name": "x"}`},
		{"missing actions", `[{"name": "x"}]`},
		{"empty actions", `[{"name": "x", "actions": []}]`},
		{"bad action type", `[{"name": "x", "actions": [{"type": "explode"}]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imported, err := svc.ImportRules(ctx, "gov_maturity_v1", []byte(tt.payload))
			assert.Error(t, err)
			assert.Zero(t, imported)
		})
	}

	rules, err := repo.GetByQuestionnaire(ctx, "gov_maturity_v1")
	require.NoError(t, err)
	assert.Empty(t, rules, "rejected payloads leave no partial state")
}

func TestImportRules_RejectsInvalidConditionTree(t *testing.T) {
	svc, _ := newTestConfigService(t)

	payload := `[
		{
			"name": "broken",
			"conditions": {"operator": "NOT", "children": []},
			"actions": [{"type": "score", "weight": 1}]
		}
	]`

	_, err := svc.ImportRules(context.Background(), "gov_maturity_v1", []byte(payload))
	assert.ErrorContains(t, err, "exactly one child")
}

func TestImportRules_RejectsRecommendWithoutTemplate(t *testing.T) {
	svc, _ := newTestConfigService(t)

	payload := `[
		{
			"name": "dangling",
			"actions": [{"type": "recommend"}]
		}
	]`

	_, err := svc.ImportRules(context.Background(), "gov_maturity_v1", []byte(payload))
	assert.ErrorContains(t, err, "missing a template id")
}

func TestExportRules_RoundTrips(t *testing.T) {
	svc, repo := newTestConfigService(t)
	ctx := context.Background()

	payload := `[
		{
			"name": "high sensitivity",
			"priority": 1,
			"active": true,
			"conditions": {
				"operator": "OR",
				"children": [
					{"operator": "equals", "field": "q1", "value": "high"},
					{"operator": "contains", "field": "q3", "value": "hipaa"}
				]
			},
			"actions": [{"type": "recommend", "templateId": "high_security_template", "weight": 3}]
		}
	]`
	_, err := svc.ImportRules(ctx, "gov_maturity_v1", []byte(payload))
	require.NoError(t, err)

	exported, err := svc.ExportRules(ctx, "gov_maturity_v1")
	require.NoError(t, err)

	var decoded []model.Rule
	require.NoError(t, json.Unmarshal(exported, &decoded))
	require.Len(t, decoded, 1)

	// Re-importing the export replaces in place and changes nothing.
	imported, err := svc.ImportRules(ctx, "gov_maturity_v1", exported)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	after, err := repo.GetByQuestionnaire(ctx, "gov_maturity_v1")
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, decoded[0].Conditions, after[0].Conditions)
}

func TestValidateQuestionnaire_RejectsDuplicateIDs(t *testing.T) {
	svc, _ := newTestConfigService(t)

	q := &model.Questionnaire{
		ID:    "dup",
		Title: "duplicate ids",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionTypeText, Prompt: "first"},
			{ID: "q1", Type: model.QuestionTypeText, Prompt: "second"},
		},
	}

	_, err := svc.CreateQuestionnaire(context.Background(), q)
	assert.ErrorContains(t, err, "duplicate question id")
}

func TestValidateQuestionnaire_RejectsBadVisibilityTree(t *testing.T) {
	svc, _ := newTestConfigService(t)

	q := &model.Questionnaire{
		ID:    "badvis",
		Title: "bad visibility",
		Questions: []model.Question{
			{
				ID: "q1", Type: model.QuestionTypeText, Prompt: "gated",
				Visibility: &model.ConditionNode{Operator: "equals"},
			},
		},
	}

	_, err := svc.CreateQuestionnaire(context.Background(), q)
	assert.ErrorContains(t, err, "visibility")
}
