package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"govmaturity/internal/model"
)

func leaf(op model.Operator, field string, value interface{}) *model.ConditionNode {
	return &model.ConditionNode{Operator: op, Field: field, Value: value}
}

func TestEvalTree_Logical(t *testing.T) {
	answers := model.AnswerMap{
		"q1": model.SelectedValue("high"),
		"q2": model.SelectedValue("managed"),
	}

	tests := []struct {
		name string
		node *model.ConditionNode
		want bool
	}{
		{
			"AND all true",
			&model.ConditionNode{Operator: model.OpAnd, Children: []*model.ConditionNode{
				leaf(model.OpEquals, "q1", "high"),
				leaf(model.OpEquals, "q2", "managed"),
			}},
			true,
		},
		{
			"AND one false",
			&model.ConditionNode{Operator: model.OpAnd, Children: []*model.ConditionNode{
				leaf(model.OpEquals, "q1", "high"),
				leaf(model.OpEquals, "q2", "none"),
			}},
			false,
		},
		{
			"OR one true",
			&model.ConditionNode{Operator: model.OpOr, Children: []*model.ConditionNode{
				leaf(model.OpEquals, "q1", "low"),
				leaf(model.OpEquals, "q2", "managed"),
			}},
			true,
		},
		{
			"OR all false",
			&model.ConditionNode{Operator: model.OpOr, Children: []*model.ConditionNode{
				leaf(model.OpEquals, "q1", "low"),
				leaf(model.OpEquals, "q2", "none"),
			}},
			false,
		},
		{
			"NOT negates",
			&model.ConditionNode{Operator: model.OpNot, Children: []*model.ConditionNode{
				leaf(model.OpEquals, "q1", "low"),
			}},
			true,
		},
		{
			"double NOT",
			&model.ConditionNode{Operator: model.OpNot, Children: []*model.ConditionNode{
				{Operator: model.OpNot, Children: []*model.ConditionNode{
					leaf(model.OpEquals, "q1", "high"),
				}},
			}},
			true,
		},
		{
			"nested mixed tree",
			&model.ConditionNode{Operator: model.OpAnd, Children: []*model.ConditionNode{
				leaf(model.OpEquals, "q1", "high"),
				{Operator: model.OpOr, Children: []*model.ConditionNode{
					leaf(model.OpEquals, "q2", "none"),
					{Operator: model.OpNot, Children: []*model.ConditionNode{
						leaf(model.OpEquals, "q2", "ad_hoc"),
					}},
				}},
			}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvalTree(answers, tt.node))
		})
	}
}

func TestEvalTree_DegenerateShapes(t *testing.T) {
	answers := model.AnswerMap{}

	// An absent constraint never blocks.
	assert.True(t, EvalTree(answers, nil))
	assert.True(t, EvalTree(answers, &model.ConditionNode{Operator: model.OpAnd}))
	assert.True(t, EvalTree(answers, &model.ConditionNode{Operator: model.OpOr}))
	// NOT of a vacuous true.
	assert.False(t, EvalTree(answers, &model.ConditionNode{Operator: model.OpNot}))
	// Unknown operator at the root falls through to an always-false predicate.
	assert.False(t, EvalTree(answers, &model.ConditionNode{Operator: "bogus", Field: "q1"}))
}

func TestEvalTree_ShortCircuit(t *testing.T) {
	answers := model.AnswerMap{"q1": model.SelectedValue("high")}

	// The second child is malformed; AND must not need it once the first
	// child is false.
	node := &model.ConditionNode{Operator: model.OpAnd, Children: []*model.ConditionNode{
		leaf(model.OpEquals, "q1", "low"),
		{Operator: "bogus"},
	}}
	assert.False(t, EvalTree(answers, node))

	node = &model.ConditionNode{Operator: model.OpOr, Children: []*model.ConditionNode{
		leaf(model.OpEquals, "q1", "high"),
		{Operator: "bogus"},
	}}
	assert.True(t, EvalTree(answers, node))
}
