package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionNode_Validate(t *testing.T) {
	tests := []struct {
		name    string
		node    *ConditionNode
		wantErr string
	}{
		{"nil tree", nil, ""},
		{
			"valid leaf",
			&ConditionNode{Operator: OpEquals, Field: "q1", Value: "high"},
			"",
		},
		{
			"valid nested tree",
			&ConditionNode{Operator: OpAnd, Children: []*ConditionNode{
				{Operator: OpEquals, Field: "q1", Value: "high"},
				{Operator: OpNot, Children: []*ConditionNode{
					{Operator: OpContains, Field: "q3", Value: "hipaa"},
				}},
			}},
			"",
		},
		{
			"missing operator",
			&ConditionNode{Field: "q1"},
			"missing an operator",
		},
		{
			"unknown operator",
			&ConditionNode{Operator: "regex_match", Field: "q1"},
			"unknown operator",
		},
		{
			"comparison without field",
			&ConditionNode{Operator: OpEquals, Value: "high"},
			"missing a field",
		},
		{
			"comparison with children",
			&ConditionNode{Operator: OpEquals, Field: "q1", Children: []*ConditionNode{
				{Operator: OpEquals, Field: "q2", Value: "x"},
			}},
			"must not have children",
		},
		{
			"NOT without child",
			&ConditionNode{Operator: OpNot},
			"exactly one child",
		},
		{
			"NOT with two children",
			&ConditionNode{Operator: OpNot, Children: []*ConditionNode{
				{Operator: OpEquals, Field: "q1", Value: "a"},
				{Operator: OpEquals, Field: "q2", Value: "b"},
			}},
			"exactly one child",
		},
		{
			"invalid grandchild surfaces",
			&ConditionNode{Operator: OpOr, Children: []*ConditionNode{
				{Operator: OpAnd, Children: []*ConditionNode{
					{Operator: OpEquals, Value: "orphan"},
				}},
			}},
			"missing a field",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestConditionNode_IsLogical(t *testing.T) {
	assert.True(t, (&ConditionNode{Operator: OpAnd}).IsLogical())
	assert.True(t, (&ConditionNode{Operator: OpOr}).IsLogical())
	assert.True(t, (&ConditionNode{Operator: OpNot}).IsLogical())
	assert.False(t, (&ConditionNode{Operator: OpEquals}).IsLogical())
	assert.False(t, (&ConditionNode{Operator: "bogus"}).IsLogical())
}
