package model

import "fmt"

// Operator identifies either a field comparison or a logical combinator.
type Operator string

// Comparison operators (leaf nodes)
const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpIsEmpty     Operator = "is_empty"
	OpIsNotEmpty  Operator = "is_not_empty"
	OpInList      Operator = "in_list"
)

// Logical operators (branch nodes)
const (
	OpAnd Operator = "AND"
	OpOr  Operator = "OR"
	OpNot Operator = "NOT"
)

// ConditionNode is one node of a condition tree. A leaf node carries a field
// comparison (Field + Operator + Value); a branch node combines its Children
// with AND/OR/NOT. Trees are end-user-edited configuration, so they are
// validated structurally once at load time and evaluated fail-soft after that.
type ConditionNode struct {
	Operator Operator         `json:"operator" bson:"operator"`
	Field    string           `json:"field,omitempty" bson:"field,omitempty"`
	Value    interface{}      `json:"value,omitempty" bson:"value,omitempty"`
	Children []*ConditionNode `json:"children,omitempty" bson:"children,omitempty"`
}

// IsLogical reports whether the node combines children rather than comparing a field.
func (n *ConditionNode) IsLogical() bool {
	switch n.Operator {
	case OpAnd, OpOr, OpNot:
		return true
	}
	return false
}

// Validate checks the tree structurally: known operators, NOT with exactly one
// child, comparisons carrying a field. Run once when configuration is saved or
// imported; evaluation itself never rejects a tree.
func (n *ConditionNode) Validate() error {
	if n == nil {
		return nil
	}
	switch n.Operator {
	case OpAnd, OpOr:
		for _, child := range n.Children {
			if err := child.Validate(); err != nil {
				return err
			}
		}
		return nil
	case OpNot:
		if len(n.Children) != 1 {
			return fmt.Errorf("NOT node must have exactly one child, got %d", len(n.Children))
		}
		return n.Children[0].Validate()
	case OpEquals, OpNotEquals, OpContains, OpNotContains,
		OpGreaterThan, OpLessThan, OpIsEmpty, OpIsNotEmpty, OpInList:
		if n.Field == "" {
			return fmt.Errorf("comparison %q is missing a field", n.Operator)
		}
		if len(n.Children) > 0 {
			return fmt.Errorf("comparison %q must not have children", n.Operator)
		}
		return nil
	case "":
		return fmt.Errorf("condition node is missing an operator")
	default:
		return fmt.Errorf("unknown operator %q", n.Operator)
	}
}
