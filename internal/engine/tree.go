package engine

import "govmaturity/internal/model"

// EvalTree evaluates a condition tree against the answer map with recursive
// short-circuiting: AND stops at the first false child, OR at the first true
// child, NOT negates its single child. A nil tree or a logical node without
// children evaluates true (an absent constraint never blocks). Malformed
// trees are tolerated, never rejected, since this feeds UI-configured content.
func EvalTree(answers model.AnswerMap, node *model.ConditionNode) bool {
	if node == nil {
		return true
	}

	switch node.Operator {
	case model.OpAnd:
		for _, child := range node.Children {
			if !EvalTree(answers, child) {
				return false
			}
		}
		return true

	case model.OpOr:
		if len(node.Children) == 0 {
			return true // vacuous pass
		}
		for _, child := range node.Children {
			if EvalTree(answers, child) {
				return true
			}
		}
		return false

	case model.OpNot:
		if len(node.Children) == 0 {
			return false // NOT of a vacuous true
		}
		return !EvalTree(answers, node.Children[0])
	}

	return EvalCondition(answers, node)
}
