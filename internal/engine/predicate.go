package engine

import (
	"strconv"

	"govmaturity/internal/model"
)

// EvalCondition evaluates a single field comparison against the answer map.
// A missing answer behaves as null: it never equals a non-null value, contains
// nothing, and is empty. Failed numeric coercion fails closed (false) rather
// than erroring, because conditions are end-user-edited configuration.
// Pure function, safe for concurrent use.
func EvalCondition(answers model.AnswerMap, cond *model.ConditionNode) bool {
	if cond == nil {
		return true
	}

	answer, answered := answers[cond.Field]

	switch cond.Operator {
	case model.OpEquals:
		return answered && scalarEquals(answer, cond.Value)

	case model.OpNotEquals:
		// null is never equal to any non-null value
		return !answered || !scalarEquals(answer, cond.Value)

	case model.OpContains:
		return answered && answer.IsList() && listContains(answer.List(), cond.Value)

	case model.OpNotContains:
		return !answered || !answer.IsList() || !listContains(answer.List(), cond.Value)

	case model.OpGreaterThan:
		left, lok := answer.AsNumber()
		right, rok := toNumber(cond.Value)
		return answered && lok && rok && left > right

	case model.OpLessThan:
		left, lok := answer.AsNumber()
		right, rok := toNumber(cond.Value)
		return answered && lok && rok && left < right

	case model.OpIsEmpty:
		return !answered || answer.IsEmpty()

	case model.OpIsNotEmpty:
		return answered && !answer.IsEmpty()

	case model.OpInList:
		if !answered {
			return false
		}
		scalar, ok := answer.ScalarString()
		if !ok {
			return false
		}
		for _, item := range toList(cond.Value) {
			if valueEquals(scalar, item) {
				return true
			}
		}
		return false
	}

	// Unrecognized operators are always-false predicates.
	return false
}

// scalarEquals compares an answer against a condition value. Both sides are
// compared numerically when both coerce, otherwise by string form.
func scalarEquals(answer model.AnswerValue, condValue interface{}) bool {
	if answer.IsList() {
		return false
	}
	scalar, ok := answer.ScalarString()
	if !ok {
		return false
	}
	return valueEquals(scalar, condValue)
}

func valueEquals(scalar string, condValue interface{}) bool {
	if right, ok := toNumber(condValue); ok {
		if left, err := strconv.ParseFloat(scalar, 64); err == nil {
			return left == right
		}
	}
	return scalar == toString(condValue)
}

func listContains(list []string, condValue interface{}) bool {
	want := toString(condValue)
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}

// toNumber coerces a condition value to float64. Condition values arrive from
// JSON or BSON decoding, so the concrete types vary.
func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		return parsed, err == nil
	}
	return 0, false
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// toList normalizes a condition value to a string slice for in_list checks.
func toList(v interface{}) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, toString(item))
		}
		return out
	case string:
		return []string{items}
	}
	return nil
}
