package engine

import (
	"sort"

	"govmaturity/internal/model"
)

// EvaluateRules evaluates an ordered, prioritized rule set against the answer
// map. Inactive rules are filtered out; the rest are sorted ascending by
// priority with a stable sort, so ties keep their configuration order and the
// output is deterministic across runs. Each rule's tree is evaluated
// independently - no rule's result affects another's predicate. The full
// ordered list (matched and unmatched) is returned so callers can audit why a
// rule did not fire.
func EvaluateRules(answers model.AnswerMap, rules []model.Rule) []model.MatchResult {
	active := make([]model.Rule, 0, len(rules))
	for _, r := range rules {
		if r.Active {
			active = append(active, r)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority < active[j].Priority
	})

	results := make([]model.MatchResult, 0, len(active))
	for _, r := range active {
		results = append(results, model.MatchResult{
			RuleID:  r.ID,
			Matched: EvalTree(answers, r.Conditions),
			Actions: r.Actions,
		})
	}
	return results
}

// TraceResults projects match results into the read-only audit trace consumed
// by the "test rules" diagnostic.
func TraceResults(results []model.MatchResult) []model.TraceEntry {
	trace := make([]model.TraceEntry, 0, len(results))
	for _, res := range results {
		reason := "conditions not met"
		if res.Matched {
			reason = "conditions matched"
		}
		trace = append(trace, model.TraceEntry{
			RuleID:  res.RuleID,
			Matched: res.Matched,
			Reason:  reason,
		})
	}
	return trace
}
