package engine

import (
	"fmt"
	"sort"

	"govmaturity/internal/model"
)

// resolvedTemplate pairs a template with the weight its recommend action
// carried and the order it was collected in.
type resolvedTemplate struct {
	tpl    model.Template
	weight float64
	seq    int
}

// Compose merges the templates recommended by matched rules into a single
// scored report. Unresolved template ids are skipped and traced, never fatal:
// a single bad reference must not break the whole report. When nothing
// resolves, the policy's baseline recommendation is used instead. Composition
// is deterministic given identical inputs - no randomness, no current time.
func Compose(results []model.MatchResult, library map[string]model.Template, policy ScoringPolicy) (*model.Report, []model.TraceEntry) {
	report := &model.Report{
		MatchedRuleIDs: []string{},
		Sections:       map[string][]string{},
	}
	trace := []model.TraceEntry{}

	var resolved []resolvedTemplate
	var scoreAdjust float64
	for _, res := range results {
		if !res.Matched {
			continue
		}
		report.MatchedRuleIDs = append(report.MatchedRuleIDs, res.RuleID)

		for _, action := range res.Actions {
			switch action.Type {
			case model.ActionRecommend:
				tpl, ok := library[action.TemplateID]
				if !ok {
					report.SkippedTemplates = append(report.SkippedTemplates, action.TemplateID)
					trace = append(trace, model.TraceEntry{
						RuleID:  res.RuleID,
						Matched: true,
						Reason:  fmt.Sprintf("template %q not found, skipped", action.TemplateID),
					})
					continue
				}
				weight := action.Weight
				if weight <= 0 {
					weight = 1
				}
				resolved = append(resolved, resolvedTemplate{tpl: tpl, weight: weight, seq: len(resolved)})
			case model.ActionScore:
				scoreAdjust += action.Weight
			case model.ActionRoute:
				trace = append(trace, model.TraceEntry{
					RuleID:  res.RuleID,
					Matched: true,
					Reason:  fmt.Sprintf("route action %v left to caller", action.Parameters),
				})
			}
		}
	}

	if len(resolved) == 0 {
		// Baseline fallback so the caller always gets a usable report.
		report.Score = clamp(policy.BaselineScore + scoreAdjust)
		report.Level = policy.LevelFor(report.Score)
		report.Confidence = 0
		for name, items := range policy.BaselineSections {
			report.Sections[name] = append([]string{}, items...)
		}
		trace = append(trace, model.TraceEntry{
			Reason: "no templates resolved, baseline recommendation applied",
		})
		return report, trace
	}

	// Section order: weight descending, then collection (rule priority) order.
	// The stable sort keeps equal weights in the order they were collected.
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].weight > resolved[j].weight
	})

	var weightSum, confSum float64
	for _, rt := range resolved {
		weightSum += rt.weight
		confSum += rt.tpl.ConfidenceScore

		for _, name := range sortedSectionNames(rt.tpl.Sections) {
			for _, item := range rt.tpl.Sections[name] {
				if !containsString(report.Sections[name], item) {
					report.Sections[name] = append(report.Sections[name], item)
				}
			}
		}
	}

	var weighted float64
	for _, rt := range resolved {
		weighted += rt.weight * rt.tpl.ConfidenceScore
	}
	report.Score = clamp(weighted/weightSum + scoreAdjust)
	report.Level = policy.LevelFor(report.Score)
	report.Confidence = clamp(confSum / float64(len(resolved)))

	return report, trace
}

func sortedSectionNames(sections map[string][]string) []string {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func containsString(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
