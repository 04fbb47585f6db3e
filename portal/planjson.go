package portal

import (
	"encoding/json"
	"strings"
)

// ExtractPlanJSON pulls a TrainingPlan out of a model response. Markdown
// code fences are stripped and the outermost {...} slice is parsed.
// Malformed input returns nil, never an error.
func ExtractPlanJSON(text string) *TrainingPlan {
	cleaned := strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		} else {
			cleaned = strings.TrimPrefix(cleaned, "```")
		}
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")

	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")
	if first >= 0 && last > first {
		cleaned = cleaned[first : last+1]
	}

	var plan TrainingPlan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return nil
	}
	return &plan
}

// UsablePlan reports whether an extracted plan should be accepted over the
// canned fallback: it must carry a non-empty trainings list. No further
// schema validation is applied to individual items.
func UsablePlan(plan *TrainingPlan) bool {
	return plan != nil && len(plan.RecommendedTrainings) > 0
}
