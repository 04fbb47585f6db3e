package emailapi

import (
	"partnerportal/portal"
	"strings"
	"testing"
)

func TestRenderPlanEmail(t *testing.T) {
	html, err := renderPlanEmail(planEmailData{
		PlanSummary: "Focused on fundamentals.",
		Trainings: []portal.TrainingItem{
			{Title: "UiPath Platform Overview", Duration: 4, Rationale: "Understand core capabilities and value."},
			{Title: "Governance and Security Basics", Duration: 3},
		},
		HoursPerDay:     2,
		IncludeWeekends: false,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{
		"UiPath Platform Overview",
		"Duration: 4 hours",
		"Why: Understand core capabilities and value.",
		"Focused on fundamentals.",
		"<strong>Daily Commitment:</strong> 2 hours per day",
		"<strong>Weekend Training:</strong> No",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered email missing %q", want)
		}
	}

	// An item without a rationale must not render an empty Why block.
	if strings.Count(html, "Why:") != 1 {
		t.Errorf("expected exactly one rationale block, got %d", strings.Count(html, "Why:"))
	}
}

func TestRenderPlanEmailEscapesHTML(t *testing.T) {
	html, err := renderPlanEmail(planEmailData{
		Trainings:   []portal.TrainingItem{{Title: "<script>alert(1)</script>", Duration: 1}},
		HoursPerDay: 1,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("training titles must be HTML-escaped")
	}
}
