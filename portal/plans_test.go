package portal

import "testing"

func TestHeuristicPlanDispatch(t *testing.T) {
	cases := []struct {
		persona string
		summary string
	}{
		{"Leadership (CEO, CTO, Practice Lead, Head of Alliances)", leadershipPlan().PlanSummary},
		{"CEO", leadershipPlan().PlanSummary},
		{"ceo", leadershipPlan().PlanSummary},
		{"Delivery / Project Manager", deliveryPlan().PlanSummary},
		{"Sales/ Presales/ Business Development", salesPlan().PlanSummary},
		{"Solution Architect/ Developers", architectPlan().PlanSummary},
		{"Technical Architect", architectPlan().PlanSummary},
		{"General", genericPlan().PlanSummary},
		{"", genericPlan().PlanSummary},
	}

	for _, tc := range cases {
		plan := HeuristicPlan(tc.persona)
		if plan.PlanSummary != tc.summary {
			t.Errorf("persona %q: got summary %q, want %q", tc.persona, plan.PlanSummary, tc.summary)
		}
		if len(plan.RecommendedTrainings) == 0 {
			t.Errorf("persona %q: empty plan", tc.persona)
		}
	}
}

func TestHeuristicPlanLeadershipHasSixItems(t *testing.T) {
	plan := HeuristicPlan("Leadership (CEO, CTO, Practice Lead, Head of Alliances)")
	if len(plan.RecommendedTrainings) != 6 {
		t.Fatalf("expected 6 leadership items, got %d", len(plan.RecommendedTrainings))
	}
}

func TestExtractPlanJSONFenced(t *testing.T) {
	bare := `{"planSummary":"s","recommendedTrainings":[{"title":"T","duration":4,"rationale":"r"}]}`
	fenced := "```json\n" + bare + "\n```"

	fromBare := ExtractPlanJSON(bare)
	fromFenced := ExtractPlanJSON(fenced)
	if !UsablePlan(fromBare) || !UsablePlan(fromFenced) {
		t.Fatal("expected both forms to parse")
	}
	if fromBare.PlanSummary != fromFenced.PlanSummary || len(fromBare.RecommendedTrainings) != len(fromFenced.RecommendedTrainings) {
		t.Fatal("fenced and bare JSON should extract the same plan")
	}
	if fromFenced.RecommendedTrainings[0].Title != "T" || fromFenced.RecommendedTrainings[0].Duration != 4 {
		t.Fatalf("unexpected item: %+v", fromFenced.RecommendedTrainings[0])
	}
}

func TestExtractPlanJSONSurroundingProse(t *testing.T) {
	text := "Here is your plan:\n{\"planSummary\":\"s\",\"recommendedTrainings\":[{\"title\":\"T\",\"duration\":2}]}\nEnjoy!"
	plan := ExtractPlanJSON(text)
	if !UsablePlan(plan) {
		t.Fatal("expected plan embedded in prose to parse")
	}
}

func TestExtractPlanJSONMalformed(t *testing.T) {
	for _, text := range []string{"not json at all", "```json\n{broken\n```", ""} {
		if plan := ExtractPlanJSON(text); plan != nil {
			t.Errorf("input %q: expected nil, got %+v", text, plan)
		}
	}
}

func TestUsablePlanRejectsEmpty(t *testing.T) {
	if UsablePlan(&TrainingPlan{PlanSummary: "s"}) {
		t.Fatal("plan without trainings should not be usable")
	}
	if UsablePlan(nil) {
		t.Fatal("nil plan should not be usable")
	}
}
