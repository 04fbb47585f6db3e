package portal

import "regexp"

type TrainingItem struct {
	Title     string `json:"title"`
	Duration  int    `json:"duration"`
	Rationale string `json:"rationale,omitempty"`
}

type TrainingPlan struct {
	PlanSummary          string         `json:"planSummary"`
	RecommendedTrainings []TrainingItem `json:"recommendedTrainings"`
}

func leadershipPlan() TrainingPlan {
	return TrainingPlan{
		PlanSummary: "Leadership focus on strategy, CoE, governance, and measurable value realization.",
		RecommendedTrainings: []TrainingItem{
			{Title: "Automation Strategy and Operating Model", Duration: 6, Rationale: "Define vision, funding, operating model, and accountability."},
			{Title: "Building and Scaling a Center of Excellence", Duration: 5, Rationale: "Establish governance, roles, standards, and enablement at scale."},
			{Title: "Value Realization and ROI for Automation", Duration: 4, Rationale: "Track benefits, align to business KPIs, and communicate outcomes."},
			{Title: "Governance, Risk, and Compliance in Automation", Duration: 4, Rationale: "Mitigate risk and ensure compliant scaling across the enterprise."},
			{Title: "Executive Stakeholder Alignment and Change Management", Duration: 3, Rationale: "Drive adoption and stakeholder buy‑in across functions."},
			{Title: "Partner and Ecosystem Co‑Selling Best Practices", Duration: 3, Rationale: "Leverage alliances to accelerate value and reach."},
		},
	}
}

func deliveryPlan() TrainingPlan {
	return TrainingPlan{
		PlanSummary: "Delivery emphasis: agile execution, risk/dependency control, and value tracking.",
		RecommendedTrainings: []TrainingItem{
			{Title: "Agile Delivery for Automation Projects", Duration: 5, Rationale: "Apply Scrum/Kanban practices tailored for automation teams."},
			{Title: "Backlog and Pipeline Management", Duration: 4, Rationale: "Prioritize, groom, and track demand from discovery to delivery."},
			{Title: "Estimation, Capacity and Resource Planning", Duration: 3, Rationale: "Forecast throughput and balance workload across squads."},
			{Title: "Risk, Issue and Dependency Management", Duration: 3, Rationale: "Proactively manage cross‑team risks and dependencies."},
			{Title: "Testing, Release and Change Management with UiPath", Duration: 4, Rationale: "Orchestrate quality gates, releases, and rollback plans."},
			{Title: "Value Realization and KPI Reporting", Duration: 3, Rationale: "Measure adoption and outcomes, report program health."},
		},
	}
}

func salesPlan() TrainingPlan {
	return TrainingPlan{
		PlanSummary: "Commercial focus, minimal technical depth, strong discovery and demo excellence.",
		RecommendedTrainings: []TrainingItem{
			{Title: "UiPath Value Selling Fundamentals", Duration: 6, Rationale: "Strengthen discovery, objection handling, and ROI articulation."},
			{Title: "Positioning UiPath Platform End-to-End", Duration: 5, Rationale: "Confidently tell the full UiPath story tailored to customer outcomes."},
			{Title: "Industry Use Cases for Automation", Duration: 4, Rationale: "Map common automation scenarios to verticals and business value."},
			{Title: "Demonstrations That Win Deals", Duration: 3, Rationale: "Build short, outcome-first demos; avoid deep technical setup."},
			{Title: "Competitive Landscape and Battlecards", Duration: 3, Rationale: "Handle competitive positioning with clarity."},
			{Title: "Partner Co‑Selling Best Practices", Duration: 3, Rationale: "Collaborate effectively with UiPath field teams."},
		},
	}
}

func architectPlan() TrainingPlan {
	return TrainingPlan{
		PlanSummary: "Technical depth across architecture, REFramework, Orchestrator, and AI.",
		RecommendedTrainings: []TrainingItem{
			{Title: "UiPath Automation Developer Associate", Duration: 12, Rationale: "Solidify development fundamentals and best practices."},
			{Title: "REFramework Advanced Patterns", Duration: 8, Rationale: "Harden solutions for scale, retries, and exception handling."},
			{Title: "Orchestrator at Scale (Cloud/Hybrid)", Duration: 6, Rationale: "Design for multi-tenant, security, and observability."},
			{Title: "Document Understanding and AI Center", Duration: 6, Rationale: "Infuse AI into end-to-end automations."},
			{Title: "Solution Architecture and Governance", Duration: 6, Rationale: "Blueprints, standards, and Center of Excellence."},
			{Title: "Testing and CI/CD with UiPath", Duration: 4, Rationale: "Shift-left quality and automated deployments."},
		},
	}
}

func genericPlan() TrainingPlan {
	return TrainingPlan{
		PlanSummary: "Balanced introduction with practical outcomes.",
		RecommendedTrainings: []TrainingItem{
			{Title: "UiPath Platform Overview", Duration: 4, Rationale: "Understand core capabilities and value."},
			{Title: "Process Discovery to Delivery", Duration: 4, Rationale: "End-to-end methodology from idea to impact."},
			{Title: "Key UiPath Products and Use Cases", Duration: 4, Rationale: "Map features to outcomes across roles."},
			{Title: "Governance and Security Basics", Duration: 3, Rationale: "Safeguard scale and compliance."},
			{Title: "UiPath Academy Learning Paths", Duration: 3, Rationale: "Select role-based courses to continue."},
		},
	}
}

// planRules is the ordered persona dispatch table. First match wins; no
// match falls through to the generic plan.
var planRules = []struct {
	pattern *regexp.Regexp
	plan    func() TrainingPlan
}{
	{regexp.MustCompile(`(?i)leadership|ceo|cto|cxo|practice\s*lead|head\s*of\s*alliances|alliances`), leadershipPlan},
	{regexp.MustCompile(`(?i)delivery|project\s*manager|program\s*manager|\bpm\b`), deliveryPlan},
	{regexp.MustCompile(`(?i)sales|pre-sales|presales|business\s*development`), salesPlan},
	{regexp.MustCompile(`(?i)architect|developer|solution\s*architect|technical`), architectPlan},
}

// HeuristicPlan selects the canned training plan for a free-text persona
// label. Total: every input maps to exactly one plan.
func HeuristicPlan(persona string) TrainingPlan {
	for _, rule := range planRules {
		if rule.pattern.MatchString(persona) {
			return rule.plan()
		}
	}
	return genericPlan()
}
