package modelapi

import (
	"fmt"
	"time"
)

// ProviderCallTimeout bounds every outbound generative-AI call. Callers
// wrap the request context with it; there are no retries in request paths.
const ProviderCallTimeout = 15 * time.Second

const CHAT_CONTEXT_SYSTEM_PROMPT = `You are an assistant that provides concise, factual context for a given query. Focus on providing relevant information that can be used by another AI to generate a detailed answer.`

const CHAT_ANSWER_SYSTEM_PROMPT = `You are a helpful assistant for UiPath partners. Answer questions clearly and concisely. If the question involves coding, provide a complete, runnable code snippet.`

const PLAN_RETRIEVER_SYSTEM_PROMPT = `You retrieve concise, factual context about UiPath courses and topics. Prefer UiPath Academy resources.`

// Truncate caps prompt material pulled from stored user data so a large
// answer set cannot blow up the request.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// BuildChatPrompt folds retrieved context into the user's question. The
// context block may be empty when retrieval was skipped or failed.
func BuildChatPrompt(context string, prompt string) string {
	return fmt.Sprintf(`Based on the following context, please provide a comprehensive answer to the user's question.
If the question involves coding, provide a complete, runnable code snippet.

--- CONTEXT FROM RETRIEVER ---
%s
---------------------------------

--- USER'S QUESTION ---
%s
-----------------------`, context, prompt)
}

// BuildPlanSearchPrompt asks the retriever for course context tailored to a
// persona and their self-reported answers.
func BuildPlanSearchPrompt(persona string, answersJSON string) string {
	return fmt.Sprintf(
		"Provide a concise list of UiPath Academy courses or learning paths suitable for a %s persona. Consider the following self-reported strengths/gaps: %s. Output short bullet points with course names/topics only.",
		persona, Truncate(answersJSON, 2000),
	)
}

// BuildPlanPrompt is the synthesis prompt. The schedule constraints are
// advisory text only; the returned plan's total duration is not validated
// against them.
func BuildPlanPrompt(persona string, answersJSON string, hoursPerDay int, includeWeekends bool, context string) string {
	return fmt.Sprintf(`You are designing a role-based, response-aware UiPath training plan.
Persona: %s
Assessment Answers (JSON): %s
Daily hours available: %d
Include weekends: %t

Context from retriever (optional, may be empty):
%s

Return STRICT JSON only with this schema:
{
  "planSummary": string,
  "recommendedTrainings": [
    { "title": string, "duration": number, "rationale": string }
  ]
}

Rules:
- Optimize the list for the persona: Sales/Pre-Sales should emphasize discovery, demos, objections, value. Limit deep technical content.
- Technical Architect should emphasize REFramework, Orchestrator, CI/CD, AI Center, security and scale.
- Leadership should emphasize strategy and operating model, CoE, governance/risk/compliance, stakeholder alignment, and value realization.
- Delivery/Project Manager should emphasize agile delivery practices, backlog and estimation, risk/dependency management, testing and release/change management, and KPI reporting.
- 5-8 items. Duration estimates in hours, realistic for self-paced learning. Sum of durations should be feasible given hoursPerDay; stagger heavier items accordingly.
- Use UiPath terminology and neutral language. No marketing fluff.
- JSON only, no code fences.`,
		persona, Truncate(answersJSON, 6000), hoursPerDay, includeWeekends, context)
}
