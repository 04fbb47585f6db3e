package portal

// Role-based assessment question bank, four personas. Questions carry
// stable IDs; answer maps and answer keys join on the ID, question text is
// display-only.

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeText           QuestionType = "text"
)

type Question struct {
	ID       string       `json:"id"`
	Question string       `json:"question"`
	Type     QuestionType `json:"type"`
	Options  []string     `json:"options,omitempty"`
}

const (
	PersonaLeadership         = "Leadership (CEO, CTO, Practice Lead, Head of Alliances)"
	PersonaArchitectDeveloper = "Solution Architect/ Developers"
	PersonaSales              = "Sales/ Presales/ Business Development"
	PersonaDelivery           = "Delivery / Project Manager"
)

var leadershipQuestions = []Question{
	{
		ID:       "leadership-1",
		Question: "Scenario: Your organization is considering a significant investment in a new Agentic Automation practice. A key client asks, “How will Agentic Automation fundamentally change our business operations and competitive landscape over the next 3–5 years, beyond just cost savings?” How would you respond?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Focus on immediate cost reduction and efficiency gains through task automation.",
			"B) Explain the technical capabilities of Agentic Automation and its integration with existing systems.",
			"C) Describe how Agentic Automation enables new business models, enhances decision-making with AI, and creates a more adaptive enterprise, citing specific industry examples.",
			"D) Refer them to a technical expert within your team for a detailed explanation.",
		},
	},
	{
		ID:       "leadership-2",
		Question: "Scenario: A competitor is pitching to one of your top accounts, claiming their AI automation platform is “more future-ready” than UiPath. How do you respond?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Emphasize UiPath’s current market share and customer base.",
			"B) Highlight UiPath’s AI roadmap, ecosystem partnerships, and proven enterprise results with measurable ROI.",
			"C) Offer a discount to retain the client.",
			"D) Avoid direct comparison and focus on your company’s internal strengths.",
		},
	},
	{
		ID:       "leadership-3",
		Question: "How would you ensure your team can deliver multiple large Agentic Automation projects at the same time?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Hire contractors for each project.",
			"B) Build a certified internal talent pool, cross-train staff, and use UiPath partner resources when needed.",
			"C) Limit the number of projects to match current staff capacity.",
			"D) Outsource all delivery to third parties.",
		},
	},
	{
		ID:       "leadership-4",
		Question: "Which is the most strategic way to measure the success of your Agentic Automation practice?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Number of bots deployed.",
			"B) Hours saved in operations.",
			"C) Business outcomes achieved (e.g., revenue growth, faster time-to-market) and client satisfaction.",
			"D) Number of certifications completed.",
		},
	},
	{
		ID:       "leadership-5",
		Question: "Scenario: Some senior managers believe Agentic Automation will disrupt existing revenue streams from traditional RPA. How do you address this?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Avoid the topic to prevent conflict.",
			"B) Show how Agentic Automation can expand offerings, open new markets, and increase client lifetime value.",
			"C) Reassure them that RPA will remain unchanged.",
			"D) Delay Agentic Automation adoption until RPA demand drops.",
		},
	},
	{
		ID:       "leadership-6",
		Question: "When presenting to an industry audience, what’s the most effective way to position UiPath’s Agentic Automation?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Focus on technical specifications.",
			"B) Share client success stories with measurable business impact and industry relevance.",
			"C) Use generic AI trends without specifics.",
			"D) Talk about your company’s history in automation.",
		},
	},
	{
		ID:       "leadership-7",
		Question: "If your team requests a large budget for UiPath training and certifications, what’s the best approach?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Approve without review.",
			"B) Ask for a clear ROI projection linked to business goals and client demand.",
			"C) Reduce the budget to save costs.",
			"D) Delay decision until next fiscal year.",
		},
	},
	{
		ID:       "leadership-8",
		Question: "Scenario: You are co-presenting with UiPath’s CEO at a global conference. What’s the best way to prepare?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Memorize technical details of UiPath’s platform.",
			"B) Align on key strategic messages, industry examples, and your joint vision for the market.",
			"C) Prepare a generic company overview.",
			"D) Let UiPath lead and speak only if asked.",
		},
	},
	{
		ID:       "leadership-9",
		Question: "What other strategic or operational challenges do you foresee in scaling Agentic Automation in your organization?",
		Type:     QuestionTypeText,
	},
}

var saDevQuestions = []Question{
	{
		ID:       "sadev-1",
		Question: "Scenario: A client wants to process large volumes of unstructured documents using UiPath. What’s your best first step?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Recommend immediate full deployment.",
			"B) Build a proof-of-concept using UiPath Document Understanding to validate accuracy and performance.",
			"C) Ask the client to handle document processing manually first.",
			"D) Use only OCR tools without UiPath capabilities.",
		},
	},
	{
		ID:       "sadev-2",
		Question: "Scenario: You’ve developed an industry-specific accelerator. How do you ensure it stays aligned with UiPath’s product roadmap?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Assume your design will remain relevant for years.",
			"B) Regularly review UiPath release notes, join partner tech sessions, and adjust the accelerator accordingly.",
			"C) Wait until a client requests a change.",
			"D) Stop updating once the first version works.",
		},
	},
	{
		ID:       "sadev-3",
		Question: "A client fears your UiPath solution won’t scale globally. How do you address this?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Reassure them without evidence.",
			"B) Present architecture diagrams, load testing results, and examples of similar global deployments.",
			"C) Suggest limiting usage to one location.",
			"D) Avoid the question.",
		},
	},
	{
		ID:       "sadev-4",
		Question: "When a developer suggests skipping UiPath best practices to meet a deadline, you:",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Approve if it speeds delivery.",
			"B) Explain risks of technical debt and find a compromise that meets timelines without skipping standards.",
			"C) Ignore the suggestion.",
			"D) Cancel the project.",
		},
	},
	{
		ID:       "sadev-5",
		Question: "How do you prepare your team for integrating UiPath with AI/ML and cloud systems?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Let them learn on the job.",
			"B) Enroll them in UiPath advanced AI/ML integration training and set up internal labs.",
			"C) Outsource all AI/ML components.",
			"D) Avoid AI/ML features.",
		},
	},
	{
		ID:       "sadev-6",
		Question: "Scenario: You’re asked to present technical progress to a client’s C-suite. How do you prepare?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Dive into every technical detail possible.",
			"B) Focus on how technical progress supports business outcomes, using simple visuals.",
			"C) Let your PM handle it without your input.",
			"D) Send a written report instead.",
		},
	},
	{
		ID:       "sadev-7",
		Question: "A bot’s performance drops after go-live. You:",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Restart the bot and hope it fixes itself.",
			"B) Investigate root cause, check logs, optimize code, and adjust resources.",
			"C) Wait for the client to complain again.",
			"D) Replace the bot entirely.",
		},
	},
	{
		ID:       "sadev-8",
		Question: "What technical challenges or opportunities do you think UiPath should address to better support your solutions?",
		Type:     QuestionTypeText,
	},
}

var salesBdQuestions = []Question{
	{
		ID:       "sales-1",
		Question: "Scenario: A client says, “We’ve already tried RPA. Why bother with Agentic Automation?”",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Explain it’s just a newer version of RPA.",
			"B) Show how Agentic Automation combines AI, decision-making, and adaptability to deliver business transformation beyond RPA.",
			"C) Offer a discount.",
			"D) Tell them to trust UiPath’s brand.",
		},
	},
	{
		ID:       "sales-2",
		Question: "A client doubts the ROI. You:",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Ignore the objection.",
			"B) Use industry case studies and ROI calculators to demonstrate measurable benefits.",
			"C) Say savings will come “eventually.”",
			"D) Drop the topic.",
		},
	},
	{
		ID:       "sales-3",
		Question: "Scenario: Your pipeline is weak. How do you find strong Agentic Automation prospects?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Target everyone in your network.",
			"B) Use ICP profiles, look for industries with high process complexity, and partner with UiPath for warm introductions.",
			"C) Wait for inbound leads only.",
			"D) Contact only existing RPA clients.",
		},
	},
	{
		ID:       "sales-4",
		Question: "When facing a direct competitor in a deal:",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Criticize their weaknesses without proof.",
			"B) Highlight UiPath’s proven deployments, AI roadmap, and co-innovation track record.",
			"C) Ignore the competition.",
			"D) Offer lower prices.",
		},
	},
	{
		ID:       "sales-5",
		Question: "You’ve been assigned to sell AI-heavy solutions but lack experience.",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Avoid AI-heavy deals.",
			"B) Complete UiPath’s advanced technical sales training and shadow experienced sellers.",
			"C) Guess and hope for the best.",
			"D) Ask a tech colleague to handle all AI deals alone.",
		},
	},
	{
		ID:       "sales-6",
		Question: "Scenario: You need C-suite access in a strategic account.",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Call reception and ask for the CEO.",
			"B) Work with UiPath’s alliance manager and leverage joint success stories for an introduction.",
			"C) Send a cold LinkedIn message.",
			"D) Skip executive contact.",
		},
	},
	{
		ID:       "sales-7",
		Question: "Your delivery team prefers old RPA approaches.",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Ignore them.",
			"B) Show how Agentic Automation can open bigger deals and longer-term contracts.",
			"C) Force them to use the new approach without explanation.",
			"D) Delay the transition.",
		},
	},
	{
		ID:       "sales-8",
		Question: "What customer objections or deal blockers do you encounter most often when selling Agentic Automation?",
		Type:     QuestionTypeText,
	},
}

var deliveryPmQuestions = []Question{
	{
		ID:       "delivery-1",
		Question: "Scenario: Midway through deployment, an autonomous UiPath Agent identifies a new process variant with high ROI potential.",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Approve immediate integration without review.",
			"B) Run an impact and ROI assessment, adjust backlog/priorities, and formally agree changes with the client.",
			"C) Ignore until post–go-live.",
			"D) Ask dev team to handle quietly.",
		},
	},
	{
		ID:       "delivery-2",
		Question: "When managing a program with multiple autonomous agents handling different processes:",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Let them run independently with no orchestration.",
			"B) Use UiPath Orchestrator & Communications Mining to coordinate workflows, prevent conflicts, and balance load.",
			"C) Merge all into one bot for simplicity.",
			"D) Disable inter-agent communication.",
		},
	},
	{
		ID:       "delivery-3",
		Question: "How do you explain Agentic Automation value to business leaders?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Talk only about AI algorithms.",
			"B) Show clear metrics: cycle time reduction, autonomous task completion %, and reduced human intervention hours.",
			"C) Present raw technical logs.",
			"D) Avoid talking about AI specifics.",
		},
	},
	{
		ID:       "delivery-4",
		Question: "When an autonomous agent starts making incorrect decisions:",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Switch it off permanently.",
			"B) Use UiPath Test Suite and governance controls to identify the root cause and retrain or update agent logic.",
			"C) Leave it running for now.",
			"D) Roll back to manual processing only.",
		},
	},
	{
		ID:       "delivery-5",
		Question: "Your Agentic Automation rollout is part of a wider digital transformation.",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Keep it siloed to avoid complexity.",
			"B) Integrate with ERP/CRM systems and ensure alignment of agents’ actions with other transformation streams.",
			"C) Limit integration to back-office only.",
			"D) Delay until other streams finish.",
		},
	},
	{
		ID:       "delivery-6",
		Question: "If your project needs AI-specialist input mid-stream:",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Ignore and continue.",
			"B) Reallocate talent and request support from UiPath’s AI Center–trained partner network.",
			"C) Wait for post–go-live fixes.",
			"D) Pause until you can hire.",
		},
	},
	{
		ID:       "delivery-7",
		Question: "Post–go-live, your autonomous agents are stable. What’s next?",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Stop monitoring.",
			"B) Set up continuous performance tracking and feedback loops to improve agent decision-making over time.",
			"C) Freeze configurations permanently.",
			"D) Replace with new bots.",
		},
	},
	{
		ID:       "delivery-8",
		Question: "When delivery teams are hesitant about AI-led work allocation:",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Force adoption immediately.",
			"B) Showcase examples of human–AI collaboration from similar UiPath deployments to build confidence.",
			"C) Avoid the topic.",
			"D) Remove AI components.",
		},
	},
	{
		ID:       "delivery-9",
		Question: "Scenario: Client complains that autonomous agents aren’t prioritizing tasks as expected.",
		Type:     QuestionTypeMultipleChoice,
		Options: []string{
			"A) Ignore until SLA breach.",
			"B) Review agent prioritization logic, adjust AI models, and get client sign-off on updated rules.",
			"C) Remove prioritization logic.",
			"D) Blame client’s data quality.",
		},
	},
	{
		ID:       "delivery-10",
		Question: "What delivery risks or adoption barriers do you see when introducing autonomous agents into existing workflows?",
		Type:     QuestionTypeText,
	},
}

// assessmentQuestions maps persona labels to their question banks. The last
// three keys are legacy labels kept for profiles created before the persona
// names were consolidated.
var assessmentQuestions = map[string][]Question{
	PersonaLeadership:         leadershipQuestions,
	PersonaArchitectDeveloper: saDevQuestions,
	PersonaSales:              salesBdQuestions,
	PersonaDelivery:           deliveryPmQuestions,

	"CxO / Practice Lead": leadershipQuestions,
	"Sales / Pre-Sales":   salesBdQuestions,
	"Technical Architect": saDevQuestions,
}

// QuestionsForPersona returns the ordered question bank for a persona
// label, or false when the label is unknown.
func QuestionsForPersona(persona string) ([]Question, bool) {
	questions, ok := assessmentQuestions[persona]
	return questions, ok
}

// Personas returns the canonical persona labels in display order.
func Personas() []string {
	return []string{
		PersonaLeadership,
		PersonaArchitectDeveloper,
		PersonaSales,
		PersonaDelivery,
	}
}
