package portal

// Per-persona answer keys for the multiple-choice questions, keyed by
// question ID. A scorecard is only defined for personas present here.

var leadershipAnswerKey = map[string]string{
	"leadership-1": "C",
	"leadership-2": "B",
	"leadership-3": "B",
	"leadership-4": "C",
	"leadership-5": "B",
	"leadership-6": "B",
	"leadership-7": "B",
	"leadership-8": "B",
}

var saDevAnswerKey = map[string]string{
	"sadev-1": "B",
	"sadev-2": "B",
	"sadev-3": "B",
	"sadev-4": "B",
	"sadev-5": "B",
	"sadev-6": "B",
	"sadev-7": "B",
}

var salesBdAnswerKey = map[string]string{
	"sales-1": "B",
	"sales-2": "B",
	"sales-3": "B",
	"sales-4": "B",
	"sales-5": "B",
	"sales-6": "B",
	"sales-7": "B",
}

var deliveryPmAnswerKey = map[string]string{
	"delivery-1": "B",
	"delivery-2": "B",
	"delivery-3": "B",
	"delivery-4": "B",
	"delivery-5": "B",
	"delivery-6": "B",
	"delivery-7": "B",
	"delivery-8": "B",
	"delivery-9": "B",
}

var answerKeys = map[string]map[string]string{
	PersonaLeadership:         leadershipAnswerKey,
	PersonaArchitectDeveloper: saDevAnswerKey,
	PersonaSales:              salesBdAnswerKey,
	PersonaDelivery:           deliveryPmAnswerKey,

	"CxO / Practice Lead": leadershipAnswerKey,
	"Sales / Pre-Sales":   salesBdAnswerKey,
	"Technical Architect": saDevAnswerKey,
}

// AnswerKeyForPersona returns the answer key for a persona label, or false
// when no key is defined and no scorecard should be produced.
func AnswerKeyForPersona(persona string) (map[string]string, bool) {
	key, ok := answerKeys[persona]
	return key, ok
}
