package portal

import "testing"

func TestExtractLetterPrefixed(t *testing.T) {
	letter, ok := ExtractLetter("B) Explain risks of technical debt and find a compromise.", nil)
	if !ok || letter != "B" {
		t.Fatalf("expected B, got %q (ok=%v)", letter, ok)
	}
}

func TestExtractLetterBare(t *testing.T) {
	for _, raw := range []string{"B", "b", " b "} {
		letter, ok := ExtractLetter(raw, nil)
		if !ok || letter != "B" {
			t.Fatalf("raw %q: expected B, got %q (ok=%v)", raw, letter, ok)
		}
	}
}

func TestExtractLetterIdempotent(t *testing.T) {
	letter, ok := ExtractLetter("B", nil)
	if !ok {
		t.Fatal("expected a letter")
	}
	again, ok := ExtractLetter(letter, nil)
	if !ok || again != letter {
		t.Fatalf("re-normalizing %q gave %q", letter, again)
	}
}

func TestExtractLetterOptionMatch(t *testing.T) {
	options := []string{
		"A) First option.",
		"B) Second option.",
		"C) Third option.",
		"D) Fourth option.",
	}
	letter, ok := ExtractLetter("C) Third option.", options)
	if !ok || letter != "C" {
		t.Fatalf("expected C, got %q (ok=%v)", letter, ok)
	}
}

func TestExtractLetterUnmatched(t *testing.T) {
	if letter, ok := ExtractLetter("something free-form", nil); ok {
		t.Fatalf("expected no match, got %q", letter)
	}
}

func TestScoreAssessmentCorrectAndIncorrect(t *testing.T) {
	questions := []Question{
		{
			ID:       "q-1",
			Question: "When a developer suggests skipping best practices to meet a deadline, you:",
			Type:     QuestionTypeMultipleChoice,
			Options: []string{
				"A) Approve if it speeds delivery.",
				"B) Explain risks of technical debt and find a compromise.",
				"C) Ignore the suggestion.",
				"D) Cancel the project.",
			},
		},
	}
	answers := map[string]string{"q-1": "B) Explain risks of technical debt and find a compromise."}

	card := ScoreAssessment(questions, map[string]string{"q-1": "B"}, answers)
	if card.Total != 1 || card.Correct != 1 || card.Percent != 100 {
		t.Fatalf("expected full marks, got %+v", card)
	}

	card = ScoreAssessment(questions, map[string]string{"q-1": "C"}, answers)
	if card.Correct != 0 || card.Percent != 0 {
		t.Fatalf("expected zero marks, got %+v", card)
	}
	if card.Breakdown[0].CorrectAnswer != "C) Ignore the suggestion." {
		t.Fatalf("expected the C-prefixed option reported, got %q", card.Breakdown[0].CorrectAnswer)
	}
}

func TestScoreAssessmentZeroTotal(t *testing.T) {
	questions := []Question{{ID: "q-1", Question: "Free text only", Type: QuestionTypeText}}
	card := ScoreAssessment(questions, map[string]string{}, map[string]string{"q-1": "anything"})
	if card.Total != 0 || card.Percent != 0 {
		t.Fatalf("expected zero total and percent, got %+v", card)
	}
}

func TestScoreAssessmentPercentBounds(t *testing.T) {
	for _, persona := range Personas() {
		questions, _ := QuestionsForPersona(persona)
		key, ok := AnswerKeyForPersona(persona)
		if !ok {
			t.Fatalf("persona %q has no answer key", persona)
		}

		answers := map[string]string{}
		for id, letter := range key {
			answers[id] = letter
		}
		card := ScoreAssessment(questions, key, answers)
		if card.Percent != 100 {
			t.Fatalf("persona %q: all-correct should be 100, got %d", persona, card.Percent)
		}

		card = ScoreAssessment(questions, key, map[string]string{})
		if card.Percent < 0 || card.Percent > 100 {
			t.Fatalf("persona %q: percent out of bounds: %d", persona, card.Percent)
		}
	}
}

func TestScoreAssessmentLegacyTextKeys(t *testing.T) {
	questions, _ := QuestionsForPersona(PersonaArchitectDeveloper)
	key, _ := AnswerKeyForPersona(PersonaArchitectDeveloper)

	// Older submissions keyed answers by full question text.
	answers := map[string]string{questions[0].Question: "B"}
	card := ScoreAssessment(questions, key, answers)
	if card.Correct != 1 {
		t.Fatalf("expected text-keyed answer to grade, got %+v", card)
	}

	// Text with formatting drift still matches after normalization.
	answers = map[string]string{"  " + questions[0].Question + "!!": "B"}
	card = ScoreAssessment(questions, key, answers)
	if card.Correct != 1 {
		t.Fatalf("expected normalized text match to grade, got %+v", card)
	}
}

func TestScoreAssessmentDeterministic(t *testing.T) {
	questions, _ := QuestionsForPersona(PersonaDelivery)
	key, _ := AnswerKeyForPersona(PersonaDelivery)
	answers := map[string]string{"delivery-1": "B", "delivery-2": "A", "delivery-3": "garbage"}

	first := ScoreAssessment(questions, key, answers)
	second := ScoreAssessment(questions, key, answers)
	if first.Correct != second.Correct || first.Percent != second.Percent || len(first.Breakdown) != len(second.Breakdown) {
		t.Fatalf("scoring not deterministic: %+v vs %+v", first, second)
	}
}
