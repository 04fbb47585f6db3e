package portal

import (
	"math"
	"regexp"
	"strings"
)

// Scoring is pure and deterministic: no I/O, identical inputs always
// produce identical scorecards.

type ScorecardItem struct {
	QuestionID    string `json:"questionId"`
	Question      string `json:"question"`
	YourAnswer    string `json:"yourAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
}

type Scorecard struct {
	Total     int             `json:"total"`
	Correct   int             `json:"correct"`
	Percent   int             `json:"percent"`
	Breakdown []ScorecardItem `json:"breakdown"`
}

var leadingLetterRe = regexp.MustCompile(`^\s*([A-Da-d])\)`)

// normalizeQuestionKey lowercases and strips everything non-alphanumeric so
// minor formatting drift between rendered question text and stored answer
// keys still matches.
func normalizeQuestionKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// lookupAnswer finds the stored raw answer for a question, trying the
// question ID, the exact question text, and finally a normalized-text
// match. Legacy submissions keyed answers by question text.
func lookupAnswer(q Question, answers map[string]string) (string, bool) {
	if raw, ok := answers[q.ID]; ok {
		return raw, true
	}
	if raw, ok := answers[q.Question]; ok {
		return raw, true
	}
	want := normalizeQuestionKey(q.Question)
	for key, raw := range answers {
		if normalizeQuestionKey(key) == want {
			return raw, true
		}
	}
	return "", false
}

// ExtractLetter canonicalizes a raw answer to a letter A-D. Rules tried in
// order: a leading "X)" prefix, a bare single letter, or an exact match
// against one of the question's option strings (position maps to letter,
// first four options only). Returns false when no rule matches.
func ExtractLetter(raw string, options []string) (string, bool) {
	trimmed := strings.TrimSpace(raw)

	if m := leadingLetterRe.FindStringSubmatch(trimmed); m != nil {
		return strings.ToUpper(m[1]), true
	}

	if len(trimmed) == 1 {
		upper := strings.ToUpper(trimmed)
		if upper >= "A" && upper <= "D" {
			return upper, true
		}
	}

	for i, option := range options {
		if i >= 4 {
			break
		}
		if trimmed == strings.TrimSpace(option) {
			return string(rune('A' + i)), true
		}
	}

	return "", false
}

// optionForLetter returns the option string carrying the given letter
// prefix, so the scorecard can report the full correct answer text.
func optionForLetter(q Question, letter string) string {
	for _, option := range q.Options {
		if m := leadingLetterRe.FindStringSubmatch(option); m != nil && strings.ToUpper(m[1]) == letter {
			return strings.TrimSpace(option)
		}
	}
	return letter
}

// ScoreAssessment grades a stored answer map against a persona's question
// bank and answer key. Only questions present in the key count toward the
// total. Answers no rule can canonicalize are ungraded and count as
// incorrect, with the correct answer still reported.
func ScoreAssessment(questions []Question, answerKey map[string]string, answers map[string]string) Scorecard {
	card := Scorecard{Breakdown: []ScorecardItem{}}

	for _, q := range questions {
		correctLetter, ok := answerKey[q.ID]
		if !ok {
			continue
		}
		card.Total++

		item := ScorecardItem{
			QuestionID:    q.ID,
			Question:      q.Question,
			CorrectAnswer: optionForLetter(q, correctLetter),
		}

		raw, found := lookupAnswer(q, answers)
		if found {
			item.YourAnswer = raw
			if letter, ok := ExtractLetter(raw, q.Options); ok && letter == correctLetter {
				item.Correct = true
				card.Correct++
			}
		}

		card.Breakdown = append(card.Breakdown, item)
	}

	if card.Total > 0 {
		card.Percent = int(math.Round(100 * float64(card.Correct) / float64(card.Total)))
	}

	return card
}
