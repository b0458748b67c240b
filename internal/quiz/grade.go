package quiz

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// closeDistance is the largest edit distance still reported as a near miss
const closeDistance = 2

// Feedback describes the outcome of grading one submission
type Feedback struct {
	Correct         bool   `json:"correct"`
	CorrectSpelling string `json:"correctSpelling"`
	Distance        int    `json:"distance"`
	Close           bool   `json:"close"`
}

// Grade compares a submitted spelling against the correct one. Comparison is
// case-insensitive after trimming surrounding whitespace. Grading is pure
// and deterministic; the edit distance only feeds the feedback hint and
// never affects correctness.
func Grade(submitted, correct string) Feedback {
	normalizedAnswer := strings.ToLower(strings.TrimSpace(submitted))
	normalizedCorrect := strings.ToLower(strings.TrimSpace(correct))

	distance := levenshtein.ComputeDistance(normalizedAnswer, normalizedCorrect)
	return Feedback{
		Correct:         normalizedAnswer == normalizedCorrect,
		CorrectSpelling: correct,
		Distance:        distance,
		Close:           distance > 0 && distance <= closeDistance,
	}
}
