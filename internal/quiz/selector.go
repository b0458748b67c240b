package quiz

import (
	"math/rand"

	"spellbound/internal/models"
)

// DefaultWordCount is the number of words drawn per session unless
// configured otherwise.
const DefaultWordCount = 10

// Select draws up to targetCount words from the pool for the given criteria.
// The pool is filtered by difficulty first; if the filtered pool holds fewer
// than targetCount words the filter is discarded and the full pool is used,
// even when the filtered pool is non-empty. The chosen pool is shuffled
// uniformly and truncated. An empty result is a valid outcome (empty catalog
// or no categories selected), not an error.
func Select(pool []models.WordRecord, criteria models.Criteria, targetCount int) []models.WordRecord {
	chosen := pool
	if criteria.Difficulty != "" && criteria.Difficulty != models.DifficultyAny {
		filtered := make([]models.WordRecord, 0, len(pool))
		for _, w := range pool {
			if w.Level == criteria.Difficulty {
				filtered = append(filtered, w)
			}
		}
		if len(filtered) >= targetCount {
			chosen = filtered
		}
	}

	shuffled := make([]models.WordRecord, len(chosen))
	copy(shuffled, chosen)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > targetCount {
		shuffled = shuffled[:targetCount]
	}
	return shuffled
}
