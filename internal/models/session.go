package models

import "math"

// Criteria is the quiz configuration chosen on setup. It is created once per
// quiz and stays immutable for the session's lifetime.
type Criteria struct {
	AgeGroup   string   `json:"ageGroup"`
	Difficulty string   `json:"difficulty"`
	Categories []string `json:"categories"`
	TS         int64    `json:"ts"` // unix milliseconds
}

// Attempt is one graded submission for one word. Never mutated after creation.
type Attempt struct {
	Word            string `json:"word"`
	UserSpelling    string `json:"userSpelling"`
	CorrectSpelling string `json:"correctSpelling"`
	Correct         bool   `json:"correct"`
	Meaning         string `json:"meaning"`
	PartOfSpeech    string `json:"partOfSpeech"`
}

// Session is one completed quiz run with its full attempt log. Created
// exactly once at completion, immutable thereafter. Only the most recent
// session is kept in full; history carries summaries.
type Session struct {
	ID          string    `json:"id"`
	Criteria    Criteria  `json:"criteria"`
	Attempts    []Attempt `json:"attempts"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	CompletedAt int64     `json:"completedAt"` // unix milliseconds
}

// Percent returns the session score as a rounded percentage.
func (s *Session) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Score) / float64(s.Total) * 100))
}

// HistoryEntry is the durable summary projection of a Session. Entries are
// append-only; only a full store wipe removes them.
type HistoryEntry struct {
	ID          string   `json:"id"`
	Score       int      `json:"score"`
	Total       int      `json:"total"`
	Criteria    Criteria `json:"criteria"`
	CompletedAt int64    `json:"completedAt"`
}

// CategoryCount pairs a category name with how many sessions used it
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// HistoricalStats is derived from the history sequence on demand and never
// persisted directly.
type HistoricalStats struct {
	TotalSessions int             `json:"totalSessions"`
	TotalWords    int             `json:"totalWords"`
	TotalCorrect  int             `json:"totalCorrect"`
	AvgPercent    int             `json:"avgPercent"`
	BestSession   *HistoryEntry   `json:"bestSession"`
	TopCategories []CategoryCount `json:"topCategories"`
}
