package models

// Difficulty levels for catalog words
const (
	LevelEasy   = "easy"
	LevelMedium = "medium"
	LevelHard   = "hard"
)

// DifficultyAny disables difficulty filtering when selecting quiz words
const DifficultyAny = "any"

// WordRecord is a catalog word normalized to the canonical shape.
// Immutable once normalized.
type WordRecord struct {
	Word         string `json:"word"`
	Meaning      string `json:"meaning"`
	PartOfSpeech string `json:"partOfSpeech"`
	Level        string `json:"level"`
}

// Category is one entry of the catalog's category directory
type Category struct {
	Slug        string `json:"category_slug"`
	Name        string `json:"category"`
	AgeGroup    string `json:"age_group"`
	Description string `json:"description"`
}
