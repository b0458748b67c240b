package quiz

import (
	"testing"

	"spellbound/internal/models"
)

func wordPool(levels map[string]int) []models.WordRecord {
	var pool []models.WordRecord
	for level, count := range levels {
		for i := 0; i < count; i++ {
			pool = append(pool, models.WordRecord{
				Word:  level + string(rune('a'+i)),
				Level: level,
			})
		}
	}
	return pool
}

func TestSelectSize(t *testing.T) {
	tests := []struct {
		name        string
		poolSize    int
		targetCount int
		want        int
	}{
		{
			name:        "pool larger than target",
			poolSize:    25,
			targetCount: 10,
			want:        10,
		},
		{
			name:        "pool smaller than target",
			poolSize:    4,
			targetCount: 10,
			want:        4,
		},
		{
			name:        "empty pool",
			poolSize:    0,
			targetCount: 10,
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := wordPool(map[string]int{models.LevelEasy: tt.poolSize})
			criteria := models.Criteria{Difficulty: models.DifficultyAny}

			got := Select(pool, criteria, tt.targetCount)
			if len(got) != tt.want {
				t.Errorf("len(Select()) = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSelectFiltersByDifficulty(t *testing.T) {
	pool := wordPool(map[string]int{models.LevelHard: 12, models.LevelEasy: 5})
	criteria := models.Criteria{Difficulty: models.LevelHard}

	got := Select(pool, criteria, 10)
	if len(got) != 10 {
		t.Fatalf("len(Select()) = %d, want 10", len(got))
	}
	for _, w := range got {
		if w.Level != models.LevelHard {
			t.Errorf("word %q has level %q, want %q", w.Word, w.Level, models.LevelHard)
		}
	}
}

func TestSelectFallbackWhenFilteredPoolTooSmall(t *testing.T) {
	// The filtered pool is non-empty but smaller than the target, so the
	// filter is discarded and easy words can appear too.
	pool := wordPool(map[string]int{models.LevelHard: 3, models.LevelEasy: 20})
	criteria := models.Criteria{Difficulty: models.LevelHard}

	got := Select(pool, criteria, 10)
	if len(got) != 10 {
		t.Fatalf("len(Select()) = %d, want 10", len(got))
	}
	// 10 draws from a pool with only 3 hard words must include other levels
	sawOtherLevel := false
	for _, w := range got {
		if w.Level != models.LevelHard {
			sawOtherLevel = true
		}
	}
	if !sawOtherLevel {
		t.Error("expected fallback to draw from the unfiltered pool")
	}
}

func TestSelectFallbackWhenFilteredPoolEmpty(t *testing.T) {
	pool := []models.WordRecord{
		{Word: "cat", Level: models.LevelEasy},
		{Word: "dog", Level: models.LevelEasy},
	}
	criteria := models.Criteria{Difficulty: models.LevelHard}

	got := Select(pool, criteria, 10)
	if len(got) != 2 {
		t.Fatalf("len(Select()) = %d, want 2", len(got))
	}

	words := map[string]bool{}
	for _, w := range got {
		words[w.Word] = true
	}
	if !words["cat"] || !words["dog"] {
		t.Errorf("result %v is not a permutation of {cat, dog}", got)
	}
}

func TestSelectDoesNotMutatePool(t *testing.T) {
	pool := wordPool(map[string]int{models.LevelEasy: 8})
	first := pool[0]

	Select(pool, models.Criteria{Difficulty: models.DifficultyAny}, 5)

	if pool[0] != first {
		t.Error("Select shuffled the caller's pool in place")
	}
}
