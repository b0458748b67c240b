package models

import (
	"encoding/json"
	"testing"
)

func TestSessionPercent(t *testing.T) {
	tests := []struct {
		name  string
		score int
		total int
		want  int
	}{
		{
			name:  "perfect score",
			score: 10,
			total: 10,
			want:  100,
		},
		{
			name:  "rounds up",
			score: 2,
			total: 3,
			want:  67,
		},
		{
			name:  "rounds down",
			score: 1,
			total: 3,
			want:  33,
		},
		{
			name:  "zero total",
			score: 0,
			total: 0,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{Score: tt.score, Total: tt.total}
			if got := session.Percent(); got != tt.want {
				t.Errorf("Session.Percent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategoryJSONFieldNames(t *testing.T) {
	// The directory resource uses snake_case field names, including
	// category_slug; make sure decoding stays wired to them.
	raw := `{"category_slug":"animals","category":"Animals","age_group":"6-8","description":"Pets and wildlife"}`

	var category Category
	if err := json.Unmarshal([]byte(raw), &category); err != nil {
		t.Fatalf("unmarshal category: %v", err)
	}
	if category.Slug != "animals" {
		t.Errorf("Slug = %q, want %q", category.Slug, "animals")
	}
	if category.AgeGroup != "6-8" {
		t.Errorf("AgeGroup = %q, want %q", category.AgeGroup, "6-8")
	}
}
