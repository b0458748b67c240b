package history

import (
	"math"
	"sort"

	"spellbound/internal/models"
)

// topCategoryCount caps how many categories the rollup reports
const topCategoryCount = 3

// Aggregate computes rollup statistics from a history sequence. Pure
// function, no side effects; recomputed on demand and never persisted.
func Aggregate(entries []models.HistoryEntry) models.HistoricalStats {
	stats := models.HistoricalStats{
		TopCategories: []models.CategoryCount{},
	}
	if len(entries) == 0 {
		return stats
	}

	stats.TotalSessions = len(entries)
	for _, h := range entries {
		stats.TotalWords += h.Total
		stats.TotalCorrect += h.Score
	}
	if stats.TotalWords > 0 {
		stats.AvgPercent = int(math.Round(float64(stats.TotalCorrect) / float64(stats.TotalWords) * 100))
	}

	// Best session by score/total ratio. A strictly-greater scan keeps the
	// earliest maximal entry; zero-total entries have no defined accuracy
	// and are skipped.
	bestRatio := -1.0
	for i := range entries {
		h := entries[i]
		if h.Total == 0 {
			continue
		}
		if ratio := float64(h.Score) / float64(h.Total); ratio > bestRatio {
			bestRatio = ratio
			best := h
			stats.BestSession = &best
		}
	}

	stats.TopCategories = topCategories(entries)
	return stats
}

// topCategories counts, for each category, the sessions whose criteria
// included it (once per entry per distinct category). Categories are tracked
// in first-appearance order so the stable sort breaks count ties by
// insertion order.
func topCategories(entries []models.HistoryEntry) []models.CategoryCount {
	counts := make(map[string]int)
	var order []string
	for _, h := range entries {
		seen := make(map[string]bool)
		for _, category := range h.Criteria.Categories {
			if seen[category] {
				continue
			}
			seen[category] = true
			if _, ok := counts[category]; !ok {
				order = append(order, category)
			}
			counts[category]++
		}
	}

	top := make([]models.CategoryCount, 0, len(order))
	for _, category := range order {
		top = append(top, models.CategoryCount{Category: category, Count: counts[category]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > topCategoryCount {
		top = top[:topCategoryCount]
	}
	return top
}

// NewestFirst returns a copy of the history sorted by completion time,
// newest first, for display.
func NewestFirst(entries []models.HistoryEntry) []models.HistoryEntry {
	sorted := append([]models.HistoryEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompletedAt > sorted[j].CompletedAt
	})
	return sorted
}
