package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"spellbound/internal/models"
)

const fetchTimeout = 10 * time.Second

// FetchError reports a failed catalog resource fetch. Any single failure
// aborts the whole load; callers never receive a partial pool.
type FetchError struct {
	Resource string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch catalog resource %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("unexpected status code %d for catalog resource %s", e.Status, e.Resource)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// fieldAliases maps each canonical WordRecord field to the raw catalog field
// names that may carry it, tried in priority order. The canonical source
// name for part of speech is "part_of_speech"; some older lists carry the
// camel-cased variant.
var fieldAliases = map[string][]string{
	"word":         {"word"},
	"meaning":      {"meaning"},
	"partOfSpeech": {"part_of_speech", "partOfSpeech"},
	"level":        {"level"},
}

// fieldDefaults fills canonical fields absent from a raw entry
var fieldDefaults = map[string]string{
	"meaning":      "",
	"partOfSpeech": "",
	"level":        models.LevelEasy,
}

// Loader fetches the category directory and per-category word lists from a
// static catalog served over HTTP.
type Loader struct {
	baseURL string
	client  *http.Client
}

// NewLoader creates a loader rooted at baseURL, the directory holding
// categories.json and the words/ subdirectory. A nil client gets a default
// with a request timeout.
func NewLoader(baseURL string, client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &Loader{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// Categories fetches the category directory
func (l *Loader) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := l.fetchJSON(ctx, "categories.json", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// AgeGroups returns the distinct age groups of the directory, sorted
func AgeGroups(categories []models.Category) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, c := range categories {
		if c.AgeGroup == "" || seen[c.AgeGroup] {
			continue
		}
		seen[c.AgeGroup] = true
		groups = append(groups, c.AgeGroup)
	}
	sort.Strings(groups)
	return groups
}

// ForAgeGroup filters the directory to categories of one age group. An empty
// age group returns the full directory.
func ForAgeGroup(categories []models.Category, ageGroup string) []models.Category {
	if ageGroup == "" {
		return categories
	}
	var filtered []models.Category
	for _, c := range categories {
		if c.AgeGroup == ageGroup {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// WordsByCategory fetches the word list for every slug and concatenates the
// normalized records, preserving slug order. Fetches run concurrently; if
// any fails, the whole load fails.
func (l *Loader) WordsByCategory(ctx context.Context, slugs []string) ([]models.WordRecord, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	lists := make([][]models.WordRecord, len(slugs))
	g, ctx := errgroup.WithContext(ctx)
	for i, slug := range slugs {
		i, slug := i, slug
		g.Go(func() error {
			var raw []map[string]json.RawMessage
			if err := l.fetchJSON(ctx, "words/"+slug+".json", &raw); err != nil {
				return err
			}
			words := make([]models.WordRecord, 0, len(raw))
			for _, entry := range raw {
				words = append(words, NormalizeWord(entry))
			}
			lists[i] = words
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []models.WordRecord
	for _, list := range lists {
		all = append(all, list...)
	}
	return all, nil
}

// NormalizeWord maps a raw catalog entry onto the canonical WordRecord via
// the alias table.
func NormalizeWord(raw map[string]json.RawMessage) models.WordRecord {
	return models.WordRecord{
		Word:         rawField(raw, "word"),
		Meaning:      rawField(raw, "meaning"),
		PartOfSpeech: rawField(raw, "partOfSpeech"),
		Level:        rawField(raw, "level"),
	}
}

func rawField(raw map[string]json.RawMessage, canonical string) string {
	for _, alias := range fieldAliases[canonical] {
		data, ok := raw[alias]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(data, &value); err == nil && value != "" {
			return value
		}
	}
	return fieldDefaults[canonical]
}

func (l *Loader) fetchJSON(ctx context.Context, resource string, dest any) error {
	url := l.baseURL + "/" + resource

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{Resource: resource, Err: err}
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return &FetchError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Resource: resource, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Resource: resource, Err: err}
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return &FetchError{Resource: resource, Err: err}
	}
	return nil
}
