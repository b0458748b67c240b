package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"spellbound/internal/audio"
	"spellbound/internal/catalog"
	"spellbound/internal/history"
	"spellbound/internal/models"
	"spellbound/internal/quiz"
	"spellbound/internal/storage"
)

// QuizHandler serves the quiz API. One quiz runs at a time; the handler owns
// the single mutable session state and mediates all access to it.
type QuizHandler struct {
	loader    *catalog.Loader
	store     storage.KeyValueStore
	recorder  *history.Recorder
	speaker   audio.Speaker
	wordCount int

	mu         sync.Mutex
	active     *quiz.SessionState
	clearToken string
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(loader *catalog.Loader, store storage.KeyValueStore, recorder *history.Recorder, speaker audio.Speaker, wordCount int) *QuizHandler {
	if wordCount <= 0 {
		wordCount = quiz.DefaultWordCount
	}
	return &QuizHandler{
		loader:    loader,
		store:     store,
		recorder:  recorder,
		speaker:   speaker,
		wordCount: wordCount,
	}
}

type wordView struct {
	Word         string `json:"word"`
	Meaning      string `json:"meaning,omitempty"`
	PartOfSpeech string `json:"partOfSpeech,omitempty"`
}

type sessionView struct {
	State    string         `json:"state"`
	Index    int            `json:"index"` // 1-based display position
	Total    int            `json:"total"`
	Word     *wordView      `json:"word,omitempty"`
	Feedback *quiz.Feedback `json:"feedback,omitempty"`
	LastWord bool           `json:"lastWord"`
}

func viewOf(s *quiz.SessionState) sessionView {
	view := sessionView{
		State:    s.State.String(),
		Index:    s.Index + 1,
		Total:    len(s.Words),
		Feedback: s.Feedback,
		LastWord: len(s.Words) > 0 && s.Index == len(s.Words)-1,
	}
	if current, ok := s.Current(); ok {
		view.Word = &wordView{
			Word:         current.Word,
			Meaning:      current.Meaning,
			PartOfSpeech: current.PartOfSpeech,
		}
	}
	return view
}

// GetCategories returns the category directory plus the derived age groups.
// An ageGroup query parameter narrows the directory to that group.
func (h *QuizHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.loader.Categories(r.Context())
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Failed to load categories", "Error loading category directory", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"categories": catalog.ForAgeGroup(categories, r.URL.Query().Get("ageGroup")),
		"ageGroups":  catalog.AgeGroups(categories),
	})
}

// SaveCriteria validates and persists the quiz configuration
func (h *QuizHandler) SaveCriteria(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AgeGroup   string   `json:"ageGroup"`
		Difficulty string   `json:"difficulty"`
		Categories []string `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	if strings.TrimSpace(body.AgeGroup) == "" {
		respondWithError(w, http.StatusBadRequest, "Please select an age group to continue", "", nil)
		return
	}
	if body.Difficulty == "" {
		body.Difficulty = models.DifficultyAny
	}

	criteria := models.Criteria{
		AgeGroup:   body.AgeGroup,
		Difficulty: body.Difficulty,
		Categories: body.Categories,
		TS:         time.Now().UnixMilli(),
	}
	if err := storage.SaveJSON(r.Context(), h.store, storage.KeyCriteria, criteria); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save criteria", "Error saving criteria", err)
		return
	}

	respondJSON(w, http.StatusOK, criteria)
}

// StartQuiz loads the word pool for the saved criteria, draws the quiz set,
// and begins a new session. An empty quiz set starts in the no-words state
// so the client can send the user back to reconfiguration.
func (h *QuizHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	criteria := storage.LoadJSON[*models.Criteria](r.Context(), h.store, storage.KeyCriteria, nil)
	if criteria == nil {
		respondWithError(w, http.StatusConflict, "No quiz criteria set", "", nil)
		return
	}

	pool, err := h.loader.WordsByCategory(r.Context(), criteria.Categories)
	if err != nil {
		// The load aborts entirely on any fetch failure; never start a quiz
		// from a partial pool.
		respondWithError(w, http.StatusBadGateway, "Failed to load words for the chosen categories", "Error loading word lists", err)
		return
	}

	session := quiz.NewSession(*criteria, quiz.Select(pool, *criteria, h.wordCount))

	h.mu.Lock()
	h.active = &session
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, viewOf(&session))
}

// CurrentWord returns the presentation state of the active quiz
func (h *QuizHandler) CurrentWord(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active == nil {
		respondWithError(w, http.StatusNotFound, "No active quiz", "", nil)
		return
	}
	respondJSON(w, http.StatusOK, viewOf(h.active))
}

// SubmitSpelling grades the submitted spelling for the current word
func (h *QuizHandler) SubmitSpelling(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Spelling string `json:"spelling"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active == nil {
		respondWithError(w, http.StatusNotFound, "No active quiz", "", nil)
		return
	}

	next, err := quiz.Apply(*h.active, quiz.SubmitEvent{Text: body.Spelling})
	switch {
	case errors.Is(err, quiz.ErrEmptyInput):
		respondWithError(w, http.StatusBadRequest, "Spelling must not be empty", "", nil)
		return
	case errors.Is(err, quiz.ErrInvalidTransition):
		respondWithError(w, http.StatusConflict, "Word already submitted", "", nil)
		return
	case err != nil:
		respondWithError(w, http.StatusInternalServerError, "Failed to submit spelling", "Error applying submit event", err)
		return
	}

	h.active = &next
	respondJSON(w, http.StatusOK, viewOf(&next))
}

// Advance acknowledges the current word's feedback and steps to the next
// word, finalizing the session after the last one.
func (h *QuizHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active == nil {
		respondWithError(w, http.StatusNotFound, "No active quiz", "", nil)
		return
	}

	next, err := quiz.Apply(*h.active, quiz.AdvanceEvent{})
	if errors.Is(err, quiz.ErrInvalidTransition) {
		respondWithError(w, http.StatusConflict, "Submit a spelling before advancing", "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to advance", "Error applying advance event", err)
		return
	}

	if next.State == quiz.StateComplete {
		session, err := h.recorder.Finalize(r.Context(), next.Criteria, next.Attempts)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to save session results", "Error finalizing session", err)
			return
		}
		h.active = nil
		respondJSON(w, http.StatusOK, map[string]any{
			"complete": true,
			"session":  session,
			"percent":  session.Percent(),
		})
		return
	}

	h.active = &next
	view := viewOf(&next)
	respondJSON(w, http.StatusOK, map[string]any{
		"complete": false,
		"quiz":     view,
	})
}

// Results returns the most recent session, the history (newest first), and
// the aggregated statistics. With no current session the history alone is
// returned so the client can still show past results.
func (h *QuizHandler) Results(w http.ResponseWriter, r *http.Request) {
	session := h.recorder.CurrentSession(r.Context())
	entries := h.recorder.History(r.Context())

	response := map[string]any{
		"session": session,
		"history": history.NewestFirst(entries),
		"stats":   history.Aggregate(entries),
	}
	if session != nil {
		response["percent"] = session.Percent()
	}
	respondJSON(w, http.StatusOK, response)
}

// Speak generates (or reuses) the audio file for a piece of text and returns
// its URL. The client plays it, canceling any utterance already in flight.
func (h *QuizHandler) Speak(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" {
		respondWithError(w, http.StatusBadRequest, "Missing text parameter", "", nil)
		return
	}

	filename, err := h.speaker.AudioFile(r.Context(), text)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Failed to generate audio", "Error generating TTS audio", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"url": "/static/audio/" + filename,
	})
}

// RequestClear issues a one-shot confirmation token for clearing all stored
// data. Clearing is irreversible, so it never happens on a single request.
func (h *QuizHandler) RequestClear(w http.ResponseWriter, r *http.Request) {
	token := uuid.NewString()

	h.mu.Lock()
	h.clearToken = token
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]string{"confirmToken": token})
}

// ClearHistory wipes criteria, current session, and history after verifying
// the confirmation token.
func (h *QuizHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ConfirmToken string `json:"confirmToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clearToken == "" || body.ConfirmToken != h.clearToken {
		respondWithError(w, http.StatusForbidden, "Confirmation required", "", nil)
		return
	}

	if err := storage.ClearAll(r.Context(), h.store); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to clear stored data", "Error clearing store", err)
		return
	}

	h.clearToken = ""
	h.active = nil
	respondJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}
