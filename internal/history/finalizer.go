package history

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"spellbound/internal/models"
	"spellbound/internal/storage"
)

// Recorder persists completed sessions: the full session in the single
// current-session slot (overwritten each time) and a summary appended to the
// history sequence.
type Recorder struct {
	store storage.KeyValueStore
	now   func() time.Time

	mu sync.Mutex // serializes the history read-modify-write
}

// NewRecorder creates a recorder over the given store
func NewRecorder(store storage.KeyValueStore) *Recorder {
	return &Recorder{
		store: store,
		now:   time.Now,
	}
}

// Finalize converts a completed attempt log into an immutable Session,
// overwrites the current-session slot, and appends the session's summary to
// history. It always appends: finalizing twice records two entries.
func (r *Recorder) Finalize(ctx context.Context, criteria models.Criteria, attempts []models.Attempt) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	score := 0
	for _, a := range attempts {
		if a.Correct {
			score++
		}
	}

	completedAt := r.now().UnixMilli()
	session := &models.Session{
		ID:          "sess-" + strconv.FormatInt(completedAt, 10),
		Criteria:    criteria,
		Attempts:    attempts,
		Score:       score,
		Total:       len(attempts),
		CompletedAt: completedAt,
	}

	if err := storage.SaveJSON(ctx, r.store, storage.KeyCurrentSession, session); err != nil {
		return nil, fmt.Errorf("failed to store current session: %w", err)
	}

	entries := storage.LoadJSON(ctx, r.store, storage.KeyHistory, []models.HistoryEntry{})
	entries = append(entries, models.HistoryEntry{
		ID:          session.ID,
		Score:       session.Score,
		Total:       session.Total,
		Criteria:    session.Criteria,
		CompletedAt: session.CompletedAt,
	})
	if err := storage.SaveJSON(ctx, r.store, storage.KeyHistory, entries); err != nil {
		return nil, fmt.Errorf("failed to store history: %w", err)
	}

	return session, nil
}

// CurrentSession loads the most recently finalized session, or nil when the
// slot is empty or unreadable.
func (r *Recorder) CurrentSession(ctx context.Context) *models.Session {
	return storage.LoadJSON[*models.Session](ctx, r.store, storage.KeyCurrentSession, nil)
}

// History loads the full history sequence in completion order
func (r *Recorder) History(ctx context.Context) []models.HistoryEntry {
	return storage.LoadJSON(ctx, r.store, storage.KeyHistory, []models.HistoryEntry{})
}
