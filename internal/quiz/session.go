package quiz

import (
	"errors"
	"strings"

	"spellbound/internal/models"
)

// State identifies where a running session is in its lifecycle
type State int

const (
	// StateNoWords is the terminal state entered when the quiz set is empty.
	// It is a reported condition, not a fault.
	StateNoWords State = iota
	// StateAwaitingInput waits for a spelling submission for the current word
	StateAwaitingInput
	// StateSubmitted holds the current word's feedback until the user advances
	StateSubmitted
	// StateComplete means every word has been answered and acknowledged
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateNoWords:
		return "no-words"
	case StateAwaitingInput:
		return "awaiting-input"
	case StateSubmitted:
		return "submitted"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptyInput rejects a submission whose trimmed text is empty
	ErrEmptyInput = errors.New("quiz: submitted spelling is empty")
	// ErrInvalidTransition rejects an event the current state does not accept
	ErrInvalidTransition = errors.New("quiz: event not valid in current state")
)

// Event is a user action dispatched into Apply
type Event interface {
	isEvent()
}

// SubmitEvent carries the spelling typed for the current word
type SubmitEvent struct {
	Text string
}

// AdvanceEvent acknowledges the current word's feedback and moves on
type AdvanceEvent struct{}

func (SubmitEvent) isEvent()  {}
func (AdvanceEvent) isEvent() {}

// SessionState is the full state of one quiz run. Transition functions take
// and return values; the caller owns the single mutable instance and
// mediates all reads and writes.
type SessionState struct {
	Criteria models.Criteria
	Words    []models.WordRecord
	Index    int
	State    State
	Attempts []models.Attempt

	// Feedback for the current word, set while in StateSubmitted
	Feedback *Feedback
}

// NewSession starts a session over the selected quiz words. An empty set
// lands directly in StateNoWords without ever awaiting input.
func NewSession(criteria models.Criteria, words []models.WordRecord) SessionState {
	state := StateAwaitingInput
	if len(words) == 0 {
		state = StateNoWords
	}
	return SessionState{
		Criteria: criteria,
		Words:    words,
		State:    state,
		Attempts: make([]models.Attempt, 0, len(words)),
	}
}

// Current returns the word being presented, if any
func (s SessionState) Current() (models.WordRecord, bool) {
	if s.State != StateAwaitingInput && s.State != StateSubmitted {
		return models.WordRecord{}, false
	}
	return s.Words[s.Index], true
}

// Done reports whether the session is in a terminal state
func (s SessionState) Done() bool {
	return s.State == StateComplete || s.State == StateNoWords
}

// Score counts the correct attempts logged so far
func (s SessionState) Score() int {
	score := 0
	for _, a := range s.Attempts {
		if a.Correct {
			score++
		}
	}
	return score
}

// Apply dispatches an event into the state machine and returns the next
// state. The input state is never mutated; on error it is returned unchanged.
func Apply(s SessionState, event Event) (SessionState, error) {
	switch event := event.(type) {
	case SubmitEvent:
		return submit(s, event.Text)
	case AdvanceEvent:
		return advance(s)
	default:
		return s, ErrInvalidTransition
	}
}

// submit grades the spelling for the current word and appends exactly one
// attempt. Re-submission of the same word is impossible: the state is
// already StateSubmitted.
func submit(s SessionState, text string) (SessionState, error) {
	if s.State != StateAwaitingInput {
		return s, ErrInvalidTransition
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return s, ErrEmptyInput
	}

	current := s.Words[s.Index]
	feedback := Grade(trimmed, current.Word)

	next := s
	next.Attempts = append(append([]models.Attempt(nil), s.Attempts...), models.Attempt{
		Word:            current.Word,
		UserSpelling:    trimmed,
		CorrectSpelling: current.Word,
		Correct:         feedback.Correct,
		Meaning:         current.Meaning,
		PartOfSpeech:    current.PartOfSpeech,
	})
	next.State = StateSubmitted
	next.Feedback = &feedback
	return next, nil
}

func advance(s SessionState) (SessionState, error) {
	if s.State != StateSubmitted {
		return s, ErrInvalidTransition
	}

	next := s
	next.Feedback = nil
	if s.Index == len(s.Words)-1 {
		next.State = StateComplete
		return next, nil
	}
	next.Index++
	next.State = StateAwaitingInput
	return next, nil
}
