package quiz

import (
	"errors"
	"testing"

	"spellbound/internal/models"
)

func testWords() []models.WordRecord {
	return []models.WordRecord{
		{Word: "cat", Meaning: "a pet", PartOfSpeech: "noun", Level: models.LevelEasy},
		{Word: "dog", Meaning: "a pet too", PartOfSpeech: "noun", Level: models.LevelEasy},
	}
}

func TestNewSessionEmptyQuiz(t *testing.T) {
	session := NewSession(models.Criteria{}, nil)

	if session.State != StateNoWords {
		t.Errorf("State = %v, want StateNoWords", session.State)
	}
	if !session.Done() {
		t.Error("Done() = false, want true for empty quiz")
	}
	if _, ok := session.Current(); ok {
		t.Error("Current() returned a word for an empty quiz")
	}
}

func TestSessionWalkthrough(t *testing.T) {
	session := NewSession(models.Criteria{Difficulty: models.DifficultyAny}, testWords())

	if session.State != StateAwaitingInput {
		t.Fatalf("initial state = %v, want StateAwaitingInput", session.State)
	}

	// First word: wrong answer
	session, err := Apply(session, SubmitEvent{Text: "kat"})
	if err != nil {
		t.Fatalf("submit first word: %v", err)
	}
	if session.State != StateSubmitted {
		t.Fatalf("state after submit = %v, want StateSubmitted", session.State)
	}
	if session.Feedback == nil || session.Feedback.Correct {
		t.Errorf("Feedback = %+v, want incorrect", session.Feedback)
	}

	session, err = Apply(session, AdvanceEvent{})
	if err != nil {
		t.Fatalf("advance to second word: %v", err)
	}
	if session.State != StateAwaitingInput || session.Index != 1 {
		t.Fatalf("state = %v index = %d, want StateAwaitingInput at 1", session.State, session.Index)
	}
	if session.Feedback != nil {
		t.Error("Feedback not cleared on advance")
	}

	// Second word: correct, with different casing
	session, err = Apply(session, SubmitEvent{Text: "Dog"})
	if err != nil {
		t.Fatalf("submit second word: %v", err)
	}
	if !session.Feedback.Correct {
		t.Error("case-insensitive match graded as incorrect")
	}

	session, err = Apply(session, AdvanceEvent{})
	if err != nil {
		t.Fatalf("advance past last word: %v", err)
	}
	if session.State != StateComplete {
		t.Fatalf("state = %v, want StateComplete", session.State)
	}

	// One attempt per presented word, in presentation order
	if len(session.Attempts) != 2 {
		t.Fatalf("len(Attempts) = %d, want 2", len(session.Attempts))
	}
	if session.Attempts[0].Word != "cat" || session.Attempts[1].Word != "dog" {
		t.Errorf("attempt order = %q, %q; want cat, dog", session.Attempts[0].Word, session.Attempts[1].Word)
	}
	if session.Score() != 1 {
		t.Errorf("Score() = %d, want 1", session.Score())
	}
}

func TestApplyErrors(t *testing.T) {
	awaiting := NewSession(models.Criteria{}, testWords())
	submitted, err := Apply(awaiting, SubmitEvent{Text: "cat"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	tests := []struct {
		name    string
		state   SessionState
		event   Event
		wantErr error
	}{
		{
			name:    "empty submission rejected",
			state:   awaiting,
			event:   SubmitEvent{Text: "   "},
			wantErr: ErrEmptyInput,
		},
		{
			name:    "resubmission rejected",
			state:   submitted,
			event:   SubmitEvent{Text: "cat"},
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "advance before submit rejected",
			state:   awaiting,
			event:   AdvanceEvent{},
			wantErr: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Apply(tt.state, tt.event)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
			}
			if len(next.Attempts) != len(tt.state.Attempts) {
				t.Error("rejected event changed the attempt log")
			}
			if next.State != tt.state.State {
				t.Errorf("rejected event changed state: %v -> %v", tt.state.State, next.State)
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	session := NewSession(models.Criteria{}, testWords())

	next, err := Apply(session, SubmitEvent{Text: "cat"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if session.State != StateAwaitingInput || len(session.Attempts) != 0 {
		t.Error("Apply mutated its input state")
	}
	if next.State != StateSubmitted || len(next.Attempts) != 1 {
		t.Errorf("next state = %v with %d attempts, want StateSubmitted with 1", next.State, len(next.Attempts))
	}
}
