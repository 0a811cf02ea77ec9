package state

import (
	"strings"

	"github.com/jwebster45206/escape-legacy/pkg/catalog"
)

// Answer is a candidate puzzle solution. Text is used for combination
// and riddle puzzles; Sequence for pattern and sequence puzzles.
type Answer struct {
	Text     string   `json:"text,omitempty"`
	Sequence []string `json:"sequence,omitempty"`
}

// EvaluateSolution reports whether the answer solves the puzzle:
//
//   - combination: exact string equality
//   - riddle: case-insensitive string equality
//   - sequence, pattern: positional equality against the solution
//     sequence; order matters and every element must match
//   - hidden-object: never evaluated here; resolved only through
//     hunt-style object discovery
func EvaluateSolution(puzzle *catalog.Puzzle, answer Answer) bool {
	switch puzzle.Type {
	case catalog.PuzzleCombination:
		return answer.Text == puzzle.Solution
	case catalog.PuzzleRiddle:
		return strings.EqualFold(answer.Text, puzzle.Solution)
	case catalog.PuzzleSequence, catalog.PuzzlePattern:
		if len(answer.Sequence) != len(puzzle.SolutionSequence) {
			return false
		}
		for i := range answer.Sequence {
			if answer.Sequence[i] != puzzle.SolutionSequence[i] {
				return false
			}
		}
		return true
	}
	return false
}

// MissingItems returns the required item ids the player does not hold.
// A puzzle cannot be attempted until this is empty.
func MissingItems(gs *GameState, puzzle *catalog.Puzzle) []string {
	var missing []string
	for _, itemID := range puzzle.RequiredItems {
		if !gs.HasItem(itemID) {
			missing = append(missing, itemID)
		}
	}
	return missing
}

// AttemptResult is the outcome of one puzzle submission.
type AttemptResult struct {
	Correct bool `json:"correct"`
	// Failed is set when the attempt limit is exhausted. The
	// interaction is over, but no lockout is persisted; the puzzle
	// may be retried in a later interaction.
	Failed bool `json:"failed"`
	// AttemptsRemaining is meaningful only for puzzles with an
	// attempt limit; -1 means unlimited.
	AttemptsRemaining int `json:"attempts_remaining"`
	// MissingItems lists required items absent from the inventory.
	// Such a submission is rejected without consuming an attempt.
	MissingItems []string `json:"missing_items,omitempty"`
}

// PuzzleSession tracks attempts for a single puzzle interaction.
// Sessions are in-memory only: nothing here is persisted, so an
// exhausted session does not lock the puzzle across interactions.
type PuzzleSession struct {
	puzzle    *catalog.Puzzle
	remaining int // -1 = unlimited
	solved    bool
	failed    bool
}

// NewPuzzleSession starts a puzzle interaction.
func NewPuzzleSession(puzzle *catalog.Puzzle) *PuzzleSession {
	remaining := -1
	if puzzle.MaxAttempts > 0 {
		remaining = puzzle.MaxAttempts
	}
	return &PuzzleSession{puzzle: puzzle, remaining: remaining}
}

// Solved reports whether the session has produced a correct answer.
func (ps *PuzzleSession) Solved() bool { return ps.solved }

// Failed reports whether the session has exhausted its attempts.
func (ps *PuzzleSession) Failed() bool { return ps.failed }

// Submit evaluates one answer. Required items are checked against the
// snapshot first; a submission with missing items does not consume an
// attempt. An incorrect submission decrements the remaining attempts,
// and reaching zero ends the interaction as failed without marking
// the puzzle solved.
func (ps *PuzzleSession) Submit(gs *GameState, answer Answer) AttemptResult {
	if ps.solved || ps.failed {
		return AttemptResult{Correct: ps.solved, Failed: ps.failed, AttemptsRemaining: ps.remaining}
	}

	if missing := MissingItems(gs, ps.puzzle); len(missing) > 0 {
		return AttemptResult{AttemptsRemaining: ps.remaining, MissingItems: missing}
	}

	if EvaluateSolution(ps.puzzle, answer) {
		ps.solved = true
		return AttemptResult{Correct: true, AttemptsRemaining: ps.remaining}
	}

	if ps.remaining > 0 {
		ps.remaining--
		if ps.remaining == 0 {
			ps.failed = true
		}
	}
	return AttemptResult{Failed: ps.failed, AttemptsRemaining: ps.remaining}
}

// HuntProgress is the state of a hidden-object hunt interaction.
type HuntProgress struct {
	Found     int  `json:"found"`
	Total     int  `json:"total"`
	Completed bool `json:"completed"`
}

// HuntSession accumulates discovered hidden objects for one hunt
// interaction. The hunt completes once every hidden object has been
// discovered. Like puzzle sessions, hunt sessions are not persisted.
type HuntSession struct {
	hunt  *catalog.Hunt
	found map[string]bool
}

// NewHuntSession starts a hunt interaction.
func NewHuntSession(hunt *catalog.Hunt) *HuntSession {
	return &HuntSession{hunt: hunt, found: make(map[string]bool)}
}

// Discover records finding one hidden object. Unknown object ids and
// repeat discoveries leave the progress unchanged.
func (hs *HuntSession) Discover(objectID string) HuntProgress {
	known := false
	for _, obj := range hs.hunt.HiddenObjects {
		if obj.ID == objectID {
			known = true
			break
		}
	}
	if known {
		hs.found[objectID] = true
	}
	return hs.Progress()
}

// Found reports whether the hidden object has been discovered in this
// interaction.
func (hs *HuntSession) Found(objectID string) bool {
	return hs.found[objectID]
}

// Progress returns the current discovery progress.
func (hs *HuntSession) Progress() HuntProgress {
	total := len(hs.hunt.HiddenObjects)
	return HuntProgress{
		Found:     len(hs.found),
		Total:     total,
		Completed: total > 0 && len(hs.found) == total,
	}
}
