package catalog

// PuzzleType is the variant of a puzzle. The variant determines how a
// candidate answer is compared against the solution.
type PuzzleType string

const (
	PuzzleCombination  PuzzleType = "combination"   // exact string match
	PuzzlePattern      PuzzleType = "pattern"       // ordered sequence match
	PuzzleRiddle       PuzzleType = "riddle"        // case-insensitive string match
	PuzzleHiddenObject PuzzleType = "hidden-object" // resolved via hunt-style discovery, never by answer
	PuzzleSequence     PuzzleType = "sequence"      // ordered sequence match
)

// Puzzle is an authored puzzle definition. Solved state is player
// progress and lives on the game state, not here.
type Puzzle struct {
	ID            string     `json:"id"`
	Type          PuzzleType `json:"type"`
	Description   string     `json:"description"`
	Hint          string     `json:"hint,omitempty"`
	RequiredItems []string   `json:"required_items,omitempty"` // item IDs that must be in inventory

	// Solution holds the expected answer for combination and riddle
	// puzzles. SolutionSequence holds the expected ordered answer for
	// pattern and sequence puzzles. Exactly one is set, per Type.
	Solution         string   `json:"solution,omitempty"`
	SolutionSequence []string `json:"solution_sequence,omitempty"`

	// MaxAttempts limits incorrect submissions per interaction.
	// Zero means unlimited. No lockout state is persisted; the puzzle
	// may be retried in a later interaction.
	MaxAttempts int `json:"max_attempts,omitempty"`
}
