package catalog

// Room is an authored room within a level. Collections keep authored
// order. Completion and unlock state live on the game state.
type Room struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Background     string   `json:"background,omitempty"` // asset reference
	Puzzles        []Puzzle `json:"puzzles,omitempty"`
	Items          []Item   `json:"items,omitempty"` // placed, not yet collected
	Hunts          []Hunt   `json:"hunts,omitempty"`
	IsLocked       bool     `json:"is_locked,omitempty"`
	RequiredKeyID  string   `json:"required_key_id,omitempty"` // item that unlocks this room
	CompletionText string   `json:"completion_text,omitempty"`
}

// Puzzle returns the puzzle with the given ID, or false if absent.
func (r *Room) Puzzle(puzzleID string) (*Puzzle, bool) {
	for i := range r.Puzzles {
		if r.Puzzles[i].ID == puzzleID {
			return &r.Puzzles[i], true
		}
	}
	return nil, false
}

// Hunt returns the hunt with the given ID, or false if absent.
func (r *Room) Hunt(huntID string) (*Hunt, bool) {
	for i := range r.Hunts {
		if r.Hunts[i].ID == huntID {
			return &r.Hunts[i], true
		}
	}
	return nil, false
}

// Item returns the placed item with the given ID, or false if absent.
func (r *Room) Item(itemID string) (*Item, bool) {
	for i := range r.Items {
		if r.Items[i].ID == itemID {
			return &r.Items[i], true
		}
	}
	return nil, false
}
