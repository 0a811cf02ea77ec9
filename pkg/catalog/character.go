package catalog

// Character is read-only narrative data: a cast member with keyed
// dialogue sets (e.g. "intro", "journal", "recording").
type Character struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Image       string              `json:"image,omitempty"`
	Dialogues   map[string][]string `json:"dialogues,omitempty"`
}
