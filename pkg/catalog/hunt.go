package catalog

// HiddenObject is a single object to find during a hunt.
type HiddenObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Hunt is a hidden-object-finding mini-challenge, distinct from a
// Puzzle. Completion state is tracked on the player, not here.
type Hunt struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	HiddenObjects []HiddenObject `json:"hidden_objects,omitempty"`
	TimeLimit     int            `json:"time_limit,omitempty"` // seconds; zero means untimed
	Reward        *Item          `json:"reward,omitempty"`
}
