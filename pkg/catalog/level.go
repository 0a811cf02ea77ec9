package catalog

// Difficulty rates a level.
type Difficulty string

const (
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Level is an authored level: an ordered collection of rooms plus
// narrative framing. Unlock and completion flags are player progress
// and live on the game state, never on the catalog.
type Level struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	StoryIntro    string     `json:"story_intro,omitempty"`
	StoryOutro    string     `json:"story_outro,omitempty"`
	Difficulty    Difficulty `json:"difficulty"`
	Rooms         []Room     `json:"rooms"`
	StartUnlocked bool       `json:"start_unlocked,omitempty"` // unlocked from the first session
}

// Room returns the room with the given ID, or false if absent.
func (l *Level) Room(roomID string) (*Room, bool) {
	for i := range l.Rooms {
		if l.Rooms[i].ID == roomID {
			return &l.Rooms[i], true
		}
	}
	return nil, false
}

// FirstRoom returns the first room of the level, or false if the level
// has no rooms.
func (l *Level) FirstRoom() (*Room, bool) {
	if len(l.Rooms) == 0 {
		return nil, false
	}
	return &l.Rooms[0], true
}
