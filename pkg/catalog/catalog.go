// Package catalog holds the static, authored game content: levels,
// rooms, puzzles, items, hunts, characters and combination rules.
// A Catalog is loaded once at process start and never mutated; all
// player progress is tracked separately on the game state and merged
// with the catalog at query time.
package catalog

// Catalog is the complete authored content graph.
type Catalog struct {
	Levels       []Level       `json:"levels"`
	Characters   []Character   `json:"characters,omitempty"`
	Combinations []Combination `json:"combinations,omitempty"`
}

// Level returns the level with the given ID, or false if absent.
func (c *Catalog) Level(levelID string) (*Level, bool) {
	for i := range c.Levels {
		if c.Levels[i].ID == levelID {
			return &c.Levels[i], true
		}
	}
	return nil, false
}

// Room searches all levels for the room with the given ID.
func (c *Catalog) Room(roomID string) (*Room, bool) {
	for i := range c.Levels {
		if r, ok := c.Levels[i].Room(roomID); ok {
			return r, true
		}
	}
	return nil, false
}

// Puzzle resolves a puzzle by its full ID chain. All three IDs must
// match for the puzzle to be found.
func (c *Catalog) Puzzle(levelID, roomID, puzzleID string) (*Puzzle, bool) {
	level, ok := c.Level(levelID)
	if !ok {
		return nil, false
	}
	room, ok := level.Room(roomID)
	if !ok {
		return nil, false
	}
	return room.Puzzle(puzzleID)
}

// Hunt searches all rooms for the hunt with the given ID.
func (c *Catalog) Hunt(huntID string) (*Hunt, bool) {
	for i := range c.Levels {
		for j := range c.Levels[i].Rooms {
			if h, ok := c.Levels[i].Rooms[j].Hunt(huntID); ok {
				return h, true
			}
		}
	}
	return nil, false
}

// Combination returns the rule matching the unordered item pair, or
// false if the two items cannot be combined.
func (c *Catalog) Combination(itemID1, itemID2 string) (*Combination, bool) {
	for i := range c.Combinations {
		if c.Combinations[i].Matches(itemID1, itemID2) {
			return &c.Combinations[i], true
		}
	}
	return nil, false
}

// Character returns the character with the given ID, or false if absent.
func (c *Catalog) Character(characterID string) (*Character, bool) {
	for i := range c.Characters {
		if c.Characters[i].ID == characterID {
			return &c.Characters[i], true
		}
	}
	return nil, false
}

// StartingLevelIDs returns the IDs of levels that are unlocked from
// the first session, in authored order.
func (c *Catalog) StartingLevelIDs() []string {
	ids := make([]string, 0, 1)
	for i := range c.Levels {
		if c.Levels[i].StartUnlocked {
			ids = append(ids, c.Levels[i].ID)
		}
	}
	return ids
}
