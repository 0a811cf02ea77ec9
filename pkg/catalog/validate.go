package catalog

import (
	"fmt"
	"strings"
)

// Validate checks the catalog for structural problems: duplicate IDs,
// dangling references and solution payloads that do not match the
// puzzle variant. It returns a single error listing every problem
// found, or nil if the catalog is sound.
func (c *Catalog) Validate() error {
	v := &validator{items: map[string]bool{}}

	// First pass collects the item universe: placed items, hunt
	// rewards and combination results are all valid item references.
	for i := range c.Levels {
		for j := range c.Levels[i].Rooms {
			room := &c.Levels[i].Rooms[j]
			for k := range room.Items {
				v.items[room.Items[k].ID] = true
			}
			for k := range room.Hunts {
				if room.Hunts[k].Reward != nil {
					v.items[room.Hunts[k].Reward.ID] = true
				}
			}
		}
	}
	for i := range c.Combinations {
		v.items[c.Combinations[i].Result.ID] = true
	}

	seenLevels := map[string]bool{}
	seenRooms := map[string]bool{}
	seenPuzzles := map[string]bool{}
	seenHunts := map[string]bool{}
	seenItems := map[string]bool{}

	for i := range c.Levels {
		level := &c.Levels[i]
		if level.ID == "" {
			v.errorf("level %d has an empty id", i)
			continue
		}
		if seenLevels[level.ID] {
			v.errorf("duplicate level id %q", level.ID)
		}
		seenLevels[level.ID] = true

		if level.Difficulty != DifficultyMedium && level.Difficulty != DifficultyHard {
			v.errorf("level %q has unknown difficulty %q", level.ID, level.Difficulty)
		}
		if len(level.Rooms) == 0 {
			v.errorf("level %q has no rooms", level.ID)
		}

		for j := range level.Rooms {
			room := &level.Rooms[j]
			if seenRooms[room.ID] {
				v.errorf("duplicate room id %q", room.ID)
			}
			seenRooms[room.ID] = true
			v.validateRoom(room, seenPuzzles, seenHunts, seenItems)
		}
	}

	for i := range c.Combinations {
		combo := &c.Combinations[i]
		if !v.items[combo.Item1ID] {
			v.errorf("combination references unknown item %q", combo.Item1ID)
		}
		if !v.items[combo.Item2ID] {
			v.errorf("combination references unknown item %q", combo.Item2ID)
		}
		if combo.Item1ID == combo.Item2ID {
			v.errorf("combination pairs item %q with itself", combo.Item1ID)
		}
	}

	seenCharacters := map[string]bool{}
	for i := range c.Characters {
		if seenCharacters[c.Characters[i].ID] {
			v.errorf("duplicate character id %q", c.Characters[i].ID)
		}
		seenCharacters[c.Characters[i].ID] = true
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("invalid catalog:\n%s", strings.Join(v.errors, "\n"))
	}
	return nil
}

type validator struct {
	errors []string
	items  map[string]bool // every item id referenceable anywhere
}

func (v *validator) errorf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) validateRoom(room *Room, seenPuzzles, seenHunts, seenItems map[string]bool) {
	if room.IsLocked && room.RequiredKeyID == "" {
		v.errorf("room %q is locked but has no required key", room.ID)
	}
	if room.RequiredKeyID != "" && !v.items[room.RequiredKeyID] {
		v.errorf("room %q requires unknown key item %q", room.ID, room.RequiredKeyID)
	}

	for i := range room.Items {
		item := &room.Items[i]
		if seenItems[item.ID] {
			v.errorf("duplicate item id %q", item.ID)
		}
		seenItems[item.ID] = true
		for _, other := range item.CombinesWith {
			if !v.items[other] {
				v.errorf("item %q combines with unknown item %q", item.ID, other)
			}
		}
	}

	for i := range room.Puzzles {
		puzzle := &room.Puzzles[i]
		if seenPuzzles[puzzle.ID] {
			v.errorf("duplicate puzzle id %q", puzzle.ID)
		}
		seenPuzzles[puzzle.ID] = true
		v.validateSolution(room.ID, puzzle)
		for _, itemID := range puzzle.RequiredItems {
			if !v.items[itemID] {
				v.errorf("puzzle %q requires unknown item %q", puzzle.ID, itemID)
			}
		}
	}

	for i := range room.Hunts {
		hunt := &room.Hunts[i]
		if seenHunts[hunt.ID] {
			v.errorf("duplicate hunt id %q", hunt.ID)
		}
		seenHunts[hunt.ID] = true
		if len(hunt.HiddenObjects) == 0 {
			v.errorf("hunt %q has no hidden objects", hunt.ID)
		}
		seenObjects := map[string]bool{}
		for _, obj := range hunt.HiddenObjects {
			if seenObjects[obj.ID] {
				v.errorf("hunt %q has duplicate hidden object id %q", hunt.ID, obj.ID)
			}
			seenObjects[obj.ID] = true
		}
	}
}

// validateSolution checks that the solution payload matches the puzzle
// variant: a single string for combination/riddle, an ordered sequence
// for pattern/sequence, and nothing for hidden-object.
func (v *validator) validateSolution(roomID string, puzzle *Puzzle) {
	switch puzzle.Type {
	case PuzzleCombination, PuzzleRiddle:
		if puzzle.Solution == "" {
			v.errorf("puzzle %q (%s) in room %q has no solution", puzzle.ID, puzzle.Type, roomID)
		}
		if len(puzzle.SolutionSequence) > 0 {
			v.errorf("puzzle %q (%s) must not have a solution sequence", puzzle.ID, puzzle.Type)
		}
	case PuzzlePattern, PuzzleSequence:
		if len(puzzle.SolutionSequence) == 0 {
			v.errorf("puzzle %q (%s) in room %q has no solution sequence", puzzle.ID, puzzle.Type, roomID)
		}
		if puzzle.Solution != "" {
			v.errorf("puzzle %q (%s) must not have a string solution", puzzle.ID, puzzle.Type)
		}
	case PuzzleHiddenObject:
		if puzzle.Solution != "" || len(puzzle.SolutionSequence) > 0 {
			v.errorf("puzzle %q (hidden-object) must not have a solution payload", puzzle.ID)
		}
	default:
		v.errorf("puzzle %q in room %q has unknown type %q", puzzle.ID, roomID, puzzle.Type)
	}
}
