package state

import (
	"github.com/jwebster45206/escape-legacy/pkg/catalog"
)

// Apply runs one transition against a snapshot and returns the next
// snapshot. The input snapshot is never mutated. An action referencing
// a level, room, puzzle, hunt or item id that does not exist returns
// the input snapshot unchanged. Apply never fails; there is no error
// path.
func Apply(gs *GameState, cat *catalog.Catalog, action Action) *GameState {
	switch a := action.(type) {
	case StartGame:
		if gs.GameStarted {
			return gs
		}
		next := gs.Clone()
		next.GameStarted = true
		return next

	case CompleteGame:
		if gs.GameCompleted {
			return gs
		}
		next := gs.Clone()
		next.GameCompleted = true
		return next

	case SetTheme:
		next := gs.Clone()
		next.Settings.Theme = a.Theme
		return next

	case ToggleSound:
		next := gs.Clone()
		next.Settings.SoundEnabled = !next.Settings.SoundEnabled
		return next

	case SetMusicVolume:
		next := gs.Clone()
		next.Settings.MusicVolume = a.Volume
		return next

	case SetSFXVolume:
		next := gs.Clone()
		next.Settings.SFXVolume = a.Volume
		return next

	case SetCurrentLevel:
		level, ok := cat.Level(a.LevelID)
		if !ok {
			return gs
		}
		next := gs.Clone()
		next.Player.CurrentLevelID = level.ID
		next.Player.CurrentRoomID = ""
		if first, ok := level.FirstRoom(); ok {
			next.Player.CurrentRoomID = first.ID
		}
		return next

	case SetCurrentRoom:
		if _, ok := cat.Room(a.RoomID); !ok {
			return gs
		}
		next := gs.Clone()
		next.Player.CurrentRoomID = a.RoomID
		return next

	case AddItem:
		next := gs.Clone()
		next.Player.Inventory = append(next.Player.Inventory, a.Item)
		return next

	case RemoveItem:
		if !gs.HasItem(a.ItemID) {
			return gs
		}
		next := gs.Clone()
		kept := next.Player.Inventory[:0]
		for _, item := range next.Player.Inventory {
			if item.ID != a.ItemID {
				kept = append(kept, item)
			}
		}
		next.Player.Inventory = kept
		return next

	case UnlockLevel:
		if _, ok := cat.Level(a.LevelID); !ok {
			return gs
		}
		if gs.LevelUnlocked(a.LevelID) {
			return gs
		}
		next := gs.Clone()
		next.Player.UnlockedLevels = append(next.Player.UnlockedLevels, a.LevelID)
		return next

	case CompleteLevel:
		if _, ok := cat.Level(a.LevelID); !ok {
			return gs
		}
		if gs.LevelCompleted(a.LevelID) {
			return gs
		}
		next := gs.Clone()
		next.Player.CompletedLevels = append(next.Player.CompletedLevels, a.LevelID)
		next.Player.GameProgress += 100 / float64(len(cat.Levels))
		if next.Player.GameProgress > 100 {
			next.Player.GameProgress = 100
		}
		return next

	case CompleteRoom:
		if _, ok := cat.Room(a.RoomID); !ok {
			return gs
		}
		if gs.RoomCompleted(a.RoomID) {
			return gs
		}
		next := gs.Clone()
		next.Player.CompletedRooms = append(next.Player.CompletedRooms, a.RoomID)
		return next

	case CompleteHunt:
		if _, ok := cat.Hunt(a.HuntID); !ok {
			return gs
		}
		if gs.HuntCompleted(a.HuntID) {
			return gs
		}
		next := gs.Clone()
		next.Player.CompletedHunts = append(next.Player.CompletedHunts, a.HuntID)
		return next

	case SolvePuzzle:
		puzzle, ok := cat.Puzzle(a.LevelID, a.RoomID, a.PuzzleID)
		if !ok {
			return gs
		}
		if gs.PuzzleSolved(puzzle.ID) {
			return gs
		}
		next := gs.Clone()
		next.SolvedPuzzles[puzzle.ID] = true
		return next

	case AdvanceStory:
		next := gs.Clone()
		next.StoryProgress++
		return next

	case ResetGame:
		// Fresh catalog-derived snapshot; the session keeps its
		// identity so the persisted entry is overwritten in place.
		next := NewGameState(cat)
		next.ID = gs.ID
		next.CreatedAt = gs.CreatedAt
		return next
	}

	// Unreachable with the closed Action set.
	return gs
}
