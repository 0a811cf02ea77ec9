package state

import (
	"github.com/jwebster45206/escape-legacy/pkg/catalog"
)

// Derived queries. All are pure reads over (snapshot, catalog); none
// mutate state.

// CanUseItem reports whether the item with the given id is usable in
// the player's current room: either it is a key matching the room's
// required key, or the room has at least one unsolved puzzle that
// requires it. Items not in inventory, or not flagged usable, are
// never usable.
func CanUseItem(gs *GameState, cat *catalog.Catalog, itemID string) bool {
	item, ok := gs.InventoryItem(itemID)
	if !ok || !item.IsUsable {
		return false
	}

	level, ok := cat.Level(gs.Player.CurrentLevelID)
	if !ok {
		return false
	}
	room, ok := level.Room(gs.Player.CurrentRoomID)
	if !ok {
		return false
	}

	if item.IsKey && room.RequiredKeyID == itemID {
		return true
	}

	for i := range room.Puzzles {
		puzzle := &room.Puzzles[i]
		if gs.PuzzleSolved(puzzle.ID) {
			continue
		}
		for _, required := range puzzle.RequiredItems {
			if required == itemID {
				return true
			}
		}
	}
	return false
}

// HasCompletedAllPuzzlesInRoom reports whether every puzzle in the
// room has been solved. The room is searched across all levels.
// Unknown room ids report false. Hunts do not gate room completion.
func HasCompletedAllPuzzlesInRoom(gs *GameState, cat *catalog.Catalog, roomID string) bool {
	room, ok := cat.Room(roomID)
	if !ok {
		return false
	}
	for i := range room.Puzzles {
		if !gs.PuzzleSolved(room.Puzzles[i].ID) {
			return false
		}
	}
	return true
}

// RoomLocked reports whether the room is still locked for the player.
// A locked room opens once the required key is in inventory.
func RoomLocked(gs *GameState, cat *catalog.Catalog, roomID string) bool {
	room, ok := cat.Room(roomID)
	if !ok {
		return false
	}
	if !room.IsLocked {
		return false
	}
	return !gs.HasItem(room.RequiredKeyID)
}

// LevelProgress returns the percentage of rooms completed in the given
// level, 0-100. Unknown level ids report 0.
func LevelProgress(gs *GameState, cat *catalog.Catalog, levelID string) float64 {
	level, ok := cat.Level(levelID)
	if !ok || len(level.Rooms) == 0 {
		return 0
	}
	completed := 0
	for i := range level.Rooms {
		if gs.RoomCompleted(level.Rooms[i].ID) {
			completed++
		}
	}
	return 100 * float64(completed) / float64(len(level.Rooms))
}

// RoomStatus is the merged view of one room: authored definition plus
// player progress, computed at query time.
type RoomStatus struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Locked        bool   `json:"locked"`
	Completed     bool   `json:"completed"`
	SolvedPuzzles int    `json:"solved_puzzles"`
	TotalPuzzles  int    `json:"total_puzzles"`
	TotalHunts    int    `json:"total_hunts"`
	DoneHunts     int    `json:"done_hunts"`
	RequiredKeyID string `json:"required_key_id,omitempty"`
}

// LevelStatus is the merged view of one level.
type LevelStatus struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Difficulty catalog.Difficulty `json:"difficulty"`
	Unlocked   bool               `json:"unlocked"`
	Completed  bool               `json:"completed"`
	Progress   float64            `json:"progress"` // 0-100, rooms completed
	Rooms      []RoomStatus       `json:"rooms"`
}

// LevelStatuses merges the catalog with the player's progress overlay
// for every level, in authored order.
func LevelStatuses(gs *GameState, cat *catalog.Catalog) []LevelStatus {
	out := make([]LevelStatus, 0, len(cat.Levels))
	for i := range cat.Levels {
		level := &cat.Levels[i]
		ls := LevelStatus{
			ID:         level.ID,
			Name:       level.Name,
			Difficulty: level.Difficulty,
			Unlocked:   gs.LevelUnlocked(level.ID),
			Completed:  gs.LevelCompleted(level.ID),
			Progress:   LevelProgress(gs, cat, level.ID),
			Rooms:      make([]RoomStatus, 0, len(level.Rooms)),
		}
		for j := range level.Rooms {
			room := &level.Rooms[j]
			rs := RoomStatus{
				ID:            room.ID,
				Name:          room.Name,
				Locked:        RoomLocked(gs, cat, room.ID),
				Completed:     gs.RoomCompleted(room.ID),
				TotalPuzzles:  len(room.Puzzles),
				TotalHunts:    len(room.Hunts),
				RequiredKeyID: room.RequiredKeyID,
			}
			for k := range room.Puzzles {
				if gs.PuzzleSolved(room.Puzzles[k].ID) {
					rs.SolvedPuzzles++
				}
			}
			for k := range room.Hunts {
				if gs.HuntCompleted(room.Hunts[k].ID) {
					rs.DoneHunts++
				}
			}
			ls.Rooms = append(ls.Rooms, rs)
		}
		out = append(out, ls)
	}
	return out
}

// CombineResult is the outcome of an item combination attempt.
type CombineResult struct {
	Success bool          `json:"success"`
	NewItem *catalog.Item `json:"new_item,omitempty"`
}

// Combine looks up the combination rule for the unordered item pair.
// On a match, it consumes both items from the inventory and appends
// the resulting item, returning the next snapshot and a success
// result. If no rule matches, or either item is not in inventory, the
// input snapshot is returned unchanged with a failure result. Combine
// is commutative in its item arguments.
func Combine(gs *GameState, cat *catalog.Catalog, itemID1, itemID2 string) (*GameState, CombineResult) {
	combo, ok := cat.Combination(itemID1, itemID2)
	if !ok {
		return gs, CombineResult{}
	}
	if !gs.HasItem(itemID1) || !gs.HasItem(itemID2) {
		return gs, CombineResult{}
	}

	next := gs.Clone()
	kept := next.Player.Inventory[:0]
	for _, item := range next.Player.Inventory {
		if item.ID != itemID1 && item.ID != itemID2 {
			kept = append(kept, item)
		}
	}
	next.Player.Inventory = append(kept, combo.Result)

	result := combo.Result
	return next, CombineResult{Success: true, NewItem: &result}
}
