package state

import (
	"reflect"
	"testing"

	"github.com/jwebster45206/escape-legacy/pkg/catalog"
)

func TestCanUseItem(t *testing.T) {
	cat := testCatalog()

	base := Apply(NewGameState(cat), cat, SetCurrentLevel{LevelID: "level1"})

	tests := []struct {
		name   string
		setup  func() *GameState
		itemID string
		want   bool
	}{
		{
			name: "key in room that requires it",
			setup: func() *GameState {
				gs := Apply(base, cat, AddItem{Item: catalog.Item{ID: "rusty-key", IsKey: true, IsUsable: true}})
				return Apply(gs, cat, SetCurrentRoom{RoomID: "manor-study"})
			},
			itemID: "rusty-key",
			want:   true,
		},
		{
			name: "key in room that does not require it",
			setup: func() *GameState {
				return Apply(base, cat, AddItem{Item: catalog.Item{ID: "rusty-key", IsKey: true, IsUsable: true}})
			},
			itemID: "rusty-key",
			want:   false,
		},
		{
			name: "item required by unsolved puzzle in current room",
			setup: func() *GameState {
				gs := Apply(base, cat, AddItem{Item: catalog.Item{ID: "magnifying-glass", IsUsable: true}})
				return Apply(gs, cat, SetCurrentRoom{RoomID: "manor-library"})
			},
			itemID: "magnifying-glass",
			want:   true,
		},
		{
			name: "item required only by a solved puzzle",
			setup: func() *GameState {
				gs := Apply(base, cat, AddItem{Item: catalog.Item{ID: "magnifying-glass", IsUsable: true}})
				gs = Apply(gs, cat, SetCurrentRoom{RoomID: "manor-library"})
				return Apply(gs, cat, SolvePuzzle{LevelID: "level1", RoomID: "manor-library", PuzzleID: "desk-riddle"})
			},
			itemID: "magnifying-glass",
			want:   false,
		},
		{
			name: "item not in inventory",
			setup: func() *GameState {
				return Apply(base, cat, SetCurrentRoom{RoomID: "manor-study"})
			},
			itemID: "rusty-key",
			want:   false,
		},
		{
			name: "item not flagged usable",
			setup: func() *GameState {
				gs := Apply(base, cat, AddItem{Item: catalog.Item{ID: "rusty-key", IsKey: true}})
				return Apply(gs, cat, SetCurrentRoom{RoomID: "manor-study"})
			},
			itemID: "rusty-key",
			want:   false,
		},
		{
			name: "no current room",
			setup: func() *GameState {
				return Apply(NewGameState(cat), cat, AddItem{Item: catalog.Item{ID: "rusty-key", IsKey: true, IsUsable: true}})
			},
			itemID: "rusty-key",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := tt.setup()
			if got := CanUseItem(gs, cat, tt.itemID); got != tt.want {
				t.Errorf("CanUseItem(%q) = %v, want %v", tt.itemID, got, tt.want)
			}
		})
	}
}

func TestHasCompletedAllPuzzlesInRoom(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)

	if HasCompletedAllPuzzlesInRoom(gs, cat, "manor-library") {
		t.Error("expected false with no puzzles solved")
	}

	gs = Apply(gs, cat, SolvePuzzle{LevelID: "level1", RoomID: "manor-library", PuzzleID: "bookshelf-puzzle"})
	if HasCompletedAllPuzzlesInRoom(gs, cat, "manor-library") {
		t.Error("expected false with one of two puzzles solved")
	}

	gs = Apply(gs, cat, SolvePuzzle{LevelID: "level1", RoomID: "manor-library", PuzzleID: "desk-riddle"})
	if !HasCompletedAllPuzzlesInRoom(gs, cat, "manor-library") {
		t.Error("expected true with all puzzles solved")
	}

	if HasCompletedAllPuzzlesInRoom(gs, cat, "no-such-room") {
		t.Error("unknown room must report false")
	}
}

func TestRoomLocked(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)

	if RoomLocked(gs, cat, "manor-entrance") {
		t.Error("unlocked room must never report locked")
	}
	if !RoomLocked(gs, cat, "manor-study") {
		t.Error("locked room without key must report locked")
	}

	gs = Apply(gs, cat, AddItem{Item: catalog.Item{ID: "rusty-key", IsKey: true, IsUsable: true}})
	if RoomLocked(gs, cat, "manor-study") {
		t.Error("locked room must open once the key is held")
	}
}

func TestLevelProgress(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)

	if p := LevelProgress(gs, cat, "level1"); p != 0 {
		t.Errorf("expected 0, got %f", p)
	}

	gs = Apply(gs, cat, CompleteRoom{RoomID: "manor-entrance"})
	if p := LevelProgress(gs, cat, "level1"); p != 100.0/3 {
		t.Errorf("expected one third, got %f", p)
	}

	gs = Apply(gs, cat, CompleteRoom{RoomID: "manor-library"})
	gs = Apply(gs, cat, CompleteRoom{RoomID: "manor-study"})
	if p := LevelProgress(gs, cat, "level1"); p != 100 {
		t.Errorf("expected 100, got %f", p)
	}

	if p := LevelProgress(gs, cat, "level99"); p != 0 {
		t.Errorf("unknown level must report 0, got %f", p)
	}
}

func TestLevelStatuses(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)
	gs = Apply(gs, cat, SolvePuzzle{LevelID: "level1", RoomID: "manor-entrance", PuzzleID: "entrance-lock"})
	gs = Apply(gs, cat, CompleteRoom{RoomID: "manor-entrance"})
	gs = Apply(gs, cat, CompleteHunt{HuntID: "hidden-compartment"})

	statuses := LevelStatuses(gs, cat)
	if len(statuses) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(statuses))
	}

	level1 := statuses[0]
	if !level1.Unlocked || level1.Completed {
		t.Errorf("level1: unlocked=%v completed=%v", level1.Unlocked, level1.Completed)
	}
	if level1.Progress != 100.0/3 {
		t.Errorf("level1 progress = %f, want one third", level1.Progress)
	}

	entrance := level1.Rooms[0]
	if entrance.ID != "manor-entrance" || !entrance.Completed {
		t.Errorf("entrance status = %+v", entrance)
	}
	if entrance.SolvedPuzzles != 1 || entrance.TotalPuzzles != 1 {
		t.Errorf("entrance puzzles = %d/%d", entrance.SolvedPuzzles, entrance.TotalPuzzles)
	}
	if entrance.DoneHunts != 1 || entrance.TotalHunts != 1 {
		t.Errorf("entrance hunts = %d/%d", entrance.DoneHunts, entrance.TotalHunts)
	}

	study := level1.Rooms[2]
	if !study.Locked {
		t.Error("study should report locked without the key")
	}

	if statuses[1].Unlocked {
		t.Error("level2 should report locked")
	}
}

func TestCombine(t *testing.T) {
	cat := testCatalog()
	device := catalog.Item{ID: "strange-device", IsUsable: true, CanCombine: true, CombinesWith: []string{"crystal"}}
	crystal := catalog.Item{ID: "crystal", IsUsable: true, CanCombine: true, CombinesWith: []string{"strange-device"}}

	gs := NewGameState(cat)
	gs = Apply(gs, cat, AddItem{Item: device})
	gs = Apply(gs, cat, AddItem{Item: crystal})

	next, result := Combine(gs, cat, "strange-device", "crystal")
	if !result.Success {
		t.Fatal("expected combination to succeed")
	}
	if result.NewItem == nil || result.NewItem.ID != "activated-device" {
		t.Fatalf("unexpected result item: %+v", result.NewItem)
	}
	if len(next.Player.Inventory) != 1 || next.Player.Inventory[0].ID != "activated-device" {
		t.Errorf("expected inventory [activated-device], got %+v", next.Player.Inventory)
	}
	if len(gs.Player.Inventory) != 2 {
		t.Error("input snapshot must not be mutated")
	}

	// Argument order does not matter.
	swapped, result2 := Combine(gs, cat, "crystal", "strange-device")
	if !result2.Success {
		t.Fatal("expected reversed combination to succeed")
	}
	if !reflect.DeepEqual(swapped.Player.Inventory, next.Player.Inventory) {
		t.Error("combination must be commutative")
	}
}

func TestCombine_Failures(t *testing.T) {
	cat := testCatalog()
	device := catalog.Item{ID: "strange-device", IsUsable: true, CanCombine: true, CombinesWith: []string{"crystal"}}

	tests := []struct {
		name  string
		setup func() *GameState
		id1   string
		id2   string
	}{
		{
			name: "no rule for pair",
			setup: func() *GameState {
				gs := Apply(NewGameState(cat), cat, AddItem{Item: device})
				return Apply(gs, cat, AddItem{Item: catalog.Item{ID: "rusty-key"}})
			},
			id1: "strange-device",
			id2: "rusty-key",
		},
		{
			name: "second item not in inventory",
			setup: func() *GameState {
				return Apply(NewGameState(cat), cat, AddItem{Item: device})
			},
			id1: "strange-device",
			id2: "crystal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := tt.setup()
			next, result := Combine(gs, cat, tt.id1, tt.id2)
			if result.Success {
				t.Fatal("expected failure")
			}
			if result.NewItem != nil {
				t.Errorf("failure must not carry a result item: %+v", result.NewItem)
			}
			if !reflect.DeepEqual(next, gs) {
				t.Error("failed combination must leave state unchanged")
			}
		})
	}
}
