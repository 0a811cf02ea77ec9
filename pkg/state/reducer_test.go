package state

import (
	"reflect"
	"testing"

	"github.com/jwebster45206/escape-legacy/pkg/catalog"
)

// testCatalog builds a small two-level catalog mirroring the shape of
// the shipped content: a manor level with locked rooms, keys, hunts
// and every puzzle variant, plus a second locked level.
func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Levels: []catalog.Level{
			{
				ID:            "level1",
				Name:          "The Forgotten Manor",
				Difficulty:    catalog.DifficultyMedium,
				StartUnlocked: true,
				Rooms: []catalog.Room{
					{
						ID:   "manor-entrance",
						Name: "Grand Entrance",
						Puzzles: []catalog.Puzzle{
							{
								ID:       "entrance-lock",
								Type:     catalog.PuzzleCombination,
								Solution: "3-6-4-1",
							},
						},
						Items: []catalog.Item{
							{ID: "dusty-journal", Name: "Dusty Journal", Category: catalog.CategoryDocument, IsUsable: true},
							{ID: "rusty-key", Name: "Rusty Key", Category: catalog.CategoryKey, IsKey: true, IsUsable: true},
						},
						Hunts: []catalog.Hunt{
							{
								ID:   "hidden-compartment",
								Name: "Hidden Compartment",
								HiddenObjects: []catalog.HiddenObject{
									{ID: "loose-panel", Name: "Loose Panel"},
									{ID: "brass-hinge", Name: "Brass Hinge"},
								},
								Reward: &catalog.Item{ID: "old-photograph", Name: "Old Photograph", IsUsable: true},
							},
						},
					},
					{
						ID:   "manor-library",
						Name: "Decaying Library",
						Puzzles: []catalog.Puzzle{
							{
								ID:               "bookshelf-puzzle",
								Type:             catalog.PuzzleSequence,
								SolutionSequence: []string{"red", "orange", "yellow"},
							},
							{
								ID:            "desk-riddle",
								Type:          catalog.PuzzleRiddle,
								Solution:      "BLOOD",
								RequiredItems: []string{"magnifying-glass"},
								MaxAttempts:   2,
							},
						},
						Items: []catalog.Item{
							{ID: "magnifying-glass", Name: "Magnifying Glass", Category: catalog.CategoryTool, IsUsable: true},
							{ID: "strange-device", Name: "Strange Device", IsUsable: true, CanCombine: true, CombinesWith: []string{"crystal"}},
							{ID: "crystal", Name: "Strange Crystal", IsUsable: true, CanCombine: true, CombinesWith: []string{"strange-device"}},
						},
					},
					{
						ID:            "manor-study",
						Name:          "Master Study",
						IsLocked:      true,
						RequiredKeyID: "rusty-key",
						Puzzles: []catalog.Puzzle{
							{
								ID:               "map-puzzle",
								Type:             catalog.PuzzlePattern,
								SolutionSequence: []string{"forest-path", "old-mill"},
								RequiredItems:    []string{"dusty-journal"},
							},
						},
					},
				},
			},
			{
				ID:         "level2",
				Name:       "The Abandoned Hospital",
				Difficulty: catalog.DifficultyHard,
				Rooms: []catalog.Room{
					{
						ID:   "hospital-reception",
						Name: "Reception Area",
						Puzzles: []catalog.Puzzle{
							{
								ID:       "computer-login",
								Type:     catalog.PuzzleCombination,
								Solution: "PROJECT_ASCENSION",
							},
						},
					},
				},
			},
		},
		Combinations: []catalog.Combination{
			{
				Item1ID: "strange-device",
				Item2ID: "crystal",
				Result:  catalog.Item{ID: "activated-device", Name: "Activated Device", IsUsable: true},
			},
		},
	}
}

func TestApply_UnknownIDsAreNoOps(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)
	gs = Apply(gs, cat, StartGame{})
	gs = Apply(gs, cat, AddItem{Item: catalog.Item{ID: "rusty-key", IsKey: true, IsUsable: true}})

	tests := []struct {
		name   string
		action Action
	}{
		{"unknown level", SetCurrentLevel{LevelID: "level99"}},
		{"unknown room", SetCurrentRoom{RoomID: "no-such-room"}},
		{"unknown item removal", RemoveItem{ItemID: "no-such-item"}},
		{"unknown level unlock", UnlockLevel{LevelID: "level99"}},
		{"unknown level completion", CompleteLevel{LevelID: "level99"}},
		{"unknown room completion", CompleteRoom{RoomID: "no-such-room"}},
		{"unknown hunt completion", CompleteHunt{HuntID: "no-such-hunt"}},
		{"unknown puzzle chain", SolvePuzzle{LevelID: "level1", RoomID: "manor-entrance", PuzzleID: "no-such-puzzle"}},
		{"valid puzzle in wrong room", SolvePuzzle{LevelID: "level1", RoomID: "manor-library", PuzzleID: "entrance-lock"}},
		{"valid room in wrong level", SolvePuzzle{LevelID: "level2", RoomID: "manor-entrance", PuzzleID: "entrance-lock"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Apply(gs, cat, tt.action)
			if !reflect.DeepEqual(next, gs) {
				t.Errorf("expected state unchanged, got %+v", next)
			}
		})
	}
}

func TestApply_StartAndCompleteGame(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)

	next := Apply(gs, cat, StartGame{})
	if !next.GameStarted {
		t.Error("expected game started")
	}
	if gs.GameStarted {
		t.Error("input snapshot must not be mutated")
	}

	next = Apply(next, cat, CompleteGame{})
	if !next.GameCompleted {
		t.Error("expected game completed")
	}
}

func TestApply_Settings(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)

	next := Apply(gs, cat, SetTheme{Theme: ThemeLight})
	if next.Settings.Theme != ThemeLight {
		t.Errorf("expected light theme, got %s", next.Settings.Theme)
	}

	next = Apply(next, cat, ToggleSound{})
	if next.Settings.SoundEnabled {
		t.Error("expected sound disabled after toggle")
	}
	next = Apply(next, cat, ToggleSound{})
	if !next.Settings.SoundEnabled {
		t.Error("expected sound re-enabled after second toggle")
	}

	next = Apply(next, cat, SetMusicVolume{Volume: 0.25})
	if next.Settings.MusicVolume != 0.25 {
		t.Errorf("expected music volume 0.25, got %f", next.Settings.MusicVolume)
	}
	next = Apply(next, cat, SetSFXVolume{Volume: 0.5})
	if next.Settings.SFXVolume != 0.5 {
		t.Errorf("expected sfx volume 0.5, got %f", next.Settings.SFXVolume)
	}
}

func TestApply_SetCurrentLevel(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)

	next := Apply(gs, cat, SetCurrentLevel{LevelID: "level1"})
	if next.Player.CurrentLevelID != "level1" {
		t.Errorf("expected current level level1, got %q", next.Player.CurrentLevelID)
	}
	if next.Player.CurrentRoomID != "manor-entrance" {
		t.Errorf("expected first room manor-entrance, got %q", next.Player.CurrentRoomID)
	}

	// Unknown level leaves the current room untouched.
	same := Apply(next, cat, SetCurrentLevel{LevelID: "level99"})
	if same.Player.CurrentRoomID != "manor-entrance" {
		t.Errorf("unknown level must not change current room, got %q", same.Player.CurrentRoomID)
	}
}

func TestApply_SetCurrentRoom(t *testing.T) {
	cat := testCatalog()
	gs := Apply(NewGameState(cat), cat, SetCurrentLevel{LevelID: "level1"})

	next := Apply(gs, cat, SetCurrentRoom{RoomID: "manor-library"})
	if next.Player.CurrentRoomID != "manor-library" {
		t.Errorf("expected manor-library, got %q", next.Player.CurrentRoomID)
	}
}

func TestApply_InventoryAddRemove(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)
	key := catalog.Item{ID: "rusty-key", Name: "Rusty Key", IsKey: true, IsUsable: true}

	next := Apply(gs, cat, AddItem{Item: key})
	if len(next.Player.Inventory) != 1 {
		t.Fatalf("expected 1 item, got %d", len(next.Player.Inventory))
	}

	next = Apply(next, cat, RemoveItem{ItemID: "rusty-key"})
	if len(next.Player.Inventory) != 0 {
		t.Fatalf("expected empty inventory, got %d items", len(next.Player.Inventory))
	}

	// No duplicate check on add: dispatching twice duplicates.
	next = Apply(next, cat, AddItem{Item: key})
	next = Apply(next, cat, AddItem{Item: key})
	if len(next.Player.Inventory) != 2 {
		t.Errorf("expected duplicate items allowed, got %d", len(next.Player.Inventory))
	}
	// Removal drops all copies of the id.
	next = Apply(next, cat, RemoveItem{ItemID: "rusty-key"})
	if len(next.Player.Inventory) != 0 {
		t.Errorf("expected all copies removed, got %d", len(next.Player.Inventory))
	}
}

func TestApply_UnlockAndCompleteLevel(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)

	if !gs.LevelUnlocked("level1") {
		t.Fatal("level1 should start unlocked")
	}
	if gs.LevelUnlocked("level2") {
		t.Fatal("level2 should start locked")
	}

	next := Apply(gs, cat, UnlockLevel{LevelID: "level2"})
	if !next.LevelUnlocked("level2") {
		t.Error("expected level2 unlocked")
	}

	next = Apply(next, cat, CompleteLevel{LevelID: "level1"})
	if !next.LevelCompleted("level1") {
		t.Error("expected level1 completed")
	}
	if next.Player.GameProgress != 50 {
		t.Errorf("expected progress 50, got %f", next.Player.GameProgress)
	}

	// Completing the same level again changes nothing.
	again := Apply(next, cat, CompleteLevel{LevelID: "level1"})
	if !reflect.DeepEqual(again, next) {
		t.Error("repeat completion must not change state")
	}

	next = Apply(next, cat, CompleteLevel{LevelID: "level2"})
	if next.Player.GameProgress != 100 {
		t.Errorf("expected progress 100, got %f", next.Player.GameProgress)
	}
}

func TestApply_ProgressNeverExceeds100(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)

	for _, id := range []string{"level1", "level2", "level1", "level2"} {
		gs = Apply(gs, cat, CompleteLevel{LevelID: id})
		if gs.Player.GameProgress > 100 {
			t.Fatalf("progress exceeded 100: %f", gs.Player.GameProgress)
		}
	}
}

func TestApply_CompleteRoomAndHunt(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)

	next := Apply(gs, cat, CompleteRoom{RoomID: "manor-entrance"})
	if !next.RoomCompleted("manor-entrance") {
		t.Error("expected room completed")
	}

	next = Apply(next, cat, CompleteHunt{HuntID: "hidden-compartment"})
	if !next.HuntCompleted("hidden-compartment") {
		t.Error("expected hunt completed")
	}
}

func TestApply_SolvePuzzleIdempotent(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)
	solve := SolvePuzzle{LevelID: "level1", RoomID: "manor-entrance", PuzzleID: "entrance-lock"}

	once := Apply(gs, cat, solve)
	if !once.PuzzleSolved("entrance-lock") {
		t.Fatal("expected puzzle solved")
	}
	twice := Apply(once, cat, solve)
	if !reflect.DeepEqual(twice, once) {
		t.Error("solving twice must equal solving once")
	}
}

func TestApply_Monotonicity(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)

	actions := []Action{
		StartGame{},
		SetCurrentLevel{LevelID: "level1"},
		SolvePuzzle{LevelID: "level1", RoomID: "manor-entrance", PuzzleID: "entrance-lock"},
		CompleteRoom{RoomID: "manor-entrance"},
		CompleteHunt{HuntID: "hidden-compartment"},
		UnlockLevel{LevelID: "level2"},
		CompleteLevel{LevelID: "level1"},
		SetCurrentRoom{RoomID: "manor-library"},
		AddItem{Item: catalog.Item{ID: "crystal"}},
		RemoveItem{ItemID: "crystal"},
		AdvanceStory{},
		SetTheme{Theme: ThemeLight},
	}

	for _, action := range actions {
		next := Apply(gs, cat, action)
		if gs.PuzzleSolved("entrance-lock") && !next.PuzzleSolved("entrance-lock") {
			t.Fatalf("puzzle un-solved by %T", action)
		}
		for _, id := range gs.Player.CompletedRooms {
			if !next.RoomCompleted(id) {
				t.Fatalf("room %q un-completed by %T", id, action)
			}
		}
		for _, id := range gs.Player.CompletedLevels {
			if !next.LevelCompleted(id) {
				t.Fatalf("level %q un-completed by %T", id, action)
			}
		}
		for _, id := range gs.Player.CompletedHunts {
			if !next.HuntCompleted(id) {
				t.Fatalf("hunt %q un-completed by %T", id, action)
			}
		}
		gs = next
	}
}

func TestApply_AdvanceStory(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)

	gs = Apply(gs, cat, AdvanceStory{})
	gs = Apply(gs, cat, AdvanceStory{})
	if gs.StoryProgress != 2 {
		t.Errorf("expected story progress 2, got %d", gs.StoryProgress)
	}
}

func TestApply_ResetGame(t *testing.T) {
	cat := testCatalog()
	initial := NewGameState(cat)

	gs := Apply(initial, cat, StartGame{})
	gs = Apply(gs, cat, SetCurrentLevel{LevelID: "level1"})
	gs = Apply(gs, cat, AddItem{Item: catalog.Item{ID: "rusty-key"}})
	gs = Apply(gs, cat, SolvePuzzle{LevelID: "level1", RoomID: "manor-entrance", PuzzleID: "entrance-lock"})
	gs = Apply(gs, cat, CompleteLevel{LevelID: "level1"})

	reset := Apply(gs, cat, ResetGame{})
	if reset.ID != initial.ID {
		t.Error("reset must preserve the session id")
	}
	if reset.GameStarted || reset.GameCompleted {
		t.Error("reset must clear game flags")
	}
	if len(reset.Player.Inventory) != 0 || len(reset.Player.CompletedLevels) != 0 || len(reset.SolvedPuzzles) != 0 {
		t.Error("reset must clear all progress")
	}
	if !reflect.DeepEqual(reset.Player.UnlockedLevels, []string{"level1"}) {
		t.Errorf("reset must restore starting unlocks, got %v", reset.Player.UnlockedLevels)
	}
	if reset.Settings != initial.Settings {
		t.Errorf("reset must restore default settings, got %+v", reset.Settings)
	}
}

func TestClone_Independence(t *testing.T) {
	cat := testCatalog()
	gs := NewGameState(cat)
	gs = Apply(gs, cat, AddItem{Item: catalog.Item{ID: "crystal", CombinesWith: []string{"strange-device"}}})

	clone := gs.Clone()
	clone.Player.Inventory[0].ID = "mutated"
	clone.Player.UnlockedLevels[0] = "mutated"
	clone.SolvedPuzzles["x"] = true

	if gs.Player.Inventory[0].ID != "crystal" {
		t.Error("clone shares inventory with source")
	}
	if gs.Player.UnlockedLevels[0] != "level1" {
		t.Error("clone shares unlock list with source")
	}
	if gs.PuzzleSolved("x") {
		t.Error("clone shares solved-puzzle map with source")
	}
}
