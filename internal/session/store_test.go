package session

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/escape-legacy/internal/storage"
	"github.com/jwebster45206/escape-legacy/pkg/catalog"
	"github.com/jwebster45206/escape-legacy/pkg/state"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

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
							{ID: "entrance-lock", Type: catalog.PuzzleCombination, Solution: "3-6-4-1"},
						},
						Items: []catalog.Item{
							{ID: "strange-device", Name: "Strange Device", CanCombine: true, CombinesWith: []string{"crystal"}},
							{ID: "crystal", Name: "Strange Crystal", CanCombine: true, CombinesWith: []string{"strange-device"}},
						},
					},
				},
			},
		},
		Combinations: []catalog.Combination{
			{Item1ID: "strange-device", Item2ID: "crystal", Result: catalog.Item{ID: "activated-device", Name: "Activated Device"}},
		},
	}
}

func newTestStore(t *testing.T) (*Store, *storage.MockStorage) {
	t.Helper()
	cat := testCatalog()
	mock := storage.NewMockStorage()
	mock.SetCatalog(cat)
	gs := state.NewGameState(cat)
	return NewStore(cat, gs, mock, testLogger()), mock
}

func waitForPersist(t *testing.T, mock *storage.MockStorage, id uuid.UUID) *state.GameState {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		gs, err := mock.LoadGameState(context.Background(), id)
		if err != nil {
			t.Fatalf("Failed to load gamestate: %v", err)
		}
		if gs != nil && gs.GameStarted {
			return gs
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Timed out waiting for persisted gamestate")
	return nil
}

func TestStore_Dispatch(t *testing.T) {
	store, _ := newTestStore(t)

	before := store.Snapshot()
	next := store.Dispatch(state.StartGame{})
	if !next.GameStarted {
		t.Error("expected game started")
	}
	if before.GameStarted {
		t.Error("prior snapshot must not change")
	}
	if store.Snapshot() != next {
		t.Error("store must hold the new snapshot")
	}
}

func TestStore_DispatchNoOpKeepsSnapshot(t *testing.T) {
	store, _ := newTestStore(t)

	before := store.Snapshot()
	next := store.Dispatch(state.SetCurrentLevel{LevelID: "level99"})
	if next != before {
		t.Error("no-op dispatch must return the same snapshot")
	}
}

func TestStore_Subscribe(t *testing.T) {
	store, _ := newTestStore(t)

	var got []*state.GameState
	unsubscribe := store.Subscribe(func(gs *state.GameState) {
		got = append(got, gs)
	})

	store.Dispatch(state.SetCurrentLevel{LevelID: "level1"})
	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	if got[0].Player.CurrentLevelID != "level1" {
		t.Errorf("notification carries wrong snapshot: %+v", got[0].Player)
	}

	// No-ops do not notify.
	store.Dispatch(state.SetCurrentLevel{LevelID: "level99"})
	if len(got) != 1 {
		t.Fatalf("no-op must not notify, got %d notifications", len(got))
	}

	unsubscribe()
	store.Dispatch(state.ToggleSound{})
	if len(got) != 1 {
		t.Errorf("unsubscribed listener was notified")
	}

	unsubscribe() // safe to call again
}

func TestStore_PersistsStartedSessions(t *testing.T) {
	store, mock := newTestStore(t)
	id := store.Snapshot().ID

	// Changes before the game starts are not persisted.
	store.Dispatch(state.SetTheme{Theme: state.ThemeLight})
	gs, err := mock.LoadGameState(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to load gamestate: %v", err)
	}
	if gs != nil {
		t.Error("unstarted session must not be persisted")
	}

	store.Dispatch(state.StartGame{})
	persisted := waitForPersist(t, mock, id)
	if persisted.Settings.Theme != state.ThemeLight {
		t.Errorf("persisted snapshot missing settings change: %+v", persisted.Settings)
	}
}

func TestStore_Combine(t *testing.T) {
	store, _ := newTestStore(t)
	store.Dispatch(state.AddItem{Item: catalog.Item{ID: "strange-device", CanCombine: true, CombinesWith: []string{"crystal"}}})
	store.Dispatch(state.AddItem{Item: catalog.Item{ID: "crystal", CanCombine: true, CombinesWith: []string{"strange-device"}}})

	next, result := store.Combine("crystal", "strange-device")
	if !result.Success {
		t.Fatal("expected combination to succeed")
	}
	if len(next.Player.Inventory) != 1 || next.Player.Inventory[0].ID != "activated-device" {
		t.Errorf("unexpected inventory: %+v", next.Player.Inventory)
	}
	if store.Snapshot() != next {
		t.Error("store must hold the combined snapshot")
	}

	// Failed combinations leave the snapshot in place.
	same, result := store.Combine("activated-device", "crystal")
	if result.Success {
		t.Fatal("expected failure")
	}
	if same != next || store.Snapshot() != next {
		t.Error("failed combination must not advance the snapshot")
	}
}

func TestManager_CreateAndGet(t *testing.T) {
	cat := testCatalog()
	mock := storage.NewMockStorage()
	mock.SetCatalog(cat)
	m := NewManager(cat, mock, testLogger())
	ctx := context.Background()

	store, err := m.Create(ctx)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	id := store.Snapshot().ID

	// Creation persists the initial snapshot.
	gs, err := mock.LoadGameState(ctx, id)
	if err != nil || gs == nil {
		t.Fatalf("expected persisted snapshot, got %+v, %v", gs, err)
	}

	again, err := m.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if again != store {
		t.Error("Get must return the live store")
	}
}

func TestManager_RehydratesFromStorage(t *testing.T) {
	cat := testCatalog()
	mock := storage.NewMockStorage()
	mock.SetCatalog(cat)
	ctx := context.Background()

	gs := state.NewGameState(cat)
	gs.GameStarted = true
	gs.SolvedPuzzles["entrance-lock"] = true
	if err := mock.SaveGameState(ctx, gs.ID, gs); err != nil {
		t.Fatalf("Failed to seed storage: %v", err)
	}

	m := NewManager(cat, mock, testLogger())
	store, err := m.Get(ctx, gs.ID)
	if err != nil {
		t.Fatalf("Failed to rehydrate session: %v", err)
	}
	if !store.Snapshot().PuzzleSolved("entrance-lock") {
		t.Error("rehydrated snapshot lost progress")
	}
}

func TestManager_GetUnknownSession(t *testing.T) {
	cat := testCatalog()
	mock := storage.NewMockStorage()
	m := NewManager(cat, mock, testLogger())

	if _, err := m.Get(context.Background(), uuid.New()); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestManager_Delete(t *testing.T) {
	cat := testCatalog()
	mock := storage.NewMockStorage()
	m := NewManager(cat, mock, testLogger())
	ctx := context.Background()

	store, err := m.Create(ctx)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	id := store.Snapshot().ID

	if err := m.Delete(ctx, id); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := m.Get(ctx, id); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
