// Package state holds the mutable session state of an escape game and
// the pure transition function that advances it. A GameState is a
// snapshot: transitions never mutate their input, they return a new
// snapshot. Static content lives in the catalog package and is merged
// with player progress at query time.
package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/escape-legacy/pkg/catalog"
)

// ThemeMode selects the UI color scheme.
type ThemeMode string

const (
	ThemeDark  ThemeMode = "dark"
	ThemeLight ThemeMode = "light"
)

// Settings holds player-adjustable preferences.
type Settings struct {
	Theme        ThemeMode `json:"theme"`
	SoundEnabled bool      `json:"sound_enabled"`
	MusicVolume  float64   `json:"music_volume"` // 0.0-1.0, clamping is the caller's job
	SFXVolume    float64   `json:"sfx_volume"`   // 0.0-1.0, clamping is the caller's job
}

// Player is the player's progress through the game. The id lists are
// monotonic: entries are only ever added, never removed (except by a
// full game reset).
type Player struct {
	CurrentLevelID  string         `json:"current_level_id,omitempty"`
	CurrentRoomID   string         `json:"current_room_id,omitempty"`
	Inventory       []catalog.Item `json:"inventory"`
	UnlockedLevels  []string       `json:"unlocked_levels"`
	CompletedLevels []string       `json:"completed_levels"`
	CompletedRooms  []string       `json:"completed_rooms"`
	CompletedHunts  []string       `json:"completed_hunts"`
	GameProgress    float64        `json:"game_progress"` // 0-100
}

// GameState is one snapshot of an escape game session. It references
// the catalog by id only; the catalog itself is shared, read-only and
// never serialized with the session.
type GameState struct {
	ID       uuid.UUID `json:"id"`
	Settings Settings  `json:"settings"`
	Player   Player    `json:"player"`

	// SolvedPuzzles is the progress overlay for puzzles, keyed by
	// puzzle id. Once a puzzle id is present it is never removed.
	SolvedPuzzles map[string]bool `json:"solved_puzzles,omitempty"`

	StoryProgress int  `json:"story_progress"`
	GameStarted   bool `json:"game_started"`
	GameCompleted bool `json:"game_completed"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewGameState returns the canonical initial snapshot for a fresh
// session against the given catalog.
func NewGameState(cat *catalog.Catalog) *GameState {
	return &GameState{
		ID: uuid.New(),
		Settings: Settings{
			Theme:        ThemeDark,
			SoundEnabled: true,
			MusicVolume:  0.7,
			SFXVolume:    0.8,
		},
		Player: Player{
			Inventory:       make([]catalog.Item, 0),
			UnlockedLevels:  cat.StartingLevelIDs(),
			CompletedLevels: make([]string, 0),
			CompletedRooms:  make([]string, 0),
			CompletedHunts:  make([]string, 0),
		},
		SolvedPuzzles: make(map[string]bool),
		CreatedAt:     time.Now(),
	}
}

// Clone returns a deep copy of the snapshot. Transitions clone before
// mutating so that prior snapshots stay valid for readers.
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	out := *gs
	out.Player.Inventory = make([]catalog.Item, len(gs.Player.Inventory))
	for i, item := range gs.Player.Inventory {
		out.Player.Inventory[i] = item
		if item.CombinesWith != nil {
			out.Player.Inventory[i].CombinesWith = append([]string(nil), item.CombinesWith...)
		}
	}
	out.Player.UnlockedLevels = append([]string(nil), gs.Player.UnlockedLevels...)
	out.Player.CompletedLevels = append([]string(nil), gs.Player.CompletedLevels...)
	out.Player.CompletedRooms = append([]string(nil), gs.Player.CompletedRooms...)
	out.Player.CompletedHunts = append([]string(nil), gs.Player.CompletedHunts...)
	out.SolvedPuzzles = make(map[string]bool, len(gs.SolvedPuzzles))
	for k, v := range gs.SolvedPuzzles {
		out.SolvedPuzzles[k] = v
	}
	return &out
}

// HasItem reports whether the inventory holds an item with the given id.
func (gs *GameState) HasItem(itemID string) bool {
	for _, item := range gs.Player.Inventory {
		if item.ID == itemID {
			return true
		}
	}
	return false
}

// InventoryItem returns the inventory item with the given id.
func (gs *GameState) InventoryItem(itemID string) (*catalog.Item, bool) {
	for i := range gs.Player.Inventory {
		if gs.Player.Inventory[i].ID == itemID {
			return &gs.Player.Inventory[i], true
		}
	}
	return nil, false
}

// PuzzleSolved reports whether the puzzle has been solved.
func (gs *GameState) PuzzleSolved(puzzleID string) bool {
	return gs.SolvedPuzzles[puzzleID]
}

// LevelUnlocked reports whether the level is unlocked for the player.
func (gs *GameState) LevelUnlocked(levelID string) bool {
	return contains(gs.Player.UnlockedLevels, levelID)
}

// LevelCompleted reports whether the level has been completed.
func (gs *GameState) LevelCompleted(levelID string) bool {
	return contains(gs.Player.CompletedLevels, levelID)
}

// RoomCompleted reports whether the room has been completed.
func (gs *GameState) RoomCompleted(roomID string) bool {
	return contains(gs.Player.CompletedRooms, roomID)
}

// HuntCompleted reports whether the hunt has been completed. The
// player's completed-hunt list is the single source of truth for hunt
// completion.
func (gs *GameState) HuntCompleted(huntID string) bool {
	return contains(gs.Player.CompletedHunts, huntID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
