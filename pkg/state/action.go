package state

import "github.com/jwebster45206/escape-legacy/pkg/catalog"

// Action is a closed set of state transitions. Each variant carries
// its payload; Apply matches exhaustively. Actions that reference an
// unknown id are no-ops: the input snapshot is returned unchanged.
type Action interface {
	isAction()
}

// StartGame marks the session as started. Persistence begins once a
// session is started.
type StartGame struct{}

// CompleteGame marks the whole game as completed.
type CompleteGame struct{}

// SetTheme overwrites the UI theme.
type SetTheme struct {
	Theme ThemeMode `json:"theme"`
}

// ToggleSound flips the sound-enabled setting.
type ToggleSound struct{}

// SetMusicVolume overwrites the music volume. Not clamped here.
type SetMusicVolume struct {
	Volume float64 `json:"volume"`
}

// SetSFXVolume overwrites the sound-effect volume. Not clamped here.
type SetSFXVolume struct {
	Volume float64 `json:"volume"`
}

// SetCurrentLevel moves the player to a level and to its first room.
type SetCurrentLevel struct {
	LevelID string `json:"level_id"`
}

// SetCurrentRoom moves the player to a room within any level.
type SetCurrentRoom struct {
	RoomID string `json:"room_id"`
}

// AddItem appends an item to the inventory. No duplicate check is
// performed; dispatching twice with the same item duplicates it.
type AddItem struct {
	Item catalog.Item `json:"item"`
}

// RemoveItem removes the inventory item with the given id.
type RemoveItem struct {
	ItemID string `json:"item_id"`
}

// UnlockLevel records a level as unlocked.
type UnlockLevel struct {
	LevelID string `json:"level_id"`
}

// CompleteLevel records a level as completed and advances overall game
// progress by an equal share per level, capped at 100.
type CompleteLevel struct {
	LevelID string `json:"level_id"`
}

// CompleteRoom records a room as completed.
type CompleteRoom struct {
	RoomID string `json:"room_id"`
}

// CompleteHunt records a hunt as completed on the player.
type CompleteHunt struct {
	HuntID string `json:"hunt_id"`
}

// SolvePuzzle marks a puzzle as solved. The puzzle is located by the
// full level/room/puzzle id chain; if any link is missing the action
// is a no-op.
type SolvePuzzle struct {
	LevelID  string `json:"level_id"`
	RoomID   string `json:"room_id"`
	PuzzleID string `json:"puzzle_id"`
}

// AdvanceStory increments the story progress counter.
type AdvanceStory struct{}

// ResetGame replaces the session with the canonical initial snapshot.
type ResetGame struct{}

func (StartGame) isAction()       {}
func (CompleteGame) isAction()    {}
func (SetTheme) isAction()        {}
func (ToggleSound) isAction()     {}
func (SetMusicVolume) isAction()  {}
func (SetSFXVolume) isAction()    {}
func (SetCurrentLevel) isAction() {}
func (SetCurrentRoom) isAction()  {}
func (AddItem) isAction()         {}
func (RemoveItem) isAction()      {}
func (UnlockLevel) isAction()     {}
func (CompleteLevel) isAction()   {}
func (CompleteRoom) isAction()    {}
func (CompleteHunt) isAction()    {}
func (SolvePuzzle) isAction()     {}
func (AdvanceStory) isAction()    {}
func (ResetGame) isAction()       {}
