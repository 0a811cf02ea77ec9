package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/jwebster45206/escape-legacy/pkg/catalog"
	"github.com/jwebster45206/escape-legacy/pkg/state"
)

// ActionRequest is the wire form of a state transition. Type selects
// the action; the remaining fields are read per type and ignored
// otherwise.
type ActionRequest struct {
	Type string `json:"type"`

	Theme   string  `json:"theme,omitempty"`
	Volume  float64 `json:"volume,omitempty"`
	LevelID string  `json:"level_id,omitempty"`
	RoomID  string  `json:"room_id,omitempty"`
	ItemID  string  `json:"item_id,omitempty"`
	HuntID  string  `json:"hunt_id,omitempty"`

	PuzzleID string `json:"puzzle_id,omitempty"`

	Item *catalog.Item `json:"item,omitempty"`
}

// Action converts the request to a state transition. Unknown or
// malformed requests return an error for a 400 response.
func (req *ActionRequest) Action() (state.Action, error) {
	switch req.Type {
	case "start_game":
		return state.StartGame{}, nil
	case "complete_game":
		return state.CompleteGame{}, nil
	case "set_theme":
		theme := state.ThemeMode(req.Theme)
		if theme != state.ThemeDark && theme != state.ThemeLight {
			return nil, fmt.Errorf("unknown theme %q", req.Theme)
		}
		return state.SetTheme{Theme: theme}, nil
	case "toggle_sound":
		return state.ToggleSound{}, nil
	case "set_music_volume":
		return state.SetMusicVolume{Volume: req.Volume}, nil
	case "set_sfx_volume":
		return state.SetSFXVolume{Volume: req.Volume}, nil
	case "set_current_level":
		return state.SetCurrentLevel{LevelID: req.LevelID}, nil
	case "set_current_room":
		return state.SetCurrentRoom{RoomID: req.RoomID}, nil
	case "add_item":
		if req.Item == nil {
			return nil, fmt.Errorf("add_item requires an item")
		}
		return state.AddItem{Item: *req.Item}, nil
	case "remove_item":
		return state.RemoveItem{ItemID: req.ItemID}, nil
	case "unlock_level":
		return state.UnlockLevel{LevelID: req.LevelID}, nil
	case "complete_level":
		return state.CompleteLevel{LevelID: req.LevelID}, nil
	case "complete_room":
		return state.CompleteRoom{RoomID: req.RoomID}, nil
	case "complete_hunt":
		return state.CompleteHunt{HuntID: req.HuntID}, nil
	case "solve_puzzle":
		return state.SolvePuzzle{LevelID: req.LevelID, RoomID: req.RoomID, PuzzleID: req.PuzzleID}, nil
	case "advance_story":
		return state.AdvanceStory{}, nil
	case "reset_game":
		return state.ResetGame{}, nil
	}
	return nil, fmt.Errorf("unknown action type %q", req.Type)
}

// MarshalAction converts a transition back to its wire form. Used by
// clients; kept next to Action so the two stay in sync.
func MarshalAction(action state.Action) ([]byte, error) {
	var req ActionRequest
	switch a := action.(type) {
	case state.StartGame:
		req.Type = "start_game"
	case state.CompleteGame:
		req.Type = "complete_game"
	case state.SetTheme:
		req.Type = "set_theme"
		req.Theme = string(a.Theme)
	case state.ToggleSound:
		req.Type = "toggle_sound"
	case state.SetMusicVolume:
		req.Type = "set_music_volume"
		req.Volume = a.Volume
	case state.SetSFXVolume:
		req.Type = "set_sfx_volume"
		req.Volume = a.Volume
	case state.SetCurrentLevel:
		req.Type = "set_current_level"
		req.LevelID = a.LevelID
	case state.SetCurrentRoom:
		req.Type = "set_current_room"
		req.RoomID = a.RoomID
	case state.AddItem:
		req.Type = "add_item"
		item := a.Item
		req.Item = &item
	case state.RemoveItem:
		req.Type = "remove_item"
		req.ItemID = a.ItemID
	case state.UnlockLevel:
		req.Type = "unlock_level"
		req.LevelID = a.LevelID
	case state.CompleteLevel:
		req.Type = "complete_level"
		req.LevelID = a.LevelID
	case state.CompleteRoom:
		req.Type = "complete_room"
		req.RoomID = a.RoomID
	case state.CompleteHunt:
		req.Type = "complete_hunt"
		req.HuntID = a.HuntID
	case state.SolvePuzzle:
		req.Type = "solve_puzzle"
		req.LevelID = a.LevelID
		req.RoomID = a.RoomID
		req.PuzzleID = a.PuzzleID
	case state.AdvanceStory:
		req.Type = "advance_story"
	case state.ResetGame:
		req.Type = "reset_game"
	default:
		return nil, fmt.Errorf("unsupported action %T", action)
	}
	return json.Marshal(req)
}
