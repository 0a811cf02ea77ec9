package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/escape-legacy/internal/session"
	"github.com/jwebster45206/escape-legacy/pkg/state"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// SessionResponse is the full view of one session: the raw snapshot
// plus the merged level statuses derived from it.
type SessionResponse struct {
	GameState        *state.GameState    `json:"game_state"`
	Levels           []state.LevelStatus `json:"levels"`
	InstructionsSeen bool                `json:"instructions_seen"`
}

// SolveRequest submits a candidate solution for a puzzle.
type SolveRequest struct {
	LevelID  string       `json:"level_id"`
	RoomID   string       `json:"room_id"`
	PuzzleID string       `json:"puzzle_id"`
	Answer   state.Answer `json:"answer"`
}

// SolveResponse reports the evaluation outcome. On a correct answer
// the puzzle is marked solved and the new snapshot is returned.
type SolveResponse struct {
	Correct      bool             `json:"correct"`
	MissingItems []string         `json:"missing_items,omitempty"`
	GameState    *state.GameState `json:"game_state"`
}

// CombineRequest attempts to merge two inventory items.
type CombineRequest struct {
	Item1ID string `json:"item1_id"`
	Item2ID string `json:"item2_id"`
}

// CombineResponse reports the combination outcome and the snapshot
// after it.
type CombineResponse struct {
	state.CombineResult
	GameState *state.GameState `json:"game_state"`
}

type SessionHandler struct {
	manager *session.Manager
	logger  *slog.Logger
}

func NewSessionHandler(manager *session.Manager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		manager: manager,
		logger:  logger,
	}
}

func (h *SessionHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}

func (h *SessionHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// ServeHTTP handles HTTP requests for session operations
// Routes:
// POST /v1/session                    - Create new session
// GET /v1/session/{id}                - Read session by ID
// DELETE /v1/session/{id}             - Delete session by ID
// POST /v1/session/{id}/action        - Apply a state transition
// POST /v1/session/{id}/solve         - Evaluate a puzzle solution
// POST /v1/session/{id}/combine       - Combine two inventory items
// POST /v1/session/{id}/instructions  - Mark first-play instructions seen
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/session"), "/")

	if path == "" {
		if r.Method != http.MethodPost {
			h.logger.Warn("Method not allowed for session collection", "method", r.Method)
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	sessionID, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", parts[0], "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	store, err := h.manager.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		h.logger.Error("Failed to load session", "uuid", sessionID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, store)
		case http.MethodDelete:
			h.handleDelete(w, r, sessionID)
		default:
			h.logger.Warn("Method not allowed for session endpoint", "method", r.Method)
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
		}
		return
	}

	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	switch parts[1] {
	case "action":
		h.handleAction(w, r, store)
	case "solve":
		h.handleSolve(w, r, store)
	case "combine":
		h.handleCombine(w, r, store)
	case "instructions":
		h.handleInstructions(w, r, sessionID)
	default:
		h.writeError(w, http.StatusNotFound, "Unknown session operation")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	store, err := h.manager.Create(r.Context())
	if err != nil {
		h.logger.Error("Failed to create session", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	h.writeJSON(w, http.StatusCreated, h.sessionResponse(r, store))
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, store *session.Store) {
	h.writeJSON(w, http.StatusOK, h.sessionResponse(r, store))
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.manager.Delete(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete session", "uuid", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) handleAction(w http.ResponseWriter, r *http.Request, store *session.Store) {
	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	action, err := req.Action()
	if err != nil {
		h.logger.Warn("Rejected action request", "type", req.Type, "error", err)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	store.Dispatch(action)
	h.writeJSON(w, http.StatusOK, h.sessionResponse(r, store))
}

func (h *SessionHandler) handleSolve(w http.ResponseWriter, r *http.Request, store *session.Store) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cat := h.manager.Catalog()
	puzzle, ok := cat.Puzzle(req.LevelID, req.RoomID, req.PuzzleID)
	if !ok {
		h.writeError(w, http.StatusNotFound, "Puzzle not found")
		return
	}

	gs := store.Snapshot()
	if missing := state.MissingItems(gs, puzzle); len(missing) > 0 {
		h.writeJSON(w, http.StatusOK, SolveResponse{MissingItems: missing, GameState: gs})
		return
	}

	if !state.EvaluateSolution(puzzle, req.Answer) {
		h.writeJSON(w, http.StatusOK, SolveResponse{GameState: gs})
		return
	}

	next := store.Dispatch(state.SolvePuzzle{LevelID: req.LevelID, RoomID: req.RoomID, PuzzleID: req.PuzzleID})
	h.writeJSON(w, http.StatusOK, SolveResponse{Correct: true, GameState: next})
}

func (h *SessionHandler) handleCombine(w http.ResponseWriter, r *http.Request, store *session.Store) {
	var req CombineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Item1ID == "" || req.Item2ID == "" {
		h.writeError(w, http.StatusBadRequest, "Both item ids are required")
		return
	}

	next, result := store.Combine(req.Item1ID, req.Item2ID)
	h.writeJSON(w, http.StatusOK, CombineResponse{CombineResult: result, GameState: next})
}

func (h *SessionHandler) handleInstructions(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.manager.MarkInstructionsSeen(r.Context(), id); err != nil {
		h.logger.Error("Failed to mark instructions seen", "uuid", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to mark instructions seen")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) sessionResponse(r *http.Request, store *session.Store) SessionResponse {
	gs := store.Snapshot()
	seen, err := h.manager.InstructionsSeen(r.Context(), gs.ID)
	if err != nil {
		h.logger.Warn("Failed to check instructions flag", "uuid", gs.ID, "error", err)
	}
	return SessionResponse{
		GameState:        gs,
		Levels:           state.LevelStatuses(gs, h.manager.Catalog()),
		InstructionsSeen: seen,
	}
}
