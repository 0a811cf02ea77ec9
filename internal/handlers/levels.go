package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/escape-legacy/pkg/catalog"
)

// LevelSummary is the list view of one level: enough for a level
// select screen without shipping every room and puzzle.
type LevelSummary struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Difficulty  catalog.Difficulty `json:"difficulty"`
	Rooms       int                `json:"rooms"`
}

type LevelsHandler struct {
	cat    *catalog.Catalog
	logger *slog.Logger
}

func NewLevelsHandler(cat *catalog.Catalog, logger *slog.Logger) *LevelsHandler {
	return &LevelsHandler{
		cat:    cat,
		logger: logger,
	}
}

// ServeHTTP handles HTTP requests for authored content
// Routes:
// GET /v1/levels      - List level summaries
// GET /v1/levels/{id} - Read one level in full
func (h *LevelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		h.logger.Warn("Method not allowed for levels endpoint", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Method not allowed. Supported methods: GET"}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	levelID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/levels"), "/")

	if levelID == "" {
		summaries := make([]LevelSummary, 0, len(h.cat.Levels))
		for i := range h.cat.Levels {
			level := &h.cat.Levels[i]
			summaries = append(summaries, LevelSummary{
				ID:          level.ID,
				Name:        level.Name,
				Description: level.Description,
				Difficulty:  level.Difficulty,
				Rooms:       len(level.Rooms),
			})
		}
		if err := json.NewEncoder(w).Encode(summaries); err != nil {
			h.logger.Error("Failed to encode levels response", "error", err)
		}
		return
	}

	level, ok := h.cat.Level(levelID)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Level not found"}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	if err := json.NewEncoder(w).Encode(level); err != nil {
		h.logger.Error("Failed to encode level response", "error", err)
	}
}
