package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/escape-legacy/pkg/catalog"
	"github.com/jwebster45206/escape-legacy/pkg/state"
)

// Storage defines persistence for game sessions and access to the
// authored catalog content.
type Storage interface {
	// Ping tests the storage connection
	Ping(ctx context.Context) error

	// Close closes the storage connection
	Close() error

	// SaveGameState saves a session snapshot under its UUID
	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error

	// LoadGameState retrieves a session snapshot by UUID.
	// Returns nil, nil if no snapshot exists.
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)

	// DeleteGameState removes a session snapshot by UUID
	DeleteGameState(ctx context.Context, id uuid.UUID) error

	// MarkInstructionsSeen records that the player has dismissed the
	// first-play instructions for this session
	MarkInstructionsSeen(ctx context.Context, id uuid.UUID) error

	// InstructionsSeen reports whether the first-play instructions
	// have been dismissed for this session
	InstructionsSeen(ctx context.Context, id uuid.UUID) (bool, error)

	// LoadCatalog reads the authored content from the data directory
	LoadCatalog(ctx context.Context) (*catalog.Catalog, error)
}
