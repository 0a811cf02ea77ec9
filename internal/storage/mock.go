package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/escape-legacy/pkg/catalog"
	"github.com/jwebster45206/escape-legacy/pkg/state"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu           sync.RWMutex
	gamestates   map[uuid.UUID]*state.GameState
	instructions map[uuid.UUID]bool
	catalog      *catalog.Catalog
	pingError    error
	saveError    error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		gamestates:   make(map[uuid.UUID]*state.GameState),
		instructions: make(map[uuid.UUID]bool),
	}
}

// SetCatalog configures the catalog returned by LoadCatalog
func (m *MockStorage) SetCatalog(cat *catalog.Catalog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = cat
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures the mock to fail on save with the given error
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	return nil
}

// SaveGameState mocks saving a session snapshot
func (m *MockStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	if gs == nil {
		return errors.New("gamestate cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.gamestates[id] = gs.Clone()
	return nil
}

// LoadGameState mocks loading a session snapshot
func (m *MockStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	gs, ok := m.gamestates[id]
	if !ok {
		return nil, nil
	}
	return gs.Clone(), nil
}

// DeleteGameState mocks deleting a session snapshot
func (m *MockStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.gamestates, id)
	delete(m.instructions, id)
	return nil
}

// MarkInstructionsSeen mocks recording the instructions flag
func (m *MockStorage) MarkInstructionsSeen(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.instructions[id] = true
	return nil
}

// InstructionsSeen mocks reading the instructions flag
func (m *MockStorage) InstructionsSeen(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.instructions[id], nil
}

// LoadCatalog returns the configured catalog
func (m *MockStorage) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.catalog == nil {
		return nil, errors.New("no catalog configured")
	}
	return m.catalog, nil
}
