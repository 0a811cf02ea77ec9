package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/escape-legacy/internal/storage"
	"github.com/jwebster45206/escape-legacy/pkg/catalog"
	"github.com/jwebster45206/escape-legacy/pkg/state"
)

// ErrNotFound is returned when no session exists for the given id,
// in memory or in storage.
var ErrNotFound = errors.New("session not found")

// Manager tracks live session stores by id and rehydrates dormant
// sessions from storage on demand.
type Manager struct {
	mu      sync.Mutex
	cat     *catalog.Catalog
	storage storage.Storage
	logger  *slog.Logger
	stores  map[uuid.UUID]*Store
}

// NewManager creates a session manager over the given catalog.
func NewManager(cat *catalog.Catalog, st storage.Storage, logger *slog.Logger) *Manager {
	return &Manager{
		cat:     cat,
		storage: st,
		logger:  logger,
		stores:  make(map[uuid.UUID]*Store),
	}
}

// Catalog returns the authored content the manager serves.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.cat
}

// Create starts a new session with a fresh snapshot and persists it.
func (m *Manager) Create(ctx context.Context) (*Store, error) {
	gs := state.NewGameState(m.cat)
	if err := m.storage.SaveGameState(ctx, gs.ID, gs.Clone()); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	store := NewStore(m.cat, gs, m.storage, m.logger)
	m.mu.Lock()
	m.stores[gs.ID] = store
	m.mu.Unlock()

	m.logger.Info("Session created", "uuid", gs.ID)
	return store, nil
}

// Get returns the live store for the session, rehydrating it from
// storage if the session is dormant. Returns ErrNotFound if the
// session does not exist anywhere.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*Store, error) {
	m.mu.Lock()
	if store, ok := m.stores[id]; ok {
		m.mu.Unlock()
		return store, nil
	}
	m.mu.Unlock()

	gs, err := m.storage.LoadGameState(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if gs == nil {
		return nil, ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// A concurrent Get may have rehydrated first; keep that store.
	if store, ok := m.stores[id]; ok {
		return store, nil
	}
	store := NewStore(m.cat, gs, m.storage, m.logger)
	m.stores[id] = store
	m.logger.Debug("Session rehydrated", "uuid", id)
	return store, nil
}

// MarkInstructionsSeen records that the first-play instructions were
// dismissed for this session.
func (m *Manager) MarkInstructionsSeen(ctx context.Context, id uuid.UUID) error {
	return m.storage.MarkInstructionsSeen(ctx, id)
}

// InstructionsSeen reports whether the first-play instructions were
// dismissed for this session.
func (m *Manager) InstructionsSeen(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.storage.InstructionsSeen(ctx, id)
}

// Delete removes the session from memory and storage.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	delete(m.stores, id)
	m.mu.Unlock()

	if err := m.storage.DeleteGameState(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	m.logger.Info("Session deleted", "uuid", id)
	return nil
}
