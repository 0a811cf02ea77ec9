// Package session owns live game sessions: each session wraps one
// GameState snapshot behind a store that serializes transitions,
// notifies subscribers and writes snapshots through to storage.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jwebster45206/escape-legacy/internal/storage"
	"github.com/jwebster45206/escape-legacy/pkg/catalog"
	"github.com/jwebster45206/escape-legacy/pkg/state"
)

const persistTimeout = 5 * time.Second

// Store holds the current snapshot of one session. All access goes
// through its methods; the snapshot itself is immutable, so readers
// holding an old snapshot are never invalidated by a Dispatch.
type Store struct {
	mu      sync.RWMutex
	cat     *catalog.Catalog
	gs      *state.GameState
	storage storage.Storage
	logger  *slog.Logger

	subID       int
	subscribers map[int]func(*state.GameState)
}

// NewStore wraps an existing snapshot in a store.
func NewStore(cat *catalog.Catalog, gs *state.GameState, st storage.Storage, logger *slog.Logger) *Store {
	return &Store{
		cat:         cat,
		gs:          gs,
		storage:     st,
		logger:      logger,
		subscribers: make(map[int]func(*state.GameState)),
	}
}

// Snapshot returns the current snapshot. The returned value must be
// treated as read-only.
func (s *Store) Snapshot() *state.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gs
}

// Dispatch applies one action and returns the resulting snapshot.
// Actions that change nothing do not notify subscribers or persist.
func (s *Store) Dispatch(action state.Action) *state.GameState {
	s.mu.Lock()
	next := state.Apply(s.gs, s.cat, action)
	changed := next != s.gs
	if changed {
		s.gs = next
	}
	subs := s.snapshotSubscribers()
	s.mu.Unlock()

	if changed {
		for _, fn := range subs {
			fn(next)
		}
		s.persist(next)
	}
	return next
}

// Combine attempts an item combination and returns the outcome. A
// successful combination advances the snapshot like a dispatch.
func (s *Store) Combine(itemID1, itemID2 string) (*state.GameState, state.CombineResult) {
	s.mu.Lock()
	next, result := state.Combine(s.gs, s.cat, itemID1, itemID2)
	if result.Success {
		s.gs = next
	}
	subs := s.snapshotSubscribers()
	s.mu.Unlock()

	if result.Success {
		for _, fn := range subs {
			fn(next)
		}
		s.persist(next)
	}
	return next, result
}

// Subscribe registers a listener called after every state change. The
// returned function removes the listener; it is safe to call more
// than once.
func (s *Store) Subscribe(fn func(*state.GameState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.subID
	s.subID++
	s.subscribers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
		})
	}
}

func (s *Store) snapshotSubscribers() []func(*state.GameState) {
	out := make([]func(*state.GameState), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		out = append(out, fn)
	}
	return out
}

// persist writes the snapshot through to storage. Persistence begins
// once the game is started; earlier snapshots stay in memory only.
// The write happens off the dispatch path; a failed write is logged
// and the next change writes again.
func (s *Store) persist(gs *state.GameState) {
	if !gs.GameStarted {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.storage.SaveGameState(ctx, gs.ID, gs.Clone()); err != nil {
			s.logger.Error("Failed to persist gamestate", "uuid", gs.ID, "error", err)
		}
	}()
}
