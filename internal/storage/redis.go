package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/escape-legacy/pkg/catalog"
	"github.com/jwebster45206/escape-legacy/pkg/state"
)

// Session snapshots expire after a day of inactivity; every save
// refreshes the TTL.
const sessionTTL = 24 * time.Hour

// RedisStorage implements the Storage interface using Redis for game
// sessions and the filesystem for authored content (levels,
// characters, combination rules).
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  rdb,
		logger:  logger,
		dataDir: dataDir,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Session operations (Redis-backed)

func gameStateKey(id uuid.UUID) string {
	return "gamestate:" + id.String()
}

func instructionsKey(id uuid.UUID) string {
	return "instructions:" + id.String()
}

func (r *RedisStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	gs.UpdatedAt = time.Now()

	data, err := json.Marshal(gs)
	if err != nil {
		r.logger.Error("Failed to marshal gamestate", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal gamestate: %w", err)
	}

	if err := r.client.Set(ctx, gameStateKey(id), string(data), sessionTTL).Err(); err != nil {
		r.logger.Error("Failed to save gamestate", "uuid", id, "error", err)
		return fmt.Errorf("failed to save gamestate: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	data, err := r.client.Get(ctx, gameStateKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			r.logger.Warn("Gamestate not found", "uuid", id)
			return nil, nil
		}
		r.logger.Error("Failed to load gamestate", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}

	var gs state.GameState
	if err := json.Unmarshal([]byte(data), &gs); err != nil {
		// A payload we can no longer parse is discarded rather than
		// wedging the session forever.
		r.logger.Warn("Discarding unparseable gamestate", "uuid", id, "error", err)
		return nil, nil
	}

	return &gs, nil
}

func (r *RedisStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, gameStateKey(id), instructionsKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete gamestate", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	return nil
}

func (r *RedisStorage) MarkInstructionsSeen(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Set(ctx, instructionsKey(id), "1", sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to mark instructions seen: %w", err)
	}
	return nil
}

func (r *RedisStorage) InstructionsSeen(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := r.client.Get(ctx, instructionsKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to check instructions seen: %w", err)
	}
	return true, nil
}

// Catalog operations (filesystem-backed)

// LoadCatalog reads every level file under dataDir/levels, plus the
// optional characters.json and combinations.json, and validates the
// assembled catalog.
func (r *RedisStorage) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	cat := &catalog.Catalog{}

	levelsDir := filepath.Join(r.dataDir, "levels")
	err := filepath.WalkDir(levelsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		file, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read level file %s: %w", path, err)
		}

		var level catalog.Level
		if err := json.Unmarshal(file, &level); err != nil {
			return fmt.Errorf("failed to unmarshal level file %s: %w", path, err)
		}

		cat.Levels = append(cat.Levels, level)
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to load levels", "dir", levelsDir, "error", err)
		return nil, fmt.Errorf("failed to load levels: %w", err)
	}
	if len(cat.Levels) == 0 {
		return nil, fmt.Errorf("no level files found in %s", levelsDir)
	}

	if err := r.loadOptionalJSON(filepath.Join(r.dataDir, "characters.json"), &cat.Characters); err != nil {
		return nil, err
	}
	if err := r.loadOptionalJSON(filepath.Join(r.dataDir, "combinations.json"), &cat.Combinations); err != nil {
		return nil, err
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}

	r.logger.Info("Catalog loaded",
		"levels", len(cat.Levels),
		"characters", len(cat.Characters),
		"combinations", len(cat.Combinations))
	return cat, nil
}

func (r *RedisStorage) loadOptionalJSON(path string, out any) error {
	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(file, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}
