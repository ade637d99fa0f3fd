package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/quest-engine/pkg/state"
)

const gameStateTTL = 7 * 24 * time.Hour

// RedisStorage implements the Storage interface using Redis for session
// state and the filesystem for authored content (items, creatures,
// trigger sets).
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
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
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

func gameStateKey(id uuid.UUID) string {
	return fmt.Sprintf("gamestate:%s", id.String())
}

// GameState operations (Redis-backed)

func (r *RedisStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	gs.UpdatedAt = time.Now()

	data, err := json.Marshal(gs)
	if err != nil {
		return fmt.Errorf("failed to marshal gamestate: %w", err)
	}

	if err := r.client.Set(ctx, gameStateKey(id), data, gameStateTTL).Err(); err != nil {
		r.logger.Error("Failed to save gamestate", "id", id, "error", err)
		return fmt.Errorf("failed to save gamestate: %w", err)
	}

	r.logger.Debug("Gamestate saved", "id", id, "bytes", len(data))
	return nil
}

// LoadGameState retrieves a gamestate by ID. Returns nil without error if
// the session does not exist. The caller must Hydrate the inventory
// against the item catalog before using item references.
func (r *RedisStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	data, err := r.client.Get(ctx, gameStateKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}

	var gs state.GameState
	if err := json.Unmarshal([]byte(data), &gs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gamestate: %w", err)
	}

	return &gs, nil
}

func (r *RedisStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, gameStateKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	return nil
}
