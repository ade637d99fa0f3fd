package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/quest-engine/pkg/creature"
	"github.com/jwebster45206/quest-engine/pkg/event"
	"github.com/jwebster45206/quest-engine/pkg/item"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

// Storage defines a unified interface for all storage operations.
// Session state lives in Redis; authored content (items, creatures,
// trigger sets) is read from the filesystem data directory.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// GameState operations (Redis-backed)
	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	DeleteGameState(ctx context.Context, id uuid.UUID) error

	// Item catalog (filesystem-backed)
	LoadCatalog(ctx context.Context) (item.Catalog, error)

	// Creature specs (filesystem-backed)
	GetCreature(ctx context.Context, id string) (*creature.Spec, error)
	ListCreatures(ctx context.Context) ([]string, error)

	// Trigger sets (filesystem-backed)
	GetTriggerSet(ctx context.Context, filename string) (*event.TriggerSet, error)
	ListTriggerSets(ctx context.Context) (map[string]string, error)
}
