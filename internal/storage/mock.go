package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/quest-engine/pkg/creature"
	"github.com/jwebster45206/quest-engine/pkg/event"
	"github.com/jwebster45206/quest-engine/pkg/item"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu          sync.RWMutex
	gamestates  map[uuid.UUID]*state.GameState
	items       []*item.Item
	creatures   map[string]*creature.Spec
	triggerSets map[string]*event.TriggerSet
	pingError   error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		gamestates:  make(map[uuid.UUID]*state.GameState),
		creatures:   make(map[string]*creature.Spec),
		triggerSets: make(map[string]*event.TriggerSet),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// AddItems seeds catalog items
func (m *MockStorage) AddItems(items ...*item.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, items...)
}

// AddCreature seeds a creature spec
func (m *MockStorage) AddCreature(spec *creature.Spec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creatures[spec.ID] = spec
}

// AddTriggerSet seeds a trigger set keyed by filename
func (m *MockStorage) AddTriggerSet(filename string, ts *event.TriggerSet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triggerSets[filename] = ts
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamestates[id] = gs
	return nil
}

func (m *MockStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gamestates[id], nil
}

func (m *MockStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.gamestates, id)
	return nil
}

func (m *MockStorage) LoadCatalog(ctx context.Context) (item.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return item.NewCatalog(m.items), nil
}

func (m *MockStorage) GetCreature(ctx context.Context, id string) (*creature.Spec, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	spec, ok := m.creatures[id]
	if !ok {
		return nil, fmt.Errorf("creature not found: %s", id)
	}
	return spec, nil
}

func (m *MockStorage) ListCreatures(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.creatures))
	for id := range m.creatures {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MockStorage) GetTriggerSet(ctx context.Context, filename string) (*event.TriggerSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ts, ok := m.triggerSets[filename]
	if !ok {
		return nil, fmt.Errorf("trigger set not found: %s", filename)
	}
	return ts, nil
}

func (m *MockStorage) ListTriggerSets(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sets := make(map[string]string, len(m.triggerSets))
	for filename, ts := range m.triggerSets {
		sets[ts.ID] = filename
	}
	return sets, nil
}
