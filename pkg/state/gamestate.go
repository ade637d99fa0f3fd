package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/quest-engine/pkg/inventory"
)

// GameState is the persistent state of one play session: the creature's
// inventory, tag values, quest statuses, and the current scene. It is the
// unit of storage, keyed by session ID.
type GameState struct {
	ID         uuid.UUID `json:"id"`
	CreatureID string    `json:"creature_id,omitempty"`

	Tags        map[string]int       `json:"tags,omitempty"`
	QuestStatus map[string]string    `json:"quest_status,omitempty"`
	Scene       string               `json:"scene,omitempty"`
	HP          int                  `json:"hp,omitempty"` // creature's current HP
	Inventory   *inventory.Inventory `json:"inventory,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewGameState creates a fresh session for a creature with an empty
// inventory of the given size.
func NewGameState(creatureID string, inventorySize int) *GameState {
	return &GameState{
		ID:          uuid.New(),
		CreatureID:  creatureID,
		Tags:        make(map[string]int),
		QuestStatus: make(map[string]string),
		Inventory:   inventory.New(creatureID, inventorySize),
		CreatedAt:   time.Now(),
	}
}

// GetTagValue returns a tag's value, or 0 if the tag was never set.
func (gs *GameState) GetTagValue(id string) int {
	return gs.Tags[id]
}

// SetTag sets a tag value, allocating the map for states loaded from
// older serialized forms.
func (gs *GameState) SetTag(id string, value int) {
	if gs.Tags == nil {
		gs.Tags = make(map[string]int)
	}
	gs.Tags[id] = value
}

// GetQuestStatus returns a quest's status string, or "" if unknown.
func (gs *GameState) GetQuestStatus(id string) string {
	return gs.QuestStatus[id]
}

// SetQuestStatus records a quest status.
func (gs *GameState) SetQuestStatus(id, status string) {
	if gs.QuestStatus == nil {
		gs.QuestStatus = make(map[string]string)
	}
	gs.QuestStatus[id] = status
}
