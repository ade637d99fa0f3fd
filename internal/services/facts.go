package services

import (
	"github.com/jwebster45206/quest-engine/pkg/condition"
	"github.com/jwebster45206/quest-engine/pkg/creature"
	"github.com/jwebster45206/quest-engine/pkg/state"
)

// StateFacts exposes a loaded session as condition facts. Reads only;
// the condition engine never mutates through a FactProvider.
type StateFacts struct {
	gs   *state.GameState
	spec *creature.Spec
}

// Ensure StateFacts implements FactProvider interface
var _ condition.FactProvider = (*StateFacts)(nil)

// NewStateFacts builds a fact provider over a session and the spec of
// the creature that owns it. The spec may be nil for sessions whose
// creature content is gone; level then reads as 0.
func NewStateFacts(gs *state.GameState, spec *creature.Spec) *StateFacts {
	return &StateFacts{gs: gs, spec: spec}
}

func (f *StateFacts) GetTagValue(id string) int {
	return f.gs.GetTagValue(id)
}

func (f *StateFacts) HasItem(itemID int, count int) bool {
	if f.gs.Inventory == nil {
		return false
	}
	return f.gs.Inventory.GetItemCountByID(itemID) >= count
}

func (f *StateFacts) GetQuestStatus(id string) string {
	return f.gs.GetQuestStatus(id)
}

func (f *StateFacts) GetPlayerLevel() int {
	if f.spec == nil {
		return 0
	}
	return f.spec.Level
}
