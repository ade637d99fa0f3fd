package event

import (
	"encoding/json"

	"github.com/jwebster45206/quest-engine/pkg/condition"
)

// Event types recognized by the engine. Matching is case-insensitive.
const (
	TypeUpdateTag     = "update_tag"
	TypeGiveItem      = "give_item"
	TypeTakeItem      = "take_item"
	TypePlayNarration = "play_narration"
	TypePlayAudio     = "play_audio"
	TypeLoadScene     = "load_scene"
)

// GameEvent is one declarative effect instruction. Param1 and Param2 are
// effect-specific positional arguments carried as text and parsed by the
// handler for the event's type. Events are immutable after authoring.
type GameEvent struct {
	Type       string                 `json:"event_type"`
	Param1     string                 `json:"param1,omitempty"`
	Param2     string                 `json:"param2,omitempty"`
	Conditions condition.ConditionSet `json:"conditions,omitempty"`
}

// UnmarshalJSON collapses the legacy authoring shapes into one canonical
// ConditionSet: a single "condition" object, a bare "conditions" array,
// and the use_condition/use_multiple_conditions toggles all fold into
// GameEvent.Conditions at the data boundary.
func (e *GameEvent) UnmarshalJSON(data []byte) error {
	type rawEvent struct {
		Type                 string               `json:"event_type"`
		Param1               string               `json:"param1"`
		Param2               string               `json:"param2"`
		Conditions           json.RawMessage      `json:"conditions"`
		Condition            *condition.Condition `json:"condition"`
		UseCondition         *bool                `json:"use_condition"`
		UseMultipleCondition *bool                `json:"use_multiple_conditions"`
	}

	var raw rawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Type = raw.Type
	e.Param1 = raw.Param1
	e.Param2 = raw.Param2
	e.Conditions = condition.ConditionSet{}

	if len(raw.Conditions) > 0 {
		// Modern form: a ConditionSet object. Legacy form: a bare array
		// of conditions, implicitly AND.
		var set condition.ConditionSet
		if err := json.Unmarshal(raw.Conditions, &set); err == nil {
			e.Conditions = set
		} else {
			var list []*condition.Condition
			if err := json.Unmarshal(raw.Conditions, &list); err != nil {
				return err
			}
			e.Conditions = condition.ConditionSet{Conditions: list}
		}
	} else if raw.Condition != nil {
		e.Conditions = condition.ConditionSet{
			Conditions: []*condition.Condition{raw.Condition},
		}
	}

	// Explicitly disabled conditions mean unconditional.
	if raw.UseCondition != nil && !*raw.UseCondition && raw.UseMultipleCondition == nil {
		e.Conditions = condition.ConditionSet{}
	}
	if raw.UseMultipleCondition != nil && !*raw.UseMultipleCondition && (raw.UseCondition == nil || !*raw.UseCondition) {
		e.Conditions = condition.ConditionSet{}
	}

	return nil
}

// TriggerSet is a named, content-authored batch of events. It is the unit
// the host fires when a trigger (proximity, timer, scene entry) goes off;
// the trigger itself lives outside the engine.
type TriggerSet struct {
	ID     string      `json:"id"`
	Name   string      `json:"name,omitempty"`
	Events []GameEvent `json:"events"`
}
