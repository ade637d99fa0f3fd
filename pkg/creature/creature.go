package creature

import (
	"fmt"
	"maps"

	"github.com/jwebster45206/d20"

	"github.com/jwebster45206/quest-engine/pkg/inventory"
	"github.com/jwebster45206/quest-engine/pkg/item"
)

// Spec is the serializable definition of a creature or player character.
// Specs are authored as JSON content and are read-only at runtime.
type Spec struct {
	ID            string         `json:"id"`
	Name          string         `json:"name,omitempty"`
	Description   string         `json:"description,omitempty"`
	Level         int            `json:"level,omitempty"`
	HP            int            `json:"hp,omitempty"` // current HP; defaults to MaxHP
	MaxHP         int            `json:"max_hp,omitempty"`
	AC            int            `json:"ac,omitempty"`
	Attributes    map[string]int `json:"attributes,omitempty"`
	CombatMods    map[string]int `json:"combat_modifiers,omitempty"`
	InventorySize int            `json:"inventory_size,omitempty"`
	StartingItems map[string]int `json:"starting_items,omitempty"` // item name -> count
}

// DefaultInventorySize applies when a spec does not set one.
const DefaultInventorySize = 16

// Creature is the runtime representation of a spec: a d20 actor for
// stats and HP, and one fixed-size inventory created at spawn.
type Creature struct {
	Spec      *Spec
	Actor     *d20.Actor
	Inventory *inventory.Inventory
}

// Ensure Creature satisfies the item use capability
var _ item.User = (*Creature)(nil)

// New builds a Creature from a spec. The inventory is created empty;
// starting items are granted separately so partial grants are visible to
// the caller.
func New(spec *Spec) (*Creature, error) {
	if spec == nil {
		return nil, fmt.Errorf("spec cannot be nil")
	}

	attrs := make(map[string]int, len(spec.Attributes))
	maps.Copy(attrs, spec.Attributes)

	actor, err := d20.NewActor(spec.ID).
		WithHP(spec.MaxHP).
		WithAC(spec.AC).
		WithAttributes(attrs).
		WithCombatModifiers(spec.CombatMods).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}

	if spec.HP > 0 && spec.HP != spec.MaxHP {
		if err := actor.SetHP(spec.HP); err != nil {
			return nil, fmt.Errorf("failed to set HP: %w", err)
		}
	}

	size := spec.InventorySize
	if size <= 0 {
		size = DefaultInventorySize
	}

	return &Creature{
		Spec:      spec,
		Actor:     actor,
		Inventory: inventory.New(spec.ID, size),
	}, nil
}

// GrantStartingItems places the spec's starting items into the inventory.
// Returns the names of items that did not fully fit.
func (c *Creature) GrantStartingItems(catalog item.Catalog) []string {
	var overflow []string
	for name, count := range c.Spec.StartingItems {
		it := catalog.GetItemByName(name)
		if it == nil {
			overflow = append(overflow, name)
			continue
		}
		if added := c.Inventory.AddItem(it, count); added < count {
			overflow = append(overflow, name)
		}
	}
	return overflow
}

// Level returns the creature's level for condition facts.
func (c *Creature) Level() int {
	return c.Spec.Level
}

// HP returns current hit points.
func (c *Creature) HP() int {
	return c.Actor.HP()
}

// MaxHP returns maximum hit points.
func (c *Creature) MaxHP() int {
	return c.Actor.MaxHP()
}

// Heal restores up to amount HP, capped at max, and returns the amount
// actually restored.
func (c *Creature) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	hp := c.Actor.HP()
	target := hp + amount
	if target > c.Actor.MaxHP() {
		target = c.Actor.MaxHP()
	}
	if target == hp {
		return 0
	}
	if err := c.Actor.SetHP(target); err != nil {
		return 0
	}
	return target - hp
}

// Attribute returns a named attribute value from the underlying actor.
func (c *Creature) Attribute(key string) (int, bool) {
	return c.Actor.Attribute(key)
}
