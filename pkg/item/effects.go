package item

import "strings"

// User is the capability an item effect needs from whoever uses the item.
// Creatures implement it over their d20 actor.
type User interface {
	// Heal restores up to amount HP and returns the amount actually restored.
	Heal(amount int) int

	HP() int
	MaxHP() int
}

// UseFunc applies an item's effect to its user. It returns false when the
// effect could not apply (e.g. healing at full HP), in which case a
// consumable item is not consumed.
type UseFunc func(it *Item, user User) bool

// useEffects maps item category to its effect. This replaces per-item
// subclassing: adding an item type means adding a catalog entry and, if it
// needs new behavior, one entry here.
var useEffects = map[string]UseFunc{
	"potion": healEffect,
	"food":   healEffect,
	"elixir": fullRestoreEffect,
}

// UseEffect returns the effect registered for a category, if any.
func UseEffect(category string) (UseFunc, bool) {
	fn, ok := useEffects[strings.ToLower(category)]
	return fn, ok
}

func healEffect(it *Item, user User) bool {
	if user == nil {
		return false
	}
	return user.Heal(it.Power) > 0
}

func fullRestoreEffect(it *Item, user User) bool {
	if user == nil {
		return false
	}
	return user.Heal(user.MaxHP()-user.HP()) > 0
}
