package inventory

import (
	"fmt"

	"github.com/jwebster45206/quest-engine/pkg/item"
)

// Slot holds a reference to a catalog item and a stack count.
// Invariant: Count == 0 exactly when the slot holds no item, and Count
// never exceeds the item's MaxStack.
type Slot struct {
	ItemID int `json:"item_id,omitempty"`
	Count  int `json:"count,omitempty"`

	// Resolved catalog reference. Not serialized; restored by Hydrate
	// after loading from storage.
	item *item.Item
}

// Item returns the catalog item held by the slot, or nil if empty.
func (s *Slot) Item() *item.Item {
	return s.item
}

// IsEmpty reports whether the slot holds nothing.
func (s *Slot) IsEmpty() bool {
	return s.Count == 0
}

func (s *Slot) set(it *item.Item, count int) {
	if count <= 0 {
		s.item = nil
		s.ItemID = 0
		s.Count = 0
		return
	}
	s.item = it
	s.ItemID = it.ID
	s.Count = count
}

// Inventory is a fixed-size ordered slot array owned by one creature.
// The slot count is fixed for the inventory's lifetime. Callers must not
// mutate the same inventory from multiple goroutines; the engine assumes
// single-writer call sequencing.
type Inventory struct {
	OwnerID string `json:"owner_id"`
	Slots   []Slot `json:"slots"`
}

// New creates an empty inventory with the given number of slots.
func New(ownerID string, size int) *Inventory {
	if size < 0 {
		size = 0
	}
	return &Inventory{
		OwnerID: ownerID,
		Slots:   make([]Slot, size),
	}
}

// Size returns the fixed slot count.
func (inv *Inventory) Size() int {
	return len(inv.Slots)
}

// AddItem places up to count units of the item, first topping up existing
// stacks of the same item, then filling empty slots, scanning in index
// order (first-fit). Returns the number of units actually placed; partial
// placement is not an error, the caller inspects the return.
func (inv *Inventory) AddItem(it *item.Item, count int) int {
	if it == nil || count <= 0 {
		return 0
	}

	maxStack := it.MaxStack
	if maxStack < 1 {
		maxStack = 1
	}

	remaining := count

	// Top up existing stacks of this item first.
	for i := range inv.Slots {
		if remaining == 0 {
			break
		}
		s := &inv.Slots[i]
		if s.IsEmpty() || s.ItemID != it.ID || s.Count >= maxStack {
			continue
		}
		n := min(remaining, maxStack-s.Count)
		s.set(it, s.Count+n)
		remaining -= n
	}

	// Overflow goes into empty slots.
	for i := range inv.Slots {
		if remaining == 0 {
			break
		}
		s := &inv.Slots[i]
		if !s.IsEmpty() {
			continue
		}
		n := min(remaining, maxStack)
		s.set(it, n)
		remaining -= n
	}

	return count - remaining
}

// RemoveItem removes up to count units of the item, scanning slots in
// index order. A slot that reaches zero is cleared. Returns the number of
// units actually removed; removal is best-effort, callers wanting
// all-or-nothing semantics pre-check with GetItemCount.
func (inv *Inventory) RemoveItem(it *item.Item, count int) int {
	if it == nil || count <= 0 {
		return 0
	}

	remaining := count
	for i := range inv.Slots {
		if remaining == 0 {
			break
		}
		s := &inv.Slots[i]
		if s.IsEmpty() || s.ItemID != it.ID {
			continue
		}
		n := min(remaining, s.Count)
		s.set(it, s.Count-n)
		remaining -= n
	}

	return count - remaining
}

// GetItemCount returns the total units of the item across all slots.
func (inv *Inventory) GetItemCount(it *item.Item) int {
	if it == nil {
		return 0
	}
	total := 0
	for i := range inv.Slots {
		if !inv.Slots[i].IsEmpty() && inv.Slots[i].ItemID == it.ID {
			total += inv.Slots[i].Count
		}
	}
	return total
}

// GetItemCountByID returns the total units held for an item id. Useful
// when the caller has not resolved the catalog item, e.g. fact queries
// against serialized state.
func (inv *Inventory) GetItemCountByID(itemID int) int {
	total := 0
	for i := range inv.Slots {
		if !inv.Slots[i].IsEmpty() && inv.Slots[i].ItemID == itemID {
			total += inv.Slots[i].Count
		}
	}
	return total
}

// HasItem reports whether the inventory holds at least count units.
func (inv *Inventory) HasItem(it *item.Item, count int) bool {
	return inv.GetItemCount(it) >= count
}

// UseItem invokes the item's use effect for its category. If the item is
// consumable and the effect succeeded, exactly one unit is removed.
// Returns false without mutation when the item is not usable, not held,
// or has no registered effect.
func (inv *Inventory) UseItem(it *item.Item, user item.User) bool {
	if it == nil || !it.Usable || !inv.HasItem(it, 1) {
		return false
	}

	fn, ok := item.UseEffect(it.Category)
	if !ok {
		return false
	}
	if !fn(it, user) {
		return false
	}

	if it.Consumable {
		inv.RemoveItem(it, 1)
	}
	return true
}

// Clear empties all slots unconditionally.
func (inv *Inventory) Clear() {
	for i := range inv.Slots {
		inv.Slots[i].set(nil, 0)
	}
}

// IsFull reports whether the inventory has no capacity left at all:
// every slot holds an item and every stack is at its max. An occupied
// slot below its max stack still accepts adds, so it does not count as
// full. Unhydrated slots have no stack limit to check and are treated
// as at capacity.
func (inv *Inventory) IsFull() bool {
	for i := range inv.Slots {
		s := &inv.Slots[i]
		if s.IsEmpty() {
			return false
		}
		if s.item == nil {
			continue
		}
		maxStack := s.item.MaxStack
		if maxStack < 1 {
			maxStack = 1
		}
		if s.Count < maxStack {
			return false
		}
	}
	return true
}

// Hydrate restores catalog item references after deserialization. Slots
// referencing an item no longer in the catalog are an error; stored state
// must not silently lose items.
func (inv *Inventory) Hydrate(catalog item.Catalog) error {
	for i := range inv.Slots {
		s := &inv.Slots[i]
		if s.IsEmpty() {
			s.item = nil
			s.ItemID = 0
			continue
		}
		it := catalog.GetItemByID(s.ItemID)
		if it == nil {
			return fmt.Errorf("inventory slot %d references unknown item %d", i, s.ItemID)
		}
		s.item = it
	}
	return nil
}
