package item

import "testing"

func TestNewCatalog_Lookups(t *testing.T) {
	items := []*Item{
		{ID: 1, Name: "healing_potion", MaxStack: 5, Usable: true, Consumable: true, Category: "potion", Power: 10},
		{ID: 2, Name: "rusty_sword", MaxStack: 1},
	}
	catalog := NewCatalog(items)

	if got := catalog.GetItemByID(1); got == nil || got.Name != "healing_potion" {
		t.Errorf("GetItemByID(1) = %v, want healing_potion", got)
	}
	if got := catalog.GetItemByID(99); got != nil {
		t.Errorf("GetItemByID(99) = %v, want nil", got)
	}
	if got := catalog.GetItemByName("Rusty_Sword"); got == nil || got.ID != 2 {
		t.Errorf("GetItemByName is expected to be case-insensitive, got %v", got)
	}
	if got := len(catalog.ListItems()); got != 2 {
		t.Errorf("ListItems returned %d items, want 2", got)
	}
}

func TestDisplayName(t *testing.T) {
	it := &Item{ID: 1, Name: "healing_potion"}
	if got := it.DisplayName(); got != "Healing Potion" {
		t.Errorf("DisplayName = %q, want %q", got, "Healing Potion")
	}
}

// stubUser implements User with a simple HP pool
type stubUser struct {
	hp    int
	maxHP int
}

func (u *stubUser) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	healed := amount
	if u.hp+healed > u.maxHP {
		healed = u.maxHP - u.hp
	}
	u.hp += healed
	return healed
}

func (u *stubUser) HP() int    { return u.hp }
func (u *stubUser) MaxHP() int { return u.maxHP }

func TestUseEffect_Heal(t *testing.T) {
	potion := &Item{ID: 1, Name: "healing_potion", Category: "potion", Power: 10}
	fn, ok := UseEffect(potion.Category)
	if !ok {
		t.Fatal("Expected use effect for category potion")
	}

	user := &stubUser{hp: 5, maxHP: 12}
	if !fn(potion, user) {
		t.Error("Expected heal effect to succeed")
	}
	if user.hp != 12 {
		t.Errorf("HP = %d, want 12 (healing caps at max)", user.hp)
	}

	// At full HP the effect does nothing, so it reports failure
	if fn(potion, user) {
		t.Error("Expected heal effect to fail at full HP")
	}
}

func TestUseEffect_UnknownCategory(t *testing.T) {
	if _, ok := UseEffect("weapon"); ok {
		t.Error("Expected no use effect for category weapon")
	}
}
