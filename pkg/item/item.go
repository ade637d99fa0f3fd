package item

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Item is a catalog entry. Entries are read-only at runtime and shared by
// reference: inventory slots point at catalog items, they never own them.
type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MaxStack    int    `json:"max_stack"`
	Usable      bool   `json:"usable,omitempty"`
	Consumable  bool   `json:"consumable,omitempty"`
	Category    string `json:"category,omitempty"` // selects the use effect, e.g. "potion"
	Power       int    `json:"power,omitempty"`    // effect magnitude, e.g. HP healed
}

// Catalog is the global item lookup. Lookups return nil for unknown items.
type Catalog interface {
	GetItemByID(id int) *Item
	GetItemByName(name string) *Item
	ListItems() []*Item
}

var titleCaser = cases.Title(language.English)

// DisplayName returns the item name title-cased for UI surfaces.
// Catalog names are authored lowercase snake_case.
func (it *Item) DisplayName() string {
	return titleCaser.String(strings.ReplaceAll(it.Name, "_", " "))
}

// MapCatalog is an in-memory Catalog built from a loaded item list.
type MapCatalog struct {
	byID   map[int]*Item
	byName map[string]*Item
	items  []*Item
}

// Ensure MapCatalog implements Catalog interface
var _ Catalog = (*MapCatalog)(nil)

// NewCatalog builds a catalog from loaded items. Later entries with a
// duplicate ID or name silently win; cmd/validate flags duplicates at
// authoring time.
func NewCatalog(items []*Item) *MapCatalog {
	c := &MapCatalog{
		byID:   make(map[int]*Item, len(items)),
		byName: make(map[string]*Item, len(items)),
		items:  items,
	}
	for _, it := range items {
		c.byID[it.ID] = it
		c.byName[strings.ToLower(it.Name)] = it
	}
	return c
}

func (c *MapCatalog) GetItemByID(id int) *Item {
	return c.byID[id]
}

func (c *MapCatalog) GetItemByName(name string) *Item {
	return c.byName[strings.ToLower(name)]
}

func (c *MapCatalog) ListItems() []*Item {
	return c.items
}
