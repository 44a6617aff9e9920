package schema

import "sort"

// SlotTaunt is the item slot used by taunts.
const SlotTaunt = "taunt"

// ItemMetadata is the static description of an item definition.
type ItemMetadata struct {
	Defindex    int    `json:"defindex" gorm:"column:defindex;primaryKey"`
	Name        string `json:"name" gorm:"column:name"`
	ItemName    string `json:"item_name" gorm:"column:item_name"`
	ItemClass   string `json:"item_class" gorm:"column:item_class"`
	ItemSlot    string `json:"item_slot" gorm:"column:item_slot"`
	ItemQuality int    `json:"item_quality" gorm:"column:item_quality"`
	CraftClass  string `json:"craft_class" gorm:"column:craft_class"`
}

// TableName binds ItemMetadata rows to the schema_items table.
func (ItemMetadata) TableName() string {
	return "schema_items"
}

// IsTaunt reports whether the item occupies the taunt slot.
func (m *ItemMetadata) IsTaunt() bool {
	return m.ItemSlot == SlotTaunt
}

// Schema looks up item metadata by definition index.
type Schema interface {
	// GetItemByDefindex returns the metadata for defindex, or false if it is unknown.
	GetItemByDefindex(defindex int) (*ItemMetadata, bool)
}

// Catalog is an immutable in-memory Schema.
type Catalog struct {
	items map[int]*ItemMetadata
}

// NewCatalog indexes items by defindex. Later duplicates win.
func NewCatalog(items []ItemMetadata) *Catalog {
	index := make(map[int]*ItemMetadata, len(items))
	for i := range items {
		item := items[i]
		index[item.Defindex] = &item
	}
	return &Catalog{items: index}
}

// GetItemByDefindex implements Schema.
func (c *Catalog) GetItemByDefindex(defindex int) (*ItemMetadata, bool) {
	if c == nil {
		return nil, false
	}
	item, ok := c.items[defindex]
	return item, ok
}

// Len returns the number of indexed items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// defindexes returns all indexed definition indexes in ascending order.
func (c *Catalog) defindexes() []int {
	if c == nil {
		return nil
	}
	keys := make([]int, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
