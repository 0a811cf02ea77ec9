package catalog

// ItemCategory classifies an item explicitly. Categorization is never
// inferred from display names.
type ItemCategory string

const (
	CategoryDocument ItemCategory = "document"
	CategoryKey      ItemCategory = "key"
	CategoryTool     ItemCategory = "tool"
	CategoryEvidence ItemCategory = "evidence"
)

// Item is an immutable item template. A player's inventory holds copies
// of catalog items; the catalog itself is never mutated.
type Item struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Image        string       `json:"image,omitempty"` // asset reference, not loaded by the engine
	Category     ItemCategory `json:"category,omitempty"`
	IsKey        bool         `json:"is_key,omitempty"`
	IsUsable     bool         `json:"is_usable,omitempty"`
	CanCombine   bool         `json:"can_combine,omitempty"`
	CombinesWith []string     `json:"combines_with,omitempty"` // item IDs this item can merge with
}

// Combination is a static rule pairing two items (order-independent)
// with the item produced by merging them.
type Combination struct {
	Item1ID string `json:"item1_id"`
	Item2ID string `json:"item2_id"`
	Result  Item   `json:"result"`
}

// Matches reports whether the combination applies to the unordered pair.
func (c Combination) Matches(itemID1, itemID2 string) bool {
	return (c.Item1ID == itemID1 && c.Item2ID == itemID2) ||
		(c.Item1ID == itemID2 && c.Item2ID == itemID1)
}
