package models

// CartItem is one line in the shopper's cart
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
	Image    string  `json:"image"`
}

// VariantKey identifies the line an added item merges into
type VariantKey struct {
	ID    string
	Size  string
	Color string
}

// Key returns the item's variant key
func (i CartItem) Key() VariantKey {
	return VariantKey{ID: i.ID, Size: i.Size, Color: i.Color}
}

// LineTotal is price times quantity
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
