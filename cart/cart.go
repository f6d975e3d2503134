// Package cart keeps the shopper's cart: an ordered list of line items
// persisted under a single storage key and rewritten whole on every change.
package cart

import (
	"encoding/json"
	"fmt"

	"go-storefront/models"
)

// StorageKey is the key the serialized cart is kept under
const StorageKey = "heems-cart"

// Cart owns the line items and keeps observers in step with them.
// It is not safe for concurrent use.
type Cart struct {
	storage  Storage
	items    []models.CartItem
	onChange func(View)
	toaster  *Toaster
}

// Option configures a Cart
type Option func(*Cart)

// WithOnChange registers fn to receive a fresh View after every mutation
func WithOnChange(fn func(View)) Option {
	return func(c *Cart) { c.onChange = fn }
}

// WithToaster announces additions through t
func WithToaster(t *Toaster) Option {
	return func(c *Cart) { c.toaster = t }
}

// New loads the cart held in storage
func New(storage Storage, opts ...Option) *Cart {
	c := &Cart{storage: storage}
	for _, opt := range opts {
		opt(c)
	}
	c.items = Load(storage)
	c.refresh()
	return c
}

// Load reads the persisted cart. Absent or malformed data reads as empty.
func Load(storage Storage) []models.CartItem {
	raw, ok := storage.GetItem(StorageKey)
	if !ok || raw == "" {
		return []models.CartItem{}
	}
	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []models.CartItem{}
	}
	return items
}

// Items returns a copy of the line items in order
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Add merges item into the line with the same variant key, or appends it.
// Quantities below one are treated as one.
func (c *Cart) Add(item models.CartItem) error {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	items := make([]models.CartItem, len(c.items), len(c.items)+1)
	copy(items, c.items)
	merged := false
	for i := range items {
		if items[i].Key() == item.Key() {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	if err := c.commit(items); err != nil {
		return err
	}
	if c.toaster != nil {
		c.toaster.Show(fmt.Sprintf("%s added to cart", item.Name))
	}
	return nil
}

// Remove drops every line whose ID is id, whatever its size or color.
// Removing an ID that is not in the cart is a no-op.
func (c *Cart) Remove(id string) error {
	kept := make([]models.CartItem, 0, len(c.items))
	for _, item := range c.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return c.commit(kept)
}

// Render computes the sidebar view of the current items
func (c *Cart) Render() View {
	return render(c.items)
}

// commit persists items and only then makes them the cart's state, so a
// failed save leaves the cart, its storage and the view unchanged.
func (c *Cart) commit(items []models.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := c.storage.SetItem(StorageKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	c.items = items
	c.refresh()
	return nil
}

func (c *Cart) refresh() {
	if c.onChange != nil {
		c.onChange(c.Render())
	}
}
