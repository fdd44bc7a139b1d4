package cart

import (
	"sync"
	"time"
)

// animationWindow is how long the storefront badge stays in its "just added"
// state after an item lands in the cart.
const animationWindow = 1000 * time.Millisecond

// Item is one cart line. One Item exists per product ID; adding the same
// product again merges quantities instead of appending a duplicate line.
type Item struct {
	ProductID     int64    `json:"product_id"`
	Name          string   `json:"name"`
	UnitPrice     float64  `json:"unit_price"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
	Quantity      int      `json:"quantity"`
	ImageURL      string   `json:"image_url"`
	OptionIDs     []int64  `json:"option_ids,omitempty"`
}

// EffectivePrice prefers the discount price when present and lower than the
// unit price.
func (i *Item) EffectivePrice() float64 {
	if i.DiscountPrice != nil && *i.DiscountPrice > 0 && *i.DiscountPrice < i.UnitPrice {
		return *i.DiscountPrice
	}
	return i.UnitPrice
}

// Cart is an in-memory line-item collection for one session. All operations
// are total functions; nothing here can fail. The zero value is not usable,
// construct with New.
type Cart struct {
	mu             sync.Mutex
	items          []Item
	animatingUntil time.Time
	now            func() time.Time
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{now: time.Now}
}

// AddItem appends the item, or merges quantities when the product is already
// present. Items with a non-positive quantity are ignored. Adding marks the
// cart as animating for the animation window.
func (c *Cart) AddItem(item Item) {
	if item.Quantity <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += item.Quantity
			c.animatingUntil = c.now().Add(animationWindow)
			return
		}
	}
	c.items = append(c.items, item)
	c.animatingUntil = c.now().Add(animationWindow)
}

// RemoveItem deletes the line for the given product. Removing an absent
// product is a no-op, so the operation is idempotent.
func (c *Cart) RemoveItem(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the line quantity directly. A quantity of zero or below
// removes the line, keeping the quantity >= 1 invariant inside the engine
// rather than trusting every caller to route zero through RemoveItem.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Total is the sum of effective price times quantity over all lines,
// recomputed on every call.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for i := range c.items {
		total += c.items[i].EffectivePrice() * float64(c.items[i].Quantity)
	}
	return total
}

// Count is the sum of quantities over all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	for i := range c.items {
		count += c.items[i].Quantity
	}
	return count
}

// Animating reports whether the cart is inside the post-add animation window.
func (c *Cart) Animating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now().Before(c.animatingUntil)
}
