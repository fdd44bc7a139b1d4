package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestCart_AddItem_MergesQuantities(t *testing.T) {
	tests := []struct {
		name          string
		adds          []Item
		expectedLines int
		expectedQty   map[int64]int
	}{
		{
			name: "Distinct products append",
			adds: []Item{
				{ProductID: 1, Name: "Bánh tằm", UnitPrice: 45000, Quantity: 1},
				{ProductID: 2, Name: "Gỏi cuốn", UnitPrice: 15000, Quantity: 2},
			},
			expectedLines: 2,
			expectedQty:   map[int64]int{1: 1, 2: 2},
		},
		{
			name: "Same product merges additively",
			adds: []Item{
				{ProductID: 1, Name: "Bánh tằm", UnitPrice: 45000, Quantity: 2},
				{ProductID: 1, Name: "Bánh tằm", UnitPrice: 45000, Quantity: 3},
			},
			expectedLines: 1,
			expectedQty:   map[int64]int{1: 5},
		},
		{
			name: "Non-positive quantity ignored",
			adds: []Item{
				{ProductID: 1, Name: "Bánh tằm", UnitPrice: 45000, Quantity: 1},
				{ProductID: 2, Name: "Gỏi cuốn", UnitPrice: 15000, Quantity: 0},
			},
			expectedLines: 1,
			expectedQty:   map[int64]int{1: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			for _, item := range tt.adds {
				c.AddItem(item)
			}

			items := c.Items()
			require.Len(t, items, tt.expectedLines)
			for _, item := range items {
				assert.Equal(t, tt.expectedQty[item.ProductID], item.Quantity)
			}
		})
	}
}

func TestCart_RemoveItem_Idempotent(t *testing.T) {
	c := New()
	c.AddItem(Item{ProductID: 1, UnitPrice: 45000, Quantity: 2})
	c.AddItem(Item{ProductID: 2, UnitPrice: 15000, Quantity: 1})

	c.RemoveItem(1)
	afterOnce := c.Items()

	c.RemoveItem(1)
	afterTwice := c.Items()

	assert.Equal(t, afterOnce, afterTwice)
	require.Len(t, afterTwice, 1)
	assert.Equal(t, int64(2), afterTwice[0].ProductID)
	assert.Equal(t, 1, afterTwice[0].Quantity)
}

func TestCart_SetQuantity(t *testing.T) {
	tests := []struct {
		name        string
		quantity    int
		expectGone  bool
		expectedQty int
	}{
		{name: "Positive quantity is set directly", quantity: 7, expectedQty: 7},
		{name: "Zero removes the line", quantity: 0, expectGone: true},
		{name: "Negative removes the line", quantity: -3, expectGone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.AddItem(Item{ProductID: 1, UnitPrice: 45000, Quantity: 2})

			c.SetQuantity(1, tt.quantity)

			items := c.Items()
			if tt.expectGone {
				assert.Empty(t, items)
			} else {
				require.Len(t, items, 1)
				assert.Equal(t, tt.expectedQty, items[0].Quantity)
			}
		})
	}
}

func TestCart_TotalAndCount(t *testing.T) {
	c := New()
	assert.Equal(t, 0.0, c.Total())
	assert.Equal(t, 0, c.Count())

	c.AddItem(Item{ProductID: 1, UnitPrice: 45000, Quantity: 2})
	c.AddItem(Item{ProductID: 2, UnitPrice: 15000, DiscountPrice: floatPtr(10000), Quantity: 1})

	assert.Equal(t, 3, c.Count())
	assert.Equal(t, 100000.0, c.Total())
}

func TestCart_Total_IgnoresDiscountAboveListPrice(t *testing.T) {
	c := New()
	c.AddItem(Item{ProductID: 1, UnitPrice: 20000, DiscountPrice: floatPtr(25000), Quantity: 1})

	assert.Equal(t, 20000.0, c.Total())
}

func TestCart_Clear(t *testing.T) {
	c := New()
	c.AddItem(Item{ProductID: 1, UnitPrice: 45000, Quantity: 2})
	c.Clear()

	assert.Empty(t, c.Items())
	assert.Equal(t, 0.0, c.Total())
	assert.Equal(t, 0, c.Count())
}

func TestCart_AnimationWindow(t *testing.T) {
	now := time.Now()
	c := New()
	c.now = func() time.Time { return now }

	assert.False(t, c.Animating())

	c.AddItem(Item{ProductID: 1, UnitPrice: 45000, Quantity: 1})
	assert.True(t, c.Animating())

	// Just before the window closes
	c.now = func() time.Time { return now.Add(999 * time.Millisecond) }
	assert.True(t, c.Animating())

	// After the window closes
	c.now = func() time.Time { return now.Add(1001 * time.Millisecond) }
	assert.False(t, c.Animating())
}

func TestStore_GetCreatesPerSession(t *testing.T) {
	store := NewStore()

	a := store.Get("session-a")
	b := store.Get("session-b")
	require.NotSame(t, a, b)

	a.AddItem(Item{ProductID: 1, UnitPrice: 45000, Quantity: 1})
	assert.Equal(t, 1, store.Get("session-a").Count())
	assert.Equal(t, 0, store.Get("session-b").Count())

	store.Drop("session-a")
	assert.Equal(t, 0, store.Get("session-a").Count())
}

func TestStore_PruneIdle(t *testing.T) {
	now := time.Now()
	store := NewStore()
	store.now = func() time.Time { return now }

	store.Get("stale").AddItem(Item{ProductID: 1, UnitPrice: 45000, Quantity: 1})

	// The fresh session touches its cart much later
	store.now = func() time.Time { return now.Add(30 * time.Hour) }
	store.Get("fresh").AddItem(Item{ProductID: 2, UnitPrice: 10000, Quantity: 1})

	assert.Equal(t, 1, store.PruneIdle(24*time.Hour))
	assert.Len(t, store.carts, 1)

	// The stale session starts over; the fresh one keeps its cart
	assert.Equal(t, 0, store.Get("stale").Count())
	assert.Equal(t, 1, store.Get("fresh").Count())
}
