package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeItemsList(t *testing.T) {
	tests := []struct {
		name     string
		items    []OrderLineItem
		expected string
	}{
		{
			name:     "Empty list",
			items:    nil,
			expected: "",
		},
		{
			name: "Single item",
			items: []OrderLineItem{
				{Name: "Bánh chưng", Qty: 2, TotalPrice: 90000},
			},
			expected: `{"name":"Bánh chưng","qty":2,"totalPrice":90000}`,
		},
		{
			name: "Multiple items joined by delimiter",
			items: []OrderLineItem{
				{Name: "Bánh chưng", Qty: 2, TotalPrice: 90000},
				{Name: "Chả lụa", Qty: 1, TotalPrice: 10000},
			},
			expected: `{"name":"Bánh chưng","qty":2,"totalPrice":90000}` + ItemsListDelimiter +
				`{"name":"Chả lụa","qty":1,"totalPrice":10000}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodeItemsList(tt.items)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, encoded)
		})
	}
}

func TestParseItemsList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []OrderLineItem
	}{
		{
			name:     "Empty string",
			input:    "",
			expected: []OrderLineItem{},
		},
		{
			name:  "Single record",
			input: `{"name":"Bánh chưng","qty":2,"totalPrice":90000}`,
			expected: []OrderLineItem{
				{Name: "Bánh chưng", Qty: 2, TotalPrice: 90000},
			},
		},
		{
			name: "Multiple records",
			input: `{"name":"Bánh chưng","qty":2,"totalPrice":90000}` + ItemsListDelimiter +
				`{"name":"Chả lụa","qty":1,"totalPrice":10000}`,
			expected: []OrderLineItem{
				{Name: "Bánh chưng", Qty: 2, TotalPrice: 90000},
				{Name: "Chả lụa", Qty: 1, TotalPrice: 10000},
			},
		},
		{
			name: "Malformed segment fails the whole parse",
			input: `{"name":"Bánh chưng","qty":2,"totalPrice":90000}` + ItemsListDelimiter +
				`not json at all`,
			expected: []OrderLineItem{},
		},
		{
			name:     "Plain garbage",
			input:    "hello world",
			expected: []OrderLineItem{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseItemsList(tt.input))
		})
	}
}

func TestItemsListRoundTrip(t *testing.T) {
	items := []OrderLineItem{
		{Name: "Gà kho gừng", Qty: 3, TotalPrice: 135000},
		{Name: "Xôi gấc", Qty: 1, TotalPrice: 25000},
	}

	encoded, err := EncodeItemsList(items)
	require.NoError(t, err)
	assert.Equal(t, items, ParseItemsList(encoded))
}
