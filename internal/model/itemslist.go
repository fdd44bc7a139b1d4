package model

import (
	"encoding/json"
	"strings"
)

// ItemsListDelimiter separates the individually JSON-encoded records inside
// an order's items_list column. The backing schema stores the list as a
// single text column in this exact format, so the delimiter must not change.
const ItemsListDelimiter = "|||"

// OrderLineItem is one record of the items_list micro-format.
type OrderLineItem struct {
	Name       string  `json:"name"`
	Qty        int     `json:"qty"`
	TotalPrice float64 `json:"totalPrice"`
}

// EncodeItemsList serialises line items into the items_list micro-format:
// each item JSON-encoded on its own, joined by the delimiter.
func EncodeItemsList(items []OrderLineItem) (string, error) {
	segments := make([]string, 0, len(items))
	for _, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			return "", err
		}
		segments = append(segments, string(b))
	}
	return strings.Join(segments, ItemsListDelimiter), nil
}

// ParseItemsList decodes an items_list string. The format carries no
// error-recovery information, so a single malformed segment fails the whole
// parse safe into an empty list rather than returning a partial result.
func ParseItemsList(s string) []OrderLineItem {
	if s == "" {
		return []OrderLineItem{}
	}

	segments := strings.Split(s, ItemsListDelimiter)
	items := make([]OrderLineItem, 0, len(segments))
	for _, segment := range segments {
		var item OrderLineItem
		if err := json.Unmarshal([]byte(segment), &item); err != nil {
			return []OrderLineItem{}
		}
		items = append(items, item)
	}
	return items
}
