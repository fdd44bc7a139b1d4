package model

// Product status values. Only active products are visible on the storefront.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
	ProductStatusHidden   = "hidden"
)

// Product represents a dish in the menu catalogue.
type Product struct {
	ID            int64    `json:"id" db:"id"`
	CategoryID    *int64   `json:"category_id,omitempty" db:"category_id"`
	Name          string   `json:"name" db:"name"`
	Slug          string   `json:"slug" db:"slug"`
	Description   *string  `json:"description,omitempty" db:"description"`
	ImageURL      *string  `json:"image_url,omitempty" db:"image_url"`
	Price         float64  `json:"price" db:"price"`
	DiscountPrice *float64 `json:"discount_price,omitempty" db:"discount_price"`
	PromoText     *string  `json:"promo_text,omitempty" db:"promo_text"`
	Status        string   `json:"status" db:"status"`
	IsSpecial     bool     `json:"is_special" db:"is_special"`

	// CategoryName is populated by list queries that join categories.
	CategoryName *string `json:"category_name,omitempty" db:"category_name"`
}

// EffectivePrice returns the sale price the customer actually pays:
// the discount price when present and below the list price, else the list price.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

// ValidStatus reports whether s is a recognised product status.
func ValidStatus(s string) bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusHidden:
		return true
	}
	return false
}
