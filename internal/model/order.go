package model

import "time"

// Order status values.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipping  = "shipping"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Payment status values.
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// Delivery methods accepted at checkout.
const (
	DeliveryMethodCOD     = "cod"
	DeliveryMethodBanking = "banking"
)

// Order represents a placed customer order.
type Order struct {
	ID              int64     `json:"id" db:"id"`
	OrderCode       string    `json:"order_code" db:"order_code"`
	RecipientName   string    `json:"recipient_name" db:"recipient_name"`
	PhoneNumber     string    `json:"phone_number" db:"phone_number"`
	DeliveryAddress string    `json:"delivery_address" db:"delivery_address"`
	ItemsList       string    `json:"items_list" db:"items_list"`
	Note            *string   `json:"note,omitempty" db:"note"`
	Subtotal        float64   `json:"subtotal" db:"subtotal"`
	ShippingFee     float64   `json:"shipping_fee" db:"shipping_fee"`
	PromoCode       *string   `json:"promo_code,omitempty" db:"promo_code"`
	DiscountAmount  float64   `json:"discount_amount" db:"discount_amount"`
	TotalAmount     float64   `json:"total_amount" db:"total_amount"`
	DeliveryMethod  string    `json:"delivery_method" db:"delivery_method"`
	PaymentStatus   string    `json:"payment_status" db:"payment_status"`
	DeliveryDate    string    `json:"delivery_date" db:"delivery_date"`
	DeliveryTime    string    `json:"delivery_time" db:"delivery_time"`
	Status          string    `json:"status" db:"status"`
	OrderTime       time.Time `json:"order_time" db:"order_time"`
}

// OrderFilter narrows admin order listings. Search matches order code,
// recipient name or phone number as a case-insensitive substring; empty
// fields are ignored.
type OrderFilter struct {
	Search        string
	Status        string
	PaymentStatus string
}

// OrderPatch is the fixed field subset an administrator may edit.
// Nil fields are left untouched.
type OrderPatch struct {
	Status          *string `json:"status,omitempty"`
	PaymentStatus   *string `json:"payment_status,omitempty"`
	RecipientName   *string `json:"recipient_name,omitempty"`
	PhoneNumber     *string `json:"phone_number,omitempty"`
	DeliveryAddress *string `json:"delivery_address,omitempty"`
}

// ValidOrderStatus reports whether s is a recognised order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipping,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a recognised payment status.
func ValidPaymentStatus(s string) bool {
	return s == PaymentStatusPaid || s == PaymentStatusUnpaid
}
