package event

import (
	"encoding/json"
	"time"
)

const (
	// EventOrderCreated is emitted once per committed checkout.
	EventOrderCreated = "OrderCreated"
)

// Envelope wraps every published event with routing metadata.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// OrderCreatedPayload is the payload for EventOrderCreated. Line items stay
// in their serialized micro-format; consumers that need them parse the same
// way the back office does.
type OrderCreatedPayload struct {
	OrderCode      string  `json:"order_code"`
	RecipientName  string  `json:"recipient_name"`
	ItemsList      string  `json:"items_list"`
	TotalAmount    float64 `json:"total_amount"`
	DeliveryMethod string  `json:"delivery_method"`
}
