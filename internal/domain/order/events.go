package order

import "time"

// Event types published to Kafka, keyed by order id.
const (
	EventOrderPlaced    = "OrderPlaced"
	EventOrderCancelled = "OrderCancelled"
)

// Event is the envelope written to the order events topic.
type Event struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	MemberID   string    `json:"member_id"`
	Total      int       `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PlacedEvent builds the envelope for a freshly placed order.
func PlacedEvent(o *Order) Event {
	return Event{
		Type:       EventOrderPlaced,
		OrderID:    o.ID,
		MemberID:   o.MemberID,
		Total:      o.TotalPrice(),
		OccurredAt: time.Now(),
	}
}

// CancelledEvent builds the envelope for a cancelled order.
func CancelledEvent(o *Order) Event {
	return Event{
		Type:       EventOrderCancelled,
		OrderID:    o.ID,
		MemberID:   o.MemberID,
		Total:      o.TotalPrice(),
		OccurredAt: time.Now(),
	}
}
