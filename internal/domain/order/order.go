package order

import (
	"errors"
	"time"

	"github.com/example/bookshop/internal/domain/address"
	"github.com/example/bookshop/internal/domain/item"
	"github.com/example/bookshop/internal/domain/member"
	"github.com/google/uuid"
)

type Status string

const (
	StatusOrdered   Status = "ORDER"
	StatusCancelled Status = "CANCEL" // terminal
)

type DeliveryStatus string

const (
	DeliveryReady     DeliveryStatus = "READY"
	DeliveryCompleted DeliveryStatus = "COMPLETED"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrEmptyOrder       = errors.New("order must have at least one item")
	ErrInvalidQuantity  = errors.New("order quantity must be positive")
	ErrAlreadyCancelled = errors.New("order is already cancelled")
)

// Delivery is owned exclusively by one order: created with it, persisted
// with it, never shared.
type Delivery struct {
	ID      string          `json:"id"`
	Address address.Address `json:"address"`
	Status  DeliveryStatus  `json:"status"`
}

// OrderItem snapshots the item price at order time, so later catalog price
// changes never alter historical orders.
type OrderItem struct {
	ID         string `json:"id"`
	OrderID    string `json:"order_id"`
	ItemID     string `json:"item_id"`
	OrderPrice int    `json:"order_price"`
	Quantity   int    `json:"quantity"`
}

// TotalPrice is the line total for this item.
func (oi OrderItem) TotalPrice() int {
	return oi.OrderPrice * oi.Quantity
}

// NewOrderItem captures the item's current price. It does not touch the
// item's stock; the service decrements stock inside the same unit of work.
func NewOrderItem(it *item.Item, quantity int) (OrderItem, error) {
	if quantity <= 0 {
		return OrderItem{}, ErrInvalidQuantity
	}
	if quantity > it.StockQuantity {
		return OrderItem{}, item.ErrInsufficientStock
	}
	return OrderItem{
		ID:         uuid.New().String(),
		ItemID:     it.ID,
		OrderPrice: it.Price,
		Quantity:   quantity,
	}, nil
}

// Order is the aggregate root owning its delivery and order items. The
// member association is kept by id; Member is populated only on join-fetch
// reads and never serialized back into the member's order list.
type Order struct {
	ID        string         `json:"id"`
	MemberID  string         `json:"member_id"`
	Member    *member.Member `json:"member,omitempty"`
	Delivery  Delivery       `json:"delivery"`
	Items     []OrderItem    `json:"items"`
	Status    Status         `json:"status"`
	OrderedAt time.Time      `json:"ordered_at"`
}

// New assembles a complete order aggregate for the given member: a READY
// delivery to the member's address and the given items, in status ORDER.
func New(m *member.Member, items ...OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	orderID := uuid.New().String()
	for i := range items {
		items[i].OrderID = orderID
	}
	return &Order{
		ID:       orderID,
		MemberID: m.ID,
		Delivery: Delivery{
			ID:      uuid.New().String(),
			Address: m.Address,
			Status:  DeliveryReady,
		},
		Items:     items,
		Status:    StatusOrdered,
		OrderedAt: time.Now(),
	}, nil
}

// Cancel transitions the order to CANCEL. Only legal from status ORDER.
func (o *Order) Cancel() error {
	if o.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	o.Status = StatusCancelled
	return nil
}

// TotalPrice is derived, never stored.
func (o *Order) TotalPrice() int {
	var total int
	for _, oi := range o.Items {
		total += oi.TotalPrice()
	}
	return total
}
