package readmodel

import (
	"time"

	"github.com/example/bookshop/internal/domain/address"
)

// OrderSummary is the flat, acyclic order record exposed to API consumers.
// It cuts the Order <-> Member / Order <-> OrderItem back-references by
// carrying only plain fields, so it is always safe to serialize.
type OrderSummary struct {
	OrderID    string          `json:"order_id"`
	MemberName string          `json:"member_name"`
	OrderedAt  time.Time       `json:"ordered_at"`
	Status     string          `json:"status"`
	Address    address.Address `json:"address"`
}
