package query

import (
	"context"

	"github.com/example/bookshop/internal/domain/order"
	"github.com/example/bookshop/internal/readmodel"
	"github.com/example/bookshop/internal/repository"
)

// Handler serves the order listing read paths. Four ways exist to produce
// the same summary data; they differ only in query cost:
//
//	(a) ListOrders:             raw entities, associations unresolved
//	(b) ListSummariesPerRow:    entity load plus 2 lookups per row (N+1)
//	(c) ListSummariesJoined:    one query, join-fetched associations
//	(d) ListSummariesProjected: one query straight into the flat shape
//
// (c) and (d) are the ones to use; (a) and (b) stay as the cautionary
// baseline they are.
type Handler struct {
	orders  repository.OrderRepository
	members repository.MemberRepository
}

func NewHandler(orders repository.OrderRepository, members repository.MemberRepository) *Handler {
	return &Handler{orders: orders, members: members}
}

// ListOrders exposes order entities directly. Member and delivery are left
// as unresolved ids; callers that need them should use a summary path.
func (h *Handler) ListOrders(ctx context.Context, search repository.OrderSearch) ([]*order.Order, error) {
	return h.orders.FindAll(ctx, search)
}

// ListSummariesPerRow loads order rows, then resolves the member and the
// delivery with one lookup each per row. For k orders that is 1 + 2k
// queries.
func (h *Handler) ListSummariesPerRow(ctx context.Context, search repository.OrderSearch) ([]readmodel.OrderSummary, error) {
	orders, err := h.orders.FindAll(ctx, search)
	if err != nil {
		return nil, err
	}

	var summaries []readmodel.OrderSummary
	for _, o := range orders {
		m, err := h.members.FindByID(ctx, o.MemberID)
		if err != nil {
			return nil, err
		}
		d, err := h.orders.FindDeliveryByID(ctx, o.Delivery.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, readmodel.OrderSummary{
			OrderID:    o.ID,
			MemberName: m.Name,
			OrderedAt:  o.OrderedAt,
			Status:     string(o.Status),
			Address:    d.Address,
		})
	}
	return summaries, nil
}

// ListSummariesJoined issues a single join-fetch query and maps the loaded
// entities into summaries.
func (h *Handler) ListSummariesJoined(ctx context.Context, search repository.OrderSearch) ([]readmodel.OrderSummary, error) {
	orders, err := h.orders.FindAllWithMemberDelivery(ctx, search)
	if err != nil {
		return nil, err
	}

	var summaries []readmodel.OrderSummary
	for _, o := range orders {
		summaries = append(summaries, readmodel.OrderSummary{
			OrderID:    o.ID,
			MemberName: o.Member.Name,
			OrderedAt:  o.OrderedAt,
			Status:     string(o.Status),
			Address:    o.Delivery.Address,
		})
	}
	return summaries, nil
}

// ListSummariesProjected issues a single query that projects straight into
// the summary shape.
func (h *Handler) ListSummariesProjected(ctx context.Context, search repository.OrderSearch) ([]readmodel.OrderSummary, error) {
	return h.orders.FindSummaries(ctx, search)
}
