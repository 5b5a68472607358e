package service

import (
	"context"
	"log"

	"github.com/example/bookshop/internal/domain/order"
	"github.com/example/bookshop/internal/repository"
)

// EventPublisher publishes order lifecycle events, keyed by order id.
// Satisfied by kafka.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// OrderService owns order placement and cancellation. Each operation runs
// inside one unit of work; events go out only after the commit, best
// effort.
type OrderService struct {
	uow       repository.UnitOfWork
	publisher EventPublisher
}

func NewOrderService(uow repository.UnitOfWork, publisher EventPublisher) *OrderService {
	return &OrderService{uow: uow, publisher: publisher}
}

// Place creates a complete order aggregate for the member: delivery to the
// member's address, an order item with the price captured now, and the
// stock decrement, all committed together or not at all.
func (s *OrderService) Place(ctx context.Context, memberID, itemID string, quantity int) (string, error) {
	var placed *order.Order
	err := s.uow.Do(ctx, func(r repository.Repos) error {
		m, err := r.Members().FindByID(ctx, memberID)
		if err != nil {
			return err
		}
		it, err := r.Items().FindByID(ctx, itemID)
		if err != nil {
			return err
		}

		oi, err := order.NewOrderItem(it, quantity)
		if err != nil {
			return err
		}
		o, err := order.New(m, oi)
		if err != nil {
			return err
		}

		if err := r.Items().AdjustStock(ctx, itemID, -quantity); err != nil {
			return err
		}
		if _, err := r.Orders().Save(ctx, o); err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		return "", err
	}

	s.publish(ctx, order.PlacedEvent(placed))
	return placed.ID, nil
}

// Cancel transitions the order to CANCEL and restores each item's stock,
// atomically with the status change.
func (s *OrderService) Cancel(ctx context.Context, orderID string) error {
	var cancelled *order.Order
	err := s.uow.Do(ctx, func(r repository.Repos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.Cancel(); err != nil {
			return err
		}
		if err := r.Orders().UpdateStatus(ctx, o.ID, o.Status); err != nil {
			return err
		}
		for _, oi := range o.Items {
			if err := r.Items().AdjustStock(ctx, oi.ItemID, oi.Quantity); err != nil {
				return err
			}
		}
		cancelled = o
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, order.CancelledEvent(cancelled))
	return nil
}

// FindOne loads an order aggregate by id.
func (s *OrderService) FindOne(ctx context.Context, id string) (*order.Order, error) {
	var o *order.Order
	err := s.uow.DoReadOnly(ctx, func(r repository.Repos) error {
		var err error
		o, err = r.Orders().FindByID(ctx, id)
		return err
	})
	return o, err
}

// FindOrders lists orders matching the search, with member and delivery
// resolved.
func (s *OrderService) FindOrders(ctx context.Context, search repository.OrderSearch) ([]*order.Order, error) {
	var orders []*order.Order
	err := s.uow.DoReadOnly(ctx, func(r repository.Repos) error {
		var err error
		orders, err = r.Orders().FindAllWithMemberDelivery(ctx, search)
		return err
	})
	return orders, err
}

func (s *OrderService) publish(ctx context.Context, e order.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e.OrderID, e); err != nil {
		log.Printf("[OrderService] Failed to publish %s for order %s: %v", e.Type, e.OrderID, err)
	}
}
