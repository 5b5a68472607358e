package repository

import (
	"context"

	"github.com/example/bookshop/internal/domain/item"
	"github.com/example/bookshop/internal/domain/member"
	"github.com/example/bookshop/internal/domain/order"
	"github.com/example/bookshop/internal/readmodel"
)

// MemberRepository persists the Member aggregate.
type MemberRepository interface {
	// Save inserts a new member, or updates by identity if one exists.
	Save(ctx context.Context, m *member.Member) (string, error)
	// FindByID returns member.ErrNotFound when the id misses.
	FindByID(ctx context.Context, id string) (*member.Member, error)
	FindByName(ctx context.Context, name string) ([]*member.Member, error)
	FindAll(ctx context.Context) ([]*member.Member, error)
}

// ItemRepository persists the Item aggregate.
type ItemRepository interface {
	Save(ctx context.Context, it *item.Item) (string, error)
	// FindByID returns item.ErrNotFound when the id misses.
	FindByID(ctx context.Context, id string) (*item.Item, error)
	FindAll(ctx context.Context) ([]*item.Item, error)
	// Update persists name, price and stock for an already loaded item.
	Update(ctx context.Context, it *item.Item) error
	// AdjustStock applies delta to the stored stock quantity with a guard
	// that refuses to drive it negative. A negative delta that no longer
	// fits (a concurrent order won the stock) returns item.ErrStockConflict.
	AdjustStock(ctx context.Context, id string, delta int) error
}

// OrderSearch filters order listings.
type OrderSearch struct {
	Status     order.Status
	MemberName string // substring match
}

// OrderRepository persists the Order aggregate together with the delivery
// and order items it owns.
type OrderRepository interface {
	// Save inserts the order, its delivery and its items.
	Save(ctx context.Context, o *order.Order) (string, error)
	// FindByID loads the aggregate including delivery and items; the member
	// association stays an id. Returns order.ErrNotFound on a miss.
	FindByID(ctx context.Context, id string) (*order.Order, error)
	FindDeliveryByID(ctx context.Context, id string) (*order.Delivery, error)
	// FindAll loads order rows only; associations are left unresolved.
	FindAll(ctx context.Context, search OrderSearch) ([]*order.Order, error)
	// FindAllWithMemberDelivery loads orders with member and delivery
	// resolved in a single joined query.
	FindAllWithMemberDelivery(ctx context.Context, search OrderSearch) ([]*order.Order, error)
	// FindSummaries projects straight into the flat summary shape in a
	// single query, bypassing entity materialization.
	FindSummaries(ctx context.Context, search OrderSearch) ([]readmodel.OrderSummary, error)
	UpdateStatus(ctx context.Context, id string, status order.Status) error
}

// Repos bundles the repositories bound to one transaction.
type Repos interface {
	Members() MemberRepository
	Items() ItemRepository
	Orders() OrderRepository
}

// UnitOfWork runs fn inside a single atomic transaction: commit when fn
// returns nil, full rollback otherwise. Partial effects are never visible.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repos) error) error
	// DoReadOnly is the narrower scope for operations that only read.
	DoReadOnly(ctx context.Context, fn func(r Repos) error) error
}
