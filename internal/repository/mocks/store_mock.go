package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/example/bookshop/internal/domain/item"
	"github.com/example/bookshop/internal/domain/member"
	"github.com/example/bookshop/internal/domain/order"
	"github.com/example/bookshop/internal/readmodel"
	"github.com/example/bookshop/internal/repository"
)

// MockStore is an in-memory implementation of repository.UnitOfWork and
// repository.Repos for testing. Do snapshots the state before running fn
// and restores it when fn fails, so tests can assert real rollback
// semantics without a database.
type MockStore struct {
	mu      sync.Mutex
	members map[string]*member.Member
	items   map[string]*item.Item
	orders  map[string]*order.Order

	// For tracking calls in tests
	Commits   int
	Rollbacks int

	MemberFindByIDCalls   []string
	ItemFindByIDCalls     []string
	OrderFindAllCalls     int
	OrderFindJoinedCalls  int
	OrderFindSummaryCalls int
	DeliveryFindCalls     []string

	// Injectable failures
	FailOrderSave   error
	FailAdjustStock error
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		members: make(map[string]*member.Member),
		items:   make(map[string]*item.Item),
		orders:  make(map[string]*order.Order),
	}
}

func (s *MockStore) Do(ctx context.Context, fn func(r repository.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, items, orders := s.snapshot()
	if err := fn(s); err != nil {
		s.members, s.items, s.orders = members, items, orders
		s.Rollbacks++
		return err
	}
	s.Commits++
	return nil
}

// DoReadOnly runs fn without touching the Commits/Rollbacks counters:
// read scopes are not write commits, so tests asserting on the counters
// only see actual writes.
func (s *MockStore) DoReadOnly(ctx context.Context, fn func(r repository.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

func (s *MockStore) snapshot() (map[string]*member.Member, map[string]*item.Item, map[string]*order.Order) {
	members := make(map[string]*member.Member, len(s.members))
	for id, m := range s.members {
		cp := *m
		members[id] = &cp
	}
	items := make(map[string]*item.Item, len(s.items))
	for id, it := range s.items {
		cp := *it
		items[id] = &cp
	}
	orders := make(map[string]*order.Order, len(s.orders))
	for id, o := range s.orders {
		cp := *o
		cp.Items = append([]order.OrderItem(nil), o.Items...)
		orders[id] = &cp
	}
	return members, items, orders
}

func (s *MockStore) Members() repository.MemberRepository { return &mockMemberRepo{s} }
func (s *MockStore) Items() repository.ItemRepository     { return &mockItemRepo{s} }
func (s *MockStore) Orders() repository.OrderRepository   { return &mockOrderRepo{s} }

// Seed helpers for arranging test state outside a unit of work.

func (s *MockStore) SeedMember(m *member.Member) { s.members[m.ID] = m }
func (s *MockStore) SeedItem(it *item.Item)      { s.items[it.ID] = it }
func (s *MockStore) SeedOrder(o *order.Order)    { s.orders[o.ID] = o }

// Item returns the stored item for assertions.
func (s *MockStore) Item(id string) *item.Item { return s.items[id] }

// Order returns the stored order for assertions.
func (s *MockStore) Order(id string) *order.Order { return s.orders[id] }

type mockMemberRepo struct{ s *MockStore }

func (r *mockMemberRepo) Save(ctx context.Context, m *member.Member) (string, error) {
	cp := *m
	r.s.members[m.ID] = &cp
	return m.ID, nil
}

func (r *mockMemberRepo) FindByID(ctx context.Context, id string) (*member.Member, error) {
	r.s.MemberFindByIDCalls = append(r.s.MemberFindByIDCalls, id)
	m, ok := r.s.members[id]
	if !ok {
		return nil, member.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *mockMemberRepo) FindByName(ctx context.Context, name string) ([]*member.Member, error) {
	var found []*member.Member
	for _, m := range r.s.members {
		if m.Name == name {
			cp := *m
			found = append(found, &cp)
		}
	}
	return found, nil
}

func (r *mockMemberRepo) FindAll(ctx context.Context) ([]*member.Member, error) {
	var all []*member.Member
	for _, m := range r.s.members {
		cp := *m
		all = append(all, &cp)
	}
	return all, nil
}

type mockItemRepo struct{ s *MockStore }

func (r *mockItemRepo) Save(ctx context.Context, it *item.Item) (string, error) {
	cp := *it
	r.s.items[it.ID] = &cp
	return it.ID, nil
}

func (r *mockItemRepo) FindByID(ctx context.Context, id string) (*item.Item, error) {
	r.s.ItemFindByIDCalls = append(r.s.ItemFindByIDCalls, id)
	it, ok := r.s.items[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *mockItemRepo) FindAll(ctx context.Context) ([]*item.Item, error) {
	var all []*item.Item
	for _, it := range r.s.items {
		cp := *it
		all = append(all, &cp)
	}
	return all, nil
}

func (r *mockItemRepo) Update(ctx context.Context, it *item.Item) error {
	if _, ok := r.s.items[it.ID]; !ok {
		return item.ErrNotFound
	}
	cp := *it
	r.s.items[it.ID] = &cp
	return nil
}

func (r *mockItemRepo) AdjustStock(ctx context.Context, id string, delta int) error {
	if r.s.FailAdjustStock != nil {
		return r.s.FailAdjustStock
	}
	it, ok := r.s.items[id]
	if !ok {
		return item.ErrNotFound
	}
	if it.StockQuantity+delta < 0 {
		return item.ErrStockConflict
	}
	it.StockQuantity += delta
	return nil
}

type mockOrderRepo struct{ s *MockStore }

func (r *mockOrderRepo) Save(ctx context.Context, o *order.Order) (string, error) {
	if r.s.FailOrderSave != nil {
		return "", r.s.FailOrderSave
	}
	cp := *o
	cp.Items = append([]order.OrderItem(nil), o.Items...)
	r.s.orders[o.ID] = &cp
	return o.ID, nil
}

func (r *mockOrderRepo) FindByID(ctx context.Context, id string) (*order.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	cp.Items = append([]order.OrderItem(nil), o.Items...)
	cp.Member = nil
	return &cp, nil
}

func (r *mockOrderRepo) FindDeliveryByID(ctx context.Context, id string) (*order.Delivery, error) {
	r.s.DeliveryFindCalls = append(r.s.DeliveryFindCalls, id)
	for _, o := range r.s.orders {
		if o.Delivery.ID == id {
			d := o.Delivery
			return &d, nil
		}
	}
	return nil, order.ErrNotFound
}

func (r *mockOrderRepo) matches(o *order.Order, search repository.OrderSearch) bool {
	if search.Status != "" && o.Status != search.Status {
		return false
	}
	if search.MemberName != "" {
		m, ok := r.s.members[o.MemberID]
		if !ok || !strings.Contains(m.Name, search.MemberName) {
			return false
		}
	}
	return true
}

func (r *mockOrderRepo) FindAll(ctx context.Context, search repository.OrderSearch) ([]*order.Order, error) {
	r.s.OrderFindAllCalls++
	var orders []*order.Order
	for _, o := range r.s.orders {
		if !r.matches(o, search) {
			continue
		}
		cp := *o
		cp.Items = nil
		cp.Member = nil
		orders = append(orders, &cp)
	}
	sortOrders(orders)
	return orders, nil
}

func (r *mockOrderRepo) FindAllWithMemberDelivery(ctx context.Context, search repository.OrderSearch) ([]*order.Order, error) {
	r.s.OrderFindJoinedCalls++
	var orders []*order.Order
	for _, o := range r.s.orders {
		if !r.matches(o, search) {
			continue
		}
		cp := *o
		cp.Items = nil
		if m, ok := r.s.members[o.MemberID]; ok {
			mc := *m
			cp.Member = &mc
		}
		orders = append(orders, &cp)
	}
	sortOrders(orders)
	return orders, nil
}

func (r *mockOrderRepo) FindSummaries(ctx context.Context, search repository.OrderSearch) ([]readmodel.OrderSummary, error) {
	r.s.OrderFindSummaryCalls++
	orders, err := r.FindAllWithMemberDelivery(ctx, search)
	r.s.OrderFindJoinedCalls-- // internal reuse, not a separate query
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

func (r *mockOrderRepo) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	o, ok := r.s.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.Status = status
	return nil
}

func sortOrders(orders []*order.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderedAt.Before(orders[j].OrderedAt)
	})
}
