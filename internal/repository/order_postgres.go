package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/bookshop/internal/domain/member"
	"github.com/example/bookshop/internal/domain/order"
	"github.com/example/bookshop/internal/readmodel"
)

// PostgresOrderRepository implements OrderRepository using PostgreSQL. It
// runs inside whatever transaction the unit of work hands it, so a
// multi-statement Save is atomic with the service's other writes.
type PostgresOrderRepository struct {
	q Querier
}

func NewPostgresOrderRepository(q Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{q: q}
}

func (r *PostgresOrderRepository) Save(ctx context.Context, o *order.Order) (string, error) {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO deliveries (id, city, street, zipcode, status)
		VALUES ($1, $2, $3, $4, $5)
	`, o.Delivery.ID, o.Delivery.Address.City, o.Delivery.Address.Street, o.Delivery.Address.Zipcode, o.Delivery.Status)
	if err != nil {
		return "", fmt.Errorf("saving delivery: %w", err)
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO orders (id, member_id, delivery_id, status, ordered_at)
		VALUES ($1, $2, $3, $4, $5)
	`, o.ID, o.MemberID, o.Delivery.ID, o.Status, o.OrderedAt)
	if err != nil {
		return "", fmt.Errorf("saving order: %w", err)
	}

	for _, oi := range o.Items {
		_, err = r.q.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, item_id, order_price, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, oi.ID, o.ID, oi.ItemID, oi.OrderPrice, oi.Quantity)
		if err != nil {
			return "", fmt.Errorf("saving order item: %w", err)
		}
	}
	return o.ID, nil
}

func (r *PostgresOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	err := r.q.QueryRowContext(ctx, `
		SELECT o.id, o.member_id, o.status, o.ordered_at,
		       d.id, d.city, d.street, d.zipcode, d.status
		FROM orders o
		JOIN deliveries d ON d.id = o.delivery_id
		WHERE o.id = $1
	`, id).Scan(
		&o.ID, &o.MemberID, &o.Status, &o.OrderedAt,
		&o.Delivery.ID, &o.Delivery.Address.City, &o.Delivery.Address.Street,
		&o.Delivery.Address.Zipcode, &o.Delivery.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, order.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding order: %w", err)
	}

	items, err := r.findItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *PostgresOrderRepository) findItems(ctx context.Context, orderID string) ([]order.OrderItem, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, order_id, item_id, order_price, quantity
		FROM order_items WHERE order_id = $1 ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("finding order items: %w", err)
	}
	defer rows.Close()

	var items []order.OrderItem
	for rows.Next() {
		var oi order.OrderItem
		if err := rows.Scan(&oi.ID, &oi.OrderID, &oi.ItemID, &oi.OrderPrice, &oi.Quantity); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items = append(items, oi)
	}
	return items, rows.Err()
}

func (r *PostgresOrderRepository) FindDeliveryByID(ctx context.Context, id string) (*order.Delivery, error) {
	var d order.Delivery
	err := r.q.QueryRowContext(ctx, `
		SELECT id, city, street, zipcode, status FROM deliveries WHERE id = $1
	`, id).Scan(&d.ID, &d.Address.City, &d.Address.Street, &d.Address.Zipcode, &d.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, order.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding delivery: %w", err)
	}
	return &d, nil
}

// searchClause builds the WHERE fragment shared by the listing queries.
// The member join is always present, so the name filter works everywhere.
func searchClause(search OrderSearch, args []any) (string, []any) {
	clause := ""
	if search.Status != "" {
		args = append(args, search.Status)
		clause += fmt.Sprintf(" AND o.status = $%d", len(args))
	}
	if search.MemberName != "" {
		args = append(args, "%"+search.MemberName+"%")
		clause += fmt.Sprintf(" AND m.name LIKE $%d", len(args))
	}
	return clause, args
}

// FindAll loads order rows only, in a single query: member and delivery
// stay unresolved ids. Listing views that need the associations should
// prefer FindAllWithMemberDelivery or FindSummaries.
func (r *PostgresOrderRepository) FindAll(ctx context.Context, search OrderSearch) ([]*order.Order, error) {
	clause, args := searchClause(search, nil)
	rows, err := r.q.QueryContext(ctx, `
		SELECT o.id, o.member_id, o.delivery_id, o.status, o.ordered_at
		FROM orders o
		JOIN members m ON m.id = o.member_id
		WHERE true`+clause+`
		ORDER BY o.ordered_at
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ID, &o.MemberID, &o.Delivery.ID, &o.Status, &o.OrderedAt); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

// FindAllWithMemberDelivery resolves the member and delivery associations
// in the same query, so k result rows cost one query instead of 1 + 2k.
func (r *PostgresOrderRepository) FindAllWithMemberDelivery(ctx context.Context, search OrderSearch) ([]*order.Order, error) {
	clause, args := searchClause(search, nil)
	rows, err := r.q.QueryContext(ctx, `
		SELECT o.id, o.member_id, o.status, o.ordered_at,
		       m.id, m.name, m.email, m.city, m.street, m.zipcode, m.created_at,
		       d.id, d.city, d.street, d.zipcode, d.status
		FROM orders o
		JOIN members m ON m.id = o.member_id
		JOIN deliveries d ON d.id = o.delivery_id
		WHERE true`+clause+`
		ORDER BY o.ordered_at
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders with associations: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		var o order.Order
		var m member.Member
		err := rows.Scan(
			&o.ID, &o.MemberID, &o.Status, &o.OrderedAt,
			&m.ID, &m.Name, &m.Email, &m.Address.City, &m.Address.Street, &m.Address.Zipcode, &m.CreatedAt,
			&o.Delivery.ID, &o.Delivery.Address.City, &o.Delivery.Address.Street,
			&o.Delivery.Address.Zipcode, &o.Delivery.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		o.Member = &m
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

// FindSummaries projects directly into the flat summary shape. No entities
// are materialized for the associations at all.
func (r *PostgresOrderRepository) FindSummaries(ctx context.Context, search OrderSearch) ([]readmodel.OrderSummary, error) {
	clause, args := searchClause(search, nil)
	rows, err := r.q.QueryContext(ctx, `
		SELECT o.id, m.name, o.ordered_at, o.status, d.city, d.street, d.zipcode
		FROM orders o
		JOIN members m ON m.id = o.member_id
		JOIN deliveries d ON d.id = o.delivery_id
		WHERE true`+clause+`
		ORDER BY o.ordered_at
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("projecting order summaries: %w", err)
	}
	defer rows.Close()

	var summaries []readmodel.OrderSummary
	for rows.Next() {
		var s readmodel.OrderSummary
		err := rows.Scan(&s.OrderID, &s.MemberName, &s.OrderedAt, &s.Status,
			&s.Address.City, &s.Address.Street, &s.Address.Zipcode)
		if err != nil {
			return nil, fmt.Errorf("scanning order summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	res, err := r.q.ExecContext(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return order.ErrNotFound
	}
	return nil
}
