package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/bookshop/internal/domain/item"
)

// PostgresItemRepository implements ItemRepository using PostgreSQL.
type PostgresItemRepository struct {
	q Querier
}

func NewPostgresItemRepository(q Querier) *PostgresItemRepository {
	return &PostgresItemRepository{q: q}
}

func (r *PostgresItemRepository) Save(ctx context.Context, it *item.Item) (string, error) {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO items (id, kind, name, price, stock_quantity, author, isbn, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			stock_quantity = EXCLUDED.stock_quantity,
			author = EXCLUDED.author,
			isbn = EXCLUDED.isbn,
			updated_at = EXCLUDED.updated_at
	`, it.ID, it.Kind, it.Name, it.Price, it.StockQuantity, it.Author, it.ISBN, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		return "", fmt.Errorf("saving item: %w", err)
	}
	return it.ID, nil
}

func (r *PostgresItemRepository) FindByID(ctx context.Context, id string) (*item.Item, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, kind, name, price, stock_quantity, author, isbn, created_at, updated_at
		FROM items WHERE id = $1
	`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, item.ErrNotFound
	}
	return it, err
}

func (r *PostgresItemRepository) FindAll(ctx context.Context) ([]*item.Item, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, kind, name, price, stock_quantity, author, isbn, created_at, updated_at
		FROM items ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*item.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresItemRepository) Update(ctx context.Context, it *item.Item) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE items SET name = $2, price = $3, stock_quantity = $4, updated_at = $5
		WHERE id = $1
	`, it.ID, it.Name, it.Price, it.StockQuantity, time.Now())
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return item.ErrNotFound
	}
	return nil
}

// AdjustStock is the single place stock changes hit the database. The guard
// keeps the quantity non-negative even when two orders race on one item:
// the loser affects zero rows and gets item.ErrStockConflict.
func (r *PostgresItemRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE items SET stock_quantity = stock_quantity + $2, updated_at = $3
		WHERE id = $1 AND stock_quantity + $2 >= 0
	`, id, delta, time.Now())
	if err != nil {
		return fmt.Errorf("adjusting stock: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return item.ErrStockConflict
	}
	return nil
}

func scanItem(row rowScanner) (*item.Item, error) {
	var it item.Item
	err := row.Scan(&it.ID, &it.Kind, &it.Name, &it.Price, &it.StockQuantity, &it.Author, &it.ISBN, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
