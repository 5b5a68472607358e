package item

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates item variants. Books are the only variant sold today;
// the column layout leaves room for more.
type Kind string

const KindBook Kind = "book"

var (
	ErrNotFound          = errors.New("item not found")
	ErrInvalidName       = errors.New("item name must not be empty")
	ErrInvalidPrice      = errors.New("item price must not be negative")
	ErrInvalidStock      = errors.New("stock quantity must not be negative")
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrStockConflict means a concurrent order consumed the stock between
	// our read and the guarded decrement. Callers may retry.
	ErrStockConflict = errors.New("stock changed concurrently")
)

// Item is an aggregate root holding catalog data and the current stock
// quantity. Stock never goes below zero: RemoveStock refuses to, and the
// repository enforces the same guard inside the database for concurrent
// writers.
type Item struct {
	ID            string    `json:"id"`
	Kind          Kind      `json:"kind"`
	Name          string    `json:"name"`
	Price         int       `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	Author        string    `json:"author,omitempty"`
	ISBN          string    `json:"isbn,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewBook creates a book item with a fresh identity.
func NewBook(name string, price, stock int, author, isbn string) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}
	now := time.Now()
	return &Item{
		ID:            uuid.New().String(),
		Kind:          KindBook,
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		Author:        author,
		ISBN:          isbn,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// AddStock restores quantity, e.g. when an order is cancelled.
func (i *Item) AddStock(quantity int) {
	i.StockQuantity += quantity
}

// RemoveStock decrements the stock quantity, failing if it would go negative.
func (i *Item) RemoveStock(quantity int) error {
	rest := i.StockQuantity - quantity
	if rest < 0 {
		return ErrInsufficientStock
	}
	i.StockQuantity = rest
	return nil
}
