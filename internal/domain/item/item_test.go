package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// NewBook Tests
// ============================================

func TestNewBook_Valid(t *testing.T) {
	it, err := NewBook("Domain-Driven Design", 5500, 10, "Eric Evans", "978-0321125217")

	require.NoError(t, err)
	assert.NotEmpty(t, it.ID)
	assert.Equal(t, KindBook, it.Kind)
	assert.Equal(t, "Domain-Driven Design", it.Name)
	assert.Equal(t, 5500, it.Price)
	assert.Equal(t, 10, it.StockQuantity)
	assert.Equal(t, "Eric Evans", it.Author)
}

func TestNewBook_EmptyName(t *testing.T) {
	it, err := NewBook("  ", 1000, 10, "", "")

	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Nil(t, it)
}

func TestNewBook_NegativePrice(t *testing.T) {
	it, err := NewBook("Book", -1, 10, "", "")

	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Nil(t, it)
}

func TestNewBook_NegativeStock(t *testing.T) {
	it, err := NewBook("Book", 1000, -1, "", "")

	assert.ErrorIs(t, err, ErrInvalidStock)
	assert.Nil(t, it)
}

func TestNewBook_ZeroStock(t *testing.T) {
	it, err := NewBook("Book", 1000, 0, "", "")

	require.NoError(t, err)
	assert.Equal(t, 0, it.StockQuantity)
}

// ============================================
// Stock Tests
// ============================================

func TestRemoveStock(t *testing.T) {
	it, _ := NewBook("Book", 1000, 10, "", "")

	err := it.RemoveStock(4)

	require.NoError(t, err)
	assert.Equal(t, 6, it.StockQuantity)
}

func TestRemoveStock_ToZero(t *testing.T) {
	it, _ := NewBook("Book", 1000, 10, "", "")

	err := it.RemoveStock(10)

	require.NoError(t, err)
	assert.Equal(t, 0, it.StockQuantity)
}

func TestRemoveStock_Insufficient(t *testing.T) {
	it, _ := NewBook("Book", 1000, 10, "", "")

	err := it.RemoveStock(11)

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 10, it.StockQuantity)
}

func TestAddStock(t *testing.T) {
	it, _ := NewBook("Book", 1000, 10, "", "")

	it.AddStock(5)

	assert.Equal(t, 15, it.StockQuantity)
}
