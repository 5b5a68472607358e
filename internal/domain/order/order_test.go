package order

import (
	"testing"

	"github.com/example/bookshop/internal/domain/address"
	"github.com/example/bookshop/internal/domain/item"
	"github.com/example/bookshop/internal/domain/member"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMember(t *testing.T) *member.Member {
	t.Helper()
	m, err := member.New("kim", "kim@example.com", address.New("Seoul", "Teheran-ro 1", "06000"))
	require.NoError(t, err)
	return m
}

func testBook(t *testing.T, price, stock int) *item.Item {
	t.Helper()
	it, err := item.NewBook("JPA Programming", price, stock, "Kim Younghan", "978-8960777330")
	require.NoError(t, err)
	return it
}

// ============================================
// OrderItem Tests
// ============================================

func TestNewOrderItem_CapturesPrice(t *testing.T) {
	it := testBook(t, 2000, 10)

	oi, err := NewOrderItem(it, 3)
	require.NoError(t, err)

	// later catalog price changes must not alter the snapshot
	it.Price = 9999
	assert.Equal(t, 2000, oi.OrderPrice)
	assert.Equal(t, 3, oi.Quantity)
	assert.Equal(t, 6000, oi.TotalPrice())
}

func TestNewOrderItem_ZeroQuantity(t *testing.T) {
	_, err := NewOrderItem(testBook(t, 2000, 10), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestNewOrderItem_NegativeQuantity(t *testing.T) {
	_, err := NewOrderItem(testBook(t, 2000, 10), -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestNewOrderItem_ExceedsStock(t *testing.T) {
	_, err := NewOrderItem(testBook(t, 2000, 5), 6)
	assert.ErrorIs(t, err, item.ErrInsufficientStock)
}

// ============================================
// Order Tests
// ============================================

func TestNew_BuildsAggregate(t *testing.T) {
	m := testMember(t)
	oi, _ := NewOrderItem(testBook(t, 2000, 10), 2)

	o, err := New(m, oi)

	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, m.ID, o.MemberID)
	assert.Equal(t, StatusOrdered, o.Status)
	assert.Equal(t, DeliveryReady, o.Delivery.Status)
	assert.Equal(t, m.Address, o.Delivery.Address)
	require.Len(t, o.Items, 1)
	assert.Equal(t, o.ID, o.Items[0].OrderID)
	assert.False(t, o.OrderedAt.IsZero())
}

func TestNew_NoItems(t *testing.T) {
	o, err := New(testMember(t))

	assert.ErrorIs(t, err, ErrEmptyOrder)
	assert.Nil(t, o)
}

func TestTotalPrice_IsDerived(t *testing.T) {
	m := testMember(t)
	oi1, _ := NewOrderItem(testBook(t, 2000, 10), 2)
	oi2, _ := NewOrderItem(testBook(t, 500, 10), 3)

	o, err := New(m, oi1, oi2)

	require.NoError(t, err)
	assert.Equal(t, 2000*2+500*3, o.TotalPrice())
}

func TestCancel(t *testing.T) {
	oi, _ := NewOrderItem(testBook(t, 2000, 10), 1)
	o, _ := New(testMember(t), oi)

	require.NoError(t, o.Cancel())
	assert.Equal(t, StatusCancelled, o.Status)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	oi, _ := NewOrderItem(testBook(t, 2000, 10), 1)
	o, _ := New(testMember(t), oi)
	require.NoError(t, o.Cancel())

	err := o.Cancel()

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Equal(t, StatusCancelled, o.Status)
}
