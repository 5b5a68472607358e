package service

import (
	"context"
	"testing"

	"github.com/example/bookshop/internal/domain/item"
	"github.com/example/bookshop/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItemService() (*ItemService, *mocks.MockStore) {
	store := mocks.NewMockStore()
	return NewItemService(store), store
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestItemService_SaveItem(t *testing.T) {
	svc, _ := newTestItemService()
	ctx := context.Background()

	id, err := svc.SaveItem(ctx, "JPA Programming", 2000, 10, "Kim Younghan", "978-8960777330")

	require.NoError(t, err)

	it, err := svc.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "JPA Programming", it.Name)
	assert.Equal(t, 2000, it.Price)
	assert.Equal(t, 10, it.StockQuantity)
	assert.Equal(t, item.KindBook, it.Kind)
}

func TestItemService_SaveItem_Invalid(t *testing.T) {
	svc, store := newTestItemService()

	_, err := svc.SaveItem(context.Background(), "", 2000, 10, "", "")

	assert.ErrorIs(t, err, item.ErrInvalidName)
	assert.Equal(t, 0, store.Commits)
}

// ============================================
// UpdateItem Tests
// ============================================

func TestItemService_UpdateItem_Partial(t *testing.T) {
	svc, _ := newTestItemService()
	ctx := context.Background()

	id, err := svc.SaveItem(ctx, "JPA Programming", 2000, 10, "Kim Younghan", "978-8960777330")
	require.NoError(t, err)

	// only the price is supplied; every other field must survive
	require.NoError(t, svc.UpdateItem(ctx, id, nil, intPtr(2500), nil))

	it, err := svc.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "JPA Programming", it.Name)
	assert.Equal(t, 2500, it.Price)
	assert.Equal(t, 10, it.StockQuantity)
	assert.Equal(t, "Kim Younghan", it.Author)
	assert.Equal(t, "978-8960777330", it.ISBN)
}

func TestItemService_UpdateItem_NameAndStock(t *testing.T) {
	svc, _ := newTestItemService()
	ctx := context.Background()

	id, err := svc.SaveItem(ctx, "JPA Programming", 2000, 10, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateItem(ctx, id, strPtr("JPA Programming 2nd"), nil, intPtr(20)))

	it, err := svc.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "JPA Programming 2nd", it.Name)
	assert.Equal(t, 2000, it.Price)
	assert.Equal(t, 20, it.StockQuantity)
}

func TestItemService_UpdateItem_NotFound(t *testing.T) {
	svc, _ := newTestItemService()

	err := svc.UpdateItem(context.Background(), "missing", strPtr("x"), nil, nil)

	assert.ErrorIs(t, err, item.ErrNotFound)
}

func TestItemService_UpdateItem_InvalidPrice(t *testing.T) {
	svc, store := newTestItemService()
	ctx := context.Background()

	id, err := svc.SaveItem(ctx, "JPA Programming", 2000, 10, "", "")
	require.NoError(t, err)

	err = svc.UpdateItem(ctx, id, nil, intPtr(-1), nil)

	assert.ErrorIs(t, err, item.ErrInvalidPrice)
	assert.Equal(t, 2000, store.Item(id).Price)
}

func TestItemService_FindItems(t *testing.T) {
	svc, _ := newTestItemService()
	ctx := context.Background()

	_, err := svc.SaveItem(ctx, "Book A", 1000, 1, "", "")
	require.NoError(t, err)
	_, err = svc.SaveItem(ctx, "Book B", 2000, 2, "", "")
	require.NoError(t, err)

	items, err := svc.FindItems(ctx)

	require.NoError(t, err)
	assert.Len(t, items, 2)
}
