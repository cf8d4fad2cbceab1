package services_test

import (
	"context"
	"fmt"
	"testing"

	"jewellery-service/models"
	"jewellery-service/repository"
	"jewellery-service/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService() *services.CatalogService {
	return services.NewCatalogService(repository.NewMemoryStore().Catalog)
}

func createItem(t *testing.T, svc *services.CatalogService, name, price string, stock int) *models.CatalogItem {
	t.Helper()
	item, err := svc.Create(context.Background(), services.CreateCatalogItemInput{
		Name:          name,
		Materials:     "18k gold",
		Description:   "handmade",
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	})
	require.NoError(t, err)
	return item
}

func TestCreateCatalogItemDefaults(t *testing.T) {
	svc := newCatalogService()

	item := createItem(t, svc, "Gold Ring", "199.99", 10)

	assert.NotZero(t, item.ID)
	assert.True(t, item.IsActive)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("199.99")),
		"price %s should round-trip exactly", item.Price)
	assert.Equal(t, 10, item.StockQuantity)
}

func TestCreateCatalogItemRoundsPrice(t *testing.T) {
	svc := newCatalogService()

	item := createItem(t, svc, "Silver Band", "49.995", 3)

	assert.Equal(t, "50.00", item.Price.StringFixed(2))
}

func TestGetCatalogItemMissing(t *testing.T) {
	svc := newCatalogService()

	item, err := svc.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestSoftDeleteIsIdempotent(t *testing.T) {
	svc := newCatalogService()
	ctx := context.Background()
	item := createItem(t, svc, "Pearl Necklace", "320.00", 2)

	deleted, err := svc.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Deleting again still succeeds.
	deleted, err = svc.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive)
	assert.Equal(t, item.Name, got.Name)
	assert.True(t, got.Price.Equal(item.Price))
}

func TestSoftDeleteUnknownItem(t *testing.T) {
	svc := newCatalogService()

	deleted, err := svc.Delete(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListActiveExcludesDeleted(t *testing.T) {
	svc := newCatalogService()
	ctx := context.Background()

	createItem(t, svc, "Ring A", "100.00", 1)
	b := createItem(t, svc, "Ring B", "200.00", 1)
	createItem(t, svc, "Ring C", "300.00", 1)

	_, err := svc.Delete(ctx, b.ID)
	require.NoError(t, err)

	active, err := svc.ListActive(ctx, models.Pagination{})
	require.NoError(t, err)
	assert.Len(t, active, 2)
	for _, item := range active {
		assert.True(t, item.IsActive)
		assert.NotEqual(t, b.ID, item.ID)
	}

	all, err := svc.ListAll(ctx, models.Pagination{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListPaginationWindows(t *testing.T) {
	svc := newCatalogService()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		createItem(t, svc, fmt.Sprintf("Item %02d", i), "10.00", 1)
	}

	seen := make(map[int64]bool)
	for page := 1; page <= 3; page++ {
		items, err := svc.ListActive(ctx, models.Pagination{Page: page, Limit: 10})
		require.NoError(t, err)
		want := 10
		if page == 3 {
			want = 5
		}
		assert.Len(t, items, want)
		for _, item := range items {
			assert.False(t, seen[item.ID], "item %d appeared on two pages", item.ID)
			seen[item.ID] = true
		}
	}

	items, err := svc.ListActive(ctx, models.Pagination{Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListNewestFirst(t *testing.T) {
	svc := newCatalogService()
	ctx := context.Background()

	first := createItem(t, svc, "Oldest", "10.00", 1)
	last := createItem(t, svc, "Newest", "10.00", 1)

	items, err := svc.ListActive(ctx, models.Pagination{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, last.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	svc := newCatalogService()
	ctx := context.Background()
	item := createItem(t, svc, "Gold Ring", "199.99", 10)

	newPrice := decimal.RequireFromString("149.99")
	updated, err := svc.Update(ctx, item.ID, repository.CatalogItemUpdate{Price: &newPrice})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, item.Name, updated.Name)
	assert.Equal(t, item.StockQuantity, updated.StockQuantity)
	assert.Equal(t, item.IsActive, updated.IsActive)
	assert.False(t, updated.UpdatedAt.Before(item.UpdatedAt))
}

func TestUpdateUnknownItem(t *testing.T) {
	svc := newCatalogService()

	name := "Renamed"
	updated, err := svc.Update(context.Background(), 77, repository.CatalogItemUpdate{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, updated)
}
