package repository_test

import (
	"context"
	"testing"
	"time"

	"jewellery-service/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalogRowColumns = []string{
	"id", "name", "materials", "description", "price", "image_url",
	"stock_quantity", "is_active", "created_at", "updated_at",
}

func TestCreateCatalogItemAssignsID(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectExec("INSERT INTO catalog_items").
		WillReturnResult(sqlmock.NewResult(5, 1))

	item := &models.CatalogItem{
		Name:          "Gold Ring",
		Materials:     "18k gold",
		Price:         decimal.RequireFromString("199.99"),
		StockQuantity: 10,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, store.Catalog.Create(context.Background(), item))
	assert.Equal(t, int64(5), item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCatalogItemByIDMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM catalog_items WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(catalogRowColumns))

	item, err := store.Catalog.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, item)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCatalogItemsScansRows(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	rows := sqlmock.NewRows(catalogRowColumns).
		AddRow(2, "Pearl Necklace", "freshwater pearl", "strand of 40", "320.00", "https://cdn.example.com/pearl.jpg", 2, true, now, now).
		AddRow(1, "Gold Ring", "18k gold", "handmade", "199.99", nil, 10, true, now, now)
	mock.ExpectQuery("SELECT (.+) FROM catalog_items WHERE is_active").
		WithArgs(10, 0).
		WillReturnRows(rows)

	items, err := store.Catalog.List(context.Background(), true, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, int64(2), items[0].ID)
	require.NotNil(t, items[0].ImageURL)
	assert.Equal(t, "https://cdn.example.com/pearl.jpg", *items[0].ImageURL)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("320.00")))

	assert.Equal(t, int64(1), items[1].ID)
	assert.Nil(t, items[1].ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateMissingItem(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM catalog_items WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(catalogRowColumns))

	deactivated, err := store.Catalog.Deactivate(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, deactivated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateExistingItem(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM catalog_items WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(catalogRowColumns).
			AddRow(1, "Gold Ring", "18k gold", "handmade", "199.99", nil, 10, true, now, now))
	mock.ExpectExec("UPDATE catalog_items SET is_active").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deactivated, err := store.Catalog.Deactivate(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deactivated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
