package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItem is a sellable jewellery product. Items are never hard-deleted;
// IsActive=false takes them off the storefront while preserving the rows
// historical orders reference.
type CatalogItem struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Materials     string          `json:"materials"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      *string         `json:"image_url,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
