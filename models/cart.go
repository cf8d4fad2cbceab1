package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineItem is scoped by an opaque, client-supplied session id. One row
// per (session, catalog item) pair; cart-add merges quantities instead of
// inserting a second row.
type CartLineItem struct {
	ID            int64     `json:"id"`
	SessionID     string    `json:"session_id"`
	CatalogItemID int64     `json:"catalog_item_id"`
	Quantity      int       `json:"quantity"`
	CreatedAt     time.Time `json:"created_at"`
}

// CartEntry joins a cart row with the live catalog record. Prices here are
// current catalog prices, not snapshots.
type CartEntry struct {
	CartLineItem
	Item CatalogItem `json:"item"`
}

type Cart struct {
	SessionID   string          `json:"session_id"`
	Items       []CartEntry     `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
