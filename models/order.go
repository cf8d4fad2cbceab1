package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"

	PaymentStatusPending = "pending"
)

type Order struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customer_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	ShippingAddress string          `json:"shipping_address"`
	BillingAddress  string          `json:"billing_address"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentMethod   *string         `json:"payment_method,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderLineItem rows are immutable once written. PricePerItem is a snapshot
// taken at purchase time; later catalog price changes never alter it.
type OrderLineItem struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"order_id"`
	CatalogItemID int64           `json:"catalog_item_id"`
	Quantity      int             `json:"quantity"`
	PricePerItem  decimal.Decimal `json:"price_per_item"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderItemDetail pairs the immutable line item with the current catalog
// record for display.
type OrderItemDetail struct {
	OrderLineItem
	Item CatalogItem `json:"item"`
}

type OrderDetail struct {
	Order
	Customer Customer          `json:"customer"`
	Items    []OrderItemDetail `json:"order_items"`
}

// OrderEvent is the message body published to RabbitMQ after order writes.
type OrderEvent struct {
	OrderID  int64           `json:"order_id"`
	Type     string          `json:"type"` // created, status_updated, payment_check
	Status   string          `json:"status"`
	Total    decimal.Decimal `json:"total"`
	Occurred time.Time       `json:"occurred"`
}
