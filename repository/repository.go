package repository

import (
	"context"

	"jewellery-service/models"

	"github.com/shopspring/decimal"
)

// The repositories own persistence only. Business validation (stock checks,
// duplicate emails, total verification) lives in the services; the one
// exception is PlaceOrder's conditional stock decrement, which has to run
// inside the store transaction to stay correct under concurrent orders.
//
// Reads and updates report a missing row as (nil, nil); boolean mutations
// report "nothing matched" as false. Only infrastructure failures surface
// as errors.

// CatalogItemUpdate carries the supplied fields of a partial update; nil
// means "leave unchanged".
type CatalogItemUpdate struct {
	Name          *string
	Materials     *string
	Description   *string
	Price         *decimal.Decimal
	ImageURL      *string
	StockQuantity *int
	IsActive      *bool
}

type OrderUpdate struct {
	Status        *string
	PaymentStatus *string
	PaymentMethod *string
}

type CatalogRepository interface {
	Create(ctx context.Context, item *models.CatalogItem) error
	GetByID(ctx context.Context, id int64) (*models.CatalogItem, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]models.CatalogItem, error)
	Update(ctx context.Context, id int64, upd CatalogItemUpdate) (*models.CatalogItem, error)
	Deactivate(ctx context.Context, id int64) (bool, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	List(ctx context.Context, limit, offset int) ([]models.Customer, error)
}

type CartRepository interface {
	GetItem(ctx context.Context, id int64) (*models.CartLineItem, error)
	FindBySessionAndItem(ctx context.Context, sessionID string, catalogItemID int64) (*models.CartLineItem, error)
	Insert(ctx context.Context, line *models.CartLineItem) error
	SetQuantity(ctx context.Context, id int64, quantity int) error
	ListBySession(ctx context.Context, sessionID string) ([]models.CartEntry, error)
	Remove(ctx context.Context, id int64) (bool, error)
	Clear(ctx context.Context, sessionID string) error
}

type OrderRepository interface {
	// PlaceOrder runs the whole write phase of order placement in one
	// transaction: order row, line items with price snapshots, stock
	// decrements, cart cleanup. Any failure rolls everything back.
	PlaceOrder(ctx context.Context, order *models.Order, entries []models.CartEntry, sessionID string) error
	GetByID(ctx context.Context, id int64) (*models.OrderDetail, error)
	// List pages over distinct orders; customerID nil means all customers.
	List(ctx context.Context, customerID *int64, limit, offset int) ([]models.OrderDetail, error)
	Update(ctx context.Context, id int64, upd OrderUpdate) (*models.Order, error)
}

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	List(ctx context.Context, limit, offset int) ([]models.Inquiry, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Inquiry, error)
}
