package services

import (
	"context"
	"log"
	"time"

	"jewellery-service/models"
	"jewellery-service/repository"

	"github.com/shopspring/decimal"
)

// totalTolerance is the allowed drift between the caller-supplied total and
// the recomputed one.
var totalTolerance = decimal.NewFromFloat(0.01)

type OrderService struct {
	orders    repository.OrderRepository
	carts     repository.CartRepository
	customers repository.CustomerRepository
}

func NewOrderService(orders repository.OrderRepository, carts repository.CartRepository, customers repository.CustomerRepository) *OrderService {
	return &OrderService{orders: orders, carts: carts, customers: customers}
}

type CreateOrderInput struct {
	CustomerID      int64
	TotalAmount     decimal.Decimal
	ShippingAddress string
	BillingAddress  string
	PaymentMethod   *string
}

// Create places an order from the session's cart. The read/validate phase
// (customer, cart contents, per-line availability and stock, total check)
// writes nothing; everything after it — order row, line items with price
// snapshots, stock decrements, cart cleanup — happens inside one store
// transaction, so a failure there leaves no partial order behind.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput, sessionID string) (*models.Order, error) {
	customer, err := s.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		log.Printf("order: customer lookup failed: %v", err)
		return nil, err
	}
	if customer == nil {
		return nil, &models.NotFoundError{Entity: "customer"}
	}

	entries, err := s.carts.ListBySession(ctx, sessionID)
	if err != nil {
		log.Printf("order: cart load failed: %v", err)
		return nil, err
	}
	if len(entries) == 0 {
		return nil, models.ErrCartEmpty
	}

	total := decimal.Zero
	for _, entry := range entries {
		if !entry.Item.IsActive {
			return nil, &models.ItemUnavailableError{Name: entry.Item.Name}
		}
		if entry.Quantity > entry.Item.StockQuantity {
			return nil, &models.InsufficientStockError{
				Name:      entry.Item.Name,
				Available: entry.Item.StockQuantity,
				Requested: entry.Quantity,
			}
		}
		total = total.Add(entry.Item.Price.Mul(decimal.NewFromInt(int64(entry.Quantity))))
	}
	if total.Sub(in.TotalAmount).Abs().GreaterThan(totalTolerance) {
		return nil, &models.TotalMismatchError{Expected: total, Provided: in.TotalAmount}
	}

	now := time.Now()
	order := &models.Order{
		CustomerID:      in.CustomerID,
		TotalAmount:     total.Round(2),
		Status:          models.OrderStatusPending,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.BillingAddress,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   in.PaymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.orders.PlaceOrder(ctx, order, entries, sessionID); err != nil {
		log.Printf("order: placement failed: %v", err)
		return nil, err
	}
	return order, nil
}

// Get returns the full nested shape or (nil, nil) when absent.
func (s *OrderService) Get(ctx context.Context, id int64) (*models.OrderDetail, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context, p models.Pagination) ([]models.OrderDetail, error) {
	p = p.Normalize()
	return s.orders.List(ctx, nil, p.Limit, p.Offset())
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID int64, p models.Pagination) ([]models.OrderDetail, error) {
	p = p.Normalize()
	return s.orders.List(ctx, &customerID, p.Limit, p.Offset())
}

// Update changes status, payment status and/or payment method. No transition
// restrictions: any status may follow any other. Returns (nil, nil) when the
// id is unknown.
func (s *OrderService) Update(ctx context.Context, id int64, upd repository.OrderUpdate) (*models.Order, error) {
	order, err := s.orders.Update(ctx, id, upd)
	if err != nil {
		log.Printf("order: update %d failed: %v", id, err)
	}
	return order, err
}
