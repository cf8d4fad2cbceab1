package services

import (
	"context"
	"log"
	"time"

	"jewellery-service/models"
	"jewellery-service/repository"

	"github.com/shopspring/decimal"
)

type CartService struct {
	carts   repository.CartRepository
	catalog repository.CatalogRepository
}

func NewCartService(carts repository.CartRepository, catalog repository.CatalogRepository) *CartService {
	return &CartService{carts: carts, catalog: catalog}
}

// Add puts an item in the session's cart. A row that already exists for the
// (session, item) pair has the quantity merged into it; the merged quantity
// is what gets validated against current stock, and a failed validation
// writes nothing.
func (s *CartService) Add(ctx context.Context, sessionID string, catalogItemID int64, quantity int) (*models.CartLineItem, error) {
	item, err := s.catalog.GetByID(ctx, catalogItemID)
	if err != nil {
		log.Printf("cart: add lookup failed: %v", err)
		return nil, err
	}
	if item == nil {
		return nil, &models.NotFoundError{Entity: "catalog item"}
	}
	if !item.IsActive {
		return nil, &models.ItemUnavailableError{Name: item.Name}
	}

	existing, err := s.carts.FindBySessionAndItem(ctx, sessionID, catalogItemID)
	if err != nil {
		log.Printf("cart: add lookup failed: %v", err)
		return nil, err
	}
	if existing != nil {
		merged := existing.Quantity + quantity
		if merged > item.StockQuantity {
			return nil, &models.InsufficientStockError{
				Name:      item.Name,
				Available: item.StockQuantity,
				Requested: merged,
			}
		}
		if err := s.carts.SetQuantity(ctx, existing.ID, merged); err != nil {
			log.Printf("cart: merge failed: %v", err)
			return nil, err
		}
		existing.Quantity = merged
		return existing, nil
	}

	if quantity > item.StockQuantity {
		return nil, &models.InsufficientStockError{
			Name:      item.Name,
			Available: item.StockQuantity,
			Requested: quantity,
		}
	}
	line := &models.CartLineItem{
		SessionID:     sessionID,
		CatalogItemID: catalogItemID,
		Quantity:      quantity,
		CreatedAt:     time.Now(),
	}
	if err := s.carts.Insert(ctx, line); err != nil {
		log.Printf("cart: insert failed: %v", err)
		return nil, err
	}
	return line, nil
}

// Get returns the session's cart joined with live catalog detail. An unknown
// or empty session is an empty cart, never an error.
func (s *CartService) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	entries, err := s.carts.ListBySession(ctx, sessionID)
	if err != nil {
		log.Printf("cart: list failed: %v", err)
		return nil, err
	}
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Item.Price.Mul(decimal.NewFromInt(int64(entry.Quantity))))
	}
	return &models.Cart{
		SessionID:   sessionID,
		Items:       entries,
		TotalAmount: total,
	}, nil
}

// UpdateQuantity re-validates stock and availability before applying.
// Returns (nil, nil) when the cart row does not exist.
func (s *CartService) UpdateQuantity(ctx context.Context, id int64, quantity int) (*models.CartLineItem, error) {
	line, err := s.carts.GetItem(ctx, id)
	if err != nil || line == nil {
		return nil, err
	}
	item, err := s.catalog.GetByID(ctx, line.CatalogItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &models.NotFoundError{Entity: "catalog item"}
	}
	if !item.IsActive {
		return nil, &models.ItemUnavailableError{Name: item.Name}
	}
	if quantity > item.StockQuantity {
		return nil, &models.InsufficientStockError{
			Name:      item.Name,
			Available: item.StockQuantity,
			Requested: quantity,
		}
	}
	if err := s.carts.SetQuantity(ctx, id, quantity); err != nil {
		log.Printf("cart: update quantity failed: %v", err)
		return nil, err
	}
	line.Quantity = quantity
	return line, nil
}

func (s *CartService) Remove(ctx context.Context, id int64) (bool, error) {
	removed, err := s.carts.Remove(ctx, id)
	if err != nil {
		log.Printf("cart: remove failed: %v", err)
	}
	return removed, err
}

// Clear succeeds even when the session has no rows.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		log.Printf("cart: clear failed: %v", err)
		return err
	}
	return nil
}
