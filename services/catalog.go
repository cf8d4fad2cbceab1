package services

import (
	"context"
	"log"
	"time"

	"jewellery-service/models"
	"jewellery-service/repository"

	"github.com/shopspring/decimal"
)

type CatalogService struct {
	catalog repository.CatalogRepository
}

func NewCatalogService(catalog repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

type CreateCatalogItemInput struct {
	Name          string
	Materials     string
	Description   string
	Price         decimal.Decimal
	ImageURL      *string
	StockQuantity int
}

func (s *CatalogService) Create(ctx context.Context, in CreateCatalogItemInput) (*models.CatalogItem, error) {
	now := time.Now()
	item := &models.CatalogItem{
		Name:          in.Name,
		Materials:     in.Materials,
		Description:   in.Description,
		Price:         in.Price.Round(2),
		ImageURL:      in.ImageURL,
		StockQuantity: in.StockQuantity,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.catalog.Create(ctx, item); err != nil {
		log.Printf("catalog: create failed: %v", err)
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*models.CatalogItem, error) {
	return s.catalog.GetByID(ctx, id)
}

func (s *CatalogService) ListActive(ctx context.Context, p models.Pagination) ([]models.CatalogItem, error) {
	p = p.Normalize()
	return s.catalog.List(ctx, true, p.Limit, p.Offset())
}

func (s *CatalogService) ListAll(ctx context.Context, p models.Pagination) ([]models.CatalogItem, error) {
	p = p.Normalize()
	return s.catalog.List(ctx, false, p.Limit, p.Offset())
}

// Update applies only the supplied fields; updated_at is always refreshed.
// Returns (nil, nil) when the id is unknown.
func (s *CatalogService) Update(ctx context.Context, id int64, upd repository.CatalogItemUpdate) (*models.CatalogItem, error) {
	if upd.Price != nil {
		rounded := upd.Price.Round(2)
		upd.Price = &rounded
	}
	item, err := s.catalog.Update(ctx, id, upd)
	if err != nil {
		log.Printf("catalog: update %d failed: %v", id, err)
	}
	return item, err
}

// Delete soft-deletes by flipping is_active. Repeated deletes succeed; false
// means the id does not exist at all.
func (s *CatalogService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.catalog.Deactivate(ctx, id)
	if err != nil {
		log.Printf("catalog: delete %d failed: %v", id, err)
	}
	return deleted, err
}
