package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jewellery-service/models"
)

type MySQLCatalogRepository struct {
	db *sql.DB
}

const catalogColumns = `id, name, materials, description, price, image_url, stock_quantity, is_active, created_at, updated_at`

func scanCatalogItem(s scanner) (*models.CatalogItem, error) {
	var item models.CatalogItem
	var imageURL sql.NullString
	if err := s.Scan(&item.ID, &item.Name, &item.Materials, &item.Description,
		&item.Price, &imageURL, &item.StockQuantity, &item.IsActive,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.ImageURL = fromNullString(imageURL)
	return &item, nil
}

func (r *MySQLCatalogRepository) Create(ctx context.Context, item *models.CatalogItem) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO catalog_items (name, materials, description, price, image_url, stock_quantity, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Name, item.Materials, item.Description, item.Price,
		nullString(item.ImageURL), item.StockQuantity, item.IsActive,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return err
	}
	item.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLCatalogRepository) GetByID(ctx context.Context, id int64) (*models.CatalogItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+catalogColumns+` FROM catalog_items WHERE id = ?`, id)
	item, err := scanCatalogItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return item, err
}

func (r *MySQLCatalogRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]models.CatalogItem, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_items`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.CatalogItem, 0)
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *MySQLCatalogRepository) Update(ctx context.Context, id int64, upd CatalogItemUpdate) (*models.CatalogItem, error) {
	item, err := r.GetByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}

	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Materials != nil {
		item.Materials = *upd.Materials
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.Price != nil {
		item.Price = *upd.Price
	}
	if upd.ImageURL != nil {
		item.ImageURL = upd.ImageURL
	}
	if upd.StockQuantity != nil {
		item.StockQuantity = *upd.StockQuantity
	}
	if upd.IsActive != nil {
		item.IsActive = *upd.IsActive
	}
	item.UpdatedAt = time.Now()

	_, err = r.db.ExecContext(ctx,
		`UPDATE catalog_items SET name = ?, materials = ?, description = ?, price = ?, image_url = ?, stock_quantity = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		item.Name, item.Materials, item.Description, item.Price,
		nullString(item.ImageURL), item.StockQuantity, item.IsActive,
		item.UpdatedAt, id,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *MySQLCatalogRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	// Existence is checked with a SELECT because MySQL reports zero affected
	// rows when the item is already inactive, which would break the
	// idempotency of a repeated delete.
	item, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, nil
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE catalog_items SET is_active = FALSE, updated_at = ? WHERE id = ?`,
		time.Now(), id)
	if err != nil {
		return false, err
	}
	return true, nil
}
