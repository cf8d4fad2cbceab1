package repository

import (
	"context"
	"database/sql"
	"errors"

	"jewellery-service/models"
)

type MySQLCartRepository struct {
	db *sql.DB
}

const cartColumns = `id, session_id, catalog_item_id, quantity, created_at`

func scanCartLineItem(s scanner) (*models.CartLineItem, error) {
	var line models.CartLineItem
	if err := s.Scan(&line.ID, &line.SessionID, &line.CatalogItemID,
		&line.Quantity, &line.CreatedAt); err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *MySQLCartRepository) GetItem(ctx context.Context, id int64) (*models.CartLineItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+cartColumns+` FROM cart_items WHERE id = ?`, id)
	line, err := scanCartLineItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return line, err
}

func (r *MySQLCartRepository) FindBySessionAndItem(ctx context.Context, sessionID string, catalogItemID int64) (*models.CartLineItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+cartColumns+` FROM cart_items WHERE session_id = ? AND catalog_item_id = ?`,
		sessionID, catalogItemID)
	line, err := scanCartLineItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return line, err
}

func (r *MySQLCartRepository) Insert(ctx context.Context, line *models.CartLineItem) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cart_items (session_id, catalog_item_id, quantity, created_at) VALUES (?, ?, ?, ?)`,
		line.SessionID, line.CatalogItemID, line.Quantity, line.CreatedAt,
	)
	if err != nil {
		return err
	}
	line.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLCartRepository) SetQuantity(ctx context.Context, id int64, quantity int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = ? WHERE id = ?`, quantity, id)
	return err
}

func (r *MySQLCartRepository) ListBySession(ctx context.Context, sessionID string) ([]models.CartEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ci.id, ci.session_id, ci.catalog_item_id, ci.quantity, ci.created_at,
		        i.id, i.name, i.materials, i.description, i.price, i.image_url, i.stock_quantity, i.is_active, i.created_at, i.updated_at
		 FROM cart_items ci
		 JOIN catalog_items i ON i.id = ci.catalog_item_id
		 WHERE ci.session_id = ?
		 ORDER BY ci.created_at DESC, ci.id DESC`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.CartEntry, 0)
	for rows.Next() {
		var entry models.CartEntry
		var imageURL sql.NullString
		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.CatalogItemID,
			&entry.Quantity, &entry.CreatedAt,
			&entry.Item.ID, &entry.Item.Name, &entry.Item.Materials,
			&entry.Item.Description, &entry.Item.Price, &imageURL,
			&entry.Item.StockQuantity, &entry.Item.IsActive,
			&entry.Item.CreatedAt, &entry.Item.UpdatedAt); err != nil {
			return nil, err
		}
		entry.Item.ImageURL = fromNullString(imageURL)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *MySQLCartRepository) Remove(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *MySQLCartRepository) Clear(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = ?`, sessionID)
	return err
}
