package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"jewellery-service/models"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

const orderColumns = `id, customer_id, total_amount, status, shipping_address, billing_address, payment_status, payment_method, created_at, updated_at`

func scanOrder(s scanner) (*models.Order, error) {
	var order models.Order
	var paymentMethod sql.NullString
	if err := s.Scan(&order.ID, &order.CustomerID, &order.TotalAmount,
		&order.Status, &order.ShippingAddress, &order.BillingAddress,
		&order.PaymentStatus, &paymentMethod,
		&order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}
	order.PaymentMethod = fromNullString(paymentMethod)
	return &order, nil
}

// PlaceOrder writes the order header, its line items, the stock decrements
// and the cart cleanup in a single transaction. The decrement is guarded by
// `stock_quantity >= ?` so a concurrent order that got there first fails this
// one cleanly instead of driving stock negative; any failure rolls the whole
// placement back.
func (r *MySQLOrderRepository) PlaceOrder(ctx context.Context, order *models.Order, entries []models.CartEntry, sessionID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (customer_id, total_amount, status, shipping_address, billing_address, payment_status, payment_method, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.CustomerID, order.TotalAmount, order.Status,
		order.ShippingAddress, order.BillingAddress, order.PaymentStatus,
		nullString(order.PaymentMethod), order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	order.ID, err = res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, catalog_item_id, quantity, price_per_item, created_at) VALUES (?, ?, ?, ?, ?)`,
			order.ID, entry.CatalogItemID, entry.Quantity, entry.Item.Price, order.CreatedAt,
		); err != nil {
			_ = tx.Rollback()
			return err
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE catalog_items SET stock_quantity = stock_quantity - ?, updated_at = ? WHERE id = ? AND stock_quantity >= ?`,
			entry.Quantity, order.CreatedAt, entry.CatalogItemID, entry.Quantity,
		)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if affected == 0 {
			_ = tx.Rollback()
			return &models.InsufficientStockError{
				Name:      entry.Item.Name,
				Available: entry.Item.StockQuantity,
				Requested: entry.Quantity,
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE session_id = ?`, sessionID,
	); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *MySQLOrderRepository) GetByID(ctx context.Context, id int64) (*models.OrderDetail, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT o.id, o.customer_id, o.total_amount, o.status, o.shipping_address, o.billing_address, o.payment_status, o.payment_method, o.created_at, o.updated_at,
		        c.id, c.email, c.first_name, c.last_name, c.phone, c.created_at
		 FROM orders o
		 JOIN customers c ON c.id = o.customer_id
		 WHERE o.id = ?`, id)

	detail, err := scanOrderDetail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	detail.Items = items[id]
	if detail.Items == nil {
		detail.Items = make([]models.OrderItemDetail, 0)
	}
	return detail, nil
}

func (r *MySQLOrderRepository) List(ctx context.Context, customerID *int64, limit, offset int) ([]models.OrderDetail, error) {
	query := `SELECT o.id, o.customer_id, o.total_amount, o.status, o.shipping_address, o.billing_address, o.payment_status, o.payment_method, o.created_at, o.updated_at,
	                 c.id, c.email, c.first_name, c.last_name, c.phone, c.created_at
	          FROM orders o
	          JOIN customers c ON c.id = o.customer_id`
	args := make([]any, 0, 3)
	if customerID != nil {
		query += ` WHERE o.customer_id = ?`
		args = append(args, *customerID)
	}
	query += ` ORDER BY o.created_at DESC, o.id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]models.OrderDetail, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		detail, err := scanOrderDetail(rows)
		if err != nil {
			return nil, err
		}
		detail.Items = make([]models.OrderItemDetail, 0)
		details = append(details, *detail)
		ids = append(ids, detail.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}

	itemsByOrder, err := r.listItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range details {
		if items, ok := itemsByOrder[details[i].ID]; ok {
			details[i].Items = items
		}
	}
	return details, nil
}

func (r *MySQLOrderRepository) Update(ctx context.Context, id int64, upd OrderUpdate) (*models.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		order.Status = *upd.Status
	}
	if upd.PaymentStatus != nil {
		order.PaymentStatus = *upd.PaymentStatus
	}
	if upd.PaymentMethod != nil {
		order.PaymentMethod = upd.PaymentMethod
	}
	order.UpdatedAt = time.Now()

	if _, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, payment_status = ?, payment_method = ?, updated_at = ? WHERE id = ?`,
		order.Status, order.PaymentStatus, nullString(order.PaymentMethod),
		order.UpdatedAt, id,
	); err != nil {
		return nil, err
	}
	return order, nil
}

func scanOrderDetail(s scanner) (*models.OrderDetail, error) {
	var detail models.OrderDetail
	var paymentMethod, phone sql.NullString
	if err := s.Scan(&detail.ID, &detail.CustomerID, &detail.TotalAmount,
		&detail.Status, &detail.ShippingAddress, &detail.BillingAddress,
		&detail.PaymentStatus, &paymentMethod,
		&detail.CreatedAt, &detail.UpdatedAt,
		&detail.Customer.ID, &detail.Customer.Email,
		&detail.Customer.FirstName, &detail.Customer.LastName,
		&phone, &detail.Customer.CreatedAt); err != nil {
		return nil, err
	}
	detail.PaymentMethod = fromNullString(paymentMethod)
	detail.Customer.Phone = fromNullString(phone)
	return &detail, nil
}

// listItems loads the line items for a set of orders, joined with the
// current catalog record, grouped by order id.
func (r *MySQLOrderRepository) listItems(ctx context.Context, orderIDs []int64) (map[int64][]models.OrderItemDetail, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(orderIDs)), ",")
	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT oi.id, oi.order_id, oi.catalog_item_id, oi.quantity, oi.price_per_item, oi.created_at,
		        i.id, i.name, i.materials, i.description, i.price, i.image_url, i.stock_quantity, i.is_active, i.created_at, i.updated_at
		 FROM order_items oi
		 JOIN catalog_items i ON i.id = oi.catalog_item_id
		 WHERE oi.order_id IN (`+placeholders+`)
		 ORDER BY oi.order_id, oi.id`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	itemsByOrder := make(map[int64][]models.OrderItemDetail)
	for rows.Next() {
		var item models.OrderItemDetail
		var imageURL sql.NullString
		if err := rows.Scan(&item.ID, &item.OrderID, &item.CatalogItemID,
			&item.Quantity, &item.PricePerItem, &item.OrderLineItem.CreatedAt,
			&item.Item.ID, &item.Item.Name, &item.Item.Materials,
			&item.Item.Description, &item.Item.Price, &imageURL,
			&item.Item.StockQuantity, &item.Item.IsActive,
			&item.Item.CreatedAt, &item.Item.UpdatedAt); err != nil {
			return nil, err
		}
		item.Item.ImageURL = fromNullString(imageURL)
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}
	return itemsByOrder, rows.Err()
}
