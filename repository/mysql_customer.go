package repository

import (
	"context"
	"database/sql"
	"errors"

	"jewellery-service/models"

	"github.com/go-sql-driver/mysql"
)

type MySQLCustomerRepository struct {
	db *sql.DB
}

// MySQL duplicate-key error number.
const mysqlErrDupEntry = 1062

const customerColumns = `id, email, first_name, last_name, phone, created_at`

func scanCustomer(s scanner) (*models.Customer, error) {
	var customer models.Customer
	var phone sql.NullString
	if err := s.Scan(&customer.ID, &customer.Email, &customer.FirstName,
		&customer.LastName, &phone, &customer.CreatedAt); err != nil {
		return nil, err
	}
	customer.Phone = fromNullString(phone)
	return &customer, nil
}

func (r *MySQLCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (email, first_name, last_name, phone, created_at) VALUES (?, ?, ?, ?, ?)`,
		customer.Email, customer.FirstName, customer.LastName,
		nullString(customer.Phone), customer.CreatedAt,
	)
	if err != nil {
		// The unique index backs up the service's pre-insert lookup when a
		// race slips past it; surface it as the same business error.
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDupEntry {
			return &models.DuplicateEmailError{Email: customer.Email}
		}
		return err
	}
	customer.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLCustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	customer, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return customer, err
}

func (r *MySQLCustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE email = ?`, email)
	customer, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return customer, err
}

func (r *MySQLCustomerRepository) List(ctx context.Context, limit, offset int) ([]models.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]models.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *customer)
	}
	return customers, rows.Err()
}
