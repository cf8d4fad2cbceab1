package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jewellery-service/models"
)

type MySQLInquiryRepository struct {
	db *sql.DB
}

const inquiryColumns = `id, name, email, subject, message, status, created_at, updated_at`

func scanInquiry(s scanner) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := s.Scan(&inquiry.ID, &inquiry.Name, &inquiry.Email,
		&inquiry.Subject, &inquiry.Message, &inquiry.Status,
		&inquiry.CreatedAt, &inquiry.UpdatedAt); err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *MySQLInquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO inquiries (name, email, subject, message, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inquiry.Name, inquiry.Email, inquiry.Subject, inquiry.Message,
		inquiry.Status, inquiry.CreatedAt, inquiry.UpdatedAt,
	)
	if err != nil {
		return err
	}
	inquiry.ID, err = res.LastInsertId()
	return err
}

func (r *MySQLInquiryRepository) List(ctx context.Context, limit, offset int) ([]models.Inquiry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+inquiryColumns+` FROM inquiries ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inquiries := make([]models.Inquiry, 0)
	for rows.Next() {
		inquiry, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, *inquiry)
	}
	return inquiries, rows.Err()
}

func (r *MySQLInquiryRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.Inquiry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+inquiryColumns+` FROM inquiries WHERE id = ?`, id)
	inquiry, err := scanInquiry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	inquiry.Status = status
	inquiry.UpdatedAt = time.Now()
	if _, err := r.db.ExecContext(ctx,
		`UPDATE inquiries SET status = ?, updated_at = ? WHERE id = ?`,
		inquiry.Status, inquiry.UpdatedAt, id,
	); err != nil {
		return nil, err
	}
	return inquiry, nil
}
