package database

import (
	"database/sql"
	"fmt"
	"time"

	"jewellery-service/config"

	_ "github.com/go-sql-driver/mysql"
)

// Connect opens the MySQL pool and verifies it is reachable. The handle is
// returned to the caller rather than kept as package state so the store can
// be injected wherever it is needed.
func Connect(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS catalog_items (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		materials VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		image_url VARCHAR(512),
		stock_quantity INT NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		phone VARCHAR(50),
		created_at DATETIME(6) NOT NULL,
		UNIQUE KEY uniq_customers_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		customer_id BIGINT NOT NULL,
		total_amount DECIMAL(10,2) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		shipping_address TEXT NOT NULL,
		billing_address TEXT NOT NULL,
		payment_status VARCHAR(50) NOT NULL DEFAULT 'pending',
		payment_method VARCHAR(50),
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		CONSTRAINT fk_orders_customer FOREIGN KEY (customer_id) REFERENCES customers(id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		order_id BIGINT NOT NULL,
		catalog_item_id BIGINT NOT NULL,
		quantity INT NOT NULL,
		price_per_item DECIMAL(10,2) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders(id),
		CONSTRAINT fk_order_items_item FOREIGN KEY (catalog_item_id) REFERENCES catalog_items(id)
	)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		session_id VARCHAR(128) NOT NULL,
		catalog_item_id BIGINT NOT NULL,
		quantity INT NOT NULL,
		created_at DATETIME(6) NOT NULL,
		KEY idx_cart_items_session (session_id),
		CONSTRAINT fk_cart_items_item FOREIGN KEY (catalog_item_id) REFERENCES catalog_items(id)
	)`,
	`CREATE TABLE IF NOT EXISTS inquiries (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		subject VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'new',
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL
	)`,
}

// EnsureSchema creates the tables on first start. Statements are idempotent.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
