package repository

import "database/sql"

// MySQLStore bundles one repository per entity, all sharing the injected
// *sql.DB handle. Nothing here is global.
type MySQLStore struct {
	Catalog   *MySQLCatalogRepository
	Customers *MySQLCustomerRepository
	Carts     *MySQLCartRepository
	Orders    *MySQLOrderRepository
	Inquiries *MySQLInquiryRepository
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{
		Catalog:   &MySQLCatalogRepository{db: db},
		Customers: &MySQLCustomerRepository{db: db},
		Carts:     &MySQLCartRepository{db: db},
		Orders:    &MySQLOrderRepository{db: db},
		Inquiries: &MySQLInquiryRepository{db: db},
	}
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
