package services

import (
	"context"
	"log"
	"time"

	"jewellery-service/models"
	"jewellery-service/repository"
)

type CustomerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

type CreateCustomerInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     *string
}

// Create rejects an email that is already registered. The lookup here is
// the fast path; the store's unique index catches the race it can miss.
func (s *CustomerService) Create(ctx context.Context, in CreateCustomerInput) (*models.Customer, error) {
	existing, err := s.customers.GetByEmail(ctx, in.Email)
	if err != nil {
		log.Printf("customer: email lookup failed: %v", err)
		return nil, err
	}
	if existing != nil {
		return nil, &models.DuplicateEmailError{Email: in.Email}
	}

	customer := &models.Customer{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		CreatedAt: time.Now(),
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		log.Printf("customer: create failed: %v", err)
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context, p models.Pagination) ([]models.Customer, error) {
	p = p.Normalize()
	return s.customers.List(ctx, p.Limit, p.Offset())
}
