package services

import (
	"context"
	"log"
	"time"

	"jewellery-service/models"
	"jewellery-service/repository"
)

type InquiryService struct {
	inquiries repository.InquiryRepository
}

func NewInquiryService(inquiries repository.InquiryRepository) *InquiryService {
	return &InquiryService{inquiries: inquiries}
}

type CreateInquiryInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (s *InquiryService) Create(ctx context.Context, in CreateInquiryInput) (*models.Inquiry, error) {
	now := time.Now()
	inquiry := &models.Inquiry{
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    models.InquiryStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		log.Printf("inquiry: create failed: %v", err)
		return nil, err
	}
	return inquiry, nil
}

func (s *InquiryService) List(ctx context.Context, p models.Pagination) ([]models.Inquiry, error) {
	p = p.Normalize()
	return s.inquiries.List(ctx, p.Limit, p.Offset())
}

// UpdateStatus moves the inquiry to any of new/in_progress/resolved; there is
// no restriction on direction. Returns (nil, nil) when the id is unknown.
func (s *InquiryService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Inquiry, error) {
	inquiry, err := s.inquiries.UpdateStatus(ctx, id, status)
	if err != nil {
		log.Printf("inquiry: update %d failed: %v", id, err)
	}
	return inquiry, err
}
