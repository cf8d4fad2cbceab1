package controllers

import (
	"net/http"

	"jewellery-service/middlewares"
	"jewellery-service/services"

	"github.com/gin-gonic/gin"
)

type InquiryController struct {
	service *services.InquiryService
}

func NewInquiryController(service *services.InquiryService) *InquiryController {
	return &InquiryController{service: service}
}

type createInquiryRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (ct *InquiryController) Create(c *gin.Context) {
	defer func() { middlewares.RecordOperation("inquiry", "create", succeeded(c)) }()

	var req createInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inquiry, err := ct.service.Create(c.Request.Context(), services.CreateInquiryInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}

func (ct *InquiryController) List(c *gin.Context) {
	inquiries, err := ct.service.List(c.Request.Context(), bindPagination(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

type updateInquiryRequest struct {
	Status string `json:"status" binding:"required,oneof=new in_progress resolved"`
}

func (ct *InquiryController) UpdateStatus(c *gin.Context) {
	defer func() { middlewares.RecordOperation("inquiry", "update", succeeded(c)) }()

	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inquiry, err := ct.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if inquiry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found"})
		return
	}
	c.JSON(http.StatusOK, inquiry)
}
