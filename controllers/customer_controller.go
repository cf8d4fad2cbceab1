package controllers

import (
	"net/http"

	"jewellery-service/middlewares"
	"jewellery-service/services"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	service *services.CustomerService
}

func NewCustomerController(service *services.CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

type createCustomerRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Phone     *string `json:"phone"`
}

func (ct *CustomerController) Create(c *gin.Context) {
	defer func() { middlewares.RecordOperation("customer", "create", succeeded(c)) }()

	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := ct.service.Create(c.Request.Context(), services.CreateCustomerInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (ct *CustomerController) List(c *gin.Context) {
	customers, err := ct.service.List(c.Request.Context(), bindPagination(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}
