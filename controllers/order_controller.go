package controllers

import (
	"log"
	"net/http"
	"time"

	"jewellery-service/middlewares"
	"jewellery-service/models"
	"jewellery-service/rabbitmq"
	"jewellery-service/repository"
	"jewellery-service/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// paymentCheckDelay is how long an order may sit unpaid before the delayed
// event asks the consumer to look at it.
const paymentCheckDelay = 15 * time.Minute

var highValueThreshold = decimal.NewFromInt(1000)

type OrderController struct {
	service *services.OrderService
	events  *rabbitmq.RabbitMQ // nil when the event subsystem is disabled
}

func NewOrderController(service *services.OrderService, events *rabbitmq.RabbitMQ) *OrderController {
	return &OrderController{service: service, events: events}
}

type createOrderRequest struct {
	CustomerID      int64   `json:"customer_id" binding:"required"`
	SessionID       string  `json:"session_id" binding:"required"`
	TotalAmount     float64 `json:"total_amount" binding:"required,gt=0"`
	ShippingAddress string  `json:"shipping_address" binding:"required"`
	BillingAddress  string  `json:"billing_address" binding:"required"`
	PaymentMethod   *string `json:"payment_method"`
}

func (ct *OrderController) Create(c *gin.Context) {
	defer func() { middlewares.RecordOperation("order", "create", succeeded(c)) }()

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ct.service.Create(c.Request.Context(), services.CreateOrderInput{
		CustomerID:      req.CustomerID,
		TotalAmount:     decimal.NewFromFloat(req.TotalAmount),
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
	}, req.SessionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)

	// Events go out only after the transaction committed; a broker failure
	// is logged and never surfaces to the customer.
	if ct.events != nil {
		event := models.OrderEvent{
			OrderID:  order.ID,
			Type:     "created",
			Status:   order.Status,
			Total:    order.TotalAmount,
			Occurred: time.Now(),
		}
		priority := uint8(5)
		if order.TotalAmount.GreaterThan(highValueThreshold) {
			priority = 9
		}
		if err := ct.events.PublishOrderEvent(event, priority); err != nil {
			log.Printf("Failed to publish order created event: %v", err)
		}

		event.Type = "payment_check"
		if err := ct.events.PublishDelayedEvent(event, paymentCheckDelay); err != nil {
			log.Printf("Failed to publish delayed payment check event: %v", err)
		}
	}
}

func (ct *OrderController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	detail, err := ct.service.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (ct *OrderController) List(c *gin.Context) {
	orders, err := ct.service.List(c.Request.Context(), bindPagination(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (ct *OrderController) ListByCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	orders, err := ct.service.ListByCustomer(c.Request.Context(), id, bindPagination(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type updateOrderRequest struct {
	Status        *string `json:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentStatus *string `json:"payment_status"`
	PaymentMethod *string `json:"payment_method"`
}

func (ct *OrderController) Update(c *gin.Context) {
	defer func() { middlewares.RecordOperation("order", "update", succeeded(c)) }()

	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ct.service.Update(c.Request.Context(), id, repository.OrderUpdate{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, order)

	if ct.events != nil {
		priority := uint8(5)
		if order.Status == models.OrderStatusCancelled {
			priority = 8
		}
		event := models.OrderEvent{
			OrderID:  order.ID,
			Type:     "status_updated",
			Status:   order.Status,
			Total:    order.TotalAmount,
			Occurred: time.Now(),
		}
		if err := ct.events.PublishOrderEvent(event, priority); err != nil {
			log.Printf("Failed to publish order updated event: %v", err)
		}
	}
}
