package controllers

import (
	"net/http"

	"jewellery-service/middlewares"
	"jewellery-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartController struct {
	service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

// NewSession hands the client an opaque cart session id. Clients may also
// bring their own; the id is not an authenticated identity.
func (ct *CartController) NewSession(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"session_id": uuid.NewString()})
}

type addCartItemRequest struct {
	CatalogItemID int64 `json:"catalog_item_id" binding:"required"`
	Quantity      int   `json:"quantity" binding:"required,gt=0"`
}

func (ct *CartController) Add(c *gin.Context) {
	defer func() { middlewares.RecordOperation("cart", "add", succeeded(c)) }()

	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	line, err := ct.service.Add(c.Request.Context(), c.Param("session"), req.CatalogItemID, req.Quantity)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (ct *CartController) Get(c *gin.Context) {
	cart, err := ct.service.Get(c.Request.Context(), c.Param("session"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

func (ct *CartController) UpdateItem(c *gin.Context) {
	defer func() { middlewares.RecordOperation("cart", "update", succeeded(c)) }()

	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	line, err := ct.service.UpdateQuantity(c.Request.Context(), id, req.Quantity)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if line == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
		return
	}
	c.JSON(http.StatusOK, line)
}

func (ct *CartController) Remove(c *gin.Context) {
	defer func() { middlewares.RecordOperation("cart", "remove", succeeded(c)) }()

	id, ok := parseID(c)
	if !ok {
		return
	}
	removed, err := ct.service.Remove(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	// A missing row is a no-op, not an error.
	c.JSON(http.StatusOK, gin.H{"deleted": removed})
}

func (ct *CartController) Clear(c *gin.Context) {
	defer func() { middlewares.RecordOperation("cart", "clear", succeeded(c)) }()

	if err := ct.service.Clear(c.Request.Context(), c.Param("session")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
