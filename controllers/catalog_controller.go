package controllers

import (
	"net/http"

	"jewellery-service/middlewares"
	"jewellery-service/repository"
	"jewellery-service/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController(service *services.CatalogService) *CatalogController {
	return &CatalogController{service: service}
}

type createItemRequest struct {
	Name          string  `json:"name" binding:"required"`
	Materials     string  `json:"materials" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	ImageURL      *string `json:"image_url" binding:"omitempty,url"`
	StockQuantity int     `json:"stock_quantity" binding:"gte=0"`
}

func (ct *CatalogController) Create(c *gin.Context) {
	defer func() { middlewares.RecordOperation("catalog", "create", succeeded(c)) }()

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := ct.service.Create(c.Request.Context(), services.CreateCatalogItemInput{
		Name:          req.Name,
		Materials:     req.Materials,
		Description:   req.Description,
		Price:         decimal.NewFromFloat(req.Price),
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (ct *CatalogController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := ct.service.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ct *CatalogController) ListActive(c *gin.Context) {
	items, err := ct.service.ListActive(c.Request.Context(), bindPagination(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (ct *CatalogController) ListAll(c *gin.Context) {
	items, err := ct.service.ListAll(c.Request.Context(), bindPagination(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type updateItemRequest struct {
	Name          *string  `json:"name"`
	Materials     *string  `json:"materials"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" binding:"omitempty,gt=0"`
	ImageURL      *string  `json:"image_url" binding:"omitempty,url"`
	StockQuantity *int     `json:"stock_quantity" binding:"omitempty,gte=0"`
	IsActive      *bool    `json:"is_active"`
}

func (ct *CatalogController) Update(c *gin.Context) {
	defer func() { middlewares.RecordOperation("catalog", "update", succeeded(c)) }()

	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := repository.CatalogItemUpdate{
		Name:          req.Name,
		Materials:     req.Materials,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		IsActive:      req.IsActive,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		upd.Price = &price
	}

	item, err := ct.service.Update(c.Request.Context(), id, upd)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ct *CatalogController) Delete(c *gin.Context) {
	defer func() { middlewares.RecordOperation("catalog", "delete", succeeded(c)) }()

	id, ok := parseID(c)
	if !ok {
		return
	}
	deleted, err := ct.service.Delete(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "catalog item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
