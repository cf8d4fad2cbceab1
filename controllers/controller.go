package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"jewellery-service/models"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps the closed set of business errors to HTTP
// statuses. The message text is the error's own; the web client matches on
// its stable substrings.
func handleServiceError(c *gin.Context, err error) {
	var (
		notFound    *models.NotFoundError
		duplicate   *models.DuplicateEmailError
		stock       *models.InsufficientStockError
		unavailable *models.ItemUnavailableError
		mismatch    *models.TotalMismatchError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &duplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrCartEmpty),
		errors.As(err, &stock),
		errors.As(err, &unavailable),
		errors.As(err, &mismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

func bindPagination(c *gin.Context) models.Pagination {
	var p models.Pagination
	// Unparsable query values fall back to the defaults.
	_ = c.ShouldBindQuery(&p)
	return p.Normalize()
}

func succeeded(c *gin.Context) bool {
	status := c.Writer.Status()
	return status >= 200 && status < 300
}
