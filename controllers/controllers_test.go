package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jewellery-service/controllers"
	"jewellery-service/middlewares"
	"jewellery-service/models"
	"jewellery-service/repository"
	"jewellery-service/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	decimal.MarshalJSONWithoutQuotes = true
}

// newTestRouter wires the full route table over an in-memory store, events
// disabled. The layout mirrors main.go.
func newTestRouter() *gin.Engine {
	store := repository.NewMemoryStore()

	catalogController := controllers.NewCatalogController(services.NewCatalogService(store.Catalog))
	cartController := controllers.NewCartController(services.NewCartService(store.Carts, store.Catalog))
	orderController := controllers.NewOrderController(services.NewOrderService(store.Orders, store.Carts, store.Customers), nil)
	customerController := controllers.NewCustomerController(services.NewCustomerService(store.Customers))
	inquiryController := controllers.NewInquiryController(services.NewInquiryService(store.Inquiries))

	r := gin.New()

	api := r.Group("/api")
	{
		api.GET("/items", catalogController.ListActive)
		api.GET("/items/:id", catalogController.Get)

		api.POST("/cart/session", cartController.NewSession)
		api.GET("/cart/:session", cartController.Get)
		api.POST("/cart/:session/items", cartController.Add)
		api.DELETE("/cart/:session", cartController.Clear)
		api.PUT("/cart/items/:id", cartController.UpdateItem)
		api.DELETE("/cart/items/:id", cartController.Remove)

		api.POST("/orders", orderController.Create)
		api.GET("/orders/:id", orderController.Get)
		api.GET("/customers/:id/orders", orderController.ListByCustomer)

		api.POST("/customers", customerController.Create)
		api.POST("/inquiries", inquiryController.Create)
	}

	admin := r.Group("/api/admin")
	admin.Use(middlewares.AdminAuthMiddleware())
	{
		admin.POST("/items", catalogController.Create)
		admin.GET("/items", catalogController.ListAll)
		admin.PUT("/items/:id", catalogController.Update)
		admin.DELETE("/items/:id", catalogController.Delete)

		admin.GET("/orders", orderController.List)
		admin.PUT("/orders/:id", orderController.Update)

		admin.GET("/customers", customerController.List)

		admin.GET("/inquiries", inquiryController.List)
		admin.PUT("/inquiries/:id/status", inquiryController.UpdateStatus)
	}

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func adminHeaders(t *testing.T) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + signToken(t, "admin")}
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "dev-secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("dev-secret"))
	require.NoError(t, err)
	return signed
}

func seedItem(t *testing.T, r *gin.Engine, name string, price float64, stock int) int64 {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/admin/items", gin.H{
		"name":           name,
		"materials":      "18k gold",
		"description":    "handmade",
		"price":          price,
		"stock_quantity": stock,
	}, adminHeaders(t))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(decodeBody(t, w)["id"].(float64))
}

func seedCustomer(t *testing.T, r *gin.Engine, email string) int64 {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/customers", gin.H{
		"email":      email,
		"first_name": "Ada",
		"last_name":  "Lovelace",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(decodeBody(t, w)["id"].(float64))
}

func TestAdminRoutesRejectMissingToken(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/admin/items", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/admin/items", nil,
		map[string]string{"Authorization": "Bearer not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRejectNonAdminRole(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/admin/items", nil,
		map[string]string{"Authorization": "Bearer " + signToken(t, "customer")})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateItemValidation(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/admin/items", gin.H{
		"name": "No price",
	}, adminHeaders(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/admin/items", gin.H{
		"name":        "Negative price",
		"materials":   "gold",
		"description": "d",
		"price":       -5,
	}, adminHeaders(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStorefrontListsOnlyActiveItems(t *testing.T) {
	r := newTestRouter()
	keep := seedItem(t, r, "Gold Ring", 199.99, 10)
	drop := seedItem(t, r, "Retired Ring", 50, 1)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/items/%d", drop), nil, adminHeaders(t))
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/items", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, float64(keep), items[0]["id"])

	// The admin listing still shows both.
	w = doJSON(t, r, http.MethodGet, "/api/admin/items", nil, adminHeaders(t))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestGetUnknownItemIs404(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/items/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/items/not-a-number", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDuplicateCustomerEmailIs409(t *testing.T) {
	r := newTestRouter()
	seedCustomer(t, r, "ada@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/customers", gin.H{
		"email":      "ada@example.com",
		"first_name": "Someone",
		"last_name":  "Else",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "already exists")
}

func TestCartFlow(t *testing.T) {
	r := newTestRouter()
	item := seedItem(t, r, "Gold Ring", 199.99, 10)

	w := doJSON(t, r, http.MethodPost, "/api/cart/session", nil, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	session := decodeBody(t, w)["session_id"].(string)
	require.NotEmpty(t, session)

	w = doJSON(t, r, http.MethodPost, "/api/cart/"+session+"/items", gin.H{
		"catalog_item_id": item,
		"quantity":        2,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	lineID := int64(decodeBody(t, w)["id"].(float64))

	w = doJSON(t, r, http.MethodGet, "/api/cart/"+session, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cart := decodeBody(t, w)
	assert.Equal(t, 399.98, cart["total_amount"])

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/cart/items/%d", lineID), gin.H{
		"quantity": 3,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decodeBody(t, w)["quantity"])

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/cart/items/%d", lineID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["deleted"])

	// Removing the same row again reports false but stays 200.
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/cart/items/%d", lineID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["deleted"])
}

func TestAddUnknownItemToCartIs404(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/cart/sess-1/items", gin.H{
		"catalog_item_id": 999,
		"quantity":        1,
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddBeyondStockIs400(t *testing.T) {
	r := newTestRouter()
	item := seedItem(t, r, "Gold Ring", 199.99, 2)

	w := doJSON(t, r, http.MethodPost, "/api/cart/sess-1/items", gin.H{
		"catalog_item_id": item,
		"quantity":        3,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "insufficient stock")
}

func TestPlaceOrderEndToEnd(t *testing.T) {
	r := newTestRouter()
	itemA := seedItem(t, r, "Item A", 199.99, 10)
	itemB := seedItem(t, r, "Item B", 99.50, 5)
	customer := seedCustomer(t, r, "ada@example.com")

	for item, qty := range map[int64]int{itemA: 2, itemB: 1} {
		w := doJSON(t, r, http.MethodPost, "/api/cart/sess-1/items", gin.H{
			"catalog_item_id": item,
			"quantity":        qty,
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"customer_id":      customer,
		"session_id":       "sess-1",
		"total_amount":     499.48,
		"shipping_address": "1 Jewel Lane",
		"billing_address":  "1 Jewel Lane",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decodeBody(t, w)
	assert.Equal(t, models.OrderStatusPending, order["status"])
	assert.Equal(t, 499.48, order["total_amount"])
	orderID := int64(order["id"].(float64))

	// The cart emptied out.
	w = doJSON(t, r, http.MethodGet, "/api/cart/sess-1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["items"])

	// Order detail nests customer and line items.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decodeBody(t, w)
	assert.Equal(t, "ada@example.com", detail["customer"].(map[string]any)["email"])
	assert.Len(t, detail["order_items"], 2)

	// Customer order history includes it.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/customers/%d/orders", customer), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, float64(orderID), history[0]["id"])
}

func TestPlaceOrderEmptyCartIs400(t *testing.T) {
	r := newTestRouter()
	customer := seedCustomer(t, r, "ada@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"customer_id":      customer,
		"session_id":       "never-filled",
		"total_amount":     10.00,
		"shipping_address": "1 Jewel Lane",
		"billing_address":  "1 Jewel Lane",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "cart is empty")
}

func TestAdminUpdatesOrderStatus(t *testing.T) {
	r := newTestRouter()
	item := seedItem(t, r, "Gold Ring", 100, 10)
	customer := seedCustomer(t, r, "ada@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/cart/sess-1/items", gin.H{
		"catalog_item_id": item,
		"quantity":        1,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/orders", gin.H{
		"customer_id":      customer,
		"session_id":       "sess-1",
		"total_amount":     100.00,
		"shipping_address": "1 Jewel Lane",
		"billing_address":  "1 Jewel Lane",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := int64(decodeBody(t, w)["id"].(float64))

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/orders/%d", orderID), gin.H{
		"status": "shipped",
	}, adminHeaders(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "shipped", decodeBody(t, w)["status"])

	// Unknown statuses are rejected at binding.
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/orders/%d", orderID), gin.H{
		"status": "teleported",
	}, adminHeaders(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInquiryLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/inquiries", gin.H{
		"name":    "Ada Lovelace",
		"email":   "ada@example.com",
		"subject": "Custom engraving",
		"message": "Initials on the band, please.",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	assert.Equal(t, models.InquiryStatusNew, created["status"])
	inquiryID := int64(created["id"].(float64))

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/inquiries/%d/status", inquiryID), gin.H{
		"status": "resolved",
	}, adminHeaders(t))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.InquiryStatusResolved, decodeBody(t, w)["status"])

	w = doJSON(t, r, http.MethodPut, "/api/admin/inquiries/999/status", gin.H{
		"status": "resolved",
	}, adminHeaders(t))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
