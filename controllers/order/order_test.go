package orderControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Zeeshan2604/hotwheels-api/auth"
	"github.com/Zeeshan2604/hotwheels-api/config"
	"github.com/Zeeshan2604/hotwheels-api/middleware"
	"github.com/Zeeshan2604/hotwheels-api/models"
	"github.com/Zeeshan2604/hotwheels-api/pricing"
)

func setupOrderTest(t *testing.T, cfg config.OrdersConfig, verifier pricing.Verifier) (*gin.Engine, *gorm.DB, *auth.Tokens) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	))

	require.NoError(t, db.Create(&models.Product{
		Name: "Twin Mill", Price: 19.99, Image: "twinmill.png",
	}).Error)
	require.NoError(t, db.Create(&models.Product{
		Name: "Bone Shaker", Price: 24.50, Image: "boneshaker.png",
	}).Error)

	tokens := auth.NewTokens(config.JWTConfig{Secret: "test-secret", TTL: time.Hour})
	hub := NewHub()

	r := gin.New()
	r.Use(middleware.AccessGate(middleware.DefaultPublicRoutes, tokens))
	orders := r.Group("/orders")
	orders.POST("", PlaceOrder(db, verifier, hub))
	orders.GET("/user", GetMyOrders(db))
	orders.GET("/:id", GetOrderByID(db))
	orders.PUT("/:id", UpdateOrderStatus(db, cfg, hub))
	orders.DELETE("/:id", DeleteOrder(db))

	return r, db, tokens
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validOrderBody = `{
	"order_items": [{"product_id": 1, "quantity": 1}],
	"shipping_address": {
		"address": "1 Main St", "city": "Springfield", "state": "IL",
		"zip": "62701", "country": "US", "phone": "555-0100"
	},
	"total_price": 19.99
}`

func placeOrder(t *testing.T, r *gin.Engine, token string) models.Order {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/orders", token, validOrderBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	return order
}

func TestPlaceOrderCreatesPendingSnapshot(t *testing.T) {
	r, _, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.ClientTrust{})
	token, _ := tokens.Issue("user-a", false)

	order := placeOrder(t, r, token)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "user-a", order.UserID)
	assert.NotEmpty(t, order.OrderRef)
	assert.Equal(t, 19.99, order.TotalPrice)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Twin Mill", order.Items[0].ProductName)
	assert.Equal(t, 19.99, order.Items[0].UnitPrice)
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, "Springfield", order.ShippingAddress.City)
}

func TestPlaceOrderUnknownProductPersistsNothing(t *testing.T) {
	r, db, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.ClientTrust{})
	token, _ := tokens.Issue("user-a", false)

	body := `{
		"order_items": [{"product_id": 1, "quantity": 1}, {"product_id": 999, "quantity": 2}],
		"shipping_address": {
			"address": "1 Main St", "city": "Springfield", "state": "IL",
			"zip": "62701", "country": "US", "phone": "555-0100"
		},
		"total_price": 19.99
	}`
	w := doJSON(t, r, http.MethodPost, "/orders", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	assert.Equal(t, int64(0), orders, "all-or-nothing")
	assert.Equal(t, int64(0), items)
}

func TestPlaceOrderRequiresFullAddress(t *testing.T) {
	r, _, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.ClientTrust{})
	token, _ := tokens.Issue("user-a", false)

	body := `{
		"order_items": [{"product_id": 1, "quantity": 1}],
		"shipping_address": {
			"address": "1 Main St", "city": "Springfield", "state": "IL",
			"zip": "62701", "country": "US"
		},
		"total_price": 19.99
	}`
	w := doJSON(t, r, http.MethodPost, "/orders", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderClearsCartAtomically(t *testing.T) {
	r, db, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.ClientTrust{})
	token, _ := tokens.Issue("user-a", false)

	cart := models.Cart{UserID: "user-a"}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{
		CartID: cart.CartID, ProductID: 1, Quantity: 2, AddedAt: time.Now(),
	}).Error)

	placeOrder(t, r, token)

	var count int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.CartID).Count(&count)
	assert.Equal(t, int64(0), count, "checkout empties the cart")
}

func TestPlaceOrderVerifiesTotalWhenConfigured(t *testing.T) {
	r, db, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.CatalogTotal{Tolerance: 0.01})
	token, _ := tokens.Issue("user-a", false)

	body := strings.Replace(validOrderBody, "19.99", "9.99", 1)
	w := doJSON(t, r, http.MethodPost, "/orders", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// The honest total passes.
	w = doJSON(t, r, http.MethodPost, "/orders", token, validOrderBody)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestStatusUpdateLeavesSnapshotUntouched(t *testing.T) {
	r, _, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.ClientTrust{})
	token, _ := tokens.Issue("user-a", false)

	created := placeOrder(t, r, token)
	path := fmt.Sprintf("/orders/%d", created.ID)

	for _, status := range []string{"processing", "shipped", "cancelled"} {
		w := doJSON(t, r, http.MethodPut, path, token, `{"status":"`+status+`"}`)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, path, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var after models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &after))

	assert.Equal(t, models.OrderStatusCancelled, after.Status)
	assert.Equal(t, created.TotalPrice, after.TotalPrice)
	assert.Equal(t, created.ShippingAddress, after.ShippingAddress)
	require.Len(t, after.Items, len(created.Items))
	assert.Equal(t, created.Items[0].ProductName, after.Items[0].ProductName)
	assert.Equal(t, created.Items[0].UnitPrice, after.Items[0].UnitPrice)
	assert.Equal(t, created.Items[0].Quantity, after.Items[0].Quantity)
}

func TestStatusUpdateRejectsUnknownStatus(t *testing.T) {
	r, _, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.ClientTrust{})
	token, _ := tokens.Issue("user-a", false)

	created := placeOrder(t, r, token)
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/orders/%d", created.ID), token, `{"status":"teleported"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDefaultStatusOverwriteIsUnrestricted(t *testing.T) {
	r, _, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.ClientTrust{})
	token, _ := tokens.Issue("user-a", false)

	created := placeOrder(t, r, token)
	path := fmt.Sprintf("/orders/%d", created.ID)

	// Nothing prevents delivered going back to pending by default.
	require.Equal(t, http.StatusOK,
		doJSON(t, r, http.MethodPut, path, token, `{"status":"delivered"}`).Code)
	assert.Equal(t, http.StatusOK,
		doJSON(t, r, http.MethodPut, path, token, `{"status":"pending"}`).Code)
}

func TestEnforcedTransitions(t *testing.T) {
	cfg := config.OrdersConfig{EnforceTransitions: true}
	r, _, tokens := setupOrderTest(t, cfg, pricing.ClientTrust{})
	token, _ := tokens.Issue("user-a", false)

	created := placeOrder(t, r, token)
	path := fmt.Sprintf("/orders/%d", created.ID)

	// pending -> delivered skips the chain.
	assert.Equal(t, http.StatusBadRequest,
		doJSON(t, r, http.MethodPut, path, token, `{"status":"delivered"}`).Code)

	// pending -> processing -> shipped -> delivered is legal.
	for _, status := range []string{"processing", "shipped", "delivered"} {
		assert.Equal(t, http.StatusOK,
			doJSON(t, r, http.MethodPut, path, token, `{"status":"`+status+`"}`).Code)
	}

	// Delivered is terminal.
	assert.Equal(t, http.StatusBadRequest,
		doJSON(t, r, http.MethodPut, path, token, `{"status":"pending"}`).Code)
}

func TestOrderAccessIsOwnerOrAdmin(t *testing.T) {
	r, _, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.ClientTrust{})
	tokenA, _ := tokens.Issue("user-a", false)
	tokenB, _ := tokens.Issue("user-b", false)
	tokenAdmin, _ := tokens.Issue("admin-1", true)

	created := placeOrder(t, r, tokenA)
	path := fmt.Sprintf("/orders/%d", created.ID)

	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, path, tokenA, "").Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, r, http.MethodGet, path, tokenB, "").Code)
	assert.Equal(t, http.StatusForbidden,
		doJSON(t, r, http.MethodPut, path, tokenB, `{"status":"cancelled"}`).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, path, tokenAdmin, "").Code)
}

func TestGetOrderByRef(t *testing.T) {
	r, _, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.ClientTrust{})
	token, _ := tokens.Issue("user-a", false)

	created := placeOrder(t, r, token)

	w := doJSON(t, r, http.MethodGet, "/orders/"+created.OrderRef, token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var fetched models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.OrderRef, fetched.OrderRef)
}

func TestGetOrderUnknownRefIsNotFound(t *testing.T) {
	r, _, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.ClientTrust{})
	token, _ := tokens.Issue("user-a", false)

	placeOrder(t, r, token)

	// Non-numeric path values are looked up as refs, never cast to ids.
	for _, id := range []string{"no-such-ref", "1abc", "9e99"} {
		w := doJSON(t, r, http.MethodGet, "/orders/"+id, token, "")
		assert.Equal(t, http.StatusNotFound, w.Code, "id %q", id)
	}
}

func TestStatusUpdateRejectsMalformedID(t *testing.T) {
	r, _, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.ClientTrust{})
	token, _ := tokens.Issue("user-a", false)

	w := doJSON(t, r, http.MethodPut, "/orders/not-an-id", token, `{"status":"shipped"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOrderRejectsMalformedID(t *testing.T) {
	r, db, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.ClientTrust{})
	token, _ := tokens.Issue("user-a", false)

	placeOrder(t, r, token)

	w := doJSON(t, r, http.MethodDelete, "/orders/not-an-id", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteOrderCascadesItems(t *testing.T) {
	r, db, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.ClientTrust{})
	token, _ := tokens.Issue("user-a", false)

	created := placeOrder(t, r, token)
	path := fmt.Sprintf("/orders/%d", created.ID)

	w := doJSON(t, r, http.MethodDelete, path, token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	assert.Equal(t, int64(0), orders)
	assert.Equal(t, int64(0), items)

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, path, token, "").Code)
}

func TestGetMyOrdersNewestFirst(t *testing.T) {
	r, _, tokens := setupOrderTest(t, config.OrdersConfig{}, pricing.ClientTrust{})
	token, _ := tokens.Issue("user-a", false)

	first := placeOrder(t, r, token)
	time.Sleep(10 * time.Millisecond)
	second := placeOrder(t, r, token)

	w := doJSON(t, r, http.MethodGet, "/orders/user", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestMapOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipped", "delivered", "cancelled", "completed"} {
		got, err := mapOrderStatus(s)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatus(s), got)
	}
	_, err := mapOrderStatus("refunded")
	assert.Error(t, err)
}
