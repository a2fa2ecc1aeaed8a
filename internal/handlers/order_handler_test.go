package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"minishop/internal/handlers"
	"minishop/internal/models"
	"minishop/internal/repositories"
	"minishop/internal/services"
	"minishop/pkg/userclient"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupOrderApp builds the order service against in-memory SQLite and a
// stub user directory that knows only the given user ids.
func setupOrderApp(t *testing.T, knownUsers ...int) (*fiber.App, *httptest.Server) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Order{}))

	users := make(map[string]bool)
	for _, id := range knownUsers {
		users[fmt.Sprintf("/api/users/%d", id)] = true
	}
	userDir := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if users[r.URL.Path] {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id":7,"username":"tester","email":"tester@example.com"}`)
			return
		}
		http.Error(w, `{"error":"User not found"}`, http.StatusNotFound)
	}))
	t.Cleanup(userDir.Close)

	orderRepo := repositories.NewGORMOrderRepository(db)
	verifier := userclient.New(userDir.URL, 2*time.Second)
	orderService := services.NewOrderService(orderRepo, verifier, nil)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()
	orderHandler.RegisterRoutes(app.Group("/api"))
	return app, userDir
}

func postOrder(t *testing.T, app *fiber.App, body map[string]interface{}) *http.Response {
	t.Helper()
	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func listOrders(t *testing.T, app *fiber.App, userID int) []models.Order {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/orders/user/%d", userID), nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listResp struct {
		Orders []models.Order `json:"orders"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&listResp))
	return listResp.Orders
}

func TestCreateOrder(t *testing.T) {
	app, _ := setupOrderApp(t, 7)

	resp := postOrder(t, app, map[string]interface{}{
		"user_id":      7,
		"product_name": "Widget",
		"quantity":     3,
		"price":        9.99,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var createResp struct {
		Message    string  `json:"message"`
		OrderID    uint    `json:"order_id"`
		TotalPrice float64 `json:"total_price"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&createResp))
	assert.Equal(t, "Order created successfully", createResp.Message)
	assert.Equal(t, uint(1), createResp.OrderID)
	assert.InDelta(t, 29.97, createResp.TotalPrice, 0.0001)

	orders := listOrders(t, app, 7)
	assert.Len(t, orders, 1)
	assert.Equal(t, "pending", orders[0].Status)
	assert.Equal(t, orders[0].Quantity, 3)
}

func TestCreateOrder_MissingFields(t *testing.T) {
	app, _ := setupOrderApp(t, 7)

	bodies := []map[string]interface{}{
		{"product_name": "Widget", "quantity": 3, "price": 9.99},
		{"user_id": 7, "quantity": 3, "price": 9.99},
		{"user_id": 7, "product_name": "Widget", "price": 9.99},
		{"user_id": 7, "product_name": "Widget", "quantity": 3},
		{"user_id": 7, "product_name": "Widget", "quantity": 0, "price": 9.99},
		{"user_id": 7, "product_name": "Widget", "quantity": 3, "price": -1.0},
	}
	for _, body := range bodies {
		resp := postOrder(t, app, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var errResp map[string]string
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		assert.Equal(t, "Missing required fields", errResp["error"])
		resp.Body.Close()
	}

	// None of the rejected requests may have written anything.
	assert.Empty(t, listOrders(t, app, 7))
}

func TestCreateOrder_UnknownUser(t *testing.T) {
	app, _ := setupOrderApp(t, 7)

	resp := postOrder(t, app, map[string]interface{}{
		"user_id":      42,
		"product_name": "Widget",
		"quantity":     1,
		"price":        5.0,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, "Invalid user_id", errResp["error"])

	assert.Empty(t, listOrders(t, app, 42))
}

func TestCreateOrder_UserDirectoryDown(t *testing.T) {
	app, userDir := setupOrderApp(t, 7)
	userDir.Close()

	resp := postOrder(t, app, map[string]interface{}{
		"user_id":      7,
		"product_name": "Widget",
		"quantity":     1,
		"price":        5.0,
	})
	defer resp.Body.Close()

	// An unreachable directory is indistinguishable from an unknown user.
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, "Invalid user_id", errResp["error"])
}

func TestGetOrderByID(t *testing.T) {
	app, _ := setupOrderApp(t, 7)

	resp := postOrder(t, app, map[string]interface{}{
		"user_id":      7,
		"product_name": "Widget",
		"quantity":     2,
		"price":        10.5,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/1", nil)
	getResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusOK, getResp.StatusCode)

	var order models.Order
	assert.NoError(t, json.NewDecoder(getResp.Body).Decode(&order))
	assert.Equal(t, uint(1), order.ID)
	assert.Equal(t, 21.0, order.TotalPrice)

	req = httptest.NewRequest(http.MethodGet, "/api/orders/999", nil)
	notFoundResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer notFoundResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, notFoundResp.StatusCode)

	var errResp map[string]string
	assert.NoError(t, json.NewDecoder(notFoundResp.Body).Decode(&errResp))
	assert.Equal(t, "Order not found", errResp["error"])
}

func TestListOrdersNewestFirst(t *testing.T) {
	app, _ := setupOrderApp(t, 7)

	for i := 1; i <= 3; i++ {
		resp := postOrder(t, app, map[string]interface{}{
			"user_id":      7,
			"product_name": fmt.Sprintf("Widget %d", i),
			"quantity":     i,
			"price":        10.0,
		})
		resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	orders := listOrders(t, app, 7)
	assert.Len(t, orders, 3)
	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i].CreatedAt.After(orders[i-1].CreatedAt))
		assert.Greater(t, orders[i-1].ID, orders[i].ID)
	}
}
