package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramy-Emad2022/ecommerce-backend/internal/handlers"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/models"
)

func orderBody(productID uint, quantity int, total float64) handlers.CreateOrderRequest {
	return handlers.CreateOrderRequest{
		Items: []handlers.OrderItemRequest{
			{ProductID: productID, Quantity: quantity, Size: "M", Color: "white"},
		},
		ShippingAddress: handlers.ShippingAddressRequest{
			Name:    "Test User",
			Address: "1 Test St",
			Phone:   "0100000000",
		},
		TotalPrice: total,
	}
}

func TestCreateOrderHandler(t *testing.T) {

	router, testDB := setupTestRouter(t)

	user := seedTestUser(t, testDB, "buyer")
	productA := seedTestProduct(t, testDB, "Product A", 5.00, 10)

	t.Run("Successfully creates an order", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/orders", orderBody(productA.ID, 3, 15.00), &user.ID)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var order models.Order
		err := json.Unmarshal(recorder.Body.Bytes(), &order)
		assert.NoError(t, err)
		assert.Greater(t, order.ID, uint(0))
		assert.Equal(t, user.ID, order.UserID)
		assert.Equal(t, 15.00, order.TotalPrice)
		assert.Equal(t, models.OrderStatusProcessing, order.Status)
		assert.Len(t, order.Items, 1)
		assert.Equal(t, "Product A", order.Items[0].Name)

		// stock was decremented
		var stored models.Product
		testDB.First(&stored, productA.ID)
		assert.Equal(t, 7, stored.Stock)
	})

	t.Run("Returns 401 without a session", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/orders", orderBody(productA.ID, 1, 5.00), nil)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "unauthorized", response["error"])
	})

	t.Run("Returns 400 for empty item list", func(t *testing.T) {
		body := orderBody(productA.ID, 1, 0)
		body.Items = nil
		recorder := performRequest(router, http.MethodPost, "/api/orders", body, &user.ID)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Contains(t, response["error"], "No order items found")
	})

	t.Run("Returns 400 for missing shipping address", func(t *testing.T) {
		body := map[string]interface{}{
			"items":      []map[string]interface{}{{"productId": productA.ID, "quantity": 1}},
			"totalPrice": 5.00,
		}
		recorder := performRequest(router, http.MethodPost, "/api/orders", body, &user.ID)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Returns 404 for unknown product", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/orders", orderBody(99999, 1, 5.00), &user.ID)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Contains(t, response["error"], "99999")
	})

	t.Run("Returns 400 with available quantity on insufficient stock", func(t *testing.T) {
		// first order above left 7 in stock
		recorder := performRequest(router, http.MethodPost, "/api/orders", orderBody(productA.ID, 8, 40.00), &user.ID)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Contains(t, response["error"], "Available: 7")

		var stored models.Product
		testDB.First(&stored, productA.ID)
		assert.Equal(t, 7, stored.Stock)
	})

	t.Run("Returns 400 on price mismatch and mutates nothing", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/orders", orderBody(productA.ID, 2, 99.00), &user.ID)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Contains(t, response["error"], "Total price mismatch")

		var stored models.Product
		testDB.First(&stored, productA.ID)
		assert.Equal(t, 7, stored.Stock)
	})
}

func TestGetMyOrdersHandler(t *testing.T) {

	router, testDB := setupTestRouter(t)

	user := seedTestUser(t, testDB, "buyer")
	other := seedTestUser(t, testDB, "other")
	product := seedTestProduct(t, testDB, "Product A", 5.00, 20)

	for _, u := range []models.User{user, user, other} {
		recorder := performRequest(router, http.MethodPost, "/api/orders", orderBody(product.ID, 1, 5.00), &u.ID)
		assert.Equal(t, http.StatusCreated, recorder.Code)
	}

	recorder := performRequest(router, http.MethodGet, "/api/orders/mine", nil, &user.ID)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var orders []models.Order
	err := json.Unmarshal(recorder.Body.Bytes(), &orders)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, order := range orders {
		assert.Equal(t, user.ID, order.UserID)
		// line items are populated with the referenced product
		assert.Equal(t, "Product A", order.Items[0].Product.Name)
	}
}

func TestDeleteOrderHandler(t *testing.T) {

	router, testDB := setupTestRouter(t)

	user := seedTestUser(t, testDB, "buyer")
	stranger := seedTestUser(t, testDB, "stranger")
	product := seedTestProduct(t, testDB, "Product A", 5.00, 10)

	recorder := performRequest(router, http.MethodPost, "/api/orders", orderBody(product.ID, 4, 20.00), &user.ID)
	assert.Equal(t, http.StatusCreated, recorder.Code)

	var order models.Order
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &order))
	orderPath := fmt.Sprintf("/api/orders/%d", order.ID)

	t.Run("Returns 400 for malformed order id", func(t *testing.T) {
		recorder := performRequest(router, http.MethodDelete, "/api/orders/not-a-number", nil, &user.ID)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Returns 403 for a foreign order", func(t *testing.T) {
		recorder := performRequest(router, http.MethodDelete, orderPath, nil, &stranger.ID)
		assert.Equal(t, http.StatusForbidden, recorder.Code)

		var stored models.Product
		testDB.First(&stored, product.ID)
		assert.Equal(t, 6, stored.Stock)
	})

	t.Run("Deletes the order and restores stock", func(t *testing.T) {
		recorder := performRequest(router, http.MethodDelete, orderPath, nil, &user.ID)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "Order deleted successfully.", response["message"])

		var stored models.Product
		testDB.First(&stored, product.ID)
		assert.Equal(t, 10, stored.Stock)

		// the order is no longer retrievable
		listRecorder := performRequest(router, http.MethodGet, "/api/orders/mine", nil, &user.ID)
		var orders []models.Order
		json.Unmarshal(listRecorder.Body.Bytes(), &orders)
		assert.Len(t, orders, 0)
	})

	t.Run("Returns 404 for an already-cancelled order", func(t *testing.T) {
		recorder := performRequest(router, http.MethodDelete, orderPath, nil, &user.ID)
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var stored models.Product
		testDB.First(&stored, product.ID)
		assert.Equal(t, 10, stored.Stock)
	})
}
