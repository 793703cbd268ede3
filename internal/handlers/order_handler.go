package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ramy-Emad2022/ecommerce-backend/internal/auth"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/metrics"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/models"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/notifier"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/service"
)

type OrderItemRequest struct {
	ProductID uint   `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type ShippingAddressRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"items"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress" binding:"required"`
	TotalPrice      float64                `json:"totalPrice"`
}

type OrderHandler struct {
	db      *gorm.DB
	orders  *service.OrderService
	metrics *metrics.OrderMetrics
	notify  *notifier.Notifier // nil disables confirmations (tests)
	log     *zap.Logger
}

func NewOrderHandler(gdb *gorm.DB, orders *service.OrderService, m *metrics.OrderMetrics, n *notifier.Notifier, log *zap.Logger) *OrderHandler {
	return &OrderHandler{db: gdb, orders: orders, metrics: m, notify: n, log: log}
}

// POST /api/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {

	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required to create an order. Please log in."})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	in := service.PlaceOrderInput{
		Items: make([]service.OrderItemInput, 0, len(req.Items)),
		ShippingAddress: models.ShippingAddress{
			Name:    req.ShippingAddress.Name,
			Address: req.ShippingAddress.Address,
			Phone:   req.ShippingAddress.Phone,
		},
		TotalPrice: req.TotalPrice,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
		})
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), userID, in)
	if err != nil {
		var stockErr *service.InsufficientStockError
		if errors.As(err, &stockErr) {
			h.metrics.StockConflicts.Inc()
		}
		respondError(c, err)
		return
	}

	h.metrics.Placed.Inc()

	if h.notify != nil {
		var user models.User
		if err := h.db.First(&user, userID).Error; err == nil {
			h.notify.OrderConfirmation(user, order.Reference, order.TotalPrice)
		}
	}

	c.JSON(http.StatusCreated, order)
}

// GET /api/orders/mine
func (h *OrderHandler) GetMyOrders(c *gin.Context) {

	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required to view orders. Please log in."})
		return
	}

	orders, err := h.orders.OrdersForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// DELETE /api/orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {

	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required to delete an order. Please log in."})
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format."})
		return
	}

	if err := h.orders.CancelOrder(c.Request.Context(), userID, uint(orderID)); err != nil {
		respondError(c, err)
		return
	}

	h.metrics.Cancelled.Inc()

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully."})
}
