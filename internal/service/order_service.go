package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ramy-Emad2022/ecommerce-backend/internal/models"
)

// priceEpsilon is the accepted divergence between the client-supplied and
// the server-computed order total, in currency units.
const priceEpsilon = 0.01

type OrderItemInput struct {
	ProductID uint
	Quantity  int
	Size      string
	Color     string
}

type PlaceOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress models.ShippingAddress
	TotalPrice      float64
}

// OrderService owns the order lifecycle: placement with stock decrement,
// listing, and cancellation with stock restoration. Every mutating
// operation runs inside a single database transaction, and stock changes
// are single-statement conditional updates so that concurrent requests
// cannot drive stock negative.
type OrderService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewOrderService(gdb *gorm.DB, log *zap.Logger) *OrderService {
	return &OrderService{db: gdb, log: log}
}

// PlaceOrder validates every line against current catalog state, checks
// the client total against the authoritative total, then applies all
// stock decrements and the order insert atomically. A failure on any line
// leaves no stock mutated.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, in PlaceOrderInput) (*models.Order, error) {

	if userID == 0 {
		return nil, &AuthError{Message: "Authentication required to create an order. Please log in."}
	}

	if len(in.Items) == 0 {
		return nil, &ValidationError{Message: "No order items found. Please add items to your cart."}
	}

	for _, item := range in.Items {
		if item.ProductID == 0 {
			return nil, &ValidationError{Message: "Missing product ID for one or more items."}
		}
		if item.Quantity <= 0 {
			return nil, &ValidationError{Message: "Item quantity must be a positive integer."}
		}
	}

	var order models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		lineItems := make([]models.OrderItem, 0, len(in.Items))
		var calculatedTotal float64

		// First pass: read-only validation and snapshotting. Nothing is
		// mutated until every line has passed.
		for _, item := range in.Items {

			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Message: fmt.Sprintf(
						"Product not found for ID: %d. It might have been removed.", item.ProductID)}
				}
				return err
			}

			if product.Stock < item.Quantity {
				return &InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   item.Quantity,
				}
			}

			lineItems = append(lineItems, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Image:     product.FirstImage(),
				Price:     product.Price,
				Quantity:  item.Quantity,
				Size:      item.Size,
				Color:     item.Color,
			})

			calculatedTotal += product.Price * float64(item.Quantity)
		}

		if math.Abs(calculatedTotal-in.TotalPrice) > priceEpsilon {
			return &PriceMismatchError{Calculated: calculatedTotal, Provided: in.TotalPrice}
		}

		// Second pass: conditional decrements. The stock >= quantity guard
		// makes check-and-decrement one statement, so a concurrent order
		// that drained the stock since our read surfaces as zero affected
		// rows and rolls the whole transaction back.
		for i, item := range in.Items {

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))

			if res.Error != nil {
				return res.Error
			}

			if res.RowsAffected == 0 {
				var current models.Product
				available := 0
				if err := tx.Select("stock").First(&current, item.ProductID).Error; err == nil {
					available = current.Stock
				}
				return &InsufficientStockError{
					ProductName: lineItems[i].Name,
					Available:   available,
					Requested:   item.Quantity,
				}
			}
		}

		order = models.Order{
			Reference:       uuid.NewString(),
			UserID:          userID,
			ShippingAddress: in.ShippingAddress,
			TotalPrice:      calculatedTotal,
			Status:          models.OrderStatusProcessing,
		}

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range lineItems {
			lineItems[i].OrderID = order.ID
		}

		if err := tx.Omit("Product").CreateInBatches(&lineItems, len(lineItems)).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		order.Items = lineItems
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.log.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.String("reference", order.Reference),
		zap.Uint("user_id", userID),
		zap.Float64("total", order.TotalPrice),
	)

	return &order, nil
}

// OrdersForUser returns the caller's orders newest-first, line items
// populated with the referenced product alongside the snapshot.
func (s *OrderService) OrdersForUser(ctx context.Context, userID uint) ([]models.Order, error) {

	if userID == 0 {
		return nil, &AuthError{Message: "Authentication required to view orders. Please log in."}
	}

	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, nil
}

// CancelOrder restores stock for every line item and deletes the order.
// A product removed from the catalog since the order was placed is
// skipped; product deletion is not rolled back.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uint) error {

	if userID == 0 {
		return &AuthError{Message: "Authentication required to delete an order. Please log in."}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var order models.Order
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Message: "Order not found."}
			}
			return err
		}

		if order.UserID != userID {
			return &ForbiddenError{Message: "You are not authorized to delete this order."}
		}

		for _, item := range order.Items {

			res := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity))

			if res.Error != nil {
				return res.Error
			}

			if res.RowsAffected == 0 {
				s.log.Warn("skipping stock restore for missing product",
					zap.Uint("product_id", item.ProductID),
					zap.Uint("order_id", order.ID),
				)
			}
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}

		if err := tx.Delete(&order).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.log.Info("order cancelled",
		zap.Uint("order_id", orderID),
		zap.Uint("user_id", userID),
	)

	return nil
}
