package models

import "time"

const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// ShippingAddress is embedded into Order; all fields are required at intake.
type ShippingAddress struct {
	Name    string `gorm:"not null" json:"name"`
	Address string `gorm:"not null" json:"address"`
	Phone   string `gorm:"not null" json:"phone"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Reference       string          `gorm:"uniqueIndex;not null" json:"reference"`
	UserID          uint            `gorm:"index;not null" json:"userId"`
	User            User            `json:"-"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"orderItems"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	TotalPrice      float64         `gorm:"not null" json:"totalPrice"`
	Status          string          `gorm:"not null;default:Processing" json:"status"`
	IsPaid          bool            `gorm:"not null;default:false" json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem carries a snapshot of the product's name, price and first image
// taken at order-creation time, so later catalog edits do not rewrite history.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"orderId"`
	ProductID uint    `gorm:"index;not null" json:"productId"`
	Product   Product `json:"product"`
	Name      string  `gorm:"not null" json:"name"`
	Image     string  `json:"image"`
	Price     float64 `gorm:"not null" json:"price"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}
