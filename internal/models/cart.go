package models

import "time"

// Cart holds one user's pending items; one cart per user.
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"userId"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CartID    uint    `gorm:"index;not null" json:"cartId"`
	ProductID uint    `gorm:"index;not null" json:"productId"`
	Product   Product `json:"product"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Size      string  `json:"size,omitempty"`
}
