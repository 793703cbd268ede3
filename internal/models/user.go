package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"isAdmin"`
	OIDCID    string    `gorm:"uniqueIndex" json:"-"` // OpenID Connect subject
	Favorites []Product `gorm:"many2many:user_favorites" json:"favorites,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
