package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Ramy-Emad2022/ecommerce-backend/internal/auth"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/models"
)

type FavoriteHandler struct {
	db *gorm.DB
}

func NewFavoriteHandler(gdb *gorm.DB) *FavoriteHandler {
	return &FavoriteHandler{db: gdb}
}

// POST /api/favorites/:productId — adding twice is a no-op.
func (h *FavoriteHandler) AddToFavorites(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format."})
		return
	}

	var product models.Product
	if err := h.db.First(&product, uint(productID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user := models.User{ID: userID}
	if err := h.db.Model(&user).Association("Favorites").Append(&product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.respondWithFavorites(c, userID, "Product added to favorites")
}

// DELETE /api/favorites/:productId
func (h *FavoriteHandler) RemoveFromFavorites(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format."})
		return
	}

	user := models.User{ID: userID}
	if err := h.db.Model(&user).Association("Favorites").
		Delete(&models.Product{ID: uint(productID)}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.respondWithFavorites(c, userID, "Product removed from favorites")
}

// GET /api/favorites
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var user models.User
	if err := h.db.Preload("Favorites").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": user.Favorites})
}

func (h *FavoriteHandler) respondWithFavorites(c *gin.Context, userID uint, message string) {
	var user models.User
	if err := h.db.Preload("Favorites").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "favorites": user.Favorites})
}
