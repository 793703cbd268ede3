package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Ramy-Emad2022/ecommerce-backend/internal/models"
)

type CreateBrandRequest struct {
	Name    string `json:"name" binding:"required"`
	Country string `json:"country"`
}

type BrandHandler struct {
	db *gorm.DB
}

func NewBrandHandler(gdb *gorm.DB) *BrandHandler {
	return &BrandHandler{db: gdb}
}

// POST /api/brands
func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var req CreateBrandRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand := models.Brand{
		Name:    req.Name,
		Country: req.Country,
	}

	if err := h.db.Create(&brand).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, brand)
}

// GET /api/brands
func (h *BrandHandler) GetBrands(c *gin.Context) {
	var brands []models.Brand

	if err := h.db.Find(&brands).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, brands)
}
