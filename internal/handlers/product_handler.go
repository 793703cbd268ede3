package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ramy-Emad2022/ecommerce-backend/internal/models"
)

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Sizes       []string `json:"sizes" binding:"required"`
	Colors      []string `json:"colors" binding:"required"`
	Images      []string `json:"images" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Gender      string   `json:"gender" binding:"omitempty,oneof=Men Women Children Unisex"`
}

// UpdateProductRequest carries only the fields the client wants changed.
type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price" binding:"omitempty,gt=0"`
	Stock       *int      `json:"stock" binding:"omitempty,gte=0"`
	Sizes       *[]string `json:"sizes"`
	Colors      *[]string `json:"colors"`
	Images      *[]string `json:"images"`
	Category    *string   `json:"category"`
	Gender      *string   `json:"gender" binding:"omitempty,oneof=Men Women Children Unisex"`
}

type ProductHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewProductHandler(gdb *gorm.DB, log *zap.Logger) *ProductHandler {
	return &ProductHandler{db: gdb, log: log}
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Sizes:       models.StringList(req.Sizes),
		Colors:      models.StringList(req.Colors),
		Images:      models.StringList(req.Images),
		Category:    req.Category,
		Gender:      req.Gender,
	}

	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GET /api/products — only products with stock on hand are listed.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var products []models.Product

	if err := h.db.Where("stock > 0").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GET /api/products/search?query=
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	pattern := "%" + strings.ToLower(query) + "%"

	var products []models.Product
	err := h.db.
		Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?) AND stock > 0", pattern, pattern).
		Limit(20).
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GET /api/products/:id
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format."})
		return
	}

	var product models.Product
	if err := h.db.First(&product, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format."})
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := h.db.First(&product, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Sizes != nil {
		product.Sizes = models.StringList(*req.Sizes)
	}
	if req.Colors != nil {
		product.Colors = models.StringList(*req.Colors)
	}
	if req.Images != nil {
		product.Images = models.StringList(*req.Images)
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Gender != nil {
		product.Gender = *req.Gender
	}

	if err := h.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format."})
		return
	}

	res := h.db.Delete(&models.Product{}, uint(id))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}
