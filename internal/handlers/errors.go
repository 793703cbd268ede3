package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ramy-Emad2022/ecommerce-backend/internal/service"
)

// respondError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a 500.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		authErr       *service.AuthError
		forbiddenErr  *service.ForbiddenError
		notFoundErr   *service.NotFoundError
		stockErr      *service.InsufficientStockError
		priceErr      *service.PriceMismatchError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": stockErr.Error()})
	case errors.As(err, &priceErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": priceErr.Error()})
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Error()})
	case errors.As(err, &forbiddenErr):
		c.JSON(http.StatusForbidden, gin.H{"error": forbiddenErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
