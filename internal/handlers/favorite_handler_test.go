package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramy-Emad2022/ecommerce-backend/internal/models"
)

type favoritesResponse struct {
	Message   string           `json:"message"`
	Favorites []models.Product `json:"favorites"`
}

func TestFavoriteHandlers(t *testing.T) {

	router, testDB := setupTestRouter(t)
	user := seedTestUser(t, testDB, "collector")
	product := seedTestProduct(t, testDB, "Denim Jacket", 49.00, 3)

	favoritePath := fmt.Sprintf("/api/favorites/%d", product.ID)

	t.Run("Adds a product to favorites", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, favoritePath, nil, &user.ID)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp favoritesResponse
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Len(t, resp.Favorites, 1)
		assert.Equal(t, product.ID, resp.Favorites[0].ID)
	})

	t.Run("Adding twice keeps a single entry", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, favoritePath, nil, &user.ID)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp favoritesResponse
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Len(t, resp.Favorites, 1)
	})

	t.Run("Returns 404 for an unknown product", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/favorites/99999", nil, &user.ID)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Lists favorites", func(t *testing.T) {
		recorder := performRequest(router, http.MethodGet, "/api/favorites", nil, &user.ID)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp favoritesResponse
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Len(t, resp.Favorites, 1)
	})

	t.Run("Removes a product from favorites", func(t *testing.T) {
		recorder := performRequest(router, http.MethodDelete, favoritePath, nil, &user.ID)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp favoritesResponse
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Len(t, resp.Favorites, 0)
	})
}
