package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Ramy-Emad2022/ecommerce-backend/internal/auth"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/db"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/handlers"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/metrics"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/models"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/service"
)

const testSessionSecret = "test-secret-key"

// setupTestRouter builds the full API surface over a fresh in-memory
// database, mirroring the wiring in main.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}

	if err := db.Migrate(testDB); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	log := zap.NewNop()
	orderService := service.NewOrderService(testDB, log)
	orderMetrics := metrics.NewOrderMetrics(prometheus.NewRegistry())

	orderHandler := handlers.NewOrderHandler(testDB, orderService, orderMetrics, nil, log)
	productHandler := handlers.NewProductHandler(testDB, log)
	categoryHandler := handlers.NewCategoryHandler(testDB)
	brandHandler := handlers.NewBrandHandler(testDB)
	cartHandler := handlers.NewCartHandler(testDB, log)
	favoriteHandler := handlers.NewFavoriteHandler(testDB)

	r := gin.New()
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(testSessionSecret))
	r.Use(sessions.Sessions(auth.SessionName, store))

	api := r.Group("/api")
	{
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/search", productHandler.SearchProducts)
		api.GET("/products/:id", productHandler.GetProductByID)
		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/brands", brandHandler.GetBrands)
	}

	protected := api.Group("")
	protected.Use(auth.RequireAuth(testDB))
	{
		protected.POST("/products", productHandler.CreateProduct)
		protected.PUT("/products/:id", productHandler.UpdateProduct)
		protected.DELETE("/products/:id", productHandler.DeleteProduct)

		protected.POST("/categories", categoryHandler.CreateCategory)
		protected.POST("/brands", brandHandler.CreateBrand)

		protected.POST("/orders", orderHandler.CreateOrder)
		protected.GET("/orders/mine", orderHandler.GetMyOrders)
		protected.DELETE("/orders/:id", orderHandler.DeleteOrder)

		protected.GET("/cart", cartHandler.GetCart)
		protected.POST("/cart/add", cartHandler.AddToCart)
		protected.PUT("/cart/update/:itemId", cartHandler.UpdateCartItem)
		protected.DELETE("/cart/remove/:itemId", cartHandler.RemoveFromCart)
		protected.DELETE("/cart/clear", cartHandler.ClearCart)

		protected.POST("/favorites/:productId", favoriteHandler.AddToFavorites)
		protected.DELETE("/favorites/:productId", favoriteHandler.RemoveFromFavorites)
		protected.GET("/favorites", favoriteHandler.GetFavorites)
	}

	return r, testDB
}

func seedTestUser(t *testing.T, testDB *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Phone:    "0100000000",
		Address:  "1 Test St",
		OIDCID:   "oidc-" + username,
	}
	if err := testDB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedTestProduct(t *testing.T, testDB *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:        name,
		Description: "a " + name + " for testing",
		Price:       price,
		Stock:       stock,
		Sizes:       models.StringList{"S", "M"},
		Colors:      models.StringList{"white"},
		Images:      models.StringList{"https://cdn.example.com/" + name + ".jpg"},
		Category:    "shirts",
		Gender:      "Unisex",
	}
	if err := testDB.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func newJSONRequest(method, path string, body interface{}) *http.Request {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// performRequest drives the router with an optional authenticated
// session, built the way the session middleware would have written it.
func performRequest(router *gin.Engine, method, path string, body interface{}, userID *uint) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := newJSONRequest(method, path, body)

	if userID != nil {
		tempW := httptest.NewRecorder()
		tempC, _ := gin.CreateTestContext(tempW)
		tempC.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		store := cookie.NewStore([]byte(testSessionSecret))
		sessions.Sessions(auth.SessionName, store)(tempC)

		session := sessions.Default(tempC)
		session.Set("user_id", *userID)
		_ = session.Save()

		req.Header.Set("Cookie", tempW.Header().Get("Set-Cookie"))
	}

	router.ServeHTTP(recorder, req)
	return recorder
}
