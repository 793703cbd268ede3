package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	config "github.com/Ramy-Emad2022/ecommerce-backend/configs"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/auth"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/db"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/handlers"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/metrics"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/notifier"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/service"
)

func main() {

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	appCfg := config.LoadAppConfig()

	gdb, err := db.Open(config.LoadDBConfig())
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	defer func() { _ = db.Close(gdb) }()

	authn, err := auth.New(context.Background(), gdb, logger, config.LoadOIDCConfig())
	if err != nil {
		logger.Fatal("auth init failed", zap.Error(err))
	}

	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)
	notify := notifier.New(config.LoadAfricaTalkingConfig(), config.LoadEmailConfig(), logger)
	orderService := service.NewOrderService(gdb, logger)

	orderHandler := handlers.NewOrderHandler(gdb, orderService, orderMetrics, notify, logger)
	productHandler := handlers.NewProductHandler(gdb, logger)
	categoryHandler := handlers.NewCategoryHandler(gdb)
	brandHandler := handlers.NewBrandHandler(gdb)
	cartHandler := handlers.NewCartHandler(gdb, logger)
	favoriteHandler := handlers.NewFavoriteHandler(gdb)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.RequestLogger(logger))

	// ── session store ──
	store := cookie.NewStore([]byte(appCfg.SessionSecret))
	r.Use(sessions.Sessions(auth.SessionName, store))

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/auth/login", authn.Login)
	r.GET("/auth/callback", authn.Callback)

	api := r.Group("/api")
	{
		// catalog browsing is public
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/search", productHandler.SearchProducts)
		api.GET("/products/:id", productHandler.GetProductByID)
		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/brands", brandHandler.GetBrands)
	}

	// ── protected API ──
	protected := api.Group("")
	protected.Use(auth.RequireAuth(gdb))
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

	server := &http.Server{
		Addr:    appCfg.Addr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http server started", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	} else {
		logger.Info("http server stopped")
	}
}
