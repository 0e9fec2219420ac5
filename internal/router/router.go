// internal/router/router.go
package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/ecommerce-api/internal/config"
	"github.com/javajoker/ecommerce-api/internal/handlers"
	"github.com/javajoker/ecommerce-api/internal/middleware"
	"github.com/javajoker/ecommerce-api/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config, limiters *middleware.Limiters) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	notificationService := services.NewNotificationService(db, cfg)

	authService := services.NewAuthService(db, cfg)
	otpService := services.NewOtpService(db, cfg, notificationService)
	userService := services.NewUserService(db, storageService)
	productService := services.NewProductService(db, storageService)
	posterService := services.NewPosterService(db, storageService)
	favoriteService := services.NewFavoriteService(db, notificationService)
	cartService := services.NewCartService(db)
	historyService := services.NewHistoryService(db)
	reviewService := services.NewReviewService(db, notificationService)
	shippingService := services.NewShippingService(db, notificationService)
	orderService := services.NewOrderService(db, notificationService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, otpService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService, posterService)
	membershipHandler := handlers.NewMembershipHandler(favoriteService, cartService, historyService)
	orderHandler := handlers.NewOrderHandler(orderService, shippingService, reviewService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	r := gin.New()
	r.MaxMultipartMemory = int64(cfg.Storage.MaxUploadMB) << 20

	// Global middleware
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(limiters.General.Middleware())
	r.Use(middleware.OptionalAuth())

	r.GET("/health", healthHandler.Health)

	authLimit := limiters.Auth.Middleware()
	uploadLimit := limiters.Upload.Middleware()

	// Users and authentication
	users := r.Group("/users")
	{
		users.POST("/register", authLimit, authHandler.Register)
		users.POST("/login", authLimit, authHandler.Login)
		users.GET("/otp", authLimit, authHandler.GetOTP)
		users.POST("/otp/verify", authLimit, authHandler.VerifyOTP)

		users.DELETE("/:id", userHandler.DeleteAccount)
		users.PUT("/upload", uploadLimit, userHandler.UploadPhoto)
		users.PUT("/update_password", userHandler.UpdatePassword)
		users.PUT("/update_profile", userHandler.UpdateProfile)
		users.GET("/getImage", userHandler.GetImage)
	}
	r.GET("/user-details/:id", userHandler.GetUser)

	// Catalog
	r.GET("/products", productHandler.GetProducts)
	r.GET("/products/search", productHandler.SearchProducts)
	r.POST("/products/insert", uploadLimit, productHandler.CreateProduct)
	r.GET("/all_products", productHandler.GetAllProducts)

	r.GET("/posters", productHandler.GetPosters)
	r.POST("/posters/insert", middleware.AuthRequired(), uploadLimit, productHandler.CreatePoster)

	// Favorites, cart and history
	favorites := r.Group("/favorites")
	{
		favorites.GET("", membershipHandler.GetFavorites)
		favorites.POST("/add", membershipHandler.AddFavorite)
		favorites.DELETE("/remove", membershipHandler.RemoveFavorite)
	}

	carts := r.Group("/carts")
	{
		carts.GET("", membershipHandler.GetCart)
		carts.POST("/add", membershipHandler.AddToCart)
		carts.DELETE("/remove", membershipHandler.RemoveFromCart)
	}

	history := r.Group("/history")
	{
		history.GET("", membershipHandler.GetHistory)
		history.POST("/add", membershipHandler.AddToHistory)
		history.DELETE("/remove", membershipHandler.RemoveFromHistory)
	}

	// Reviews, addresses and orders
	r.GET("/review", orderHandler.GetReviews)
	r.POST("/review/add", orderHandler.AddReview)
	r.POST("/address/add", orderHandler.AddAddress)
	r.GET("/orders/get", orderHandler.GetOrders)
	r.POST("/orders/add", orderHandler.CreateOrder)

	// Notifications
	notifications := r.Group("/notifications")
	{
		notifications.GET("", notificationHandler.GetNotifications)
		notifications.POST("/mark-all-read", notificationHandler.MarkAllRead)
		notifications.PUT("/:id/read", notificationHandler.MarkRead)
		notifications.DELETE("/:id", notificationHandler.Delete)
	}

	// Media is served by the API only when it lives on local disk
	if !cfg.UsesS3() {
		r.Static("/media", cfg.Storage.LocalPath)
	}

	return r, nil
}
