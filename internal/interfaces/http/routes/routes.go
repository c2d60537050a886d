// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/thequick-backend/internal/config"
	"github.com/your-org/thequick-backend/internal/interfaces/http/handlers"
	"github.com/your-org/thequick-backend/internal/interfaces/http/middleware"
)

// SetupRoutes wires every route group onto the API router
func SetupRoutes(rg *gin.RouterGroup, svcs *handlers.Services, cfg *config.Config, log *logrus.Logger) {
	SetupAuthRoutes(rg, svcs, cfg)
	SetupCatalogRoutes(rg, svcs, cfg)
	SetupCartRoutes(rg, svcs, cfg)
	SetupOrderRoutes(rg, svcs, cfg, log)
	SetupSystemRoutes(rg, svcs, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, svcs *handlers.Services, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(svcs, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
		}
	}
}

// SetupCatalogRoutes sets up restaurant, menu and product routes
func SetupCatalogRoutes(rg *gin.RouterGroup, svcs *handlers.Services, cfg *config.Config) {
	restaurantHandler := handlers.NewRestaurantHandler(svcs)
	productHandler := handlers.NewProductHandler(svcs)

	restaurants := rg.Group("/restaurants")
	restaurants.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		restaurants.GET("", restaurantHandler.GetRestaurants)
		restaurants.GET("/:id", restaurantHandler.GetRestaurant)
		restaurants.GET("/:id/menu", restaurantHandler.GetRestaurantMenu)
	}

	menu := rg.Group("/menu")
	menu.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		menu.GET("", restaurantHandler.GetMenu)
	}

	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}
}

// SetupCartRoutes sets up cart related routes. Cart routes work with
// guest sessions, auth is optional.
func SetupCartRoutes(rg *gin.RouterGroup, svcs *handlers.Services, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(svcs)

	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}
}

// SetupOrderRoutes sets up checkout and order tracking routes
func SetupOrderRoutes(rg *gin.RouterGroup, svcs *handlers.Services, cfg *config.Config, log *logrus.Logger) {
	orderHandler := handlers.NewOrderHandler(svcs, log)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg)) // All order routes require authentication
	{
		orders.GET("", orderHandler.GetOrders)
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/current", orderHandler.GetCurrentOrder)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/cancel", orderHandler.CancelOrder)
		orders.GET("/:id/receipt", orderHandler.GetReceipt)

		// Manual progression is restricted to admin and rider tooling
		staff := orders.Group("")
		staff.Use(middleware.StaffMiddleware())
		{
			staff.PUT("/:id/advance", orderHandler.AdvanceOrder)
		}
	}
}

// SetupSystemRoutes sets up the platform condition routes
func SetupSystemRoutes(rg *gin.RouterGroup, svcs *handlers.Services, cfg *config.Config) {
	systemHandler := handlers.NewSystemHandler(svcs)

	system := rg.Group("/system")
	{
		// Conditions are public so clients can explain surcharges
		system.GET("/conditions", systemHandler.GetConditions)
		system.GET("/quote", systemHandler.GetQuote)

		// Toggling conditions requires admin privileges
		admin := system.Group("")
		admin.Use(middleware.AuthMiddleware(cfg))
		admin.Use(middleware.AdminMiddleware())
		{
			admin.PUT("/conditions", systemHandler.UpdateConditions)
		}
	}
}
