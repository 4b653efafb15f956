package app

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Kiash254/pos-terminal/internal/api/auth"
	"github.com/Kiash254/pos-terminal/internal/api/catalog"
	"github.com/Kiash254/pos-terminal/internal/api/checkout"
	"github.com/Kiash254/pos-terminal/internal/api/customers"
	"github.com/Kiash254/pos-terminal/internal/api/sales"
	"github.com/Kiash254/pos-terminal/internal/backend"
	"github.com/Kiash254/pos-terminal/internal/cart"
	"github.com/Kiash254/pos-terminal/internal/config"
	"github.com/Kiash254/pos-terminal/internal/middleware"
	"github.com/Kiash254/pos-terminal/internal/session"
	"github.com/Kiash254/pos-terminal/pkg/logger"
)

// Deps bundles the core components the router exposes to the UI.
type Deps struct {
	Sessions  *session.Manager
	Cart      *cart.Engine
	Catalog   *backend.CatalogService
	Customers *backend.CustomerService
	Sales     *backend.SalesService
}

// SetupRouter wires the local gateway the POS front-end talks to. The
// heavy lifting lives in the session manager, the cart engine and the
// resilient backend client; routes here are a thin boundary.
func SetupRouter(cfg *config.Config, d Deps, l logger.Logger) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware
	r.Use(gin.Logger())
	r.Use(middleware.Recovery(l))
	r.Use(middleware.ErrorHandler(l))
	// CORS for the front-end dev server
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.UIOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "up",
		})
	})

	authHandler := auth.NewHandler(d.Sessions, l)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/logout", authHandler.Logout)
	}
	// The UI polls this to decide between login screen and sales floor.
	r.GET("/session", authHandler.Session)

	checkoutHandler := checkout.NewHandler(d.Cart, d.Catalog, d.Sales, l)
	catalogHandler := catalog.NewHandler(d.Catalog, l)
	customerHandler := customers.NewHandler(d.Customers, l)
	salesHandler := sales.NewHandler(d.Sales, l)

	protected := r.Group("")
	protected.Use(middleware.RequireSession(d.Sessions))
	{
		protected.PUT("/profile", authHandler.UpdateProfile)

		cartGroup := protected.Group("/cart")
		{
			cartGroup.GET("", checkoutHandler.GetCart)
			cartGroup.DELETE("", checkoutHandler.ClearCart)
			cartGroup.POST("/items", checkoutHandler.AddItem)
			cartGroup.PUT("/items/:productId", checkoutHandler.UpdateQuantity)
			cartGroup.DELETE("/items/:productId", checkoutHandler.RemoveItem)
			cartGroup.GET("/summary", checkoutHandler.Summary)
			cartGroup.PUT("/customer", checkoutHandler.SetCustomer)
			cartGroup.PUT("/payment", checkoutHandler.SetPaymentMethod)
			cartGroup.PUT("/notes", checkoutHandler.SetNotes)
			cartGroup.POST("/checkout", checkoutHandler.Submit)
		}

		products := protected.Group("/products")
		{
			products.GET("", catalogHandler.ListProducts)
			products.POST("", catalogHandler.CreateProduct)
			products.GET("/search", catalogHandler.SearchProducts)
			products.GET("/category/:categoryId", catalogHandler.ProductsByCategory)
			products.GET("/:id", catalogHandler.GetProduct)
			products.PUT("/:id", catalogHandler.UpdateProduct)
			products.DELETE("/:id", catalogHandler.DeleteProduct)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", catalogHandler.ListCategories)
			categories.POST("", catalogHandler.CreateCategory)
			categories.GET("/:id", catalogHandler.GetCategory)
			categories.PUT("/:id", catalogHandler.UpdateCategory)
			categories.DELETE("/:id", catalogHandler.DeleteCategory)
		}

		customersGroup := protected.Group("/customers")
		{
			customersGroup.GET("", customerHandler.List)
			customersGroup.POST("", customerHandler.Create)
			customersGroup.GET("/search", customerHandler.Search)
			customersGroup.GET("/:id", customerHandler.Get)
			customersGroup.PUT("/:id", customerHandler.Update)
			customersGroup.DELETE("/:id", customerHandler.Delete)
		}

		salesGroup := protected.Group("/sales")
		{
			salesGroup.GET("", salesHandler.List)
			salesGroup.GET("/:id", salesHandler.Get)
		}

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/stats", salesHandler.DashboardStats)
			dashboard.GET("/sales/daily", salesHandler.DailySales)
			dashboard.GET("/sales/weekly", salesHandler.WeeklySales)
			dashboard.GET("/sales/monthly", salesHandler.MonthlySales)
		}
	}

	return r
}
