package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billmaster-api/internal/config"
	"github.com/sangkips/billmaster-api/internal/domain/enum"
	domainRepo "github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/internal/presentation/http/handler"
	"github.com/sangkips/billmaster-api/internal/presentation/http/middleware"
	"github.com/sangkips/billmaster-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Party    *handler.PartyHandler
	Sale     *handler.SaleHandler
	Purchase *handler.PurchaseHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	handler.UseJSONFieldNames()

	router := gin.New()

	// Global middleware
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", h.Health.Health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Health)

		// Public routes, limited by client IP
		auth := v1.Group("/auth")
		if deps.RateLimiter != nil {
			auth.Use(deps.RateLimiter.Middleware())
		}
		auth.POST("/login", h.Auth.Login)

		// Protected routes, limited by user
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	admin := middleware.RequireRole(enum.UserRoleAdmin)

	protected.GET("/auth/me", h.Auth.Profile)

	users := protected.Group("/users", admin)
	{
		users.GET("", h.Auth.ListUsers)
		users.POST("", h.Auth.CreateUser)
	}

	registerProductRoutes(protected, h, admin)
	registerPartyRoutes(protected, h, admin)
	registerSaleRoutes(protected, h, deps)

	purchases := protected.Group("/purchases", admin)
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", h.Purchase.Record)
		purchases.GET("/:id", h.Purchase.Get)
	}

	protected.GET("/printer/status", h.Sale.PrinterStatus)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers, admin gin.HandlerFunc) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", admin, h.Product.Create)
		products.PUT("/:id", admin, h.Product.Update)
		products.DELETE("/:id", admin, h.Product.Delete)
		products.POST("/:id/stock", admin, h.Product.AdjustStock)
		products.POST("/import", admin, h.Product.Import)
		products.POST("/reset", admin, h.Product.Reset)
	}
}

func registerPartyRoutes(protected *gin.RouterGroup, h *Handlers, admin gin.HandlerFunc) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Party.ListCustomers)
		customers.POST("", h.Party.CreateCustomer)
		customers.GET("/:id", h.Party.GetCustomer)
		customers.PUT("/:id", h.Party.UpdateCustomer)
		customers.DELETE("/:id", admin, h.Party.DeleteCustomer)
	}

	suppliers := protected.Group("/suppliers", admin)
	{
		suppliers.GET("", h.Party.ListSuppliers)
		suppliers.POST("", h.Party.CreateSupplier)
		suppliers.GET("/:id", h.Party.GetSupplier)
		suppliers.PUT("/:id", h.Party.UpdateSupplier)
		suppliers.DELETE("/:id", h.Party.DeleteSupplier)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	billing := protected.Group("/billing")
	{
		billing.POST("/quote", h.Sale.Quote)
		billing.GET("/next-invoice", h.Sale.NextInvoice)
	}

	idempotent := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Logger: deps.Logger,
	})

	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", idempotent, h.Sale.Commit)
		sales.GET("/number/:number", h.Sale.GetByNumber)
		sales.GET("/:id", h.Sale.Get)
		sales.GET("/:id/receipt", h.Sale.Receipt)
		sales.GET("/:id/invoice.pdf", h.Sale.InvoicePDF)
		sales.POST("/:id/print", h.Sale.Print)
	}
}
