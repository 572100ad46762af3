package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billmaster-api/internal/application/service"
	"github.com/sangkips/billmaster-api/internal/config"
	"github.com/sangkips/billmaster-api/internal/infrastructure/database"
	"github.com/sangkips/billmaster-api/internal/infrastructure/storage"
	"github.com/sangkips/billmaster-api/internal/presentation/http/handler"
	"github.com/sangkips/billmaster-api/internal/presentation/http/middleware"
	"github.com/sangkips/billmaster-api/internal/presentation/http/routes"
	"github.com/sangkips/billmaster-api/pkg/logger"
	"github.com/sangkips/billmaster-api/pkg/printer"
	"github.com/sangkips/billmaster-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding, cfg.App.Env != "production")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.EnvFileErr != nil {
		log.Debug("no .env file loaded, using environment only", zap.Error(cfg.EnvFileErr))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	repos, err := storage.Open(cfg, true, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.Error(err))
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Warn("failed to close storage", zap.Error(err))
		}
	}()

	// Seed default data
	if err := database.SeedDefaultData(context.Background(), repos.Products, repos.Users, cfg.Admin, log); err != nil {
		log.Warn("failed to seed default data", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	guard := service.NewStockGuard()
	authService := service.NewAuthService(repos.Users, jwtManager, log)
	productService := service.NewProductService(repos.Tx, guard, repos.Products, log)
	partyService := service.NewPartyService(repos.Customers, repos.Suppliers, log)
	checkoutService := service.NewCheckoutService(repos.Tx, guard, repos.Products, repos.Customers, repos.Sales, repos.Counters, log)
	saleService := service.NewSaleService(repos.Sales)
	purchaseService := service.NewPurchaseService(repos.Tx, guard, repos.Products, repos.Suppliers, repos.Purchases, log)
	receiptService := service.NewReceiptService(repos.Sales, thermalPrinter, cfg.Store, cfg.Printer, log)

	// Initialize handlers
	handlers := &routes.Handlers{
		Health:   handler.NewHealthHandler(cfg.App.Name, repos.Driver),
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(productService),
		Party:    handler.NewPartyHandler(partyService),
		Sale:     handler.NewSaleHandler(checkoutService, saleService, receiptService),
		Purchase: handler.NewPurchaseHandler(purchaseService),
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	defer rateLimiter.Close()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repos.Idempotency,
		RateLimiter:     rateLimiter,
		Logger:          log,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server",
			zap.String("app", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("storage", repos.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
}
