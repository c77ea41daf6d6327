package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/printshop/backend/internal/application/billing"
	ledgerapp "github.com/printshop/backend/internal/application/ledger"
	"github.com/printshop/backend/internal/infrastructure/config"
	"github.com/printshop/backend/internal/infrastructure/logger"
	"github.com/printshop/backend/internal/infrastructure/persistence"
	"github.com/printshop/backend/internal/infrastructure/rendering"
	"github.com/printshop/backend/internal/interfaces/http/handler"
	"github.com/printshop/backend/internal/interfaces/http/middleware"
	"github.com/printshop/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			Printshop Backend API
//	@version		1.0
//	@description	Order ledger and invoicing API for a print shop back office

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting printshop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories and units of work
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	factorRepo := persistence.NewGormFactorRepository(db.DB)
	ledgerUow := persistence.NewGormLedgerUnitOfWork(db.DB)
	billingUow := persistence.NewGormBillingUnitOfWork(db.DB)

	// Invoice rendering. A missing font disables invoice generation but the
	// rest of the API stays up.
	invoiceTemplate, err := rendering.NewInvoiceTemplate(rendering.InvoiceTemplateConfig{
		ShopTitle:     cfg.Invoice.ShopTitle,
		ContactPhone:  cfg.Invoice.ContactPhone,
		IBAN:          cfg.Invoice.IBAN,
		CardNumber:    cfg.Invoice.CardNumber,
		AccountHolder: cfg.Invoice.AccountHolder,
		FontPath:      cfg.Invoice.FontPath,
	})
	if err != nil {
		log.Warn("Invoice template unavailable, invoice generation disabled", zap.Error(err))
		invoiceTemplate = nil
	}

	renderer := rendering.NewChromedpRenderer(&rendering.ChromedpConfig{
		DefaultTimeout: cfg.Invoice.RenderTimeout,
		RemoteURL:      cfg.Invoice.ChromeURL,
		NoSandbox:      cfg.Invoice.NoSandbox,
		MarginMM:       cfg.Invoice.MarginMM,
		Logger:         log,
	})
	defer func() {
		_ = renderer.Close()
	}()

	// Application services
	companyService := ledgerapp.NewCompanyService(companyRepo, orderRepo, ledgerUow)
	orderService := ledgerapp.NewOrderService(orderRepo, companyRepo, ledgerUow)
	invoiceService := billingapp.NewInvoiceService(orderRepo, companyRepo, billingUow, invoiceTemplate, renderer, log)
	factorService := billingapp.NewFactorService(factorRepo, companyRepo)
	exportService := billingapp.NewExportService(orderRepo, companyRepo)

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewCompanyHandler(companyService))
	r.Register(handler.NewOrderHandler(orderService))
	r.Register(handler.NewInvoiceHandler(invoiceService))
	r.Register(handler.NewFactorHandler(factorService))
	r.Register(handler.NewExportHandler(exportService))
	r.Register(handler.NewSystemHandler(db))
	r.Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
