package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/identity"
	inventoryapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/inventory"
	invoiceapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/invoice"
	partnerapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/partner"
	reportapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/report"
	settingsapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/settings"
	shoppingapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/shopping"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/auth"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/config"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/logger"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/pdf"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/persistence"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/storage"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/telemetry"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/handler"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/middleware"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/shashia401/FRESH-CHOICE-sub000/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Fresh Choice Inventory API
//	@version		1.0
//	@description	Inventory, vendor, invoice and reorder management for the Fresh Choice store.

//	@contact.name	Fresh Choice
//	@contact.url	https://github.com/shashia401/FRESH-CHOICE-sub000

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Fresh Choice backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	rootCtx := context.Background()

	// Tracing and profiling come up first so the database plugin sees the global provider
	tracer, err := telemetry.NewTracerProvider(rootCtx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiler.Enabled,
		ServerAddress:     cfg.Profiler.ServerAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Profiler.BasicAuthUser,
		BasicAuthPassword: cfg.Profiler.BasicAuthPassword,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tracer.IsEnabled() {
		tracer.EnableSpanProfiles()
	}

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	// Initialize repositories
	itemRepo := persistence.NewGormInventoryRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	shoppingRepo := persistence.NewGormShoppingRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Token revocation lives in Redis when configured, in process memory otherwise
	blacklist := auth.NewTokenBlacklist(cfg.Redis, log)
	if closer, ok := blacklist.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}
	jwtService := auth.NewJWTService(cfg.JWT)

	// Metrics recorders stay untyped nil when metrics are off
	var (
		metrics       *telemetry.Metrics
		importMetrics handler.ImportRecorder
		authMetrics   middleware.AuthFailureRecorder
	)
	if cfg.Telemetry.MetricsEnabled {
		metrics = telemetry.NewMetrics()
		importMetrics = metrics
		authMetrics = metrics
	}

	// Initialize application services
	importCfg := inventoryapp.ImportConfig{
		MaxErrors: cfg.Import.MaxErrors,
		MaxRows:   cfg.Import.MaxRows,
	}
	settingsService := settingsapp.NewSettingsService(settingsRepo, itemRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.AuthServiceConfig{
		AllowRegistration: cfg.Auth.AllowRegistration,
	}, log)
	userService := identityapp.NewUserService(userRepo, blacklist, cfg.JWT.RefreshTokenExpiration, log)
	inventoryService := inventoryapp.NewInventoryService(itemRepo, vendorRepo, settingsService, importCfg, log)
	vendorService := partnerapp.NewVendorService(vendorRepo, itemRepo, invoiceRepo, settingsService, importCfg, log)
	invoiceService := invoiceapp.NewInvoiceService(
		invoiceRepo, vendorRepo, persistence.NewGormTransactionScope(db.DB), settingsService, importCfg, log,
	)
	shoppingService := shoppingapp.NewShoppingService(shoppingRepo, itemRepo, settingsService, log)

	var reportOpts []reportapp.Option
	if cfg.PDF.Enabled {
		templates, err := pdf.NewTemplateEngine()
		if err != nil {
			log.Fatal("Failed to parse report templates", zap.Error(err))
		}
		chrome := pdf.NewChromedpRenderer(pdf.ChromedpConfig{
			DefaultTimeout: cfg.PDF.Timeout,
			RemoteURL:      cfg.PDF.RemoteURL,
			NoSandbox:      cfg.PDF.NoSandbox,
			Logger:         log,
		})
		defer func() {
			_ = chrome.Close()
		}()
		reportOpts = append(reportOpts, reportapp.WithPDFRenderer(pdf.NewReportRenderer(templates, chrome, pdf.PaperLetter)))
		log.Info("PDF report export enabled", zap.Bool("remote_chrome", cfg.PDF.RemoteURL != ""))
	}
	if cfg.Storage.Enabled {
		store, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		bucketCtx, cancel := context.WithTimeout(rootCtx, 15*time.Second)
		if err := store.EnsureBucket(bucketCtx); err != nil {
			log.Warn("Report bucket is not ready, archives will fail until it is", zap.Error(err))
		}
		cancel()
		reportOpts = append(reportOpts, reportapp.WithArchive(store, cfg.Storage.PresignExpiration))
		log.Info("Report archiving enabled", zap.String("bucket", store.Bucket()))
	}
	reportService := reportapp.NewReportService(reportRepo, itemRepo, settingsService, log, reportOpts...)

	if metrics != nil {
		collector := telemetry.NewInventoryCollector(func(ctx context.Context) (telemetry.InventoryStats, error) {
			d, err := reportService.Dashboard(ctx)
			if err != nil {
				return telemetry.InventoryStats{}, err
			}
			return telemetry.InventoryStats{
				Items:           d.Inventory.TotalItems,
				Units:           d.Inventory.TotalUnits,
				CostValue:       d.Inventory.CostValue.InexactFloat64(),
				LowStock:        d.Inventory.LowStockCount,
				Expiring:        d.Inventory.ExpiringCount,
				PendingShopping: d.PendingShopping,
			}, nil
		}, log)
		if err := metrics.Register(collector); err != nil {
			log.Fatal("Failed to register inventory collector", zap.Error(err))
		}
	}

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authService, authMetrics),
		Users:     handler.NewUserHandler(userService),
		Inventory: handler.NewInventoryHandler(inventoryService, importMetrics),
		Vendors:   handler.NewVendorHandler(vendorService, importMetrics),
		Invoices:  handler.NewInvoiceHandler(invoiceService, importMetrics),
		Shopping:  handler.NewShoppingHandler(shoppingService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Reports:   handler.NewReportHandler(reportService),
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxy list", zap.Error(err))
	}

	// Middleware stack: recovery first, then request identity, logging and tracing
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracer.IsEnabled(),
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.HTTPMetrics(metrics))
	profilingCfg := middleware.DefaultProfilingConfig()
	profilingCfg.Enabled = profiler.IsEnabled()
	engine.Use(middleware.ProfilingWithConfig(profilingCfg))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimitWithUploads(cfg.HTTP.MaxBodySize, cfg.HTTP.MaxUploadSize))

	var limiters []*middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		limiters = append(limiters, limiter)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	jwtAuth := middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Metrics:        authMetrics,
		Logger:         log,
	})
	guards := router.Guards{
		Auth:         jwtAuth,
		OptionalAuth: middleware.OptionalJWTAuthMiddleware(jwtService),
		Admin:        middleware.RequireAdmin(),
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		limiters = append(limiters, authLimiter)
		guards.AuthRateLimit = middleware.RateLimit(authLimiter)
	}

	// Probes and metrics sit outside the versioned API
	system := handler.NewSystemHandler(db, version)
	engine.GET("/health", system.Health)
	engine.GET("/ready", system.Ready)
	if metrics != nil {
		engine.GET(cfg.Telemetry.MetricsPath, gin.WrapH(metrics.Handler()))
	}

	// Swagger documentation
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, jwtAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// API routes
	r := router.NewRouter(engine, router.WithMiddleware(middleware.Secure()))
	for _, g := range router.APIGroups(handlers, guards) {
		r.Register(g)
	}
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	for _, l := range limiters {
		l.Stop()
	}
	if err := tracer.Shutdown(ctx); err != nil {
		log.Error("Failed to flush traces", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Failed to stop profiler", zap.Error(err))
	}

	log.Info("Server exited")
}
