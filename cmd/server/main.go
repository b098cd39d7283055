package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"

	fittingapp "github.com/tailorbase/backend/internal/application/fitting"
	fulfillmentapp "github.com/tailorbase/backend/internal/application/fulfillment"
	notificationapp "github.com/tailorbase/backend/internal/application/notification"
	"github.com/tailorbase/backend/internal/infrastructure/cache"
	"github.com/tailorbase/backend/internal/infrastructure/config"
	"github.com/tailorbase/backend/internal/infrastructure/i18n"
	"github.com/tailorbase/backend/internal/infrastructure/logger"
	"github.com/tailorbase/backend/internal/infrastructure/mail"
	"github.com/tailorbase/backend/internal/infrastructure/persistence"
	"github.com/tailorbase/backend/internal/infrastructure/telemetry"
	"github.com/tailorbase/backend/internal/infrastructure/upstream"
	"github.com/tailorbase/backend/internal/interfaces/http/handler"
	"github.com/tailorbase/backend/internal/interfaces/http/middleware"
	"github.com/tailorbase/backend/internal/interfaces/http/router"
)

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
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting TailorBase Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize OpenTelemetry tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.DB.Use(otelgorm.NewPlugin(otelgorm.WithDBName(cfg.Database.DBName))); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	lineRepo := persistence.NewGormOrderStatusLineRepository(db.DB)
	rollupRepo := persistence.NewGormOrderStatusRollupRepository(db.DB)
	profileRepo := persistence.NewGormMeasurementProfileRepository(db.DB)
	feedbackRepo := persistence.NewGormMeasurementFeedbackRepository(db.DB)

	// Upstream commerce platform reader with Redis snapshot cache in front.
	// Redis being down degrades to an in-process cache rather than failing
	// startup.
	shopifyCfg := upstream.NewShopifyConfig(cfg.Upstream.BaseURL, cfg.Upstream.AccessToken)
	shopifyCfg.APIVersion = cfg.Upstream.APIVersion
	shopifyCfg.Timeout = cfg.Upstream.RequestTimeout
	shopifyCfg.PageSize = cfg.Upstream.PageSize
	shopifyAdapter, err := upstream.NewShopifyAdapter(shopifyCfg)
	if err != nil {
		log.Fatal("Failed to configure upstream order source", zap.Error(err))
	}

	cacheFactory := cache.NewOrderCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithSnapshotTTL(cfg.Upstream.CacheTTL),
		cache.WithInMemoryFallback(true),
	)
	snapshotCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create order snapshot cache", zap.Error(err))
	}
	orderReader := cache.NewCachingOrderReader(shopifyAdapter, snapshotCache, log)

	// Outbound mail
	sender := mail.NewSMTPSender(cfg.Mail, log)
	renderer, err := mail.NewEmbeddedRenderer()
	if err != nil {
		log.Fatal("Failed to load mail templates", zap.Error(err))
	}
	composer := notificationapp.NewComposer(sender, renderer, cfg.Mail.FromAddress, cfg.Feedback.FormBaseURL, log)

	// Initialize application services
	rollupPolicy := fulfillmentapp.NewLastWriterWinsRollup(rollupRepo)
	transitionService := fulfillmentapp.NewTransitionService(lineRepo, rollupPolicy, composer, log)
	bootstrapper := fulfillmentapp.NewContextBootstrapper(lineRepo)
	queryService := fulfillmentapp.NewLedgerQueryService(lineRepo, rollupRepo, bootstrapper, orderReader, log)
	measurementService := fittingapp.NewMeasurementService(profileRepo, log)
	feedbackService := fittingapp.NewFeedbackService(feedbackRepo, profileRepo, lineRepo, transitionService, log)

	translator, err := i18n.NewTranslator()
	if err != nil {
		log.Fatal("Failed to build message catalog", zap.Error(err))
	}

	// Initialize handlers
	orderStatusHandler := handler.NewOrderStatusHandler(transitionService, queryService, orderReader, translator)
	measurementHandler := handler.NewMeasurementHandler(measurementService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	systemHandler := handler.NewSystemHandler()

	// Set gin mode based on environment
	switch cfg.App.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	// Register custom validators (the "measurement" binding rule)
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	// Middleware chain
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	// Health check endpoint
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.GET("", orderStatusHandler.ListOrders)
	orderRoutes.GET("/:orderId", orderStatusHandler.GetOrderDetail)
	orderRoutes.POST("/:orderId/lines", orderStatusHandler.PlaceLines)
	orderRoutes.GET("/:orderId/lines", orderStatusHandler.GetLedger)
	orderRoutes.GET("/:orderId/status", orderStatusHandler.GetRollup)
	orderRoutes.GET("/:orderId/feedback", feedbackHandler.ListByOrder)

	lineRoutes := router.NewDomainGroup("order-lines", "/order-lines")
	lineRoutes.GET("/:id", orderStatusHandler.GetLine)
	lineRoutes.POST("/:id/transition", orderStatusHandler.UpdateLineStatus)

	customerRoutes := router.NewDomainGroup("customers", "/customers")
	customerRoutes.PUT("/:customerId/measurements", measurementHandler.SaveProfile)
	customerRoutes.GET("/:customerId/measurements", measurementHandler.ListProfiles)
	customerRoutes.GET("/:customerId/measurements/:sizeName", measurementHandler.GetProfileBySize)

	measurementRoutes := router.NewDomainGroup("measurements", "/measurements")
	measurementRoutes.GET("/:id", measurementHandler.GetProfile)

	feedbackRoutes := router.NewDomainGroup("feedback", "/feedback")
	feedbackRoutes.POST("", feedbackHandler.Submit)
	feedbackRoutes.GET("/:id", feedbackHandler.Get)
	feedbackRoutes.PUT("/:id", feedbackHandler.Approve)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(orderRoutes).
		Register(lineRoutes).
		Register(customerRoutes).
		Register(measurementRoutes).
		Register(feedbackRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
