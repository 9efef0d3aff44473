package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/pgnest/backend/internal/application/billing"
	propertyapp "github.com/pgnest/backend/internal/application/property"
	"github.com/pgnest/backend/internal/infrastructure/auth"
	"github.com/pgnest/backend/internal/infrastructure/cache"
	"github.com/pgnest/backend/internal/infrastructure/config"
	"github.com/pgnest/backend/internal/infrastructure/logger"
	"github.com/pgnest/backend/internal/infrastructure/notification"
	"github.com/pgnest/backend/internal/infrastructure/persistence"
	"github.com/pgnest/backend/internal/infrastructure/scheduler"
	"github.com/pgnest/backend/internal/interfaces/http/handler"
	"github.com/pgnest/backend/internal/interfaces/http/middleware"
	"github.com/pgnest/backend/internal/interfaces/http/router"
)

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
		_ = logger.Sync(log)
	}()

	log.Info("Starting PGnest Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// SQL goes through the same zap stream as everything else
	gormLog := logger.NewQueryLogger(log, cfg.Log.Level)

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

	// Initialize repositories
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	roomRepo := persistence.NewGormRoomRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	rentPaymentRepo := persistence.NewGormRentPaymentRepository(db.DB)
	currentBillRepo := persistence.NewGormCurrentBillRepository(db.DB)

	// Pending-payments report cache: Redis when enabled and reachable, an
	// in-process cache otherwise, nil when disabled (always recompute)
	var reportCache billingapp.ReportCache
	if cfg.ReportCache.Enabled {
		redisCache, err := cache.NewRedisReportCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.ReportCache.TTL, log)
		if err != nil {
			log.Warn("Redis unavailable, using in-memory report cache", zap.Error(err))
			reportCache = cache.NewInMemoryReportCache(cfg.ReportCache.TTL)
		} else {
			reportCache = redisCache
			log.Info("Redis report cache enabled", zap.Duration("ttl", cfg.ReportCache.TTL))
		}
	}

	// Outbound reminder notifications (webhook or log, per config)
	notifier := notification.New(cfg.Notification, log)

	// Initialize application services
	locationService := propertyapp.NewLocationService(locationRepo, log)
	roomService := propertyapp.NewRoomService(roomRepo, log)
	tenantService := propertyapp.NewTenantService(tenantRepo, roomRepo, log)
	billService := billingapp.NewBillService(roomRepo, tenantRepo, currentBillRepo, reportCache, log)
	pendingPaymentService := billingapp.NewPendingPaymentService(tenantRepo, roomRepo, rentPaymentRepo, reportCache, log)
	reminderService := billingapp.NewReminderService(locationRepo, pendingPaymentService, notifier, log)

	// Token validation and refresh; user management lives in an external system
	jwtService := auth.NewJWTService(cfg.JWT)
	var tokenBlacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		tokenBlacklist = redisBlacklist
	}

	// Reminder scheduler. Constructed even when disabled so the manual trigger
	// endpoint can report a clean not-running state.
	reminderScheduler := scheduler.NewReminderCronScheduler(cfg.Scheduler, reminderService, log)
	if cfg.Scheduler.Enabled {
		if err := reminderScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start reminder scheduler", zap.Error(err))
		}
		defer func() {
			if err := reminderScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping reminder scheduler", zap.Error(err))
			}
		}()
		log.Info("Reminder scheduler started",
			zap.Int("due_soon_hour", cfg.Scheduler.DueSoonHour),
			zap.Int("pending_hour", cfg.Scheduler.PendingHour),
			zap.Int("overdue_hour", cfg.Scheduler.OverdueHour),
		)
	}

	// Initialize HTTP handlers
	locationHandler := handler.NewLocationHandler(locationService)
	roomHandler := handler.NewRoomHandler(roomService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	currentBillHandler := handler.NewCurrentBillHandler(billService)
	pendingPaymentHandler := handler.NewPendingPaymentHandler(pendingPaymentService)
	reminderHandler := handler.NewReminderHandler(reminderScheduler)
	authHandler := handler.NewAuthHandler(jwtService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.RequestLogging(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoints. The root one pings the database; the versioned
	// one is a plain liveness probe.
	engine.GET("/health", healthHandler(db))
	engine.GET("/api/v1/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// JWT authentication on everything except health and token refresh
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = tokenBlacklist
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Location scoping: managers are pinned to their token's property, owners
	// pick one per request via the X-PG-ID header
	locationConfig := middleware.DefaultLocationConfig()
	locationConfig.Logger = log
	r.Use(middleware.LocationMiddlewareWithConfig(locationConfig))

	// Auth routes. Refresh is public (skipped by the JWT middleware), so it
	// gets its own tight per-IP limiter.
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.Use(middleware.AuthRateLimit(middleware.NewRateLimiter(10, time.Minute)))
	authRoutes.POST("/refresh", authHandler.Refresh)

	// Location (PG property) management. Not scoped by X-PG-ID: locations are
	// the scope.
	locationRoutes := router.NewDomainGroup("locations", "/locations")
	locationRoutes.POST("", locationHandler.Create)
	locationRoutes.GET("", locationHandler.List)
	locationRoutes.GET("/:id", locationHandler.GetByID)
	locationRoutes.PATCH("/:id", locationHandler.Update)
	locationRoutes.DELETE("/:id", locationHandler.Delete)

	// Room management
	roomRoutes := router.NewDomainGroup("rooms", "/rooms")
	roomRoutes.POST("", roomHandler.Create)
	roomRoutes.GET("", roomHandler.List)
	roomRoutes.GET("/:id", roomHandler.GetByID)
	roomRoutes.PATCH("/:id", roomHandler.Update)
	roomRoutes.DELETE("/:id", roomHandler.Delete)

	// Tenant management plus the pending-payments reconciliation views
	tenantRoutes := router.NewDomainGroup("tenants", "/tenants")
	tenantRoutes.POST("", tenantHandler.Create)
	tenantRoutes.GET("", tenantHandler.List)
	tenantRoutes.GET("/pending-payments", pendingPaymentHandler.Report)
	tenantRoutes.GET("/pending-payments/due-tomorrow/list", pendingPaymentHandler.DueTomorrow)
	tenantRoutes.GET("/pending-payments/overdue/list", pendingPaymentHandler.Overdue)
	tenantRoutes.GET("/pending-payments/:id", pendingPaymentHandler.TenantView)
	tenantRoutes.GET("/:id", tenantHandler.GetByID)
	tenantRoutes.PATCH("/:id", tenantHandler.Update)
	tenantRoutes.DELETE("/:id", tenantHandler.Delete)

	// Ad-hoc bills (electricity, maintenance and other charges on top of rent)
	billRoutes := router.NewDomainGroup("current-bills", "/current-bills")
	billRoutes.POST("", currentBillHandler.Create)
	billRoutes.GET("", currentBillHandler.List)
	billRoutes.GET("/by-month/:month/:year", currentBillHandler.ListByMonth)
	billRoutes.GET("/:id", currentBillHandler.GetByID)
	billRoutes.PATCH("/:id", currentBillHandler.Update)
	billRoutes.DELETE("/:id", currentBillHandler.Delete)

	// Manual reminder control
	reminderRoutes := router.NewDomainGroup("reminders", "/reminders")
	reminderRoutes.POST("/trigger", reminderHandler.Trigger)
	reminderRoutes.GET("/status", reminderHandler.Status)

	// System info
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	r.Register(authRoutes).
		Register(locationRoutes).
		Register(roomRoutes).
		Register(tenantRoutes).
		Register(billRoutes).
		Register(reminderRoutes).
		Register(systemRoutes)

	// Setup routes
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

// healthHandler returns a handler for the database-backed health check
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.FromGinContext(c)
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
