package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/judn/backend/internal/application/catalog"
	crmapp "github.com/judn/backend/internal/application/crm"
	identityapp "github.com/judn/backend/internal/application/identity"
	marketingapp "github.com/judn/backend/internal/application/marketing"
	orderapp "github.com/judn/backend/internal/application/order"
	reportapp "github.com/judn/backend/internal/application/report"
	storefrontapp "github.com/judn/backend/internal/application/storefront"
	"github.com/judn/backend/internal/domain/order"
	"github.com/judn/backend/internal/infrastructure/auth"
	"github.com/judn/backend/internal/infrastructure/cache"
	"github.com/judn/backend/internal/infrastructure/config"
	"github.com/judn/backend/internal/infrastructure/event"
	"github.com/judn/backend/internal/infrastructure/logger"
	"github.com/judn/backend/internal/infrastructure/persistence"
	"github.com/judn/backend/internal/interfaces/http/handler"
	"github.com/judn/backend/internal/interfaces/http/middleware"
	"github.com/judn/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting JUDN backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
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
	log.Info("Database connected")

	// Redis, shared by the token blacklist, reset tokens, checkout
	// idempotency and the cart store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
	}
	log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	campaignRepo := persistence.NewGormCampaignRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)

	// Auth infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	tokenBlacklist := auth.NewRedisTokenBlacklistWithClient(redisClient)
	resetTokens := auth.NewRedisResetTokenStore(redisClient)

	// Storefront caches
	idempotencyStore := cache.NewRedisIdempotencyStore(redisClient)
	cartStore := cache.NewRedisCartStore(redisClient)

	// Application services
	orderService := orderapp.NewService(orderRepo)
	productService := catalogapp.NewService(productRepo)
	customerService := crmapp.NewService(customerRepo)
	campaignService := marketingapp.NewService(campaignRepo)
	storefrontService := storefrontapp.NewService(orderRepo, customerRepo, idempotencyStore, cartStore, cfg.Storefront, log)
	reportService := reportapp.NewService(orderRepo, customerRepo, productRepo, campaignRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, tokenBlacklist, resetTokens, log)
	userService := identityapp.NewUserService(userRepo, tokenBlacklist, log)
	activityService := identityapp.NewActivityService(activityRepo, log)

	// Event bus and the SSE broadcaster for the admin order feed
	eventBus := event.NewBus(log)
	orderBroadcaster := event.NewBroadcaster(log,
		order.EventTypeOrderCreated,
		order.EventTypeOrderStatusChanged,
	)
	eventBus.Subscribe(orderBroadcaster, orderBroadcaster.EventTypes()...)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	orderService.SetEventPublisher(eventBus)
	productService.SetEventPublisher(eventBus)
	customerService.SetEventPublisher(eventBus)
	campaignService.SetEventPublisher(eventBus)
	storefrontService.SetEventPublisher(eventBus)
	authService.SetEventPublisher(eventBus)
	userService.SetEventPublisher(eventBus)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

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
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	var authRateLimit gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRateLimit = middleware.RateLimit(authLimiter)
	}

	handlers := router.Handlers{
		System:      handler.NewSystemHandler(db, redisClient),
		Auth:        handler.NewAuthHandler(authService),
		Order:       handler.NewOrderHandler(orderService),
		OrderStream: handler.NewOrderStreamHandler(orderBroadcaster, log),
		Product:     handler.NewProductHandler(productService),
		Customer:    handler.NewCustomerHandler(customerService),
		Campaign:    handler.NewCampaignHandler(campaignService),
		User:        handler.NewUserHandler(userService),
		Activity:    handler.NewActivityHandler(activityService),
		Report:      handler.NewReportHandler(reportService),
		Storefront:  handler.NewStorefrontHandler(storefrontService),
	}
	router.Setup(engine, handlers, router.Middleware{
		JWTAuth: middleware.JWTAuth(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: tokenBlacklist,
			Logger:         log,
		}),
		ActivityLog:   middleware.ActivityLog(activityService),
		AuthRateLimit: authRateLimit,
	})

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
