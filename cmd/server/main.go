package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/logger"
	"storefront/internal/middleware"
	"storefront/internal/migrations"
	"storefront/internal/redis"
	"storefront/internal/repository"
	"storefront/internal/services"
	"storefront/pkg/openai"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer log.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Initialize(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := migrations.RunMigrations(db, log); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	aiClient := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if !aiClient.Configured() {
		log.Warn("OPENAI_API_KEY not set, chat is disabled")
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize repositories
	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	cartRepo := repository.NewCartRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo, jwtService)
	checkoutService := services.NewCheckoutService(tx, productRepo, orderRepo, orderItemRepo)
	orderService := services.NewOrderService(tx, orderRepo, orderItemRepo)
	cartService := services.NewCartService(tx, cartRepo, productRepo)
	catalogService := services.NewCatalogService(categoryRepo, productRepo, redisClient)
	reviewService := services.NewReviewService(tx, reviewRepo, productRepo)
	chatService := services.NewChatService(aiClient, redisClient, chatRepo, productRepo, cfg.CacheTTL, cfg.ChatHistoryTTL)

	chatLimiter := middleware.NewRateLimiter(cfg.ChatRateLimit, cfg.ChatRateBurst)
	go chatLimiter.Run(ctx)

	middleware.SetupValidator()

	router := gin.New()
	router.Use(middleware.RequestID(), logger.GinMiddleware(log), logger.Recovery(log))

	registerRoutes(router, routeDeps{
		jwtService:  jwtService,
		chatLimiter: chatLimiter,
		users:       handlers.NewUserHandler(userService),
		orders:      handlers.NewOrderHandler(checkoutService, orderService),
		cart:        handlers.NewCartHandler(cartService),
		catalog:     handlers.NewCatalogHandler(catalogService),
		reviews:     handlers.NewReviewHandler(reviewService),
		chat:        handlers.NewChatHandler(chatService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("port", cfg.ServerPort), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}
