// @title Study Track API
// @version 1.0
// @description Achievement, streak, and leaderboard engine for the Study Track application.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"study-track/internal/adapter"
	"study-track/internal/adapter/evaluator"
	"study-track/internal/cache"
	"study-track/internal/config"
	"study-track/internal/database"
	"study-track/internal/domain"
	"study-track/internal/handler"
	"study-track/internal/logger"
	"study-track/internal/middleware"
	"study-track/internal/repository"
	"study-track/internal/service"
	"syscall"
	"time"

	_ "study-track/cmd/api/docs"

	"github.com/gofiber/swagger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	activityRepository := repository.NewSQLXActivityRepository(db)
	badgeRepository := repository.NewSQLXBadgeRepository(db)
	streakRepository := repository.NewSQLXStreakRepository(db)
	pointsRepository := repository.NewSQLXPointsRepository(db)
	userRepository := repository.NewSQLXUserRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize Redis. The leaderboard serves uncached pages when Redis is
	// unavailable, so a connection failure is not fatal.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Failed to connect to Redis, leaderboard caching disabled", zap.Error(err))
	} else {
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("RedisCacheAdapter initialized")
	}

	// Remote badge evaluator; an empty base URL disables the remote path
	// and evaluation always runs locally.
	var remoteEvaluator domain.RemoteEvaluator
	if cfg.Evaluator.BaseURL != "" {
		remoteEvaluator = evaluator.NewRemoteEvaluator(cfg.Evaluator.BaseURL, cfg.Evaluator.Timeout)
		appLogger.Info("Remote evaluator configured", zap.String("base_url", cfg.Evaluator.BaseURL))
	} else {
		appLogger.Info("No remote evaluator configured, running local evaluation only")
	}

	// Initialize services
	ruleSet := domain.DefaultRuleSet()
	metricsCollector := service.NewMetricsCollector(activityRepository, badgeRepository, userRepository, ruleSet)
	badgeService := service.NewBadgeService(badgeRepository, metricsCollector, txManager, ruleSet)
	evaluationService := service.NewEvaluationService(remoteEvaluator, badgeService, cfg.Evaluator.Timeout)
	streakService := service.NewStreakService(activityRepository, streakRepository)
	activityService := service.NewActivityService(activityRepository, streakService)
	pointsService := service.NewPointsService(pointsRepository, userRepository, activityRepository, badgeService, txManager)
	rankGenerator := adapter.NewSyntheticRankGenerator(cfg.Leaderboard.BasePoints, cfg.Leaderboard.Decrement, cfg.Leaderboard.Noise)
	leaderboardService := service.NewLeaderboardService(userRepository, rankGenerator, cacheAdapter, cfg.Leaderboard.CacheTTL)
	tokenService := service.NewTokenService(cfg.Auth)

	// Initialize handlers
	activityHandler := handler.NewActivityHandler(activityService)
	badgeHandler := handler.NewBadgeHandler(badgeService, evaluationService)
	streakHandler := handler.NewStreakHandler(streakService)
	pointsHandler := handler.NewPointsHandler(pointsService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	validationMiddleware := middleware.NewValidationMiddleware()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// Swagger handler
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	apiGroup := app.Group("/api")

	// Leaderboard is public; auth is optional so requests can be attributed
	apiGroup.Get("/leaderboard", middleware.OptionalAuth(tokenService), validationMiddleware.ValidateLeaderboardParams(), leaderboardHandler.GetLeaderboard)

	// Activity ingestion and evaluation (all protected)
	apiGroup.Post("/activities", middleware.Protected(tokenService), activityHandler.RecordActivity)
	apiGroup.Post("/activities/check", middleware.Protected(tokenService), badgeHandler.CheckBadges)
	apiGroup.Post("/points", middleware.Protected(tokenService), pointsHandler.AwardPoints)
	apiGroup.Get("/badges", middleware.Protected(tokenService), badgeHandler.GetMyBadges)

	// User routes (all protected)
	userGroup := apiGroup.Group("/users", middleware.Protected(tokenService))
	userGroup.Get("/me/activities", activityHandler.GetMyActivities)
	userGroup.Get("/me/activities/stats", activityHandler.GetMyActivityStats)
	userGroup.Get("/me/streak", streakHandler.GetMyStreaks)
	userGroup.Get("/me/points/transactions", pointsHandler.GetMyTransactions)
	userGroup.Get("/me/rank", pointsHandler.GetMyRank)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
