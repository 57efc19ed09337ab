package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/erpmobile/stock_journal_engine/internal/core/services"
	"github.com/erpmobile/stock_journal_engine/internal/dto"
	"github.com/erpmobile/stock_journal_engine/internal/gateways/erp"
	"github.com/erpmobile/stock_journal_engine/internal/handlers"
	"github.com/erpmobile/stock_journal_engine/internal/middleware"
	"github.com/erpmobile/stock_journal_engine/internal/repositories/redisstore"
	"github.com/erpmobile/stock_journal_engine/pkg/config"
	"github.com/erpmobile/stock_journal_engine/pkg/redisconn"
	"github.com/erpmobile/stock_journal_engine/pkg/scheduler"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis holds the composition sessions between requests
	redisClient, err := redisconn.NewClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisconn.CloseClient(redisClient)

	sessionRepo := redisstore.NewRedisSessionRepository(redisClient, cfg.SessionTTL)

	// One client serves both the entry and product endpoints of the upstream API
	erpClient := erp.NewClient(cfg.ERPBaseURL, cfg.ERPAPITimeout)

	debouncer := scheduler.NewDebouncer()
	defer debouncer.Stop()

	svcContainer := services.NewServiceContainer(sessionRepo, erpClient, erpClient, debouncer, cfg.SearchDebounceInterval)

	// Register custom binding rules before any routes are set up
	dto.RegisterValidations()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate := limiter.Rate{Period: time.Minute, Limit: int64(cfg.RateLimit)}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	r.Use(middleware.RateLimit(ipLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svcContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
