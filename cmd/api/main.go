// Command api runs the auction marketplace HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/artbid/auction-marketplace-backend/internal/api/rest"
	"github.com/artbid/auction-marketplace-backend/internal/domain/auction"
	"github.com/artbid/auction-marketplace-backend/internal/infrastructure/cache"
	"github.com/artbid/auction-marketplace-backend/internal/infrastructure/config"
	"github.com/artbid/auction-marketplace-backend/internal/infrastructure/database"
	"github.com/artbid/auction-marketplace-backend/internal/infrastructure/repository"
	"github.com/artbid/auction-marketplace-backend/internal/infrastructure/telemetry"
	"github.com/artbid/auction-marketplace-backend/internal/metrics"
	"github.com/artbid/auction-marketplace-backend/internal/service/bidding"
	"github.com/artbid/auction-marketplace-backend/internal/service/lifecycle"
	"github.com/artbid/auction-marketplace-backend/internal/service/marketplace"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := telemetry.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewConnectionPool(ctx, &cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	var bidLimiter cache.RateLimiter
	redisClient, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		// Redis only backs the bid rate limiter; the marketplace can
		// serve without it.
		logger.Warn("redis unavailable, bid rate limiting disabled", zap.Error(err))
	} else {
		defer func() { _ = redisClient.Close() }()
		bidLimiter = cache.NewRedisRateLimiter(redisClient, logger)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	clock := auction.RealClock{}

	auctionRepo := repository.NewAuctionRepository(pool.Pool())
	bidRepo := repository.NewBidRepository(pool.Pool())
	favoriteRepo := repository.NewFavoriteRepository(pool.Pool())
	categoryRepo := repository.NewCategoryRepository(pool.Pool())
	geoRepo := repository.NewGeoRepository(pool.Pool())
	contentRepo := repository.NewContentRepository(pool.Pool())
	accountRepo := repository.NewAccountRepository(pool.Pool())
	uow := repository.NewUnitOfWork(pool)

	lifecycleSvc := lifecycle.NewService(auctionRepo, clock, logger, collector)
	biddingSvc := bidding.NewService(uow, bidRepo, clock, logger, collector)
	marketplaceSvc := marketplace.NewService(
		lifecycleSvc, auctionRepo, favoriteRepo, categoryRepo, geoRepo, contentRepo,
		clock, logger, marketplace.Config{
			RelatedLimit:     cfg.Marketplace.RelatedLimit,
			TopViewThreshold: cfg.Marketplace.TopViewThreshold,
		})

	handler := rest.NewHandler(
		biddingSvc, marketplaceSvc, accountRepo, bidLimiter,
		cfg.Auth.JWTSecret, cfg.RateLimit.BidsPerWindow, cfg.RateLimit.BidWindow,
		logger,
	)
	server := rest.NewServer(&cfg.Server, &cfg.RateLimit, handler, collector, registry, pool, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return server.Shutdown(context.Background())
	}
}
