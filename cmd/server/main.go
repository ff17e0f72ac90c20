package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/shopassist/backend/config"
	httpDelivery "github.com/shopassist/backend/internal/delivery/http"
	"github.com/shopassist/backend/internal/domain"
	"github.com/shopassist/backend/internal/infrastructure/cache"
	"github.com/shopassist/backend/internal/infrastructure/catalog"
	"github.com/shopassist/backend/internal/infrastructure/gemini"
	"github.com/shopassist/backend/internal/logging"
	"github.com/shopassist/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "shopassist-backend",
	})

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cache", cfg.Cache.Type).
		Str("catalog", cfg.Catalog.File).
		Msg("starting ShopAssist backend v1.0.0")

	// Initialize infrastructure dependencies
	store := catalog.NewStore(afero.NewOsFs(), cfg.Catalog.File, logger)
	store.Load()

	responseCache, closeCache, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()

	var generator domain.TextGenerator
	if cfg.Gemini.AgentEnabled() {
		generator = gemini.NewClient(gemini.ClientConfig{
			APIKey:            cfg.Gemini.APIKey,
			BaseURL:           cfg.Gemini.BaseURL,
			TextModel:         cfg.Gemini.TextModel,
			VisionModel:       cfg.Gemini.VisionModel,
			Timeout:           cfg.Gemini.Timeout,
			RequestsPerMinute: cfg.RateLimit.Gemini,
		}, logger)
		logger.Info().Str("model", cfg.Gemini.TextModel).Msg("generative agent enabled")
	} else {
		logger.Warn().Msg("SHOPASSIST_GEMINI_API_KEY not set, agent endpoints will answer 503")
	}

	// Initialize usecase layer
	sampler := usecase.NewSampler(cfg.Recommend.RandomSeed)
	recommendConfig := usecase.RecommendationConfig{
		DefaultLimit:        cfg.Recommend.DefaultLimit,
		SimilarityThreshold: cfg.Recommend.SimilarityThreshold,
		MaxFeatures:         cfg.Recommend.MaxFeatures,
	}
	recommender := usecase.NewRecommendationService(store, sampler, recommendConfig, logger)
	images := usecase.NewImageSearchService(store, usecase.NewTextNormalizer(logger), sampler, recommendConfig, logger)
	chat := usecase.NewChatService(recommender, generator, responseCache, sampler,
		usecase.ChatServiceConfig{CacheTTL: cfg.Cache.TTL}, logger)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(httpDelivery.Services{
		Recommender: recommender,
		Images:      images,
		Chat:        chat,
		Catalog:     store,
	}, int64(cfg.Server.MaxUploadMB)<<20, logger)

	router := httpDelivery.SetupRouter(cfg, handler, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := store.LastSaveError(); err != nil {
		logger.Warn().Err(err).Msg("catalog has unsaved changes")
	}
	return nil
}

// newCache builds the configured response cache and its close function
func newCache(ctx context.Context, cfg config.CacheConfig) (domain.CacheRepository, func(), error) {
	switch cfg.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, cache.DefaultRedisPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisCache, func() { _ = redisCache.Close() }, nil
	default:
		memoryCache := cache.NewMemoryCache()
		return memoryCache, func() { _ = memoryCache.Close() }, nil
	}
}
