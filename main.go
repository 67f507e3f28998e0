package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mortgage-agent/config"
	httpLayer "mortgage-agent/http"
	"mortgage-agent/repository"
	"mortgage-agent/service"
	"mortgage-agent/telemetry"
)

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	shutdownTracing, err := telemetry.Setup(context.Background(), "mortgage-agent", cfg.OTelEndpoint)
	if err != nil {
		log.Fatalf("Error setting up tracing: %v", err)
	}

	cache, closeCache := openCache(cfg)
	defer closeCache()

	archive, closeArchive, err := openArchive(cfg)
	if err != nil {
		log.Fatalf("Error opening projection archive: %v", err)
	}
	defer closeArchive()

	aiService := service.NewAIService(cfg.OpenAIKey)
	projectionService := service.NewProjectionService(archive, cache, aiService, service.ProjectionSettings{
		ProcessingFee:   cfg.ProcessingFee,
		DividendTaxRate: cfg.DividendTaxRate,
		CacheTTL:        cfg.CacheTTL,
	})

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(
		rateLimiter,
		httpLayer.NewProjectionHandler(projectionService),
		httpLayer.NewLoanHandler(service.NewLoanService()),
		httpLayer.NewReinvestmentHandler(service.NewReinvestmentService()),
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Mortgage agent listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("Error flushing traces: %v", err)
	}

	log.Println("Server exited")
}

// openCache connects to Redis when an address is configured and falls back to
// an in-process cache when none is set or the server is unreachable.
func openCache(cfg config.Config) (repository.CacheRepository, func()) {
	if cfg.RedisAddr == "" {
		return repository.NewMemoryCache(), func() {}
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		log.Printf("Warning: redis at %s unreachable, using in-process cache: %v", cfg.RedisAddr, err)
		redisCache.Close()
		return repository.NewMemoryCache(), func() {}
	}

	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			log.Printf("Error closing redis: %v", err)
		}
	}
}

func openArchive(cfg config.Config) (repository.ProjectionRepository, func(), error) {
	if cfg.Archive != config.ArchiveSQLite {
		return repository.NewProjectionRepositoryMemory(), func() {}, nil
	}

	archive, err := repository.OpenProjectionRepositorySQLite(cfg.SQLiteDSN)
	if err != nil {
		return nil, nil, err
	}
	return archive, func() {
		if err := archive.Close(); err != nil {
			log.Printf("Error closing archive: %v", err)
		}
	}, nil
}
