package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/space-prime/app/api"
	"github.com/lysyi3m/space-prime/app/cache"
	"github.com/lysyi3m/space-prime/app/catalog"
	"github.com/lysyi3m/space-prime/app/cfg"
	"github.com/lysyi3m/space-prime/app/database"
	"github.com/lysyi3m/space-prime/app/fetch"
	"github.com/lysyi3m/space-prime/app/imagery"
	"github.com/lysyi3m/space-prime/app/news"
	"github.com/lysyi3m/space-prime/app/tasks"
)

func main() {
	config, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if config == nil {
		// Help was shown
		return
	}

	level := slog.LevelInfo
	if config.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting Space Prime server", "version", config.Version)

	cat, err := catalog.Load(config.CatalogPath)
	if err != nil {
		fatal("Failed to load rover catalog", err)
	}
	slog.Info("Rover catalog loaded", "rovers", cat.RoverCount(), "cameras", cat.CameraCount())

	sources, err := news.LoadSources(config.NewsSourcesPath)
	if err != nil {
		fatal("Failed to load news sources", err)
	}
	if err := sources.Override(config.SNAPIURL, config.SNAPIMaxPages, config.PhysOrgFeeds); err != nil {
		fatal("Invalid news source overrides", err)
	}

	store, closeStore := openResponseStore(config)
	defer closeStore()

	client := fetch.NewClient(&http.Client{}, store, fetch.Options{
		Timeout:   config.ProviderTimeout,
		TTL:       config.CacheTTL,
		UserAgent: config.UserAgent,
	})

	normalizer := imagery.NewNormalizer(client, cat, imagery.Endpoints{
		EPICAPI:      config.EPICAPIURL,
		EPICArchive:  config.EPICArchiveURL,
		MarsPhotoAPI: config.MarsPhotoAPIURL,
	})
	aggregator := news.NewAggregator(client, sources)

	scheduler := tasks.NewScheduler(store, aggregator, tasks.SchedulerOptions{
		Interval:    config.PruneInterval,
		WorkerCount: config.WorkerCount,
		NewsWindow:  config.NewsWarmWindow,
	})
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background scheduler started", "workers", config.WorkerCount, "interval", config.PruneInterval)

	handler := api.NewHandler(normalizer, aggregator, cat, store, config.Version)
	router := api.NewServer(handler, api.ServerOptions{
		Prod:      config.Prod,
		RateLimit: config.RateLimit,
		RateBurst: config.RateBurst,
	})

	httpServer := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", config.Port, "prod", config.Prod)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler and database are closed via defer
	slog.Info("Space Prime server shutdown complete")
}

// responseStore is the cache behind provider requests, its background pruning
// and the health report
type responseStore interface {
	fetch.Cache
	tasks.CachePruner
	api.CacheStats
}

func openResponseStore(config *cfg.Cfg) (responseStore, func()) {
	if config.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		redisCache, err := cache.NewRedisCache(ctx, config.RedisURL)
		if err != nil {
			fatal("Failed to open response cache", err)
		}
		slog.Info("Response cache ready", "backend", "redis")
		return redisCache, func() { redisCache.Close() }
	}

	db, err := database.NewConnection(config.CachePath)
	if err != nil {
		fatal("Failed to open response cache", err)
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		db.Close()
		fatal("Failed to migrate response cache", err)
	}
	slog.Info("Response cache ready", "backend", "sqlite", "path", config.CachePath, "schema_version", version, "dirty", dirty)

	return database.NewResponseRepository(db), func() { db.Close() }
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
