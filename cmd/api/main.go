package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tram-kitchen/internal/cache"
	"tram-kitchen/internal/cart"
	"tram-kitchen/internal/config"
	"tram-kitchen/internal/database"
	"tram-kitchen/internal/event"
	"tram-kitchen/internal/handler"
	"tram-kitchen/internal/promo"
	"tram-kitchen/internal/repository"
	"tram-kitchen/internal/router"
	"tram-kitchen/internal/service"
	"tram-kitchen/internal/upload"
	"tram-kitchen/internal/wishlist"

	"github.com/joho/godotenv"
)

// sessionIdleTTL bounds how long a quiet session keeps in-memory cart and
// wishlist state. Wishlists survive eviction through Redis; carts do not.
const sessionIdleTTL = 24 * time.Hour

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env when present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting tram-kitchen API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize Redis for wishlist persistence and the order-lookup cache
	redisClient := cache.New(cfg.Redis.Addr)
	defer redisClient.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize promo code validator
	validator, err := promo.NewValidator(ctx, cfg.Checkout.PromoFiles, promo.NewFileLoader(logger), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize promo validator: %w", err)
	}
	defer validator.Close()

	// Initialize optional order-event publishing
	var publisher service.EventPublisher
	var producer *event.Producer
	if cfg.Kafka.Enabled {
		producer = event.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, 256, logger)
		producer.Start(ctx)
		publisher = producer
		logger.Info().
			Strs("brokers", cfg.Kafka.Brokers).
			Str("topic", cfg.Kafka.Topic).
			Msg("order event publishing enabled")
	}

	// Initialize optional image uploads
	var uploader upload.Uploader
	if cfg.Cloudinary.URL != "" {
		uploader, err = upload.NewCloudinaryUploader(cfg.Cloudinary.URL, "products", logger)
		if err != nil {
			return fmt.Errorf("failed to initialize image uploader: %w", err)
		}
	} else {
		logger.Warn().Msg("CLOUDINARY_URL not set, image uploads disabled")
	}

	// Initialize session state engines
	carts := cart.NewStore()
	wishlists := wishlist.NewEngine(wishlist.NewRedisStore(redisClient), logger)

	// Reap in-memory state of sessions idle past the cookie lifetime
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				dropped := carts.PruneIdle(sessionIdleTTL)
				dropped += wishlists.PruneIdle(sessionIdleTTL)
				if dropped > 0 {
					logger.Debug().Int("sessions", dropped).Msg("pruned idle session state")
				}
			}
		}
	}()

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, categoryRepo, logger)
	orderService := service.NewOrderService(
		orderRepo,
		productRepo,
		carts,
		validator,
		publisher,
		cache.NewOrderCache(redisClient, logger),
		cfg.Checkout,
		logger,
	)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(carts, catalogService, logger)
	wishlistHandler := handler.NewWishlistHandler(wishlists, catalogService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	adminHandler := handler.NewAdminHandler(catalogService, orderService, uploader, logger)

	// Initialize router
	mux := router.New(
		productHandler,
		cartHandler,
		wishlistHandler,
		orderHandler,
		adminHandler,
		cfg.Auth.AdminAPIKey,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		// Flush any queued order events before exiting
		if producer != nil {
			producer.Close()
			producer.WaitClosed()
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
