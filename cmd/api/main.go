package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pourpal/internal/auth"
	"pourpal/internal/config"
	"pourpal/internal/database"
	"pourpal/internal/handler"
	"pourpal/internal/mailer"
	"pourpal/internal/middleware"
	"pourpal/internal/repository"
	"pourpal/internal/router"
	"pourpal/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
)

// ensureIndexes creates every collection index the repositories rely on.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, ensure := range []func(context.Context, *mongo.Database) error{
		repository.EnsureCartIndexes,
		repository.EnsureItemIndexes,
		repository.EnsureOrderIndexes,
		repository.EnsureUserIndexes,
	} {
		if err := ensure(ctx, db); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting pourpal API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection
	client, db, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer disconnectCancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from database")
		}
	}()

	// Ensure indexes before serving traffic
	if err := ensureIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	// Initialize repositories
	cartRepo := repository.NewCartRepository(db, logger)
	itemRepo := repository.NewItemRepository(db, logger)
	orderRepo := repository.NewOrderRepository(db, logger)
	brandRepo := repository.NewBrandRepository(db, logger)
	typeRepo := repository.NewTypeRepository(db, logger)
	countryRepo := repository.NewCountryRepository(db, logger)
	userRepo := repository.NewUserRepository(db, logger)

	// Initialize auth and mail plumbing
	tokens := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenExpiryMinutes)*time.Minute)
	mail := mailer.NewLogMailer(logger)

	// Initialize services
	cartTTL := time.Duration(cfg.Cart.TTLDays) * 24 * time.Hour
	cartService := service.NewCartService(cartRepo, itemRepo, cartTTL, logger)
	orderService := service.NewOrderService(orderRepo, cartRepo, itemRepo, logger)
	itemService := service.NewItemService(itemRepo, brandRepo, typeRepo, countryRepo, logger)
	catalogService := service.NewCatalogService(brandRepo, typeRepo, countryRepo, logger)
	authService := service.NewAuthService(userRepo, tokens, mail, logger)

	// Initialize HTTP handlers
	cartHandler := handler.NewCartHandler(cartService, logger)
	orderHandler := handler.NewOrderHandler(orderService, tokens, logger)
	itemHandler := handler.NewItemHandler(itemService, logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	authHandler := handler.NewAuthHandler(authService, logger)

	// Initialize router
	guard := middleware.NewAuth(tokens, userRepo, logger)
	mux := router.New(cartHandler, orderHandler, itemHandler, catalogHandler, authHandler, guard, logger)

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

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
