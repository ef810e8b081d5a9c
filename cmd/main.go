package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"coshop-lab/infrastructure/httpapi"
	"coshop-lab/infrastructure/ws"
	"coshop-lab/internal"
	"coshop-lab/repositories"
	"coshop-lab/runtime"
	"coshop-lab/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the HTTP server and background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Registry, hub, repositories
	registry := runtime.NewRegistry()
	hub := runtime.NewHub(log, registry, registry,
		config.BufferSize, config.SinkTimeout, config.MetricInterval)

	customerRepository := repositories.NewCustomerRepository(db)
	orderRepository := repositories.NewOrderRepository(db, log)

	// The notifier is how server-side cart mutations reach the groups.
	orderRepository.RegisterCallback(services.NewCartNotifier(log, orderRepository, hub))

	authService := services.NewAuthService(customerRepository, config.AuthTokenDuration)
	cartService := services.NewCartService(orderRepository, customerRepository)
	coViewingService := services.NewCoViewingService(hub)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start the hub workers
	hub.Start(ctx)

	if config.DebugPort != nil {
		internal.StartDebugServer(db, *config.DebugPort, nil, func() map[string]any {
			connections, groups := registry.Stats()
			return map[string]any{"connections": connections, "groups": groups}
		})
	}

	// 6. HTTP & websocket server
	app := fiber.New(fiber.Config{
		AppName:      "coshop-lab",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	httpapi.SetupRoutes(app,
		httpapi.NewAuthHandler(authService, config.AuthTokenDuration),
		httpapi.NewCartHandler(cartService),
		httpapi.NewInviteHandler(log, config.BaseURL),
		ws.NewCoViewingHandler(log, coViewingService, config.ConnectionBufferSize),
	)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting server", "address", address, "at", time.Now().UTC())
		if err := app.Listen(address); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Warn("Server shutdown did not finish cleanly", "err", err)
	}
	hub.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
