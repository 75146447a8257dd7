package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adyen/uitests/internal/config"
	"github.com/adyen/uitests/internal/handlers"
	"github.com/adyen/uitests/internal/logging"
	"github.com/adyen/uitests/internal/models"
	"github.com/adyen/uitests/internal/repository"
)

// ServerDependencies holds all dependencies needed for the demo server
type ServerDependencies struct {
	ItemRepo       *repository.ItemRepository
	ServerConfig   config.ServerConfig
	CatalogHandler http.Handler
	ItemsHandler   http.Handler
	ResetHandler   http.Handler
	HealthHandler  http.Handler
	BrokenHandler  http.Handler
}

// SeedItems is the catalogue the demo application starts with
var SeedItems = []models.Item{
	{ID: "widget", Name: "Premium Widget", Price: "$1.00"},
	{ID: "gizmo", Name: "Deluxe Gizmo", Price: "$4.50"},
}

// BuildServerDependencies wires the demo application
func BuildServerDependencies(serverConfig config.ServerConfig) (ServerDependencies, error) {
	var deps ServerDependencies

	deps.ServerConfig = serverConfig
	deps.ItemRepo = repository.NewItemRepository(SeedItems...)

	catalogHandler, err := handlers.NewCatalogHandler("Catalog", deps.ItemRepo)
	if err != nil {
		return deps, fmt.Errorf("failed to create catalog handler: %w", err)
	}
	deps.CatalogHandler = catalogHandler

	brokenHandler, err := handlers.NewBrokenHandler()
	if err != nil {
		return deps, fmt.Errorf("failed to create broken handler: %w", err)
	}
	deps.BrokenHandler = brokenHandler

	deps.ItemsHandler = handlers.NewItemsHandler(deps.ItemRepo)
	deps.ResetHandler = handlers.NewResetHandler(deps.ItemRepo)
	deps.HealthHandler = http.HandlerFunc(handlers.HealthHandler)

	return deps, nil
}

// NewMux routes the demo application
func NewMux(deps ServerDependencies) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", deps.CatalogHandler)
	mux.Handle("/items", deps.CatalogHandler)
	mux.Handle("/broken", deps.BrokenHandler)
	mux.Handle("/api/items", deps.ItemsHandler)
	mux.Handle("/api/reset", deps.ResetHandler)
	mux.Handle("/api/health", deps.HealthHandler)
	return mux
}

// RunServe starts the demo web server
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	log := logging.WithCategory("serve")

	// Create listener
	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	// Create HTTP server
	server := &http.Server{
		Handler: NewMux(deps),
	}

	// Start server in a goroutine
	go func() {
		log.Infof("Server listening on %s", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error")
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server
// If shutdown channel is nil, a new channel will be created and registered with signal.Notify
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	log := logging.WithCategory("serve")

	// Channel to listen for interrupt or terminate signals
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	}

	// Wait for shutdown signal
	sig := <-shutdown
	log.Infof("Received signal: %v, shutting down server...", sig)

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		// Force close the server after timeout
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Info("Server stopped")
	return nil
}
