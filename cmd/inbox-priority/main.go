package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/adapters/httpapi"
	"github.com/mikey/inbox-priority/internal/core"
	"github.com/mikey/inbox-priority/internal/di"
	"github.com/mikey/inbox-priority/internal/vip"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	server *httpapi.Server,
	addr di.ListenAddress,
	registry *vip.Registry,
	registryStore core.RegistryStore,
) error {
	defer logger.Sync()

	httpServer := &http.Server{
		Addr:    string(addr),
		Handler: server,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting API server", zap.String("address", string(addr)))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("Server failed", zap.Error(err))
		return err
	case <-sigCh:
	}
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to stop server", zap.Error(err))
	}

	// Let the last registry mutation reach the store
	registry.Flush()

	// Close any resources that need closing
	if closer, ok := registryStore.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close registry store", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}
