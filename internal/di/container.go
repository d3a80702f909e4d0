package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/adapters/httpapi"
	"github.com/mikey/inbox-priority/internal/behavior"
	"github.com/mikey/inbox-priority/internal/config"
	"github.com/mikey/inbox-priority/internal/core"
	"github.com/mikey/inbox-priority/internal/digest"
	"github.com/mikey/inbox-priority/internal/factory"
	"github.com/mikey/inbox-priority/internal/logging"
	"github.com/mikey/inbox-priority/internal/vip"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register store factory and registry store
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.StoreFactory) (core.RegistryStore, error) {
		return f.CreateRegistryStore()
	}); err != nil {
		return nil, err
	}

	// Register VIP registry
	if err := container.Provide(factory.NewRegistry); err != nil {
		return nil, err
	}
	if err := container.Provide(func(r *vip.Registry) core.VIPRegistry { return r }); err != nil {
		return nil, err
	}

	// Register behavior store
	if err := container.Provide(behavior.NewStore); err != nil {
		return nil, err
	}
	if err := container.Provide(func(s *behavior.Store) core.BehaviorStore { return s }); err != nil {
		return nil, err
	}

	// Register scorer and organizer
	if err := container.Provide(factory.NewScorer); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewOrganizer); err != nil {
		return nil, err
	}
	if err := container.Provide(func(o *digest.Organizer) core.DigestOrganizer { return o }); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(core.NewTriageService); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(httpapi.NewServer); err != nil {
		return nil, err
	}

	// Register listen address
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) ListenAddress {
		addr := cfg.GetServer().ListenAddress
		logger.Info("Configured listen address", zap.String("address", addr))
		return ListenAddress(addr)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// ListenAddress is the address the HTTP server binds to
type ListenAddress string
