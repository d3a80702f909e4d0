package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/adapters/store"
	"github.com/mikey/inbox-priority/internal/config"
	"github.com/mikey/inbox-priority/internal/core"
)

// StoreFactory creates registry persistence stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateRegistryStore creates a registry store based on the configuration
func (f *StoreFactory) CreateRegistryStore() (core.RegistryStore, error) {
	registryCfg := f.cfg.GetRegistry()

	switch registryCfg.StoreType {
	case "memory":
		return store.NewMemoryStore(f.logger), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(registryCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(registryCfg.SQLitePath, f.logger)
	case "mysql":
		return store.NewMySQLStore(registryCfg.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported registry store type: %s", registryCfg.StoreType)
	}
}
