package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/core"
)

// MySQLStore is a MySQL implementation of the RegistryStore interface
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL registry store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS vip_registry (
			account VARCHAR(255) PRIMARY KEY,
			contacts MEDIUMTEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

// Load retrieves the contact list for an account
func (s *MySQLStore) Load(ctx context.Context, account string) ([]core.VIPContact, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT contacts FROM vip_registry WHERE account = ?
	`, account).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query registry: %w", err)
	}

	var contacts []core.VIPContact
	if err := json.Unmarshal([]byte(payload), &contacts); err != nil {
		return nil, fmt.Errorf("failed to decode registry for account %q: %w", account, err)
	}
	return contacts, nil
}

// Save stores the full contact list for an account
func (s *MySQLStore) Save(ctx context.Context, account string, contacts []core.VIPContact) error {
	payload, err := json.Marshal(contacts)
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO vip_registry (account, contacts, updated_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE contacts = VALUES(contacts), updated_at = VALUES(updated_at)
	`, account, string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}

	s.logger.Debug("Persisted VIP registry",
		zap.String("account", account),
		zap.Int("contacts", len(contacts)))
	return nil
}

// Close closes the database connection
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
