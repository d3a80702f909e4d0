package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/core"
)

// SQLiteStore is a SQLite implementation of the RegistryStore interface.
// The contact list is stored as one serialized JSON document per account.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite registry store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS vip_registry (
			account TEXT PRIMARY KEY,
			contacts TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// Load retrieves the contact list for an account
func (s *SQLiteStore) Load(ctx context.Context, account string) ([]core.VIPContact, error) {
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
func (s *SQLiteStore) Save(ctx context.Context, account string, contacts []core.VIPContact) error {
	payload, err := json.Marshal(contacts)
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO vip_registry (account, contacts, updated_at)
		VALUES (?, ?, ?)
	`, account, string(payload), time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}

	s.logger.Debug("Persisted VIP registry",
		zap.String("account", account),
		zap.Int("contacts", len(contacts)))
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
