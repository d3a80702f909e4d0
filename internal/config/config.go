package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/inbox-priority/")
	v.AddConfigPath("$HOME/.inbox-priority")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("INBOX_PRIORITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values. The scoring weights
// and keyword tables are hand-tuned heuristics exposed as configuration
// so they can be adjusted without redeploying the engine.
func setDefaults(v *viper.Viper) {
	// Scoring defaults
	v.SetDefault("scoring.internal_domains", []string{})
	v.SetDefault("scoring.important_domains", []string{})
	v.SetDefault("scoring.csuite_tokens", []string{"ceo", "founder", "president"})
	v.SetDefault("scoring.keywords.critical", []string{"urgent", "asap", "emergency", "critical", "deadline", "breaking"})
	v.SetDefault("scoring.keywords.high", []string{"important", "meeting", "decision", "approve", "review", "action required"})
	v.SetDefault("scoring.keywords.medium", []string{"update", "fyi", "information", "notice", "reminder"})
	v.SetDefault("scoring.urgency.patterns", []string{"urgent", "asap", "emergency", "deadline", "today", "now", "immediately", "time.sensitive"})
	v.SetDefault("scoring.urgency.today_phrases", []string{"today", "this morning"})
	v.SetDefault("scoring.urgency.soon_phrases", []string{"tomorrow", "next week"})
	v.SetDefault("scoring.weights.email.sender", 0.25)
	v.SetDefault("scoring.weights.email.keywords", 0.20)
	v.SetDefault("scoring.weights.email.urgency", 0.30)
	v.SetDefault("scoring.weights.email.vip", 0.20)
	v.SetDefault("scoring.weights.email.engagement", 0.05)
	v.SetDefault("scoring.weights.chat.sender", 0.20)
	v.SetDefault("scoring.weights.chat.keywords", 0.25)
	v.SetDefault("scoring.weights.chat.urgency", 0.35)
	v.SetDefault("scoring.weights.chat.vip", 0.15)
	v.SetDefault("scoring.weights.chat.engagement", 0.05)

	// VIP registry defaults
	v.SetDefault("vip.patterns", []string{"ceo@", "founder@", "president@", "chairman@", "board@", "investor@", "partner@", "director@"})
	v.SetDefault("vip.detection_roles", []string{"ceo", "founder", "president", "director", "head", "lead", "manager", "board", "investor"})
	v.SetDefault("vip.persist_timeout", "5s")

	// Registry persistence defaults
	v.SetDefault("registry.account", "default")
	v.SetDefault("registry.store_type", "memory")
	v.SetDefault("registry.sqlite_path", "/data/vip_registry.db")
	v.SetDefault("registry.mysql_dsn", "user:password@tcp(localhost:3306)/inbox_priority")

	// Digest defaults
	v.SetDefault("digest.categories.strategic", []string{"strategy", "planning", "roadmap"})
	v.SetDefault("digest.categories.urgent", []string{"urgent", "asap", "emergency"})
	v.SetDefault("digest.categories.operational", []string{"meeting", "task", "project"})
	v.SetDefault("digest.action_keywords", []string{"please", "can you", "need", "request", "approve", "review", "decision"})

	// Server defaults
	v.SetDefault("server.listen_address", "0.0.0.0:8080")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
