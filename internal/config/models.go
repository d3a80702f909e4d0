package config

// WeightsConfig represents the factor weights for one message source
type WeightsConfig struct {
	Sender     float64
	Keywords   float64
	Urgency    float64
	VIP        float64
	Engagement float64
}

// ScoringConfig represents the configuration for the priority scorer
type ScoringConfig struct {
	InternalDomains  []string
	ImportantDomains []string
	CSuiteTokens     []string
	CriticalKeywords []string
	HighKeywords     []string
	MediumKeywords   []string
	UrgencyPatterns  []string
	TodayPhrases     []string
	SoonPhrases      []string
	EmailWeights     WeightsConfig
	ChatWeights      WeightsConfig
}

// VIPConfig represents the configuration for the VIP registry
type VIPConfig struct {
	Patterns       []string
	DetectionRoles []string
	PersistTimeout string
}

// RegistryConfig represents the registry persistence configuration
type RegistryConfig struct {
	Account    string
	StoreType  string
	SQLitePath string
	MySQLDSN   string
}

// DigestConfig represents the configuration for the digest organizer
type DigestConfig struct {
	StrategicKeywords   []string
	UrgentKeywords      []string
	OperationalKeywords []string
	ActionKeywords      []string
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	ListenAddress string
}

// GetScoring returns the scoring configuration
func (c *Config) GetScoring() ScoringConfig {
	return ScoringConfig{
		InternalDomains:  c.GetStringSlice("scoring.internal_domains"),
		ImportantDomains: c.GetStringSlice("scoring.important_domains"),
		CSuiteTokens:     c.GetStringSlice("scoring.csuite_tokens"),
		CriticalKeywords: c.GetStringSlice("scoring.keywords.critical"),
		HighKeywords:     c.GetStringSlice("scoring.keywords.high"),
		MediumKeywords:   c.GetStringSlice("scoring.keywords.medium"),
		UrgencyPatterns:  c.GetStringSlice("scoring.urgency.patterns"),
		TodayPhrases:     c.GetStringSlice("scoring.urgency.today_phrases"),
		SoonPhrases:      c.GetStringSlice("scoring.urgency.soon_phrases"),
		EmailWeights:     c.getWeights("scoring.weights.email"),
		ChatWeights:      c.getWeights("scoring.weights.chat"),
	}
}

func (c *Config) getWeights(prefix string) WeightsConfig {
	return WeightsConfig{
		Sender:     c.GetFloat64(prefix + ".sender"),
		Keywords:   c.GetFloat64(prefix + ".keywords"),
		Urgency:    c.GetFloat64(prefix + ".urgency"),
		VIP:        c.GetFloat64(prefix + ".vip"),
		Engagement: c.GetFloat64(prefix + ".engagement"),
	}
}

// GetVIP returns the VIP registry configuration
func (c *Config) GetVIP() VIPConfig {
	return VIPConfig{
		Patterns:       c.GetStringSlice("vip.patterns"),
		DetectionRoles: c.GetStringSlice("vip.detection_roles"),
		PersistTimeout: c.GetString("vip.persist_timeout"),
	}
}

// GetRegistry returns the registry persistence configuration
func (c *Config) GetRegistry() RegistryConfig {
	return RegistryConfig{
		Account:    c.GetString("registry.account"),
		StoreType:  c.GetString("registry.store_type"),
		SQLitePath: c.GetString("registry.sqlite_path"),
		MySQLDSN:   c.GetString("registry.mysql_dsn"),
	}
}

// GetDigest returns the digest organizer configuration
func (c *Config) GetDigest() DigestConfig {
	return DigestConfig{
		StrategicKeywords:   c.GetStringSlice("digest.categories.strategic"),
		UrgentKeywords:      c.GetStringSlice("digest.categories.urgent"),
		OperationalKeywords: c.GetStringSlice("digest.categories.operational"),
		ActionKeywords:      c.GetStringSlice("digest.action_keywords"),
	}
}

// GetServer returns the HTTP server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress: c.GetString("server.listen_address"),
	}
}
