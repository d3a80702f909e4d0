package factory

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/config"
	"github.com/mikey/inbox-priority/internal/core"
	"github.com/mikey/inbox-priority/internal/digest"
	"github.com/mikey/inbox-priority/internal/vip"
)

// NewScoringTables maps configuration onto the scorer's tables
func NewScoringTables(cfg *config.Config) core.ScoringTables {
	scoring := cfg.GetScoring()
	return core.ScoringTables{
		InternalDomains:  scoring.InternalDomains,
		ImportantDomains: scoring.ImportantDomains,
		CSuiteTokens:     scoring.CSuiteTokens,
		CriticalKeywords: scoring.CriticalKeywords,
		HighKeywords:     scoring.HighKeywords,
		MediumKeywords:   scoring.MediumKeywords,
		UrgencyPatterns:  scoring.UrgencyPatterns,
		TodayPhrases:     scoring.TodayPhrases,
		SoonPhrases:      scoring.SoonPhrases,
		EmailWeights:     weightsFor(scoring.EmailWeights),
		ChatWeights:      weightsFor(scoring.ChatWeights),
	}
}

func weightsFor(w config.WeightsConfig) core.FactorWeights {
	return core.FactorWeights{
		Sender:     w.Sender,
		Keywords:   w.Keywords,
		Urgency:    w.Urgency,
		VIP:        w.VIP,
		Engagement: w.Engagement,
	}
}

// NewScorer builds the priority scorer from configuration
func NewScorer(cfg *config.Config, logger *zap.Logger) (*core.Scorer, error) {
	scorer, err := core.NewScorer(NewScoringTables(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build scorer: %w", err)
	}
	return scorer, nil
}

// NewOrganizer builds the digest organizer from configuration
func NewOrganizer(cfg *config.Config, logger *zap.Logger) *digest.Organizer {
	digestCfg := cfg.GetDigest()
	return digest.NewOrganizer(digest.Tables{
		StrategicKeywords:   digestCfg.StrategicKeywords,
		UrgentKeywords:      digestCfg.UrgentKeywords,
		OperationalKeywords: digestCfg.OperationalKeywords,
		ActionKeywords:      digestCfg.ActionKeywords,
	}, logger)
}

// NewRegistry builds the VIP registry from configuration and a backing store
func NewRegistry(cfg *config.Config, registryStore core.RegistryStore, logger *zap.Logger) (*vip.Registry, error) {
	vipCfg := cfg.GetVIP()
	registryCfg := cfg.GetRegistry()

	opts := vip.DefaultOptions()
	if len(vipCfg.Patterns) > 0 {
		opts.Patterns = vipCfg.Patterns
	}
	if len(vipCfg.DetectionRoles) > 0 {
		opts.DetectionRoles = vipCfg.DetectionRoles
	}
	if vipCfg.PersistTimeout != "" {
		timeout, err := time.ParseDuration(vipCfg.PersistTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid vip persist timeout: %w", err)
		}
		opts.PersistTimeout = timeout
	}

	registry, err := vip.NewRegistry(registryCfg.Account, registryStore, opts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load VIP registry: %w", err)
	}
	return registry, nil
}
