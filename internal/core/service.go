package core

import (
	"go.uber.org/zap"
)

// TriageService is the core service binding the scorer, the VIP registry,
// the behavior store and the digest organizer behind the surface exposed
// to the presentation layer
type TriageService struct {
	scorer    *Scorer
	registry  VIPRegistry
	behavior  BehaviorStore
	organizer DigestOrganizer
	logger    *zap.Logger
}

// NewTriageService creates a new triage service
func NewTriageService(
	scorer *Scorer,
	registry VIPRegistry,
	behavior BehaviorStore,
	organizer DigestOrganizer,
	logger *zap.Logger,
) *TriageService {
	return &TriageService{
		scorer:    scorer,
		registry:  registry,
		behavior:  behavior,
		organizer: organizer,
		logger:    logger,
	}
}

// ScoreItem scores a single message against the current registry and
// behavior snapshot
func (s *TriageService) ScoreItem(msg Message) PriorityScore {
	return s.scorer.Score(msg, Snapshot{VIP: s.registry, Behavior: s.behavior})
}

// PriorityLabel maps a score to its tier label
func (s *TriageService) PriorityLabel(score int) Tier {
	return TierForScore(score)
}

// OrganizeDigest scores a batch of messages and returns the grouped,
// filtered, sorted digest view
func (s *TriageService) OrganizeDigest(msgs []Message, filters Filters, order SortOrder) []TimeGroup {
	snap := Snapshot{VIP: s.registry, Behavior: s.behavior}
	items := make([]DigestItem, 0, len(msgs))
	for _, msg := range msgs {
		score := s.scorer.Score(msg, snap)
		isVIP := s.registry.IsVIP(senderKey(msg.Sender))
		items = append(items, s.organizer.BuildItem(msg, score, isVIP))
	}
	groups := s.organizer.Organize(items, filters, order)
	s.logger.Debug("Organized digest",
		zap.Int("messages", len(msgs)),
		zap.Int("groups", len(groups)))
	return groups
}

// ListVIPContacts returns all registered VIP contacts
func (s *TriageService) ListVIPContacts() []VIPContact {
	return s.registry.List()
}

// UpsertVIPContact adds or updates a VIP contact
func (s *TriageService) UpsertVIPContact(contact VIPContact) VIPContact {
	stored := s.registry.Upsert(contact)
	s.logger.Info("Upserted VIP contact",
		zap.String("id", stored.ID),
		zap.String("address", stored.Address),
		zap.Int("importance", stored.Importance))
	return stored
}

// RemoveVIPContact removes a VIP contact by ID
func (s *TriageService) RemoveVIPContact(id string) error {
	return s.registry.Remove(id)
}

// DetectVIPCandidates suggests observed senders that look like VIPs but
// are not yet registered. Suggestions only; nothing is auto-added.
func (s *TriageService) DetectVIPCandidates(senders []string) []string {
	return s.registry.DetectCandidates(senders)
}

// UpdateBehaviorData merges a partial engagement record for a contact
func (s *TriageService) UpdateBehaviorData(contact string, partial BehaviorRecord) BehaviorRecord {
	return s.behavior.Update(contact, partial)
}

func senderKey(sender Sender) string {
	if sender.DisplayName == "" {
		return sender.Address
	}
	return sender.Address + " " + sender.DisplayName
}
