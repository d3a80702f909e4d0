package behavior

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/core"
)

// Store is an in-memory engagement history keyed by contact identifier.
// Records are updated incrementally as engagement is observed and never
// deleted automatically.
type Store struct {
	mu      sync.RWMutex
	records map[string]core.BehaviorRecord
	logger  *zap.Logger
}

// NewStore creates an empty behavior store
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		records: make(map[string]core.BehaviorRecord),
		logger:  logger,
	}
}

// Get returns the engagement record for a contact, reporting whether one
// exists. Keys are case-insensitive.
func (s *Store) Get(contact string) (core.BehaviorRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[normalizeKey(contact)]
	return rec, ok
}

// Update merges a partial record into the contact's history and returns
// the merged result. Counts are added; a new average response time is
// folded in as a reply-weighted mean so repeated partial updates converge.
func (s *Store) Update(contact string, partial core.BehaviorRecord) core.BehaviorRecord {
	key := normalizeKey(contact)

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.records[key]
	oldReplies := rec.Replies
	rec.Replies += partial.Replies
	rec.Opens += partial.Opens

	if partial.AverageResponseSeconds > 0 {
		if rec.AverageResponseSeconds <= 0 {
			rec.AverageResponseSeconds = partial.AverageResponseSeconds
		} else {
			oldWeight := float64(oldReplies)
			newWeight := float64(partial.Replies)
			if oldWeight <= 0 && newWeight <= 0 {
				oldWeight, newWeight = 1, 1
			}
			if oldWeight <= 0 {
				oldWeight = 1
			}
			if newWeight <= 0 {
				newWeight = 1
			}
			rec.AverageResponseSeconds = (rec.AverageResponseSeconds*oldWeight +
				partial.AverageResponseSeconds*newWeight) / (oldWeight + newWeight)
		}
	}

	s.records[key] = rec

	if s.logger != nil {
		s.logger.Debug("Updated behavior record",
			zap.String("contact", key),
			zap.Int("replies", rec.Replies),
			zap.Int("opens", rec.Opens),
			zap.Float64("avg_response_seconds", rec.AverageResponseSeconds))
	}
	return rec
}

func normalizeKey(contact string) string {
	return strings.ToLower(strings.TrimSpace(contact))
}
