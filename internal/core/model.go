package core

import (
	"time"
)

// MessageSource identifies the channel a message arrived on
type MessageSource string

const (
	SourceEmail MessageSource = "email"
	SourceChat  MessageSource = "chat"
)

// Sender identifies who a message came from
type Sender struct {
	Address     string
	DisplayName string
}

// Message represents an incoming communication. It is produced by an
// external connector and is read-only from the engine's perspective.
type Message struct {
	ID           string
	Source       MessageSource
	Sender       Sender
	Subject      string
	Body         string
	Timestamp    time.Time
	Channel      string
	Read         bool
	PriorityHint int
}

// Relationship categorizes how a VIP contact relates to the user
type Relationship string

const (
	RelDirectReport Relationship = "direct_report"
	RelManager      Relationship = "manager"
	RelPeer         Relationship = "peer"
	RelExternal     Relationship = "external"
	RelBoard        Relationship = "board"
	RelInvestor     Relationship = "investor"
	RelClient       Relationship = "client"
)

// VIPContact is a user-curated high-importance contact
type VIPContact struct {
	ID                string
	Address           string
	DisplayName       string
	Importance        int
	Relationship      Relationship
	Department        string
	Notes             string
	LastContact       time.Time
	ResponseTimeHours float64
	InteractionScore  int
}

// BehaviorRecord holds per-contact engagement history
type BehaviorRecord struct {
	Replies                int
	Opens                  int
	AverageResponseSeconds float64
}

// FactorBreakdown holds the five sub-scores that make up a priority score,
// each in [0,100]
type FactorBreakdown struct {
	Sender     int
	Keywords   int
	Urgency    int
	VIP        int
	Engagement int
}

// PriorityScore is the result of scoring a single message. It is derived
// and ephemeral: recomputed per message, never persisted.
type PriorityScore struct {
	Score       int
	Confidence  int
	Factors     FactorBreakdown
	Explanation string
}

// Tier discretizes the continuous priority score
type Tier string

const (
	TierCritical Tier = "critical"
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
)

// TierForScore maps a priority score to its tier. Boundaries at 50/65/80.
func TierForScore(score int) Tier {
	switch {
	case score >= 80:
		return TierCritical
	case score >= 65:
		return TierHigh
	case score >= 50:
		return TierMedium
	default:
		return TierLow
	}
}

// TierWeight returns the sort weight of a tier (critical=4 .. low=1)
func TierWeight(t Tier) int {
	switch t {
	case TierCritical:
		return 4
	case TierHigh:
		return 3
	case TierMedium:
		return 2
	default:
		return 1
	}
}

// Category classifies a message by its dominant topic
type Category string

const (
	CategoryStrategic     Category = "strategic"
	CategoryUrgent        Category = "urgent"
	CategoryOperational   Category = "operational"
	CategoryInformational Category = "informational"
)

// DigestItem wraps a message with everything the digest view needs.
// Derived and ephemeral; recomputed on every organize pass.
type DigestItem struct {
	Message        Message
	Priority       PriorityScore
	Category       Category
	IsVIP          bool
	ActionRequired bool
}

// TimeGroup is one named bucket of the digest (morning, today, this week, ...)
type TimeGroup struct {
	Label string
	Items []DigestItem
}

// Filters are independent boolean predicates ANDed together by the
// filter pipeline. An inactive filter always passes.
type Filters struct {
	VIPOnly    bool
	UrgentOnly bool
	UnreadOnly bool
}

// SortOrder selects how digest items are ordered within groups
type SortOrder string

const (
	SortByTime     SortOrder = "time"
	SortByPriority SortOrder = "priority"
	SortBySender   SortOrder = "sender"
)
