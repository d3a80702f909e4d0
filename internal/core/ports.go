package core

import (
	"context"
)

// VIPMatcher is the read-only view of the VIP registry used while scoring
type VIPMatcher interface {
	// MatchImportance returns the importance of the best VIP match for a
	// sender string, falling back to pattern matching and finally a default
	MatchImportance(sender string) int

	// IsVIP reports whether a sender matches any registry contact or
	// static VIP pattern
	IsVIP(sender string) bool
}

// VIPRegistry is the full contact registry contract
type VIPRegistry interface {
	VIPMatcher

	// List returns a snapshot of all contacts
	List() []VIPContact

	// Upsert adds or updates a contact, clamping importance into [1,100]
	// and assigning an ID when missing. Returns the stored contact.
	Upsert(contact VIPContact) VIPContact

	// Remove deletes a contact by ID
	Remove(id string) error

	// DetectCandidates scans observed sender identifiers for
	// role-indicating substrings and returns those not already registered
	DetectCandidates(senders []string) []string
}

// BehaviorReader provides engagement history lookups during scoring
type BehaviorReader interface {
	// Get returns the engagement record for a contact key, reporting
	// whether one exists
	Get(contact string) (BehaviorRecord, bool)
}

// BehaviorStore extends BehaviorReader with the outward-facing merge update
type BehaviorStore interface {
	BehaviorReader

	// Update merges a partial record into the contact's history and
	// returns the merged result
	Update(contact string, partial BehaviorRecord) BehaviorRecord
}

// RegistryStore persists the serialized VIP contact list keyed by account
type RegistryStore interface {
	// Load retrieves the contact list for an account. A missing account
	// yields an empty list, not an error.
	Load(ctx context.Context, account string) ([]VIPContact, error)

	// Save stores the full contact list for an account
	Save(ctx context.Context, account string, contacts []VIPContact) error
}

// DigestOrganizer turns scored messages into grouped, filtered, sorted views
type DigestOrganizer interface {
	// BuildItem derives the digest wrapper (category, action flag) for a
	// scored message
	BuildItem(msg Message, score PriorityScore, isVIP bool) DigestItem

	// Organize buckets items into time groups, applying filters and sort
	// order. Empty groups are omitted.
	Organize(items []DigestItem, filters Filters, order SortOrder) []TimeGroup
}
