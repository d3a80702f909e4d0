package vip

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/core"
)

// ErrNotFound is returned when a contact ID is not in the registry
var ErrNotFound = errors.New("vip contact not found")

const (
	defaultImportance = 40
	patternImportance = 85
)

// Options tunes registry matching and candidate detection
type Options struct {
	// Patterns are static sender substrings (ceo@, board@, ...) treated
	// as VIP even without a registered contact
	Patterns []string

	// DetectionRoles are role-indicating substrings used by candidate
	// detection
	DetectionRoles []string

	// PersistTimeout bounds each background persistence write
	PersistTimeout time.Duration
}

// DefaultOptions returns the stock pattern and role tables
func DefaultOptions() Options {
	return Options{
		Patterns:       []string{"ceo@", "founder@", "president@", "chairman@", "board@", "investor@", "partner@", "director@"},
		DetectionRoles: []string{"ceo", "founder", "president", "director", "head", "lead", "manager", "board", "investor"},
		PersistTimeout: 5 * time.Second,
	}
}

// Registry is the in-process VIP contact registry. The in-memory cache is
// the source of truth for the running process; every mutation triggers a
// write-through of the full serialized contact list to the backing store.
// Persistence is issued after the cache update and is not awaited by
// callers, so durability is eventual.
type Registry struct {
	mu       sync.RWMutex
	contacts map[string]core.VIPContact

	account string
	store   core.RegistryStore
	opts    Options
	logger  *zap.Logger
	writes  sync.WaitGroup
}

// NewRegistry creates a registry for one account, loading any previously
// persisted contacts
func NewRegistry(account string, store core.RegistryStore, opts Options, logger *zap.Logger) (*Registry, error) {
	r := &Registry{
		contacts: make(map[string]core.VIPContact),
		account:  account,
		store:    store,
		opts:     opts,
		logger:   logger,
	}
	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), opts.PersistTimeout)
		defer cancel()
		contacts, err := store.Load(ctx, account)
		if err != nil {
			return nil, err
		}
		for _, c := range contacts {
			r.contacts[c.ID] = c
		}
		if len(contacts) > 0 {
			logger.Info("Loaded VIP registry",
				zap.String("account", account),
				zap.Int("contacts", len(contacts)))
		}
	}
	return r, nil
}

// List returns all contacts ordered by importance descending, then by
// display name for a stable listing
func (r *Registry) List() []core.VIPContact {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contacts := make([]core.VIPContact, 0, len(r.contacts))
	for _, c := range r.contacts {
		contacts = append(contacts, c)
	}
	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].Importance != contacts[j].Importance {
			return contacts[i].Importance > contacts[j].Importance
		}
		return contacts[i].DisplayName < contacts[j].DisplayName
	})
	return contacts
}

// Upsert adds or updates a contact. Importance outside [1,100] is clamped,
// not rejected; a missing ID gets a generated one.
func (r *Registry) Upsert(contact core.VIPContact) core.VIPContact {
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	if contact.Importance < 1 {
		contact.Importance = 1
	}
	if contact.Importance > 100 {
		contact.Importance = 100
	}

	r.mu.Lock()
	r.contacts[contact.ID] = contact
	r.mu.Unlock()

	r.persist()
	return contact
}

// Remove deletes a contact by ID
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	if _, ok := r.contacts[id]; !ok {
		r.mu.Unlock()
		return ErrNotFound
	}
	delete(r.contacts, id)
	r.mu.Unlock()

	r.persist()
	return nil
}

// MatchImportance resolves a sender string to an importance value:
// the highest importance among substring-matching contacts, else the
// static pattern score, else the default
func (r *Registry) MatchImportance(sender string) int {
	needle := strings.ToLower(sender)

	r.mu.RLock()
	best := 0
	for _, c := range r.contacts {
		if contactMatches(c, needle) && c.Importance > best {
			best = c.Importance
		}
	}
	r.mu.RUnlock()

	if best > 0 {
		return best
	}
	if matchesPattern(needle, r.opts.Patterns) {
		return patternImportance
	}
	return defaultImportance
}

// IsVIP reports whether a sender matches a registered contact or a static
// VIP pattern
func (r *Registry) IsVIP(sender string) bool {
	needle := strings.ToLower(sender)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.contacts {
		if contactMatches(c, needle) {
			return true
		}
	}
	return matchesPattern(needle, r.opts.Patterns)
}

// Flush waits for all issued persistence writes to settle. Called on
// shutdown so the last mutation reaches the store.
func (r *Registry) Flush() {
	r.writes.Wait()
}

// persist snapshots the contact list and writes it through to the store
// on a background goroutine. Failures are logged as warnings; the
// in-memory registry stays authoritative for the running process.
func (r *Registry) persist() {
	if r.store == nil {
		return
	}
	snapshot := r.List()
	r.writes.Add(1)
	go func() {
		defer r.writes.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.opts.PersistTimeout)
		defer cancel()
		if err := r.store.Save(ctx, r.account, snapshot); err != nil {
			r.logger.Warn("Failed to persist VIP registry",
				zap.String("account", r.account),
				zap.Int("contacts", len(snapshot)),
				zap.Error(err))
		}
	}()
}

// contactMatches does case-insensitive substring matching of the
// contact's address or display name against the observed sender string.
// Empty contact fields never match.
func contactMatches(c core.VIPContact, needle string) bool {
	address := strings.ToLower(strings.TrimSpace(c.Address))
	name := strings.ToLower(strings.TrimSpace(c.DisplayName))
	if address != "" && strings.Contains(needle, address) {
		return true
	}
	if name != "" && strings.Contains(needle, name) {
		return true
	}
	return false
}

func matchesPattern(needle string, patterns []string) bool {
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && strings.Contains(needle, p) {
			return true
		}
	}
	return false
}
