package vip

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/core"
)

type recordingStore struct {
	mu       sync.Mutex
	saved    [][]core.VIPContact
	seed     []core.VIPContact
	failSave error
}

func (s *recordingStore) Load(ctx context.Context, account string) ([]core.VIPContact, error) {
	return s.seed, nil
}

func (s *recordingStore) Save(ctx context.Context, account string, contacts []core.VIPContact) error {
	if s.failSave != nil {
		return s.failSave
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, contacts)
	return nil
}

func (s *recordingStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func testRegistry(t *testing.T, store core.RegistryStore) *Registry {
	t.Helper()
	r, err := NewRegistry("default", store, DefaultOptions(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func TestUpsertAssignsIDAndClampsImportance(t *testing.T) {
	r := testRegistry(t, nil)

	stored := r.Upsert(core.VIPContact{Address: "jane@corp.com", Importance: 150})
	if stored.ID == "" {
		t.Error("expected generated contact ID")
	}
	if stored.Importance != 100 {
		t.Errorf("importance = %d, want clamped to 100", stored.Importance)
	}

	low := r.Upsert(core.VIPContact{Address: "bob@corp.com", Importance: -3})
	if low.Importance != 1 {
		t.Errorf("importance = %d, want clamped to 1", low.Importance)
	}

	// Update keeps the same ID
	stored.Importance = 80
	again := r.Upsert(stored)
	if again.ID != stored.ID {
		t.Errorf("upsert changed ID: %s -> %s", stored.ID, again.ID)
	}
	if got := len(r.List()); got != 2 {
		t.Errorf("contacts = %d, want 2", got)
	}
}

func TestMatchImportance(t *testing.T) {
	r := testRegistry(t, nil)
	r.Upsert(core.VIPContact{Address: "jane@corp.com", DisplayName: "Jane Doe", Importance: 70})
	r.Upsert(core.VIPContact{Address: "jane@corp.com", DisplayName: "Jane (board)", Importance: 95})

	tests := []struct {
		name   string
		sender string
		want   int
	}{
		{"highest importance among matches", "Jane@Corp.com", 95},
		{"display name match", "mailer says jane doe wrote", 70},
		{"pattern fallback", "ceo@other.com", 85},
		{"default", "random@unknown.com", 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.MatchImportance(tt.sender); got != tt.want {
				t.Errorf("MatchImportance(%q) = %d, want %d", tt.sender, got, tt.want)
			}
		})
	}
}

func TestMatchImportanceEmptyRegistry(t *testing.T) {
	r := testRegistry(t, nil)
	if got := r.MatchImportance("random@unknown.com"); got != 40 {
		t.Errorf("MatchImportance = %d, want 40", got)
	}
}

func TestIsVIP(t *testing.T) {
	r := testRegistry(t, nil)
	r.Upsert(core.VIPContact{Address: "jane@corp.com", Importance: 70})

	if !r.IsVIP("jane@corp.com") {
		t.Error("registered contact should be VIP")
	}
	if !r.IsVIP("board@corp.com") {
		t.Error("pattern sender should be VIP")
	}
	if r.IsVIP("random@unknown.com") {
		t.Error("unknown sender should not be VIP")
	}
}

func TestRemove(t *testing.T) {
	r := testRegistry(t, nil)
	stored := r.Upsert(core.VIPContact{Address: "jane@corp.com", Importance: 70})

	if err := r.Remove(stored.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := r.Remove(stored.ID); err != ErrNotFound {
		t.Errorf("Remove again = %v, want ErrNotFound", err)
	}
	if got := r.MatchImportance("jane@corp.com"); got != 40 {
		t.Errorf("MatchImportance after remove = %d, want 40", got)
	}
}

func TestDetectCandidates(t *testing.T) {
	r := testRegistry(t, nil)
	r.Upsert(core.VIPContact{Address: "ceo@corp.com", Importance: 90})

	senders := []string{
		"ceo@corp.com",        // already registered
		"founder@startup.io",  // role match, new
		"head.of.ops@x.com",   // role match, new
		"noreply@updates.com", // no role
		"founder@startup.io",  // duplicate observation
	}
	got := r.DetectCandidates(senders)
	want := []string{"founder@startup.io", "head.of.ops@x.com"}
	if len(got) != len(want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidates[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDetectCandidatesNeverSuggestsRegistered(t *testing.T) {
	r := testRegistry(t, nil)
	for _, c := range []string{"ceo@corp.com", "director@corp.com"} {
		r.Upsert(core.VIPContact{Address: c, Importance: 80})
	}
	got := r.DetectCandidates([]string{"ceo@corp.com", "director@corp.com"})
	if len(got) != 0 {
		t.Errorf("candidates = %v, want none", got)
	}
}

func TestLoadsPersistedContacts(t *testing.T) {
	store := &recordingStore{seed: []core.VIPContact{
		{ID: "c1", Address: "jane@corp.com", Importance: 70},
	}}
	r := testRegistry(t, store)

	if got := r.MatchImportance("jane@corp.com"); got != 70 {
		t.Errorf("MatchImportance = %d, want 70 from persisted contact", got)
	}
}

func TestWriteThroughPersistence(t *testing.T) {
	store := &recordingStore{}
	r := testRegistry(t, store)

	stored := r.Upsert(core.VIPContact{Address: "jane@corp.com", Importance: 70})
	r.Remove(stored.ID)
	r.Flush()

	if got := store.saveCount(); got != 2 {
		t.Errorf("save count = %d, want 2", got)
	}
}

func TestPersistenceFailureIsNonFatal(t *testing.T) {
	store := &recordingStore{failSave: context.DeadlineExceeded}
	r := testRegistry(t, store)

	stored := r.Upsert(core.VIPContact{Address: "jane@corp.com", Importance: 70})
	r.Flush()

	// In-memory registry stays authoritative despite the failed write
	if got := r.MatchImportance("jane@corp.com"); got != 70 {
		t.Errorf("MatchImportance = %d, want 70", got)
	}
	if stored.ID == "" {
		t.Error("upsert should succeed even when persistence fails")
	}
}
