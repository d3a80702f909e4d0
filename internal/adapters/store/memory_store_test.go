package store

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/core"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	contacts := []core.VIPContact{
		{ID: "c1", Address: "jane@corp.com", Importance: 95, Relationship: core.RelBoard},
		{ID: "c2", Address: "bob@corp.com", Importance: 60, Relationship: core.RelPeer},
	}
	if err := s.Save(ctx, "acct-1", contacts); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := s.Load(ctx, "acct-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d contacts, want 2", len(loaded))
	}
	if loaded[0].ID != "c1" || loaded[0].Importance != 95 {
		t.Errorf("loaded[0] = %+v, want c1/95", loaded[0])
	}
}

func TestMemoryStoreMissingAccount(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())

	loaded, err := s.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("loaded %d contacts for missing account, want 0", len(loaded))
	}
}

func TestMemoryStoreIsolatesSnapshots(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	contacts := []core.VIPContact{{ID: "c1", Address: "jane@corp.com", Importance: 95}}
	s.Save(ctx, "acct-1", contacts)

	// Mutating the caller's slice must not affect the stored copy
	contacts[0].Importance = 1

	loaded, _ := s.Load(ctx, "acct-1")
	if loaded[0].Importance != 95 {
		t.Errorf("stored contact mutated: importance = %d, want 95", loaded[0].Importance)
	}
}
