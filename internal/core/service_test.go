package core_test

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/behavior"
	"github.com/mikey/inbox-priority/internal/core"
	"github.com/mikey/inbox-priority/internal/digest"
	"github.com/mikey/inbox-priority/internal/vip"
)

func testService(t *testing.T) (*core.TriageService, *vip.Registry, *behavior.Store) {
	t.Helper()
	logger := zap.NewNop()

	scorer, err := core.NewScorer(core.DefaultScoringTables(), logger)
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}
	registry, err := vip.NewRegistry("default", nil, vip.DefaultOptions(), logger)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	behaviorStore := behavior.NewStore(logger)
	organizer := digest.NewOrganizer(digest.DefaultTables(), logger)

	return core.NewTriageService(scorer, registry, behaviorStore, organizer, logger), registry, behaviorStore
}

func TestScoreItemSeesRegistryMutations(t *testing.T) {
	svc, _, _ := testService(t)
	msg := core.Message{
		Source:    core.SourceEmail,
		Sender:    core.Sender{Address: "jane@corp.com"},
		Subject:   "budget follow-up",
		Timestamp: time.Now(),
	}

	before := svc.ScoreItem(msg)
	if before.Factors.VIP != 40 {
		t.Fatalf("vip factor = %d before registration, want 40", before.Factors.VIP)
	}

	svc.UpsertVIPContact(core.VIPContact{Address: "jane@corp.com", Importance: 95})

	after := svc.ScoreItem(msg)
	if after.Factors.VIP != 95 {
		t.Errorf("vip factor = %d after registration, want 95", after.Factors.VIP)
	}
	if after.Score < before.Score {
		t.Errorf("score decreased after VIP add: %d -> %d", before.Score, after.Score)
	}
}

func TestScoreItemUsesEngagementHistory(t *testing.T) {
	svc, _, _ := testService(t)
	msg := core.Message{
		Source: core.SourceEmail,
		Sender: core.Sender{Address: "jane@corp.com"},
	}

	before := svc.ScoreItem(msg)
	svc.UpdateBehaviorData("jane@corp.com", core.BehaviorRecord{Replies: 12, AverageResponseSeconds: 600})
	after := svc.ScoreItem(msg)

	if after.Factors.Engagement <= before.Factors.Engagement {
		t.Errorf("engagement factor did not increase: %d -> %d",
			before.Factors.Engagement, after.Factors.Engagement)
	}
}

func TestOrganizeDigestEndToEnd(t *testing.T) {
	svc, _, _ := testService(t)
	svc.UpsertVIPContact(core.VIPContact{Address: "ceo@corp.com", Importance: 95})

	now := time.Now()
	msgs := []core.Message{
		{
			ID:        "m1",
			Source:    core.SourceEmail,
			Sender:    core.Sender{Address: "ceo@corp.com"},
			Subject:   "URGENT: decision needed today",
			Timestamp: now,
		},
		{
			ID:        "m2",
			Source:    core.SourceEmail,
			Sender:    core.Sender{Address: "newsletter@corp.com"},
			Subject:   "Weekly roundup",
			Timestamp: now,
			Read:      true,
		},
	}

	groups := svc.OrganizeDigest(msgs, core.Filters{VIPOnly: true}, core.SortByPriority)
	if len(groups) == 0 {
		t.Fatal("expected at least one group")
	}
	for _, g := range groups {
		for _, item := range g.Items {
			if item.Message.ID != "m1" {
				t.Errorf("non-VIP message %q survived the filter in group %q", item.Message.ID, g.Label)
			}
			if !item.IsVIP {
				t.Errorf("item %q not marked VIP", item.Message.ID)
			}
			if item.Category != core.CategoryUrgent {
				t.Errorf("category = %s, want urgent", item.Category)
			}
			if !item.ActionRequired {
				t.Error("expected action required for a decision request")
			}
		}
	}
}

func TestDetectVIPCandidatesViaService(t *testing.T) {
	svc, _, _ := testService(t)
	svc.UpsertVIPContact(core.VIPContact{Address: "ceo@corp.com", Importance: 90})

	got := svc.DetectVIPCandidates([]string{"ceo@corp.com", "investor@fund.com", "noreply@shop.com"})
	if len(got) != 1 || got[0] != "investor@fund.com" {
		t.Errorf("candidates = %v, want [investor@fund.com]", got)
	}
}

func TestPriorityLabel(t *testing.T) {
	svc, _, _ := testService(t)
	if got := svc.PriorityLabel(82); got != core.TierCritical {
		t.Errorf("label(82) = %s, want critical", got)
	}
	if got := svc.PriorityLabel(10); got != core.TierLow {
		t.Errorf("label(10) = %s, want low", got)
	}
}
