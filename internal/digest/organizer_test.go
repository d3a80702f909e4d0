package digest

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/core"
)

// fixedNow is a Friday evening so every sub-period of today is in the past
var fixedNow = time.Date(2025, 6, 13, 20, 30, 0, 0, time.UTC)

func testOrganizer(t *testing.T) *Organizer {
	t.Helper()
	o := NewOrganizer(DefaultTables(), zap.NewNop())
	o.now = func() time.Time { return fixedNow }
	return o
}

func item(id string, ts time.Time, score int) core.DigestItem {
	return core.DigestItem{
		Message: core.Message{
			ID:        id,
			Sender:    core.Sender{Address: id + "@corp.com"},
			Timestamp: ts,
		},
		Priority: core.PriorityScore{Score: score},
	}
}

func groupByLabel(groups []core.TimeGroup, label string) *core.TimeGroup {
	for i := range groups {
		if groups[i].Label == label {
			return &groups[i]
		}
	}
	return nil
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	o := testOrganizer(t)

	tests := []struct {
		name    string
		subject string
		body    string
		want    core.Category
	}{
		{"strategic", "Q3 roadmap", "", core.CategoryStrategic},
		{"urgent", "URGENT fix", "", core.CategoryUrgent},
		{"operational", "standup", "task list attached", core.CategoryOperational},
		{"informational", "newsletter", "nothing to act on", core.CategoryInformational},
		{"strategic beats operational", "planning the offsite meeting", "", core.CategoryStrategic},
		{"strategic beats urgent", "urgent strategy call", "", core.CategoryStrategic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built := o.BuildItem(core.Message{Subject: tt.subject, Body: tt.body}, core.PriorityScore{}, false)
			if built.Category != tt.want {
				t.Errorf("category = %s, want %s", built.Category, tt.want)
			}
		})
	}
}

func TestBuildItemActionRequired(t *testing.T) {
	o := testOrganizer(t)

	built := o.BuildItem(core.Message{Subject: "Can you approve the budget"}, core.PriorityScore{}, false)
	if !built.ActionRequired {
		t.Error("expected action required")
	}

	built = o.BuildItem(core.Message{Subject: "Weekly digest"}, core.PriorityScore{}, false)
	if built.ActionRequired {
		t.Error("expected no action required")
	}
}

func TestMorningMessageAppearsInMorningAndToday(t *testing.T) {
	o := testOrganizer(t)

	morning := fixedNow.Truncate(24 * time.Hour).Add(10 * time.Hour) // 10:00 today
	groups := o.Organize([]core.DigestItem{item("a", morning, 60)}, core.Filters{}, core.SortByTime)

	if g := groupByLabel(groups, LabelMorning); g == nil || len(g.Items) != 1 {
		t.Errorf("expected message in morning group, groups = %+v", groups)
	}
	if g := groupByLabel(groups, LabelToday); g == nil || len(g.Items) != 1 {
		t.Errorf("expected message in today group, groups = %+v", groups)
	}
}

func TestTimeBuckets(t *testing.T) {
	o := testOrganizer(t)
	dayStart := fixedNow.Truncate(24 * time.Hour)

	items := []core.DigestItem{
		item("morning", dayStart.Add(9*time.Hour), 60),
		item("afternoon", dayStart.Add(14*time.Hour), 60),
		item("evening", dayStart.Add(19*time.Hour), 60),
		item("yesterday", dayStart.Add(-10*time.Hour), 60),
		item("lastweek", fixedNow.AddDate(0, 0, -5), 60),
		item("ancient", fixedNow.AddDate(0, 0, -8), 60),
	}
	groups := o.Organize(items, core.Filters{}, core.SortByTime)

	wantMembers := map[string][]string{
		LabelMorning:   {"morning"},
		LabelAfternoon: {"afternoon"},
		LabelEvening:   {"evening"},
		LabelToday:     {"evening", "afternoon", "morning"},
		LabelYesterday: {"yesterday"},
		LabelThisWeek:  {"lastweek"},
	}
	for label, want := range wantMembers {
		g := groupByLabel(groups, label)
		if g == nil {
			t.Errorf("missing group %q", label)
			continue
		}
		if len(g.Items) != len(want) {
			t.Errorf("group %q has %d items, want %d", label, len(g.Items), len(want))
			continue
		}
		for i, id := range want {
			if g.Items[i].Message.ID != id {
				t.Errorf("group %q item %d = %q, want %q", label, i, g.Items[i].Message.ID, id)
			}
		}
	}

	// A message 8 days old appears in no group at all
	for _, g := range groups {
		for _, it := range g.Items {
			if it.Message.ID == "ancient" {
				t.Errorf("ancient message leaked into group %q", g.Label)
			}
		}
	}
}

func TestEmptyGroupsOmitted(t *testing.T) {
	o := testOrganizer(t)

	groups := o.Organize([]core.DigestItem{item("old", fixedNow.AddDate(0, 0, -3), 60)}, core.Filters{}, core.SortByTime)
	if len(groups) != 1 || groups[0].Label != LabelThisWeek {
		t.Errorf("groups = %+v, want only %q", groups, LabelThisWeek)
	}

	if got := o.Organize(nil, core.Filters{}, core.SortByTime); len(got) != 0 {
		t.Errorf("groups = %+v, want none", got)
	}
}

func TestSortOrders(t *testing.T) {
	o := testOrganizer(t)
	dayStart := fixedNow.Truncate(24 * time.Hour)

	a := item("alice", dayStart.Add(9*time.Hour), 40)
	b := item("bob", dayStart.Add(10*time.Hour), 90)
	c := item("carol", dayStart.Add(11*time.Hour), 70)
	items := []core.DigestItem{a, b, c}

	tests := []struct {
		order core.SortOrder
		want  []string
	}{
		{core.SortByTime, []string{"carol", "bob", "alice"}},
		{core.SortByPriority, []string{"bob", "carol", "alice"}},
		{core.SortBySender, []string{"alice", "bob", "carol"}},
	}
	for _, tt := range tests {
		groups := o.Organize(items, core.Filters{}, tt.order)
		g := groupByLabel(groups, LabelToday)
		if g == nil {
			t.Fatalf("order %s: missing today group", tt.order)
		}
		for i, id := range tt.want {
			if g.Items[i].Message.ID != id {
				t.Errorf("order %s: item %d = %q, want %q", tt.order, i, g.Items[i].Message.ID, id)
			}
		}
	}
}
