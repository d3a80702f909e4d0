package digest

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/core"
)

// Group labels in presentation order
const (
	LabelMorning   = "morning"
	LabelAfternoon = "afternoon"
	LabelEvening   = "evening"
	LabelToday     = "today"
	LabelYesterday = "yesterday"
	LabelThisWeek  = "this week"
)

// Tables holds the keyword lists driving categorization, action detection
// and the urgent filter. Configuration data, tunable without redeploy.
type Tables struct {
	StrategicKeywords   []string
	UrgentKeywords      []string
	OperationalKeywords []string
	ActionKeywords      []string
}

// DefaultTables returns the stock categorization tables
func DefaultTables() Tables {
	return Tables{
		StrategicKeywords:   []string{"strategy", "planning", "roadmap"},
		UrgentKeywords:      []string{"urgent", "asap", "emergency"},
		OperationalKeywords: []string{"meeting", "task", "project"},
		ActionKeywords:      []string{"please", "can you", "need", "request", "approve", "review", "decision"},
	}
}

// Organizer buckets scored messages into time-aware groups and applies
// the user's filters and sort order
type Organizer struct {
	tables Tables
	now    func() time.Time
	logger *zap.Logger
}

// NewOrganizer creates a digest organizer
func NewOrganizer(tables Tables, logger *zap.Logger) *Organizer {
	return &Organizer{
		tables: tables,
		now:    time.Now,
		logger: logger,
	}
}

// BuildItem derives the digest wrapper for a scored message
func (o *Organizer) BuildItem(msg core.Message, score core.PriorityScore, isVIP bool) core.DigestItem {
	content := contentOf(msg)
	return core.DigestItem{
		Message:        msg,
		Priority:       score,
		Category:       o.categorize(content),
		IsVIP:          isVIP,
		ActionRequired: matchesAny(content, o.tables.ActionKeywords),
	}
}

// categorize assigns the first matching category in fixed priority order.
// Order matters: a message mentioning both "roadmap" and "meeting" is
// strategic, not operational.
func (o *Organizer) categorize(content string) core.Category {
	switch {
	case matchesAny(content, o.tables.StrategicKeywords):
		return core.CategoryStrategic
	case matchesAny(content, o.tables.UrgentKeywords):
		return core.CategoryUrgent
	case matchesAny(content, o.tables.OperationalKeywords):
		return core.CategoryOperational
	default:
		return core.CategoryInformational
	}
}

// Organize applies filters, buckets items into time groups and sorts each
// group. Sub-period groups (morning/afternoon/evening) overlap with the
// parent "today" group; empty groups are omitted.
func (o *Organizer) Organize(items []core.DigestItem, filters core.Filters, order core.SortOrder) []core.TimeGroup {
	filtered := o.ApplyFilters(items, filters)
	now := o.now()

	buckets := []struct {
		label  string
		member func(time.Time) bool
	}{
		{LabelMorning, func(ts time.Time) bool { return isToday(ts, now) && hourIn(ts, 6, 11) }},
		{LabelAfternoon, func(ts time.Time) bool { return isToday(ts, now) && hourIn(ts, 12, 17) }},
		{LabelEvening, func(ts time.Time) bool { return isToday(ts, now) && hourIn(ts, 18, 23) }},
		{LabelToday, func(ts time.Time) bool { return isToday(ts, now) }},
		{LabelYesterday, func(ts time.Time) bool { return isYesterday(ts, now) }},
		{LabelThisWeek, func(ts time.Time) bool { return isEarlierThisWeek(ts, now) }},
	}

	var groups []core.TimeGroup
	for _, bucket := range buckets {
		var members []core.DigestItem
		for _, item := range filtered {
			if bucket.member(item.Message.Timestamp.In(now.Location())) {
				members = append(members, item)
			}
		}
		if len(members) == 0 {
			continue
		}
		o.sortItems(members, order)
		groups = append(groups, core.TimeGroup{Label: bucket.label, Items: members})
	}

	if o.logger != nil {
		o.logger.Debug("Built digest groups",
			zap.Int("items_in", len(items)),
			zap.Int("items_filtered", len(filtered)),
			zap.Int("groups", len(groups)))
	}
	return groups
}

// sortItems orders a group in place. Sorts are stable with a descending
// timestamp tie-break so repeated organize calls are deterministic.
func (o *Organizer) sortItems(items []core.DigestItem, order core.SortOrder) {
	switch order {
	case core.SortByPriority:
		sort.SliceStable(items, func(i, j int) bool {
			wi := core.TierWeight(core.TierForScore(items[i].Priority.Score))
			wj := core.TierWeight(core.TierForScore(items[j].Priority.Score))
			if wi != wj {
				return wi > wj
			}
			return items[i].Message.Timestamp.After(items[j].Message.Timestamp)
		})
	case core.SortBySender:
		sort.SliceStable(items, func(i, j int) bool {
			si := strings.ToLower(items[i].Message.Sender.Address)
			sj := strings.ToLower(items[j].Message.Sender.Address)
			if si != sj {
				return si < sj
			}
			return items[i].Message.Timestamp.After(items[j].Message.Timestamp)
		})
	default: // SortByTime
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Message.Timestamp.After(items[j].Message.Timestamp)
		})
	}
}

func isToday(ts, now time.Time) bool {
	return sameDay(ts, now)
}

func isYesterday(ts, now time.Time) bool {
	return sameDay(ts, now.AddDate(0, 0, -1))
}

// isEarlierThisWeek covers the rolling 7-day window, excluding the days
// already surfaced as "today" and "yesterday"
func isEarlierThisWeek(ts, now time.Time) bool {
	if sameDay(ts, now) || sameDay(ts, now.AddDate(0, 0, -1)) {
		return false
	}
	cutoff := now.AddDate(0, 0, -7)
	return ts.After(cutoff) && !ts.After(now)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func hourIn(ts time.Time, from, to int) bool {
	h := ts.Hour()
	return h >= from && h <= to
}

func contentOf(msg core.Message) string {
	return strings.ToLower(msg.Subject + " " + msg.Body)
}

func matchesAny(content string, keywords []string) bool {
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(content, kw) {
			return true
		}
	}
	return false
}
