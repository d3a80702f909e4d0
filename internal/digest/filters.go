package digest

import (
	"github.com/mikey/inbox-priority/internal/core"
)

// ApplyFilters applies the active behavioral filters to a batch of digest
// items. Filters are independent predicates ANDed together; an inactive
// filter always passes. The pipeline is stateless and idempotent.
func (o *Organizer) ApplyFilters(items []core.DigestItem, filters core.Filters) []core.DigestItem {
	out := make([]core.DigestItem, 0, len(items))
	for _, item := range items {
		if filters.VIPOnly && !item.IsVIP {
			continue
		}
		if filters.UrgentOnly && !o.isUrgentItem(item) {
			continue
		}
		if filters.UnreadOnly && item.Message.Read {
			continue
		}
		out = append(out, item)
	}
	return out
}

// isUrgentItem checks the message content against the urgent keyword
// table rather than trusting a cached category
func (o *Organizer) isUrgentItem(item core.DigestItem) bool {
	return matchesAny(contentOf(item.Message), o.tables.UrgentKeywords)
}
