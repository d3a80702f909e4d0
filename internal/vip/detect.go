package vip

import (
	"strings"
)

// DetectCandidates scans observed sender identifiers for role-indicating
// substrings and returns the ones not already covered by a registered
// contact. This is a suggestion mechanism only: candidates are returned
// for user confirmation and never auto-added.
func (r *Registry) DetectCandidates(senders []string) []string {
	var candidates []string
	seen := make(map[string]struct{})

	for _, sender := range senders {
		needle := strings.ToLower(strings.TrimSpace(sender))
		if needle == "" {
			continue
		}
		if _, dup := seen[needle]; dup {
			continue
		}
		if !matchesPattern(needle, r.opts.DetectionRoles) {
			continue
		}
		if r.isRegistered(needle) {
			continue
		}
		seen[needle] = struct{}{}
		candidates = append(candidates, sender)
	}
	return candidates
}

func (r *Registry) isRegistered(needle string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.contacts {
		if contactMatches(c, needle) {
			return true
		}
	}
	return false
}
