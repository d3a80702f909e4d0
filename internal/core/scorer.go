package core

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// FactorWeights holds the weighted-combination coefficients for one
// message source. Weights are non-negative and sum to 1.
type FactorWeights struct {
	Sender     float64
	Keywords   float64
	Urgency    float64
	VIP        float64
	Engagement float64
}

// ScoringTables holds every tunable constant of the scorer. The heuristic
// keyword lists and weights are configuration data, not code, so they can
// be adjusted without redeploying the engine.
type ScoringTables struct {
	InternalDomains  []string
	ImportantDomains []string
	CSuiteTokens     []string

	CriticalKeywords []string
	HighKeywords     []string
	MediumKeywords   []string

	UrgencyPatterns []string
	TodayPhrases    []string
	SoonPhrases     []string

	EmailWeights FactorWeights
	ChatWeights  FactorWeights
}

// DefaultScoringTables returns the hand-tuned default tables
func DefaultScoringTables() ScoringTables {
	return ScoringTables{
		InternalDomains:  []string{},
		ImportantDomains: []string{},
		CSuiteTokens:     []string{"ceo", "founder", "president"},
		CriticalKeywords: []string{"urgent", "asap", "emergency", "critical", "deadline", "breaking"},
		HighKeywords:     []string{"important", "meeting", "decision", "approve", "review", "action required"},
		MediumKeywords:   []string{"update", "fyi", "information", "notice", "reminder"},
		UrgencyPatterns:  []string{"urgent", "asap", "emergency", "deadline", "today", "now", "immediately", "time.sensitive"},
		TodayPhrases:     []string{"today", "this morning"},
		SoonPhrases:      []string{"tomorrow", "next week"},
		EmailWeights:     FactorWeights{Sender: 0.25, Keywords: 0.20, Urgency: 0.30, VIP: 0.20, Engagement: 0.05},
		ChatWeights:      FactorWeights{Sender: 0.20, Keywords: 0.25, Urgency: 0.35, VIP: 0.15, Engagement: 0.05},
	}
}

// Snapshot is the read-only context a single scoring call sees. Each
// message observes whatever registry and behavior state was current at
// its own lookup; the scorer itself holds no mutable state.
type Snapshot struct {
	VIP      VIPMatcher
	Behavior BehaviorReader
}

// Scorer computes priority scores for messages. It is pure and
// deterministic: no I/O, no clock, and it never fails for well-typed
// input. Missing text fields degrade to empty strings.
type Scorer struct {
	tables     ScoringTables
	urgencyRes []*regexp.Regexp
	logger     *zap.Logger
}

// NewScorer creates a scorer from the given tables, compiling the
// temporal-urgency patterns up front
func NewScorer(tables ScoringTables, logger *zap.Logger) (*Scorer, error) {
	res := make([]*regexp.Regexp, 0, len(tables.UrgencyPatterns))
	for _, p := range tables.UrgencyPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("invalid urgency pattern %q: %w", p, err)
		}
		res = append(res, re)
	}
	return &Scorer{
		tables:     tables,
		urgencyRes: res,
		logger:     logger,
	}, nil
}

// Score computes the priority score for a single message
func (s *Scorer) Score(msg Message, snap Snapshot) PriorityScore {
	senderText := strings.ToLower(strings.TrimSpace(msg.Sender.Address + " " + msg.Sender.DisplayName))
	contentText := strings.ToLower(msg.Subject + " " + msg.Body)

	factors := FactorBreakdown{
		Sender:     s.senderFactor(senderText, msg.Sender.Address),
		Keywords:   s.keywordFactor(contentText),
		Urgency:    s.urgencyFactor(contentText),
		VIP:        s.vipFactor(senderText, snap.VIP),
		Engagement: s.engagementFactor(msg.Sender.Address, snap.Behavior),
	}

	weights := s.tables.EmailWeights
	if msg.Source == SourceChat {
		weights = s.tables.ChatWeights
	}

	weighted := weights.Sender*float64(factors.Sender) +
		weights.Keywords*float64(factors.Keywords) +
		weights.Urgency*float64(factors.Urgency) +
		weights.VIP*float64(factors.VIP) +
		weights.Engagement*float64(factors.Engagement)

	score := clampFactor(int(math.Round(weighted)))

	result := PriorityScore{
		Score:       score,
		Confidence:  confidenceFor(factors),
		Factors:     factors,
		Explanation: explain(factors),
	}

	if s.logger != nil {
		s.logger.Debug("Scored message",
			zap.String("message_id", msg.ID),
			zap.String("sender", msg.Sender.Address),
			zap.Int("score", result.Score),
			zap.Int("confidence", result.Confidence),
			zap.Int("factor_sender", factors.Sender),
			zap.Int("factor_keywords", factors.Keywords),
			zap.Int("factor_urgency", factors.Urgency),
			zap.Int("factor_vip", factors.VIP),
			zap.Int("factor_engagement", factors.Engagement))
	}

	return result
}

// senderFactor rates the sender identity. Internal and important domain
// bonuses stack; a C-suite token forces the bonus to at least 40.
func (s *Scorer) senderFactor(senderText, address string) int {
	bonus := 0
	domain := domainOf(address)
	if domain != "" {
		if containsFold(s.tables.InternalDomains, domain) {
			bonus += 20
		}
		if containsFold(s.tables.ImportantDomains, domain) {
			bonus += 30
		}
	}
	for _, token := range s.tables.CSuiteTokens {
		if token != "" && strings.Contains(senderText, strings.ToLower(token)) {
			if bonus < 40 {
				bonus = 40
			}
			break
		}
	}
	return clampFactor(50 + bonus)
}

// keywordFactor rates content by counting keyword occurrences in three
// weight bands
func (s *Scorer) keywordFactor(content string) int {
	score := 40
	score += 15 * countOccurrences(content, s.tables.CriticalKeywords)
	score += 10 * countOccurrences(content, s.tables.HighKeywords)
	score += 5 * countOccurrences(content, s.tables.MediumKeywords)
	return clampFactor(score)
}

// urgencyFactor rates temporal pressure in the content
func (s *Scorer) urgencyFactor(content string) int {
	score := 30
	for _, re := range s.urgencyRes {
		score += 20 * len(re.FindAllStringIndex(content, -1))
	}
	if containsAny(content, s.tables.TodayPhrases) {
		score += 25
	}
	if containsAny(content, s.tables.SoonPhrases) {
		score += 10
	}
	return clampFactor(score)
}

// vipFactor defers to the registry snapshot; 40 is the neutral default
// when no matcher is available
func (s *Scorer) vipFactor(senderText string, vip VIPMatcher) int {
	if vip == nil {
		return 40
	}
	return clampFactor(vip.MatchImportance(senderText))
}

// engagementFactor rates historical interaction with the sender. An
// absent record yields the neutral base.
func (s *Scorer) engagementFactor(address string, behavior BehaviorReader) int {
	score := 40
	if behavior == nil {
		return score
	}
	rec, ok := behavior.Get(address)
	if !ok {
		return score
	}
	switch {
	case rec.Replies > 10:
		score += 20
	case rec.Replies > 5:
		score += 10
	}
	if rec.AverageResponseSeconds > 0 {
		switch {
		case rec.AverageResponseSeconds < 3600:
			score += 15
		case rec.AverageResponseSeconds < 86400:
			score += 10
		}
	}
	return clampFactor(score)
}

// confidenceFor derives confidence from the spread of the factor values:
// low variance means the factors agree, so confidence is high. Clamped
// to [50,100].
func confidenceFor(f FactorBreakdown) int {
	values := [5]float64{
		float64(f.Sender),
		float64(f.Keywords),
		float64(f.Urgency),
		float64(f.VIP),
		float64(f.Engagement),
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	confidence := 100 - 0.5*variance
	if confidence < 50 {
		confidence = 50
	}
	return int(math.Round(confidence))
}

// explain builds a short human-readable summary from the factors that
// pushed the score up
func explain(f FactorBreakdown) string {
	var clauses []string
	if f.VIP > 70 {
		clauses = append(clauses, "VIP contact")
	}
	if f.Urgency > 70 {
		clauses = append(clauses, "high urgency")
	}
	if f.Keywords > 70 {
		clauses = append(clauses, "important keywords")
	}
	if f.Sender > 70 {
		clauses = append(clauses, "trusted sender")
	}
	if f.Engagement > 70 {
		clauses = append(clauses, "high engagement")
	}
	if len(clauses) == 0 {
		return "Standard priority assessment"
	}
	return strings.Join(clauses, "; ")
}

func clampFactor(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// domainOf extracts the lowercase domain part of an address, or "" when
// the address has no single @
func domainOf(address string) string {
	parts := strings.Split(address, "@")
	if len(parts) != 2 || parts[1] == "" {
		return ""
	}
	return strings.ToLower(parts[1])
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), value) {
			return true
		}
	}
	return false
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(text, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func countOccurrences(text string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		total += strings.Count(text, strings.ToLower(kw))
	}
	return total
}
