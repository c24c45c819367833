// Package screening holds the scoring engine and decision classifier. Both
// are pure: identical inputs always produce identical outputs.
package screening

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
)

type Decision string

const (
	DecisionShortlist  Decision = "SHORTLIST"
	DecisionAutoReject Decision = "AUTO-REJECT"
	DecisionReceived   Decision = "RECEIVED"
)

// Default thresholds used when a job has no RuleSet.
const (
	DefaultShortlistThreshold = 35
	DefaultRejectThreshold    = 15
)

// Scoring weights. Must-have keywords dominate: a hit is worth four
// preferred hits and a miss actively pulls the score down.
const (
	mustHaveHitWeight   = 20
	mustHaveMissPenalty = 10
	preferredHitWeight  = 5
	maxScore            = 100
)

// stopWords filters common English words that add noise to keyword matching.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "such": true,
}

// tokenize lowercases text into a keyword set, skipping stop words and
// tokens shorter than 3 runes. Tech terms like "c++" and "node.js"
// survive because + # . count as word characters.
func tokenize(text string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) >= 3 && !stopWords[w] {
			kw[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return kw
}

// containsKeyword reports whether every token of the keyword appears in the
// candidate token set, so multi-word keywords like "loan officer" match too.
func containsKeyword(candidateKW map[string]bool, keyword string) bool {
	tokens := tokenize(keyword)
	if len(tokens) == 0 {
		return false
	}
	for t := range tokens {
		if !candidateKW[t] {
			return false
		}
	}
	return true
}

// DefaultRuleSet is the fallback applied when a job has no stored rules:
// empty keyword lists with the default thresholds.
func DefaultRuleSet() models.RuleSet {
	return models.RuleSet{
		ShortlistThreshold: DefaultShortlistThreshold,
		RejectThreshold:    DefaultRejectThreshold,
	}
}

// Score computes the candidate's fit against the rule set and an ordered
// list of human-readable reasons. jobText currently only feeds the
// tokenizer for context matching of multi-word keywords; the keyword lists
// themselves come from the rule set.
func Score(candidateText, jobText string, rules models.RuleSet) (float64, []string) {
	candidateKW := tokenize(candidateText)

	score := 0.0
	reasons := make([]string, 0, len(rules.MustHave)+len(rules.Preferred))
	for _, kw := range rules.MustHave {
		if containsKeyword(candidateKW, kw) {
			score += mustHaveHitWeight
			reasons = append(reasons, fmt.Sprintf("matched must-have: %s", kw))
		} else {
			score -= mustHaveMissPenalty
			reasons = append(reasons, fmt.Sprintf("missing must-have: %s", kw))
		}
	}
	for _, kw := range rules.Preferred {
		if containsKeyword(candidateKW, kw) {
			score += preferredHitWeight
			reasons = append(reasons, fmt.Sprintf("matched preferred: %s", kw))
		}
	}

	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}
	return score, reasons
}

// Classify maps a score onto a decision. Ties favor the stricter outcome:
// the shortlist boundary is inclusive-shortlist, the reject boundary is
// inclusive-reject.
func Classify(score float64, rules models.RuleSet) Decision {
	switch {
	case score >= rules.ShortlistThreshold:
		return DecisionShortlist
	case score <= rules.RejectThreshold:
		return DecisionAutoReject
	default:
		return DecisionReceived
	}
}

// InitialStatus derives an application's starting status from the decision.
func InitialStatus(d Decision) models.ApplicationStatus {
	switch d {
	case DecisionShortlist:
		return models.AppShortlisted
	case DecisionAutoReject:
		return models.AppRejected
	default:
		return models.AppReceived
	}
}
