package model

import (
	"fmt"
	"strings"
)

// Verdict is the engine's classification of a single cart item.
type Verdict string

// Item verdicts.
const (
	VerdictKeep       Verdict = "Keep"
	VerdictReconsider Verdict = "Reconsider"
	VerdictOptional   Verdict = "Optional"
)

// NormalizeVerdict maps free-form verdict text from the advisory service
// onto the closed verdict set. The service decorates verdicts with emoji
// ("⚠️ Reconsider"), so matching is by substring, case-insensitive.
func NormalizeVerdict(s string) (Verdict, error) {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "reconsider"):
		return VerdictReconsider, nil
	case strings.Contains(lower, "keep"):
		return VerdictKeep, nil
	case strings.Contains(lower, "optional"):
		return VerdictOptional, nil
	default:
		return "", fmt.Errorf("unrecognized verdict: %q", s)
	}
}

// AnalysisSource records which analyzer produced a result.
type AnalysisSource string

// Analysis sources.
const (
	SourceAdvisory AnalysisSource = "advisory"
	SourceFallback AnalysisSource = "fallback"
)

// ItemAnalysis is the per-item slice of an analysis result. Items appear
// in the same order as the cart snapshot that produced them.
type ItemAnalysis struct {
	ItemID     string
	Verdict    Verdict
	Suggestion string
	Price      float64
	Reason     string
}

// AnalysisSummary aggregates the per-item verdicts.
type AnalysisSummary struct {
	IdentityBadge        string
	RewardRecommendation string
	TotalItems           int
	FlaggedItems         int
	EstimatedSavings     float64
}

// PersonalityProfile is the behavioral breakdown in percentages. The
// components should sum to 100 but rounding drift is accepted.
type PersonalityProfile struct {
	Mindful   float64
	Indulgent float64
	Emotional float64
}

// Validate checks that each component is a percentage.
func (p PersonalityProfile) Validate() error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"mindful", p.Mindful},
		{"indulgent", p.Indulgent},
		{"emotional", p.Emotional},
	} {
		if c.value < 0 || c.value > 100 {
			return fmt.Errorf("personality %s must be between 0 and 100, got %.1f", c.name, c.value)
		}
	}
	return nil
}

// AnalysisResult is the full verdict/suggestion/savings report for one
// cart snapshot.
type AnalysisResult struct {
	Categories  map[Category]int
	Source      AnalysisSource
	Items       []ItemAnalysis
	Summary     AnalysisSummary
	Personality PersonalityProfile
}

// Validate checks the result invariants: items match the snapshot 1:1
// and in order, flagged count equals the Reconsider count, savings are
// non-negative, and every category has a (possibly zero) count.
func (r AnalysisResult) Validate(snapshot []CartEntry) error {
	if len(r.Items) != len(snapshot) {
		return fmt.Errorf("result has %d items for a %d item cart", len(r.Items), len(snapshot))
	}
	flagged := 0
	for i, item := range r.Items {
		if item.ItemID != snapshot[i].ItemID {
			return fmt.Errorf("item %d: result %q does not match cart %q", i, item.ItemID, snapshot[i].ItemID)
		}
		switch item.Verdict {
		case VerdictKeep, VerdictOptional:
		case VerdictReconsider:
			flagged++
		default:
			return fmt.Errorf("item %d: invalid verdict %q", i, item.Verdict)
		}
	}
	if r.Summary.TotalItems != len(snapshot) {
		return fmt.Errorf("summary total %d does not match cart size %d", r.Summary.TotalItems, len(snapshot))
	}
	if r.Summary.FlaggedItems != flagged {
		return fmt.Errorf("summary flags %d items but %d verdicts are Reconsider", r.Summary.FlaggedItems, flagged)
	}
	if r.Summary.EstimatedSavings < 0 {
		return fmt.Errorf("estimated savings must be non-negative, got %.2f", r.Summary.EstimatedSavings)
	}
	for _, cat := range AllCategories() {
		if _, ok := r.Categories[cat]; !ok {
			return fmt.Errorf("categories missing %s count", cat)
		}
	}
	if err := r.Personality.Validate(); err != nil {
		return err
	}
	return nil
}

// FlaggedCount returns the number of Reconsider verdicts in the result.
func (r AnalysisResult) FlaggedCount() int {
	count := 0
	for _, item := range r.Items {
		if item.Verdict == VerdictReconsider {
			count++
		}
	}
	return count
}
