package engine

import (
	"github.com/mindcart/mindcart/internal/catalog"
	"github.com/mindcart/mindcart/internal/model"
)

// Fallback defaults used when the advisory service is unavailable.
const (
	fallbackBadge = "Balanced Shopper"

	// Savings assumption: a rational shopper drops the full price of an
	// impulse buy but only defers part of a luxury purchase.
	luxurySavingsRate  = 0.3
	impulseSavingsRate = 1.0
)

var fallbackPersonality = model.PersonalityProfile{Mindful: 70, Indulgent: 20, Emotional: 10}

// FallbackAnalyzer produces deterministic, category-driven verdicts
// without any external call. It is a total function over cart snapshots
// and acts as the engine's guaranteed-success safety net.
type FallbackAnalyzer struct {
	catalog *catalog.Catalog
}

// NewFallbackAnalyzer creates a fallback analyzer over the catalog.
func NewFallbackAnalyzer(cat *catalog.Catalog) *FallbackAnalyzer {
	return &FallbackAnalyzer{catalog: cat}
}

// Analyze produces a verdict for every snapshot item, keyed solely by
// catalog category. Calling it twice on the same input yields identical
// results.
func (f *FallbackAnalyzer) Analyze(snapshot []model.CartEntry, _ model.ShoppingGoal) model.AnalysisResult {
	items := make([]model.ItemAnalysis, len(snapshot))
	totalSavings := 0.0

	for i, entry := range snapshot {
		catEntry, err := f.catalog.Get(entry.ItemID)
		if err != nil {
			// Unknown entries cannot be judged; keep the result aligned
			// with the snapshot and claim no savings for them.
			items[i] = model.ItemAnalysis{
				ItemID:     entry.ItemID,
				Verdict:    model.VerdictOptional,
				Suggestion: "This item is not in the catalog, so no analysis is available.",
				Reason:     entry.Reason,
			}
			continue
		}

		verdict, suggestion, savings := f.judge(catEntry)
		totalSavings += savings

		items[i] = model.ItemAnalysis{
			ItemID:     entry.ItemID,
			Verdict:    verdict,
			Suggestion: suggestion,
			Price:      catEntry.UnitPrice,
			Reason:     entry.Reason,
		}
	}

	return model.AnalysisResult{
		Source: model.SourceFallback,
		Items:  items,
		Summary: model.AnalysisSummary{
			TotalItems:       len(snapshot),
			EstimatedSavings: totalSavings,
			IdentityBadge:    fallbackBadge,
		},
		Personality: fallbackPersonality,
	}
}

// judge applies the category rule table to a single item.
func (f *FallbackAnalyzer) judge(entry model.CatalogEntry) (model.Verdict, string, float64) {
	switch entry.Category {
	case model.CategoryEssential:
		return model.VerdictKeep, "This is an essential item for your daily needs.", 0
	case model.CategoryTreat:
		return model.VerdictOptional, "This is a treat - enjoy responsibly if it fits your budget.", 0
	case model.CategoryLuxury:
		return model.VerdictReconsider, "This is a luxury item. Consider if it's truly necessary right now.", entry.UnitPrice * luxurySavingsRate
	case model.CategoryImpulse:
		return model.VerdictReconsider, "This seems like an impulse purchase. Take a moment to think.", entry.UnitPrice * impulseSavingsRate
	default:
		return model.VerdictOptional, "Consider if this purchase aligns with your goals.", 0
	}
}
