package engine

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindcart/mindcart/internal/advisor"
	"github.com/mindcart/mindcart/internal/catalog"
	"github.com/mindcart/mindcart/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(noopWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }

func testSnapshot() []model.CartEntry {
	return []model.CartEntry{
		{ItemID: "teddy-bear", Reason: "looked cute"},
		{ItemID: "milk"},
	}
}

func advisoryResult() model.AnalysisResult {
	return model.AnalysisResult{
		Source: model.SourceAdvisory,
		Items: []model.ItemAnalysis{
			{ItemID: "teddy-bear", Verdict: model.VerdictReconsider, Suggestion: "Sleep on it.", Price: 1200, Reason: "looked cute"},
			{ItemID: "milk", Verdict: model.VerdictKeep, Suggestion: "A staple.", Price: 60},
		},
		Summary: model.AnalysisSummary{
			IdentityBadge:    "Mindful Shopper",
			EstimatedSavings: 1200,
		},
		Personality: model.PersonalityProfile{Mindful: 70, Indulgent: 20, Emotional: 10},
	}
}

func TestEngine_Analyze_UsesAdvisor(t *testing.T) {
	mock := NewMockAdvisor(advisoryResult())
	eng := New(catalog.Default(), mock, testLogger())

	result := eng.Analyze(context.Background(), testSnapshot(), model.GoalEssentialsOnly)

	assert.Equal(t, model.SourceAdvisory, result.Source)
	assert.Equal(t, "Mindful Shopper", result.Summary.IdentityBadge)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, model.GoalEssentialsOnly, calls[0].Goal)
	require.Len(t, calls[0].Items, 2)

	// Catalog data is merged into the advisory payload.
	assert.Equal(t, "teddy-bear", calls[0].Items[0].Name)
	assert.InDelta(t, 1200.0, calls[0].Items[0].Price, 0.001)
	assert.Equal(t, model.CategoryImpulse, calls[0].Items[0].Category)
	assert.Equal(t, "looked cute", calls[0].Items[0].Reason)
}

func TestEngine_Analyze_FallbackOnAdvisoryError(t *testing.T) {
	failure := &advisor.AdvisoryError{Reason: advisor.ReasonItemMismatch, Err: assert.AnError}
	eng := New(catalog.Default(), NewFailingAdvisor(failure), testLogger())

	result := eng.Analyze(context.Background(), testSnapshot(), model.GoalBalancedShopping)

	assert.Equal(t, model.SourceFallback, result.Source)
	require.Len(t, result.Items, 2)
	assert.Equal(t, model.VerdictReconsider, result.Items[0].Verdict)
	assert.Equal(t, model.VerdictKeep, result.Items[1].Verdict)
	assert.InDelta(t, 1200.0, result.Summary.EstimatedSavings, 0.001)
}

func TestEngine_Analyze_NilAdvisor(t *testing.T) {
	eng := New(catalog.Default(), nil, testLogger())

	result := eng.Analyze(context.Background(), testSnapshot(), model.GoalBalancedShopping)

	assert.Equal(t, model.SourceFallback, result.Source)
	assert.Len(t, result.Items, 2)
}

func TestEngine_Analyze_RecomputesDeterministicFields(t *testing.T) {
	// The advisory reply claims wrong totals; the engine recomputes them
	// from the snapshot and catalog.
	tainted := advisoryResult()
	tainted.Summary.TotalItems = 99
	tainted.Summary.FlaggedItems = 99
	tainted.Categories = map[model.Category]int{model.CategoryLuxury: 42}

	eng := New(catalog.Default(), NewMockAdvisor(tainted), testLogger())
	result := eng.Analyze(context.Background(), testSnapshot(), model.GoalBalancedShopping)

	assert.Equal(t, 2, result.Summary.TotalItems)
	assert.Equal(t, 1, result.Summary.FlaggedItems)
	assert.Equal(t, map[model.Category]int{
		model.CategoryEssential: 1,
		model.CategoryTreat:     0,
		model.CategoryLuxury:    0,
		model.CategoryImpulse:   1,
	}, result.Categories)
}

func TestEngine_Analyze_PreservesOrderAndLength(t *testing.T) {
	snapshot := []model.CartEntry{
		{ItemID: "pizza"},
		{ItemID: "smartwatch"},
		{ItemID: "milk"},
		{ItemID: "lipstick"},
	}

	eng := New(catalog.Default(), nil, testLogger())
	result := eng.Analyze(context.Background(), snapshot, model.GoalGiftShopping)

	require.Len(t, result.Items, len(snapshot))
	for i, entry := range snapshot {
		assert.Equal(t, entry.ItemID, result.Items[i].ItemID)
	}
	assert.Equal(t, result.Summary.FlaggedItems, result.FlaggedCount())
}

func TestEngine_Analyze_EmptySnapshotSkipsAdvisor(t *testing.T) {
	mock := NewMockAdvisor(advisoryResult())
	eng := New(catalog.Default(), mock, testLogger())

	result := eng.Analyze(context.Background(), nil, model.GoalBalancedShopping)

	assert.Empty(t, mock.Calls())
	assert.Equal(t, model.SourceFallback, result.Source)
	assert.Equal(t, 0, result.Summary.TotalItems)
}

func TestEngine_Analyze_Deterministic(t *testing.T) {
	eng := New(catalog.Default(), nil, testLogger())
	snapshot := testSnapshot()

	first := eng.Analyze(context.Background(), snapshot, model.GoalBalancedShopping)
	second := eng.Analyze(context.Background(), snapshot, model.GoalBalancedShopping)

	assert.Equal(t, first, second)
}
