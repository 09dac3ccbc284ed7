// Package engine implements the cart analysis engine. It orchestrates
// the advisory client with the deterministic fallback analyzer so that
// analysis always succeeds with a well-formed result.
package engine

import (
	"context"
	"log/slog"

	"github.com/mindcart/mindcart/internal/advisor"
	"github.com/mindcart/mindcart/internal/catalog"
	"github.com/mindcart/mindcart/internal/model"
)

// Advisor is the external advisory boundary consumed by the engine.
type Advisor interface {
	Advise(ctx context.Context, items []advisor.CartItem, goal model.ShoppingGoal) (model.AnalysisResult, error)
}

// Engine analyzes cart snapshots against a shopping goal.
type Engine struct {
	catalog  *catalog.Catalog
	advisor  Advisor
	fallback *FallbackAnalyzer
	logger   *slog.Logger
}

// New creates an analysis engine. The advisor may be nil, in which case
// every analysis uses the deterministic fallback.
func New(cat *catalog.Catalog, adv Advisor, logger *slog.Logger) *Engine {
	return &Engine{
		catalog:  cat,
		advisor:  adv,
		fallback: NewFallbackAnalyzer(cat),
		logger:   logger,
	}
}

// Analyze produces a verdict report for the snapshot. It never fails:
// any advisory error is logged and recovered by the fallback analyzer.
// Category counts and item totals are always recomputed from the
// snapshot and catalog rather than trusted from the advisory reply.
func (e *Engine) Analyze(ctx context.Context, snapshot []model.CartEntry, goal model.ShoppingGoal) model.AnalysisResult {
	if e.advisor != nil && len(snapshot) > 0 {
		result, err := e.advisor.Advise(ctx, e.cartItems(snapshot), goal)
		if err == nil {
			e.finalize(&result, snapshot)
			return result
		}

		e.logger.Warn("advisory analysis unavailable, using fallback",
			"error", err,
			"item_count", len(snapshot))
	}

	result := e.fallback.Analyze(snapshot, goal)
	e.finalize(&result, snapshot)
	return result
}

// cartItems merges catalog data into the snapshot for the advisory
// request payload.
func (e *Engine) cartItems(snapshot []model.CartEntry) []advisor.CartItem {
	items := make([]advisor.CartItem, len(snapshot))
	for i, entry := range snapshot {
		catEntry, err := e.catalog.Get(entry.ItemID)
		if err != nil {
			// The cart store rejects unknown items on add, so this only
			// happens if the catalog changed underneath a live session.
			e.logger.Error("cart entry missing from catalog", "item_id", entry.ItemID)
		}
		items[i] = advisor.CartItem{
			Name:     entry.ItemID,
			Price:    catEntry.UnitPrice,
			Category: catEntry.Category,
			Reason:   entry.Reason,
		}
	}
	return items
}

// finalize recomputes the deterministic fields of a result from the
// snapshot: category counts, total items, and flagged items.
func (e *Engine) finalize(result *model.AnalysisResult, snapshot []model.CartEntry) {
	categories := make(map[model.Category]int, 4)
	for _, category := range model.AllCategories() {
		categories[category] = 0
	}
	for _, entry := range snapshot {
		catEntry, err := e.catalog.Get(entry.ItemID)
		if err != nil {
			continue
		}
		categories[catEntry.Category]++
	}

	result.Categories = categories
	result.Summary.TotalItems = len(snapshot)
	result.Summary.FlaggedItems = result.FlaggedCount()
}
