package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mindcart/mindcart/internal/catalog"
	"github.com/mindcart/mindcart/internal/common"
	"github.com/mindcart/mindcart/internal/engine"
	"github.com/mindcart/mindcart/internal/model"
)

// Ledger is the append-only session history consumed by the Session.
type Ledger interface {
	RecordSession(ctx context.Context, record model.SessionRecord) (model.SessionRecord, error)
	ListSessions(ctx context.Context) ([]model.SessionRecord, error)
	ProgressStats(ctx context.Context) (model.ProgressStats, error)
}

// Session is the single entry point the presentation layer drives. It
// owns the cart, the justification log, the navigation machine, the
// chosen goal, and the latest analysis result. One Session serves one
// shopper; it is not safe for concurrent use.
type Session struct {
	catalog        *catalog.Catalog
	engine         *engine.Engine
	ledger         Ledger
	logger         *slog.Logger
	cart           *CartStore
	justifications *JustificationLog
	nav            *Navigation
	analysis       *model.AnalysisResult
	goal           model.ShoppingGoal
}

// New creates a fresh session on the landing page with an empty cart.
func New(cat *catalog.Catalog, eng *engine.Engine, ledger Ledger, logger *slog.Logger) *Session {
	return &Session{
		catalog:        cat,
		engine:         eng,
		ledger:         ledger,
		logger:         logger,
		cart:           NewCartStore(cat),
		justifications: NewJustificationLog(),
		nav:            NewNavigation(),
	}
}

// SetGoal records the shopping goal for this session. A goal must be
// chosen before cart building can start.
func (s *Session) SetGoal(goal model.ShoppingGoal) error {
	for _, g := range model.AllGoals() {
		if g == goal {
			s.goal = goal
			return nil
		}
	}
	return fmt.Errorf("%w: %q", common.ErrInvalidConfig, goal)
}

// Goal returns the chosen shopping goal, empty if none is set.
func (s *Session) Goal() model.ShoppingGoal {
	return s.goal
}

// State returns the current navigation page.
func (s *Session) State() Page {
	return s.nav.Current()
}

// Navigate moves to the target page. Entering CartBuilding requires a
// goal; entering Analysis requires a non-empty cart. On rejection the
// page is unchanged.
func (s *Session) Navigate(target Page) error {
	switch target {
	case PageCartBuilding:
		if s.goal == "" {
			return common.ErrGoalRequired
		}
	case PageAnalysis:
		if s.cart.Len() == 0 {
			return common.ErrCartEmpty
		}
	}
	return s.nav.Transition(target)
}

// AddItem puts a catalog item into the cart with an optional reason.
func (s *Session) AddItem(itemID, reason string) error {
	return s.cart.Add(itemID, reason)
}

// UpdateReason replaces the reason on the cart entry at index.
func (s *Session) UpdateReason(index int, reason string) error {
	return s.cart.UpdateReason(index, reason)
}

// RemoveItem removes the cart entry at index. Any analysis already
// computed is left as-is; it describes the cart at analysis time.
func (s *Session) RemoveItem(index int) error {
	return s.cart.Remove(index)
}

// CatalogItems lists the catalog entries available to this session.
func (s *Session) CatalogItems() []model.CatalogEntry {
	return s.catalog.Items()
}

// Cart returns a read-only snapshot of the cart.
func (s *Session) Cart() []model.CartEntry {
	return s.cart.Snapshot()
}

// CartTotal returns the catalog value of the current cart.
func (s *Session) CartTotal() float64 {
	return s.cart.TotalValue()
}

// RunAnalysis analyzes the current cart against the session goal and
// stores the result. Analyzing an empty cart is rejected.
func (s *Session) RunAnalysis(ctx context.Context) (model.AnalysisResult, error) {
	if s.cart.Len() == 0 {
		return model.AnalysisResult{}, common.ErrCartEmpty
	}

	result := s.engine.Analyze(ctx, s.cart.Snapshot(), s.goal)
	s.analysis = &result
	return result, nil
}

// Analysis returns the most recent analysis result, if one exists.
func (s *Session) Analysis() (model.AnalysisResult, bool) {
	if s.analysis == nil {
		return model.AnalysisResult{}, false
	}
	return *s.analysis, true
}

// BeginJustify opens the justification form for a flagged item. Only
// items whose latest verdict is Reconsider can be justified, and an
// existing override must be removed before a new one can be entered.
func (s *Session) BeginJustify(itemID string) error {
	verdict, ok := s.verdictFor(itemID)
	if !ok {
		return common.ErrNoAnalysis
	}
	if verdict != model.VerdictReconsider {
		return fmt.Errorf("%w: %s", common.ErrNotFlagged, itemID)
	}
	if _, justified := s.justifications.Get(itemID); justified {
		return fmt.Errorf("%w: %s is already justified", common.ErrInvalidTransition, itemID)
	}
	s.justifications.Begin(itemID)
	return nil
}

// SubmitJustification records the override text for an item.
func (s *Session) SubmitJustification(itemID, text string) error {
	return s.justifications.Submit(itemID, text)
}

// CancelJustify closes the justification form without recording.
func (s *Session) CancelJustify(itemID string) {
	s.justifications.Cancel(itemID)
}

// RemoveJustification clears a recorded override.
func (s *Session) RemoveJustification(itemID string) error {
	return s.justifications.Remove(itemID)
}

// Justifications returns a copy of the recorded overrides.
func (s *Session) Justifications() map[string]string {
	return s.justifications.All()
}

// JustificationStatus derives the workflow state for an item from the
// latest verdict and the override log. The override is a presentation
// annotation: it never alters the stored analysis result.
func (s *Session) JustificationStatus(itemID string) JustificationStatus {
	if _, ok := s.justifications.Get(itemID); ok {
		return StatusJustified
	}
	verdict, ok := s.verdictFor(itemID)
	if !ok || verdict != model.VerdictReconsider {
		return StatusNotFlagged
	}
	if s.justifications.Editing(itemID) {
		return StatusAwaitingInput
	}
	return StatusFlaggedUnjustified
}

// ConfirmOrder finalizes the session: it appends exactly one ledger
// record, clears the cart and justifications, and returns to Landing.
// The total is computed from the cart at confirmation time; savings
// and the identity badge come from the last analysis, which is not
// re-run here even if the cart changed since.
func (s *Session) ConfirmOrder(ctx context.Context) (model.SessionRecord, error) {
	if s.analysis == nil {
		return model.SessionRecord{}, common.ErrNoAnalysis
	}
	if s.cart.Len() == 0 {
		return model.SessionRecord{}, common.ErrCartEmpty
	}

	record := model.SessionRecord{
		Timestamp:     time.Now(),
		IdentityBadge: s.analysis.Summary.IdentityBadge,
		ItemCount:     s.cart.Len(),
		TotalValue:    s.cart.TotalValue(),
		Savings:       s.analysis.Summary.EstimatedSavings,
	}

	stored, err := s.ledger.RecordSession(ctx, record)
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("failed to record session: %w", err)
	}

	s.cart.Clear()
	s.justifications.Clear()
	s.analysis = nil
	s.goal = ""
	s.nav.Reset()

	s.logger.Info("order confirmed",
		"session_id", stored.ID,
		"items", stored.ItemCount,
		"total", stored.TotalValue,
		"savings", stored.Savings)

	return stored, nil
}

// History returns the ledger entries recorded so far.
func (s *Session) History(ctx context.Context) ([]model.SessionRecord, error) {
	return s.ledger.ListSessions(ctx)
}

// Progress returns aggregate stats across all recorded sessions.
func (s *Session) Progress(ctx context.Context) (model.ProgressStats, error) {
	return s.ledger.ProgressStats(ctx)
}

// verdictFor looks up an item's verdict in the latest analysis.
func (s *Session) verdictFor(itemID string) (model.Verdict, bool) {
	if s.analysis == nil {
		return "", false
	}
	for _, item := range s.analysis.Items {
		if item.ItemID == itemID {
			return item.Verdict, true
		}
	}
	return "", false
}
