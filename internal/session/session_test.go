package session

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindcart/mindcart/internal/catalog"
	"github.com/mindcart/mindcart/internal/common"
	"github.com/mindcart/mindcart/internal/engine"
	"github.com/mindcart/mindcart/internal/model"
)

// memoryLedger is an in-memory Ledger for session tests.
type memoryLedger struct {
	records []model.SessionRecord
}

func (m *memoryLedger) RecordSession(_ context.Context, record model.SessionRecord) (model.SessionRecord, error) {
	record.ID = "test-session"
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	m.records = append(m.records, record)
	return record, nil
}

func (m *memoryLedger) ListSessions(_ context.Context) ([]model.SessionRecord, error) {
	out := make([]model.SessionRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memoryLedger) ProgressStats(_ context.Context) (model.ProgressStats, error) {
	stats := model.ProgressStats{TotalSessions: len(m.records)}
	for _, rec := range m.records {
		stats.TotalSavings += rec.Savings
	}
	return stats, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(noopWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }

// newTestSession builds a session over the default catalog with a
// fallback-only engine and an in-memory ledger.
func newTestSession(t *testing.T) (*Session, *memoryLedger) {
	t.Helper()
	cat := catalog.Default()
	ledger := &memoryLedger{}
	eng := engine.New(cat, nil, testLogger())
	return New(cat, eng, ledger, testLogger()), ledger
}

func TestCartStore_AddAndSnapshot(t *testing.T) {
	cart := NewCartStore(catalog.Default())

	require.NoError(t, cart.Add("milk", ""))
	require.NoError(t, cart.Add("teddy-bear", "looked cute"))

	snapshot := cart.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "milk", snapshot[0].ItemID)
	assert.Equal(t, "looked cute", snapshot[1].Reason)

	// Mutating the snapshot does not affect the store.
	snapshot[0].ItemID = "tampered"
	assert.Equal(t, "milk", cart.Snapshot()[0].ItemID)
}

func TestCartStore_AddUnknownItem(t *testing.T) {
	cart := NewCartStore(catalog.Default())

	err := cart.Add("hoverboard", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnknownItem)
	assert.Equal(t, 0, cart.Len())
}

func TestCartStore_IndexBounds(t *testing.T) {
	cart := NewCartStore(catalog.Default())
	require.NoError(t, cart.Add("milk", ""))

	assert.ErrorIs(t, cart.UpdateReason(1, "x"), common.ErrIndexOutOfRange)
	assert.ErrorIs(t, cart.UpdateReason(-1, "x"), common.ErrIndexOutOfRange)
	assert.ErrorIs(t, cart.Remove(1), common.ErrIndexOutOfRange)

	require.NoError(t, cart.UpdateReason(0, "breakfast"))
	assert.Equal(t, "breakfast", cart.Snapshot()[0].Reason)
}

func TestCartStore_RemoveShiftsIndices(t *testing.T) {
	cart := NewCartStore(catalog.Default())
	require.NoError(t, cart.Add("milk", ""))
	require.NoError(t, cart.Add("apples", ""))
	require.NoError(t, cart.Add("coffee", ""))

	require.NoError(t, cart.Remove(0))

	snapshot := cart.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "apples", snapshot[0].ItemID)
	assert.Equal(t, "coffee", snapshot[1].ItemID)
}

func TestCartStore_TotalValue(t *testing.T) {
	cart := NewCartStore(catalog.Default())
	require.NoError(t, cart.Add("milk", ""))       // 60
	require.NoError(t, cart.Add("teddy-bear", "")) // 1200

	assert.InDelta(t, 1260.0, cart.TotalValue(), 0.001)
}

func TestSession_GoalRequiredBeforeCartBuilding(t *testing.T) {
	sess, _ := newTestSession(t)

	err := sess.Navigate(PageCartBuilding)
	assert.ErrorIs(t, err, common.ErrGoalRequired)
	assert.Equal(t, PageLanding, sess.State())

	require.NoError(t, sess.SetGoal(model.GoalBalancedShopping))
	require.NoError(t, sess.Navigate(PageCartBuilding))
	assert.Equal(t, PageCartBuilding, sess.State())
}

func TestSession_SetGoal_Invalid(t *testing.T) {
	sess, _ := newTestSession(t)

	err := sess.SetGoal("World Domination")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
	assert.Empty(t, sess.Goal())
}

func TestSession_AnalysisBlockedOnEmptyCart(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SetGoal(model.GoalBalancedShopping))
	require.NoError(t, sess.Navigate(PageCartBuilding))

	err := sess.Navigate(PageAnalysis)
	assert.ErrorIs(t, err, common.ErrCartEmpty)
	assert.Equal(t, PageCartBuilding, sess.State())

	_, err = sess.RunAnalysis(context.Background())
	assert.ErrorIs(t, err, common.ErrCartEmpty)
}

func TestSession_NavigationEdges(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SetGoal(model.GoalBalancedShopping))

	// History is reachable from anywhere, including Landing.
	require.NoError(t, sess.Navigate(PageHistory))
	require.NoError(t, sess.Navigate(PageLanding))

	// Landing cannot jump straight to Analysis even with a full cart.
	require.NoError(t, sess.AddItem("milk", ""))
	err := sess.Navigate(PageAnalysis)
	assert.ErrorIs(t, err, common.ErrInvalidTransition)
	assert.Equal(t, PageLanding, sess.State())

	require.NoError(t, sess.Navigate(PageCartBuilding))
	require.NoError(t, sess.Navigate(PageAnalysis))
	require.NoError(t, sess.Navigate(PageCartBuilding)) // revise
	require.NoError(t, sess.Navigate(PageLanding))
}

func TestSession_RunAnalysisAndJustify(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SetGoal(model.GoalBalancedShopping))
	require.NoError(t, sess.AddItem("teddy-bear", "looked cute"))
	require.NoError(t, sess.AddItem("milk", ""))

	result, err := sess.RunAnalysis(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	// Impulse item is flagged, essential is not.
	assert.Equal(t, StatusFlaggedUnjustified, sess.JustificationStatus("teddy-bear"))
	assert.Equal(t, StatusNotFlagged, sess.JustificationStatus("milk"))

	// Justifying an unflagged item is rejected.
	assert.ErrorIs(t, sess.BeginJustify("milk"), common.ErrNotFlagged)

	require.NoError(t, sess.BeginJustify("teddy-bear"))
	assert.Equal(t, StatusAwaitingInput, sess.JustificationStatus("teddy-bear"))

	// Empty text is rejected and the form stays open.
	assert.ErrorIs(t, sess.SubmitJustification("teddy-bear", "   "), common.ErrEmptyJustification)
	assert.Equal(t, StatusAwaitingInput, sess.JustificationStatus("teddy-bear"))

	require.NoError(t, sess.SubmitJustification("teddy-bear", "birthday gift for my niece"))
	assert.Equal(t, StatusJustified, sess.JustificationStatus("teddy-bear"))
	assert.Equal(t, map[string]string{"teddy-bear": "birthday gift for my niece"}, sess.Justifications())
}

func TestSession_CancelJustify(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SetGoal(model.GoalBalancedShopping))
	require.NoError(t, sess.AddItem("teddy-bear", ""))
	_, err := sess.RunAnalysis(context.Background())
	require.NoError(t, err)

	require.NoError(t, sess.BeginJustify("teddy-bear"))
	sess.CancelJustify("teddy-bear")
	assert.Equal(t, StatusFlaggedUnjustified, sess.JustificationStatus("teddy-bear"))

	// Submitting without an open form is rejected.
	assert.ErrorIs(t, sess.SubmitJustification("teddy-bear", "text"), common.ErrInvalidTransition)
}

func TestSession_RemoveJustification(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SetGoal(model.GoalBalancedShopping))
	require.NoError(t, sess.AddItem("teddy-bear", ""))
	_, err := sess.RunAnalysis(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, sess.RemoveJustification("teddy-bear"), common.ErrNoJustification)

	require.NoError(t, sess.BeginJustify("teddy-bear"))
	require.NoError(t, sess.SubmitJustification("teddy-bear", "it is a gift"))

	// A recorded override must be removed before justifying again.
	err = sess.BeginJustify("teddy-bear")
	assert.ErrorIs(t, err, common.ErrInvalidTransition)
	assert.Equal(t, StatusJustified, sess.JustificationStatus("teddy-bear"))

	require.NoError(t, sess.RemoveJustification("teddy-bear"))
	assert.Equal(t, StatusFlaggedUnjustified, sess.JustificationStatus("teddy-bear"))

	// Once removed, the item can be justified again.
	require.NoError(t, sess.BeginJustify("teddy-bear"))
}

func TestSession_JustificationSurvivesReanalysis(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SetGoal(model.GoalBalancedShopping))
	require.NoError(t, sess.AddItem("teddy-bear", ""))

	_, err := sess.RunAnalysis(context.Background())
	require.NoError(t, err)
	require.NoError(t, sess.BeginJustify("teddy-bear"))
	require.NoError(t, sess.SubmitJustification("teddy-bear", "gift"))

	// Re-analysis still reports Reconsider in the raw result; the
	// override is reapplied on top of it.
	result, err := sess.RunAnalysis(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.VerdictReconsider, result.Items[0].Verdict)
	assert.Equal(t, StatusJustified, sess.JustificationStatus("teddy-bear"))
}

func TestSession_BeginJustifyWithoutAnalysis(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SetGoal(model.GoalBalancedShopping))
	require.NoError(t, sess.AddItem("teddy-bear", ""))

	assert.ErrorIs(t, sess.BeginJustify("teddy-bear"), common.ErrNoAnalysis)
}

func TestSession_ConfirmOrder(t *testing.T) {
	sess, ledger := newTestSession(t)
	require.NoError(t, sess.SetGoal(model.GoalBalancedShopping))
	require.NoError(t, sess.Navigate(PageCartBuilding))
	require.NoError(t, sess.AddItem("teddy-bear", "looked cute")) // 1200, flagged
	require.NoError(t, sess.AddItem("milk", ""))                  // 60

	_, err := sess.RunAnalysis(context.Background())
	require.NoError(t, err)
	require.NoError(t, sess.Navigate(PageAnalysis))

	record, err := sess.ConfirmOrder(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, record.ItemCount)
	assert.InDelta(t, 1260.0, record.TotalValue, 0.001)
	assert.InDelta(t, 1200.0, record.Savings, 0.001)
	assert.NotEmpty(t, record.IdentityBadge)

	// Exactly one record appended; cart, justifications, analysis and
	// goal reset; back on the landing page.
	require.Len(t, ledger.records, 1)
	assert.Empty(t, sess.Cart())
	assert.Empty(t, sess.Justifications())
	_, ok := sess.Analysis()
	assert.False(t, ok)
	assert.Empty(t, sess.Goal())
	assert.Equal(t, PageLanding, sess.State())

	history, err := sess.History(context.Background())
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSession_ConfirmOrder_UsesCartAtConfirmationTime(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SetGoal(model.GoalBalancedShopping))
	require.NoError(t, sess.AddItem("teddy-bear", ""))

	_, err := sess.RunAnalysis(context.Background())
	require.NoError(t, err)

	// Cart mutated after analysis; the total reflects the new cart
	// while savings still come from the stale analysis.
	require.NoError(t, sess.AddItem("milk", ""))

	record, err := sess.ConfirmOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, record.ItemCount)
	assert.InDelta(t, 1260.0, record.TotalValue, 0.001)
	assert.InDelta(t, 1200.0, record.Savings, 0.001)
}

func TestSession_ConfirmOrder_Preconditions(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SetGoal(model.GoalBalancedShopping))

	_, err := sess.ConfirmOrder(context.Background())
	assert.ErrorIs(t, err, common.ErrNoAnalysis)

	require.NoError(t, sess.AddItem("milk", ""))
	_, err = sess.RunAnalysis(context.Background())
	require.NoError(t, err)
	require.NoError(t, sess.RemoveItem(0))

	_, err = sess.ConfirmOrder(context.Background())
	assert.ErrorIs(t, err, common.ErrCartEmpty)
}
