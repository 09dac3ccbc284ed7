package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindcart/mindcart/internal/model"
)

func createTestLedger(t *testing.T) *SQLiteLedger {
	t.Helper()

	ledger, err := NewSQLiteLedger(InMemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ledger.Close() })

	return ledger
}

func testRecord(savings float64, items int) model.SessionRecord {
	return model.SessionRecord{
		IdentityBadge: "Mindful Shopper",
		ItemCount:     items,
		TotalValue:    savings * 2,
		Savings:       savings,
	}
}

func TestSQLiteLedger_RecordSession(t *testing.T) {
	ledger := createTestLedger(t)
	ctx := context.Background()

	stored, err := ledger.RecordSession(ctx, testRecord(500, 3))
	require.NoError(t, err)

	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.Timestamp.IsZero())
	assert.Equal(t, 3, stored.ItemCount)
	assert.InDelta(t, 500.0, stored.Savings, 0.001)
}

func TestSQLiteLedger_ListSessions(t *testing.T) {
	ledger := createTestLedger(t)
	ctx := context.Background()

	list, err := ledger.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	first := testRecord(100, 1)
	first.Timestamp = time.Now().Add(-time.Hour)
	_, err = ledger.RecordSession(ctx, first)
	require.NoError(t, err)

	_, err = ledger.RecordSession(ctx, testRecord(200, 2))
	require.NoError(t, err)

	list, err = ledger.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Most recent first.
	assert.InDelta(t, 200.0, list[0].Savings, 0.001)
	assert.InDelta(t, 100.0, list[1].Savings, 0.001)
}

func TestSQLiteLedger_ProgressStats(t *testing.T) {
	ledger := createTestLedger(t)
	ctx := context.Background()

	stats, err := ledger.ProgressStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalSessions)
	assert.InDelta(t, 0.0, stats.TotalSavings, 0.001)

	_, err = ledger.RecordSession(ctx, testRecord(100, 2))
	require.NoError(t, err)
	_, err = ledger.RecordSession(ctx, testRecord(300, 4))
	require.NoError(t, err)

	stats, err = ledger.ProgressStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.InDelta(t, 400.0, stats.TotalSavings, 0.001)
	assert.InDelta(t, 3.0, stats.AvgItems, 0.001)
}

func TestSQLiteLedger_RejectsInvalidRecords(t *testing.T) {
	ledger := createTestLedger(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		record model.SessionRecord
	}{
		{name: "negative item count", record: model.SessionRecord{ItemCount: -1}},
		{name: "negative total", record: model.SessionRecord{TotalValue: -10}},
		{name: "negative savings", record: model.SessionRecord{Savings: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.RecordSession(ctx, tt.record)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}

	list, err := ledger.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLiteLedger_FileBacked(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger", "mindcart.db")

	ledger, err := NewSQLiteLedger(dbPath)
	require.NoError(t, err)

	_, err = ledger.RecordSession(context.Background(), testRecord(250, 2))
	require.NoError(t, err)
	require.NoError(t, ledger.Close())

	// Records survive reopening a file-backed ledger.
	reopened, err := NewSQLiteLedger(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	list, err := reopened.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.InDelta(t, 250.0, list[0].Savings, 0.001)
}

func TestSQLiteLedger_NilContext(t *testing.T) {
	ledger := createTestLedger(t)

	//nolint:staticcheck // deliberately passing a nil context
	_, err := ledger.RecordSession(nil, testRecord(100, 1))
	assert.ErrorIs(t, err, ErrNilContext)
}
