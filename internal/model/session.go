package model

import "time"

// SessionRecord is one completed shopping session. Records are
// append-only; they are created at order confirmation and never mutated.
type SessionRecord struct {
	Timestamp     time.Time
	ID            string
	IdentityBadge string
	ItemCount     int
	TotalValue    float64
	Savings       float64
}

// ProgressStats summarizes the ledger for the history view.
type ProgressStats struct {
	TotalSessions int
	TotalSavings  float64
	AvgItems      float64
}
