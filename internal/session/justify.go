package session

import (
	"fmt"
	"strings"

	"github.com/mindcart/mindcart/internal/common"
)

// JustificationStatus is the per-item state of the justification
// workflow, derived from the latest analysis verdict and the override
// log.
type JustificationStatus int

const (
	// StatusNotFlagged means the item's verdict is not Reconsider.
	StatusNotFlagged JustificationStatus = iota
	// StatusFlaggedUnjustified means the item is flagged and has no
	// override recorded.
	StatusFlaggedUnjustified
	// StatusAwaitingInput means the shopper has opened the
	// justification form but not yet submitted.
	StatusAwaitingInput
	// StatusJustified means an override is recorded; the item is
	// treated as accepted regardless of verdict.
	StatusJustified
)

// String returns a display label for the status.
func (s JustificationStatus) String() string {
	switch s {
	case StatusNotFlagged:
		return "not flagged"
	case StatusFlaggedUnjustified:
		return "flagged"
	case StatusAwaitingInput:
		return "awaiting input"
	case StatusJustified:
		return "justified"
	default:
		return "unknown"
	}
}

// JustificationLog tracks justification overrides keyed by item id.
// Overrides are sticky: they survive re-analysis and are only removed
// explicitly or when the session is reset at order confirmation. The
// AwaitingInput marker is transient presentation state and is never
// part of the recorded overrides.
type JustificationLog struct {
	texts   map[string]string
	editing map[string]bool
}

// NewJustificationLog creates an empty log.
func NewJustificationLog() *JustificationLog {
	return &JustificationLog{
		texts:   make(map[string]string),
		editing: make(map[string]bool),
	}
}

// Begin opens the justification form for a flagged item.
func (j *JustificationLog) Begin(itemID string) {
	j.editing[itemID] = true
}

// Submit records the override text and closes the form. Empty or
// whitespace-only text is rejected and the form stays open.
func (j *JustificationLog) Submit(itemID, text string) error {
	if !j.editing[itemID] {
		return fmt.Errorf("%w: no justification in progress for %s", common.ErrInvalidTransition, itemID)
	}
	if strings.TrimSpace(text) == "" {
		return common.ErrEmptyJustification
	}
	j.texts[itemID] = text
	delete(j.editing, itemID)
	return nil
}

// Cancel closes the form without recording anything.
func (j *JustificationLog) Cancel(itemID string) {
	delete(j.editing, itemID)
}

// Remove clears a recorded override, returning the item to flagged.
func (j *JustificationLog) Remove(itemID string) error {
	if _, ok := j.texts[itemID]; !ok {
		return fmt.Errorf("%w: %s", common.ErrNoJustification, itemID)
	}
	delete(j.texts, itemID)
	return nil
}

// Get returns the recorded override text for an item, if any.
func (j *JustificationLog) Get(itemID string) (string, bool) {
	text, ok := j.texts[itemID]
	return text, ok
}

// Editing reports whether the form is currently open for an item.
func (j *JustificationLog) Editing(itemID string) bool {
	return j.editing[itemID]
}

// All returns a copy of the recorded overrides.
func (j *JustificationLog) All() map[string]string {
	out := make(map[string]string, len(j.texts))
	for id, text := range j.texts {
		out[id] = text
	}
	return out
}

// Clear drops all overrides and open forms.
func (j *JustificationLog) Clear() {
	j.texts = make(map[string]string)
	j.editing = make(map[string]bool)
}
