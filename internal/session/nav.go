package session

import (
	"fmt"

	"github.com/mindcart/mindcart/internal/common"
)

// Page identifies which phase of the shopping flow the session is in.
type Page string

const (
	PageLanding      Page = "landing"
	PageCartBuilding Page = "cart"
	PageAnalysis     Page = "analysis"
	PageHistory      Page = "history"
)

// legalTransitions lists the navigation edges. Landing and History are
// reachable from anywhere; the working pages are reachable from each
// other but Landing only leads into CartBuilding or History.
var legalTransitions = map[Page]map[Page]bool{
	PageLanding: {
		PageCartBuilding: true,
		PageHistory:      true,
	},
	PageCartBuilding: {
		PageAnalysis: true,
		PageHistory:  true,
		PageLanding:  true,
	},
	PageAnalysis: {
		PageCartBuilding: true,
		PageHistory:      true,
		PageLanding:      true,
	},
	PageHistory: {
		PageCartBuilding: true,
		PageAnalysis:     true,
		PageLanding:      true,
	},
}

// Navigation holds the single current page. Guard conditions such as
// "the cart must be non-empty to enter Analysis" belong to the
// Session, which checks them before calling Transition.
type Navigation struct {
	current Page
}

// NewNavigation creates a navigation machine on the landing page.
func NewNavigation() *Navigation {
	return &Navigation{current: PageLanding}
}

// Current returns the active page.
func (n *Navigation) Current() Page {
	return n.current
}

// Transition moves to the target page if the edge is legal. Navigating
// to the current page is a no-op. On rejection the state is unchanged.
func (n *Navigation) Transition(target Page) error {
	if target == n.current {
		return nil
	}
	if !legalTransitions[n.current][target] {
		return fmt.Errorf("%w: %s to %s", common.ErrInvalidTransition, n.current, target)
	}
	n.current = target
	return nil
}

// Reset returns the machine to the landing page unconditionally.
func (n *Navigation) Reset() {
	n.current = PageLanding
}
