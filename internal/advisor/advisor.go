package advisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/mindcart/mindcart/internal/model"
)

// CartItem describes one cart entry in an advisory request. Name is the
// catalog identifier; the reply is aligned back to these items by
// position.
type CartItem struct {
	Name     string
	Category model.Category
	Reason   string
	Price    float64
}

// Advisor sends cart snapshots to a generative-text provider and
// normalizes the reply into the engine's result shape.
type Advisor struct {
	client  Client
	logger  *slog.Logger
	timeout time.Duration
}

// New creates an advisor for the configured provider.
func New(cfg Config, logger *slog.Logger) (*Advisor, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Advisor{
		client:  client,
		logger:  logger,
		timeout: timeout,
	}, nil
}

// NewWithClient creates an advisor around an existing provider client.
func NewWithClient(client Client, timeout time.Duration, logger *slog.Logger) *Advisor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Advisor{client: client, logger: logger, timeout: timeout}
}

// Advise requests a verdict for every cart item. It either returns a
// fully validated result or an *AdvisoryError; it never retries and
// never returns partial data.
func (a *Advisor) Advise(ctx context.Context, items []CartItem, goal model.ShoppingGoal) (model.AnalysisResult, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	prompt, err := buildPrompt(items, goal)
	if err != nil {
		return model.AnalysisResult{}, advisoryErr(ReasonMalformedReply, "failed to build request payload: %v", err)
	}

	a.logger.Debug("requesting advisory analysis",
		"item_count", len(items),
		"goal", goal)

	content, err := a.client.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return model.AnalysisResult{}, &AdvisoryError{Reason: ReasonTransport, Err: err}
	}

	result, err := parseReply(content, items)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	a.logger.Info("advisory analysis received",
		"item_count", len(result.Items),
		"flagged", result.FlaggedCount(),
		"identity_badge", result.Summary.IdentityBadge)

	return result, nil
}
