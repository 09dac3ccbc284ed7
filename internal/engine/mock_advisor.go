package engine

import (
	"context"
	"sync"

	"github.com/mindcart/mindcart/internal/advisor"
	"github.com/mindcart/mindcart/internal/model"
)

// MockAdvisor is a test implementation of the Advisor interface.
type MockAdvisor struct {
	err    error
	result model.AnalysisResult
	calls  []MockAdvisorCall
	mu     sync.Mutex
}

// MockAdvisorCall records the details of one advisory request.
type MockAdvisorCall struct {
	Goal  model.ShoppingGoal
	Items []advisor.CartItem
}

// NewMockAdvisor creates a mock advisor returning the given result.
func NewMockAdvisor(result model.AnalysisResult) *MockAdvisor {
	return &MockAdvisor{result: result}
}

// NewFailingAdvisor creates a mock advisor that always fails.
func NewFailingAdvisor(err error) *MockAdvisor {
	return &MockAdvisor{err: err}
}

// Advise returns the configured result or error and records the call.
func (m *MockAdvisor) Advise(_ context.Context, items []advisor.CartItem, goal model.ShoppingGoal) (model.AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockAdvisorCall{Items: items, Goal: goal})

	if m.err != nil {
		return model.AnalysisResult{}, m.err
	}
	return m.result, nil
}

// Calls returns the recorded advisory requests.
func (m *MockAdvisor) Calls() []MockAdvisorCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]MockAdvisorCall, len(m.calls))
	copy(out, m.calls)
	return out
}
