package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindcart/mindcart/internal/model"
)

// analysisDoneMsg carries a finished analysis back to the model.
type analysisDoneMsg struct {
	result model.AnalysisResult
}

// historyLoadedMsg carries the ledger and progress stats.
type historyLoadedMsg struct {
	records []model.SessionRecord
	stats   model.ProgressStats
}

// orderConfirmedMsg carries the freshly recorded session.
type orderConfirmedMsg struct {
	record model.SessionRecord
}

// reflectionTickMsg advances the pre-confirmation countdown.
type reflectionTickMsg struct{}

// errMsg surfaces an operation failure to the status line.
type errMsg struct {
	err error
}

func reflectionTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return reflectionTickMsg{}
	})
}
