// Package tui implements the interactive shopping interface on top of
// the session API using bubbletea.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindcart/mindcart/internal/model"
	"github.com/mindcart/mindcart/internal/session"
)

// inputMode says what the text input is currently collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputReason
	inputJustify
)

// focusArea says which pane of the cart page has the cursor.
type focusArea int

const (
	focusCatalog focusArea = iota
	focusCart
)

// Model holds the TUI state. All cart and analysis state lives in the
// session; the model only tracks cursors, input, and fetched views.
type Model struct {
	session     *session.Session
	input       textinput.Model
	status      string
	history     []model.SessionRecord
	keymap      KeyMap
	stats       model.ProgressStats
	inputTarget string
	inputIndex  int
	inputMode   inputMode
	focus       focusArea
	cursor      int
	goalCursor  int
	itemCursor  int
	reflecting  int
	width       int
	height      int
	analyzing   bool
	quitting    bool
}

// New creates a TUI model over a session.
func New(sess *session.Session) Model {
	input := textinput.New()
	input.CharLimit = 200
	input.Width = 48

	return Model{
		session: sess,
		keymap:  DefaultKeyMap(),
		input:   input,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case analysisDoneMsg:
		m.analyzing = false
		m.itemCursor = 0
		if err := m.session.Navigate(session.PageAnalysis); err != nil {
			m.status = err.Error()
		}
		return m, nil

	case historyLoadedMsg:
		m.history = msg.records
		m.stats = msg.stats
		return m, nil

	case orderConfirmedMsg:
		m.status = "Order confirmed! You saved an estimated ₹" + formatAmount(msg.record.Savings)
		m.cursor = 0
		m.goalCursor = 0
		return m, nil

	case reflectionTickMsg:
		if m.reflecting <= 0 {
			return m, nil
		}
		m.reflecting--
		if m.reflecting == 0 {
			return m, m.confirmOrder()
		}
		return m, reflectionTick()

	case errMsg:
		m.analyzing = false
		m.status = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != inputNone {
		return m.handleInputKey(msg)
	}

	if key.Matches(msg, m.keymap.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.reflecting > 0 {
		// The countdown ignores everything except quit.
		return m, nil
	}

	switch m.session.State() {
	case session.PageLanding:
		return m.handleLandingKey(msg)
	case session.PageCartBuilding:
		return m.handleCartKey(msg)
	case session.PageAnalysis:
		return m.handleAnalysisKey(msg)
	case session.PageHistory:
		return m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		text := m.input.Value()
		switch m.inputMode {
		case inputReason:
			if err := m.session.UpdateReason(m.inputIndex, text); err != nil {
				m.status = err.Error()
			}
		case inputJustify:
			if err := m.session.SubmitJustification(m.inputTarget, text); err != nil {
				m.status = err.Error()
				return m, nil // form stays open on rejection
			}
		case inputNone:
		}
		m.closeInput()
		return m, nil

	case tea.KeyEsc:
		if m.inputMode == inputJustify {
			m.session.CancelJustify(m.inputTarget)
		}
		m.closeInput()
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) closeInput() {
	m.inputMode = inputNone
	m.inputTarget = ""
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) openInput(mode inputMode, placeholder string) {
	m.inputMode = mode
	m.input.Placeholder = placeholder
	m.input.Reset()
	m.input.Focus()
}

func (m Model) handleLandingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	goals := model.AllGoals()
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.goalCursor > 0 {
			m.goalCursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.goalCursor < len(goals)-1 {
			m.goalCursor++
		}
	case key.Matches(msg, m.keymap.Select):
		if err := m.session.SetGoal(goals[m.goalCursor]); err != nil {
			m.status = err.Error()
			return m, nil
		}
		if err := m.session.Navigate(session.PageCartBuilding); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
		m.cursor = 0
		m.focus = focusCatalog
	case key.Matches(msg, m.keymap.History):
		return m.gotoHistory()
	}
	return m, nil
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < m.paneSize()-1 {
			m.cursor++
		}
	case msg.Type == tea.KeyTab:
		m.focus = 1 - m.focus
		m.cursor = 0
	case key.Matches(msg, m.keymap.Select):
		if m.focus == focusCatalog {
			items := m.session.CatalogItems()
			if m.cursor < len(items) {
				if err := m.session.AddItem(items[m.cursor].ID, ""); err != nil {
					m.status = err.Error()
				} else {
					m.status = "Added " + items[m.cursor].ID
				}
			}
		}
	case key.Matches(msg, m.keymap.Remove):
		if m.focus == focusCart {
			if err := m.session.RemoveItem(m.cursor); err != nil {
				m.status = err.Error()
			} else if m.cursor > 0 {
				m.cursor--
			}
		}
	case key.Matches(msg, m.keymap.Reason):
		if m.focus == focusCart && m.cursor < len(m.session.Cart()) {
			m.inputIndex = m.cursor
			m.openInput(inputReason, "Why do you want this item?")
		}
	case key.Matches(msg, m.keymap.Analyze):
		if m.analyzing {
			return m, nil
		}
		if len(m.session.Cart()) == 0 {
			m.status = "Add something to the cart first."
			return m, nil
		}
		m.analyzing = true
		m.status = "Analyzing your cart..."
		return m, m.runAnalysis()
	case key.Matches(msg, m.keymap.History):
		return m.gotoHistory()
	case key.Matches(msg, m.keymap.Back):
		if err := m.session.Navigate(session.PageLanding); err != nil {
			m.status = err.Error()
		}
	}
	return m, nil
}

func (m Model) handleAnalysisKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, ok := m.session.Analysis()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.itemCursor > 0 {
			m.itemCursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.itemCursor < len(result.Items)-1 {
			m.itemCursor++
		}
	case key.Matches(msg, m.keymap.Justify):
		itemID := result.Items[m.itemCursor].ItemID
		if err := m.session.BeginJustify(itemID); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.inputTarget = itemID
		m.openInput(inputJustify, "Why is this purchase worth it?")
	case key.Matches(msg, m.keymap.Unjust):
		itemID := result.Items[m.itemCursor].ItemID
		if err := m.session.RemoveJustification(itemID); err != nil {
			m.status = err.Error()
		}
	case key.Matches(msg, m.keymap.Confirm):
		m.reflecting = reflectionSeconds
		m.status = ""
		return m, reflectionTick()
	case key.Matches(msg, m.keymap.Back):
		if err := m.session.Navigate(session.PageCartBuilding); err != nil {
			m.status = err.Error()
		}
	case key.Matches(msg, m.keymap.History):
		return m.gotoHistory()
	}
	return m, nil
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Back) {
		if err := m.session.Navigate(session.PageLanding); err != nil {
			m.status = err.Error()
		}
	}
	return m, nil
}

// reflectionSeconds is the countdown before an order is committed.
const reflectionSeconds = 10

func (m Model) gotoHistory() (tea.Model, tea.Cmd) {
	if err := m.session.Navigate(session.PageHistory); err != nil {
		m.status = err.Error()
		return m, nil
	}
	return m, m.loadHistory()
}

// paneSize is the item count of the focused cart-page pane.
func (m Model) paneSize() int {
	if m.focus == focusCatalog {
		return len(m.session.CatalogItems())
	}
	return len(m.session.Cart())
}

func (m Model) runAnalysis() tea.Cmd {
	return func() tea.Msg {
		result, err := m.session.RunAnalysis(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return analysisDoneMsg{result: result}
	}
}

func (m Model) confirmOrder() tea.Cmd {
	return func() tea.Msg {
		record, err := m.session.ConfirmOrder(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return orderConfirmedMsg{record: record}
	}
}

func (m Model) loadHistory() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		records, err := m.session.History(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		stats, err := m.session.Progress(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return historyLoadedMsg{records: records, stats: stats}
	}
}
