package tui

import (
	"fmt"
	"strings"

	"github.com/mindcart/mindcart/internal/cli"
	"github.com/mindcart/mindcart/internal/model"
	"github.com/mindcart/mindcart/internal/session"
)

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// View renders the page for the current navigation state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.session.State() {
	case session.PageLanding:
		body = m.viewLanding()
	case session.PageCartBuilding:
		body = m.viewCart()
	case session.PageAnalysis:
		body = m.viewAnalysis()
	case session.PageHistory:
		body = m.viewHistory()
	}

	if m.inputMode != inputNone {
		body += "\n" + cli.BoxStyle.Render(m.input.View())
	}
	if m.status != "" {
		body += "\n" + cli.SubtleStyle.Render(m.status)
	}
	return body + "\n"
}

func (m Model) viewLanding() string {
	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render(cli.CartIcon + " MindCart"))
	b.WriteString("\n")
	b.WriteString(cli.SubtitleStyle.Render("Shop with intention. Choose a goal to begin."))
	b.WriteString("\n\n")

	for i, goal := range model.AllGoals() {
		line := "  " + string(goal)
		if i == m.goalCursor {
			line = cli.BoldStyle.Render("> " + string(goal))
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("enter: start  h: history  q: quit"))
	return b.String()
}

func (m Model) viewCart() string {
	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render(cli.CartIcon + " Build Your Cart"))
	b.WriteString("\n")
	b.WriteString(cli.SubtitleStyle.Render("Goal: " + string(m.session.Goal())))
	b.WriteString("\n\n")

	b.WriteString(m.viewCatalogPane())
	b.WriteString("\n")
	b.WriteString(m.viewCartPane())

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render(
		"tab: switch pane  enter: add  d: remove  r: reason  a: analyze  h: history  b: back"))
	return b.String()
}

func (m Model) viewCatalogPane() string {
	var b strings.Builder
	header := "Catalog"
	if m.focus == focusCatalog {
		header = cli.BoldStyle.Render(header)
	}
	b.WriteString(header + "\n")

	for i, item := range m.session.CatalogItems() {
		cursor := "  "
		if m.focus == focusCatalog && i == m.cursor {
			cursor = cli.BoldStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%-16s %-10s ₹%.0f\n",
			cursor, item.ID, string(item.Category), item.UnitPrice))
	}
	return b.String()
}

func (m Model) viewCartPane() string {
	var b strings.Builder
	header := fmt.Sprintf("Cart (total ₹%.0f)", m.session.CartTotal())
	if m.focus == focusCart {
		header = cli.BoldStyle.Render(header)
	}
	b.WriteString(header + "\n")

	entries := m.session.Cart()
	if len(entries) == 0 {
		b.WriteString(cli.SubtleStyle.Render("  (empty)") + "\n")
		return b.String()
	}

	for i, entry := range entries {
		cursor := "  "
		if m.focus == focusCart && i == m.cursor {
			cursor = cli.BoldStyle.Render("> ")
		}
		line := cursor + entry.ItemID
		if entry.Reason != "" {
			line += cli.SubtleStyle.Render("  (" + entry.Reason + ")")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewAnalysis() string {
	result, ok := m.session.Analysis()
	if !ok {
		return cli.FormatWarning("No analysis yet.")
	}

	if m.reflecting > 0 {
		return cli.TitleStyle.Render(cli.TimerIcon+" Take a Moment to Reflect") + "\n\n" +
			fmt.Sprintf("Confirming in %d...", m.reflecting)
	}

	var b strings.Builder
	b.WriteString(cli.RenderAnalysis(result, m.session.Justifications()))

	// Per-item workflow status under the cursor.
	if m.itemCursor < len(result.Items) {
		itemID := result.Items[m.itemCursor].ItemID
		b.WriteString("\n")
		b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf("selected: %s [%s]",
			itemID, m.session.JustificationStatus(itemID))))
	}

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render(
		"↑/↓: select  y: justify  u: unjustify  c: confirm  b: revise cart  h: history"))
	return b.String()
}

func (m Model) viewHistory() string {
	out := cli.RenderHistory(m.history, m.stats)
	return out + "\n" + cli.SubtleStyle.Render("b/esc: back")
}
