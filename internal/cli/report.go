package cli

import (
	"fmt"
	"strings"

	"github.com/mindcart/mindcart/internal/model"
)

// verdictLabel returns the styled display form of a verdict.
func verdictLabel(verdict model.Verdict) string {
	switch verdict {
	case model.VerdictKeep:
		return SuccessStyle.Render(CheckIcon + " Keep")
	case model.VerdictReconsider:
		return WarningStyle.Render(WarningIcon + " Reconsider")
	case model.VerdictOptional:
		return InfoStyle.Render(InfoIcon + " Optional")
	default:
		return string(verdict)
	}
}

// RenderAnalysis formats a full analysis report: per-item verdicts,
// the summary box, the identity badge, and the personality breakdown.
// Justified items are annotated with their override text.
func RenderAnalysis(result model.AnalysisResult, justifications map[string]string) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(BrainIcon + " Cart Analysis"))
	b.WriteString("\n")
	if result.Source == model.SourceFallback {
		b.WriteString(SubtleStyle.Render("(advisory service unavailable, using built-in rules)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, item := range result.Items {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			verdictLabel(item.Verdict),
			BoldStyle.Render(item.ItemID),
			SubtleStyle.Render(fmt.Sprintf("₹%.0f", item.Price))))
		b.WriteString("  " + item.Suggestion + "\n")
		if item.Reason != "" {
			b.WriteString(SubtleStyle.Render("  reason: "+item.Reason) + "\n")
		}
		if text, ok := justifications[item.ItemID]; ok {
			b.WriteString(SuccessStyle.Render("  justified: "+text) + "\n")
		}
		b.WriteString("\n")
	}

	summary := fmt.Sprintf("Items analyzed: %d\nFlagged: %d\nEstimated savings: ₹%.2f",
		result.Summary.TotalItems,
		result.Summary.FlaggedItems,
		result.Summary.EstimatedSavings)
	if result.Summary.RewardRecommendation != "" {
		summary += "\nReward idea: " + result.Summary.RewardRecommendation
	}
	b.WriteString(RenderBox(ChartIcon+" Summary", summary))
	b.WriteString("\n")

	b.WriteString(BadgeStyle.Render(BadgeIcon + " " + result.Summary.IdentityBadge))
	b.WriteString("\n\n")
	b.WriteString(renderPersonality(result.Personality))

	return b.String()
}

// renderPersonality draws the behavioral breakdown as labeled bars.
func renderPersonality(profile model.PersonalityProfile) string {
	var b strings.Builder
	b.WriteString(SubtitleStyle.Render("Shopping personality"))
	b.WriteString("\n")
	for _, c := range []struct {
		label string
		value float64
	}{
		{"Mindful", profile.Mindful},
		{"Indulgent", profile.Indulgent},
		{"Emotional", profile.Emotional},
	} {
		filled := int(c.value / 5)
		if filled > 20 {
			filled = 20
		}
		if filled < 0 {
			filled = 0
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
		b.WriteString(fmt.Sprintf("%-10s %s %3.0f%%\n", c.label, bar, c.value))
	}
	return b.String()
}

// RenderHistory formats the session ledger with progress metrics.
func RenderHistory(records []model.SessionRecord, stats model.ProgressStats) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(ChartIcon + " Shopping History"))
	b.WriteString("\n")

	if len(records) == 0 {
		b.WriteString(FormatInfo("No shopping history yet. Start shopping to see your progress!"))
		b.WriteString("\n")
		return b.String()
	}

	metrics := fmt.Sprintf("Sessions: %d\nTotal savings: ₹%.2f\nAverage cart size: %.1f items",
		stats.TotalSessions, stats.TotalSavings, stats.AvgItems)
	b.WriteString(RenderBox("Progress", metrics))
	b.WriteString("\n")

	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-20s %-20s %6s %12s %12s",
		"Date", "Badge", "Items", "Total", "Savings")))
	b.WriteString("\n")
	for _, rec := range records {
		b.WriteString(fmt.Sprintf("%-20s %-20s %6d %12.2f %12.2f\n",
			rec.Timestamp.Format("2006-01-02 15:04"),
			rec.IdentityBadge,
			rec.ItemCount,
			rec.TotalValue,
			rec.Savings))
	}

	// Records are most recent first; compare the last two sessions.
	if len(records) > 1 {
		b.WriteString("\n")
		if records[0].Savings > records[1].Savings {
			b.WriteString(FormatSuccess("🎉 You've improved your mindful shopping! Keep it up!"))
		} else {
			b.WriteString(FormatInfo("💡 You're doing great! Remember to take time to reflect before purchasing."))
		}
		b.WriteString("\n")
	}

	return b.String()
}
