package advisor

import (
	"encoding/json"
	"strings"

	"github.com/mindcart/mindcart/internal/model"
)

// advisoryReply is the expected wire shape of the provider's reply.
// Pointer fields distinguish absent values from zero values so missing
// required fields fail validation instead of defaulting.
type advisoryReply struct {
	Items   []advisoryReplyItem `json:"items"`
	Summary *advisorySummary    `json:"summary"`

	Personality *advisoryPersonality `json:"personality"`
}

type advisoryReplyItem struct {
	Name       string `json:"name"`
	Verdict    string `json:"verdict"`
	Suggestion string `json:"suggestion"`
}

type advisorySummary struct {
	IdentityBadge        *string  `json:"identity_badge"`
	EstimatedSavings     *float64 `json:"estimated_savings"`
	RewardRecommendation string   `json:"reward_recommendation"`
}

type advisoryPersonality struct {
	Mindful   *float64 `json:"mindful"`
	Indulgent *float64 `json:"indulgent"`
	Emotional *float64 `json:"emotional"`
}

// cleanMarkdownWrapper strips a fenced code block from around the reply
// body. Generative models routinely wrap JSON payloads in ```json fences
// despite instructions not to.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if idx := strings.Index(content, "```json"); idx >= 0 {
		content = content[idx+len("```json"):]
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
		return strings.TrimSpace(content)
	}

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
		return strings.TrimSpace(content)
	}

	return content
}

// parseReply validates and normalizes a raw advisory reply against the
// request items. Reply items are aligned to request items by position; a
// count mismatch is an error, never a truncation.
func parseReply(content string, items []CartItem) (model.AnalysisResult, error) {
	content = cleanMarkdownWrapper(content)

	var reply advisoryReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return model.AnalysisResult{}, advisoryErr(ReasonMalformedReply, "failed to parse reply JSON: %v", err)
	}

	if reply.Items == nil {
		return model.AnalysisResult{}, advisoryErr(ReasonMissingField, "reply has no items list")
	}
	if len(reply.Items) != len(items) {
		return model.AnalysisResult{}, advisoryErr(ReasonItemMismatch,
			"reply has %d items for a %d item request", len(reply.Items), len(items))
	}

	if reply.Summary == nil {
		return model.AnalysisResult{}, advisoryErr(ReasonMissingField, "reply has no summary")
	}
	if reply.Summary.IdentityBadge == nil || *reply.Summary.IdentityBadge == "" {
		return model.AnalysisResult{}, advisoryErr(ReasonMissingField, "summary has no identity badge")
	}
	if reply.Summary.EstimatedSavings == nil {
		return model.AnalysisResult{}, advisoryErr(ReasonMissingField, "summary has no estimated savings")
	}
	if *reply.Summary.EstimatedSavings < 0 {
		return model.AnalysisResult{}, advisoryErr(ReasonMissingField,
			"estimated savings must be non-negative, got %.2f", *reply.Summary.EstimatedSavings)
	}

	personality, err := parsePersonality(reply.Personality)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	resultItems := make([]model.ItemAnalysis, len(items))
	for i, replyItem := range reply.Items {
		verdict, err := model.NormalizeVerdict(replyItem.Verdict)
		if err != nil {
			return model.AnalysisResult{}, advisoryErr(ReasonMissingField, "item %d: %v", i, err)
		}
		if strings.TrimSpace(replyItem.Suggestion) == "" {
			return model.AnalysisResult{}, advisoryErr(ReasonMissingField, "item %d has no suggestion", i)
		}

		resultItems[i] = model.ItemAnalysis{
			ItemID:     items[i].Name,
			Verdict:    verdict,
			Suggestion: replyItem.Suggestion,
			Price:      items[i].Price,
			Reason:     items[i].Reason,
		}
	}

	return model.AnalysisResult{
		Source: model.SourceAdvisory,
		Items:  resultItems,
		Summary: model.AnalysisSummary{
			IdentityBadge:        *reply.Summary.IdentityBadge,
			EstimatedSavings:     *reply.Summary.EstimatedSavings,
			RewardRecommendation: reply.Summary.RewardRecommendation,
		},
		Personality: personality,
	}, nil
}

func parsePersonality(p *advisoryPersonality) (model.PersonalityProfile, error) {
	if p == nil {
		return model.PersonalityProfile{}, advisoryErr(ReasonMissingField, "reply has no personality breakdown")
	}
	if p.Mindful == nil || p.Indulgent == nil || p.Emotional == nil {
		return model.PersonalityProfile{}, advisoryErr(ReasonMissingField, "personality breakdown is incomplete")
	}

	profile := model.PersonalityProfile{
		Mindful:   *p.Mindful,
		Indulgent: *p.Indulgent,
		Emotional: *p.Emotional,
	}
	if err := profile.Validate(); err != nil {
		return model.PersonalityProfile{}, advisoryErr(ReasonMissingField, "%v", err)
	}
	return profile, nil
}
