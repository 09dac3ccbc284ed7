package advisor

import (
	"encoding/json"
	"fmt"

	"github.com/mindcart/mindcart/internal/model"
)

const systemPrompt = "You are a shopping psychology expert analyzing a customer's cart. Respond only with the JSON object in the exact format requested, with no additional prose."

// requestItem is the wire shape of one cart item in the request payload.
type requestItem struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Reason   string  `json:"reason"`
	Price    float64 `json:"price"`
}

// buildPrompt creates the advisory prompt for a cart snapshot.
func buildPrompt(items []CartItem, goal model.ShoppingGoal) (string, error) {
	payload := make([]requestItem, len(items))
	for i, item := range items {
		reason := item.Reason
		if reason == "" {
			reason = "No reason provided"
		}
		payload[i] = requestItem{
			Name:     item.Name,
			Price:    item.Price,
			Category: string(item.Category),
			Reason:   reason,
		}
	}

	cartDetails, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal cart items: %w", err)
	}

	goalText := string(goal)
	if goalText == "" {
		goalText = "General Shopping"
	}

	return fmt.Sprintf(`Analyze this customer's shopping cart using behavioral psychology.
Shopping Goal: %s

Cart Items:
%s

For each item, provide:
1. A verdict: "Keep", "Reconsider", or "Optional"
2. A personalized suggestion considering the shopping goal and item necessity

Also provide:
- A shopping identity badge (e.g., "Mindful Shopper", "Impulse Buyer", "Balanced Shopper")
- A personality breakdown (mindful %%, indulgent %%, emotional %%)
- Estimated savings if flagged items are removed
- A reward recommendation: if impulse or luxury items are flagged, suggest a small
  affordable treat as positive reinforcement without promoting overspending

Return exactly one item per cart item, in the same order as the cart.

Return the response in this exact JSON format:
{
  "items": [
    {
      "name": "item_name",
      "verdict": "verdict",
      "suggestion": "detailed_suggestion"
    }
  ],
  "summary": {
    "identity_badge": "badge_name",
    "estimated_savings": savings_amount,
    "reward_recommendation": "reward_text"
  },
  "personality": {
    "mindful": percentage,
    "indulgent": percentage,
    "emotional": percentage
  }
}`, goalText, cartDetails), nil
}
