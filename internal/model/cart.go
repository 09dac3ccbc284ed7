package model

// CartEntry is a single candidate purchase in the cart. Duplicates of
// the same item are permitted as distinct entries.
type CartEntry struct {
	ItemID string
	Reason string
}

// ShoppingGoal is the shopper's stated focus for the session.
type ShoppingGoal string

// Shopping goals offered on the landing page.
const (
	GoalEssentialsOnly   ShoppingGoal = "Essentials Only"
	GoalBalancedShopping ShoppingGoal = "Balanced Shopping"
	GoalTreatYourself    ShoppingGoal = "Treat Yourself"
	GoalGiftShopping     ShoppingGoal = "Gift Shopping"
)

// AllGoals lists the selectable shopping goals in display order.
func AllGoals() []ShoppingGoal {
	return []ShoppingGoal{GoalEssentialsOnly, GoalBalancedShopping, GoalTreatYourself, GoalGiftShopping}
}
