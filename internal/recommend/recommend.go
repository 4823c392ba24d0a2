// Package recommend filters the menu by customer health conditions and
// classifies a draft order's size against a computed calorie budget. Every
// function is total: bad input degrades, it never fails.
package recommend

import (
	"maitred/internal/models"
)

// BaselineCalories returns the recommended meal calories for one person of
// the given age.
func BaselineCalories(age int) int {
	switch {
	case age < 12:
		return 400
	case age < 18:
		return 550
	case age < 30:
		return 750
	case age < 50:
		return 700
	case age < 65:
		return 600
	default:
		return 500
	}
}

// ChildBaselineCalories is the flat per-child budget used by the
// order-level waste prediction.
const ChildBaselineCalories = 400

// RecommendedCalories sums each customer's age baseline into the draft's
// calorie budget.
func RecommendedCalories(customers []models.Customer) int {
	var total int
	for _, c := range customers {
		total += BaselineCalories(c.Age)
	}
	return total
}

// OrderCalories totals the calories across the given line items.
func OrderCalories(items []models.OrderItem) int {
	var total int
	for _, item := range items {
		total += item.Calories * item.Quantity
	}
	return total
}

// SuitableFor reports whether an item is safe for one health condition.
// Everything qualifies for a normal condition; otherwise the item's
// matching suitability flag decides.
func SuitableFor(item models.MenuItem, condition models.HealthCondition) bool {
	switch condition {
	case models.ConditionDiabetes:
		return item.Health.Diabetes
	case models.ConditionCholesterol:
		return item.Health.Cholesterol
	case models.ConditionBloodPressure:
		return item.Health.BloodPressure
	case models.ConditionSugarFree:
		return item.Health.SugarFree
	}
	return true
}

// SuitableForAll reports whether an item independently satisfies every
// customer's condition.
func SuitableForAll(item models.MenuItem, customers []models.Customer) bool {
	for _, c := range customers {
		if !SuitableFor(item, c.HealthCondition) {
			return false
		}
	}
	return true
}

// RecommendationsFor returns the menu items suitable for one customer.
func RecommendationsFor(customer models.Customer, menu []models.MenuItem) []models.MenuItem {
	if customer.HealthCondition == models.ConditionNormal {
		return menu
	}
	var suitable []models.MenuItem
	for _, item := range menu {
		if SuitableFor(item, customer.HealthCondition) {
			suitable = append(suitable, item)
		}
	}
	return suitable
}

// SafeForEveryone returns the items safe for the whole party. When no
// customer has a restricting condition, every item trivially qualifies.
func SafeForEveryone(customers []models.Customer, menu []models.MenuItem) []models.MenuItem {
	safe := make([]models.MenuItem, 0, len(menu))
	for _, item := range menu {
		if SuitableForAll(item, customers) {
			safe = append(safe, item)
		}
	}
	return safe
}

// PortionLevel classifies an order's size against the calorie budget
type PortionLevel string

const (
	PortionEmpty  PortionLevel = "empty"
	PortionLow    PortionLevel = "low"
	PortionGood   PortionLevel = "good"
	PortionHigh   PortionLevel = "high"
	PortionExcess PortionLevel = "excess"
)

// Portion is the result of classifying an order's calories
type Portion struct {
	Level       PortionLevel `json:"level"`
	Percentage  float64      `json:"percentage"`
	Recommended int          `json:"recommended"`
	Current     int          `json:"current"`
	Message     string       `json:"message"`
}

// Blocking reports whether submission needs an explicit override.
func (p Portion) Blocking() bool {
	return p.Level == PortionExcess
}

// ClassifyPortion grades current calories against the recommended budget.
// 60% and 120% are inclusive bounds of the good range.
func ClassifyPortion(current, recommended int) Portion {
	p := Portion{Current: current, Recommended: recommended}
	if recommended > 0 {
		p.Percentage = float64(current) / float64(recommended) * 100
	}

	switch {
	case current == 0:
		p.Level = PortionEmpty
		p.Message = "Add items to see recommendation"
	case recommended <= 0:
		// No budget to compare against; a non-empty order counts as excess.
		p.Level = PortionExcess
		p.Message = "Too much food - may lead to waste"
	case p.Percentage < 60:
		p.Level = PortionLow
		p.Message = "Order may be too light"
	case p.Percentage <= 120:
		p.Level = PortionGood
		p.Message = "Perfect portion size"
	case p.Percentage <= 150:
		p.Level = PortionHigh
		p.Message = "Order is slightly heavy"
	default:
		p.Level = PortionExcess
		p.Message = "Too much food - may lead to waste"
	}
	return p
}
