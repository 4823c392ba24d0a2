// Package analytics computes the manager dashboard's aggregate statistics.
// Every function is a pure, total function over an order snapshot; missing
// fields are defaulted, never an error.
package analytics

import (
	"math"

	"maitred/internal/models"
	"maitred/internal/recommend"
)

// StatusCounts is the per-status breakdown of the order collection
type StatusCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Preparing int `json:"preparing"`
	Ready     int `json:"ready"`
	Completed int `json:"completed"`
}

// CountByStatus tallies orders per status.
func CountByStatus(orders []models.Order) StatusCounts {
	counts := StatusCounts{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusPreparing:
			counts.Preparing++
		case models.StatusReady:
			counts.Ready++
		case models.StatusCompleted:
			counts.Completed++
		}
	}
	return counts
}

// HealthCounts tallies orders (not customers) by health condition
type HealthCounts struct {
	TotalWithConditions int `json:"totalWithConditions"`
	Diabetes            int `json:"diabetes"`
	Cholesterol         int `json:"cholesterol"`
	BloodPressure       int `json:"bloodPressure"`
	SugarFree           int `json:"sugarFree"`
}

// CountHealthConditions tallies the aggregated condition flags across
// orders that carry them.
func CountHealthConditions(orders []models.Order) HealthCounts {
	var counts HealthCounts
	for _, o := range orders {
		if o.HealthConditions == nil {
			continue
		}
		flags := *o.HealthConditions
		if flags.Any() {
			counts.TotalWithConditions++
		}
		if flags.Diabetes {
			counts.Diabetes++
		}
		if flags.Cholesterol {
			counts.Cholesterol++
		}
		if flags.BloodPressure {
			counts.BloodPressure++
		}
		if flags.SugarFree {
			counts.SugarFree++
		}
	}
	return counts
}

// AgeStats buckets the people across all orders by age band
type AgeStats struct {
	AvgAge      int `json:"avgAge"`
	Children    int `json:"children"`
	Teens       int `json:"teens"`
	Adults      int `json:"adults"`
	Seniors     int `json:"seniors"`
	TotalPeople int `json:"totalPeople"`
}

// AgeDemographics computes a person-weighted average age and buckets every
// person using their order's average age as representative. Applying the
// order-level average to the whole party is a deliberate approximation.
func AgeDemographics(orders []models.Order) AgeStats {
	var stats AgeStats
	var weightedAge int

	for _, o := range orders {
		if o.CustomerInfo == nil {
			continue
		}
		age := o.CustomerInfo.AvgAge
		people := o.CustomerInfo.Adults + o.CustomerInfo.Children
		weightedAge += age * people
		stats.TotalPeople += people

		switch {
		case age < 12:
			stats.Children += people
		case age < 18:
			stats.Teens += people
		case age < 65:
			stats.Adults += people
		default:
			stats.Seniors += people
		}
	}

	if stats.TotalPeople > 0 {
		stats.AvgAge = int(math.Round(float64(weightedAge) / float64(stats.TotalPeople)))
	}
	return stats
}

// FoodWaste is the outcome of the portion-size waste prediction
type FoodWaste struct {
	GoodPortions   int `json:"goodPortions"`
	ExcessPortions int `json:"excessPortions"`
	LightPortions  int `json:"lightPortions"`
	PotentialWaste int `json:"potentialWaste"`
	TotalOrders    int `json:"totalOrders"`
}

// PredictFoodWaste classifies each order's ordered calories against a
// budget derived from its party summary, applying the order's average age
// to all adults. Orders without items or a party summary are skipped;
// partially missing fields default to one 30-year-old adult.
func PredictFoodWaste(orders []models.Order) FoodWaste {
	waste := FoodWaste{TotalOrders: len(orders)}
	var totalOrdered, totalRecommended int

	for _, o := range orders {
		if len(o.Items) == 0 || o.CustomerInfo == nil {
			continue
		}

		ordered := recommend.OrderCalories(o.Items)
		totalOrdered += ordered

		age := o.CustomerInfo.AvgAge
		if age == 0 {
			age = 30
		}
		adults := o.CustomerInfo.Adults
		if adults == 0 {
			adults = 1
		}
		children := o.CustomerInfo.Children

		recommended := adults*recommend.BaselineCalories(age) + children*recommend.ChildBaselineCalories
		totalRecommended += recommended

		ratio := float64(ordered) / float64(recommended)
		switch {
		case ratio >= 0.6 && ratio <= 1.2:
			waste.GoodPortions++
		case ratio > 1.2:
			waste.ExcessPortions++
		default:
			waste.LightPortions++
		}
	}

	if totalOrdered > totalRecommended {
		waste.PotentialWaste = totalOrdered - totalRecommended
	}
	return waste
}
