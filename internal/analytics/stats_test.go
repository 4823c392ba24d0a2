package analytics

import (
	"testing"

	"maitred/internal/models"
)

func TestCountByStatus(t *testing.T) {
	orders := []models.Order{
		{ID: 1, Status: models.StatusPending},
		{ID: 2, Status: models.StatusPending},
		{ID: 3, Status: models.StatusPreparing},
		{ID: 4, Status: models.StatusReady},
		{ID: 5, Status: models.StatusCompleted},
	}

	counts := CountByStatus(orders)

	if counts.Total != 5 {
		t.Errorf("Total = %d, want 5", counts.Total)
	}
	if counts.Pending != 2 {
		t.Errorf("Pending = %d, want 2", counts.Pending)
	}
	if counts.Preparing != 1 || counts.Ready != 1 || counts.Completed != 1 {
		t.Errorf("Preparing/Ready/Completed = %d/%d/%d, want 1/1/1",
			counts.Preparing, counts.Ready, counts.Completed)
	}
}

func TestCountHealthConditions(t *testing.T) {
	orders := []models.Order{
		{ID: 1, HealthConditions: &models.HealthFlags{Diabetes: true, SugarFree: true}},
		{ID: 2, HealthConditions: &models.HealthFlags{Cholesterol: true}},
		{ID: 3, HealthConditions: &models.HealthFlags{}},
		{ID: 4}, // no health data at all
	}

	counts := CountHealthConditions(orders)

	if counts.TotalWithConditions != 2 {
		t.Errorf("TotalWithConditions = %d, want 2", counts.TotalWithConditions)
	}
	if counts.Diabetes != 1 || counts.Cholesterol != 1 || counts.SugarFree != 1 || counts.BloodPressure != 0 {
		t.Errorf("Per-condition counts = %d/%d/%d/%d, want 1/1/1/0",
			counts.Diabetes, counts.Cholesterol, counts.SugarFree, counts.BloodPressure)
	}
}

func TestAgeDemographicsBuckets(t *testing.T) {
	// An order with average age 10 and two children contributes both
	// people to the children bucket and nothing elsewhere.
	orders := []models.Order{
		{ID: 1, CustomerInfo: &models.CustomerInfo{AvgAge: 10, Adults: 0, Children: 2}},
	}

	stats := AgeDemographics(orders)

	if stats.Children != 2 {
		t.Errorf("Children = %d, want 2", stats.Children)
	}
	if stats.Teens != 0 || stats.Adults != 0 || stats.Seniors != 0 {
		t.Errorf("Teens/Adults/Seniors = %d/%d/%d, want 0/0/0",
			stats.Teens, stats.Adults, stats.Seniors)
	}
	if stats.TotalPeople != 2 {
		t.Errorf("TotalPeople = %d, want 2", stats.TotalPeople)
	}
	if stats.AvgAge != 10 {
		t.Errorf("AvgAge = %d, want 10", stats.AvgAge)
	}
}

func TestAgeDemographicsWeightedAverage(t *testing.T) {
	orders := []models.Order{
		{ID: 1, CustomerInfo: &models.CustomerInfo{AvgAge: 30, Adults: 3, Children: 0}},
		{ID: 2, CustomerInfo: &models.CustomerInfo{AvgAge: 70, Adults: 1, Children: 0}},
		{ID: 3}, // no age data, ignored
	}

	stats := AgeDemographics(orders)

	// (30*3 + 70*1) / 4 = 40
	if stats.AvgAge != 40 {
		t.Errorf("AvgAge = %d, want 40", stats.AvgAge)
	}
	if stats.Adults != 3 || stats.Seniors != 1 {
		t.Errorf("Adults/Seniors = %d/%d, want 3/1", stats.Adults, stats.Seniors)
	}
}

func TestAgeDemographicsEmpty(t *testing.T) {
	stats := AgeDemographics([]models.Order{{ID: 1}, {ID: 2}})

	if stats != (AgeStats{}) {
		t.Errorf("Expected zero stats without age data, got %+v", stats)
	}
}

func wasteOrder(id, calories int, info models.CustomerInfo) models.Order {
	return models.Order{
		ID:           id,
		Items:        []models.OrderItem{{ID: 1, Name: "Test Dish", Calories: calories, Quantity: 1}},
		CustomerInfo: &info,
	}
}

func TestPredictFoodWasteBoundaries(t *testing.T) {
	// Two seniors give a recommended budget of exactly 1000 calories.
	budget := models.CustomerInfo{AvgAge: 70, Adults: 2, Children: 0}

	tests := []struct {
		name    string
		ordered int
		want    func(FoodWaste) int
		label   string
	}{
		{"ratio 0.6 is good", 600, func(w FoodWaste) int { return w.GoodPortions }, "GoodPortions"},
		{"ratio just under 0.6 is light", 599, func(w FoodWaste) int { return w.LightPortions }, "LightPortions"},
		{"ratio 1.2 is good", 1200, func(w FoodWaste) int { return w.GoodPortions }, "GoodPortions"},
		{"ratio just over 1.2 is excess", 1201, func(w FoodWaste) int { return w.ExcessPortions }, "ExcessPortions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			waste := PredictFoodWaste([]models.Order{wasteOrder(1, tt.ordered, budget)})
			if got := tt.want(waste); got != 1 {
				t.Errorf("%s = %d, want 1 (waste: %+v)", tt.label, got, waste)
			}
		})
	}
}

func TestPredictFoodWasteDefaults(t *testing.T) {
	// Partially missing customer info defaults to one 30-year-old adult,
	// giving a 700 calorie budget.
	waste := PredictFoodWaste([]models.Order{wasteOrder(1, 700, models.CustomerInfo{})})

	if waste.GoodPortions != 1 {
		t.Errorf("GoodPortions = %d, want 1", waste.GoodPortions)
	}
}

func TestPredictFoodWasteSkipsIncompleteOrders(t *testing.T) {
	orders := []models.Order{
		{ID: 1, CustomerInfo: &models.CustomerInfo{AvgAge: 30, Adults: 1}}, // no items
		{ID: 2, Items: []models.OrderItem{{Calories: 500, Quantity: 1}}},  // no customer info
	}

	waste := PredictFoodWaste(orders)

	if waste.GoodPortions+waste.LightPortions+waste.ExcessPortions != 0 {
		t.Errorf("Expected no classified portions, got %+v", waste)
	}
	if waste.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d, want 2", waste.TotalOrders)
	}
}

func TestPredictFoodWasteNeverNegative(t *testing.T) {
	budget := models.CustomerInfo{AvgAge: 70, Adults: 2, Children: 0}
	waste := PredictFoodWaste([]models.Order{wasteOrder(1, 100, budget)})

	if waste.PotentialWaste != 0 {
		t.Errorf("PotentialWaste = %d, want 0", waste.PotentialWaste)
	}
}

func TestPredictFoodWasteAggregates(t *testing.T) {
	budget := models.CustomerInfo{AvgAge: 70, Adults: 2, Children: 0} // 1000 each
	orders := []models.Order{
		wasteOrder(1, 1500, budget), // excess
		wasteOrder(2, 800, budget),  // good
	}

	waste := PredictFoodWaste(orders)

	if waste.ExcessPortions != 1 || waste.GoodPortions != 1 {
		t.Errorf("Excess/Good = %d/%d, want 1/1", waste.ExcessPortions, waste.GoodPortions)
	}
	// 2300 ordered against 2000 recommended
	if waste.PotentialWaste != 300 {
		t.Errorf("PotentialWaste = %d, want 300", waste.PotentialWaste)
	}
}
