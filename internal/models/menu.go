package models

// MenuCategory represents the category of a menu item
type MenuCategory string

const (
	CategoryMain    MenuCategory = "Main"
	CategoryStarter MenuCategory = "Starter"
	CategorySide    MenuCategory = "Side"
	CategoryDessert MenuCategory = "Dessert"
	CategoryDrink   MenuCategory = "Drink"
)

// HealthFlags marks which health conditions a menu item is safe for.
// A true flag means the item is suitable for a customer with that condition.
type HealthFlags struct {
	Diabetes      bool `json:"diabetes"`
	Cholesterol   bool `json:"cholesterol"`
	BloodPressure bool `json:"bloodPressure"`
	SugarFree     bool `json:"sugarFree"`
}

// Any reports whether at least one flag is set.
func (h HealthFlags) Any() bool {
	return h.Diabetes || h.Cholesterol || h.BloodPressure || h.SugarFree
}

// MenuItem represents a sellable dish with its nutritional profile
type MenuItem struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Category MenuCategory `json:"category"`
	Price    float64      `json:"price"`
	Calories int          `json:"calories"`
	Protein  float64      `json:"protein"`
	Carbs    float64      `json:"carbs"`
	Fat      float64      `json:"fat"`
	Sugar    float64      `json:"sugar"`
	Health   HealthFlags  `json:"health"`
	Warning  string       `json:"warning"`
}

// menuItems is the fixed catalog, defined at process start and never mutated.
var menuItems = []MenuItem{
	{ID: 1, Name: "Classic Burger", Category: CategoryMain, Price: 12, Calories: 650, Protein: 35, Carbs: 45, Fat: 38, Sugar: 8,
		Health: HealthFlags{}, Warning: "High fat, high sodium"},
	{ID: 2, Name: "Margherita Pizza", Category: CategoryMain, Price: 15, Calories: 850, Protein: 28, Carbs: 95, Fat: 32, Sugar: 6,
		Health: HealthFlags{SugarFree: true}, Warning: "High carbs, high sodium"},
	{ID: 3, Name: "Carbonara Pasta", Category: CategoryMain, Price: 13, Calories: 720, Protein: 25, Carbs: 85, Fat: 28, Sugar: 4,
		Health: HealthFlags{SugarFree: true}, Warning: "High carbs, cream-based"},
	{ID: 4, Name: "Caesar Salad", Category: CategoryStarter, Price: 8, Calories: 320, Protein: 12, Carbs: 18, Fat: 22, Sugar: 3,
		Health: HealthFlags{Diabetes: true, BloodPressure: true, SugarFree: true}, Warning: "Dressing may be high in fat"},
	{ID: 5, Name: "Tomato Soup", Category: CategoryStarter, Price: 6, Calories: 180, Protein: 4, Carbs: 28, Fat: 6, Sugar: 12,
		Health: HealthFlags{Diabetes: true, Cholesterol: true, BloodPressure: true}, Warning: "Contains natural sugars"},
	{ID: 6, Name: "Grilled Steak", Category: CategoryMain, Price: 25, Calories: 480, Protein: 52, Carbs: 2, Fat: 28, Sugar: 0,
		Health: HealthFlags{Diabetes: true, BloodPressure: true, SugarFree: true}, Warning: "High in saturated fat"},
	{ID: 7, Name: "Truffle Fries", Category: CategorySide, Price: 5, Calories: 420, Protein: 5, Carbs: 52, Fat: 22, Sugar: 1,
		Health: HealthFlags{SugarFree: true}, Warning: "Fried, high carbs"},
	{ID: 8, Name: "Gelato", Category: CategoryDessert, Price: 6, Calories: 280, Protein: 4, Carbs: 38, Fat: 12, Sugar: 28,
		Health: HealthFlags{BloodPressure: true}, Warning: "Very high sugar content"},
	{ID: 9, Name: "Tiramisu", Category: CategoryDessert, Price: 7, Calories: 450, Protein: 6, Carbs: 48, Fat: 26, Sugar: 32,
		Health: HealthFlags{}, Warning: "Very high sugar, caffeine"},
	{ID: 10, Name: "Craft Soda", Category: CategoryDrink, Price: 3, Calories: 150, Protein: 0, Carbs: 38, Fat: 0, Sugar: 38,
		Health: HealthFlags{Cholesterol: true, BloodPressure: true}, Warning: "Very high sugar"},
	{ID: 11, Name: "Espresso", Category: CategoryDrink, Price: 4, Calories: 5, Protein: 0, Carbs: 1, Fat: 0, Sugar: 0,
		Health: HealthFlags{Diabetes: true, Cholesterol: true, SugarFree: true}, Warning: "Caffeine may affect BP"},
	{ID: 12, Name: "Wine Glass", Category: CategoryDrink, Price: 9, Calories: 125, Protein: 0, Carbs: 4, Fat: 0, Sugar: 1,
		Health: HealthFlags{Diabetes: true, Cholesterol: true, SugarFree: true}, Warning: "Alcohol - consult doctor"},
}

// Menu returns a copy of the full menu catalog.
func Menu() []MenuItem {
	items := make([]MenuItem, len(menuItems))
	copy(items, menuItems)
	return items
}

// MenuItemByID looks up a catalog item by its id.
func MenuItemByID(id int) (MenuItem, bool) {
	for _, item := range menuItems {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}
