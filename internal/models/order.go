package models

import "fmt"

// OrderStatus represents the possible states of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
)

// ValidStatus reports whether s is one of the defined order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted:
		return true
	}
	return false
}

// Next returns the following status in the pipeline. The second return
// value is false for the terminal status and unknown values.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusPending:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	case StatusReady:
		return StatusCompleted, true
	}
	return "", false
}

// HealthCondition is a customer's single-select dietary restriction
type HealthCondition string

const (
	ConditionNormal        HealthCondition = "normal"
	ConditionDiabetes      HealthCondition = "diabetes"
	ConditionCholesterol   HealthCondition = "cholesterol"
	ConditionBloodPressure HealthCondition = "bloodPressure"
	ConditionSugarFree     HealthCondition = "sugarFree"
)

// ValidCondition reports whether c is a defined health condition.
func ValidCondition(c HealthCondition) bool {
	switch c {
	case ConditionNormal, ConditionDiabetes, ConditionCholesterol, ConditionBloodPressure, ConditionSugarFree:
		return true
	}
	return false
}

// Customer is one diner attached to an order in progress
type Customer struct {
	ID              int             `json:"id"`
	Age             int             `json:"age"`
	HealthCondition HealthCondition `json:"healthCondition"`
}

// CustomerInfo is the derived party summary captured at submission time
type CustomerInfo struct {
	NumberOfPeople int `json:"numberOfPeople"`
	Adults         int `json:"adults"`
	Children       int `json:"children"`
	AvgAge         int `json:"avgAge"`
}

// OrderItem represents one line of an order: a menu item snapshot plus
// quantity and notes. ID is the line item's own id, distinct from MenuItemID.
type OrderItem struct {
	ID         int          `json:"id"`
	MenuItemID int          `json:"menuItemId"`
	Name       string       `json:"name"`
	Category   MenuCategory `json:"category"`
	Price      float64      `json:"price"`
	Quantity   int          `json:"quantity"`
	Notes      string       `json:"notes"`
	Calories   int          `json:"calories"`
	Protein    float64      `json:"protein"`
	Carbs      float64      `json:"carbs"`
	Fat        float64      `json:"fat"`
	Sugar      float64      `json:"sugar"`
}

// Order represents a submitted customer order as it travels on the wire.
// The id is assigned by the backend; after submission only Status changes.
type Order struct {
	ID               int           `json:"id"`
	Table            string        `json:"table"`
	Status           OrderStatus   `json:"status"`
	Waiter           string        `json:"waiter,omitempty"`
	Timestamp        string        `json:"timestamp,omitempty"`
	Items            []OrderItem   `json:"items"`
	Customers        []Customer    `json:"customers,omitempty"`
	CustomerInfo     *CustomerInfo `json:"customerInfo,omitempty"`
	HealthConditions *HealthFlags  `json:"healthConditions,omitempty"`
}

// ValidateOrder checks the shape of an order received from the backend.
// The store validates at its boundary rather than trusting remote payloads.
func ValidateOrder(o *Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}
	if o.ID <= 0 {
		return fmt.Errorf("order is missing a server-assigned id")
	}
	if !ValidStatus(o.Status) {
		return fmt.Errorf("order %d has unknown status %q", o.ID, o.Status)
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("order %d item %q has non-positive quantity", o.ID, item.Name)
		}
	}
	return nil
}
