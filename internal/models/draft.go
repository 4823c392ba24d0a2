package models

import (
	"fmt"
	"math"
	"strings"
)

// Draft is an order being assembled by a waiter. It has no server id and
// never enters the order store; submission turns it into an OrderPayload.
type Draft struct {
	Table     string      `json:"table"`
	Items     []OrderItem `json:"items"`
	Customers []Customer  `json:"customers"`
}

// OrderPayload is the body sent to the backend when a draft is submitted
type OrderPayload struct {
	Table            string       `json:"table"`
	Waiter           string       `json:"waiter,omitempty"`
	Items            []OrderItem  `json:"items"`
	Customers        []Customer   `json:"customers"`
	CustomerInfo     CustomerInfo `json:"customerInfo"`
	HealthConditions HealthFlags  `json:"healthConditions"`
}

// Validate checks a draft before submission. A failing draft is never sent
// to the backend.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Table) == "" {
		return fmt.Errorf("table number is required")
	}
	if len(d.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}
	if len(d.Customers) == 0 {
		return fmt.Errorf("order must have at least one customer")
	}
	for _, item := range d.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("item %q has non-positive quantity", item.Name)
		}
	}
	for _, c := range d.Customers {
		if c.Age <= 0 {
			return fmt.Errorf("customer %d has non-positive age", c.ID)
		}
		if !ValidCondition(c.HealthCondition) {
			return fmt.Errorf("customer %d has unknown health condition %q", c.ID, c.HealthCondition)
		}
	}
	return nil
}

// Total returns the draft's price total.
func (d *Draft) Total() float64 {
	var total float64
	for _, item := range d.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Payload freezes the draft into the submission body: the customer list is
// snapshotted, the party summary is derived and the per-customer conditions
// are OR'd into the order-level flags.
func (d *Draft) Payload(waiter string) OrderPayload {
	return OrderPayload{
		Table:            d.Table,
		Waiter:           waiter,
		Items:            d.Items,
		Customers:        d.Customers,
		CustomerInfo:     SummarizeCustomers(d.Customers),
		HealthConditions: AggregateConditions(d.Customers),
	}
}

// SummarizeCustomers derives the party summary from the customer list.
func SummarizeCustomers(customers []Customer) CustomerInfo {
	info := CustomerInfo{NumberOfPeople: len(customers)}
	if len(customers) == 0 {
		return info
	}
	var totalAge int
	for _, c := range customers {
		totalAge += c.Age
		if c.Age >= 18 {
			info.Adults++
		} else {
			info.Children++
		}
	}
	info.AvgAge = int(math.Round(float64(totalAge) / float64(len(customers))))
	return info
}

// AggregateConditions ORs every customer's condition into order-level flags.
func AggregateConditions(customers []Customer) HealthFlags {
	var flags HealthFlags
	for _, c := range customers {
		switch c.HealthCondition {
		case ConditionDiabetes:
			flags.Diabetes = true
		case ConditionCholesterol:
			flags.Cholesterol = true
		case ConditionBloodPressure:
			flags.BloodPressure = true
		case ConditionSugarFree:
			flags.SugarFree = true
		}
	}
	return flags
}
