package distribution

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidItem = errors.New("invalid stock item")

// ValidationError identifies the item that was rejected and why.
type ValidationError struct {
	Index  int
	Name   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("item %d (%q): %s %s", e.Index, e.Name, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidItem
}

func invalid(index int, name, field, reason string) *ValidationError {
	return &ValidationError{Index: index, Name: name, Field: field, Reason: reason}
}

func validate(index int, it StockItem) error {
	switch {
	case it.Name == "":
		return invalid(index, it.Name, "name", "is required")
	case !it.Category.Valid():
		return invalid(index, it.Name, "category", fmt.Sprintf("%q is not a known category", it.Category))
	case it.Quantity < 0:
		return invalid(index, it.Name, "quantity", "must not be negative")
	case it.WeeklyCustomers <= 0:
		return invalid(index, it.Name, "weekly_customers", "must be positive")
	}

	if err := checkNutrient(index, it.Name, "calories", it.Calories); err != nil {
		return err
	}
	return checkNutrient(index, it.Name, "sugars", it.Sugars)
}

func checkNutrient(index int, name, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(index, name, field, "is not a number")
	}
	if v < 0 {
		return invalid(index, name, field, "must not be negative")
	}
	return nil
}
