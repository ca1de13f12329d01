package distribution

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"
)

// DefaultWeeklyCustomers is assumed when an item carries no demand figure.
const DefaultWeeklyCustomers = 100

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// RawItem is the JSON form of a stock line, using the inventory sheet
// column names. Numeric fields are pointers so a missing value can be told
// apart from zero.
type RawItem struct {
	FoodItem        string   `json:"food_item"`
	FoodType        string   `json:"food_type"`
	CurrentQuantity *int     `json:"current_quantity"`
	ExpirationDate  string   `json:"expiration_date"`
	DaysUntilExpiry *int     `json:"days_until_expiry"`
	Calories        *float64 `json:"calories"`
	Sugars          *float64 `json:"sugars"`
	WeeklyCustomers *int     `json:"weekly_customers"`
}

// StockItem converts the raw line, deriving days until expiry from the
// expiration date when it is not given explicitly.
func (r RawItem) StockItem(index int, now time.Time) (StockItem, error) {
	it := StockItem{
		Name:            r.FoodItem,
		WeeklyCustomers: DefaultWeeklyCustomers,
	}

	category, err := ParseCategory(r.FoodType)
	if err != nil {
		return it, invalid(index, r.FoodItem, "food_type", err.Error())
	}
	it.Category = category

	if r.CurrentQuantity == nil {
		return it, invalid(index, r.FoodItem, "current_quantity", "is missing")
	}
	it.Quantity = *r.CurrentQuantity

	if r.Calories == nil {
		return it, invalid(index, r.FoodItem, "calories", "is missing")
	}
	it.Calories = *r.Calories

	if r.Sugars == nil {
		return it, invalid(index, r.FoodItem, "sugars", "is missing")
	}
	it.Sugars = *r.Sugars

	if r.WeeklyCustomers != nil {
		it.WeeklyCustomers = *r.WeeklyCustomers
	}

	if r.ExpirationDate != "" {
		exp, err := ParseDate(r.ExpirationDate)
		if err != nil {
			return it, invalid(index, r.FoodItem, "expiration_date", err.Error())
		}
		it.ExpirationDate = exp
		it.DaysUntilExpiry = DaysUntil(exp, now)
	}

	switch {
	case r.DaysUntilExpiry != nil:
		it.DaysUntilExpiry = *r.DaysUntilExpiry
	case r.ExpirationDate == "":
		return it, invalid(index, r.FoodItem, "expiration_date", "is missing")
	}

	return it, validate(index, it)
}

// DecodeItems reads a JSON array of RawItem and converts every entry.
// Elements are decoded one at a time so a wrongly typed field is reported
// against the item it belongs to.
func DecodeItems(r io.Reader, now time.Time) ([]StockItem, error) {
	var elems []json.RawMessage
	if err := json.NewDecoder(r).Decode(&elems); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}

	items := make([]StockItem, 0, len(elems))
	for i, elem := range elems {
		raw, err := decodeRawItem(i, elem)
		if err != nil {
			return nil, err
		}
		it, err := raw.StockItem(i, now)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func decodeRawItem(index int, elem json.RawMessage) (RawItem, error) {
	var raw RawItem
	err := json.Unmarshal(elem, &raw)
	if err == nil {
		return raw, nil
	}

	// best effort, the name may be the broken field
	var named struct {
		FoodItem string `json:"food_item"`
	}
	_ = json.Unmarshal(elem, &named)

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		switch {
		case ute.Type.Kind() == reflect.Int && strings.HasPrefix(ute.Value, "number"):
			return raw, invalid(index, named.FoodItem, ute.Field, "is not a whole number")
		case ute.Type.Kind() == reflect.Int, ute.Type.Kind() == reflect.Float64:
			return raw, invalid(index, named.FoodItem, ute.Field, "is not a number")
		default:
			return raw, invalid(index, named.FoodItem, ute.Field, "is not a "+ute.Type.Kind().String())
		}
	}
	return raw, invalid(index, named.FoodItem, "item", "is not a JSON object")
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 timestamps.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a date (want YYYY-MM-DD)", s)
}
