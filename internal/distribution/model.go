package distribution

import (
	"fmt"
	"strings"
	"time"
)

// Category is the food group an inventory item belongs to.
type Category string

const (
	CategorySnacks      Category = "Snacks"
	CategoryProtein     Category = "Protein"
	CategoryVegetables  Category = "Vegetables"
	CategoryGrain       Category = "Grain"
	CategoryDairy       Category = "Dairy"
	CategoryCannedGoods Category = "CannedGoods"
)

var categories = []Category{
	CategorySnacks,
	CategoryProtein,
	CategoryVegetables,
	CategoryGrain,
	CategoryDairy,
	CategoryCannedGoods,
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory accepts the canonical names case-insensitively and
// ignores spaces, so "canned goods" maps to CannedGoods.
func ParseCategory(s string) (Category, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	for _, known := range categories {
		if strings.EqualFold(normalized, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// StockItem is one inventory line as seen by the engine.
// DaysUntilExpiry is derived by the caller (see DaysUntil) before the
// snapshot is handed over.
type StockItem struct {
	Name            string
	Category        Category
	Quantity        int
	ExpirationDate  time.Time
	DaysUntilExpiry int
	Calories        float64
	Sugars          float64
	WeeklyCustomers int
}

// NutritionalRatio is calories per unit of sugar with +1 smoothing.
func (it StockItem) NutritionalRatio() float64 {
	return NutritionalRatio(it.Calories, it.Sugars)
}

// PlanEntry is one ranked line of a distribution plan.
type PlanEntry struct {
	FoodItem            string   `json:"food_item"`
	FoodType            Category `json:"food_type"`
	DaysUntilExpiry     int      `json:"days_until_expiry"`
	CurrentQuantity     int      `json:"current_quantity"`
	RecommendedQuantity float64  `json:"recommended_quantity"`
	PriorityScore       float64  `json:"priority_score"`
	Rank                int      `json:"rank"`
}
