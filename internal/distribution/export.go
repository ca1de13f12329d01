package distribution

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{
	"rank",
	"food_item",
	"food_type",
	"days_until_expiry",
	"current_quantity",
	"recommended_quantity",
	"priority_score",
}

// WriteCSV renders a plan as CSV with a header row, in rank order.
func WriteCSV(w io.Writer, plan []PlanEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range plan {
		record := []string{
			strconv.Itoa(e.Rank),
			e.FoodItem,
			string(e.FoodType),
			strconv.Itoa(e.DaysUntilExpiry),
			strconv.Itoa(e.CurrentQuantity),
			strconv.FormatFloat(e.RecommendedQuantity, 'f', 2, 64),
			strconv.FormatFloat(e.PriorityScore, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
