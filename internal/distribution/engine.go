package distribution

import "sort"

type scoredItem struct {
	item  StockItem
	index int
	score float64
}

// ComputePlan ranks a stock snapshot and recommends how much of each item
// to hand out. PURE business logic (no storage, no network).
//
// The call is fail-fast: the first malformed item aborts with a
// *ValidationError and no plan. An empty snapshot yields an empty plan.
func ComputePlan(items []StockItem) ([]PlanEntry, error) {
	scored := make([]scoredItem, len(items))
	for i, it := range items {
		if err := validate(i, it); err != nil {
			return nil, err
		}
		scored[i] = scoredItem{item: it, index: i, score: priorityScore(it)}
	}

	sort.Slice(scored, func(a, b int) bool {
		x, y := scored[a], scored[b]
		if x.score != y.score {
			return x.score > y.score
		}
		if x.item.DaysUntilExpiry != y.item.DaysUntilExpiry {
			return x.item.DaysUntilExpiry < y.item.DaysUntilExpiry
		}
		if x.item.Name != y.item.Name {
			return x.item.Name < y.item.Name
		}
		return x.index < y.index
	})

	plan := make([]PlanEntry, len(scored))
	for rank, s := range scored {
		plan[rank] = PlanEntry{
			FoodItem:            s.item.Name,
			FoodType:            s.item.Category,
			DaysUntilExpiry:     s.item.DaysUntilExpiry,
			CurrentQuantity:     s.item.Quantity,
			RecommendedQuantity: recommendedQuantity(s.item),
			PriorityScore:       s.score,
			Rank:                rank + 1,
		}
	}

	return plan, nil
}

// Top returns the n highest-ranked entries; n <= 0 returns the whole plan.
func Top(plan []PlanEntry, n int) []PlanEntry {
	if n <= 0 || n >= len(plan) {
		return plan
	}
	return plan[:n]
}
