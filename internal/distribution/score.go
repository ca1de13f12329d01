package distribution

import (
	"math"
	"time"
)

// Weights of the three scoring terms. Every term is scaled into [0,1]
// first, so a priority score always lands in [0,100].
const (
	urgencyWeight   = 40.0
	demandWeight    = 35.0
	nutritionWeight = 25.0
)

const (
	// minExpiryDays floors the urgency denominator; anything expiring
	// within half a day (or already expired) gets the same maximum urgency.
	minExpiryDays = 0.5
	maxUrgency    = 1 / minExpiryDays

	// maxDemandPressure is used for empty stock and caps very thin stock.
	maxDemandPressure = 1000.0

	// nutritionHalfPoint is the ratio at which the nutrition term reaches 0.5.
	nutritionHalfPoint = 50.0

	// minReleaseFraction is the share of stock recommended for items with
	// the lowest urgency.
	minReleaseFraction = 0.25
)

// NutritionalRatio returns calories / (sugars + 1).
func NutritionalRatio(calories, sugars float64) float64 {
	return calories / (sugars + 1)
}

// DaysUntil returns the whole days from now until expiration, rounded up.
// Past dates give zero or negative values.
func DaysUntil(expiration, now time.Time) int {
	return int(math.Ceil(float64(expiration.Sub(now)) / float64(24*time.Hour)))
}

func urgency(daysUntilExpiry int) float64 {
	return 1 / math.Max(float64(daysUntilExpiry), minExpiryDays)
}

func demandPressure(weeklyCustomers, quantity int) float64 {
	if quantity <= 0 {
		return maxDemandPressure
	}
	return math.Min(float64(weeklyCustomers)/float64(quantity), maxDemandPressure)
}

func priorityScore(it StockItem) float64 {
	u := urgency(it.DaysUntilExpiry) / maxUrgency
	p := demandPressure(it.WeeklyCustomers, it.Quantity)
	r := it.NutritionalRatio()

	return urgencyWeight*u +
		demandWeight*(p/(1+p)) +
		nutritionWeight*(r/(r+nutritionHalfPoint))
}

// recommendedQuantity releases between a quarter of the stock (long shelf
// life) and all of it (expired or expiring today).
func recommendedQuantity(it StockItem) float64 {
	u := urgency(it.DaysUntilExpiry) / maxUrgency
	fraction := minReleaseFraction + (1-minReleaseFraction)*u
	return round2(float64(it.Quantity) * fraction)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
