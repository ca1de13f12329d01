package nutrition

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("no nutrition data for food")
	ErrNotConfigured = errors.New("nutritionix credentials are not set")
)

// Facts are per-serving values for one food.
type Facts struct {
	Calories      float64 `json:"calories"`
	TotalFat      float64 `json:"total_fat"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Sugars        float64 `json:"sugars"`
	Sodium        float64 `json:"sodium"`
}

type Lookuper interface {
	Lookup(ctx context.Context, food string) (*Facts, error)
}

type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}
