package inventory

import (
	"time"

	"foodbank/internal/distribution"
	"foodbank/internal/nutrition"
)

// Item is one stock line owned by a user.
// WeeklyCustomers stays nil until the owner sets it; the planner then
// falls back to distribution.DefaultWeeklyCustomers.
type Item struct {
	ID              string                `json:"id"`
	OwnerID         string                `json:"owner_id"`
	Type            string                `json:"type"`
	Category        distribution.Category `json:"category"`
	Quantity        int                   `json:"quantity"`
	ExpirationDate  time.Time             `json:"expiration_date"`
	Nutrition       nutrition.Facts       `json:"nutritional_value"`
	WeeklyCustomers *int                  `json:"weekly_customers"`
	CreatedAt       time.Time             `json:"created_at"`
}

// AddInput is what a user submits for a new item.
type AddInput struct {
	Type           string `json:"type"`
	Category       string `json:"category"`
	Quantity       int    `json:"quantity"`
	ExpirationDate string `json:"expiration_date"`
}
