package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultBaseURL = "https://trackapi.nutritionix.com/v2"
	maxSuggestions = 5
)

// Client talks to the Nutritionix v2 API.
type Client struct {
	appID   string
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(appID, apiKey, baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		appID:   appID,
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// --------------------------------------------------
// GET /search/instant (food name suggestions)
// --------------------------------------------------
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return []string{}, nil
	}

	endpoint := c.baseURL + "/search/instant?" + url.Values{"query": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Common []struct {
			FoodName string `json:"food_name"`
		} `json:"common"`
	}
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	names := make([]string, 0, maxSuggestions)
	for _, food := range result.Common {
		if len(names) == maxSuggestions {
			break
		}
		names = append(names, food.FoodName)
	}
	return names, nil
}

// --------------------------------------------------
// POST /natural/nutrients (facts for one food)
// --------------------------------------------------
func (c *Client) Lookup(ctx context.Context, food string) (*Facts, error) {
	if food == "" {
		return nil, ErrNotFound
	}

	body, err := json.Marshal(map[string]string{"query": food})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/natural/nutrients",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result struct {
		Foods []struct {
			FoodName      string   `json:"food_name"`
			Calories      *float64 `json:"nf_calories"`
			TotalFat      *float64 `json:"nf_total_fat"`
			Protein       *float64 `json:"nf_protein"`
			Carbohydrates *float64 `json:"nf_total_carbohydrate"`
			Sugars        *float64 `json:"nf_sugars"`
			Sodium        *float64 `json:"nf_sodium"`
		} `json:"foods"`
	}
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	if len(result.Foods) == 0 {
		return nil, ErrNotFound
	}
	f := result.Foods[0]

	// calories drive the nutrition score, so a food without them is unusable
	if f.Calories == nil {
		return nil, fmt.Errorf("%w: %q has no calorie data", ErrNotFound, food)
	}

	facts := &Facts{
		Calories:      *f.Calories,
		TotalFat:      valueOrZero(f.TotalFat),
		Protein:       valueOrZero(f.Protein),
		Carbohydrates: valueOrZero(f.Carbohydrates),
		Sugars:        valueOrZero(f.Sugars),
		Sodium:        valueOrZero(f.Sodium),
	}
	if f.Sugars == nil {
		c.logger.Warn("nutritionix returned no sugar value, using 0", "food", food)
	}

	return facts, nil
}

func (c *Client) do(req *http.Request, out any) error {
	if c.appID == "" || c.apiKey == "" {
		return ErrNotConfigured
	}
	req.Header.Set("x-app-id", c.appID)
	req.Header.Set("x-app-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("nutritionix request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// natural/nutrients answers 404 when it cannot match the phrase
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nutritionix api error: status %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode nutritionix response: %w", err)
	}
	return nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
