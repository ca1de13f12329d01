package distribution

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name string
		exp  time.Time
		want int
	}{
		{"later today rounds up", fixedNow.Add(3 * time.Hour), 1},
		{"exactly now", fixedNow, 0},
		{"four and a half days", time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), 5},
		{"expired yesterday", fixedNow.Add(-24 * time.Hour), -1},
		{"expired partial day", fixedNow.Add(-30 * time.Hour), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.exp, fixedNow))
		})
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("canned goods")
	require.NoError(t, err)
	assert.Equal(t, CategoryCannedGoods, c)

	c, err = ParseCategory(" protein ")
	require.NoError(t, err)
	assert.Equal(t, CategoryProtein, c)

	_, err = ParseCategory("Frozen")
	assert.Error(t, err)
}

func TestDecodeItems(t *testing.T) {
	input := `[
		{"food_item": "Rice", "food_type": "Grain", "current_quantity": 50,
		 "days_until_expiry": 1, "calories": 200, "sugars": 0, "weekly_customers": 100},
		{"food_item": "Milk", "food_type": "Dairy", "current_quantity": 12,
		 "expiration_date": "2026-10-20", "calories": 103, "sugars": 12}
	]`

	items, err := DecodeItems(strings.NewReader(input), fixedNow)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Rice", items[0].Name)
	assert.Equal(t, 1, items[0].DaysUntilExpiry)

	assert.Equal(t, CategoryDairy, items[1].Category)
	assert.Equal(t, 5, items[1].DaysUntilExpiry)
	assert.Equal(t, DefaultWeeklyCustomers, items[1].WeeklyCustomers)
	assert.InDelta(t, 103.0/13.0, items[1].NutritionalRatio(), 1e-9)
}

func TestDecodeItems_MissingFieldsAreReported(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		field string
	}{
		{
			"missing quantity",
			`[{"food_item":"Beans","food_type":"Protein","days_until_expiry":3,"calories":120,"sugars":1}]`,
			"current_quantity",
		},
		{
			"missing calories",
			`[{"food_item":"Beans","food_type":"Protein","current_quantity":3,"days_until_expiry":3,"sugars":1}]`,
			"calories",
		},
		{
			"missing sugars",
			`[{"food_item":"Beans","food_type":"Protein","current_quantity":3,"days_until_expiry":3,"calories":120}]`,
			"sugars",
		},
		{
			"missing expiry",
			`[{"food_item":"Beans","food_type":"Protein","current_quantity":3,"calories":120,"sugars":1}]`,
			"expiration_date",
		},
		{
			"bad date",
			`[{"food_item":"Beans","food_type":"Protein","current_quantity":3,"expiration_date":"soon","calories":120,"sugars":1}]`,
			"expiration_date",
		},
		{
			"negative quantity",
			`[{"food_item":"Beans","food_type":"Protein","current_quantity":-3,"days_until_expiry":3,"calories":120,"sugars":1}]`,
			"quantity",
		},
		{
			"non-numeric calories",
			`[{"food_item":"Beans","food_type":"Protein","current_quantity":3,"days_until_expiry":3,"calories":"lots","sugars":1}]`,
			"calories",
		},
		{
			"non-numeric sugars",
			`[{"food_item":"Beans","food_type":"Protein","current_quantity":3,"days_until_expiry":3,"calories":120,"sugars":true}]`,
			"sugars",
		},
		{
			"fractional quantity",
			`[{"food_item":"Beans","food_type":"Protein","current_quantity":2.5,"days_until_expiry":3,"calories":120,"sugars":1}]`,
			"current_quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeItems(strings.NewReader(tt.json), fixedNow)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "Beans", verr.Name)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDecodeItems_WrongTypeNamesTheItem(t *testing.T) {
	input := `[
		{"food_item":"Rice","food_type":"Grain","current_quantity":50,"days_until_expiry":1,"calories":200,"sugars":0},
		{"food_item":"Beans","food_type":"Protein","current_quantity":3,"days_until_expiry":3,"calories":"lots","sugars":1}
	]`

	_, err := DecodeItems(strings.NewReader(input), fixedNow)
	require.ErrorIs(t, err, ErrInvalidItem)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Index)
	assert.Equal(t, "Beans", verr.Name)
	assert.Equal(t, "calories", verr.Field)
	assert.Equal(t, "is not a number", verr.Reason)
}

func TestDecodeItems_MalformedJSON(t *testing.T) {
	_, err := DecodeItems(strings.NewReader(`{"not": "an array"}`), fixedNow)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidItem)
}

func TestWriteCSV(t *testing.T) {
	plan, err := ComputePlan([]StockItem{
		item("Rice", 50, 1, 200, 0, 100),
		item("Soda, diet", 10, 30, 0, 0, 20),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, plan))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "rank,food_item,food_type,days_until_expiry,current_quantity,recommended_quantity,priority_score", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,Rice,Grain,1,50,31.25,"))
	assert.True(t, strings.HasPrefix(lines[2], `2,"Soda, diet",Grain,30,10,`))
}
