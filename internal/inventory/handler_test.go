package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInventoryRouter(repo *InMemoryRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handler := NewHandler(NewService(repo, pantry, nil))

	withUser := func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("userID", id)
		}
		c.Next()
	}

	api := r.Group("/api/inventory", withUser)
	api.GET("", handler.List)
	api.POST("/add", handler.Add)
	api.DELETE("/delete/:id", handler.Delete)
	api.POST("/update-customers", handler.UpdateCustomers)
	return r
}

func doJSON(r *gin.Engine, method, path, user string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_AddAndList(t *testing.T) {
	repo := NewInMemoryRepository()
	r := setupInventoryRouter(repo)

	w := doJSON(r, http.MethodPost, "/api/inventory/add", "user-1", map[string]any{
		"type":            "Rice",
		"category":        "Grain",
		"quantity":        50,
		"expiration_date": "2026-10-16",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var added struct {
		Success bool `json:"success"`
		NewItem struct {
			ID               string `json:"id"`
			Type             string `json:"type"`
			NutritionalValue struct {
				Calories float64 `json:"calories"`
			} `json:"nutritional_value"`
		} `json:"newItem"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &added))
	assert.True(t, added.Success)
	assert.Equal(t, "Rice", added.NewItem.Type)
	assert.Equal(t, 200.0, added.NewItem.NutritionalValue.Calories)

	w = doJSON(r, http.MethodGet, "/api/inventory", "user-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, added.NewItem.ID, listed[0]["id"])

	w = doJSON(r, http.MethodGet, "/api/inventory", "user-2", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandler_AddErrors(t *testing.T) {
	r := setupInventoryRouter(NewInMemoryRepository())

	tests := []struct {
		name     string
		user     string
		body     map[string]any
		wantCode int
	}{
		{"no user", "", map[string]any{"type": "Rice"}, http.StatusUnauthorized},
		{"bad category", "user-1", map[string]any{"type": "Rice", "category": "Frozen", "quantity": 1, "expiration_date": "2026-11-01"}, http.StatusBadRequest},
		{"no nutrition data", "user-1", map[string]any{"type": "Gravel", "category": "Grain", "quantity": 1, "expiration_date": "2026-11-01"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/inventory/add", tt.user, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	repo := NewInMemoryRepository()
	r := setupInventoryRouter(repo)

	item := &Item{OwnerID: "user-1", Type: "Rice"}
	require.NoError(t, repo.Create(context.Background(), item))

	w := doJSON(r, http.MethodDelete, "/api/inventory/delete/"+item.ID, "user-2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/inventory/delete/"+item.ID, "user-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())

	w = doJSON(r, http.MethodDelete, "/api/inventory/delete/"+item.ID, "user-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_UpdateCustomers(t *testing.T) {
	repo := NewInMemoryRepository()
	r := setupInventoryRouter(repo)

	require.NoError(t, repo.Create(context.Background(), &Item{OwnerID: "user-1", Type: "Rice"}))

	w := doJSON(r, http.MethodPost, "/api/inventory/update-customers", "user-1", map[string]int{"weekly_customers": 180})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "updated": 1}`, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/inventory/update-customers", "user-1", map[string]int{"weekly_customers": -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
