package distribution

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	items []StockItem
	err   error
	owner string
}

func (f *fakeReader) Snapshot(_ context.Context, ownerID string, _ time.Time) ([]StockItem, error) {
	f.owner = ownerID
	return f.items, f.err
}

type fakeUploader struct {
	key         string
	body        string
	contentType string
}

func (f *fakeUploader) Upload(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.key, f.body, f.contentType = key, string(raw), contentType
	return "https://files.example.org/" + key, nil
}

type predictResponse struct {
	Success          bool        `json:"success"`
	DistributionPlan []PlanEntry `json:"distribution_plan"`
	Error            string      `json:"error"`
	URL              string      `json:"url"`
}

func setupPlanRouter(reader SnapshotReader, uploader Uploader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handler := NewHandler(NewService(reader, uploader, nil))

	withUser := func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("userID", id)
		}
		c.Next()
	}

	r.POST("/api/predict", withUser, handler.Predict)
	r.POST("/api/predict/export", withUser, handler.Export)
	return r
}

func doPlanRequest(t *testing.T, r *gin.Engine, path, user string) (*httptest.ResponseRecorder, predictResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp predictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestPredict_ReturnsRankedPlan(t *testing.T) {
	reader := &fakeReader{items: []StockItem{
		item("Soda", 10, 30, 150, 40, 20),
		item("Rice", 50, 1, 200, 0, 100),
	}}
	r := setupPlanRouter(reader, nil)

	w, resp := doPlanRequest(t, r, "/api/predict", "user-1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "user-1", reader.owner)
	require.Len(t, resp.DistributionPlan, 2)
	assert.Equal(t, "Rice", resp.DistributionPlan[0].FoodItem)
	assert.Equal(t, 1, resp.DistributionPlan[0].Rank)
}

func TestPredict_EmptyInventory(t *testing.T) {
	r := setupPlanRouter(&fakeReader{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/predict", nil)
	req.Header.Set("X-Test-User", "user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "distribution_plan": []}`, w.Body.String())
}

func TestPredict_TopLimitsPlan(t *testing.T) {
	reader := &fakeReader{items: []StockItem{
		item("A", 10, 3, 100, 1, 100),
		item("B", 10, 4, 100, 1, 100),
		item("C", 10, 5, 100, 1, 100),
	}}
	r := setupPlanRouter(reader, nil)

	_, resp := doPlanRequest(t, r, "/api/predict?top=2", "user-1")
	require.Len(t, resp.DistributionPlan, 2)
	assert.Equal(t, "A", resp.DistributionPlan[0].FoodItem)

	w, _ := doPlanRequest(t, r, "/api/predict?top=-1", "user-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredict_Errors(t *testing.T) {
	t.Run("no user", func(t *testing.T) {
		w, resp := doPlanRequest(t, setupPlanRouter(&fakeReader{}, nil), "/api/predict", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, resp.Success)
	})

	t.Run("invalid item", func(t *testing.T) {
		reader := &fakeReader{items: []StockItem{item("Beans", -1, 3, 100, 1, 100)}}
		w, resp := doPlanRequest(t, setupPlanRouter(reader, nil), "/api/predict", "user-1")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "Beans")
	})

	t.Run("store failure", func(t *testing.T) {
		reader := &fakeReader{err: errors.New("connection refused")}
		w, resp := doPlanRequest(t, setupPlanRouter(reader, nil), "/api/predict", "user-1")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, resp.Error, "connection refused")
	})
}

func TestExport(t *testing.T) {
	t.Run("disabled without storage", func(t *testing.T) {
		w, resp := doPlanRequest(t, setupPlanRouter(&fakeReader{}, nil), "/api/predict/export", "user-1")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.False(t, resp.Success)
	})

	t.Run("uploads csv", func(t *testing.T) {
		reader := &fakeReader{items: []StockItem{item("Rice", 50, 1, 200, 0, 100)}}
		uploader := &fakeUploader{}

		w, resp := doPlanRequest(t, setupPlanRouter(reader, uploader), "/api/predict/export", "user-7")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
		assert.Equal(t, "https://files.example.org/"+uploader.key, resp.URL)
		assert.Regexp(t, `^plans/user-7/\d{8}T\d{6}Z-[0-9a-f-]{36}\.csv$`, uploader.key)
		assert.Equal(t, "text/csv", uploader.contentType)
		assert.Contains(t, uploader.body, "1,Rice,Grain,1,50,31.25,")
	})
}
