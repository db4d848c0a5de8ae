package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wichananm65/beauty-dashboard-backend/internal/config"
	"github.com/wichananm65/beauty-dashboard-backend/internal/interaction"
	"github.com/wichananm65/beauty-dashboard-backend/internal/metrics"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.Config{CORS: config.CORS{AllowOrigins: "*"}}
	repo := interaction.NewFileRepository(filepath.Join(t.TempDir(), "local_product_clicks.json"))
	return newApp(cfg, zap.NewNop(), repo, metrics.New("test"))
}

func TestNewApp_Routes(t *testing.T) {
	app := testApp(t)

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Method+" "+r.Path] = true
		}
	}
	for _, want := range []string{
		"GET /health",
		"GET /metrics",
		"GET /api/v1/brands",
		"GET /api/v1/skin-types",
		"GET /api/v1/products",
		"GET /api/v1/matches",
		"GET /api/v1/interactions",
		"POST /api/v1/interactions",
		"GET /api/v1/analytics",
		"GET /api/v1/analytics/export",
		"POST /api/v1/chat",
	} {
		assert.True(t, routes[want], want)
	}
}

func TestNewApp_SaveThenSummarize(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, interaction.BackendFile, health["backend"])

	for _, body := range []string{
		`{"brand":"The Ordinary","skinType":"Oily"}`,
		`{"brand":"The Ordinary","skinType":"Oily"}`,
		`{"brand":"Laneige","skinType":"Normal"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/interactions", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analytics", nil))
	require.NoError(t, err)
	var summary struct {
		Total   int `json:"total"`
		ByBrand []struct {
			Key   string `json:"key"`
			Count int    `json:"count"`
		} `json:"byBrand"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 3, summary.Total)
	require.NotEmpty(t, summary.ByBrand)
	assert.Equal(t, "The Ordinary", summary.ByBrand[0].Key)
	assert.Equal(t, 2, summary.ByBrand[0].Count)
}
