package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	NewHandler(NewService(Default())).RegisterPublicRoutes(app)
	return app
}

func TestGetMatches_Defaults(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/matches", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var res SearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, []string{"The Ordinary"}, res.Matches)
	assert.Empty(t, res.Suggestion)
	require.NotNil(t, res.Insights)
	assert.Equal(t, "The Ordinary", res.Insights.Top.Brand)
}

func TestGetMatches_NoMatchSuggestion(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matches?brands=The%20Ordinary&skinType=oily&priceMin=700&priceMax=6000", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var res SearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Empty(t, res.Matches)
	assert.Equal(t, NoMatchSuggestion, res.Suggestion)
}

func TestGetMatches_BadRequest(t *testing.T) {
	app := newTestApp()

	for _, target := range []string{
		"/api/v1/matches?skinType=scaly",
		"/api/v1/matches?priceMin=5000&priceMax=100",
		"/api/v1/matches?priceMax=abc",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestGetProducts(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	require.NoError(t, err)
	var all []Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	assert.Len(t, all, 13)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products?skinType=Normal&priceMax=1500", nil))
	require.NoError(t, err)
	var some []Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&some))
	require.Len(t, some, 2)
	assert.Equal(t, "Multi-Peptide Serum", some[0].Name)
	assert.Equal(t, "Lip Sleeping Mask", some[1].Name)
}

func TestGetBrands_Filtered(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/brands?brands=Briogeo,Clinique", nil))
	require.NoError(t, err)
	var profiles []Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profiles))
	require.Len(t, profiles, 2)
	assert.Equal(t, "Clinique", profiles[0].Brand)
	assert.Equal(t, 1417.1, profiles[1].Forecast)
}

func TestHandler_Routes(t *testing.T) {
	app := newTestApp()

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	for _, p := range []string{"/api/v1/brands", "/api/v1/skin-types", "/api/v1/products", "/api/v1/matches"} {
		assert.True(t, routes[p], p)
	}
}
