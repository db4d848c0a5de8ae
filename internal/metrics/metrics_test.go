package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New("test")

	m.IncSaved("file", "ok")
	m.IncSaved("file", "ok")
	m.IncSaved("postgres", "error")
	m.IncChat("forecast")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.interactionsSaved.WithLabelValues("file", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.interactionsSaved.WithLabelValues("postgres", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.chatQueries.WithLabelValues("forecast")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New("test")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	app.Get("/ping/:id", func(c *fiber.Ctx) error { return c.SendString("pong") })

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping/1", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/ping/2", nil))
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/ping/:id", "200")))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "test_http_requests_total"))
}
