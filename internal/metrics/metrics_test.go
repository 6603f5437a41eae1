package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordImport(t *testing.T) {
	before := testutil.ToFloat64(ImportRowsTotal.WithLabelValues("traffic"))
	RecordImport("traffic", 3)
	RecordImport("traffic", 0)
	RecordImport("traffic", -2)
	assert.Equal(t, before+3, testutil.ToFloat64(ImportRowsTotal.WithLabelValues("traffic")))
}

func TestObserveAggregation(t *testing.T) {
	ObserveAggregation("test_op", time.Now().Add(-10*time.Millisecond))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(AggregationDuration), 1)
}

func TestMiddlewareCountsByRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/items/:id", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/boom", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "down")
	})

	okBefore := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/items/:id", "200"))
	errBefore := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/boom", "503"))

	for _, path := range []string{"/items/1", "/items/2", "/boom"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	assert.Equal(t, okBefore+2, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/items/:id", "200")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/boom", "503")))
}
