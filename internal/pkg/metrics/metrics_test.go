package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shipment/internal/core/domain/model/ledger"
	"shipment/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordTransaction(t *testing.T) {
	m := metrics.New()

	m.RecordTransaction(ledger.MethodCreate, "confirmed", 10*time.Millisecond)
	m.RecordTransaction(ledger.MethodCreate, "rejected", time.Millisecond)
	m.RecordTransaction(ledger.MethodDeliver, "confirmed", time.Millisecond)
	m.SetBlockHeight(3)

	count, err := testutil.GatherAndCount(m.Registry(), "shipment_ledger_transactions_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = testutil.GatherAndCount(m.Registry(), "shipment_ledger_block_height")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_Middleware(t *testing.T) {
	m := metrics.New()
	e := echo.New()
	e.Use(m.Middleware("/health"))
	e.GET("/delivery/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, path := range []string{"/delivery/a", "/delivery/b", "/health"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	count, err := testutil.GatherAndCount(m.Registry(), "shipment_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "both order paths share one route label and /health is skipped")
}
