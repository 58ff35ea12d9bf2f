package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *ServerMetrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	return rec.Body.String()
}

func TestServerMetrics(t *testing.T) {
	m := NewServerMetrics(prometheus.NewRegistry())

	m.OrderSubmitted(7400)
	m.OrderSubmitted(5000)
	m.OrderRejected("shop_closed")
	m.AvailabilityEvaluated(true, true)
	m.ObserveRequest("/api/v1/products", http.StatusOK, 12*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, "pizzeria_orders_submitted_total 2")
	assert.Contains(t, body, "pizzeria_orders_revenue_cents_total 12400")
	assert.Contains(t, body, `pizzeria_orders_rejected_total{reason="shop_closed"} 1`)
	assert.Contains(t, body, `pizzeria_availability_checks_total{fallback="true",open="true"} 1`)
	assert.Contains(t, body, `pizzeria_http_requests_total{route="/api/v1/products",status="200"} 1`)
}

func TestServerMetrics_SeparateRegistries(t *testing.T) {
	// Повторная регистрация в новом реестре не паникует
	a := NewServerMetrics(prometheus.NewRegistry())
	b := NewServerMetrics(prometheus.NewRegistry())

	a.OrderRejected("validation")

	assert.Contains(t, scrape(t, a), `reason="validation"`)
	assert.NotContains(t, scrape(t, b), `reason="validation"`)
}
