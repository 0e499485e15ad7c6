package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if mf.GetName() != "marketplace_http_requests_total" {
			continue
		}
		found = true
		require.Len(t, mf.GetMetric(), 1)
		metric := mf.GetMetric()[0]
		assert.Equal(t, 1.0, metric.GetCounter().GetValue())

		labels := map[string]string{}
		for _, lp := range metric.GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		assert.Equal(t, "GET", labels["method"])
		assert.Equal(t, "/api/products", labels["path"])
		assert.Equal(t, "404", labels["status"])
	}
	assert.True(t, found, "marketplace_http_requests_total not gathered")
}

func TestMiddleware_DefaultsTo200(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)

	metric := families[0].GetMetric()[0]
	for _, lp := range metric.GetLabel() {
		if lp.GetName() == "status" {
			assert.Equal(t, "200", lp.GetValue())
		}
	}
}

func TestHandler_ServesScrape(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/login", nil))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "marketplace_http_requests_total")
}
