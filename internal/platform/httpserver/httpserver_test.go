package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticHealth bool

func (h staticHealth) Healthy() bool { return bool(h) }

func TestRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "tradelog_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	t.Run("healthz ok when connected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Routes(staticHealth(true), reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("healthz unavailable when disconnected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Routes(staticHealth(false), reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"disconnected"}`, rec.Body.String())
	})

	t.Run("metrics exposes registry", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Routes(staticHealth(true), reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "tradelog_test_total 1")
	})
}

func TestNew(t *testing.T) {
	srv := New(":0", http.NewServeMux())
	assert.Equal(t, ":0", srv.Addr)
	assert.NotZero(t, srv.ReadHeaderTimeout)
}
