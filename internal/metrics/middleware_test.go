package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	Register()

	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/v1/summary", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPost, "/v1/summary", "422"))

	req := httptest.NewRequest(http.MethodPost, "/v1/summary", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPost, "/v1/summary", "422"))
	if after-before != 1 {
		t.Errorf("Expected counter to grow by 1, got %v", after-before)
	}
}

func TestMiddleware_DefaultStatus(t *testing.T) {
	Register()

	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/health", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/health", "200"))

	if after-before != 1 {
		t.Errorf("Expected counter to grow by 1, got %v", after-before)
	}
}

func TestRegister_Idempotent(t *testing.T) {
	Register()
	Register()
}
