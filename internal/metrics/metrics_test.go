package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordContactSubmission(t *testing.T) {
	before := testutil.ToFloat64(contactSubmissionsTotal.WithLabelValues("test", OutcomeDelivered))
	RecordContactSubmission("test", OutcomeDelivered)
	RecordContactSubmission("test", OutcomeDelivered)
	assert.Equal(t, before+2, testutil.ToFloat64(contactSubmissionsTotal.WithLabelValues("test", OutcomeDelivered)))
}

func TestRecordStoreConnection(t *testing.T) {
	RecordStoreConnection("teststore", errors.New("refused"))
	assert.Equal(t, float64(1), testutil.ToFloat64(storeConnectionsTotal.WithLabelValues("teststore", "error")))
	assert.Equal(t, float64(0), testutil.ToFloat64(storeConnectionsTotal.WithLabelValues("teststore", "success")))
}

func TestPrometheusMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMiddleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/items/{id}", "418")))
}
