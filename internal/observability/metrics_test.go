package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ecommerce-dashboard/internal/domain"
)

func TestMetrics_Instrument(t *testing.T) {
	m := NewMetrics()

	handler := m.Instrument("/v1/charts/:id")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/charts/x", nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/v1/charts/:id", http.MethodGet, "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestMetrics_ObserveDashboard(t *testing.T) {
	m := NewMetrics()

	m.ObserveDashboard(nil)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.datasetRows))

	m.ObserveDashboard(&domain.Dashboard{
		BuildID: "abc12345",
		Source:  "ecommerce_estatistica.csv",
		Rows:    71,
		Figures: make([]*domain.Figure, 6),
	})

	assert.Equal(t, 71.0, testutil.ToFloat64(m.datasetRows))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.figures))

	expected := `
# HELP dashboard_build_info ID da montagem atual do painel
# TYPE dashboard_build_info gauge
dashboard_build_info{build_id="abc12345",source="ecommerce_estatistica.csv"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "dashboard_build_info"))
}
