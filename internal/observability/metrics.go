package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/ecommerce-dashboard/internal/domain"
	"github.com/vfg2006/ecommerce-dashboard/pkg/middleware"
)

const namespace = "dashboard"

// Metrics agrupa os coletores da aplicação num registry próprio
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	datasetRows     prometheus.Gauge
	figures         prometheus.Gauge
	buildInfo       *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total de requisições HTTP por rota e status",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duração das requisições HTTP",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		datasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Linhas carregadas do CSV",
		}),
		figures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "figures",
			Help:      "Figuras presentes no painel",
		}),
		buildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "build_info",
				Help:      "ID da montagem atual do painel",
			},
			[]string{"build_id", "source"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.datasetRows,
		m.figures,
		m.buildInfo,
	)

	return m
}

// ObserveDashboard publica os dados da montagem do painel
func (m *Metrics) ObserveDashboard(d *domain.Dashboard) {
	if d == nil {
		return
	}
	m.datasetRows.Set(float64(d.Rows))
	m.figures.Set(float64(len(d.Figures)))
	m.buildInfo.Reset()
	m.buildInfo.WithLabelValues(d.BuildID, d.Source).Set(1)
}

// Instrument mede as requisições de uma rota. O rótulo usa o padrão da rota
// (ex.: /v1/charts/:id) para manter a cardinalidade baixa.
func (m *Metrics) Instrument(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := middleware.NewStatusWriter(w)
			start := time.Now()

			next.ServeHTTP(sw, r)

			m.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
			m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(sw.Status())).Inc()
		})
	}
}

// Handler expõe as métricas no formato do Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry é usado nos testes para inspecionar os coletores
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
