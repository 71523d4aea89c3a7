package handler

import (
	"net/http"

	"github.com/vfg2006/ecommerce-dashboard/infrastructure/snapshot"
	"github.com/vfg2006/ecommerce-dashboard/internal/api/handler/router"
	"github.com/vfg2006/ecommerce-dashboard/internal/config"
	"github.com/vfg2006/ecommerce-dashboard/internal/observability"
	"github.com/vfg2006/ecommerce-dashboard/internal/usecases/charting"
)

func Healthcheck(metrics *observability.Metrics) []router.Route {
	return []router.Route{
		{
			Path:        "/healthcheck",
			Method:      http.MethodGet,
			Handler:     HealthcheckHandler(),
			Middlewares: instrument(metrics, "/healthcheck"),
		},
	}
}

func Metrics(metrics *observability.Metrics) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Dashboard(cfg *config.Config, service charting.Service, metrics *observability.Metrics) []router.Route {
	return []router.Route{
		{
			Path:        "/",
			Method:      http.MethodGet,
			Handler:     DashboardPage(cfg, service),
			Middlewares: instrument(metrics, "/"),
		},
	}
}

func Charts(cfg *config.Config, service charting.Service, renderer snapshot.Renderer, metrics *observability.Metrics) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/charts",
			Method:      http.MethodGet,
			Handler:     ListCharts(service),
			Middlewares: instrument(metrics, "/v1/charts"),
		},
		{
			Path:        "/v1/charts/:id",
			Method:      http.MethodGet,
			Handler:     GetChart(service, cfg.App.Debug),
			Middlewares: instrument(metrics, "/v1/charts/:id"),
		},
		{
			Path:        "/v1/charts/:id/snapshot.png",
			Method:      http.MethodGet,
			Handler:     GetChartSnapshot(service, renderer),
			Middlewares: instrument(metrics, "/v1/charts/:id/snapshot.png"),
		},
	}
}

func instrument(metrics *observability.Metrics, route string) []func(http.Handler) http.Handler {
	if metrics == nil {
		return nil
	}
	return []func(http.Handler) http.Handler{metrics.Instrument(route)}
}
