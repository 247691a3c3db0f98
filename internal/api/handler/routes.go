package handler

import (
	"net/http"

	"github.com/vfg2006/gads-play-optimizer/internal/api/handler/router"
	"github.com/vfg2006/gads-play-optimizer/pkg/metrics"
	"github.com/vfg2006/gads-play-optimizer/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Sync(service SyncService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync/run",
			Method:      http.MethodPost,
			Handler:     RunSync(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/sync/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Recommendations(store RecommendationReader) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/recommendations",
			Method:      http.MethodGet,
			Handler:     ListRecommendationDates(store),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/recommendations/:date",
			Method:      http.MethodGet,
			Handler:     GetRecommendations(store),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
