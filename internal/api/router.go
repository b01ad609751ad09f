// Package api assembles the HTTP routes and middleware chain.
package api

import (
	"net/http"

	_ "github.com/blaisecz/sleep-records/docs"
	"github.com/blaisecz/sleep-records/internal/api/handler"
	"github.com/blaisecz/sleep-records/internal/api/middleware"
	"github.com/blaisecz/sleep-records/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	recordHandler *handler.SleepRecordHandler
	adviceHandler *handler.AdviceHandler
	log           *logger.Logger
}

func NewRouter(recordHandler *handler.SleepRecordHandler, adviceHandler *handler.AdviceHandler, log *logger.Logger) *Router {
	return &Router{
		recordHandler: recordHandler,
		adviceHandler: adviceHandler,
		log:           log,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(rt.log))
	r.Use(middleware.Logging(rt.log))
	r.Use(middleware.Tracing)
	r.Use(middleware.Metrics)

	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.Health)

		r.Route("/sleep-records", func(r chi.Router) {
			r.Get("/", rt.recordHandler.List)
			r.Post("/", rt.recordHandler.Create)
			// Static segments are matched before {id}.
			r.Get("/sleep-statistics", rt.recordHandler.Statistics)
			r.Get("/badges", rt.recordHandler.Badges)

			r.Get("/{id}", rt.recordHandler.Get)
			r.Put("/{id}", rt.recordHandler.Update)
			r.Delete("/{id}", rt.recordHandler.Delete)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Get("/ai-advice", rt.adviceHandler.Get)
			r.Post("/ai-advice/feedback", rt.adviceHandler.Feedback)
		})
	})

	return r
}
