package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"stockdesk/internal/infrastructure/metrics"
	"stockdesk/internal/order/controller"
	"stockdesk/internal/stock"
)

func NewRouter(orderCtrl *controller.OrderController, stockCtrl *stock.Controller, m *metrics.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/allocation/classify", orderCtrl.Classify)
		r.Post("/stock/search", stockCtrl.HandleSearchStock)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderCtrl.ListOrders)
			r.Post("/", orderCtrl.CreateOrder)

			r.Route("/{orderId}", func(r chi.Router) {
				r.Get("/", orderCtrl.GetOrder)
				r.Put("/lines", orderCtrl.ReplaceLines)
				r.Patch("/lines/{productCode}/allocation", orderCtrl.AllocateLine)
				r.Post("/availability/refresh", orderCtrl.RefreshAvailability)
			})
		})
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("request handled",
				zap.String("requestId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
