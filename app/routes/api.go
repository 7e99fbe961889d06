// Package routes declares the HTTP surface of vanij.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/vanij/app/controllers"
	"github.com/shashiranjanraj/vanij/pkg/metrics"
	"github.com/shashiranjanraj/vanij/pkg/response"
	"github.com/shashiranjanraj/vanij/pkg/router"
	"github.com/shashiranjanraj/vanij/pkg/ws"
)

// Register mounts every endpoint on r.
func Register(
	r *router.Router,
	products *controllers.ProductController,
	orders *controllers.OrderController,
	analytics *controllers.AnalyticsController,
	hub *ws.Hub,
) {
	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/ws/alerts", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, hub)
	})

	api := r.Group("/api/v1")

	api.Get("/products", "products.index", products.Index)
	api.Post("/products", "products.create", products.Create)
	api.Get("/products/low-stock", "products.lowStock", products.LowStock)
	api.Get("/products/{id}", "products.show", products.Show)
	api.Put("/products/{id}", "products.update", products.Update)
	api.Delete("/products/{id}", "products.delete", products.Delete)

	api.Get("/orders", "orders.index", orders.Index)
	api.Post("/orders", "orders.create", orders.Create)
	api.Get("/orders/{orderID}", "orders.show", orders.Show)
	api.Put("/orders/{orderID}/status", "orders.updateStatus", orders.UpdateStatus)

	api.Get("/analytics/weekly-sales", "analytics.weeklySales", analytics.WeeklySales)
	api.Get("/analytics/stats", "analytics.stats", analytics.Stats)
}
