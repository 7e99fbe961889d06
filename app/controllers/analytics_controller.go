package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vanij/app/services"
	"github.com/shashiranjanraj/vanij/pkg/response"
)

// AnalyticsController exposes the reporting endpoints.
type AnalyticsController struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsController(analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics}
}

func (c *AnalyticsController) WeeklySales(w http.ResponseWriter, r *http.Request) {
	summary, err := c.analytics.WeeklySales(r.Context())
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Success(w, summary)
}

func (c *AnalyticsController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.analytics.Stats(r.Context())
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Success(w, stats)
}
