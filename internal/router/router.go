// Package router mounts the report API routes on an Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-simulator/internal/handler"
)

// RegisterRoutes registers the unauthenticated probe routes.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterReports mounts the read-only report API under /v1. The given
// middleware (rate limit, response cache) wraps the whole group.
func RegisterReports(e *echo.Echo, h *handler.ReportHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)

	g.GET("/venues", h.ListVenues)
	g.GET("/venues/:id/seats", h.VenueSeats)

	r := g.Group("/reports")
	r.GET("/attendance", h.Attendance)
	r.GET("/top-products", h.TopProducts)
	r.GET("/top-customers", h.TopCustomers)
	r.GET("/vip-average", h.VIPAverage)
}
