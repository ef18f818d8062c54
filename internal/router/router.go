package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/RAJESH7500/reservation-app/internal/handler" // import the handlers that implement the API surface
)

// RegisterRoutes registers the health check on the provided Echo
// instance.  This endpoint can be used by load balancers or monitoring
// systems to verify that the service is up and running.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the reservation and table routes.  Both the
// rate limiter and the response cache wrap the whole API group: the
// cache serves GETs and uses the write methods as its invalidation
// signal, so it has to see the writes too.
func RegisterAPI(e *echo.Echo, r *handler.ReservationHandler, t *handler.TableHandler, cache, limit echo.MiddlewareFunc) {
	api := e.Group("", limit, cache)

	// Reservation lifecycle.  GET /reservations serves three views:
	// the full list, the date-scoped dashboard (?date=) and the phone
	// search (?mobile_number=).
	api.GET("/reservations", r.List)
	api.POST("/reservations", r.Create)
	api.GET("/reservations/:reservation_id", r.Get)
	api.PUT("/reservations/:reservation_id", r.Update)
	api.PUT("/reservations/:reservation_id/status", r.UpdateStatus)

	// Tables and the seat/finish assignment commands.
	api.GET("/tables", t.List)
	api.POST("/tables", t.Create)
	api.GET("/tables/:table_id", t.Get)
	api.PUT("/tables/:table_id/seat", t.Seat)
	api.DELETE("/tables/:table_id/seat", t.Finish)
}
