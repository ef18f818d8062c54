package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RAJESH7500/reservation-app/internal/service"
)

// ReservationHandler exposes the reservation lifecycle over HTTP.
// Request bodies follow the {"data": {...}} envelope and responses
// wrap their payload the same way, so fixtures written against the
// persisted field names work unchanged.
type ReservationHandler struct {
	Service *service.ReservationService
}

// NewReservationHandler constructs a ReservationHandler. The service
// must be non-nil.
func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Service: svc}
}

// List handles GET /reservations. A mobile_number query switches to
// phone search, a date query to the daily view; otherwise every
// reservation is returned ordered by time.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if mobile := c.QueryParam("mobile_number"); mobile != "" {
		items, err := h.Service.SearchByPhone(ctx, mobile)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": items})
	}
	if date := c.QueryParam("date"); date != "" {
		items, err := h.Service.ListByDate(ctx, date)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": items})
	}
	items, err := h.Service.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

// Create handles POST /reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
	payload, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.Service.Create(c.Request().Context(), payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": res})
}

// Get handles GET /reservations/:reservation_id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "reservation_id")
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": res})
}

// Update handles PUT /reservations/:reservation_id. The payload
// replaces the reservation's mutable fields.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := pathID(c, "reservation_id")
	if err != nil {
		return respondError(c, err)
	}
	payload, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.Service.Update(c.Request().Context(), id, payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": res})
}

// UpdateStatus handles PUT /reservations/:reservation_id/status. The
// body carries the target status in data.status.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "reservation_id")
	if err != nil {
		return respondError(c, err)
	}
	payload, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}
	status, _ := payload["status"].(string)
	res, err := h.Service.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": res})
}
