package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/RAJESH7500/reservation-app/internal/apperr"
	"github.com/RAJESH7500/reservation-app/internal/service"
)

// TableHandler exposes table management and the seat/finish commands
// over HTTP.
type TableHandler struct {
	Service *service.TableService
}

// NewTableHandler constructs a TableHandler. The service must be
// non-nil.
func NewTableHandler(svc *service.TableService) *TableHandler {
	if svc == nil {
		panic("nil service passed to NewTableHandler")
	}
	return &TableHandler{Service: svc}
}

// List handles GET /tables, ordered by table name.
func (h *TableHandler) List(c echo.Context) error {
	items, err := h.Service.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

// Create handles POST /tables.
func (h *TableHandler) Create(c echo.Context) error {
	payload, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}
	t, err := h.Service.Create(c.Request().Context(), payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": t})
}

// Get handles GET /tables/:table_id.
func (h *TableHandler) Get(c echo.Context) error {
	id, err := pathID(c, "table_id")
	if err != nil {
		return respondError(c, err)
	}
	t, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": t})
}

// Seat handles PUT /tables/:table_id/seat. The body must carry the
// reservation to seat in data.reservation_id.
func (h *TableHandler) Seat(c echo.Context) error {
	id, err := pathID(c, "table_id")
	if err != nil {
		return respondError(c, err)
	}
	payload, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}
	raw, ok := payload["reservation_id"]
	if !ok {
		return respondError(c, apperr.InvalidField("reservation_id is required"))
	}
	reservationID, ok := asID(raw)
	if !ok {
		return respondError(c, apperr.InvalidValue("reservation_id is not valid"))
	}
	table, _, err := h.Service.Seat(c.Request().Context(), id, reservationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": table})
}

// Finish handles DELETE /tables/:table_id/seat. It frees the table
// and finishes the linked reservation.
func (h *TableHandler) Finish(c echo.Context) error {
	id, err := pathID(c, "table_id")
	if err != nil {
		return respondError(c, err)
	}
	table, _, err := h.Service.Finish(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": table})
}

// asID converts the numeric shapes a decoded JSON body can carry into
// an entity id.
func asID(v any) (uint64, bool) {
	switch n := v.(type) {
	case float64:
		if n > 0 && n == float64(uint64(n)) {
			return uint64(n), true
		}
	case int:
		if n > 0 {
			return uint64(n), true
		}
	case uint64:
		if n > 0 {
			return n, true
		}
	}
	return 0, false
}
