package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/RAJESH7500/reservation-app/internal/apperr"
)

// dataEnvelope mirrors the request body shape used across the API:
// every command arrives wrapped in a "data" object.
type dataEnvelope struct {
	Data map[string]any `json:"data"`
}

// bindData decodes the request body and unwraps the data object. A
// missing or empty body is reported the same way as an empty data
// object.
func bindData(c echo.Context) (map[string]any, error) {
	var body dataEnvelope
	if err := c.Bind(&body); err != nil {
		return nil, apperr.MissingData("data is missing")
	}
	if len(body.Data) == 0 {
		return nil, apperr.MissingData("data is missing")
	}
	return body.Data, nil
}

// respondError renders a structured core error with its suggested
// status code; anything else becomes a generic 500.
func respondError(c echo.Context, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return c.JSON(appErr.HTTPStatus(), echo.Map{"error": appErr.Message})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.InvalidValue("invalid %s", name)
	}
	return id, nil
}
