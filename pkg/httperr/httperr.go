// Package httperr maps the store's error taxonomy onto HTTP responses so
// every controller reports failures the same way.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"cropwatch/entities"
)

func Status(err error) int {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, entities.ErrProtected):
		return http.StatusForbidden
	case errors.Is(err, entities.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func JSON(c echo.Context, err error) error {
	return c.JSON(Status(err), map[string]string{"error": err.Error()})
}
