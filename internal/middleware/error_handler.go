package middleware

import (
	"errors"
	"net/http"

	"github.com/YanislavD/EventApp/internal/domain"
	"github.com/labstack/echo/v4"
)

// ErrorHandler maps domain errors to HTTP statuses in one place so
// handlers can return service errors unwrapped.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, map[string]any{"error": he.Message})
		return
	}

	var validation *domain.ValidationError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &validation):
		_ = c.JSON(http.StatusBadRequest, map[string]any{
			"error": validation.Message,
			"field": validation.Field,
		})
	case errors.As(err, &conflict):
		_ = c.JSON(http.StatusConflict, map[string]any{
			"error": conflict.Message,
			"code":  conflict.Code,
		})
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrTicketNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		_ = c.JSON(http.StatusNotFound, map[string]any{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		_ = c.JSON(http.StatusForbidden, map[string]any{"error": "you are not allowed to perform this action"})
	case errors.Is(err, domain.ErrUnavailable):
		c.Logger().Error(err)
		_ = c.JSON(http.StatusServiceUnavailable, map[string]any{"error": "service temporarily unavailable"})
	default:
		c.Logger().Error(err)
		_ = c.JSON(http.StatusInternalServerError, map[string]any{"error": "internal server error"})
	}
}
