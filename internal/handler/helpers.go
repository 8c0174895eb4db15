package handler

import (
	"net/http"

	"github.com/YanislavD/EventApp/internal/middleware"
	"github.com/YanislavD/EventApp/internal/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// actingUser returns the authenticated user or a 401. Routes behind
// the auth middleware always have one; this guards direct handler use.
func actingUser(c echo.Context) (*models.User, error) {
	user := middleware.UserFromContext(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return user, nil
}

func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
