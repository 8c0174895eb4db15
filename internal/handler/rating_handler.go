package handler

import (
	"net/http"

	"github.com/YanislavD/EventApp/internal/dto"
	"github.com/YanislavD/EventApp/internal/service"
	"github.com/labstack/echo/v4"
)

type RatingHandler struct {
	ratings service.RatingService
}

func NewRatingHandler(ratings service.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

func (h *RatingHandler) RegisterRoutes(public, authed *echo.Group) {
	public.GET("/events/:id/ratings", h.Summary)
	authed.POST("/events/:id/ratings", h.Create)
}

// Create submits a rating for a past event the caller attended.
func (h *RatingHandler) Create(c echo.Context) error {
	user, err := actingUser(c)
	if err != nil {
		return err
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CreateRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.ratings.Create(c.Request().Context(), eventID, user.ID, req.Score)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *RatingHandler) Summary(c echo.Context) error {
	eventID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.ratings.SummaryForEvent(c.Request().Context(), eventID))
}
