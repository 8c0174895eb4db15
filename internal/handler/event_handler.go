package handler

import (
	"net/http"
	"time"

	"github.com/YanislavD/EventApp/internal/dto"
	"github.com/YanislavD/EventApp/internal/middleware"
	"github.com/YanislavD/EventApp/internal/models"
	"github.com/YanislavD/EventApp/internal/repository"
	"github.com/YanislavD/EventApp/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	events  service.EventService
	subs    service.SubscriptionService
	tickets service.TicketService
	ratings service.RatingService
}

func NewEventHandler(
	events service.EventService,
	subs service.SubscriptionService,
	tickets service.TicketService,
	ratings service.RatingService,
) *EventHandler {
	return &EventHandler{events: events, subs: subs, tickets: tickets, ratings: ratings}
}

func (h *EventHandler) RegisterRoutes(public, authed *echo.Group) {
	public.GET("", h.ListUpcoming)
	public.GET("/past", h.ListPast)
	public.GET("/:id", h.GetEvent)

	authed.POST("", h.CreateEvent)
	authed.PUT("/:id", h.UpdateEvent)
	authed.DELETE("/:id", h.DeleteEvent)
}

// sortFromQuery reads ?sort=start_time|category and ?dir=asc|desc.
func sortFromQuery(c echo.Context) repository.EventSort {
	sort := repository.EventSort{Field: repository.SortByStartTime}
	if c.QueryParam("sort") == "category" {
		sort.Field = repository.SortByCategoryName
	}
	sort.Desc = c.QueryParam("dir") == "desc"
	return sort
}

func (h *EventHandler) ListUpcoming(c echo.Context) error {
	events, err := h.events.ListUpcoming(c.Request().Context(), time.Now(), sortFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toResponses(c, events))
}

// ListPast defaults to most recent first.
func (h *EventHandler) ListPast(c echo.Context) error {
	sort := sortFromQuery(c)
	if c.QueryParam("dir") == "" {
		sort.Desc = true
	}
	events, err := h.events.ListPast(c.Request().Context(), time.Now(), sort)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toResponses(c, events))
}

// GetEvent returns the event with attendance counters, the rating
// summary, and, when the caller is authenticated, their own
// subscription state and ticket code.
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	event, err := h.events.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := h.subs.CountForEvent(ctx, event.ID)
	if err != nil {
		return err
	}
	resp := dto.ToEventResponse(event).WithAttendance(count)
	resp.Rating = h.ratings.SummaryForEvent(ctx, event.ID)

	if viewer := middleware.UserFromContext(c); viewer != nil {
		subscribed, err := h.subs.Exists(ctx, viewer.ID, event.ID)
		if err != nil {
			return err
		}
		resp.Subscribed = &subscribed
		if subscribed {
			if tickets, err := h.tickets.ForUser(ctx, viewer.ID); err == nil {
				if t, ok := tickets[event.ID]; ok {
					resp.TicketCode = t.Code
				}
			}
		}
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	user, err := actingUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.events.Create(c.Request().Context(), eventInput(req), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	user, err := actingUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.events.Update(c.Request().Context(), id, eventInput(req), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	user, err := actingUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.events.Delete(c.Request().Context(), id, user); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Listings stay lean: attendance counters and rating summaries are
// detail-view concerns.
func (h *EventHandler) toResponses(c echo.Context, events []models.Event) []dto.EventResponse {
	resp := make([]dto.EventResponse, len(events))
	for i := range events {
		resp[i] = dto.ToEventResponse(&events[i])
	}
	return resp
}

func eventInput(req dto.CreateEventRequest) service.EventInput {
	return service.EventInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageName:   req.ImageName,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Capacity:    req.Capacity,
		CategoryID:  req.CategoryID,
	}
}
