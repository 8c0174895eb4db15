package handler

import (
	"net/http"

	"github.com/YanislavD/EventApp/internal/dto"
	"github.com/YanislavD/EventApp/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	bookings service.BookingService
	subs     service.SubscriptionService
	tickets  service.TicketService
}

func NewBookingHandler(
	bookings service.BookingService,
	subs service.SubscriptionService,
	tickets service.TicketService,
) *BookingHandler {
	return &BookingHandler{bookings: bookings, subs: subs, tickets: tickets}
}

func (h *BookingHandler) RegisterRoutes(authed *echo.Group) {
	authed.POST("/events/:id/subscription", h.Subscribe)
	authed.DELETE("/events/:id/subscription", h.Unsubscribe)
	authed.GET("/me/subscriptions", h.MySubscriptions)
}

// Subscribe is idempotent at the HTTP level: a repeat call reports
// joined=false with 200 instead of failing.
func (h *BookingHandler) Subscribe(c echo.Context) error {
	user, err := actingUser(c)
	if err != nil {
		return err
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	joined, err := h.bookings.Subscribe(c.Request().Context(), eventID, user)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if joined {
		status = http.StatusCreated
	}
	return c.JSON(status, map[string]bool{"joined": joined})
}

func (h *BookingHandler) Unsubscribe(c echo.Context) error {
	user, err := actingUser(c)
	if err != nil {
		return err
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	removed, err := h.bookings.Unsubscribe(c.Request().Context(), eventID, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"removed": removed})
}

// MySubscriptions lists the caller's subscribed events with their
// ticket codes.
func (h *BookingHandler) MySubscriptions(c echo.Context) error {
	user, err := actingUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	subs, err := h.subs.ListForUser(ctx, user.ID)
	if err != nil {
		return err
	}
	tickets, err := h.tickets.ForUser(ctx, user.ID)
	if err != nil {
		return err
	}

	resp := make([]dto.EventResponse, 0, len(subs))
	for i := range subs {
		if subs[i].Event == nil {
			continue
		}
		event := dto.ToEventResponse(subs[i].Event)
		if t, ok := tickets[subs[i].EventID]; ok {
			event.TicketCode = t.Code
		}
		resp = append(resp, event)
	}
	return c.JSON(http.StatusOK, resp)
}
