package handler

import (
	"net/http"

	"github.com/YanislavD/EventApp/internal/dto"
	"github.com/YanislavD/EventApp/internal/service"
	"github.com/labstack/echo/v4"
)

type TicketHandler struct {
	tickets service.TicketService
}

func NewTicketHandler(tickets service.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

func (h *TicketHandler) RegisterRoutes(authed *echo.Group) {
	authed.GET("/tickets/:code", h.GetByCode)
	authed.GET("/me/tickets", h.MyTickets)
}

func (h *TicketHandler) MyTickets(c echo.Context) error {
	user, err := actingUser(c)
	if err != nil {
		return err
	}

	tickets, err := h.tickets.ForUser(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	resp := make([]dto.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		resp = append(resp, dto.ToTicketResponse(&t))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByCode resolves a ticket by its code. Only the holder and admins
// may look one up.
func (h *TicketHandler) GetByCode(c echo.Context) error {
	user, err := actingUser(c)
	if err != nil {
		return err
	}
	code := c.Param("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket code is required")
	}

	ticket, err := h.tickets.AuthorizeView(c.Request().Context(), code, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToTicketResponse(ticket))
}
