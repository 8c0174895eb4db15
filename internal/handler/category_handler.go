package handler

import (
	"net/http"

	"github.com/YanislavD/EventApp/internal/dto"
	"github.com/YanislavD/EventApp/internal/service"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	categories service.CategoryService
}

func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) RegisterRoutes(public, admin *echo.Group) {
	public.GET("", h.ListActive)

	admin.POST("", h.Create)
	admin.PUT("/:id/activate", h.Activate)
	admin.PUT("/:id/deactivate", h.Deactivate)
}

func (h *CategoryHandler) ListActive(c echo.Context) error {
	categories, err := h.categories.ListActive(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]dto.CategoryResponse, len(categories))
	for i := range categories {
		resp[i] = dto.ToCategoryResponse(&categories[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.categories.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

func (h *CategoryHandler) Activate(c echo.Context) error {
	return h.setActive(c, true)
}

func (h *CategoryHandler) Deactivate(c echo.Context) error {
	return h.setActive(c, false)
}

func (h *CategoryHandler) setActive(c echo.Context, active bool) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if active {
		err = h.categories.Activate(ctx, id)
	} else {
		err = h.categories.Deactivate(ctx, id)
	}
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
