package api

import (
	"errors"
	"net/http"

	httpErrors "github.com/ErwinJ1299/scout2-sub002/errors"
	"github.com/ErwinJ1299/scout2-sub002/rules"
	"github.com/labstack/echo/v4"
)

func (h *Handler) ListRules(c echo.Context) error {
	list, err := h.rules.List(c.Request().Context(), pagination(nil, nil).WithLimit(100))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) CreateRule(c echo.Context) error {
	rule := rules.Rule{}
	if err := c.Bind(&rule); err != nil {
		return httpErrors.BadRequest
	}

	created, err := h.rules.Create(c.Request().Context(), rule)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) DeactivateRule(c echo.Context) error {
	updated, err := h.rules.SetActive(c.Request().Context(), c.Param("ruleId"), false)
	if errors.Is(err, rules.ErrNotFound) {
		return httpErrors.NotFound
	} else if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
