package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) GetUserStats(c echo.Context) error {
	stats, err := h.users.Get(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListUserRewards(c echo.Context) error {
	list, err := h.rewards.List(c.Request().Context(), c.Param("userId"), pagination(nil, nil).WithLimit(50))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
