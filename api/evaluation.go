package api

import (
	"fmt"
	"net/http"

	"github.com/ErwinJ1299/scout2-sub002/errors"
	"github.com/labstack/echo/v4"
)

type EvaluateRequest struct {
	UserId string `json:"userId"`
}

func (h *Handler) EvaluateOutcomes(c echo.Context) error {
	req := EvaluateRequest{}
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest
	}
	if req.UserId == "" {
		return fmt.Errorf("%w: userId is required", errors.BadRequest)
	}

	summary, err := h.outcomes.EvaluateAll(c.Request().Context(), req.UserId)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summary)
}
