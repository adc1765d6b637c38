package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ErwinJ1299/scout2-sub002/alerts"
	httpErrors "github.com/ErwinJ1299/scout2-sub002/errors"
	"github.com/ErwinJ1299/scout2-sub002/pointer"
	"github.com/labstack/echo/v4"
)

type TransitionRequest struct {
	Actor string  `json:"actor"`
	Notes *string `json:"notes,omitempty"`
}

func (h *Handler) ListAlerts(c echo.Context) error {
	patientId := c.Param("patientId")

	var status *alerts.Status
	if raw := c.QueryParam("status"); raw != "" {
		status = pointer.FromAny(alerts.Status(raw))
	}

	list, err := h.alerts.List(c.Request().Context(), patientId, status, pagination(nil, nil))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

func (h *Handler) AcknowledgeAlert(c echo.Context) error {
	return h.transitionAlert(c, alerts.StatusReviewed)
}

func (h *Handler) ResolveAlert(c echo.Context) error {
	return h.transitionAlert(c, alerts.StatusResolved)
}

func (h *Handler) transitionAlert(c echo.Context, newStatus alerts.Status) error {
	req := TransitionRequest{}
	if err := c.Bind(&req); err != nil {
		return httpErrors.BadRequest
	}
	if req.Actor == "" {
		return fmt.Errorf("%w: actor is required", httpErrors.BadRequest)
	}

	alert, err := h.alerts.Transition(c.Request().Context(), c.Param("alertId"), newStatus, req.Actor, req.Notes)
	if errors.Is(err, alerts.ErrNotFound) {
		return httpErrors.NotFound
	} else if errors.Is(err, alerts.ErrInvalidTransition) {
		return httpErrors.Conflict
	} else if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, alert)
}
