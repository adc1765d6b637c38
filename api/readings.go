package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ErwinJ1299/scout2-sub002/alerts"
	"github.com/ErwinJ1299/scout2-sub002/errors"
	"github.com/ErwinJ1299/scout2-sub002/pointer"
	"github.com/ErwinJ1299/scout2-sub002/readings"
	"github.com/labstack/echo/v4"
)

type CreateReadingResponse struct {
	Reading *readings.Reading `json:"reading"`
	Alert   *alerts.Alert     `json:"alert,omitempty"`
}

// CreateReading persists the reading and runs the anomaly classifier on it.
// A classifier failure is reported but does not undo the created reading.
func (h *Handler) CreateReading(c echo.Context) error {
	reading := readings.Reading{}
	if err := c.Bind(&reading); err != nil {
		return errors.BadRequest
	}
	reading.PatientId = pointer.FromAny(c.Param("patientId"))

	created, err := h.readings.Create(c.Request().Context(), reading)
	if err != nil {
		return err
	}

	alert, err := h.alerts.ProcessReading(c.Request().Context(), *created)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreateReadingResponse{
		Reading: created,
		Alert:   alert,
	})
}

func (h *Handler) ListReadings(c echo.Context) error {
	patientId := c.Param("patientId")

	var metric *readings.Metric
	if raw := c.QueryParam("metric"); raw != "" {
		metric = pointer.FromAny(readings.Metric(raw))
	}

	start, err := parseTimeParam(c.QueryParam("start"), time.Now().AddDate(0, 0, -30))
	if err != nil {
		return err
	}
	end, err := parseTimeParam(c.QueryParam("end"), time.Now())
	if err != nil {
		return err
	}

	list, err := h.readings.Query(c.Request().Context(), patientId, metric, start, end)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, list)
}

func parseTimeParam(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", errors.BadRequest, raw)
	}
	return t, nil
}
