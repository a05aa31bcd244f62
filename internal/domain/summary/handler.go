package summary

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carelog/carelog/internal/domain/patients"
	"github.com/carelog/carelog/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/summary/:patientID", h.Generate)
}

func (h *Handler) Generate(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}

	caregiverID := auth.CaregiverIDFromContext(c.Request().Context())
	data, err := h.svc.Generate(c.Request().Context(), caregiverID, patientID)
	switch {
	case errors.Is(err, patients.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	case errors.Is(err, ErrNoLogs):
		return echo.NewHTTPError(http.StatusNotFound, "no logs found for the last 30 days")
	case errors.Is(err, ErrNotConfigured):
		return echo.NewHTTPError(http.StatusInternalServerError, "summarization is not configured")
	case errors.Is(err, ErrBadModelResponse):
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to parse model response")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate summary")
	}

	return c.JSON(http.StatusOK, data)
}
