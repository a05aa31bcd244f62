package dailylog

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carelog/carelog/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/logs", h.Upsert)
	api.GET("/logs/:patientID", h.History)
	api.GET("/logs/:patientID/today", h.Today)
}

func (h *Handler) Upsert(c echo.Context) error {
	var req UpsertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	caregiverID := auth.CaregiverIDFromContext(c.Request().Context())
	l, err := h.svc.Upsert(c.Request().Context(), caregiverID, &req)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) History(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}

	caregiverID := auth.CaregiverIDFromContext(c.Request().Context())
	logs, err := h.svc.History(c.Request().Context(), caregiverID, patientID)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load logs")
	}
	if logs == nil {
		logs = []*DailyLog{}
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *Handler) Today(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}

	caregiverID := auth.CaregiverIDFromContext(c.Request().Context())
	l, err := h.svc.Today(c.Request().Context(), caregiverID, patientID)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load log")
	}
	// No log today renders as a JSON null body.
	return c.JSON(http.StatusOK, l)
}
