package accounts

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carelog/carelog/internal/platform/auth"
)

type Handler struct {
	svc    *Service
	issuer *auth.TokenIssuer
}

func NewHandler(svc *Service, issuer *auth.TokenIssuer) *Handler {
	return &Handler{svc: svc, issuer: issuer}
}

// RegisterRoutes wires the public auth endpoints and the authenticated /me
// endpoint. Register and login must stay outside the auth middleware.
func (h *Handler) RegisterRoutes(public *echo.Group, authed *echo.Group) {
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)
	authed.GET("/auth/me", h.Me)
}

func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cg, err := h.svc.Register(c.Request().Context(), &req)
	if errors.Is(err, ErrEmailTaken) {
		return echo.NewHTTPError(http.StatusBadRequest, "email already registered")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return h.tokenResponse(c, http.StatusCreated, cg)
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cg, err := h.svc.Login(c.Request().Context(), &req)
	if errors.Is(err, ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect email or password")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	return h.tokenResponse(c, http.StatusOK, cg)
}

func (h *Handler) Me(c echo.Context) error {
	caregiverID := auth.CaregiverIDFromContext(c.Request().Context())
	if caregiverID == uuid.Nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	cg, err := h.svc.Get(c.Request().Context(), caregiverID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "caregiver not found")
	}
	return c.JSON(http.StatusOK, cg)
}

func (h *Handler) tokenResponse(c echo.Context, status int, cg *Caregiver) error {
	token, err := h.issuer.Issue(cg.ID, cg.Email, cg.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue token")
	}
	return c.JSON(status, &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        cg,
	})
}
