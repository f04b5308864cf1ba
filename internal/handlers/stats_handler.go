package handlers

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/ecrin-rms/rmsbe/internal/services/stats"
	"github.com/ecrin-rms/rmsbe/pkg/models"
)

// StatsHandler serves the summary statistics routes.
type StatsHandler struct {
	service *stats.Service
	logger  ectologger.Logger
}

// NewStatsHandler creates a new statistics handler
func NewStatsHandler(service *stats.Service, logger ectologger.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the statistics routes
func (h *StatsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stats/data-transfers/total", h.GetDtpTotal)
	g.GET("/stats/data-transfers/completion", h.GetDtpCompletion)
	g.GET("/stats/data-transfers/by-status", h.GetDtpsByStatus)
	g.GET("/stats/data-uses/total", h.GetDupTotal)
	g.GET("/stats/data-uses/completion", h.GetDupCompletion)
	g.GET("/stats/data-uses/by-status", h.GetDupsByStatus)
	g.GET("/stats/data-objects/total", h.GetObjectTotal)
	g.GET("/stats/data-objects/by-type", h.GetObjectsByType)
}

// GetDtpTotal returns the number of transfer processes, optionally
// filtered by display name.
func (h *StatsHandler) GetDtpTotal(c echo.Context) error {
	stat, err := h.service.GetDtpTotal(c.Request().Context(), c.QueryParam("titlefilter"))
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(stat))
}

// GetDtpCompletion returns the transfer process completion pair.
func (h *StatsHandler) GetDtpCompletion(c echo.Context) error {
	statistics, err := h.service.GetDtpCompletion(c.Request().Context())
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(statistics))
}

// GetDtpsByStatus returns transfer process counts grouped by status.
func (h *StatsHandler) GetDtpsByStatus(c echo.Context) error {
	statistics, err := h.service.GetDtpsByStatus(c.Request().Context())
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(statistics))
}

// GetDupTotal returns the number of use processes, optionally filtered by
// display name.
func (h *StatsHandler) GetDupTotal(c echo.Context) error {
	stat, err := h.service.GetDupTotal(c.Request().Context(), c.QueryParam("titlefilter"))
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(stat))
}

// GetDupCompletion returns the use process completion pair.
func (h *StatsHandler) GetDupCompletion(c echo.Context) error {
	statistics, err := h.service.GetDupCompletion(c.Request().Context())
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(statistics))
}

// GetDupsByStatus returns use process counts grouped by status.
func (h *StatsHandler) GetDupsByStatus(c echo.Context) error {
	statistics, err := h.service.GetDupsByStatus(c.Request().Context())
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(statistics))
}

// GetObjectTotal returns the number of data objects, optionally filtered
// by display title.
func (h *StatsHandler) GetObjectTotal(c echo.Context) error {
	stat, err := h.service.GetObjectTotal(c.Request().Context(), c.QueryParam("titlefilter"))
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(stat))
}

// GetObjectsByType returns object counts grouped by type.
func (h *StatsHandler) GetObjectsByType(c echo.Context) error {
	statistics, err := h.service.GetObjectsByType(c.Request().Context())
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(statistics))
}
