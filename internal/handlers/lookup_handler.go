package handlers

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/ecrin-rms/rmsbe/internal/repositories"
	"github.com/ecrin-rms/rmsbe/pkg/models"
)

// LookupHandler serves the controlled vocabulary routes.
type LookupHandler struct {
	repo   *repositories.LookupRepository
	logger ectologger.Logger
}

// NewLookupHandler creates a new lookup handler
func NewLookupHandler(repo *repositories.LookupRepository, logger ectologger.Logger) *LookupHandler {
	return &LookupHandler{
		repo:   repo,
		logger: logger,
	}
}

// RegisterRoutes registers the lookup routes
func (h *LookupHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/lookup/:type", h.GetLookupValues)
	g.GET("/lookup/:type/:id", h.GetLookupName)
}

// GetLookupValues returns the values of one lookup table. Unknown type
// names are rejected rather than interpolated.
func (h *LookupHandler) GetLookupValues(c echo.Context) error {
	typeName := c.Param("type")
	values, err := h.repo.GetLookupValues(c.Request().Context(), typeName)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(values))
}

// GetLookupName resolves one lookup code to its display name.
func (h *LookupHandler) GetLookupName(c echo.Context) error {
	typeName := c.Param("type")
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}
	name, err := h.repo.GetLookupName(c.Request().Context(), typeName, id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(name))
}
