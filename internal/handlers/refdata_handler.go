package handlers

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/ecrin-rms/rmsbe/internal/repositories"
	"github.com/ecrin-rms/rmsbe/pkg/models"
)

// RefDataHandler serves the organisation, language and people context
// routes.
type RefDataHandler struct {
	repo   *repositories.RefDataRepository
	logger ectologger.Logger
}

// NewRefDataHandler creates a new reference data handler
func NewRefDataHandler(repo *repositories.RefDataRepository, logger ectologger.Logger) *RefDataHandler {
	return &RefDataHandler{
		repo:   repo,
		logger: logger,
	}
}

// RegisterRoutes registers the reference data routes
func (h *RefDataHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/context/organisations", h.ListOrgs)
	g.GET("/context/organisations/to-search", h.ListOrgsToSearch)
	g.GET("/context/organisations/names", h.ListOrgNames)
	g.GET("/context/languages", h.ListLangCodes)
	g.GET("/context/languages/major", h.ListMajorLangCodes)
	g.GET("/context/languages/code/:code", h.GetLangDetailsByCode)
	g.GET("/context/languages/name/:name", h.GetLangDetailsByName)
	g.GET("/context/people", h.ListPeople)
	g.GET("/context/people/:id", h.GetPerson)
}

// nameLang reads the language of display names, defaulting to English.
func nameLang(c echo.Context) string {
	if v := c.QueryParam("name_lang"); v != "" {
		return v
	}
	return "en"
}

// ListOrgs returns organisations, optionally filtered by name fragment.
func (h *RefDataHandler) ListOrgs(c echo.Context) error {
	ctx := c.Request().Context()
	filter := c.QueryParam("filter")

	var (
		orgs []models.Org
		err  error
	)
	if filter != "" {
		orgs, err = h.repo.GetFilteredOrgs(ctx, filter)
	} else {
		orgs, err = h.repo.GetOrgs(ctx)
	}
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(orgs))
}

// ListOrgsToSearch returns the subset of organisations flagged for
// repository searches.
func (h *RefDataHandler) ListOrgsToSearch(c echo.Context) error {
	ctx := c.Request().Context()
	filter := c.QueryParam("filter")

	var (
		orgs []models.Org
		err  error
	)
	if filter != "" {
		orgs, err = h.repo.GetFilteredOrgsToSearch(ctx, filter)
	} else {
		orgs, err = h.repo.GetOrgsToSearch(ctx)
	}
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(orgs))
}

// ListOrgNames returns all organisation names, aliases decorated with
// their parent organisation.
func (h *RefDataHandler) ListOrgNames(c echo.Context) error {
	ctx := c.Request().Context()
	filter := c.QueryParam("filter")

	var (
		names []models.OrgName
		err   error
	)
	if filter != "" {
		names, err = h.repo.GetFilteredOrgNames(ctx, filter)
	} else {
		names, err = h.repo.GetOrgNames(ctx)
	}
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(names))
}

// ListLangCodes returns language codes with names in the requested
// language.
func (h *RefDataHandler) ListLangCodes(c echo.Context) error {
	codes, err := h.repo.GetLangCodes(c.Request().Context(), nameLang(c))
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(codes))
}

// ListMajorLangCodes returns the major language codes only.
func (h *RefDataHandler) ListMajorLangCodes(c echo.Context) error {
	codes, err := h.repo.GetMajorLangCodes(c.Request().Context(), nameLang(c))
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(codes))
}

// GetLangDetailsByCode returns the full details of one language.
func (h *RefDataHandler) GetLangDetailsByCode(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return BadRequest("missing code")
	}
	details, err := h.repo.GetLangDetailsFromCode(c.Request().Context(), code)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*details))
}

// GetLangDetailsByName returns language details looked up by a name in
// the requested language.
func (h *RefDataHandler) GetLangDetailsByName(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return BadRequest("missing name")
	}
	details, err := h.repo.GetLangDetailsFromName(c.Request().Context(), name, nameLang(c))
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*details))
}

// ListPeople returns people, optionally filtered by name fragment.
func (h *RefDataHandler) ListPeople(c echo.Context) error {
	ctx := c.Request().Context()
	filter := c.QueryParam("filter")

	var (
		people []models.Person
		err    error
	)
	if filter != "" {
		people, err = h.repo.GetFilteredPeople(ctx, filter)
	} else {
		people, err = h.repo.GetPeople(ctx)
	}
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(people))
}

// GetPerson returns one person record.
func (h *RefDataHandler) GetPerson(c echo.Context) error {
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}
	person, err := h.repo.GetPerson(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*person))
}
