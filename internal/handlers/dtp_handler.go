package handlers

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/ecrin-rms/rmsbe/internal/repositories"
	"github.com/ecrin-rms/rmsbe/pkg/events"
	"github.com/ecrin-rms/rmsbe/pkg/models"
)

// DtpHandler serves the data transfer process routes.
type DtpHandler struct {
	repo    *repositories.DtpRepository
	emitter *events.Emitter
	logger  ectologger.Logger
}

// NewDtpHandler creates a new transfer process handler
func NewDtpHandler(repo *repositories.DtpRepository, emitter *events.Emitter, logger ectologger.Logger) *DtpHandler {
	return &DtpHandler{
		repo:    repo,
		emitter: emitter,
		logger:  logger,
	}
}

// RegisterRoutes registers the transfer process routes
func (h *DtpHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/data-transfers/processes", h.ListDtps)
	g.GET("/data-transfers/processes/entries", h.ListDtpEntries)
	g.GET("/data-transfers/processes/recent/:n", h.ListRecentDtps)
	g.GET("/data-transfers/processes/entries/recent/:n", h.ListRecentDtpEntries)
	g.GET("/data-transfers/processes/org/:org_id", h.ListDtpsByOrg)
	g.GET("/data-transfers/processes/entries/org/:org_id", h.ListDtpEntriesByOrg)
	g.GET("/data-transfers/process/:dtp_id", h.GetDtp)
	g.POST("/data-transfers/process", h.CreateDtp)
	g.PUT("/data-transfers/process/:dtp_id", h.UpdateDtp)
	g.DELETE("/data-transfers/process/:dtp_id", h.DeleteDtp)
	g.GET("/data-transfers/process/:dtp_id/full", h.GetFullDtp)
	g.DELETE("/data-transfers/process/:dtp_id/full", h.DeleteFullDtp)

	g.GET("/data-transfers/process/:dtp_id/studies", h.ListDtpStudies)
	g.POST("/data-transfers/process/:dtp_id/studies", h.CreateDtpStudy)
	g.GET("/data-transfers/process/:dtp_id/studies/:id", h.GetDtpStudy)
	g.PUT("/data-transfers/process/:dtp_id/studies/:id", h.UpdateDtpStudy)
	g.DELETE("/data-transfers/process/:dtp_id/studies/:id", h.DeleteDtpStudy)

	g.GET("/data-transfers/process/:dtp_id/objects", h.ListDtpObjects)
	g.POST("/data-transfers/process/:dtp_id/objects", h.CreateDtpObject)
	g.GET("/data-transfers/process/:dtp_id/objects/:id", h.GetDtpObject)
	g.PUT("/data-transfers/process/:dtp_id/objects/:id", h.UpdateDtpObject)
	g.DELETE("/data-transfers/process/:dtp_id/objects/:id", h.DeleteDtpObject)

	g.GET("/data-transfers/process/:dtp_id/datasets", h.ListDtpDatasets)
	g.POST("/data-transfers/process/:dtp_id/datasets", h.CreateDtpDataset)
	g.GET("/data-transfers/process/:dtp_id/datasets/:id", h.GetDtpDataset)
	g.PUT("/data-transfers/process/:dtp_id/datasets/:id", h.UpdateDtpDataset)
	g.DELETE("/data-transfers/process/:dtp_id/datasets/:id", h.DeleteDtpDataset)

	g.GET("/data-transfers/process/:dtp_id/object/:sd_oid/prereqs", h.ListDtpPrereqs)
	g.POST("/data-transfers/process/:dtp_id/object/:sd_oid/prereqs", h.CreateDtpPrereq)
	g.GET("/data-transfers/process/:dtp_id/object/:sd_oid/prereqs/:id", h.GetDtpPrereq)
	g.PUT("/data-transfers/process/:dtp_id/object/:sd_oid/prereqs/:id", h.UpdateDtpPrereq)
	g.DELETE("/data-transfers/process/:dtp_id/object/:sd_oid/prereqs/:id", h.DeleteDtpPrereq)

	g.GET("/data-transfers/process/:dtp_id/notes", h.ListDtpNotes)
	g.POST("/data-transfers/process/:dtp_id/notes", h.CreateDtpNote)
	g.GET("/data-transfers/process/:dtp_id/notes/:id", h.GetDtpNote)
	g.PUT("/data-transfers/process/:dtp_id/notes/:id", h.UpdateDtpNote)
	g.DELETE("/data-transfers/process/:dtp_id/notes/:id", h.DeleteDtpNote)

	g.GET("/data-transfers/process/:dtp_id/people", h.ListDtpPeople)
	g.POST("/data-transfers/process/:dtp_id/people", h.CreateDtpPerson)
	g.GET("/data-transfers/process/:dtp_id/people/:id", h.GetDtpPerson)
	g.PUT("/data-transfers/process/:dtp_id/people/:id", h.UpdateDtpPerson)
	g.DELETE("/data-transfers/process/:dtp_id/people/:id", h.DeleteDtpPerson)

	g.GET("/data-transfers/process/:dtp_id/dta", h.GetDta)
	g.POST("/data-transfers/process/:dtp_id/dta", h.CreateDta)
	g.PUT("/data-transfers/process/:dtp_id/dta", h.UpdateDta)
	g.DELETE("/data-transfers/process/:dtp_id/dta", h.DeleteDta)
}

// requireDtp gates child operations on the parent process existing.
func (h *DtpHandler) requireDtp(c echo.Context) (int, error) {
	dtpID, err := ParseID(c, "dtp_id")
	if err != nil {
		return 0, err
	}
	exists, err := h.repo.DtpExists(c.Request().Context(), dtpID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, NotFound("dtp %d does not exist", dtpID)
	}
	return dtpID, nil
}

// requireDtpAttribute additionally gates on the child record belonging to
// the process.
func (h *DtpHandler) requireDtpAttribute(c echo.Context, attr repositories.DtpAttribute) (int, int, error) {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return 0, 0, err
	}
	id, err := ParseID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	exists, err := h.repo.DtpAttributeExists(c.Request().Context(), dtpID, attr, id)
	if err != nil {
		return 0, 0, err
	}
	if !exists {
		return 0, 0, NotFound("dtp %d has no such record %d", dtpID, id)
	}
	return dtpID, id, nil
}

/* Core process records */

// ListDtps returns transfer processes, optionally filtered by title and
// paginated.
func (h *DtpHandler) ListDtps(c echo.Context) error {
	ctx := c.Request().Context()

	var page models.PaginationRequest
	if err := c.Bind(&page); err != nil {
		return BadRequest("invalid pagination parameters")
	}
	titleFilter := c.QueryParam("titlefilter")

	var (
		dtps []models.Dtp
		err  error
	)
	switch {
	case titleFilter != "" && page.PageSize > 0:
		dtps, err = h.repo.GetPaginatedFilteredDtps(ctx, titleFilter, page.PageNum, page.PageSize)
	case titleFilter != "":
		dtps, err = h.repo.GetFilteredDtps(ctx, titleFilter)
	case page.PageSize > 0:
		dtps, err = h.repo.GetPaginatedDtps(ctx, page.PageNum, page.PageSize)
	default:
		dtps, err = h.repo.GetAllDtps(ctx)
	}
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(dtps))
}

// ListDtpEntries returns compact listing entries with the same filter and
// pagination options.
func (h *DtpHandler) ListDtpEntries(c echo.Context) error {
	ctx := c.Request().Context()

	var page models.PaginationRequest
	if err := c.Bind(&page); err != nil {
		return BadRequest("invalid pagination parameters")
	}
	titleFilter := c.QueryParam("titlefilter")

	var (
		entries []models.DtpEntry
		err     error
	)
	switch {
	case titleFilter != "" && page.PageSize > 0:
		entries, err = h.repo.GetPaginatedFilteredDtpEntries(ctx, titleFilter, page.PageNum, page.PageSize)
	case titleFilter != "":
		entries, err = h.repo.GetFilteredDtpEntries(ctx, titleFilter)
	case page.PageSize > 0:
		entries, err = h.repo.GetPaginatedDtpEntries(ctx, page.PageNum, page.PageSize)
	default:
		entries, err = h.repo.GetAllDtpEntries(ctx)
	}
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(entries))
}

// ListRecentDtps returns the n most recent transfer processes.
func (h *DtpHandler) ListRecentDtps(c echo.Context) error {
	n, err := ParseID(c, "n")
	if err != nil {
		return err
	}
	dtps, err := h.repo.GetRecentDtps(c.Request().Context(), n)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(dtps))
}

// ListRecentDtpEntries returns the n most recent listing entries.
func (h *DtpHandler) ListRecentDtpEntries(c echo.Context) error {
	n, err := ParseID(c, "n")
	if err != nil {
		return err
	}
	entries, err := h.repo.GetRecentDtpEntries(c.Request().Context(), n)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(entries))
}

// ListDtpsByOrg returns the transfer processes of one organisation.
func (h *DtpHandler) ListDtpsByOrg(c echo.Context) error {
	orgID, err := ParseID(c, "org_id")
	if err != nil {
		return err
	}
	dtps, err := h.repo.GetDtpsByOrg(c.Request().Context(), orgID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(dtps))
}

// ListDtpEntriesByOrg returns listing entries for one organisation.
func (h *DtpHandler) ListDtpEntriesByOrg(c echo.Context) error {
	orgID, err := ParseID(c, "org_id")
	if err != nil {
		return err
	}
	entries, err := h.repo.GetDtpEntriesByOrg(c.Request().Context(), orgID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(entries))
}

// GetDtp returns one transfer process in display form.
func (h *DtpHandler) GetDtp(c echo.Context) error {
	dtpID, err := ParseID(c, "dtp_id")
	if err != nil {
		return err
	}
	dtp, err := h.repo.GetOutDtp(c.Request().Context(), dtpID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*dtp))
}

// CreateDtp creates a new transfer process.
func (h *DtpHandler) CreateDtp(c echo.Context) error {
	ctx := c.Request().Context()

	var dtp models.Dtp
	if err := c.Bind(&dtp); err != nil {
		return BadRequest("invalid transfer process payload")
	}
	if err := validate.Struct(dtp); err != nil {
		return BadRequest(err.Error())
	}

	created, err := h.repo.CreateDtp(ctx, &dtp)
	if err != nil {
		return err
	}
	h.emitter.EmitRecordCreated(ctx, events.RecordKindDtp, created.ID, created)
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// UpdateDtp rewrites an existing transfer process.
func (h *DtpHandler) UpdateDtp(c echo.Context) error {
	ctx := c.Request().Context()

	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}

	var dtp models.Dtp
	if err := c.Bind(&dtp); err != nil {
		return BadRequest("invalid transfer process payload")
	}
	if err := validate.Struct(dtp); err != nil {
		return BadRequest(err.Error())
	}
	dtp.ID = dtpID

	updated, err := h.repo.UpdateDtp(ctx, &dtp)
	if err != nil {
		return err
	}
	h.emitter.EmitRecordUpdated(ctx, events.RecordKindDtp, updated.ID, updated)
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDtp removes the core record of a transfer process.
func (h *DtpHandler) DeleteDtp(c echo.Context) error {
	ctx := c.Request().Context()

	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteDtp(ctx, dtpID)
	if err != nil {
		return err
	}
	h.emitter.EmitRecordDeleted(ctx, events.RecordKindDtp, dtpID)
	return SuccessResponse(c, models.NewCountResponse("deleted dtps", count))
}

// GetFullDtp returns the complete aggregate of one transfer process.
func (h *DtpHandler) GetFullDtp(c echo.Context) error {
	dtpID, err := ParseID(c, "dtp_id")
	if err != nil {
		return err
	}
	full, err := h.repo.GetFullDtp(c.Request().Context(), dtpID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*full))
}

// DeleteFullDtp removes a transfer process with all its child records.
func (h *DtpHandler) DeleteFullDtp(c echo.Context) error {
	ctx := c.Request().Context()

	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteFullDtp(ctx, dtpID)
	if err != nil {
		return err
	}
	h.emitter.EmitRecordDeleted(ctx, events.RecordKindDtp, dtpID)
	return SuccessResponse(c, models.NewCountResponse("deleted dtps", count))
}

/* Studies */

// ListDtpStudies returns the studies of a transfer process.
func (h *DtpHandler) ListDtpStudies(c echo.Context) error {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}
	studies, err := h.repo.GetAllOutDtpStudies(c.Request().Context(), dtpID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(studies))
}

// CreateDtpStudy attaches a study to a transfer process.
func (h *DtpHandler) CreateDtpStudy(c echo.Context) error {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}

	var study models.DtpStudy
	if err := c.Bind(&study); err != nil {
		return BadRequest("invalid study payload")
	}
	study.DtpID = dtpID

	created, err := h.repo.CreateDtpStudy(c.Request().Context(), &study)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetDtpStudy returns one study link in display form.
func (h *DtpHandler) GetDtpStudy(c echo.Context) error {
	_, id, err := h.requireDtpAttribute(c, repositories.DtpAttributeStudy)
	if err != nil {
		return err
	}
	study, err := h.repo.GetOutDtpStudy(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*study))
}

// UpdateDtpStudy rewrites a study link.
func (h *DtpHandler) UpdateDtpStudy(c echo.Context) error {
	dtpID, id, err := h.requireDtpAttribute(c, repositories.DtpAttributeStudy)
	if err != nil {
		return err
	}

	var study models.DtpStudy
	if err := c.Bind(&study); err != nil {
		return BadRequest("invalid study payload")
	}
	study.ID = id
	study.DtpID = dtpID

	updated, err := h.repo.UpdateDtpStudy(c.Request().Context(), &study)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDtpStudy removes a study link.
func (h *DtpHandler) DeleteDtpStudy(c echo.Context) error {
	_, id, err := h.requireDtpAttribute(c, repositories.DtpAttributeStudy)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteDtpStudy(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted dtp studies", count))
}

/* Objects */

// ListDtpObjects returns the objects of a transfer process.
func (h *DtpHandler) ListDtpObjects(c echo.Context) error {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}
	objects, err := h.repo.GetAllOutDtpObjects(c.Request().Context(), dtpID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(objects))
}

// CreateDtpObject attaches an object to a transfer process.
func (h *DtpHandler) CreateDtpObject(c echo.Context) error {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}

	var object models.DtpObject
	if err := c.Bind(&object); err != nil {
		return BadRequest("invalid object payload")
	}
	object.DtpID = dtpID

	created, err := h.repo.CreateDtpObject(c.Request().Context(), &object)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetDtpObject returns one object link in display form.
func (h *DtpHandler) GetDtpObject(c echo.Context) error {
	_, id, err := h.requireDtpAttribute(c, repositories.DtpAttributeObject)
	if err != nil {
		return err
	}
	object, err := h.repo.GetOutDtpObject(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*object))
}

// UpdateDtpObject rewrites an object link.
func (h *DtpHandler) UpdateDtpObject(c echo.Context) error {
	dtpID, id, err := h.requireDtpAttribute(c, repositories.DtpAttributeObject)
	if err != nil {
		return err
	}

	var object models.DtpObject
	if err := c.Bind(&object); err != nil {
		return BadRequest("invalid object payload")
	}
	object.ID = id
	object.DtpID = dtpID

	updated, err := h.repo.UpdateDtpObject(c.Request().Context(), &object)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDtpObject removes an object link.
func (h *DtpHandler) DeleteDtpObject(c echo.Context) error {
	_, id, err := h.requireDtpAttribute(c, repositories.DtpAttributeObject)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteDtpObject(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted dtp objects", count))
}

/* Datasets */

// ListDtpDatasets returns the dataset check records of a transfer process.
func (h *DtpHandler) ListDtpDatasets(c echo.Context) error {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}
	datasets, err := h.repo.GetAllOutDtpDatasets(c.Request().Context(), dtpID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(datasets))
}

// CreateDtpDataset records dataset checks for an object in a process.
func (h *DtpHandler) CreateDtpDataset(c echo.Context) error {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}

	var dataset models.DtpDataset
	if err := c.Bind(&dataset); err != nil {
		return BadRequest("invalid dataset payload")
	}
	dataset.DtpID = &dtpID

	created, err := h.repo.CreateDtpDataset(c.Request().Context(), &dataset)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetDtpDataset returns one dataset check record in display form.
func (h *DtpHandler) GetDtpDataset(c echo.Context) error {
	_, id, err := h.requireDtpAttribute(c, repositories.DtpAttributeDataset)
	if err != nil {
		return err
	}
	dataset, err := h.repo.GetOutDtpDataset(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*dataset))
}

// UpdateDtpDataset rewrites a dataset check record.
func (h *DtpHandler) UpdateDtpDataset(c echo.Context) error {
	dtpID, id, err := h.requireDtpAttribute(c, repositories.DtpAttributeDataset)
	if err != nil {
		return err
	}

	var dataset models.DtpDataset
	if err := c.Bind(&dataset); err != nil {
		return BadRequest("invalid dataset payload")
	}
	dataset.ID = id
	dataset.DtpID = &dtpID

	updated, err := h.repo.UpdateDtpDataset(c.Request().Context(), &dataset)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDtpDataset removes a dataset check record.
func (h *DtpHandler) DeleteDtpDataset(c echo.Context) error {
	_, id, err := h.requireDtpAttribute(c, repositories.DtpAttributeDataset)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteDtpDataset(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted dtp datasets", count))
}

/* Prerequisites */

// requireDtpObject gates prerequisite operations on the object
// participating in the process.
func (h *DtpHandler) requireDtpObject(c echo.Context) (int, string, error) {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return 0, "", err
	}
	sdOid, err := ParseSdOid(c)
	if err != nil {
		return 0, "", err
	}
	exists, err := h.repo.DtpObjectExists(c.Request().Context(), dtpID, sdOid)
	if err != nil {
		return 0, "", err
	}
	if !exists {
		return 0, "", NotFound("dtp %d has no object %s", dtpID, sdOid)
	}
	return dtpID, sdOid, nil
}

// ListDtpPrereqs returns the prerequisites of an object in a process.
func (h *DtpHandler) ListDtpPrereqs(c echo.Context) error {
	dtpID, sdOid, err := h.requireDtpObject(c)
	if err != nil {
		return err
	}
	prereqs, err := h.repo.GetAllOutDtpPrereqs(c.Request().Context(), dtpID, sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(prereqs))
}

// CreateDtpPrereq records a prerequisite against an object in a process.
func (h *DtpHandler) CreateDtpPrereq(c echo.Context) error {
	dtpID, sdOid, err := h.requireDtpObject(c)
	if err != nil {
		return err
	}

	var prereq models.DtpPrereq
	if err := c.Bind(&prereq); err != nil {
		return BadRequest("invalid prerequisite payload")
	}
	prereq.DtpID = &dtpID
	prereq.SdOid = &sdOid

	created, err := h.repo.CreateDtpPrereq(c.Request().Context(), &prereq)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetDtpPrereq returns one prerequisite in display form.
func (h *DtpHandler) GetDtpPrereq(c echo.Context) error {
	dtpID, sdOid, err := h.requireDtpObject(c)
	if err != nil {
		return err
	}
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}
	exists, err := h.repo.DtpObjectAttributeExists(c.Request().Context(), dtpID, sdOid, repositories.DtpAttributePrereq, id)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound("dtp %d object %s has no prerequisite %d", dtpID, sdOid, id)
	}
	prereq, err := h.repo.GetOutDtpPrereq(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*prereq))
}

// UpdateDtpPrereq rewrites a prerequisite record.
func (h *DtpHandler) UpdateDtpPrereq(c echo.Context) error {
	dtpID, sdOid, err := h.requireDtpObject(c)
	if err != nil {
		return err
	}
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}
	exists, err := h.repo.DtpObjectAttributeExists(c.Request().Context(), dtpID, sdOid, repositories.DtpAttributePrereq, id)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound("dtp %d object %s has no prerequisite %d", dtpID, sdOid, id)
	}

	var prereq models.DtpPrereq
	if err := c.Bind(&prereq); err != nil {
		return BadRequest("invalid prerequisite payload")
	}
	prereq.ID = id
	prereq.DtpID = &dtpID
	prereq.SdOid = &sdOid

	updated, err := h.repo.UpdateDtpPrereq(c.Request().Context(), &prereq)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDtpPrereq removes a prerequisite record.
func (h *DtpHandler) DeleteDtpPrereq(c echo.Context) error {
	dtpID, sdOid, err := h.requireDtpObject(c)
	if err != nil {
		return err
	}
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}
	exists, err := h.repo.DtpObjectAttributeExists(c.Request().Context(), dtpID, sdOid, repositories.DtpAttributePrereq, id)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound("dtp %d object %s has no prerequisite %d", dtpID, sdOid, id)
	}
	count, err := h.repo.DeleteDtpPrereq(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted dtp prereqs", count))
}

/* Notes */

// ListDtpNotes returns the notes of a transfer process.
func (h *DtpHandler) ListDtpNotes(c echo.Context) error {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}
	notes, err := h.repo.GetAllOutDtpNotes(c.Request().Context(), dtpID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(notes))
}

// CreateDtpNote adds a note to a transfer process.
func (h *DtpHandler) CreateDtpNote(c echo.Context) error {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}

	var note models.DtpNote
	if err := c.Bind(&note); err != nil {
		return BadRequest("invalid note payload")
	}
	note.DtpID = &dtpID

	created, err := h.repo.CreateDtpNote(c.Request().Context(), &note)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetDtpNote returns one note in display form.
func (h *DtpHandler) GetDtpNote(c echo.Context) error {
	_, id, err := h.requireDtpAttribute(c, repositories.DtpAttributeNote)
	if err != nil {
		return err
	}
	note, err := h.repo.GetOutDtpNote(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*note))
}

// UpdateDtpNote rewrites a note.
func (h *DtpHandler) UpdateDtpNote(c echo.Context) error {
	dtpID, id, err := h.requireDtpAttribute(c, repositories.DtpAttributeNote)
	if err != nil {
		return err
	}

	var note models.DtpNote
	if err := c.Bind(&note); err != nil {
		return BadRequest("invalid note payload")
	}
	note.ID = id
	note.DtpID = &dtpID

	updated, err := h.repo.UpdateDtpNote(c.Request().Context(), &note)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDtpNote removes a note.
func (h *DtpHandler) DeleteDtpNote(c echo.Context) error {
	_, id, err := h.requireDtpAttribute(c, repositories.DtpAttributeNote)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteDtpNote(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted dtp notes", count))
}

/* People */

// ListDtpPeople returns the people of a transfer process.
func (h *DtpHandler) ListDtpPeople(c echo.Context) error {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}
	people, err := h.repo.GetAllOutDtpPeople(c.Request().Context(), dtpID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(people))
}

// CreateDtpPerson associates a person with a transfer process.
func (h *DtpHandler) CreateDtpPerson(c echo.Context) error {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}

	var person models.DtpPerson
	if err := c.Bind(&person); err != nil {
		return BadRequest("invalid person payload")
	}
	person.DtpID = &dtpID

	created, err := h.repo.CreateDtpPerson(c.Request().Context(), &person)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetDtpPerson returns one person association in display form.
func (h *DtpHandler) GetDtpPerson(c echo.Context) error {
	_, id, err := h.requireDtpAttribute(c, repositories.DtpAttributePerson)
	if err != nil {
		return err
	}
	person, err := h.repo.GetOutDtpPerson(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*person))
}

// UpdateDtpPerson rewrites a person association.
func (h *DtpHandler) UpdateDtpPerson(c echo.Context) error {
	dtpID, id, err := h.requireDtpAttribute(c, repositories.DtpAttributePerson)
	if err != nil {
		return err
	}

	var person models.DtpPerson
	if err := c.Bind(&person); err != nil {
		return BadRequest("invalid person payload")
	}
	person.ID = id
	person.DtpID = &dtpID

	updated, err := h.repo.UpdateDtpPerson(c.Request().Context(), &person)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDtpPerson removes a person association.
func (h *DtpHandler) DeleteDtpPerson(c echo.Context) error {
	_, id, err := h.requireDtpAttribute(c, repositories.DtpAttributePerson)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteDtpPerson(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted dtp people", count))
}

/* Agreement */

// GetDta returns the agreement of a transfer process in display form.
func (h *DtpHandler) GetDta(c echo.Context) error {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}
	dta, err := h.repo.GetOutDta(c.Request().Context(), dtpID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*dta))
}

// CreateDta attaches an agreement to a transfer process. A process holds
// at most one agreement.
func (h *DtpHandler) CreateDta(c echo.Context) error {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}
	exists, err := h.repo.DtpDtaExists(c.Request().Context(), dtpID)
	if err != nil {
		return err
	}
	if exists {
		return BadRequest("dtp already has a dta")
	}

	var dta models.Dta
	if err := c.Bind(&dta); err != nil {
		return BadRequest("invalid dta payload")
	}
	dta.DtpID = &dtpID

	created, err := h.repo.CreateDta(c.Request().Context(), &dta)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// UpdateDta rewrites the agreement of a transfer process.
func (h *DtpHandler) UpdateDta(c echo.Context) error {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}
	exists, err := h.repo.DtpDtaExists(c.Request().Context(), dtpID)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound("dtp %d has no dta", dtpID)
	}

	var dta models.Dta
	if err := c.Bind(&dta); err != nil {
		return BadRequest("invalid dta payload")
	}
	dta.DtpID = &dtpID

	updated, err := h.repo.UpdateDta(c.Request().Context(), &dta)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDta removes the agreement of a transfer process.
func (h *DtpHandler) DeleteDta(c echo.Context) error {
	dtpID, err := h.requireDtp(c)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteDta(c.Request().Context(), dtpID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted dtas", count))
}
