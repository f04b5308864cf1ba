package handlers

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/ecrin-rms/rmsbe/internal/repositories"
	"github.com/ecrin-rms/rmsbe/pkg/events"
	"github.com/ecrin-rms/rmsbe/pkg/models"
)

// DupHandler serves the data use process routes.
type DupHandler struct {
	repo    *repositories.DupRepository
	emitter *events.Emitter
	logger  ectologger.Logger
}

// NewDupHandler creates a new use process handler
func NewDupHandler(repo *repositories.DupRepository, emitter *events.Emitter, logger ectologger.Logger) *DupHandler {
	return &DupHandler{
		repo:    repo,
		emitter: emitter,
		logger:  logger,
	}
}

// RegisterRoutes registers the use process routes
func (h *DupHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/data-uses/processes", h.ListDups)
	g.GET("/data-uses/processes/entries", h.ListDupEntries)
	g.GET("/data-uses/processes/recent/:n", h.ListRecentDups)
	g.GET("/data-uses/processes/entries/recent/:n", h.ListRecentDupEntries)
	g.GET("/data-uses/processes/org/:org_id", h.ListDupsByOrg)
	g.GET("/data-uses/processes/entries/org/:org_id", h.ListDupEntriesByOrg)
	g.GET("/data-uses/process/:dup_id", h.GetDup)
	g.POST("/data-uses/process", h.CreateDup)
	g.PUT("/data-uses/process/:dup_id", h.UpdateDup)
	g.DELETE("/data-uses/process/:dup_id", h.DeleteDup)
	g.GET("/data-uses/process/:dup_id/full", h.GetFullDup)
	g.DELETE("/data-uses/process/:dup_id/full", h.DeleteFullDup)

	g.GET("/data-uses/process/:dup_id/studies", h.ListDupStudies)
	g.POST("/data-uses/process/:dup_id/studies", h.CreateDupStudy)
	g.GET("/data-uses/process/:dup_id/studies/:id", h.GetDupStudy)
	g.PUT("/data-uses/process/:dup_id/studies/:id", h.UpdateDupStudy)
	g.DELETE("/data-uses/process/:dup_id/studies/:id", h.DeleteDupStudy)

	g.GET("/data-uses/process/:dup_id/objects", h.ListDupObjects)
	g.POST("/data-uses/process/:dup_id/objects", h.CreateDupObject)
	g.GET("/data-uses/process/:dup_id/objects/:id", h.GetDupObject)
	g.PUT("/data-uses/process/:dup_id/objects/:id", h.UpdateDupObject)
	g.DELETE("/data-uses/process/:dup_id/objects/:id", h.DeleteDupObject)

	g.GET("/data-uses/process/:dup_id/object/:sd_oid/prereqs", h.ListDupPrereqs)
	g.POST("/data-uses/process/:dup_id/object/:sd_oid/prereqs", h.CreateDupPrereq)
	g.GET("/data-uses/process/:dup_id/object/:sd_oid/prereqs/:id", h.GetDupPrereq)
	g.PUT("/data-uses/process/:dup_id/object/:sd_oid/prereqs/:id", h.UpdateDupPrereq)
	g.DELETE("/data-uses/process/:dup_id/object/:sd_oid/prereqs/:id", h.DeleteDupPrereq)

	g.GET("/data-uses/process/:dup_id/notes", h.ListDupNotes)
	g.POST("/data-uses/process/:dup_id/notes", h.CreateDupNote)
	g.GET("/data-uses/process/:dup_id/notes/:id", h.GetDupNote)
	g.PUT("/data-uses/process/:dup_id/notes/:id", h.UpdateDupNote)
	g.DELETE("/data-uses/process/:dup_id/notes/:id", h.DeleteDupNote)

	g.GET("/data-uses/process/:dup_id/people", h.ListDupPeople)
	g.POST("/data-uses/process/:dup_id/people", h.CreateDupPerson)
	g.GET("/data-uses/process/:dup_id/people/:id", h.GetDupPerson)
	g.PUT("/data-uses/process/:dup_id/people/:id", h.UpdateDupPerson)
	g.DELETE("/data-uses/process/:dup_id/people/:id", h.DeleteDupPerson)

	g.GET("/data-uses/process/:dup_id/secondary-uses", h.ListSecUses)
	g.POST("/data-uses/process/:dup_id/secondary-uses", h.CreateSecUse)
	g.GET("/data-uses/process/:dup_id/secondary-uses/:id", h.GetSecUse)
	g.PUT("/data-uses/process/:dup_id/secondary-uses/:id", h.UpdateSecUse)
	g.DELETE("/data-uses/process/:dup_id/secondary-uses/:id", h.DeleteSecUse)

	g.GET("/data-uses/process/:dup_id/dua", h.GetDua)
	g.POST("/data-uses/process/:dup_id/dua", h.CreateDua)
	g.PUT("/data-uses/process/:dup_id/dua", h.UpdateDua)
	g.DELETE("/data-uses/process/:dup_id/dua", h.DeleteDua)
}

// requireDup gates child operations on the parent process existing.
func (h *DupHandler) requireDup(c echo.Context) (int, error) {
	dupID, err := ParseID(c, "dup_id")
	if err != nil {
		return 0, err
	}
	exists, err := h.repo.DupExists(c.Request().Context(), dupID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, NotFound("dup %d does not exist", dupID)
	}
	return dupID, nil
}

// requireDupAttribute additionally gates on the child record belonging to
// the process.
func (h *DupHandler) requireDupAttribute(c echo.Context, attr repositories.DupAttribute) (int, int, error) {
	dupID, err := h.requireDup(c)
	if err != nil {
		return 0, 0, err
	}
	id, err := ParseID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	exists, err := h.repo.DupAttributeExists(c.Request().Context(), dupID, attr, id)
	if err != nil {
		return 0, 0, err
	}
	if !exists {
		return 0, 0, NotFound("dup %d has no such record %d", dupID, id)
	}
	return dupID, id, nil
}

/* Core process records */

// ListDups returns use processes, optionally filtered by title and
// paginated.
func (h *DupHandler) ListDups(c echo.Context) error {
	ctx := c.Request().Context()

	var page models.PaginationRequest
	if err := c.Bind(&page); err != nil {
		return BadRequest("invalid pagination parameters")
	}
	titleFilter := c.QueryParam("titlefilter")

	var (
		dups []models.Dup
		err  error
	)
	switch {
	case titleFilter != "" && page.PageSize > 0:
		dups, err = h.repo.GetPaginatedFilteredDups(ctx, titleFilter, page.PageNum, page.PageSize)
	case titleFilter != "":
		dups, err = h.repo.GetFilteredDups(ctx, titleFilter)
	case page.PageSize > 0:
		dups, err = h.repo.GetPaginatedDups(ctx, page.PageNum, page.PageSize)
	default:
		dups, err = h.repo.GetAllDups(ctx)
	}
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(dups))
}

// ListDupEntries returns compact listing entries with the same filter and
// pagination options.
func (h *DupHandler) ListDupEntries(c echo.Context) error {
	ctx := c.Request().Context()

	var page models.PaginationRequest
	if err := c.Bind(&page); err != nil {
		return BadRequest("invalid pagination parameters")
	}
	titleFilter := c.QueryParam("titlefilter")

	var (
		entries []models.DupEntry
		err     error
	)
	switch {
	case titleFilter != "" && page.PageSize > 0:
		entries, err = h.repo.GetPaginatedFilteredDupEntries(ctx, titleFilter, page.PageNum, page.PageSize)
	case titleFilter != "":
		entries, err = h.repo.GetFilteredDupEntries(ctx, titleFilter)
	case page.PageSize > 0:
		entries, err = h.repo.GetPaginatedDupEntries(ctx, page.PageNum, page.PageSize)
	default:
		entries, err = h.repo.GetAllDupEntries(ctx)
	}
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(entries))
}

// ListRecentDups returns the n most recent use processes.
func (h *DupHandler) ListRecentDups(c echo.Context) error {
	n, err := ParseID(c, "n")
	if err != nil {
		return err
	}
	dups, err := h.repo.GetRecentDups(c.Request().Context(), n)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(dups))
}

// ListRecentDupEntries returns the n most recent listing entries.
func (h *DupHandler) ListRecentDupEntries(c echo.Context) error {
	n, err := ParseID(c, "n")
	if err != nil {
		return err
	}
	entries, err := h.repo.GetRecentDupEntries(c.Request().Context(), n)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(entries))
}

// ListDupsByOrg returns the use processes of one organisation.
func (h *DupHandler) ListDupsByOrg(c echo.Context) error {
	orgID, err := ParseID(c, "org_id")
	if err != nil {
		return err
	}
	dups, err := h.repo.GetDupsByOrg(c.Request().Context(), orgID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(dups))
}

// ListDupEntriesByOrg returns listing entries for one organisation.
func (h *DupHandler) ListDupEntriesByOrg(c echo.Context) error {
	orgID, err := ParseID(c, "org_id")
	if err != nil {
		return err
	}
	entries, err := h.repo.GetDupEntriesByOrg(c.Request().Context(), orgID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(entries))
}

// GetDup returns one use process in display form.
func (h *DupHandler) GetDup(c echo.Context) error {
	dupID, err := ParseID(c, "dup_id")
	if err != nil {
		return err
	}
	dup, err := h.repo.GetOutDup(c.Request().Context(), dupID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*dup))
}

// CreateDup creates a new use process.
func (h *DupHandler) CreateDup(c echo.Context) error {
	ctx := c.Request().Context()

	var dup models.Dup
	if err := c.Bind(&dup); err != nil {
		return BadRequest("invalid use process payload")
	}
	if err := validate.Struct(dup); err != nil {
		return BadRequest(err.Error())
	}

	created, err := h.repo.CreateDup(ctx, &dup)
	if err != nil {
		return err
	}
	h.emitter.EmitRecordCreated(ctx, events.RecordKindDup, created.ID, created)
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// UpdateDup rewrites an existing use process.
func (h *DupHandler) UpdateDup(c echo.Context) error {
	ctx := c.Request().Context()

	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}

	var dup models.Dup
	if err := c.Bind(&dup); err != nil {
		return BadRequest("invalid use process payload")
	}
	if err := validate.Struct(dup); err != nil {
		return BadRequest(err.Error())
	}
	dup.ID = dupID

	updated, err := h.repo.UpdateDup(ctx, &dup)
	if err != nil {
		return err
	}
	h.emitter.EmitRecordUpdated(ctx, events.RecordKindDup, updated.ID, updated)
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDup removes the core record of a use process.
func (h *DupHandler) DeleteDup(c echo.Context) error {
	ctx := c.Request().Context()

	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteDup(ctx, dupID)
	if err != nil {
		return err
	}
	h.emitter.EmitRecordDeleted(ctx, events.RecordKindDup, dupID)
	return SuccessResponse(c, models.NewCountResponse("deleted dups", count))
}

// GetFullDup returns the complete aggregate of one use process.
func (h *DupHandler) GetFullDup(c echo.Context) error {
	dupID, err := ParseID(c, "dup_id")
	if err != nil {
		return err
	}
	full, err := h.repo.GetFullDup(c.Request().Context(), dupID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*full))
}

// DeleteFullDup removes a use process with all its child records.
func (h *DupHandler) DeleteFullDup(c echo.Context) error {
	ctx := c.Request().Context()

	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteFullDup(ctx, dupID)
	if err != nil {
		return err
	}
	h.emitter.EmitRecordDeleted(ctx, events.RecordKindDup, dupID)
	return SuccessResponse(c, models.NewCountResponse("deleted dups", count))
}

/* Studies */

// ListDupStudies returns the studies of a use process.
func (h *DupHandler) ListDupStudies(c echo.Context) error {
	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}
	studies, err := h.repo.GetAllOutDupStudies(c.Request().Context(), dupID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(studies))
}

// CreateDupStudy attaches a study to a use process.
func (h *DupHandler) CreateDupStudy(c echo.Context) error {
	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}

	var study models.DupStudy
	if err := c.Bind(&study); err != nil {
		return BadRequest("invalid study payload")
	}
	study.DupID = dupID

	created, err := h.repo.CreateDupStudy(c.Request().Context(), &study)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetDupStudy returns one study link in display form.
func (h *DupHandler) GetDupStudy(c echo.Context) error {
	_, id, err := h.requireDupAttribute(c, repositories.DupAttributeStudy)
	if err != nil {
		return err
	}
	study, err := h.repo.GetOutDupStudy(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*study))
}

// UpdateDupStudy rewrites a study link.
func (h *DupHandler) UpdateDupStudy(c echo.Context) error {
	dupID, id, err := h.requireDupAttribute(c, repositories.DupAttributeStudy)
	if err != nil {
		return err
	}

	var study models.DupStudy
	if err := c.Bind(&study); err != nil {
		return BadRequest("invalid study payload")
	}
	study.ID = id
	study.DupID = dupID

	updated, err := h.repo.UpdateDupStudy(c.Request().Context(), &study)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDupStudy removes a study link.
func (h *DupHandler) DeleteDupStudy(c echo.Context) error {
	_, id, err := h.requireDupAttribute(c, repositories.DupAttributeStudy)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteDupStudy(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted dup studies", count))
}

/* Objects */

// ListDupObjects returns the objects of a use process.
func (h *DupHandler) ListDupObjects(c echo.Context) error {
	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}
	objects, err := h.repo.GetAllOutDupObjects(c.Request().Context(), dupID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(objects))
}

// CreateDupObject attaches an object to a use process.
func (h *DupHandler) CreateDupObject(c echo.Context) error {
	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}

	var object models.DupObject
	if err := c.Bind(&object); err != nil {
		return BadRequest("invalid object payload")
	}
	object.DupID = dupID

	created, err := h.repo.CreateDupObject(c.Request().Context(), &object)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetDupObject returns one object link in display form.
func (h *DupHandler) GetDupObject(c echo.Context) error {
	_, id, err := h.requireDupAttribute(c, repositories.DupAttributeObject)
	if err != nil {
		return err
	}
	object, err := h.repo.GetOutDupObject(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*object))
}

// UpdateDupObject rewrites an object link.
func (h *DupHandler) UpdateDupObject(c echo.Context) error {
	dupID, id, err := h.requireDupAttribute(c, repositories.DupAttributeObject)
	if err != nil {
		return err
	}

	var object models.DupObject
	if err := c.Bind(&object); err != nil {
		return BadRequest("invalid object payload")
	}
	object.ID = id
	object.DupID = dupID

	updated, err := h.repo.UpdateDupObject(c.Request().Context(), &object)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDupObject removes an object link.
func (h *DupHandler) DeleteDupObject(c echo.Context) error {
	_, id, err := h.requireDupAttribute(c, repositories.DupAttributeObject)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteDupObject(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted dup objects", count))
}

/* Prerequisites */

// requireDupObject gates prerequisite operations on the object
// participating in the process.
func (h *DupHandler) requireDupObject(c echo.Context) (int, string, error) {
	dupID, err := h.requireDup(c)
	if err != nil {
		return 0, "", err
	}
	sdOid, err := ParseSdOid(c)
	if err != nil {
		return 0, "", err
	}
	exists, err := h.repo.DupObjectExists(c.Request().Context(), dupID, sdOid)
	if err != nil {
		return 0, "", err
	}
	if !exists {
		return 0, "", NotFound("dup %d has no object %s", dupID, sdOid)
	}
	return dupID, sdOid, nil
}

// ListDupPrereqs returns the prerequisites of an object in a process.
func (h *DupHandler) ListDupPrereqs(c echo.Context) error {
	dupID, sdOid, err := h.requireDupObject(c)
	if err != nil {
		return err
	}
	prereqs, err := h.repo.GetAllOutDupPrereqs(c.Request().Context(), dupID, sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(prereqs))
}

// CreateDupPrereq records a prerequisite against an object in a process.
func (h *DupHandler) CreateDupPrereq(c echo.Context) error {
	dupID, sdOid, err := h.requireDupObject(c)
	if err != nil {
		return err
	}

	var prereq models.DupPrereq
	if err := c.Bind(&prereq); err != nil {
		return BadRequest("invalid prerequisite payload")
	}
	prereq.DupID = &dupID
	prereq.SdOid = &sdOid

	created, err := h.repo.CreateDupPrereq(c.Request().Context(), &prereq)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetDupPrereq returns one prerequisite in display form.
func (h *DupHandler) GetDupPrereq(c echo.Context) error {
	dupID, sdOid, err := h.requireDupObject(c)
	if err != nil {
		return err
	}
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}
	exists, err := h.repo.DupObjectAttributeExists(c.Request().Context(), dupID, sdOid, repositories.DupAttributePrereq, id)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound("dup %d object %s has no prerequisite %d", dupID, sdOid, id)
	}
	prereq, err := h.repo.GetOutDupPrereq(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*prereq))
}

// UpdateDupPrereq rewrites a prerequisite record.
func (h *DupHandler) UpdateDupPrereq(c echo.Context) error {
	dupID, sdOid, err := h.requireDupObject(c)
	if err != nil {
		return err
	}
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}
	exists, err := h.repo.DupObjectAttributeExists(c.Request().Context(), dupID, sdOid, repositories.DupAttributePrereq, id)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound("dup %d object %s has no prerequisite %d", dupID, sdOid, id)
	}

	var prereq models.DupPrereq
	if err := c.Bind(&prereq); err != nil {
		return BadRequest("invalid prerequisite payload")
	}
	prereq.ID = id
	prereq.DupID = &dupID
	prereq.SdOid = &sdOid

	updated, err := h.repo.UpdateDupPrereq(c.Request().Context(), &prereq)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDupPrereq removes a prerequisite record.
func (h *DupHandler) DeleteDupPrereq(c echo.Context) error {
	dupID, sdOid, err := h.requireDupObject(c)
	if err != nil {
		return err
	}
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}
	exists, err := h.repo.DupObjectAttributeExists(c.Request().Context(), dupID, sdOid, repositories.DupAttributePrereq, id)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound("dup %d object %s has no prerequisite %d", dupID, sdOid, id)
	}
	count, err := h.repo.DeleteDupPrereq(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted dup prereqs", count))
}

/* Notes */

// ListDupNotes returns the notes of a use process.
func (h *DupHandler) ListDupNotes(c echo.Context) error {
	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}
	notes, err := h.repo.GetAllOutDupNotes(c.Request().Context(), dupID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(notes))
}

// CreateDupNote adds a note to a use process.
func (h *DupHandler) CreateDupNote(c echo.Context) error {
	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}

	var note models.DupNote
	if err := c.Bind(&note); err != nil {
		return BadRequest("invalid note payload")
	}
	note.DupID = &dupID

	created, err := h.repo.CreateDupNote(c.Request().Context(), &note)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetDupNote returns one note in display form.
func (h *DupHandler) GetDupNote(c echo.Context) error {
	_, id, err := h.requireDupAttribute(c, repositories.DupAttributeNote)
	if err != nil {
		return err
	}
	note, err := h.repo.GetOutDupNote(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*note))
}

// UpdateDupNote rewrites a note.
func (h *DupHandler) UpdateDupNote(c echo.Context) error {
	dupID, id, err := h.requireDupAttribute(c, repositories.DupAttributeNote)
	if err != nil {
		return err
	}

	var note models.DupNote
	if err := c.Bind(&note); err != nil {
		return BadRequest("invalid note payload")
	}
	note.ID = id
	note.DupID = &dupID

	updated, err := h.repo.UpdateDupNote(c.Request().Context(), &note)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDupNote removes a note.
func (h *DupHandler) DeleteDupNote(c echo.Context) error {
	_, id, err := h.requireDupAttribute(c, repositories.DupAttributeNote)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteDupNote(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted dup notes", count))
}

/* People */

// ListDupPeople returns the people of a use process.
func (h *DupHandler) ListDupPeople(c echo.Context) error {
	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}
	people, err := h.repo.GetAllOutDupPeople(c.Request().Context(), dupID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(people))
}

// CreateDupPerson associates a person with a use process.
func (h *DupHandler) CreateDupPerson(c echo.Context) error {
	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}

	var person models.DupPerson
	if err := c.Bind(&person); err != nil {
		return BadRequest("invalid person payload")
	}
	person.DupID = &dupID

	created, err := h.repo.CreateDupPerson(c.Request().Context(), &person)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetDupPerson returns one person association in display form.
func (h *DupHandler) GetDupPerson(c echo.Context) error {
	_, id, err := h.requireDupAttribute(c, repositories.DupAttributePerson)
	if err != nil {
		return err
	}
	person, err := h.repo.GetOutDupPerson(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*person))
}

// UpdateDupPerson rewrites a person association.
func (h *DupHandler) UpdateDupPerson(c echo.Context) error {
	dupID, id, err := h.requireDupAttribute(c, repositories.DupAttributePerson)
	if err != nil {
		return err
	}

	var person models.DupPerson
	if err := c.Bind(&person); err != nil {
		return BadRequest("invalid person payload")
	}
	person.ID = id
	person.DupID = &dupID

	updated, err := h.repo.UpdateDupPerson(c.Request().Context(), &person)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDupPerson removes a person association.
func (h *DupHandler) DeleteDupPerson(c echo.Context) error {
	_, id, err := h.requireDupAttribute(c, repositories.DupAttributePerson)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteDupPerson(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted dup people", count))
}

/* Secondary use */

// ListSecUses returns the secondary uses recorded for a process.
func (h *DupHandler) ListSecUses(c echo.Context) error {
	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}
	uses, err := h.repo.GetAllSecUses(c.Request().Context(), dupID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(uses))
}

// CreateSecUse records a secondary use for a process.
func (h *DupHandler) CreateSecUse(c echo.Context) error {
	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}

	var use models.DupSecondaryUse
	if err := c.Bind(&use); err != nil {
		return BadRequest("invalid secondary use payload")
	}
	use.DupID = &dupID

	created, err := h.repo.CreateSecUse(c.Request().Context(), &use)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetSecUse returns one secondary use record.
func (h *DupHandler) GetSecUse(c echo.Context) error {
	_, id, err := h.requireDupAttribute(c, repositories.DupAttributeSecUse)
	if err != nil {
		return err
	}
	use, err := h.repo.GetSecUse(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*use))
}

// UpdateSecUse rewrites a secondary use record.
func (h *DupHandler) UpdateSecUse(c echo.Context) error {
	dupID, id, err := h.requireDupAttribute(c, repositories.DupAttributeSecUse)
	if err != nil {
		return err
	}

	var use models.DupSecondaryUse
	if err := c.Bind(&use); err != nil {
		return BadRequest("invalid secondary use payload")
	}
	use.ID = id
	use.DupID = &dupID

	updated, err := h.repo.UpdateSecUse(c.Request().Context(), &use)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteSecUse removes a secondary use record.
func (h *DupHandler) DeleteSecUse(c echo.Context) error {
	_, id, err := h.requireDupAttribute(c, repositories.DupAttributeSecUse)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteSecUse(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted dup secondary uses", count))
}

/* Agreement */

// GetDua returns the agreement of a use process in display form.
func (h *DupHandler) GetDua(c echo.Context) error {
	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}
	dua, err := h.repo.GetOutDua(c.Request().Context(), dupID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*dua))
}

// CreateDua attaches an agreement to a use process. A process holds at
// most one agreement.
func (h *DupHandler) CreateDua(c echo.Context) error {
	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}
	exists, err := h.repo.DupDuaExists(c.Request().Context(), dupID)
	if err != nil {
		return err
	}
	if exists {
		return BadRequest("dup already has a dua")
	}

	var dua models.Dua
	if err := c.Bind(&dua); err != nil {
		return BadRequest("invalid dua payload")
	}
	dua.DupID = &dupID

	created, err := h.repo.CreateDua(c.Request().Context(), &dua)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// UpdateDua rewrites the agreement of a use process.
func (h *DupHandler) UpdateDua(c echo.Context) error {
	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}
	exists, err := h.repo.DupDuaExists(c.Request().Context(), dupID)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound("dup %d has no dua", dupID)
	}

	var dua models.Dua
	if err := c.Bind(&dua); err != nil {
		return BadRequest("invalid dua payload")
	}
	dua.DupID = &dupID

	updated, err := h.repo.UpdateDua(c.Request().Context(), &dua)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteDua removes the agreement of a use process.
func (h *DupHandler) DeleteDua(c echo.Context) error {
	dupID, err := h.requireDup(c)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteDua(c.Request().Context(), dupID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted duas", count))
}
