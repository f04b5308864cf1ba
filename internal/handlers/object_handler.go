package handlers

import (
	"strconv"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/ecrin-rms/rmsbe/internal/repositories"
	"github.com/ecrin-rms/rmsbe/pkg/events"
	"github.com/ecrin-rms/rmsbe/pkg/models"
)

// ObjectHandler serves the data object routes, including the ten
// attribute tables and object relationships.
type ObjectHandler struct {
	repo    *repositories.ObjectRepository
	emitter *events.Emitter
	logger  ectologger.Logger
}

// NewObjectHandler creates a new data object handler
func NewObjectHandler(repo *repositories.ObjectRepository, emitter *events.Emitter, logger ectologger.Logger) *ObjectHandler {
	return &ObjectHandler{
		repo:    repo,
		emitter: emitter,
		logger:  logger,
	}
}

// RegisterRoutes registers the data object routes
func (h *ObjectHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/data-objects", h.ListObjects)
	g.GET("/data-objects/entries", h.ListObjectEntries)
	g.GET("/data-objects/recent/:n", h.ListRecentObjects)
	g.GET("/data-objects/entries/recent/:n", h.ListRecentObjectEntries)
	g.GET("/data-objects/entries/involved", h.ListInvolvedObjectEntries)
	g.GET("/data-objects/entries/unlinked", h.ListUnlinkedObjectEntries)
	g.GET("/data-objects/org/:org_id", h.ListObjectsByOrg)
	g.POST("/data-objects/object", h.CreateObject)
	g.GET("/data-objects/object/:sd_oid", h.GetObject)
	g.PUT("/data-objects/object/:sd_oid", h.UpdateObject)
	g.DELETE("/data-objects/object/:sd_oid", h.DeleteObject)
	g.GET("/data-objects/object/:sd_oid/full", h.GetFullObject)
	g.DELETE("/data-objects/object/:sd_oid/full", h.DeleteFullObject)
	g.GET("/data-objects/object/:sd_oid/involvement", h.GetObjectInvolvement)

	g.GET("/data-objects/object/:sd_oid/titles", h.ListObjectTitles)
	g.POST("/data-objects/object/:sd_oid/titles", h.CreateObjectTitle)
	g.GET("/data-objects/object/:sd_oid/titles/:id", h.GetObjectTitle)
	g.PUT("/data-objects/object/:sd_oid/titles/:id", h.UpdateObjectTitle)
	g.DELETE("/data-objects/object/:sd_oid/titles/:id", h.DeleteObjectTitle)

	g.GET("/data-objects/object/:sd_oid/contributors", h.ListObjectContributors)
	g.POST("/data-objects/object/:sd_oid/contributors", h.CreateObjectContributor)
	g.GET("/data-objects/object/:sd_oid/contributors/:id", h.GetObjectContributor)
	g.PUT("/data-objects/object/:sd_oid/contributors/:id", h.UpdateObjectContributor)
	g.DELETE("/data-objects/object/:sd_oid/contributors/:id", h.DeleteObjectContributor)

	g.GET("/data-objects/object/:sd_oid/datasets", h.ListObjectDatasets)
	g.POST("/data-objects/object/:sd_oid/datasets", h.CreateObjectDataset)
	g.GET("/data-objects/object/:sd_oid/datasets/:id", h.GetObjectDataset)
	g.PUT("/data-objects/object/:sd_oid/datasets/:id", h.UpdateObjectDataset)
	g.DELETE("/data-objects/object/:sd_oid/datasets/:id", h.DeleteObjectDataset)

	g.GET("/data-objects/object/:sd_oid/dates", h.ListObjectDates)
	g.POST("/data-objects/object/:sd_oid/dates", h.CreateObjectDate)
	g.GET("/data-objects/object/:sd_oid/dates/:id", h.GetObjectDate)
	g.PUT("/data-objects/object/:sd_oid/dates/:id", h.UpdateObjectDate)
	g.DELETE("/data-objects/object/:sd_oid/dates/:id", h.DeleteObjectDate)

	g.GET("/data-objects/object/:sd_oid/descriptions", h.ListObjectDescriptions)
	g.POST("/data-objects/object/:sd_oid/descriptions", h.CreateObjectDescription)
	g.GET("/data-objects/object/:sd_oid/descriptions/:id", h.GetObjectDescription)
	g.PUT("/data-objects/object/:sd_oid/descriptions/:id", h.UpdateObjectDescription)
	g.DELETE("/data-objects/object/:sd_oid/descriptions/:id", h.DeleteObjectDescription)

	g.GET("/data-objects/object/:sd_oid/identifiers", h.ListObjectIdentifiers)
	g.POST("/data-objects/object/:sd_oid/identifiers", h.CreateObjectIdentifier)
	g.GET("/data-objects/object/:sd_oid/identifiers/:id", h.GetObjectIdentifier)
	g.PUT("/data-objects/object/:sd_oid/identifiers/:id", h.UpdateObjectIdentifier)
	g.DELETE("/data-objects/object/:sd_oid/identifiers/:id", h.DeleteObjectIdentifier)

	g.GET("/data-objects/object/:sd_oid/instances", h.ListObjectInstances)
	g.POST("/data-objects/object/:sd_oid/instances", h.CreateObjectInstance)
	g.GET("/data-objects/object/:sd_oid/instances/:id", h.GetObjectInstance)
	g.PUT("/data-objects/object/:sd_oid/instances/:id", h.UpdateObjectInstance)
	g.DELETE("/data-objects/object/:sd_oid/instances/:id", h.DeleteObjectInstance)

	g.GET("/data-objects/object/:sd_oid/relationships", h.ListObjectRelationships)
	g.POST("/data-objects/object/:sd_oid/relationships", h.CreateObjectRelationship)
	g.GET("/data-objects/object/:sd_oid/relationships/:id", h.GetObjectRelationship)
	g.PUT("/data-objects/object/:sd_oid/relationships/:id", h.UpdateObjectRelationship)
	g.DELETE("/data-objects/object/:sd_oid/relationships/:id", h.DeleteObjectRelationship)

	g.GET("/data-objects/object/:sd_oid/rights", h.ListObjectRights)
	g.POST("/data-objects/object/:sd_oid/rights", h.CreateObjectRight)
	g.GET("/data-objects/object/:sd_oid/rights/:id", h.GetObjectRight)
	g.PUT("/data-objects/object/:sd_oid/rights/:id", h.UpdateObjectRight)
	g.DELETE("/data-objects/object/:sd_oid/rights/:id", h.DeleteObjectRight)

	g.GET("/data-objects/object/:sd_oid/topics", h.ListObjectTopics)
	g.POST("/data-objects/object/:sd_oid/topics", h.CreateObjectTopic)
	g.GET("/data-objects/object/:sd_oid/topics/:id", h.GetObjectTopic)
	g.PUT("/data-objects/object/:sd_oid/topics/:id", h.UpdateObjectTopic)
	g.DELETE("/data-objects/object/:sd_oid/topics/:id", h.DeleteObjectTopic)
}

// requireObject gates attribute operations on the object existing.
func (h *ObjectHandler) requireObject(c echo.Context) (string, error) {
	sdOid, err := ParseSdOid(c)
	if err != nil {
		return "", err
	}
	exists, err := h.repo.ObjectExists(c.Request().Context(), sdOid)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", NotFound("data object %s does not exist", sdOid)
	}
	return sdOid, nil
}

// requireObjectAttribute additionally gates on the attribute record
// belonging to the object.
func (h *ObjectHandler) requireObjectAttribute(c echo.Context, attr repositories.ObjectAttribute) (string, int, error) {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return "", 0, err
	}
	id, err := ParseID(c, "id")
	if err != nil {
		return "", 0, err
	}
	exists, err := h.repo.ObjectAttributeExists(c.Request().Context(), sdOid, attr, id)
	if err != nil {
		return "", 0, err
	}
	if !exists {
		return "", 0, NotFound("data object %s has no such record %d", sdOid, id)
	}
	return sdOid, id, nil
}

/* Core object records */

// ListObjects returns data objects, optionally filtered by title and
// paginated.
func (h *ObjectHandler) ListObjects(c echo.Context) error {
	ctx := c.Request().Context()

	var page models.PaginationRequest
	if err := c.Bind(&page); err != nil {
		return BadRequest("invalid pagination parameters")
	}
	titleFilter := c.QueryParam("titlefilter")

	var (
		objects []models.DataObject
		err     error
	)
	switch {
	case titleFilter != "" && page.PageSize > 0:
		objects, err = h.repo.GetPaginatedFilteredObjects(ctx, titleFilter, page.PageNum, page.PageSize)
	case titleFilter != "":
		objects, err = h.repo.GetFilteredObjects(ctx, titleFilter)
	case page.PageSize > 0:
		objects, err = h.repo.GetPaginatedObjects(ctx, page.PageNum, page.PageSize)
	default:
		objects, err = h.repo.GetAllObjects(ctx)
	}
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(objects))
}

// ListObjectEntries returns compact listing entries with the same filter
// and pagination options.
func (h *ObjectHandler) ListObjectEntries(c echo.Context) error {
	ctx := c.Request().Context()

	var page models.PaginationRequest
	if err := c.Bind(&page); err != nil {
		return BadRequest("invalid pagination parameters")
	}
	titleFilter := c.QueryParam("titlefilter")

	var (
		entries []models.DataObjectEntry
		err     error
	)
	switch {
	case titleFilter != "" && page.PageSize > 0:
		entries, err = h.repo.GetPaginatedFilteredObjectEntries(ctx, titleFilter, page.PageNum, page.PageSize)
	case titleFilter != "":
		entries, err = h.repo.GetFilteredObjectEntries(ctx, titleFilter)
	case page.PageSize > 0:
		entries, err = h.repo.GetPaginatedObjectEntries(ctx, page.PageNum, page.PageSize)
	default:
		entries, err = h.repo.GetAllObjectEntries(ctx)
	}
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(entries))
}

// ListRecentObjects returns the n most recent data objects.
func (h *ObjectHandler) ListRecentObjects(c echo.Context) error {
	n, err := ParseID(c, "n")
	if err != nil {
		return err
	}
	objects, err := h.repo.GetRecentObjects(c.Request().Context(), n)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(objects))
}

// ListRecentObjectEntries returns the n most recent listing entries.
func (h *ObjectHandler) ListRecentObjectEntries(c echo.Context) error {
	n, err := ParseID(c, "n")
	if err != nil {
		return err
	}
	entries, err := h.repo.GetRecentObjectEntries(c.Request().Context(), n)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(entries))
}

// ListInvolvedObjectEntries returns listing entries for objects linked to
// at least one process.
func (h *ObjectHandler) ListInvolvedObjectEntries(c echo.Context) error {
	entries, err := h.repo.GetInvolvedObjectEntries(c.Request().Context())
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(entries))
}

// ListUnlinkedObjectEntries returns listing entries for objects no process
// references.
func (h *ObjectHandler) ListUnlinkedObjectEntries(c echo.Context) error {
	entries, err := h.repo.GetUninvolvedObjectEntries(c.Request().Context())
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(entries))
}

// ListObjectsByOrg returns the objects involved in any process of an
// organisation.
func (h *ObjectHandler) ListObjectsByOrg(c echo.Context) error {
	orgID, err := ParseID(c, "org_id")
	if err != nil {
		return err
	}
	objects, err := h.repo.GetObjectsByOrg(c.Request().Context(), orgID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(objects))
}

// GetObject returns one data object.
func (h *ObjectHandler) GetObject(c echo.Context) error {
	sdOid, err := ParseSdOid(c)
	if err != nil {
		return err
	}
	object, err := h.repo.GetObject(c.Request().Context(), sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*object))
}

// CreateObject creates a data object, deriving its identifier when none
// is supplied. Unless add_title=false a default title record is seeded
// alongside.
func (h *ObjectHandler) CreateObject(c echo.Context) error {
	ctx := c.Request().Context()

	var object models.DataObject
	if err := c.Bind(&object); err != nil {
		return BadRequest("invalid data object payload")
	}
	if err := validate.Struct(object); err != nil {
		return BadRequest(err.Error())
	}

	addTitle := true
	if v := c.QueryParam("add_title"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return BadRequest("invalid add_title: must be a boolean")
		}
		addTitle = parsed
	}

	created, err := h.repo.CreateDataObject(ctx, &object, addTitle)
	if err != nil {
		return err
	}
	h.emitter.EmitRecordCreated(ctx, events.RecordKindObject, created.ID, created)
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// UpdateObject rewrites a data object, carrying a changed display title
// through to its matching title record.
func (h *ObjectHandler) UpdateObject(c echo.Context) error {
	ctx := c.Request().Context()

	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}

	var object models.DataObject
	if err := c.Bind(&object); err != nil {
		return BadRequest("invalid data object payload")
	}
	if err := validate.Struct(object); err != nil {
		return BadRequest(err.Error())
	}
	object.SdOid = &sdOid

	updated, err := h.repo.UpdateDataObject(ctx, &object)
	if err != nil {
		return err
	}
	h.emitter.EmitRecordUpdated(ctx, events.RecordKindObject, updated.ID, updated)
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteObject removes a data object and its title records.
func (h *ObjectHandler) DeleteObject(c echo.Context) error {
	ctx := c.Request().Context()

	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}
	object, err := h.repo.GetObject(ctx, sdOid)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteDataObject(ctx, sdOid)
	if err != nil {
		return err
	}
	h.emitter.EmitObjectDeleted(ctx, object.ID, sdOid)
	return SuccessResponse(c, models.NewCountResponse("deleted data objects", count))
}

// GetFullObject returns the complete aggregate of one data object.
func (h *ObjectHandler) GetFullObject(c echo.Context) error {
	sdOid, err := ParseSdOid(c)
	if err != nil {
		return err
	}
	full, err := h.repo.GetFullObject(c.Request().Context(), sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*full))
}

// DeleteFullObject removes a data object with all its attribute records
// and its process links.
func (h *ObjectHandler) DeleteFullObject(c echo.Context) error {
	ctx := c.Request().Context()

	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}
	object, err := h.repo.GetObject(ctx, sdOid)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteFullObject(ctx, sdOid)
	if err != nil {
		return err
	}
	h.emitter.EmitObjectDeleted(ctx, object.ID, sdOid)
	return SuccessResponse(c, models.NewCountResponse("deleted data objects", count))
}

// GetObjectInvolvement reports how many transfer and use processes
// reference the object.
func (h *ObjectHandler) GetObjectInvolvement(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}
	involvement, err := h.repo.GetObjectInvolvement(c.Request().Context(), sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*involvement))
}

/* Titles */

// ListObjectTitles returns the titles of an object.
func (h *ObjectHandler) ListObjectTitles(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}
	titles, err := h.repo.GetObjectTitles(c.Request().Context(), sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(titles))
}

// CreateObjectTitle adds a title to an object.
func (h *ObjectHandler) CreateObjectTitle(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}

	var title models.ObjectTitle
	if err := c.Bind(&title); err != nil {
		return BadRequest("invalid title payload")
	}
	title.SdOid = &sdOid

	created, err := h.repo.CreateObjectTitle(c.Request().Context(), &title)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetObjectTitle returns one title record.
func (h *ObjectHandler) GetObjectTitle(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeTitle)
	if err != nil {
		return err
	}
	title, err := h.repo.GetObjectTitle(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*title))
}

// UpdateObjectTitle rewrites a title record.
func (h *ObjectHandler) UpdateObjectTitle(c echo.Context) error {
	sdOid, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeTitle)
	if err != nil {
		return err
	}

	var title models.ObjectTitle
	if err := c.Bind(&title); err != nil {
		return BadRequest("invalid title payload")
	}
	title.ID = id
	title.SdOid = &sdOid

	updated, err := h.repo.UpdateObjectTitle(c.Request().Context(), &title)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteObjectTitle removes a title record.
func (h *ObjectHandler) DeleteObjectTitle(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeTitle)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteObjectTitle(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted object titles", count))
}

/* Contributors */

// ListObjectContributors returns the contributors of an object.
func (h *ObjectHandler) ListObjectContributors(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}
	contributors, err := h.repo.GetObjectContributors(c.Request().Context(), sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(contributors))
}

// CreateObjectContributor adds a contributor to an object.
func (h *ObjectHandler) CreateObjectContributor(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}

	var contributor models.ObjectContributor
	if err := c.Bind(&contributor); err != nil {
		return BadRequest("invalid contributor payload")
	}
	contributor.SdOid = &sdOid

	created, err := h.repo.CreateObjectContributor(c.Request().Context(), &contributor)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetObjectContributor returns one contributor record.
func (h *ObjectHandler) GetObjectContributor(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeContributor)
	if err != nil {
		return err
	}
	contributor, err := h.repo.GetObjectContributor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*contributor))
}

// UpdateObjectContributor rewrites a contributor record.
func (h *ObjectHandler) UpdateObjectContributor(c echo.Context) error {
	sdOid, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeContributor)
	if err != nil {
		return err
	}

	var contributor models.ObjectContributor
	if err := c.Bind(&contributor); err != nil {
		return BadRequest("invalid contributor payload")
	}
	contributor.ID = id
	contributor.SdOid = &sdOid

	updated, err := h.repo.UpdateObjectContributor(c.Request().Context(), &contributor)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteObjectContributor removes a contributor record.
func (h *ObjectHandler) DeleteObjectContributor(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeContributor)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteObjectContributor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted object contributors", count))
}

/* Datasets */

// ListObjectDatasets returns the dataset records of an object.
func (h *ObjectHandler) ListObjectDatasets(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}
	datasets, err := h.repo.GetObjectDatasets(c.Request().Context(), sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(datasets))
}

// CreateObjectDataset adds a dataset record to an object.
func (h *ObjectHandler) CreateObjectDataset(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}

	var dataset models.ObjectDataset
	if err := c.Bind(&dataset); err != nil {
		return BadRequest("invalid dataset payload")
	}
	dataset.SdOid = &sdOid

	created, err := h.repo.CreateObjectDataset(c.Request().Context(), &dataset)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetObjectDataset returns one dataset record.
func (h *ObjectHandler) GetObjectDataset(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeDataset)
	if err != nil {
		return err
	}
	dataset, err := h.repo.GetObjectDataset(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*dataset))
}

// UpdateObjectDataset rewrites a dataset record.
func (h *ObjectHandler) UpdateObjectDataset(c echo.Context) error {
	sdOid, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeDataset)
	if err != nil {
		return err
	}

	var dataset models.ObjectDataset
	if err := c.Bind(&dataset); err != nil {
		return BadRequest("invalid dataset payload")
	}
	dataset.ID = id
	dataset.SdOid = &sdOid

	updated, err := h.repo.UpdateObjectDataset(c.Request().Context(), &dataset)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteObjectDataset removes a dataset record.
func (h *ObjectHandler) DeleteObjectDataset(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeDataset)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteObjectDataset(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted object datasets", count))
}

/* Dates */

// ListObjectDates returns the dates of an object.
func (h *ObjectHandler) ListObjectDates(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}
	dates, err := h.repo.GetObjectDates(c.Request().Context(), sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(dates))
}

// CreateObjectDate adds a date to an object.
func (h *ObjectHandler) CreateObjectDate(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}

	var date models.ObjectDate
	if err := c.Bind(&date); err != nil {
		return BadRequest("invalid date payload")
	}
	date.SdOid = &sdOid

	created, err := h.repo.CreateObjectDate(c.Request().Context(), &date)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetObjectDate returns one date record.
func (h *ObjectHandler) GetObjectDate(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeDate)
	if err != nil {
		return err
	}
	date, err := h.repo.GetObjectDate(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*date))
}

// UpdateObjectDate rewrites a date record.
func (h *ObjectHandler) UpdateObjectDate(c echo.Context) error {
	sdOid, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeDate)
	if err != nil {
		return err
	}

	var date models.ObjectDate
	if err := c.Bind(&date); err != nil {
		return BadRequest("invalid date payload")
	}
	date.ID = id
	date.SdOid = &sdOid

	updated, err := h.repo.UpdateObjectDate(c.Request().Context(), &date)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteObjectDate removes a date record.
func (h *ObjectHandler) DeleteObjectDate(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeDate)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteObjectDate(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted object dates", count))
}

/* Descriptions */

// ListObjectDescriptions returns the descriptions of an object.
func (h *ObjectHandler) ListObjectDescriptions(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}
	descriptions, err := h.repo.GetObjectDescriptions(c.Request().Context(), sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(descriptions))
}

// CreateObjectDescription adds a description to an object.
func (h *ObjectHandler) CreateObjectDescription(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}

	var description models.ObjectDescription
	if err := c.Bind(&description); err != nil {
		return BadRequest("invalid description payload")
	}
	description.SdOid = &sdOid

	created, err := h.repo.CreateObjectDescription(c.Request().Context(), &description)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetObjectDescription returns one description record.
func (h *ObjectHandler) GetObjectDescription(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeDescription)
	if err != nil {
		return err
	}
	description, err := h.repo.GetObjectDescription(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*description))
}

// UpdateObjectDescription rewrites a description record.
func (h *ObjectHandler) UpdateObjectDescription(c echo.Context) error {
	sdOid, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeDescription)
	if err != nil {
		return err
	}

	var description models.ObjectDescription
	if err := c.Bind(&description); err != nil {
		return BadRequest("invalid description payload")
	}
	description.ID = id
	description.SdOid = &sdOid

	updated, err := h.repo.UpdateObjectDescription(c.Request().Context(), &description)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteObjectDescription removes a description record.
func (h *ObjectHandler) DeleteObjectDescription(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeDescription)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteObjectDescription(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted object descriptions", count))
}

/* Identifiers */

// ListObjectIdentifiers returns the identifiers of an object.
func (h *ObjectHandler) ListObjectIdentifiers(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}
	identifiers, err := h.repo.GetObjectIdentifiers(c.Request().Context(), sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(identifiers))
}

// CreateObjectIdentifier adds an identifier to an object.
func (h *ObjectHandler) CreateObjectIdentifier(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}

	var identifier models.ObjectIdentifier
	if err := c.Bind(&identifier); err != nil {
		return BadRequest("invalid identifier payload")
	}
	identifier.SdOid = &sdOid

	created, err := h.repo.CreateObjectIdentifier(c.Request().Context(), &identifier)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetObjectIdentifier returns one identifier record.
func (h *ObjectHandler) GetObjectIdentifier(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeIdentifier)
	if err != nil {
		return err
	}
	identifier, err := h.repo.GetObjectIdentifier(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*identifier))
}

// UpdateObjectIdentifier rewrites an identifier record.
func (h *ObjectHandler) UpdateObjectIdentifier(c echo.Context) error {
	sdOid, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeIdentifier)
	if err != nil {
		return err
	}

	var identifier models.ObjectIdentifier
	if err := c.Bind(&identifier); err != nil {
		return BadRequest("invalid identifier payload")
	}
	identifier.ID = id
	identifier.SdOid = &sdOid

	updated, err := h.repo.UpdateObjectIdentifier(c.Request().Context(), &identifier)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteObjectIdentifier removes an identifier record.
func (h *ObjectHandler) DeleteObjectIdentifier(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeIdentifier)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteObjectIdentifier(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted object identifiers", count))
}

/* Instances */

// ListObjectInstances returns the instances of an object.
func (h *ObjectHandler) ListObjectInstances(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}
	instances, err := h.repo.GetObjectInstances(c.Request().Context(), sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(instances))
}

// CreateObjectInstance adds an instance to an object.
func (h *ObjectHandler) CreateObjectInstance(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}

	var instance models.ObjectInstance
	if err := c.Bind(&instance); err != nil {
		return BadRequest("invalid instance payload")
	}
	instance.SdOid = &sdOid

	created, err := h.repo.CreateObjectInstance(c.Request().Context(), &instance)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetObjectInstance returns one instance record.
func (h *ObjectHandler) GetObjectInstance(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeInstance)
	if err != nil {
		return err
	}
	instance, err := h.repo.GetObjectInstance(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*instance))
}

// UpdateObjectInstance rewrites an instance record.
func (h *ObjectHandler) UpdateObjectInstance(c echo.Context) error {
	sdOid, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeInstance)
	if err != nil {
		return err
	}

	var instance models.ObjectInstance
	if err := c.Bind(&instance); err != nil {
		return BadRequest("invalid instance payload")
	}
	instance.ID = id
	instance.SdOid = &sdOid

	updated, err := h.repo.UpdateObjectInstance(c.Request().Context(), &instance)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteObjectInstance removes an instance record.
func (h *ObjectHandler) DeleteObjectInstance(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeInstance)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteObjectInstance(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted object instances", count))
}

/* Relationships */

// ListObjectRelationships returns the outgoing relationships of an
// object.
func (h *ObjectHandler) ListObjectRelationships(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}
	relationships, err := h.repo.GetObjectRelationships(c.Request().Context(), sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(relationships))
}

// CreateObjectRelationship links two objects. The converse edge is
// maintained automatically.
func (h *ObjectHandler) CreateObjectRelationship(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}

	var relationship models.ObjectRelationship
	if err := c.Bind(&relationship); err != nil {
		return BadRequest("invalid relationship payload")
	}
	relationship.SdOid = &sdOid

	if relationship.TargetSdOid == nil || *relationship.TargetSdOid == "" {
		return BadRequest("missing target_sd_oid")
	}
	targetExists, err := h.repo.ObjectExists(c.Request().Context(), *relationship.TargetSdOid)
	if err != nil {
		return err
	}
	if !targetExists {
		return NotFound("data object %s does not exist", *relationship.TargetSdOid)
	}

	created, err := h.repo.CreateObjectRelationship(c.Request().Context(), &relationship)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetObjectRelationship returns one relationship record.
func (h *ObjectHandler) GetObjectRelationship(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeRelationship)
	if err != nil {
		return err
	}
	relationship, err := h.repo.GetObjectRelationship(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*relationship))
}

// UpdateObjectRelationship rewrites a relationship, retyping its converse
// edge to match.
func (h *ObjectHandler) UpdateObjectRelationship(c echo.Context) error {
	sdOid, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeRelationship)
	if err != nil {
		return err
	}

	var relationship models.ObjectRelationship
	if err := c.Bind(&relationship); err != nil {
		return BadRequest("invalid relationship payload")
	}
	relationship.ID = id
	relationship.SdOid = &sdOid

	updated, err := h.repo.UpdateObjectRelationship(c.Request().Context(), &relationship)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteObjectRelationship removes a relationship and its converse edge.
func (h *ObjectHandler) DeleteObjectRelationship(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeRelationship)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteObjectRelationship(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted object relationships", count))
}

/* Rights */

// ListObjectRights returns the rights of an object.
func (h *ObjectHandler) ListObjectRights(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}
	rights, err := h.repo.GetObjectRights(c.Request().Context(), sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(rights))
}

// CreateObjectRight adds a rights record to an object.
func (h *ObjectHandler) CreateObjectRight(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}

	var right models.ObjectRight
	if err := c.Bind(&right); err != nil {
		return BadRequest("invalid rights payload")
	}
	right.SdOid = &sdOid

	created, err := h.repo.CreateObjectRight(c.Request().Context(), &right)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetObjectRight returns one rights record.
func (h *ObjectHandler) GetObjectRight(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeRight)
	if err != nil {
		return err
	}
	right, err := h.repo.GetObjectRight(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*right))
}

// UpdateObjectRight rewrites a rights record.
func (h *ObjectHandler) UpdateObjectRight(c echo.Context) error {
	sdOid, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeRight)
	if err != nil {
		return err
	}

	var right models.ObjectRight
	if err := c.Bind(&right); err != nil {
		return BadRequest("invalid rights payload")
	}
	right.ID = id
	right.SdOid = &sdOid

	updated, err := h.repo.UpdateObjectRight(c.Request().Context(), &right)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteObjectRight removes a rights record.
func (h *ObjectHandler) DeleteObjectRight(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeRight)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteObjectRight(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted object rights", count))
}

/* Topics */

// ListObjectTopics returns the topics of an object.
func (h *ObjectHandler) ListObjectTopics(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}
	topics, err := h.repo.GetObjectTopics(c.Request().Context(), sdOid)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewApiResponse(topics))
}

// CreateObjectTopic adds a topic to an object.
func (h *ObjectHandler) CreateObjectTopic(c echo.Context) error {
	sdOid, err := h.requireObject(c)
	if err != nil {
		return err
	}

	var topic models.ObjectTopic
	if err := c.Bind(&topic); err != nil {
		return BadRequest("invalid topic payload")
	}
	topic.SdOid = &sdOid

	created, err := h.repo.CreateObjectTopic(c.Request().Context(), &topic)
	if err != nil {
		return err
	}
	return CreatedResponse(c, models.NewSingleResponse(*created))
}

// GetObjectTopic returns one topic record.
func (h *ObjectHandler) GetObjectTopic(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeTopic)
	if err != nil {
		return err
	}
	topic, err := h.repo.GetObjectTopic(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*topic))
}

// UpdateObjectTopic rewrites a topic record.
func (h *ObjectHandler) UpdateObjectTopic(c echo.Context) error {
	sdOid, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeTopic)
	if err != nil {
		return err
	}

	var topic models.ObjectTopic
	if err := c.Bind(&topic); err != nil {
		return BadRequest("invalid topic payload")
	}
	topic.ID = id
	topic.SdOid = &sdOid

	updated, err := h.repo.UpdateObjectTopic(c.Request().Context(), &topic)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewSingleResponse(*updated))
}

// DeleteObjectTopic removes a topic record.
func (h *ObjectHandler) DeleteObjectTopic(c echo.Context) error {
	_, id, err := h.requireObjectAttribute(c, repositories.ObjectAttributeTopic)
	if err != nil {
		return err
	}
	count, err := h.repo.DeleteObjectTopic(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return SuccessResponse(c, models.NewCountResponse("deleted object topics", count))
}
