package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Gobusters/ectologger"

	"github.com/ecrin-rms/rmsbe/pkg/database"
	"github.com/ecrin-rms/rmsbe/pkg/models"
	"github.com/ecrin-rms/rmsbe/pkg/tracing"
)

const (
	dataObjectsTable         = "mdr.data_objects"
	objectContributorsTable  = "mdr.object_contributors"
	objectDatasetsTable      = "mdr.object_datasets"
	objectDatesTable         = "mdr.object_dates"
	objectDescriptionsTable  = "mdr.object_descriptions"
	objectIdentifiersTable   = "mdr.object_identifiers"
	objectInstancesTable     = "mdr.object_instances"
	objectRelationshipsTable = "mdr.object_relationships"
	objectRightsTable        = "mdr.object_rights"
	objectTitlesTable        = "mdr.object_titles"
	objectTopicsTable        = "mdr.object_topics"
)

// ObjectAttribute discriminates the attribute tables of a data object.
type ObjectAttribute int

const (
	ObjectAttributeContributor ObjectAttribute = iota
	ObjectAttributeDataset
	ObjectAttributeDate
	ObjectAttributeDescription
	ObjectAttributeIdentifier
	ObjectAttributeInstance
	ObjectAttributeRelationship
	ObjectAttributeRight
	ObjectAttributeTitle
	ObjectAttributeTopic
)

// TableName maps the attribute to its backing table.
func (a ObjectAttribute) TableName() string {
	switch a {
	case ObjectAttributeContributor:
		return objectContributorsTable
	case ObjectAttributeDataset:
		return objectDatasetsTable
	case ObjectAttributeDate:
		return objectDatesTable
	case ObjectAttributeDescription:
		return objectDescriptionsTable
	case ObjectAttributeIdentifier:
		return objectIdentifiersTable
	case ObjectAttributeInstance:
		return objectInstancesTable
	case ObjectAttributeRelationship:
		return objectRelationshipsTable
	case ObjectAttributeRight:
		return objectRightsTable
	case ObjectAttributeTitle:
		return objectTitlesTable
	case ObjectAttributeTopic:
		return objectTopicsTable
	}
	return ""
}

var dataObjectStruct = database.NewStruct(new(models.DataObject))

// objectEntrySelect is the listing join, resolving the parent study title
// and the object type name.
const objectEntrySelect = `select b.id, b.sd_oid, b.sd_sid, b.display_title,
		s.display_title as study_name, ot.name as type_name
		from mdr.data_objects b
		left join mdr.studies s on b.sd_sid = s.sd_sid
		left join lup.object_types ot on b.object_type_id = ot.id`

// ObjectRepository handles database operations for data objects and their
// attribute tables.
type ObjectRepository struct {
	*Repository
}

// NewObjectRepository creates a new data object repository
func NewObjectRepository(db database.DB, logger ectologger.Logger) *ObjectRepository {
	return &ObjectRepository{
		Repository: NewRepository(db, logger),
	}
}

/* Existence checks */

// ObjectExists reports whether a data object with the identifier exists.
func (r *ObjectRepository) ObjectExists(ctx context.Context, sdOid string) (bool, error) {
	var exists bool
	err := r.DB().GetContext(ctx, &exists,
		"select exists (select 1 from mdr.data_objects where sd_oid = $1)", sdOid)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed object existence check")
		return false, ServerError("failed object existence check")
	}
	return exists, nil
}

// ObjectAttributeExists reports whether an attribute record exists under
// the given object.
func (r *ObjectRepository) ObjectAttributeExists(ctx context.Context, sdOid string, attr ObjectAttribute, id int) (bool, error) {
	var exists bool
	query := "select exists (select 1 from " + attr.TableName() + " where sd_oid = $1 and id = $2)"
	err := r.DB().GetContext(ctx, &exists, query, sdOid, id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed object attribute existence check")
		return false, ServerError("failed object attribute existence check")
	}
	return exists, nil
}

/* Object lists */

// GetAllObjects returns every core object record, newest first.
func (r *ObjectRepository) GetAllObjects(ctx context.Context) ([]models.DataObject, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetAllObjects")
	defer span.End()

	sb := dataObjectStruct.SelectFrom(dataObjectsTable)
	sb.OrderBy("created_on").Desc()

	query, args := sb.Build()
	objects := []models.DataObject{}
	if err := r.DB().SelectContext(ctx, &objects, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list objects")
		return nil, ServerError("failed to list objects")
	}
	return objects, nil
}

// GetAllObjectEntries returns every object as a listing entry.
func (r *ObjectRepository) GetAllObjectEntries(ctx context.Context) ([]models.DataObjectEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetAllObjectEntries")
	defer span.End()

	entries := []models.DataObjectEntry{}
	query := objectEntrySelect + " order by b.created_on desc"
	if err := r.DB().SelectContext(ctx, &entries, query); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list object entries")
		return nil, ServerError("failed to list object entries")
	}
	return entries, nil
}

// GetPaginatedObjects returns one page of core object records.
func (r *ObjectRepository) GetPaginatedObjects(ctx context.Context, pageNum, pageSize int) ([]models.DataObject, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetPaginatedObjects")
	defer span.End()

	sb := dataObjectStruct.SelectFrom(dataObjectsTable)
	sb.OrderBy("created_on").Desc()
	sb.Offset(pageOffset(pageNum, pageSize)).Limit(pageSize)

	query, args := sb.Build()
	objects := []models.DataObject{}
	if err := r.DB().SelectContext(ctx, &objects, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list paginated objects")
		return nil, ServerError("failed to list paginated objects")
	}
	return objects, nil
}

// GetPaginatedObjectEntries returns one page of listing entries.
func (r *ObjectRepository) GetPaginatedObjectEntries(ctx context.Context, pageNum, pageSize int) ([]models.DataObjectEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetPaginatedObjectEntries")
	defer span.End()

	entries := []models.DataObjectEntry{}
	query := objectEntrySelect + " order by b.created_on desc offset $1 limit $2"
	if err := r.DB().SelectContext(ctx, &entries, query, pageOffset(pageNum, pageSize), pageSize); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list paginated object entries")
		return nil, ServerError("failed to list paginated object entries")
	}
	return entries, nil
}

// GetFilteredObjects returns objects whose display title contains the
// filter.
func (r *ObjectRepository) GetFilteredObjects(ctx context.Context, titleFilter string) ([]models.DataObject, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetFilteredObjects")
	defer span.End()

	sb := dataObjectStruct.SelectFrom(dataObjectsTable)
	sb.Where(sb.ILike("display_title", "%"+titleFilter+"%"))
	sb.OrderBy("created_on").Desc()

	query, args := sb.Build()
	objects := []models.DataObject{}
	if err := r.DB().SelectContext(ctx, &objects, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list filtered objects")
		return nil, ServerError("failed to list filtered objects")
	}
	return objects, nil
}

// GetFilteredObjectEntries returns listing entries whose display title
// contains the filter.
func (r *ObjectRepository) GetFilteredObjectEntries(ctx context.Context, titleFilter string) ([]models.DataObjectEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetFilteredObjectEntries")
	defer span.End()

	entries := []models.DataObjectEntry{}
	query := objectEntrySelect + " where b.display_title ilike $1 order by b.created_on desc"
	if err := r.DB().SelectContext(ctx, &entries, query, "%"+titleFilter+"%"); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list filtered object entries")
		return nil, ServerError("failed to list filtered object entries")
	}
	return entries, nil
}

// GetPaginatedFilteredObjects combines the title filter with pagination.
func (r *ObjectRepository) GetPaginatedFilteredObjects(ctx context.Context, titleFilter string, pageNum, pageSize int) ([]models.DataObject, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetPaginatedFilteredObjects")
	defer span.End()

	sb := dataObjectStruct.SelectFrom(dataObjectsTable)
	sb.Where(sb.ILike("display_title", "%"+titleFilter+"%"))
	sb.OrderBy("created_on").Desc()
	sb.Offset(pageOffset(pageNum, pageSize)).Limit(pageSize)

	query, args := sb.Build()
	objects := []models.DataObject{}
	if err := r.DB().SelectContext(ctx, &objects, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list paginated filtered objects")
		return nil, ServerError("failed to list paginated filtered objects")
	}
	return objects, nil
}

// GetPaginatedFilteredObjectEntries combines the title filter with
// pagination for listing entries.
func (r *ObjectRepository) GetPaginatedFilteredObjectEntries(ctx context.Context, titleFilter string, pageNum, pageSize int) ([]models.DataObjectEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetPaginatedFilteredObjectEntries")
	defer span.End()

	entries := []models.DataObjectEntry{}
	query := objectEntrySelect + " where b.display_title ilike $1 order by b.created_on desc offset $2 limit $3"
	if err := r.DB().SelectContext(ctx, &entries, query, "%"+titleFilter+"%", pageOffset(pageNum, pageSize), pageSize); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list paginated filtered object entries")
		return nil, ServerError("failed to list paginated filtered object entries")
	}
	return entries, nil
}

// GetRecentObjects returns the n most recently created objects.
func (r *ObjectRepository) GetRecentObjects(ctx context.Context, n int) ([]models.DataObject, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetRecentObjects")
	defer span.End()

	sb := dataObjectStruct.SelectFrom(dataObjectsTable)
	sb.OrderBy("created_on").Desc()
	sb.Limit(n)

	query, args := sb.Build()
	objects := []models.DataObject{}
	if err := r.DB().SelectContext(ctx, &objects, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list recent objects")
		return nil, ServerError("failed to list recent objects")
	}
	return objects, nil
}

// GetRecentObjectEntries returns the n most recent listing entries.
func (r *ObjectRepository) GetRecentObjectEntries(ctx context.Context, n int) ([]models.DataObjectEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetRecentObjectEntries")
	defer span.End()

	entries := []models.DataObjectEntry{}
	query := objectEntrySelect + " order by b.created_on desc limit $1"
	if err := r.DB().SelectContext(ctx, &entries, query, n); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list recent object entries")
		return nil, ServerError("failed to list recent object entries")
	}
	return entries, nil
}

// GetObjectsByOrg returns objects involved in any transfer or use process
// run by the organisation.
func (r *ObjectRepository) GetObjectsByOrg(ctx context.Context, orgID int) ([]models.DataObject, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetObjectsByOrg")
	defer span.End()

	query := `select b.* from mdr.data_objects b
		where b.sd_oid in (
			select o.sd_oid from rms.dtp_objects o
			inner join rms.dtps d on o.dtp_id = d.id
			where d.org_id = $1
			union
			select o.sd_oid from rms.dup_objects o
			inner join rms.dups u on o.dup_id = u.id
			where u.org_id = $1
		)
		order by b.created_on desc`

	objects := []models.DataObject{}
	if err := r.DB().SelectContext(ctx, &objects, query, orgID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list objects by org")
		return nil, ServerError("failed to list objects by org")
	}
	return objects, nil
}

// GetInvolvedObjectEntries returns listing entries for objects referenced
// by at least one transfer or use process.
func (r *ObjectRepository) GetInvolvedObjectEntries(ctx context.Context) ([]models.DataObjectEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetInvolvedObjectEntries")
	defer span.End()

	query := objectEntrySelect + ` where b.sd_oid in (
			select sd_oid from rms.dtp_objects
			union
			select sd_oid from rms.dup_objects
		)
		order by b.created_on desc`

	entries := []models.DataObjectEntry{}
	if err := r.DB().SelectContext(ctx, &entries, query); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list involved object entries")
		return nil, ServerError("failed to list involved object entries")
	}
	return entries, nil
}

// GetUninvolvedObjectEntries returns listing entries for objects not
// referenced by any process.
func (r *ObjectRepository) GetUninvolvedObjectEntries(ctx context.Context) ([]models.DataObjectEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetUninvolvedObjectEntries")
	defer span.End()

	// null sd_oid rows in the link tables would empty a plain NOT IN
	query := objectEntrySelect + ` where b.sd_oid not in (
			select sd_oid from rms.dtp_objects where sd_oid is not null
			union
			select sd_oid from rms.dup_objects where sd_oid is not null
		)
		order by b.created_on desc`

	entries := []models.DataObjectEntry{}
	if err := r.DB().SelectContext(ctx, &entries, query); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list uninvolved object entries")
		return nil, ServerError("failed to list uninvolved object entries")
	}
	return entries, nil
}

/* Object statistics */

// GetTotalObjects returns the number of data objects.
func (r *ObjectRepository) GetTotalObjects(ctx context.Context) (int, error) {
	var total int
	if err := r.DB().GetContext(ctx, &total, "select count(*) from mdr.data_objects"); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count objects")
		return 0, ServerError("failed to count objects")
	}
	return total, nil
}

// GetTotalFilteredObjects returns the number of objects matching the
// filter.
func (r *ObjectRepository) GetTotalFilteredObjects(ctx context.Context, titleFilter string) (int, error) {
	var total int
	err := r.DB().GetContext(ctx, &total,
		"select count(*) from mdr.data_objects where display_title ilike $1", "%"+titleFilter+"%")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count filtered objects")
		return 0, ServerError("failed to count filtered objects")
	}
	return total, nil
}

// GetObjectsByType returns per-type object counts.
func (r *ObjectRepository) GetObjectsByType(ctx context.Context) ([]models.StatByType, error) {
	stats := []models.StatByType{}
	err := r.DB().SelectContext(ctx, &stats,
		"select object_type_id as stat_type, count(id) as stat_value from mdr.data_objects group by object_type_id")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to group objects by type")
		return nil, ServerError("failed to group objects by type")
	}
	return stats, nil
}

// GetObjectInvolvement counts the transfer and use processes referencing
// one object.
func (r *ObjectRepository) GetObjectInvolvement(ctx context.Context, sdOid string) (*models.ObjectInvolvement, error) {
	involvement := models.ObjectInvolvement{SdOid: sdOid}
	err := r.DB().GetContext(ctx, &involvement.DtpTotal,
		"select count(*) from rms.dtp_objects where sd_oid = $1", sdOid)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count dtp involvement")
		return nil, ServerError("failed to count object involvement")
	}
	err = r.DB().GetContext(ctx, &involvement.DupTotal,
		"select count(*) from rms.dup_objects where sd_oid = $1", sdOid)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count dup involvement")
		return nil, ServerError("failed to count object involvement")
	}
	return &involvement, nil
}

/* Object record data */

// GetObject returns one core object record by its string identifier.
func (r *ObjectRepository) GetObject(ctx context.Context, sdOid string) (*models.DataObject, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetObject")
	defer span.End()

	sb := dataObjectStruct.SelectFrom(dataObjectsTable)
	sb.Where(sb.Equal("sd_oid", sdOid))

	query, args := sb.Build()
	var object models.DataObject
	err := r.DB().GetContext(ctx, &object, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("data object %s does not exist", sdOid)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get object")
		return nil, ServerError("failed to get object")
	}
	return &object, nil
}

// deriveSdOid composes the object identifier when none was supplied. A
// journal article with a DOI is identified by its DOI, anything else by
// its type and title. If the composed identifier is already in use a
// numeric suffix is appended, counting the existing near-matches.
func (r *ObjectRepository) deriveSdOid(ctx context.Context, tx database.Tx, object *models.DataObject) (string, error) {
	if object.SdOid != nil && *object.SdOid != "" {
		return *object.SdOid, nil
	}

	sdSid := ""
	if object.SdSid != nil {
		sdSid = *object.SdSid
	}
	typeID := 0
	if object.ObjectTypeID != nil {
		typeID = *object.ObjectTypeID
	}

	var stem string
	if typeID == models.ObjectTypeJournalArticle && object.DOI != nil && *object.DOI != "" {
		stem = fmt.Sprintf("%s::%d::%s", sdSid, typeID, *object.DOI)
	} else {
		title := ""
		if object.DisplayTitle != nil {
			title = *object.DisplayTitle
		}
		stem = fmt.Sprintf("%s::%d::%s", sdSid, typeID, title)
	}

	var exists bool
	err := tx.GetContext(ctx, &exists,
		"select exists (select 1 from mdr.data_objects where sd_oid = $1)", stem)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to check derived identifier")
		return "", ServerError("failed to derive object identifier")
	}
	if !exists {
		return stem, nil
	}

	var near int
	err = tx.GetContext(ctx, &near,
		"select count(*) from mdr.data_objects where sd_oid ilike $1", stem+"_%")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count identifier collisions")
		return "", ServerError("failed to derive object identifier")
	}
	return stem + "_" + strconv.Itoa(near+1), nil
}

// CreateDataObject inserts a new core object record. Unless addTitle is
// false a default title is seeded alongside, using the display title or a
// placeholder when that is empty.
func (r *ObjectRepository) CreateDataObject(ctx context.Context, object *models.DataObject, addTitle bool) (*models.DataObject, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.CreateDataObject")
	defer span.End()

	editor := EditorName(ctx)
	outerCtx := ctx
	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return nil, ServerError("failed to create object")
	}
	defer database.CloseTx(outerCtx, tx)

	sdOid, err := r.deriveSdOid(ctx, tx, object)
	if err != nil {
		return nil, err
	}

	ib := database.NewInsertBuilder()
	ib.InsertInto(dataObjectsTable).
		Cols("sd_oid", "sd_sid", "display_title", "version", "doi", "doi_status_id",
			"publication_year", "object_class_id", "object_type_id",
			"managing_org_id", "managing_org", "managing_org_ror_id",
			"lang_code", "access_type_id", "access_details", "access_details_url",
			"url_last_checked", "eosc_category", "add_study_contribs",
			"add_study_topics", "last_edited_by").
		Values(sdOid, object.SdSid, object.DisplayTitle, object.Version, object.DOI, object.DOIStatusID,
			object.PublicationYear, object.ObjectClassID, object.ObjectTypeID,
			object.ManagingOrgID, object.ManagingOrg, object.ManagingOrgRorID,
			object.LangCode, object.AccessTypeID, object.AccessDetails, object.AccessDetailsURL,
			object.URLLastChecked, object.EoscCategory, object.AddStudyContribs,
			object.AddStudyTopics, editor).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create object")
		return nil, ServerError("failed to create object")
	}

	if addTitle {
		titleText := models.TitlePlaceholderText
		if object.DisplayTitle != nil && strings.TrimSpace(*object.DisplayTitle) != "" {
			titleText = *object.DisplayTitle
		}
		tib := database.NewInsertBuilder()
		tib.InsertInto(objectTitlesTable).
			Cols("sd_oid", "title_type_id", "title_text", "lang_code",
				"lang_usage_id", "is_default", "last_edited_by").
			Values(sdOid, models.TitleTypeDefault, titleText, object.LangCode,
				models.LangUsageTitleOnly, true, editor)
		tquery, targs := tib.Build()
		if _, err = tx.ExecContext(ctx, tquery, targs...); err != nil {
			r.logger.WithContext(ctx).WithError(err).Error("failed to seed default title")
			return nil, ServerError("failed to create object")
		}
	}

	if err = tx.Commit(outerCtx); err != nil {
		return nil, ServerError("failed to create object")
	}

	r.logger.WithContext(ctx).WithField("sd_oid", sdOid).Debugf("Created %s", dataObjectsTable)
	return r.GetObject(outerCtx, sdOid)
}

// UpdateDataObject rewrites a core object record. The identifier itself
// never changes. A title record whose text matches the previous display
// title is rewritten to the new one, keeping the seeded default in step.
func (r *ObjectRepository) UpdateDataObject(ctx context.Context, object *models.DataObject) (*models.DataObject, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.UpdateDataObject")
	defer span.End()

	if object.SdOid == nil || *object.SdOid == "" {
		return nil, BadRequest("object identifier is required")
	}
	sdOid := *object.SdOid

	current, err := r.GetObject(ctx, sdOid)
	if err != nil {
		return nil, err
	}

	editor := EditorName(ctx)
	outerCtx := ctx
	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return nil, ServerError("failed to update object")
	}
	defer database.CloseTx(outerCtx, tx)

	ub := database.NewUpdateBuilder()
	ub.Update(dataObjectsTable).
		Set(
			ub.Assign("display_title", object.DisplayTitle),
			ub.Assign("version", object.Version),
			ub.Assign("doi", object.DOI),
			ub.Assign("doi_status_id", object.DOIStatusID),
			ub.Assign("publication_year", object.PublicationYear),
			ub.Assign("object_class_id", object.ObjectClassID),
			ub.Assign("object_type_id", object.ObjectTypeID),
			ub.Assign("managing_org_id", object.ManagingOrgID),
			ub.Assign("managing_org", object.ManagingOrg),
			ub.Assign("managing_org_ror_id", object.ManagingOrgRorID),
			ub.Assign("lang_code", object.LangCode),
			ub.Assign("access_type_id", object.AccessTypeID),
			ub.Assign("access_details", object.AccessDetails),
			ub.Assign("access_details_url", object.AccessDetailsURL),
			ub.Assign("url_last_checked", object.URLLastChecked),
			ub.Assign("eosc_category", object.EoscCategory),
			ub.Assign("add_study_contribs", object.AddStudyContribs),
			ub.Assign("add_study_topics", object.AddStudyTopics),
			ub.Assign("last_edited_by", editor),
		).
		Where(ub.Equal("sd_oid", sdOid))

	query, args := ub.Build()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update object")
		return nil, ServerError("failed to update object")
	}

	if current.DisplayTitle != nil && object.DisplayTitle != nil &&
		*current.DisplayTitle != *object.DisplayTitle {
		_, err = tx.ExecContext(ctx,
			"update mdr.object_titles set title_text = $1, last_edited_by = $2 where sd_oid = $3 and title_text = $4",
			*object.DisplayTitle, editor, sdOid, *current.DisplayTitle)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error("failed to update matching title")
			return nil, ServerError("failed to update object")
		}
	}

	if err = tx.Commit(outerCtx); err != nil {
		return nil, ServerError("failed to update object")
	}
	return r.GetObject(outerCtx, sdOid)
}

// DeleteDataObject removes the core record and its titles, leaving other
// attribute tables untouched. Returns the number of core rows removed.
func (r *ObjectRepository) DeleteDataObject(ctx context.Context, sdOid string) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.DeleteDataObject")
	defer span.End()

	outerCtx := ctx
	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return 0, ServerError("failed to delete object")
	}
	defer database.CloseTx(outerCtx, tx)

	if _, err = r.auditedDeleteObject(ctx, tx, objectTitlesTable, sdOid); err != nil {
		return 0, err
	}
	count, err := r.auditedDeleteObject(ctx, tx, dataObjectsTable, sdOid)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(outerCtx); err != nil {
		return 0, ServerError("failed to delete object")
	}
	return count, nil
}

// auditedDeleteObject stamps last_edited_by on the matching rows, then
// deletes them, returning the number of rows removed.
func (r *ObjectRepository) auditedDeleteObject(ctx context.Context, tx database.Tx, table, sdOid string) (int, error) {
	editor := EditorName(ctx)
	if _, err := tx.ExecContext(ctx,
		"update "+table+" set last_edited_by = $1 where sd_oid = $2", editor, sdOid); err != nil {
		r.logger.WithContext(ctx).WithError(err).Errorf("failed to audit delete from %s", table)
		return 0, ServerError("failed to delete record")
	}
	result, err := tx.ExecContext(ctx,
		"delete from "+table+" where sd_oid = $1", sdOid)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Errorf("failed to delete from %s", table)
		return 0, ServerError("failed to delete record")
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

/* Full aggregate */

// GetFullObject assembles the complete aggregate for one data object.
// Attribute collections are returned empty, never nil.
func (r *ObjectRepository) GetFullObject(ctx context.Context, sdOid string) (*models.FullObject, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.GetFullObject")
	defer span.End()

	core, err := r.GetObject(ctx, sdOid)
	if err != nil {
		return nil, err
	}

	full := models.FullObject{
		CoreObject:          *core,
		ObjectContributors:  []models.ObjectContributor{},
		ObjectDatasets:      []models.ObjectDataset{},
		ObjectDates:         []models.ObjectDate{},
		ObjectDescriptions:  []models.ObjectDescription{},
		ObjectIdentifiers:   []models.ObjectIdentifier{},
		ObjectInstances:     []models.ObjectInstance{},
		ObjectRelationships: []models.ObjectRelationship{},
		ObjectRights:        []models.ObjectRight{},
		ObjectTitles:        []models.ObjectTitle{},
		ObjectTopics:        []models.ObjectTopic{},
	}

	childQueries := []struct {
		dest  any
		table string
	}{
		{&full.ObjectContributors, objectContributorsTable},
		{&full.ObjectDatasets, objectDatasetsTable},
		{&full.ObjectDates, objectDatesTable},
		{&full.ObjectDescriptions, objectDescriptionsTable},
		{&full.ObjectIdentifiers, objectIdentifiersTable},
		{&full.ObjectInstances, objectInstancesTable},
		{&full.ObjectRelationships, objectRelationshipsTable},
		{&full.ObjectRights, objectRightsTable},
		{&full.ObjectTitles, objectTitlesTable},
		{&full.ObjectTopics, objectTopicsTable},
	}
	for _, cq := range childQueries {
		if err := r.DB().SelectContext(ctx, cq.dest,
			"select * from "+cq.table+" where sd_oid = $1", sdOid); err != nil {
			r.logger.WithContext(ctx).WithError(err).Errorf("failed to read %s for full object", cq.table)
			return nil, ServerError("failed to assemble full object")
		}
	}
	return &full, nil
}

// DeleteFullObject removes every attribute record, scrubs the object out
// of any process that references it, and finally removes the core record,
// all in one transaction. Relationship edges are removed in both
// directions. The returned count reflects only the core record.
func (r *ObjectRepository) DeleteFullObject(ctx context.Context, sdOid string) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.DeleteFullObject")
	defer span.End()

	outerCtx := ctx
	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return 0, ServerError("failed to delete full object")
	}
	defer database.CloseTx(outerCtx, tx)

	attributeTables := []string{
		objectContributorsTable, objectDatasetsTable, objectDatesTable,
		objectDescriptionsTable, objectIdentifiersTable, objectInstancesTable,
		objectRelationshipsTable, objectRightsTable, objectTitlesTable,
		objectTopicsTable,
	}
	for _, table := range attributeTables {
		if _, err = r.auditedDeleteObject(ctx, tx, table, sdOid); err != nil {
			return 0, err
		}
	}
	if _, err = tx.ExecContext(ctx,
		"delete from mdr.object_relationships where target_sd_oid = $1", sdOid); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete inbound relationships")
		return 0, ServerError("failed to delete full object")
	}

	processTables := []string{
		"rms.dtp_prereqs", "rms.dtp_datasets", "rms.dtp_objects",
		"rms.dup_prereqs", "rms.dup_objects",
	}
	for _, table := range processTables {
		if _, err = r.auditedDeleteObject(ctx, tx, table, sdOid); err != nil {
			return 0, err
		}
	}

	count, err := r.auditedDeleteObject(ctx, tx, dataObjectsTable, sdOid)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(outerCtx); err != nil {
		return 0, ServerError("failed to delete full object")
	}

	r.logger.WithContext(ctx).WithField("sd_oid", sdOid).Info("Deleted full object aggregate")
	return count, nil
}
