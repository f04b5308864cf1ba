package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Gobusters/ectologger"

	"github.com/ecrin-rms/rmsbe/pkg/database"
	"github.com/ecrin-rms/rmsbe/pkg/models"
	"github.com/ecrin-rms/rmsbe/pkg/tracing"
)

const (
	dupsTable       = "rms.dups"
	duasTable       = "rms.duas"
	dupStudiesTable = "rms.dup_studies"
	dupObjectsTable = "rms.dup_objects"
	dupPrereqsTable = "rms.dup_prereqs"
	dupNotesTable   = "rms.dup_notes"
	dupPeopleTable  = "rms.dup_people"
	dupSecUseTable  = "rms.dup_sec_use"
)

// DupAttribute discriminates the child tables of a use process.
type DupAttribute int

const (
	DupAttributeStudy DupAttribute = iota
	DupAttributeObject
	DupAttributePrereq
	DupAttributeNote
	DupAttributePerson
	DupAttributeDua
	DupAttributeSecUse
)

// TableName maps the attribute to its backing table.
func (a DupAttribute) TableName() string {
	switch a {
	case DupAttributeStudy:
		return dupStudiesTable
	case DupAttributeObject:
		return dupObjectsTable
	case DupAttributePrereq:
		return dupPrereqsTable
	case DupAttributeNote:
		return dupNotesTable
	case DupAttributePerson:
		return dupPeopleTable
	case DupAttributeDua:
		return duasTable
	case DupAttributeSecUse:
		return dupSecUseTable
	}
	return ""
}

var dupStruct = database.NewStruct(new(models.Dup))

const dupEntrySelect = `select d.id, g.default_name as org_name,
		d.display_name, s.name as status_name
		from rms.dups d
		left join lup.organisations g on d.org_id = g.id
		left join lup.dup_status_types s on d.status_id = s.id`

const dupOutSelect = `select d.id, d.org_id, g.default_name as org_name,
		d.display_name, d.status_id, s.name as status_name,
		d.initial_contact_date, d.set_up_completed, d.prereqs_met,
		d.dua_agreed_date, d.availability_requested, d.availability_confirmed,
		d.access_confirmed
		from rms.dups d
		left join lup.organisations g on d.org_id = g.id
		left join lup.dup_status_types s on d.status_id = s.id`

// DupRepository handles database operations for use processes and their
// child records.
type DupRepository struct {
	*Repository
}

// NewDupRepository creates a new use process repository
func NewDupRepository(db database.DB, logger ectologger.Logger) *DupRepository {
	return &DupRepository{
		Repository: NewRepository(db, logger),
	}
}

/* Existence checks */

// DupExists reports whether a use process record exists.
func (r *DupRepository) DupExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.DB().GetContext(ctx, &exists,
		"select exists (select 1 from rms.dups where id = $1)", id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed dup existence check")
		return false, ServerError("failed dup existence check")
	}
	return exists, nil
}

// DupAttributeExists reports whether a child record exists under the
// given use process.
func (r *DupRepository) DupAttributeExists(ctx context.Context, dupID int, attr DupAttribute, id int) (bool, error) {
	var exists bool
	query := "select exists (select 1 from " + attr.TableName() + " where dup_id = $1 and id = $2)"
	err := r.DB().GetContext(ctx, &exists, query, dupID, id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed dup attribute existence check")
		return false, ServerError("failed dup attribute existence check")
	}
	return exists, nil
}

// DupDuaExists reports whether the process already has an agreement.
func (r *DupRepository) DupDuaExists(ctx context.Context, dupID int) (bool, error) {
	var exists bool
	err := r.DB().GetContext(ctx, &exists,
		"select exists (select 1 from rms.duas where dup_id = $1)", dupID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed dua existence check")
		return false, ServerError("failed dua existence check")
	}
	return exists, nil
}

// DupObjectExists reports whether the object participates in the process.
func (r *DupRepository) DupObjectExists(ctx context.Context, dupID int, sdOid string) (bool, error) {
	var exists bool
	err := r.DB().GetContext(ctx, &exists,
		"select exists (select 1 from rms.dup_objects where dup_id = $1 and sd_oid = $2)", dupID, sdOid)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed dup object existence check")
		return false, ServerError("failed dup object existence check")
	}
	return exists, nil
}

// DupObjectAttributeExists reports whether a per-object child record exists
// under the given process and object pair.
func (r *DupRepository) DupObjectAttributeExists(ctx context.Context, dupID int, sdOid string, attr DupAttribute, id int) (bool, error) {
	var exists bool
	query := "select exists (select 1 from " + attr.TableName() + " where dup_id = $1 and sd_oid = $2 and id = $3)"
	err := r.DB().GetContext(ctx, &exists, query, dupID, sdOid, id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed dup object attribute existence check")
		return false, ServerError("failed dup object attribute existence check")
	}
	return exists, nil
}

/* DUP lists */

// GetAllDups returns every use process record, newest first.
func (r *DupRepository) GetAllDups(ctx context.Context) ([]models.Dup, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetAllDups")
	defer span.End()

	sb := dupStruct.SelectFrom(dupsTable)
	sb.OrderBy("created_on").Desc()

	query, args := sb.Build()
	dups := []models.Dup{}
	if err := r.DB().SelectContext(ctx, &dups, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dups")
		return nil, ServerError("failed to list dups")
	}
	return dups, nil
}

// GetAllDupEntries returns every use process as a listing entry.
func (r *DupRepository) GetAllDupEntries(ctx context.Context) ([]models.DupEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetAllDupEntries")
	defer span.End()

	entries := []models.DupEntry{}
	query := dupEntrySelect + " order by d.created_on desc"
	if err := r.DB().SelectContext(ctx, &entries, query); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dup entries")
		return nil, ServerError("failed to list dup entries")
	}
	return entries, nil
}

// GetPaginatedDups returns one page of use process records.
func (r *DupRepository) GetPaginatedDups(ctx context.Context, pageNum, pageSize int) ([]models.Dup, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetPaginatedDups")
	defer span.End()

	sb := dupStruct.SelectFrom(dupsTable)
	sb.OrderBy("created_on").Desc()
	sb.Offset(pageOffset(pageNum, pageSize)).Limit(pageSize)

	query, args := sb.Build()
	dups := []models.Dup{}
	if err := r.DB().SelectContext(ctx, &dups, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list paginated dups")
		return nil, ServerError("failed to list paginated dups")
	}
	return dups, nil
}

// GetPaginatedDupEntries returns one page of listing entries.
func (r *DupRepository) GetPaginatedDupEntries(ctx context.Context, pageNum, pageSize int) ([]models.DupEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetPaginatedDupEntries")
	defer span.End()

	entries := []models.DupEntry{}
	query := dupEntrySelect + " order by d.created_on desc offset $1 limit $2"
	if err := r.DB().SelectContext(ctx, &entries, query, pageOffset(pageNum, pageSize), pageSize); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list paginated dup entries")
		return nil, ServerError("failed to list paginated dup entries")
	}
	return entries, nil
}

// GetFilteredDups returns records whose display name contains the filter.
func (r *DupRepository) GetFilteredDups(ctx context.Context, titleFilter string) ([]models.Dup, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetFilteredDups")
	defer span.End()

	sb := dupStruct.SelectFrom(dupsTable)
	sb.Where(sb.ILike("display_name", "%"+titleFilter+"%"))
	sb.OrderBy("created_on").Desc()

	query, args := sb.Build()
	dups := []models.Dup{}
	if err := r.DB().SelectContext(ctx, &dups, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list filtered dups")
		return nil, ServerError("failed to list filtered dups")
	}
	return dups, nil
}

// GetFilteredDupEntries returns listing entries whose display name contains
// the filter.
func (r *DupRepository) GetFilteredDupEntries(ctx context.Context, titleFilter string) ([]models.DupEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetFilteredDupEntries")
	defer span.End()

	entries := []models.DupEntry{}
	query := dupEntrySelect + " where d.display_name ilike $1 order by d.created_on desc"
	if err := r.DB().SelectContext(ctx, &entries, query, "%"+titleFilter+"%"); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list filtered dup entries")
		return nil, ServerError("failed to list filtered dup entries")
	}
	return entries, nil
}

// GetPaginatedFilteredDups combines the title filter with pagination.
func (r *DupRepository) GetPaginatedFilteredDups(ctx context.Context, titleFilter string, pageNum, pageSize int) ([]models.Dup, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetPaginatedFilteredDups")
	defer span.End()

	sb := dupStruct.SelectFrom(dupsTable)
	sb.Where(sb.ILike("display_name", "%"+titleFilter+"%"))
	sb.OrderBy("created_on").Desc()
	sb.Offset(pageOffset(pageNum, pageSize)).Limit(pageSize)

	query, args := sb.Build()
	dups := []models.Dup{}
	if err := r.DB().SelectContext(ctx, &dups, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list paginated filtered dups")
		return nil, ServerError("failed to list paginated filtered dups")
	}
	return dups, nil
}

// GetPaginatedFilteredDupEntries combines the title filter with pagination
// for listing entries.
func (r *DupRepository) GetPaginatedFilteredDupEntries(ctx context.Context, titleFilter string, pageNum, pageSize int) ([]models.DupEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetPaginatedFilteredDupEntries")
	defer span.End()

	entries := []models.DupEntry{}
	query := dupEntrySelect + " where d.display_name ilike $1 order by d.created_on desc offset $2 limit $3"
	if err := r.DB().SelectContext(ctx, &entries, query, "%"+titleFilter+"%", pageOffset(pageNum, pageSize), pageSize); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list paginated filtered dup entries")
		return nil, ServerError("failed to list paginated filtered dup entries")
	}
	return entries, nil
}

// GetRecentDups returns the n most recently created records.
func (r *DupRepository) GetRecentDups(ctx context.Context, n int) ([]models.Dup, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetRecentDups")
	defer span.End()

	sb := dupStruct.SelectFrom(dupsTable)
	sb.OrderBy("created_on").Desc()
	sb.Limit(n)

	query, args := sb.Build()
	dups := []models.Dup{}
	if err := r.DB().SelectContext(ctx, &dups, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list recent dups")
		return nil, ServerError("failed to list recent dups")
	}
	return dups, nil
}

// GetRecentDupEntries returns the n most recent listing entries.
func (r *DupRepository) GetRecentDupEntries(ctx context.Context, n int) ([]models.DupEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetRecentDupEntries")
	defer span.End()

	entries := []models.DupEntry{}
	query := dupEntrySelect + " order by d.created_on desc limit $1"
	if err := r.DB().SelectContext(ctx, &entries, query, n); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list recent dup entries")
		return nil, ServerError("failed to list recent dup entries")
	}
	return entries, nil
}

// GetDupsByOrg returns records for a single organisation.
func (r *DupRepository) GetDupsByOrg(ctx context.Context, orgID int) ([]models.Dup, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetDupsByOrg")
	defer span.End()

	sb := dupStruct.SelectFrom(dupsTable)
	sb.Where(sb.Equal("org_id", orgID))
	sb.OrderBy("created_on").Desc()

	query, args := sb.Build()
	dups := []models.Dup{}
	if err := r.DB().SelectContext(ctx, &dups, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dups by org")
		return nil, ServerError("failed to list dups by org")
	}
	return dups, nil
}

// GetDupEntriesByOrg returns listing entries for a single organisation.
func (r *DupRepository) GetDupEntriesByOrg(ctx context.Context, orgID int) ([]models.DupEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetDupEntriesByOrg")
	defer span.End()

	entries := []models.DupEntry{}
	query := dupEntrySelect + " where d.org_id = $1 order by d.created_on desc"
	if err := r.DB().SelectContext(ctx, &entries, query, orgID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dup entries by org")
		return nil, ServerError("failed to list dup entries by org")
	}
	return entries, nil
}

/* DUP statistics */

// GetTotalDups returns the number of use processes.
func (r *DupRepository) GetTotalDups(ctx context.Context) (int, error) {
	var total int
	if err := r.DB().GetContext(ctx, &total, "select count(*) from rms.dups"); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count dups")
		return 0, ServerError("failed to count dups")
	}
	return total, nil
}

// GetTotalFilteredDups returns the number of records matching the filter.
func (r *DupRepository) GetTotalFilteredDups(ctx context.Context, titleFilter string) (int, error) {
	var total int
	err := r.DB().GetContext(ctx, &total,
		"select count(*) from rms.dups where display_name ilike $1", "%"+titleFilter+"%")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count filtered dups")
		return 0, ServerError("failed to count filtered dups")
	}
	return total, nil
}

// GetCompletedDups returns the number of processes whose final milestone
// (access confirmed) has been reached.
func (r *DupRepository) GetCompletedDups(ctx context.Context) (int, error) {
	var total int
	err := r.DB().GetContext(ctx, &total,
		"select count(*) from rms.dups where access_confirmed is not null")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count completed dups")
		return 0, ServerError("failed to count completed dups")
	}
	return total, nil
}

// GetDupsByStatus returns per-status record counts.
func (r *DupRepository) GetDupsByStatus(ctx context.Context) ([]models.StatByType, error) {
	stats := []models.StatByType{}
	err := r.DB().SelectContext(ctx, &stats,
		"select status_id as stat_type, count(id) as stat_value from rms.dups group by status_id")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to group dups by status")
		return nil, ServerError("failed to group dups by status")
	}
	return stats, nil
}

/* DUP record data */

// GetDup returns one use process record.
func (r *DupRepository) GetDup(ctx context.Context, id int) (*models.Dup, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetDup")
	defer span.End()

	sb := dupStruct.SelectFrom(dupsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var dup models.Dup
	err := r.DB().GetContext(ctx, &dup, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dup")
		return nil, ServerError("failed to get dup")
	}
	return &dup, nil
}

// GetOutDup returns one record in display form, with names resolved.
func (r *DupRepository) GetOutDup(ctx context.Context, id int) (*models.DupOut, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetOutDup")
	defer span.End()

	var out models.DupOut
	err := r.DB().GetContext(ctx, &out, dupOutSelect+" where d.id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dup display record")
		return nil, ServerError("failed to get dup display record")
	}
	return &out, nil
}

// CreateDup inserts a new use process record and returns it as stored.
func (r *DupRepository) CreateDup(ctx context.Context, dup *models.Dup) (*models.Dup, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.CreateDup")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(dupsTable).
		Cols("org_id", "display_name", "status_id", "initial_contact_date",
			"set_up_completed", "prereqs_met", "dua_agreed_date",
			"availability_requested", "availability_confirmed", "access_confirmed",
			"last_edited_by").
		Values(dup.OrgID, dup.DisplayName, dup.StatusID, dup.InitialContactDate,
			dup.SetUpCompleted, dup.PrereqsMet, dup.DuaAgreedDate,
			dup.AvailabilityRequested, dup.AvailabilityConfirmed, dup.AccessConfirmed,
			EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dup")
		return nil, ServerError("failed to create dup")
	}

	r.logger.WithContext(ctx).WithField("dup_id", id).Debugf("Created %s", dupsTable)
	return r.GetDup(ctx, id)
}

// UpdateDup rewrites an existing use process record.
func (r *DupRepository) UpdateDup(ctx context.Context, dup *models.Dup) (*models.Dup, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.UpdateDup")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(dupsTable).
		Set(
			ub.Assign("org_id", dup.OrgID),
			ub.Assign("display_name", dup.DisplayName),
			ub.Assign("status_id", dup.StatusID),
			ub.Assign("initial_contact_date", dup.InitialContactDate),
			ub.Assign("set_up_completed", dup.SetUpCompleted),
			ub.Assign("prereqs_met", dup.PrereqsMet),
			ub.Assign("dua_agreed_date", dup.DuaAgreedDate),
			ub.Assign("availability_requested", dup.AvailabilityRequested),
			ub.Assign("availability_confirmed", dup.AvailabilityConfirmed),
			ub.Assign("access_confirmed", dup.AccessConfirmed),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", dup.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dup")
		return nil, ServerError("failed to update dup")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dup %d does not exist", dup.ID)
	}
	return r.GetDup(ctx, dup.ID)
}

// DeleteDup removes the core record only, recording the editor first.
func (r *DupRepository) DeleteDup(ctx context.Context, id int) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.DeleteDup")
	defer span.End()

	outerCtx := ctx
	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return 0, ServerError("failed to delete dup")
	}
	defer database.CloseTx(outerCtx, tx)

	count, err := r.auditedDelete(ctx, tx, dupsTable, "id", id)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(outerCtx); err != nil {
		return 0, ServerError("failed to delete dup")
	}
	return count, nil
}

// auditedDelete stamps last_edited_by on the matching rows, then deletes
// them, returning the number of rows removed.
func (r *DupRepository) auditedDelete(ctx context.Context, tx database.Tx, table, keyCol string, key any) (int, error) {
	editor := EditorName(ctx)
	if _, err := tx.ExecContext(ctx,
		"update "+table+" set last_edited_by = $1 where "+keyCol+" = $2", editor, key); err != nil {
		r.logger.WithContext(ctx).WithError(err).Errorf("failed to audit delete from %s", table)
		return 0, ServerError("failed to delete record")
	}
	result, err := tx.ExecContext(ctx,
		"delete from "+table+" where "+keyCol+" = $1", key)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Errorf("failed to delete from %s", table)
		return 0, ServerError("failed to delete record")
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

/* Full aggregate */

// GetFullDup assembles the complete aggregate for one use process. Child
// collections are returned empty, never nil.
func (r *DupRepository) GetFullDup(ctx context.Context, id int) (*models.FullDup, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.GetFullDup")
	defer span.End()

	core, err := r.GetDup(ctx, id)
	if err != nil {
		return nil, err
	}

	full := models.FullDup{
		CoreDup:    *core,
		Duas:       []models.Dua{},
		DupStudies: []models.DupStudy{},
		DupObjects: []models.DupObject{},
		DupPrereqs: []models.DupPrereq{},
		DupNotes:   []models.DupNote{},
		DupPeople:  []models.DupPerson{},
		DupSecUses: []models.DupSecondaryUse{},
	}

	childQueries := []struct {
		dest  any
		table string
	}{
		{&full.Duas, duasTable},
		{&full.DupStudies, dupStudiesTable},
		{&full.DupObjects, dupObjectsTable},
		{&full.DupPrereqs, dupPrereqsTable},
		{&full.DupNotes, dupNotesTable},
		{&full.DupPeople, dupPeopleTable},
		{&full.DupSecUses, dupSecUseTable},
	}
	for _, cq := range childQueries {
		if err := r.DB().SelectContext(ctx, cq.dest,
			"select * from "+cq.table+" where dup_id = $1", id); err != nil {
			r.logger.WithContext(ctx).WithError(err).Errorf("failed to read %s for full dup", cq.table)
			return nil, ServerError("failed to assemble full dup")
		}
	}
	return &full, nil
}

// DeleteFullDup removes every child record and then the core record, in
// one transaction, children first. The returned count reflects only the
// core record.
func (r *DupRepository) DeleteFullDup(ctx context.Context, id int) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.DeleteFullDup")
	defer span.End()

	outerCtx := ctx
	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return 0, ServerError("failed to delete full dup")
	}
	defer database.CloseTx(outerCtx, tx)

	childTables := []string{
		duasTable, dupStudiesTable, dupObjectsTable,
		dupPrereqsTable, dupNotesTable, dupPeopleTable, dupSecUseTable,
	}
	for _, table := range childTables {
		if _, err = r.auditedDelete(ctx, tx, table, "dup_id", id); err != nil {
			return 0, err
		}
	}

	count, err := r.auditedDelete(ctx, tx, dupsTable, "id", id)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(outerCtx); err != nil {
		return 0, ServerError("failed to delete full dup")
	}

	r.logger.WithContext(ctx).WithField("dup_id", id).Info("Deleted full dup aggregate")
	return count, nil
}
