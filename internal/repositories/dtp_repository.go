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
	dtpsTable       = "rms.dtps"
	dtasTable       = "rms.dtas"
	dtpStudiesTable = "rms.dtp_studies"
	dtpObjectsTable = "rms.dtp_objects"
	dtpDatasetsTable = "rms.dtp_datasets"
	dtpPrereqsTable = "rms.dtp_prereqs"
	dtpNotesTable   = "rms.dtp_notes"
	dtpPeopleTable  = "rms.dtp_people"
)

// DtpAttribute discriminates the child tables of a transfer process.
type DtpAttribute int

const (
	DtpAttributeStudy DtpAttribute = iota
	DtpAttributeObject
	DtpAttributeDataset
	DtpAttributePrereq
	DtpAttributeNote
	DtpAttributePerson
	DtpAttributeDta
)

// TableName maps the attribute to its backing table.
func (a DtpAttribute) TableName() string {
	switch a {
	case DtpAttributeStudy:
		return dtpStudiesTable
	case DtpAttributeObject:
		return dtpObjectsTable
	case DtpAttributeDataset:
		return dtpDatasetsTable
	case DtpAttributePrereq:
		return dtpPrereqsTable
	case DtpAttributeNote:
		return dtpNotesTable
	case DtpAttributePerson:
		return dtpPeopleTable
	case DtpAttributeDta:
		return dtasTable
	}
	return ""
}

var dtpStruct = database.NewStruct(new(models.Dtp))

// dtpEntrySelect is the listing join, resolving org and status names.
const dtpEntrySelect = `select d.id, g.default_name as org_name,
		d.display_name, s.name as status_name
		from rms.dtps d
		left join lup.organisations g on d.org_id = g.id
		left join lup.dtp_status_types s on d.status_id = s.id`

// dtpOutSelect is the single-record display join.
const dtpOutSelect = `select d.id, d.org_id, g.default_name as org_name,
		d.display_name, d.status_id, s.name as status_name,
		d.initial_contact_date, d.set_up_completed, d.md_access_granted,
		d.md_complete_date, d.dta_agreed_date, d.upload_access_requested,
		d.upload_access_confirmed, d.uploads_complete, d.qc_checks_completed,
		d.md_integrated_with_mdr, d.availability_requested, d.availability_confirmed
		from rms.dtps d
		left join lup.organisations g on d.org_id = g.id
		left join lup.dtp_status_types s on d.status_id = s.id`

// DtpRepository handles database operations for transfer processes and
// their child records.
type DtpRepository struct {
	*Repository
}

// NewDtpRepository creates a new transfer process repository
func NewDtpRepository(db database.DB, logger ectologger.Logger) *DtpRepository {
	return &DtpRepository{
		Repository: NewRepository(db, logger),
	}
}

/* Existence checks */

// DtpExists reports whether a transfer process record exists.
func (r *DtpRepository) DtpExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.DB().GetContext(ctx, &exists,
		"select exists (select 1 from rms.dtps where id = $1)", id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed dtp existence check")
		return false, ServerError("failed dtp existence check")
	}
	return exists, nil
}

// DtpAttributeExists reports whether a child record exists under the
// given transfer process.
func (r *DtpRepository) DtpAttributeExists(ctx context.Context, dtpID int, attr DtpAttribute, id int) (bool, error) {
	var exists bool
	query := "select exists (select 1 from " + attr.TableName() + " where dtp_id = $1 and id = $2)"
	err := r.DB().GetContext(ctx, &exists, query, dtpID, id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed dtp attribute existence check")
		return false, ServerError("failed dtp attribute existence check")
	}
	return exists, nil
}

// DtpDtaExists reports whether the process already has an agreement.
func (r *DtpRepository) DtpDtaExists(ctx context.Context, dtpID int) (bool, error) {
	var exists bool
	err := r.DB().GetContext(ctx, &exists,
		"select exists (select 1 from rms.dtas where dtp_id = $1)", dtpID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed dta existence check")
		return false, ServerError("failed dta existence check")
	}
	return exists, nil
}

// DtpObjectExists reports whether the object participates in the process.
func (r *DtpRepository) DtpObjectExists(ctx context.Context, dtpID int, sdOid string) (bool, error) {
	var exists bool
	err := r.DB().GetContext(ctx, &exists,
		"select exists (select 1 from rms.dtp_objects where dtp_id = $1 and sd_oid = $2)", dtpID, sdOid)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed dtp object existence check")
		return false, ServerError("failed dtp object existence check")
	}
	return exists, nil
}

// DtpObjectAttributeExists reports whether a per-object child record exists
// under the given process and object pair.
func (r *DtpRepository) DtpObjectAttributeExists(ctx context.Context, dtpID int, sdOid string, attr DtpAttribute, id int) (bool, error) {
	var exists bool
	query := "select exists (select 1 from " + attr.TableName() + " where dtp_id = $1 and sd_oid = $2 and id = $3)"
	err := r.DB().GetContext(ctx, &exists, query, dtpID, sdOid, id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed dtp object attribute existence check")
		return false, ServerError("failed dtp object attribute existence check")
	}
	return exists, nil
}

/* DTP lists */

// GetAllDtps returns every transfer process record, newest first.
func (r *DtpRepository) GetAllDtps(ctx context.Context) ([]models.Dtp, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetAllDtps")
	defer span.End()

	sb := dtpStruct.SelectFrom(dtpsTable)
	sb.OrderBy("created_on").Desc()

	query, args := sb.Build()
	dtps := []models.Dtp{}
	if err := r.DB().SelectContext(ctx, &dtps, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtps")
		return nil, ServerError("failed to list dtps")
	}
	return dtps, nil
}

// GetAllDtpEntries returns every transfer process as a listing entry.
func (r *DtpRepository) GetAllDtpEntries(ctx context.Context) ([]models.DtpEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetAllDtpEntries")
	defer span.End()

	entries := []models.DtpEntry{}
	query := dtpEntrySelect + " order by d.created_on desc"
	if err := r.DB().SelectContext(ctx, &entries, query); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtp entries")
		return nil, ServerError("failed to list dtp entries")
	}
	return entries, nil
}

// GetPaginatedDtps returns one page of transfer process records.
func (r *DtpRepository) GetPaginatedDtps(ctx context.Context, pageNum, pageSize int) ([]models.Dtp, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetPaginatedDtps")
	defer span.End()

	sb := dtpStruct.SelectFrom(dtpsTable)
	sb.OrderBy("created_on").Desc()
	sb.Offset(pageOffset(pageNum, pageSize)).Limit(pageSize)

	query, args := sb.Build()
	dtps := []models.Dtp{}
	if err := r.DB().SelectContext(ctx, &dtps, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list paginated dtps")
		return nil, ServerError("failed to list paginated dtps")
	}
	return dtps, nil
}

// GetPaginatedDtpEntries returns one page of listing entries.
func (r *DtpRepository) GetPaginatedDtpEntries(ctx context.Context, pageNum, pageSize int) ([]models.DtpEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetPaginatedDtpEntries")
	defer span.End()

	entries := []models.DtpEntry{}
	query := dtpEntrySelect + " order by d.created_on desc offset $1 limit $2"
	if err := r.DB().SelectContext(ctx, &entries, query, pageOffset(pageNum, pageSize), pageSize); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list paginated dtp entries")
		return nil, ServerError("failed to list paginated dtp entries")
	}
	return entries, nil
}

// GetFilteredDtps returns records whose display name contains the filter.
func (r *DtpRepository) GetFilteredDtps(ctx context.Context, titleFilter string) ([]models.Dtp, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetFilteredDtps")
	defer span.End()

	sb := dtpStruct.SelectFrom(dtpsTable)
	sb.Where(sb.ILike("display_name", "%"+titleFilter+"%"))
	sb.OrderBy("created_on").Desc()

	query, args := sb.Build()
	dtps := []models.Dtp{}
	if err := r.DB().SelectContext(ctx, &dtps, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list filtered dtps")
		return nil, ServerError("failed to list filtered dtps")
	}
	return dtps, nil
}

// GetFilteredDtpEntries returns listing entries whose display name contains
// the filter.
func (r *DtpRepository) GetFilteredDtpEntries(ctx context.Context, titleFilter string) ([]models.DtpEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetFilteredDtpEntries")
	defer span.End()

	entries := []models.DtpEntry{}
	query := dtpEntrySelect + " where d.display_name ilike $1 order by d.created_on desc"
	if err := r.DB().SelectContext(ctx, &entries, query, "%"+titleFilter+"%"); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list filtered dtp entries")
		return nil, ServerError("failed to list filtered dtp entries")
	}
	return entries, nil
}

// GetPaginatedFilteredDtps combines the title filter with pagination.
func (r *DtpRepository) GetPaginatedFilteredDtps(ctx context.Context, titleFilter string, pageNum, pageSize int) ([]models.Dtp, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetPaginatedFilteredDtps")
	defer span.End()

	sb := dtpStruct.SelectFrom(dtpsTable)
	sb.Where(sb.ILike("display_name", "%"+titleFilter+"%"))
	sb.OrderBy("created_on").Desc()
	sb.Offset(pageOffset(pageNum, pageSize)).Limit(pageSize)

	query, args := sb.Build()
	dtps := []models.Dtp{}
	if err := r.DB().SelectContext(ctx, &dtps, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list paginated filtered dtps")
		return nil, ServerError("failed to list paginated filtered dtps")
	}
	return dtps, nil
}

// GetPaginatedFilteredDtpEntries combines the title filter with pagination
// for listing entries.
func (r *DtpRepository) GetPaginatedFilteredDtpEntries(ctx context.Context, titleFilter string, pageNum, pageSize int) ([]models.DtpEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetPaginatedFilteredDtpEntries")
	defer span.End()

	entries := []models.DtpEntry{}
	query := dtpEntrySelect + " where d.display_name ilike $1 order by d.created_on desc offset $2 limit $3"
	if err := r.DB().SelectContext(ctx, &entries, query, "%"+titleFilter+"%", pageOffset(pageNum, pageSize), pageSize); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list paginated filtered dtp entries")
		return nil, ServerError("failed to list paginated filtered dtp entries")
	}
	return entries, nil
}

// GetRecentDtps returns the n most recently created records.
func (r *DtpRepository) GetRecentDtps(ctx context.Context, n int) ([]models.Dtp, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetRecentDtps")
	defer span.End()

	sb := dtpStruct.SelectFrom(dtpsTable)
	sb.OrderBy("created_on").Desc()
	sb.Limit(n)

	query, args := sb.Build()
	dtps := []models.Dtp{}
	if err := r.DB().SelectContext(ctx, &dtps, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list recent dtps")
		return nil, ServerError("failed to list recent dtps")
	}
	return dtps, nil
}

// GetRecentDtpEntries returns the n most recent listing entries.
func (r *DtpRepository) GetRecentDtpEntries(ctx context.Context, n int) ([]models.DtpEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetRecentDtpEntries")
	defer span.End()

	entries := []models.DtpEntry{}
	query := dtpEntrySelect + " order by d.created_on desc limit $1"
	if err := r.DB().SelectContext(ctx, &entries, query, n); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list recent dtp entries")
		return nil, ServerError("failed to list recent dtp entries")
	}
	return entries, nil
}

// GetDtpsByOrg returns records for a single organisation.
func (r *DtpRepository) GetDtpsByOrg(ctx context.Context, orgID int) ([]models.Dtp, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetDtpsByOrg")
	defer span.End()

	sb := dtpStruct.SelectFrom(dtpsTable)
	sb.Where(sb.Equal("org_id", orgID))
	sb.OrderBy("created_on").Desc()

	query, args := sb.Build()
	dtps := []models.Dtp{}
	if err := r.DB().SelectContext(ctx, &dtps, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtps by org")
		return nil, ServerError("failed to list dtps by org")
	}
	return dtps, nil
}

// GetDtpEntriesByOrg returns listing entries for a single organisation.
func (r *DtpRepository) GetDtpEntriesByOrg(ctx context.Context, orgID int) ([]models.DtpEntry, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetDtpEntriesByOrg")
	defer span.End()

	entries := []models.DtpEntry{}
	query := dtpEntrySelect + " where d.org_id = $1 order by d.created_on desc"
	if err := r.DB().SelectContext(ctx, &entries, query, orgID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtp entries by org")
		return nil, ServerError("failed to list dtp entries by org")
	}
	return entries, nil
}

/* DTP statistics */

// GetTotalDtps returns the number of transfer processes.
func (r *DtpRepository) GetTotalDtps(ctx context.Context) (int, error) {
	var total int
	if err := r.DB().GetContext(ctx, &total, "select count(*) from rms.dtps"); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count dtps")
		return 0, ServerError("failed to count dtps")
	}
	return total, nil
}

// GetTotalFilteredDtps returns the number of records matching the filter.
func (r *DtpRepository) GetTotalFilteredDtps(ctx context.Context, titleFilter string) (int, error) {
	var total int
	err := r.DB().GetContext(ctx, &total,
		"select count(*) from rms.dtps where display_name ilike $1", "%"+titleFilter+"%")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count filtered dtps")
		return 0, ServerError("failed to count filtered dtps")
	}
	return total, nil
}

// GetCompletedDtps returns the number of processes whose final milestone
// (availability confirmed) has been reached.
func (r *DtpRepository) GetCompletedDtps(ctx context.Context) (int, error) {
	var total int
	err := r.DB().GetContext(ctx, &total,
		"select count(*) from rms.dtps where availability_confirmed is not null")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count completed dtps")
		return 0, ServerError("failed to count completed dtps")
	}
	return total, nil
}

// GetDtpsByStatus returns per-status record counts.
func (r *DtpRepository) GetDtpsByStatus(ctx context.Context) ([]models.StatByType, error) {
	stats := []models.StatByType{}
	err := r.DB().SelectContext(ctx, &stats,
		"select status_id as stat_type, count(id) as stat_value from rms.dtps group by status_id")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to group dtps by status")
		return nil, ServerError("failed to group dtps by status")
	}
	return stats, nil
}

/* DTP record data */

// GetDtp returns one transfer process record.
func (r *DtpRepository) GetDtp(ctx context.Context, id int) (*models.Dtp, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetDtp")
	defer span.End()

	sb := dtpStruct.SelectFrom(dtpsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var dtp models.Dtp
	err := r.DB().GetContext(ctx, &dtp, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dtp")
		return nil, ServerError("failed to get dtp")
	}
	return &dtp, nil
}

// GetOutDtp returns one record in display form, with names resolved.
func (r *DtpRepository) GetOutDtp(ctx context.Context, id int) (*models.DtpOut, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetOutDtp")
	defer span.End()

	var out models.DtpOut
	err := r.DB().GetContext(ctx, &out, dtpOutSelect+" where d.id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dtp display record")
		return nil, ServerError("failed to get dtp display record")
	}
	return &out, nil
}

// CreateDtp inserts a new transfer process record and returns it as stored.
func (r *DtpRepository) CreateDtp(ctx context.Context, dtp *models.Dtp) (*models.Dtp, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.CreateDtp")
	defer span.End()

	editor := EditorName(ctx)
	ib := database.NewInsertBuilder()
	ib.InsertInto(dtpsTable).
		Cols("org_id", "display_name", "status_id", "initial_contact_date",
			"set_up_completed", "md_access_granted", "md_complete_date", "dta_agreed_date",
			"upload_access_requested", "upload_access_confirmed", "uploads_complete",
			"qc_checks_completed", "md_integrated_with_mdr",
			"availability_requested", "availability_confirmed", "last_edited_by").
		Values(dtp.OrgID, dtp.DisplayName, dtp.StatusID, dtp.InitialContactDate,
			dtp.SetUpCompleted, dtp.MdAccessGranted, dtp.MdCompleteDate, dtp.DtaAgreedDate,
			dtp.UploadAccessRequested, dtp.UploadAccessConfirmed, dtp.UploadsComplete,
			dtp.QcChecksCompleted, dtp.MdIntegratedWithMdr,
			dtp.AvailabilityRequested, dtp.AvailabilityConfirmed, editor).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dtp")
		return nil, ServerError("failed to create dtp")
	}

	r.logger.WithContext(ctx).WithField("dtp_id", id).Debugf("Created %s", dtpsTable)
	return r.GetDtp(ctx, id)
}

// UpdateDtp rewrites an existing transfer process record.
func (r *DtpRepository) UpdateDtp(ctx context.Context, dtp *models.Dtp) (*models.Dtp, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.UpdateDtp")
	defer span.End()

	editor := EditorName(ctx)
	ub := database.NewUpdateBuilder()
	ub.Update(dtpsTable).
		Set(
			ub.Assign("org_id", dtp.OrgID),
			ub.Assign("display_name", dtp.DisplayName),
			ub.Assign("status_id", dtp.StatusID),
			ub.Assign("initial_contact_date", dtp.InitialContactDate),
			ub.Assign("set_up_completed", dtp.SetUpCompleted),
			ub.Assign("md_access_granted", dtp.MdAccessGranted),
			ub.Assign("md_complete_date", dtp.MdCompleteDate),
			ub.Assign("dta_agreed_date", dtp.DtaAgreedDate),
			ub.Assign("upload_access_requested", dtp.UploadAccessRequested),
			ub.Assign("upload_access_confirmed", dtp.UploadAccessConfirmed),
			ub.Assign("uploads_complete", dtp.UploadsComplete),
			ub.Assign("qc_checks_completed", dtp.QcChecksCompleted),
			ub.Assign("md_integrated_with_mdr", dtp.MdIntegratedWithMdr),
			ub.Assign("availability_requested", dtp.AvailabilityRequested),
			ub.Assign("availability_confirmed", dtp.AvailabilityConfirmed),
			ub.Assign("last_edited_by", editor),
		).
		Where(ub.Equal("id", dtp.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dtp")
		return nil, ServerError("failed to update dtp")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dtp %d does not exist", dtp.ID)
	}
	return r.GetDtp(ctx, dtp.ID)
}

// DeleteDtp removes the core record only, recording the editor first.
// Returns the number of core rows removed.
func (r *DtpRepository) DeleteDtp(ctx context.Context, id int) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.DeleteDtp")
	defer span.End()

	outerCtx := ctx
	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return 0, ServerError("failed to delete dtp")
	}
	defer database.CloseTx(outerCtx, tx)

	count, err := r.auditedDelete(ctx, tx, dtpsTable, "id", id)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(outerCtx); err != nil {
		return 0, ServerError("failed to delete dtp")
	}
	return count, nil
}

// auditedDelete stamps last_edited_by on the matching rows, then deletes
// them, returning the number of rows removed.
func (r *DtpRepository) auditedDelete(ctx context.Context, tx database.Tx, table, keyCol string, key any) (int, error) {
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

// GetFullDtp assembles the complete aggregate for one transfer process.
// Child collections are returned empty, never nil.
func (r *DtpRepository) GetFullDtp(ctx context.Context, id int) (*models.FullDtp, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.GetFullDtp")
	defer span.End()

	core, err := r.GetDtp(ctx, id)
	if err != nil {
		return nil, err
	}

	full := models.FullDtp{
		CoreDtp:     *core,
		Dtas:        []models.Dta{},
		DtpStudies:  []models.DtpStudy{},
		DtpObjects:  []models.DtpObject{},
		DtpPrereqs:  []models.DtpPrereq{},
		DtpDatasets: []models.DtpDataset{},
		DtpNotes:    []models.DtpNote{},
		DtpPeople:   []models.DtpPerson{},
	}

	childQueries := []struct {
		dest  any
		table string
	}{
		{&full.Dtas, dtasTable},
		{&full.DtpStudies, dtpStudiesTable},
		{&full.DtpObjects, dtpObjectsTable},
		{&full.DtpPrereqs, dtpPrereqsTable},
		{&full.DtpDatasets, dtpDatasetsTable},
		{&full.DtpNotes, dtpNotesTable},
		{&full.DtpPeople, dtpPeopleTable},
	}
	for _, cq := range childQueries {
		if err := r.DB().SelectContext(ctx, cq.dest,
			"select * from "+cq.table+" where dtp_id = $1", id); err != nil {
			r.logger.WithContext(ctx).WithError(err).Errorf("failed to read %s for full dtp", cq.table)
			return nil, ServerError("failed to assemble full dtp")
		}
	}
	return &full, nil
}

// DeleteFullDtp removes every child record and then the core record, in
// one transaction, children first. The returned count reflects only the
// core record.
func (r *DtpRepository) DeleteFullDtp(ctx context.Context, id int) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.DeleteFullDtp")
	defer span.End()

	outerCtx := ctx
	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return 0, ServerError("failed to delete full dtp")
	}
	defer database.CloseTx(outerCtx, tx)

	childTables := []string{
		dtasTable, dtpStudiesTable, dtpObjectsTable,
		dtpPrereqsTable, dtpDatasetsTable, dtpNotesTable, dtpPeopleTable,
	}
	for _, table := range childTables {
		if _, err = r.auditedDelete(ctx, tx, table, "dtp_id", id); err != nil {
			return 0, err
		}
	}

	count, err := r.auditedDelete(ctx, tx, dtpsTable, "id", id)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(outerCtx); err != nil {
		return 0, ServerError("failed to delete full dtp")
	}

	r.logger.WithContext(ctx).WithField("dtp_id", id).Info("Deleted full dtp aggregate")
	return count, nil
}
