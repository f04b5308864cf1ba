package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ecrin-rms/rmsbe/pkg/database"
	"github.com/ecrin-rms/rmsbe/pkg/models"
	"github.com/ecrin-rms/rmsbe/pkg/tracing"
)

var (
	dtaStruct        = database.NewStruct(new(models.Dta))
	dtpStudyStruct   = database.NewStruct(new(models.DtpStudy))
	dtpObjectStruct  = database.NewStruct(new(models.DtpObject))
	dtpDatasetStruct = database.NewStruct(new(models.DtpDataset))
	dtpPrereqStruct  = database.NewStruct(new(models.DtpPrereq))
	dtpNoteStruct    = database.NewStruct(new(models.DtpNote))
	dtpPersonStruct  = database.NewStruct(new(models.DtpPerson))
)

/* DTP studies */

// GetAllDtpStudies lists the studies attached to a process.
func (r *DtpRepository) GetAllDtpStudies(ctx context.Context, dtpID int) ([]models.DtpStudy, error) {
	sb := dtpStudyStruct.SelectFrom(dtpStudiesTable)
	sb.Where(sb.Equal("dtp_id", dtpID))

	query, args := sb.Build()
	studies := []models.DtpStudy{}
	if err := r.DB().SelectContext(ctx, &studies, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtp studies")
		return nil, ServerError("failed to list dtp studies")
	}
	return studies, nil
}

const dtpStudyOutSelect = `select t.id, t.dtp_id, t.sd_sid,
		s.display_title as study_name,
		t.md_check_status_id, cs.name as md_check_status_name,
		t.md_check_date, t.md_check_by
		from rms.dtp_studies t
		left join mdr.studies s on t.sd_sid = s.sd_sid
		left join lup.check_status_types cs on t.md_check_status_id = cs.id`

// GetAllOutDtpStudies lists the studies in display form.
func (r *DtpRepository) GetAllOutDtpStudies(ctx context.Context, dtpID int) ([]models.DtpStudyOut, error) {
	studies := []models.DtpStudyOut{}
	if err := r.DB().SelectContext(ctx, &studies, dtpStudyOutSelect+" where t.dtp_id = $1", dtpID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtp study display records")
		return nil, ServerError("failed to list dtp study display records")
	}
	return studies, nil
}

// GetDtpStudy returns one study link record.
func (r *DtpRepository) GetDtpStudy(ctx context.Context, id int) (*models.DtpStudy, error) {
	sb := dtpStudyStruct.SelectFrom(dtpStudiesTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var study models.DtpStudy
	err := r.DB().GetContext(ctx, &study, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp study %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dtp study")
		return nil, ServerError("failed to get dtp study")
	}
	return &study, nil
}

// GetOutDtpStudy returns one study link in display form.
func (r *DtpRepository) GetOutDtpStudy(ctx context.Context, id int) (*models.DtpStudyOut, error) {
	var study models.DtpStudyOut
	err := r.DB().GetContext(ctx, &study, dtpStudyOutSelect+" where t.id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp study %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dtp study display record")
		return nil, ServerError("failed to get dtp study display record")
	}
	return &study, nil
}

// CreateDtpStudy attaches a study to a process.
func (r *DtpRepository) CreateDtpStudy(ctx context.Context, study *models.DtpStudy) (*models.DtpStudy, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.CreateDtpStudy")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(dtpStudiesTable).
		Cols("dtp_id", "sd_sid", "md_check_status_id", "md_check_date", "md_check_by", "last_edited_by").
		Values(study.DtpID, study.SdSid, study.MdCheckStatusID, study.MdCheckDate, study.MdCheckBy, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dtp study")
		return nil, ServerError("failed to create dtp study")
	}
	return r.GetDtpStudy(ctx, id)
}

// UpdateDtpStudy rewrites a study link record.
func (r *DtpRepository) UpdateDtpStudy(ctx context.Context, study *models.DtpStudy) (*models.DtpStudy, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.UpdateDtpStudy")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(dtpStudiesTable).
		Set(
			ub.Assign("sd_sid", study.SdSid),
			ub.Assign("md_check_status_id", study.MdCheckStatusID),
			ub.Assign("md_check_date", study.MdCheckDate),
			ub.Assign("md_check_by", study.MdCheckBy),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", study.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dtp study")
		return nil, ServerError("failed to update dtp study")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dtp study %d does not exist", study.ID)
	}
	return r.GetDtpStudy(ctx, study.ID)
}

// DeleteDtpStudy removes a study link record.
func (r *DtpRepository) DeleteDtpStudy(ctx context.Context, id int) (int, error) {
	return r.deleteDtpChild(ctx, dtpStudiesTable, id)
}

// deleteDtpChild performs an audited delete of a single child row by id.
func (r *DtpRepository) deleteDtpChild(ctx context.Context, table string, id int) (int, error) {
	outerCtx := ctx
	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return 0, ServerError("failed to delete record")
	}
	defer database.CloseTx(outerCtx, tx)

	count, err := r.auditedDelete(ctx, tx, table, "id", id)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(outerCtx); err != nil {
		return 0, ServerError("failed to delete record")
	}
	return count, nil
}

/* DTP objects */

// GetAllDtpObjects lists the objects attached to a process.
func (r *DtpRepository) GetAllDtpObjects(ctx context.Context, dtpID int) ([]models.DtpObject, error) {
	sb := dtpObjectStruct.SelectFrom(dtpObjectsTable)
	sb.Where(sb.Equal("dtp_id", dtpID))

	query, args := sb.Build()
	objects := []models.DtpObject{}
	if err := r.DB().SelectContext(ctx, &objects, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtp objects")
		return nil, ServerError("failed to list dtp objects")
	}
	return objects, nil
}

const dtpObjectOutSelect = `select t.id, t.dtp_id, t.sd_oid,
		b.display_title as object_name,
		t.is_dataset, t.access_type_id, act.name as access_type_name,
		t.download_allowed, t.access_details,
		t.embargo_requested, t.embargo_regime, t.embargo_still_applies,
		t.access_check_status_id, acs.name as access_check_status_name,
		t.access_check_date, t.access_check_by,
		t.md_check_status_id, mcs.name as md_check_status_name,
		t.md_check_date, t.md_check_by, t.notes
		from rms.dtp_objects t
		left join mdr.data_objects b on t.sd_oid = b.sd_oid
		left join lup.object_access_types act on t.access_type_id = act.id
		left join lup.check_status_types acs on t.access_check_status_id = acs.id
		left join lup.check_status_types mcs on t.md_check_status_id = mcs.id`

// GetAllOutDtpObjects lists the objects in display form.
func (r *DtpRepository) GetAllOutDtpObjects(ctx context.Context, dtpID int) ([]models.DtpObjectOut, error) {
	objects := []models.DtpObjectOut{}
	if err := r.DB().SelectContext(ctx, &objects, dtpObjectOutSelect+" where t.dtp_id = $1", dtpID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtp object display records")
		return nil, ServerError("failed to list dtp object display records")
	}
	return objects, nil
}

// GetDtpObject returns one object link record.
func (r *DtpRepository) GetDtpObject(ctx context.Context, id int) (*models.DtpObject, error) {
	sb := dtpObjectStruct.SelectFrom(dtpObjectsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var object models.DtpObject
	err := r.DB().GetContext(ctx, &object, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp object %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dtp object")
		return nil, ServerError("failed to get dtp object")
	}
	return &object, nil
}

// GetOutDtpObject returns one object link in display form.
func (r *DtpRepository) GetOutDtpObject(ctx context.Context, id int) (*models.DtpObjectOut, error) {
	var object models.DtpObjectOut
	err := r.DB().GetContext(ctx, &object, dtpObjectOutSelect+" where t.id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp object %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dtp object display record")
		return nil, ServerError("failed to get dtp object display record")
	}
	return &object, nil
}

// CreateDtpObject attaches an object to a process.
func (r *DtpRepository) CreateDtpObject(ctx context.Context, object *models.DtpObject) (*models.DtpObject, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.CreateDtpObject")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(dtpObjectsTable).
		Cols("dtp_id", "sd_oid", "is_dataset", "access_type_id", "download_allowed",
			"access_details", "embargo_requested", "embargo_regime", "embargo_still_applies",
			"access_check_status_id", "access_check_date", "access_check_by",
			"md_check_status_id", "md_check_date", "md_check_by", "notes", "last_edited_by").
		Values(object.DtpID, object.SdOid, object.IsDataset, object.AccessTypeID, object.DownloadAllowed,
			object.AccessDetails, object.EmbargoRequested, object.EmbargoRegime, object.EmbargoStillApplies,
			object.AccessCheckStatusID, object.AccessCheckDate, object.AccessCheckBy,
			object.MdCheckStatusID, object.MdCheckDate, object.MdCheckBy, object.Notes, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dtp object")
		return nil, ServerError("failed to create dtp object")
	}
	return r.GetDtpObject(ctx, id)
}

// UpdateDtpObject rewrites an object link record.
func (r *DtpRepository) UpdateDtpObject(ctx context.Context, object *models.DtpObject) (*models.DtpObject, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.UpdateDtpObject")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(dtpObjectsTable).
		Set(
			ub.Assign("sd_oid", object.SdOid),
			ub.Assign("is_dataset", object.IsDataset),
			ub.Assign("access_type_id", object.AccessTypeID),
			ub.Assign("download_allowed", object.DownloadAllowed),
			ub.Assign("access_details", object.AccessDetails),
			ub.Assign("embargo_requested", object.EmbargoRequested),
			ub.Assign("embargo_regime", object.EmbargoRegime),
			ub.Assign("embargo_still_applies", object.EmbargoStillApplies),
			ub.Assign("access_check_status_id", object.AccessCheckStatusID),
			ub.Assign("access_check_date", object.AccessCheckDate),
			ub.Assign("access_check_by", object.AccessCheckBy),
			ub.Assign("md_check_status_id", object.MdCheckStatusID),
			ub.Assign("md_check_date", object.MdCheckDate),
			ub.Assign("md_check_by", object.MdCheckBy),
			ub.Assign("notes", object.Notes),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", object.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dtp object")
		return nil, ServerError("failed to update dtp object")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dtp object %d does not exist", object.ID)
	}
	return r.GetDtpObject(ctx, object.ID)
}

// DeleteDtpObject removes an object link record.
func (r *DtpRepository) DeleteDtpObject(ctx context.Context, id int) (int, error) {
	return r.deleteDtpChild(ctx, dtpObjectsTable, id)
}

/* DTAs */

// GetDta returns the agreement for a process, fetched by the parent id.
func (r *DtpRepository) GetDta(ctx context.Context, dtpID int) (*models.Dta, error) {
	sb := dtaStruct.SelectFrom(dtasTable)
	sb.Where(sb.Equal("dtp_id", dtpID))

	query, args := sb.Build()
	var dta models.Dta
	err := r.DB().GetContext(ctx, &dta, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp %d has no dta", dtpID)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dta")
		return nil, ServerError("failed to get dta")
	}
	return &dta, nil
}

const dtaOutSelect = `select t.id, t.dtp_id, t.conforms_to_default, t.variations,
		t.dta_file_path,
		t.repo_signatory_1, rs1.full_name as repo_signatory_1_name,
		t.repo_signatory_2, rs2.full_name as repo_signatory_2_name,
		t.provider_signatory_1, ps1.full_name as provider_signatory_1_name,
		t.provider_signatory_2, ps2.full_name as provider_signatory_2_name,
		t.notes
		from rms.dtas t
		left join rms.people rs1 on t.repo_signatory_1 = rs1.id
		left join rms.people rs2 on t.repo_signatory_2 = rs2.id
		left join rms.people ps1 on t.provider_signatory_1 = ps1.id
		left join rms.people ps2 on t.provider_signatory_2 = ps2.id`

// GetOutDta returns the agreement in display form, signatory names resolved.
func (r *DtpRepository) GetOutDta(ctx context.Context, dtpID int) (*models.DtaOut, error) {
	var dta models.DtaOut
	err := r.DB().GetContext(ctx, &dta, dtaOutSelect+" where t.dtp_id = $1", dtpID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp %d has no dta", dtpID)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dta display record")
		return nil, ServerError("failed to get dta display record")
	}
	return &dta, nil
}

// CreateDta attaches an agreement to a process.
func (r *DtpRepository) CreateDta(ctx context.Context, dta *models.Dta) (*models.Dta, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.CreateDta")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(dtasTable).
		Cols("dtp_id", "conforms_to_default", "variations", "dta_file_path",
			"repo_signatory_1", "repo_signatory_2", "provider_signatory_1", "provider_signatory_2",
			"notes", "last_edited_by").
		Values(dta.DtpID, dta.ConformsToDefault, dta.Variations, dta.DtaFilePath,
			dta.RepoSignatory1, dta.RepoSignatory2, dta.ProviderSignatory1, dta.ProviderSignatory2,
			dta.Notes, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dta")
		return nil, ServerError("failed to create dta")
	}
	if dta.DtpID == nil {
		return nil, ServerError("failed to create dta")
	}
	return r.GetDta(ctx, *dta.DtpID)
}

// UpdateDta rewrites the agreement for a process.
func (r *DtpRepository) UpdateDta(ctx context.Context, dta *models.Dta) (*models.Dta, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.UpdateDta")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(dtasTable).
		Set(
			ub.Assign("conforms_to_default", dta.ConformsToDefault),
			ub.Assign("variations", dta.Variations),
			ub.Assign("dta_file_path", dta.DtaFilePath),
			ub.Assign("repo_signatory_1", dta.RepoSignatory1),
			ub.Assign("repo_signatory_2", dta.RepoSignatory2),
			ub.Assign("provider_signatory_1", dta.ProviderSignatory1),
			ub.Assign("provider_signatory_2", dta.ProviderSignatory2),
			ub.Assign("notes", dta.Notes),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("dtp_id", dta.DtpID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dta")
		return nil, ServerError("failed to update dta")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dtp %v has no dta", dta.DtpID)
	}
	if dta.DtpID == nil {
		return nil, ServerError("failed to update dta")
	}
	return r.GetDta(ctx, *dta.DtpID)
}

// DeleteDta removes the agreement for a process.
func (r *DtpRepository) DeleteDta(ctx context.Context, dtpID int) (int, error) {
	outerCtx := ctx
	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return 0, ServerError("failed to delete dta")
	}
	defer database.CloseTx(outerCtx, tx)

	count, err := r.auditedDelete(ctx, tx, dtasTable, "dtp_id", dtpID)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(outerCtx); err != nil {
		return 0, ServerError("failed to delete dta")
	}
	return count, nil
}

/* DTP datasets */

// GetAllDtpDatasets lists the dataset check records for a process.
func (r *DtpRepository) GetAllDtpDatasets(ctx context.Context, dtpID int) ([]models.DtpDataset, error) {
	sb := dtpDatasetStruct.SelectFrom(dtpDatasetsTable)
	sb.Where(sb.Equal("dtp_id", dtpID))

	query, args := sb.Build()
	datasets := []models.DtpDataset{}
	if err := r.DB().SelectContext(ctx, &datasets, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtp datasets")
		return nil, ServerError("failed to list dtp datasets")
	}
	return datasets, nil
}

const dtpDatasetOutSelect = `select t.id, t.dtp_id, t.sd_oid,
		b.display_title as object_name,
		t.legal_status_id, ls.name as legal_status_name,
		t.legal_status_text, t.legal_status_path,
		t.desc_md_check_status_id, dcs.name as desc_md_check_status_name,
		t.desc_md_check_date, t.desc_md_check_by,
		t.deident_check_status_id, ids.name as deident_check_status_name,
		t.deident_check_date, t.deident_check_by, t.notes
		from rms.dtp_datasets t
		left join mdr.data_objects b on t.sd_oid = b.sd_oid
		left join lup.legal_status_types ls on t.legal_status_id = ls.id
		left join lup.check_status_types dcs on t.desc_md_check_status_id = dcs.id
		left join lup.check_status_types ids on t.deident_check_status_id = ids.id`

// GetAllOutDtpDatasets lists the dataset check records in display form.
func (r *DtpRepository) GetAllOutDtpDatasets(ctx context.Context, dtpID int) ([]models.DtpDatasetOut, error) {
	datasets := []models.DtpDatasetOut{}
	if err := r.DB().SelectContext(ctx, &datasets, dtpDatasetOutSelect+" where t.dtp_id = $1", dtpID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtp dataset display records")
		return nil, ServerError("failed to list dtp dataset display records")
	}
	return datasets, nil
}

// GetDtpDataset returns one dataset check record.
func (r *DtpRepository) GetDtpDataset(ctx context.Context, id int) (*models.DtpDataset, error) {
	sb := dtpDatasetStruct.SelectFrom(dtpDatasetsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var dataset models.DtpDataset
	err := r.DB().GetContext(ctx, &dataset, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp dataset %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dtp dataset")
		return nil, ServerError("failed to get dtp dataset")
	}
	return &dataset, nil
}

// GetOutDtpDataset returns one dataset check record in display form.
func (r *DtpRepository) GetOutDtpDataset(ctx context.Context, id int) (*models.DtpDatasetOut, error) {
	var dataset models.DtpDatasetOut
	err := r.DB().GetContext(ctx, &dataset, dtpDatasetOutSelect+" where t.id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp dataset %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dtp dataset display record")
		return nil, ServerError("failed to get dtp dataset display record")
	}
	return &dataset, nil
}

// CreateDtpDataset adds a dataset check record for an object in a process.
func (r *DtpRepository) CreateDtpDataset(ctx context.Context, dataset *models.DtpDataset) (*models.DtpDataset, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.CreateDtpDataset")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(dtpDatasetsTable).
		Cols("dtp_id", "sd_oid", "legal_status_id", "legal_status_text", "legal_status_path",
			"desc_md_check_status_id", "desc_md_check_date", "desc_md_check_by",
			"deident_check_status_id", "deident_check_date", "deident_check_by",
			"notes", "last_edited_by").
		Values(dataset.DtpID, dataset.SdOid, dataset.LegalStatusID, dataset.LegalStatusText, dataset.LegalStatusPath,
			dataset.DescMdCheckStatusID, dataset.DescMdCheckDate, dataset.DescMdCheckBy,
			dataset.DeidentCheckStatusID, dataset.DeidentCheckDate, dataset.DeidentCheckBy,
			dataset.Notes, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dtp dataset")
		return nil, ServerError("failed to create dtp dataset")
	}
	return r.GetDtpDataset(ctx, id)
}

// UpdateDtpDataset rewrites a dataset check record.
func (r *DtpRepository) UpdateDtpDataset(ctx context.Context, dataset *models.DtpDataset) (*models.DtpDataset, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.UpdateDtpDataset")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(dtpDatasetsTable).
		Set(
			ub.Assign("sd_oid", dataset.SdOid),
			ub.Assign("legal_status_id", dataset.LegalStatusID),
			ub.Assign("legal_status_text", dataset.LegalStatusText),
			ub.Assign("legal_status_path", dataset.LegalStatusPath),
			ub.Assign("desc_md_check_status_id", dataset.DescMdCheckStatusID),
			ub.Assign("desc_md_check_date", dataset.DescMdCheckDate),
			ub.Assign("desc_md_check_by", dataset.DescMdCheckBy),
			ub.Assign("deident_check_status_id", dataset.DeidentCheckStatusID),
			ub.Assign("deident_check_date", dataset.DeidentCheckDate),
			ub.Assign("deident_check_by", dataset.DeidentCheckBy),
			ub.Assign("notes", dataset.Notes),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", dataset.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dtp dataset")
		return nil, ServerError("failed to update dtp dataset")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dtp dataset %d does not exist", dataset.ID)
	}
	return r.GetDtpDataset(ctx, dataset.ID)
}

// DeleteDtpDataset removes a dataset check record.
func (r *DtpRepository) DeleteDtpDataset(ctx context.Context, id int) (int, error) {
	return r.deleteDtpChild(ctx, dtpDatasetsTable, id)
}

/* DTP access prerequisites */

// GetAllDtpPrereqs lists the prerequisites recorded against an object in a
// process.
func (r *DtpRepository) GetAllDtpPrereqs(ctx context.Context, dtpID int, sdOid string) ([]models.DtpPrereq, error) {
	sb := dtpPrereqStruct.SelectFrom(dtpPrereqsTable)
	sb.Where(sb.Equal("dtp_id", dtpID), sb.Equal("sd_oid", sdOid))

	query, args := sb.Build()
	prereqs := []models.DtpPrereq{}
	if err := r.DB().SelectContext(ctx, &prereqs, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtp prereqs")
		return nil, ServerError("failed to list dtp prereqs")
	}
	return prereqs, nil
}

const dtpPrereqOutSelect = `select t.id, t.dtp_id, t.sd_oid,
		b.display_title as object_name,
		t.pre_requisite_type_id, pt.name as pre_requisite_type_name,
		t.pre_requisite_notes
		from rms.dtp_prereqs t
		left join mdr.data_objects b on t.sd_oid = b.sd_oid
		left join lup.prereq_types pt on t.pre_requisite_type_id = pt.id`

// GetAllOutDtpPrereqs lists the prerequisites in display form.
func (r *DtpRepository) GetAllOutDtpPrereqs(ctx context.Context, dtpID int, sdOid string) ([]models.DtpPrereqOut, error) {
	prereqs := []models.DtpPrereqOut{}
	if err := r.DB().SelectContext(ctx, &prereqs, dtpPrereqOutSelect+" where t.dtp_id = $1 and t.sd_oid = $2", dtpID, sdOid); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtp prereq display records")
		return nil, ServerError("failed to list dtp prereq display records")
	}
	return prereqs, nil
}

// GetDtpPrereq returns one prerequisite record.
func (r *DtpRepository) GetDtpPrereq(ctx context.Context, id int) (*models.DtpPrereq, error) {
	sb := dtpPrereqStruct.SelectFrom(dtpPrereqsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var prereq models.DtpPrereq
	err := r.DB().GetContext(ctx, &prereq, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp prereq %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dtp prereq")
		return nil, ServerError("failed to get dtp prereq")
	}
	return &prereq, nil
}

// GetOutDtpPrereq returns one prerequisite record in display form.
func (r *DtpRepository) GetOutDtpPrereq(ctx context.Context, id int) (*models.DtpPrereqOut, error) {
	var prereq models.DtpPrereqOut
	err := r.DB().GetContext(ctx, &prereq, dtpPrereqOutSelect+" where t.id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp prereq %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dtp prereq display record")
		return nil, ServerError("failed to get dtp prereq display record")
	}
	return &prereq, nil
}

// CreateDtpPrereq records a prerequisite against an object in a process.
func (r *DtpRepository) CreateDtpPrereq(ctx context.Context, prereq *models.DtpPrereq) (*models.DtpPrereq, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.CreateDtpPrereq")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(dtpPrereqsTable).
		Cols("dtp_id", "sd_oid", "pre_requisite_type_id", "pre_requisite_notes", "last_edited_by").
		Values(prereq.DtpID, prereq.SdOid, prereq.PreRequisiteTypeID, prereq.PreRequisiteNotes, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dtp prereq")
		return nil, ServerError("failed to create dtp prereq")
	}
	return r.GetDtpPrereq(ctx, id)
}

// UpdateDtpPrereq rewrites a prerequisite record.
func (r *DtpRepository) UpdateDtpPrereq(ctx context.Context, prereq *models.DtpPrereq) (*models.DtpPrereq, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.UpdateDtpPrereq")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(dtpPrereqsTable).
		Set(
			ub.Assign("sd_oid", prereq.SdOid),
			ub.Assign("pre_requisite_type_id", prereq.PreRequisiteTypeID),
			ub.Assign("pre_requisite_notes", prereq.PreRequisiteNotes),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", prereq.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dtp prereq")
		return nil, ServerError("failed to update dtp prereq")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dtp prereq %d does not exist", prereq.ID)
	}
	return r.GetDtpPrereq(ctx, prereq.ID)
}

// DeleteDtpPrereq removes a prerequisite record.
func (r *DtpRepository) DeleteDtpPrereq(ctx context.Context, id int) (int, error) {
	return r.deleteDtpChild(ctx, dtpPrereqsTable, id)
}

/* DTP notes */

// GetAllDtpNotes lists the notes on a process.
func (r *DtpRepository) GetAllDtpNotes(ctx context.Context, dtpID int) ([]models.DtpNote, error) {
	sb := dtpNoteStruct.SelectFrom(dtpNotesTable)
	sb.Where(sb.Equal("dtp_id", dtpID))

	query, args := sb.Build()
	notes := []models.DtpNote{}
	if err := r.DB().SelectContext(ctx, &notes, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtp notes")
		return nil, ServerError("failed to list dtp notes")
	}
	return notes, nil
}

const dtpNoteOutSelect = `select t.id, t.dtp_id, t.text, t.author,
		p.full_name as author_name, t.created_on
		from rms.dtp_notes t
		left join rms.people p on t.author = p.id`

// GetAllOutDtpNotes lists the notes in display form.
func (r *DtpRepository) GetAllOutDtpNotes(ctx context.Context, dtpID int) ([]models.DtpNoteOut, error) {
	notes := []models.DtpNoteOut{}
	if err := r.DB().SelectContext(ctx, &notes, dtpNoteOutSelect+" where t.dtp_id = $1", dtpID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtp note display records")
		return nil, ServerError("failed to list dtp note display records")
	}
	return notes, nil
}

// GetDtpNote returns one note.
func (r *DtpRepository) GetDtpNote(ctx context.Context, id int) (*models.DtpNote, error) {
	sb := dtpNoteStruct.SelectFrom(dtpNotesTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var note models.DtpNote
	err := r.DB().GetContext(ctx, &note, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp note %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dtp note")
		return nil, ServerError("failed to get dtp note")
	}
	return &note, nil
}

// GetOutDtpNote returns one note in display form.
func (r *DtpRepository) GetOutDtpNote(ctx context.Context, id int) (*models.DtpNoteOut, error) {
	var note models.DtpNoteOut
	err := r.DB().GetContext(ctx, &note, dtpNoteOutSelect+" where t.id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp note %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dtp note display record")
		return nil, ServerError("failed to get dtp note display record")
	}
	return &note, nil
}

// CreateDtpNote adds a note to a process.
func (r *DtpRepository) CreateDtpNote(ctx context.Context, note *models.DtpNote) (*models.DtpNote, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.CreateDtpNote")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(dtpNotesTable).
		Cols("dtp_id", "text", "author", "last_edited_by").
		Values(note.DtpID, note.Text, note.Author, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dtp note")
		return nil, ServerError("failed to create dtp note")
	}
	return r.GetDtpNote(ctx, id)
}

// UpdateDtpNote rewrites a note.
func (r *DtpRepository) UpdateDtpNote(ctx context.Context, note *models.DtpNote) (*models.DtpNote, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.UpdateDtpNote")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(dtpNotesTable).
		Set(
			ub.Assign("text", note.Text),
			ub.Assign("author", note.Author),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", note.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dtp note")
		return nil, ServerError("failed to update dtp note")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dtp note %d does not exist", note.ID)
	}
	return r.GetDtpNote(ctx, note.ID)
}

// DeleteDtpNote removes a note.
func (r *DtpRepository) DeleteDtpNote(ctx context.Context, id int) (int, error) {
	return r.deleteDtpChild(ctx, dtpNotesTable, id)
}

/* DTP people */

// GetAllDtpPeople lists the people associated with a process.
func (r *DtpRepository) GetAllDtpPeople(ctx context.Context, dtpID int) ([]models.DtpPerson, error) {
	sb := dtpPersonStruct.SelectFrom(dtpPeopleTable)
	sb.Where(sb.Equal("dtp_id", dtpID))

	query, args := sb.Build()
	people := []models.DtpPerson{}
	if err := r.DB().SelectContext(ctx, &people, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtp people")
		return nil, ServerError("failed to list dtp people")
	}
	return people, nil
}

const dtpPersonOutSelect = `select t.id, t.dtp_id, t.person_id,
		p.full_name as person_name, t.notes
		from rms.dtp_people t
		left join rms.people p on t.person_id = p.id`

// GetAllOutDtpPeople lists the people in display form.
func (r *DtpRepository) GetAllOutDtpPeople(ctx context.Context, dtpID int) ([]models.DtpPersonOut, error) {
	people := []models.DtpPersonOut{}
	if err := r.DB().SelectContext(ctx, &people, dtpPersonOutSelect+" where t.dtp_id = $1", dtpID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dtp person display records")
		return nil, ServerError("failed to list dtp person display records")
	}
	return people, nil
}

// GetDtpPerson returns one person association.
func (r *DtpRepository) GetDtpPerson(ctx context.Context, id int) (*models.DtpPerson, error) {
	sb := dtpPersonStruct.SelectFrom(dtpPeopleTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var person models.DtpPerson
	err := r.DB().GetContext(ctx, &person, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp person %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dtp person")
		return nil, ServerError("failed to get dtp person")
	}
	return &person, nil
}

// GetOutDtpPerson returns one person association in display form.
func (r *DtpRepository) GetOutDtpPerson(ctx context.Context, id int) (*models.DtpPersonOut, error) {
	var person models.DtpPersonOut
	err := r.DB().GetContext(ctx, &person, dtpPersonOutSelect+" where t.id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dtp person %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dtp person display record")
		return nil, ServerError("failed to get dtp person display record")
	}
	return &person, nil
}

// CreateDtpPerson associates a person with a process.
func (r *DtpRepository) CreateDtpPerson(ctx context.Context, person *models.DtpPerson) (*models.DtpPerson, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.CreateDtpPerson")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(dtpPeopleTable).
		Cols("dtp_id", "person_id", "notes", "last_edited_by").
		Values(person.DtpID, person.PersonID, person.Notes, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dtp person")
		return nil, ServerError("failed to create dtp person")
	}
	return r.GetDtpPerson(ctx, id)
}

// UpdateDtpPerson rewrites a person association.
func (r *DtpRepository) UpdateDtpPerson(ctx context.Context, person *models.DtpPerson) (*models.DtpPerson, error) {
	ctx, span := tracing.StartSpan(ctx, "DtpRepository.UpdateDtpPerson")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(dtpPeopleTable).
		Set(
			ub.Assign("person_id", person.PersonID),
			ub.Assign("notes", person.Notes),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", person.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dtp person")
		return nil, ServerError("failed to update dtp person")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dtp person %d does not exist", person.ID)
	}
	return r.GetDtpPerson(ctx, person.ID)
}

// DeleteDtpPerson removes a person association.
func (r *DtpRepository) DeleteDtpPerson(ctx context.Context, id int) (int, error) {
	return r.deleteDtpChild(ctx, dtpPeopleTable, id)
}
