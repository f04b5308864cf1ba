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
	duaStruct       = database.NewStruct(new(models.Dua))
	dupStudyStruct  = database.NewStruct(new(models.DupStudy))
	dupObjectStruct = database.NewStruct(new(models.DupObject))
	dupPrereqStruct = database.NewStruct(new(models.DupPrereq))
	dupNoteStruct   = database.NewStruct(new(models.DupNote))
	dupPersonStruct = database.NewStruct(new(models.DupPerson))
	dupSecUseStruct = database.NewStruct(new(models.DupSecondaryUse))
)

/* DUP studies */

// GetAllDupStudies lists the studies attached to a process.
func (r *DupRepository) GetAllDupStudies(ctx context.Context, dupID int) ([]models.DupStudy, error) {
	sb := dupStudyStruct.SelectFrom(dupStudiesTable)
	sb.Where(sb.Equal("dup_id", dupID))

	query, args := sb.Build()
	studies := []models.DupStudy{}
	if err := r.DB().SelectContext(ctx, &studies, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dup studies")
		return nil, ServerError("failed to list dup studies")
	}
	return studies, nil
}

const dupStudyOutSelect = `select t.id, t.dup_id, t.sd_sid,
		s.display_title as study_name
		from rms.dup_studies t
		left join mdr.studies s on t.sd_sid = s.sd_sid`

// GetAllOutDupStudies lists the studies in display form.
func (r *DupRepository) GetAllOutDupStudies(ctx context.Context, dupID int) ([]models.DupStudyOut, error) {
	studies := []models.DupStudyOut{}
	if err := r.DB().SelectContext(ctx, &studies, dupStudyOutSelect+" where t.dup_id = $1", dupID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dup study display records")
		return nil, ServerError("failed to list dup study display records")
	}
	return studies, nil
}

// GetDupStudy returns one study link record.
func (r *DupRepository) GetDupStudy(ctx context.Context, id int) (*models.DupStudy, error) {
	sb := dupStudyStruct.SelectFrom(dupStudiesTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var study models.DupStudy
	err := r.DB().GetContext(ctx, &study, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup study %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dup study")
		return nil, ServerError("failed to get dup study")
	}
	return &study, nil
}

// GetOutDupStudy returns one study link in display form.
func (r *DupRepository) GetOutDupStudy(ctx context.Context, id int) (*models.DupStudyOut, error) {
	var study models.DupStudyOut
	err := r.DB().GetContext(ctx, &study, dupStudyOutSelect+" where t.id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup study %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dup study display record")
		return nil, ServerError("failed to get dup study display record")
	}
	return &study, nil
}

// CreateDupStudy attaches a study to a process.
func (r *DupRepository) CreateDupStudy(ctx context.Context, study *models.DupStudy) (*models.DupStudy, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.CreateDupStudy")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(dupStudiesTable).
		Cols("dup_id", "sd_sid", "last_edited_by").
		Values(study.DupID, study.SdSid, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dup study")
		return nil, ServerError("failed to create dup study")
	}
	return r.GetDupStudy(ctx, id)
}

// UpdateDupStudy rewrites a study link record.
func (r *DupRepository) UpdateDupStudy(ctx context.Context, study *models.DupStudy) (*models.DupStudy, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.UpdateDupStudy")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(dupStudiesTable).
		Set(
			ub.Assign("sd_sid", study.SdSid),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", study.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dup study")
		return nil, ServerError("failed to update dup study")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dup study %d does not exist", study.ID)
	}
	return r.GetDupStudy(ctx, study.ID)
}

// DeleteDupStudy removes a study link record.
func (r *DupRepository) DeleteDupStudy(ctx context.Context, id int) (int, error) {
	return r.deleteDupChild(ctx, dupStudiesTable, id)
}

// deleteDupChild performs an audited delete of a single child row by id.
func (r *DupRepository) deleteDupChild(ctx context.Context, table string, id int) (int, error) {
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

/* DUP objects */

// GetAllDupObjects lists the objects attached to a process.
func (r *DupRepository) GetAllDupObjects(ctx context.Context, dupID int) ([]models.DupObject, error) {
	sb := dupObjectStruct.SelectFrom(dupObjectsTable)
	sb.Where(sb.Equal("dup_id", dupID))

	query, args := sb.Build()
	objects := []models.DupObject{}
	if err := r.DB().SelectContext(ctx, &objects, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dup objects")
		return nil, ServerError("failed to list dup objects")
	}
	return objects, nil
}

const dupObjectOutSelect = `select t.id, t.dup_id, t.sd_oid,
		b.display_title as object_name,
		t.access_type_id, act.name as access_type_name,
		t.access_details, t.notes
		from rms.dup_objects t
		left join mdr.data_objects b on t.sd_oid = b.sd_oid
		left join lup.object_access_types act on t.access_type_id = act.id`

// GetAllOutDupObjects lists the objects in display form.
func (r *DupRepository) GetAllOutDupObjects(ctx context.Context, dupID int) ([]models.DupObjectOut, error) {
	objects := []models.DupObjectOut{}
	if err := r.DB().SelectContext(ctx, &objects, dupObjectOutSelect+" where t.dup_id = $1", dupID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dup object display records")
		return nil, ServerError("failed to list dup object display records")
	}
	return objects, nil
}

// GetDupObject returns one object link record.
func (r *DupRepository) GetDupObject(ctx context.Context, id int) (*models.DupObject, error) {
	sb := dupObjectStruct.SelectFrom(dupObjectsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var object models.DupObject
	err := r.DB().GetContext(ctx, &object, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup object %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dup object")
		return nil, ServerError("failed to get dup object")
	}
	return &object, nil
}

// GetOutDupObject returns one object link in display form.
func (r *DupRepository) GetOutDupObject(ctx context.Context, id int) (*models.DupObjectOut, error) {
	var object models.DupObjectOut
	err := r.DB().GetContext(ctx, &object, dupObjectOutSelect+" where t.id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup object %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dup object display record")
		return nil, ServerError("failed to get dup object display record")
	}
	return &object, nil
}

// CreateDupObject attaches an object to a process.
func (r *DupRepository) CreateDupObject(ctx context.Context, object *models.DupObject) (*models.DupObject, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.CreateDupObject")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(dupObjectsTable).
		Cols("dup_id", "sd_oid", "access_type_id", "access_details", "notes", "last_edited_by").
		Values(object.DupID, object.SdOid, object.AccessTypeID, object.AccessDetails, object.Notes, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dup object")
		return nil, ServerError("failed to create dup object")
	}
	return r.GetDupObject(ctx, id)
}

// UpdateDupObject rewrites an object link record.
func (r *DupRepository) UpdateDupObject(ctx context.Context, object *models.DupObject) (*models.DupObject, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.UpdateDupObject")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(dupObjectsTable).
		Set(
			ub.Assign("sd_oid", object.SdOid),
			ub.Assign("access_type_id", object.AccessTypeID),
			ub.Assign("access_details", object.AccessDetails),
			ub.Assign("notes", object.Notes),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", object.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dup object")
		return nil, ServerError("failed to update dup object")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dup object %d does not exist", object.ID)
	}
	return r.GetDupObject(ctx, object.ID)
}

// DeleteDupObject removes an object link record.
func (r *DupRepository) DeleteDupObject(ctx context.Context, id int) (int, error) {
	return r.deleteDupChild(ctx, dupObjectsTable, id)
}

/* DUAs */

// GetDua returns the agreement for a process, fetched by the parent id.
func (r *DupRepository) GetDua(ctx context.Context, dupID int) (*models.Dua, error) {
	sb := duaStruct.SelectFrom(duasTable)
	sb.Where(sb.Equal("dup_id", dupID))

	query, args := sb.Build()
	var dua models.Dua
	err := r.DB().GetContext(ctx, &dua, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup %d has no dua", dupID)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dua")
		return nil, ServerError("failed to get dua")
	}
	return &dua, nil
}

const duaOutSelect = `select t.id, t.dup_id, t.conforms_to_default, t.variations,
		t.repo_as_proxy, t.dua_file_path,
		t.repo_signatory_1, rs1.full_name as repo_signatory_1_name,
		t.repo_signatory_2, rs2.full_name as repo_signatory_2_name,
		t.provider_signatory_1, ps1.full_name as provider_signatory_1_name,
		t.provider_signatory_2, ps2.full_name as provider_signatory_2_name,
		t.requester_signatory_1, qs1.full_name as requester_signatory_1_name,
		t.requester_signatory_2, qs2.full_name as requester_signatory_2_name,
		t.notes
		from rms.duas t
		left join rms.people rs1 on t.repo_signatory_1 = rs1.id
		left join rms.people rs2 on t.repo_signatory_2 = rs2.id
		left join rms.people ps1 on t.provider_signatory_1 = ps1.id
		left join rms.people ps2 on t.provider_signatory_2 = ps2.id
		left join rms.people qs1 on t.requester_signatory_1 = qs1.id
		left join rms.people qs2 on t.requester_signatory_2 = qs2.id`

// GetOutDua returns the agreement in display form, signatory names resolved.
func (r *DupRepository) GetOutDua(ctx context.Context, dupID int) (*models.DuaOut, error) {
	var dua models.DuaOut
	err := r.DB().GetContext(ctx, &dua, duaOutSelect+" where t.dup_id = $1", dupID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup %d has no dua", dupID)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dua display record")
		return nil, ServerError("failed to get dua display record")
	}
	return &dua, nil
}

// CreateDua attaches an agreement to a process.
func (r *DupRepository) CreateDua(ctx context.Context, dua *models.Dua) (*models.Dua, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.CreateDua")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(duasTable).
		Cols("dup_id", "conforms_to_default", "variations", "repo_as_proxy", "dua_file_path",
			"repo_signatory_1", "repo_signatory_2", "provider_signatory_1", "provider_signatory_2",
			"requester_signatory_1", "requester_signatory_2", "notes", "last_edited_by").
		Values(dua.DupID, dua.ConformsToDefault, dua.Variations, dua.RepoAsProxy, dua.DuaFilePath,
			dua.RepoSignatory1, dua.RepoSignatory2, dua.ProviderSignatory1, dua.ProviderSignatory2,
			dua.RequesterSignatory1, dua.RequesterSignatory2, dua.Notes, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dua")
		return nil, ServerError("failed to create dua")
	}
	if dua.DupID == nil {
		return nil, ServerError("failed to create dua")
	}
	return r.GetDua(ctx, *dua.DupID)
}

// UpdateDua rewrites the agreement for a process.
func (r *DupRepository) UpdateDua(ctx context.Context, dua *models.Dua) (*models.Dua, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.UpdateDua")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(duasTable).
		Set(
			ub.Assign("conforms_to_default", dua.ConformsToDefault),
			ub.Assign("variations", dua.Variations),
			ub.Assign("repo_as_proxy", dua.RepoAsProxy),
			ub.Assign("dua_file_path", dua.DuaFilePath),
			ub.Assign("repo_signatory_1", dua.RepoSignatory1),
			ub.Assign("repo_signatory_2", dua.RepoSignatory2),
			ub.Assign("provider_signatory_1", dua.ProviderSignatory1),
			ub.Assign("provider_signatory_2", dua.ProviderSignatory2),
			ub.Assign("requester_signatory_1", dua.RequesterSignatory1),
			ub.Assign("requester_signatory_2", dua.RequesterSignatory2),
			ub.Assign("notes", dua.Notes),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("dup_id", dua.DupID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dua")
		return nil, ServerError("failed to update dua")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dup %v has no dua", dua.DupID)
	}
	if dua.DupID == nil {
		return nil, ServerError("failed to update dua")
	}
	return r.GetDua(ctx, *dua.DupID)
}

// DeleteDua removes the agreement for a process.
func (r *DupRepository) DeleteDua(ctx context.Context, dupID int) (int, error) {
	outerCtx := ctx
	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return 0, ServerError("failed to delete dua")
	}
	defer database.CloseTx(outerCtx, tx)

	count, err := r.auditedDelete(ctx, tx, duasTable, "dup_id", dupID)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(outerCtx); err != nil {
		return 0, ServerError("failed to delete dua")
	}
	return count, nil
}

/* DUP access prerequisites */

// GetAllDupPrereqs lists the prerequisites recorded against an object in a
// process.
func (r *DupRepository) GetAllDupPrereqs(ctx context.Context, dupID int, sdOid string) ([]models.DupPrereq, error) {
	sb := dupPrereqStruct.SelectFrom(dupPrereqsTable)
	sb.Where(sb.Equal("dup_id", dupID), sb.Equal("sd_oid", sdOid))

	query, args := sb.Build()
	prereqs := []models.DupPrereq{}
	if err := r.DB().SelectContext(ctx, &prereqs, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dup prereqs")
		return nil, ServerError("failed to list dup prereqs")
	}
	return prereqs, nil
}

const dupPrereqOutSelect = `select t.id, t.dup_id, t.sd_oid,
		b.display_title as object_name,
		t.pre_requisite_type_id, pt.name as pre_requisite_type_name,
		t.prerequisite_met, t.met_notes
		from rms.dup_prereqs t
		left join mdr.data_objects b on t.sd_oid = b.sd_oid
		left join lup.prereq_types pt on t.pre_requisite_type_id = pt.id`

// GetAllOutDupPrereqs lists the prerequisites in display form.
func (r *DupRepository) GetAllOutDupPrereqs(ctx context.Context, dupID int, sdOid string) ([]models.DupPrereqOut, error) {
	prereqs := []models.DupPrereqOut{}
	if err := r.DB().SelectContext(ctx, &prereqs, dupPrereqOutSelect+" where t.dup_id = $1 and t.sd_oid = $2", dupID, sdOid); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dup prereq display records")
		return nil, ServerError("failed to list dup prereq display records")
	}
	return prereqs, nil
}

// GetDupPrereq returns one prerequisite record.
func (r *DupRepository) GetDupPrereq(ctx context.Context, id int) (*models.DupPrereq, error) {
	sb := dupPrereqStruct.SelectFrom(dupPrereqsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var prereq models.DupPrereq
	err := r.DB().GetContext(ctx, &prereq, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup prereq %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dup prereq")
		return nil, ServerError("failed to get dup prereq")
	}
	return &prereq, nil
}

// GetOutDupPrereq returns one prerequisite record in display form.
func (r *DupRepository) GetOutDupPrereq(ctx context.Context, id int) (*models.DupPrereqOut, error) {
	var prereq models.DupPrereqOut
	err := r.DB().GetContext(ctx, &prereq, dupPrereqOutSelect+" where t.id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup prereq %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dup prereq display record")
		return nil, ServerError("failed to get dup prereq display record")
	}
	return &prereq, nil
}

// CreateDupPrereq records a prerequisite against an object in a process.
func (r *DupRepository) CreateDupPrereq(ctx context.Context, prereq *models.DupPrereq) (*models.DupPrereq, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.CreateDupPrereq")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(dupPrereqsTable).
		Cols("dup_id", "sd_oid", "pre_requisite_type_id", "prerequisite_met", "met_notes", "last_edited_by").
		Values(prereq.DupID, prereq.SdOid, prereq.PreRequisiteTypeID, prereq.PreRequisiteMet, prereq.MetNotes, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dup prereq")
		return nil, ServerError("failed to create dup prereq")
	}
	return r.GetDupPrereq(ctx, id)
}

// UpdateDupPrereq rewrites a prerequisite record.
func (r *DupRepository) UpdateDupPrereq(ctx context.Context, prereq *models.DupPrereq) (*models.DupPrereq, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.UpdateDupPrereq")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(dupPrereqsTable).
		Set(
			ub.Assign("sd_oid", prereq.SdOid),
			ub.Assign("pre_requisite_type_id", prereq.PreRequisiteTypeID),
			ub.Assign("prerequisite_met", prereq.PreRequisiteMet),
			ub.Assign("met_notes", prereq.MetNotes),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", prereq.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dup prereq")
		return nil, ServerError("failed to update dup prereq")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dup prereq %d does not exist", prereq.ID)
	}
	return r.GetDupPrereq(ctx, prereq.ID)
}

// DeleteDupPrereq removes a prerequisite record.
func (r *DupRepository) DeleteDupPrereq(ctx context.Context, id int) (int, error) {
	return r.deleteDupChild(ctx, dupPrereqsTable, id)
}

/* DUP notes */

// GetAllDupNotes lists the notes on a process.
func (r *DupRepository) GetAllDupNotes(ctx context.Context, dupID int) ([]models.DupNote, error) {
	sb := dupNoteStruct.SelectFrom(dupNotesTable)
	sb.Where(sb.Equal("dup_id", dupID))

	query, args := sb.Build()
	notes := []models.DupNote{}
	if err := r.DB().SelectContext(ctx, &notes, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dup notes")
		return nil, ServerError("failed to list dup notes")
	}
	return notes, nil
}

const dupNoteOutSelect = `select t.id, t.dup_id, t.text, t.author,
		p.full_name as author_name, t.created_on
		from rms.dup_notes t
		left join rms.people p on t.author = p.id`

// GetAllOutDupNotes lists the notes in display form.
func (r *DupRepository) GetAllOutDupNotes(ctx context.Context, dupID int) ([]models.DupNoteOut, error) {
	notes := []models.DupNoteOut{}
	if err := r.DB().SelectContext(ctx, &notes, dupNoteOutSelect+" where t.dup_id = $1", dupID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dup note display records")
		return nil, ServerError("failed to list dup note display records")
	}
	return notes, nil
}

// GetDupNote returns one note.
func (r *DupRepository) GetDupNote(ctx context.Context, id int) (*models.DupNote, error) {
	sb := dupNoteStruct.SelectFrom(dupNotesTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var note models.DupNote
	err := r.DB().GetContext(ctx, &note, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup note %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dup note")
		return nil, ServerError("failed to get dup note")
	}
	return &note, nil
}

// GetOutDupNote returns one note in display form.
func (r *DupRepository) GetOutDupNote(ctx context.Context, id int) (*models.DupNoteOut, error) {
	var note models.DupNoteOut
	err := r.DB().GetContext(ctx, &note, dupNoteOutSelect+" where t.id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup note %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dup note display record")
		return nil, ServerError("failed to get dup note display record")
	}
	return &note, nil
}

// CreateDupNote adds a note to a process.
func (r *DupRepository) CreateDupNote(ctx context.Context, note *models.DupNote) (*models.DupNote, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.CreateDupNote")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(dupNotesTable).
		Cols("dup_id", "text", "author", "last_edited_by").
		Values(note.DupID, note.Text, note.Author, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dup note")
		return nil, ServerError("failed to create dup note")
	}
	return r.GetDupNote(ctx, id)
}

// UpdateDupNote rewrites a note.
func (r *DupRepository) UpdateDupNote(ctx context.Context, note *models.DupNote) (*models.DupNote, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.UpdateDupNote")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(dupNotesTable).
		Set(
			ub.Assign("text", note.Text),
			ub.Assign("author", note.Author),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", note.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dup note")
		return nil, ServerError("failed to update dup note")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dup note %d does not exist", note.ID)
	}
	return r.GetDupNote(ctx, note.ID)
}

// DeleteDupNote removes a note.
func (r *DupRepository) DeleteDupNote(ctx context.Context, id int) (int, error) {
	return r.deleteDupChild(ctx, dupNotesTable, id)
}

/* DUP people */

// GetAllDupPeople lists the people associated with a process.
func (r *DupRepository) GetAllDupPeople(ctx context.Context, dupID int) ([]models.DupPerson, error) {
	sb := dupPersonStruct.SelectFrom(dupPeopleTable)
	sb.Where(sb.Equal("dup_id", dupID))

	query, args := sb.Build()
	people := []models.DupPerson{}
	if err := r.DB().SelectContext(ctx, &people, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dup people")
		return nil, ServerError("failed to list dup people")
	}
	return people, nil
}

const dupPersonOutSelect = `select t.id, t.dup_id, t.person_id,
		p.full_name as person_name, t.notes
		from rms.dup_people t
		left join rms.people p on t.person_id = p.id`

// GetAllOutDupPeople lists the people in display form.
func (r *DupRepository) GetAllOutDupPeople(ctx context.Context, dupID int) ([]models.DupPersonOut, error) {
	people := []models.DupPersonOut{}
	if err := r.DB().SelectContext(ctx, &people, dupPersonOutSelect+" where t.dup_id = $1", dupID); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dup person display records")
		return nil, ServerError("failed to list dup person display records")
	}
	return people, nil
}

// GetDupPerson returns one person association.
func (r *DupRepository) GetDupPerson(ctx context.Context, id int) (*models.DupPerson, error) {
	sb := dupPersonStruct.SelectFrom(dupPeopleTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var person models.DupPerson
	err := r.DB().GetContext(ctx, &person, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup person %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dup person")
		return nil, ServerError("failed to get dup person")
	}
	return &person, nil
}

// GetOutDupPerson returns one person association in display form.
func (r *DupRepository) GetOutDupPerson(ctx context.Context, id int) (*models.DupPersonOut, error) {
	var person models.DupPersonOut
	err := r.DB().GetContext(ctx, &person, dupPersonOutSelect+" where t.id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup person %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dup person display record")
		return nil, ServerError("failed to get dup person display record")
	}
	return &person, nil
}

// CreateDupPerson associates a person with a process.
func (r *DupRepository) CreateDupPerson(ctx context.Context, person *models.DupPerson) (*models.DupPerson, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.CreateDupPerson")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(dupPeopleTable).
		Cols("dup_id", "person_id", "notes", "last_edited_by").
		Values(person.DupID, person.PersonID, person.Notes, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dup person")
		return nil, ServerError("failed to create dup person")
	}
	return r.GetDupPerson(ctx, id)
}

// UpdateDupPerson rewrites a person association.
func (r *DupRepository) UpdateDupPerson(ctx context.Context, person *models.DupPerson) (*models.DupPerson, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.UpdateDupPerson")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(dupPeopleTable).
		Set(
			ub.Assign("person_id", person.PersonID),
			ub.Assign("notes", person.Notes),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", person.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dup person")
		return nil, ServerError("failed to update dup person")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dup person %d does not exist", person.ID)
	}
	return r.GetDupPerson(ctx, person.ID)
}

// DeleteDupPerson removes a person association.
func (r *DupRepository) DeleteDupPerson(ctx context.Context, id int) (int, error) {
	return r.deleteDupChild(ctx, dupPeopleTable, id)
}

/* Secondary use */

// GetAllSecUses lists the secondary uses recorded for a process.
func (r *DupRepository) GetAllSecUses(ctx context.Context, dupID int) ([]models.DupSecondaryUse, error) {
	sb := dupSecUseStruct.SelectFrom(dupSecUseTable)
	sb.Where(sb.Equal("dup_id", dupID))

	query, args := sb.Build()
	uses := []models.DupSecondaryUse{}
	if err := r.DB().SelectContext(ctx, &uses, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list dup secondary uses")
		return nil, ServerError("failed to list dup secondary uses")
	}
	return uses, nil
}

// GetSecUse returns one secondary use record.
func (r *DupRepository) GetSecUse(ctx context.Context, id int) (*models.DupSecondaryUse, error) {
	sb := dupSecUseStruct.SelectFrom(dupSecUseTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var use models.DupSecondaryUse
	err := r.DB().GetContext(ctx, &use, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("dup secondary use %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get dup secondary use")
		return nil, ServerError("failed to get dup secondary use")
	}
	return &use, nil
}

// CreateSecUse records a secondary use for a process.
func (r *DupRepository) CreateSecUse(ctx context.Context, use *models.DupSecondaryUse) (*models.DupSecondaryUse, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.CreateSecUse")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(dupSecUseTable).
		Cols("dup_id", "secondary_use_type", "publication", "doi", "attribution_present", "notes", "last_edited_by").
		Values(use.DupID, use.SecondaryUseType, use.Publication, use.DOI, use.AttributionPresent, use.Notes, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create dup secondary use")
		return nil, ServerError("failed to create dup secondary use")
	}
	return r.GetSecUse(ctx, id)
}

// UpdateSecUse rewrites a secondary use record.
func (r *DupRepository) UpdateSecUse(ctx context.Context, use *models.DupSecondaryUse) (*models.DupSecondaryUse, error) {
	ctx, span := tracing.StartSpan(ctx, "DupRepository.UpdateSecUse")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(dupSecUseTable).
		Set(
			ub.Assign("secondary_use_type", use.SecondaryUseType),
			ub.Assign("publication", use.Publication),
			ub.Assign("doi", use.DOI),
			ub.Assign("attribution_present", use.AttributionPresent),
			ub.Assign("notes", use.Notes),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", use.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update dup secondary use")
		return nil, ServerError("failed to update dup secondary use")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("dup secondary use %d does not exist", use.ID)
	}
	return r.GetSecUse(ctx, use.ID)
}

// DeleteSecUse removes a secondary use record.
func (r *DupRepository) DeleteSecUse(ctx context.Context, id int) (int, error) {
	return r.deleteDupChild(ctx, dupSecUseTable, id)
}
