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
	objectTitleStruct        = database.NewStruct(new(models.ObjectTitle))
	objectContributorStruct  = database.NewStruct(new(models.ObjectContributor))
	objectDatasetStruct      = database.NewStruct(new(models.ObjectDataset))
	objectDateStruct         = database.NewStruct(new(models.ObjectDate))
	objectDescriptionStruct  = database.NewStruct(new(models.ObjectDescription))
	objectIdentifierStruct   = database.NewStruct(new(models.ObjectIdentifier))
	objectInstanceStruct     = database.NewStruct(new(models.ObjectInstance))
	objectRightStruct        = database.NewStruct(new(models.ObjectRight))
	objectTopicStruct        = database.NewStruct(new(models.ObjectTopic))
	objectRelationshipStruct = database.NewStruct(new(models.ObjectRelationship))
)

// deleteObjectChild performs an audited delete of a single attribute row
// by id.
func (r *ObjectRepository) deleteObjectChild(ctx context.Context, table string, id int) (int, error) {
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

// auditedDelete stamps last_edited_by on the matching rows, then deletes
// them, returning the number of rows removed.
func (r *ObjectRepository) auditedDelete(ctx context.Context, tx database.Tx, table, keyCol string, key any) (int, error) {
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

/* Titles */

// GetObjectTitles lists the titles of an object.
func (r *ObjectRepository) GetObjectTitles(ctx context.Context, sdOid string) ([]models.ObjectTitle, error) {
	sb := objectTitleStruct.SelectFrom(objectTitlesTable)
	sb.Where(sb.Equal("sd_oid", sdOid))

	query, args := sb.Build()
	titles := []models.ObjectTitle{}
	if err := r.DB().SelectContext(ctx, &titles, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list object titles")
		return nil, ServerError("failed to list object titles")
	}
	return titles, nil
}

// GetObjectTitle returns one title record.
func (r *ObjectRepository) GetObjectTitle(ctx context.Context, id int) (*models.ObjectTitle, error) {
	sb := objectTitleStruct.SelectFrom(objectTitlesTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var title models.ObjectTitle
	err := r.DB().GetContext(ctx, &title, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("object title %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get object title")
		return nil, ServerError("failed to get object title")
	}
	return &title, nil
}

// CreateObjectTitle adds a title to an object.
func (r *ObjectRepository) CreateObjectTitle(ctx context.Context, title *models.ObjectTitle) (*models.ObjectTitle, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.CreateObjectTitle")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(objectTitlesTable).
		Cols("sd_oid", "title_type_id", "title_text", "lang_code",
			"lang_usage_id", "is_default", "comments", "last_edited_by").
		Values(title.SdOid, title.TitleTypeID, title.TitleText, title.LangCode,
			title.LangUsageID, title.IsDefault, title.Comments, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create object title")
		return nil, ServerError("failed to create object title")
	}
	return r.GetObjectTitle(ctx, id)
}

// UpdateObjectTitle rewrites a title record.
func (r *ObjectRepository) UpdateObjectTitle(ctx context.Context, title *models.ObjectTitle) (*models.ObjectTitle, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.UpdateObjectTitle")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(objectTitlesTable).
		Set(
			ub.Assign("title_type_id", title.TitleTypeID),
			ub.Assign("title_text", title.TitleText),
			ub.Assign("lang_code", title.LangCode),
			ub.Assign("lang_usage_id", title.LangUsageID),
			ub.Assign("is_default", title.IsDefault),
			ub.Assign("comments", title.Comments),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", title.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update object title")
		return nil, ServerError("failed to update object title")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("object title %d does not exist", title.ID)
	}
	return r.GetObjectTitle(ctx, title.ID)
}

// DeleteObjectTitle removes a title record.
func (r *ObjectRepository) DeleteObjectTitle(ctx context.Context, id int) (int, error) {
	return r.deleteObjectChild(ctx, objectTitlesTable, id)
}

/* Contributors */

// GetObjectContributors lists the contributors of an object.
func (r *ObjectRepository) GetObjectContributors(ctx context.Context, sdOid string) ([]models.ObjectContributor, error) {
	sb := objectContributorStruct.SelectFrom(objectContributorsTable)
	sb.Where(sb.Equal("sd_oid", sdOid))

	query, args := sb.Build()
	contributors := []models.ObjectContributor{}
	if err := r.DB().SelectContext(ctx, &contributors, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list object contributors")
		return nil, ServerError("failed to list object contributors")
	}
	return contributors, nil
}

// GetObjectContributor returns one contributor record.
func (r *ObjectRepository) GetObjectContributor(ctx context.Context, id int) (*models.ObjectContributor, error) {
	sb := objectContributorStruct.SelectFrom(objectContributorsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var contributor models.ObjectContributor
	err := r.DB().GetContext(ctx, &contributor, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("object contributor %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get object contributor")
		return nil, ServerError("failed to get object contributor")
	}
	return &contributor, nil
}

// CreateObjectContributor adds a contributor to an object.
func (r *ObjectRepository) CreateObjectContributor(ctx context.Context, contributor *models.ObjectContributor) (*models.ObjectContributor, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.CreateObjectContributor")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(objectContributorsTable).
		Cols("sd_oid", "contrib_type_id", "is_individual",
			"person_given_name", "person_family_name", "person_full_name",
			"orcid_id", "person_affiliation",
			"organisation_id", "organisation_name", "organisation_ror_id",
			"last_edited_by").
		Values(contributor.SdOid, contributor.ContribTypeID, contributor.IsIndividual,
			contributor.PersonGivenName, contributor.PersonFamilyName, contributor.PersonFullName,
			contributor.OrcidID, contributor.PersonAffiliation,
			contributor.OrganisationID, contributor.OrganisationName, contributor.OrganisationRorID,
			EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create object contributor")
		return nil, ServerError("failed to create object contributor")
	}
	return r.GetObjectContributor(ctx, id)
}

// UpdateObjectContributor rewrites a contributor record.
func (r *ObjectRepository) UpdateObjectContributor(ctx context.Context, contributor *models.ObjectContributor) (*models.ObjectContributor, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.UpdateObjectContributor")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(objectContributorsTable).
		Set(
			ub.Assign("contrib_type_id", contributor.ContribTypeID),
			ub.Assign("is_individual", contributor.IsIndividual),
			ub.Assign("person_given_name", contributor.PersonGivenName),
			ub.Assign("person_family_name", contributor.PersonFamilyName),
			ub.Assign("person_full_name", contributor.PersonFullName),
			ub.Assign("orcid_id", contributor.OrcidID),
			ub.Assign("person_affiliation", contributor.PersonAffiliation),
			ub.Assign("organisation_id", contributor.OrganisationID),
			ub.Assign("organisation_name", contributor.OrganisationName),
			ub.Assign("organisation_ror_id", contributor.OrganisationRorID),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", contributor.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update object contributor")
		return nil, ServerError("failed to update object contributor")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("object contributor %d does not exist", contributor.ID)
	}
	return r.GetObjectContributor(ctx, contributor.ID)
}

// DeleteObjectContributor removes a contributor record.
func (r *ObjectRepository) DeleteObjectContributor(ctx context.Context, id int) (int, error) {
	return r.deleteObjectChild(ctx, objectContributorsTable, id)
}

/* Datasets */

// GetObjectDatasets lists the dataset profiles of an object.
func (r *ObjectRepository) GetObjectDatasets(ctx context.Context, sdOid string) ([]models.ObjectDataset, error) {
	sb := objectDatasetStruct.SelectFrom(objectDatasetsTable)
	sb.Where(sb.Equal("sd_oid", sdOid))

	query, args := sb.Build()
	datasets := []models.ObjectDataset{}
	if err := r.DB().SelectContext(ctx, &datasets, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list object datasets")
		return nil, ServerError("failed to list object datasets")
	}
	return datasets, nil
}

// GetObjectDataset returns one dataset profile.
func (r *ObjectRepository) GetObjectDataset(ctx context.Context, id int) (*models.ObjectDataset, error) {
	sb := objectDatasetStruct.SelectFrom(objectDatasetsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var dataset models.ObjectDataset
	err := r.DB().GetContext(ctx, &dataset, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("object dataset %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get object dataset")
		return nil, ServerError("failed to get object dataset")
	}
	return &dataset, nil
}

// CreateObjectDataset adds a dataset profile to an object.
func (r *ObjectRepository) CreateObjectDataset(ctx context.Context, dataset *models.ObjectDataset) (*models.ObjectDataset, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.CreateObjectDataset")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(objectDatasetsTable).
		Cols("sd_oid", "record_keys_type_id", "record_keys_details",
			"deident_type_id", "deident_direct", "deident_hipaa", "deident_dates",
			"deident_nonarr", "deident_kanon", "deident_details",
			"consent_type_id", "consent_noncommercial", "consent_geog_restrict",
			"consent_research_type", "consent_genetic_only", "consent_no_methods",
			"consent_details", "last_edited_by").
		Values(dataset.SdOid, dataset.RecordKeysTypeID, dataset.RecordKeysDetails,
			dataset.DeidentTypeID, dataset.DeidentDirect, dataset.DeidentHipaa, dataset.DeidentDates,
			dataset.DeidentNonarr, dataset.DeidentKanon, dataset.DeidentDetails,
			dataset.ConsentTypeID, dataset.ConsentNoncommercial, dataset.ConsentGeogRestrict,
			dataset.ConsentResearchType, dataset.ConsentGeneticOnly, dataset.ConsentNoMethods,
			dataset.ConsentDetails, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create object dataset")
		return nil, ServerError("failed to create object dataset")
	}
	return r.GetObjectDataset(ctx, id)
}

// UpdateObjectDataset rewrites a dataset profile.
func (r *ObjectRepository) UpdateObjectDataset(ctx context.Context, dataset *models.ObjectDataset) (*models.ObjectDataset, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.UpdateObjectDataset")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(objectDatasetsTable).
		Set(
			ub.Assign("record_keys_type_id", dataset.RecordKeysTypeID),
			ub.Assign("record_keys_details", dataset.RecordKeysDetails),
			ub.Assign("deident_type_id", dataset.DeidentTypeID),
			ub.Assign("deident_direct", dataset.DeidentDirect),
			ub.Assign("deident_hipaa", dataset.DeidentHipaa),
			ub.Assign("deident_dates", dataset.DeidentDates),
			ub.Assign("deident_nonarr", dataset.DeidentNonarr),
			ub.Assign("deident_kanon", dataset.DeidentKanon),
			ub.Assign("deident_details", dataset.DeidentDetails),
			ub.Assign("consent_type_id", dataset.ConsentTypeID),
			ub.Assign("consent_noncommercial", dataset.ConsentNoncommercial),
			ub.Assign("consent_geog_restrict", dataset.ConsentGeogRestrict),
			ub.Assign("consent_research_type", dataset.ConsentResearchType),
			ub.Assign("consent_genetic_only", dataset.ConsentGeneticOnly),
			ub.Assign("consent_no_methods", dataset.ConsentNoMethods),
			ub.Assign("consent_details", dataset.ConsentDetails),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", dataset.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update object dataset")
		return nil, ServerError("failed to update object dataset")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("object dataset %d does not exist", dataset.ID)
	}
	return r.GetObjectDataset(ctx, dataset.ID)
}

// DeleteObjectDataset removes a dataset profile.
func (r *ObjectRepository) DeleteObjectDataset(ctx context.Context, id int) (int, error) {
	return r.deleteObjectChild(ctx, objectDatasetsTable, id)
}

/* Dates */

// GetObjectDates lists the dated events of an object.
func (r *ObjectRepository) GetObjectDates(ctx context.Context, sdOid string) ([]models.ObjectDate, error) {
	sb := objectDateStruct.SelectFrom(objectDatesTable)
	sb.Where(sb.Equal("sd_oid", sdOid))

	query, args := sb.Build()
	dates := []models.ObjectDate{}
	if err := r.DB().SelectContext(ctx, &dates, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list object dates")
		return nil, ServerError("failed to list object dates")
	}
	return dates, nil
}

// GetObjectDate returns one dated event.
func (r *ObjectRepository) GetObjectDate(ctx context.Context, id int) (*models.ObjectDate, error) {
	sb := objectDateStruct.SelectFrom(objectDatesTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var date models.ObjectDate
	err := r.DB().GetContext(ctx, &date, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("object date %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get object date")
		return nil, ServerError("failed to get object date")
	}
	return &date, nil
}

// CreateObjectDate adds a dated event to an object.
func (r *ObjectRepository) CreateObjectDate(ctx context.Context, date *models.ObjectDate) (*models.ObjectDate, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.CreateObjectDate")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(objectDatesTable).
		Cols("sd_oid", "date_type_id", "date_is_range", "date_as_string",
			"start_year", "start_month", "start_day",
			"end_year", "end_month", "end_day", "details", "last_edited_by").
		Values(date.SdOid, date.DateTypeID, date.DateIsRange, date.DateAsString,
			date.StartYear, date.StartMonth, date.StartDay,
			date.EndYear, date.EndMonth, date.EndDay, date.Details, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create object date")
		return nil, ServerError("failed to create object date")
	}
	return r.GetObjectDate(ctx, id)
}

// UpdateObjectDate rewrites a dated event.
func (r *ObjectRepository) UpdateObjectDate(ctx context.Context, date *models.ObjectDate) (*models.ObjectDate, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.UpdateObjectDate")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(objectDatesTable).
		Set(
			ub.Assign("date_type_id", date.DateTypeID),
			ub.Assign("date_is_range", date.DateIsRange),
			ub.Assign("date_as_string", date.DateAsString),
			ub.Assign("start_year", date.StartYear),
			ub.Assign("start_month", date.StartMonth),
			ub.Assign("start_day", date.StartDay),
			ub.Assign("end_year", date.EndYear),
			ub.Assign("end_month", date.EndMonth),
			ub.Assign("end_day", date.EndDay),
			ub.Assign("details", date.Details),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", date.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update object date")
		return nil, ServerError("failed to update object date")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("object date %d does not exist", date.ID)
	}
	return r.GetObjectDate(ctx, date.ID)
}

// DeleteObjectDate removes a dated event.
func (r *ObjectRepository) DeleteObjectDate(ctx context.Context, id int) (int, error) {
	return r.deleteObjectChild(ctx, objectDatesTable, id)
}

/* Descriptions */

// GetObjectDescriptions lists the descriptions of an object.
func (r *ObjectRepository) GetObjectDescriptions(ctx context.Context, sdOid string) ([]models.ObjectDescription, error) {
	sb := objectDescriptionStruct.SelectFrom(objectDescriptionsTable)
	sb.Where(sb.Equal("sd_oid", sdOid))

	query, args := sb.Build()
	descriptions := []models.ObjectDescription{}
	if err := r.DB().SelectContext(ctx, &descriptions, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list object descriptions")
		return nil, ServerError("failed to list object descriptions")
	}
	return descriptions, nil
}

// GetObjectDescription returns one description record.
func (r *ObjectRepository) GetObjectDescription(ctx context.Context, id int) (*models.ObjectDescription, error) {
	sb := objectDescriptionStruct.SelectFrom(objectDescriptionsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var description models.ObjectDescription
	err := r.DB().GetContext(ctx, &description, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("object description %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get object description")
		return nil, ServerError("failed to get object description")
	}
	return &description, nil
}

// CreateObjectDescription adds a description to an object.
func (r *ObjectRepository) CreateObjectDescription(ctx context.Context, description *models.ObjectDescription) (*models.ObjectDescription, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.CreateObjectDescription")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(objectDescriptionsTable).
		Cols("sd_oid", "description_type_id", "label", "description_text",
			"lang_code", "last_edited_by").
		Values(description.SdOid, description.DescriptionTypeID, description.Label,
			description.DescriptionText, description.LangCode, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create object description")
		return nil, ServerError("failed to create object description")
	}
	return r.GetObjectDescription(ctx, id)
}

// UpdateObjectDescription rewrites a description record.
func (r *ObjectRepository) UpdateObjectDescription(ctx context.Context, description *models.ObjectDescription) (*models.ObjectDescription, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.UpdateObjectDescription")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(objectDescriptionsTable).
		Set(
			ub.Assign("description_type_id", description.DescriptionTypeID),
			ub.Assign("label", description.Label),
			ub.Assign("description_text", description.DescriptionText),
			ub.Assign("lang_code", description.LangCode),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", description.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update object description")
		return nil, ServerError("failed to update object description")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("object description %d does not exist", description.ID)
	}
	return r.GetObjectDescription(ctx, description.ID)
}

// DeleteObjectDescription removes a description record.
func (r *ObjectRepository) DeleteObjectDescription(ctx context.Context, id int) (int, error) {
	return r.deleteObjectChild(ctx, objectDescriptionsTable, id)
}

/* Identifiers */

// GetObjectIdentifiers lists the external identifiers of an object.
func (r *ObjectRepository) GetObjectIdentifiers(ctx context.Context, sdOid string) ([]models.ObjectIdentifier, error) {
	sb := objectIdentifierStruct.SelectFrom(objectIdentifiersTable)
	sb.Where(sb.Equal("sd_oid", sdOid))

	query, args := sb.Build()
	identifiers := []models.ObjectIdentifier{}
	if err := r.DB().SelectContext(ctx, &identifiers, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list object identifiers")
		return nil, ServerError("failed to list object identifiers")
	}
	return identifiers, nil
}

// GetObjectIdentifier returns one identifier record.
func (r *ObjectRepository) GetObjectIdentifier(ctx context.Context, id int) (*models.ObjectIdentifier, error) {
	sb := objectIdentifierStruct.SelectFrom(objectIdentifiersTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var identifier models.ObjectIdentifier
	err := r.DB().GetContext(ctx, &identifier, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("object identifier %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get object identifier")
		return nil, ServerError("failed to get object identifier")
	}
	return &identifier, nil
}

// CreateObjectIdentifier adds an identifier to an object.
func (r *ObjectRepository) CreateObjectIdentifier(ctx context.Context, identifier *models.ObjectIdentifier) (*models.ObjectIdentifier, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.CreateObjectIdentifier")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(objectIdentifiersTable).
		Cols("sd_oid", "identifier_value", "identifier_type_id",
			"identifier_org_id", "identifier_org", "identifier_org_ror_id",
			"identifier_date", "last_edited_by").
		Values(identifier.SdOid, identifier.IdentifierValue, identifier.IdentifierTypeID,
			identifier.IdentifierOrgID, identifier.IdentifierOrg, identifier.IdentifierOrgRorID,
			identifier.IdentifierDate, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create object identifier")
		return nil, ServerError("failed to create object identifier")
	}
	return r.GetObjectIdentifier(ctx, id)
}

// UpdateObjectIdentifier rewrites an identifier record.
func (r *ObjectRepository) UpdateObjectIdentifier(ctx context.Context, identifier *models.ObjectIdentifier) (*models.ObjectIdentifier, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.UpdateObjectIdentifier")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(objectIdentifiersTable).
		Set(
			ub.Assign("identifier_value", identifier.IdentifierValue),
			ub.Assign("identifier_type_id", identifier.IdentifierTypeID),
			ub.Assign("identifier_org_id", identifier.IdentifierOrgID),
			ub.Assign("identifier_org", identifier.IdentifierOrg),
			ub.Assign("identifier_org_ror_id", identifier.IdentifierOrgRorID),
			ub.Assign("identifier_date", identifier.IdentifierDate),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", identifier.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update object identifier")
		return nil, ServerError("failed to update object identifier")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("object identifier %d does not exist", identifier.ID)
	}
	return r.GetObjectIdentifier(ctx, identifier.ID)
}

// DeleteObjectIdentifier removes an identifier record.
func (r *ObjectRepository) DeleteObjectIdentifier(ctx context.Context, id int) (int, error) {
	return r.deleteObjectChild(ctx, objectIdentifiersTable, id)
}

/* Instances */

// GetObjectInstances lists the hosted instances of an object.
func (r *ObjectRepository) GetObjectInstances(ctx context.Context, sdOid string) ([]models.ObjectInstance, error) {
	sb := objectInstanceStruct.SelectFrom(objectInstancesTable)
	sb.Where(sb.Equal("sd_oid", sdOid))

	query, args := sb.Build()
	instances := []models.ObjectInstance{}
	if err := r.DB().SelectContext(ctx, &instances, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list object instances")
		return nil, ServerError("failed to list object instances")
	}
	return instances, nil
}

// GetObjectInstance returns one instance record.
func (r *ObjectRepository) GetObjectInstance(ctx context.Context, id int) (*models.ObjectInstance, error) {
	sb := objectInstanceStruct.SelectFrom(objectInstancesTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var instance models.ObjectInstance
	err := r.DB().GetContext(ctx, &instance, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("object instance %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get object instance")
		return nil, ServerError("failed to get object instance")
	}
	return &instance, nil
}

// CreateObjectInstance adds an instance to an object.
func (r *ObjectRepository) CreateObjectInstance(ctx context.Context, instance *models.ObjectInstance) (*models.ObjectInstance, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.CreateObjectInstance")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(objectInstancesTable).
		Cols("sd_oid", "instance_type_id", "repository_org_id", "repository_org",
			"url", "url_accessible", "url_last_checked", "resource_type_id",
			"resource_size", "resource_size_units", "resource_comments",
			"last_edited_by").
		Values(instance.SdOid, instance.InstanceTypeID, instance.RepositoryOrgID, instance.RepositoryOrg,
			instance.URL, instance.URLAccessible, instance.URLLastChecked, instance.ResourceTypeID,
			instance.ResourceSize, instance.ResourceSizeUnits, instance.ResourceComments,
			EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create object instance")
		return nil, ServerError("failed to create object instance")
	}
	return r.GetObjectInstance(ctx, id)
}

// UpdateObjectInstance rewrites an instance record.
func (r *ObjectRepository) UpdateObjectInstance(ctx context.Context, instance *models.ObjectInstance) (*models.ObjectInstance, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.UpdateObjectInstance")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(objectInstancesTable).
		Set(
			ub.Assign("instance_type_id", instance.InstanceTypeID),
			ub.Assign("repository_org_id", instance.RepositoryOrgID),
			ub.Assign("repository_org", instance.RepositoryOrg),
			ub.Assign("url", instance.URL),
			ub.Assign("url_accessible", instance.URLAccessible),
			ub.Assign("url_last_checked", instance.URLLastChecked),
			ub.Assign("resource_type_id", instance.ResourceTypeID),
			ub.Assign("resource_size", instance.ResourceSize),
			ub.Assign("resource_size_units", instance.ResourceSizeUnits),
			ub.Assign("resource_comments", instance.ResourceComments),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", instance.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update object instance")
		return nil, ServerError("failed to update object instance")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("object instance %d does not exist", instance.ID)
	}
	return r.GetObjectInstance(ctx, instance.ID)
}

// DeleteObjectInstance removes an instance record.
func (r *ObjectRepository) DeleteObjectInstance(ctx context.Context, id int) (int, error) {
	return r.deleteObjectChild(ctx, objectInstancesTable, id)
}

/* Rights */

// GetObjectRights lists the rights statements of an object.
func (r *ObjectRepository) GetObjectRights(ctx context.Context, sdOid string) ([]models.ObjectRight, error) {
	sb := objectRightStruct.SelectFrom(objectRightsTable)
	sb.Where(sb.Equal("sd_oid", sdOid))

	query, args := sb.Build()
	rights := []models.ObjectRight{}
	if err := r.DB().SelectContext(ctx, &rights, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list object rights")
		return nil, ServerError("failed to list object rights")
	}
	return rights, nil
}

// GetObjectRight returns one rights statement.
func (r *ObjectRepository) GetObjectRight(ctx context.Context, id int) (*models.ObjectRight, error) {
	sb := objectRightStruct.SelectFrom(objectRightsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var right models.ObjectRight
	err := r.DB().GetContext(ctx, &right, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("object right %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get object right")
		return nil, ServerError("failed to get object right")
	}
	return &right, nil
}

// CreateObjectRight adds a rights statement to an object.
func (r *ObjectRepository) CreateObjectRight(ctx context.Context, right *models.ObjectRight) (*models.ObjectRight, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.CreateObjectRight")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(objectRightsTable).
		Cols("sd_oid", "rights_name", "rights_uri", "comments", "last_edited_by").
		Values(right.SdOid, right.RightsName, right.RightsURI, right.Comments, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create object right")
		return nil, ServerError("failed to create object right")
	}
	return r.GetObjectRight(ctx, id)
}

// UpdateObjectRight rewrites a rights statement.
func (r *ObjectRepository) UpdateObjectRight(ctx context.Context, right *models.ObjectRight) (*models.ObjectRight, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.UpdateObjectRight")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(objectRightsTable).
		Set(
			ub.Assign("rights_name", right.RightsName),
			ub.Assign("rights_uri", right.RightsURI),
			ub.Assign("comments", right.Comments),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", right.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update object right")
		return nil, ServerError("failed to update object right")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("object right %d does not exist", right.ID)
	}
	return r.GetObjectRight(ctx, right.ID)
}

// DeleteObjectRight removes a rights statement.
func (r *ObjectRepository) DeleteObjectRight(ctx context.Context, id int) (int, error) {
	return r.deleteObjectChild(ctx, objectRightsTable, id)
}

/* Topics */

// GetObjectTopics lists the topic classifications of an object.
func (r *ObjectRepository) GetObjectTopics(ctx context.Context, sdOid string) ([]models.ObjectTopic, error) {
	sb := objectTopicStruct.SelectFrom(objectTopicsTable)
	sb.Where(sb.Equal("sd_oid", sdOid))

	query, args := sb.Build()
	topics := []models.ObjectTopic{}
	if err := r.DB().SelectContext(ctx, &topics, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list object topics")
		return nil, ServerError("failed to list object topics")
	}
	return topics, nil
}

// GetObjectTopic returns one topic record.
func (r *ObjectRepository) GetObjectTopic(ctx context.Context, id int) (*models.ObjectTopic, error) {
	sb := objectTopicStruct.SelectFrom(objectTopicsTable)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var topic models.ObjectTopic
	err := r.DB().GetContext(ctx, &topic, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("object topic %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get object topic")
		return nil, ServerError("failed to get object topic")
	}
	return &topic, nil
}

// CreateObjectTopic adds a topic to an object.
func (r *ObjectRepository) CreateObjectTopic(ctx context.Context, topic *models.ObjectTopic) (*models.ObjectTopic, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.CreateObjectTopic")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(objectTopicsTable).
		Cols("sd_oid", "topic_type_id", "mesh_coded", "mesh_code", "mesh_value",
			"original_ct_id", "original_ct_code", "original_value", "last_edited_by").
		Values(topic.SdOid, topic.TopicTypeID, topic.MeshCoded, topic.MeshCode, topic.MeshValue,
			topic.OriginalCtID, topic.OriginalCtCode, topic.OriginalValue, EditorName(ctx)).
		Returning("id")

	query, args := ib.Build()
	var id int
	if err := r.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create object topic")
		return nil, ServerError("failed to create object topic")
	}
	return r.GetObjectTopic(ctx, id)
}

// UpdateObjectTopic rewrites a topic record.
func (r *ObjectRepository) UpdateObjectTopic(ctx context.Context, topic *models.ObjectTopic) (*models.ObjectTopic, error) {
	ctx, span := tracing.StartSpan(ctx, "ObjectRepository.UpdateObjectTopic")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(objectTopicsTable).
		Set(
			ub.Assign("topic_type_id", topic.TopicTypeID),
			ub.Assign("mesh_coded", topic.MeshCoded),
			ub.Assign("mesh_code", topic.MeshCode),
			ub.Assign("mesh_value", topic.MeshValue),
			ub.Assign("original_ct_id", topic.OriginalCtID),
			ub.Assign("original_ct_code", topic.OriginalCtCode),
			ub.Assign("original_value", topic.OriginalValue),
			ub.Assign("last_edited_by", EditorName(ctx)),
		).
		Where(ub.Equal("id", topic.ID))

	query, args := ub.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update object topic")
		return nil, ServerError("failed to update object topic")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, NotFound("object topic %d does not exist", topic.ID)
	}
	return r.GetObjectTopic(ctx, topic.ID)
}

// DeleteObjectTopic removes a topic record.
func (r *ObjectRepository) DeleteObjectTopic(ctx context.Context, id int) (int, error) {
	return r.deleteObjectChild(ctx, objectTopicsTable, id)
}
