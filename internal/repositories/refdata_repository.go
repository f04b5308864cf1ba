package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Gobusters/ectologger"

	"github.com/ecrin-rms/rmsbe/pkg/database"
	"github.com/ecrin-rms/rmsbe/pkg/models"
	"github.com/ecrin-rms/rmsbe/pkg/tracing"
)

// langNameField maps the requested interface language to the name column.
// Anything other than French or German falls back to English.
func langNameField(nameLang string) string {
	switch {
	case strings.HasPrefix(strings.ToLower(nameLang), "fr"):
		return "lang_name_fr"
	case strings.HasPrefix(strings.ToLower(nameLang), "de"):
		return "lang_name_de"
	default:
		return "lang_name_en"
	}
}

// RefDataRepository serves the contextual reference data: organisations,
// their searchable names, languages and people.
type RefDataRepository struct {
	*Repository
}

// NewRefDataRepository creates a new reference data repository
func NewRefDataRepository(db database.DB, logger ectologger.Logger) *RefDataRepository {
	return &RefDataRepository{
		Repository: NewRepository(db, logger),
	}
}

/* Organisations */

// OrgExists reports whether an organisation record exists.
func (r *RefDataRepository) OrgExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.DB().GetContext(ctx, &exists,
		"select exists (select 1 from lup.organisations where id = $1)", id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed org existence check")
		return false, ServerError("failed org existence check")
	}
	return exists, nil
}

// GetOrgs returns every organisation as an id/name pair, by name.
func (r *RefDataRepository) GetOrgs(ctx context.Context) ([]models.Org, error) {
	ctx, span := tracing.StartSpan(ctx, "RefDataRepository.GetOrgs")
	defer span.End()

	orgs := []models.Org{}
	err := r.DB().SelectContext(ctx, &orgs,
		"select id, default_name from lup.organisations order by default_name")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list orgs")
		return nil, ServerError("failed to list orgs")
	}
	return orgs, nil
}

// GetFilteredOrgs returns organisations whose default name contains the
// filter.
func (r *RefDataRepository) GetFilteredOrgs(ctx context.Context, filter string) ([]models.Org, error) {
	ctx, span := tracing.StartSpan(ctx, "RefDataRepository.GetFilteredOrgs")
	defer span.End()

	orgs := []models.Org{}
	err := r.DB().SelectContext(ctx, &orgs,
		"select id, default_name from lup.organisations where default_name ilike $1 order by default_name",
		"%"+filter+"%")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list filtered orgs")
		return nil, ServerError("failed to list filtered orgs")
	}
	return orgs, nil
}

// GetOrgsToSearch returns the curated subset of organisations offered for
// interactive search.
func (r *RefDataRepository) GetOrgsToSearch(ctx context.Context) ([]models.Org, error) {
	ctx, span := tracing.StartSpan(ctx, "RefDataRepository.GetOrgsToSearch")
	defer span.End()

	orgs := []models.Org{}
	err := r.DB().SelectContext(ctx, &orgs,
		"select id, default_name from lup.orgs_to_search order by default_name")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list orgs to search")
		return nil, ServerError("failed to list orgs to search")
	}
	return orgs, nil
}

// GetFilteredOrgsToSearch returns searchable organisations whose default
// name contains the filter.
func (r *RefDataRepository) GetFilteredOrgsToSearch(ctx context.Context, filter string) ([]models.Org, error) {
	ctx, span := tracing.StartSpan(ctx, "RefDataRepository.GetFilteredOrgsToSearch")
	defer span.End()

	orgs := []models.Org{}
	err := r.DB().SelectContext(ctx, &orgs,
		"select id, default_name from lup.orgs_to_search where default_name ilike $1 order by default_name",
		"%"+filter+"%")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list filtered orgs to search")
		return nil, ServerError("failed to list filtered orgs to search")
	}
	return orgs, nil
}

// orgNameSelect renders alias names with a pointer to the organisation
// they belong to, so a hit on an alias is still unambiguous.
const orgNameSelect = `select n.id, n.org_id,
		case
			when n.qualifier_id = 1 then n.name
			else n.name ||' (--> '|| g.default_name ||')'
		end as name,
		g.default_name
		from lup.org_names n
		inner join lup.organisations g on n.org_id = g.id`

// GetOrgNames returns every searchable organisation name, aliases
// annotated with their owning organisation.
func (r *RefDataRepository) GetOrgNames(ctx context.Context) ([]models.OrgName, error) {
	ctx, span := tracing.StartSpan(ctx, "RefDataRepository.GetOrgNames")
	defer span.End()

	names := []models.OrgName{}
	if err := r.DB().SelectContext(ctx, &names, orgNameSelect+" order by n.name"); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list org names")
		return nil, ServerError("failed to list org names")
	}
	return names, nil
}

// GetFilteredOrgNames returns searchable names containing the filter.
func (r *RefDataRepository) GetFilteredOrgNames(ctx context.Context, filter string) ([]models.OrgName, error) {
	ctx, span := tracing.StartSpan(ctx, "RefDataRepository.GetFilteredOrgNames")
	defer span.End()

	names := []models.OrgName{}
	err := r.DB().SelectContext(ctx, &names,
		orgNameSelect+" where n.name ilike $1 order by n.name", "%"+filter+"%")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list filtered org names")
		return nil, ServerError("failed to list filtered org names")
	}
	return names, nil
}

/* Languages */

// LangCodeExists reports whether a language code is known.
func (r *RefDataRepository) LangCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.DB().GetContext(ctx, &exists,
		"select exists (select 1 from lup.language_codes where code = $1)", code)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed language code existence check")
		return false, ServerError("failed language code existence check")
	}
	return exists, nil
}

// LangNameExists reports whether a language name is known in the given
// interface language.
func (r *RefDataRepository) LangNameExists(ctx context.Context, name, nameLang string) (bool, error) {
	var exists bool
	field := langNameField(nameLang)
	err := r.DB().GetContext(ctx, &exists,
		"select exists (select 1 from lup.language_codes where "+field+" = $1)", name)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed language name existence check")
		return false, ServerError("failed language name existence check")
	}
	return exists, nil
}

// GetLangCodes returns every language as a code/name pair, names rendered
// in the requested interface language.
func (r *RefDataRepository) GetLangCodes(ctx context.Context, nameLang string) ([]models.LangCode, error) {
	ctx, span := tracing.StartSpan(ctx, "RefDataRepository.GetLangCodes")
	defer span.End()

	field := langNameField(nameLang)
	codes := []models.LangCode{}
	err := r.DB().SelectContext(ctx, &codes,
		"select code, "+field+" as name from lup.language_codes order by "+field)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list language codes")
		return nil, ServerError("failed to list language codes")
	}
	return codes, nil
}

// GetMajorLangCodes returns the major languages as code/name pairs.
func (r *RefDataRepository) GetMajorLangCodes(ctx context.Context, nameLang string) ([]models.LangCode, error) {
	ctx, span := tracing.StartSpan(ctx, "RefDataRepository.GetMajorLangCodes")
	defer span.End()

	field := langNameField(nameLang)
	codes := []models.LangCode{}
	err := r.DB().SelectContext(ctx, &codes,
		"select code, "+field+" as name from lup.language_codes where is_major = true order by "+field)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list major language codes")
		return nil, ServerError("failed to list major language codes")
	}
	return codes, nil
}

// GetLangDetailsFromCode returns the full language record for a code.
func (r *RefDataRepository) GetLangDetailsFromCode(ctx context.Context, code string) (*models.LangDetails, error) {
	ctx, span := tracing.StartSpan(ctx, "RefDataRepository.GetLangDetailsFromCode")
	defer span.End()

	var details models.LangDetails
	err := r.DB().GetContext(ctx, &details,
		"select * from lup.language_codes where code = $1", code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("language code %s does not exist", code)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get language details")
		return nil, ServerError("failed to get language details")
	}
	return &details, nil
}

// GetLangDetailsFromName returns the full language record for a name in
// the given interface language.
func (r *RefDataRepository) GetLangDetailsFromName(ctx context.Context, name, nameLang string) (*models.LangDetails, error) {
	ctx, span := tracing.StartSpan(ctx, "RefDataRepository.GetLangDetailsFromName")
	defer span.End()

	field := langNameField(nameLang)
	var details models.LangDetails
	err := r.DB().GetContext(ctx, &details,
		"select * from lup.language_codes where "+field+" = $1", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("language %s does not exist", name)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get language details")
		return nil, ServerError("failed to get language details")
	}
	return &details, nil
}

/* People */

// PersonExists reports whether a person record exists.
func (r *RefDataRepository) PersonExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.DB().GetContext(ctx, &exists,
		"select exists (select 1 from rms.people where id = $1)", id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed person existence check")
		return false, ServerError("failed person existence check")
	}
	return exists, nil
}

// GetPeople returns every person record, by family name.
func (r *RefDataRepository) GetPeople(ctx context.Context) ([]models.Person, error) {
	ctx, span := tracing.StartSpan(ctx, "RefDataRepository.GetPeople")
	defer span.End()

	people := []models.Person{}
	err := r.DB().SelectContext(ctx, &people,
		"select * from rms.people order by family_name, given_name")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list people")
		return nil, ServerError("failed to list people")
	}
	return people, nil
}

// GetFilteredPeople returns people whose full name contains the filter.
func (r *RefDataRepository) GetFilteredPeople(ctx context.Context, filter string) ([]models.Person, error) {
	ctx, span := tracing.StartSpan(ctx, "RefDataRepository.GetFilteredPeople")
	defer span.End()

	people := []models.Person{}
	err := r.DB().SelectContext(ctx, &people,
		"select * from rms.people where full_name ilike $1 order by family_name, given_name",
		"%"+filter+"%")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list filtered people")
		return nil, ServerError("failed to list filtered people")
	}
	return people, nil
}

// GetPerson returns one person record.
func (r *RefDataRepository) GetPerson(ctx context.Context, id int) (*models.Person, error) {
	ctx, span := tracing.StartSpan(ctx, "RefDataRepository.GetPerson")
	defer span.End()

	var person models.Person
	err := r.DB().GetContext(ctx, &person, "select * from rms.people where id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound("person %d does not exist", id)
	}
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to get person")
		return nil, ServerError("failed to get person")
	}
	return &person, nil
}
