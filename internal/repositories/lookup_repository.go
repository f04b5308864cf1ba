package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/redis/go-redis/v9"

	"github.com/ecrin-rms/rmsbe/pkg/database"
	"github.com/ecrin-rms/rmsbe/pkg/models"
	"github.com/ecrin-rms/rmsbe/pkg/tracing"
)

// lookupTables is the closed mapping from route type names to lookup
// tables. Only names listed here can be queried.
var lookupTables = map[string]string{
	"dtp-status-types":        "lup.dtp_status_types",
	"dup-status-types":        "lup.dup_status_types",
	"object-types":            "lup.object_types",
	"object-classes":          "lup.object_classes",
	"object-access-types":     "lup.object_access_types",
	"check-status-types":      "lup.check_status_types",
	"prereq-types":            "lup.prereq_types",
	"repo-access-types":       "lup.repo_access_types",
	"legal-status-types":      "lup.legal_status_types",
	"title-types":             "lup.title_types",
	"contribution-types":      "lup.contribution_types",
	"dataset-recordkey-types": "lup.dataset_recordkey_types",
	"dataset-deident-types":   "lup.dataset_deidentification_types",
	"dataset-consent-types":   "lup.dataset_consent_types",
	"date-types":              "lup.date_types",
	"description-types":       "lup.description_types",
	"identifier-types":        "lup.identifier_types",
	"instance-types":          "lup.object_instance_types",
	"resource-types":          "lup.resource_types",
	"rights-types":            "lup.rights_types",
	"topic-types":             "lup.topic_types",
	"relationship-types":      "lup.object_relationship_types",
	"language-usage-types":    "lup.lang_usage_types",
	"doi-status-types":        "lup.doi_status_types",
	"role-classes":            "lup.role_classes",
	"secondary-use-types":     "lup.secondary_use_types",
	"organisation-types":      "lup.org_types",
	"time-units":              "lup.time_units",
}

// LookupRepository serves the lup reference tables by route type name,
// optionally fronted by a redis TTL cache.
type LookupRepository struct {
	*Repository
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewLookupRepository creates a new lookup repository. A nil cache client
// disables caching.
func NewLookupRepository(db database.DB, logger ectologger.Logger, cache *redis.Client, cacheTTL time.Duration) *LookupRepository {
	return &LookupRepository{
		Repository: NewRepository(db, logger),
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// LookupTypeKnown reports whether the route type name maps to a table.
func LookupTypeKnown(typeName string) bool {
	_, ok := lookupTables[typeName]
	return ok
}

// GetLookupValues returns the id/name pairs of one lookup table, in list
// order. An unknown type name is a bad request, not a query.
func (r *LookupRepository) GetLookupValues(ctx context.Context, typeName string) ([]models.Lup, error) {
	ctx, span := tracing.StartSpan(ctx, "LookupRepository.GetLookupValues")
	defer span.End()

	table, ok := lookupTables[typeName]
	if !ok {
		return nil, BadRequest("unknown lookup type %s", typeName)
	}

	cacheKey := "lookup:" + typeName
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			values := []models.Lup{}
			if err = json.Unmarshal(cached, &values); err == nil {
				return values, nil
			}
		}
	}

	values := []models.Lup{}
	err := r.DB().SelectContext(ctx, &values,
		"select id, name from "+table+" order by list_order, name")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Errorf("failed to read lookup table %s", table)
		return nil, ServerError("failed to read lookup values")
	}

	if r.cache != nil {
		if encoded, err := json.Marshal(values); err == nil {
			if err = r.cache.Set(ctx, cacheKey, encoded, r.cacheTTL).Err(); err != nil {
				r.logger.WithContext(ctx).WithError(err).Warn("failed to cache lookup values")
			}
		}
	}
	return values, nil
}

// GetLookupName resolves one code in one lookup table to its display
// name. Used by the statistics service when labelling grouped counts.
func (r *LookupRepository) GetLookupName(ctx context.Context, typeName string, id int) (string, error) {
	values, err := r.GetLookupValues(ctx, typeName)
	if err != nil {
		return "", err
	}
	for _, v := range values {
		if v.ID == id && v.Name != nil {
			return *v.Name, nil
		}
	}
	return "", NotFound("lookup type %s has no code %d", typeName, id)
}
