// Package stats composes record counts into labelled statistics, resolving
// grouped type codes to display names through the lookup tables.
package stats

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/ecrin-rms/rmsbe/pkg/models"
)

// Label applied when a grouped code has no entry in its lookup table.
const unknownTypeName = "not known"

// DtpCounter supplies transfer process counts.
type DtpCounter interface {
	GetTotalDtps(ctx context.Context) (int, error)
	GetTotalFilteredDtps(ctx context.Context, titleFilter string) (int, error)
	GetCompletedDtps(ctx context.Context) (int, error)
	GetDtpsByStatus(ctx context.Context) ([]models.StatByType, error)
}

// DupCounter supplies use process counts.
type DupCounter interface {
	GetTotalDups(ctx context.Context) (int, error)
	GetTotalFilteredDups(ctx context.Context, titleFilter string) (int, error)
	GetCompletedDups(ctx context.Context) (int, error)
	GetDupsByStatus(ctx context.Context) ([]models.StatByType, error)
}

// ObjectCounter supplies data object counts.
type ObjectCounter interface {
	GetTotalObjects(ctx context.Context) (int, error)
	GetTotalFilteredObjects(ctx context.Context, titleFilter string) (int, error)
	GetObjectsByType(ctx context.Context) ([]models.StatByType, error)
}

// LookupResolver resolves lookup type codes to display names.
type LookupResolver interface {
	GetLookupValues(ctx context.Context, typeName string) ([]models.Lup, error)
}

// Service assembles statistics across the three aggregates.
type Service struct {
	dtps    DtpCounter
	dups    DupCounter
	objects ObjectCounter
	lookups LookupResolver
	logger  ectologger.Logger
}

// NewService creates a new statistics service
func NewService(dtps DtpCounter, dups DupCounter, objects ObjectCounter, lookups LookupResolver, logger ectologger.Logger) *Service {
	return &Service{
		dtps:    dtps,
		dups:    dups,
		objects: objects,
		lookups: lookups,
		logger:  logger,
	}
}

// nameMap fetches one lookup table as an id-to-name map for labelling a
// grouped result. The map is built per call, lookup tables are small.
func (s *Service) nameMap(ctx context.Context, typeName string) (map[int]string, error) {
	values, err := s.lookups.GetLookupValues(ctx, typeName)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(values))
	for _, v := range values {
		if v.Name != nil {
			names[v.ID] = *v.Name
		}
	}
	return names, nil
}

// labelled converts grouped counts to named statistics. A code missing
// from the lookup table is labelled rather than dropped.
func labelled(stats []models.StatByType, names map[int]string) []models.Statistic {
	out := make([]models.Statistic, 0, len(stats))
	for _, st := range stats {
		name, ok := names[st.StatType]
		if !ok {
			name = unknownTypeName
		}
		out = append(out, models.Statistic{StatType: name, StatValue: st.StatValue})
	}
	return out
}

// completion expresses a total and its completed share as a Total /
// Incomplete pair.
func completion(total, completed int) []models.Statistic {
	return []models.Statistic{
		{StatType: "Total", StatValue: total},
		{StatType: "Incomplete", StatValue: total - completed},
	}
}

/* Transfer processes */

// GetDtpTotal returns the number of transfer processes, optionally
// restricted to display names containing the filter.
func (s *Service) GetDtpTotal(ctx context.Context, titleFilter string) (models.Statistic, error) {
	var (
		total int
		err   error
	)
	if titleFilter != "" {
		total, err = s.dtps.GetTotalFilteredDtps(ctx, titleFilter)
	} else {
		total, err = s.dtps.GetTotalDtps(ctx)
	}
	if err != nil {
		return models.Statistic{}, err
	}
	return models.Statistic{StatType: "Total", StatValue: total}, nil
}

// GetDtpCompletion returns the transfer process completion pair.
func (s *Service) GetDtpCompletion(ctx context.Context) ([]models.Statistic, error) {
	total, err := s.dtps.GetTotalDtps(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.dtps.GetCompletedDtps(ctx)
	if err != nil {
		return nil, err
	}
	return completion(total, completed), nil
}

// GetDtpsByStatus returns transfer process counts grouped by status, with
// status names resolved.
func (s *Service) GetDtpsByStatus(ctx context.Context) ([]models.Statistic, error) {
	grouped, err := s.dtps.GetDtpsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.nameMap(ctx, "dtp-status-types")
	if err != nil {
		return nil, err
	}
	return labelled(grouped, names), nil
}

/* Use processes */

// GetDupTotal returns the number of use processes, optionally restricted
// to display names containing the filter.
func (s *Service) GetDupTotal(ctx context.Context, titleFilter string) (models.Statistic, error) {
	var (
		total int
		err   error
	)
	if titleFilter != "" {
		total, err = s.dups.GetTotalFilteredDups(ctx, titleFilter)
	} else {
		total, err = s.dups.GetTotalDups(ctx)
	}
	if err != nil {
		return models.Statistic{}, err
	}
	return models.Statistic{StatType: "Total", StatValue: total}, nil
}

// GetDupCompletion returns the use process completion pair.
func (s *Service) GetDupCompletion(ctx context.Context) ([]models.Statistic, error) {
	total, err := s.dups.GetTotalDups(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.dups.GetCompletedDups(ctx)
	if err != nil {
		return nil, err
	}
	return completion(total, completed), nil
}

// GetDupsByStatus returns use process counts grouped by status, with
// status names resolved.
func (s *Service) GetDupsByStatus(ctx context.Context) ([]models.Statistic, error) {
	grouped, err := s.dups.GetDupsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.nameMap(ctx, "dup-status-types")
	if err != nil {
		return nil, err
	}
	return labelled(grouped, names), nil
}

/* Data objects */

// GetObjectTotal returns the number of data objects, optionally restricted
// to display titles containing the filter.
func (s *Service) GetObjectTotal(ctx context.Context, titleFilter string) (models.Statistic, error) {
	var (
		total int
		err   error
	)
	if titleFilter != "" {
		total, err = s.objects.GetTotalFilteredObjects(ctx, titleFilter)
	} else {
		total, err = s.objects.GetTotalObjects(ctx)
	}
	if err != nil {
		return models.Statistic{}, err
	}
	return models.Statistic{StatType: "Total", StatValue: total}, nil
}

// GetObjectsByType returns object counts grouped by object type, with
// type names resolved.
func (s *Service) GetObjectsByType(ctx context.Context) ([]models.Statistic, error) {
	grouped, err := s.objects.GetObjectsByType(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.nameMap(ctx, "object-types")
	if err != nil {
		return nil, err
	}
	return labelled(grouped, names), nil
}
