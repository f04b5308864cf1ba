package stats

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecrin-rms/rmsbe/pkg/models"
)

type stubDtpCounter struct {
	total         int
	filteredTotal int
	completed     int
	byStatus      []models.StatByType
}

func (s *stubDtpCounter) GetTotalDtps(context.Context) (int, error)     { return s.total, nil }
func (s *stubDtpCounter) GetCompletedDtps(context.Context) (int, error) { return s.completed, nil }
func (s *stubDtpCounter) GetTotalFilteredDtps(context.Context, string) (int, error) {
	return s.filteredTotal, nil
}
func (s *stubDtpCounter) GetDtpsByStatus(context.Context) ([]models.StatByType, error) {
	return s.byStatus, nil
}

type stubDupCounter struct {
	total         int
	filteredTotal int
	completed     int
	byStatus      []models.StatByType
}

func (s *stubDupCounter) GetTotalDups(context.Context) (int, error)     { return s.total, nil }
func (s *stubDupCounter) GetCompletedDups(context.Context) (int, error) { return s.completed, nil }
func (s *stubDupCounter) GetTotalFilteredDups(context.Context, string) (int, error) {
	return s.filteredTotal, nil
}
func (s *stubDupCounter) GetDupsByStatus(context.Context) ([]models.StatByType, error) {
	return s.byStatus, nil
}

type stubObjectCounter struct {
	total         int
	filteredTotal int
	byType        []models.StatByType
}

func (s *stubObjectCounter) GetTotalObjects(context.Context) (int, error) { return s.total, nil }
func (s *stubObjectCounter) GetTotalFilteredObjects(context.Context, string) (int, error) {
	return s.filteredTotal, nil
}
func (s *stubObjectCounter) GetObjectsByType(context.Context) ([]models.StatByType, error) {
	return s.byType, nil
}

type stubLookupResolver struct {
	values map[string][]models.Lup
}

func (s *stubLookupResolver) GetLookupValues(_ context.Context, typeName string) ([]models.Lup, error) {
	return s.values[typeName], nil
}

func strPtr(s string) *string { return &s }

func newTestService() *Service {
	return NewService(
		&stubDtpCounter{
			total:         10,
			filteredTotal: 3,
			completed:     4,
			byStatus: []models.StatByType{
				{StatType: 1, StatValue: 6},
				{StatType: 2, StatValue: 3},
				{StatType: 99, StatValue: 1},
			},
		},
		&stubDupCounter{total: 5, completed: 5},
		&stubObjectCounter{
			total: 7,
			byType: []models.StatByType{
				{StatType: 12, StatValue: 4},
				{StatType: 80, StatValue: 3},
			},
		},
		&stubLookupResolver{values: map[string][]models.Lup{
			"dtp-status-types": {
				{ID: 1, Name: strPtr("set up")},
				{ID: 2, Name: strPtr("in progress")},
			},
			"object-types": {
				{ID: 12, Name: strPtr("journal article")},
				{ID: 80, Name: strPtr("individual participant data")},
			},
		}},
		ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {}),
	)
}

func TestGetDtpCompletion(t *testing.T) {
	svc := newTestService()

	stats, err := svc.GetDtpCompletion(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, models.Statistic{StatType: "Total", StatValue: 10}, stats[0])
	assert.Equal(t, models.Statistic{StatType: "Incomplete", StatValue: 6}, stats[1])
}

func TestGetDupCompletion_AllComplete(t *testing.T) {
	svc := newTestService()

	stats, err := svc.GetDupCompletion(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 5, stats[0].StatValue)
	assert.Equal(t, 0, stats[1].StatValue)
}

func TestGetDtpsByStatus_LabelsUnknownCodes(t *testing.T) {
	svc := newTestService()

	stats, err := svc.GetDtpsByStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, "set up", stats[0].StatType)
	assert.Equal(t, "in progress", stats[1].StatType)
	assert.Equal(t, unknownTypeName, stats[2].StatType)
	assert.Equal(t, 1, stats[2].StatValue)
}

func TestGetObjectsByType(t *testing.T) {
	svc := newTestService()

	stats, err := svc.GetObjectsByType(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "journal article", stats[0].StatType)
	assert.Equal(t, 4, stats[0].StatValue)
	assert.Equal(t, "individual participant data", stats[1].StatType)
}

func TestGetObjectTotal(t *testing.T) {
	svc := newTestService()

	stat, err := svc.GetObjectTotal(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, models.Statistic{StatType: "Total", StatValue: 7}, stat)
}

func TestGetDtpTotal_Filtered(t *testing.T) {
	svc := newTestService()

	stat, err := svc.GetDtpTotal(context.Background(), "covid")
	require.NoError(t, err)
	assert.Equal(t, 3, stat.StatValue)

	stat, err = svc.GetDtpTotal(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 10, stat.StatValue)
}
