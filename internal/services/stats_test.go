package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"profico-inventory/internal/authz"
	"profico-inventory/pkg/types"
	"profico-inventory/pkg/utils"
)

type fakeStatsRepo struct {
	calls int
}

func (r *fakeStatsRepo) GetStatusCounts(ctx context.Context) (*types.WorkflowStats, error) {
	r.calls++
	return &types.WorkflowStats{
		TotalEquipment:     12,
		AvailableEquipment: 5,
		AssignedEquipment:  4,
	}, nil
}

func (r *fakeStatsRepo) GetPendingActions(ctx context.Context) (int64, error) { return 3, nil }
func (r *fakeStatsRepo) GetRecentActivity(ctx context.Context) (int64, error) { return 7, nil }

func (r *fakeStatsRepo) GetCategoryDistribution(ctx context.Context) ([]types.CategoryCount, error) {
	return []types.CategoryCount{{Category: "laptop", Count: 8}, {Category: "monitor", Count: 4}}, nil
}

func (r *fakeStatsRepo) GetMonthlyTrend(ctx context.Context) ([]types.MonthlyTrendPoint, error) {
	return []types.MonthlyTrendPoint{{Month: "2026-08", Total: 2}}, nil
}

func (r *fakeStatsRepo) GetMaintenanceByStatus(ctx context.Context) ([]types.StatusCount, error) {
	return []types.StatusCount{{Status: "scheduled", Count: 1}}, nil
}

func (r *fakeStatsRepo) GetAgeDistribution(ctx context.Context) ([]types.AgeBucket, error) {
	return []types.AgeBucket{{Bucket: "0-1", Count: 6}}, nil
}

func (r *fakeStatsRepo) GetTopAssignees(ctx context.Context) ([]types.AssigneeCount, error) {
	return []types.AssigneeCount{{UserID: 3, Name: "Сотрудник", Count: 2}}, nil
}

func (r *fakeStatsRepo) GetBillingStats(ctx context.Context) (*types.BillingStats, error) {
	return &types.BillingStats{ActiveSubscriptions: 3, MonthlySpend: 1110.00}, nil
}

func TestWorkflowStatsComposition(t *testing.T) {
	statsRepo := &fakeStatsRepo{}
	svc := NewStatsService(statsRepo, newFakeCacheRepo(), time.Minute, zap.NewNop())
	ctx := utils.WithActor(context.Background(), 1, authz.RoleAdmin)

	stats, err := svc.GetWorkflowStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(12), stats.TotalEquipment)
	assert.Equal(t, int64(3), stats.PendingActions)
	assert.Equal(t, int64(7), stats.RecentActivity)
	assert.Len(t, stats.CategoryDistribution, 2)
	assert.Len(t, stats.MonthlyTrend, 1)
	assert.Len(t, stats.AgeDistribution, 1)
	assert.Len(t, stats.TopAssignees, 1)
}

func TestWorkflowStatsServedFromCache(t *testing.T) {
	statsRepo := &fakeStatsRepo{}
	cacheRepo := newFakeCacheRepo()
	svc := NewStatsService(statsRepo, cacheRepo, time.Minute, zap.NewNop())
	ctx := utils.WithActor(context.Background(), 1, authz.RoleAdmin)

	_, err := svc.GetWorkflowStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, statsRepo.calls)

	// Второй запрос читает кеш и не трогает БД.
	stats, err := svc.GetWorkflowStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, statsRepo.calls)
	assert.Equal(t, int64(12), stats.TotalEquipment)
}

func TestWorkflowStatsRecomputedOnBrokenCache(t *testing.T) {
	statsRepo := &fakeStatsRepo{}
	cacheRepo := newFakeCacheRepo()
	cacheRepo.store[statsCacheKey] = "{это не json"
	core, logs := observer.New(zap.WarnLevel)
	svc := NewStatsService(statsRepo, cacheRepo, time.Minute, zap.New(core))
	ctx := utils.WithActor(context.Background(), 1, authz.RoleAdmin)

	stats, err := svc.GetWorkflowStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, statsRepo.calls)
	assert.Equal(t, int64(12), stats.TotalEquipment)

	// В warn попадает именно ошибка разбора кеша, а не nil.
	entries := logs.FilterMessage("кеш статистики не распарсился, пересчитываем").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Contains(t, fields, "error")
	assert.NotEmpty(t, fields["error"])
}

func TestWorkflowStatsVisibleToAllRoles(t *testing.T) {
	svc := NewStatsService(&fakeStatsRepo{}, newFakeCacheRepo(), time.Minute, zap.NewNop())

	for _, role := range []authz.Role{authz.RoleAdmin, authz.RoleTeamLead, authz.RoleUser} {
		ctx := utils.WithActor(context.Background(), 1, role)
		_, err := svc.GetWorkflowStats(ctx)
		assert.NoError(t, err, "роль %s должна видеть дашборд", role)
	}
}

func TestBillingStatsHiddenFromPlainUser(t *testing.T) {
	svc := NewStatsService(&fakeStatsRepo{}, newFakeCacheRepo(), time.Minute, zap.NewNop())

	ctx := utils.WithActor(context.Background(), 3, authz.RoleUser)
	_, err := svc.GetBillingStats(ctx)
	assert.Equal(t, 403, httpCode(t, err))

	ctx = utils.WithActor(context.Background(), 2, authz.RoleTeamLead)
	stats, err := svc.GetBillingStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.ActiveSubscriptions)
}
