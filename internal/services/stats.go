package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"profico-inventory/internal/authz"
	"profico-inventory/internal/repositories"
	apperrors "profico-inventory/pkg/errors"
	"profico-inventory/pkg/metrics"
	"profico-inventory/pkg/types"
	"profico-inventory/pkg/utils"
)

type StatsServiceInterface interface {
	GetWorkflowStats(ctx context.Context) (*types.WorkflowStats, error)
	GetBillingStats(ctx context.Context) (*types.BillingStats, error)
}

// statsService собирает сводку дашборда. Каждая под-метрика - отдельный
// запрос; взаимная консистентность между ними не гарантируется, это
// осознанный размен на простоту и скорость. Готовая сводка кешируется
// в Redis на короткий TTL.
type statsService struct {
	statsRepo repositories.StatsRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewStatsService(
	statsRepo repositories.StatsRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) StatsServiceInterface {
	return &statsService{
		statsRepo: statsRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func (s *statsService) GetWorkflowStats(ctx context.Context) (*types.WorkflowStats, error) {
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Требуется аутентификация", err)
	}
	if !authz.Can(role, authz.StatsView) {
		return nil, apperrors.NewForbiddenError("Недостаточно прав для просмотра статистики")
	}

	if cached, err := s.cacheRepo.Get(ctx, statsCacheKey); err == nil && cached != "" {
		var stats types.WorkflowStats
		unmarshalErr := json.Unmarshal([]byte(cached), &stats)
		if unmarshalErr == nil {
			metrics.StatsCacheHitsTotal.Inc()
			return &stats, nil
		}
		// Повреждённый кеш пересчитываем из БД.
		s.logger.Warn("кеш статистики не распарсился, пересчитываем", zap.Error(unmarshalErr))
	}

	stats, err := s.statsRepo.GetStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	if stats.PendingActions, err = s.statsRepo.GetPendingActions(ctx); err != nil {
		return nil, err
	}
	if stats.RecentActivity, err = s.statsRepo.GetRecentActivity(ctx); err != nil {
		return nil, err
	}
	if stats.CategoryDistribution, err = s.statsRepo.GetCategoryDistribution(ctx); err != nil {
		return nil, err
	}
	if stats.MonthlyTrend, err = s.statsRepo.GetMonthlyTrend(ctx); err != nil {
		return nil, err
	}
	if stats.MaintenanceByStatus, err = s.statsRepo.GetMaintenanceByStatus(ctx); err != nil {
		return nil, err
	}
	if stats.AgeDistribution, err = s.statsRepo.GetAgeDistribution(ctx); err != nil {
		return nil, err
	}
	if stats.TopAssignees, err = s.statsRepo.GetTopAssignees(ctx); err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.cacheRepo.Set(ctx, statsCacheKey, payload, s.cacheTTL); err != nil {
			s.logger.Warn("не удалось записать кеш статистики", zap.Error(err))
		}
	}

	return stats, nil
}

func (s *statsService) GetBillingStats(ctx context.Context) (*types.BillingStats, error) {
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Требуется аутентификация", err)
	}
	if !authz.Can(role, authz.BillingView) {
		return nil, apperrors.NewForbiddenError("Недостаточно прав для просмотра биллинга")
	}
	return s.statsRepo.GetBillingStats(ctx)
}
