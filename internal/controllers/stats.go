package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"profico-inventory/internal/services"
	"profico-inventory/pkg/utils"
)

type StatsController struct {
	statsService services.StatsServiceInterface
	logger       *zap.Logger
}

func NewStatsController(statsService services.StatsServiceInterface, logger *zap.Logger) *StatsController {
	return &StatsController{statsService: statsService, logger: logger}
}

// GetWorkflowStats - сводка дашборда (GET /equipment/workflow-stats).
func (c *StatsController) GetWorkflowStats(ctx echo.Context) error {
	stats, err := c.statsService.GetWorkflowStats(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "Статистика получена", http.StatusOK)
}

// GetBillingStats - счётчики подписок и счетов (GET /billing/stats).
func (c *StatsController) GetBillingStats(ctx echo.Context) error {
	stats, err := c.statsService.GetBillingStats(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "Статистика биллинга получена", http.StatusOK)
}
