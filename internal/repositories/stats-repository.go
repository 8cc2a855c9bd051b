package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"profico-inventory/pkg/types"
)

// StatsRepositoryInterface - чтение агрегатов для дашбордов. Каждая
// под-метрика - один запрос; внутри запроса счётчики консистентны,
// между запросами snapshot-консистентность не требуется.
type StatsRepositoryInterface interface {
	GetStatusCounts(ctx context.Context) (*types.WorkflowStats, error)
	GetPendingActions(ctx context.Context) (int64, error)
	GetRecentActivity(ctx context.Context) (int64, error)
	GetCategoryDistribution(ctx context.Context) ([]types.CategoryCount, error)
	GetMonthlyTrend(ctx context.Context) ([]types.MonthlyTrendPoint, error)
	GetMaintenanceByStatus(ctx context.Context) ([]types.StatusCount, error)
	GetAgeDistribution(ctx context.Context) ([]types.AgeBucket, error)
	GetTopAssignees(ctx context.Context) ([]types.AssigneeCount, error)
	GetBillingStats(ctx context.Context) (*types.BillingStats, error)
}

type StatsRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewStatsRepository(storage *pgxpool.Pool, logger *zap.Logger) StatsRepositoryInterface {
	return &StatsRepository{storage: storage, logger: logger}
}

// GetStatusCounts - общий счётчик и разбивка по четырём рабочим статусам
// одним проходом по таблице.
func (r *StatsRepository) GetStatusCounts(ctx context.Context) (*types.WorkflowStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'available'),
			COUNT(*) FILTER (WHERE status = 'assigned'),
			COUNT(*) FILTER (WHERE status = 'maintenance'),
			COUNT(*) FILTER (WHERE status = 'broken')
		FROM equipments`

	stats := &types.WorkflowStats{}
	err := r.storage.QueryRow(ctx, query).Scan(
		&stats.TotalEquipment,
		&stats.AvailableEquipment,
		&stats.AssignedEquipment,
		&stats.MaintenanceEquipment,
		&stats.BrokenEquipment,
	)
	return stats, err
}

// GetPendingActions - объединение условий "требует внимания":
// статус maintenance/broken ИЛИ выданное оборудование с просроченным
// ТО либо истёкшей гарантией. Семантика union сохранена как есть,
// без приоритета между ветками.
func (r *StatsRepository) GetPendingActions(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM equipments
		WHERE status IN ('maintenance', 'broken')
		   OR (status = 'assigned' AND (next_maintenance_date < NOW() OR warranty_expiry < NOW()))`

	var count int64
	err := r.storage.QueryRow(ctx, query).Scan(&count)
	return count, err
}

// GetRecentActivity - записи журнала за скользящие 7 суток.
func (r *StatsRepository) GetRecentActivity(ctx context.Context) (int64, error) {
	var count int64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM equipment_history WHERE created_at >= NOW() - INTERVAL '7 days'`,
	).Scan(&count)
	return count, err
}

func (r *StatsRepository) GetCategoryDistribution(ctx context.Context) ([]types.CategoryCount, error) {
	query, args, err := sq.Select("category", "COUNT(*) AS count").
		From("equipments").
		GroupBy("category").
		OrderBy("count DESC").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []types.CategoryCount
	for rows.Next() {
		var c types.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// GetMonthlyTrend - итоги по месяцу создания за последние 6 месяцев.
// date_trunc специфичен для Postgres; границы корзин - календарные месяцы.
func (r *StatsRepository) GetMonthlyTrend(ctx context.Context) ([]types.MonthlyTrendPoint, error) {
	query := `
		SELECT
			to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'available') AS available,
			COUNT(*) FILTER (WHERE status = 'assigned') AS assigned,
			COUNT(*) FILTER (WHERE status = 'maintenance') AS maintenance,
			COUNT(*) FILTER (WHERE status = 'broken') AS broken
		FROM equipments
		WHERE created_at >= date_trunc('month', NOW()) - INTERVAL '5 months'
		GROUP BY date_trunc('month', created_at)
		ORDER BY date_trunc('month', created_at)`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trend []types.MonthlyTrendPoint
	for rows.Next() {
		var p types.MonthlyTrendPoint
		if err := rows.Scan(&p.Month, &p.Total, &p.Available, &p.Assigned, &p.Maintenance, &p.Broken); err != nil {
			return nil, err
		}
		trend = append(trend, p)
	}
	return trend, rows.Err()
}

func (r *StatsRepository) GetMaintenanceByStatus(ctx context.Context) ([]types.StatusCount, error) {
	query, args, err := sq.Select("status", "COUNT(*) AS count").
		From("maintenance_records").
		GroupBy("status").
		OrderBy("count DESC").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []types.StatusCount
	for rows.Next() {
		var s types.StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetAgeDistribution - возраст парка от даты покупки: 0-1/1-2/2-3/3+ лет.
// Оборудование без даты покупки в распределение не попадает.
func (r *StatsRepository) GetAgeDistribution(ctx context.Context) ([]types.AgeBucket, error) {
	query := `
		SELECT bucket, COUNT(*) AS count
		FROM (
			SELECT CASE
				WHEN purchase_date >= NOW() - INTERVAL '1 year' THEN '0-1'
				WHEN purchase_date >= NOW() - INTERVAL '2 years' THEN '1-2'
				WHEN purchase_date >= NOW() - INTERVAL '3 years' THEN '2-3'
				ELSE '3+'
			END AS bucket
			FROM equipments
			WHERE purchase_date IS NOT NULL
		) AS ages
		GROUP BY bucket
		ORDER BY bucket`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []types.AgeBucket
	for rows.Next() {
		var b types.AgeBucket
		if err := rows.Scan(&b.Bucket, &b.Count); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

// GetTopAssignees - топ-10 сотрудников по числу выданного оборудования.
func (r *StatsRepository) GetTopAssignees(ctx context.Context) ([]types.AssigneeCount, error) {
	query := `
		SELECT u.id, u.fio, u.email, COUNT(e.id) AS count
		FROM equipments e
		JOIN users u ON e.current_owner_id = u.id
		WHERE e.status = 'assigned'
		GROUP BY u.id, u.fio, u.email
		ORDER BY count DESC, u.id ASC
		LIMIT 10`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []types.AssigneeCount
	for rows.Next() {
		var a types.AssigneeCount
		if err := rows.Scan(&a.UserID, &a.Name, &a.Email, &a.Count); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *StatsRepository) GetBillingStats(ctx context.Context) (*types.BillingStats, error) {
	stats := &types.BillingStats{}

	err := r.storage.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE status = 'active'),
		       COALESCE(SUM(price_per_month) FILTER (WHERE status = 'active'), 0)
		FROM subscriptions`,
	).Scan(&stats.ActiveSubscriptions, &stats.MonthlySpend)
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx,
		`SELECT status, COUNT(*) FROM invoices GROUP BY status ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s types.StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, err
		}
		stats.InvoicesByStatus = append(stats.InvoicesByStatus, s)
	}
	return stats, rows.Err()
}
