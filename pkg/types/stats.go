package types

// Типы сводной статистики для дашборда оборудования.
// Каждая под-метрика считается отдельным запросом (см. StatsRepository),
// взаимная snapshot-консистентность между ними не требуется.

type CategoryCount struct {
	Category string `json:"category" db:"category"`
	Count    int64  `json:"count" db:"count"`
}

type StatusCount struct {
	Status string `json:"status" db:"status"`
	Count  int64  `json:"count" db:"count"`
}

// MonthlyTrendPoint - итог по месяцу создания оборудования за последние
// 6 месяцев: общее количество плюс разбивка по статусам.
type MonthlyTrendPoint struct {
	Month       string `json:"month" db:"month"` // "2026-03"
	Total       int64  `json:"total" db:"total"`
	Available   int64  `json:"available" db:"available"`
	Assigned    int64  `json:"assigned" db:"assigned"`
	Maintenance int64  `json:"maintenance" db:"maintenance"`
	Broken      int64  `json:"broken" db:"broken"`
}

// AgeBucket - распределение парка по возрасту от даты покупки.
// Корзины: 0-1, 1-2, 2-3, 3+ лет.
type AgeBucket struct {
	Bucket string `json:"bucket" db:"bucket"`
	Count  int64  `json:"count" db:"count"`
}

type AssigneeCount struct {
	UserID int64  `json:"user_id" db:"user_id"`
	Name   string `json:"name" db:"name"`
	Email  string `json:"email" db:"email"`
	Count  int64  `json:"count" db:"count"`
}

// WorkflowStats - составной результат GET /equipment/workflow-stats.
type WorkflowStats struct {
	TotalEquipment       int64               `json:"total_equipment"`
	AvailableEquipment   int64               `json:"available_equipment"`
	AssignedEquipment    int64               `json:"assigned_equipment"`
	MaintenanceEquipment int64               `json:"maintenance_equipment"`
	BrokenEquipment      int64               `json:"broken_equipment"`
	PendingActions       int64               `json:"pending_actions"`
	RecentActivity       int64               `json:"recent_activity"`
	CategoryDistribution []CategoryCount     `json:"category_distribution"`
	MonthlyTrend         []MonthlyTrendPoint `json:"monthly_trend"`
	MaintenanceByStatus  []StatusCount       `json:"maintenance_by_status"`
	AgeDistribution      []AgeBucket         `json:"age_distribution"`
	TopAssignees         []AssigneeCount     `json:"top_assignees"`
}

// BillingStats - счётчики для дашборда подписок и счетов.
type BillingStats struct {
	ActiveSubscriptions int64         `json:"active_subscriptions"`
	MonthlySpend        float64       `json:"monthly_spend"`
	InvoicesByStatus    []StatusCount `json:"invoices_by_status"`
}
