package entities

import "time"

// Действия, фиксируемые в журнале оборудования.
const (
	HistoryActionAssigned     = "assigned"
	HistoryActionReturned     = "returned"
	HistoryActionStatusChange = "status_change"
)

// EquipmentHistory - строка append-only журнала. После вставки запись
// никогда не обновляется и не удаляется: это аудит-след владения.
type EquipmentHistory struct {
	ID          uint64              `json:"id" db:"id"`
	EquipmentID uint64              `json:"equipment_id" db:"equipment_id"`
	FromUserID  *uint64             `json:"from_user_id,omitempty" db:"from_user_id"`
	Action      string              `json:"action" db:"action"`
	Condition   *EquipmentCondition `json:"condition,omitempty" db:"condition"`
	Notes       *string             `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
}
