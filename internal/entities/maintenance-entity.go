package entities

import (
	"time"

	"profico-inventory/pkg/types"
)

// Статусы записей о техническом обслуживании.
const (
	MaintenanceScheduled  = "scheduled"
	MaintenanceInProgress = "in_progress"
	MaintenanceCompleted  = "completed"
	MaintenanceCancelled  = "cancelled"
)

type MaintenanceRecord struct {
	ID          uint64     `json:"id" db:"id"`
	EquipmentID uint64     `json:"equipment_id" db:"equipment_id"`
	Status      string     `json:"status" db:"status"`
	Type        string     `json:"type" db:"type"` // preventive, repair, inspection
	Cost        *float64   `json:"cost,omitempty" db:"cost"`
	Date        time.Time  `json:"date" db:"date"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	Notes       *string    `json:"notes,omitempty" db:"notes"`

	types.BaseEntity
}
