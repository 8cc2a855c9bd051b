package entities

import (
	"time"

	"profico-inventory/pkg/types"
)

// EquipmentStatus - закрытое перечисление статусов жизненного цикла.
type EquipmentStatus string

const (
	StatusPending        EquipmentStatus = "pending"
	StatusAvailable      EquipmentStatus = "available"
	StatusAssigned       EquipmentStatus = "assigned"
	StatusMaintenance    EquipmentStatus = "maintenance"
	StatusBroken         EquipmentStatus = "broken"
	StatusLost           EquipmentStatus = "lost"
	StatusStolen         EquipmentStatus = "stolen"
	StatusDecommissioned EquipmentStatus = "decommissioned"
)

func ParseEquipmentStatus(s string) (EquipmentStatus, bool) {
	switch EquipmentStatus(s) {
	case StatusPending, StatusAvailable, StatusAssigned, StatusMaintenance,
		StatusBroken, StatusLost, StatusStolen, StatusDecommissioned:
		return EquipmentStatus(s), true
	}
	return "", false
}

// EquipmentCondition - состояние, которое сотрудник указывает при возврате.
type EquipmentCondition string

const (
	ConditionExcellent EquipmentCondition = "excellent"
	ConditionGood      EquipmentCondition = "good"
	ConditionFair      EquipmentCondition = "fair"
	ConditionPoor      EquipmentCondition = "poor"
	ConditionBroken    EquipmentCondition = "broken"
)

func ParseEquipmentCondition(s string) (EquipmentCondition, bool) {
	switch EquipmentCondition(s) {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionBroken:
		return EquipmentCondition(s), true
	}
	return "", false
}

type Equipment struct {
	ID           uint64          `json:"id" db:"id"`
	SerialNumber string          `json:"serial_number" db:"serial_number"`
	Name         string          `json:"name" db:"name"`
	Brand        *string         `json:"brand,omitempty" db:"brand"`
	Model        *string         `json:"model,omitempty" db:"model"`
	Category     string          `json:"category" db:"category"`
	Status       EquipmentStatus `json:"status" db:"status"`

	// Condition заполняется после первого возврата, до этого NULL.
	Condition *EquipmentCondition `json:"condition,omitempty" db:"condition"`

	// Инвариант: Status == assigned <=> CurrentOwnerID != nil.
	CurrentOwnerID *uint64 `json:"current_owner_id,omitempty" db:"current_owner_id"`
	Owner          *User   `json:"owner,omitempty" db:"-"`

	Location       *string    `json:"location,omitempty" db:"location"`
	PurchaseDate   *time.Time `json:"purchase_date,omitempty" db:"purchase_date"`
	PurchaseMethod *string    `json:"purchase_method,omitempty" db:"purchase_method"`
	PurchasePrice  *float64   `json:"purchase_price,omitempty" db:"purchase_price"`
	WarrantyExpiry *time.Time `json:"warranty_expiry,omitempty" db:"warranty_expiry"`

	NextMaintenanceDate *time.Time `json:"next_maintenance_date,omitempty" db:"next_maintenance_date"`

	Notes *string `json:"notes,omitempty" db:"notes"`

	types.BaseEntity
}
