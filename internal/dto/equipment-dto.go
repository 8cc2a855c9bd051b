package dto

import (
	"github.com/aarondl/null/v8"

	"profico-inventory/internal/entities"
)

type CreateEquipmentDTO struct {
	SerialNumber string `json:"serial_number" validate:"required,serial_number"`
	Name         string `json:"name" validate:"required"`
	Category     string `json:"category" validate:"required"`
	Status       string `json:"status" validate:"omitempty,oneof=pending available"`

	Brand          null.String  `json:"brand"`
	Model          null.String  `json:"model"`
	Location       null.String  `json:"location"`
	PurchaseDate   null.Time    `json:"purchase_date"`
	PurchaseMethod null.String  `json:"purchase_method"`
	PurchasePrice  null.Float64 `json:"purchase_price" validate:"omitempty,gte=0"`
	WarrantyExpiry null.Time    `json:"warranty_expiry"`
	Notes          null.String  `json:"notes"`
	TagIDs         []uint64     `json:"tag_ids"`
}

type UpdateEquipmentDTO struct {
	Name           *string      `json:"name,omitempty"            validate:"omitempty"`
	Category       *string      `json:"category,omitempty"        validate:"omitempty"`
	Brand          null.String  `json:"brand"`
	Model          null.String  `json:"model"`
	Location       null.String  `json:"location"`
	PurchaseMethod null.String  `json:"purchase_method"`
	PurchasePrice  null.Float64 `json:"purchase_price"            validate:"omitempty,gte=0"`
	WarrantyExpiry null.Time    `json:"warranty_expiry"`
	NextMaintenanceDate null.Time `json:"next_maintenance_date"`
	Notes          null.String  `json:"notes"`
}

// AssignEquipmentDTO - выдача оборудования сотруднику.
type AssignEquipmentDTO struct {
	UserID uint64      `json:"user_id" validate:"required,gt=0"`
	Notes  null.String `json:"notes"`
}

// UnassignEquipmentDTO - возврат. Condition обязателен: от него зависит,
// в какой статус уйдёт оборудование.
type UnassignEquipmentDTO struct {
	Condition string      `json:"condition" validate:"required,equipment_condition"`
	Notes     null.String `json:"notes"`
}

// OverrideStatusDTO - административный перевод (lost/stolen/decommissioned/maintenance).
type OverrideStatusDTO struct {
	Status string      `json:"status" validate:"required,oneof=lost stolen decommissioned maintenance"`
	Notes  null.String `json:"notes"`
}

// TransitionResultDTO - ответ операций assign/unassign: обновлённая запись
// с раскрытым владельцем и итоговый статус.
type TransitionResultDTO struct {
	Equipment *entities.Equipment      `json:"equipment"`
	NewStatus entities.EquipmentStatus `json:"new_status"`
}
