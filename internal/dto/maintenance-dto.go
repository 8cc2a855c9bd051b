package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateMaintenanceDTO struct {
	Status string       `json:"status" validate:"required,oneof=scheduled in_progress completed cancelled"`
	Type   string       `json:"type" validate:"required,oneof=preventive repair inspection"`
	Cost   null.Float64 `json:"cost" validate:"omitempty,gte=0"`
	Date   time.Time    `json:"date" validate:"required"`
	Notes  null.String  `json:"notes"`
}
