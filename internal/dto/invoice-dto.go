package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateInvoiceDTO struct {
	SubscriptionID null.Uint64 `json:"subscription_id"`
	Number         string      `json:"number" validate:"required"`
	Amount         float64     `json:"amount" validate:"required,gte=0"`
	Currency       string      `json:"currency" validate:"required,len=3"`
	IssuedAt       time.Time   `json:"issued_at" validate:"required"`
	DueDate        null.Time   `json:"due_date"`
}

type UpdateInvoiceStatusDTO struct {
	Status string    `json:"status" validate:"required,oneof=pending paid overdue"`
	PaidAt null.Time `json:"paid_at"`
}
