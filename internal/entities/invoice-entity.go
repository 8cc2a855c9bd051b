package entities

import (
	"time"

	"profico-inventory/pkg/types"
)

const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

type Invoice struct {
	ID             uint64     `json:"id" db:"id"`
	SubscriptionID *uint64    `json:"subscription_id,omitempty" db:"subscription_id"`
	Number         string     `json:"number" db:"number"`
	Amount         float64    `json:"amount" db:"amount"`
	Currency       string     `json:"currency" db:"currency"`
	Status         string     `json:"status" db:"status"`
	IssuedAt       time.Time  `json:"issued_at" db:"issued_at"`
	DueDate        *time.Time `json:"due_date,omitempty" db:"due_date"`
	PaidAt         *time.Time `json:"paid_at,omitempty" db:"paid_at"`

	types.BaseEntity
}
