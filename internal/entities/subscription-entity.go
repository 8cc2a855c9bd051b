package entities

import (
	"time"

	"profico-inventory/pkg/types"
)

const (
	SubscriptionActive    = "active"
	SubscriptionPaused    = "paused"
	SubscriptionCancelled = "cancelled"
)

// Subscription - программная подписка компании (SaaS, лицензии).
type Subscription struct {
	ID            uint64     `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Vendor        string     `json:"vendor" db:"vendor"`
	Seats         int        `json:"seats" db:"seats"`
	PricePerMonth float64    `json:"price_per_month" db:"price_per_month"`
	Status        string     `json:"status" db:"status"`
	RenewsAt      *time.Time `json:"renews_at,omitempty" db:"renews_at"`

	types.BaseEntity
}
