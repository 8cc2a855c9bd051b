package dto

import "github.com/aarondl/null/v8"

type CreateSubscriptionDTO struct {
	Name          string      `json:"name" validate:"required"`
	Vendor        string      `json:"vendor" validate:"required"`
	Seats         int         `json:"seats" validate:"required,gt=0"`
	PricePerMonth float64     `json:"price_per_month" validate:"required,gte=0"`
	RenewsAt      null.Time   `json:"renews_at"`
	Status        string      `json:"status" validate:"omitempty,oneof=active paused cancelled"`
}

type UpdateSubscriptionDTO struct {
	Name          *string      `json:"name,omitempty"`
	Vendor        *string      `json:"vendor,omitempty"`
	Seats         *int         `json:"seats,omitempty" validate:"omitempty,gt=0"`
	PricePerMonth *float64     `json:"price_per_month,omitempty" validate:"omitempty,gte=0"`
	RenewsAt      null.Time    `json:"renews_at"`
	Status        *string      `json:"status,omitempty" validate:"omitempty,oneof=active paused cancelled"`
}
