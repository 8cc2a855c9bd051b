// Файл: internal/entities/user_entity.go
package entities

import (
	"profico-inventory/internal/authz"
	"profico-inventory/pkg/types"
)

type User struct {
	ID    uint64 `json:"id" db:"id"`
	Fio   string `json:"fio" db:"fio"`
	Email string `json:"email" db:"email"`

	Password string `json:"-" db:"password"`

	Role authz.Role `json:"role" db:"role"`

	types.BaseEntity
}
