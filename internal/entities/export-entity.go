package entities

import (
	"database/sql"
	"time"
)

// EquipmentExportRow - денормализованная строка выгрузки: оборудование
// плюс владелец, последняя запись ТО и склеенные метки. Nullable-поля
// остаются sql.Null*, в пустую строку их превращает слой экспорта.
type EquipmentExportRow struct {
	SerialNumber string         `db:"serial_number"`
	Name         string         `db:"name"`
	Brand        sql.NullString `db:"brand"`
	Model        sql.NullString `db:"model"`
	Category     string         `db:"category"`
	Status       string         `db:"status"`
	Condition    sql.NullString `db:"condition"`

	OwnerName  sql.NullString `db:"owner_name"`
	OwnerEmail sql.NullString `db:"owner_email"`

	Location       sql.NullString  `db:"location"`
	PurchaseDate   sql.NullTime    `db:"purchase_date"`
	PurchaseMethod sql.NullString  `db:"purchase_method"`
	PurchasePrice  sql.NullFloat64 `db:"purchase_price"`
	WarrantyExpiry sql.NullTime    `db:"warranty_expiry"`

	LastMaintenanceDate sql.NullTime    `db:"last_maintenance_date"`
	LastMaintenanceCost sql.NullFloat64 `db:"last_maintenance_cost"`

	Tags  sql.NullString `db:"tags"`
	Notes sql.NullString `db:"notes"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
