package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"profico-inventory/internal/entities"
)

type ExportRepositoryInterface interface {
	// GetExportRows возвращает денормализованные строки выгрузки.
	// Пустой/нулевой ids означает "всё оборудование". Сортировка -
	// по убыванию updated_at.
	GetExportRows(ctx context.Context, ids []uint64) ([]entities.EquipmentExportRow, error)
}

type ExportRepository struct {
	storage *pgxpool.Pool
}

func NewExportRepository(storage *pgxpool.Pool) ExportRepositoryInterface {
	return &ExportRepository{storage: storage}
}

func (r *ExportRepository) GetExportRows(ctx context.Context, ids []uint64) ([]entities.EquipmentExportRow, error) {
	// Последняя запись ТО выбирается LATERAL-подзапросом: по убыванию
	// даты, ровно одна на единицу оборудования.
	query := `
		SELECT
			e.serial_number, e.name, e.brand, e.model, e.category, e.status, e.condition,
			u.fio AS owner_name, u.email AS owner_email,
			e.location, e.purchase_date, e.purchase_method, e.purchase_price, e.warranty_expiry,
			m.date AS last_maintenance_date, m.cost AS last_maintenance_cost,
			t.tags, e.notes, e.created_at, e.updated_at
		FROM equipments e
		LEFT JOIN users u ON e.current_owner_id = u.id
		LEFT JOIN LATERAL (
			SELECT mr.date, mr.cost
			FROM maintenance_records mr
			WHERE mr.equipment_id = e.id
			ORDER BY mr.date DESC
			LIMIT 1
		) m ON TRUE
		LEFT JOIN LATERAL (
			SELECT string_agg(tg.name, ', ' ORDER BY tg.name) AS tags
			FROM equipment_tags et
			JOIN tags tg ON tg.id = et.tag_id
			WHERE et.equipment_id = e.id
		) t ON TRUE
		WHERE ($1::bigint[] IS NULL OR e.id = ANY($1::bigint[]))
		ORDER BY e.updated_at DESC`

	var idsParam interface{}
	if len(ids) > 0 {
		converted := make([]int64, len(ids))
		for i, id := range ids {
			converted[i] = int64(id)
		}
		idsParam = converted
	}

	rows, err := r.storage.Query(ctx, query, idsParam)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []entities.EquipmentExportRow
	for rows.Next() {
		var row entities.EquipmentExportRow
		if err := rows.Scan(
			&row.SerialNumber, &row.Name, &row.Brand, &row.Model, &row.Category, &row.Status, &row.Condition,
			&row.OwnerName, &row.OwnerEmail,
			&row.Location, &row.PurchaseDate, &row.PurchaseMethod, &row.PurchasePrice, &row.WarrantyExpiry,
			&row.LastMaintenanceDate, &row.LastMaintenanceCost,
			&row.Tags, &row.Notes, &row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
