package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"profico-inventory/internal/dto"
	"profico-inventory/internal/entities"
)

type MaintenanceRepositoryInterface interface {
	FindByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.MaintenanceRecord, error)
	Create(ctx context.Context, equipmentID uint64, payload dto.CreateMaintenanceDTO) (uint64, error)
}

type MaintenanceRepository struct {
	storage *pgxpool.Pool
}

func NewMaintenanceRepository(storage *pgxpool.Pool) MaintenanceRepositoryInterface {
	return &MaintenanceRepository{storage: storage}
}

func (r *MaintenanceRepository) FindByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.MaintenanceRecord, error) {
	query := `
		SELECT id, equipment_id, status, type, cost, date, completed_at, notes, created_at, updated_at
		FROM maintenance_records
		WHERE equipment_id = $1
		ORDER BY date DESC`

	rows, err := r.storage.Query(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entities.MaintenanceRecord
	for rows.Next() {
		var m entities.MaintenanceRecord
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&m.ID, &m.EquipmentID, &m.Status, &m.Type, &m.Cost, &m.Date,
			&m.CompletedAt, &m.Notes, &createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}
		m.CreatedAt = &createdAt
		m.UpdatedAt = &updatedAt
		records = append(records, m)
	}
	return records, rows.Err()
}

func (r *MaintenanceRepository) Create(ctx context.Context, equipmentID uint64, payload dto.CreateMaintenanceDTO) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO maintenance_records (equipment_id, status, type, cost, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		equipmentID, payload.Status, payload.Type, payload.Cost.Ptr(), payload.Date, payload.Notes.Ptr(),
	).Scan(&id)
	return id, err
}
