package repositories

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"profico-inventory/internal/entities"
)

// EquipmentHistoryItem - строка журнала, обогащённая ФИО предыдущего
// владельца для отдачи наружу.
type EquipmentHistoryItem struct {
	entities.EquipmentHistory
	FromUserFio   sql.NullString `db:"from_user_fio"`
	FromUserEmail sql.NullString `db:"from_user_email"`
}

type EquipmentHistoryRepositoryInterface interface {
	// CreateInTx добавляет запись журнала в той же транзакции, что и
	// смена статуса. Таблица append-only: UPDATE/DELETE по ней в коде
	// не существует.
	CreateInTx(ctx context.Context, tx pgx.Tx, history *entities.EquipmentHistory) error
	FindByEquipmentID(ctx context.Context, equipmentID uint64) ([]EquipmentHistoryItem, error)
	CountByEquipmentID(ctx context.Context, equipmentID uint64) (int64, error)
}

type EquipmentHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentHistoryRepository(storage *pgxpool.Pool) EquipmentHistoryRepositoryInterface {
	return &EquipmentHistoryRepository{storage: storage}
}

func (r *EquipmentHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, history *entities.EquipmentHistory) error {
	var conditionValue *string
	if history.Condition != nil {
		s := string(*history.Condition)
		conditionValue = &s
	}

	query := `
		INSERT INTO equipment_history (equipment_id, from_user_id, action, condition, notes)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := tx.Exec(ctx, query,
		history.EquipmentID, history.FromUserID, history.Action, conditionValue, history.Notes)
	return err
}

func (r *EquipmentHistoryRepository) FindByEquipmentID(ctx context.Context, equipmentID uint64) ([]EquipmentHistoryItem, error) {
	query := `
		SELECT
			h.id, h.equipment_id, h.from_user_id, h.action, h.condition, h.notes, h.created_at,
			u.fio AS from_user_fio,
			u.email AS from_user_email
		FROM equipment_history h
		LEFT JOIN users u ON h.from_user_id = u.id
		WHERE h.equipment_id = $1
		ORDER BY h.created_at DESC, h.id DESC`

	rows, err := r.storage.Query(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []EquipmentHistoryItem
	for rows.Next() {
		var h EquipmentHistoryItem
		var condition *string
		if err := rows.Scan(
			&h.ID, &h.EquipmentID, &h.FromUserID, &h.Action, &condition, &h.Notes, &h.CreatedAt,
			&h.FromUserFio, &h.FromUserEmail,
		); err != nil {
			return nil, err
		}
		if condition != nil {
			c := entities.EquipmentCondition(*condition)
			h.Condition = &c
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

func (r *EquipmentHistoryRepository) CountByEquipmentID(ctx context.Context, equipmentID uint64) (int64, error) {
	var count int64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM equipment_history WHERE equipment_id = $1`, equipmentID).Scan(&count)
	return count, err
}
