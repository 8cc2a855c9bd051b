package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"profico-inventory/internal/dto"
	"profico-inventory/internal/entities"
	apperrors "profico-inventory/pkg/errors"
	"profico-inventory/pkg/utils"
)

const equipmentFields = `e.id, e.serial_number, e.name, e.brand, e.model, e.category, e.status, e.condition,
	e.current_owner_id, e.location, e.purchase_date, e.purchase_method, e.purchase_price, e.warranty_expiry,
	e.next_maintenance_date, e.notes, e.created_at, e.updated_at`

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, params utils.QueryParams) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) error

	// Транзакционные методы жизненного цикла. FindForUpdateTx берёт
	// блокировку строки (SELECT ... FOR UPDATE) - второй конкурентный
	// переход увидит уже закоммиченное состояние и провалится на
	// предусловии, а не перепишет чужой результат.
	FindForUpdateTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error)
	SetOwnerAndStatusTx(ctx context.Context, tx pgx.Tx, id uint64, ownerID *uint64, status entities.EquipmentStatus, condition *entities.EquipmentCondition) error

	ReplaceTags(ctx context.Context, id uint64, tagIDs []uint64) error
	GetTags(ctx context.Context) ([]entities.Tag, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{
		storage: storage,
		logger:  logger,
	}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	var condition *string
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&e.ID, &e.SerialNumber, &e.Name, &e.Brand, &e.Model, &e.Category, &e.Status, &condition,
		&e.CurrentOwnerID, &e.Location, &e.PurchaseDate, &e.PurchaseMethod, &e.PurchasePrice, &e.WarrantyExpiry,
		&e.NextMaintenanceDate, &e.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if condition != nil {
		c := entities.EquipmentCondition(*condition)
		e.Condition = &c
	}
	e.CreatedAt = &createdAt
	e.UpdatedAt = &updatedAt
	return &e, nil
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, params utils.QueryParams) ([]entities.Equipment, uint64, error) {
	base := sq.Select(equipmentFields).From("equipments e").PlaceholderFormat(sq.Dollar)
	countBase := sq.Select("COUNT(*)").From("equipments e").PlaceholderFormat(sq.Dollar)

	if status, ok := params.Filters["status"]; ok {
		base = base.Where(sq.Eq{"e.status": status})
		countBase = countBase.Where(sq.Eq{"e.status": status})
	}
	if category, ok := params.Filters["category"]; ok {
		base = base.Where(sq.Eq{"e.category": category})
		countBase = countBase.Where(sq.Eq{"e.category": category})
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		cond := sq.Or{
			sq.ILike{"e.name": like},
			sq.ILike{"e.serial_number": like},
			sq.ILike{"e.brand": like},
			sq.ILike{"e.model": like},
		}
		base = base.Where(cond)
		countBase = countBase.Where(cond)
	}

	sortBy := "e.created_at"
	switch params.SortBy {
	case "name", "serial_number", "status", "category", "updated_at", "created_at":
		sortBy = "e." + params.SortBy
	}
	order := "DESC"
	if params.SortOrder == "asc" {
		order = "ASC"
	}

	query, args, err := base.OrderBy(sortBy + " " + order).
		Limit(params.Limit).Offset(params.Offset).ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []entities.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := countBase.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// FindEquipment возвращает запись с раскрытым владельцем.
func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf(`
		SELECT %s, u.id, u.fio, u.email, u.role
		FROM equipments e
			LEFT JOIN users u ON e.current_owner_id = u.id
		WHERE e.id = $1`, equipmentFields)

	var e entities.Equipment
	var condition *string
	var createdAt, updatedAt time.Time
	var ownerID *uint64
	var ownerFio, ownerEmail, ownerRole *string

	err := r.storage.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.SerialNumber, &e.Name, &e.Brand, &e.Model, &e.Category, &e.Status, &condition,
		&e.CurrentOwnerID, &e.Location, &e.PurchaseDate, &e.PurchaseMethod, &e.PurchasePrice, &e.WarrantyExpiry,
		&e.NextMaintenanceDate, &e.Notes, &createdAt, &updatedAt,
		&ownerID, &ownerFio, &ownerEmail, &ownerRole,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if condition != nil {
		c := entities.EquipmentCondition(*condition)
		e.Condition = &c
	}
	e.CreatedAt = &createdAt
	e.UpdatedAt = &updatedAt

	if ownerID != nil {
		e.Owner = &entities.User{ID: *ownerID}
		if ownerFio != nil {
			e.Owner.Fio = *ownerFio
		}
		if ownerEmail != nil {
			e.Owner.Email = *ownerEmail
		}
		if ownerRole != nil {
			if role, ok := parseRoleColumn(*ownerRole); ok {
				e.Owner.Role = role
			}
		}
	}

	return &e, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (uint64, error) {
	status := entities.StatusAvailable
	if payload.Status != "" {
		status = entities.EquipmentStatus(payload.Status)
	}

	query := `
		INSERT INTO equipments
			(serial_number, name, brand, model, category, status, location,
			 purchase_date, purchase_method, purchase_price, warranty_expiry, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		payload.SerialNumber, payload.Name, payload.Brand.Ptr(), payload.Model.Ptr(),
		payload.Category, string(status), payload.Location.Ptr(),
		payload.PurchaseDate.Ptr(), payload.PurchaseMethod.Ptr(), payload.PurchasePrice.Ptr(),
		payload.WarrantyExpiry.Ptr(), payload.Notes.Ptr(),
	).Scan(&id)
	if err != nil {
		r.logger.Error("ошибка при создании оборудования", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) error {
	update := sq.Update("equipments").PlaceholderFormat(sq.Dollar).Where(sq.Eq{"id": id})
	changed := false

	if payload.Name != nil {
		update = update.Set("name", *payload.Name)
		changed = true
	}
	if payload.Category != nil {
		update = update.Set("category", *payload.Category)
		changed = true
	}
	if payload.Brand.Valid {
		update = update.Set("brand", payload.Brand.String)
		changed = true
	}
	if payload.Model.Valid {
		update = update.Set("model", payload.Model.String)
		changed = true
	}
	if payload.Location.Valid {
		update = update.Set("location", payload.Location.String)
		changed = true
	}
	if payload.PurchaseMethod.Valid {
		update = update.Set("purchase_method", payload.PurchaseMethod.String)
		changed = true
	}
	if payload.PurchasePrice.Valid {
		update = update.Set("purchase_price", payload.PurchasePrice.Float64)
		changed = true
	}
	if payload.WarrantyExpiry.Valid {
		update = update.Set("warranty_expiry", payload.WarrantyExpiry.Time)
		changed = true
	}
	if payload.NextMaintenanceDate.Valid {
		update = update.Set("next_maintenance_date", payload.NextMaintenanceDate.Time)
		changed = true
	}
	if payload.Notes.Valid {
		update = update.Set("notes", payload.Notes.String)
		changed = true
	}
	if !changed {
		return nil
	}

	query, args, err := update.Set("updated_at", sq.Expr("NOW()")).ToSql()
	if err != nil {
		return err
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) FindForUpdateTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf(`SELECT %s FROM equipments e WHERE e.id = $1 FOR UPDATE`, equipmentFields)
	e, err := scanEquipment(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// SetOwnerAndStatusTx меняет владельца и статус одним UPDATE - инвариант
// "assigned <=> владелец задан" не может разойтись между двумя запросами.
func (r *EquipmentRepository) SetOwnerAndStatusTx(ctx context.Context, tx pgx.Tx, id uint64, ownerID *uint64, status entities.EquipmentStatus, condition *entities.EquipmentCondition) error {
	var conditionValue *string
	if condition != nil {
		s := string(*condition)
		conditionValue = &s
	}

	query := `
		UPDATE equipments
		SET current_owner_id = $2,
			status = $3,
			condition = COALESCE($4, condition),
			updated_at = NOW()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, ownerID, string(status), conditionValue)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) ReplaceTags(ctx context.Context, id uint64, tagIDs []uint64) error {
	if _, err := r.storage.Exec(ctx, `DELETE FROM equipment_tags WHERE equipment_id = $1`, id); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := r.storage.Exec(ctx,
			`INSERT INTO equipment_tags (equipment_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			id, tagID); err != nil {
			return err
		}
	}
	return nil
}

func (r *EquipmentRepository) GetTags(ctx context.Context) ([]entities.Tag, error) {
	rows, err := r.storage.Query(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []entities.Tag
	for rows.Next() {
		var t entities.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
