package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"profico-inventory/internal/authz"
	"profico-inventory/internal/dto"
	"profico-inventory/internal/entities"
	apperrors "profico-inventory/pkg/errors"
)

func parseRoleColumn(s string) (authz.Role, bool) {
	return authz.ParseRole(s)
}

type UserRepositoryInterface interface {
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	GetUsers(ctx context.Context) ([]entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (uint64, error)
	UpdateUserRole(ctx context.Context, id uint64, role authz.Role) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	var role string
	var createdAt, updatedAt time.Time

	err := row.Scan(&u.ID, &u.Fio, &u.Email, &u.Password, &role, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	parsed, ok := parseRoleColumn(role)
	if !ok {
		// Неизвестная роль в БД трактуется как обычный пользователь:
		// безопаснее занизить права, чем завысить.
		parsed = authz.RoleUser
	}
	u.Role = parsed
	u.CreatedAt = &createdAt
	u.UpdatedAt = &updatedAt
	return &u, nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	row := r.storage.QueryRow(ctx,
		`SELECT id, fio, email, password, role, created_at, updated_at FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	row := r.storage.QueryRow(ctx,
		`SELECT id, fio, email, password, role, created_at, updated_at FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]entities.User, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, fio, email, password, role, created_at, updated_at FROM users ORDER BY fio ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entities.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		u.Password = ""
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO users (fio, email, password, role) VALUES ($1, $2, $3, $4) RETURNING id`,
		payload.Fio, payload.Email, passwordHash, payload.Role).Scan(&id)
	if err != nil {
		r.logger.Error("ошибка при создании пользователя", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) UpdateUserRole(ctx context.Context, id uint64, role authz.Role) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`, id, role.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
