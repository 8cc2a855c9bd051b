package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"profico-inventory/internal/authz"
	"profico-inventory/internal/dto"
	"profico-inventory/internal/entities"
	"profico-inventory/internal/repositories"
	apperrors "profico-inventory/pkg/errors"
	"profico-inventory/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context) ([]entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error)
	UpdateUserRole(ctx context.Context, id uint64, payload dto.UpdateUserRoleDTO) (*entities.User, error)
}

type userService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &userService{userRepo: userRepo, logger: logger}
}

func (s *userService) GetUsers(ctx context.Context) ([]entities.User, error) {
	if err := requireCapability(ctx, authz.UsersManage); err != nil {
		return nil, err
	}
	return s.userRepo.GetUsers(ctx)
}

func (s *userService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error) {
	if err := requireCapability(ctx, authz.UsersManage); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindUserByEmail(ctx, payload.Email); err == nil {
		return nil, apperrors.NewValidationError("Пользователь с таким email уже существует",
			map[string]interface{}{"email": payload.Email})
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("Не удалось захешировать пароль", err)
	}

	id, err := s.userRepo.CreateUser(ctx, payload, string(hash))
	if err != nil {
		return nil, err
	}
	s.logger.Info("создан пользователь", zap.Uint64("userID", id), zap.String("role", payload.Role))
	return s.userRepo.FindUserByID(ctx, id)
}

func (s *userService) UpdateUserRole(ctx context.Context, id uint64, payload dto.UpdateUserRoleDTO) (*entities.User, error) {
	if err := requireCapability(ctx, authz.UsersManage); err != nil {
		return nil, err
	}

	role, ok := authz.ParseRole(payload.Role)
	if !ok {
		return nil, apperrors.NewValidationError("Недопустимая роль",
			map[string]interface{}{"role": payload.Role})
	}

	// Администратор не может снять права с самого себя: иначе в системе
	// рискует не остаться ни одного admin.
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Требуется аутентификация", err)
	}
	if actorID == id && role != authz.RoleAdmin {
		return nil, apperrors.NewInvalidStateError("Нельзя понизить собственную роль", apperrors.ErrSelfDemotion)
	}

	if err := s.userRepo.UpdateUserRole(ctx, id, role); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Пользователь не найден")
		}
		return nil, err
	}
	return s.userRepo.FindUserByID(ctx, id)
}
