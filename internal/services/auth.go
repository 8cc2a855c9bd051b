package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"profico-inventory/internal/dto"
	"profico-inventory/internal/repositories"
	apperrors "profico-inventory/pkg/errors"
	"profico-inventory/pkg/service"
	"profico-inventory/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.AuthResponseDTO, error)
	Me(ctx context.Context) (*dto.UserPublicDTO, error)
}

type authService struct {
	userRepo   repositories.UserRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepositoryInterface, jwtService service.JWTService, logger *zap.Logger) AuthServiceInterface {
	return &authService{userRepo: userRepo, jwtService: jwtService, logger: logger}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		// Одинаковый ответ на неизвестный email и неверный пароль,
		// чтобы не подсказывать, какие адреса существуют.
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("Неверный email или пароль", apperrors.ErrInvalidCredentials)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		s.logger.Warn("неудачная попытка входа", zap.String("email", payload.Email))
		return nil, apperrors.NewUnauthorizedError("Неверный email или пароль", apperrors.ErrInvalidCredentials)
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.NewInternalError("Не удалось выпустить токены", err)
	}

	return &dto.AuthResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserPublicDTO{
			ID:    user.ID,
			Email: user.Email,
			Fio:   user.Fio,
			Role:  string(user.Role),
		},
	}, nil
}

func (s *authService) Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Недействительный refresh-токен", err)
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.NewUnauthorizedError("Ожидался refresh-токен", apperrors.ErrInvalidToken)
	}

	// Роль берём из БД, а не из токена: если её сменили после выпуска
	// токена, новая пара должна нести актуальную.
	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Пользователь не найден", err)
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.NewInternalError("Не удалось выпустить токены", err)
	}

	return &dto.AuthResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserPublicDTO{
			ID:    user.ID,
			Email: user.Email,
			Fio:   user.Fio,
			Role:  string(user.Role),
		},
	}, nil
}

func (s *authService) Me(ctx context.Context) (*dto.UserPublicDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Требуется аутентификация", err)
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Пользователь не найден", err)
	}
	return &dto.UserPublicDTO{
		ID:    user.ID,
		Email: user.Email,
		Fio:   user.Fio,
		Role:  string(user.Role),
	}, nil
}
