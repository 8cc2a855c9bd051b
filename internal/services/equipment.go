package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"profico-inventory/internal/authz"
	"profico-inventory/internal/dto"
	"profico-inventory/internal/entities"
	"profico-inventory/internal/repositories"
	apperrors "profico-inventory/pkg/errors"
	"profico-inventory/pkg/utils"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, params utils.QueryParams) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	GetHistory(ctx context.Context, equipmentID uint64) ([]repositories.EquipmentHistoryItem, int64, error)
	ListTags(ctx context.Context) ([]entities.Tag, error)
}

type equipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	historyRepo   repositories.EquipmentHistoryRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	historyRepo repositories.EquipmentHistoryRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &equipmentService{
		equipmentRepo: equipmentRepo,
		historyRepo:   historyRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
	}
}

func requireCapability(ctx context.Context, capability authz.Capability) error {
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return apperrors.NewUnauthorizedError("Требуется аутентификация", err)
	}
	if !authz.Can(role, capability) {
		return apperrors.NewForbiddenError("Недостаточно прав")
	}
	return nil
}

func (s *equipmentService) GetEquipments(ctx context.Context, params utils.QueryParams) ([]entities.Equipment, uint64, error) {
	if err := requireCapability(ctx, authz.EquipmentView); err != nil {
		return nil, 0, err
	}
	return s.equipmentRepo.GetEquipments(ctx, params)
}

func (s *equipmentService) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	if err := requireCapability(ctx, authz.EquipmentView); err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Оборудование не найдено")
		}
		return nil, err
	}
	return equipment, nil
}

func (s *equipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	if err := requireCapability(ctx, authz.EquipmentManage); err != nil {
		return nil, err
	}

	// Новая запись входит в жизненный цикл только через pending или
	// available; без явного статуса считаем pending.
	if payload.Status == "" {
		payload.Status = string(entities.StatusPending)
	}

	id, err := s.equipmentRepo.CreateEquipment(ctx, payload)
	if err != nil {
		return nil, err
	}

	if len(payload.TagIDs) > 0 {
		if err := s.equipmentRepo.ReplaceTags(ctx, id, payload.TagIDs); err != nil {
			s.logger.Warn("не удалось привязать метки к оборудованию",
				zap.Uint64("equipmentID", id), zap.Error(err))
		}
	}

	if err := s.cacheRepo.Del(ctx, statsCacheKey); err != nil {
		s.logger.Warn("не удалось сбросить кеш статистики", zap.Error(err))
	}

	s.logger.Info("создано оборудование", zap.Uint64("equipmentID", id),
		zap.String("serialNumber", payload.SerialNumber))
	return s.equipmentRepo.FindEquipment(ctx, id)
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	if err := requireCapability(ctx, authz.EquipmentManage); err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.UpdateEquipment(ctx, id, payload); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Оборудование не найдено")
		}
		return nil, err
	}
	return s.equipmentRepo.FindEquipment(ctx, id)
}

func (s *equipmentService) GetHistory(ctx context.Context, equipmentID uint64) ([]repositories.EquipmentHistoryItem, int64, error) {
	if err := requireCapability(ctx, authz.EquipmentView); err != nil {
		return nil, 0, err
	}
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, 0, apperrors.NewNotFoundError("Оборудование не найдено")
		}
		return nil, 0, err
	}
	items, err := s.historyRepo.FindByEquipmentID(ctx, equipmentID)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.historyRepo.CountByEquipmentID(ctx, equipmentID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *equipmentService) ListTags(ctx context.Context) ([]entities.Tag, error) {
	if err := requireCapability(ctx, authz.EquipmentView); err != nil {
		return nil, err
	}
	return s.equipmentRepo.GetTags(ctx)
}
