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
)

type MaintenanceServiceInterface interface {
	GetByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.MaintenanceRecord, error)
	Create(ctx context.Context, equipmentID uint64, payload dto.CreateMaintenanceDTO) ([]entities.MaintenanceRecord, error)
}

type maintenanceService struct {
	maintenanceRepo repositories.MaintenanceRepositoryInterface
	equipmentRepo   repositories.EquipmentRepositoryInterface
	logger          *zap.Logger
}

func NewMaintenanceService(
	maintenanceRepo repositories.MaintenanceRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) MaintenanceServiceInterface {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		equipmentRepo:   equipmentRepo,
		logger:          logger,
	}
}

func (s *maintenanceService) GetByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.MaintenanceRecord, error) {
	if err := requireCapability(ctx, authz.EquipmentView); err != nil {
		return nil, err
	}
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Оборудование не найдено")
		}
		return nil, err
	}
	return s.maintenanceRepo.FindByEquipmentID(ctx, equipmentID)
}

func (s *maintenanceService) Create(ctx context.Context, equipmentID uint64, payload dto.CreateMaintenanceDTO) ([]entities.MaintenanceRecord, error) {
	if err := requireCapability(ctx, authz.MaintenanceWrite); err != nil {
		return nil, err
	}
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Оборудование не найдено")
		}
		return nil, err
	}
	id, err := s.maintenanceRepo.Create(ctx, equipmentID, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("создана запись ТО",
		zap.Uint64("maintenanceID", id),
		zap.Uint64("equipmentID", equipmentID),
		zap.String("type", payload.Type))
	return s.maintenanceRepo.FindByEquipmentID(ctx, equipmentID)
}
