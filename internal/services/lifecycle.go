package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"profico-inventory/internal/authz"
	"profico-inventory/internal/dto"
	"profico-inventory/internal/entities"
	"profico-inventory/internal/repositories"
	apperrors "profico-inventory/pkg/errors"
	"profico-inventory/pkg/metrics"
	"profico-inventory/pkg/utils"
)

// statsCacheKey - ключ кеша сводной статистики; любой успешный переход
// жизненного цикла его сбрасывает.
const statsCacheKey = "stats:workflow"

// statusForCondition - детерминированная таблица перехода при возврате:
// excellent/good/fair -> available, poor -> maintenance, broken -> broken.
func statusForCondition(c entities.EquipmentCondition) entities.EquipmentStatus {
	switch c {
	case entities.ConditionPoor:
		return entities.StatusMaintenance
	case entities.ConditionBroken:
		return entities.StatusBroken
	default:
		return entities.StatusAvailable
	}
}

type LifecycleServiceInterface interface {
	Assign(ctx context.Context, equipmentID uint64, payload dto.AssignEquipmentDTO) (*dto.TransitionResultDTO, error)
	Unassign(ctx context.Context, equipmentID uint64, payload dto.UnassignEquipmentDTO) (*dto.TransitionResultDTO, error)
	OverrideStatus(ctx context.Context, equipmentID uint64, payload dto.OverrideStatusDTO) (*dto.TransitionResultDTO, error)
}

// lifecycleService - машина состояний оборудования. Каждый переход -
// одна транзакция: блокировка строки, проверка предусловия, UPDATE
// владельца/статуса и append в журнал. Конкурирующий переход по той же
// записи дождётся коммита первого и провалится на предусловии.
type lifecycleService struct {
	txManager     repositories.TxManagerInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	historyRepo   repositories.EquipmentHistoryRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	logger        *zap.Logger
}

func NewLifecycleService(
	txManager repositories.TxManagerInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	historyRepo repositories.EquipmentHistoryRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) LifecycleServiceInterface {
	return &lifecycleService{
		txManager:     txManager,
		equipmentRepo: equipmentRepo,
		historyRepo:   historyRepo,
		userRepo:      userRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
	}
}

// requireManager - переходы доступны только admin и team_lead.
func (s *lifecycleService) requireManager(ctx context.Context, capability authz.Capability) (uint64, error) {
	actorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, apperrors.NewUnauthorizedError("Требуется аутентификация", err)
	}
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return 0, apperrors.NewUnauthorizedError("Требуется аутентификация", err)
	}
	if !authz.Can(role, capability) {
		metrics.LifecycleTransitionFailuresTotal.WithLabelValues("forbidden").Inc()
		return 0, apperrors.NewForbiddenError("Недостаточно прав для операций с оборудованием")
	}
	return actorID, nil
}

func (s *lifecycleService) invalidateStatsCache(ctx context.Context) {
	if err := s.cacheRepo.Del(ctx, statsCacheKey); err != nil {
		// Кеш протухнет сам по TTL, поэтому ошибку только логируем.
		s.logger.Warn("не удалось сбросить кеш статистики", zap.Error(err))
	}
}

func (s *lifecycleService) Unassign(ctx context.Context, equipmentID uint64, payload dto.UnassignEquipmentDTO) (*dto.TransitionResultDTO, error) {
	actorID, err := s.requireManager(ctx, authz.EquipmentManage)
	if err != nil {
		return nil, err
	}

	condition, ok := entities.ParseEquipmentCondition(payload.Condition)
	if !ok {
		return nil, apperrors.NewValidationError("Недопустимое значение состояния",
			map[string]interface{}{"condition": payload.Condition})
	}

	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Пользователь не найден", err)
	}

	newStatus := statusForCondition(condition)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipment, err := s.equipmentRepo.FindForUpdateTx(ctx, tx, equipmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				metrics.LifecycleTransitionFailuresTotal.WithLabelValues("not_found").Inc()
				return apperrors.NewNotFoundError("Оборудование не найдено")
			}
			return err
		}

		if equipment.Status != entities.StatusAssigned || equipment.CurrentOwnerID == nil {
			metrics.LifecycleTransitionFailuresTotal.WithLabelValues("invalid_state").Inc()
			return apperrors.NewInvalidStateError("Оборудование сейчас никому не выдано", apperrors.ErrEquipmentNotAssigned)
		}

		previousOwnerID := *equipment.CurrentOwnerID

		if err := s.equipmentRepo.SetOwnerAndStatusTx(ctx, tx, equipmentID, nil, newStatus, &condition); err != nil {
			return err
		}

		notes := payload.Notes.Ptr()
		if notes == nil {
			generated := fmt.Sprintf("Возврат оформлен: %s, состояние — %s", actor.Fio, condition)
			notes = &generated
		}

		return s.historyRepo.CreateInTx(ctx, tx, &entities.EquipmentHistory{
			EquipmentID: equipmentID,
			FromUserID:  &previousOwnerID,
			Action:      entities.HistoryActionReturned,
			Condition:   &condition,
			Notes:       notes,
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.LifecycleTransitionsTotal.WithLabelValues(entities.HistoryActionReturned, string(newStatus)).Inc()
	s.invalidateStatsCache(ctx)

	s.logger.Info("оборудование возвращено",
		zap.Uint64("equipmentID", equipmentID),
		zap.String("condition", string(condition)),
		zap.String("newStatus", string(newStatus)),
		zap.Uint64("actorID", actorID),
	)

	updated, err := s.equipmentRepo.FindEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	return &dto.TransitionResultDTO{Equipment: updated, NewStatus: newStatus}, nil
}

func (s *lifecycleService) Assign(ctx context.Context, equipmentID uint64, payload dto.AssignEquipmentDTO) (*dto.TransitionResultDTO, error) {
	actorID, err := s.requireManager(ctx, authz.EquipmentManage)
	if err != nil {
		return nil, err
	}

	target, err := s.userRepo.FindUserByID(ctx, payload.UserID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Сотрудник не найден")
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipment, err := s.equipmentRepo.FindForUpdateTx(ctx, tx, equipmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				metrics.LifecycleTransitionFailuresTotal.WithLabelValues("not_found").Inc()
				return apperrors.NewNotFoundError("Оборудование не найдено")
			}
			return err
		}

		if equipment.Status == entities.StatusAssigned {
			metrics.LifecycleTransitionFailuresTotal.WithLabelValues("invalid_state").Inc()
			return apperrors.NewInvalidStateError("Оборудование уже выдано", apperrors.ErrEquipmentAlreadyOwned)
		}
		if equipment.Status != entities.StatusAvailable && equipment.Status != entities.StatusPending {
			metrics.LifecycleTransitionFailuresTotal.WithLabelValues("invalid_state").Inc()
			return apperrors.NewInvalidStateError(
				fmt.Sprintf("Оборудование в статусе %q нельзя выдать", equipment.Status),
				apperrors.ErrEquipmentNotIssuable)
		}

		targetID := target.ID
		if err := s.equipmentRepo.SetOwnerAndStatusTx(ctx, tx, equipmentID, &targetID, entities.StatusAssigned, nil); err != nil {
			return err
		}

		notes := payload.Notes.Ptr()
		if notes == nil {
			generated := fmt.Sprintf("Выдано сотруднику %s", target.Fio)
			notes = &generated
		}

		return s.historyRepo.CreateInTx(ctx, tx, &entities.EquipmentHistory{
			EquipmentID: equipmentID,
			FromUserID:  nil,
			Action:      entities.HistoryActionAssigned,
			Notes:       notes,
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.LifecycleTransitionsTotal.WithLabelValues(entities.HistoryActionAssigned, string(entities.StatusAssigned)).Inc()
	s.invalidateStatsCache(ctx)

	s.logger.Info("оборудование выдано",
		zap.Uint64("equipmentID", equipmentID),
		zap.Uint64("targetUserID", target.ID),
		zap.Uint64("actorID", actorID),
	)

	updated, err := s.equipmentRepo.FindEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	return &dto.TransitionResultDTO{Equipment: updated, NewStatus: entities.StatusAssigned}, nil
}

// OverrideStatus - административный перевод в lost/stolen/decommissioned/
// maintenance. Если запись была выдана, владелец снимается в том же
// UPDATE: статус, отличный от assigned, не может иметь владельца.
func (s *lifecycleService) OverrideStatus(ctx context.Context, equipmentID uint64, payload dto.OverrideStatusDTO) (*dto.TransitionResultDTO, error) {
	actorID, err := s.requireManager(ctx, authz.EquipmentDecomm)
	if err != nil {
		return nil, err
	}

	newStatus, ok := entities.ParseEquipmentStatus(payload.Status)
	if !ok {
		return nil, apperrors.NewValidationError("Недопустимый статус",
			map[string]interface{}{"status": payload.Status})
	}

	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Пользователь не найден", err)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipment, err := s.equipmentRepo.FindForUpdateTx(ctx, tx, equipmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				metrics.LifecycleTransitionFailuresTotal.WithLabelValues("not_found").Inc()
				return apperrors.NewNotFoundError("Оборудование не найдено")
			}
			return err
		}

		if equipment.Status == entities.StatusDecommissioned {
			metrics.LifecycleTransitionFailuresTotal.WithLabelValues("invalid_state").Inc()
			return apperrors.NewInvalidStateError("Списанное оборудование нельзя переводить", apperrors.ErrInvalidStatusTransition)
		}

		var previousOwnerID *uint64
		if equipment.CurrentOwnerID != nil {
			id := *equipment.CurrentOwnerID
			previousOwnerID = &id
		}

		if err := s.equipmentRepo.SetOwnerAndStatusTx(ctx, tx, equipmentID, nil, newStatus, nil); err != nil {
			return err
		}

		notes := payload.Notes.Ptr()
		if notes == nil {
			generated := fmt.Sprintf("Статус изменён на %q (%s)", newStatus, actor.Fio)
			notes = &generated
		}

		return s.historyRepo.CreateInTx(ctx, tx, &entities.EquipmentHistory{
			EquipmentID: equipmentID,
			FromUserID:  previousOwnerID,
			Action:      entities.HistoryActionStatusChange,
			Notes:       notes,
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.LifecycleTransitionsTotal.WithLabelValues(entities.HistoryActionStatusChange, string(newStatus)).Inc()
	s.invalidateStatsCache(ctx)

	updated, err := s.equipmentRepo.FindEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	return &dto.TransitionResultDTO{Equipment: updated, NewStatus: newStatus}, nil
}
