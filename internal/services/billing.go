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

type SubscriptionServiceInterface interface {
	GetSubscriptions(ctx context.Context) ([]entities.Subscription, error)
	FindSubscription(ctx context.Context, id uint64) (*entities.Subscription, error)
	CreateSubscription(ctx context.Context, payload dto.CreateSubscriptionDTO) (*entities.Subscription, error)
	UpdateSubscription(ctx context.Context, id uint64, payload dto.UpdateSubscriptionDTO) (*entities.Subscription, error)
}

type InvoiceServiceInterface interface {
	GetInvoices(ctx context.Context) ([]entities.Invoice, error)
	FindInvoice(ctx context.Context, id uint64) (*entities.Invoice, error)
	CreateInvoice(ctx context.Context, payload dto.CreateInvoiceDTO) (*entities.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id uint64, payload dto.UpdateInvoiceStatusDTO) (*entities.Invoice, error)
}

type subscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepositoryInterface
	logger           *zap.Logger
}

func NewSubscriptionService(subscriptionRepo repositories.SubscriptionRepositoryInterface, logger *zap.Logger) SubscriptionServiceInterface {
	return &subscriptionService{subscriptionRepo: subscriptionRepo, logger: logger}
}

func (s *subscriptionService) GetSubscriptions(ctx context.Context) ([]entities.Subscription, error) {
	if err := requireCapability(ctx, authz.BillingView); err != nil {
		return nil, err
	}
	return s.subscriptionRepo.GetSubscriptions(ctx)
}

func (s *subscriptionService) FindSubscription(ctx context.Context, id uint64) (*entities.Subscription, error) {
	if err := requireCapability(ctx, authz.BillingView); err != nil {
		return nil, err
	}
	subscription, err := s.subscriptionRepo.FindSubscription(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Подписка не найдена")
		}
		return nil, err
	}
	return subscription, nil
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, payload dto.CreateSubscriptionDTO) (*entities.Subscription, error) {
	if err := requireCapability(ctx, authz.BillingManage); err != nil {
		return nil, err
	}
	if payload.Status == "" {
		payload.Status = entities.SubscriptionActive
	}
	id, err := s.subscriptionRepo.CreateSubscription(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("создана подписка", zap.Uint64("subscriptionID", id), zap.String("vendor", payload.Vendor))
	return s.subscriptionRepo.FindSubscription(ctx, id)
}

func (s *subscriptionService) UpdateSubscription(ctx context.Context, id uint64, payload dto.UpdateSubscriptionDTO) (*entities.Subscription, error) {
	if err := requireCapability(ctx, authz.BillingManage); err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.UpdateSubscription(ctx, id, payload); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Подписка не найдена")
		}
		return nil, err
	}
	return s.subscriptionRepo.FindSubscription(ctx, id)
}

type invoiceService struct {
	invoiceRepo repositories.InvoiceRepositoryInterface
	logger      *zap.Logger
}

func NewInvoiceService(invoiceRepo repositories.InvoiceRepositoryInterface, logger *zap.Logger) InvoiceServiceInterface {
	return &invoiceService{invoiceRepo: invoiceRepo, logger: logger}
}

func (s *invoiceService) GetInvoices(ctx context.Context) ([]entities.Invoice, error) {
	if err := requireCapability(ctx, authz.BillingView); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetInvoices(ctx)
}

func (s *invoiceService) FindInvoice(ctx context.Context, id uint64) (*entities.Invoice, error) {
	if err := requireCapability(ctx, authz.BillingView); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Счёт не найден")
		}
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, payload dto.CreateInvoiceDTO) (*entities.Invoice, error) {
	if err := requireCapability(ctx, authz.BillingManage); err != nil {
		return nil, err
	}
	id, err := s.invoiceRepo.CreateInvoice(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("создан счёт", zap.Uint64("invoiceID", id), zap.String("number", payload.Number))
	return s.invoiceRepo.FindInvoice(ctx, id)
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, id uint64, payload dto.UpdateInvoiceStatusDTO) (*entities.Invoice, error) {
	if err := requireCapability(ctx, authz.BillingManage); err != nil {
		return nil, err
	}
	// paid_at обязателен ровно для статуса paid.
	if payload.Status == entities.InvoicePaid && !payload.PaidAt.Valid {
		return nil, apperrors.NewValidationError("Для оплаченного счёта нужна дата оплаты",
			map[string]interface{}{"paid_at": "required"})
	}
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, id, payload); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Счёт не найден")
		}
		return nil, err
	}
	return s.invoiceRepo.FindInvoice(ctx, id)
}
