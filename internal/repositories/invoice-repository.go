package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"profico-inventory/internal/dto"
	"profico-inventory/internal/entities"
	apperrors "profico-inventory/pkg/errors"
)

type InvoiceRepositoryInterface interface {
	GetInvoices(ctx context.Context) ([]entities.Invoice, error)
	FindInvoice(ctx context.Context, id uint64) (*entities.Invoice, error)
	CreateInvoice(ctx context.Context, payload dto.CreateInvoiceDTO) (uint64, error)
	UpdateInvoiceStatus(ctx context.Context, id uint64, payload dto.UpdateInvoiceStatusDTO) error
}

type InvoiceRepository struct {
	storage *pgxpool.Pool
}

func NewInvoiceRepository(storage *pgxpool.Pool) InvoiceRepositoryInterface {
	return &InvoiceRepository{storage: storage}
}

func scanInvoice(row pgx.Row) (*entities.Invoice, error) {
	var inv entities.Invoice
	var createdAt, updatedAt time.Time
	err := row.Scan(&inv.ID, &inv.SubscriptionID, &inv.Number, &inv.Amount, &inv.Currency,
		&inv.Status, &inv.IssuedAt, &inv.DueDate, &inv.PaidAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	inv.CreatedAt = &createdAt
	inv.UpdatedAt = &updatedAt
	return &inv, nil
}

func (r *InvoiceRepository) GetInvoices(ctx context.Context) ([]entities.Invoice, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, subscription_id, number, amount, currency, status, issued_at, due_date, paid_at, created_at, updated_at
		FROM invoices ORDER BY issued_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *inv)
	}
	return list, rows.Err()
}

func (r *InvoiceRepository) FindInvoice(ctx context.Context, id uint64) (*entities.Invoice, error) {
	inv, err := scanInvoice(r.storage.QueryRow(ctx, `
		SELECT id, subscription_id, number, amount, currency, status, issued_at, due_date, paid_at, created_at, updated_at
		FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *InvoiceRepository) CreateInvoice(ctx context.Context, payload dto.CreateInvoiceDTO) (uint64, error) {
	var subscriptionID interface{}
	if payload.SubscriptionID.Valid {
		subscriptionID = payload.SubscriptionID.Uint64
	}

	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO invoices (subscription_id, number, amount, currency, status, issued_at, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		subscriptionID, payload.Number, payload.Amount, payload.Currency,
		entities.InvoicePending, payload.IssuedAt, payload.DueDate.Ptr(),
	).Scan(&id)
	return id, err
}

func (r *InvoiceRepository) UpdateInvoiceStatus(ctx context.Context, id uint64, payload dto.UpdateInvoiceStatusDTO) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE invoices SET status = $2, paid_at = $3, updated_at = NOW() WHERE id = $1`,
		id, payload.Status, payload.PaidAt.Ptr())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
