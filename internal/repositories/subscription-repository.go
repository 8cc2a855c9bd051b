package repositories

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"profico-inventory/internal/dto"
	"profico-inventory/internal/entities"
	apperrors "profico-inventory/pkg/errors"
)

type SubscriptionRepositoryInterface interface {
	GetSubscriptions(ctx context.Context) ([]entities.Subscription, error)
	FindSubscription(ctx context.Context, id uint64) (*entities.Subscription, error)
	CreateSubscription(ctx context.Context, payload dto.CreateSubscriptionDTO) (uint64, error)
	UpdateSubscription(ctx context.Context, id uint64, payload dto.UpdateSubscriptionDTO) error
}

type SubscriptionRepository struct {
	storage *pgxpool.Pool
}

func NewSubscriptionRepository(storage *pgxpool.Pool) SubscriptionRepositoryInterface {
	return &SubscriptionRepository{storage: storage}
}

func scanSubscription(row pgx.Row) (*entities.Subscription, error) {
	var s entities.Subscription
	var createdAt, updatedAt time.Time
	err := row.Scan(&s.ID, &s.Name, &s.Vendor, &s.Seats, &s.PricePerMonth, &s.Status, &s.RenewsAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = &createdAt
	s.UpdatedAt = &updatedAt
	return &s, nil
}

func (r *SubscriptionRepository) GetSubscriptions(ctx context.Context) ([]entities.Subscription, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, name, vendor, seats, price_per_month, status, renews_at, created_at, updated_at
		FROM subscriptions ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

func (r *SubscriptionRepository) FindSubscription(ctx context.Context, id uint64) (*entities.Subscription, error) {
	s, err := scanSubscription(r.storage.QueryRow(ctx, `
		SELECT id, name, vendor, seats, price_per_month, status, renews_at, created_at, updated_at
		FROM subscriptions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *SubscriptionRepository) CreateSubscription(ctx context.Context, payload dto.CreateSubscriptionDTO) (uint64, error) {
	status := payload.Status
	if status == "" {
		status = entities.SubscriptionActive
	}

	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO subscriptions (name, vendor, seats, price_per_month, status, renews_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		payload.Name, payload.Vendor, payload.Seats, payload.PricePerMonth, status, payload.RenewsAt.Ptr(),
	).Scan(&id)
	return id, err
}

func (r *SubscriptionRepository) UpdateSubscription(ctx context.Context, id uint64, payload dto.UpdateSubscriptionDTO) error {
	update := sq.Update("subscriptions").PlaceholderFormat(sq.Dollar).Where(sq.Eq{"id": id})
	changed := false

	if payload.Name != nil {
		update = update.Set("name", *payload.Name)
		changed = true
	}
	if payload.Vendor != nil {
		update = update.Set("vendor", *payload.Vendor)
		changed = true
	}
	if payload.Seats != nil {
		update = update.Set("seats", *payload.Seats)
		changed = true
	}
	if payload.PricePerMonth != nil {
		update = update.Set("price_per_month", *payload.PricePerMonth)
		changed = true
	}
	if payload.RenewsAt.Valid {
		update = update.Set("renews_at", payload.RenewsAt.Time)
		changed = true
	}
	if payload.Status != nil {
		update = update.Set("status", *payload.Status)
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
