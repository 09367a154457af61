package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/subscription"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type subscriptionRepositoryImpl struct {
	db *database.DB
}

func NewSubscriptionRepository(db *database.DB) subscription.SubscriptionRepository {
	return &subscriptionRepositoryImpl{db: db}
}

// GetByCompanyID implements subscription.SubscriptionRepository.
func (r *subscriptionRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) (subscription.Subscription, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, status, start_date, end_date, created_at, updated_at
		FROM subscriptions
		WHERE company_id = $1
	`

	var sub subscription.Subscription
	err := q.QueryRow(ctx, query, companyID).Scan(
		&sub.ID, &sub.CompanyID, &sub.Status, &sub.StartDate, &sub.EndDate, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return subscription.Subscription{}, subscription.ErrSubscriptionNotFound
		}
		return subscription.Subscription{}, fmt.Errorf("failed to get subscription by company id: %w", err)
	}
	return sub, nil
}

// Upsert implements subscription.SubscriptionRepository.
func (r *subscriptionRepositoryImpl) Upsert(ctx context.Context, sub subscription.Subscription) (subscription.Subscription, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO subscriptions (id, company_id, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT uk_subscriptions_company DO UPDATE
		SET status = EXCLUDED.status,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, sub.ID, sub.CompanyID, sub.Status, sub.StartDate, sub.EndDate).
		Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return subscription.Subscription{}, fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return sub, nil
}

// MarkExpired implements subscription.SubscriptionRepository.
func (r *subscriptionRepositoryImpl) MarkExpired(ctx context.Context, now time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE subscriptions
		SET status = 'expired', updated_at = NOW()
		WHERE status <> 'expired' AND end_date IS NOT NULL AND end_date < $1
		RETURNING company_id
	`

	rows, err := q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark expired subscriptions: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect expired subscriptions: %w", err)
	}
	return ids, nil
}
