package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/pkg/logger"
	"github.com/ignite/newsletter/internal/service/delivery"
)

// DeliveryRepo implements delivery.Repository against PostgreSQL.
type DeliveryRepo struct{ db *sql.DB }

// NewDeliveryRepo creates a Postgres-backed delivery repository.
func NewDeliveryRepo(db *sql.DB) *DeliveryRepo { return &DeliveryRepo{db: db} }

// ListConfirmed returns confirmed subscribers ordered by signup time. Rows
// whose stored email no longer parses are skipped with a warning rather
// than failing the whole broadcast.
func (r *DeliveryRepo) ListConfirmed(ctx context.Context) ([]domain.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, name, subscribed_at, status
		FROM subscriptions
		WHERE status = $1
		ORDER BY subscribed_at
	`, domain.StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("list confirmed: %w", err)
	}
	defer rows.Close()

	var out []domain.Subscriber
	for rows.Next() {
		var (
			sub       domain.Subscriber
			rawEmail  string
			rawName   string
			rawStatus string
		)
		if err := rows.Scan(&sub.ID, &rawEmail, &rawName, &sub.SubscribedAt, &rawStatus); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		email, err := domain.ParseEmailAddress(rawEmail)
		if err != nil {
			logger.Warn("skipping subscriber with unparseable email",
				"subscriber_id", sub.ID.String(),
				"error", err.Error(),
			)
			continue
		}
		name, err := domain.ParseSubscriberName(rawName)
		if err != nil {
			logger.Warn("skipping subscriber with unparseable name",
				"subscriber_id", sub.ID.String(),
				"error", err.Error(),
			)
			continue
		}
		sub.Email = email
		sub.Name = name
		sub.Status = domain.SubscriberStatus(rawStatus)
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribers: %w", err)
	}
	return out, nil
}

func (r *DeliveryRepo) RecordOutcome(ctx context.Context, deliveryID uuid.UUID, email domain.EmailAddress, outcome delivery.Outcome, sendErr string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO delivery_outcomes (delivery_id, email, outcome, error, sent_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, deliveryID, email.String(), outcome, sendErr)
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	return nil
}
