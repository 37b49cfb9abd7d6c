package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/feathermail/newsletter-service/internal/core/domain/subscription"
	"github.com/feathermail/newsletter-service/internal/core/ports"
	"github.com/feathermail/newsletter-service/internal/infrastructure/db"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SubscriptionRepository implements the subscription repository interface on
// Postgres.
type SubscriptionRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(database *db.Database, logger *logrus.Logger) ports.SubscriptionRepository {
	return &SubscriptionRepository{
		db:     database,
		logger: logger,
	}
}

// CreatePendingSubscription inserts the subscriber row and its token row in
// one transaction. Any failure aborts the whole unit: the transaction is
// rolled back and neither row becomes observable.
func (r *SubscriptionRepository) CreatePendingSubscription(ctx context.Context, sub *subscription.NewSubscriber, token string) (uuid.UUID, error) {
	subscriberID := uuid.New()

	tx, err := r.db.DB.BeginTxx(ctx, nil)
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to begin subscription transaction")
		}
		return uuid.Nil, &subscription.PersistenceError{Err: fmt.Errorf("failed to begin transaction: %w", err)}
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback()
	}()

	insertSubscription := `
		INSERT INTO subscriptions (id, name, email, subscribed_at, status)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = tx.ExecContext(ctx, insertSubscription,
		subscriberID, sub.Name.String(), sub.Email.String(), time.Now().UTC(), subscription.StatusPendingVerification)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"subscriber_id": subscriberID, "email": sub.Email.String()}).WithError(err).Error("db: failed to insert subscription")
		}
		return uuid.Nil, &subscription.PersistenceError{Err: fmt.Errorf("failed to insert subscription: %w", err)}
	}

	insertToken := `
		INSERT INTO subscription_tokens (subscription_id, token)
		VALUES ($1, $2)`

	_, err = tx.ExecContext(ctx, insertToken, subscriberID, token)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"subscriber_id": subscriberID}).WithError(err).Error("db: failed to insert subscription token")
		}
		return uuid.Nil, &subscription.PersistenceError{Err: fmt.Errorf("failed to insert subscription token: %w", err)}
	}

	if err := tx.Commit(); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"subscriber_id": subscriberID}).WithError(err).Error("db: failed to commit subscription transaction")
		}
		return uuid.Nil, &subscription.PersistenceError{Err: fmt.Errorf("failed to commit transaction: %w", err)}
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"subscriber_id": subscriberID, "email": sub.Email.String()}).Info("db: pending subscription created")
	}

	return subscriberID, nil
}

// FindSubscriberIDByToken resolves a confirmation token with an exact-match
// lookup.
func (r *SubscriptionRepository) FindSubscriberIDByToken(ctx context.Context, token string) (uuid.UUID, error) {
	var subscriberID uuid.UUID
	query := `SELECT subscription_id FROM subscription_tokens WHERE token = $1`

	err := r.db.DB.GetContext(ctx, &subscriberID, query, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if r.logger != nil {
				r.logger.Debug("db: subscription token not found")
			}
			return uuid.Nil, &subscription.NotFoundError{Token: token}
		}
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to look up subscription token")
		}
		return uuid.Nil, &subscription.PersistenceError{Err: fmt.Errorf("failed to look up subscription token: %w", err)}
	}

	return subscriberID, nil
}

// MarkConfirmed sets the subscriber status to confirmed. The update is
// unconditional, so re-confirming an already confirmed subscriber succeeds
// silently.
func (r *SubscriptionRepository) MarkConfirmed(ctx context.Context, subscriberID uuid.UUID) error {
	query := `UPDATE subscriptions SET status = $2 WHERE id = $1`

	_, err := r.db.DB.ExecContext(ctx, query, subscriberID, subscription.StatusConfirmed)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"subscriber_id": subscriberID}).WithError(err).Error("db: failed to mark subscription confirmed")
		}
		return &subscription.PersistenceError{Err: fmt.Errorf("failed to mark subscription confirmed: %w", err)}
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"subscriber_id": subscriberID}).Info("db: subscription confirmed")
	}

	return nil
}
