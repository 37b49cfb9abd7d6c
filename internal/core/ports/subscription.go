package ports

import (
	"context"

	"github.com/feathermail/newsletter-service/internal/core/domain/subscription"
	"github.com/google/uuid"
)

// SubscriptionRepository defines the transactional persistence capability the
// subscription workflows require.
type SubscriptionRepository interface {
	// CreatePendingSubscription inserts the subscriber row and its token row
	// in one atomic unit: both commit together or neither is observable.
	CreatePendingSubscription(ctx context.Context, sub *subscription.NewSubscriber, token string) (uuid.UUID, error)
	// FindSubscriberIDByToken resolves a confirmation token to the subscriber
	// it activates. Zero matches is a *subscription.NotFoundError, not a
	// persistence failure.
	FindSubscriberIDByToken(ctx context.Context, token string) (uuid.UUID, error)
	// MarkConfirmed unconditionally sets the subscriber status to confirmed.
	// Re-applying it to an already confirmed subscriber succeeds silently.
	MarkConfirmed(ctx context.Context, subscriberID uuid.UUID) error
}

// SubscriptionService defines the subscription business logic.
type SubscriptionService interface {
	Subscribe(ctx context.Context, rawName, rawEmail string) error
	Confirm(ctx context.Context, token string) error
}
