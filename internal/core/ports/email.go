package ports

import (
	"context"

	"github.com/feathermail/newsletter-service/internal/core/domain/subscription"
)

// EmailClient delivers transactional email through the provider. A failed
// send surfaces as a *subscription.DispatchError; the client performs exactly
// one attempt.
type EmailClient interface {
	Send(ctx context.Context, recipient subscription.Email, subject, htmlBody, textBody string) error
}
