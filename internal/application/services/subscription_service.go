package services

import (
	"context"
	"fmt"

	"github.com/feathermail/newsletter-service/internal/core/domain/subscription"
	"github.com/feathermail/newsletter-service/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// SubscriptionService orchestrates the subscribe and confirm workflows.
type SubscriptionService struct {
	repo        ports.SubscriptionRepository
	emailClient ports.EmailClient
	baseURL     string
	logger      *logrus.Logger
	newToken    func() (string, error)
}

func NewSubscriptionService(repo ports.SubscriptionRepository, emailClient ports.EmailClient, baseURL string, logger *logrus.Logger) ports.SubscriptionService {
	return &SubscriptionService{
		repo:        repo,
		emailClient: emailClient,
		baseURL:     baseURL,
		logger:      logger,
		newToken:    subscription.GenerateToken,
	}
}

// Subscribe validates the raw form fields, persists the pending subscription
// together with a fresh confirmation token in one atomic step, and then sends
// the confirmation email. The persistence commit strictly precedes the email
// attempt: a dispatch failure leaves the committed subscriber in
// pending_verification with no compensating rollback.
func (s *SubscriptionService) Subscribe(ctx context.Context, rawName, rawEmail string) error {
	sub, err := subscription.ParseNewSubscriber(rawName, rawEmail)
	if err != nil {
		return err
	}

	token, err := s.newToken()
	if err != nil {
		return &subscription.PersistenceError{Err: fmt.Errorf("generate confirmation token: %w", err)}
	}

	subscriberID, err := s.repo.CreatePendingSubscription(ctx, sub, token)
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"subscriber_id": subscriberID, "email": sub.Email.String()}).Info("pending subscription created")
	}

	if err := s.sendConfirmationEmail(ctx, sub, token); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"subscriber_id": subscriberID, "email": sub.Email.String()}).WithError(err).Warn("confirmation email not delivered; subscription stays pending")
		}
		return err
	}

	return nil
}

func (s *SubscriptionService) sendConfirmationEmail(ctx context.Context, sub *subscription.NewSubscriber, token string) error {
	link := fmt.Sprintf("%s/subscriptions/confirm?token=%s", s.baseURL, token)
	body := fmt.Sprintf("Welcome to our newsletter <a href=%q>here</a>", link)

	// The plain-text body carries the same content, link included.
	return s.emailClient.Send(ctx, sub.Email, "Welcome", body, body)
}

// Confirm resolves the token to its subscriber and marks the subscriber
// confirmed. An unknown token is a not-found failure; re-confirming an
// already confirmed subscriber succeeds.
func (s *SubscriptionService) Confirm(ctx context.Context, token string) error {
	subscriberID, err := s.repo.FindSubscriberIDByToken(ctx, token)
	if err != nil {
		return err
	}

	if err := s.repo.MarkConfirmed(ctx, subscriberID); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"subscriber_id": subscriberID}).Info("subscription confirmed")
	}

	return nil
}
