package mocks

import (
	"context"

	"github.com/feathermail/newsletter-service/internal/core/domain/subscription"
	"github.com/google/uuid"
)

// SubscriptionRepositoryMock is a lightweight mock for SubscriptionRepository
type SubscriptionRepositoryMock struct {
	CreatePendingSubscriptionFn func(ctx context.Context, sub *subscription.NewSubscriber, token string) (uuid.UUID, error)
	FindSubscriberIDByTokenFn   func(ctx context.Context, token string) (uuid.UUID, error)
	MarkConfirmedFn             func(ctx context.Context, subscriberID uuid.UUID) error
}

func (m *SubscriptionRepositoryMock) CreatePendingSubscription(ctx context.Context, sub *subscription.NewSubscriber, token string) (uuid.UUID, error) {
	if m.CreatePendingSubscriptionFn != nil {
		return m.CreatePendingSubscriptionFn(ctx, sub, token)
	}
	return uuid.New(), nil
}

func (m *SubscriptionRepositoryMock) FindSubscriberIDByToken(ctx context.Context, token string) (uuid.UUID, error) {
	if m.FindSubscriberIDByTokenFn != nil {
		return m.FindSubscriberIDByTokenFn(ctx, token)
	}
	return uuid.Nil, &subscription.NotFoundError{Token: token}
}

func (m *SubscriptionRepositoryMock) MarkConfirmed(ctx context.Context, subscriberID uuid.UUID) error {
	if m.MarkConfirmedFn != nil {
		return m.MarkConfirmedFn(ctx, subscriberID)
	}
	return nil
}

// EmailClientMock is a lightweight mock for EmailClient
type EmailClientMock struct {
	SendFn func(ctx context.Context, recipient subscription.Email, subject, htmlBody, textBody string) error
}

func (m *EmailClientMock) Send(ctx context.Context, recipient subscription.Email, subject, htmlBody, textBody string) error {
	if m.SendFn != nil {
		return m.SendFn(ctx, recipient, subject, htmlBody, textBody)
	}
	return nil
}

// SubscriptionServiceMock is a lightweight mock for SubscriptionService
type SubscriptionServiceMock struct {
	SubscribeFn func(ctx context.Context, rawName, rawEmail string) error
	ConfirmFn   func(ctx context.Context, token string) error
}

func (m *SubscriptionServiceMock) Subscribe(ctx context.Context, rawName, rawEmail string) error {
	if m.SubscribeFn != nil {
		return m.SubscribeFn(ctx, rawName, rawEmail)
	}
	return nil
}

func (m *SubscriptionServiceMock) Confirm(ctx context.Context, token string) error {
	if m.ConfirmFn != nil {
		return m.ConfirmFn(ctx, token)
	}
	return nil
}
