package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is a persisted newsletter subscriber.
type Subscriber struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	SubscribedAt time.Time `json:"subscribed_at" db:"subscribed_at"`
	Status       Status    `json:"status" db:"status"`
}

type Status string

const (
	StatusPendingVerification Status = "pending_verification"
	StatusConfirmed           Status = "confirmed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingVerification, StatusConfirmed:
		return true
	default:
		return false
	}
}

// NewSubscriber is a validated subscribe request. It has no identity; one is
// assigned when the pending subscription is persisted.
type NewSubscriber struct {
	Name  Name
	Email Email
}

// ParseNewSubscriber validates the raw form fields. The name is validated
// first; the first failure is returned and no partially valid aggregate is
// ever constructed.
func ParseNewSubscriber(rawName, rawEmail string) (*NewSubscriber, error) {
	name, err := ParseName(rawName)
	if err != nil {
		return nil, err
	}

	email, err := ParseEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	return &NewSubscriber{Name: name, Email: email}, nil
}
