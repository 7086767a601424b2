package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriberStatus enumerates the lifecycle states of a subscriber.
// The only legal transition is pending_confirmation -> confirmed.
type SubscriberStatus string

const (
	StatusPendingConfirmation SubscriberStatus = "pending_confirmation"
	StatusConfirmed           SubscriberStatus = "confirmed"
)

// Subscriber represents a mailing list member. Subscribers are created in
// pending_confirmation and flip to confirmed once their token is redeemed;
// they are never deleted.
type Subscriber struct {
	ID           uuid.UUID
	Email        EmailAddress
	Name         SubscriberName
	Status       SubscriberStatus
	SubscribedAt time.Time
}

// ConfirmationToken links an opaque random token to exactly one subscriber.
// A token row is created in the same transaction as its subscriber and is
// never reassigned or deleted, so redeeming it twice is harmless.
type ConfirmationToken struct {
	Token        string
	SubscriberID uuid.UUID
}

// TokenLength is the number of alphanumeric characters in a confirmation token.
const TokenLength = 25
