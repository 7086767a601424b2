package delivery

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignite/newsletter/internal/domain"
)

// Repository defines the data access contract for newsletter delivery.
type Repository interface {
	// ListConfirmed returns every confirmed subscriber in store order.
	ListConfirmed(ctx context.Context) ([]domain.Subscriber, error)

	// RecordOutcome persists one per-recipient delivery attempt. sendErr is
	// empty on success.
	RecordOutcome(ctx context.Context, deliveryID uuid.UUID, email domain.EmailAddress, outcome Outcome, sendErr string) error
}

// EmailSender delivers a single message to a single recipient.
type EmailSender interface {
	Send(ctx context.Context, recipient domain.EmailAddress, subject, htmlBody string) error
}

// Verifier authenticates the caller of a delivery request.
type Verifier interface {
	// VerifyBasicAuth validates an Authorization header value and returns
	// the authenticated user id.
	VerifyBasicAuth(ctx context.Context, header string) (uuid.UUID, error)
}
