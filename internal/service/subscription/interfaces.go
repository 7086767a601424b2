package subscription

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignite/newsletter/internal/domain"
)

// Repository defines the data access contract for the subscriber lifecycle.
// Implementations must be safe for concurrent use.
type Repository interface {
	// CreateWithToken inserts a subscriber row and its confirmation token in
	// one transaction: no state may exist where one is present without the
	// other. Returns ErrDuplicateEmail if the email is already subscribed.
	CreateWithToken(ctx context.Context, sub *domain.Subscriber, token string) error

	// SubscriberIDByToken resolves a confirmation token to a subscriber id.
	// Returns ErrUnknownToken if no token row matches.
	SubscriberIDByToken(ctx context.Context, token string) (uuid.UUID, error)

	// MarkConfirmed sets a subscriber's status to confirmed. Idempotent:
	// confirming an already-confirmed subscriber re-applies the same status.
	MarkConfirmed(ctx context.Context, id uuid.UUID) error
}

// EmailSender delivers a single message to a single recipient.
type EmailSender interface {
	Send(ctx context.Context, recipient domain.EmailAddress, subject, htmlBody string) error
}
