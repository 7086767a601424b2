package subscription

import "errors"

// Sentinel errors for the subscription service layer. The api layer
// translates these to status codes; anything else is a 500.
var (
	// ErrInvalidSubscriber wraps a value-type validation failure.
	ErrInvalidSubscriber = errors.New("invalid subscriber data")

	// ErrDuplicateEmail means the email already has a subscription row.
	ErrDuplicateEmail = errors.New("email is already subscribed")

	// ErrUnknownToken means no confirmation token row matched.
	ErrUnknownToken = errors.New("unknown confirmation token")

	// ErrNotification means the subscriber and token were durably committed
	// but the confirmation email could not be sent. The row is NOT rolled
	// back; the token stays valid.
	ErrNotification = errors.New("confirmation email could not be sent")
)
