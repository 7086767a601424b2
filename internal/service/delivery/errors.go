package delivery

import "errors"

// ErrDeliveryFailed means the fan-out completed but at least one recipient
// did not get the issue. The per-recipient record in the outcome store is
// the authoritative account of who failed.
var ErrDeliveryFailed = errors.New("delivery failed for some recipients")
