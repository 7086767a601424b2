package auth

import "errors"

// Sentinel errors for credential verification. The api layer collapses all
// three to an identical 401 challenge so callers cannot distinguish a missing
// header from a bad password or probe for valid usernames.
var (
	ErrMissingCredentials   = errors.New("missing authorization header")
	ErrMalformedCredentials = errors.New("malformed authorization header")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)
