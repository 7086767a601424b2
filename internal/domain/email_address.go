package domain

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidEmail is returned when a raw string cannot be parsed into an
// EmailAddress.
var ErrInvalidEmail = errors.New("invalid email address")

// WHATWG HTML5 email grammar. Stricter than RFC 5322 (no quoted local
// parts, no comments); matches what subscribers can type into a form.
var emailAddressRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// EmailAddress is a validated, immutable email address.
// The zero value is not valid; construct via ParseEmailAddress.
type EmailAddress struct {
	value string
}

// ParseEmailAddress validates a raw email address against the standard
// email-address grammar.
func ParseEmailAddress(raw string) (EmailAddress, error) {
	if !emailAddressRegex.MatchString(raw) {
		return EmailAddress{}, fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	return EmailAddress{value: raw}, nil
}

// String returns the validated inner value.
func (e EmailAddress) String() string { return e.value }
