package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// ErrInvalidName is returned when a raw string cannot be parsed into a
// SubscriberName.
var ErrInvalidName = errors.New("invalid subscriber name")

// maxNameGraphemes caps names at 256 user-perceived characters. Grapheme
// clusters, not bytes or runes: "noël" typed with a combining diaeresis is
// four characters to the user even though it is five runes.
const maxNameGraphemes = 256

var forbiddenNameChars = "/()\"<>\\{}"

// SubscriberName is a validated, immutable subscriber display name.
// The zero value is not valid; construct via ParseSubscriberName.
type SubscriberName struct {
	value string
}

// ParseSubscriberName validates a raw name. It fails if the trimmed string is
// empty, if the name exceeds 256 grapheme clusters, or if it contains any of
// the characters / ( ) " < > \ { }.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	if strings.TrimSpace(raw) == "" {
		return SubscriberName{}, fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if uniseg.GraphemeClusterCount(raw) > maxNameGraphemes {
		return SubscriberName{}, fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, maxNameGraphemes)
	}
	if strings.ContainsAny(raw, forbiddenNameChars) {
		return SubscriberName{}, fmt.Errorf("%w: name contains a forbidden character", ErrInvalidName)
	}
	return SubscriberName{value: raw}, nil
}

// String returns the validated inner value.
func (n SubscriberName) String() string { return n.value }
