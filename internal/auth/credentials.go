// Package auth verifies operator credentials supplied via HTTP Basic
// authentication against argon2id password hashes stored in the users table.
package auth

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Credentials is a decoded username/password pair.
type Credentials struct {
	Username string
	Password string
}

const basicPrefix = "Basic "

// ParseBasicAuth decodes an Authorization header value of the form
// "Basic <base64(username:password)>". The payload is split on the first
// colon only, so passwords may contain colons.
func ParseBasicAuth(header string) (Credentials, error) {
	if header == "" {
		return Credentials{}, ErrMissingCredentials
	}

	encoded, ok := strings.CutPrefix(header, basicPrefix)
	if !ok {
		return Credentials{}, fmt.Errorf("%w: scheme is not Basic", ErrMalformedCredentials)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: payload is not valid base64", ErrMalformedCredentials)
	}
	if !utf8.Valid(decoded) {
		return Credentials{}, fmt.Errorf("%w: payload is not valid UTF-8", ErrMalformedCredentials)
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return Credentials{}, fmt.Errorf("%w: payload has no colon separator", ErrMalformedCredentials)
	}

	return Credentials{Username: username, Password: password}, nil
}
