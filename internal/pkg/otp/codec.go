package otp

import (
	"encoding/base32"
	"errors"
	"strings"
)

// ErrInvalidSecret indicates a secret that is not valid base32.
var ErrInvalidSecret = errors.New("otp: invalid base32 secret")

// Normalize strips all whitespace from a base32 secret and upper-cases it.
//
// Provisioning tools often render secrets in space-separated lower-case
// groups; normalization makes those inputs canonical before decoding.
func Normalize(secret string) string {
	return strings.ToUpper(strings.Join(strings.Fields(secret), ""))
}

// Decode normalizes a base32 secret and decodes it to raw key bytes.
//
// Padding is optional: trailing '=' characters are accepted and ignored.
// An empty or non-base32 input returns ErrInvalidSecret.
func Decode(secret string) ([]byte, error) {
	s := strings.TrimRight(Normalize(secret), "=")
	if s == "" {
		return nil, ErrInvalidSecret
	}

	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(s)
	if err != nil {
		return nil, ErrInvalidSecret
	}

	return key, nil
}
