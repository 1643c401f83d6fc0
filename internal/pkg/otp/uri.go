package otp

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrMalformedURI indicates an otpauth:// URI that cannot be parsed.
var ErrMalformedURI = errors.New("otp: malformed otpauth uri")

// URI is the parsed form of an otpauth:// provisioning URI.
type URI struct {
	// Type is the OTP flavor from the URI host.
	Type Type
	// Label is the percent-decoded path component.
	Label string
	// Issuer comes from the issuer parameter, falling back to the
	// "issuer:account" label prefix.
	Issuer string
	// AccountName is the label with any issuer prefix removed.
	AccountName string
	// Secret is the base32 secret, as written.
	Secret string
	// Algorithm defaults to sha1 when absent.
	Algorithm Algorithm
	// Digits defaults to 6 when absent.
	Digits uint
	// Period defaults to 30 when absent.
	Period uint
	// Counter is the initial HOTP counter, 0 when absent.
	Counter uint64
}

// ParseURI parses an otpauth:// provisioning URI as emitted by
// authenticator apps and QR enrollment flows.
func ParseURI(raw string) (URI, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return URI{}, ErrMalformedURI
	}

	if !strings.EqualFold(u.Scheme, "otpauth") {
		return URI{}, ErrMalformedURI
	}

	typ, ok := ParseType(u.Host)
	if !ok {
		return URI{}, ErrMalformedURI
	}

	out := URI{
		Type:      typ,
		Label:     strings.TrimPrefix(u.Path, "/"),
		Algorithm: AlgorithmSHA1,
		Digits:    6,
		Period:    30,
	}

	out.AccountName = out.Label
	if issuer, account, found := strings.Cut(out.Label, ":"); found {
		out.Issuer = strings.TrimSpace(issuer)
		out.AccountName = strings.TrimSpace(account)
	}

	q := u.Query()

	out.Secret = q.Get("secret")
	if out.Secret == "" {
		return URI{}, ErrMalformedURI
	}

	if v := q.Get("issuer"); v != "" {
		out.Issuer = v
	}

	if v := q.Get("algorithm"); v != "" {
		alg, ok := ParseAlgorithm(v)
		if !ok {
			return URI{}, ErrMalformedURI
		}
		out.Algorithm = alg
	}

	if v := q.Get("digits"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return URI{}, ErrMalformedURI
		}
		out.Digits = uint(n)
	}

	if v := q.Get("period"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return URI{}, ErrMalformedURI
		}
		out.Period = uint(n)
	}

	if v := q.Get("counter"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return URI{}, ErrMalformedURI
		}
		out.Counter = n
	}

	return out, nil
}

// BuildURI renders a provisioning URI for the given parameters, suitable
// for QR enrollment in authenticator apps.
func BuildURI(u URI) string {
	label := u.AccountName
	if u.Issuer != "" {
		label = u.Issuer + ":" + u.AccountName
	}

	q := url.Values{}
	q.Set("secret", Normalize(u.Secret))
	if u.Issuer != "" {
		q.Set("issuer", u.Issuer)
	}
	q.Set("algorithm", strings.ToUpper(string(u.Algorithm)))
	q.Set("digits", strconv.FormatUint(uint64(u.Digits), 10))

	switch u.Type {
	case TypeHOTP:
		q.Set("counter", strconv.FormatUint(u.Counter, 10))
	default:
		q.Set("period", strconv.FormatUint(uint64(u.Period), 10))
	}

	return fmt.Sprintf("otpauth://%s/%s?%s", u.Type, url.PathEscape(label), q.Encode())
}
