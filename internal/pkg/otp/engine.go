package otp

import (
	"errors"
	"strings"
	"time"

	libotp "github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
	"github.com/pquerna/otp/totp"
	"github.com/shandysiswandi/govault/internal/pkg/clock"
)

// ErrUnsupportedParams indicates digits or an algorithm outside the
// supported range.
var ErrUnsupportedParams = errors.New("otp: unsupported otp parameters")

// Type identifies the OTP flavor of an account.
type Type string

const (
	// TypeTOTP is the time-based flavor (RFC 6238).
	TypeTOTP Type = "totp"
	// TypeHOTP is the counter-based flavor (RFC 4226).
	TypeHOTP Type = "hotp"
)

// ParseType parses a case-insensitive OTP type name.
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(TypeTOTP):
		return TypeTOTP, true
	case string(TypeHOTP):
		return TypeHOTP, true
	default:
		return "", false
	}
}

// Algorithm identifies the HMAC hash used for code derivation.
type Algorithm string

const (
	// AlgorithmSHA1 is the default per RFC 4226 and RFC 6238.
	AlgorithmSHA1 Algorithm = "sha1"
	// AlgorithmSHA256 selects HMAC-SHA256.
	AlgorithmSHA256 Algorithm = "sha256"
	// AlgorithmSHA512 selects HMAC-SHA512.
	AlgorithmSHA512 Algorithm = "sha512"
)

// ParseAlgorithm parses a case-insensitive algorithm name.
func ParseAlgorithm(s string) (Algorithm, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(AlgorithmSHA1):
		return AlgorithmSHA1, true
	case string(AlgorithmSHA256):
		return AlgorithmSHA256, true
	case string(AlgorithmSHA512):
		return AlgorithmSHA512, true
	default:
		return "", false
	}
}

// Params carries the per-account code derivation parameters.
type Params struct {
	// Digits is the code length, between 6 and 8.
	Digits uint
	// Period is the TOTP time step in seconds.
	Period uint
	// Algorithm selects the HMAC hash.
	Algorithm Algorithm
}

func (p Params) validate(needPeriod bool) (libotp.Digits, libotp.Algorithm, error) {
	if p.Digits < 6 || p.Digits > 8 {
		return 0, 0, ErrUnsupportedParams
	}
	if needPeriod && p.Period == 0 {
		return 0, 0, ErrUnsupportedParams
	}

	var alg libotp.Algorithm
	switch p.Algorithm {
	case AlgorithmSHA1:
		alg = libotp.AlgorithmSHA1
	case AlgorithmSHA256:
		alg = libotp.AlgorithmSHA256
	case AlgorithmSHA512:
		alg = libotp.AlgorithmSHA512
	default:
		return 0, 0, ErrUnsupportedParams
	}

	return libotp.Digits(p.Digits), alg, nil
}

// Engine derives HOTP and TOTP codes from base32 secrets.
//
// TOTP time comes from the injected clock so code generation stays
// deterministic in tests.
type Engine struct {
	clock clock.Clocker
}

// NewEngine constructs an Engine.
func NewEngine(ck clock.Clocker) *Engine {
	return &Engine{clock: ck}
}

// HOTPCode derives the RFC 4226 code for a secret at the given counter.
func (e *Engine) HOTPCode(secret string, counter uint64, p Params) (string, error) {
	digits, alg, err := p.validate(false)
	if err != nil {
		return "", err
	}

	if _, err := Decode(secret); err != nil {
		return "", err
	}

	code, err := hotp.GenerateCodeCustom(Normalize(secret), counter, hotp.ValidateOpts{
		Digits:    digits,
		Algorithm: alg,
	})
	if err != nil {
		return "", err
	}

	return code, nil
}

// TOTPCode derives the RFC 6238 code for a secret at the current time.
func (e *Engine) TOTPCode(secret string, p Params) (string, error) {
	return e.TOTPCodeAt(secret, e.clock.Now(), p)
}

// TOTPCodeAt derives the RFC 6238 code for a secret at an explicit time.
func (e *Engine) TOTPCodeAt(secret string, at time.Time, p Params) (string, error) {
	digits, alg, err := p.validate(true)
	if err != nil {
		return "", err
	}

	if _, err := Decode(secret); err != nil {
		return "", err
	}

	code, err := totp.GenerateCodeCustom(Normalize(secret), at, totp.ValidateOpts{
		Period:    p.Period,
		Skew:      0,
		Digits:    digits,
		Algorithm: alg,
	})
	if err != nil {
		return "", err
	}

	return code, nil
}

// TimeRemaining reports the seconds until the current TOTP window rolls
// over. The result is always in [1, period].
func (e *Engine) TimeRemaining(period uint) uint {
	return TimeRemainingAt(e.clock.Now(), period)
}

// TimeRemainingAt reports the seconds left in the TOTP window containing at.
func TimeRemainingAt(at time.Time, period uint) uint {
	if period == 0 {
		return 0
	}
	return period - uint(uint64(at.Unix())%uint64(period))
}
