package entity

import (
	"time"

	"github.com/shandysiswandi/govault/internal/pkg/otp"
)

const (
	// DefaultDigits is applied when a create request omits digits.
	DefaultDigits uint = 6
	// DefaultPeriod is applied when a create request omits the period.
	DefaultPeriod uint = 30
	// DefaultAlgorithm is applied when a create request omits the
	// algorithm, per RFC 4226 and RFC 6238.
	DefaultAlgorithm = otp.AlgorithmSHA1
	// DefaultType is applied when a create request omits the OTP type.
	DefaultType = otp.TypeTOTP
)

const (
	// MinPeriod bounds the TOTP time step at creation.
	MinPeriod uint = 15
	// MaxPeriod bounds the TOTP time step at creation.
	MaxPeriod uint = 60
)

// Account is a stored OTP credential.
type Account struct {
	ID int64

	// Key uniquely identifies the account and never changes after
	// creation.
	Key string

	// Name is a display name; it defaults to Key.
	Name string

	// Secret holds the base32 secret, or the crypt envelope when
	// Encrypted is set.
	Secret string

	// Encrypted marks whether Secret is a crypt envelope.
	Encrypted bool

	Digits    uint
	Period    uint
	Algorithm otp.Algorithm
	Type      otp.Type

	// Counter is the HOTP moving factor. It only moves forward, and only
	// through HOTP code issuance.
	Counter uint64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Params returns the code derivation parameters of the account.
func (a Account) Params() otp.Params {
	return otp.Params{
		Digits:    a.Digits,
		Period:    a.Period,
		Algorithm: a.Algorithm,
	}
}

// Issuance is the outcome of generating a code for one account.
type Issuance struct {
	Key  string
	Type otp.Type
	Code string

	// Algorithm is the HMAC hash the code was derived with.
	Algorithm otp.Algorithm

	// SecondsRemaining is the TOTP window remainder; zero for HOTP.
	SecondsRemaining uint

	// ExpiresAt is the instant the TOTP window rolls over; zero for HOTP.
	ExpiresAt time.Time

	// Counter is the account counter after HOTP issuance; zero for TOTP.
	Counter uint64
}
