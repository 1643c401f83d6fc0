package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/govault/internal/pkg/goerror"
	"github.com/shandysiswandi/govault/internal/pkg/otp"
)

type AccountUpdateInput struct {
	Key       string `validate:"required"`
	Name      string `validate:"omitempty,max=120"`
	Secret    string `validate:"omitempty,base32secret"`
	Algorithm string `validate:"omitempty,oneof=sha1 sha256 sha512"`
	Digits    uint   `validate:"omitempty,min=6,max=8"`
	Period    uint   `validate:"omitempty,min=15,max=60"`

	// Encrypt requests how the secret is stored from here on; nil keeps
	// the configured default on rotation and the current storage mode
	// otherwise.
	Encrypt *bool
}

type AccountUpdateOutput struct {
	Key       string
	Name      string
	Type      otp.Type
	Algorithm otp.Algorithm
	Digits    uint
	Period    uint
	Encrypted bool
}

// AccountUpdate changes the mutable fields of an account. The key, the type
// and the counter never change here; rotating the secret keeps the counter
// so HOTP clients are not replayed against old codes.
func (s *Usecase) AccountUpdate(ctx context.Context, in AccountUpdateInput) (*AccountUpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "AccountUpdate")
	defer span.End()

	in.Key = strings.TrimSpace(in.Key)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetAccountByKey(ctx, in.Key)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, s.notFound(ctx, in.Key)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account", "key", in.Key, "error", err)
		return nil, goerror.NewServer(err)
	}

	if in.Name != "" {
		acc.Name = in.Name
	}
	if in.Digits != 0 {
		acc.Digits = in.Digits
	}
	if in.Period != 0 {
		acc.Period = in.Period
	}
	if alg, ok := otp.ParseAlgorithm(in.Algorithm); ok {
		acc.Algorithm = alg
	}

	secret, err := s.secretOf(ctx, acc)
	if err != nil {
		return nil, err
	}
	if in.Secret != "" {
		secret = otp.Normalize(in.Secret)
	}

	// The updated combination must still derive a code before it is saved.
	if acc.Type == otp.TypeHOTP {
		_, err = s.engine.HOTPCode(secret, acc.Counter, acc.Params())
	} else {
		_, err = s.engine.TOTPCode(secret, acc.Params())
	}
	if err != nil {
		slog.WarnContext(ctx, "trial code derivation failed", "key", acc.Key, "error", err)
		return nil, mapOTPError(err)
	}

	// A rotation re-seals the secret; setting Encrypt alone re-seals the
	// existing secret in the requested storage mode.
	if in.Secret != "" || in.Encrypt != nil {
		encrypt := s.cfg.GetBool("modules.vault.encrypt_secrets")
		if in.Encrypt != nil {
			encrypt = *in.Encrypt
		}

		acc.Secret = secret
		acc.Encrypted = false
		if encrypt {
			envelope, err := s.encryptor.EncryptString(secret)
			if err != nil {
				slog.ErrorContext(ctx, "failed to encrypt secret", "key", acc.Key, "error", err)
				return nil, goerror.NewServer(err)
			}
			acc.Secret = envelope
			acc.Encrypted = true
		}
	}

	acc.UpdatedAt = s.clock.Now()
	if err := s.repoDB.UpdateAccount(ctx, *acc); err != nil {
		slog.ErrorContext(ctx, "failed to repo update account", "key", acc.Key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AccountUpdateOutput{
		Key:       acc.Key,
		Name:      acc.Name,
		Type:      acc.Type,
		Algorithm: acc.Algorithm,
		Digits:    acc.Digits,
		Period:    acc.Period,
		Encrypted: acc.Encrypted,
	}, nil
}
