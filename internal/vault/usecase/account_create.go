package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/govault/internal/pkg/goerror"
	"github.com/shandysiswandi/govault/internal/pkg/idempotency"
	"github.com/shandysiswandi/govault/internal/pkg/otp"
	"github.com/shandysiswandi/govault/internal/vault/entity"
)

type AccountCreateInput struct {
	Key       string `validate:"required,min=1,max=120"`
	Name      string `validate:"omitempty,max=120"`
	Secret    string `validate:"required,base32secret"`
	Type      string `validate:"omitempty,oneof=totp hotp"`
	Algorithm string `validate:"omitempty,oneof=sha1 sha256 sha512"`
	Digits    uint   `validate:"omitempty,min=6,max=8"`
	Period    uint   `validate:"omitempty,min=15,max=60"`
	Counter   uint64

	// Encrypt overrides the process-wide encrypt-at-rest toggle for this
	// account; nil keeps the configured default.
	Encrypt *bool
}

type AccountCreateOutput struct {
	Key       string
	Name      string
	Type      otp.Type
	Algorithm otp.Algorithm
	Digits    uint
	Period    uint
	Encrypted bool
}

// AccountCreate registers a new credential account. All validation happens
// before anything is written; the unique index on the key is the final
// arbiter for concurrent creates.
func (s *Usecase) AccountCreate(ctx context.Context, in AccountCreateInput) (*AccountCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "AccountCreate")
	defer span.End()

	in.Key = strings.TrimSpace(in.Key)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acc, err := s.buildAccount(ctx, in)
	if err != nil {
		return nil, err
	}

	guard := createGuardKey(acc.Key)
	err = s.idemp.Exec(ctx, guard, func(ctx context.Context) error {
		return s.repoDB.CreateAccount(ctx, *acc)
	})
	if errors.Is(err, idempotency.ErrAlreadyFailed) {
		// A cached failure says nothing about whether the account exists
		// now; the store decides between conflict and retry.
		err = s.retryAfterFailedCreate(ctx, guard, acc)
	}
	switch {
	case errors.Is(err, idempotency.ErrAlreadyInProgress),
		errors.Is(err, idempotency.ErrAlreadyCompleted),
		errors.Is(err, goerror.ErrConflict):
		slog.WarnContext(ctx, "account key already exists", "key", acc.Key)
		return nil, goerror.NewBusiness("account key already exists", goerror.CodeConflict)
	case err != nil:
		slog.ErrorContext(ctx, "failed to repo create account", "key", acc.Key, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publishAsync(ctx, "vault.account_created", func(ctx context.Context) error {
		return s.repoMessaging.PublishAccountCreated(ctx, AccountCreatedEvent{
			Key:       acc.Key,
			Name:      acc.Name,
			Type:      acc.Type,
			Algorithm: acc.Algorithm,
			Digits:    acc.Digits,
		})
	})

	return &AccountCreateOutput{
		Key:       acc.Key,
		Name:      acc.Name,
		Type:      acc.Type,
		Algorithm: acc.Algorithm,
		Digits:    acc.Digits,
		Period:    acc.Period,
		Encrypted: acc.Encrypted,
	}, nil
}

// retryAfterFailedCreate resolves a failed-state hit on the create guard.
// If the account exists the failure stands as a conflict; otherwise the
// stale guard is cleared and the insert runs against the unique index.
func (s *Usecase) retryAfterFailedCreate(ctx context.Context, guard string, acc *entity.Account) error {
	_, err := s.repoDB.GetAccountByKey(ctx, acc.Key)
	if err == nil {
		return goerror.ErrConflict
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		return err
	}

	if err := s.idemp.Clear(ctx, guard); err != nil {
		slog.WarnContext(ctx, "failed to clear create guard", "key", acc.Key, "error", err)
	}

	return s.repoDB.CreateAccount(ctx, *acc)
}

// buildAccount applies defaults, proves the secret can derive a code, and
// seals the secret when encryption at rest is enabled.
func (s *Usecase) buildAccount(ctx context.Context, in AccountCreateInput) (*entity.Account, error) {
	acc := &entity.Account{
		ID:        s.uid.Generate(),
		Key:       in.Key,
		Name:      in.Name,
		Digits:    in.Digits,
		Period:    in.Period,
		Counter:   in.Counter,
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	}

	if acc.Name == "" {
		acc.Name = acc.Key
	}
	if acc.Digits == 0 {
		acc.Digits = entity.DefaultDigits
	}
	if acc.Period == 0 {
		acc.Period = entity.DefaultPeriod
	}

	acc.Type = entity.DefaultType
	if t, ok := otp.ParseType(in.Type); ok {
		acc.Type = t
	}

	acc.Algorithm = entity.DefaultAlgorithm
	if alg, ok := otp.ParseAlgorithm(in.Algorithm); ok {
		acc.Algorithm = alg
	}

	secret := otp.Normalize(in.Secret)
	if _, err := otp.Decode(secret); err != nil {
		return nil, mapOTPError(err)
	}

	// Prove a code can actually be derived from these parameters before
	// anything is persisted.
	var err error
	if acc.Type == otp.TypeHOTP {
		_, err = s.engine.HOTPCode(secret, acc.Counter, acc.Params())
	} else {
		_, err = s.engine.TOTPCode(secret, acc.Params())
	}
	if err != nil {
		slog.WarnContext(ctx, "trial code derivation failed", "key", acc.Key, "error", err)
		return nil, mapOTPError(err)
	}

	encrypt := s.cfg.GetBool("modules.vault.encrypt_secrets")
	if in.Encrypt != nil {
		encrypt = *in.Encrypt
	}

	acc.Secret = secret
	if encrypt {
		envelope, err := s.encryptor.EncryptString(secret)
		if err != nil {
			slog.ErrorContext(ctx, "failed to encrypt secret", "key", acc.Key, "error", err)
			return nil, goerror.NewServer(err)
		}
		acc.Secret = envelope
		acc.Encrypted = true
	}

	return acc, nil
}
