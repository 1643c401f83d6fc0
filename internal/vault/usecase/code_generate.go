package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/govault/internal/pkg/goerror"
	"github.com/shandysiswandi/govault/internal/pkg/otp"
	"github.com/shandysiswandi/govault/internal/vault/entity"
)

type CodeGenerateInput struct {
	Key string `validate:"required"`
}

type CodeGenerateOutput struct {
	Issuance entity.Issuance
}

// CodeGenerate issues a one-time code for a single account. For HOTP the
// counter is advanced first via an atomic increment, so concurrent
// issuances each consume a distinct counter value.
func (s *Usecase) CodeGenerate(ctx context.Context, in CodeGenerateInput) (*CodeGenerateOutput, error) {
	ctx, span := s.startSpan(ctx, "CodeGenerate")
	defer span.End()

	in.Key = strings.TrimSpace(in.Key)
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

	iss, err := s.issue(ctx, acc)
	if err != nil {
		return nil, err
	}

	// Only HOTP issuance mutates the account, so only it is audited.
	if iss.Type == otp.TypeHOTP {
		s.publishAsync(ctx, "vault.code_issued", func(ctx context.Context) error {
			return s.repoMessaging.PublishCodeIssued(ctx, CodeIssuedEvent{
				Key:     iss.Key,
				Type:    iss.Type,
				Counter: iss.Counter,
			})
		})
	}

	return &CodeGenerateOutput{Issuance: *iss}, nil
}

// issue derives a code for one account. HOTP consumes the counter value
// reserved by the increment, which returns the already-advanced counter.
func (s *Usecase) issue(ctx context.Context, acc *entity.Account) (*entity.Issuance, error) {
	secret, err := s.secretOf(ctx, acc)
	if err != nil {
		return nil, err
	}

	iss := &entity.Issuance{Key: acc.Key, Type: acc.Type, Algorithm: acc.Algorithm}

	if acc.Type == otp.TypeHOTP {
		next, err := s.repoDB.IncrementAccountCounter(ctx, acc.Key)
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, s.notFound(ctx, acc.Key)
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo increment counter", "key", acc.Key, "error", err)
			return nil, goerror.NewServer(err)
		}

		code, err := s.engine.HOTPCode(secret, next-1, acc.Params())
		if err != nil {
			slog.ErrorContext(ctx, "failed to derive hotp code", "key", acc.Key, "error", err)
			return nil, mapOTPError(err)
		}

		iss.Code = code
		iss.Counter = next
		return iss, nil
	}

	// One instant for both the code and its remaining lifetime, so a
	// window rollover between the two can never pair a code with the
	// expiry of the next window.
	now := s.clock.Now()

	code, err := s.engine.TOTPCodeAt(secret, now, acc.Params())
	if err != nil {
		slog.ErrorContext(ctx, "failed to derive totp code", "key", acc.Key, "error", err)
		return nil, mapOTPError(err)
	}

	iss.Code = code
	iss.SecondsRemaining = otp.TimeRemainingAt(now, acc.Period)
	iss.ExpiresAt = now.Add(time.Duration(iss.SecondsRemaining) * time.Second)
	return iss, nil
}
