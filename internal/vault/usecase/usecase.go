package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/govault/internal/pkg/clock"
	"github.com/shandysiswandi/govault/internal/pkg/config"
	"github.com/shandysiswandi/govault/internal/pkg/crypt"
	"github.com/shandysiswandi/govault/internal/pkg/goerror"
	"github.com/shandysiswandi/govault/internal/pkg/goroutine"
	"github.com/shandysiswandi/govault/internal/pkg/idempotency"
	"github.com/shandysiswandi/govault/internal/pkg/instrument"
	"github.com/shandysiswandi/govault/internal/pkg/otp"
	"github.com/shandysiswandi/govault/internal/pkg/uid"
	"github.com/shandysiswandi/govault/internal/pkg/validator"
	"github.com/shandysiswandi/govault/internal/vault/entity"
	"go.opentelemetry.io/otel/trace"
)

type AccountCreatedEvent struct {
	Key       string
	Name      string
	Type      otp.Type
	Algorithm otp.Algorithm
	Digits    uint
}

type AccountDeletedEvent struct {
	Key string
}

type CodeIssuedEvent struct {
	Key     string
	Type    otp.Type
	Counter uint64
}

type repoMessaging interface {
	PublishAccountCreated(ctx context.Context, msg AccountCreatedEvent) error
	PublishAccountDeleted(ctx context.Context, msg AccountDeletedEvent) error
	PublishCodeIssued(ctx context.Context, msg CodeIssuedEvent) error
}

type repoDB interface {
	CreateAccount(ctx context.Context, in entity.Account) error
	GetAccountByKey(ctx context.Context, key string) (*entity.Account, error)
	GetAccountList(ctx context.Context) ([]entity.Account, error)
	GetAccountKeys(ctx context.Context) ([]string, error)
	UpdateAccount(ctx context.Context, in entity.Account) error
	DeleteAccount(ctx context.Context, key string) error

	// IncrementAccountCounter atomically advances the HOTP counter and
	// returns the advanced value.
	IncrementAccountCounter(ctx context.Context, key string) (uint64, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	encryptor     crypt.Encryptor
	engine        *otp.Engine
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Encryptor     crypt.Encryptor
	Engine        *otp.Engine
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		encryptor:     dep.Encryptor,
		engine:        dep.Engine,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("vault.usecase").Start(ctx, name)
}

// createGuardKey names the idempotency guard protecting account creation.
// Delete clears it, so creation guard state never outlives the account.
func createGuardKey(key string) string {
	return "vault:account:create:" + key
}

// secretOf returns the plaintext base32 secret of an account, opening the
// crypt envelope when the secret is stored encrypted.
func (s *Usecase) secretOf(ctx context.Context, acc *entity.Account) (string, error) {
	if !acc.Encrypted {
		return acc.Secret, nil
	}

	plain, err := s.encryptor.DecryptString(acc.Secret)
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt account secret", "key", acc.Key, "error", err)
		return "", goerror.NewServer(err)
	}

	return plain, nil
}

// notFound builds the lookup-miss error carrying the set of known keys so
// callers can spot typos in the requested key.
func (s *Usecase) notFound(ctx context.Context, key string) error {
	meta := map[string]any{}
	if keys, err := s.repoDB.GetAccountKeys(ctx); err == nil {
		meta["known_keys"] = keys
	} else {
		slog.WarnContext(ctx, "failed to list account keys", "error", err)
	}

	slog.WarnContext(ctx, "account not found", "key", key)
	return goerror.NewBusinessMeta("account not found", goerror.CodeNotFound, meta)
}

// publishAsync fires an event without blocking the request. The context is
// detached from request cancelation but keeps its values, so the
// correlation ID survives into the publish span.
func (s *Usecase) publishAsync(ctx context.Context, name string, fn func(context.Context) error) {
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			slog.WarnContext(ctx, "failed to publish event", "event", name, "error", err)
		}
		return nil
	})
}

// mapOTPError converts engine errors into the transport error taxonomy.
func mapOTPError(err error) error {
	switch {
	case errors.Is(err, otp.ErrInvalidSecret):
		return goerror.NewInvalidInput(nil, "secret", "must be a base32-encoded secret")
	case errors.Is(err, otp.ErrUnsupportedParams):
		return goerror.NewInvalidInput(nil, "params", "unsupported digits or algorithm")
	default:
		return goerror.NewServer(err)
	}
}
