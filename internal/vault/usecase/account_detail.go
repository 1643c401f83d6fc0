package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shandysiswandi/govault/internal/pkg/goerror"
	"github.com/shandysiswandi/govault/internal/pkg/otp"
)

type AccountDetailInput struct {
	Key string `validate:"required"`
}

type AccountDetailOutput struct {
	Key       string
	Name      string
	Type      otp.Type
	Algorithm otp.Algorithm
	Digits    uint
	Period    uint
	Counter   uint64
	Encrypted bool
	URI       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountDetail returns a single account along with its provisioning URI,
// rebuilt from the plaintext secret.
func (s *Usecase) AccountDetail(ctx context.Context, in AccountDetailInput) (*AccountDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "AccountDetail")
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
		return nil, goerror.NewServer(err)
	}

	secret, err := s.secretOf(ctx, acc)
	if err != nil {
		return nil, err
	}

	uri := otp.BuildURI(otp.URI{
		Type:        acc.Type,
		AccountName: acc.Name,
		Secret:      secret,
		Algorithm:   acc.Algorithm,
		Digits:      acc.Digits,
		Period:      acc.Period,
		Counter:     acc.Counter,
	})

	return &AccountDetailOutput{
		Key:       acc.Key,
		Name:      acc.Name,
		Type:      acc.Type,
		Algorithm: acc.Algorithm,
		Digits:    acc.Digits,
		Period:    acc.Period,
		Counter:   acc.Counter,
		Encrypted: acc.Encrypted,
		URI:       uri,
		CreatedAt: acc.CreatedAt,
		UpdatedAt: acc.UpdatedAt,
	}, nil
}
