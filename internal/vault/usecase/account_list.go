package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/govault/internal/pkg/goerror"
	"github.com/shandysiswandi/govault/internal/pkg/otp"
	"github.com/shandysiswandi/govault/internal/vault/entity"
)

type AccountListOutput struct {
	Accounts []AccountSummary
}

type AccountSummary struct {
	Key       string
	Name      string
	Type      otp.Type
	Algorithm otp.Algorithm
	Digits    uint
	Period    uint
	Counter   uint64
	Encrypted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountList returns every stored account without secret material.
func (s *Usecase) AccountList(ctx context.Context) (*AccountListOutput, error) {
	ctx, span := s.startSpan(ctx, "AccountList")
	defer span.End()

	accs, err := s.repoDB.GetAccountList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list accounts", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AccountListOutput{
		Accounts: lo.Map(accs, func(acc entity.Account, _ int) AccountSummary {
			return AccountSummary{
				Key:       acc.Key,
				Name:      acc.Name,
				Type:      acc.Type,
				Algorithm: acc.Algorithm,
				Digits:    acc.Digits,
				Period:    acc.Period,
				Counter:   acc.Counter,
				Encrypted: acc.Encrypted,
				CreatedAt: acc.CreatedAt,
				UpdatedAt: acc.UpdatedAt,
			}
		}),
	}, nil
}
