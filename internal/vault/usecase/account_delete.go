package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/govault/internal/pkg/goerror"
)

type AccountDeleteInput struct {
	Key string `validate:"required"`
}

type AccountDeleteOutput struct {
	Key string
}

// AccountDelete removes an account and its secret material permanently.
func (s *Usecase) AccountDelete(ctx context.Context, in AccountDeleteInput) (*AccountDeleteOutput, error) {
	ctx, span := s.startSpan(ctx, "AccountDelete")
	defer span.End()

	in.Key = strings.TrimSpace(in.Key)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	err := s.repoDB.DeleteAccount(ctx, in.Key)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, s.notFound(ctx, in.Key)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete account", "key", in.Key, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Key uniqueness only covers live accounts, so a recreate of a key
	// deleted moments ago must not trip the cached create guard.
	if err := s.idemp.Clear(ctx, createGuardKey(in.Key)); err != nil {
		slog.WarnContext(ctx, "failed to clear create guard", "key", in.Key, "error", err)
	}

	s.publishAsync(ctx, "vault.account_deleted", func(ctx context.Context) error {
		return s.repoMessaging.PublishAccountDeleted(ctx, AccountDeletedEvent{Key: in.Key})
	})

	return &AccountDeleteOutput{Key: in.Key}, nil
}
