package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/govault/internal/pkg/goerror"
	"github.com/shandysiswandi/govault/internal/pkg/otp"
)

type CodeGenerateAllOutput struct {
	Codes []BatchCode
}

type BatchCode struct {
	Key              string
	Name             string
	Type             otp.Type
	Code             string
	Algorithm        otp.Algorithm
	SecondsRemaining uint
	ExpiresAt        time.Time
	Counter          uint64
	Error            string
}

// CodeGenerateAll issues a code for every stored account. A failing
// account is reported in place and never aborts the batch.
func (s *Usecase) CodeGenerateAll(ctx context.Context) (*CodeGenerateAllOutput, error) {
	ctx, span := s.startSpan(ctx, "CodeGenerateAll")
	defer span.End()

	accs, err := s.repoDB.GetAccountList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list accounts", "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &CodeGenerateAllOutput{Codes: make([]BatchCode, 0, len(accs))}
	for i := range accs {
		acc := accs[i]
		item := BatchCode{Key: acc.Key, Name: acc.Name, Type: acc.Type}

		iss, err := s.issue(ctx, &acc)
		if err != nil {
			slog.WarnContext(ctx, "failed to issue code in batch", "key", acc.Key, "error", err)
			item.Error = batchReason(err)
			out.Codes = append(out.Codes, item)
			continue
		}

		item.Code = iss.Code
		item.Algorithm = iss.Algorithm
		item.SecondsRemaining = iss.SecondsRemaining
		item.ExpiresAt = iss.ExpiresAt
		item.Counter = iss.Counter
		out.Codes = append(out.Codes, item)
	}

	return out, nil
}

// batchReason keeps the per-item failure text stable and free of internal
// detail, so one row never leaks another account's state.
func batchReason(err error) string {
	var gerr *goerror.Error
	if errors.As(err, &gerr) && gerr.Type() != goerror.TypeServer {
		return gerr.Error()
	}
	return "code generation failed"
}
