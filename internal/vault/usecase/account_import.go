package usecase

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/govault/internal/pkg/goerror"
	"github.com/shandysiswandi/govault/internal/pkg/otp"
)

type AccountImportInput struct {
	URI string `validate:"required"`
	Key string `validate:"omitempty,min=1,max=120"`
}

// AccountImport provisions an account from a single otpauth URI. The key
// defaults to the URI label when no override is given.
func (s *Usecase) AccountImport(ctx context.Context, in AccountImportInput) (*AccountCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "AccountImport")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	uri, err := otp.ParseURI(in.URI)
	if err != nil {
		slog.WarnContext(ctx, "malformed otpauth uri", "error", err)
		return nil, goerror.NewInvalidFormat("malformed otpauth uri")
	}

	key := strings.TrimSpace(in.Key)
	if key == "" {
		key = uri.Label
	}

	return s.AccountCreate(ctx, AccountCreateInput{
		Key:       key,
		Name:      uri.AccountName,
		Secret:    uri.Secret,
		Type:      string(uri.Type),
		Algorithm: string(uri.Algorithm),
		Digits:    uri.Digits,
		Period:    uri.Period,
		Counter:   uri.Counter,
	})
}

type AccountImportFileInput struct {
	Reader io.Reader
}

type AccountImportFileOutput struct {
	Created int
	Failed  int
	Errors  []ImportLineError
}

type ImportLineError struct {
	Line   int
	Reason string
}

// AccountImportFile reads one otpauth URI per line and imports each
// independently, so a bad line never blocks the rest of the file.
func (s *Usecase) AccountImportFile(ctx context.Context, in AccountImportFileInput) (*AccountImportFileOutput, error) {
	ctx, span := s.startSpan(ctx, "AccountImportFile")
	defer span.End()

	if in.Reader == nil {
		return nil, goerror.NewInvalidFormat("missing import file")
	}

	out := &AccountImportFileOutput{}
	sc := bufio.NewScanner(in.Reader)

	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		if _, err := s.AccountImport(ctx, AccountImportInput{URI: raw}); err != nil {
			out.Failed++
			out.Errors = append(out.Errors, ImportLineError{Line: line, Reason: reasonOf(err)})
			continue
		}
		out.Created++
	}
	if err := sc.Err(); err != nil {
		slog.ErrorContext(ctx, "failed to read import file", "error", err)
		return nil, goerror.NewServer(err)
	}

	return out, nil
}

func reasonOf(err error) string {
	var gerr *goerror.Error
	if errors.As(err, &gerr) {
		return gerr.Error()
	}
	return "internal error"
}
