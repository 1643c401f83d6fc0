package inbound

import (
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/govault/internal/pkg/router"
	"github.com/shandysiswandi/govault/internal/vault/usecase"
)

// HTTPEndpoint exposes HTTP handlers for credential accounts and code issuance.
type HTTPEndpoint struct {
	uc uc
}

// AccountCreate registers a new credential account.
// @Summary Create account
// @Description Registers a credential account with its base32 secret and OTP parameters.
// @Tags Vault, Accounts
// @Accept json
// @Produce json
// @Param request body AccountCreateRequest true "Account payload"
// @Success 200 {object} router.successResponse{data=AccountResponse} "Created account"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Account key already exists"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/vault/accounts [post]
func (h *HTTPEndpoint) AccountCreate(r *router.Request) (any, error) {
	var req AccountCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.AccountCreate(r.Context(), usecase.AccountCreateInput{
		Key:       req.Key,
		Name:      req.Name,
		Secret:    req.Secret,
		Type:      req.Type,
		Algorithm: req.Algorithm,
		Digits:    req.Digits,
		Period:    req.Period,
		Counter:   req.Counter,
		Encrypt:   req.Encrypt,
	})
	if err != nil {
		return nil, err
	}

	return accountResponseOf(resp), nil
}

// AccountImport provisions an account from an otpauth URI.
// @Summary Import account from URI
// @Description Parses an otpauth:// URI and registers the account it describes.
// @Tags Vault, Accounts
// @Accept json
// @Produce json
// @Param request body AccountImportRequest true "Import payload"
// @Success 200 {object} router.successResponse{data=AccountResponse} "Imported account"
// @Failure 400 {object} router.errorResponse "Malformed otpauth URI"
// @Failure 409 {object} router.errorResponse "Account key already exists"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/vault/accounts/import [post]
func (h *HTTPEndpoint) AccountImport(r *router.Request) (any, error) {
	var req AccountImportRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.AccountImport(r.Context(), usecase.AccountImportInput{
		URI: req.URI,
		Key: req.Key,
	})
	if err != nil {
		return nil, err
	}

	return accountResponseOf(resp), nil
}

// AccountImportFile bulk-imports accounts from an uploaded file of otpauth URIs.
// @Summary Import accounts from file
// @Description Reads one otpauth:// URI per line and imports each independently.
// @Tags Vault, Accounts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File with one otpauth URI per line"
// @Success 200 {object} router.successResponse{data=AccountImportFileResponse} "Import summary"
// @Failure 400 {object} router.errorResponse "Missing or unreadable file"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/vault/accounts/import/file [post]
func (h *HTTPEndpoint) AccountImportFile(r *router.Request) (any, error) {
	ctx := r.Context()

	file, err := r.StreamSingleFile("file")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close file", "error", err)
		}
	}()

	resp, err := h.uc.AccountImportFile(ctx, usecase.AccountImportFileInput{Reader: file})
	if err != nil {
		return nil, err
	}

	return AccountImportFileResponse{
		Created: resp.Created,
		Failed:  resp.Failed,
		Errors: lo.Map(resp.Errors, func(e usecase.ImportLineError, _ int) AccountImportLineError {
			return AccountImportLineError{Line: e.Line, Reason: e.Reason}
		}),
	}, nil
}

// AccountList lists all stored accounts.
// @Summary List accounts
// @Description Returns every stored account without secret material.
// @Tags Vault, Accounts
// @Produce json
// @Success 200 {object} router.successResponse{data=AccountListResponse} "Account list"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/vault/accounts [get]
func (h *HTTPEndpoint) AccountList(r *router.Request) (any, error) {
	resp, err := h.uc.AccountList(r.Context())
	if err != nil {
		return nil, err
	}

	return AccountListResponse{
		Accounts: lo.Map(resp.Accounts, func(acc usecase.AccountSummary, _ int) AccountSummaryResponse {
			return AccountSummaryResponse{
				Key:       acc.Key,
				Name:      acc.Name,
				Type:      string(acc.Type),
				Algorithm: string(acc.Algorithm),
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

// AccountDetail returns one account with its provisioning URI.
// @Summary Get account
// @Description Returns a single account including its otpauth provisioning URI.
// @Tags Vault, Accounts
// @Produce json
// @Param key path string true "Account key"
// @Success 200 {object} router.successResponse{data=AccountDetailResponse} "Account detail"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/vault/accounts/{key} [get]
func (h *HTTPEndpoint) AccountDetail(r *router.Request) (any, error) {
	resp, err := h.uc.AccountDetail(r.Context(), usecase.AccountDetailInput{Key: r.GetParam("key")})
	if err != nil {
		return nil, err
	}

	return AccountDetailResponse{
		Key:       resp.Key,
		Name:      resp.Name,
		Type:      string(resp.Type),
		Algorithm: string(resp.Algorithm),
		Digits:    resp.Digits,
		Period:    resp.Period,
		Counter:   resp.Counter,
		Encrypted: resp.Encrypted,
		URI:       resp.URI,
		CreatedAt: resp.CreatedAt,
		UpdatedAt: resp.UpdatedAt,
	}, nil
}

// AccountUpdate changes the mutable fields of an account.
// @Summary Update account
// @Description Updates name, secret, algorithm, digits or period. The key never changes.
// @Tags Vault, Accounts
// @Accept json
// @Produce json
// @Param key path string true "Account key"
// @Param request body AccountUpdateRequest true "Update payload"
// @Success 200 {object} router.successResponse{data=AccountResponse} "Updated account"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/vault/accounts/{key} [put]
func (h *HTTPEndpoint) AccountUpdate(r *router.Request) (any, error) {
	var req AccountUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.AccountUpdate(r.Context(), usecase.AccountUpdateInput{
		Key:       r.GetParam("key"),
		Name:      req.Name,
		Secret:    req.Secret,
		Algorithm: req.Algorithm,
		Digits:    req.Digits,
		Period:    req.Period,
		Encrypt:   req.Encrypt,
	})
	if err != nil {
		return nil, err
	}

	return AccountResponse{
		Key:       resp.Key,
		Name:      resp.Name,
		Type:      string(resp.Type),
		Algorithm: string(resp.Algorithm),
		Digits:    resp.Digits,
		Period:    resp.Period,
		Encrypted: resp.Encrypted,
	}, nil
}

// AccountDelete removes an account permanently.
// @Summary Delete account
// @Description Deletes an account and its secret material.
// @Tags Vault, Accounts
// @Produce json
// @Param key path string true "Account key"
// @Success 200 {object} router.successResponse{data=AccountDeleteResponse} "Deleted account"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/vault/accounts/{key} [delete]
func (h *HTTPEndpoint) AccountDelete(r *router.Request) (any, error) {
	resp, err := h.uc.AccountDelete(r.Context(), usecase.AccountDeleteInput{Key: r.GetParam("key")})
	if err != nil {
		return nil, err
	}

	return AccountDeleteResponse{Key: resp.Key}, nil
}

// CodeGenerate issues a one-time code for a single account.
// @Summary Generate code
// @Description Issues a TOTP or HOTP code. HOTP advances the account counter.
// @Tags Vault, Codes
// @Produce json
// @Param key path string true "Account key"
// @Success 200 {object} router.successResponse{data=CodeResponse} "Issued code"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/vault/accounts/{key}/code [get]
func (h *HTTPEndpoint) CodeGenerate(r *router.Request) (any, error) {
	resp, err := h.uc.CodeGenerate(r.Context(), usecase.CodeGenerateInput{Key: r.GetParam("key")})
	if err != nil {
		return nil, err
	}

	return CodeResponse{
		Key:              resp.Issuance.Key,
		Type:             string(resp.Issuance.Type),
		Code:             resp.Issuance.Code,
		Algorithm:        string(resp.Issuance.Algorithm),
		SecondsRemaining: resp.Issuance.SecondsRemaining,
		ExpiresAt:        expiryOf(resp.Issuance.ExpiresAt),
		Counter:          resp.Issuance.Counter,
	}, nil
}

// CodeGenerateAll issues a code for every stored account.
// @Summary Generate all codes
// @Description Issues a code per account. A failing account is reported in place.
// @Tags Vault, Codes
// @Produce json
// @Success 200 {object} router.successResponse{data=CodeListResponse} "Issued codes"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/vault/codes [get]
func (h *HTTPEndpoint) CodeGenerateAll(r *router.Request) (any, error) {
	resp, err := h.uc.CodeGenerateAll(r.Context())
	if err != nil {
		return nil, err
	}

	return CodeListResponse{
		Codes: lo.Map(resp.Codes, func(c usecase.BatchCode, _ int) BatchCodeResponse {
			return BatchCodeResponse{
				Key:              c.Key,
				Name:             c.Name,
				Type:             string(c.Type),
				Code:             c.Code,
				Algorithm:        string(c.Algorithm),
				SecondsRemaining: c.SecondsRemaining,
				ExpiresAt:        expiryOf(c.ExpiresAt),
				Counter:          c.Counter,
				Error:            c.Error,
			}
		}),
	}, nil
}

// expiryOf hides the zero instant HOTP issuance carries, so only TOTP
// responses render an expiry.
func expiryOf(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func accountResponseOf(resp *usecase.AccountCreateOutput) AccountResponse {
	return AccountResponse{
		Key:       resp.Key,
		Name:      resp.Name,
		Type:      string(resp.Type),
		Algorithm: string(resp.Algorithm),
		Digits:    resp.Digits,
		Period:    resp.Period,
		Encrypted: resp.Encrypted,
	}
}
