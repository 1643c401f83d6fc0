package inbound

import (
	"context"

	"github.com/shandysiswandi/govault/internal/pkg/router"
	"github.com/shandysiswandi/govault/internal/vault/usecase"
)

type uc interface {
	AccountCreate(ctx context.Context, in usecase.AccountCreateInput) (*usecase.AccountCreateOutput, error)
	AccountImport(ctx context.Context, in usecase.AccountImportInput) (*usecase.AccountCreateOutput, error)
	AccountImportFile(ctx context.Context, in usecase.AccountImportFileInput) (*usecase.AccountImportFileOutput, error)
	AccountList(ctx context.Context) (*usecase.AccountListOutput, error)
	AccountDetail(ctx context.Context, in usecase.AccountDetailInput) (*usecase.AccountDetailOutput, error)
	AccountUpdate(ctx context.Context, in usecase.AccountUpdateInput) (*usecase.AccountUpdateOutput, error)
	AccountDelete(ctx context.Context, in usecase.AccountDeleteInput) (*usecase.AccountDeleteOutput, error)

	CodeGenerate(ctx context.Context, in usecase.CodeGenerateInput) (*usecase.CodeGenerateOutput, error)
	CodeGenerateAll(ctx context.Context) (*usecase.CodeGenerateAllOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Account Management
	r.POST("/api/v1/vault/accounts", end.AccountCreate)
	r.GET("/api/v1/vault/accounts", end.AccountList)
	r.POST("/api/v1/vault/accounts/import", end.AccountImport)
	r.POST("/api/v1/vault/accounts/import/file", end.AccountImportFile)
	r.GET("/api/v1/vault/accounts/:key", end.AccountDetail)
	r.PUT("/api/v1/vault/accounts/:key", end.AccountUpdate)
	r.DELETE("/api/v1/vault/accounts/:key", end.AccountDelete)

	// Code Issuance
	r.GET("/api/v1/vault/accounts/:key/code", end.CodeGenerate)
	r.GET("/api/v1/vault/codes", end.CodeGenerateAll)
}
