package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/govault/internal/vault"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.vault.enabled") {
		if err := vault.New(vault.Dependency{
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Encryptor:   a.encryptor,
			Engine:      a.engine,
			Clock:       a.clock,
			Validator:   a.validator,
			Router:      a.router,
			DBConn:      a.dbConn,
			Idempotency: a.idemp,
			Messaging:   a.messaging,
			Goroutine:   a.goroutine,
		}); err != nil {
			slog.Error("failed to init module vault", "error", err)
			os.Exit(1)
		}
	}
}
