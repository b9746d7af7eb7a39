// Package finance provides the financial ledger module: the append-only
// transaction log and the recorder that writes to it on its two triggers.
package finance

import (
	"ccc_backoffice/internal/finance/handler"
	"ccc_backoffice/internal/finance/repository"
	"ccc_backoffice/internal/finance/service"
	apphttp "ccc_backoffice/internal/http"
	"ccc_backoffice/platform/events"
	"ccc_backoffice/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the finance domain module
type Module struct {
	handler  *handler.Handler
	service  *service.Service
	recorder *service.Recorder
}

// NewModule creates a new finance module with all dependencies wired. The
// recorder subscribes to the job status stream immediately.
func NewModule(pool *pgxpool.Pool, eventBus *events.InMemoryBus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	rec := service.NewRecorder(repo, log)
	rec.SetEventBus(eventBus)
	rec.Subscribe(eventBus)
	h := handler.New(svc)

	return &Module{
		handler:  h,
		service:  svc,
		recorder: rec,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "finance"
}

// Recorder returns the transaction recorder for cross-module wiring
func (m *Module) Recorder() *service.Recorder {
	return m.recorder
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ledger := ctx.Protected.Group("/finance/transactions")
	m.handler.RegisterRoutes(ledger)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
