// Package callouts provides the emergency callouts domain module. Fees owed
// by partners are computed here; their settlement lives in finance.
package callouts

import (
	"ccc_backoffice/internal/callouts/handler"
	"ccc_backoffice/internal/callouts/repository"
	"ccc_backoffice/internal/callouts/service"
	apphttp "ccc_backoffice/internal/http"
	"ccc_backoffice/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the callouts domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new callouts module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "callouts"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	callouts := ctx.Protected.Group("/callouts")
	m.handler.RegisterRoutes(callouts)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
