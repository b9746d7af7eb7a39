// Package partners provides the partners domain module: subcontractor
// records and the commission engine that splits job margins.
package partners

import (
	apphttp "ccc_backoffice/internal/http"
	"ccc_backoffice/internal/partners/handler"
	"ccc_backoffice/internal/partners/repository"
	"ccc_backoffice/internal/partners/service"
	"ccc_backoffice/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the partners domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new partners module with all dependencies wired
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
	return "partners"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	partners := ctx.Protected.Group("/partners")
	m.handler.RegisterRoutes(partners)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
