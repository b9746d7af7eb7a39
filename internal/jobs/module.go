// Package jobs provides the jobs domain module: the pipeline record, the
// enrichment read-model, and the stage-gated status lifecycle.
package jobs

import (
	apphttp "ccc_backoffice/internal/http"
	"ccc_backoffice/internal/jobs/domain"
	"ccc_backoffice/internal/jobs/handler"
	"ccc_backoffice/internal/jobs/repository"
	"ccc_backoffice/internal/jobs/service"
	"ccc_backoffice/platform/events"
	"ccc_backoffice/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the jobs domain module
type Module struct {
	handler    *handler.Handler
	service    *service.Service
	repository *repository.Repository
}

// NewModule creates a new jobs module with all dependencies wired.
// The registry is constructed by the caller so operator overrides can be
// applied once at startup.
func NewModule(pool *pgxpool.Pool, eventBus *events.InMemoryBus, val *validator.Validator, registry *domain.Registry) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, registry)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val)

	return &Module{
		handler:    h,
		service:    svc,
		repository: repo,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "jobs"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for adapter wiring
func (m *Module) Repository() *repository.Repository {
	return m.repository
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	jobs := ctx.Protected.Group("/jobs")
	m.handler.RegisterRoutes(jobs)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
