// Package scheduling provides the work-start proposal domain module.
package scheduling

import (
	apphttp "ccc_backoffice/internal/http"
	"ccc_backoffice/internal/scheduling/handler"
	"ccc_backoffice/internal/scheduling/repository"
	"ccc_backoffice/internal/scheduling/service"
	"ccc_backoffice/platform/events"
	"ccc_backoffice/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the scheduling domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new scheduling module with all dependencies wired
func NewModule(pool *pgxpool.Pool, eventBus *events.InMemoryBus, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "scheduling"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	proposals := ctx.Protected.Group("/schedule-proposals")
	m.handler.RegisterRoutes(proposals)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
