// Package surveys provides the site survey domain module: the survey
// lifecycle and the booking negotiation with the client.
package surveys

import (
	apphttp "ccc_backoffice/internal/http"
	"ccc_backoffice/internal/surveys/handler"
	"ccc_backoffice/internal/surveys/repository"
	"ccc_backoffice/internal/surveys/service"
	"ccc_backoffice/platform/events"
	"ccc_backoffice/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the surveys domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new surveys module with all dependencies wired
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
	return "surveys"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	surveys := ctx.Protected.Group("/surveys")
	m.handler.RegisterRoutes(surveys)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
