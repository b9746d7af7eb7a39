// Package billing provides the billing domain module: quote and invoice
// documents, line items, and the pricing calculator.
package billing

import (
	"ccc_backoffice/internal/billing/handler"
	"ccc_backoffice/internal/billing/repository"
	"ccc_backoffice/internal/billing/service"
	apphttp "ccc_backoffice/internal/http"
	"ccc_backoffice/platform/config"
	"ccc_backoffice/platform/events"
	"ccc_backoffice/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the billing domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new billing module with all dependencies wired
func NewModule(pool *pgxpool.Pool, eventBus *events.InMemoryBus, val *validator.Validator, cfg config.BillingConfig) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "billing"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	billing := ctx.Protected.Group("/billing")
	m.handler.RegisterRoutes(billing)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
