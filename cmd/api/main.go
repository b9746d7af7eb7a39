package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ccc_backoffice/internal/adapters"
	"ccc_backoffice/internal/billing"
	"ccc_backoffice/internal/callouts"
	"ccc_backoffice/internal/events"
	"ccc_backoffice/internal/finance"
	apphttp "ccc_backoffice/internal/http"
	"ccc_backoffice/internal/http/router"
	"ccc_backoffice/internal/jobs"
	jobsdomain "ccc_backoffice/internal/jobs/domain"
	"ccc_backoffice/internal/notification"
	"ccc_backoffice/internal/partners"
	"ccc_backoffice/internal/scheduling"
	"ccc_backoffice/internal/surveys"
	"ccc_backoffice/platform/config"
	"ccc_backoffice/platform/db"
	"ccc_backoffice/platform/logger"
	"ccc_backoffice/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Stage rule table, with optional ops overrides applied once at startup
	registry, err := buildStageRegistry(cfg, log)
	if err != nil {
		log.Error("failed to build stage rule registry", "error", err)
		panic("failed to build stage rule registry: " + err.Error())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	jobsModule := jobs.NewModule(pool, eventBus, val, registry)
	billingModule := billing.NewModule(pool, eventBus, val, cfg)
	partnersModule := partners.NewModule(pool, val)
	calloutsModule := callouts.NewModule(pool, val)
	surveysModule := surveys.NewModule(pool, eventBus, val)
	schedulingModule := scheduling.NewModule(pool, eventBus, val)

	// Finance subscribes to job status events as soon as it is constructed
	financeModule := finance.NewModule(pool, eventBus, log)

	// Wire markup reader: billing → jobs (for client-view calculations)
	markupReader := adapters.NewJobMarkupReader(jobsModule.Repository())
	billingModule.Service().SetMarkupSource(markupReader)

	// Wire fee settler: callouts → finance (settlement writes the ledger entry)
	calloutsModule.Service().SetFeeSettler(financeModule.Recorder())

	// Margin write-back: finance → jobs (paid jobs store their derived margin)
	financeModule.Recorder().SetMarginWriter(jobsModule.Repository())

	// Notification module subscribes to domain events (not HTTP-facing)
	notification.Setup(cfg, eventBus, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			jobsModule,
			billingModule,
			partnersModule,
			calloutsModule,
			surveysModule,
			schedulingModule,
			financeModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// buildStageRegistry constructs the default rule table and applies the
// optional YAML override file.
func buildStageRegistry(cfg config.StageRulesConfig, log *logger.Logger) (*jobsdomain.Registry, error) {
	registry := jobsdomain.NewRegistry()

	path := cfg.GetStageRulesOverridePath()
	if path == "" {
		return registry, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stage rule overrides: %w", err)
	}

	overrides, err := jobsdomain.ParseRuleOverrides(data)
	if err != nil {
		return nil, err
	}

	if err := registry.ApplyOverrides(overrides); err != nil {
		return nil, err
	}

	log.Info("stage rule overrides applied", "path", path, "stages", len(overrides.Stages))
	return registry, nil
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
