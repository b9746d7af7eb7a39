// Package scheduler runs the background maintenance tasks over asynq:
// archiving expired work-start proposals and reminding about outstanding
// callout fees.
package scheduler

import (
	"context"
	"time"

	calloutsrepo "ccc_backoffice/internal/callouts/repository"
	"ccc_backoffice/internal/events"
	schedulingrepo "ccc_backoffice/internal/scheduling/repository"
	"ccc_backoffice/platform/config"
	"ccc_backoffice/platform/logger"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Worker struct {
	server        *asynq.Server
	mux           *asynq.ServeMux
	proposals     *schedulingrepo.Repository
	callouts      *calloutsrepo.Repository
	bus           events.Bus
	log           *logger.Logger
	reminderAfter time.Duration
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	reminderAfter := cfg.GetFeeReminderAfter()
	if reminderAfter <= 0 {
		reminderAfter = 72 * time.Hour
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:        server,
		mux:           mux,
		proposals:     schedulingrepo.New(pool),
		callouts:      calloutsrepo.New(pool),
		bus:           bus,
		log:           log,
		reminderAfter: reminderAfter,
	}

	mux.HandleFunc(TaskArchiveExpiredProposals, w.handleArchiveExpiredProposals)
	mux.HandleFunc(TaskCalloutFeeReminder, w.handleCalloutFeeReminder)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleArchiveExpiredProposals archives pending work-start proposals whose
// proposed date has passed without a client response.
func (w *Worker) handleArchiveExpiredProposals(ctx context.Context, _ *asynq.Task) error {
	archived, err := w.proposals.ArchiveExpiredPending(ctx, time.Now())
	if err != nil {
		return err
	}

	if archived > 0 {
		w.log.Info("archived expired schedule proposals", "archived", archived)
	}
	return nil
}

// handleCalloutFeeReminder publishes a reminder event for every callout
// whose fee is still outstanding past the configured window.
func (w *Worker) handleCalloutFeeReminder(ctx context.Context, _ *asynq.Task) error {
	now := time.Now()
	outstanding, err := w.callouts.ListOutstandingOlderThan(ctx, now.Add(-w.reminderAfter))
	if err != nil {
		return err
	}

	if w.bus == nil {
		return nil
	}

	for _, callout := range outstanding {
		w.bus.Publish(ctx, events.CalloutFeeReminderDue{
			BaseEvent:      events.NewBaseEvent(),
			CalloutID:      callout.ID,
			PartnerID:      callout.AssignedPartnerID,
			FeeAmountCents: callout.CalloutFeeAmountCents,
			OutstandingFor: now.Sub(callout.CreatedAt).Round(time.Hour).String(),
		})
	}

	if len(outstanding) > 0 {
		w.log.Info("callout fee reminders published", "count", len(outstanding))
	}
	return nil
}
