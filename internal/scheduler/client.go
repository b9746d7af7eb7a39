package scheduler

import (
	"context"
	"fmt"

	"ccc_backoffice/platform/config"
	"ccc_backoffice/platform/logger"

	"github.com/hibiken/asynq"
)

func redisClientOpt(cfg config.RedisConfig) (asynq.RedisClientOpt, error) {
	addr := cfg.GetRedisAddr()
	if addr == "" {
		return asynq.RedisClientOpt{}, fmt.Errorf("redis addr not configured")
	}

	return asynq.RedisClientOpt{
		Addr:     addr,
		Password: cfg.GetRedisPassword(),
	}, nil
}

// Periodic registers the recurring maintenance tasks with asynq's cron-style
// scheduler. It only enqueues; the worker executes.
type Periodic struct {
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{})

	if _, err := scheduler.Register("0 2 * * *", NewArchiveExpiredProposalsTask()); err != nil {
		return nil, fmt.Errorf("register archive task: %w", err)
	}
	if _, err := scheduler.Register("0 9 * * *", NewCalloutFeeReminderTask()); err != nil {
		return nil, fmt.Errorf("register fee reminder task: %w", err)
	}

	return &Periodic{scheduler: scheduler, log: log}, nil
}

// Run starts the scheduler and blocks until it stops. Shutdown is triggered
// by context cancellation.
func (p *Periodic) Run(ctx context.Context) {
	if p == nil || p.scheduler == nil {
		return
	}

	go func() {
		<-ctx.Done()
		p.scheduler.Shutdown()
	}()

	if err := p.scheduler.Run(); err != nil {
		p.log.Error("periodic scheduler stopped", "error", err)
	}
}
