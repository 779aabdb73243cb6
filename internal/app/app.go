package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"wechat-monitor/internal/domain/ports"
	"wechat-monitor/internal/usecase"
)

// App manages the lifecycle of the monitoring scheduler.
type App struct {
	cron     *cron.Cron
	monitor  *usecase.Monitor
	logger   ports.Logger
	schedule string
}

// New constructs an App instance.
func New(monitor *usecase.Monitor, logger ports.Logger, schedule string) *App {
	return &App{
		cron:     cron.New(),
		monitor:  monitor,
		logger:   logger,
		schedule: schedule,
	}
}

// Run executes one pass immediately and then according to the cron
// schedule until the context is cancelled. The immediate pass surfaces
// configuration errors right away instead of at the first tick.
func (a *App) Run(ctx context.Context) error {
	if err := a.scheduleJob(); err != nil {
		return err
	}

	a.logger.Info(ctx, "running first pass immediately")
	if _, err := a.monitor.Run(ctx); err != nil {
		a.logger.Error(ctx, "initial pass failed", "error", err)
	}

	a.logger.Info(ctx, "starting scheduler", "cron", a.schedule)
	a.cron.Start()

	<-ctx.Done()
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
	a.logger.Info(context.Background(), "scheduler stopped")
	return nil
}

func (a *App) scheduleJob() error {
	_, err := a.cron.AddFunc(a.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := a.monitor.Run(ctx); err != nil {
			a.logger.Error(ctx, "scheduled pass failed", "error", err)
		}
	})
	return err
}
