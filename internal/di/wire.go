//go:build wireinject

package di

import (
	"github.com/google/wire"

	"wechat-monitor/internal/adapter/logging"
	"wechat-monitor/internal/app"
	"wechat-monitor/internal/config"
	"wechat-monitor/internal/domain/ports"
	"wechat-monitor/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp() (*app.App, error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		provideStore,
		provideArticleSource,
		provideClassifier,
		provideNotifier,
		provideIssueTracker,
		usecase.NewMonitor,
		app.New,
		provideSchedule,
	)
	return nil, nil
}

// InitializeMonitor wires a single-pass monitor without the scheduler.
func InitializeMonitor() (*usecase.Monitor, error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		provideStore,
		provideArticleSource,
		provideClassifier,
		provideNotifier,
		provideIssueTracker,
		usecase.NewMonitor,
	)
	return nil, nil
}
