package di

import (
	"log/slog"
	"os"

	"wechat-monitor/internal/adapter/article"
	"wechat-monitor/internal/adapter/email"
	"wechat-monitor/internal/adapter/feed"
	"wechat-monitor/internal/adapter/gemini"
	"wechat-monitor/internal/adapter/github"
	"wechat-monitor/internal/adapter/notify"
	"wechat-monitor/internal/adapter/telegram"
	"wechat-monitor/internal/adapter/webhook"
	"wechat-monitor/internal/config"
	"wechat-monitor/internal/domain/ports"
	"wechat-monitor/internal/store"
)

func provideSlogLogger() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

func provideStore(cfg *config.Config) *store.Store {
	return store.New(cfg.SourceListPath, cfg.RegistryPath, cfg.AccountsPath)
}

func provideArticleSource(cfg *config.Config, logger ports.Logger) ports.ArticleSource {
	parser := article.NewParser(cfg.RequestTimeout, logger)
	return feed.New(cfg.FeedURL, cfg.RequestTimeout, parser, logger)
}

func provideClassifier(cfg *config.Config, logger ports.Logger) ports.Classifier {
	if cfg.GeminiAPIKey == "" {
		return nil
	}
	return gemini.NewClassifier(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.RequestTimeout, logger)
}

// provideNotifier assembles the configured best-effort channels. Running
// with no channel at all is allowed; updates are still tracked and logged.
func provideNotifier(cfg *config.Config, logger ports.Logger) (ports.Notifier, error) {
	var channels []ports.Notifier

	if cfg.EmailSender != "" && cfg.EmailRecipient != "" {
		channels = append(channels, email.New(
			cfg.EmailHost, cfg.EmailPort,
			cfg.EmailSender, cfg.EmailPassword, cfg.EmailRecipient,
			cfg.RequestTimeout, logger))
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := telegram.New(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			return nil, err
		}
		channels = append(channels, tg)
	}

	if cfg.WebhookURL != "" {
		channels = append(channels, webhook.New(cfg.WebhookURL, cfg.RequestTimeout, logger))
	}

	return notify.NewComposite(logger, channels...), nil
}

func provideIssueTracker(cfg *config.Config, logger ports.Logger) ports.IssueTracker {
	if cfg.GitHubRepo == "" || cfg.GitHubToken == "" {
		return nil
	}
	return github.New(cfg.GitHubRepo, cfg.GitHubToken, cfg.RequestTimeout, logger)
}

func provideSchedule(cfg *config.Config) string {
	return cfg.ScheduleCron
}
