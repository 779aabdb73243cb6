package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config contains runtime configuration values. It is assembled once at
// start-up and passed down; nothing below this boundary reads the
// environment directly.
type Config struct {
	FeedURL        string        `yaml:"feed_url"`
	SourceListPath string        `yaml:"source_list_path"`
	RegistryPath   string        `yaml:"registry_path"`
	AccountsPath   string        `yaml:"accounts_path"`
	ScheduleCron   string        `yaml:"schedule_cron"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	GeminiAPIKey string `yaml:"-"`
	GeminiModel  string `yaml:"gemini_model"`

	EmailHost      string `yaml:"email_host"`
	EmailPort      int    `yaml:"email_port"`
	EmailSender    string `yaml:"-"`
	EmailPassword  string `yaml:"-"`
	EmailRecipient string `yaml:"-"`

	TelegramToken  string `yaml:"-"`
	TelegramChatID int64  `yaml:"-"`

	WebhookURL string `yaml:"-"`

	GitHubRepo  string `yaml:"github_repo"`
	GitHubToken string `yaml:"-"`
}

const (
	defaultFeedURL      = "https://michael180831.github.io/wechat-rss-feed/rss.xml"
	defaultSourceList   = "biz.txt"
	defaultRegistryPath = "processed_biz.json"
	defaultAccountsPath = "accounts.json"
	defaultCron         = "0 * * * *" // hourly
	defaultTimeout      = 30 * time.Second
	defaultEmailHost    = "smtp.qq.com"
	defaultEmailPort    = 465
	defaultGeminiModel  = "gemini-2.5-flash"
)

// Load builds a Config from an optional YAML file and the environment.
// Environment values win over file values; secrets only ever come from the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		FeedURL:        defaultFeedURL,
		SourceListPath: defaultSourceList,
		RegistryPath:   defaultRegistryPath,
		AccountsPath:   defaultAccountsPath,
		ScheduleCron:   defaultCron,
		RequestTimeout: defaultTimeout,
		EmailHost:      defaultEmailHost,
		EmailPort:      defaultEmailPort,
		GeminiModel:    defaultGeminiModel,
	}

	path := getenvDefault("MONITOR_CONFIG", "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.FeedURL = getenvDefault("FEED_URL", cfg.FeedURL)
	cfg.SourceListPath = getenvDefault("SOURCE_LIST_PATH", cfg.SourceListPath)
	cfg.RegistryPath = getenvDefault("REGISTRY_PATH", cfg.RegistryPath)
	cfg.AccountsPath = getenvDefault("ACCOUNTS_PATH", cfg.AccountsPath)
	cfg.ScheduleCron = getenvDefault("SCHEDULE_CRON", cfg.ScheduleCron)
	cfg.RequestTimeout = parseDurationDefault("REQUEST_TIMEOUT", cfg.RequestTimeout)

	cfg.GeminiAPIKey = getenvDefault("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GeminiModel = getenvDefault("GEMINI_MODEL", cfg.GeminiModel)

	cfg.EmailHost = getenvDefault("EMAIL_HOST", cfg.EmailHost)
	cfg.EmailPort = parseIntDefault("EMAIL_PORT", cfg.EmailPort)
	cfg.EmailSender = getenvDefault("EMAIL_SENDER", cfg.EmailSender)
	cfg.EmailPassword = getenvDefault("EMAIL_PASSWORD", cfg.EmailPassword)
	cfg.EmailRecipient = getenvDefault("EMAIL_RECIPIENT", cfg.EmailRecipient)

	cfg.TelegramToken = getenvDefault("TELEGRAM_BOT_TOKEN", cfg.TelegramToken)
	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	cfg.WebhookURL = getenvDefault("WEBHOOK_URL", cfg.WebhookURL)

	cfg.GitHubRepo = getenvDefault("GITHUB_REPO", cfg.GitHubRepo)
	cfg.GitHubToken = getenvDefault("GITHUB_TOKEN", cfg.GitHubToken)

	if cfg.FeedURL == "" {
		return nil, fmt.Errorf("FEED_URL is required")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseIntDefault(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
