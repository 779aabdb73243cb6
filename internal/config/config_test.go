package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONITOR_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultFeedURL, cfg.FeedURL)
	assert.Equal(t, "biz.txt", cfg.SourceListPath)
	assert.Equal(t, "0 * * * *", cfg.ScheduleCron)
	assert.Equal(t, defaultTimeout, cfg.RequestTimeout)
	assert.Equal(t, 465, cfg.EmailPort)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
feed_url: https://example.com/rss.xml
source_list_path: /data/biz.txt
schedule_cron: "*/30 * * * *"
github_repo: someone/some-feed
`), 0o644))
	t.Setenv("MONITOR_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/rss.xml", cfg.FeedURL)
	assert.Equal(t, "/data/biz.txt", cfg.SourceListPath)
	assert.Equal(t, "*/30 * * * *", cfg.ScheduleCron)
	assert.Equal(t, "someone/some-feed", cfg.GitHubRepo)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feed_url: https://file.example/rss.xml\n"), 0o644))
	t.Setenv("MONITOR_CONFIG", path)
	t.Setenv("FEED_URL", "https://env.example/rss.xml")
	t.Setenv("TELEGRAM_CHAT_ID", "123456")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://env.example/rss.xml", cfg.FeedURL)
	assert.Equal(t, int64(123456), cfg.TelegramChatID)
}

func TestLoadInvalidChatID(t *testing.T) {
	t.Setenv("MONITOR_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
